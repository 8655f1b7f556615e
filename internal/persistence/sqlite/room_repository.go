package sqlite

import (
	"context"

	"github.com/example/event-registry/internal/persistence"
)

// RoomRepository implements persistence.RoomRepository over SQL.
type RoomRepository struct {
	pool   *ConnectionPool
	helper *QueryHelper
	mapper *ErrorMapper
}

// NewRoomRepository creates a SQL-backed room repository.
func NewRoomRepository(pool *ConnectionPool) *RoomRepository {
	return &RoomRepository{
		pool:   pool,
		helper: NewQueryHelper(pool),
		mapper: NewErrorMapper(),
	}
}

func (r *RoomRepository) CreateRoom(ctx context.Context, room persistence.Room) error {
	if room.ID == "" {
		return persistence.ErrConstraintViolation
	}

	_, err := r.helper.Exec(ctx,
		`INSERT INTO rooms (id, room_number, building, capacity) VALUES (?, ?, ?, ?)`,
		room.ID, room.RoomNumber, room.Building, room.Capacity,
	)
	return r.mapper.MapError(err)
}

func (r *RoomRepository) UpdateRoom(ctx context.Context, room persistence.Room) error {
	result, err := r.helper.Exec(ctx,
		`UPDATE rooms SET room_number = ?, building = ?, capacity = ? WHERE id = ?`,
		room.RoomNumber, room.Building, room.Capacity, room.ID,
	)
	if err != nil {
		return r.mapper.MapError(err)
	}
	return requireRowsAffected(result)
}

func (r *RoomRepository) GetRoom(ctx context.Context, id string) (persistence.Room, error) {
	var room persistence.Room
	err := r.helper.QueryRow(ctx,
		`SELECT id, room_number, building, capacity FROM rooms WHERE id = ?`, id,
	).Scan(&room.ID, &room.RoomNumber, &room.Building, &room.Capacity)
	if err != nil {
		return persistence.Room{}, r.mapper.MapError(err)
	}
	return room, nil
}

// ListRooms returns all rooms ordered by room number.
func (r *RoomRepository) ListRooms(ctx context.Context) ([]persistence.Room, error) {
	return r.queryRooms(ctx,
		`SELECT id, room_number, building, capacity FROM rooms
		 ORDER BY room_number ASC, id ASC`)
}

// ListRoomsByIDs returns the rooms whose ids are in the given set. Missing
// ids are silently absent from the result.
func (r *RoomRepository) ListRoomsByIDs(ctx context.Context, ids []string) ([]persistence.Room, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	query := `SELECT id, room_number, building, capacity FROM rooms
		WHERE id IN (` + inPlaceholders(len(ids)) + `)`
	return r.queryRooms(ctx, query, toAnySlice(ids)...)
}

func (r *RoomRepository) queryRooms(ctx context.Context, query string, args ...any) ([]persistence.Room, error) {
	rows, err := r.helper.Query(ctx, query, args...)
	if err != nil {
		return nil, r.mapper.MapError(err)
	}
	defer rows.Close()

	var rooms []persistence.Room
	for rows.Next() {
		var room persistence.Room
		if err := rows.Scan(&room.ID, &room.RoomNumber, &room.Building, &room.Capacity); err != nil {
			return nil, r.mapper.MapError(err)
		}
		rooms = append(rooms, room)
	}
	if err := rows.Err(); err != nil {
		return nil, r.mapper.MapError(err)
	}
	return rooms, nil
}

func (r *RoomRepository) DeleteRoom(ctx context.Context, id string) error {
	// No cascade: schedules referencing the room keep their dangling id.
	result, err := r.helper.Exec(ctx, `DELETE FROM rooms WHERE id = ?`, id)
	if err != nil {
		return r.mapper.MapError(err)
	}
	return requireRowsAffected(result)
}

func (r *RoomRepository) CountRooms(ctx context.Context) (int, error) {
	return countRows(ctx, r.helper, r.mapper, "rooms")
}
