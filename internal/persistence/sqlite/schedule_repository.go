package sqlite

import (
	"context"
	"fmt"

	"github.com/example/event-registry/internal/persistence"
)

// ScheduleRepository implements persistence.ScheduleRepository over SQL.
type ScheduleRepository struct {
	pool   *ConnectionPool
	helper *QueryHelper
	mapper *ErrorMapper
}

// NewScheduleRepository creates a SQL-backed schedule repository.
func NewScheduleRepository(pool *ConnectionPool) *ScheduleRepository {
	return &ScheduleRepository{
		pool:   pool,
		helper: NewQueryHelper(pool),
		mapper: NewErrorMapper(),
	}
}

// CreateSchedule stores the four reference ids verbatim. Referential
// existence is not checked here; callers opt into strict checks upstream.
func (r *ScheduleRepository) CreateSchedule(ctx context.Context, schedule persistence.Schedule) error {
	if schedule.ID == "" {
		return persistence.ErrConstraintViolation
	}

	_, err := r.helper.Exec(ctx, `
		INSERT INTO schedules (id, session_id, room_id, topic_id, presenter_id)
		VALUES (?, ?, ?, ?, ?)`,
		schedule.ID,
		schedule.SessionID,
		schedule.RoomID,
		schedule.TopicID,
		schedule.PresenterID,
	)
	return r.mapper.MapError(err)
}

func (r *ScheduleRepository) UpdateSchedule(ctx context.Context, schedule persistence.Schedule) error {
	result, err := r.helper.Exec(ctx, `
		UPDATE schedules
		SET session_id = ?, room_id = ?, topic_id = ?, presenter_id = ?
		WHERE id = ?`,
		schedule.SessionID,
		schedule.RoomID,
		schedule.TopicID,
		schedule.PresenterID,
		schedule.ID,
	)
	if err != nil {
		return r.mapper.MapError(err)
	}
	return requireRowsAffected(result)
}

func (r *ScheduleRepository) GetSchedule(ctx context.Context, id string) (persistence.Schedule, error) {
	var schedule persistence.Schedule
	err := r.helper.QueryRow(ctx, `
		SELECT id, session_id, room_id, topic_id, presenter_id
		FROM schedules WHERE id = ?`, id,
	).Scan(
		&schedule.ID,
		&schedule.SessionID,
		&schedule.RoomID,
		&schedule.TopicID,
		&schedule.PresenterID,
	)
	if err != nil {
		return persistence.Schedule{}, r.mapper.MapError(err)
	}
	return schedule, nil
}

// ListSchedules returns all schedules in id order.
func (r *ScheduleRepository) ListSchedules(ctx context.Context) ([]persistence.Schedule, error) {
	return r.querySchedules(ctx, `
		SELECT id, session_id, room_id, topic_id, presenter_id
		FROM schedules ORDER BY id ASC`)
}

// ListSchedulesByReference returns the schedules whose reference column for
// the given kind equals id, in id order.
func (r *ScheduleRepository) ListSchedulesByReference(ctx context.Context, ref persistence.ScheduleReference, id string) ([]persistence.Schedule, error) {
	column, err := referenceColumn(ref)
	if err != nil {
		return nil, err
	}

	query := `
		SELECT id, session_id, room_id, topic_id, presenter_id
		FROM schedules WHERE ` + column + ` = ? ORDER BY id ASC`
	return r.querySchedules(ctx, query, id)
}

func referenceColumn(ref persistence.ScheduleReference) (string, error) {
	switch ref {
	case persistence.ReferenceSession:
		return "session_id", nil
	case persistence.ReferenceRoom:
		return "room_id", nil
	case persistence.ReferenceTopic:
		return "topic_id", nil
	case persistence.ReferencePresenter:
		return "presenter_id", nil
	default:
		return "", fmt.Errorf("unknown schedule reference %q", ref)
	}
}

func (r *ScheduleRepository) querySchedules(ctx context.Context, query string, args ...any) ([]persistence.Schedule, error) {
	rows, err := r.helper.Query(ctx, query, args...)
	if err != nil {
		return nil, r.mapper.MapError(err)
	}
	defer rows.Close()

	var schedules []persistence.Schedule
	for rows.Next() {
		var schedule persistence.Schedule
		err := rows.Scan(
			&schedule.ID,
			&schedule.SessionID,
			&schedule.RoomID,
			&schedule.TopicID,
			&schedule.PresenterID,
		)
		if err != nil {
			return nil, r.mapper.MapError(err)
		}
		schedules = append(schedules, schedule)
	}
	if err := rows.Err(); err != nil {
		return nil, r.mapper.MapError(err)
	}
	return schedules, nil
}

func (r *ScheduleRepository) DeleteSchedule(ctx context.Context, id string) error {
	result, err := r.helper.Exec(ctx, `DELETE FROM schedules WHERE id = ?`, id)
	if err != nil {
		return r.mapper.MapError(err)
	}
	return requireRowsAffected(result)
}

func (r *ScheduleRepository) CountSchedules(ctx context.Context) (int, error) {
	return countRows(ctx, r.helper, r.mapper, "schedules")
}
