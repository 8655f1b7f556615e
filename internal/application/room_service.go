package application

import (
	"context"
	"log/slog"

	"github.com/example/event-registry/internal/persistence"
)

// RoomService manages venue rooms.
type RoomService struct {
	rooms       persistence.RoomRepository
	idGenerator func() string
	logger      *slog.Logger
}

// NewRoomService wires dependencies for room operations.
func NewRoomService(rooms persistence.RoomRepository, idGenerator func() string, logger *slog.Logger) *RoomService {
	if idGenerator == nil {
		idGenerator = func() string { return "" }
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &RoomService{rooms: rooms, idGenerator: idGenerator, logger: logger}
}

func (s *RoomService) Create(ctx context.Context, input RoomInput) (persistence.Room, error) {
	room, vErr := buildRoom(input)
	if vErr.HasErrors() {
		return persistence.Room{}, vErr
	}

	room.ID = s.idGenerator()
	if err := s.rooms.CreateRoom(ctx, room); err != nil {
		return persistence.Room{}, mapRepoError("create room", err)
	}
	return room, nil
}

func (s *RoomService) Update(ctx context.Context, id string, input RoomInput) (persistence.Room, error) {
	existing, err := s.rooms.GetRoom(ctx, id)
	if err != nil {
		return persistence.Room{}, notFoundAs(KindRoom, id, "get room", err)
	}

	room, vErr := buildRoom(input)
	if vErr.HasErrors() {
		return persistence.Room{}, vErr
	}

	room.ID = existing.ID
	if err := s.rooms.UpdateRoom(ctx, room); err != nil {
		return persistence.Room{}, mapRepoError("update room", err)
	}
	return room, nil
}

func (s *RoomService) Get(ctx context.Context, id string) (persistence.Room, error) {
	room, err := s.rooms.GetRoom(ctx, id)
	if err != nil {
		return persistence.Room{}, notFoundAs(KindRoom, id, "get room", err)
	}
	return room, nil
}

func (s *RoomService) List(ctx context.Context) ([]persistence.Room, error) {
	rooms, err := s.rooms.ListRooms(ctx)
	if err != nil {
		return nil, mapRepoError("list rooms", err)
	}
	return rooms, nil
}

// Delete removes a room. Schedules referencing it keep their dangling id.
func (s *RoomService) Delete(ctx context.Context, id string) error {
	if err := s.rooms.DeleteRoom(ctx, id); err != nil {
		return notFoundAs(KindRoom, id, "delete room", err)
	}
	return nil
}

func buildRoom(input RoomInput) (persistence.Room, *ValidationError) {
	vErr := &ValidationError{}
	requirePositive(vErr, "room_number", input.RoomNumber)
	requirePositive(vErr, "capacity", input.Capacity)
	room := persistence.Room{
		RoomNumber: input.RoomNumber,
		Building:   requireText(vErr, "building", input.Building, maxTextLen),
		Capacity:   input.Capacity,
	}
	return room, vErr
}
