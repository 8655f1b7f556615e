package memory

import (
	"context"
	"errors"
	"testing"

	"github.com/example/event-registry/internal/persistence"
)

func TestStorage_SortsListings(t *testing.T) {
	storage := NewStorage()
	ctx := context.Background()

	schools := []persistence.HighSchool{
		{ID: "hs-2", Name: "Westside High"},
		{ID: "hs-1", Name: "Central High"},
	}
	for _, school := range schools {
		if err := storage.CreateHighSchool(ctx, school); err != nil {
			t.Fatal(err)
		}
	}

	listed, err := storage.ListHighSchools(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(listed) != 2 || listed[0].Name != "Central High" {
		t.Fatalf("expected name ordering, got %+v", listed)
	}

	rooms := []persistence.Room{
		{ID: "r-1", RoomNumber: 210, Building: "North", Capacity: 20},
		{ID: "r-2", RoomNumber: 105, Building: "North", Capacity: 20},
		{ID: "r-3", RoomNumber: 400, Building: "East", Capacity: 50},
	}
	for _, room := range rooms {
		if err := storage.CreateRoom(ctx, room); err != nil {
			t.Fatal(err)
		}
	}
	listedRooms, err := storage.ListRooms(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if listedRooms[0].RoomNumber != 105 || listedRooms[1].RoomNumber != 210 || listedRooms[2].RoomNumber != 400 {
		t.Fatalf("expected room number ordering, got %+v", listedRooms)
	}
}

func TestStorage_DuplicateAndMissing(t *testing.T) {
	storage := NewStorage()
	ctx := context.Background()

	topic := persistence.Topic{ID: "t-1", Title: "Robotics", Description: "d"}
	if err := storage.CreateTopic(ctx, topic); err != nil {
		t.Fatal(err)
	}
	if err := storage.CreateTopic(ctx, topic); !errors.Is(err, persistence.ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate, got %v", err)
	}

	if _, err := storage.GetTopic(ctx, "ghost"); !errors.Is(err, persistence.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := storage.DeleteTopic(ctx, "ghost"); !errors.Is(err, persistence.ErrNotFound) {
		t.Fatalf("expected ErrNotFound on delete, got %v", err)
	}
	if err := storage.UpdateTopic(ctx, persistence.Topic{ID: "ghost"}); !errors.Is(err, persistence.ErrNotFound) {
		t.Fatalf("expected ErrNotFound on update, got %v", err)
	}
}

func TestStorage_ListSchedulesByReference(t *testing.T) {
	storage := NewStorage()
	ctx := context.Background()

	schedules := []persistence.Schedule{
		{ID: "sch-1", SessionID: "s-1", RoomID: "r-1", TopicID: "t-1", PresenterID: "p-1"},
		{ID: "sch-2", SessionID: "s-2", RoomID: "r-1", TopicID: "t-2", PresenterID: "p-2"},
		{ID: "sch-3", SessionID: "s-1", RoomID: "r-2", TopicID: "t-1", PresenterID: "p-1"},
	}
	for _, schedule := range schedules {
		if err := storage.CreateSchedule(ctx, schedule); err != nil {
			t.Fatal(err)
		}
	}

	byRoom, err := storage.ListSchedulesByReference(ctx, persistence.ReferenceRoom, "r-1")
	if err != nil {
		t.Fatal(err)
	}
	if len(byRoom) != 2 {
		t.Fatalf("expected 2 schedules for room, got %d", len(byRoom))
	}

	byPresenter, err := storage.ListSchedulesByReference(ctx, persistence.ReferencePresenter, "p-1")
	if err != nil {
		t.Fatal(err)
	}
	if len(byPresenter) != 2 {
		t.Fatalf("expected 2 schedules for presenter, got %d", len(byPresenter))
	}

	none, err := storage.ListSchedulesByReference(ctx, persistence.ReferenceTopic, "ghost")
	if err != nil {
		t.Fatal(err)
	}
	if len(none) != 0 {
		t.Fatalf("expected no matches, got %d", len(none))
	}
}

func TestStorage_ListByIDs(t *testing.T) {
	storage := NewStorage()
	ctx := context.Background()

	for _, session := range []persistence.Session{
		{ID: "s-1", StartTime: "08:00", EndTime: "09:00"},
		{ID: "s-2", StartTime: "09:00", EndTime: "10:00"},
	} {
		if err := storage.CreateSession(ctx, session); err != nil {
			t.Fatal(err)
		}
	}

	found, err := storage.ListSessionsByIDs(ctx, []string{"s-2", "ghost"})
	if err != nil {
		t.Fatal(err)
	}
	if len(found) != 1 || found[0].ID != "s-2" {
		t.Fatalf("expected only existing ids returned, got %+v", found)
	}

	empty, err := storage.ListSessionsByIDs(ctx, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(empty) != 0 {
		t.Fatalf("expected empty result for no ids, got %+v", empty)
	}
}

func TestStorage_DeleteDoesNotCascade(t *testing.T) {
	storage := NewStorage()
	ctx := context.Background()

	if err := storage.CreateRoom(ctx, persistence.Room{ID: "r-1", RoomNumber: 101, Building: "North", Capacity: 30}); err != nil {
		t.Fatal(err)
	}
	if err := storage.CreateSchedule(ctx, persistence.Schedule{ID: "sch-1", SessionID: "s-1", RoomID: "r-1", TopicID: "t-1", PresenterID: "p-1"}); err != nil {
		t.Fatal(err)
	}

	if err := storage.DeleteRoom(ctx, "r-1"); err != nil {
		t.Fatal(err)
	}
	stored, err := storage.GetSchedule(ctx, "sch-1")
	if err != nil {
		t.Fatalf("schedule should survive room deletion: %v", err)
	}
	if stored.RoomID != "r-1" {
		t.Fatalf("dangling room id should stay stored, got %q", stored.RoomID)
	}
}
