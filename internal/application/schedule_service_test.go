package application

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"testing"

	"github.com/example/event-registry/internal/persistence"
	"github.com/example/event-registry/internal/persistence/memory"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func sequentialIDs(prefix string) func() string {
	counter := 0
	return func() string {
		counter++
		return fmt.Sprintf("%s-%d", prefix, counter)
	}
}

func newScheduleFixture(t *testing.T, strict bool) (*ScheduleService, *memory.Storage) {
	t.Helper()
	storage := memory.NewStorage()
	refs := ReferenceRepositories{
		Sessions:   storage,
		Rooms:      storage,
		Topics:     storage,
		Presenters: storage,
	}
	service := NewScheduleService(storage, refs, strict, sequentialIDs("sched"), discardLogger())
	return service, storage
}

func seedReferences(t *testing.T, storage *memory.Storage) {
	t.Helper()
	ctx := context.Background()
	if err := storage.CreateSession(ctx, persistence.Session{ID: "sess-1", StartTime: "08:00", EndTime: "09:00"}); err != nil {
		t.Fatal(err)
	}
	if err := storage.CreateRoom(ctx, persistence.Room{ID: "room-1", RoomNumber: 101, Building: "North", Capacity: 30}); err != nil {
		t.Fatal(err)
	}
	if err := storage.CreateTopic(ctx, persistence.Topic{ID: "topic-1", Title: "Robotics", Description: "intro"}); err != nil {
		t.Fatal(err)
	}
	if err := storage.CreatePresenter(ctx, persistence.Presenter{ID: "pres-1", LastName: "Rivera", FirstName: "Sam", Occupation: "Engineer", MainPhone: "5550100", Email: "sam@example.com"}); err != nil {
		t.Fatal(err)
	}
}

func TestScheduleService_Compose(t *testing.T) {
	t.Run("reports every missing field and writes nothing", func(t *testing.T) {
		service, storage := newScheduleFixture(t, false)

		_, err := service.Compose(context.Background(), ScheduleInput{})
		var vErr *ValidationError
		if !errors.As(err, &vErr) {
			t.Fatalf("expected ValidationError, got %v", err)
		}
		for _, field := range []string{"session", "room", "topic", "presenter"} {
			if _, ok := vErr.FieldErrors[field]; !ok {
				t.Errorf("expected field error for %q, got %v", field, vErr.FieldErrors)
			}
		}

		count, err := storage.CountSchedules(context.Background())
		if err != nil {
			t.Fatal(err)
		}
		if count != 0 {
			t.Fatalf("expected no schedules written, got %d", count)
		}
	})

	t.Run("legacy mode persists unverified reference ids", func(t *testing.T) {
		service, storage := newScheduleFixture(t, false)

		schedule, err := service.Compose(context.Background(), ScheduleInput{
			SessionID:   "ghost-session",
			RoomID:      "ghost-room",
			TopicID:     "ghost-topic",
			PresenterID: "ghost-presenter",
		})
		if err != nil {
			t.Fatalf("compose failed: %v", err)
		}
		if schedule.ID == "" {
			t.Fatal("expected generated id")
		}

		stored, err := storage.GetSchedule(context.Background(), schedule.ID)
		if err != nil {
			t.Fatalf("stored schedule missing: %v", err)
		}
		if stored.SessionID != "ghost-session" {
			t.Fatalf("expected dangling session id stored, got %q", stored.SessionID)
		}
	})

	t.Run("strict mode names each absent referent", func(t *testing.T) {
		service, storage := newScheduleFixture(t, true)
		seedReferences(t, storage)

		_, err := service.Compose(context.Background(), ScheduleInput{
			SessionID:   "sess-1",
			RoomID:      "missing-room",
			TopicID:     "topic-1",
			PresenterID: "missing-presenter",
		})
		var vErr *ValidationError
		if !errors.As(err, &vErr) {
			t.Fatalf("expected ValidationError, got %v", err)
		}
		if _, ok := vErr.FieldErrors["room"]; !ok {
			t.Errorf("expected room error, got %v", vErr.FieldErrors)
		}
		if _, ok := vErr.FieldErrors["presenter"]; !ok {
			t.Errorf("expected presenter error, got %v", vErr.FieldErrors)
		}
		if _, ok := vErr.FieldErrors["session"]; ok {
			t.Errorf("session exists, should not error: %v", vErr.FieldErrors)
		}

		count, err := storage.CountSchedules(context.Background())
		if err != nil {
			t.Fatal(err)
		}
		if count != 0 {
			t.Fatalf("expected no schedules written, got %d", count)
		}
	})

	t.Run("strict mode accepts existing referents", func(t *testing.T) {
		service, storage := newScheduleFixture(t, true)
		seedReferences(t, storage)

		schedule, err := service.Compose(context.Background(), ScheduleInput{
			SessionID:   "sess-1",
			RoomID:      "room-1",
			TopicID:     "topic-1",
			PresenterID: "pres-1",
		})
		if err != nil {
			t.Fatalf("compose failed: %v", err)
		}
		if _, err := storage.GetSchedule(context.Background(), schedule.ID); err != nil {
			t.Fatalf("stored schedule missing: %v", err)
		}
	})

	t.Run("sanitizes markup in reference ids", func(t *testing.T) {
		service, storage := newScheduleFixture(t, false)

		schedule, err := service.Compose(context.Background(), ScheduleInput{
			SessionID:   "  <sess>  ",
			RoomID:      "room-1",
			TopicID:     "topic-1",
			PresenterID: "pres-1",
		})
		if err != nil {
			t.Fatalf("compose failed: %v", err)
		}
		stored, err := storage.GetSchedule(context.Background(), schedule.ID)
		if err != nil {
			t.Fatal(err)
		}
		if stored.SessionID != "&lt;sess&gt;" {
			t.Fatalf("expected escaped session id, got %q", stored.SessionID)
		}
	})
}

func TestScheduleService_Replace(t *testing.T) {
	t.Run("preserves the stored id", func(t *testing.T) {
		service, storage := newScheduleFixture(t, false)
		if err := storage.CreateSchedule(context.Background(), persistence.Schedule{
			ID: "sched-fixed", SessionID: "a", RoomID: "b", TopicID: "c", PresenterID: "d",
		}); err != nil {
			t.Fatal(err)
		}

		updated, err := service.Replace(context.Background(), "sched-fixed", ScheduleInput{
			SessionID:   "a2",
			RoomID:      "b2",
			TopicID:     "c2",
			PresenterID: "d2",
		})
		if err != nil {
			t.Fatalf("replace failed: %v", err)
		}
		if updated.ID != "sched-fixed" {
			t.Fatalf("expected id preserved, got %q", updated.ID)
		}
		stored, err := storage.GetSchedule(context.Background(), "sched-fixed")
		if err != nil {
			t.Fatal(err)
		}
		if stored.RoomID != "b2" {
			t.Fatalf("expected replaced room id, got %q", stored.RoomID)
		}
	})

	t.Run("missing schedule yields NotFoundError", func(t *testing.T) {
		service, _ := newScheduleFixture(t, false)

		_, err := service.Replace(context.Background(), "absent", ScheduleInput{
			SessionID: "a", RoomID: "b", TopicID: "c", PresenterID: "d",
		})
		var nfErr *NotFoundError
		if !errors.As(err, &nfErr) {
			t.Fatalf("expected NotFoundError, got %v", err)
		}
		if nfErr.Kind != KindSchedule || nfErr.ID != "absent" {
			t.Fatalf("unexpected error detail: %+v", nfErr)
		}
	})
}

func TestScheduleService_Delete(t *testing.T) {
	service, storage := newScheduleFixture(t, false)
	seedReferences(t, storage)
	if err := storage.CreateSchedule(context.Background(), persistence.Schedule{
		ID: "sched-1", SessionID: "sess-1", RoomID: "room-1", TopicID: "topic-1", PresenterID: "pres-1",
	}); err != nil {
		t.Fatal(err)
	}

	if err := service.Delete(context.Background(), "sched-1"); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if _, err := storage.GetSession(context.Background(), "sess-1"); err != nil {
		t.Fatalf("referenced session should be untouched: %v", err)
	}
	if err := service.Delete(context.Background(), "sched-1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound on second delete, got %v", err)
	}
}
