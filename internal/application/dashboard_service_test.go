package application

import (
	"context"
	"errors"
	"testing"

	"github.com/example/event-registry/internal/persistence"
	"github.com/example/event-registry/internal/persistence/memory"
)

// failingRoomCounter wraps the shared store and breaks only the room count.
type failingRoomCounter struct {
	persistence.RoomRepository
}

func (f failingRoomCounter) CountRooms(ctx context.Context) (int, error) {
	return 0, errors.New("room table unavailable")
}

func newDashboardFixture(storage *memory.Storage) DashboardRepositories {
	return DashboardRepositories{
		HighSchools:  storage,
		Participants: storage,
		Presenters:   storage,
		Rooms:        storage,
		Sessions:     storage,
		Topics:       storage,
		Schedules:    storage,
	}
}

func TestDashboard_Summary(t *testing.T) {
	t.Run("counts every collection", func(t *testing.T) {
		storage := memory.NewStorage()
		ctx := context.Background()
		for _, id := range []string{"t-1", "t-2", "t-3"} {
			if err := storage.CreateTopic(ctx, persistence.Topic{ID: id, Title: "Topic " + id, Description: "d"}); err != nil {
				t.Fatal(err)
			}
		}
		for _, id := range []string{"s-1", "s-2"} {
			if err := storage.CreateSession(ctx, persistence.Session{ID: id, StartTime: "08:00", EndTime: "09:00"}); err != nil {
				t.Fatal(err)
			}
		}
		if err := storage.CreateSchedule(ctx, persistence.Schedule{ID: "sch-1", SessionID: "s-1", RoomID: "r", TopicID: "t-1", PresenterID: "p"}); err != nil {
			t.Fatal(err)
		}

		dashboard := NewDashboard(newDashboardFixture(storage), discardLogger())
		summary, err := dashboard.Summary(ctx)
		if err != nil {
			t.Fatalf("summary failed: %v", err)
		}
		if summary.Topics != 3 || summary.Sessions != 2 || summary.Schedules != 1 {
			t.Fatalf("unexpected counts: %+v", summary)
		}
		if summary.Rooms != 0 || summary.Participants != 0 {
			t.Fatalf("empty collections should count zero: %+v", summary)
		}
	})

	t.Run("partial failure keeps successful counts", func(t *testing.T) {
		storage := memory.NewStorage()
		ctx := context.Background()
		if err := storage.CreateTopic(ctx, persistence.Topic{ID: "t-1", Title: "Topic", Description: "d"}); err != nil {
			t.Fatal(err)
		}

		repos := newDashboardFixture(storage)
		repos.Rooms = failingRoomCounter{RoomRepository: storage}

		dashboard := NewDashboard(repos, discardLogger())
		summary, err := dashboard.Summary(ctx)
		if err == nil {
			t.Fatal("expected joined error for failed count")
		}
		var storeErr *StoreError
		if !errors.As(err, &storeErr) {
			t.Fatalf("expected StoreError in chain, got %v", err)
		}
		if summary.Topics != 1 {
			t.Fatalf("successful counts should survive: %+v", summary)
		}
		if summary.Rooms != 0 {
			t.Fatalf("failed count should stay zero: %+v", summary)
		}
	})
}
