package application

import (
	"context"
	"errors"
	"testing"

	"github.com/example/event-registry/internal/persistence"
	"github.com/example/event-registry/internal/persistence/memory"
)

func newResolverFixture(t *testing.T) (*Resolver, *memory.Storage) {
	t.Helper()
	storage := memory.NewStorage()
	refs := ReferenceRepositories{
		Sessions:   storage,
		Rooms:      storage,
		Topics:     storage,
		Presenters: storage,
	}
	return NewResolver(storage, refs, discardLogger()), storage
}

func seedCatalog(t *testing.T, storage *memory.Storage) {
	t.Helper()
	ctx := context.Background()

	sessions := []persistence.Session{
		{ID: "sess-1", StartTime: "08:00", EndTime: "09:00"},
		{ID: "sess-2", StartTime: "09:00", EndTime: "10:00"},
	}
	for _, session := range sessions {
		if err := storage.CreateSession(ctx, session); err != nil {
			t.Fatal(err)
		}
	}

	rooms := []persistence.Room{
		{ID: "room-1", RoomNumber: 101, Building: "North", Capacity: 30},
		{ID: "room-2", RoomNumber: 202, Building: "South", Capacity: 60},
	}
	for _, room := range rooms {
		if err := storage.CreateRoom(ctx, room); err != nil {
			t.Fatal(err)
		}
	}

	topics := []persistence.Topic{
		{ID: "topic-1", Title: "Robotics", Description: "intro"},
		{ID: "topic-2", Title: "Chemistry", Description: "labs"},
	}
	for _, topic := range topics {
		if err := storage.CreateTopic(ctx, topic); err != nil {
			t.Fatal(err)
		}
	}

	presenters := []persistence.Presenter{
		{ID: "pres-1", LastName: "Rivera", FirstName: "Sam", Occupation: "Engineer", MainPhone: "5550100", Email: "sam@example.com"},
		{ID: "pres-2", LastName: "Chen", FirstName: "Li", Occupation: "Chemist", MainPhone: "5550101", Email: "li@example.com"},
	}
	for _, presenter := range presenters {
		if err := storage.CreatePresenter(ctx, presenter); err != nil {
			t.Fatal(err)
		}
	}

	schedules := []persistence.Schedule{
		{ID: "sched-1", SessionID: "sess-1", RoomID: "room-1", TopicID: "topic-1", PresenterID: "pres-1"},
		{ID: "sched-2", SessionID: "sess-2", RoomID: "room-2", TopicID: "topic-1", PresenterID: "pres-2"},
		{ID: "sched-3", SessionID: "sess-1", RoomID: "room-2", TopicID: "topic-2", PresenterID: "pres-2"},
	}
	for _, schedule := range schedules {
		if err := storage.CreateSchedule(ctx, schedule); err != nil {
			t.Fatal(err)
		}
	}
}

func TestResolver_Detail(t *testing.T) {
	t.Run("returns exactly the schedules touching the topic", func(t *testing.T) {
		resolver, storage := newResolverFixture(t)
		seedCatalog(t, storage)

		result, err := resolver.Detail(context.Background(), KindTopic, "topic-1")
		if err != nil {
			t.Fatalf("detail failed: %v", err)
		}
		if result.Topic == nil || result.Topic.Title != "Robotics" {
			t.Fatalf("expected primary topic, got %+v", result.Topic)
		}
		if len(result.Schedules) != 2 {
			t.Fatalf("expected 2 schedules, got %d", len(result.Schedules))
		}
		seen := map[string]bool{}
		for _, entry := range result.Schedules {
			seen[entry.ID] = true
		}
		if !seen["sched-1"] || !seen["sched-2"] {
			t.Fatalf("unexpected schedule set: %v", seen)
		}
	})

	t.Run("expands all four references inline", func(t *testing.T) {
		resolver, storage := newResolverFixture(t)
		seedCatalog(t, storage)

		result, err := resolver.Detail(context.Background(), KindRoom, "room-1")
		if err != nil {
			t.Fatalf("detail failed: %v", err)
		}
		if len(result.Schedules) != 1 {
			t.Fatalf("expected 1 schedule, got %d", len(result.Schedules))
		}
		entry := result.Schedules[0]
		if entry.Session == nil || SessionTimeRange(*entry.Session) != "08:00 - 09:00" {
			t.Fatalf("expected expanded session, got %+v", entry.Session)
		}
		if entry.Presenter == nil || PersonName(entry.Presenter.LastName, entry.Presenter.FirstName) != "Rivera, Sam" {
			t.Fatalf("expected expanded presenter, got %+v", entry.Presenter)
		}
		if entry.Topic == nil || entry.Room == nil {
			t.Fatalf("expected topic and room expanded, got %+v", entry)
		}
	})

	t.Run("dangling reference resolves to nil without error", func(t *testing.T) {
		resolver, storage := newResolverFixture(t)
		seedCatalog(t, storage)
		if err := storage.DeleteRoom(context.Background(), "room-2"); err != nil {
			t.Fatal(err)
		}

		result, err := resolver.Detail(context.Background(), KindSession, "sess-2")
		if err != nil {
			t.Fatalf("detail failed: %v", err)
		}
		if len(result.Schedules) != 1 {
			t.Fatalf("expected 1 schedule, got %d", len(result.Schedules))
		}
		entry := result.Schedules[0]
		if entry.Room != nil {
			t.Fatalf("expected nil room for dangling reference, got %+v", entry.Room)
		}
		if entry.Presenter == nil || entry.Topic == nil || entry.Session == nil {
			t.Fatalf("intact references should stay expanded: %+v", entry)
		}
	})

	t.Run("absent primary yields NotFoundError", func(t *testing.T) {
		resolver, storage := newResolverFixture(t)
		seedCatalog(t, storage)

		_, err := resolver.Detail(context.Background(), KindPresenter, "ghost")
		var nfErr *NotFoundError
		if !errors.As(err, &nfErr) {
			t.Fatalf("expected NotFoundError, got %v", err)
		}
		if nfErr.Kind != KindPresenter || nfErr.ID != "ghost" {
			t.Fatalf("unexpected error detail: %+v", nfErr)
		}
	})

	t.Run("no matching schedules yields empty set", func(t *testing.T) {
		resolver, storage := newResolverFixture(t)
		if err := storage.CreateTopic(context.Background(), persistence.Topic{ID: "topic-solo", Title: "Solo", Description: "none"}); err != nil {
			t.Fatal(err)
		}

		result, err := resolver.Detail(context.Background(), KindTopic, "topic-solo")
		if err != nil {
			t.Fatalf("detail failed: %v", err)
		}
		if len(result.Schedules) != 0 {
			t.Fatalf("expected no schedules, got %d", len(result.Schedules))
		}
	})

	t.Run("rejects kinds outside the schedule references", func(t *testing.T) {
		resolver, _ := newResolverFixture(t)
		if _, err := resolver.Detail(context.Background(), KindHighSchool, "hs-1"); err == nil {
			t.Fatal("expected error for non-referenced kind")
		}
	})
}
