package testfixtures

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/example/event-registry/internal/application"
	"github.com/example/event-registry/internal/persistence"
	"github.com/example/event-registry/internal/persistence/memory"
)

// Harness bundles an in-memory store with fully wired services so tests can
// drive the catalog end to end without a database.
type Harness struct {
	Storage      *memory.Storage
	IDGenerator  *IDGenerator
	Clock        *Clock
	Logger       *slog.Logger
	HighSchools  *application.HighSchoolService
	Participants *application.ParticipantService
	Presenters   *application.PresenterService
	Rooms        *application.RoomService
	Sessions     *application.SessionService
	Topics       *application.TopicService
	Schedules    *application.ScheduleService
	Resolver     *application.Resolver
	Dashboard    *application.Dashboard
}

// HarnessOption configures a Harness instance.
type HarnessOption func(*harnessConfig)

type harnessConfig struct {
	strictCompose bool
}

// WithStrictCompose enables referent verification on schedule writes.
func WithStrictCompose() HarnessOption {
	return func(cfg *harnessConfig) {
		cfg.strictCompose = true
	}
}

// NewHarness wires every service over one shared in-memory store with a
// deterministic id sequence and clock.
func NewHarness(opts ...HarnessOption) *Harness {
	cfg := harnessConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}

	storage := memory.NewStorage()
	idGen := NewIDGenerator("id")
	clock := NewClock(time.Time{})
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	refs := application.ReferenceRepositories{
		Sessions:   storage,
		Rooms:      storage,
		Topics:     storage,
		Presenters: storage,
	}

	return &Harness{
		Storage:      storage,
		IDGenerator:  idGen,
		Clock:        clock,
		Logger:       logger,
		HighSchools:  application.NewHighSchoolService(storage, idGen.NextFunc(), logger),
		Participants: application.NewParticipantService(storage, storage, idGen.NextFunc(), clock.NowFunc(), logger),
		Presenters:   application.NewPresenterService(storage, idGen.NextFunc(), logger),
		Rooms:        application.NewRoomService(storage, idGen.NextFunc(), logger),
		Sessions:     application.NewSessionService(storage, idGen.NextFunc(), logger),
		Topics:       application.NewTopicService(storage, idGen.NextFunc(), logger),
		Schedules:    application.NewScheduleService(storage, refs, cfg.strictCompose, idGen.NextFunc(), logger),
		Resolver:     application.NewResolver(storage, refs, logger),
		Dashboard: application.NewDashboard(application.DashboardRepositories{
			HighSchools:  storage,
			Participants: storage,
			Presenters:   storage,
			Rooms:        storage,
			Sessions:     storage,
			Topics:       storage,
			Schedules:    storage,
		}, logger),
	}
}

// SeedSession stores a session with an explicit id.
func (h *Harness) SeedSession(t *testing.T, id, start, end string) persistence.Session {
	t.Helper()
	session := persistence.Session{ID: id, StartTime: start, EndTime: end}
	if err := h.Storage.CreateSession(context.Background(), session); err != nil {
		t.Fatalf("seed session %s: %v", id, err)
	}
	return session
}

// SeedRoom stores a room with an explicit id.
func (h *Harness) SeedRoom(t *testing.T, id string, number int) persistence.Room {
	t.Helper()
	room := persistence.Room{ID: id, RoomNumber: number, Building: "Main Hall", Capacity: 40}
	if err := h.Storage.CreateRoom(context.Background(), room); err != nil {
		t.Fatalf("seed room %s: %v", id, err)
	}
	return room
}

// SeedTopic stores a topic with an explicit id.
func (h *Harness) SeedTopic(t *testing.T, id, title string) persistence.Topic {
	t.Helper()
	topic := persistence.Topic{ID: id, Title: title, Description: "about " + title}
	if err := h.Storage.CreateTopic(context.Background(), topic); err != nil {
		t.Fatalf("seed topic %s: %v", id, err)
	}
	return topic
}

// SeedPresenter stores a presenter with an explicit id.
func (h *Harness) SeedPresenter(t *testing.T, id, lastName string) persistence.Presenter {
	t.Helper()
	presenter := persistence.Presenter{
		ID:         id,
		LastName:   lastName,
		FirstName:  "Alex",
		Occupation: "Engineer",
		MainPhone:  "5550100",
		Email:      fmt.Sprintf("%s@example.com", id),
	}
	if err := h.Storage.CreatePresenter(context.Background(), presenter); err != nil {
		t.Fatalf("seed presenter %s: %v", id, err)
	}
	return presenter
}

// SeedHighSchool stores a high school with an explicit id.
func (h *Harness) SeedHighSchool(t *testing.T, id, name string) persistence.HighSchool {
	t.Helper()
	school := persistence.HighSchool{ID: id, Name: name}
	if err := h.Storage.CreateHighSchool(context.Background(), school); err != nil {
		t.Fatalf("seed highschool %s: %v", id, err)
	}
	return school
}

// SeedSchedule stores a schedule with explicit reference ids, bypassing
// composition so tests can plant dangling references.
func (h *Harness) SeedSchedule(t *testing.T, id, sessionID, roomID, topicID, presenterID string) persistence.Schedule {
	t.Helper()
	schedule := persistence.Schedule{
		ID:          id,
		SessionID:   sessionID,
		RoomID:      roomID,
		TopicID:     topicID,
		PresenterID: presenterID,
	}
	if err := h.Storage.CreateSchedule(context.Background(), schedule); err != nil {
		t.Fatalf("seed schedule %s: %v", id, err)
	}
	return schedule
}
