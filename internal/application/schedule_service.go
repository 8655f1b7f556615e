package application

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/example/event-registry/internal/persistence"
)

// ScheduleService composes, updates and reads timetable entries. A schedule
// is built from four required reference ids; in legacy mode (the default)
// the ids are persisted verbatim without checking that the referenced
// records exist, reproducing the original system's write path. Strict mode
// verifies all four referents before the write.
type ScheduleService struct {
	schedules   persistence.ScheduleRepository
	refs        ReferenceRepositories
	strict      bool
	idGenerator func() string
	logger      *slog.Logger
}

// NewScheduleService wires dependencies for schedule operations.
func NewScheduleService(schedules persistence.ScheduleRepository, refs ReferenceRepositories, strict bool, idGenerator func() string, logger *slog.Logger) *ScheduleService {
	if idGenerator == nil {
		idGenerator = func() string { return "" }
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &ScheduleService{
		schedules:   schedules,
		refs:        refs,
		strict:      strict,
		idGenerator: idGenerator,
		logger:      logger,
	}
}

// Compose validates the four reference ids and persists a new schedule.
// Every failing field is reported; no write occurs on validation failure.
func (s *ScheduleService) Compose(ctx context.Context, input ScheduleInput) (persistence.Schedule, error) {
	schedule, vErr := s.buildSchedule(input)
	if vErr.HasErrors() {
		return persistence.Schedule{}, vErr
	}

	if s.strict {
		if err := s.ensureReferencesExist(ctx, schedule); err != nil {
			return persistence.Schedule{}, err
		}
	}

	schedule.ID = s.idGenerator()
	if err := s.schedules.CreateSchedule(ctx, schedule); err != nil {
		return persistence.Schedule{}, mapRepoError("create schedule", err)
	}

	s.logger.InfoContext(ctx, "schedule composed",
		"schedule_id", schedule.ID,
		"session_id", schedule.SessionID,
		"room_id", schedule.RoomID,
		"topic_id", schedule.TopicID,
		"presenter_id", schedule.PresenterID,
	)
	return schedule, nil
}

// Replace applies the same validation as Compose and replaces the stored
// record in place, preserving its id.
func (s *ScheduleService) Replace(ctx context.Context, id string, input ScheduleInput) (persistence.Schedule, error) {
	existing, err := s.schedules.GetSchedule(ctx, id)
	if err != nil {
		return persistence.Schedule{}, notFoundAs(KindSchedule, id, "get schedule", err)
	}

	schedule, vErr := s.buildSchedule(input)
	if vErr.HasErrors() {
		return persistence.Schedule{}, vErr
	}

	if s.strict {
		if err := s.ensureReferencesExist(ctx, schedule); err != nil {
			return persistence.Schedule{}, err
		}
	}

	schedule.ID = existing.ID
	if err := s.schedules.UpdateSchedule(ctx, schedule); err != nil {
		return persistence.Schedule{}, mapRepoError("update schedule", err)
	}
	return schedule, nil
}

// Get returns one schedule with all four references expanded.
func (s *ScheduleService) Get(ctx context.Context, id string) (EnrichedSchedule, error) {
	schedule, err := s.schedules.GetSchedule(ctx, id)
	if err != nil {
		return EnrichedSchedule{}, notFoundAs(KindSchedule, id, "get schedule", err)
	}

	enriched, err := enrichSchedules(ctx, s.refs, []persistence.Schedule{schedule})
	if err != nil {
		return EnrichedSchedule{}, err
	}
	return enriched[0], nil
}

// List returns every schedule with all four references expanded.
func (s *ScheduleService) List(ctx context.Context) ([]EnrichedSchedule, error) {
	schedules, err := s.schedules.ListSchedules(ctx)
	if err != nil {
		return nil, mapRepoError("list schedules", err)
	}
	return enrichSchedules(ctx, s.refs, schedules)
}

// Delete removes a schedule. Referenced entities are untouched.
func (s *ScheduleService) Delete(ctx context.Context, id string) error {
	if err := s.schedules.DeleteSchedule(ctx, id); err != nil {
		return notFoundAs(KindSchedule, id, "delete schedule", err)
	}
	return nil
}

// buildSchedule sanitizes and validates the four reference ids, collecting
// every failure into one ValidationError.
func (s *ScheduleService) buildSchedule(input ScheduleInput) (persistence.Schedule, *ValidationError) {
	vErr := &ValidationError{}
	schedule := persistence.Schedule{
		SessionID:   requireText(vErr, "session", input.SessionID, maxTextLen),
		RoomID:      requireText(vErr, "room", input.RoomID, maxTextLen),
		TopicID:     requireText(vErr, "topic", input.TopicID, maxTextLen),
		PresenterID: requireText(vErr, "presenter", input.PresenterID, maxTextLen),
	}
	return schedule, vErr
}

// ensureReferencesExist checks the four referents concurrently. Missing
// records become field errors; store failures abort the check.
func (s *ScheduleService) ensureReferencesExist(ctx context.Context, schedule persistence.Schedule) error {
	var mu sync.Mutex
	vErr := &ValidationError{}

	record := func(field string) {
		mu.Lock()
		defer mu.Unlock()
		vErr.add(field, field+" does not exist")
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		_, err := s.refs.Sessions.GetSession(gctx, schedule.SessionID)
		return checkReference(err, "session", "get session", record)
	})
	g.Go(func() error {
		_, err := s.refs.Rooms.GetRoom(gctx, schedule.RoomID)
		return checkReference(err, "room", "get room", record)
	})
	g.Go(func() error {
		_, err := s.refs.Topics.GetTopic(gctx, schedule.TopicID)
		return checkReference(err, "topic", "get topic", record)
	})
	g.Go(func() error {
		_, err := s.refs.Presenters.GetPresenter(gctx, schedule.PresenterID)
		return checkReference(err, "presenter", "get presenter", record)
	})
	if err := g.Wait(); err != nil {
		return err
	}

	if vErr.HasErrors() {
		return vErr
	}
	return nil
}

func checkReference(err error, field, op string, record func(field string)) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, persistence.ErrNotFound) {
		record(field)
		return nil
	}
	return &StoreError{Op: op, Err: err}
}
