package application

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/example/event-registry/internal/persistence"
)

// Resolver reconstructs the schedule entries touching a single resource.
// Given a session, room, topic or presenter id it returns that entity plus
// every schedule referencing it, each with its references expanded inline.
type Resolver struct {
	schedules persistence.ScheduleRepository
	refs      ReferenceRepositories
	logger    *slog.Logger
}

// NewResolver wires dependencies for cross-reference resolution.
func NewResolver(schedules persistence.ScheduleRepository, refs ReferenceRepositories, logger *slog.Logger) *Resolver {
	if logger == nil {
		logger = slog.Default()
	}
	return &Resolver{schedules: schedules, refs: refs, logger: logger}
}

// Detail fetches the primary entity and its matching schedules concurrently,
// then enriches the matches. An absent primary fails with NotFoundError; an
// absent reference inside a matched schedule resolves to nil instead of
// aborting the operation.
func (r *Resolver) Detail(ctx context.Context, kind EntityKind, id string) (DetailResult, error) {
	ref, err := scheduleReference(kind)
	if err != nil {
		return DetailResult{}, err
	}

	result := DetailResult{Kind: kind}
	var matched []persistence.Schedule

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return r.fetchPrimary(gctx, kind, id, &result)
	})
	g.Go(func() error {
		schedules, err := r.schedules.ListSchedulesByReference(gctx, ref, id)
		if err != nil {
			return mapRepoError("list schedules by "+string(kind), err)
		}
		matched = schedules
		return nil
	})
	if err := g.Wait(); err != nil {
		return DetailResult{}, err
	}

	enriched, err := enrichSchedules(ctx, r.refs, matched)
	if err != nil {
		return DetailResult{}, err
	}
	result.Schedules = enriched

	r.logger.DebugContext(ctx, "cross-reference resolved",
		"kind", string(kind), "id", id, "schedules", len(enriched))
	return result, nil
}

func (r *Resolver) fetchPrimary(ctx context.Context, kind EntityKind, id string, result *DetailResult) error {
	switch kind {
	case KindSession:
		session, err := r.refs.Sessions.GetSession(ctx, id)
		if err != nil {
			return notFoundAs(kind, id, "get session", err)
		}
		result.Session = &session
	case KindRoom:
		room, err := r.refs.Rooms.GetRoom(ctx, id)
		if err != nil {
			return notFoundAs(kind, id, "get room", err)
		}
		result.Room = &room
	case KindTopic:
		topic, err := r.refs.Topics.GetTopic(ctx, id)
		if err != nil {
			return notFoundAs(kind, id, "get topic", err)
		}
		result.Topic = &topic
	case KindPresenter:
		presenter, err := r.refs.Presenters.GetPresenter(ctx, id)
		if err != nil {
			return notFoundAs(kind, id, "get presenter", err)
		}
		result.Presenter = &presenter
	default:
		return fmt.Errorf("kind %q does not participate in schedules", kind)
	}
	return nil
}

// scheduleReference maps an entity kind to the schedule column it occupies.
func scheduleReference(kind EntityKind) (persistence.ScheduleReference, error) {
	switch kind {
	case KindSession:
		return persistence.ReferenceSession, nil
	case KindRoom:
		return persistence.ReferenceRoom, nil
	case KindTopic:
		return persistence.ReferenceTopic, nil
	case KindPresenter:
		return persistence.ReferencePresenter, nil
	default:
		return "", fmt.Errorf("kind %q does not participate in schedules", kind)
	}
}

// enrichSchedules expands schedule references via batched id-keyed lookups:
// one query per referenced collection instead of one per schedule field.
// The four batches run concurrently and join before assembly; ids whose
// records have been deleted yield nil references.
func enrichSchedules(ctx context.Context, refs ReferenceRepositories, schedules []persistence.Schedule) ([]EnrichedSchedule, error) {
	if len(schedules) == 0 {
		return nil, nil
	}

	sessionIDs := make([]string, 0, len(schedules))
	roomIDs := make([]string, 0, len(schedules))
	topicIDs := make([]string, 0, len(schedules))
	presenterIDs := make([]string, 0, len(schedules))
	for _, schedule := range schedules {
		sessionIDs = append(sessionIDs, schedule.SessionID)
		roomIDs = append(roomIDs, schedule.RoomID)
		topicIDs = append(topicIDs, schedule.TopicID)
		presenterIDs = append(presenterIDs, schedule.PresenterID)
	}

	var (
		sessions   map[string]persistence.Session
		rooms      map[string]persistence.Room
		topics     map[string]persistence.Topic
		presenters map[string]persistence.Presenter
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		found, err := refs.Sessions.ListSessionsByIDs(gctx, uniqueStrings(sessionIDs))
		if err != nil {
			return mapRepoError("list sessions by ids", err)
		}
		sessions = make(map[string]persistence.Session, len(found))
		for _, session := range found {
			sessions[session.ID] = session
		}
		return nil
	})
	g.Go(func() error {
		found, err := refs.Rooms.ListRoomsByIDs(gctx, uniqueStrings(roomIDs))
		if err != nil {
			return mapRepoError("list rooms by ids", err)
		}
		rooms = make(map[string]persistence.Room, len(found))
		for _, room := range found {
			rooms[room.ID] = room
		}
		return nil
	})
	g.Go(func() error {
		found, err := refs.Topics.ListTopicsByIDs(gctx, uniqueStrings(topicIDs))
		if err != nil {
			return mapRepoError("list topics by ids", err)
		}
		topics = make(map[string]persistence.Topic, len(found))
		for _, topic := range found {
			topics[topic.ID] = topic
		}
		return nil
	})
	g.Go(func() error {
		found, err := refs.Presenters.ListPresentersByIDs(gctx, uniqueStrings(presenterIDs))
		if err != nil {
			return mapRepoError("list presenters by ids", err)
		}
		presenters = make(map[string]persistence.Presenter, len(found))
		for _, presenter := range found {
			presenters[presenter.ID] = presenter
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	enriched := make([]EnrichedSchedule, 0, len(schedules))
	for _, schedule := range schedules {
		entry := EnrichedSchedule{ID: schedule.ID}
		if session, ok := sessions[schedule.SessionID]; ok {
			entry.Session = &session
		}
		if room, ok := rooms[schedule.RoomID]; ok {
			entry.Room = &room
		}
		if topic, ok := topics[schedule.TopicID]; ok {
			entry.Topic = &topic
		}
		if presenter, ok := presenters[schedule.PresenterID]; ok {
			entry.Presenter = &presenter
		}
		enriched = append(enriched, entry)
	}
	return enriched, nil
}

func uniqueStrings(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	result := make([]string, 0, len(values))
	for _, value := range values {
		if value == "" {
			continue
		}
		if _, ok := seen[value]; ok {
			continue
		}
		seen[value] = struct{}{}
		result = append(result, value)
	}
	return result
}
