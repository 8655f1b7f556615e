package application

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/example/event-registry/internal/persistence"
)

// DashboardRepositories bundles every collection the summary counts.
type DashboardRepositories struct {
	HighSchools  persistence.HighSchoolRepository
	Participants persistence.ParticipantRepository
	Presenters   persistence.PresenterRepository
	Rooms        persistence.RoomRepository
	Sessions     persistence.SessionRepository
	Topics       persistence.TopicRepository
	Schedules    persistence.ScheduleRepository
}

// Dashboard computes per-collection record counts for the summary view.
type Dashboard struct {
	repos  DashboardRepositories
	logger *slog.Logger
}

// NewDashboard wires dependencies for the dashboard summary.
func NewDashboard(repos DashboardRepositories, logger *slog.Logger) *Dashboard {
	if logger == nil {
		logger = slog.Default()
	}
	return &Dashboard{repos: repos, logger: logger}
}

// Summary issues the seven count queries concurrently with per-branch error
// capture. Counts that succeeded are always returned; failures are joined
// into the returned error rather than discarding the whole summary, so
// callers decide whether a partial result is acceptable.
func (d *Dashboard) Summary(ctx context.Context) (Summary, error) {
	var (
		summary Summary
		wg      sync.WaitGroup
		mu      sync.Mutex
		errs    []error
	)

	count := func(name string, dst *int, fn func(context.Context) (int, error)) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			n, err := fn(ctx)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				errs = append(errs, &StoreError{Op: "count " + name, Err: err})
				return
			}
			*dst = n
		}()
	}

	count("participants", &summary.Participants, d.repos.Participants.CountParticipants)
	count("presenters", &summary.Presenters, d.repos.Presenters.CountPresenters)
	count("sessions", &summary.Sessions, d.repos.Sessions.CountSessions)
	count("topics", &summary.Topics, d.repos.Topics.CountTopics)
	count("rooms", &summary.Rooms, d.repos.Rooms.CountRooms)
	count("highschools", &summary.HighSchools, d.repos.HighSchools.CountHighSchools)
	count("schedules", &summary.Schedules, d.repos.Schedules.CountSchedules)
	wg.Wait()

	err := errors.Join(errs...)
	if err != nil {
		d.logger.WarnContext(ctx, "dashboard summary partially failed",
			"failed_counts", len(errs))
	}
	return summary, err
}
