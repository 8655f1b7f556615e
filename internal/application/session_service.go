package application

import (
	"context"
	"log/slog"

	"github.com/example/event-registry/internal/persistence"
)

// SessionService manages timetable sessions. Times are opaque clock tokens
// such as "08:00"; ordering and overlap are left to the operator.
type SessionService struct {
	sessions    persistence.SessionRepository
	idGenerator func() string
	logger      *slog.Logger
}

// NewSessionService wires dependencies for session operations.
func NewSessionService(sessions persistence.SessionRepository, idGenerator func() string, logger *slog.Logger) *SessionService {
	if idGenerator == nil {
		idGenerator = func() string { return "" }
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &SessionService{sessions: sessions, idGenerator: idGenerator, logger: logger}
}

func (s *SessionService) Create(ctx context.Context, input SessionInput) (persistence.Session, error) {
	session, vErr := buildSession(input)
	if vErr.HasErrors() {
		return persistence.Session{}, vErr
	}

	session.ID = s.idGenerator()
	if err := s.sessions.CreateSession(ctx, session); err != nil {
		return persistence.Session{}, mapRepoError("create session", err)
	}
	return session, nil
}

func (s *SessionService) Update(ctx context.Context, id string, input SessionInput) (persistence.Session, error) {
	existing, err := s.sessions.GetSession(ctx, id)
	if err != nil {
		return persistence.Session{}, notFoundAs(KindSession, id, "get session", err)
	}

	session, vErr := buildSession(input)
	if vErr.HasErrors() {
		return persistence.Session{}, vErr
	}

	session.ID = existing.ID
	if err := s.sessions.UpdateSession(ctx, session); err != nil {
		return persistence.Session{}, mapRepoError("update session", err)
	}
	return session, nil
}

func (s *SessionService) Get(ctx context.Context, id string) (persistence.Session, error) {
	session, err := s.sessions.GetSession(ctx, id)
	if err != nil {
		return persistence.Session{}, notFoundAs(KindSession, id, "get session", err)
	}
	return session, nil
}

func (s *SessionService) List(ctx context.Context) ([]persistence.Session, error) {
	sessions, err := s.sessions.ListSessions(ctx)
	if err != nil {
		return nil, mapRepoError("list sessions", err)
	}
	return sessions, nil
}

// Delete removes a session. Schedules referencing it keep their dangling id.
func (s *SessionService) Delete(ctx context.Context, id string) error {
	if err := s.sessions.DeleteSession(ctx, id); err != nil {
		return notFoundAs(KindSession, id, "delete session", err)
	}
	return nil
}

func buildSession(input SessionInput) (persistence.Session, *ValidationError) {
	vErr := &ValidationError{}
	session := persistence.Session{
		StartTime: requireText(vErr, "start_time", input.StartTime, maxTimeTokenLen),
		EndTime:   requireText(vErr, "end_time", input.EndTime, maxTimeTokenLen),
	}
	return session, vErr
}
