package sqlite

import (
	"context"

	"github.com/example/event-registry/internal/persistence"
)

// SessionRepository implements persistence.SessionRepository over SQL.
type SessionRepository struct {
	pool   *ConnectionPool
	helper *QueryHelper
	mapper *ErrorMapper
}

// NewSessionRepository creates a SQL-backed session repository.
func NewSessionRepository(pool *ConnectionPool) *SessionRepository {
	return &SessionRepository{
		pool:   pool,
		helper: NewQueryHelper(pool),
		mapper: NewErrorMapper(),
	}
}

func (r *SessionRepository) CreateSession(ctx context.Context, session persistence.Session) error {
	if session.ID == "" {
		return persistence.ErrConstraintViolation
	}

	_, err := r.helper.Exec(ctx,
		`INSERT INTO sessions (id, start_time, end_time) VALUES (?, ?, ?)`,
		session.ID, session.StartTime, session.EndTime,
	)
	return r.mapper.MapError(err)
}

func (r *SessionRepository) UpdateSession(ctx context.Context, session persistence.Session) error {
	result, err := r.helper.Exec(ctx,
		`UPDATE sessions SET start_time = ?, end_time = ? WHERE id = ?`,
		session.StartTime, session.EndTime, session.ID,
	)
	if err != nil {
		return r.mapper.MapError(err)
	}
	return requireRowsAffected(result)
}

func (r *SessionRepository) GetSession(ctx context.Context, id string) (persistence.Session, error) {
	var session persistence.Session
	err := r.helper.QueryRow(ctx,
		`SELECT id, start_time, end_time FROM sessions WHERE id = ?`, id,
	).Scan(&session.ID, &session.StartTime, &session.EndTime)
	if err != nil {
		return persistence.Session{}, r.mapper.MapError(err)
	}
	return session, nil
}

// ListSessions returns all sessions ordered by start time.
func (r *SessionRepository) ListSessions(ctx context.Context) ([]persistence.Session, error) {
	return r.querySessions(ctx,
		`SELECT id, start_time, end_time FROM sessions ORDER BY start_time ASC, id ASC`)
}

// ListSessionsByIDs returns the sessions whose ids are in the given set.
// Missing ids are silently absent from the result.
func (r *SessionRepository) ListSessionsByIDs(ctx context.Context, ids []string) ([]persistence.Session, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	query := `SELECT id, start_time, end_time FROM sessions
		WHERE id IN (` + inPlaceholders(len(ids)) + `)`
	return r.querySessions(ctx, query, toAnySlice(ids)...)
}

func (r *SessionRepository) querySessions(ctx context.Context, query string, args ...any) ([]persistence.Session, error) {
	rows, err := r.helper.Query(ctx, query, args...)
	if err != nil {
		return nil, r.mapper.MapError(err)
	}
	defer rows.Close()

	var sessions []persistence.Session
	for rows.Next() {
		var session persistence.Session
		if err := rows.Scan(&session.ID, &session.StartTime, &session.EndTime); err != nil {
			return nil, r.mapper.MapError(err)
		}
		sessions = append(sessions, session)
	}
	if err := rows.Err(); err != nil {
		return nil, r.mapper.MapError(err)
	}
	return sessions, nil
}

func (r *SessionRepository) DeleteSession(ctx context.Context, id string) error {
	result, err := r.helper.Exec(ctx, `DELETE FROM sessions WHERE id = ?`, id)
	if err != nil {
		return r.mapper.MapError(err)
	}
	return requireRowsAffected(result)
}

func (r *SessionRepository) CountSessions(ctx context.Context) (int, error) {
	return countRows(ctx, r.helper, r.mapper, "sessions")
}
