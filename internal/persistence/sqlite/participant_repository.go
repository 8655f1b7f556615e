package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/example/event-registry/internal/persistence"
)

// ParticipantRepository implements persistence.ParticipantRepository over SQL.
type ParticipantRepository struct {
	pool   *ConnectionPool
	helper *QueryHelper
	mapper *ErrorMapper
}

// NewParticipantRepository creates a SQL-backed participant repository.
func NewParticipantRepository(pool *ConnectionPool) *ParticipantRepository {
	return &ParticipantRepository{
		pool:   pool,
		helper: NewQueryHelper(pool),
		mapper: NewErrorMapper(),
	}
}

func (r *ParticipantRepository) CreateParticipant(ctx context.Context, participant persistence.Participant) error {
	if participant.ID == "" {
		return persistence.ErrConstraintViolation
	}
	if participant.RegisteredAt.IsZero() {
		participant.RegisteredAt = time.Now().UTC()
	}

	_, err := r.helper.Exec(ctx, `
		INSERT INTO participants (id, last_name, first_name, address, email, high_school_id, registered_at, participant_type)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		participant.ID,
		participant.LastName,
		participant.FirstName,
		participant.Address,
		participant.Email,
		participant.HighSchoolID,
		participant.RegisteredAt.Format(time.RFC3339),
		participant.ParticipantType,
	)
	return r.mapper.MapError(err)
}

func (r *ParticipantRepository) UpdateParticipant(ctx context.Context, participant persistence.Participant) error {
	result, err := r.helper.Exec(ctx, `
		UPDATE participants
		SET last_name = ?, first_name = ?, address = ?, email = ?, high_school_id = ?, participant_type = ?
		WHERE id = ?`,
		participant.LastName,
		participant.FirstName,
		participant.Address,
		participant.Email,
		participant.HighSchoolID,
		participant.ParticipantType,
		participant.ID,
	)
	if err != nil {
		return r.mapper.MapError(err)
	}
	return requireRowsAffected(result)
}

func (r *ParticipantRepository) GetParticipant(ctx context.Context, id string) (persistence.Participant, error) {
	row := r.helper.QueryRow(ctx, `
		SELECT id, last_name, first_name, address, email, high_school_id, registered_at, participant_type
		FROM participants WHERE id = ?`, id)

	participant, err := scanParticipant(row)
	if err != nil {
		return persistence.Participant{}, r.mapper.MapError(err)
	}
	return participant, nil
}

// ListParticipants returns all participants ordered by last name.
func (r *ParticipantRepository) ListParticipants(ctx context.Context) ([]persistence.Participant, error) {
	rows, err := r.helper.Query(ctx, `
		SELECT id, last_name, first_name, address, email, high_school_id, registered_at, participant_type
		FROM participants
		ORDER BY last_name ASC, first_name ASC, id ASC`)
	if err != nil {
		return nil, r.mapper.MapError(err)
	}
	defer rows.Close()

	var participants []persistence.Participant
	for rows.Next() {
		participant, err := scanParticipant(rows)
		if err != nil {
			return nil, r.mapper.MapError(err)
		}
		participants = append(participants, participant)
	}
	if err := rows.Err(); err != nil {
		return nil, r.mapper.MapError(err)
	}
	return participants, nil
}

func (r *ParticipantRepository) DeleteParticipant(ctx context.Context, id string) error {
	result, err := r.helper.Exec(ctx, `DELETE FROM participants WHERE id = ?`, id)
	if err != nil {
		return r.mapper.MapError(err)
	}
	return requireRowsAffected(result)
}

func (r *ParticipantRepository) CountParticipants(ctx context.Context) (int, error) {
	return countRows(ctx, r.helper, r.mapper, "participants")
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanParticipant(row rowScanner) (persistence.Participant, error) {
	var participant persistence.Participant
	var registeredAt string

	err := row.Scan(
		&participant.ID,
		&participant.LastName,
		&participant.FirstName,
		&participant.Address,
		&participant.Email,
		&participant.HighSchoolID,
		&registeredAt,
		&participant.ParticipantType,
	)
	if err != nil {
		return persistence.Participant{}, err
	}

	if participant.RegisteredAt, err = time.Parse(time.RFC3339, registeredAt); err != nil {
		return persistence.Participant{}, fmt.Errorf("failed to parse registered_at: %w", err)
	}
	return participant, nil
}
