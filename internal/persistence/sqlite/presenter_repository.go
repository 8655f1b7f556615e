package sqlite

import (
	"context"

	"github.com/example/event-registry/internal/persistence"
)

// PresenterRepository implements persistence.PresenterRepository over SQL.
type PresenterRepository struct {
	pool   *ConnectionPool
	helper *QueryHelper
	mapper *ErrorMapper
}

// NewPresenterRepository creates a SQL-backed presenter repository.
func NewPresenterRepository(pool *ConnectionPool) *PresenterRepository {
	return &PresenterRepository{
		pool:   pool,
		helper: NewQueryHelper(pool),
		mapper: NewErrorMapper(),
	}
}

func (r *PresenterRepository) CreatePresenter(ctx context.Context, presenter persistence.Presenter) error {
	if presenter.ID == "" {
		return persistence.ErrConstraintViolation
	}

	_, err := r.helper.Exec(ctx, `
		INSERT INTO presenters (id, last_name, first_name, occupation, main_phone, mobile_phone, email)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		presenter.ID,
		presenter.LastName,
		presenter.FirstName,
		presenter.Occupation,
		presenter.MainPhone,
		presenter.MobilePhone,
		presenter.Email,
	)
	return r.mapper.MapError(err)
}

func (r *PresenterRepository) UpdatePresenter(ctx context.Context, presenter persistence.Presenter) error {
	result, err := r.helper.Exec(ctx, `
		UPDATE presenters
		SET last_name = ?, first_name = ?, occupation = ?, main_phone = ?, mobile_phone = ?, email = ?
		WHERE id = ?`,
		presenter.LastName,
		presenter.FirstName,
		presenter.Occupation,
		presenter.MainPhone,
		presenter.MobilePhone,
		presenter.Email,
		presenter.ID,
	)
	if err != nil {
		return r.mapper.MapError(err)
	}
	return requireRowsAffected(result)
}

func (r *PresenterRepository) GetPresenter(ctx context.Context, id string) (persistence.Presenter, error) {
	var presenter persistence.Presenter
	err := r.helper.QueryRow(ctx, `
		SELECT id, last_name, first_name, occupation, main_phone, mobile_phone, email
		FROM presenters WHERE id = ?`, id,
	).Scan(
		&presenter.ID,
		&presenter.LastName,
		&presenter.FirstName,
		&presenter.Occupation,
		&presenter.MainPhone,
		&presenter.MobilePhone,
		&presenter.Email,
	)
	if err != nil {
		return persistence.Presenter{}, r.mapper.MapError(err)
	}
	return presenter, nil
}

// ListPresenters returns all presenters ordered by last name.
func (r *PresenterRepository) ListPresenters(ctx context.Context) ([]persistence.Presenter, error) {
	return r.queryPresenters(ctx, `
		SELECT id, last_name, first_name, occupation, main_phone, mobile_phone, email
		FROM presenters
		ORDER BY last_name ASC, first_name ASC, id ASC`)
}

// ListPresentersByIDs returns the presenters whose ids are in the given set.
// Missing ids are silently absent from the result.
func (r *PresenterRepository) ListPresentersByIDs(ctx context.Context, ids []string) ([]persistence.Presenter, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	query := `
		SELECT id, last_name, first_name, occupation, main_phone, mobile_phone, email
		FROM presenters WHERE id IN (` + inPlaceholders(len(ids)) + `)`
	return r.queryPresenters(ctx, query, toAnySlice(ids)...)
}

func (r *PresenterRepository) queryPresenters(ctx context.Context, query string, args ...any) ([]persistence.Presenter, error) {
	rows, err := r.helper.Query(ctx, query, args...)
	if err != nil {
		return nil, r.mapper.MapError(err)
	}
	defer rows.Close()

	var presenters []persistence.Presenter
	for rows.Next() {
		var presenter persistence.Presenter
		err := rows.Scan(
			&presenter.ID,
			&presenter.LastName,
			&presenter.FirstName,
			&presenter.Occupation,
			&presenter.MainPhone,
			&presenter.MobilePhone,
			&presenter.Email,
		)
		if err != nil {
			return nil, r.mapper.MapError(err)
		}
		presenters = append(presenters, presenter)
	}
	if err := rows.Err(); err != nil {
		return nil, r.mapper.MapError(err)
	}
	return presenters, nil
}

func (r *PresenterRepository) DeletePresenter(ctx context.Context, id string) error {
	result, err := r.helper.Exec(ctx, `DELETE FROM presenters WHERE id = ?`, id)
	if err != nil {
		return r.mapper.MapError(err)
	}
	return requireRowsAffected(result)
}

func (r *PresenterRepository) CountPresenters(ctx context.Context) (int, error) {
	return countRows(ctx, r.helper, r.mapper, "presenters")
}
