package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/example/event-registry/internal/persistence"
)

// HighSchoolRepository implements persistence.HighSchoolRepository over SQL.
type HighSchoolRepository struct {
	pool   *ConnectionPool
	helper *QueryHelper
	mapper *ErrorMapper
}

// NewHighSchoolRepository creates a SQL-backed high school repository.
func NewHighSchoolRepository(pool *ConnectionPool) *HighSchoolRepository {
	return &HighSchoolRepository{
		pool:   pool,
		helper: NewQueryHelper(pool),
		mapper: NewErrorMapper(),
	}
}

func (r *HighSchoolRepository) CreateHighSchool(ctx context.Context, school persistence.HighSchool) error {
	if school.ID == "" {
		return persistence.ErrConstraintViolation
	}

	_, err := r.helper.Exec(ctx,
		`INSERT INTO high_schools (id, name) VALUES (?, ?)`,
		school.ID, school.Name,
	)
	return r.mapper.MapError(err)
}

func (r *HighSchoolRepository) UpdateHighSchool(ctx context.Context, school persistence.HighSchool) error {
	result, err := r.helper.Exec(ctx,
		`UPDATE high_schools SET name = ? WHERE id = ?`,
		school.Name, school.ID,
	)
	if err != nil {
		return r.mapper.MapError(err)
	}
	return requireRowsAffected(result)
}

func (r *HighSchoolRepository) GetHighSchool(ctx context.Context, id string) (persistence.HighSchool, error) {
	var school persistence.HighSchool
	err := r.helper.QueryRow(ctx,
		`SELECT id, name FROM high_schools WHERE id = ?`, id,
	).Scan(&school.ID, &school.Name)
	if err != nil {
		return persistence.HighSchool{}, r.mapper.MapError(err)
	}
	return school, nil
}

// ListHighSchools returns all high schools ordered by name.
func (r *HighSchoolRepository) ListHighSchools(ctx context.Context) ([]persistence.HighSchool, error) {
	rows, err := r.helper.Query(ctx,
		`SELECT id, name FROM high_schools ORDER BY name ASC, id ASC`)
	if err != nil {
		return nil, r.mapper.MapError(err)
	}
	defer rows.Close()

	var schools []persistence.HighSchool
	for rows.Next() {
		var school persistence.HighSchool
		if err := rows.Scan(&school.ID, &school.Name); err != nil {
			return nil, r.mapper.MapError(err)
		}
		schools = append(schools, school)
	}
	if err := rows.Err(); err != nil {
		return nil, r.mapper.MapError(err)
	}
	return schools, nil
}

func (r *HighSchoolRepository) DeleteHighSchool(ctx context.Context, id string) error {
	result, err := r.helper.Exec(ctx, `DELETE FROM high_schools WHERE id = ?`, id)
	if err != nil {
		return r.mapper.MapError(err)
	}
	return requireRowsAffected(result)
}

func (r *HighSchoolRepository) CountHighSchools(ctx context.Context) (int, error) {
	return countRows(ctx, r.helper, r.mapper, "high_schools")
}

// requireRowsAffected converts a zero-row update or delete into ErrNotFound.
func requireRowsAffected(result sql.Result) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return persistence.ErrNotFound
	}
	return nil
}

func countRows(ctx context.Context, helper *QueryHelper, mapper *ErrorMapper, table string) (int, error) {
	var count int
	err := helper.QueryRow(ctx, `SELECT COUNT(*) FROM `+table).Scan(&count)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return 0, mapper.MapError(err)
	}
	return count, nil
}
