package application

import (
	"context"
	"log/slog"

	"github.com/example/event-registry/internal/persistence"
)

// HighSchoolService manages the high school catalog.
type HighSchoolService struct {
	highSchools persistence.HighSchoolRepository
	idGenerator func() string
	logger      *slog.Logger
}

// NewHighSchoolService wires dependencies for high school operations.
func NewHighSchoolService(highSchools persistence.HighSchoolRepository, idGenerator func() string, logger *slog.Logger) *HighSchoolService {
	if idGenerator == nil {
		idGenerator = func() string { return "" }
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &HighSchoolService{highSchools: highSchools, idGenerator: idGenerator, logger: logger}
}

func (s *HighSchoolService) Create(ctx context.Context, input HighSchoolInput) (persistence.HighSchool, error) {
	school, vErr := buildHighSchool(input)
	if vErr.HasErrors() {
		return persistence.HighSchool{}, vErr
	}

	school.ID = s.idGenerator()
	if err := s.highSchools.CreateHighSchool(ctx, school); err != nil {
		return persistence.HighSchool{}, mapRepoError("create highschool", err)
	}
	return school, nil
}

func (s *HighSchoolService) Update(ctx context.Context, id string, input HighSchoolInput) (persistence.HighSchool, error) {
	existing, err := s.highSchools.GetHighSchool(ctx, id)
	if err != nil {
		return persistence.HighSchool{}, notFoundAs(KindHighSchool, id, "get highschool", err)
	}

	school, vErr := buildHighSchool(input)
	if vErr.HasErrors() {
		return persistence.HighSchool{}, vErr
	}

	school.ID = existing.ID
	if err := s.highSchools.UpdateHighSchool(ctx, school); err != nil {
		return persistence.HighSchool{}, mapRepoError("update highschool", err)
	}
	return school, nil
}

func (s *HighSchoolService) Get(ctx context.Context, id string) (persistence.HighSchool, error) {
	school, err := s.highSchools.GetHighSchool(ctx, id)
	if err != nil {
		return persistence.HighSchool{}, notFoundAs(KindHighSchool, id, "get highschool", err)
	}
	return school, nil
}

func (s *HighSchoolService) List(ctx context.Context) ([]persistence.HighSchool, error) {
	schools, err := s.highSchools.ListHighSchools(ctx)
	if err != nil {
		return nil, mapRepoError("list highschools", err)
	}
	return schools, nil
}

// Delete removes a high school. Participants referencing it keep their
// dangling id; there is no cascade.
func (s *HighSchoolService) Delete(ctx context.Context, id string) error {
	if err := s.highSchools.DeleteHighSchool(ctx, id); err != nil {
		return notFoundAs(KindHighSchool, id, "delete highschool", err)
	}
	return nil
}

func buildHighSchool(input HighSchoolInput) (persistence.HighSchool, *ValidationError) {
	vErr := &ValidationError{}
	school := persistence.HighSchool{
		Name: requireText(vErr, "name", input.Name, maxTextLen),
	}
	return school, vErr
}
