package application

import (
	"context"
	"log/slog"
	"strings"

	"github.com/example/event-registry/internal/persistence"
)

// PresenterService manages presenter records.
type PresenterService struct {
	presenters  persistence.PresenterRepository
	idGenerator func() string
	logger      *slog.Logger
}

// NewPresenterService wires dependencies for presenter operations.
func NewPresenterService(presenters persistence.PresenterRepository, idGenerator func() string, logger *slog.Logger) *PresenterService {
	if idGenerator == nil {
		idGenerator = func() string { return "" }
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PresenterService{presenters: presenters, idGenerator: idGenerator, logger: logger}
}

func (s *PresenterService) Create(ctx context.Context, input PresenterInput) (persistence.Presenter, error) {
	presenter, vErr := buildPresenter(input)
	if vErr.HasErrors() {
		return persistence.Presenter{}, vErr
	}

	presenter.ID = s.idGenerator()
	if err := s.presenters.CreatePresenter(ctx, presenter); err != nil {
		return persistence.Presenter{}, mapRepoError("create presenter", err)
	}
	return presenter, nil
}

func (s *PresenterService) Update(ctx context.Context, id string, input PresenterInput) (persistence.Presenter, error) {
	existing, err := s.presenters.GetPresenter(ctx, id)
	if err != nil {
		return persistence.Presenter{}, notFoundAs(KindPresenter, id, "get presenter", err)
	}

	presenter, vErr := buildPresenter(input)
	if vErr.HasErrors() {
		return persistence.Presenter{}, vErr
	}

	presenter.ID = existing.ID
	if err := s.presenters.UpdatePresenter(ctx, presenter); err != nil {
		return persistence.Presenter{}, mapRepoError("update presenter", err)
	}
	return presenter, nil
}

func (s *PresenterService) Get(ctx context.Context, id string) (persistence.Presenter, error) {
	presenter, err := s.presenters.GetPresenter(ctx, id)
	if err != nil {
		return persistence.Presenter{}, notFoundAs(KindPresenter, id, "get presenter", err)
	}
	return presenter, nil
}

func (s *PresenterService) List(ctx context.Context) ([]persistence.Presenter, error) {
	presenters, err := s.presenters.ListPresenters(ctx)
	if err != nil {
		return nil, mapRepoError("list presenters", err)
	}
	return presenters, nil
}

// Delete removes a presenter. Schedules referencing them keep their
// dangling id.
func (s *PresenterService) Delete(ctx context.Context, id string) error {
	if err := s.presenters.DeletePresenter(ctx, id); err != nil {
		return notFoundAs(KindPresenter, id, "delete presenter", err)
	}
	return nil
}

func buildPresenter(input PresenterInput) (persistence.Presenter, *ValidationError) {
	vErr := &ValidationError{}
	// Name checks run on the raw trimmed input; escaping would introduce
	// entity characters and flag clean names.
	requireAlphanumeric(vErr, "last_name", strings.TrimSpace(input.LastName))
	requireAlphanumeric(vErr, "first_name", strings.TrimSpace(input.FirstName))
	presenter := persistence.Presenter{
		LastName:    requireText(vErr, "last_name", input.LastName, maxTextLen),
		FirstName:   requireText(vErr, "first_name", input.FirstName, maxTextLen),
		Occupation:  requireText(vErr, "occupation", input.Occupation, maxTextLen),
		MainPhone:   optionalText(vErr, "main_phone", input.MainPhone, maxPhoneLen),
		MobilePhone: optionalText(vErr, "mobile_phone", input.MobilePhone, maxPhoneLen),
		Email:       optionalText(vErr, "email", input.Email, maxTextLen),
	}
	return presenter, vErr
}
