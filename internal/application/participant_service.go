package application

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/example/event-registry/internal/persistence"
)

// ParticipantService manages participant records, including the public
// self-registration path.
type ParticipantService struct {
	participants persistence.ParticipantRepository
	highSchools  persistence.HighSchoolRepository
	idGenerator  func() string
	now          func() time.Time
	logger       *slog.Logger
}

// NewParticipantService wires dependencies for participant operations.
func NewParticipantService(participants persistence.ParticipantRepository, highSchools persistence.HighSchoolRepository, idGenerator func() string, now func() time.Time, logger *slog.Logger) *ParticipantService {
	if idGenerator == nil {
		idGenerator = func() string { return "" }
	}
	if now == nil {
		now = time.Now
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &ParticipantService{
		participants: participants,
		highSchools:  highSchools,
		idGenerator:  idGenerator,
		now:          now,
		logger:       logger,
	}
}

func (s *ParticipantService) Create(ctx context.Context, input ParticipantInput) (persistence.Participant, error) {
	participant, vErr := buildParticipant(input)
	if vErr.HasErrors() {
		return persistence.Participant{}, vErr
	}

	participant.ID = s.idGenerator()
	participant.RegisteredAt = s.now().UTC()
	if err := s.participants.CreateParticipant(ctx, participant); err != nil {
		return persistence.Participant{}, mapRepoError("create participant", err)
	}
	return participant, nil
}

// Register is the self-registration path. It behaves like Create but logs
// the signup, since it is driven by the public form rather than an operator.
func (s *ParticipantService) Register(ctx context.Context, input ParticipantInput) (persistence.Participant, error) {
	participant, err := s.Create(ctx, input)
	if err != nil {
		return persistence.Participant{}, err
	}
	s.logger.InfoContext(ctx, "participant registered",
		"participant_id", participant.ID,
		"high_school_id", participant.HighSchoolID,
	)
	return participant, nil
}

// Update replaces a stored participant in place, preserving its id and
// original registration time.
func (s *ParticipantService) Update(ctx context.Context, id string, input ParticipantInput) (persistence.Participant, error) {
	existing, err := s.participants.GetParticipant(ctx, id)
	if err != nil {
		return persistence.Participant{}, notFoundAs(KindParticipant, id, "get participant", err)
	}

	participant, vErr := buildParticipant(input)
	if vErr.HasErrors() {
		return persistence.Participant{}, vErr
	}

	participant.ID = existing.ID
	participant.RegisteredAt = existing.RegisteredAt
	if err := s.participants.UpdateParticipant(ctx, participant); err != nil {
		return persistence.Participant{}, mapRepoError("update participant", err)
	}
	return participant, nil
}

// Get returns one participant with its high school reference resolved.
// A dangling high school id yields a nil HighSchool, not an error.
func (s *ParticipantService) Get(ctx context.Context, id string) (ParticipantDetail, error) {
	participant, err := s.participants.GetParticipant(ctx, id)
	if err != nil {
		return ParticipantDetail{}, notFoundAs(KindParticipant, id, "get participant", err)
	}

	detail := ParticipantDetail{Participant: participant}
	school, err := s.highSchools.GetHighSchool(ctx, participant.HighSchoolID)
	switch {
	case err == nil:
		detail.HighSchool = &school
	case errors.Is(err, persistence.ErrNotFound):
		// Deleted school, keep the participant readable.
	default:
		return ParticipantDetail{}, mapRepoError("get highschool", err)
	}
	return detail, nil
}

func (s *ParticipantService) List(ctx context.Context) ([]persistence.Participant, error) {
	participants, err := s.participants.ListParticipants(ctx)
	if err != nil {
		return nil, mapRepoError("list participants", err)
	}
	return participants, nil
}

func (s *ParticipantService) Delete(ctx context.Context, id string) error {
	if err := s.participants.DeleteParticipant(ctx, id); err != nil {
		return notFoundAs(KindParticipant, id, "delete participant", err)
	}
	return nil
}

func buildParticipant(input ParticipantInput) (persistence.Participant, *ValidationError) {
	vErr := &ValidationError{}
	// Name checks run on the raw trimmed input; escaping would introduce
	// entity characters and flag clean names.
	requireAlphanumeric(vErr, "last_name", strings.TrimSpace(input.LastName))
	requireAlphanumeric(vErr, "first_name", strings.TrimSpace(input.FirstName))
	participant := persistence.Participant{
		LastName:        requireText(vErr, "last_name", input.LastName, maxTextLen),
		FirstName:       requireText(vErr, "first_name", input.FirstName, maxTextLen),
		Address:         requireText(vErr, "address", input.Address, maxTextLen),
		Email:           requireText(vErr, "email", input.Email, maxTextLen),
		HighSchoolID:    requireText(vErr, "high_school", input.HighSchoolID, maxTextLen),
		ParticipantType: optionalText(vErr, "participant_type", input.ParticipantType, maxTextLen),
	}
	return participant, vErr
}
