package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/example/event-registry/internal/application"
	"github.com/example/event-registry/internal/persistence"
)

type participantService interface {
	Create(ctx context.Context, input application.ParticipantInput) (persistence.Participant, error)
	Update(ctx context.Context, id string, input application.ParticipantInput) (persistence.Participant, error)
	Get(ctx context.Context, id string) (application.ParticipantDetail, error)
	List(ctx context.Context) ([]persistence.Participant, error)
	Delete(ctx context.Context, id string) error
}

// ParticipantHandler serves the participant endpoints.
type ParticipantHandler struct {
	service   participantService
	responder responder
	logger    *slog.Logger
}

func NewParticipantHandler(service participantService, logger *slog.Logger) *ParticipantHandler {
	base := defaultLogger(logger)
	return &ParticipantHandler{service: service, responder: newResponder(base), logger: base}
}

func (h *ParticipantHandler) log(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	if h == nil {
		return slog.Default()
	}
	return handlerLogger(ctx, h.logger, "ParticipantHandler", operation, attrs...)
}

func (h *ParticipantHandler) Create(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	var req participantRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log(r.Context(), "Create", "error_kind", "bad_request").ErrorContext(r.Context(), "failed to decode participant request", "error", err)
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	logger := h.log(r.Context(), "Create")
	participant, err := h.service.Create(r.Context(), req.toInput())
	if err != nil {
		logger.ErrorContext(r.Context(), "participant creation failed", "error", err)
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.With("participant_id", participant.ID).InfoContext(r.Context(), "participant created")
	h.responder.writeJSON(r.Context(), w, http.StatusCreated, participantResponse{Participant: toParticipantDTO(participant)})
}

func (h *ParticipantHandler) Update(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	id, ok := EntityIDFromContext(r.Context())
	if !ok || strings.TrimSpace(id) == "" {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidRecordID)
		return
	}

	var req participantRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log(r.Context(), "Update", "participant_id", id, "error_kind", "bad_request").ErrorContext(r.Context(), "failed to decode participant update", "error", err)
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	logger := h.log(r.Context(), "Update", "participant_id", id)
	participant, err := h.service.Update(r.Context(), id, req.toInput())
	if err != nil {
		logger.ErrorContext(r.Context(), "participant update failed", "error", err)
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.InfoContext(r.Context(), "participant updated")
	h.responder.writeJSON(r.Context(), w, http.StatusOK, participantResponse{Participant: toParticipantDTO(participant)})
}

// Get returns the participant with its high school resolved; the school is
// null when the referenced record no longer exists.
func (h *ParticipantHandler) Get(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	id, ok := EntityIDFromContext(r.Context())
	if !ok || strings.TrimSpace(id) == "" {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidRecordID)
		return
	}

	logger := h.log(r.Context(), "Get", "participant_id", id)
	detail, err := h.service.Get(r.Context(), id)
	if err != nil {
		logger.ErrorContext(r.Context(), "participant fetch failed", "error", err)
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	resp := participantDetailResponse{Participant: toParticipantDTO(detail.Participant)}
	if detail.HighSchool != nil {
		school := toHighSchoolDTO(*detail.HighSchool)
		resp.HighSchool = &school
	}
	h.responder.writeJSON(r.Context(), w, http.StatusOK, resp)
}

func (h *ParticipantHandler) List(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	logger := h.log(r.Context(), "List")
	participants, err := h.service.List(r.Context())
	if err != nil {
		logger.ErrorContext(r.Context(), "participant list failed", "error", err)
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.With("result_count", len(participants)).InfoContext(r.Context(), "participants listed")
	h.responder.writeJSON(r.Context(), w, http.StatusOK, listParticipantsResponse{Participants: toParticipantDTOs(participants)})
}

func (h *ParticipantHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	id, ok := EntityIDFromContext(r.Context())
	if !ok || strings.TrimSpace(id) == "" {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidRecordID)
		return
	}

	logger := h.log(r.Context(), "Delete", "participant_id", id)
	if err := h.service.Delete(r.Context(), id); err != nil {
		logger.ErrorContext(r.Context(), "participant delete failed", "error", err)
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.InfoContext(r.Context(), "participant deleted")
	h.responder.writeJSON(r.Context(), w, http.StatusNoContent, nil)
}

type participantRequest struct {
	LastName        string `json:"last_name"`
	FirstName       string `json:"first_name"`
	Address         string `json:"address"`
	Email           string `json:"email"`
	HighSchoolID    string `json:"high_school_id"`
	ParticipantType string `json:"participant_type"`
}

func (r participantRequest) toInput() application.ParticipantInput {
	return application.ParticipantInput{
		LastName:        r.LastName,
		FirstName:       r.FirstName,
		Address:         r.Address,
		Email:           r.Email,
		HighSchoolID:    r.HighSchoolID,
		ParticipantType: r.ParticipantType,
	}
}

type participantResponse struct {
	Participant participantDTO `json:"participant"`
}

type participantDetailResponse struct {
	Participant participantDTO `json:"participant"`
	HighSchool  *highSchoolDTO `json:"highschool"`
}

type listParticipantsResponse struct {
	Participants []participantDTO `json:"participants"`
}

type participantDTO struct {
	ID              string `json:"id"`
	URL             string `json:"url"`
	Name            string `json:"name"`
	LastName        string `json:"last_name"`
	FirstName       string `json:"first_name"`
	Address         string `json:"address"`
	Email           string `json:"email"`
	HighSchoolID    string `json:"high_school_id"`
	RegisteredAt    string `json:"registered_at"`
	ParticipantType string `json:"participant_type,omitempty"`
}

func toParticipantDTO(participant persistence.Participant) participantDTO {
	return participantDTO{
		ID:              participant.ID,
		URL:             application.ResourceURL(application.KindParticipant, participant.ID),
		Name:            application.PersonName(participant.LastName, participant.FirstName),
		LastName:        participant.LastName,
		FirstName:       participant.FirstName,
		Address:         participant.Address,
		Email:           participant.Email,
		HighSchoolID:    participant.HighSchoolID,
		RegisteredAt:    participant.RegisteredAt.UTC().Format(time.RFC3339),
		ParticipantType: participant.ParticipantType,
	}
}

func toParticipantDTOs(participants []persistence.Participant) []participantDTO {
	if len(participants) == 0 {
		return nil
	}
	out := make([]participantDTO, 0, len(participants))
	for _, participant := range participants {
		out = append(out, toParticipantDTO(participant))
	}
	return out
}
