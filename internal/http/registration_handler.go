package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/example/event-registry/internal/application"
	"github.com/example/event-registry/internal/persistence"
)

type registrationService interface {
	Register(ctx context.Context, input application.ParticipantInput) (persistence.Participant, error)
}

type highSchoolLister interface {
	List(ctx context.Context) ([]persistence.HighSchool, error)
}

// RegistrationHandler serves the public participant signup flow.
type RegistrationHandler struct {
	service   registrationService
	schools   highSchoolLister
	responder responder
	logger    *slog.Logger
}

func NewRegistrationHandler(service registrationService, schools highSchoolLister, logger *slog.Logger) *RegistrationHandler {
	base := defaultLogger(logger)
	return &RegistrationHandler{service: service, schools: schools, responder: newResponder(base), logger: base}
}

// Form returns the data the signup form needs, the selectable high schools.
func (h *RegistrationHandler) Form(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.schools == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	logger := handlerLogger(r.Context(), h.logger, "RegistrationHandler", "Form")
	schools, err := h.schools.List(r.Context())
	if err != nil {
		logger.ErrorContext(r.Context(), "highschool list for signup failed", "error", err)
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusOK, registrationFormResponse{
		Title:       "Participant Registration",
		HighSchools: toHighSchoolDTOs(schools),
	})
}

// Submit creates a participant from the public form.
func (h *RegistrationHandler) Submit(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	var req participantRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	logger := handlerLogger(r.Context(), h.logger, "RegistrationHandler", "Submit")
	participant, err := h.service.Register(r.Context(), req.toInput())
	if err != nil {
		logger.ErrorContext(r.Context(), "registration failed", "error", err)
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.With("participant_id", participant.ID).InfoContext(r.Context(), "registration submitted")
	h.responder.writeJSON(r.Context(), w, http.StatusCreated, participantResponse{Participant: toParticipantDTO(participant)})
}

// Submitted confirms a completed signup.
func (h *RegistrationHandler) Submitted(w http.ResponseWriter, r *http.Request) {
	if h == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	h.responder.writeJSON(r.Context(), w, http.StatusOK, registrationSubmittedResponse{
		Title:   "Registration Complete",
		Message: "thank you for registering",
	})
}

type registrationFormResponse struct {
	Title       string          `json:"title"`
	HighSchools []highSchoolDTO `json:"highschools"`
}

type registrationSubmittedResponse struct {
	Title   string `json:"title"`
	Message string `json:"message"`
}
