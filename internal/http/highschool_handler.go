package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/example/event-registry/internal/application"
	"github.com/example/event-registry/internal/persistence"
)

type highSchoolService interface {
	Create(ctx context.Context, input application.HighSchoolInput) (persistence.HighSchool, error)
	Update(ctx context.Context, id string, input application.HighSchoolInput) (persistence.HighSchool, error)
	Get(ctx context.Context, id string) (persistence.HighSchool, error)
	List(ctx context.Context) ([]persistence.HighSchool, error)
	Delete(ctx context.Context, id string) error
}

// HighSchoolHandler serves the high school catalog endpoints.
type HighSchoolHandler struct {
	service   highSchoolService
	responder responder
	logger    *slog.Logger
}

func NewHighSchoolHandler(service highSchoolService, logger *slog.Logger) *HighSchoolHandler {
	base := defaultLogger(logger)
	return &HighSchoolHandler{service: service, responder: newResponder(base), logger: base}
}

func (h *HighSchoolHandler) log(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	if h == nil {
		return slog.Default()
	}
	return handlerLogger(ctx, h.logger, "HighSchoolHandler", operation, attrs...)
}

func (h *HighSchoolHandler) Create(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	var req highSchoolRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log(r.Context(), "Create", "error_kind", "bad_request").ErrorContext(r.Context(), "failed to decode highschool request", "error", err)
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	logger := h.log(r.Context(), "Create")
	school, err := h.service.Create(r.Context(), req.toInput())
	if err != nil {
		logger.ErrorContext(r.Context(), "highschool creation failed", "error", err)
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.With("highschool_id", school.ID).InfoContext(r.Context(), "highschool created")
	h.responder.writeJSON(r.Context(), w, http.StatusCreated, highSchoolResponse{HighSchool: toHighSchoolDTO(school)})
}

func (h *HighSchoolHandler) Update(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	id, ok := EntityIDFromContext(r.Context())
	if !ok || strings.TrimSpace(id) == "" {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidRecordID)
		return
	}

	var req highSchoolRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log(r.Context(), "Update", "highschool_id", id, "error_kind", "bad_request").ErrorContext(r.Context(), "failed to decode highschool update", "error", err)
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	logger := h.log(r.Context(), "Update", "highschool_id", id)
	school, err := h.service.Update(r.Context(), id, req.toInput())
	if err != nil {
		logger.ErrorContext(r.Context(), "highschool update failed", "error", err)
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.InfoContext(r.Context(), "highschool updated")
	h.responder.writeJSON(r.Context(), w, http.StatusOK, highSchoolResponse{HighSchool: toHighSchoolDTO(school)})
}

func (h *HighSchoolHandler) Get(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	id, ok := EntityIDFromContext(r.Context())
	if !ok || strings.TrimSpace(id) == "" {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidRecordID)
		return
	}

	logger := h.log(r.Context(), "Get", "highschool_id", id)
	school, err := h.service.Get(r.Context(), id)
	if err != nil {
		logger.ErrorContext(r.Context(), "highschool fetch failed", "error", err)
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusOK, highSchoolResponse{HighSchool: toHighSchoolDTO(school)})
}

func (h *HighSchoolHandler) List(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	logger := h.log(r.Context(), "List")
	schools, err := h.service.List(r.Context())
	if err != nil {
		logger.ErrorContext(r.Context(), "highschool list failed", "error", err)
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.With("result_count", len(schools)).InfoContext(r.Context(), "highschools listed")
	h.responder.writeJSON(r.Context(), w, http.StatusOK, listHighSchoolsResponse{HighSchools: toHighSchoolDTOs(schools)})
}

func (h *HighSchoolHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	id, ok := EntityIDFromContext(r.Context())
	if !ok || strings.TrimSpace(id) == "" {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidRecordID)
		return
	}

	logger := h.log(r.Context(), "Delete", "highschool_id", id)
	if err := h.service.Delete(r.Context(), id); err != nil {
		logger.ErrorContext(r.Context(), "highschool delete failed", "error", err)
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.InfoContext(r.Context(), "highschool deleted")
	h.responder.writeJSON(r.Context(), w, http.StatusNoContent, nil)
}

type highSchoolRequest struct {
	Name string `json:"name"`
}

func (r highSchoolRequest) toInput() application.HighSchoolInput {
	return application.HighSchoolInput{Name: strings.TrimSpace(r.Name)}
}

type highSchoolResponse struct {
	HighSchool highSchoolDTO `json:"highschool"`
}

type listHighSchoolsResponse struct {
	HighSchools []highSchoolDTO `json:"highschools"`
}

type highSchoolDTO struct {
	ID   string `json:"id"`
	URL  string `json:"url"`
	Name string `json:"name"`
}

func toHighSchoolDTO(school persistence.HighSchool) highSchoolDTO {
	return highSchoolDTO{
		ID:   school.ID,
		URL:  application.ResourceURL(application.KindHighSchool, school.ID),
		Name: school.Name,
	}
}

func toHighSchoolDTOs(schools []persistence.HighSchool) []highSchoolDTO {
	if len(schools) == 0 {
		return nil
	}
	out := make([]highSchoolDTO, 0, len(schools))
	for _, school := range schools {
		out = append(out, toHighSchoolDTO(school))
	}
	return out
}
