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

type presenterService interface {
	Create(ctx context.Context, input application.PresenterInput) (persistence.Presenter, error)
	Update(ctx context.Context, id string, input application.PresenterInput) (persistence.Presenter, error)
	List(ctx context.Context) ([]persistence.Presenter, error)
	Delete(ctx context.Context, id string) error
}

// PresenterHandler serves the presenter endpoints.
type PresenterHandler struct {
	service   presenterService
	resolver  detailResolver
	responder responder
	logger    *slog.Logger
}

func NewPresenterHandler(service presenterService, resolver detailResolver, logger *slog.Logger) *PresenterHandler {
	base := defaultLogger(logger)
	return &PresenterHandler{service: service, resolver: resolver, responder: newResponder(base), logger: base}
}

func (h *PresenterHandler) log(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	if h == nil {
		return slog.Default()
	}
	return handlerLogger(ctx, h.logger, "PresenterHandler", operation, attrs...)
}

func (h *PresenterHandler) Create(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	var req presenterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log(r.Context(), "Create", "error_kind", "bad_request").ErrorContext(r.Context(), "failed to decode presenter request", "error", err)
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	logger := h.log(r.Context(), "Create")
	presenter, err := h.service.Create(r.Context(), req.toInput())
	if err != nil {
		logger.ErrorContext(r.Context(), "presenter creation failed", "error", err)
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.With("presenter_id", presenter.ID).InfoContext(r.Context(), "presenter created")
	h.responder.writeJSON(r.Context(), w, http.StatusCreated, presenterResponse{Presenter: toPresenterDTO(presenter)})
}

func (h *PresenterHandler) Update(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	id, ok := EntityIDFromContext(r.Context())
	if !ok || strings.TrimSpace(id) == "" {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidRecordID)
		return
	}

	var req presenterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log(r.Context(), "Update", "presenter_id", id, "error_kind", "bad_request").ErrorContext(r.Context(), "failed to decode presenter update", "error", err)
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	logger := h.log(r.Context(), "Update", "presenter_id", id)
	presenter, err := h.service.Update(r.Context(), id, req.toInput())
	if err != nil {
		logger.ErrorContext(r.Context(), "presenter update failed", "error", err)
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.InfoContext(r.Context(), "presenter updated")
	h.responder.writeJSON(r.Context(), w, http.StatusOK, presenterResponse{Presenter: toPresenterDTO(presenter)})
}

// Detail returns the presenter together with every schedule entry they hold.
func (h *PresenterHandler) Detail(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.resolver == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	id, ok := EntityIDFromContext(r.Context())
	if !ok || strings.TrimSpace(id) == "" {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidRecordID)
		return
	}

	logger := h.log(r.Context(), "Detail", "presenter_id", id)
	result, err := h.resolver.Detail(r.Context(), application.KindPresenter, id)
	if err != nil {
		logger.ErrorContext(r.Context(), "presenter detail failed", "error", err)
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusOK, presenterDetailResponse{
		Presenter: toPresenterDTO(*result.Presenter),
		Schedules: toScheduleDTOs(result.Schedules),
	})
}

func (h *PresenterHandler) List(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	logger := h.log(r.Context(), "List")
	presenters, err := h.service.List(r.Context())
	if err != nil {
		logger.ErrorContext(r.Context(), "presenter list failed", "error", err)
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.With("result_count", len(presenters)).InfoContext(r.Context(), "presenters listed")
	h.responder.writeJSON(r.Context(), w, http.StatusOK, listPresentersResponse{Presenters: toPresenterDTOs(presenters)})
}

func (h *PresenterHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	id, ok := EntityIDFromContext(r.Context())
	if !ok || strings.TrimSpace(id) == "" {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidRecordID)
		return
	}

	logger := h.log(r.Context(), "Delete", "presenter_id", id)
	if err := h.service.Delete(r.Context(), id); err != nil {
		logger.ErrorContext(r.Context(), "presenter delete failed", "error", err)
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.InfoContext(r.Context(), "presenter deleted")
	h.responder.writeJSON(r.Context(), w, http.StatusNoContent, nil)
}

type presenterRequest struct {
	LastName    string `json:"last_name"`
	FirstName   string `json:"first_name"`
	Occupation  string `json:"occupation"`
	MainPhone   string `json:"main_phone"`
	MobilePhone string `json:"mobile_phone"`
	Email       string `json:"email"`
}

func (r presenterRequest) toInput() application.PresenterInput {
	return application.PresenterInput{
		LastName:    r.LastName,
		FirstName:   r.FirstName,
		Occupation:  r.Occupation,
		MainPhone:   r.MainPhone,
		MobilePhone: r.MobilePhone,
		Email:       r.Email,
	}
}

type presenterResponse struct {
	Presenter presenterDTO `json:"presenter"`
}

type presenterDetailResponse struct {
	Presenter presenterDTO  `json:"presenter"`
	Schedules []scheduleDTO `json:"schedules"`
}

type listPresentersResponse struct {
	Presenters []presenterDTO `json:"presenters"`
}

type presenterDTO struct {
	ID          string `json:"id"`
	URL         string `json:"url"`
	Name        string `json:"name"`
	LastName    string `json:"last_name"`
	FirstName   string `json:"first_name"`
	Occupation  string `json:"occupation"`
	MainPhone   string `json:"main_phone"`
	MobilePhone string `json:"mobile_phone,omitempty"`
	Email       string `json:"email"`
}

func toPresenterDTO(presenter persistence.Presenter) presenterDTO {
	return presenterDTO{
		ID:          presenter.ID,
		URL:         application.ResourceURL(application.KindPresenter, presenter.ID),
		Name:        application.PersonName(presenter.LastName, presenter.FirstName),
		LastName:    presenter.LastName,
		FirstName:   presenter.FirstName,
		Occupation:  presenter.Occupation,
		MainPhone:   presenter.MainPhone,
		MobilePhone: presenter.MobilePhone,
		Email:       presenter.Email,
	}
}

func toPresenterDTOs(presenters []persistence.Presenter) []presenterDTO {
	if len(presenters) == 0 {
		return nil
	}
	out := make([]presenterDTO, 0, len(presenters))
	for _, presenter := range presenters {
		out = append(out, toPresenterDTO(presenter))
	}
	return out
}
