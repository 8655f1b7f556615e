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

type scheduleService interface {
	Compose(ctx context.Context, input application.ScheduleInput) (persistence.Schedule, error)
	Replace(ctx context.Context, id string, input application.ScheduleInput) (persistence.Schedule, error)
	Get(ctx context.Context, id string) (application.EnrichedSchedule, error)
	List(ctx context.Context) ([]application.EnrichedSchedule, error)
	Delete(ctx context.Context, id string) error
}

// ScheduleHandler serves the timetable entry endpoints.
type ScheduleHandler struct {
	service   scheduleService
	responder responder
	logger    *slog.Logger
}

func NewScheduleHandler(service scheduleService, logger *slog.Logger) *ScheduleHandler {
	base := defaultLogger(logger)
	return &ScheduleHandler{service: service, responder: newResponder(base), logger: base}
}

func (h *ScheduleHandler) log(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	if h == nil {
		return slog.Default()
	}
	return handlerLogger(ctx, h.logger, "ScheduleHandler", operation, attrs...)
}

func (h *ScheduleHandler) Create(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	var req scheduleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log(r.Context(), "Create", "error_kind", "bad_request").ErrorContext(r.Context(), "failed to decode schedule request", "error", err)
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	logger := h.log(r.Context(), "Create")
	schedule, err := h.service.Compose(r.Context(), req.toInput())
	if err != nil {
		logger.ErrorContext(r.Context(), "schedule composition failed", "error", err)
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.With("schedule_id", schedule.ID).InfoContext(r.Context(), "schedule created")
	h.responder.writeJSON(r.Context(), w, http.StatusCreated, scheduleCreatedResponse{Schedule: toScheduleRefsDTO(schedule)})
}

func (h *ScheduleHandler) Update(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	id, ok := EntityIDFromContext(r.Context())
	if !ok || strings.TrimSpace(id) == "" {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidRecordID)
		return
	}

	var req scheduleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log(r.Context(), "Update", "schedule_id", id, "error_kind", "bad_request").ErrorContext(r.Context(), "failed to decode schedule update", "error", err)
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	logger := h.log(r.Context(), "Update", "schedule_id", id)
	schedule, err := h.service.Replace(r.Context(), id, req.toInput())
	if err != nil {
		logger.ErrorContext(r.Context(), "schedule update failed", "error", err)
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.InfoContext(r.Context(), "schedule updated")
	h.responder.writeJSON(r.Context(), w, http.StatusOK, scheduleCreatedResponse{Schedule: toScheduleRefsDTO(schedule)})
}

func (h *ScheduleHandler) Get(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	id, ok := EntityIDFromContext(r.Context())
	if !ok || strings.TrimSpace(id) == "" {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidRecordID)
		return
	}

	logger := h.log(r.Context(), "Get", "schedule_id", id)
	schedule, err := h.service.Get(r.Context(), id)
	if err != nil {
		logger.ErrorContext(r.Context(), "schedule fetch failed", "error", err)
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusOK, scheduleResponse{Schedule: toScheduleDTO(schedule)})
}

func (h *ScheduleHandler) List(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	logger := h.log(r.Context(), "List")
	schedules, err := h.service.List(r.Context())
	if err != nil {
		logger.ErrorContext(r.Context(), "schedule list failed", "error", err)
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.With("result_count", len(schedules)).InfoContext(r.Context(), "schedules listed")
	h.responder.writeJSON(r.Context(), w, http.StatusOK, listSchedulesResponse{Schedules: toScheduleDTOs(schedules)})
}

func (h *ScheduleHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	id, ok := EntityIDFromContext(r.Context())
	if !ok || strings.TrimSpace(id) == "" {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidRecordID)
		return
	}

	logger := h.log(r.Context(), "Delete", "schedule_id", id)
	if err := h.service.Delete(r.Context(), id); err != nil {
		logger.ErrorContext(r.Context(), "schedule delete failed", "error", err)
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.InfoContext(r.Context(), "schedule deleted")
	h.responder.writeJSON(r.Context(), w, http.StatusNoContent, nil)
}

type scheduleRequest struct {
	SessionID   string `json:"session_id"`
	RoomID      string `json:"room_id"`
	TopicID     string `json:"topic_id"`
	PresenterID string `json:"presenter_id"`
}

func (r scheduleRequest) toInput() application.ScheduleInput {
	return application.ScheduleInput{
		SessionID:   r.SessionID,
		RoomID:      r.RoomID,
		TopicID:     r.TopicID,
		PresenterID: r.PresenterID,
	}
}

type scheduleResponse struct {
	Schedule scheduleDTO `json:"schedule"`
}

type scheduleCreatedResponse struct {
	Schedule scheduleRefsDTO `json:"schedule"`
}

type listSchedulesResponse struct {
	Schedules []scheduleDTO `json:"schedules"`
}

// scheduleRefsDTO is the raw record: the four reference ids as stored.
type scheduleRefsDTO struct {
	ID          string `json:"id"`
	URL         string `json:"url"`
	SessionID   string `json:"session_id"`
	RoomID      string `json:"room_id"`
	TopicID     string `json:"topic_id"`
	PresenterID string `json:"presenter_id"`
}

// scheduleDTO is the enriched form: each reference expanded inline, null
// when the referenced record no longer exists.
type scheduleDTO struct {
	ID        string        `json:"id"`
	URL       string        `json:"url"`
	Session   *sessionDTO   `json:"session"`
	Room      *roomDTO      `json:"room"`
	Topic     *topicDTO     `json:"topic"`
	Presenter *presenterDTO `json:"presenter"`
}

func toScheduleRefsDTO(schedule persistence.Schedule) scheduleRefsDTO {
	return scheduleRefsDTO{
		ID:          schedule.ID,
		URL:         application.ResourceURL(application.KindSchedule, schedule.ID),
		SessionID:   schedule.SessionID,
		RoomID:      schedule.RoomID,
		TopicID:     schedule.TopicID,
		PresenterID: schedule.PresenterID,
	}
}

func toScheduleDTO(schedule application.EnrichedSchedule) scheduleDTO {
	dto := scheduleDTO{
		ID:  schedule.ID,
		URL: application.ResourceURL(application.KindSchedule, schedule.ID),
	}
	if schedule.Session != nil {
		session := toSessionDTO(*schedule.Session)
		dto.Session = &session
	}
	if schedule.Room != nil {
		room := toRoomDTO(*schedule.Room)
		dto.Room = &room
	}
	if schedule.Topic != nil {
		topic := toTopicDTO(*schedule.Topic)
		dto.Topic = &topic
	}
	if schedule.Presenter != nil {
		presenter := toPresenterDTO(*schedule.Presenter)
		dto.Presenter = &presenter
	}
	return dto
}

func toScheduleDTOs(schedules []application.EnrichedSchedule) []scheduleDTO {
	if len(schedules) == 0 {
		return nil
	}
	out := make([]scheduleDTO, 0, len(schedules))
	for _, schedule := range schedules {
		out = append(out, toScheduleDTO(schedule))
	}
	return out
}
