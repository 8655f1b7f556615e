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

type topicService interface {
	Create(ctx context.Context, input application.TopicInput) (persistence.Topic, error)
	Update(ctx context.Context, id string, input application.TopicInput) (persistence.Topic, error)
	List(ctx context.Context) ([]persistence.Topic, error)
	Delete(ctx context.Context, id string) error
}

// TopicHandler serves the presentation topic endpoints.
type TopicHandler struct {
	service   topicService
	resolver  detailResolver
	responder responder
	logger    *slog.Logger
}

func NewTopicHandler(service topicService, resolver detailResolver, logger *slog.Logger) *TopicHandler {
	base := defaultLogger(logger)
	return &TopicHandler{service: service, resolver: resolver, responder: newResponder(base), logger: base}
}

func (h *TopicHandler) log(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	if h == nil {
		return slog.Default()
	}
	return handlerLogger(ctx, h.logger, "TopicHandler", operation, attrs...)
}

func (h *TopicHandler) Create(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	var req topicRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log(r.Context(), "Create", "error_kind", "bad_request").ErrorContext(r.Context(), "failed to decode topic request", "error", err)
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	logger := h.log(r.Context(), "Create")
	topic, err := h.service.Create(r.Context(), req.toInput())
	if err != nil {
		logger.ErrorContext(r.Context(), "topic creation failed", "error", err)
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.With("topic_id", topic.ID).InfoContext(r.Context(), "topic created")
	h.responder.writeJSON(r.Context(), w, http.StatusCreated, topicResponse{Topic: toTopicDTO(topic)})
}

func (h *TopicHandler) Update(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	id, ok := EntityIDFromContext(r.Context())
	if !ok || strings.TrimSpace(id) == "" {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidRecordID)
		return
	}

	var req topicRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log(r.Context(), "Update", "topic_id", id, "error_kind", "bad_request").ErrorContext(r.Context(), "failed to decode topic update", "error", err)
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	logger := h.log(r.Context(), "Update", "topic_id", id)
	topic, err := h.service.Update(r.Context(), id, req.toInput())
	if err != nil {
		logger.ErrorContext(r.Context(), "topic update failed", "error", err)
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.InfoContext(r.Context(), "topic updated")
	h.responder.writeJSON(r.Context(), w, http.StatusOK, topicResponse{Topic: toTopicDTO(topic)})
}

// Detail returns the topic together with every schedule entry presenting it.
func (h *TopicHandler) Detail(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.resolver == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	id, ok := EntityIDFromContext(r.Context())
	if !ok || strings.TrimSpace(id) == "" {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidRecordID)
		return
	}

	logger := h.log(r.Context(), "Detail", "topic_id", id)
	result, err := h.resolver.Detail(r.Context(), application.KindTopic, id)
	if err != nil {
		logger.ErrorContext(r.Context(), "topic detail failed", "error", err)
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusOK, topicDetailResponse{
		Topic:     toTopicDTO(*result.Topic),
		Schedules: toScheduleDTOs(result.Schedules),
	})
}

func (h *TopicHandler) List(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	logger := h.log(r.Context(), "List")
	topics, err := h.service.List(r.Context())
	if err != nil {
		logger.ErrorContext(r.Context(), "topic list failed", "error", err)
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.With("result_count", len(topics)).InfoContext(r.Context(), "topics listed")
	h.responder.writeJSON(r.Context(), w, http.StatusOK, listTopicsResponse{Topics: toTopicDTOs(topics)})
}

func (h *TopicHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	id, ok := EntityIDFromContext(r.Context())
	if !ok || strings.TrimSpace(id) == "" {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidRecordID)
		return
	}

	logger := h.log(r.Context(), "Delete", "topic_id", id)
	if err := h.service.Delete(r.Context(), id); err != nil {
		logger.ErrorContext(r.Context(), "topic delete failed", "error", err)
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.InfoContext(r.Context(), "topic deleted")
	h.responder.writeJSON(r.Context(), w, http.StatusNoContent, nil)
}

type topicRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

func (r topicRequest) toInput() application.TopicInput {
	return application.TopicInput{
		Title:       strings.TrimSpace(r.Title),
		Description: strings.TrimSpace(r.Description),
	}
}

type topicResponse struct {
	Topic topicDTO `json:"topic"`
}

type topicDetailResponse struct {
	Topic     topicDTO      `json:"topic"`
	Schedules []scheduleDTO `json:"schedules"`
}

type listTopicsResponse struct {
	Topics []topicDTO `json:"topics"`
}

type topicDTO struct {
	ID          string `json:"id"`
	URL         string `json:"url"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

func toTopicDTO(topic persistence.Topic) topicDTO {
	return topicDTO{
		ID:          topic.ID,
		URL:         application.ResourceURL(application.KindTopic, topic.ID),
		Title:       topic.Title,
		Description: topic.Description,
	}
}

func toTopicDTOs(topics []persistence.Topic) []topicDTO {
	if len(topics) == 0 {
		return nil
	}
	out := make([]topicDTO, 0, len(topics))
	for _, topic := range topics {
		out = append(out, toTopicDTO(topic))
	}
	return out
}
