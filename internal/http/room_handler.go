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

type roomService interface {
	Create(ctx context.Context, input application.RoomInput) (persistence.Room, error)
	Update(ctx context.Context, id string, input application.RoomInput) (persistence.Room, error)
	List(ctx context.Context) ([]persistence.Room, error)
	Delete(ctx context.Context, id string) error
}

// detailResolver reconstructs the schedule entries touching one record.
// Shared by the four handlers whose records participate in schedules.
type detailResolver interface {
	Detail(ctx context.Context, kind application.EntityKind, id string) (application.DetailResult, error)
}

// RoomHandler serves the venue room endpoints.
type RoomHandler struct {
	service   roomService
	resolver  detailResolver
	responder responder
	logger    *slog.Logger
}

func NewRoomHandler(service roomService, resolver detailResolver, logger *slog.Logger) *RoomHandler {
	base := defaultLogger(logger)
	return &RoomHandler{service: service, resolver: resolver, responder: newResponder(base), logger: base}
}

func (h *RoomHandler) log(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	if h == nil {
		return slog.Default()
	}
	return handlerLogger(ctx, h.logger, "RoomHandler", operation, attrs...)
}

func (h *RoomHandler) Create(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	var req roomRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log(r.Context(), "Create", "error_kind", "bad_request").ErrorContext(r.Context(), "failed to decode room request", "error", err)
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	logger := h.log(r.Context(), "Create")
	room, err := h.service.Create(r.Context(), req.toInput())
	if err != nil {
		logger.ErrorContext(r.Context(), "room creation failed", "error", err)
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.With("room_id", room.ID).InfoContext(r.Context(), "room created")
	h.responder.writeJSON(r.Context(), w, http.StatusCreated, roomResponse{Room: toRoomDTO(room)})
}

func (h *RoomHandler) Update(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	id, ok := EntityIDFromContext(r.Context())
	if !ok || strings.TrimSpace(id) == "" {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidRecordID)
		return
	}

	var req roomRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log(r.Context(), "Update", "room_id", id, "error_kind", "bad_request").ErrorContext(r.Context(), "failed to decode room update", "error", err)
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	logger := h.log(r.Context(), "Update", "room_id", id)
	room, err := h.service.Update(r.Context(), id, req.toInput())
	if err != nil {
		logger.ErrorContext(r.Context(), "room update failed", "error", err)
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.InfoContext(r.Context(), "room updated")
	h.responder.writeJSON(r.Context(), w, http.StatusOK, roomResponse{Room: toRoomDTO(room)})
}

// Detail returns the room together with every schedule entry booked into it.
func (h *RoomHandler) Detail(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.resolver == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	id, ok := EntityIDFromContext(r.Context())
	if !ok || strings.TrimSpace(id) == "" {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidRecordID)
		return
	}

	logger := h.log(r.Context(), "Detail", "room_id", id)
	result, err := h.resolver.Detail(r.Context(), application.KindRoom, id)
	if err != nil {
		logger.ErrorContext(r.Context(), "room detail failed", "error", err)
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusOK, roomDetailResponse{
		Room:      toRoomDTO(*result.Room),
		Schedules: toScheduleDTOs(result.Schedules),
	})
}

func (h *RoomHandler) List(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	logger := h.log(r.Context(), "List")
	rooms, err := h.service.List(r.Context())
	if err != nil {
		logger.ErrorContext(r.Context(), "room list failed", "error", err)
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.With("result_count", len(rooms)).InfoContext(r.Context(), "rooms listed")
	h.responder.writeJSON(r.Context(), w, http.StatusOK, listRoomsResponse{Rooms: toRoomDTOs(rooms)})
}

func (h *RoomHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	id, ok := EntityIDFromContext(r.Context())
	if !ok || strings.TrimSpace(id) == "" {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidRecordID)
		return
	}

	logger := h.log(r.Context(), "Delete", "room_id", id)
	if err := h.service.Delete(r.Context(), id); err != nil {
		logger.ErrorContext(r.Context(), "room delete failed", "error", err)
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.InfoContext(r.Context(), "room deleted")
	h.responder.writeJSON(r.Context(), w, http.StatusNoContent, nil)
}

type roomRequest struct {
	RoomNumber int    `json:"room_number"`
	Building   string `json:"building"`
	Capacity   int    `json:"capacity"`
}

func (r roomRequest) toInput() application.RoomInput {
	return application.RoomInput{
		RoomNumber: r.RoomNumber,
		Building:   strings.TrimSpace(r.Building),
		Capacity:   r.Capacity,
	}
}

type roomResponse struct {
	Room roomDTO `json:"room"`
}

type roomDetailResponse struct {
	Room      roomDTO       `json:"room"`
	Schedules []scheduleDTO `json:"schedules"`
}

type listRoomsResponse struct {
	Rooms []roomDTO `json:"rooms"`
}

type roomDTO struct {
	ID         string `json:"id"`
	URL        string `json:"url"`
	RoomNumber int    `json:"room_number"`
	Building   string `json:"building"`
	Capacity   int    `json:"capacity"`
}

func toRoomDTO(room persistence.Room) roomDTO {
	return roomDTO{
		ID:         room.ID,
		URL:        application.ResourceURL(application.KindRoom, room.ID),
		RoomNumber: room.RoomNumber,
		Building:   room.Building,
		Capacity:   room.Capacity,
	}
}

func toRoomDTOs(rooms []persistence.Room) []roomDTO {
	if len(rooms) == 0 {
		return nil
	}
	out := make([]roomDTO, 0, len(rooms))
	for _, room := range rooms {
		out = append(out, toRoomDTO(room))
	}
	return out
}
