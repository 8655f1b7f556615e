package http

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/example/event-registry/internal/application"
)

type dashboardService interface {
	Summary(ctx context.Context) (application.Summary, error)
}

// DashboardHandler serves the catalog home page summary.
type DashboardHandler struct {
	service   dashboardService
	responder responder
	logger    *slog.Logger
}

func NewDashboardHandler(service dashboardService, logger *slog.Logger) *DashboardHandler {
	base := defaultLogger(logger)
	return &DashboardHandler{service: service, responder: newResponder(base), logger: base}
}

// Summary returns the per-collection record counts. A partially failed
// summary is still served with the counts that succeeded, flagged by the
// error field, so the dashboard stays usable during storage trouble.
func (h *DashboardHandler) Summary(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	logger := handlerLogger(r.Context(), h.logger, "DashboardHandler", "Summary")
	summary, err := h.service.Summary(r.Context())
	resp := dashboardResponse{
		Title: "Event Registration Home",
		Data:  toSummaryDTO(summary),
	}
	if err != nil {
		logger.WarnContext(r.Context(), "summary incomplete", "error", err)
		resp.Error = "some counts are unavailable"
	}

	h.responder.writeJSON(r.Context(), w, http.StatusOK, resp)
}

type dashboardResponse struct {
	Title string     `json:"title"`
	Data  summaryDTO `json:"data"`
	Error string     `json:"error,omitempty"`
}

type summaryDTO struct {
	Participants int `json:"participant_count"`
	Presenters   int `json:"presenter_count"`
	Sessions     int `json:"session_count"`
	Topics       int `json:"topic_count"`
	Rooms        int `json:"room_count"`
	HighSchools  int `json:"highschool_count"`
	Schedules    int `json:"schedule_count"`
}

func toSummaryDTO(summary application.Summary) summaryDTO {
	return summaryDTO{
		Participants: summary.Participants,
		Presenters:   summary.Presenters,
		Sessions:     summary.Sessions,
		Topics:       summary.Topics,
		Rooms:        summary.Rooms,
		HighSchools:  summary.HighSchools,
		Schedules:    summary.Schedules,
	}
}
