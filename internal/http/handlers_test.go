package http

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/example/event-registry/internal/testfixtures"
)

func newTestRouter(t *testing.T, opts ...testfixtures.HarnessOption) (http.Handler, *testfixtures.Harness) {
	t.Helper()
	harness := testfixtures.NewHarness(opts...)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	metrics := NewMetrics()

	router := NewRouter(RouterConfig{
		Dashboard:    NewDashboardHandler(harness.Dashboard, logger),
		HighSchools:  NewHighSchoolHandler(harness.HighSchools, logger),
		Participants: NewParticipantHandler(harness.Participants, logger),
		Presenters:   NewPresenterHandler(harness.Presenters, harness.Resolver, logger),
		Rooms:        NewRoomHandler(harness.Rooms, harness.Resolver, logger),
		Sessions:     NewSessionHandler(harness.Sessions, harness.Resolver, logger),
		Topics:       NewTopicHandler(harness.Topics, harness.Resolver, logger),
		Schedules:    NewScheduleHandler(harness.Schedules, logger),
		Registration: NewRegistrationHandler(harness.Participants, harness.HighSchools, logger),
		Metrics:      metrics.Handler(),
		Middleware: []func(http.Handler) http.Handler{
			RequestLogger(logger),
			metrics.Middleware(),
		},
	})
	return router, harness
}

func doJSON(t *testing.T, router http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var payload map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("invalid JSON response %q: %v", rec.Body.String(), err)
	}
	return payload
}

func TestRouter_RootRedirect(t *testing.T) {
	router, _ := newTestRouter(t)
	rec := doJSON(t, router, http.MethodGet, "/", "")
	if rec.Code != http.StatusMovedPermanently {
		t.Fatalf("expected redirect, got %d", rec.Code)
	}
	if location := rec.Header().Get("Location"); location != "/index" {
		t.Fatalf("redirect location = %q", location)
	}
}

func TestDashboardEndpoint(t *testing.T) {
	router, harness := newTestRouter(t)
	harness.SeedTopic(t, "t-1", "Robotics")
	harness.SeedTopic(t, "t-2", "Chemistry")
	harness.SeedSession(t, "s-1", "08:00", "09:00")

	rec := doJSON(t, router, http.MethodGet, "/index", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	payload := decodeBody(t, rec)
	data, ok := payload["data"].(map[string]any)
	if !ok {
		t.Fatalf("missing data object: %v", payload)
	}
	if data["topic_count"] != float64(2) || data["session_count"] != float64(1) {
		t.Fatalf("unexpected counts: %v", data)
	}
	if _, present := payload["error"]; present {
		t.Fatalf("healthy summary should omit error: %v", payload)
	}
}

func TestScheduleEndpoints(t *testing.T) {
	t.Run("empty composition reports all four fields", func(t *testing.T) {
		router, _ := newTestRouter(t)
		rec := doJSON(t, router, http.MethodPost, "/index/schedules", `{}`)
		if rec.Code != http.StatusUnprocessableEntity {
			t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
		}
		payload := decodeBody(t, rec)
		fieldErrors, ok := payload["errors"].(map[string]any)
		if !ok {
			t.Fatalf("missing errors map: %v", payload)
		}
		for _, field := range []string{"session", "room", "topic", "presenter"} {
			if _, present := fieldErrors[field]; !present {
				t.Errorf("expected error for %q: %v", field, fieldErrors)
			}
		}
	})

	t.Run("legacy composition accepts unverified ids", func(t *testing.T) {
		router, _ := newTestRouter(t)
		rec := doJSON(t, router, http.MethodPost, "/index/schedules",
			`{"session_id":"s-x","room_id":"r-x","topic_id":"t-x","presenter_id":"p-x"}`)
		if rec.Code != http.StatusCreated {
			t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
		}
	})

	t.Run("strict composition rejects unverified ids", func(t *testing.T) {
		router, _ := newTestRouter(t, testfixtures.WithStrictCompose())
		rec := doJSON(t, router, http.MethodPost, "/index/schedules",
			`{"session_id":"s-x","room_id":"r-x","topic_id":"t-x","presenter_id":"p-x"}`)
		if rec.Code != http.StatusUnprocessableEntity {
			t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
		}
	})

	t.Run("malformed body is a bad request", func(t *testing.T) {
		router, _ := newTestRouter(t)
		rec := doJSON(t, router, http.MethodPost, "/index/schedules", `{not json`)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("status = %d", rec.Code)
		}
	})
}

func TestDetailEndpoints(t *testing.T) {
	t.Run("room detail expands schedules and nulls dangling references", func(t *testing.T) {
		router, harness := newTestRouter(t)
		harness.SeedRoom(t, "r-1", 101)
		harness.SeedSession(t, "s-1", "08:00", "09:00")
		harness.SeedTopic(t, "t-1", "Robotics")
		harness.SeedSchedule(t, "sch-1", "s-1", "r-1", "t-1", "ghost-presenter")

		rec := doJSON(t, router, http.MethodGet, "/index/rooms/r-1", "")
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
		}
		payload := decodeBody(t, rec)
		schedules, ok := payload["schedules"].([]any)
		if !ok || len(schedules) != 1 {
			t.Fatalf("expected one schedule: %v", payload)
		}
		entry := schedules[0].(map[string]any)
		if entry["presenter"] != nil {
			t.Fatalf("dangling presenter should be null: %v", entry)
		}
		session, ok := entry["session"].(map[string]any)
		if !ok || session["time"] != "08:00 - 09:00" {
			t.Fatalf("expected expanded session time: %v", entry)
		}
	})

	t.Run("unknown topic is a 404", func(t *testing.T) {
		router, _ := newTestRouter(t)
		rec := doJSON(t, router, http.MethodGet, "/index/topics/ghost", "")
		if rec.Code != http.StatusNotFound {
			t.Fatalf("status = %d", rec.Code)
		}
	})

	t.Run("participant detail nulls a deleted school", func(t *testing.T) {
		router, harness := newTestRouter(t)
		harness.SeedHighSchool(t, "hs-1", "Central High")
		rec := doJSON(t, router, http.MethodPost, "/index/participants",
			`{"last_name":"Rivera","first_name":"Sam","address":"12 Elm","email":"sam@example.com","high_school_id":"hs-1"}`)
		if rec.Code != http.StatusCreated {
			t.Fatalf("create status = %d, body %s", rec.Code, rec.Body.String())
		}
		created := decodeBody(t, rec)["participant"].(map[string]any)
		id := created["id"].(string)

		rec = doJSON(t, router, http.MethodDelete, "/index/highschools/hs-1", "")
		if rec.Code != http.StatusNoContent {
			t.Fatalf("delete status = %d", rec.Code)
		}

		rec = doJSON(t, router, http.MethodGet, "/index/participants/"+id, "")
		if rec.Code != http.StatusOK {
			t.Fatalf("detail status = %d", rec.Code)
		}
		payload := decodeBody(t, rec)
		if payload["highschool"] != nil {
			t.Fatalf("expected null school: %v", payload)
		}
	})
}

func TestRegistrationFlow(t *testing.T) {
	router, harness := newTestRouter(t)
	harness.SeedHighSchool(t, "hs-1", "Central High")

	rec := doJSON(t, router, http.MethodGet, "/register", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("form status = %d", rec.Code)
	}
	payload := decodeBody(t, rec)
	schools, ok := payload["highschools"].([]any)
	if !ok || len(schools) != 1 {
		t.Fatalf("expected school list: %v", payload)
	}

	rec = doJSON(t, router, http.MethodPost, "/register",
		`{"last_name":"Rivera","first_name":"Sam","address":"12 Elm","email":"sam@example.com","high_school_id":"hs-1"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("submit status = %d, body %s", rec.Code, rec.Body.String())
	}

	rec = doJSON(t, router, http.MethodGet, "/register/submitted", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("submitted status = %d", rec.Code)
	}
}

func TestMethodNotAllowed(t *testing.T) {
	router, _ := newTestRouter(t)
	rec := doJSON(t, router, http.MethodPatch, "/index/rooms", "")
	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("status = %d", rec.Code)
	}
	if allow := rec.Header().Get("Allow"); !strings.Contains(allow, http.MethodGet) {
		t.Fatalf("Allow header = %q", allow)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	router, _ := newTestRouter(t)
	// Generate one observation first.
	doJSON(t, router, http.MethodGet, "/index", "")

	rec := doJSON(t, router, http.MethodGet, "/metrics", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "event_registry_http_requests_total") {
		t.Fatal("expected request counter in scrape output")
	}
}
