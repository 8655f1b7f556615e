package http

import (
	"net/http"
	"strings"
)

// basePath is the shared prefix for all catalog routes.
const basePath = "/index"

type RouterConfig struct {
	Dashboard    *DashboardHandler
	HighSchools  *HighSchoolHandler
	Participants *ParticipantHandler
	Presenters   *PresenterHandler
	Rooms        *RoomHandler
	Sessions     *SessionHandler
	Topics       *TopicHandler
	Schedules    *ScheduleHandler
	Registration *RegistrationHandler
	Metrics      http.Handler
	Middleware   []func(http.Handler) http.Handler
}

func NewRouter(cfg RouterConfig) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		http.Redirect(w, r, basePath, http.StatusMovedPermanently)
	})

	if cfg.Dashboard != nil {
		mux.HandleFunc(basePath, func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodGet {
				methodNotAllowed(w, http.MethodGet)
				return
			}
			cfg.Dashboard.Summary(w, r)
		})
	}

	if cfg.HighSchools != nil {
		registerCollection(mux, "highschools", collectionHandlers{
			list:   cfg.HighSchools.List,
			create: cfg.HighSchools.Create,
			get:    cfg.HighSchools.Get,
			update: cfg.HighSchools.Update,
			delete: cfg.HighSchools.Delete,
		})
	}

	if cfg.Participants != nil {
		registerCollection(mux, "participants", collectionHandlers{
			list:   cfg.Participants.List,
			create: cfg.Participants.Create,
			get:    cfg.Participants.Get,
			update: cfg.Participants.Update,
			delete: cfg.Participants.Delete,
		})
	}

	if cfg.Presenters != nil {
		registerCollection(mux, "presenters", collectionHandlers{
			list:   cfg.Presenters.List,
			create: cfg.Presenters.Create,
			get:    cfg.Presenters.Detail,
			update: cfg.Presenters.Update,
			delete: cfg.Presenters.Delete,
		})
	}

	if cfg.Rooms != nil {
		registerCollection(mux, "rooms", collectionHandlers{
			list:   cfg.Rooms.List,
			create: cfg.Rooms.Create,
			get:    cfg.Rooms.Detail,
			update: cfg.Rooms.Update,
			delete: cfg.Rooms.Delete,
		})
	}

	if cfg.Sessions != nil {
		registerCollection(mux, "sessions", collectionHandlers{
			list:   cfg.Sessions.List,
			create: cfg.Sessions.Create,
			get:    cfg.Sessions.Detail,
			update: cfg.Sessions.Update,
			delete: cfg.Sessions.Delete,
		})
	}

	if cfg.Topics != nil {
		registerCollection(mux, "topics", collectionHandlers{
			list:   cfg.Topics.List,
			create: cfg.Topics.Create,
			get:    cfg.Topics.Detail,
			update: cfg.Topics.Update,
			delete: cfg.Topics.Delete,
		})
	}

	if cfg.Schedules != nil {
		registerCollection(mux, "schedules", collectionHandlers{
			list:   cfg.Schedules.List,
			create: cfg.Schedules.Create,
			get:    cfg.Schedules.Get,
			update: cfg.Schedules.Update,
			delete: cfg.Schedules.Delete,
		})
	}

	if cfg.Registration != nil {
		mux.HandleFunc("/register", func(w http.ResponseWriter, r *http.Request) {
			switch r.Method {
			case http.MethodGet:
				cfg.Registration.Form(w, r)
			case http.MethodPost:
				cfg.Registration.Submit(w, r)
			default:
				methodNotAllowed(w, http.MethodGet, http.MethodPost)
			}
		})
		mux.HandleFunc("/register/submitted", func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodGet {
				methodNotAllowed(w, http.MethodGet)
				return
			}
			cfg.Registration.Submitted(w, r)
		})
	}

	if cfg.Metrics != nil {
		mux.Handle("/metrics", cfg.Metrics)
	}

	var handler http.Handler = mux
	if len(cfg.Middleware) > 0 {
		for i := len(cfg.Middleware) - 1; i >= 0; i-- {
			if cfg.Middleware[i] != nil {
				handler = cfg.Middleware[i](handler)
			}
		}
	}

	return handler
}

type collectionHandlers struct {
	list   http.HandlerFunc
	create http.HandlerFunc
	get    http.HandlerFunc
	update http.HandlerFunc
	delete http.HandlerFunc
}

// registerCollection mounts the list/create route and the per-record route
// for one collection under the base path. The record id travels to handlers
// via the request context.
func registerCollection(mux *http.ServeMux, collection string, handlers collectionHandlers) {
	root := basePath + "/" + collection

	mux.HandleFunc(root, func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			handlers.list(w, r)
		case http.MethodPost:
			handlers.create(w, r)
		default:
			methodNotAllowed(w, http.MethodGet, http.MethodPost)
		}
	})

	mux.HandleFunc(root+"/", func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimPrefix(r.URL.Path, root+"/")
		if id == "" || strings.Contains(id, "/") {
			http.NotFound(w, r)
			return
		}
		ctx := ContextWithEntityID(r.Context(), id)
		r = r.WithContext(ctx)
		switch r.Method {
		case http.MethodGet:
			handlers.get(w, r)
		case http.MethodPut:
			handlers.update(w, r)
		case http.MethodDelete:
			handlers.delete(w, r)
		default:
			methodNotAllowed(w, http.MethodGet, http.MethodPut, http.MethodDelete)
		}
	})
}

func methodNotAllowed(w http.ResponseWriter, allowed ...string) {
	if len(allowed) > 0 {
		w.Header().Set("Allow", strings.Join(allowed, ", "))
	}
	http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
}
