package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"github.com/example/event-registry/internal/application"
	"github.com/example/event-registry/internal/config"
	httptransport "github.com/example/event-registry/internal/http"
	"github.com/example/event-registry/internal/persistence/sqlite"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	pool, err := sqlite.Open(cfg.DBDriver, cfg.DBDSN)
	if err != nil {
		logger.Error("failed to open storage", "error", err)
		os.Exit(1)
	}
	defer func() {
		if cerr := pool.Close(); cerr != nil {
			logger.Error("failed to close storage", "error", cerr)
		}
	}()

	if err := pool.CreateSchema(ctx); err != nil {
		logger.Error("failed to create schema", "error", err)
		os.Exit(1)
	}

	idGenerator := uuid.NewString
	now := time.Now

	highSchoolRepo := sqlite.NewHighSchoolRepository(pool)
	participantRepo := sqlite.NewParticipantRepository(pool)
	presenterRepo := sqlite.NewPresenterRepository(pool)
	roomRepo := sqlite.NewRoomRepository(pool)
	sessionRepo := sqlite.NewSessionRepository(pool)
	topicRepo := sqlite.NewTopicRepository(pool)
	scheduleRepo := sqlite.NewScheduleRepository(pool)

	refs := application.ReferenceRepositories{
		Sessions:   sessionRepo,
		Rooms:      roomRepo,
		Topics:     topicRepo,
		Presenters: presenterRepo,
	}

	highSchoolService := application.NewHighSchoolService(highSchoolRepo, idGenerator, logger)
	participantService := application.NewParticipantService(participantRepo, highSchoolRepo, idGenerator, now, logger)
	presenterService := application.NewPresenterService(presenterRepo, idGenerator, logger)
	roomService := application.NewRoomService(roomRepo, idGenerator, logger)
	sessionService := application.NewSessionService(sessionRepo, idGenerator, logger)
	topicService := application.NewTopicService(topicRepo, idGenerator, logger)
	scheduleService := application.NewScheduleService(scheduleRepo, refs, cfg.StrictCompose, idGenerator, logger)
	resolver := application.NewResolver(scheduleRepo, refs, logger)
	dashboard := application.NewDashboard(application.DashboardRepositories{
		HighSchools:  highSchoolRepo,
		Participants: participantRepo,
		Presenters:   presenterRepo,
		Rooms:        roomRepo,
		Sessions:     sessionRepo,
		Topics:       topicRepo,
		Schedules:    scheduleRepo,
	}, logger)

	metrics := httptransport.NewMetrics()

	router := httptransport.NewRouter(httptransport.RouterConfig{
		Dashboard:    httptransport.NewDashboardHandler(dashboard, logger),
		HighSchools:  httptransport.NewHighSchoolHandler(highSchoolService, logger),
		Participants: httptransport.NewParticipantHandler(participantService, logger),
		Presenters:   httptransport.NewPresenterHandler(presenterService, resolver, logger),
		Rooms:        httptransport.NewRoomHandler(roomService, resolver, logger),
		Sessions:     httptransport.NewSessionHandler(sessionService, resolver, logger),
		Topics:       httptransport.NewTopicHandler(topicService, resolver, logger),
		Schedules:    httptransport.NewScheduleHandler(scheduleService, logger),
		Registration: httptransport.NewRegistrationHandler(participantService, highSchoolService, logger),
		Metrics:      metrics.Handler(),
		Middleware: []func(http.Handler) http.Handler{
			httptransport.RequestLogger(logger),
			metrics.Middleware(),
		},
	})

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("failed to shutdown server", "error", err)
		}
	}()

	logger.Info("event registry API listening", "addr", server.Addr, "driver", cfg.DBDriver, "strict_compose", cfg.StrictCompose)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("server encountered error", "error", err)
		os.Exit(1)
	}
}
