package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"alertaVecino/internal/api/handlers/http/admin"
	"alertaVecino/internal/api/handlers/http/alerts"
	"alertaVecino/internal/api/handlers/http/system"
	"alertaVecino/internal/config"
	"alertaVecino/internal/middleware"
	"alertaVecino/internal/service"
)

type Server struct {
	logger *slog.Logger
	router *chi.Mux
	cfg    config.Config
}

func NewServer(cfg *config.Config, logger *slog.Logger, svc *service.Service, locations alerts.LocationRecorder, checks map[string]system.Check) *Server {
	alertsHandler := alerts.NewHandler(logger, svc.Preferences, svc.Notifications, svc.Scheduler, locations)
	adminHandler := admin.NewHandler(logger, svc.Admin, svc.Stats)
	systemHandler := system.NewHandler(logger, checks)

	r := InitRouter(cfg, alertsHandler, adminHandler, systemHandler, logger)

	return &Server{
		logger: logger,
		router: r,
		cfg:    *cfg,
	}
}

func InitRouter(cfg *config.Config, alertsHandler *alerts.Handler, adminHandler *admin.Handler, systemHandler *system.Handler, logger *slog.Logger) *chi.Mux {
	r := chi.NewMux()

	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Logger)

	r.Route("/api/v1", func(api chi.Router) {
		// ADMIN
		api.Route("/admin", func(ar chi.Router) {
			ar.Use(middleware.APIKeyMiddleware(cfg.APIKey))
			ar.Use(middleware.Limit(2, 5, 10*time.Minute, logger))

			ar.Get("/stats", adminHandler.AdminStats)

			ar.Route("/candidates", func(cr chi.Router) {
				cr.Post("/", adminHandler.AdminCandidateCreate)
				cr.Get("/", adminHandler.AdminCandidateList)

				cr.Route("/{id}", func(rr chi.Router) {
					rr.Get("/", adminHandler.AdminCandidateGet)
					rr.Put("/", adminHandler.AdminCandidateUpdate)
					rr.Delete("/", adminHandler.AdminCandidateArchive)
				})
			})
		})

		// ALERTS
		api.Route("/alerts", func(pr chi.Router) {
			pr.Use(middleware.Limit(10, 20, 5*time.Minute, logger))

			pr.Post("/trigger", alertsHandler.TriggerEvaluation)

			pr.Route("/{userID}", func(ur chi.Router) {
				ur.Get("/preferences", alertsHandler.GetPreferences)
				ur.Put("/preferences", alertsHandler.SetPreferences)
				ur.Get("/notifications", alertsHandler.ListNotifications)
				ur.Post("/notifications/read-all", alertsHandler.MarkAllNotificationsRead)
			})
		})

		api.Route("/notifications", func(nr chi.Router) {
			nr.Use(middleware.Limit(10, 20, 5*time.Minute, logger))

			nr.Post("/{id}/read", alertsHandler.MarkNotificationRead)
			nr.Delete("/{id}", alertsHandler.DeleteNotification)
		})

		// SYSTEM
		api.Get("/health", systemHandler.SystemHealth)
	})

	return r
}

func (s *Server) Run(ctx context.Context) error {
	port := s.cfg.Http.Port
	if !strings.HasPrefix(port, ":") {
		port = ":" + port
	}

	srv := &http.Server{
		Addr:         port,
		Handler:      s.router,
		ReadTimeout:  s.cfg.Http.ReadTimeout,
		WriteTimeout: s.cfg.Http.WriteTimeout,
		IdleTimeout:  30 * time.Second,
	}

	errChan := make(chan error, 1)

	go func() {
		s.logger.Info("🚀 Starting HTTP server",
			slog.String("addr", srv.Addr),
			slog.Duration("read_timeout", s.cfg.Http.ReadTimeout),
			slog.Duration("write_timeout", s.cfg.Http.WriteTimeout),
		)

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- fmt.Errorf("ListenAndServe error: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		s.logger.Info("🛑 Shutting down HTTP server", slog.String("reason", ctx.Err().Error()))

		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.Http.ShutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error("Server shutdown failed", slog.Any("error", err))
			return err
		}
		return nil

	case err := <-errChan:
		return err
	}
}
