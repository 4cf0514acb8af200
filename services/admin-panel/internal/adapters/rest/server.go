package rest

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/dendisuhubdy/mybalivillas/pkg/httplog"
	"github.com/dendisuhubdy/mybalivillas/services/admin-panel/internal/core/port"
)

type ServerConfig struct {
	Port           string
	AllowedOrigins []string
	CookieName     string
	CookieSecure   bool
	SessionTTL     time.Duration
}

// Server - BFF админки.
type Server struct {
	httpServer *http.Server
	logger     port.LoggerPort
}

func NewRouter(cfg ServerConfig, handlers *AdminHandler, baseLogger port.LoggerPort) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RealIP, httplog.Middleware(baseLogger, "/healthz"), middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Trace-ID"},
		ExposedHeaders:   []string{"X-Trace-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	r.Use(SessionMiddleware(cfg.CookieName, cfg.CookieSecure, cfg.SessionTTL))

	r.Route("/api", func(r chi.Router) {
		r.Post("/auth/login", handlers.Login)
		r.Post("/auth/logout", handlers.Logout)
		r.Get("/auth/session", handlers.GetSession)
		r.Get("/session/events", handlers.SubscribeToSession)

		r.Get("/dashboard", handlers.GetDashboard)

		r.Route("/properties", func(r chi.Router) {
			r.Get("/", handlers.ListProperties)
			r.Post("/", handlers.CreateProperty)
			r.Get("/new", handlers.NewPropertyForm)
			r.Post("/form", handlers.ApplyFormOp)
			r.Get("/{id}", handlers.GetProperty)
			r.Put("/{id}", handlers.UpdateProperty)
			r.Delete("/{id}", handlers.DeleteProperty)
			r.Patch("/{id}/toggle-featured", handlers.ToggleFeatured)
		})

		r.Route("/users", func(r chi.Router) {
			r.Get("/", handlers.ListUsers)
			r.Post("/", handlers.CreateUser)
			r.Put("/{id}", handlers.UpdateUser)
			r.Patch("/{id}/toggle-active", handlers.ToggleUserActive)
		})

		r.Get("/inquiries", handlers.ListInquiries)
		r.Patch("/inquiries/{id}/status", handlers.UpdateInquiryStatus)
	})

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		RespondWithJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	return r
}

func NewServer(cfg ServerConfig, handlers *AdminHandler, baseLogger port.LoggerPort) *Server {
	return &Server{
		httpServer: &http.Server{
			Addr:              ":" + cfg.Port,
			Handler:           NewRouter(cfg, handlers, baseLogger),
			ReadHeaderTimeout: 10 * time.Second,
		},
		logger: baseLogger.WithFields(port.Fields{"component": "rest_server"}),
	}
}

func (s *Server) Start() error {
	s.logger.Info("Starting admin panel server", port.Fields{"address": s.httpServer.Addr})
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		s.logger.Error("Could not start server", err, nil)
		return fmt.Errorf("could not start server: %w", err)
	}
	return nil
}

func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("Stopping admin panel server...", nil)
	return s.httpServer.Shutdown(ctx)
}
