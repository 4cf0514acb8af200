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
	"github.com/dendisuhubdy/mybalivillas/services/storefront/internal/core/port"
)

type ServerConfig struct {
	Port           string
	AllowedOrigins []string
	CookieName     string
	CookieSecure   bool
	SessionTTL     time.Duration
}

// Server - BFF витрины.
type Server struct {
	httpServer *http.Server
	logger     port.LoggerPort
}

func NewRouter(cfg ServerConfig, handlers *StorefrontHandler, baseLogger port.LoggerPort) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RealIP, httplog.Middleware(baseLogger, "/healthz"), middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Trace-ID"},
		ExposedHeaders:   []string{"X-Trace-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	r.Use(SessionMiddleware(cfg.CookieName, cfg.CookieSecure, cfg.SessionTTL))

	r.Route("/api", func(r chi.Router) {
		r.Get("/properties", handlers.ListProperties)
		r.Get("/properties/featured", handlers.GetFeatured)
		r.Get("/properties/{slug}", handlers.GetProperty)
		r.Post("/properties/{id}/inquiries", handlers.SubmitInquiry)
		r.Get("/areas", handlers.ListAreas)

		r.Post("/auth/login", handlers.Login)
		r.Post("/auth/register", handlers.Register)
		r.Post("/auth/logout", handlers.Logout)
		r.Get("/auth/session", handlers.GetSession)
		r.Get("/session/events", handlers.SubscribeToSession)

		r.Get("/profile", handlers.GetProfile)
		r.Put("/profile", handlers.UpdateProfile)

		r.Get("/saved", handlers.ListSaved)
		r.Post("/saved/{id}", handlers.SaveProperty)
		r.Delete("/saved/{id}", handlers.UnsaveProperty)

		r.Post("/list-property/wizard", handlers.ListPropertyWizard)
	})

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		RespondWithJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	return r
}

func NewServer(cfg ServerConfig, handlers *StorefrontHandler, baseLogger port.LoggerPort) *Server {
	return &Server{
		httpServer: &http.Server{
			Addr:              ":" + cfg.Port,
			Handler:           NewRouter(cfg, handlers, baseLogger),
			ReadHeaderTimeout: 10 * time.Second,
		},
		logger: baseLogger.WithFields(port.Fields{"component": "rest_server"}),
	}
}

// Start запускает HTTP-сервер.
func (s *Server) Start() error {
	s.logger.Info("Starting REST API server", port.Fields{"address": s.httpServer.Addr})
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		s.logger.Error("Could not start server", err, nil)
		return fmt.Errorf("could not start server: %w", err)
	}
	return nil
}

// Stop корректно останавливает сервер.
func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("Stopping REST API server...", nil)
	return s.httpServer.Shutdown(ctx)
}
