// Package web provides the HTTP server and JSON handlers for the
// guarantee service.
package web

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/tfgate/guarantees/internal/config"
	"github.com/tfgate/guarantees/internal/core"
	"github.com/tfgate/guarantees/internal/web/middleware"
)

// Server is the HTTP server for the guarantee API.
type Server struct {
	service *core.Service
	cfg     *config.Config
	router  *chi.Mux
	server  *http.Server
}

// NewServer creates a new Server instance.
func NewServer(service *core.Service, cfg *config.Config) *Server {
	s := &Server{
		service: service,
		cfg:     cfg,
		router:  chi.NewRouter(),
	}
	s.setupMiddleware()
	s.setupRoutes()
	return s
}

// setupMiddleware configures middleware for all routes.
func (s *Server) setupMiddleware() {
	s.router.Use(chimw.RequestID)
	s.router.Use(chimw.RealIP)
	s.router.Use(middleware.Logger)
	s.router.Use(chimw.Recoverer)
	s.router.Use(chimw.Timeout(s.cfg.Server.RequestTimeout))

	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.cfg.Security.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Actor-ID"},
		MaxAge:         300,
	}))

	// Security hardening
	s.router.Use(s.securityHeaders)
}

// setupRoutes configures all HTTP routes.
func (s *Server) setupRoutes() {
	s.router.Get("/healthz", s.handleHealth)

	s.router.Route("/api", func(r chi.Router) {
		// Sample payloads need no identity; they exist so integrators
		// can see what the ingestion pipeline accepts.
		r.Get("/samples/{format}", s.handleSample)

		r.Group(func(r chi.Router) {
			r.Use(s.withActor)

			// Guarantees
			r.Get("/guarantees", s.handleListGuarantees)
			r.Post("/guarantees", s.handleCreateGuarantee)
			r.Get("/guarantees/pending-review", s.handlePendingReviews)
			r.Get("/guarantees/{id}", s.handleGetGuarantee)
			r.Put("/guarantees/{id}", s.handleUpdateGuarantee)
			r.Delete("/guarantees/{id}", s.handleDeleteGuarantee)
			r.Get("/guarantees/{id}/review", s.handleGetReview)

			// Workflow transitions
			r.Post("/guarantees/{id}/submit", s.handleSubmitForReview)
			r.Post("/guarantees/{id}/apply", s.handleApplyGuarantee)
			r.Post("/guarantees/{id}/issue", s.handleIssueGuarantee)
			r.Post("/guarantees/{id}/reject", s.handleRejectGuarantee)

			// Files
			r.Get("/files", s.handleListFiles)
			r.Post("/files", s.handleUploadFile)
			r.Get("/files/{id}", s.handleGetFile)
			r.Get("/files/{id}/contents", s.handleFileContents)
			r.Post("/files/{id}/process", s.handleProcessFile)
		})
	})
}

// Start begins listening for HTTP requests.
func (s *Server) Start() error {
	s.server = &http.Server{
		Addr:         s.cfg.Server.Addr(),
		Handler:      s.router,
		ReadTimeout:  s.cfg.Server.ReadTimeout,
		WriteTimeout: s.cfg.Server.WriteTimeout,
		IdleTimeout:  s.cfg.Server.IdleTimeout,
	}
	return s.server.ListenAndServe()
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}

// Router returns the underlying chi router for testing.
func (s *Server) Router() *chi.Mux {
	return s.router
}

// securityHeaders adds security headers to all responses.
func (s *Server) securityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Prevent MIME type sniffing
		w.Header().Set("X-Content-Type-Options", "nosniff")

		// Prevent clickjacking
		w.Header().Set("X-Frame-Options", "DENY")

		// Control referrer information
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")

		if s.cfg.Security.EnableCSP {
			w.Header().Set("Content-Security-Policy", "default-src 'none'")
		}

		next.ServeHTTP(w, r)
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
