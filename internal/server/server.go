// internal/server/server.go
package server

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"tara/internal/common/config"
	"tara/internal/common/logger"
	"tara/internal/goals"
	"tara/internal/intelligence"
	"tara/internal/models"
	"tara/internal/news"
	"tara/internal/store"
	"tara/internal/workflow"
)

// GuidanceProvider answers local-bureaucracy questions outside the goal
// wizard. The intelligence client implements it.
type GuidanceProvider interface {
	GetBureaucracyGuidance(ctx context.Context, country, purpose string, profile models.UserProfile) intelligence.Result
}

// Server is the HTTP surface over the wizard, the application tracker, the
// vault collections and the news aggregator.
type Server struct {
	cfg    config.ServerConfig
	logger logger.Logger

	repo     *store.Repository
	goals    *goals.Service
	news     *news.Aggregator
	guidance GuidanceProvider

	// one local user, one wizard session; handlers serialize on this
	wizardMu sync.Mutex
	wizard   *workflow.Workflow

	router *mux.Router
	http   *http.Server
}

func New(cfg config.ServerConfig, repo *store.Repository, wizard *workflow.Workflow, goalSvc *goals.Service, aggregator *news.Aggregator, guidance GuidanceProvider, log logger.Logger) *Server {
	s := &Server{
		cfg:      cfg,
		logger:   log,
		repo:     repo,
		goals:    goalSvc,
		news:     aggregator,
		guidance: guidance,
		wizard:   wizard,
	}
	s.router = s.routes()
	return s
}

func (s *Server) routes() *mux.Router {
	r := mux.NewRouter()
	r.Use(s.requestLogging)

	api := r.PathPrefix("/api").Subrouter()

	// goal creation wizard
	api.HandleFunc("/goals", s.handleStartGoal).Methods(http.MethodPost)
	api.HandleFunc("/goals", s.handleCancelGoal).Methods(http.MethodDelete)
	api.HandleFunc("/goals/questions", s.handleQuestions).Methods(http.MethodGet)
	api.HandleFunc("/goals/answers", s.handleSubmitAnswers).Methods(http.MethodPost)
	api.HandleFunc("/goals/citizenship", s.handleCitizenship).Methods(http.MethodPost)

	// tracked applications
	api.HandleFunc("/applications", s.handleListApplications).Methods(http.MethodGet)
	api.HandleFunc("/applications/{id}", s.handleGetApplication).Methods(http.MethodGet)
	api.HandleFunc("/applications/{id}", s.handleDeleteApplication).Methods(http.MethodDelete)
	api.HandleFunc("/applications/{id}/status", s.handleUpdateStatus).Methods(http.MethodPost)
	api.HandleFunc("/applications/{id}/steps/{stepID}/toggle", s.handleToggleStep).Methods(http.MethodPost)
	api.HandleFunc("/applications/{id}/documents/toggle", s.handleToggleDocument).Methods(http.MethodPost)

	// profile and vault collections
	api.HandleFunc("/profile", s.handleGetProfile).Methods(http.MethodGet)
	api.HandleFunc("/profile", s.handlePutProfile).Methods(http.MethodPut)
	api.HandleFunc("/documents", s.handleListDocuments).Methods(http.MethodGet)
	api.HandleFunc("/documents", s.handleAddDocument).Methods(http.MethodPost)
	api.HandleFunc("/appointments", s.handleListAppointments).Methods(http.MethodGet)
	api.HandleFunc("/appointments", s.handleAddAppointment).Methods(http.MethodPost)
	api.HandleFunc("/roadmaps", s.handleListRoadmaps).Methods(http.MethodGet)
	api.HandleFunc("/roadmaps", s.handleAddRoadmap).Methods(http.MethodPost)

	// news and local-bureaucracy guidance
	api.HandleFunc("/news", s.handleNews).Methods(http.MethodGet)
	api.HandleFunc("/guidance", s.handleGuidance).Methods(http.MethodPost)

	r.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)
	r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)
	return r
}

// Handler exposes the router for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start begins serving and blocks until the listener fails or Shutdown is
// called.
func (s *Server) Start() error {
	s.http = &http.Server{
		Addr:         s.cfg.Address,
		Handler:      s.router,
		ReadTimeout:  time.Duration(s.cfg.ReadTimeout) * time.Millisecond,
		WriteTimeout: time.Duration(s.cfg.WriteTimeout) * time.Millisecond,
	}
	s.logger.Info("http server listening", map[string]interface{}{
		"addr": s.http.Addr,
	})
	return s.http.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	if s.http == nil {
		return nil
	}
	return s.http.Shutdown(ctx)
}

func (s *Server) requestLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.logger.Debug("request handled", map[string]interface{}{
			"method":      r.Method,
			"path":        r.URL.Path,
			"duration_ms": time.Since(start).Milliseconds(),
		})
	})
}
