package ui

import (
	"log/slog"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/sync/semaphore"

	"powerfit/internal/config"
	"powerfit/internal/trials"
)

// App serves the estimator-comparison report: a JSON sweep API and an HTML
// summary page. Strictly downstream of the estimators.
type App struct {
	router *chi.Mux
	cfg    *config.Config

	// Sweeps are CPU-heavy; the semaphore keeps one running at a time
	sweepSem *semaphore.Weighted

	mu        sync.RWMutex
	lastSweep *trials.Sweep
}

// NewApp creates the report server
func NewApp(cfg *config.Config) *App {
	app := &App{
		router:   chi.NewRouter(),
		cfg:      cfg,
		sweepSem: semaphore.NewWeighted(1),
	}
	app.setupRoutes()
	return app
}

func (a *App) setupRoutes() {
	a.router.Use(middleware.RequestID)
	a.router.Use(middleware.Recoverer)

	a.router.Get("/", a.handleIndex)
	a.router.Get("/api/sweep", a.handleSweep)
}

// Router exposes the handler tree for tests and embedding
func (a *App) Router() http.Handler {
	return a.router
}

// Start runs the HTTP server on the configured port
func (a *App) Start() error {
	addr := ":" + a.cfg.Server.Port
	slog.Info("report server listening", "addr", addr)
	return http.ListenAndServe(addr, a.router)
}
