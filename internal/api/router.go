package api

import (
	"context"
	"encoding/json"
	"net/http"
	"runtime"
	"time"

	"github.com/Harshitk-cp/caes/internal/api/handlers"
	mw "github.com/Harshitk-cp/caes/internal/api/middleware"
	"github.com/Harshitk-cp/caes/internal/buildconfig"
	"github.com/Harshitk-cp/caes/internal/domain"
	"github.com/Harshitk-cp/caes/internal/service"
	"github.com/Harshitk-cp/caes/internal/store"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
)

// Options configures the HTTP surface. Zero values disable the optional
// layers: no API key means /v1 is open, no RPS means no rate limiting.
type Options struct {
	APIKey         string
	RateLimitRPS   float64
	RateLimitBurst int
	AllowedOrigins []string
	Parallelism    int
	EvalTimeout    time.Duration
}

// App holds the router and the services behind it.
type App struct {
	Router     *chi.Mux
	Graphs     *service.GraphService
	Audiences  *service.AudienceService
	Evaluation *service.EvaluationService
	metrics    *mw.Metrics
	startTime  time.Time
}

func NewApp(graphStore domain.GraphStore, audienceStore domain.AudienceStore, registry *domain.StandardRegistry, opts Options, logger *zap.Logger) *App {
	// Services
	graphSvc := service.NewGraphService(graphStore, logger)
	audienceSvc := service.NewAudienceService(audienceStore, graphStore, registry, logger)
	evaluationSvc := service.NewEvaluationService(graphSvc, audienceSvc, registry, opts.Parallelism, logger)

	// Handlers
	graphHandler := handlers.NewGraphHandler(graphSvc, audienceSvc)
	audienceHandler := handlers.NewAudienceHandler(audienceSvc)
	evaluationHandler := handlers.NewEvaluationHandler(evaluationSvc, opts.EvalTimeout)
	standardsHandler := handlers.NewStandardsHandler(registry)

	r := chi.NewRouter()
	app := &App{
		Router:     r,
		Graphs:     graphSvc,
		Audiences:  audienceSvc,
		Evaluation: evaluationSvc,
		metrics:    &mw.Metrics{},
		startTime:  time.Now(),
	}

	// Global middleware (order matters)
	r.Use(mw.RequestID)           // Generate/extract request ID first
	r.Use(middleware.RealIP)      // Extract real IP
	r.Use(app.metrics.Middleware) // Collect metrics
	r.Use(mw.Logging(logger))     // Log all requests
	r.Use(middleware.Recoverer)   // Recover from panics
	if opts.RateLimitRPS > 0 {
		r.Use(mw.RateLimit(opts.RateLimitRPS, opts.RateLimitBurst))
	}
	if len(opts.AllowedOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   opts.AllowedOrigins,
			AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", mw.RequestIDHeader},
			ExposedHeaders:   []string{mw.RequestIDHeader},
			AllowCredentials: false,
			MaxAge:           300,
		}))
	}

	// Unauthenticated
	r.Get("/health", healthHandler(graphStore))
	r.Get("/metrics", app.metricsHandler())
	r.Get("/version", versionHandler)

	r.Route("/v1", func(r chi.Router) {
		if opts.APIKey != "" {
			r.Use(mw.APIKeyAuth(opts.APIKey))
		}

		r.Get("/standards", standardsHandler.List)

		// Argument graphs
		r.Route("/graphs", func(r chi.Router) {
			r.Post("/", graphHandler.Create)
			r.Get("/", graphHandler.List)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", graphHandler.GetByID)
				r.Delete("/", graphHandler.Delete)
				r.Get("/export", graphHandler.Export)
				r.Post("/statements", graphHandler.AddStatements)
				r.Post("/arguments", graphHandler.AddArgument)
				r.Get("/cycles", graphHandler.Cycles)
				r.Post("/audiences", audienceHandler.Create)
				r.Get("/audiences", audienceHandler.ListByGraph)
				r.Post("/evaluate", evaluationHandler.Evaluate)
				r.Post("/label", evaluationHandler.Label)
			})
		})

		// Audiences
		r.Route("/audiences/{id}", func(r chi.Router) {
			r.Get("/", audienceHandler.GetByID)
			r.Delete("/", audienceHandler.Delete)
		})
	})

	return app
}

type pinger interface {
	Ping(ctx context.Context) error
}

func healthHandler(db pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := db.Ping(r.Context()); err != nil {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusServiceUnavailable)
			_ = json.NewEncoder(w).Encode(map[string]string{"status": "error", "error": err.Error()})
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	}
}

func versionHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(buildconfig.Get())
}

func (app *App) metricsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var memStats runtime.MemStats
		runtime.ReadMemStats(&memStats)

		uptime := time.Since(app.startTime)

		response := map[string]any{
			"uptime_seconds": uptime.Seconds(),
			"uptime_human":   uptime.Round(time.Second).String(),
			"goroutines":     runtime.NumGoroutine(),
			"memory": map[string]any{
				"alloc_mb": float64(memStats.Alloc) / 1024 / 1024,
				"sys_mb":   float64(memStats.Sys) / 1024 / 1024,
				"num_gc":   memStats.NumGC,
			},
			"go_version": runtime.Version(),
		}
		for k, v := range app.metrics.Snapshot() {
			response[k] = v
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(response)
	}
}

// Ensure stores satisfy interfaces at compile time.
var (
	_ domain.GraphStore    = (*store.GraphStore)(nil)
	_ domain.AudienceStore = (*store.AudienceStore)(nil)
	_ domain.GraphStore    = (*store.MemoryGraphStore)(nil)
	_ domain.AudienceStore = (*store.MemoryAudienceStore)(nil)
)
