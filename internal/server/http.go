package server

import (
	"context"
	"net/http"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/triviahq/trivia-api/internal/config"
	"github.com/triviahq/trivia-api/internal/trivia"
	httperrors "github.com/triviahq/trivia-api/pkg/http/errors"
)

var requestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "trivia_http_requests_total",
	Help: "HTTP requests handled, by method and route.",
}, []string{"method", "route"})

// NewHTTPServer wires the trivia API routes plus health and metrics endpoints.
func NewHTTPServer(cfg *config.App, logger zerolog.Logger, pool *pgxpool.Pool, rdb *redis.Client, handlers *trivia.HTTPHandlers) *http.Server {
	mux := http.NewServeMux()

	// Unmatched paths get the standard envelope, not the mux's plain 404.
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		httperrors.RespondNotFound(w)
	})

	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	mux.Handle("/metrics", promhttp.Handler())

	mux.HandleFunc("/v1/ping", func(w http.ResponseWriter, r *http.Request) {
		if err := pingDependencies(r.Context(), pool, rdb); err != nil {
			logger.Error().Err(err).Msg("dependency ping failed")
			http.Error(w, "upstream error", http.StatusBadGateway)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"pong":true}`))
	})

	// Method checks live inside the handlers so that an unsupported method
	// yields the standard error envelope rather than the mux's plain 405.
	mux.HandleFunc("/categories", counted("/categories", handlers.Categories))
	mux.HandleFunc("/categories/{id}/questions", counted("/categories/{id}/questions", handlers.QuestionsByCategory))
	mux.HandleFunc("/questions", counted("/questions", handlers.Questions))
	mux.HandleFunc("/questions/{id}", counted("/questions/{id}", handlers.DeleteQuestion))
	mux.HandleFunc("/quizzes", counted("/quizzes", handlers.NextQuizQuestion))

	return &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: mux,
	}
}

func counted(route string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		requestsTotal.WithLabelValues(r.Method, route).Inc()
		next(w, r)
	}
}

func pingDependencies(ctx context.Context, pool *pgxpool.Pool, rdb *redis.Client) error {
	if err := pool.Ping(ctx); err != nil {
		return err
	}
	return rdb.Ping(ctx).Err()
}
