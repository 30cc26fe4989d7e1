package api

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"golang.org/x/time/rate"

	"github.com/wonny/poolstat/internal/api/handlers"
	"github.com/wonny/poolstat/pkg/config"
	"github.com/wonny/poolstat/pkg/database"
	"github.com/wonny/poolstat/pkg/logger"
)

// NewRouter creates and configures the HTTP router
// ⭐ SSOT: 라우팅 설정은 이 함수에서만
//
// db is nil when the catalog is read from a file.
func NewRouter(reportHandler *handlers.ReportHandler, db *database.DB, cfg *config.Config, log *logger.Logger) http.Handler {
	r := mux.NewRouter()

	var metrics *Metrics
	if cfg.MetricsEnabled {
		metrics = NewMetrics()
		r.Handle("/metrics", metrics.Handler()).Methods("GET")
	}

	// Health check
	var dbHealth healthChecker
	if db != nil {
		dbHealth = db
	}
	r.HandleFunc("/health", healthCheckHandler(dbHealth, log)).Methods("GET")

	// Report API
	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/report", reportHandler.GetReport).Methods("GET")
	api.HandleFunc("/ratios", reportHandler.GetRatios).Methods("GET")
	api.HandleFunc("/statistics", reportHandler.GetStatistics).Methods("GET")
	api.HandleFunc("/estimates", reportHandler.GetEstimates).Methods("GET")
	api.HandleFunc("/pick", reportHandler.GetPick).Methods("GET")
	api.HandleFunc("/ranking", reportHandler.GetRanking).Methods("GET")
	api.HandleFunc("/verify", reportHandler.GetVerification).Methods("GET")

	api.Use(rateLimitMiddleware(rate.NewLimiter(rate.Limit(cfg.API.RateLimitRPS), cfg.API.RateLimitBurst), metrics))
	api.Use(timeoutMiddleware(cfg.API.RequestTimeout))

	// Apply middleware
	r.Use(loggingMiddleware(log))
	r.Use(recoveryMiddleware(log))
	if metrics != nil {
		r.Use(metrics.Middleware())
	}

	return r
}

// healthChecker is implemented by *database.DB
type healthChecker interface {
	HealthCheck(ctx context.Context) (*database.HealthStatus, error)
}

// healthCheckHandler returns server health status, including the database when one is configured
func healthCheckHandler(db healthChecker, log *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body := map[string]interface{}{
			"status":  "ok",
			"service": "poolstat-api",
		}
		status := http.StatusOK

		if db != nil {
			health, err := db.HealthCheck(r.Context())
			if err != nil {
				log.WithError(err).Warn("Database health check failed")
			}
			if health == nil {
				health = &database.HealthStatus{Timestamp: time.Now()}
				if err != nil {
					health.Error = err.Error()
				}
			}
			body["database"] = health
			if err != nil || !health.Healthy {
				body["status"] = "degraded"
				status = http.StatusServiceUnavailable
			}
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		json.NewEncoder(w).Encode(body)
	}
}

// loggingMiddleware logs HTTP requests
func loggingMiddleware(log *logger.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			rw := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(rw, r)

			log.WithFields(map[string]interface{}{
				"method":   r.Method,
				"path":     r.URL.Path,
				"status":   rw.status,
				"duration": time.Since(start),
			}).Debug("HTTP request")
		})
	}
}

// recoveryMiddleware recovers from panics
func recoveryMiddleware(log *logger.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					log.WithFields(map[string]interface{}{
						"error": err,
						"path":  r.URL.Path,
					}).Error("Panic recovered")

					writeError(w, http.StatusInternalServerError, "Internal server error")
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}

// rateLimitMiddleware rejects requests beyond the limiter budget with 429
func rateLimitMiddleware(limiter *rate.Limiter, metrics *Metrics) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Allow() {
				if metrics != nil {
					metrics.rateLimited.Inc()
				}
				w.Header().Set("Retry-After", "1")
				writeError(w, http.StatusTooManyRequests, "Rate limit exceeded")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// timeoutMiddleware bounds the request context
func timeoutMiddleware(timeout time.Duration) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		if timeout <= 0 {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, cancel := context.WithTimeout(r.Context(), timeout)
			defer cancel()
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{
		"error": message,
	})
}
