package handler

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/shopspring/decimal"

	"github.com/Urushihara24/exportum/internal/service"
)

// NewRouter creates a chi router with all routes registered, request
// logging, and Content-Type validation middleware. rate is the shared
// currency conversion rate used for display math.
func NewRouter(
	userSvc *service.UserService,
	batchSvc *service.BatchService,
	poolSvc *service.PoolService,
	marketSvc *service.MarketService,
	rate decimal.Decimal,
	logger *slog.Logger,
) chi.Router {
	r := chi.NewRouter()

	// Global middleware.
	r.Use(requestLogging(logger))
	r.Use(contentTypeJSON)

	// Create handlers.
	userH := NewUserHandler(userSvc)
	batchH := NewBatchHandler(batchSvc)
	poolH := NewPoolHandler(poolSvc, rate)
	marketH := NewMarketHandler(marketSvc)

	// Health check and metrics.
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Get("/metrics", promhttp.Handler().ServeHTTP)

	// User routes.
	r.Post("/users", userH.Register)
	r.Get("/users", userH.List)
	r.Get("/users/{user_id}", userH.Get)

	// Batch routes.
	r.Post("/batches", batchH.Create)
	r.Get("/batches/{batch_id}", batchH.Get)
	r.Patch("/batches/{batch_id}", batchH.Update)
	r.Delete("/batches/{batch_id}", batchH.Delete)
	r.Post("/batches/{batch_id}/status", batchH.UpdateStatus)
	r.Post("/batches/{batch_id}/attachments", batchH.AddAttachment)
	r.Get("/producers/{user_id}/batches", batchH.ListByProducer)

	// Pool routes.
	r.Post("/pools", poolH.Create)
	r.Get("/pools", poolH.List)
	r.Get("/pools/{pool_id}", poolH.Get)
	r.Post("/pools/{pool_id}/status", poolH.SetStatus)
	r.Get("/pools/{pool_id}/participants", poolH.Participants)
	r.Post("/pools/{pool_id}/join", poolH.Join)

	// Market routes.
	r.Post("/sweep", marketH.Sweep)
	r.Get("/matches", marketH.ListMatches)

	return r
}

// requestLogging returns middleware that logs each request's method, path,
// status code, and duration using slog.
func requestLogging(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := &statusWriter{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(ww, r)
			logger.Info("request",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", ww.status),
				slog.Duration("duration", time.Since(start)),
			)
		})
	}
}

// statusWriter wraps http.ResponseWriter to capture the status code.
type statusWriter struct {
	http.ResponseWriter
	status      int
	wroteHeader bool
}

func (w *statusWriter) WriteHeader(code int) {
	if !w.wroteHeader {
		w.status = code
		w.wroteHeader = true
	}
	w.ResponseWriter.WriteHeader(code)
}

// contentTypeJSON is middleware that validates Content-Type for POST, PUT,
// and PATCH requests carrying a body. If the Content-Type header doesn't
// start with "application/json", it returns 400 Bad Request before the
// handler runs.
func contentTypeJSON(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if (r.Method == http.MethodPost || r.Method == http.MethodPut || r.Method == http.MethodPatch) &&
			r.ContentLength != 0 {
			ct := r.Header.Get("Content-Type")
			if ct == "" || !strings.HasPrefix(ct, "application/json") {
				WriteError(w, http.StatusBadRequest, "invalid_request",
					"Content-Type must be application/json")
				return
			}
		}
		next.ServeHTTP(w, r)
	})
}
