package handlers

import (
	"net/http"
	"strconv"
	"time"

	"location-service/metrics"
	"location-service/models"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// Instrument tags the request with its route and a request id, and records
// request count and latency.
func Instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		info := routeInfo{name: "unmatched", method: r.Method, path: r.URL.Path, requestID: uuid.NewString()}
		if route := mux.CurrentRoute(r); route != nil {
			if name := route.GetName(); name != "" {
				info.name = name
			}
		}
		w.Header().Set("X-Request-ID", info.requestID)

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r.WithContext(withRouteInfo(r.Context(), info)))

		metrics.HTTPRequestsTotal.WithLabelValues(info.name, r.Method, strconv.Itoa(rec.status)).Inc()
		metrics.HTTPRequestDuration.WithLabelValues(info.name, r.Method).Observe(time.Since(start).Seconds())
	})
}

// Recover turns a panic anywhere below it into an opaque 500.
func Recover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if p := recover(); p != nil {
				logRequest(r.Context(), "error", "Panic recovered", zap.Any("panic", p), zap.Stack("stack"))
				writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Internal server error"})
			}
		}()
		next.ServeHTTP(w, r)
	})
}

// NotFound answers every unmatched route, including known paths with the wrong method.
func NotFound(w http.ResponseWriter, r *http.Request) {
	logRequest(r.Context(), "info", "Route not found")
	writeJSON(w, http.StatusNotFound, models.ErrorResponse{Error: "Not found"})
}

// Health handles GET /health
func Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy", "service": "location-service"})
}
