package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"location-service/apperr"
	"location-service/models"

	logger "github.com/umakantv/go-utils/logger"
	"go.uber.org/zap"
)

const maxBodyBytes = 1 << 20

type ctxKey int

const (
	routeInfoKey ctxKey = iota
	userKey
)

// routeInfo is attached to the request context by the instrument middleware
// so every log line can name the route it belongs to.
type routeInfo struct {
	name      string
	method    string
	path      string
	requestID string
}

func withRouteInfo(ctx context.Context, info routeInfo) context.Context {
	return context.WithValue(ctx, routeInfoKey, info)
}

func routeInfoFrom(ctx context.Context) routeInfo {
	info, _ := ctx.Value(routeInfoKey).(routeInfo)
	return info
}

// logRequest logs message prefixed with the route name, method and path,
// plus the authenticated user when there is one.
func logRequest(ctx context.Context, level string, message string, fields ...zap.Field) {
	info := routeInfoFrom(ctx)

	logMsg := info.name + " - " + info.method + " - " + info.path
	if user := UserFromContext(ctx); user != nil {
		logMsg += " - user:" + user.ID
	}
	if message != "" {
		logMsg += " - " + message
	}

	allFields := append([]zap.Field{
		zap.String("route", info.name),
		zap.String("method", info.method),
		zap.String("path", info.path),
		zap.String("request_id", info.requestID),
	}, fields...)

	switch level {
	case "info":
		logger.Info(logMsg, allFields...)
	case "error":
		logger.Error(logMsg, allFields...)
	case "debug":
		logger.Debug(logMsg, allFields...)
	}
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

// writeError renders err as {"error": ...}. Internal errors are logged in full
// and reach the client only as an opaque message.
func writeError(ctx context.Context, w http.ResponseWriter, err error) {
	status := apperr.StatusOf(err)
	if status >= http.StatusInternalServerError {
		logRequest(ctx, "error", "Request failed", zap.Error(err), zap.Bool("retryable", apperr.IsRetryable(err)))
	} else {
		logRequest(ctx, "info", "Request rejected", zap.Int("status", status), zap.String("reason", apperr.PublicMessage(err)))
	}
	writeJSON(w, status, models.ErrorResponse{Error: apperr.PublicMessage(err)})
}

// decodeJSON reads a size-limited JSON body into dst.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return apperr.Validation("Invalid JSON")
	}
	return nil
}
