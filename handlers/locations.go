package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	"location-service/apperr"
	"location-service/models"

	"go.uber.org/zap"
)

// LocationLedger appends and reads a user's location history.
type LocationLedger interface {
	Append(ctx context.Context, userID string, inputs []models.LocationInput) (int, error)
	RecentFor(ctx context.Context, userID string, limit int) ([]models.LocationSample, error)
}

// LocationHandler serves the location endpoints. Every route is behind Gate.
type LocationHandler struct {
	ledger LocationLedger
}

func NewLocationHandler(ledger LocationLedger) *LocationHandler {
	return &LocationHandler{ledger: ledger}
}

// SaveLocations handles POST /api/location - body is one sample or an array of samples
func (h *LocationHandler) SaveLocations(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	user := UserFromContext(ctx)

	inputs, err := decodeSamples(w, r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	h.append(ctx, w, user, inputs)
}

// UploadLocations handles POST /api/locations/upload - body is {"locations": [...]}
func (h *LocationHandler) UploadLocations(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	user := UserFromContext(ctx)

	var req models.UploadLocationsRequest
	if err := decodeJSON(w, r, &req); err != nil || req.Locations == nil {
		writeError(ctx, w, apperr.Validation("Invalid input"))
		return
	}
	h.append(ctx, w, user, req.Locations)
}

func (h *LocationHandler) append(ctx context.Context, w http.ResponseWriter, user *models.User, inputs []models.LocationInput) {
	count, err := h.ledger.Append(ctx, user.ID, inputs)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	logRequest(ctx, "info", "Locations saved", zap.Int("count", count))
	writeJSON(w, http.StatusCreated, models.SaveLocationsResponse{
		Message: "Locations saved successfully",
		Count:   count,
	})
}

// GetLocations handles GET /api/locations - newest first, at most 100
func (h *LocationHandler) GetLocations(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	user := UserFromContext(ctx)

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			writeError(ctx, w, apperr.Validation("limit must be a positive integer"))
			return
		}
		limit = n
	}

	samples, err := h.ledger.RecentFor(ctx, user.ID, limit)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	logRequest(ctx, "debug", "Locations retrieved", zap.Int("count", len(samples)))
	writeJSON(w, http.StatusOK, samples)
}

// decodeSamples accepts either a single JSON object or a JSON array of objects.
func decodeSamples(w http.ResponseWriter, r *http.Request) ([]models.LocationInput, error) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		return nil, apperr.Validation("Request body too large")
	}

	trimmed := bytes.TrimSpace(body)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var batch []models.LocationInput
		if err := json.Unmarshal(trimmed, &batch); err != nil {
			return nil, apperr.Validation("Invalid JSON")
		}
		return batch, nil
	}

	var single models.LocationInput
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil, apperr.Validation("Invalid JSON")
	}
	if err := json.Unmarshal(trimmed, &single); err != nil {
		return nil, apperr.Validation("Invalid JSON")
	}
	return []models.LocationInput{single}, nil
}
