// Package ledger implements the per-user, append-only location history.
package ledger

import (
	"context"
	"fmt"
	"time"

	"location-service/apperr"
	"location-service/metrics"
	"location-service/models"
	"location-service/validation"

	"github.com/google/uuid"
)

const (
	// DefaultLimit is used when the caller does not ask for a specific page size.
	DefaultLimit = 100
	// MaxLimit caps every read.
	MaxLimit = 100
)

var ErrEmptyBatch = apperr.Validation("at least one location is required")

// Store persists samples. InsertBatch must be all-or-nothing.
type Store interface {
	InsertBatch(ctx context.Context, samples []models.LocationSample) error
	RecentByUser(ctx context.Context, userID string, limit int) ([]models.LocationSample, error)
}

type Ledger struct {
	store Store
	now   func() time.Time
}

func New(store Store) *Ledger {
	return &Ledger{store: store, now: time.Now}
}

// Append validates every input, stamps it with userID (discarding any
// caller-supplied owner) and the ingestion time when no timestamp was given,
// then stores the batch atomically. It returns the number of samples stored.
// A single invalid input rejects the whole batch before anything is written.
func (l *Ledger) Append(ctx context.Context, userID string, inputs []models.LocationInput) (int, error) {
	if len(inputs) == 0 {
		return 0, ErrEmptyBatch
	}

	ingestedAt := l.now().UnixMilli()
	samples := make([]models.LocationSample, 0, len(inputs))
	for i := range inputs {
		in := &inputs[i]
		if err := validation.ValidateStruct(in); err != nil {
			if len(inputs) > 1 {
				return 0, apperr.Validation(fmt.Sprintf("location %d: %s", i, apperr.PublicMessage(err)))
			}
			return 0, err
		}

		ts := ingestedAt
		if in.Timestamp != nil {
			ts = *in.Timestamp
		}
		samples = append(samples, models.LocationSample{
			ID:        uuid.NewString(),
			UserID:    userID,
			Latitude:  *in.Latitude,
			Longitude: *in.Longitude,
			Timestamp: ts,
		})
	}

	if err := l.store.InsertBatch(ctx, samples); err != nil {
		return 0, err
	}

	metrics.LocationsAppendedTotal.Add(float64(len(samples)))
	metrics.LocationBatchSize.Observe(float64(len(samples)))
	return len(samples), nil
}

// RecentFor returns userID's samples newest first. limit <= 0 means DefaultLimit;
// larger values are capped at MaxLimit.
func (l *Ledger) RecentFor(ctx context.Context, userID string, limit int) ([]models.LocationSample, error) {
	return l.store.RecentByUser(ctx, userID, ClampLimit(limit))
}

func ClampLimit(limit int) int {
	switch {
	case limit <= 0:
		return DefaultLimit
	case limit > MaxLimit:
		return MaxLimit
	default:
		return limit
	}
}
