package store

import (
	"context"
	"fmt"

	"location-service/apperr"
	"location-service/models"

	"github.com/jmoiron/sqlx"
)

// Locations persists location samples. Rows are only ever inserted.
type Locations struct {
	db *sqlx.DB
}

func NewLocations(db *sqlx.DB) *Locations {
	return &Locations{db: db}
}

// InsertBatch stores all samples in a single transaction: either every row is
// committed or none is.
func (s *Locations) InsertBatch(ctx context.Context, samples []models.LocationSample) (err error) {
	if len(samples) == 0 {
		return nil
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return apperr.Unavailable("begin location batch", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	stmt, err := tx.PreparexContext(ctx, tx.Rebind(
		`INSERT INTO locations (id, user_id, latitude, longitude, recorded_at) VALUES (?, ?, ?, ?, ?)`))
	if err != nil {
		return apperr.Unavailable("prepare location insert", err)
	}
	defer stmt.Close()

	for i, sample := range samples {
		if _, err = stmt.ExecContext(ctx, sample.ID, sample.UserID, sample.Latitude, sample.Longitude, sample.Timestamp); err != nil {
			if dup := uniqueViolation(err); dup != nil {
				return fmt.Errorf("location %d: %w", i, dup)
			}
			return apperr.Unavailable(fmt.Sprintf("insert location %d", i), err)
		}
	}

	if err = tx.Commit(); err != nil {
		return apperr.Unavailable("commit location batch", err)
	}
	return nil
}

// RecentByUser returns at most limit samples of userID, newest first.
// No data yields an empty slice.
func (s *Locations) RecentByUser(ctx context.Context, userID string, limit int) ([]models.LocationSample, error) {
	samples := []models.LocationSample{}
	query := s.db.Rebind(`
		SELECT id, user_id, latitude, longitude, recorded_at
		FROM locations
		WHERE user_id = ?
		ORDER BY recorded_at DESC
		LIMIT ?`)
	if err := s.db.SelectContext(ctx, &samples, query, userID, limit); err != nil {
		return nil, apperr.Unavailable("query locations", err)
	}
	return samples, nil
}
