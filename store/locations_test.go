package store

import (
	"context"
	"testing"

	"location-service/database/databasetest"
	"location-service/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sample(userID string, ts int64) models.LocationSample {
	return models.LocationSample{ID: uuid.NewString(), UserID: userID, Latitude: 1, Longitude: 2, Timestamp: ts}
}

func TestInsertBatchAndRecentByUser(t *testing.T) {
	locs := NewLocations(databasetest.New(t))
	ctx := context.Background()

	batch := []models.LocationSample{sample("u1", 100), sample("u1", 300), sample("u1", 200), sample("u2", 999)}
	require.NoError(t, locs.InsertBatch(ctx, batch))

	got, err := locs.RecentByUser(ctx, "u1", 100)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, []int64{300, 200, 100}, []int64{got[0].Timestamp, got[1].Timestamp, got[2].Timestamp})
	for _, s := range got {
		assert.Equal(t, "u1", s.UserID)
	}

	got, err = locs.RecentByUser(ctx, "u1", 2)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, int64(300), got[0].Timestamp)
}

func TestRecentByUser_EmptyIsNotAnError(t *testing.T) {
	locs := NewLocations(databasetest.New(t))

	got, err := locs.RecentByUser(context.Background(), "nobody", 100)
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestInsertBatch_FailureLeavesNoRows(t *testing.T) {
	locs := NewLocations(databasetest.New(t))
	ctx := context.Background()

	first := sample("u1", 1)
	dup := first
	dup.Timestamp = 2
	err := locs.InsertBatch(ctx, []models.LocationSample{first, sample("u1", 3), dup})
	require.Error(t, err)

	got, err := locs.RecentByUser(ctx, "u1", 100)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestInsertBatch_Empty(t *testing.T) {
	locs := NewLocations(databasetest.New(t))
	assert.NoError(t, locs.InsertBatch(context.Background(), nil))
}
