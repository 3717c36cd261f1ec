package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"spots-server/dao/tables"
	"spots-server/db"
	"spots-server/metrics"
	"spots-server/models"
)

func newSpotService(client *db.MockTableClient, now time.Time) *SpotService {
	return NewSpotService(
		tables.NewSpotDAO(client),
		metrics.NewMetrics(prometheus.NewRegistry()),
		func() time.Time { return now },
	)
}

func seedSpots(client *db.MockTableClient) {
	client.Seed(tables.STUDY_SPOTS_TABLE,
		db.Row{"id": "1", "name": "Koerner Library", "noise": 1, "wifi": 5, "seating": 4, "rating": 4.6},
		db.Row{"id": "2", "name": "Loafe Cafe", "noise": 3, "wifi": 3, "seating": 2, "rating": 4.1},
	)
	client.Seed(tables.SPOT_CATEGORIES_TABLE,
		db.Row{"spot_id": "1", "category_id": "library"},
		db.Row{"spot_id": "2", "category_id": "cafe"},
	)
	client.Seed(tables.SPOT_OPENING_HOURS_TABLE, db.Row{
		"spot_id": "1", "monday_open": "08:00:00", "monday_close": "22:00:00",
	})
}

func TestSpotService_ListSpotsAppliesFilter(t *testing.T) {
	client := db.NewMockTableClient()
	seedSpots(client)
	svc := newSpotService(client, time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC))

	all, err := svc.ListSpots(context.Background(), models.Filter{})
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "2"}, ids(all))

	quiet, err := svc.ListSpots(context.Background(), models.Filter{Noise: intPtr(2)})
	require.NoError(t, err)
	assert.Equal(t, []string{"1"}, ids(quiet))

	cafes, err := svc.ListSpots(context.Background(), models.Filter{}.ToggleCategory(models.CategoryCafe))
	require.NoError(t, err)
	assert.Equal(t, []string{"2"}, ids(cafes))
}

func TestSpotService_ListSpotsPropagatesStoreError(t *testing.T) {
	client := db.NewMockTableClient()
	seedSpots(client)
	boom := errors.New("store unavailable")
	client.FailOn(tables.SPOT_CATEGORIES_TABLE, boom)

	spots, err := newSpotService(client, time.Now()).ListSpots(context.Background(), models.Filter{})
	assert.Nil(t, spots)
	assert.ErrorIs(t, err, boom)
}

func TestSpotService_GetSpotStatus(t *testing.T) {
	client := db.NewMockTableClient()
	seedSpots(client)
	svc := newSpotService(client, time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC))

	status, err := svc.GetSpotStatus(context.Background(), "1")
	require.NoError(t, err)
	assert.True(t, status.Open)
	assert.Equal(t, "8 AM - 10 PM", status.Today)

	status, err = svc.GetSpotStatus(context.Background(), "2")
	require.NoError(t, err)
	assert.False(t, status.Open)
	assert.Equal(t, "Closed", status.Today)

	_, err = svc.GetSpotStatus(context.Background(), "9")
	assert.ErrorIs(t, err, tables.ErrSpotNotFound)
}
