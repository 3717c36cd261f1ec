package services

import (
	"context"
	"time"

	log "github.com/sirupsen/logrus"

	"spots-server/dao/tables"
	"spots-server/metrics"
	"spots-server/models"
	"spots-server/util"
)

type SpotService struct {
	spotDao *tables.SpotDAO
	metrics *metrics.Metrics
	now     func() time.Time
}

// NewSpotService constructs a SpotService. now supplies the clock used for
// open/closed checks and should already be in the campus time zone.
func NewSpotService(spotDao *tables.SpotDAO, m *metrics.Metrics, now func() time.Time) *SpotService {
	return &SpotService{
		spotDao: spotDao,
		metrics: m,
		now:     now,
	}
}

func (ss *SpotService) Now() time.Time {
	return ss.now()
}

// ListSpots aggregates every spot then applies f. Nothing is cached, so each
// call sees the store as it is.
func (ss *SpotService) ListSpots(ctx context.Context, f models.Filter) ([]models.StudySpot, error) {
	start := time.Now()
	spots, err := ss.spotDao.GetAllSpots(ctx)
	ss.metrics.ObserveAggregation(time.Since(start), err)
	if err != nil {
		return nil, err
	}

	filtered := FilterSpots(spots, f)
	log.WithFields(log.Fields{
		"prefix":   "spot-service",
		"total":    len(spots),
		"filtered": len(filtered),
	}).Debug("listed study spots")
	return filtered, nil
}

func (ss *SpotService) GetSpot(ctx context.Context, id string) (*models.StudySpot, error) {
	return ss.spotDao.GetSpotByID(ctx, id)
}

func (ss *SpotService) GetSpotStatus(ctx context.Context, id string) (*models.SpotStatus, error) {
	spot, err := ss.spotDao.GetSpotByID(ctx, id)
	if err != nil {
		return nil, err
	}
	status := util.BuildSpotStatus(*spot, ss.now())
	return &status, nil
}

func (ss *SpotService) GetCategories(ctx context.Context) ([]models.Category, error) {
	return ss.spotDao.GetCategories(ctx)
}

func (ss *SpotService) GetAmenities(ctx context.Context) ([]models.Amenity, error) {
	return ss.spotDao.GetAmenities(ctx)
}
