package tables

import (
	"context"
	"errors"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"

	"spots-server/db"
	"spots-server/models"
)

const STUDY_SPOTS_TABLE = "study_spots"
const SPOT_CATEGORIES_TABLE = "spot_categories"
const SPOT_AMENITIES_TABLE = "spot_amenities"
const SPOT_IMAGES_TABLE = "spot_images"
const SPOT_PEAK_HOURS_TABLE = "spot_peak_hours"
const SPOT_OPENING_HOURS_TABLE = "spot_opening_hours"
const CATEGORIES_TABLE = "categories"
const AMENITIES_TABLE = "amenities"

const spotDAOLogPrefix = "spot-dao"

// ErrSpotNotFound is returned by GetSpotByID for an unknown id.
var ErrSpotNotFound = errors.New("study spot not found")

// SpotDAO reads study spots and their lookup tables from the table store.
type SpotDAO struct {
	client db.TableClient
}

func NewSpotDAO(client db.TableClient) *SpotDAO {
	return &SpotDAO{client: client}
}

// GetAllSpots loads every spot ordered by name and folds in its child rows.
// Child tables are read one spot at a time; the first failure aborts the
// whole call and no partial list is returned.
func (dao *SpotDAO) GetAllSpots(ctx context.Context) ([]models.StudySpot, error) {
	rows, err := dao.client.Select(ctx, db.SelectQuery{
		Table: STUDY_SPOTS_TABLE,
		Order: []db.Order{{Column: "name"}},
	})
	if err != nil {
		return nil, dao.fail(STUDY_SPOTS_TABLE, "", err)
	}

	spots := make([]models.StudySpot, 0, len(rows))
	for _, row := range rows {
		spot, err := dao.buildSpot(ctx, row)
		if err != nil {
			return nil, err
		}
		spots = append(spots, spot)
	}

	log.WithFields(log.Fields{
		"prefix": spotDAOLogPrefix,
		"count":  len(spots),
	}).Debug("aggregated study spots")
	return spots, nil
}

// GetSpotByID aggregates the full list and picks one spot out of it.
func (dao *SpotDAO) GetSpotByID(ctx context.Context, id string) (*models.StudySpot, error) {
	spots, err := dao.GetAllSpots(ctx)
	if err != nil {
		return nil, err
	}
	for i := range spots {
		if spots[i].ID == id {
			return &spots[i], nil
		}
	}
	return nil, ErrSpotNotFound
}

func (dao *SpotDAO) buildSpot(ctx context.Context, row db.Row) (models.StudySpot, error) {
	id := row.String("id")
	spot := models.StudySpot{
		ID:          id,
		Name:        row.String("name"),
		Description: row.String("description"),
		Location: models.Location{
			Lat:     row.Float("location_lat"),
			Lng:     row.Float("location_lng"),
			Address: row.String("location_address"),
		},
		Rating:      row.Float("rating"),
		ReviewCount: row.Int("review_count"),
		Noise:       models.ClampLevel(row.Int("noise")),
		Wifi:        models.ClampLevel(row.Int("wifi")),
		Seating:     models.ClampLevel(row.Int("seating")),
	}

	categoryIDs, err := dao.childColumn(ctx, SPOT_CATEGORIES_TABLE, "category_id", id)
	if err != nil {
		return spot, err
	}
	spot.Categories = make([]models.CategoryType, 0, len(categoryIDs))
	for _, c := range categoryIDs {
		spot.Categories = append(spot.Categories, models.CoerceCategoryType(c))
	}

	if spot.Amenities, err = dao.childColumn(ctx, SPOT_AMENITIES_TABLE, "amenity_id", id); err != nil {
		return spot, err
	}
	if spot.Images, err = dao.childColumn(ctx, SPOT_IMAGES_TABLE, "url", id); err != nil {
		return spot, err
	}
	if spot.Hours.PeakHours, err = dao.childColumn(ctx, SPOT_PEAK_HOURS_TABLE, "time_range", id); err != nil {
		return spot, err
	}
	if spot.Hours.OpeningHours, err = dao.openingHours(ctx, id); err != nil {
		return spot, err
	}
	return spot, nil
}

// childColumn returns one column of every child row of a spot. It never
// returns a nil slice.
func (dao *SpotDAO) childColumn(ctx context.Context, table, column, spotID string) ([]string, error) {
	rows, err := dao.client.Select(ctx, db.SelectQuery{
		Table:   table,
		Columns: []string{column},
		Eq:      db.Row{"spot_id": spotID},
	})
	if err != nil {
		return nil, dao.fail(table, spotID, err)
	}
	out := make([]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.String(column))
	}
	return out, nil
}

// openingHours uses the first row only. No row yields the sentinel week.
func (dao *SpotDAO) openingHours(ctx context.Context, spotID string) (models.WeeklyHours, error) {
	rows, err := dao.client.Select(ctx, db.SelectQuery{
		Table: SPOT_OPENING_HOURS_TABLE,
		Eq:    db.Row{"spot_id": spotID},
	})
	if err != nil {
		return models.WeeklyHours{}, dao.fail(SPOT_OPENING_HOURS_TABLE, spotID, err)
	}
	if len(rows) == 0 {
		return models.SentinelWeek(), nil
	}

	var week models.WeeklyHours
	for d := time.Sunday; d <= time.Saturday; d++ {
		week[d] = models.DayHours{
			Open:  rows[0].String(models.OpenColumn(d)),
			Close: rows[0].String(models.CloseColumn(d)),
		}
	}
	return week, nil
}

// GetCategories lists the categories table. Unknown ids are coerced.
func (dao *SpotDAO) GetCategories(ctx context.Context) ([]models.Category, error) {
	rows, err := dao.client.Select(ctx, db.SelectQuery{Table: CATEGORIES_TABLE})
	if err != nil {
		return nil, dao.fail(CATEGORIES_TABLE, "", err)
	}
	out := make([]models.Category, 0, len(rows))
	for _, r := range rows {
		icon := models.ParseIcon(r.String("icon"))
		out = append(out, models.Category{
			ID:    models.CoerceCategoryType(r.String("id")),
			Name:  r.String("name"),
			Icon:  icon,
			Glyph: icon.Glyph(),
			Color: r.String("color"),
		})
	}
	return out, nil
}

func (dao *SpotDAO) GetAmenities(ctx context.Context) ([]models.Amenity, error) {
	rows, err := dao.client.Select(ctx, db.SelectQuery{Table: AMENITIES_TABLE})
	if err != nil {
		return nil, dao.fail(AMENITIES_TABLE, "", err)
	}
	out := make([]models.Amenity, 0, len(rows))
	for _, r := range rows {
		icon := models.ParseIcon(r.String("icon"))
		out = append(out, models.Amenity{
			ID:    r.String("id"),
			Name:  r.String("name"),
			Icon:  icon,
			Glyph: icon.Glyph(),
		})
	}
	return out, nil
}

func (dao *SpotDAO) fail(table, spotID string, err error) error {
	log.WithFields(log.Fields{
		"prefix":  spotDAOLogPrefix,
		"table":   table,
		"spot_id": spotID,
		"error":   err,
	}).Error("failed to read table")
	return fmt.Errorf("failed to read %s: %w", table, err)
}
