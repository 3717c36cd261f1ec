package tables

import (
	"context"
	"errors"
	"fmt"

	log "github.com/sirupsen/logrus"

	"spots-server/db"
	"spots-server/models"
)

const REVIEWS_TABLE = "reviews"
const REVIEWS_ID_COLUMN = "reviews_id"

const reviewDAOLogPrefix = "review-dao"

// ErrReviewNotFound is returned when no review row has the given id.
var ErrReviewNotFound = errors.New("review not found")

// ReviewDAO reads and writes the reviews table.
type ReviewDAO struct {
	client db.TableClient
}

func NewReviewDAO(client db.TableClient) *ReviewDAO {
	return &ReviewDAO{client: client}
}

// GetReviewsBySpotID returns a spot's reviews, newest first.
func (dao *ReviewDAO) GetReviewsBySpotID(ctx context.Context, spotID string) ([]models.Review, error) {
	rows, err := dao.client.Select(ctx, db.SelectQuery{
		Table: REVIEWS_TABLE,
		Eq:    db.Row{"spot_id": spotID},
		Order: []db.Order{
			{Column: "date", Descending: true},
			{Column: "time", Descending: true},
		},
	})
	if err != nil {
		return nil, dao.fail("select", spotID, err)
	}

	reviews := make([]models.Review, 0, len(rows))
	for _, r := range rows {
		reviews = append(reviews, rowToReview(r))
	}
	return reviews, nil
}

// InsertReview writes a fully populated review.
func (dao *ReviewDAO) InsertReview(ctx context.Context, r models.Review) error {
	row := db.Row{
		REVIEWS_ID_COLUMN:  r.ID,
		"spot_id":          r.SpotID,
		"user_name":        r.User.Name,
		"user_avatar":      r.User.Avatar,
		"date":             r.Date,
		"time":             r.Time,
		"rating":           r.Rating,
		"content":          r.Content,
		"helpful":          r.Helpful,
		"comfort_rating":   r.Categories.Comfort,
		"noise_rating":     r.Categories.Noise,
		"amenities_rating": r.Categories.Amenities,
	}
	if err := dao.client.Insert(ctx, REVIEWS_TABLE, row); err != nil {
		return dao.fail("insert", r.SpotID, err)
	}
	return nil
}

// GetReview reads one review by id.
func (dao *ReviewDAO) GetReview(ctx context.Context, reviewID string) (*models.Review, error) {
	rows, err := dao.client.Select(ctx, db.SelectQuery{
		Table: REVIEWS_TABLE,
		Eq:    db.Row{REVIEWS_ID_COLUMN: reviewID},
	})
	if err != nil {
		return nil, dao.fail("select", "", err)
	}
	if len(rows) == 0 {
		return nil, ErrReviewNotFound
	}
	review := rowToReview(rows[0])
	return &review, nil
}

// UpdateHelpfulCount sets the helpful count and returns the stored value.
func (dao *ReviewDAO) UpdateHelpfulCount(ctx context.Context, reviewID string, count int) (int, error) {
	rows, err := dao.client.Update(ctx, REVIEWS_TABLE,
		db.Row{"helpful": count},
		db.Row{REVIEWS_ID_COLUMN: reviewID},
	)
	if err != nil {
		return 0, dao.fail("update", "", err)
	}
	if len(rows) == 0 {
		return 0, ErrReviewNotFound
	}
	return rows[0].Int("helpful"), nil
}

func rowToReview(r db.Row) models.Review {
	return models.Review{
		ID:     r.String(REVIEWS_ID_COLUMN),
		SpotID: r.String("spot_id"),
		User: models.ReviewUser{
			Name:   r.String("user_name"),
			Avatar: r.String("user_avatar"),
		},
		Date:    r.String("date"),
		Time:    r.String("time"),
		Rating:  r.Int("rating"),
		Content: r.String("content"),
		Helpful: r.Int("helpful"),
		Categories: models.ReviewCategories{
			Comfort:   r.Int("comfort_rating"),
			Noise:     r.Int("noise_rating"),
			Amenities: r.Int("amenities_rating"),
		},
	}
}

func (dao *ReviewDAO) fail(op, spotID string, err error) error {
	log.WithFields(log.Fields{
		"prefix":  reviewDAOLogPrefix,
		"op":      op,
		"spot_id": spotID,
		"error":   err,
	}).Error("reviews table call failed")
	return fmt.Errorf("failed to %s %s: %w", op, REVIEWS_TABLE, err)
}
