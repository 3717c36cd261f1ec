package tables

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/suite"

	"spots-server/db"
	"spots-server/models"
)

type ReviewDAOTestSuite struct {
	suite.Suite
	client *db.MockTableClient
	dao    *ReviewDAO
}

func (s *ReviewDAOTestSuite) SetupTest() {
	s.client = db.NewMockTableClient()
	s.dao = NewReviewDAO(s.client)
	s.client.Seed(REVIEWS_TABLE,
		db.Row{"reviews_id": "r1", "spot_id": "1", "date": "2026-09-30", "time": "10:00:00", "rating": 4, "helpful": 2},
		db.Row{"reviews_id": "r2", "spot_id": "1", "date": "2026-10-02", "time": "09:15:00", "rating": 5, "helpful": 0},
		db.Row{"reviews_id": "r3", "spot_id": "1", "date": "2026-10-02", "time": "17:45:00", "rating": 3, "helpful": 1},
		db.Row{"reviews_id": "r4", "spot_id": "2", "date": "2026-10-05", "time": "12:00:00", "rating": 2, "helpful": 0},
	)
}

func (s *ReviewDAOTestSuite) TestGetReviewsBySpotIDNewestFirst() {
	reviews, err := s.dao.GetReviewsBySpotID(context.Background(), "1")
	s.NoError(err)
	s.Len(reviews, 3)
	s.Equal("r3", reviews[0].ID)
	s.Equal("r2", reviews[1].ID)
	s.Equal("r1", reviews[2].ID)
}

func (s *ReviewDAOTestSuite) TestGetReviewsBySpotIDEmpty() {
	reviews, err := s.dao.GetReviewsBySpotID(context.Background(), "42")
	s.NoError(err)
	s.NotNil(reviews)
	s.Empty(reviews)
}

func (s *ReviewDAOTestSuite) TestInsertReviewRoundTrip() {
	review := models.Review{
		ID:      "r5",
		SpotID:  "2",
		User:    models.ReviewUser{Name: "Jake Fung", Avatar: "https://randomuser.me/api/portraits/lego/1.jpg"},
		Date:    "2026-10-18",
		Time:    "08:00:00",
		Rating:  4,
		Content: "Plenty of outlets",
		Categories: models.ReviewCategories{
			Comfort: 3, Noise: 2, Amenities: 5,
		},
	}
	s.NoError(s.dao.InsertReview(context.Background(), review))

	reviews, err := s.dao.GetReviewsBySpotID(context.Background(), "2")
	s.NoError(err)
	s.Len(reviews, 2)
	s.Equal(review, reviews[0])
}

func (s *ReviewDAOTestSuite) TestInsertReviewFailure() {
	boom := errors.New("row level security")
	s.client.FailOn(REVIEWS_TABLE, boom)
	err := s.dao.InsertReview(context.Background(), models.Review{ID: "x", SpotID: "1"})
	s.ErrorIs(err, boom)
}

func (s *ReviewDAOTestSuite) TestGetReview() {
	review, err := s.dao.GetReview(context.Background(), "r1")
	s.NoError(err)
	s.Equal(2, review.Helpful)

	_, err = s.dao.GetReview(context.Background(), "missing")
	s.ErrorIs(err, ErrReviewNotFound)
}

func (s *ReviewDAOTestSuite) TestUpdateHelpfulCount() {
	count, err := s.dao.UpdateHelpfulCount(context.Background(), "r1", 3)
	s.NoError(err)
	s.Equal(3, count)

	review, err := s.dao.GetReview(context.Background(), "r1")
	s.NoError(err)
	s.Equal(3, review.Helpful)

	_, err = s.dao.UpdateHelpfulCount(context.Background(), "missing", 1)
	s.ErrorIs(err, ErrReviewNotFound)
}

func TestReviewDAO(t *testing.T) {
	suite.Run(t, new(ReviewDAOTestSuite))
}
