package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"spots-server/config"
	"spots-server/dao/redis"
	"spots-server/dao/tables"
	"spots-server/metrics"
	"spots-server/models"
	"spots-server/queue"
)

const (
	REVIEW_DATE_LAYOUT = "2006-01-02"
	REVIEW_TIME_LAYOUT = "15:04:05"
)

var (
	ErrAlreadyVoted   = errors.New("review already marked helpful in this session")
	ErrMissingSession = errors.New("missing session id")
)

const reviewServiceLogPrefix = "review-service"

type ReviewService struct {
	reviewDao *tables.ReviewDAO
	voteDao   *redis.RedisVoteDAO
	publisher queue.ReviewEventPublisher
	metrics   *metrics.Metrics
	author    config.ReviewsConfig
	now       func() time.Time
}

func NewReviewService(
	reviewDao *tables.ReviewDAO,
	voteDao *redis.RedisVoteDAO,
	publisher queue.ReviewEventPublisher,
	m *metrics.Metrics,
	author config.ReviewsConfig,
	now func() time.Time) *ReviewService {

	return &ReviewService{
		reviewDao: reviewDao,
		voteDao:   voteDao,
		publisher: publisher,
		metrics:   m,
		author:    author,
		now:       now,
	}
}

func (rs *ReviewService) ListReviews(ctx context.Context, spotID string) ([]models.Review, error) {
	return rs.reviewDao.GetReviewsBySpotID(ctx, spotID)
}

// SubmitReview validates sub and, only if it is valid, stores it as a new
// review with zero helpful votes.
func (rs *ReviewService) SubmitReview(ctx context.Context, sub models.ReviewSubmission) (*models.Review, error) {
	if err := sub.Validate(); err != nil {
		rs.metrics.ReviewSubmitted("invalid")
		return nil, err
	}

	now := rs.now()
	review := models.Review{
		ID:     uuid.NewString(),
		SpotID: sub.SpotID,
		User: models.ReviewUser{
			Name:   rs.author.AuthorName,
			Avatar: rs.author.AuthorAvatar,
		},
		Date:    now.Format(REVIEW_DATE_LAYOUT),
		Time:    now.Format(REVIEW_TIME_LAYOUT),
		Rating:  sub.Ratings.Overall,
		Content: sub.Comment,
		Helpful: 0,
		Categories: models.ReviewCategories{
			Comfort:   sub.Ratings.Comfort,
			Noise:     sub.Ratings.Noise,
			Amenities: sub.Ratings.Amenities,
		},
	}

	if err := rs.reviewDao.InsertReview(ctx, review); err != nil {
		rs.metrics.ReviewSubmitted("error")
		return nil, err
	}
	rs.metrics.ReviewSubmitted("ok")

	log.WithFields(log.Fields{
		"prefix":    reviewServiceLogPrefix,
		"spot_id":   review.SpotID,
		"review_id": review.ID,
	}).Info("review submitted")
	rs.publisher.PublishReviewEvent(ctx, queue.NewReviewSubmittedEvent(review, now))
	return &review, nil
}

// MarkHelpful adds one helpful vote for the session and returns the new count.
// The session flag is set before the count is written and cleared again if
// the write fails.
func (rs *ReviewService) MarkHelpful(ctx context.Context, sessionID, reviewID string) (int, error) {
	if sessionID == "" {
		return 0, ErrMissingSession
	}
	if !redis.ValidSessionID(sessionID) {
		return 0, redis.ErrInvalidSession
	}

	review, err := rs.reviewDao.GetReview(ctx, reviewID)
	if err != nil {
		if !errors.Is(err, tables.ErrReviewNotFound) {
			rs.metrics.HelpfulVote("error")
		}
		return 0, err
	}

	set, err := rs.voteDao.MarkVoted(sessionID, reviewID)
	if err != nil {
		rs.metrics.HelpfulVote("error")
		return 0, err
	}
	if !set {
		rs.metrics.HelpfulVote("duplicate")
		return 0, ErrAlreadyVoted
	}

	count, err := rs.reviewDao.UpdateHelpfulCount(ctx, reviewID, review.Helpful+1)
	if err != nil {
		rs.metrics.HelpfulVote("error")
		if relErr := rs.voteDao.Release(sessionID, reviewID); relErr != nil {
			log.WithFields(log.Fields{
				"prefix":    reviewServiceLogPrefix,
				"review_id": reviewID,
				"error":     relErr,
			}).Error("failed to release helpful vote flag")
		}
		return 0, err
	}
	rs.metrics.HelpfulVote("ok")

	rs.publisher.PublishReviewEvent(ctx, queue.NewReviewHelpfulEvent(review.SpotID, reviewID, count, rs.now()))
	return count, nil
}

// VotedReviewIDs lists the reviews the session has already marked helpful.
func (rs *ReviewService) VotedReviewIDs(sessionID string) ([]string, error) {
	if sessionID == "" {
		return nil, ErrMissingSession
	}
	return rs.voteDao.VotedReviewIDs(sessionID)
}

// HasVoted reports whether the session already marked reviewID helpful.
func (rs *ReviewService) HasVoted(sessionID, reviewID string) (bool, error) {
	if sessionID == "" {
		return false, ErrMissingSession
	}
	return rs.voteDao.HasVoted(sessionID, reviewID)
}
