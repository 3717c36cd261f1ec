package queue

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"

	"spots-server/models"
)

const (
	REVIEW_SUBMITTED_EVENT = "review.submitted"
	REVIEW_HELPFUL_EVENT   = "review.helpful"
)

// Upper bound on one background publish, retries included.
const REVIEW_EVENT_PUBLISH_TIMEOUT = 5 * time.Second

// ReviewEvent is the payload published for every review write.
type ReviewEvent struct {
	Type       string    `json:"type"`
	SpotID     string    `json:"spot_id"`
	ReviewID   string    `json:"review_id"`
	Rating     int       `json:"rating,omitempty"`
	Helpful    int       `json:"helpful,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

func NewReviewSubmittedEvent(r models.Review, at time.Time) ReviewEvent {
	return ReviewEvent{
		Type:       REVIEW_SUBMITTED_EVENT,
		SpotID:     r.SpotID,
		ReviewID:   r.ID,
		Rating:     r.Rating,
		OccurredAt: at,
	}
}

func NewReviewHelpfulEvent(spotID, reviewID string, helpful int, at time.Time) ReviewEvent {
	return ReviewEvent{
		Type:       REVIEW_HELPFUL_EVENT,
		SpotID:     spotID,
		ReviewID:   reviewID,
		Helpful:    helpful,
		OccurredAt: at,
	}
}

// ReviewEventPublisher announces review writes. Publishing never fails the
// write it describes, so implementations only log errors.
type ReviewEventPublisher interface {
	PublishReviewEvent(ctx context.Context, e ReviewEvent)
	Close() error
}

// KafkaReviewPublisher publishes JSON events keyed by spot id. Each publish
// runs in the background so the review write never waits on the brokers.
type KafkaReviewPublisher struct {
	producer *Producer
	timeout  time.Duration
	inflight sync.WaitGroup
}

func NewKafkaReviewPublisher(producer *Producer) *KafkaReviewPublisher {
	return &KafkaReviewPublisher{producer: producer, timeout: REVIEW_EVENT_PUBLISH_TIMEOUT}
}

func (p *KafkaReviewPublisher) PublishReviewEvent(ctx context.Context, e ReviewEvent) {
	value, err := json.Marshal(e)
	if err != nil {
		log.WithFields(log.Fields{
			"prefix": "review-events",
			"type":   e.Type,
			"error":  err,
		}).Error("failed to marshal review event")
		return
	}

	// the request context ends with the response, so keep only its values
	pubCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), p.timeout)
	p.inflight.Add(1)
	go func() {
		defer p.inflight.Done()
		defer cancel()
		if err := p.producer.Publish(pubCtx, e.SpotID, value); err != nil {
			log.WithFields(log.Fields{
				"prefix":    "review-events",
				"type":      e.Type,
				"review_id": e.ReviewID,
				"error":     err,
			}).Warn("failed to publish review event")
		}
	}()
}

// Close waits for in-flight publishes and closes the producer.
func (p *KafkaReviewPublisher) Close() error {
	p.inflight.Wait()
	return p.producer.Close()
}

// NoopReviewPublisher is used when no brokers are configured.
type NoopReviewPublisher struct{}

func (NoopReviewPublisher) PublishReviewEvent(ctx context.Context, e ReviewEvent) {
	log.WithFields(log.Fields{
		"prefix":    "review-events",
		"type":      e.Type,
		"review_id": e.ReviewID,
	}).Debug("review event dropped, no brokers configured")
}

func (NoopReviewPublisher) Close() error {
	return nil
}
