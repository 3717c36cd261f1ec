package redis

import (
	"errors"
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"

	"spots-server/config"
	"spots-server/db"
)

// ErrInvalidSession is returned for session ids that could match or collide
// with another session's keys.
var ErrInvalidSession = errors.New("invalid session id")

// characters with meaning in the key layout or in SCAN MATCH patterns
const sessionIDReservedChars = ":*?[]^\\"

// ValidSessionID reports whether id can be embedded in a vote key.
func ValidSessionID(id string) bool {
	return id != "" && !strings.ContainsAny(id, sessionIDReservedChars)
}

// RedisVoteDAO keeps one flag per (session, review) helpful vote. The flag
// only stops the same client voting twice; sessions are client supplied.
type RedisVoteDAO struct {
	client db.RedisClient
}

// NewRedisVoteDAO initializes a RedisVoteDAO with the Redis client.
func NewRedisVoteDAO(client db.RedisClient) *RedisVoteDAO {
	return &RedisVoteDAO{client: client}
}

func voteKey(sessionID, reviewID string) string {
	return fmt.Sprintf(config.HELPFUL_VOTE_KEY_FORMAT, sessionID, reviewID)
}

// MarkVoted sets the flag and reports false when it was already set.
func (dao *RedisVoteDAO) MarkVoted(sessionID, reviewID string) (bool, error) {
	if !ValidSessionID(sessionID) {
		return false, ErrInvalidSession
	}
	set, err := dao.client.SetNX(voteKey(sessionID, reviewID), "1", 0)
	if err != nil {
		return false, fmt.Errorf("failed to set helpful vote flag: %w", err)
	}
	return set, nil
}

// Release clears a flag so a failed vote can be retried.
func (dao *RedisVoteDAO) Release(sessionID, reviewID string) error {
	if !ValidSessionID(sessionID) {
		return ErrInvalidSession
	}
	key := voteKey(sessionID, reviewID)
	if err := dao.client.Del(key); err != nil {
		return fmt.Errorf("failed to delete helpful vote key %s: %w", key, err)
	}
	log.WithFields(log.Fields{
		"prefix":    "redis-vote-dao",
		"review_id": reviewID,
	}).Debug("released helpful vote flag")
	return nil
}

// HasVoted reports whether the flag is set.
func (dao *RedisVoteDAO) HasVoted(sessionID, reviewID string) (bool, error) {
	if !ValidSessionID(sessionID) {
		return false, ErrInvalidSession
	}
	_, err := dao.client.Get(voteKey(sessionID, reviewID))
	if errors.Is(err, db.ErrKeyNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to get helpful vote flag: %w", err)
	}
	return true, nil
}

// VotedReviewIDs lists the reviews a session has marked helpful.
func (dao *RedisVoteDAO) VotedReviewIDs(sessionID string) ([]string, error) {
	if !ValidSessionID(sessionID) {
		return nil, ErrInvalidSession
	}
	prefix := voteKey(sessionID, "")
	keys, err := dao.client.Keys(prefix + "*")
	if err != nil {
		return nil, fmt.Errorf("failed to list helpful vote keys: %w", err)
	}
	ids := make([]string, 0, len(keys))
	for _, k := range keys {
		if !strings.HasPrefix(k, prefix) {
			continue
		}
		ids = append(ids, strings.TrimPrefix(k, prefix))
	}
	return ids, nil
}
