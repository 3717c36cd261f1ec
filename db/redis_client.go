package db

import "time"

// RedisClient defines the key-value calls the helpful vote guard needs.
type RedisClient interface {
	Get(key string) (string, error)
	// SetNX sets key only if it is absent and reports whether it did.
	SetNX(key, value string, ttl time.Duration) (bool, error)
	Keys(pattern string) ([]string, error)
	Del(key string) error
	Ping() error
}
