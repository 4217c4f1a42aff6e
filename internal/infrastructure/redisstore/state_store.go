package redisstore

import (
	"context"
	"errors"
	"time"

	"webflow-mirror-layer/internal/domain"
	"webflow-mirror-layer/internal/ports"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

const stateKeyPrefix = "webflow:oauth:state:"

// StateStore holds OAuth state values in Redis with a TTL, so an abandoned
// authorization attempt expires on its own.
type StateStore struct {
	client *redis.Client
	logger zerolog.Logger
}

// NewStateStore creates a Redis-backed OAuth state store
func NewStateStore(client *redis.Client, logger zerolog.Logger) ports.OAuthStateStore {
	return &StateStore{client: client, logger: logger}
}

// Save binds a state value to the initiating user for the given TTL
func (s *StateStore) Save(ctx context.Context, state string, userID string, ttl time.Duration) error {
	if err := s.client.Set(ctx, stateKeyPrefix+state, userID, ttl).Err(); err != nil {
		return domain.NewPersistenceError("failed to save oauth state", err)
	}
	return nil
}

// Consume returns the user bound to a state and invalidates it atomically,
// so a state value can only complete one callback.
func (s *StateStore) Consume(ctx context.Context, state string) (string, error) {
	userID, err := s.client.GetDel(ctx, stateKeyPrefix+state).Result()
	if errors.Is(err, redis.Nil) {
		return "", domain.NewUnauthorizedError("invalid or expired oauth state")
	}
	if err != nil {
		return "", domain.NewPersistenceError("failed to consume oauth state", err)
	}
	return userID, nil
}
