package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/guttosm/count-service/internal/domain/model"
	"github.com/redis/go-redis/v9"
)

const sessionKeyPrefix = "count:session:"

// RedisSessionStore keeps each session as a JSON value under count:session:<device>.
type RedisSessionStore struct {
	client redis.UniversalClient
	ttl    time.Duration
}

// NewRedisSessionStore creates a session store backed by Redis.
// A zero ttl keeps sessions until they are overwritten.
func NewRedisSessionStore(client redis.UniversalClient, ttl time.Duration) *RedisSessionStore {
	return &RedisSessionStore{client: client, ttl: ttl}
}

// Load returns the saved session of a device.
func (s *RedisSessionStore) Load(ctx context.Context, deviceID string) (*model.SessionState, error) {
	raw, err := s.client.Get(ctx, sessionKey(deviceID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load session %s: %w", deviceID, err)
	}

	var state model.SessionState
	if err := json.Unmarshal(raw, &state); err != nil {
		return nil, fmt.Errorf("decode session %s: %w", deviceID, err)
	}
	if state.Tally == nil {
		state.Tally = model.TallyList{}
	}
	return &state, nil
}

// Save writes the session of a device.
func (s *RedisSessionStore) Save(ctx context.Context, deviceID string, state model.SessionState) error {
	raw, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("encode session %s: %w", deviceID, err)
	}
	if err := s.client.Set(ctx, sessionKey(deviceID), raw, s.ttl).Err(); err != nil {
		return fmt.Errorf("save session %s: %w", deviceID, err)
	}
	return nil
}

// Ping checks the Redis connection.
func (s *RedisSessionStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func sessionKey(deviceID string) string {
	return sessionKeyPrefix + deviceID
}
