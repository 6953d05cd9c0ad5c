// internal/domain/checkout/session.go
package checkout

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// DefaultSessionTTL bounds how long an abandoned flow is kept
const DefaultSessionTTL = 24 * time.Hour

// SessionStore persists each user's in-progress checkout flow in Redis so
// the flow survives between requests
type SessionStore struct {
	redisClient *redis.Client
	ttl         time.Duration
}

// NewSessionStore creates a session store; a non-positive ttl falls back to
// the default
func NewSessionStore(redisClient *redis.Client, ttl time.Duration) *SessionStore {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &SessionStore{redisClient: redisClient, ttl: ttl}
}

func sessionKey(userID uint) string {
	return fmt.Sprintf("checkout:flow:%d", userID)
}

// Load returns the user's flow, or a fresh one when none is stored
func (s *SessionStore) Load(ctx context.Context, userID uint) (*Flow, error) {
	data, err := s.redisClient.Get(ctx, sessionKey(userID)).Result()
	if err == redis.Nil {
		return NewFlow(), nil
	} else if err != nil {
		return nil, fmt.Errorf("failed to load checkout session: %w", err)
	}

	var flow Flow
	if err := json.Unmarshal([]byte(data), &flow); err != nil {
		return nil, fmt.Errorf("failed to decode checkout session: %w", err)
	}
	return &flow, nil
}

// Save stores the user's flow with the configured expiration
func (s *SessionStore) Save(ctx context.Context, userID uint, flow *Flow) error {
	data, err := json.Marshal(flow)
	if err != nil {
		return err
	}
	return s.redisClient.Set(ctx, sessionKey(userID), data, s.ttl).Err()
}

// Delete discards the user's flow
func (s *SessionStore) Delete(ctx context.Context, userID uint) error {
	return s.redisClient.Del(ctx, sessionKey(userID)).Err()
}
