package svc

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// oauthStateStore holds the per-login OAuth state token in Redis for the
// few minutes the consent round trip takes, so the callback can confirm
// the request it's completing actually originated from this server.
type oauthStateStore struct {
	client *redis.Client
	ttl    time.Duration
}

func newOAuthStateStore(client *redis.Client, ttl time.Duration) *oauthStateStore {
	return &oauthStateStore{client: client, ttl: ttl}
}

func (s *oauthStateStore) Put(ctx context.Context, state string) error {
	return s.client.Set(ctx, stateKey(state), "1", s.ttl).Err()
}

// Consume reports whether state is a live, previously-issued value, and
// deletes it so the same state can't be replayed.
func (s *oauthStateStore) Consume(ctx context.Context, state string) (bool, error) {
	n, err := s.client.Del(ctx, stateKey(state)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func stateKey(state string) string {
	return "oauth:state:" + state
}
