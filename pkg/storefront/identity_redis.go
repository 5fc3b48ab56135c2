package storefront

import (
	"context"
	"errors"
	"fmt"

	"github.com/mallow/storefront/pkg/logger"
	"github.com/redis/go-redis/v9"
)

// RedisIdentityStore keeps one identifier per profile under
// "mallow_cart_id:<profile>", with no expiry
type RedisIdentityStore struct {
	client  redis.Cmdable
	profile string
	log     *logger.Logger
}

func NewRedisIdentityStore(client redis.Cmdable, profile string) *RedisIdentityStore {
	return &RedisIdentityStore{
		client:  client,
		profile: profile,
		log:     logger.Get().Component("identity_store"),
	}
}

func (s *RedisIdentityStore) key() string {
	return fmt.Sprintf("%s:%s", IdentityStorageKey, s.profile)
}

func (s *RedisIdentityStore) Load(ctx context.Context) (CartIdentifier, bool) {
	val, err := s.client.Get(ctx, s.key()).Result()
	if errors.Is(err, redis.Nil) {
		return "", false
	}
	if err != nil {
		s.log.Warn("Failed to load cart id from redis, treating as absent", map[string]interface{}{
			"key":   s.key(),
			"error": err.Error(),
		})
		return "", false
	}
	if val == "" {
		return "", false
	}
	return CartIdentifier(val), true
}

func (s *RedisIdentityStore) Save(ctx context.Context, id CartIdentifier) error {
	if err := s.client.Set(ctx, s.key(), string(id), 0).Err(); err != nil {
		s.log.Error("Failed to store cart id in redis", err, map[string]interface{}{
			"key": s.key(),
		})
		return fmt.Errorf("failed to store cart id: %w", err)
	}
	return nil
}
