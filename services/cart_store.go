package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	appConfig "github.com/climbsoft/climb-delivery-api/config"
	"github.com/climbsoft/climb-delivery-api/models"
)

// cartTTL is how long an abandoned cart snapshot survives in Redis
const cartTTL = 7 * 24 * time.Hour

// CartStore persists cart snapshots in a key-value store. One key per
// session, whole-object overwrite, no partial updates.
type CartStore interface {
	// Save overwrites the snapshot for the session
	Save(ctx context.Context, sessionID string, cart models.Cart) error

	// Load returns the last snapshot and whether one existed
	Load(ctx context.Context, sessionID string) (models.Cart, bool, error)

	// Delete removes the snapshot for the session
	Delete(ctx context.Context, sessionID string) error
}

// RedisCartStore implements CartStore backed by Redis
type RedisCartStore struct {
	client *redis.Client
}

var cartStoreInstance CartStore

// InitCartStore initializes the Redis-backed cart store from configuration
func InitCartStore() (CartStore, error) {
	cfg := appConfig.GetConfig()

	opts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse REDIS_URL: %w", err)
	}

	cartStoreInstance = &RedisCartStore{
		client: redis.NewClient(opts),
	}
	return cartStoreInstance, nil
}

// GetCartStore returns the initialized cart store instance
func GetCartStore() CartStore {
	return cartStoreInstance
}

// SetCartStore sets the cart store instance (primarily for testing)
func SetCartStore(store CartStore) {
	cartStoreInstance = store
}

func cartKey(sessionID string) string {
	return "cart:" + sessionID
}

// Save serializes the cart and overwrites the session's key
func (s *RedisCartStore) Save(ctx context.Context, sessionID string, cart models.Cart) error {
	payload, err := json.Marshal(cart)
	if err != nil {
		return fmt.Errorf("failed to encode cart snapshot: %w", err)
	}

	if err := s.client.Set(ctx, cartKey(sessionID), payload, cartTTL).Err(); err != nil {
		return fmt.Errorf("failed to save cart snapshot: %w", err)
	}
	return nil
}

// Load fetches and decodes the session's snapshot. A missing key is not an
// error; the second return value reports whether a snapshot existed.
func (s *RedisCartStore) Load(ctx context.Context, sessionID string) (models.Cart, bool, error) {
	payload, err := s.client.Get(ctx, cartKey(sessionID)).Bytes()
	if err == redis.Nil {
		return models.NewCart(), false, nil
	}
	if err != nil {
		return models.NewCart(), false, fmt.Errorf("failed to load cart snapshot: %w", err)
	}

	var cart models.Cart
	if err := json.Unmarshal(payload, &cart); err != nil {
		return models.NewCart(), false, fmt.Errorf("failed to decode cart snapshot: %w", err)
	}
	return cart, true, nil
}

// Delete removes the session's snapshot
func (s *RedisCartStore) Delete(ctx context.Context, sessionID string) error {
	if err := s.client.Del(ctx, cartKey(sessionID)).Err(); err != nil {
		return fmt.Errorf("failed to delete cart snapshot: %w", err)
	}
	return nil
}
