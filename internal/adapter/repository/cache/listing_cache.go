package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Abdurahmanit/GroupProject/bookmarket-service/internal/listing/domain"
	"github.com/Abdurahmanit/GroupProject/bookmarket-service/internal/platform/logger"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	keyPrefix = "listing:"
	// tombstone marks a recently invalidated key. It outlives any read-then-fill
	// window so a fill that loaded the old state is rejected by SetNX.
	tombstone    = "\x00invalidated"
	tombstoneTTL = 30 * time.Second
)

// ListingCache is a Redis read-through cache for stored listings.
type ListingCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *logger.Logger
}

func NewRedisClient(addr, password string, db int, log *logger.Logger) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		log.Error("Failed to connect to Redis", zap.String("address", addr), zap.Error(err))
		return nil, fmt.Errorf("failed to ping redis at %s: %w", addr, err)
	}
	log.Info("Successfully connected to Redis", zap.String("address", addr))
	return rdb, nil
}

func NewListingCache(client *redis.Client, ttl time.Duration, log *logger.Logger) *ListingCache {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &ListingCache{client: client, ttl: ttl, logger: log.Named("ListingCache")}
}

func key(id string) string { return keyPrefix + id }

// GetListing returns nil, nil on a miss.
func (c *ListingCache) GetListing(ctx context.Context, id string) (*domain.Listing, error) {
	data, err := c.client.Get(ctx, key(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		c.logger.Error("Redis Get failed", zap.String("key", key(id)), zap.Error(err))
		return nil, fmt.Errorf("cache get %s: %w", id, err)
	}
	if string(data) == tombstone {
		return nil, nil
	}
	var listing domain.Listing
	if err := json.Unmarshal(data, &listing); err != nil {
		c.logger.Warn("Dropping undecodable cache entry", zap.String("key", key(id)), zap.Error(err))
		_ = c.client.Del(ctx, key(id)).Err()
		return nil, nil
	}
	return &listing, nil
}

// SetListing fills an empty key only. Live entries and tombstones are kept.
func (c *ListingCache) SetListing(ctx context.Context, listing *domain.Listing) error {
	data, err := json.Marshal(listing)
	if err != nil {
		return fmt.Errorf("cache encode %s: %w", listing.ID, err)
	}
	if err := c.client.SetNX(ctx, key(listing.ID), data, c.ttl).Err(); err != nil {
		c.logger.Error("Redis Set failed", zap.String("key", key(listing.ID)), zap.Error(err))
		return fmt.Errorf("cache set %s: %w", listing.ID, err)
	}
	return nil
}

// DeleteListing replaces the entry with a short-lived tombstone.
func (c *ListingCache) DeleteListing(ctx context.Context, id string) error {
	if err := c.client.Set(ctx, key(id), tombstone, tombstoneTTL).Err(); err != nil {
		return fmt.Errorf("cache delete %s: %w", id, err)
	}
	return nil
}
