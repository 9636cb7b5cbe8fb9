package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"document-management-server/config"
	"document-management-server/internal/model"
	"document-management-server/internal/util"

	"github.com/redis/go-redis/v9"
)

const listGenerationKey = "documents:list:gen"

// CacheRepository caches document listing pages. Keys embed a generation
// counter, so invalidation is a single INCR and stale pages expire by TTL.
type CacheRepository struct {
	client *config.RedisClient
	ttl    time.Duration
}

func NewCacheRepository(rdb *config.RedisClient, ttl time.Duration) *CacheRepository {
	return &CacheRepository{rdb, ttl}
}

// GetPage : nil, nil on a miss
func (r *CacheRepository) GetPage(ctx context.Context, key string) (*model.DocumentPage, error) {
	fullKey, err := r.key(ctx, key)
	if err != nil {
		return nil, err
	}

	val, err := r.client.Client.Get(ctx, fullKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	} else if err != nil {
		return nil, util.LogError("[CacheRepo] failed to read listing from redis", err)
	}

	var page model.DocumentPage
	if err := json.Unmarshal(val, &page); err != nil {
		return nil, util.LogError("[CacheRepo] failed to decode cached listing", err)
	}
	return &page, nil
}

func (r *CacheRepository) SetPage(ctx context.Context, key string, page *model.DocumentPage) error {
	data, err := json.Marshal(page)
	if err != nil {
		return util.LogError("[CacheRepo] failed to encode listing", err)
	}

	fullKey, err := r.key(ctx, key)
	if err != nil {
		return err
	}

	if err := r.client.Client.Set(ctx, fullKey, data, r.ttl).Err(); err != nil {
		return util.LogError("[CacheRepo] failed to store listing in redis", err)
	}
	return nil
}

// Invalidate : every cached page becomes unreachable
func (r *CacheRepository) Invalidate(ctx context.Context) error {
	if err := r.client.Client.Incr(ctx, listGenerationKey).Err(); err != nil {
		return util.LogError("[CacheRepo] failed to bump listing generation", err)
	}
	return nil
}

func (r *CacheRepository) key(ctx context.Context, key string) (string, error) {
	gen, err := r.client.Client.Get(ctx, listGenerationKey).Int64()
	if err != nil && !errors.Is(err, redis.Nil) {
		return "", util.LogError("[CacheRepo] failed to read listing generation", err)
	}
	return fmt.Sprintf("documents:list:%d:%s", gen, key), nil
}
