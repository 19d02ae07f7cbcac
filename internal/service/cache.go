package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/chuyu5762/guestbook-backend/internal/model"
	"github.com/redis/go-redis/v9"
)

// Redis key
const publicListingKey = "guestbook:public_entries"

// ListingCache 公开留言列表的 Redis 缓存
// 缓存失效或 Redis 故障时调用方直接回源数据库，不影响正确性
type ListingCache struct {
	redis *redis.Client
	ttl   time.Duration
}

// NewListingCache 创建列表缓存，client 为 nil 时返回 nil（缓存关闭）
func NewListingCache(client *redis.Client, ttl time.Duration) *ListingCache {
	if client == nil {
		return nil
	}
	if ttl <= 0 {
		ttl = time.Minute
	}
	return &ListingCache{redis: client, ttl: ttl}
}

// Get 读取缓存的公开列表，未命中或反序列化失败返回 false
func (c *ListingCache) Get(ctx context.Context) ([]model.PublicEntry, bool) {
	if c == nil {
		return nil, false
	}
	data, err := c.redis.Get(ctx, publicListingKey).Bytes()
	if err != nil {
		return nil, false
	}
	var entries []model.PublicEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, false
	}
	return entries, true
}

// Set 写入公开列表缓存，失败静默忽略
func (c *ListingCache) Set(ctx context.Context, entries []model.PublicEntry) {
	if c == nil {
		return
	}
	data, err := json.Marshal(entries)
	if err != nil {
		return
	}
	c.redis.Set(ctx, publicListingKey, data, c.ttl)
}

// Invalidate 在写操作后使缓存失效
func (c *ListingCache) Invalidate(ctx context.Context) {
	if c == nil {
		return
	}
	c.redis.Del(ctx, publicListingKey)
}
