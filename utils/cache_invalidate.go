package utils

import (
	"context"

	"github.com/redis/go-redis/v9"
)

// CacheInvalidator purges cached responses after writes so public readers
// never see stale event or category data.
type CacheInvalidator struct{ rdb *redis.Client }

func NewCacheInvalidator(rdb *redis.Client) *CacheInvalidator { return &CacheInvalidator{rdb} }

func (ci *CacheInvalidator) purgePrefix(ctx context.Context, prefix string) {
	iter := ci.rdb.Scan(ctx, 0, prefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		_ = ci.rdb.Del(ctx, iter.Val()).Err()
	}
}

func (ci *CacheInvalidator) PurgeEventsList(ctx context.Context) {
	ci.purgePrefix(ctx, "cache:events:list:")
}

// PurgeEventItem drops all cached single-event responses. Keys carry the id
// hashed, so the whole item namespace goes rather than one entry.
func (ci *CacheInvalidator) PurgeEventItem(ctx context.Context) {
	ci.purgePrefix(ctx, "cache:events:item:")
}

func (ci *CacheInvalidator) PurgeCategories(ctx context.Context) {
	ci.purgePrefix(ctx, "cache:categories:")
}
