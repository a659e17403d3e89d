package redis

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
)

var (
	Client *redis.Client
	Ctx    = context.Background()
)

// slugTTL keeps slug lookups hot without serving renamed slugs forever.
const slugTTL = 10 * time.Minute

func InitRedis() {
	Client = redis.NewClient(&redis.Options{
		Addr: os.Getenv("REDIS_ADDR"),
		DB:   0,
	})

	// Test connection
	_, err := Client.Ping(Ctx).Result()
	if err != nil {
		panic(fmt.Sprintf("Failed to connect to Redis: %v", err))
	}
	fmt.Println("✅ Connected to Redis")
}

func slugKey(slug string) string {
	return "slug:" + slug
}

// LookupSlug returns the cached provider id for a slug, or 0 on miss. Cache
// errors degrade to a miss; the caller falls through to the database.
func LookupSlug(slug string) uint {
	if Client == nil {
		return 0
	}
	id, err := Client.Get(Ctx, slugKey(slug)).Uint64()
	if err != nil {
		return 0
	}
	return uint(id)
}

// CacheSlug stores a resolved slug→provider mapping, best effort.
func CacheSlug(slug string, providerID uint) {
	if Client == nil {
		return
	}
	Client.Set(Ctx, slugKey(slug), uint64(providerID), slugTTL)
}

// ForgetSlug drops a cached mapping after a provider changes their slug.
func ForgetSlug(slug string) {
	if Client == nil || slug == "" {
		return
	}
	Client.Del(Ctx, slugKey(slug))
}
