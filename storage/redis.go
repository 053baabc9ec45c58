package storage

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/go-redis/redis/v8"
)

var Redis *redis.Client

// FeaturedRoomsKey caches the landing-page featured rooms response.
// Any room write drops it.
const FeaturedRoomsKey = "rooms:featured"

const FeaturedRoomsTTL = 5 * time.Minute

func InitializeRedis() {
	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		redisURL = "localhost:6379"
		log.Println("REDIS_URL not set, using localhost:6379 (development mode)")
	}

	Redis = redis.NewClient(&redis.Options{
		Addr:     redisURL,
		Password: "",
		DB:       0,
	})

	log.Println("Redis initialized with address:", redisURL)
}

// GetCachedFeaturedRooms returns the cached JSON payload, or "" on a miss.
// Cache failures are treated as misses so redis being down never breaks reads.
func GetCachedFeaturedRooms(ctx context.Context) string {
	if Redis == nil {
		return ""
	}
	payload, err := Redis.Get(ctx, FeaturedRoomsKey).Result()
	if err != nil {
		return ""
	}
	return payload
}

func CacheFeaturedRooms(ctx context.Context, payload string) {
	if Redis == nil {
		return
	}
	if err := Redis.Set(ctx, FeaturedRoomsKey, payload, FeaturedRoomsTTL).Err(); err != nil {
		log.Println("failed to cache featured rooms:", err)
	}
}

func InvalidateFeaturedRooms(ctx context.Context) {
	if Redis == nil {
		return
	}
	Redis.Del(ctx, FeaturedRoomsKey)
}
