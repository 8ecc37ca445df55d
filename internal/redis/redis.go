package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

var Rdb *redis.Client

func InitRedis(redisAddress, redisUsername, redisPassword string) {
	Rdb = redis.NewClient(&redis.Options{
		Addr:     redisAddress,
		Username: redisUsername,
		Password: redisPassword,
		DB:       0,
	})
}

// Enabled reports whether a Redis client was configured. Callers degrade to
// uncached behavior when it is off.
func Enabled() bool {
	return Rdb != nil
}

func Set(ctx context.Context, key string, value interface{}, expiration time.Duration) {
	if err := Rdb.Set(ctx, key, value, expiration).Err(); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("failed to set redis key")
	}
}

func GetUnmarshalledJSON(ctx context.Context, key string, dest any) error {
	raw, err := Rdb.Get(ctx, key).Result()
	if err != nil {
		return err
	}
	return json.Unmarshal([]byte(raw), dest)
}

// BannerFeedKey is where a device's serialized active banner feed is cached.
func BannerFeedKey(deviceID int) string {
	return fmt.Sprintf("device:%d:banners", deviceID)
}

// InvalidateBannerFeed drops a device's cached feed so the next player
// fetch sees fresh content.
func InvalidateBannerFeed(ctx context.Context, deviceID int) {
	if !Enabled() {
		return
	}
	key := BannerFeedKey(deviceID)
	if err := Rdb.Del(ctx, key).Err(); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("failed to invalidate banner feed cache")
	} else {
		log.Debug().Str("key", key).Msg("invalidated banner feed cache")
	}
}
