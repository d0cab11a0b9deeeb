package config

import (
	"log"
	"os"
	"strings"

	"github.com/bsm/redislock"
	"github.com/redis/go-redis/v9"
)

var (
	rdb    *redis.Client
	locker *redislock.Client
)

func GetRedisDB() *redis.Client {
	return rdb
}

func GetRedisLock() *redislock.Client {
	return locker
}

// ConnectRedis initializes the redis client used for the migration run lock.
// REDIS_URL is optional; when unset the run lock is skipped entirely.
func ConnectRedis() {
	redisURL := strings.TrimSpace(os.Getenv("REDIS_URL"))
	if redisURL == "" {
		return
	}
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		log.Printf("invalid REDIS_URL, run lock disabled: %v", err)
		return
	}
	rdb = redis.NewClient(opt)
	locker = redislock.New(rdb)
}
