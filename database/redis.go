package database

import (
	"context"
	"log"
	"time"

	"todoweb/config"

	"github.com/redis/go-redis/v9"
)

var Rdb *redis.Client
var Ctx = context.Background()

func ConnectRedis(cfg config.Config) {
	Rdb = redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	_, err := Rdb.Ping(Ctx).Result()
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}

	log.Println("Redis connection successfully opened.")
}

// RedisStorage adapts the Redis client to the fiber.Storage interface so the
// session middleware can persist sessions across process restarts.
type RedisStorage struct {
	client *redis.Client
}

func NewRedisStorage(client *redis.Client) *RedisStorage {
	return &RedisStorage{client: client}
}

func (s *RedisStorage) Get(key string) ([]byte, error) {
	val, err := s.client.Get(Ctx, key).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	return val, err
}

func (s *RedisStorage) Set(key string, val []byte, exp time.Duration) error {
	return s.client.Set(Ctx, key, val, exp).Err()
}

func (s *RedisStorage) Delete(key string) error {
	return s.client.Del(Ctx, key).Err()
}

func (s *RedisStorage) Reset() error {
	return s.client.FlushDB(Ctx).Err()
}

func (s *RedisStorage) Close() error {
	return s.client.Close()
}
