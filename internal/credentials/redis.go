package credentials

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore keeps credentials in redis with a TTL
type RedisStore struct {
	rdb *redis.Client
	ttl time.Duration
}

// RedisConfig configures a RedisStore
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	TTL      time.Duration
}

// NewRedisStore creates a store. The connection is established lazily.
func NewRedisStore(cfg RedisConfig) *RedisStore {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &RedisStore{rdb: rdb, ttl: ttl}
}

func key(username string) string {
	return RedisKeyPrefix + normalizeUsername(username)
}

// Ping checks the redis connection
func (r *RedisStore) Ping(ctx context.Context) error {
	return r.rdb.Ping(ctx).Err()
}

// Get reads the stored credentials of a user
func (r *RedisStore) Get(ctx context.Context, username string) (Credentials, error) {
	val, err := r.rdb.Get(ctx, key(username)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return Credentials{}, ErrNotFound
		}
		return Credentials{}, fmt.Errorf("retrieve credentials from redis: %w", err)
	}

	var creds Credentials
	if err := json.Unmarshal([]byte(val), &creds); err != nil {
		slog.Default().Warn(LogMsgCorruptRecord, "username", username, "error", err)
		return Credentials{}, ErrNotFound
	}
	return creds, nil
}

// Put stores the credentials, refreshing the TTL
func (r *RedisStore) Put(ctx context.Context, username string, creds Credentials) error {
	data, err := json.Marshal(creds)
	if err != nil {
		return fmt.Errorf("serialize credentials: %w", err)
	}
	if err := r.rdb.Set(ctx, key(username), data, r.ttl).Err(); err != nil {
		return fmt.Errorf("store credentials in redis: %w", err)
	}
	slog.Default().Debug(LogMsgStored, "username", username, "backend", "redis")
	return nil
}

// Delete removes the stored credentials
func (r *RedisStore) Delete(ctx context.Context, username string) error {
	if err := r.rdb.Del(ctx, key(username)).Err(); err != nil {
		return fmt.Errorf("delete credentials from redis: %w", err)
	}
	slog.Default().Debug(LogMsgDeleted, "username", username, "backend", "redis")
	return nil
}

// Close closes the redis client
func (r *RedisStore) Close() error {
	return r.rdb.Close()
}
