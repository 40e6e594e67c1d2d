package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/johnquangdev/voice-dataset/internal/domain/entities"
	"github.com/johnquangdev/voice-dataset/internal/domain/repositories"
)

const sessionKeyPrefix = "voice:session:"

// RedisStore keeps session snapshots in Redis so any API instance can resume a session
type RedisStore struct {
	client redis.Cmdable
}

var _ repositories.SessionStore = (*RedisStore)(nil)

// NewRedisStore creates a snapshot store over a Redis client
func NewRedisStore(client redis.Cmdable) *RedisStore {
	return &RedisStore{client: client}
}

// SessionKey returns the Redis key of a session snapshot
func SessionKey(id string) string {
	return sessionKeyPrefix + id
}

// Save writes the snapshot with ttl
func (s *RedisStore) Save(ctx context.Context, snapshot *entities.SessionSnapshot, ttl time.Duration) error {
	value, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("failed to encode session snapshot: %w", err)
	}

	if err := s.client.Set(ctx, SessionKey(snapshot.ID), value, ttl).Err(); err != nil {
		return fmt.Errorf("failed to store session snapshot '%s': %w", snapshot.ID, err)
	}
	return nil
}

// Load reads a snapshot
func (s *RedisStore) Load(ctx context.Context, id string) (*entities.SessionSnapshot, error) {
	value, err := s.client.Get(ctx, SessionKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, entities.ErrSnapshotNotFound
		}
		return nil, fmt.Errorf("failed to load session snapshot '%s': %w", id, err)
	}

	var snapshot entities.SessionSnapshot
	if err := json.Unmarshal(value, &snapshot); err != nil {
		return nil, fmt.Errorf("failed to decode session snapshot '%s': %w", id, err)
	}
	return &snapshot, nil
}

// Touch resets the key's ttl
func (s *RedisStore) Touch(ctx context.Context, id string, ttl time.Duration) error {
	ok, err := s.client.Expire(ctx, SessionKey(id), ttl).Result()
	if err != nil {
		return fmt.Errorf("failed to refresh session snapshot '%s': %w", id, err)
	}
	if !ok {
		return entities.ErrSnapshotNotFound
	}
	return nil
}

// Delete removes a snapshot
func (s *RedisStore) Delete(ctx context.Context, id string) error {
	if err := s.client.Del(ctx, SessionKey(id)).Err(); err != nil {
		return fmt.Errorf("failed to delete session snapshot '%s': %w", id, err)
	}
	return nil
}

// NewRedisClient connects to Redis and verifies the connection
func NewRedisClient(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to ping redis at %s: %w", addr, err)
	}
	return client, nil
}
