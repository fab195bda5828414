package dialogue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"roombook/models"

	"github.com/go-redis/redis/v8"
)

const sessionKeyPrefix = "dialogue:session:"

// RedisSessionStore keeps conversations in Redis as JSON blobs with a TTL,
// so idle sessions evict themselves.
type RedisSessionStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisSessionStore(client *redis.Client, ttl time.Duration) *RedisSessionStore {
	return &RedisSessionStore{client: client, ttl: ttl}
}

func (s *RedisSessionStore) Get(ctx context.Context, sessionID string) (*models.Conversation, error) {
	data, err := s.client.Get(ctx, sessionKeyPrefix+sessionID).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load session %s: %w", sessionID, err)
	}
	var conv models.Conversation
	if err := json.Unmarshal([]byte(data), &conv); err != nil {
		return nil, fmt.Errorf("decode session %s: %w", sessionID, err)
	}
	return &conv, nil
}

func (s *RedisSessionStore) Put(ctx context.Context, conv *models.Conversation) error {
	b, err := json.Marshal(conv)
	if err != nil {
		return fmt.Errorf("encode session %s: %w", conv.SessionID, err)
	}
	if err := s.client.Set(ctx, sessionKeyPrefix+conv.SessionID, b, s.ttl).Err(); err != nil {
		return fmt.Errorf("store session %s: %w", conv.SessionID, err)
	}
	return nil
}

func (s *RedisSessionStore) Delete(ctx context.Context, sessionID string) error {
	if err := s.client.Del(ctx, sessionKeyPrefix+sessionID).Err(); err != nil {
		return fmt.Errorf("delete session %s: %w", sessionID, err)
	}
	return nil
}
