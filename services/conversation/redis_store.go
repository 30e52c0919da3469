package conversation

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"voyago/models"

	"github.com/go-redis/redis/v8"
)

const threadKeyPrefix = "chat:thread:"

// RedisStore keeps each thread as a JSON blob with a TTL refreshed on every
// save. TTL expiry is the stale-thread eviction policy.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

func (s *RedisStore) Get(ctx context.Context, threadID string) (*models.Thread, error) {
	data, err := s.client.Get(ctx, threadKeyPrefix+threadID).Result()
	if err == redis.Nil {
		return models.NewThread(threadID), nil
	}
	if err != nil {
		return nil, &StoreError{Op: "get", Err: err}
	}
	var thread models.Thread
	if err := json.Unmarshal([]byte(data), &thread); err != nil {
		return nil, &StoreError{Op: "decode", Err: err}
	}
	return &thread, nil
}

func (s *RedisStore) Save(ctx context.Context, thread *models.Thread) error {
	thread.UpdatedAt = time.Now().UTC()
	b, err := json.Marshal(thread)
	if err != nil {
		return &StoreError{Op: "encode", Err: err}
	}
	if err := s.client.Set(ctx, threadKeyPrefix+thread.ID, b, s.ttl).Err(); err != nil {
		return &StoreError{Op: "save", Err: err}
	}
	return nil
}

func (s *RedisStore) Reset(ctx context.Context, threadID string) error {
	if err := s.client.Del(ctx, threadKeyPrefix+threadID).Err(); err != nil {
		return &StoreError{Op: "reset", Err: err}
	}
	return nil
}

func (s *RedisStore) List(ctx context.Context) ([]string, error) {
	var (
		ids    []string
		cursor uint64
	)
	for {
		keys, next, err := s.client.Scan(ctx, cursor, threadKeyPrefix+"*", 100).Result()
		if err != nil {
			return nil, &StoreError{Op: "list", Err: err}
		}
		for _, key := range keys {
			ids = append(ids, strings.TrimPrefix(key, threadKeyPrefix))
		}
		cursor = next
		if cursor == 0 {
			break
		}
	}
	return ids, nil
}
