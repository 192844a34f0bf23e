package kv

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// scanBatch is the COUNT hint passed to SCAN.
const scanBatch = 100

// redisStore implements Store on a Redis (or Valkey) instance. The client
// is injected so tests can point it at an isolated instance.
type redisStore struct {
	client *redis.Client
}

// NewRedisStore wraps an existing Redis client in a Store.
func NewRedisStore(client *redis.Client) Store {
	return &redisStore{client: client}
}

// Connect creates a Redis client and verifies the connection with a ping.
func Connect(addr string) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr: addr,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	log.Println("Redis connected successfully")
	return client, nil
}

func (s *redisStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if key == "" {
		return nil, false, ErrEmptyKey
	}
	val, err := s.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("kv get %q: %w", key, err)
	}
	return val, true, nil
}

func (s *redisStore) Set(ctx context.Context, key string, value []byte) error {
	if key == "" {
		return ErrEmptyKey
	}
	if err := s.client.Set(ctx, key, value, 0).Err(); err != nil {
		return fmt.Errorf("kv set %q: %w", key, err)
	}
	return nil
}

func (s *redisStore) Delete(ctx context.Context, key string) error {
	if key == "" {
		return ErrEmptyKey
	}
	if err := s.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("kv delete %q: %w", key, err)
	}
	return nil
}

// ScanPrefix walks the keyspace with cursor-driven SCAN and fetches each
// batch with MGET. A key that disappears between the SCAN and the MGET
// comes back as nil and is skipped, so a scan racing a delete sees either
// the old value or nothing, never a partial record.
func (s *redisStore) ScanPrefix(ctx context.Context, prefix string) ([][]byte, error) {
	var values [][]byte
	var cursor uint64
	seen := make(map[string]struct{})
	for {
		batch, next, err := s.client.Scan(ctx, cursor, prefix+"*", scanBatch).Result()
		if err != nil {
			return nil, fmt.Errorf("kv scan %q: %w", prefix, err)
		}
		// SCAN may hand back a key more than once across a full iteration.
		keys := batch[:0]
		for _, k := range batch {
			if _, dup := seen[k]; dup {
				continue
			}
			seen[k] = struct{}{}
			keys = append(keys, k)
		}
		if len(keys) > 0 {
			vals, err := s.client.MGet(ctx, keys...).Result()
			if err != nil {
				return nil, fmt.Errorf("kv mget: %w", err)
			}
			for _, v := range vals {
				if v == nil {
					continue
				}
				if str, ok := v.(string); ok {
					values = append(values, []byte(str))
				}
			}
		}
		cursor = next
		if cursor == 0 {
			break
		}
	}
	return values, nil
}
