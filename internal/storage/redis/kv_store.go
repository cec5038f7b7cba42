package redis

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	goredis "github.com/go-redis/redis/v8"

	"github.com/vladislavdragonenkov/orderdesk/internal/domain"
)

const (
	opTimeout     = 3 * time.Second
	scanBatchSize = 100
	// DefaultPrefix отделяет ключи orderdesk от остальных данных инстанса.
	DefaultPrefix = "orderdesk:"
)

// kvStoreRedis хранит значения как обычные строковые ключи с общим префиксом.
type kvStoreRedis struct {
	client *goredis.Client
	prefix string
}

// Open создаёт клиента и проверяет соединение командой PING.
func Open(ctx context.Context, addr string) (*goredis.Client, error) {
	if strings.TrimSpace(addr) == "" {
		return nil, errors.New("redis address is required")
	}
	client := goredis.NewClient(&goredis.Options{Addr: addr})

	pingCtx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return client, nil
}

// NewKeyValueStore создаёт Redis-реализацию KeyValueStore. Пустой prefix заменяется DefaultPrefix.
func NewKeyValueStore(client *goredis.Client, prefix string) domain.KeyValueStore {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return &kvStoreRedis{client: client, prefix: prefix}
}

func (s *kvStoreRedis) key(key string) string {
	return s.prefix + key
}

func (s *kvStoreRedis) Get(key string) (string, bool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	value, err := s.client.Get(ctx, s.key(key)).Result()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("redis get %s: %w", key, err)
	}
	return value, true, nil
}

func (s *kvStoreRedis) Set(key, value string) error {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	if err := s.client.Set(ctx, s.key(key), value, 0).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}

func (s *kvStoreRedis) Delete(key string) error {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	if err := s.client.Del(ctx, s.key(key)).Err(); err != nil {
		return fmt.Errorf("redis del %s: %w", key, err)
	}
	return nil
}

// Clear удаляет только ключи с префиксом хранилища, обходя их через SCAN.
func (s *kvStoreRedis) Clear() error {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	var cursor uint64
	for {
		keys, next, err := s.client.Scan(ctx, cursor, s.prefix+"*", scanBatchSize).Result()
		if err != nil {
			return fmt.Errorf("redis scan %s*: %w", s.prefix, err)
		}
		if len(keys) > 0 {
			if err := s.client.Del(ctx, keys...).Err(); err != nil {
				return fmt.Errorf("redis del batch: %w", err)
			}
		}
		if next == 0 {
			return nil
		}
		cursor = next
	}
}

func (s *kvStoreRedis) Ping() error {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()
	return s.client.Ping(ctx).Err()
}

var _ domain.KeyValueStore = (*kvStoreRedis)(nil)
