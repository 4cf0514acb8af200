package session

import (
	"context"
	"fmt"
	"time"

	goredis "github.com/go-redis/redis/v8"
)

// RedisBackend хранит каждую сессию в hash "<prefix>:session:<id>", поля - ключи сессии.
type RedisBackend struct {
	client *goredis.Client
	prefix string
}

func NewRedisBackend(client *goredis.Client, prefix string) *RedisBackend {
	return &RedisBackend{client: client, prefix: prefix}
}

func (b *RedisBackend) key(sessionID string) string {
	return fmt.Sprintf("%s:session:%s", b.prefix, sessionID)
}

func (b *RedisBackend) Load(ctx context.Context, sessionID string) (map[string]string, error) {
	values, err := b.client.HGetAll(ctx, b.key(sessionID)).Result()
	if err != nil {
		return nil, fmt.Errorf("redis HGETALL: %w", err)
	}
	return values, nil
}

func (b *RedisBackend) Save(ctx context.Context, sessionID string, values map[string]string, ttl time.Duration) error {
	key := b.key(sessionID)
	fields := make(map[string]interface{}, len(values))
	for k, v := range values {
		fields[k] = v
	}

	// старые поля удаляются, чтобы сессия целиком заменялась новой
	_, err := b.client.TxPipelined(ctx, func(pipe goredis.Pipeliner) error {
		pipe.Del(ctx, key)
		pipe.HSet(ctx, key, fields)
		if ttl > 0 {
			pipe.Expire(ctx, key, ttl)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("redis save session: %w", err)
	}
	return nil
}

func (b *RedisBackend) Delete(ctx context.Context, sessionID string) error {
	if err := b.client.Del(ctx, b.key(sessionID)).Err(); err != nil {
		return fmt.Errorf("redis DEL: %w", err)
	}
	return nil
}
