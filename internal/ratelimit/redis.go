package ratelimit

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// consumeScript incrementa e define a expiração de forma atômica.
// Retorna {permitido, contador, pttl em ms}.
var consumeScript = redis.NewScript(`
local current = tonumber(redis.call('GET', KEYS[1]) or '0')
if current >= tonumber(ARGV[1]) then
	return {0, current, redis.call('PTTL', KEYS[1])}
end
local count = redis.call('INCR', KEYS[1])
local ttl = redis.call('PTTL', KEYS[1])
if count == 1 or ttl < 0 then
	redis.call('PEXPIRE', KEYS[1], ARGV[2])
	ttl = tonumber(ARGV[2])
end
return {1, count, ttl}
`)

// RedisStore compartilha as janelas entre réplicas
type RedisStore struct {
	client    *redis.Client
	keyPrefix string
	now       func() time.Time
}

// NewRedisClient cria o cliente e valida a conexão
func NewRedisClient(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return client, nil
}

func NewRedisStore(client *redis.Client, keyPrefix string) *RedisStore {
	if keyPrefix == "" {
		keyPrefix = "ratelimit:"
	}

	return &RedisStore{
		client:    client,
		keyPrefix: keyPrefix,
		now:       time.Now,
	}
}

func (s *RedisStore) key(key string) string {
	return s.keyPrefix + key
}

func (s *RedisStore) Consume(ctx context.Context, key string, limit int, window time.Duration) (Window, bool, error) {
	values, err := consumeScript.Run(ctx, s.client, []string{s.key(key)}, limit, window.Milliseconds()).Int64Slice()
	if err != nil {
		return Window{}, false, fmt.Errorf("ratelimit: redis consume failed: %w", err)
	}

	if len(values) != 3 {
		return Window{}, false, fmt.Errorf("ratelimit: unexpected redis reply %v", values)
	}

	w := Window{
		Count:   int(values[1]),
		ResetAt: s.now().Add(time.Duration(values[2]) * time.Millisecond),
	}

	return w, values[0] == 1, nil
}

func (s *RedisStore) Get(ctx context.Context, key string) (*Window, error) {
	pipe := s.client.Pipeline()
	getCmd := pipe.Get(ctx, s.key(key))
	ttlCmd := pipe.PTTL(ctx, s.key(key))

	if _, err := pipe.Exec(ctx); err != nil && !errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("ratelimit: redis get failed: %w", err)
	}

	count, err := getCmd.Int()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("ratelimit: invalid counter: %w", err)
	}

	ttl := ttlCmd.Val()
	if ttl <= 0 {
		return nil, nil
	}

	return &Window{Count: count, ResetAt: s.now().Add(ttl)}, nil
}

func (s *RedisStore) Delete(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, s.key(key)).Err(); err != nil {
		return fmt.Errorf("ratelimit: redis delete failed: %w", err)
	}
	return nil
}
