package session

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore shares one session between several client processes. The two
// entries live under <prefix>:auth_token and <prefix>:user_data with the same
// TTL and are deleted in a single DEL.
type RedisStore struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

func NewRedisStore(client *redis.Client, prefix string, ttl time.Duration) *RedisStore {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &RedisStore{
		client: client,
		prefix: prefix,
		ttl:    ttl,
	}
}

func (r *RedisStore) key(name string) string {
	return r.prefix + ":" + name
}

func (r *RedisStore) Get(ctx context.Context) (*Session, error) {
	vals, err := r.client.MGet(ctx, r.key(TokenKey), r.key(UserKey)).Result()
	if err != nil {
		return nil, fmt.Errorf("read session: %w", err)
	}

	token, _ := vals[0].(string)
	if token == "" {
		return nil, nil
	}
	userRaw, _ := vals[1].(string)

	return decodeUser(token, userRaw), nil
}

func (r *RedisStore) Set(ctx context.Context, s *Session) error {
	userRaw, err := encodeUser(s)
	if err != nil {
		return fmt.Errorf("encode user: %w", err)
	}

	_, err = r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, r.key(TokenKey), s.Token, r.ttl)
		pipe.Set(ctx, r.key(UserKey), userRaw, r.ttl)
		return nil
	})
	if err != nil {
		return fmt.Errorf("write session: %w", err)
	}
	return nil
}

func (r *RedisStore) Clear(ctx context.Context) error {
	if err := r.client.Del(ctx, r.key(TokenKey), r.key(UserKey)).Err(); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}
