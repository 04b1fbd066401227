package repository

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"
)

// RedisRecordRepository stores board records as plain redis strings.
type RedisRecordRepository struct {
	client *redis.Client
	prefix string
}

// NewRedisRecordRepository namespaces every record name with prefix.
func NewRedisRecordRepository(client *redis.Client, prefix string) *RedisRecordRepository {
	return &RedisRecordRepository{client: client, prefix: prefix}
}

func (r *RedisRecordRepository) Load(ctx context.Context, name string) (string, error) {
	payload, err := r.client.Get(ctx, r.key(name)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", ErrRecordNotFound
		}
		return "", err
	}
	return payload, nil
}

func (r *RedisRecordRepository) Save(ctx context.Context, name, payload string) error {
	return r.client.Set(ctx, r.key(name), payload, 0).Err()
}

func (r *RedisRecordRepository) Delete(ctx context.Context, name string) error {
	return r.client.Del(ctx, r.key(name)).Err()
}

func (r *RedisRecordRepository) key(name string) string {
	return r.prefix + name
}
