package repository

import (
	"context"

	redisapp "user_galleries/internal/storage/redis"

	"github.com/google/uuid"
)

// RedisBlockRepo хранит блокировки как множества blocks:{blocker} -> {blocked}.
// Направление важно, политика доступа сама проверяет обе стороны.
type RedisBlockRepo struct {
	Client *redisapp.Client
}

func NewRedisBlockRepo(client *redisapp.Client) *RedisBlockRepo {
	return &RedisBlockRepo{Client: client}
}

func (r *RedisBlockRepo) IsBlocked(ctx context.Context, blocker, blocked uuid.UUID) (bool, error) {
	return r.Client.SIsMember(ctx, blockKey(blocker), blocked.String()).Result()
}

func (r *RedisBlockRepo) Block(ctx context.Context, blocker, blocked uuid.UUID) error {
	return r.Client.SAdd(ctx, blockKey(blocker), blocked.String()).Err()
}

func (r *RedisBlockRepo) Unblock(ctx context.Context, blocker, blocked uuid.UUID) error {
	return r.Client.SRem(ctx, blockKey(blocker), blocked.String()).Err()
}

func blockKey(blocker uuid.UUID) string {
	return "blocks:" + blocker.String()
}
