package service

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"
)

// redisCache 服务层用到的 Redis 命令子集，测试时可替换为内存实现
type redisCache interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}
