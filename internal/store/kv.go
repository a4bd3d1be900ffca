package store

import (
	"context"
	"errors"
	"time"
)

// ErrMiss 键不存在（或已过期）
var ErrMiss = errors.New("cache miss")

// KV 设备本地键值存储：单键原子读写，没有事务
type KV interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value string, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}
