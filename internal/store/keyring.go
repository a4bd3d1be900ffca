package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/zalando/go-keyring"
)

// ErrKeyringUnavailable 系统 keyring 不可用
var ErrKeyringUnavailable = errors.New("OS keyring is not available")

// KeyringKV 使用系统 keyring 保存凭证（对应移动端的 secure storage）
// keyring 不支持过期，ttl 被忽略
type KeyringKV struct {
	service string
}

func NewKeyringKV(service string) *KeyringKV { return &KeyringKV{service: service} }

func (k *KeyringKV) Get(ctx context.Context, key string) (string, error) {
	v, err := keyring.Get(k.service, key)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return "", ErrMiss
		}
		return "", fmt.Errorf("%w: %v", ErrKeyringUnavailable, err)
	}
	return v, nil
}

func (k *KeyringKV) Set(ctx context.Context, key string, value string, ttl time.Duration) error {
	if err := keyring.Set(k.service, key, value); err != nil {
		return fmt.Errorf("failed to store %s in keyring: %w", key, err)
	}
	return nil
}

func (k *KeyringKV) Delete(ctx context.Context, keys ...string) error {
	for _, key := range keys {
		err := keyring.Delete(k.service, key)
		if err != nil && !errors.Is(err, keyring.ErrNotFound) {
			return fmt.Errorf("failed to delete %s from keyring: %w", key, err)
		}
	}
	return nil
}
