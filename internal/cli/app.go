// Package cli reviewdesk 命令行：每个命令对应一个页面动作。
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	commonredis "reviewdesk-mobile/common/redis"
	"reviewdesk-mobile/internal/api"
	"reviewdesk-mobile/internal/config"
	"reviewdesk-mobile/internal/service"
	"reviewdesk-mobile/internal/store"

	"go.uber.org/zap"
)

// App 命令运行所需的全部依赖，在 main 中构建一次，退出时 Close
type App struct {
	Config      *config.Config
	Logger      *zap.Logger
	KV          store.KV
	Sessions    *service.SessionService
	Devices     *service.DeviceService
	Feedback    *service.FeedbackService
	Restaurants *service.RestaurantService

	Out io.Writer
	Err io.Writer
	Now func() time.Time

	closers []func() error
}

// NewApp 按配置打开本地存储并组装服务
func NewApp(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*App, error) {
	kv, closer, err := OpenStore(ctx, cfg)
	if err != nil {
		return nil, err
	}
	app := NewAppWithStore(cfg, logger, kv)
	if closer != nil {
		app.closers = append(app.closers, closer)
	}
	return app, nil
}

// NewAppWithStore 使用已打开的存储组装服务
func NewAppWithStore(cfg *config.Config, logger *zap.Logger, kv store.KV) *App {
	client := api.NewClient(cfg.API, logger)
	sessions := service.NewSessionService(client, kv, logger)
	devices := service.NewDeviceService(client, kv, sessions, cfg.Device.Platform, logger)
	sessions.OnLogout(devices.Clear)

	return &App{
		Config:      cfg,
		Logger:      logger,
		KV:          kv,
		Sessions:    sessions,
		Devices:     devices,
		Feedback:    service.NewFeedbackService(client, sessions, logger),
		Restaurants: service.NewRestaurantService(client, sessions, logger),
		Out:         os.Stdout,
		Err:         os.Stderr,
		Now:         time.Now,
	}
}

// Close 释放存储连接
func (a *App) Close() error {
	var firstErr error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	a.closers = nil
	return firstErr
}

// OpenStore 按 STORE_DRIVER 打开本地 KV；返回的 closer 可能为 nil
func OpenStore(ctx context.Context, cfg *config.Config) (store.KV, func() error, error) {
	switch cfg.Store.Driver {
	case config.StoreSQLite, "":
		kv, err := store.OpenSQLiteKV(cfg.Store.Path)
		if err != nil {
			return nil, nil, err
		}
		return kv, kv.Close, nil
	case config.StoreRedis:
		client := commonredis.NewRedisClient(&cfg.Redis)
		if err := commonredis.Ping(ctx, client); err != nil {
			client.Close()
			return nil, nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		kv := store.NewRedisKV(client)
		return kv, kv.Close, nil
	case config.StoreKeyring:
		return store.NewKeyringKV(cfg.Store.KeyringService), nil, nil
	case config.StoreMemory:
		return store.NewMemoryKV(), nil, nil
	default:
		return nil, nil, fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
	}
}
