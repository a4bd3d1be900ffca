package config

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	for _, k := range []string{"API_BASE_URL", "API_TIMEOUT", "STORE_DRIVER", "STORE_PATH", "LOG_LEVEL", "STUB_SEED"} {
		t.Setenv(k, "")
	}
	cfg := Load()
	assert.Equal(t, "http://localhost:8088", cfg.API.BaseURL)
	assert.Equal(t, 15*time.Second, cfg.API.Timeout)
	assert.Equal(t, StoreSQLite, cfg.Store.Driver)
	assert.Equal(t, "store.db", filepath.Base(cfg.Store.Path))
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.True(t, cfg.Stub.Seed)
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("API_BASE_URL", "https://api.reviewdesk.test")
	t.Setenv("API_TIMEOUT", "3s")
	t.Setenv("STORE_DRIVER", "redis")
	t.Setenv("REDIS_ADDR", "cache:6379")
	t.Setenv("REDIS_DB", "2")
	t.Setenv("DEVICE_NAME", "Bar tablet")
	t.Setenv("STUB_SEED", "false")

	cfg := Load()
	assert.Equal(t, "https://api.reviewdesk.test", cfg.API.BaseURL)
	assert.Equal(t, 3*time.Second, cfg.API.Timeout)
	assert.Equal(t, StoreRedis, cfg.Store.Driver)
	assert.Equal(t, "cache:6379", cfg.Redis.Addr)
	assert.Equal(t, 2, cfg.Redis.DB)
	assert.Equal(t, "Bar tablet", cfg.Device.Name)
	assert.False(t, cfg.Stub.Seed)
}

func TestParseInt(t *testing.T) {
	assert.Equal(t, 5, parseInt("5", 1))
	assert.Equal(t, 1, parseInt("x", 1))
}
