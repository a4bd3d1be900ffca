package config

import (
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"time"

	commoncfg "reviewdesk-mobile/common/config"
)

// 本地存储驱动
const (
	StoreSQLite  = "sqlite"
	StoreRedis   = "redis"
	StoreKeyring = "keyring"
	StoreMemory  = "memory"
)

// Config reviewdesk 客户端配置（全部来自环境变量）
type Config struct {
	API   commoncfg.APIConfig
	Store struct {
		Driver         string
		Path           string
		KeyringService string
	}
	Redis commoncfg.RedisConfig
	Log   struct {
		Level  string
		Format string
	}
	Device struct {
		Name     string
		Platform string
	}
	Stub struct {
		Addr string
		Seed bool
	}
}

func Load() *Config {
	cfg := &Config{}
	cfg.API.BaseURL = getEnv("API_BASE_URL", "http://localhost:8088")
	cfg.API.Timeout = 15 * time.Second
	cfg.API.LoadFromEnv("API")

	cfg.Store.Driver = getEnv("STORE_DRIVER", StoreSQLite)
	cfg.Store.Path = getEnv("STORE_PATH", defaultStorePath())
	cfg.Store.KeyringService = getEnv("STORE_KEYRING_SERVICE", "reviewdesk")

	cfg.Redis.Addr = "localhost:6379"
	cfg.Redis.DB = parseInt(getEnv("REDIS_DB", "0"), 0)
	cfg.Redis.LoadFromEnv("REDIS")

	cfg.Log.Level = getEnv("LOG_LEVEL", "warn")
	cfg.Log.Format = getEnv("LOG_FORMAT", "console")

	host, _ := os.Hostname()
	cfg.Device.Name = getEnv("DEVICE_NAME", host)
	cfg.Device.Platform = getEnv("DEVICE_PLATFORM", runtime.GOOS)

	cfg.Stub.Addr = getEnv("STUB_ADDR", ":8088")
	cfg.Stub.Seed = getEnv("STUB_SEED", "true") == "true"

	return cfg
}

func defaultStorePath() string {
	dir, err := os.UserConfigDir()
	if err != nil || dir == "" {
		dir = "."
	}
	return filepath.Join(dir, "reviewdesk", "store.db")
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func parseInt(s string, def int) int {
	i, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return i
}
