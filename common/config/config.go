package config

import (
	"fmt"
	"os"
	"time"
)

// RedisConfig Redis配置
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// APIConfig 后端 REST API 配置
type APIConfig struct {
	BaseURL string
	Timeout time.Duration
}

// LoadFromEnv 从环境变量加载Redis配置
func (c *RedisConfig) LoadFromEnv(prefix string) {
	if addr := os.Getenv(prefix + "_ADDR"); addr != "" {
		c.Addr = addr
	}
	if password := os.Getenv(prefix + "_PASSWORD"); password != "" {
		c.Password = password
	}
	if db := os.Getenv(prefix + "_DB"); db != "" {
		fmt.Sscanf(db, "%d", &c.DB)
	}
}

// LoadFromEnv 从环境变量加载 API 配置
// API_TIMEOUT 支持 time.ParseDuration 格式（如 "15s"），也接受纯秒数
func (c *APIConfig) LoadFromEnv(prefix string) {
	if baseURL := os.Getenv(prefix + "_BASE_URL"); baseURL != "" {
		c.BaseURL = baseURL
	}
	if timeout := os.Getenv(prefix + "_TIMEOUT"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil {
			c.Timeout = d
		} else {
			var secs int
			if _, err := fmt.Sscanf(timeout, "%d", &secs); err == nil && secs > 0 {
				c.Timeout = time.Duration(secs) * time.Second
			}
		}
	}
}
