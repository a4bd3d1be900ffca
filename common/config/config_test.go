package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRedisConfig_LoadFromEnv(t *testing.T) {
	t.Setenv("CACHE_ADDR", "redis:6380")
	t.Setenv("CACHE_PASSWORD", "pw")
	t.Setenv("CACHE_DB", "3")

	c := RedisConfig{Addr: "localhost:6379"}
	c.LoadFromEnv("CACHE")
	assert.Equal(t, "redis:6380", c.Addr)
	assert.Equal(t, "pw", c.Password)
	assert.Equal(t, 3, c.DB)
}

func TestAPIConfig_LoadFromEnv(t *testing.T) {
	c := APIConfig{BaseURL: "http://default", Timeout: time.Second}

	t.Setenv("API_BASE_URL", "https://api.example.com")
	t.Setenv("API_TIMEOUT", "30s")
	c.LoadFromEnv("API")
	assert.Equal(t, "https://api.example.com", c.BaseURL)
	assert.Equal(t, 30*time.Second, c.Timeout)

	t.Setenv("API_TIMEOUT", "7")
	c.LoadFromEnv("API")
	assert.Equal(t, 7*time.Second, c.Timeout)

	t.Setenv("API_TIMEOUT", "garbage")
	c.LoadFromEnv("API")
	assert.Equal(t, 7*time.Second, c.Timeout)
}
