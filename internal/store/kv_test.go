package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zalando/go-keyring"
)

// exerciseKV 各驱动共用的读写/删除行为
func exerciseKV(t *testing.T, kv KV) {
	t.Helper()
	ctx := context.Background()

	_, err := kv.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrMiss)

	require.NoError(t, kv.Set(ctx, "reviewdesk:device:id", "dev-1", 0))
	require.NoError(t, kv.Set(ctx, "reviewdesk:device:secret", "s3cret", 0))
	v, err := kv.Get(ctx, "reviewdesk:device:id")
	require.NoError(t, err)
	assert.Equal(t, "dev-1", v)

	// overwrite
	require.NoError(t, kv.Set(ctx, "reviewdesk:device:id", "dev-2", 0))
	v, err = kv.Get(ctx, "reviewdesk:device:id")
	require.NoError(t, err)
	assert.Equal(t, "dev-2", v)

	require.NoError(t, kv.Delete(ctx, "reviewdesk:device:id", "reviewdesk:device:secret", "never-set"))
	_, err = kv.Get(ctx, "reviewdesk:device:id")
	assert.ErrorIs(t, err, ErrMiss)
	_, err = kv.Get(ctx, "reviewdesk:device:secret")
	assert.ErrorIs(t, err, ErrMiss)
}

func TestMemoryKV(t *testing.T) {
	exerciseKV(t, NewMemoryKV())
}

func TestMemoryKV_TTL(t *testing.T) {
	kv := NewMemoryKV()
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	kv.now = func() time.Time { return now }
	ctx := context.Background()

	require.NoError(t, kv.Set(ctx, "token", "abc", time.Minute))
	v, err := kv.Get(ctx, "token")
	require.NoError(t, err)
	assert.Equal(t, "abc", v)

	now = now.Add(2 * time.Minute)
	_, err = kv.Get(ctx, "token")
	assert.ErrorIs(t, err, ErrMiss)
}

func TestRedisKV(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	kv := NewRedisKV(client)
	defer kv.Close()

	exerciseKV(t, kv)

	require.NoError(t, kv.Set(context.Background(), "token", "abc", time.Minute))
	mr.FastForward(2 * time.Minute)
	_, err := kv.Get(context.Background(), "token")
	assert.ErrorIs(t, err, ErrMiss)
	require.NoError(t, kv.Delete(context.Background()))
}

func TestSQLiteKV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "store.db")
	kv, err := OpenSQLiteKV(path)
	require.NoError(t, err)
	defer kv.Close()

	exerciseKV(t, kv)
}

func TestSQLiteKV_PersistsAcrossOpen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store.db")
	ctx := context.Background()

	kv, err := OpenSQLiteKV(path)
	require.NoError(t, err)
	require.NoError(t, kv.Set(ctx, "reviewdesk:session:token", "tok", 0))
	require.NoError(t, kv.Close())

	kv, err = OpenSQLiteKV(path)
	require.NoError(t, err)
	defer kv.Close()
	v, err := kv.Get(ctx, "reviewdesk:session:token")
	require.NoError(t, err)
	assert.Equal(t, "tok", v)
}

func TestSQLiteKV_TTL(t *testing.T) {
	kv, err := OpenSQLiteKV(filepath.Join(t.TempDir(), "store.db"))
	require.NoError(t, err)
	defer kv.Close()
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	kv.now = func() time.Time { return now }
	ctx := context.Background()

	require.NoError(t, kv.Set(ctx, "token", "abc", time.Hour))
	_, err = kv.Get(ctx, "token")
	require.NoError(t, err)

	now = now.Add(61 * time.Minute)
	_, err = kv.Get(ctx, "token")
	assert.ErrorIs(t, err, ErrMiss)
}

func TestKeyringKV(t *testing.T) {
	keyring.MockInit()
	exerciseKV(t, NewKeyringKV("reviewdesk-test"))
}
