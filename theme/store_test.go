package theme

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMiniredisStore(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	store := NewRedisStore(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	t.Cleanup(func() { store.Close() })
	return store, mr
}

func TestStores_RoundTrip(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	sqliteStore, err := NewSQLiteStore(ctx, filepath.Join(dir, "prefs.db"))
	require.NoError(t, err)
	t.Cleanup(func() { sqliteStore.Close() })

	redisStore, _ := newMiniredisStore(t)

	stores := map[string]Store{
		"memory": NewMemoryStore(),
		"file":   NewFileStore(filepath.Join(dir, "nested", "prefs.json")),
		"sqlite": sqliteStore,
		"redis":  redisStore,
	}

	for name, store := range stores {
		t.Run(name, func(t *testing.T) {
			_, ok, err := store.Get(ctx, "missing")
			require.NoError(t, err)
			assert.False(t, ok)

			require.NoError(t, store.Set(ctx, PreferenceKey, "true"))
			value, ok, err := store.Get(ctx, PreferenceKey)
			require.NoError(t, err)
			assert.True(t, ok)
			assert.Equal(t, "true", value)

			require.NoError(t, store.Set(ctx, PreferenceKey, "false"))
			value, _, err = store.Get(ctx, PreferenceKey)
			require.NoError(t, err)
			assert.Equal(t, "false", value)
		})
	}
}

func TestFileStore_PersistsAcrossInstances(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "prefs.json")

	require.NoError(t, NewFileStore(path).Set(ctx, PreferenceKey, "true"))

	value, ok, err := NewFileStore(path).Get(ctx, PreferenceKey)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "true", value)

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp files should not be left behind")
}

func TestFileStore_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	_, _, err := NewFileStore(path).Get(context.Background(), PreferenceKey)
	assert.Error(t, err)
}

func TestSQLiteStore_PersistsAcrossInstances(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "prefs.db")

	first, err := NewSQLiteStore(ctx, path)
	require.NoError(t, err)
	require.NoError(t, first.Set(ctx, PreferenceKey, "true"))
	require.NoError(t, first.Close())

	second, err := NewSQLiteStore(ctx, path)
	require.NoError(t, err)
	defer second.Close()

	value, ok, err := second.Get(ctx, PreferenceKey)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "true", value)
}

func TestRedisStore_KeyPrefix(t *testing.T) {
	store, mr := newMiniredisStore(t)

	require.NoError(t, store.Set(context.Background(), PreferenceKey, "true"))

	value, err := mr.Get(RedisKeyPrefix + PreferenceKey)
	require.NoError(t, err)
	assert.Equal(t, "true", value)
	assert.Zero(t, mr.TTL(RedisKeyPrefix+PreferenceKey))
}

func TestRedisStore_ConnectionError(t *testing.T) {
	store, mr := newMiniredisStore(t)
	mr.Close()

	_, _, err := store.Get(context.Background(), PreferenceKey)
	assert.Error(t, err)
}

func TestOpenStore(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	mr := miniredis.RunT(t)

	tests := []struct {
		name    string
		opts    StoreOptions
		want    any
		wantErr bool
	}{
		{name: "memory", opts: StoreOptions{Backend: "memory"}, want: &MemoryStore{}},
		{name: "file", opts: StoreOptions{Backend: "file", Path: filepath.Join(dir, "p.json")}, want: &FileStore{}},
		{name: "default is file", opts: StoreOptions{Path: filepath.Join(dir, "p.json")}, want: &FileStore{}},
		{name: "sqlite", opts: StoreOptions{Backend: "SQLite", Path: filepath.Join(dir, "p.db")}, want: &SQLiteStore{}},
		{name: "redis", opts: StoreOptions{Backend: "redis", RedisURL: "redis://" + mr.Addr() + "/0"}, want: &RedisStore{}},
		{name: "sqlite without path", opts: StoreOptions{Backend: "sqlite"}, wantErr: true},
		{name: "redis without url", opts: StoreOptions{Backend: "redis"}, wantErr: true},
		{name: "bad redis url", opts: StoreOptions{Backend: "redis", RedisURL: "http://nope"}, wantErr: true},
		{name: "unknown", opts: StoreOptions{Backend: "etcd"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, err := OpenStore(ctx, tt.opts)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			defer store.Close()
			assert.IsType(t, tt.want, store)
		})
	}
}
