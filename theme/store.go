package theme

import (
	"context"
	"fmt"
	"strings"
)

// Store is a named key-value persistence capability for preferences
type Store interface {
	// Get returns the stored value and whether the key exists
	Get(ctx context.Context, key string) (string, bool, error)

	// Set stores value under key, replacing any previous value
	Set(ctx context.Context, key, value string) error

	// Close releases the backing resources
	Close() error
}

// Backend names accepted by OpenStore
const (
	BackendMemory = "memory"
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
)

// StoreOptions selects and configures a preference backend
type StoreOptions struct {
	Backend  string // one of the Backend constants; empty means file
	Path     string // file or SQLite database path
	RedisURL string // redis://host:port/db
}

// OpenStore opens the backend named in opts
func OpenStore(ctx context.Context, opts StoreOptions) (Store, error) {
	switch strings.ToLower(opts.Backend) {
	case "", BackendFile:
		path := opts.Path
		if path == "" {
			var err error
			if path, err = DefaultFilePath(); err != nil {
				return nil, err
			}
		}
		return NewFileStore(path), nil
	case BackendMemory:
		return NewMemoryStore(), nil
	case BackendSQLite:
		if opts.Path == "" {
			return nil, fmt.Errorf("sqlite backend requires a path")
		}
		return NewSQLiteStore(ctx, opts.Path)
	case BackendRedis:
		if opts.RedisURL == "" {
			return nil, fmt.Errorf("redis backend requires a URL")
		}
		return NewRedisStoreWithURL(ctx, opts.RedisURL)
	default:
		return nil, fmt.Errorf("unknown preference backend %q", opts.Backend)
	}
}
