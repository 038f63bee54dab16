package cache

import (
	"context"
	"fmt"
)

// Backend names accepted by [Open].
const (
	BackendFile  = "file"
	BackendRedis = "redis"
	BackendMongo = "mongo"
	BackendNone  = "none"
)

// Backends lists every supported backend name.
var Backends = []string{BackendFile, BackendRedis, BackendMongo, BackendNone}

// Config selects and configures a backend.
type Config struct {
	Backend string
	Dir     string // file backend root
	Redis   RedisConfig
	Mongo   MongoConfig
}

// Open constructs the backend named by cfg.Backend. An empty name means
// the file backend.
func Open(ctx context.Context, cfg Config) (Cache, error) {
	var (
		c   Cache
		err error
	)
	switch cfg.Backend {
	case BackendFile, "":
		c, err = openFile(cfg.Dir)
	case BackendRedis:
		c, err = openRedis(ctx, cfg.Redis)
	case BackendMongo:
		c, err = openMongo(ctx, cfg.Mongo)
	case BackendNone:
		c = NewNullCache()
	default:
		err = fmt.Errorf("%w: %q", ErrUnknownBackend, cfg.Backend)
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

func openFile(dir string) (Cache, error) {
	c, err := NewFileCache(dir)
	if err != nil {
		return nil, err
	}
	return c, nil
}

func openRedis(ctx context.Context, cfg RedisConfig) (Cache, error) {
	c, err := NewRedisCache(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return c, nil
}

func openMongo(ctx context.Context, cfg MongoConfig) (Cache, error) {
	c, err := NewMongoCache(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return c, nil
}
