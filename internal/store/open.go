package store

import (
	"context"
	"fmt"
	"strings"
)

type BackendKind string

const (
	BackendFile   BackendKind = "file"
	BackendSQLite BackendKind = "sqlite"
	BackendRedis  BackendKind = "redis"
	BackendMemory BackendKind = "memory"
)

func ParseBackendKind(s string) (BackendKind, error) {
	switch BackendKind(strings.ToLower(strings.TrimSpace(s))) {
	case "", BackendFile:
		return BackendFile, nil
	case BackendSQLite:
		return BackendSQLite, nil
	case BackendRedis:
		return BackendRedis, nil
	case BackendMemory:
		return BackendMemory, nil
	default:
		return "", fmt.Errorf("unknown backend %q (expected file|sqlite|redis|memory)", s)
	}
}

type OpenOptions struct {
	Kind    BackendKind
	DataDir string
	Redis   RedisOptions
}

// OpenBackend constructs the configured backend.
func OpenBackend(ctx context.Context, opt OpenOptions) (Backend, error) {
	switch opt.Kind {
	case "", BackendFile:
		return NewFileBackend(opt.DataDir)
	case BackendSQLite:
		return OpenSQLite(ctx, SQLitePath(opt.DataDir))
	case BackendRedis:
		return OpenRedis(ctx, opt.Redis)
	case BackendMemory:
		return NewMemoryBackend(), nil
	default:
		return nil, fmt.Errorf("unknown backend %q", opt.Kind)
	}
}
