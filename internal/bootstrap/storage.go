package bootstrap

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/Domenick1991/travelpro/config"
	"github.com/Domenick1991/travelpro/internal/cache"
	"github.com/Domenick1991/travelpro/internal/repository"
	"github.com/Domenick1991/travelpro/internal/service/drafts"
	"github.com/Domenick1991/travelpro/internal/textgen"
	"github.com/jackc/pgx/v5/pgxpool"
)

// OpenStorage returns the key-value repository chosen by cfg.Storage.Driver
// and a function releasing it.
func OpenStorage(ctx context.Context, cfg *config.Config) (repository.KVRepository, func(), error) {
	switch cfg.Storage.Driver {
	case config.DriverSQLite:
		kv, err := repository.OpenSQLiteKV(cfg.Storage.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		return kv, func() { kv.Close() }, nil
	case config.DriverPostgres:
		pool, err := pgxpool.New(ctx, cfg.Database.DSN())
		if err != nil {
			return nil, nil, fmt.Errorf("connect postgres: %w", err)
		}
		kv := repository.NewPGKV(pool)
		if err := kv.Init(ctx); err != nil {
			pool.Close()
			return nil, nil, err
		}
		return kv, pool.Close, nil
	case config.DriverRedis:
		rc := cache.NewRedisCache(cfg.Redis, 0)
		return rc, func() { rc.Close() }, nil
	case config.DriverMemory:
		return repository.NewMemoryKV(), func() {}, nil
	default:
		return nil, nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}
}

// NewDrafter builds the message drafting service. Without an API key every
// draft is the fallback text.
func NewDrafter(ctx context.Context, cfg *config.Config, profiles drafts.ProfileSource) (*drafts.Service, func()) {
	opts := []drafts.ServiceOption{
		drafts.WithProfiles(profiles),
		drafts.WithLocation(cfg.Report.Location()),
		drafts.WithTimeout(time.Duration(cfg.Drafts.TimeoutSeconds) * time.Second),
	}
	cleanup := func() {}

	if cfg.Drafts.CacheTTLMinutes > 0 && cfg.Redis.Addr != "" {
		rc := cache.NewRedisCache(cfg.Redis, time.Duration(cfg.Drafts.CacheTTLMinutes)*time.Minute)
		opts = append(opts, drafts.WithCache(rc))
		cleanup = func() { rc.Close() }
	}

	gen, err := textgen.NewGemini(ctx, cfg.Drafts.APIKey(), cfg.Drafts.Model)
	if err != nil {
		log.Printf("WARNING: message drafting disabled: %v", err)
		return drafts.NewDraftService(nil, opts...), cleanup
	}
	return drafts.NewDraftService(gen, opts...), cleanup
}
