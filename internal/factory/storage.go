package factory

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/voyagetravel/voyage-backend/internal/config"
	"github.com/voyagetravel/voyage-backend/internal/localstate"
	storepkg "github.com/voyagetravel/voyage-backend/internal/store"
	storepg "github.com/voyagetravel/voyage-backend/internal/store/postgres"
	storelite "github.com/voyagetravel/voyage-backend/internal/store/sqlite"
)

// NewStore returns the configured store.Store implementation.
// Postgres bootstraps asynchronously for fast startup; sqlite applies its
// schema inline since the database is a local file. An unset sqlite path
// resolves to the per-user data directory.
func NewStore(ctx context.Context, cfg *config.Config, log zerolog.Logger) (storepkg.Store, error) {
	switch cfg.DBDriver {
	case "postgres":
		dsn := cfg.PostgresDSN
		if dsn == "" {
			return nil, fmt.Errorf("VOYAGE_POSTGRES_DSN is required when DB_DRIVER=postgres")
		}

		// Open connection synchronously since health checks need it immediately
		db, err := storepg.Open(dsn)
		if err != nil {
			return nil, err
		}

		// Async bootstrap check with configurable timeout; don't block startup
		go func() {
			bootstrapTimeout := time.Duration(cfg.BootstrapTimeoutSeconds) * time.Second
			bootstrapCtx, cancel := context.WithTimeout(ctx, bootstrapTimeout)
			defer cancel()

			if err := storepg.Bootstrap(bootstrapCtx, dsn); err != nil {
				log.Warn().Err(err).Str("driver", cfg.DBDriver).Msg("store bootstrap check failed")
			} else {
				log.Debug().Str("driver", cfg.DBDriver).Msg("store bootstrap check completed")
			}
		}()

		return storepg.NewWithDB(db), nil

	case "sqlite":
		path := cfg.SQLitePath
		if path == "" {
			p, err := localstate.DBPath()
			if err != nil {
				return nil, err
			}
			path = p
		}

		db, err := storelite.Open(path)
		if err != nil {
			return nil, err
		}
		if err := storelite.EnsureSchema(ctx, db); err != nil {
			return nil, err
		}
		log.Debug().Str("driver", cfg.DBDriver).Str("path", path).Msg("sqlite store ready")
		return storelite.NewWithDB(db), nil

	default:
		return nil, fmt.Errorf("unknown DB_DRIVER: %s", cfg.DBDriver)
	}
}
