// Package store provides persistent history.Log implementations. The memory
// log in internal/history is the default; deployments that need history to
// survive restarts select sqlite or postgres via store.driver.
package store

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rotisserie/eris"

	"github.com/sells-group/visionflow/internal/history"
)

// Pool abstracts pgxpool.Pool so tests can substitute pgxmock.
type Pool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Ping(ctx context.Context) error
	Close()
}

// Config selects and configures the history backend.
type Config struct {
	Driver   string `yaml:"driver" mapstructure:"driver"` // memory | sqlite | postgres
	SQLite   string `yaml:"sqlite" mapstructure:"sqlite"` // file path / DSN
	Postgres string `yaml:"postgres" mapstructure:"postgres"`
}

// Open builds the configured history log. The returned closer is a no-op for
// the memory driver.
func Open(ctx context.Context, cfg Config) (history.Log, func() error, error) {
	switch cfg.Driver {
	case "", "memory":
		return history.NewMemoryLog(), func() error { return nil }, nil
	case "sqlite":
		log, err := NewSQLiteLog(cfg.SQLite)
		if err != nil {
			return nil, nil, err
		}
		if err := log.Migrate(ctx); err != nil {
			log.Close()
			return nil, nil, err
		}
		return log, log.Close, nil
	case "postgres":
		log, err := NewPostgresLog(ctx, cfg.Postgres)
		if err != nil {
			return nil, nil, err
		}
		if err := log.Migrate(ctx); err != nil {
			log.Close()
			return nil, nil, err
		}
		return log, log.Close, nil
	default:
		return nil, nil, eris.Errorf("store: unknown driver %q", cfg.Driver)
	}
}
