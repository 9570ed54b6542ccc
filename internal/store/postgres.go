package store

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rotisserie/eris"

	"github.com/sells-group/visionflow/internal/history"
)

// PostgresLog implements history.Log using pgxpool.
type PostgresLog struct {
	pool    Pool
	closeFn func()
}

// NewPostgresLog creates a PostgresLog with a connection pool.
func NewPostgresLog(ctx context.Context, connString string) (*PostgresLog, error) {
	pgxCfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: parse config")
	}
	pgxCfg.MaxConns = 10
	pgxCfg.MinConns = 2
	pgxCfg.MaxConnLifetime = 30 * time.Minute
	pgxCfg.MaxConnIdleTime = 5 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, pgxCfg)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: create pool")
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, eris.Wrap(err, "postgres: ping")
	}
	return &PostgresLog{pool: pool, closeFn: pool.Close}, nil
}

// NewPostgresLogWithPool wraps an existing pool; used by tests with pgxmock.
func NewPostgresLogWithPool(pool Pool) *PostgresLog {
	return &PostgresLog{pool: pool, closeFn: pool.Close}
}

const postgresMigration = `
CREATE TABLE IF NOT EXISTS shipment_events (
	id          TEXT PRIMARY KEY,
	shipment_id TEXT NOT NULL,
	kind        TEXT NOT NULL,
	detail      JSONB,
	created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_shipment_events_shipment ON shipment_events(shipment_id, created_at);
`

func (l *PostgresLog) Migrate(ctx context.Context) error {
	_, err := l.pool.Exec(ctx, postgresMigration)
	return eris.Wrap(err, "postgres: migrate")
}

func (l *PostgresLog) Close() error {
	l.closeFn()
	return nil
}

// Append inserts an event row.
func (l *PostgresLog) Append(ctx context.Context, event history.Event) error {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}
	detail, err := json.Marshal(event.Detail)
	if err != nil {
		return eris.Wrap(err, "postgres: marshal event detail")
	}
	_, err = l.pool.Exec(ctx,
		`INSERT INTO shipment_events (id, shipment_id, kind, detail, created_at) VALUES ($1, $2, $3, $4, $5)`,
		uuid.NewString(), event.ShipmentID, event.Kind, detail, event.Timestamp)
	return eris.Wrap(err, "postgres: insert event")
}

// Events returns the append-ordered history for a shipment.
func (l *PostgresLog) Events(ctx context.Context, shipmentID string) ([]history.Event, error) {
	rows, err := l.pool.Query(ctx,
		`SELECT shipment_id, kind, detail, created_at FROM shipment_events WHERE shipment_id = $1 ORDER BY created_at, id`,
		shipmentID)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: query events")
	}
	defer rows.Close()

	var events []history.Event
	for rows.Next() {
		var e history.Event
		var detail []byte
		if err := rows.Scan(&e.ShipmentID, &e.Kind, &detail, &e.Timestamp); err != nil {
			return nil, eris.Wrap(err, "postgres: scan event")
		}
		if len(detail) > 0 && string(detail) != "null" {
			if err := json.Unmarshal(detail, &e.Detail); err != nil {
				return nil, eris.Wrap(err, "postgres: unmarshal event detail")
			}
		}
		events = append(events, e)
	}
	return events, eris.Wrap(rows.Err(), "postgres: iterate events")
}
