package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"

	"github.com/sells-group/visionflow/internal/history"
)

// SQLiteLog implements history.Log using modernc.org/sqlite. SQLite
// serializes writers, which satisfies the per-shipment append ordering
// requirement without extra locking.
type SQLiteLog struct {
	db *sql.DB
}

// NewSQLiteLog opens a SQLite database at the given path and configures WAL mode.
func NewSQLiteLog(dsn string) (*SQLiteLog, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: open")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, eris.Wrapf(err, "sqlite: exec %s", pragma)
		}
	}
	return &SQLiteLog{db: db}, nil
}

const sqliteMigration = `
CREATE TABLE IF NOT EXISTS shipment_events (
	id          TEXT PRIMARY KEY,
	shipment_id TEXT NOT NULL,
	kind        TEXT NOT NULL,
	detail      TEXT,
	created_at  DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE INDEX IF NOT EXISTS idx_shipment_events_shipment ON shipment_events(shipment_id, created_at);
`

func (l *SQLiteLog) Migrate(ctx context.Context) error {
	_, err := l.db.ExecContext(ctx, sqliteMigration)
	return eris.Wrap(err, "sqlite: migrate")
}

func (l *SQLiteLog) Close() error {
	return l.db.Close()
}

// Append inserts an event row.
func (l *SQLiteLog) Append(ctx context.Context, event history.Event) error {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}
	detail, err := json.Marshal(event.Detail)
	if err != nil {
		return eris.Wrap(err, "sqlite: marshal event detail")
	}
	_, err = l.db.ExecContext(ctx,
		`INSERT INTO shipment_events (id, shipment_id, kind, detail, created_at) VALUES (?, ?, ?, ?, ?)`,
		uuid.NewString(), event.ShipmentID, event.Kind, string(detail), event.Timestamp)
	return eris.Wrap(err, "sqlite: insert event")
}

// Events returns the append-ordered history for a shipment.
func (l *SQLiteLog) Events(ctx context.Context, shipmentID string) ([]history.Event, error) {
	rows, err := l.db.QueryContext(ctx,
		`SELECT shipment_id, kind, detail, created_at FROM shipment_events WHERE shipment_id = ? ORDER BY created_at, rowid`,
		shipmentID)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: query events")
	}
	defer rows.Close()

	var events []history.Event
	for rows.Next() {
		var e history.Event
		var detail sql.NullString
		if err := rows.Scan(&e.ShipmentID, &e.Kind, &detail, &e.Timestamp); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan event")
		}
		if detail.Valid && detail.String != "" && detail.String != "null" {
			if err := json.Unmarshal([]byte(detail.String), &e.Detail); err != nil {
				return nil, eris.Wrap(err, "sqlite: unmarshal event detail")
			}
		}
		events = append(events, e)
	}
	return events, eris.Wrap(rows.Err(), "sqlite: iterate events")
}
