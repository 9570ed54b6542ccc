package store

import (
	"context"
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/visionflow/internal/history"
)

func newMockLog(t *testing.T) (*PostgresLog, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return NewPostgresLogWithPool(mock), mock
}

func TestPostgresAppend(t *testing.T) {
	log, mock := newMockLog(t)

	mock.ExpectExec("INSERT INTO shipment_events").
		WithArgs(pgxmock.AnyArg(), "SHIP-1", "inspection_completed", pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err := log.Append(context.Background(), history.Event{
		ShipmentID: "SHIP-1",
		Kind:       "inspection_completed",
		Detail:     map[string]any{"can_ship": true},
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresEvents(t *testing.T) {
	log, mock := newMockLog(t)

	now := time.Now().UTC()
	rows := pgxmock.NewRows([]string{"shipment_id", "kind", "detail", "created_at"}).
		AddRow("SHIP-1", "inspection_requested", []byte(`{"priority":"high"}`), now).
		AddRow("SHIP-1", "inspection_completed", []byte(nil), now.Add(time.Second))

	mock.ExpectQuery("SELECT shipment_id, kind, detail, created_at FROM shipment_events").
		WithArgs("SHIP-1").
		WillReturnRows(rows)

	events, err := log.Events(context.Background(), "SHIP-1")
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, "high", events[0].Detail["priority"])
	assert.Nil(t, events[1].Detail)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresMigrate(t *testing.T) {
	log, mock := newMockLog(t)

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS shipment_events").
		WillReturnResult(pgxmock.NewResult("CREATE", 0))

	require.NoError(t, log.Migrate(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}
