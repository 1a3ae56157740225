package store

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/startup-research/internal/config"
)

func configStore(driver, url string) config.StoreConfig {
	return config.StoreConfig{Driver: driver, DatabaseURL: url}
}

// newMockPostgresStore creates a PostgresStore backed by pgxmock.
func newMockPostgresStore(t *testing.T) (*PostgresStore, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return &PostgresStore{pool: mock}, mock
}

func TestPostgres_Put(t *testing.T) {
	t.Parallel()
	s, mock := newMockPostgresStore(t)

	mock.ExpectExec(`INSERT INTO entities`).
		WithArgs("acme-robotics", "Acme Robotics", pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	rec := testRecord("Acme Robotics")
	require.NoError(t, s.Put(context.Background(), rec))
	assert.False(t, rec.LastUpdated.IsZero())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgres_Get(t *testing.T) {
	t.Parallel()
	s, mock := newMockPostgresStore(t)

	rec := testRecord("Acme Robotics")
	data, err := json.Marshal(rec)
	require.NoError(t, err)

	mock.ExpectQuery(`SELECT data FROM entities WHERE`).
		WithArgs("acme-robotics").
		WillReturnRows(pgxmock.NewRows([]string{"data"}).AddRow(data))

	got, err := s.Get(context.Background(), "acme-robotics")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Acme Robotics", got.Name)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgres_GetAbsent(t *testing.T) {
	t.Parallel()
	s, mock := newMockPostgresStore(t)

	mock.ExpectQuery(`SELECT data FROM entities WHERE`).
		WithArgs("nope").
		WillReturnRows(pgxmock.NewRows([]string{"data"}))

	got, err := s.Get(context.Background(), "nope")
	require.NoError(t, err)
	assert.Nil(t, got)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgres_ListAllAndSearch(t *testing.T) {
	t.Parallel()
	s, mock := newMockPostgresStore(t)

	acme := testRecord("Acme Robotics")
	acme.Industries = []string{"Robotics"}
	pay := testRecord("QuickPay")

	acmeData, err := json.Marshal(acme)
	require.NoError(t, err)
	payData, err := json.Marshal(pay)
	require.NoError(t, err)

	mock.ExpectQuery(`SELECT data FROM entities ORDER BY last_updated`).
		WillReturnRows(pgxmock.NewRows([]string{"data"}).AddRow(acmeData).AddRow(payData))

	got, err := s.Search(context.Background(), "robotics")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "acme-robotics", got[0].ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgres_Migrate(t *testing.T) {
	t.Parallel()
	s, mock := newMockPostgresStore(t)

	mock.ExpectExec(`CREATE TABLE IF NOT EXISTS entities`).
		WillReturnResult(pgxmock.NewResult("CREATE", 0))

	require.NoError(t, s.Migrate(context.Background()))
	require.NoError(t, mock.ExpectationsWereMet())
}
