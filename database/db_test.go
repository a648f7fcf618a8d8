package database

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tallyhq/tally/config"
)

func newTestDatasource(t *testing.T) (Datasource, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err, "opening a stub database connection")
	t.Cleanup(func() { _ = db.Close() })
	return Datasource{Conn: db}, mock
}

func TestGetDBConnectionReportsFailureOnEveryCall(t *testing.T) {
	cnf := &config.Configuration{
		DataSource: config.DataSourceConfig{Dns: "not-a-valid-dsn"},
	}

	ds, err := GetDBConnection(cnf)
	require.Error(t, err)
	assert.Nil(t, ds)

	// The first failure spends the once; a retry must still surface an
	// error rather than a nil datasource.
	ds, err = GetDBConnection(cnf)
	require.Error(t, err)
	assert.Nil(t, ds)
}
