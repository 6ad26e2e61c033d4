package app

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/roster-availability-api/internal/service"
)

func TestNewServicesWiresReporterToDatabase(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	svcs := NewServices(sqlx.NewDb(db, "postgres"), nil, service.NewMetricsService())
	require.NotNil(t, svcs.Availability)
	require.NotNil(t, svcs.Exports)

	mock.ExpectQuery("FROM traders").
		WithArgs("NYC").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "alias", "location", "is_active"}))

	rows, err := svcs.Reports.Report(context.Background(), time.Date(2024, 6, 5, 0, 0, 0, 0, time.UTC), "NYC")
	require.NoError(t, err)
	assert.Empty(t, rows)
	assert.NoError(t, mock.ExpectationsWereMet())
}
