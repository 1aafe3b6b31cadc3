package persistence

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/rentledger/backend/internal/domain/rental"
	"github.com/rentledger/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// newMockReadingRepository creates a GormReadingRepository with a mocked SQL connection
func newMockReadingRepository(t *testing.T) (*GormReadingRepository, sqlmock.Sqlmock, *sql.DB) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return NewGormReadingRepository(gormDB), mock, mockDB
}

func readingRows(id, tenantID uuid.UUID, month, year int, previous, current string) *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "tenant_id", "month", "year",
		"previous_reading", "current_reading", "rate_per_unit",
		"total_units", "calculated_bill", "is_paid",
	}).AddRow(
		id, tenantID, month, year,
		decimal.RequireFromString(previous), decimal.RequireFromString(current), decimal.RequireFromString("6.50"),
		decimal.Zero, decimal.Zero, false,
	)
}

func TestGormReadingRepository_FindByTenantAndPeriod(t *testing.T) {
	t.Run("finds reading for period", func(t *testing.T) {
		repo, mock, mockDB := newMockReadingRepository(t)
		defer mockDB.Close()

		readingID := uuid.New()
		tenantID := uuid.New()
		period, _ := rental.NewPeriod(10, 2025)

		mock.ExpectQuery(`SELECT \* FROM "electricity_readings" WHERE tenant_id = \$1 AND month = \$2 AND year = \$3 ORDER BY .* LIMIT .*`).
			WithArgs(tenantID, 10, 2025, 1).
			WillReturnRows(readingRows(readingID, tenantID, 10, 2025, "220.00", "350.00"))

		reading, err := repo.FindByTenantAndPeriod(context.Background(), tenantID, period)

		assert.NoError(t, err)
		assert.NotNil(t, reading)
		assert.Equal(t, readingID, reading.ID)
		assert.Equal(t, 10, reading.Month)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns not found for missing period", func(t *testing.T) {
		repo, mock, mockDB := newMockReadingRepository(t)
		defer mockDB.Close()

		tenantID := uuid.New()
		period, _ := rental.NewPeriod(10, 2025)

		mock.ExpectQuery(`SELECT \* FROM "electricity_readings" WHERE tenant_id = \$1 AND month = \$2 AND year = \$3 ORDER BY .* LIMIT .*`).
			WithArgs(tenantID, 10, 2025, 1).
			WillReturnError(gorm.ErrRecordNotFound)

		reading, err := repo.FindByTenantAndPeriod(context.Background(), tenantID, period)

		assert.Nil(t, reading)
		assert.Equal(t, shared.ErrNotFound, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormReadingRepository_FindLatestBefore(t *testing.T) {
	t.Run("orders by year then month descending", func(t *testing.T) {
		repo, mock, mockDB := newMockReadingRepository(t)
		defer mockDB.Close()

		readingID := uuid.New()
		tenantID := uuid.New()
		period, _ := rental.NewPeriod(1, 2026)

		mock.ExpectQuery(`SELECT \* FROM "electricity_readings" WHERE tenant_id = \$1 AND \(\(year < \$2\) OR \(year = \$3 AND month < \$4\)\) ORDER BY year DESC, month DESC,.* LIMIT .*`).
			WithArgs(tenantID, 2026, 2026, 1, 1).
			WillReturnRows(readingRows(readingID, tenantID, 12, 2025, "350.00", "480.00"))

		reading, err := repo.FindLatestBefore(context.Background(), tenantID, period)

		assert.NoError(t, err)
		assert.Equal(t, 12, reading.Month)
		assert.Equal(t, 2025, reading.Year)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns not found when no earlier reading exists", func(t *testing.T) {
		repo, mock, mockDB := newMockReadingRepository(t)
		defer mockDB.Close()

		tenantID := uuid.New()
		period, _ := rental.NewPeriod(1, 2026)

		mock.ExpectQuery(`SELECT \* FROM "electricity_readings"`).
			WillReturnError(gorm.ErrRecordNotFound)

		reading, err := repo.FindLatestBefore(context.Background(), tenantID, period)

		assert.Nil(t, reading)
		assert.Equal(t, shared.ErrNotFound, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormReadingRepository_FindForPeriodByOwner(t *testing.T) {
	t.Run("joins tenants and orders by room number", func(t *testing.T) {
		repo, mock, mockDB := newMockReadingRepository(t)
		defer mockDB.Close()

		readingID := uuid.New()
		ownerID := uuid.New()
		tenantID := uuid.New()
		period, _ := rental.NewPeriod(10, 2025)

		mock.ExpectQuery(`SELECT electricity_readings\.\* FROM "electricity_readings" JOIN tenants ON tenants\.id = electricity_readings\.tenant_id WHERE tenants\.owner_id = \$1 AND \(electricity_readings\.month = \$2 AND electricity_readings\.year = \$3\) ORDER BY tenants\.room_no ASC`).
			WithArgs(ownerID, 10, 2025).
			WillReturnRows(readingRows(readingID, tenantID, 10, 2025, "220.00", "350.00"))

		readings, err := repo.FindForPeriodByOwner(context.Background(), ownerID, period)

		assert.NoError(t, err)
		assert.Len(t, readings, 1)
		assert.Equal(t, tenantID, readings[0].TenantID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns empty slice for period without readings", func(t *testing.T) {
		repo, mock, mockDB := newMockReadingRepository(t)
		defer mockDB.Close()

		ownerID := uuid.New()
		period, _ := rental.NewPeriod(2, 2026)

		mock.ExpectQuery(`SELECT electricity_readings\.\* FROM "electricity_readings" JOIN tenants`).
			WillReturnRows(sqlmock.NewRows([]string{"id", "tenant_id", "month", "year"}))

		readings, err := repo.FindForPeriodByOwner(context.Background(), ownerID, period)

		assert.NoError(t, err)
		assert.Empty(t, readings)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormReadingRepository_TenantIDsWithReading(t *testing.T) {
	t.Run("returns distinct tenant ids", func(t *testing.T) {
		repo, mock, mockDB := newMockReadingRepository(t)
		defer mockDB.Close()

		ownerID := uuid.New()
		tenantA := uuid.New()
		tenantB := uuid.New()
		period, _ := rental.NewPeriod(10, 2025)

		mock.ExpectQuery(`SELECT DISTINCT electricity_readings\.tenant_id FROM "electricity_readings" JOIN tenants`).
			WithArgs(ownerID, 10, 2025).
			WillReturnRows(sqlmock.NewRows([]string{"tenant_id"}).AddRow(tenantA).AddRow(tenantB))

		tenantIDs, err := repo.TenantIDsWithReading(context.Background(), ownerID, period)

		assert.NoError(t, err)
		assert.ElementsMatch(t, []uuid.UUID{tenantA, tenantB}, tenantIDs)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormReadingRepository_Save(t *testing.T) {
	t.Run("saves reading", func(t *testing.T) {
		repo, mock, mockDB := newMockReadingRepository(t)
		defer mockDB.Close()

		tenantID := uuid.New()
		period, _ := rental.NewPeriod(10, 2025)
		reading, err := rental.NewElectricityReading(
			tenantID, period,
			decimal.RequireFromString("220.00"),
			decimal.RequireFromString("350.00"),
			decimal.RequireFromString("6.50"),
		)
		require.NoError(t, err)

		mock.ExpectExec(`UPDATE "electricity_readings" SET`).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err = repo.Save(context.Background(), reading)

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("maps duplicate key to duplicate period error", func(t *testing.T) {
		repo, mock, mockDB := newMockReadingRepository(t)
		defer mockDB.Close()

		tenantID := uuid.New()
		period, _ := rental.NewPeriod(10, 2025)
		reading, err := rental.NewElectricityReading(
			tenantID, period,
			decimal.RequireFromString("220.00"),
			decimal.RequireFromString("350.00"),
			decimal.RequireFromString("6.50"),
		)
		require.NoError(t, err)

		mock.ExpectExec(`UPDATE "electricity_readings" SET`).
			WillReturnError(gorm.ErrDuplicatedKey)

		err = repo.Save(context.Background(), reading)

		var domainErr *shared.DomainError
		assert.ErrorAs(t, err, &domainErr)
		assert.Equal(t, shared.CodeDuplicatePeriod, domainErr.Code)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormReadingRepository_DeleteForOwner(t *testing.T) {
	t.Run("returns not found for reading outside owner scope", func(t *testing.T) {
		repo, mock, mockDB := newMockReadingRepository(t)
		defer mockDB.Close()

		ownerID := uuid.New()
		readingID := uuid.New()

		mock.ExpectExec(`DELETE FROM "electricity_readings"`).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.DeleteForOwner(context.Background(), ownerID, readingID)

		assert.Equal(t, shared.ErrNotFound, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
