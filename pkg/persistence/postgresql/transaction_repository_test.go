package postgresql

import (
	"database/sql/driver"
	"log/slog"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campuscycles/gearbox/pkg/models"
	"github.com/campuscycles/gearbox/pkg/persistence"
)

var transactionTestColumns = []string{
	"id", "transaction_num", "customer_id", "bike_id", "transaction_type",
	"description", "total_cost", "is_completed", "is_paid", "is_refurb",
	"is_urgent", "is_beer_bike", "is_employee", "created_at", "updated_at",
	"date_completed",
}

func newTransactionRepository(t *testing.T) (*TransactionRepository, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	return NewTransactionRepository(db, slog.Default()), mock
}

func transactionRow(id string, num int64) []driver.Value {
	now := time.Now().UTC()

	return []driver.Value{
		id, num, "customer-1", nil, "repair",
		"Brake adjustment", 35.0, false, false, false,
		false, false, false, now, now,
		nil,
	}
}

func TestTransactionRepository_GetByID(t *testing.T) {
	repo, mock := newTransactionRepository(t)

	rows := sqlmock.NewRows(transactionTestColumns).AddRow(transactionRow("tx-1", 7)...)
	mock.ExpectQuery(`SELECT (.+) FROM transactions WHERE id = \$1`).
		WithArgs("tx-1").
		WillReturnRows(rows)

	transaction, err := repo.GetByID(t.Context(), "tx-1")
	require.NoError(t, err)
	require.NotNil(t, transaction)
	assert.Equal(t, int64(7), transaction.TransactionNum)
	assert.Equal(t, models.TransactionTypeRepair, transaction.TransactionType)
	assert.Nil(t, transaction.BikeID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTransactionRepository_GetByID_Absent(t *testing.T) {
	repo, mock := newTransactionRepository(t)

	mock.ExpectQuery(`SELECT (.+) FROM transactions WHERE id = \$1`).
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows(transactionTestColumns))

	transaction, err := repo.GetByID(t.Context(), "missing")
	require.NoError(t, err)
	assert.Nil(t, transaction)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTransactionRepository_Save_ReportsLedgerNumber(t *testing.T) {
	repo, mock := newTransactionRepository(t)

	mock.ExpectQuery(`INSERT INTO transactions`).
		WillReturnRows(sqlmock.NewRows([]string{"transaction_num"}).AddRow(42))

	transaction := &models.Transaction{
		ID:              "tx-1",
		CustomerID:      "customer-1",
		TransactionType: models.TransactionTypeRetail,
		CreatedAt:       time.Now().UTC(),
		UpdatedAt:       time.Now().UTC(),
	}

	require.NoError(t, repo.Save(t.Context(), transaction))
	assert.Equal(t, int64(42), transaction.TransactionNum)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTransactionRepository_Delete_NotFound(t *testing.T) {
	repo, mock := newTransactionRepository(t)

	mock.ExpectExec(`DELETE FROM transactions WHERE id = \$1`).
		WithArgs("missing").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Delete(t.Context(), "missing")
	require.ErrorIs(t, err, persistence.ErrTransactionNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTransactionRepository_Summary(t *testing.T) {
	repo, mock := newTransactionRepository(t)

	rows := sqlmock.NewRows([]string{
		"quantity_incomplete", "quantity_beer_bike_incomplete", "quantity_waiting_on_pickup",
	}).AddRow(3, 1, 2)

	mock.ExpectQuery(`SELECT\s+COUNT\(\*\) FILTER`).WillReturnRows(rows)

	summary, err := repo.Summary(t.Context(), persistence.SummaryFilter{
		ExcludedTypes: []models.TransactionType{models.TransactionTypeRefurb},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(3), summary.QuantityIncomplete)
	assert.Equal(t, int64(1), summary.QuantityBeerBikeIncomplete)
	assert.Equal(t, int64(2), summary.QuantityWaitingOnPickup)
	assert.Equal(t, int64(0), summary.QuantityWaitingOnSafetyCheck)
	require.NoError(t, mock.ExpectationsWereMet())
}
