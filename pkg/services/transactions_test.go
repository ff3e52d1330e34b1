package services

import (
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campuscycles/gearbox/pkg/models"
	"github.com/campuscycles/gearbox/pkg/persistence/memory"
)

func newTransactionFixture(t *testing.T) (*Transactions, *memory.Persistence, *models.Customer) {
	t.Helper()

	p := memory.NewPersistence()
	service := NewTransactions(p, nil, DefaultSummaryConfig(), slog.Default())

	customer := &models.Customer{
		ID:        uuid.New().String(),
		FirstName: "Sam",
		LastName:  "Rider",
		Email:     "sam@example.edu",
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}
	require.NoError(t, p.Customers().Save(t.Context(), customer))

	return service, p, customer
}

func TestTransactions_Create(t *testing.T) {
	service, _, customer := newTransactionFixture(t)

	transaction, err := service.Create(t.Context(), &models.Transaction{
		CustomerID:      customer.ID,
		TransactionType: models.TransactionTypeRepair,
		Description:     "Brake adjustment",
		TotalCost:       35,
	})
	require.NoError(t, err)

	assert.NotEmpty(t, transaction.ID)
	assert.Positive(t, transaction.TransactionNum)
	assert.False(t, transaction.IsCompleted)
	assert.Nil(t, transaction.DateCompleted)
	assert.False(t, transaction.CreatedAt.IsZero())
}

func TestTransactions_Create_AssignsSequentialNumbers(t *testing.T) {
	service, _, customer := newTransactionFixture(t)

	first, err := service.Create(t.Context(), &models.Transaction{
		CustomerID:      customer.ID,
		TransactionType: models.TransactionTypeRetail,
	})
	require.NoError(t, err)

	second, err := service.Create(t.Context(), &models.Transaction{
		CustomerID:      customer.ID,
		TransactionType: models.TransactionTypeRetail,
	})
	require.NoError(t, err)

	assert.Equal(t, first.TransactionNum+1, second.TransactionNum)
}

func TestTransactions_Create_CustomerNotFound(t *testing.T) {
	service, _, _ := newTransactionFixture(t)

	_, err := service.Create(t.Context(), &models.Transaction{
		CustomerID:      uuid.New().String(),
		TransactionType: models.TransactionTypeRetail,
	})
	require.ErrorIs(t, err, ErrCustomerNotFound)
}

func TestTransactions_Create_InvalidType(t *testing.T) {
	service, _, customer := newTransactionFixture(t)

	_, err := service.Create(t.Context(), &models.Transaction{
		CustomerID:      customer.ID,
		TransactionType: models.TransactionType("wholesale"),
	})
	require.ErrorIs(t, err, ErrInvalidTransactionType)
}

func TestTransactions_Update_CompleteTransition(t *testing.T) {
	service, _, customer := newTransactionFixture(t)

	transaction, err := service.Create(t.Context(), &models.Transaction{
		CustomerID:      customer.ID,
		TransactionType: models.TransactionTypeRepair,
	})
	require.NoError(t, err)

	done := true
	updated, err := service.Update(t.Context(), transaction.ID, UpdateTransactionParams{IsCompleted: &done})
	require.NoError(t, err)
	assert.True(t, updated.IsCompleted)
	require.NotNil(t, updated.DateCompleted)

	undone := false
	reverted, err := service.Update(t.Context(), transaction.ID, UpdateTransactionParams{IsCompleted: &undone})
	require.NoError(t, err)
	assert.False(t, reverted.IsCompleted)
	assert.Nil(t, reverted.DateCompleted)
}

func TestTransactions_Delete_CascadesSteps(t *testing.T) {
	service, p, customer := newTransactionFixture(t)
	stepService := NewWorkflowSteps(p, nil, slog.Default())

	transaction, err := service.Create(t.Context(), &models.Transaction{
		CustomerID:      customer.ID,
		TransactionType: models.TransactionTypeRetail,
	})
	require.NoError(t, err)

	_, err = stepService.Initialize(t.Context(), transaction.ID, models.WorkflowTypeBikeSales, "mechanic-1")
	require.NoError(t, err)

	require.NoError(t, service.Delete(t.Context(), transaction.ID))

	steps, err := p.WorkflowSteps().ListByTransactionAndType(t.Context(), transaction.ID, models.WorkflowTypeBikeSales)
	require.NoError(t, err)
	assert.Empty(t, steps)
}

func TestTransactions_Delete_NotFound(t *testing.T) {
	service, _, _ := newTransactionFixture(t)

	err := service.Delete(t.Context(), uuid.New().String())
	require.ErrorIs(t, err, ErrTransactionNotFound)
}

func TestTransactions_Summary(t *testing.T) {
	service, _, customer := newTransactionFixture(t)

	seed := func(transactionType models.TransactionType, completed, paid bool) {
		t.Helper()

		transaction, err := service.Create(t.Context(), &models.Transaction{
			CustomerID:      customer.ID,
			TransactionType: transactionType,
		})
		require.NoError(t, err)

		if completed || paid {
			_, err = service.Update(t.Context(), transaction.ID, UpdateTransactionParams{
				IsCompleted: &completed,
				IsPaid:      &paid,
			})
			require.NoError(t, err)
		}
	}

	seed(models.TransactionTypeRepair, false, false)   // incomplete
	seed(models.TransactionTypeRetail, false, false)   // incomplete
	seed(models.TransactionTypeRefurb, false, false)   // excluded from incomplete
	seed(models.TransactionTypeEmployee, false, false) // excluded from incomplete
	seed(models.TransactionTypeBeerBike, false, false) // beer bike incomplete
	seed(models.TransactionTypeRepair, true, false)    // waiting on pickup
	seed(models.TransactionTypeRepair, true, true)     // done and paid, counts nowhere

	summary, err := service.Summary(t.Context())
	require.NoError(t, err)

	assert.Equal(t, int64(2), summary.QuantityIncomplete)
	assert.Equal(t, int64(1), summary.QuantityBeerBikeIncomplete)
	assert.Equal(t, int64(1), summary.QuantityWaitingOnPickup)
	assert.Equal(t, int64(0), summary.QuantityWaitingOnSafetyCheck)
}

func TestTransactions_Summary_Empty(t *testing.T) {
	service, _, _ := newTransactionFixture(t)

	summary, err := service.Summary(t.Context())
	require.NoError(t, err)

	assert.Equal(t, int64(0), summary.QuantityIncomplete)
	assert.Equal(t, int64(0), summary.QuantityBeerBikeIncomplete)
	assert.Equal(t, int64(0), summary.QuantityWaitingOnPickup)
	assert.Equal(t, int64(0), summary.QuantityWaitingOnSafetyCheck)
}
