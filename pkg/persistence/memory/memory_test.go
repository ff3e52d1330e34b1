package memory

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campuscycles/gearbox/pkg/models"
	"github.com/campuscycles/gearbox/pkg/persistence"
)

func step(id, transactionID string, order int) *models.WorkflowStep {
	now := time.Now().UTC()

	return &models.WorkflowStep{
		ID:            id,
		TransactionID: transactionID,
		WorkflowType:  models.WorkflowTypeBikeSales,
		StepName:      "Step",
		StepOrder:     order,
		CreatedBy:     "mechanic-1",
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

func TestStepRepository_ListOrdering(t *testing.T) {
	p := NewPersistence()
	repo := p.WorkflowSteps()

	require.NoError(t, repo.Create(t.Context(), step("c", "tx-1", 3)))
	require.NoError(t, repo.Create(t.Context(), step("a", "tx-1", 1)))
	require.NoError(t, repo.Create(t.Context(), step("b", "tx-1", 2)))

	steps, err := repo.ListByTransactionAndType(t.Context(), "tx-1", models.WorkflowTypeBikeSales)
	require.NoError(t, err)
	require.Len(t, steps, 3)
	assert.Equal(t, []string{"a", "b", "c"}, []string{steps[0].ID, steps[1].ID, steps[2].ID})
}

func TestStepRepository_CreateBatch_AllOrNothing(t *testing.T) {
	p := NewPersistence()
	repo := p.WorkflowSteps()

	require.NoError(t, repo.Create(t.Context(), step("existing", "tx-1", 2)))

	// Second entry collides with the existing step; nothing must land.
	err := repo.CreateBatch(t.Context(), []*models.WorkflowStep{
		step("new-1", "tx-1", 1),
		step("new-2", "tx-1", 2),
	})
	require.Error(t, err)
	assert.True(t, persistence.IsStepOrderConflict(err))

	steps, err := repo.ListByTransactionAndType(t.Context(), "tx-1", models.WorkflowTypeBikeSales)
	require.NoError(t, err)
	require.Len(t, steps, 1)
	assert.Equal(t, "existing", steps[0].ID)
}

func TestStepRepository_CreateBatch_IntraBatchConflict(t *testing.T) {
	p := NewPersistence()
	repo := p.WorkflowSteps()

	err := repo.CreateBatch(t.Context(), []*models.WorkflowStep{
		step("new-1", "tx-1", 1),
		step("new-2", "tx-1", 1),
	})
	require.Error(t, err)
	assert.True(t, persistence.IsStepOrderConflict(err))
}

func TestStepRepository_GetByID_Absent(t *testing.T) {
	p := NewPersistence()

	got, err := p.WorkflowSteps().GetByID(t.Context(), "missing")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestStepRepository_ReturnsCopies(t *testing.T) {
	p := NewPersistence()
	repo := p.WorkflowSteps()

	require.NoError(t, repo.Create(t.Context(), step("a", "tx-1", 1)))

	first, err := repo.GetByID(t.Context(), "a")
	require.NoError(t, err)
	first.StepName = "mutated"

	second, err := repo.GetByID(t.Context(), "a")
	require.NoError(t, err)
	assert.Equal(t, "Step", second.StepName)
}

func TestStepRepository_ResetAll_ScopedToPair(t *testing.T) {
	p := NewPersistence()
	repo := p.WorkflowSteps()

	completed := step("a", "tx-1", 1)
	completedBy := "mechanic-1"
	now := time.Now().UTC()
	completed.IsCompleted = true
	completed.CompletedBy = &completedBy
	completed.CompletedAt = &now
	require.NoError(t, repo.Create(t.Context(), completed))

	other := step("b", "tx-2", 1)
	other.IsCompleted = true
	other.CompletedAt = &now
	require.NoError(t, repo.Create(t.Context(), other))

	reset, err := repo.ResetAll(t.Context(), "tx-1", models.WorkflowTypeBikeSales)
	require.NoError(t, err)
	require.Len(t, reset, 1)
	assert.False(t, reset[0].IsCompleted)

	untouched, err := repo.GetByID(t.Context(), "b")
	require.NoError(t, err)
	assert.True(t, untouched.IsCompleted)
}

func TestTransactionRepository_SaveAssignsNumbers(t *testing.T) {
	p := NewPersistence()
	repo := p.Transactions()

	first := &models.Transaction{ID: "tx-1", CustomerID: "customer-1", TransactionType: models.TransactionTypeRetail}
	second := &models.Transaction{ID: "tx-2", CustomerID: "customer-1", TransactionType: models.TransactionTypeRetail}

	require.NoError(t, repo.Save(t.Context(), first))
	require.NoError(t, repo.Save(t.Context(), second))
	assert.Equal(t, first.TransactionNum+1, second.TransactionNum)

	// Re-saving keeps the assigned ledger number.
	first.Description = "updated"
	require.NoError(t, repo.Save(t.Context(), first))
	assert.Equal(t, int64(1), first.TransactionNum)
}

func TestItemRepository_GetByUPC(t *testing.T) {
	p := NewPersistence()
	repo := p.Items()

	require.NoError(t, repo.Save(t.Context(), &models.Item{
		ID:   "item-1",
		UPC:  "036000291452",
		Name: "Inner tube 700x25c",
	}))

	item, err := repo.GetByUPC(t.Context(), "036000291452")
	require.NoError(t, err)
	require.NotNil(t, item)
	assert.Equal(t, "item-1", item.ID)

	missing, err := repo.GetByUPC(t.Context(), "000000000000")
	require.NoError(t, err)
	assert.Nil(t, missing)
}
