package services

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campuscycles/gearbox/pkg/channels/gochannel"
	"github.com/campuscycles/gearbox/pkg/eventbus"
	"github.com/campuscycles/gearbox/pkg/events"
	"github.com/campuscycles/gearbox/pkg/models"
	"github.com/campuscycles/gearbox/pkg/persistence/memory"
)

func newStepFixture(t *testing.T) (*WorkflowSteps, *memory.Persistence, string) {
	t.Helper()

	p := memory.NewPersistence()
	service := NewWorkflowSteps(p, nil, slog.Default())

	transaction := &models.Transaction{
		ID:              uuid.New().String(),
		CustomerID:      uuid.New().String(),
		TransactionType: models.TransactionTypeRetail,
		CreatedAt:       time.Now().UTC(),
		UpdatedAt:       time.Now().UTC(),
	}
	require.NoError(t, p.Transactions().Save(t.Context(), transaction))

	return service, p, transaction.ID
}

func TestWorkflowSteps_Initialize(t *testing.T) {
	service, _, transactionID := newStepFixture(t)

	steps, err := service.Initialize(t.Context(), transactionID, models.WorkflowTypeBikeSales, "mechanic-1")
	require.NoError(t, err)
	require.Len(t, steps, 4)

	names := []string{steps[0].StepName, steps[1].StepName, steps[2].StepName, steps[3].StepName}
	assert.Equal(t, []string{"BikeSpec", "Build", "Creation", "Checkout"}, names)

	for i, step := range steps {
		assert.Equal(t, i+1, step.StepOrder)
		assert.False(t, step.IsCompleted)
		assert.Equal(t, "mechanic-1", step.CreatedBy)
		assert.Equal(t, transactionID, step.TransactionID)
		assert.NotEmpty(t, step.ID)
	}
}

func TestWorkflowSteps_Initialize_TransactionNotFound(t *testing.T) {
	service, _, _ := newStepFixture(t)

	_, err := service.Initialize(t.Context(), uuid.New().String(), models.WorkflowTypeBikeSales, "mechanic-1")
	require.ErrorIs(t, err, ErrTransactionNotFound)
}

func TestWorkflowSteps_Initialize_CreatedByRequired(t *testing.T) {
	service, _, transactionID := newStepFixture(t)

	_, err := service.Initialize(t.Context(), transactionID, models.WorkflowTypeBikeSales, "  ")
	require.ErrorIs(t, err, ErrCreatedByRequired)
}

func TestWorkflowSteps_Initialize_UnsupportedType(t *testing.T) {
	service, _, transactionID := newStepFixture(t)

	_, err := service.Initialize(t.Context(), transactionID, models.WorkflowTypeCustomWorkflow, "mechanic-1")
	require.ErrorIs(t, err, ErrUnsupportedWorkflowType)
	assert.True(t, IsValidationError(err))
}

func TestWorkflowSteps_Initialize_Twice(t *testing.T) {
	service, _, transactionID := newStepFixture(t)

	_, err := service.Initialize(t.Context(), transactionID, models.WorkflowTypeBikeSales, "mechanic-1")
	require.NoError(t, err)

	_, err = service.Initialize(t.Context(), transactionID, models.WorkflowTypeBikeSales, "mechanic-2")
	require.ErrorIs(t, err, ErrWorkflowAlreadyInitialized)
	assert.True(t, IsConflictError(err))

	// The repair workflow of the same transaction is independent.
	repairSteps, err := service.Initialize(t.Context(), transactionID, models.WorkflowTypeRepairProcess, "mechanic-2")
	require.NoError(t, err)
	assert.Len(t, repairSteps, 4)
}

func TestWorkflowSteps_Complete(t *testing.T) {
	service, _, transactionID := newStepFixture(t)

	steps, err := service.Initialize(t.Context(), transactionID, models.WorkflowTypeBikeSales, "mechanic-1")
	require.NoError(t, err)

	completedBy := "mechanic-2"
	step, err := service.Complete(t.Context(), steps[0].ID, &completedBy)
	require.NoError(t, err)

	assert.True(t, step.IsCompleted)
	require.NotNil(t, step.CompletedAt)
	require.NotNil(t, step.CompletedBy)
	assert.Equal(t, "mechanic-2", *step.CompletedBy)

	progress, err := service.Progress(t.Context(), transactionID, models.WorkflowTypeBikeSales)
	require.NoError(t, err)
	assert.Equal(t, 25, progress.ProgressPercentage)
	require.NotNil(t, progress.CurrentStep)
	assert.Equal(t, "Build", progress.CurrentStep.StepName)
}

func TestWorkflowSteps_Complete_AlreadyCompleted(t *testing.T) {
	service, _, transactionID := newStepFixture(t)

	steps, err := service.Initialize(t.Context(), transactionID, models.WorkflowTypeBikeSales, "mechanic-1")
	require.NoError(t, err)

	first, err := service.Complete(t.Context(), steps[0].ID, nil)
	require.NoError(t, err)
	require.NotNil(t, first.CompletedAt)

	// Completing again keeps the original completion timestamp.
	second, err := service.Complete(t.Context(), steps[0].ID, nil)
	require.NoError(t, err)
	assert.Equal(t, *first.CompletedAt, *second.CompletedAt)
}

func TestWorkflowSteps_Uncomplete(t *testing.T) {
	service, _, transactionID := newStepFixture(t)

	steps, err := service.Initialize(t.Context(), transactionID, models.WorkflowTypeBikeSales, "mechanic-1")
	require.NoError(t, err)

	completedBy := "mechanic-1"
	_, err = service.Complete(t.Context(), steps[0].ID, &completedBy)
	require.NoError(t, err)

	step, err := service.Uncomplete(t.Context(), steps[0].ID)
	require.NoError(t, err)

	assert.False(t, step.IsCompleted)
	assert.Nil(t, step.CompletedAt)
	assert.Nil(t, step.CompletedBy)
}

func TestWorkflowSteps_CompleteAll(t *testing.T) {
	service, _, transactionID := newStepFixture(t)

	steps, err := service.Initialize(t.Context(), transactionID, models.WorkflowTypeBikeSales, "mechanic-1")
	require.NoError(t, err)

	for _, step := range steps {
		_, err = service.Complete(t.Context(), step.ID, nil)
		require.NoError(t, err)
	}

	progress, err := service.Progress(t.Context(), transactionID, models.WorkflowTypeBikeSales)
	require.NoError(t, err)
	assert.Equal(t, 100, progress.ProgressPercentage)
	assert.True(t, progress.IsWorkflowComplete)
	assert.Nil(t, progress.CurrentStep)
	assert.Equal(t, 4, progress.CompletedSteps)
}

func TestWorkflowSteps_Reset(t *testing.T) {
	service, _, transactionID := newStepFixture(t)

	steps, err := service.Initialize(t.Context(), transactionID, models.WorkflowTypeBikeSales, "mechanic-1")
	require.NoError(t, err)

	for _, step := range steps {
		_, err = service.Complete(t.Context(), step.ID, nil)
		require.NoError(t, err)
	}

	reset, err := service.Reset(t.Context(), transactionID, models.WorkflowTypeBikeSales)
	require.NoError(t, err)
	require.Len(t, reset, 4)

	for _, step := range reset {
		assert.False(t, step.IsCompleted)
		assert.Nil(t, step.CompletedAt)
		assert.Nil(t, step.CompletedBy)
	}

	// Resetting an already-reset workflow is a no-op.
	again, err := service.Reset(t.Context(), transactionID, models.WorkflowTypeBikeSales)
	require.NoError(t, err)
	assert.Len(t, again, 4)
}

func TestWorkflowSteps_Reset_NotInitialized(t *testing.T) {
	service, _, transactionID := newStepFixture(t)

	_, err := service.Reset(t.Context(), transactionID, models.WorkflowTypeBikeSales)
	require.ErrorIs(t, err, ErrWorkflowNotInitialized)
}

func TestWorkflowSteps_Progress_NotInitialized(t *testing.T) {
	service, _, transactionID := newStepFixture(t)

	_, err := service.Progress(t.Context(), transactionID, models.WorkflowTypeBikeSales)
	require.ErrorIs(t, err, ErrWorkflowNotInitialized)
	assert.True(t, IsNotFoundError(err))
}

func TestWorkflowSteps_Create_Validation(t *testing.T) {
	service, _, transactionID := newStepFixture(t)

	base := func() *models.WorkflowStep {
		return &models.WorkflowStep{
			TransactionID: transactionID,
			WorkflowType:  models.WorkflowTypeCustomWorkflow,
			StepName:      "Frame inspection",
			StepOrder:     1,
			CreatedBy:     "mechanic-1",
		}
	}

	missingCreator := base()
	missingCreator.CreatedBy = ""
	_, err := service.Create(t.Context(), missingCreator)
	require.ErrorIs(t, err, ErrCreatedByRequired)

	badOrder := base()
	badOrder.StepOrder = 0
	_, err = service.Create(t.Context(), badOrder)
	require.ErrorIs(t, err, ErrStepOrderInvalid)

	longName := base()
	for len(longName.StepName) <= models.MaxStepNameLength {
		longName.StepName += longName.StepName
	}
	_, err = service.Create(t.Context(), longName)
	require.ErrorIs(t, err, ErrStepNameTooLong)

	badType := base()
	badType.WorkflowType = models.WorkflowType("unknown")
	_, err = service.Create(t.Context(), badType)
	require.ErrorIs(t, err, ErrInvalidWorkflowType)
}

func TestWorkflowSteps_Create_OrderConflict(t *testing.T) {
	service, _, transactionID := newStepFixture(t)

	step := &models.WorkflowStep{
		TransactionID: transactionID,
		WorkflowType:  models.WorkflowTypeCustomWorkflow,
		StepName:      "Frame inspection",
		StepOrder:     1,
		CreatedBy:     "mechanic-1",
	}
	_, err := service.Create(t.Context(), step)
	require.NoError(t, err)

	duplicate := &models.WorkflowStep{
		TransactionID: transactionID,
		WorkflowType:  models.WorkflowTypeCustomWorkflow,
		StepName:      "Wheel truing",
		StepOrder:     1,
		CreatedBy:     "mechanic-1",
	}
	_, err = service.Create(t.Context(), duplicate)
	require.Error(t, err)
	assert.True(t, IsConflictError(err))
}

func TestWorkflowSteps_Delete_NotFound(t *testing.T) {
	service, _, _ := newStepFixture(t)

	_, err := service.Delete(t.Context(), uuid.New().String())
	require.ErrorIs(t, err, ErrStepNotFound)
}

func TestWorkflowSteps_PublishesInitializedEvent(t *testing.T) {
	p := memory.NewPersistence()

	pub, sub, err := gochannel.CreateTestChannel(watermill.NewSlogLogger(slog.Default()))
	require.NoError(t, err)

	bus := eventbus.NewWatermillEventBus(pub, sub)

	received := make(chan events.WorkflowInitialized, 1)
	require.NoError(t, bus.Handle(events.WorkflowInitializedEvent, func(ctx context.Context, event any) error {
		initialized, ok := event.(*events.WorkflowInitialized)
		require.True(t, ok)
		received <- *initialized

		return nil
	}))

	ctx, cancel := context.WithCancel(t.Context())
	defer cancel()
	require.NoError(t, bus.Subscribe(ctx))

	service := NewWorkflowSteps(p, bus, slog.Default())

	transaction := &models.Transaction{
		ID:              uuid.New().String(),
		CustomerID:      uuid.New().String(),
		TransactionType: models.TransactionTypeRetail,
	}
	require.NoError(t, p.Transactions().Save(ctx, transaction))

	_, err = service.Initialize(ctx, transaction.ID, models.WorkflowTypeBikeSales, "mechanic-1")
	require.NoError(t, err)

	select {
	case event := <-received:
		assert.Equal(t, transaction.ID, event.TransactionID)
		assert.Equal(t, models.WorkflowTypeBikeSales, event.WorkflowType)
		assert.Equal(t, 4, event.TotalSteps)
		assert.Equal(t, "mechanic-1", event.CreatedBy)
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for workflow initialized event")
	}
}
