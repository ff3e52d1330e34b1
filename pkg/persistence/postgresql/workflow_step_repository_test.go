package postgresql

import (
	"database/sql/driver"
	"log/slog"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campuscycles/gearbox/pkg/models"
	"github.com/campuscycles/gearbox/pkg/persistence"
)

var stepTestColumns = []string{
	"id", "transaction_id", "workflow_type", "step_name", "step_order",
	"is_completed", "created_by", "completed_by", "created_at", "updated_at",
	"completed_at",
}

func newStepRepository(t *testing.T) (*WorkflowStepRepository, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	return NewWorkflowStepRepository(db, slog.Default()), mock
}

func stepRow(id string, order int) []driver.Value {
	now := time.Now().UTC()

	return []driver.Value{
		id, "tx-1", "bike_sales", "Step", order,
		false, "mechanic-1", nil, now, now, nil,
	}
}

func TestWorkflowStepRepository_GetByID(t *testing.T) {
	repo, mock := newStepRepository(t)

	rows := sqlmock.NewRows(stepTestColumns).AddRow(stepRow("step-1", 1)...)
	mock.ExpectQuery(`SELECT (.+) FROM workflow_steps WHERE id = \$1`).
		WithArgs("step-1").
		WillReturnRows(rows)

	step, err := repo.GetByID(t.Context(), "step-1")
	require.NoError(t, err)
	require.NotNil(t, step)
	assert.Equal(t, "step-1", step.ID)
	assert.Equal(t, models.WorkflowTypeBikeSales, step.WorkflowType)
	assert.Nil(t, step.CompletedBy)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestWorkflowStepRepository_GetByID_Absent(t *testing.T) {
	repo, mock := newStepRepository(t)

	mock.ExpectQuery(`SELECT (.+) FROM workflow_steps WHERE id = \$1`).
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows(stepTestColumns))

	step, err := repo.GetByID(t.Context(), "missing")
	require.NoError(t, err)
	assert.Nil(t, step)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestWorkflowStepRepository_List_Filters(t *testing.T) {
	repo, mock := newStepRepository(t)

	rows := sqlmock.NewRows(stepTestColumns).
		AddRow(stepRow("step-1", 1)...).
		AddRow(stepRow("step-2", 2)...)

	mock.ExpectQuery(`SELECT (.+) FROM workflow_steps WHERE 1=1 AND transaction_id = \$1 AND workflow_type = \$2 AND is_completed = \$3 ORDER BY step_order ASC, created_at ASC`).
		WithArgs("tx-1", "bike_sales", false).
		WillReturnRows(rows)

	workflowType := models.WorkflowTypeBikeSales
	isCompleted := false

	steps, err := repo.List(t.Context(), persistence.StepFilter{
		TransactionID: "tx-1",
		WorkflowType:  &workflowType,
		IsCompleted:   &isCompleted,
	})
	require.NoError(t, err)
	require.Len(t, steps, 2)
	assert.Equal(t, 1, steps[0].StepOrder)
	assert.Equal(t, 2, steps[1].StepOrder)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestWorkflowStepRepository_Create_OrderConflict(t *testing.T) {
	repo, mock := newStepRepository(t)

	mock.ExpectExec(`INSERT INTO workflow_steps`).
		WillReturnError(&pq.Error{Code: "23505"})

	err := repo.Create(t.Context(), &models.WorkflowStep{
		ID:            "step-1",
		TransactionID: "tx-1",
		WorkflowType:  models.WorkflowTypeBikeSales,
		StepName:      "BikeSpec",
		StepOrder:     1,
		CreatedBy:     "mechanic-1",
	})
	require.Error(t, err)
	assert.True(t, persistence.IsStepOrderConflict(err))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestWorkflowStepRepository_CreateBatch(t *testing.T) {
	repo, mock := newStepRepository(t)

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO workflow_steps`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO workflow_steps`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	steps := []*models.WorkflowStep{
		{ID: "step-1", TransactionID: "tx-1", WorkflowType: models.WorkflowTypeBikeSales, StepName: "BikeSpec", StepOrder: 1, CreatedBy: "mechanic-1"},
		{ID: "step-2", TransactionID: "tx-1", WorkflowType: models.WorkflowTypeBikeSales, StepName: "Build", StepOrder: 2, CreatedBy: "mechanic-1"},
	}

	require.NoError(t, repo.CreateBatch(t.Context(), steps))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestWorkflowStepRepository_CreateBatch_RollsBackOnConflict(t *testing.T) {
	repo, mock := newStepRepository(t)

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO workflow_steps`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO workflow_steps`).WillReturnError(&pq.Error{Code: "23505"})
	mock.ExpectRollback()

	steps := []*models.WorkflowStep{
		{ID: "step-1", TransactionID: "tx-1", WorkflowType: models.WorkflowTypeBikeSales, StepName: "BikeSpec", StepOrder: 1, CreatedBy: "mechanic-1"},
		{ID: "step-2", TransactionID: "tx-1", WorkflowType: models.WorkflowTypeBikeSales, StepName: "Build", StepOrder: 1, CreatedBy: "mechanic-1"},
	}

	err := repo.CreateBatch(t.Context(), steps)
	require.Error(t, err)
	assert.True(t, persistence.IsStepOrderConflict(err))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestWorkflowStepRepository_Update_NotFound(t *testing.T) {
	repo, mock := newStepRepository(t)

	mock.ExpectExec(`UPDATE workflow_steps`).WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Update(t.Context(), &models.WorkflowStep{ID: "missing", StepName: "Step"})
	require.Error(t, err)
	assert.True(t, persistence.IsStepNotFound(err))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestWorkflowStepRepository_Delete(t *testing.T) {
	repo, mock := newStepRepository(t)

	rows := sqlmock.NewRows(stepTestColumns).AddRow(stepRow("step-1", 1)...)
	mock.ExpectQuery(`DELETE FROM workflow_steps WHERE id = \$1 RETURNING`).
		WithArgs("step-1").
		WillReturnRows(rows)

	step, err := repo.Delete(t.Context(), "step-1")
	require.NoError(t, err)
	require.NotNil(t, step)
	assert.Equal(t, "step-1", step.ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestWorkflowStepRepository_Delete_Absent(t *testing.T) {
	repo, mock := newStepRepository(t)

	mock.ExpectQuery(`DELETE FROM workflow_steps WHERE id = \$1 RETURNING`).
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows(stepTestColumns))

	step, err := repo.Delete(t.Context(), "missing")
	require.NoError(t, err)
	assert.Nil(t, step)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestWorkflowStepRepository_ResetAll(t *testing.T) {
	repo, mock := newStepRepository(t)

	mock.ExpectExec(`UPDATE workflow_steps`).
		WillReturnResult(sqlmock.NewResult(0, 4))

	rows := sqlmock.NewRows(stepTestColumns).
		AddRow(stepRow("step-1", 1)...).
		AddRow(stepRow("step-2", 2)...)
	mock.ExpectQuery(`SELECT (.+) FROM workflow_steps\s+WHERE transaction_id = \$1 AND workflow_type = \$2`).
		WithArgs("tx-1", "bike_sales").
		WillReturnRows(rows)

	steps, err := repo.ResetAll(t.Context(), "tx-1", models.WorkflowTypeBikeSales)
	require.NoError(t, err)
	require.Len(t, steps, 2)

	for _, step := range steps {
		assert.False(t, step.IsCompleted)
	}

	require.NoError(t, mock.ExpectationsWereMet())
}
