package postgresql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/campuscycles/gearbox/pkg/models"
	"github.com/campuscycles/gearbox/pkg/persistence"
)

// WorkflowStepRepository handles workflow-step database operations.
type WorkflowStepRepository struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewWorkflowStepRepository creates a new workflow step repository.
func NewWorkflowStepRepository(db *sql.DB, logger *slog.Logger) *WorkflowStepRepository {
	return &WorkflowStepRepository{db: db, logger: logger}
}

const stepColumns = `
		id
	  , transaction_id
	  , workflow_type
	  , step_name
	  , step_order
	  , is_completed
	  , created_by
	  , completed_by
	  , created_at
	  , updated_at
	  , completed_at
`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanStep(row rowScanner) (*models.WorkflowStep, error) {
	var (
		step        models.WorkflowStep
		completedBy sql.NullString
		completedAt sql.NullTime
	)

	err := row.Scan(
		&step.ID,
		&step.TransactionID,
		&step.WorkflowType,
		&step.StepName,
		&step.StepOrder,
		&step.IsCompleted,
		&step.CreatedBy,
		&completedBy,
		&step.CreatedAt,
		&step.UpdatedAt,
		&completedAt,
	)
	if err != nil {
		return nil, err
	}

	if completedBy.Valid {
		step.CompletedBy = &completedBy.String
	}

	if completedAt.Valid {
		step.CompletedAt = &completedAt.Time
	}

	return &step, nil
}

func (r *WorkflowStepRepository) collectSteps(ctx context.Context, rows *sql.Rows) ([]*models.WorkflowStep, error) {
	defer func() {
		err := rows.Close()
		if err != nil {
			r.logger.ErrorContext(ctx, "failed to close rows", "error", err)
		}
	}()

	steps := make([]*models.WorkflowStep, 0)

	for rows.Next() {
		step, err := scanStep(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan workflow step: %w", err)
		}

		steps = append(steps, step)
	}

	err := rows.Err()
	if err != nil {
		return nil, fmt.Errorf("error iterating workflow steps: %w", err)
	}

	return steps, nil
}

// List returns steps matching the filter, ordered by step_order then
// created_at. An empty filter matches all steps.
func (r *WorkflowStepRepository) List(ctx context.Context, filter persistence.StepFilter) ([]*models.WorkflowStep, error) {
	query := "SELECT " + stepColumns + " FROM workflow_steps WHERE 1=1"
	args := make([]any, 0, 4)

	if filter.TransactionID != "" {
		args = append(args, filter.TransactionID)
		query += " AND transaction_id = $" + strconv.Itoa(len(args))
	}

	if filter.WorkflowType != nil {
		args = append(args, string(*filter.WorkflowType))
		query += " AND workflow_type = $" + strconv.Itoa(len(args))
	}

	if filter.IsCompleted != nil {
		args = append(args, *filter.IsCompleted)
		query += " AND is_completed = $" + strconv.Itoa(len(args))
	}

	if filter.StepOrder != nil {
		args = append(args, *filter.StepOrder)
		query += " AND step_order = $" + strconv.Itoa(len(args))
	}

	query += " ORDER BY step_order ASC, created_at ASC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query workflow steps: %w", err)
	}

	return r.collectSteps(ctx, rows)
}

// ListByTransactionAndType returns the ordered steps of one workflow
// instance. An empty result is not an error.
func (r *WorkflowStepRepository) ListByTransactionAndType(
	ctx context.Context,
	transactionID string,
	workflowType models.WorkflowType,
) ([]*models.WorkflowStep, error) {
	query := "SELECT " + stepColumns + `
		FROM workflow_steps
		WHERE transaction_id = $1 AND workflow_type = $2
		ORDER BY step_order ASC, created_at ASC
	`

	rows, err := r.db.QueryContext(ctx, query, transactionID, string(workflowType))
	if err != nil {
		return nil, fmt.Errorf("failed to query workflow steps: %w", err)
	}

	return r.collectSteps(ctx, rows)
}

// GetByID returns a step by its ID, or (nil, nil) when absent.
func (r *WorkflowStepRepository) GetByID(ctx context.Context, id string) (*models.WorkflowStep, error) {
	query := "SELECT " + stepColumns + " FROM workflow_steps WHERE id = $1"

	step, err := scanStep(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}

		return nil, fmt.Errorf("failed to scan workflow step: %w", err)
	}

	return step, nil
}

const insertStepQuery = `
	INSERT INTO workflow_steps (id, transaction_id, workflow_type, step_name,
		step_order, is_completed, created_by, completed_by, created_at,
		updated_at, completed_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
`

// Create inserts a single step.
func (r *WorkflowStepRepository) Create(ctx context.Context, step *models.WorkflowStep) error {
	_, err := r.db.ExecContext(ctx, insertStepQuery,
		step.ID,
		step.TransactionID,
		string(step.WorkflowType),
		step.StepName,
		step.StepOrder,
		step.IsCompleted,
		step.CreatedBy,
		step.CompletedBy,
		step.CreatedAt,
		step.UpdatedAt,
		step.CompletedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return persistence.NewStepError("Create", step.ID, persistence.ErrStepOrderConflict)
		}

		return fmt.Errorf("failed to insert workflow step: %w", err)
	}

	return nil
}

// CreateBatch inserts all steps inside one transaction; nothing is committed
// if any insert fails.
func (r *WorkflowStepRepository) CreateBatch(ctx context.Context, steps []*models.WorkflowStep) error {
	if len(steps) == 0 {
		return nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	for _, step := range steps {
		_, err = tx.ExecContext(ctx, insertStepQuery,
			step.ID,
			step.TransactionID,
			string(step.WorkflowType),
			step.StepName,
			step.StepOrder,
			step.IsCompleted,
			step.CreatedBy,
			step.CompletedBy,
			step.CreatedAt,
			step.UpdatedAt,
			step.CompletedAt,
		)
		if err != nil {
			_ = tx.Rollback()

			if isUniqueViolation(err) {
				return persistence.NewWorkflowError("CreateBatch", step.TransactionID, persistence.ErrStepOrderConflict)
			}

			return fmt.Errorf("failed to insert workflow step batch: %w", err)
		}
	}

	err = tx.Commit()
	if err != nil {
		return fmt.Errorf("failed to commit workflow step batch: %w", err)
	}

	return nil
}

// Update persists the mutable fields of a step.
func (r *WorkflowStepRepository) Update(ctx context.Context, step *models.WorkflowStep) error {
	query := `
		UPDATE workflow_steps
		SET step_name = $2,
			is_completed = $3,
			completed_by = $4,
			updated_at = $5,
			completed_at = $6
		WHERE id = $1
	`

	result, err := r.db.ExecContext(ctx, query,
		step.ID,
		step.StepName,
		step.IsCompleted,
		step.CompletedBy,
		step.UpdatedAt,
		step.CompletedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update workflow step: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read update result: %w", err)
	}

	if affected == 0 {
		return persistence.NewStepError("Update", step.ID, persistence.ErrStepNotFound)
	}

	return nil
}

// Delete removes a step and returns the deleted record, or (nil, nil) when
// it was absent.
func (r *WorkflowStepRepository) Delete(ctx context.Context, id string) (*models.WorkflowStep, error) {
	query := "DELETE FROM workflow_steps WHERE id = $1 RETURNING " + stepColumns

	step, err := scanStep(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}

		return nil, fmt.Errorf("failed to delete workflow step: %w", err)
	}

	return step, nil
}

// ResetAll clears completion state on every step of the pair and returns the
// updated set in order.
func (r *WorkflowStepRepository) ResetAll(
	ctx context.Context,
	transactionID string,
	workflowType models.WorkflowType,
) ([]*models.WorkflowStep, error) {
	query := `
		UPDATE workflow_steps
		SET is_completed = FALSE,
			completed_by = NULL,
			completed_at = NULL,
			updated_at = $3
		WHERE transaction_id = $1 AND workflow_type = $2
	`

	_, err := r.db.ExecContext(ctx, query, transactionID, string(workflowType), time.Now().UTC())
	if err != nil {
		return nil, fmt.Errorf("failed to reset workflow steps: %w", err)
	}

	return r.ListByTransactionAndType(ctx, transactionID, workflowType)
}
