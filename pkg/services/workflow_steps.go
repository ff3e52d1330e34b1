package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/campuscycles/gearbox/pkg/eventbus"
	"github.com/campuscycles/gearbox/pkg/events"
	"github.com/campuscycles/gearbox/pkg/models"
	"github.com/campuscycles/gearbox/pkg/persistence"
)

// WorkflowSteps tracks the ordered steps of per-transaction workflows:
// seeding canonical sequences, flipping completion state, resetting, and
// deriving progress.
type WorkflowSteps struct {
	persistence persistence.Persistence
	publisher   eventbus.EventPublisher
	logger      *slog.Logger
}

func NewWorkflowSteps(p persistence.Persistence, publisher eventbus.EventPublisher, logger *slog.Logger) *WorkflowSteps {
	return &WorkflowSteps{
		persistence: p,
		publisher:   publisher,
		logger:      logger.With("service", "workflow_steps"),
	}
}

// List returns steps matching the filter, ordered by step_order. An empty
// result is not an error.
func (s *WorkflowSteps) List(ctx context.Context, filter persistence.StepFilter) ([]*models.WorkflowStep, error) {
	if filter.WorkflowType != nil && !filter.WorkflowType.Valid() {
		return nil, ErrInvalidWorkflowType
	}

	return s.persistence.WorkflowSteps().List(ctx, filter)
}

// FetchByTransactionAndType returns every step of one workflow instance.
func (s *WorkflowSteps) FetchByTransactionAndType(ctx context.Context, transactionID string, workflowType models.WorkflowType) ([]*models.WorkflowStep, error) {
	if !workflowType.Valid() {
		return nil, ErrInvalidWorkflowType
	}

	return s.persistence.WorkflowSteps().ListByTransactionAndType(ctx, transactionID, workflowType)
}

func (s *WorkflowSteps) FetchByID(ctx context.Context, id string) (*models.WorkflowStep, error) {
	step, err := s.persistence.WorkflowSteps().GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch workflow step: %w", err)
	}

	if step == nil {
		return nil, ErrStepNotFound
	}

	return step, nil
}

// Create inserts a single ad-hoc step. The (transaction, workflow_type,
// step_order) slot must be free.
func (s *WorkflowSteps) Create(ctx context.Context, step *models.WorkflowStep) (*models.WorkflowStep, error) {
	if err := validateStep(step); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	step.ID = uuid.New().String()
	step.IsCompleted = false
	step.CompletedBy = nil
	step.CompletedAt = nil
	step.CreatedAt = now
	step.UpdatedAt = now

	if err := s.persistence.WorkflowSteps().Create(ctx, step); err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "Workflow step created",
		"step_id", step.ID, "transaction_id", step.TransactionID, "step_order", step.StepOrder)

	return step, nil
}

// Initialize seeds the canonical step sequence for a transaction's workflow.
// The transaction must exist and the workflow must not already have steps.
func (s *WorkflowSteps) Initialize(ctx context.Context, transactionID string, workflowType models.WorkflowType, createdBy string) ([]*models.WorkflowStep, error) {
	if !workflowType.Valid() {
		return nil, ErrInvalidWorkflowType
	}

	templates := models.CanonicalSequence(workflowType)
	if templates == nil {
		return nil, ErrUnsupportedWorkflowType
	}

	if strings.TrimSpace(createdBy) == "" {
		return nil, ErrCreatedByRequired
	}

	transaction, err := s.persistence.Transactions().GetByID(ctx, transactionID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch transaction: %w", err)
	}

	if transaction == nil {
		return nil, ErrTransactionNotFound
	}

	existing, err := s.persistence.WorkflowSteps().ListByTransactionAndType(ctx, transactionID, workflowType)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing steps: %w", err)
	}

	if len(existing) > 0 {
		return nil, ErrWorkflowAlreadyInitialized
	}

	now := time.Now().UTC()
	steps := make([]*models.WorkflowStep, 0, len(templates))

	for _, template := range templates {
		steps = append(steps, &models.WorkflowStep{
			ID:            uuid.New().String(),
			TransactionID: transactionID,
			WorkflowType:  workflowType,
			StepName:      template.Name,
			StepOrder:     template.Order,
			CreatedBy:     createdBy,
			CreatedAt:     now,
			UpdatedAt:     now,
		})
	}

	// The storage layer's uniqueness guard catches concurrent initializers
	// that slipped past the existence check.
	if err := s.persistence.WorkflowSteps().CreateBatch(ctx, steps); err != nil {
		if persistence.IsStepOrderConflict(err) {
			return nil, ErrWorkflowAlreadyInitialized
		}

		return nil, fmt.Errorf("failed to initialize workflow: %w", err)
	}

	s.logger.InfoContext(ctx, "Workflow initialized",
		"transaction_id", transactionID, "workflow_type", workflowType, "total_steps", len(steps))

	s.publish(ctx, transactionID, events.WorkflowInitialized{
		BaseEvent:    s.baseEvent(events.WorkflowInitializedEvent, transactionID),
		WorkflowType: workflowType,
		TotalSteps:   len(steps),
		CreatedBy:    createdBy,
	})

	return steps, nil
}

// UpdateStepParams carries the mutable fields of a step update. Nil fields
// are left untouched.
type UpdateStepParams struct {
	StepName    *string
	IsCompleted *bool
	CompletedBy *string
}

// Update applies a partial update to a step. Completion transitions manage
// completed_at and completed_by in both directions.
func (s *WorkflowSteps) Update(ctx context.Context, id string, params UpdateStepParams) (*models.WorkflowStep, error) {
	step, err := s.FetchByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if params.StepName != nil {
		name := strings.TrimSpace(*params.StepName)
		if name == "" {
			return nil, ErrStepNameRequired
		}

		if len(name) > models.MaxStepNameLength {
			return nil, ErrStepNameTooLong
		}

		step.StepName = name
	}

	completed := false
	uncompleted := false

	if params.IsCompleted != nil {
		switch {
		case *params.IsCompleted && !step.IsCompleted:
			now := time.Now().UTC()
			step.IsCompleted = true
			step.CompletedAt = &now
			step.CompletedBy = params.CompletedBy
			completed = true
		case !*params.IsCompleted && step.IsCompleted:
			step.IsCompleted = false
			step.CompletedAt = nil
			step.CompletedBy = nil
			uncompleted = true
		}
	}

	step.UpdatedAt = time.Now().UTC()

	if err := s.persistence.WorkflowSteps().Update(ctx, step); err != nil {
		return nil, err
	}

	if completed {
		s.notifyStepCompleted(ctx, step)
	}

	if uncompleted {
		s.publish(ctx, step.TransactionID, events.WorkflowStepUncompleted{
			BaseEvent:    s.baseEvent(events.WorkflowStepUncompletedEvent, step.TransactionID),
			StepID:       step.ID,
			StepName:     step.StepName,
			StepOrder:    step.StepOrder,
			WorkflowType: step.WorkflowType,
		})
	}

	return step, nil
}

// Complete marks a step as done. Completing an already-completed step is a
// no-op that returns the current state.
func (s *WorkflowSteps) Complete(ctx context.Context, id string, completedBy *string) (*models.WorkflowStep, error) {
	done := true

	return s.Update(ctx, id, UpdateStepParams{IsCompleted: &done, CompletedBy: completedBy})
}

// Uncomplete reverts a completed step, clearing completed_at and
// completed_by.
func (s *WorkflowSteps) Uncomplete(ctx context.Context, id string) (*models.WorkflowStep, error) {
	done := false

	return s.Update(ctx, id, UpdateStepParams{IsCompleted: &done})
}

// Reset clears completion state on every step of the workflow instance and
// returns the reset set. Resetting an already-reset workflow is idempotent.
func (s *WorkflowSteps) Reset(ctx context.Context, transactionID string, workflowType models.WorkflowType) ([]*models.WorkflowStep, error) {
	if !workflowType.Valid() {
		return nil, ErrInvalidWorkflowType
	}

	steps, err := s.persistence.WorkflowSteps().ResetAll(ctx, transactionID, workflowType)
	if err != nil {
		return nil, fmt.Errorf("failed to reset workflow: %w", err)
	}

	if len(steps) == 0 {
		return nil, ErrWorkflowNotInitialized
	}

	s.logger.InfoContext(ctx, "Workflow reset",
		"transaction_id", transactionID, "workflow_type", workflowType)

	s.publish(ctx, transactionID, events.WorkflowReset{
		BaseEvent:    s.baseEvent(events.WorkflowResetEvent, transactionID),
		WorkflowType: workflowType,
	})

	return steps, nil
}

// Delete removes a step permanently.
func (s *WorkflowSteps) Delete(ctx context.Context, id string) (*models.WorkflowStep, error) {
	step, err := s.persistence.WorkflowSteps().Delete(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to delete workflow step: %w", err)
	}

	if step == nil {
		return nil, ErrStepNotFound
	}

	s.logger.InfoContext(ctx, "Workflow step deleted", "step_id", id)

	return step, nil
}

// Progress recomputes the derived progress view for one workflow instance.
// A workflow with no steps has no progress to report.
func (s *WorkflowSteps) Progress(ctx context.Context, transactionID string, workflowType models.WorkflowType) (*models.WorkflowProgress, error) {
	if !workflowType.Valid() {
		return nil, ErrInvalidWorkflowType
	}

	steps, err := s.persistence.WorkflowSteps().ListByTransactionAndType(ctx, transactionID, workflowType)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch workflow steps: %w", err)
	}

	if len(steps) == 0 {
		return nil, ErrWorkflowNotInitialized
	}

	return CalculateProgress(transactionID, workflowType, steps), nil
}

func (s *WorkflowSteps) notifyStepCompleted(ctx context.Context, step *models.WorkflowStep) {
	completedBy := ""
	if step.CompletedBy != nil {
		completedBy = *step.CompletedBy
	}

	s.publish(ctx, step.TransactionID, events.WorkflowStepCompleted{
		BaseEvent:    s.baseEvent(events.WorkflowStepCompletedEvent, step.TransactionID),
		StepID:       step.ID,
		StepName:     step.StepName,
		StepOrder:    step.StepOrder,
		WorkflowType: step.WorkflowType,
		CompletedBy:  completedBy,
	})

	steps, err := s.persistence.WorkflowSteps().ListByTransactionAndType(ctx, step.TransactionID, step.WorkflowType)
	if err != nil {
		s.logger.WarnContext(ctx, "Failed to check workflow completion", "error", err)

		return
	}

	progress := CalculateProgress(step.TransactionID, step.WorkflowType, steps)
	if !progress.IsWorkflowComplete {
		return
	}

	s.publish(ctx, step.TransactionID, events.WorkflowCompleted{
		BaseEvent:    s.baseEvent(events.WorkflowCompletedEvent, step.TransactionID),
		WorkflowType: step.WorkflowType,
		TotalSteps:   progress.TotalSteps,
	})
}

func (s *WorkflowSteps) publish(ctx context.Context, key string, event eventbus.Event) {
	if s.publisher == nil {
		return
	}

	if err := s.publisher.Publish(ctx, key, event); err != nil {
		s.logger.WarnContext(ctx, "Failed to publish event",
			"event_type", event.GetType(), "error", err)
	}
}

func (s *WorkflowSteps) baseEvent(eventType events.EventType, transactionID string) events.BaseEvent {
	return events.BaseEvent{
		ID:            uuid.New().String(),
		Type:          eventType,
		Timestamp:     time.Now().UTC(),
		TransactionID: transactionID,
	}
}

func validateStep(step *models.WorkflowStep) error {
	if strings.TrimSpace(step.TransactionID) == "" {
		return ErrInvalidRequest
	}

	if !step.WorkflowType.Valid() {
		return ErrInvalidWorkflowType
	}

	step.StepName = strings.TrimSpace(step.StepName)
	if step.StepName == "" {
		return ErrStepNameRequired
	}

	if len(step.StepName) > models.MaxStepNameLength {
		return ErrStepNameTooLong
	}

	if step.StepOrder <= 0 {
		return ErrStepOrderInvalid
	}

	if strings.TrimSpace(step.CreatedBy) == "" {
		return ErrCreatedByRequired
	}

	return nil
}
