package memory

import (
	"context"
	"sort"
	"strconv"
	"time"

	"github.com/campuscycles/gearbox/pkg/models"
	"github.com/campuscycles/gearbox/pkg/persistence"
)

type stepRepository struct {
	p *Persistence
}

func cloneStep(step *models.WorkflowStep) *models.WorkflowStep {
	copied := *step

	if step.CompletedBy != nil {
		completedBy := *step.CompletedBy
		copied.CompletedBy = &completedBy
	}

	if step.CompletedAt != nil {
		completedAt := *step.CompletedAt
		copied.CompletedAt = &completedAt
	}

	return &copied
}

func sortSteps(steps []*models.WorkflowStep) {
	sort.SliceStable(steps, func(i, j int) bool {
		if steps[i].StepOrder != steps[j].StepOrder {
			return steps[i].StepOrder < steps[j].StepOrder
		}

		return steps[i].CreatedAt.Before(steps[j].CreatedAt)
	})
}

func (r *stepRepository) List(ctx context.Context, filter persistence.StepFilter) ([]*models.WorkflowStep, error) {
	r.p.mu.RLock()
	defer r.p.mu.RUnlock()

	steps := make([]*models.WorkflowStep, 0)

	for _, step := range r.p.steps {
		if filter.TransactionID != "" && step.TransactionID != filter.TransactionID {
			continue
		}

		if filter.WorkflowType != nil && step.WorkflowType != *filter.WorkflowType {
			continue
		}

		if filter.IsCompleted != nil && step.IsCompleted != *filter.IsCompleted {
			continue
		}

		if filter.StepOrder != nil && step.StepOrder != *filter.StepOrder {
			continue
		}

		steps = append(steps, cloneStep(step))
	}

	sortSteps(steps)

	return steps, nil
}

func (r *stepRepository) ListByTransactionAndType(
	ctx context.Context,
	transactionID string,
	workflowType models.WorkflowType,
) ([]*models.WorkflowStep, error) {
	return r.List(ctx, persistence.StepFilter{
		TransactionID: transactionID,
		WorkflowType:  &workflowType,
	})
}

func (r *stepRepository) GetByID(ctx context.Context, id string) (*models.WorkflowStep, error) {
	r.p.mu.RLock()
	defer r.p.mu.RUnlock()

	step, ok := r.p.steps[id]
	if !ok {
		return nil, nil
	}

	return cloneStep(step), nil
}

func (r *stepRepository) hasOrderConflict(step *models.WorkflowStep) bool {
	for _, existing := range r.p.steps {
		if existing.ID != step.ID &&
			existing.TransactionID == step.TransactionID &&
			existing.WorkflowType == step.WorkflowType &&
			existing.StepOrder == step.StepOrder {
			return true
		}
	}

	return false
}

func (r *stepRepository) Create(ctx context.Context, step *models.WorkflowStep) error {
	r.p.mu.Lock()
	defer r.p.mu.Unlock()

	if r.hasOrderConflict(step) {
		return persistence.NewStepError("Create", step.ID, persistence.ErrStepOrderConflict)
	}

	r.p.steps[step.ID] = cloneStep(step)

	return nil
}

func (r *stepRepository) CreateBatch(ctx context.Context, steps []*models.WorkflowStep) error {
	r.p.mu.Lock()
	defer r.p.mu.Unlock()

	// All-or-nothing: validate the whole batch before touching the map.
	seen := make(map[string]struct{}, len(steps))

	for _, step := range steps {
		key := step.TransactionID + "|" + string(step.WorkflowType) + "|" + strconv.Itoa(step.StepOrder)
		if _, dup := seen[key]; dup || r.hasOrderConflict(step) {
			return persistence.NewWorkflowError("CreateBatch", step.TransactionID, persistence.ErrStepOrderConflict)
		}

		seen[key] = struct{}{}
	}

	for _, step := range steps {
		r.p.steps[step.ID] = cloneStep(step)
	}

	return nil
}

func (r *stepRepository) Update(ctx context.Context, step *models.WorkflowStep) error {
	r.p.mu.Lock()
	defer r.p.mu.Unlock()

	if _, ok := r.p.steps[step.ID]; !ok {
		return persistence.NewStepError("Update", step.ID, persistence.ErrStepNotFound)
	}

	r.p.steps[step.ID] = cloneStep(step)

	return nil
}

func (r *stepRepository) Delete(ctx context.Context, id string) (*models.WorkflowStep, error) {
	r.p.mu.Lock()
	defer r.p.mu.Unlock()

	step, ok := r.p.steps[id]
	if !ok {
		return nil, nil
	}

	delete(r.p.steps, id)

	return step, nil
}

func (r *stepRepository) ResetAll(
	ctx context.Context,
	transactionID string,
	workflowType models.WorkflowType,
) ([]*models.WorkflowStep, error) {
	r.p.mu.Lock()

	now := time.Now().UTC()

	for _, step := range r.p.steps {
		if step.TransactionID == transactionID && step.WorkflowType == workflowType {
			step.IsCompleted = false
			step.CompletedBy = nil
			step.CompletedAt = nil
			step.UpdatedAt = now
		}
	}

	r.p.mu.Unlock()

	return r.ListByTransactionAndType(ctx, transactionID, workflowType)
}
