package services

import (
	"math"

	"github.com/campuscycles/gearbox/pkg/models"
)

// CalculateProgress derives the progress view from a step list. The steps
// are expected in (step_order ASC, created_at ASC) order as returned by the
// persistence layer. A workflow with zero steps is never complete.
func CalculateProgress(transactionID string, workflowType models.WorkflowType, steps []*models.WorkflowStep) *models.WorkflowProgress {
	progress := &models.WorkflowProgress{
		TransactionID: transactionID,
		WorkflowType:  workflowType,
		TotalSteps:    len(steps),
		StepsSummary:  make([]models.StepSummary, 0, len(steps)),
	}

	for _, step := range steps {
		summary := models.StepSummary{
			StepID:      step.ID,
			StepName:    step.StepName,
			StepOrder:   step.StepOrder,
			IsCompleted: step.IsCompleted,
			CompletedAt: step.CompletedAt,
		}
		progress.StepsSummary = append(progress.StepsSummary, summary)

		if step.IsCompleted {
			progress.CompletedSteps++

			continue
		}

		// Current step is the incomplete step with the lowest order.
		if progress.CurrentStep == nil || summary.StepOrder < progress.CurrentStep.StepOrder {
			current := summary
			progress.CurrentStep = &current
		}
	}

	if progress.TotalSteps > 0 {
		progress.ProgressPercentage = int(math.Round(
			float64(progress.CompletedSteps) / float64(progress.TotalSteps) * 100,
		))
		progress.IsWorkflowComplete = progress.CompletedSteps == progress.TotalSteps
	}

	return progress
}
