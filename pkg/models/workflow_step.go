// Package models defines the domain records for the bike shop backend.
package models

import "time"

// WorkflowType names which fixed step sequence applies to a transaction.
type WorkflowType string

const (
	WorkflowTypeBikeSales        WorkflowType = "bike_sales"
	WorkflowTypeRepairProcess    WorkflowType = "repair_process"
	WorkflowTypeOrderFulfillment WorkflowType = "order_fulfillment"
	WorkflowTypeCustomWorkflow   WorkflowType = "custom_workflow"
)

// Valid reports whether t is one of the closed set of workflow types.
func (t WorkflowType) Valid() bool {
	switch t {
	case WorkflowTypeBikeSales, WorkflowTypeRepairProcess,
		WorkflowTypeOrderFulfillment, WorkflowTypeCustomWorkflow:
		return true
	}

	return false
}

// MaxStepNameLength limits step_name on create and on the seeded sequences.
const MaxStepNameLength = 100

// WorkflowStep is one ordered step of a workflow instance owned by a
// transaction. step_order is unique within a (transaction, workflow_type)
// pair and defines the display/execution sequence.
type WorkflowStep struct {
	ID            string       `json:"step_id"`
	TransactionID string       `json:"transaction_id"`
	WorkflowType  WorkflowType `json:"workflow_type"`
	StepName      string       `json:"step_name"`
	StepOrder     int          `json:"step_order"`
	IsCompleted   bool         `json:"is_completed"`
	CreatedBy     string       `json:"created_by"`
	CompletedBy   *string      `json:"completed_by,omitempty"`
	CreatedAt     time.Time    `json:"created_at"`
	UpdatedAt     time.Time    `json:"updated_at"`
	CompletedAt   *time.Time   `json:"completed_at,omitempty"`
}

// StepTemplate is one entry of a canonical step sequence.
type StepTemplate struct {
	Name  string
	Order int
}

// CanonicalSequence returns the fixed step sequence seeded when a workflow
// of the given type is initialized. Types without a canonical sequence
// (order_fulfillment, custom_workflow) return nil: they are valid enum
// values but cannot be initialized.
func CanonicalSequence(t WorkflowType) []StepTemplate {
	switch t {
	case WorkflowTypeBikeSales:
		return []StepTemplate{
			{Name: "BikeSpec", Order: 1},
			{Name: "Build", Order: 2},
			{Name: "Creation", Order: 3},
			{Name: "Checkout", Order: 4},
		}
	case WorkflowTypeRepairProcess:
		return []StepTemplate{
			{Name: "Assessment", Order: 1},
			{Name: "Parts Ordering", Order: 2},
			{Name: "Repair Work", Order: 3},
			{Name: "Quality Check", Order: 4},
		}
	case WorkflowTypeOrderFulfillment, WorkflowTypeCustomWorkflow:
		return nil
	}

	return nil
}

// StepSummary is the condensed per-step view embedded in WorkflowProgress.
type StepSummary struct {
	StepID      string     `json:"step_id"`
	StepName    string     `json:"step_name"`
	StepOrder   int        `json:"step_order"`
	IsCompleted bool       `json:"is_completed"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

// WorkflowProgress is the derived, read-only progress view of one workflow
// instance. It is recomputed from the step list on every request.
type WorkflowProgress struct {
	TransactionID      string        `json:"transaction_id"`
	WorkflowType       WorkflowType  `json:"workflow_type"`
	TotalSteps         int           `json:"total_steps"`
	CompletedSteps     int           `json:"completed_steps"`
	ProgressPercentage int           `json:"progress_percentage"`
	CurrentStep        *StepSummary  `json:"current_step"`
	IsWorkflowComplete bool          `json:"is_workflow_complete"`
	StepsSummary       []StepSummary `json:"steps_summary"`
}
