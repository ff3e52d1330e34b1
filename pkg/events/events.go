// Package events defines event types for transaction and workflow lifecycle
// notifications.
package events

import (
	"time"

	"github.com/campuscycles/gearbox/pkg/models"
)

type EventType string

// Topic carries every lifecycle event published by the API.
const Topic = "gearbox.events"

const EventMetadataKey = "key"
const EventTypeMetadataKey = "event_type"

const (
	// Workflow lifecycle events.
	WorkflowInitializedEvent     EventType = "workflow.initialized"
	WorkflowStepCompletedEvent   EventType = "workflow.step.completed"
	WorkflowStepUncompletedEvent EventType = "workflow.step.uncompleted"
	WorkflowCompletedEvent       EventType = "workflow.completed"
	WorkflowResetEvent           EventType = "workflow.reset"

	// Transaction lifecycle events.
	TransactionCreatedEvent   EventType = "transaction.created"
	TransactionCompletedEvent EventType = "transaction.completed"
)

type BaseEvent struct {
	ID            string         `json:"id"`
	Type          EventType      `json:"type"`
	Timestamp     time.Time      `json:"timestamp"`
	TransactionID string         `json:"transaction_id"`
	Metadata      map[string]any `json:"metadata,omitempty"`
}

type WorkflowInitialized struct {
	BaseEvent

	WorkflowType models.WorkflowType `json:"workflow_type"`
	TotalSteps   int                 `json:"total_steps"`
	CreatedBy    string              `json:"created_by"`
}

func (e WorkflowInitialized) GetType() EventType {
	return WorkflowInitializedEvent
}

type WorkflowStepCompleted struct {
	BaseEvent

	StepID       string              `json:"step_id"`
	StepName     string              `json:"step_name"`
	StepOrder    int                 `json:"step_order"`
	WorkflowType models.WorkflowType `json:"workflow_type"`
	CompletedBy  string              `json:"completed_by,omitempty"`
}

func (e WorkflowStepCompleted) GetType() EventType {
	return WorkflowStepCompletedEvent
}

type WorkflowStepUncompleted struct {
	BaseEvent

	StepID       string              `json:"step_id"`
	StepName     string              `json:"step_name"`
	StepOrder    int                 `json:"step_order"`
	WorkflowType models.WorkflowType `json:"workflow_type"`
}

func (e WorkflowStepUncompleted) GetType() EventType {
	return WorkflowStepUncompletedEvent
}

type WorkflowCompleted struct {
	BaseEvent

	WorkflowType models.WorkflowType `json:"workflow_type"`
	TotalSteps   int                 `json:"total_steps"`
}

func (e WorkflowCompleted) GetType() EventType {
	return WorkflowCompletedEvent
}

type WorkflowReset struct {
	BaseEvent

	WorkflowType models.WorkflowType `json:"workflow_type"`
}

func (e WorkflowReset) GetType() EventType {
	return WorkflowResetEvent
}

type TransactionCreated struct {
	BaseEvent

	TransactionType models.TransactionType `json:"transaction_type"`
	CustomerID      string                 `json:"customer_id"`
}

func (e TransactionCreated) GetType() EventType {
	return TransactionCreatedEvent
}

type TransactionCompleted struct {
	BaseEvent

	TransactionType models.TransactionType `json:"transaction_type"`
	DateCompleted   time.Time              `json:"date_completed"`
}

func (e TransactionCompleted) GetType() EventType {
	return TransactionCompletedEvent
}
