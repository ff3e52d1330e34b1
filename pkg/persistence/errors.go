// Package persistence provides standardized error types for storage
// operations.
package persistence

import (
	"errors"
	"fmt"
)

// Standard persistence error types that all backends use.
var (
	// ErrStepNotFound indicates a workflow step was not found by ID.
	ErrStepNotFound = errors.New("workflow step not found")

	// ErrTransactionNotFound indicates a transaction was not found by ID.
	ErrTransactionNotFound = errors.New("transaction not found")

	// ErrStepOrderConflict indicates a step_order collision within a
	// (transaction_id, workflow_type) pair, including the case where a
	// workflow is initialized twice for the same transaction.
	ErrStepOrderConflict = errors.New("step order already exists for workflow")

	// ErrCustomerNotFound indicates a customer was not found by ID.
	ErrCustomerNotFound = errors.New("customer not found")

	// ErrBikeNotFound indicates a bike was not found by ID.
	ErrBikeNotFound = errors.New("bike not found")

	// ErrItemNotFound indicates an inventory item was not found.
	ErrItemNotFound = errors.New("item not found")

	// ErrRepairNotFound indicates a repairs-catalog entry was not found.
	ErrRepairNotFound = errors.New("repair not found")

	// ErrOrderRequestNotFound indicates an order request was not found.
	ErrOrderRequestNotFound = errors.New("order request not found")

	// ErrUserNotFound indicates a user was not found by ID.
	ErrUserNotFound = errors.New("user not found")
)

// StepError wraps workflow-step storage errors with operation context.
type StepError struct {
	Op            string // Operation being performed (e.g. "Create", "ResetAll")
	StepID        string // Step ID if applicable
	TransactionID string // Owning transaction ID if applicable
	Err           error  // Underlying error
}

func (e *StepError) Error() string {
	target := e.StepID
	if target == "" {
		target = "transaction " + e.TransactionID
	}

	return fmt.Sprintf("%s operation failed for step %s: %v", e.Op, target, e.Err)
}

func (e *StepError) Unwrap() error {
	return e.Err
}

func (e *StepError) Is(target error) bool {
	return errors.Is(e.Err, target)
}

// NewStepError creates a step error with operation context.
func NewStepError(op, stepID string, err error) *StepError {
	return &StepError{Op: op, StepID: stepID, Err: err}
}

// NewWorkflowError creates a step error scoped to a whole workflow instance.
func NewWorkflowError(op, transactionID string, err error) *StepError {
	return &StepError{Op: op, TransactionID: transactionID, Err: err}
}

// IsStepNotFound checks if an error indicates a missing workflow step.
func IsStepNotFound(err error) bool {
	return errors.Is(err, ErrStepNotFound)
}

// IsTransactionNotFound checks if an error indicates a missing transaction.
func IsTransactionNotFound(err error) bool {
	return errors.Is(err, ErrTransactionNotFound)
}

// IsStepOrderConflict checks if an error indicates a step_order collision.
func IsStepOrderConflict(err error) bool {
	return errors.Is(err, ErrStepOrderConflict)
}
