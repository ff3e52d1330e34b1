// Package services provides the business logic and standardized error types
// for the bike shop backend.
package services

import (
	"errors"
	"fmt"

	"github.com/campuscycles/gearbox/pkg/persistence"
)

// Business logic errors. These indicate client errors (4xx responses).
var (
	// Validation errors (400 Bad Request).
	ErrInvalidRequest          = errors.New("invalid request")
	ErrCreatedByRequired       = errors.New("created_by is required")
	ErrStepNameRequired        = errors.New("step_name is required")
	ErrStepNameTooLong         = errors.New("step_name exceeds 100 characters")
	ErrStepOrderInvalid        = errors.New("step_order must be a positive integer")
	ErrQuantityInvalid         = errors.New("quantity must be a positive integer")
	ErrInvalidWorkflowType     = errors.New("invalid workflow type")
	ErrUnsupportedWorkflowType = errors.New("workflow type has no canonical step sequence")
	ErrInvalidTransactionType  = errors.New("invalid transaction type")
	ErrInvalidUserRole         = errors.New("invalid user role")

	// Business logic conflicts (409 Conflict).
	ErrWorkflowAlreadyInitialized = errors.New("workflow already initialized for transaction")

	// Not-found errors (404). ErrWorkflowNotInitialized distinguishes
	// "never initialized" from an initialized-but-empty progress query.
	ErrWorkflowNotInitialized = errors.New("workflow not initialized for transaction")
)

// Not-found sentinels shared with the persistence layer.
var (
	ErrStepNotFound         = persistence.ErrStepNotFound
	ErrTransactionNotFound  = persistence.ErrTransactionNotFound
	ErrCustomerNotFound     = persistence.ErrCustomerNotFound
	ErrBikeNotFound         = persistence.ErrBikeNotFound
	ErrItemNotFound         = persistence.ErrItemNotFound
	ErrRepairNotFound       = persistence.ErrRepairNotFound
	ErrOrderRequestNotFound = persistence.ErrOrderRequestNotFound
	ErrUserNotFound         = persistence.ErrUserNotFound
)

// ServiceError wraps service-level errors with additional context.
type ServiceError struct {
	Op      string // Operation name
	Code    string // Error code for API responses
	Message string // Human-readable message
	Err     error  // Underlying error
}

func (e *ServiceError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s: %s", e.Op, e.Message)
	}

	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *ServiceError) Unwrap() error {
	return e.Err
}

func (e *ServiceError) Is(target error) bool {
	return errors.Is(e.Err, target)
}

// NewValidationError creates a new validation error with context.
func NewValidationError(op, code, message string, err error) *ServiceError {
	return &ServiceError{
		Op:      op,
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// IsValidationError checks if an error should map to HTTP 400.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidRequest) ||
		errors.Is(err, ErrCreatedByRequired) ||
		errors.Is(err, ErrStepNameRequired) ||
		errors.Is(err, ErrStepNameTooLong) ||
		errors.Is(err, ErrStepOrderInvalid) ||
		errors.Is(err, ErrQuantityInvalid) ||
		errors.Is(err, ErrInvalidWorkflowType) ||
		errors.Is(err, ErrUnsupportedWorkflowType) ||
		errors.Is(err, ErrInvalidTransactionType) ||
		errors.Is(err, ErrInvalidUserRole)
}

// IsConflictError checks if an error should map to HTTP 409.
func IsConflictError(err error) bool {
	return errors.Is(err, ErrWorkflowAlreadyInitialized) ||
		persistence.IsStepOrderConflict(err)
}

// IsNotFoundError checks if an error should map to HTTP 404.
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrStepNotFound) ||
		errors.Is(err, ErrTransactionNotFound) ||
		errors.Is(err, ErrCustomerNotFound) ||
		errors.Is(err, ErrBikeNotFound) ||
		errors.Is(err, ErrItemNotFound) ||
		errors.Is(err, ErrRepairNotFound) ||
		errors.Is(err, ErrOrderRequestNotFound) ||
		errors.Is(err, ErrUserNotFound) ||
		errors.Is(err, ErrWorkflowNotInitialized)
}
