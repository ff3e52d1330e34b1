// Package web provides HTTP request and response types for the bike shop API.
package web

import "github.com/gofiber/fiber/v3"

// Response is the uniform envelope returned by every endpoint, success or
// failure. statusCode mirrors the HTTP status for clients that only look at
// the body.
type Response struct {
	Success        bool   `json:"success"`
	Message        string `json:"message"`
	ResponseObject any    `json:"responseObject"`
	StatusCode     int    `json:"statusCode"`
}

func respond(c fiber.Ctx, status int, message string, object any) error {
	return c.Status(status).JSON(Response{
		Success:        status < 400,
		Message:        message,
		ResponseObject: object,
		StatusCode:     status,
	})
}

func ok(c fiber.Ctx, message string, object any) error {
	return respond(c, fiber.StatusOK, message, object)
}

func created(c fiber.Ctx, message string, object any) error {
	return respond(c, fiber.StatusCreated, message, object)
}

// CreateStepRequest represents the request body for creating an ad-hoc
// workflow step.
type CreateStepRequest struct {
	TransactionID string `json:"transaction_id" validate:"required,uuid4"`
	WorkflowType  string `json:"workflow_type"  validate:"required"`
	StepName      string `json:"step_name"      validate:"required,max=100"`
	StepOrder     int    `json:"step_order"     validate:"required,min=1"`
	CreatedBy     string `json:"created_by"     validate:"required"`
}

// InitializeWorkflowRequest represents the request body for seeding a
// canonical workflow.
type InitializeWorkflowRequest struct {
	CreatedBy string `json:"created_by" validate:"required"`
}

// UpdateStepRequest represents the request body for a partial step update.
type UpdateStepRequest struct {
	StepName    *string `json:"step_name,omitempty"    validate:"omitempty,min=1,max=100"`
	IsCompleted *bool   `json:"is_completed,omitempty"`
	CompletedBy *string `json:"completed_by,omitempty"`
}

// CompleteStepRequest represents the optional request body for completing a
// step.
type CompleteStepRequest struct {
	CompletedBy *string `json:"completed_by,omitempty"`
}

// ResetWorkflowRequest represents the request body for resetting a workflow.
type ResetWorkflowRequest struct {
	WorkflowType string `json:"workflow_type" validate:"required"`
}

// CreateTransactionRequest represents the request body for opening a ledger
// entry.
type CreateTransactionRequest struct {
	CustomerID      string  `json:"customer_id"      validate:"required,uuid4"`
	BikeID          *string `json:"bike_id,omitempty" validate:"omitempty,uuid4"`
	TransactionType string  `json:"transaction_type" validate:"required"`
	Description     string  `json:"description"`
	TotalCost       float64 `json:"total_cost"       validate:"min=0"`
	IsUrgent        bool    `json:"is_urgent"`
}

// UpdateTransactionRequest represents a partial transaction update.
type UpdateTransactionRequest struct {
	Description *string  `json:"description,omitempty"`
	TotalCost   *float64 `json:"total_cost,omitempty"  validate:"omitempty,min=0"`
	BikeID      *string  `json:"bike_id,omitempty"     validate:"omitempty,uuid4"`
	IsCompleted *bool    `json:"is_completed,omitempty"`
	IsPaid      *bool    `json:"is_paid,omitempty"`
	IsUrgent    *bool    `json:"is_urgent,omitempty"`
}

// CustomerRequest represents the request body for creating or updating a
// customer.
type CustomerRequest struct {
	FirstName string `json:"first_name" validate:"required"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"      validate:"required,email"`
}

// BikeRequest represents the request body for creating or updating a bike.
type BikeRequest struct {
	Make        string  `json:"make"        validate:"required"`
	Model       string  `json:"model"       validate:"required"`
	Description string  `json:"description"`
	BikeType    string  `json:"bike_type"`
	SizeCm      float64 `json:"size_cm"     validate:"min=0"`
	Condition   string  `json:"condition"`
	Price       float64 `json:"price"       validate:"min=0"`
}

// ItemRequest represents the request body for creating or updating an
// inventory item.
type ItemRequest struct {
	UPC           string  `json:"upc"            validate:"required"`
	Name          string  `json:"name"           validate:"required"`
	Brand         string  `json:"brand"`
	Category      string  `json:"category"`
	StandardPrice float64 `json:"standard_price" validate:"min=0"`
	WholesaleCost float64 `json:"wholesale_cost" validate:"min=0"`
	Stock         int     `json:"stock"          validate:"min=0"`
	MinimumStock  int     `json:"minimum_stock"  validate:"min=0"`
	Managed       bool    `json:"managed"`
}

// RepairRequest represents the request body for creating or updating a
// repairs-catalog entry.
type RepairRequest struct {
	Name        string  `json:"name"        validate:"required"`
	Description string  `json:"description"`
	Price       float64 `json:"price"       validate:"min=0"`
	Disabled    bool    `json:"disabled"`
}

// OrderRequestRequest represents the request body for creating or updating a
// restock request.
type OrderRequestRequest struct {
	ItemID        string  `json:"item_id"                validate:"required,uuid4"`
	TransactionID *string `json:"transaction_id,omitempty" validate:"omitempty,uuid4"`
	Quantity      int     `json:"quantity"               validate:"required,min=1"`
	Notes         string  `json:"notes"`
	Ordered       bool    `json:"ordered"`
}

// UserRequest represents the request body for creating or updating a user.
type UserRequest struct {
	Username  string `json:"username"  validate:"required"`
	FirstName string `json:"firstname"`
	LastName  string `json:"lastname"`
	Role      string `json:"role"      validate:"required"`
}
