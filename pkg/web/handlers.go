// Package web provides HTTP handlers and REST API endpoints for the bike
// shop backend.
package web

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"

	"github.com/campuscycles/gearbox/pkg/eventbus"
	"github.com/campuscycles/gearbox/pkg/models"
	"github.com/campuscycles/gearbox/pkg/persistence"
	"github.com/campuscycles/gearbox/pkg/services"
)

type APIHandlers struct {
	persistence   persistence.Persistence
	steps         *services.WorkflowSteps
	transactions  *services.Transactions
	customers     *services.Customers
	bikes         *services.Bikes
	items         *services.Items
	repairs       *services.Repairs
	orderRequests *services.OrderRequests
	users         *services.Users
	validator     *validator.Validate
	logger        *slog.Logger
}

func NewAPIHandlers(
	p persistence.Persistence,
	publisher eventbus.EventPublisher,
	summaryConfig services.SummaryConfig,
	validate *validator.Validate,
	logger *slog.Logger,
) *APIHandlers {
	return &APIHandlers{
		persistence:   p,
		steps:         services.NewWorkflowSteps(p, publisher, logger),
		transactions:  services.NewTransactions(p, publisher, summaryConfig, logger),
		customers:     services.NewCustomers(p, logger),
		bikes:         services.NewBikes(p, logger),
		items:         services.NewItems(p, logger),
		repairs:       services.NewRepairs(p, logger),
		orderRequests: services.NewOrderRequests(p, logger),
		users:         services.NewUsers(p, logger),
		validator:     validate,
		logger:        logger.With("module", "web"),
	}
}

func (h *APIHandlers) HealthCheck(c fiber.Ctx) error {
	status := "healthy"
	message := "Gearbox API is healthy"
	httpStatus := http.StatusOK

	if err := h.persistence.HealthCheck(c.Context()); err != nil {
		status = "unhealthy"
		message = "Gearbox API is unhealthy"
		httpStatus = http.StatusInternalServerError
	}

	return c.Status(httpStatus).JSON(fiber.Map{
		"status":    status,
		"message":   message,
		"timestamp": time.Now().UTC(),
	})
}

func (h *APIHandlers) GetWorkflowSteps(c fiber.Ctx) error {
	filter, err := parseStepFilter(c)
	if err != nil {
		return badRequest(c, "Invalid query parameters: "+err.Error())
	}

	steps, err := h.steps.List(c.Context(), *filter)
	if err != nil {
		return h.handleServiceError(c, err, "Failed to retrieve workflow steps")
	}

	return ok(c, "Workflow steps retrieved successfully", steps)
}

// parseStepFilter parses and validates query parameters for listing steps.
func parseStepFilter(c fiber.Ctx) (*persistence.StepFilter, error) {
	filter := &persistence.StepFilter{TransactionID: c.Query("transaction_id")}

	if workflowTypeStr := c.Query("workflow_type"); workflowTypeStr != "" {
		workflowType := models.WorkflowType(workflowTypeStr)
		filter.WorkflowType = &workflowType
	}

	if isCompletedStr := c.Query("is_completed"); isCompletedStr != "" {
		isCompleted, err := strconv.ParseBool(isCompletedStr)
		if err != nil {
			return nil, err
		}

		filter.IsCompleted = &isCompleted
	}

	if stepOrderStr := c.Query("step_order"); stepOrderStr != "" {
		stepOrder, err := strconv.Atoi(stepOrderStr)
		if err != nil {
			return nil, err
		}

		filter.StepOrder = &stepOrder
	}

	return filter, nil
}

func (h *APIHandlers) GetStepsByTransactionAndType(c fiber.Ctx) error {
	transactionID := c.Params("transactionId")
	if !isUUID(transactionID) {
		return badRequest(c, "Invalid transaction ID format")
	}

	workflowType := models.WorkflowType(c.Params("workflowType"))

	steps, err := h.steps.FetchByTransactionAndType(c.Context(), transactionID, workflowType)
	if err != nil {
		return h.handleServiceError(c, err, "Failed to retrieve workflow steps")
	}

	return ok(c, "Workflow steps retrieved successfully", steps)
}

func (h *APIHandlers) GetWorkflowStep(c fiber.Ctx) error {
	id := c.Params("id")
	if !isUUID(id) {
		return badRequest(c, "Invalid step ID format")
	}

	step, err := h.steps.FetchByID(c.Context(), id)
	if err != nil {
		return h.handleServiceError(c, err, "Failed to retrieve workflow step")
	}

	return ok(c, "Workflow step retrieved successfully", step)
}

func (h *APIHandlers) CreateWorkflowStep(c fiber.Ctx) error {
	var req CreateStepRequest
	if err := c.Bind().JSON(&req); err != nil {
		return badRequest(c, "Invalid JSON format")
	}

	if err := h.validator.Struct(req); err != nil {
		return badRequest(c, err.Error())
	}

	step := &models.WorkflowStep{
		TransactionID: req.TransactionID,
		WorkflowType:  models.WorkflowType(req.WorkflowType),
		StepName:      req.StepName,
		StepOrder:     req.StepOrder,
		CreatedBy:     req.CreatedBy,
	}

	createdStep, err := h.steps.Create(c.Context(), step)
	if err != nil {
		return h.handleServiceError(c, err, "Failed to create workflow step")
	}

	return created(c, "Workflow step created successfully", createdStep)
}

func (h *APIHandlers) InitializeBikeSalesWorkflow(c fiber.Ctx) error {
	transactionID := c.Params("transactionId")
	if !isUUID(transactionID) {
		return badRequest(c, "Invalid transaction ID format")
	}

	var req InitializeWorkflowRequest
	if err := c.Bind().JSON(&req); err != nil {
		return badRequest(c, "Invalid JSON format")
	}

	if err := h.validator.Struct(req); err != nil {
		return badRequest(c, err.Error())
	}

	steps, err := h.steps.Initialize(c.Context(), transactionID, models.WorkflowTypeBikeSales, req.CreatedBy)
	if err != nil {
		return h.handleServiceError(c, err, "Failed to initialize workflow")
	}

	return created(c, "Workflow initialized successfully", steps)
}

func (h *APIHandlers) UpdateWorkflowStep(c fiber.Ctx) error {
	id := c.Params("id")
	if !isUUID(id) {
		return badRequest(c, "Invalid step ID format")
	}

	var req UpdateStepRequest
	if err := c.Bind().JSON(&req); err != nil {
		return badRequest(c, "Invalid JSON format")
	}

	if err := h.validator.Struct(req); err != nil {
		return badRequest(c, err.Error())
	}

	step, err := h.steps.Update(c.Context(), id, services.UpdateStepParams{
		StepName:    req.StepName,
		IsCompleted: req.IsCompleted,
		CompletedBy: req.CompletedBy,
	})
	if err != nil {
		return h.handleServiceError(c, err, "Failed to update workflow step")
	}

	return ok(c, "Workflow step updated successfully", step)
}

func (h *APIHandlers) CompleteWorkflowStep(c fiber.Ctx) error {
	id := c.Params("id")
	if !isUUID(id) {
		return badRequest(c, "Invalid step ID format")
	}

	// Body is optional; completed_by defaults to unset.
	var req CompleteStepRequest
	if len(c.Body()) > 0 {
		if err := c.Bind().JSON(&req); err != nil {
			return badRequest(c, "Invalid JSON format")
		}
	}

	step, err := h.steps.Complete(c.Context(), id, req.CompletedBy)
	if err != nil {
		return h.handleServiceError(c, err, "Failed to complete workflow step")
	}

	return ok(c, "Workflow step completed successfully", step)
}

func (h *APIHandlers) UncompleteWorkflowStep(c fiber.Ctx) error {
	id := c.Params("id")
	if !isUUID(id) {
		return badRequest(c, "Invalid step ID format")
	}

	step, err := h.steps.Uncomplete(c.Context(), id)
	if err != nil {
		return h.handleServiceError(c, err, "Failed to uncomplete workflow step")
	}

	return ok(c, "Workflow step uncompleted successfully", step)
}

func (h *APIHandlers) ResetWorkflow(c fiber.Ctx) error {
	transactionID := c.Params("transactionId")
	if !isUUID(transactionID) {
		return badRequest(c, "Invalid transaction ID format")
	}

	var req ResetWorkflowRequest
	if err := c.Bind().JSON(&req); err != nil {
		return badRequest(c, "Invalid JSON format")
	}

	if err := h.validator.Struct(req); err != nil {
		return badRequest(c, err.Error())
	}

	steps, err := h.steps.Reset(c.Context(), transactionID, models.WorkflowType(req.WorkflowType))
	if err != nil {
		return h.handleServiceError(c, err, "Failed to reset workflow")
	}

	return ok(c, "Workflow reset successfully", steps)
}

func (h *APIHandlers) GetWorkflowProgress(c fiber.Ctx) error {
	transactionID := c.Params("transactionId")
	if !isUUID(transactionID) {
		return badRequest(c, "Invalid transaction ID format")
	}

	workflowType := models.WorkflowType(c.Params("workflowType"))

	progress, err := h.steps.Progress(c.Context(), transactionID, workflowType)
	if err != nil {
		return h.handleServiceError(c, err, "Failed to retrieve workflow progress")
	}

	return ok(c, "Workflow progress retrieved successfully", progress)
}

func (h *APIHandlers) DeleteWorkflowStep(c fiber.Ctx) error {
	id := c.Params("id")
	if !isUUID(id) {
		return badRequest(c, "Invalid step ID format")
	}

	step, err := h.steps.Delete(c.Context(), id)
	if err != nil {
		return h.handleServiceError(c, err, "Failed to delete workflow step")
	}

	return ok(c, "Workflow step deleted successfully", step)
}

func (h *APIHandlers) GetTransactionsSummary(c fiber.Ctx) error {
	summary, err := h.transactions.Summary(c.Context())
	if err != nil {
		return h.handleServiceError(c, err, "Failed to retrieve transactions summary")
	}

	return ok(c, "Transactions summary retrieved successfully", summary)
}

func isUUID(s string) bool {
	_, err := uuid.Parse(s)

	return err == nil
}
