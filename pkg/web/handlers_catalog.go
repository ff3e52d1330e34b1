package web

import (
	"github.com/gofiber/fiber/v3"

	"github.com/campuscycles/gearbox/pkg/models"
	"github.com/campuscycles/gearbox/pkg/persistence"
	"github.com/campuscycles/gearbox/pkg/services"
)

func (h *APIHandlers) GetTransactions(c fiber.Ctx) error {
	filter := persistence.TransactionFilter{CustomerID: c.Query("customer_id")}

	if typeStr := c.Query("transaction_type"); typeStr != "" {
		transactionType := models.TransactionType(typeStr)
		filter.TransactionType = &transactionType
	}

	transactions, err := h.transactions.List(c.Context(), filter)
	if err != nil {
		return h.handleServiceError(c, err, "Failed to retrieve transactions")
	}

	return ok(c, "Transactions retrieved successfully", transactions)
}

func (h *APIHandlers) GetTransaction(c fiber.Ctx) error {
	id := c.Params("id")
	if !isUUID(id) {
		return badRequest(c, "Invalid transaction ID format")
	}

	transaction, err := h.transactions.FetchByID(c.Context(), id)
	if err != nil {
		return h.handleServiceError(c, err, "Failed to retrieve transaction")
	}

	return ok(c, "Transaction retrieved successfully", transaction)
}

func (h *APIHandlers) CreateTransaction(c fiber.Ctx) error {
	var req CreateTransactionRequest
	if err := c.Bind().JSON(&req); err != nil {
		return badRequest(c, "Invalid JSON format")
	}

	if err := h.validator.Struct(req); err != nil {
		return badRequest(c, err.Error())
	}

	transaction := &models.Transaction{
		CustomerID:      req.CustomerID,
		BikeID:          req.BikeID,
		TransactionType: models.TransactionType(req.TransactionType),
		Description:     req.Description,
		TotalCost:       req.TotalCost,
		IsUrgent:        req.IsUrgent,
	}

	createdTransaction, err := h.transactions.Create(c.Context(), transaction)
	if err != nil {
		return h.handleServiceError(c, err, "Failed to create transaction")
	}

	return created(c, "Transaction created successfully", createdTransaction)
}

func (h *APIHandlers) UpdateTransaction(c fiber.Ctx) error {
	id := c.Params("id")
	if !isUUID(id) {
		return badRequest(c, "Invalid transaction ID format")
	}

	var req UpdateTransactionRequest
	if err := c.Bind().JSON(&req); err != nil {
		return badRequest(c, "Invalid JSON format")
	}

	if err := h.validator.Struct(req); err != nil {
		return badRequest(c, err.Error())
	}

	transaction, err := h.transactions.Update(c.Context(), id, services.UpdateTransactionParams{
		Description: req.Description,
		TotalCost:   req.TotalCost,
		BikeID:      req.BikeID,
		IsCompleted: req.IsCompleted,
		IsPaid:      req.IsPaid,
		IsUrgent:    req.IsUrgent,
	})
	if err != nil {
		return h.handleServiceError(c, err, "Failed to update transaction")
	}

	return ok(c, "Transaction updated successfully", transaction)
}

func (h *APIHandlers) DeleteTransaction(c fiber.Ctx) error {
	id := c.Params("id")
	if !isUUID(id) {
		return badRequest(c, "Invalid transaction ID format")
	}

	if err := h.transactions.Delete(c.Context(), id); err != nil {
		return h.handleServiceError(c, err, "Failed to delete transaction")
	}

	return ok(c, "Transaction deleted successfully", nil)
}

func (h *APIHandlers) GetCustomers(c fiber.Ctx) error {
	customers, err := h.customers.List(c.Context())
	if err != nil {
		return h.handleServiceError(c, err, "Failed to retrieve customers")
	}

	return ok(c, "Customers retrieved successfully", customers)
}

func (h *APIHandlers) GetCustomer(c fiber.Ctx) error {
	id := c.Params("id")
	if !isUUID(id) {
		return badRequest(c, "Invalid customer ID format")
	}

	customer, err := h.customers.FetchByID(c.Context(), id)
	if err != nil {
		return h.handleServiceError(c, err, "Failed to retrieve customer")
	}

	return ok(c, "Customer retrieved successfully", customer)
}

func (h *APIHandlers) CreateCustomer(c fiber.Ctx) error {
	var req CustomerRequest
	if err := c.Bind().JSON(&req); err != nil {
		return badRequest(c, "Invalid JSON format")
	}

	if err := h.validator.Struct(req); err != nil {
		return badRequest(c, err.Error())
	}

	customer, err := h.customers.Create(c.Context(), &models.Customer{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
	})
	if err != nil {
		return h.handleServiceError(c, err, "Failed to create customer")
	}

	return created(c, "Customer created successfully", customer)
}

func (h *APIHandlers) UpdateCustomer(c fiber.Ctx) error {
	id := c.Params("id")
	if !isUUID(id) {
		return badRequest(c, "Invalid customer ID format")
	}

	var req CustomerRequest
	if err := c.Bind().JSON(&req); err != nil {
		return badRequest(c, "Invalid JSON format")
	}

	if err := h.validator.Struct(req); err != nil {
		return badRequest(c, err.Error())
	}

	customer, err := h.customers.Update(c.Context(), &models.Customer{
		ID:        id,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
	})
	if err != nil {
		return h.handleServiceError(c, err, "Failed to update customer")
	}

	return ok(c, "Customer updated successfully", customer)
}

func (h *APIHandlers) DeleteCustomer(c fiber.Ctx) error {
	id := c.Params("id")
	if !isUUID(id) {
		return badRequest(c, "Invalid customer ID format")
	}

	if err := h.customers.Delete(c.Context(), id); err != nil {
		return h.handleServiceError(c, err, "Failed to delete customer")
	}

	return ok(c, "Customer deleted successfully", nil)
}

func (h *APIHandlers) GetBikes(c fiber.Ctx) error {
	bikes, err := h.bikes.List(c.Context())
	if err != nil {
		return h.handleServiceError(c, err, "Failed to retrieve bikes")
	}

	return ok(c, "Bikes retrieved successfully", bikes)
}

func (h *APIHandlers) GetBike(c fiber.Ctx) error {
	id := c.Params("id")
	if !isUUID(id) {
		return badRequest(c, "Invalid bike ID format")
	}

	bike, err := h.bikes.FetchByID(c.Context(), id)
	if err != nil {
		return h.handleServiceError(c, err, "Failed to retrieve bike")
	}

	return ok(c, "Bike retrieved successfully", bike)
}

func (h *APIHandlers) CreateBike(c fiber.Ctx) error {
	var req BikeRequest
	if err := c.Bind().JSON(&req); err != nil {
		return badRequest(c, "Invalid JSON format")
	}

	if err := h.validator.Struct(req); err != nil {
		return badRequest(c, err.Error())
	}

	bike, err := h.bikes.Create(c.Context(), &models.Bike{
		Make:        req.Make,
		Model:       req.Model,
		Description: req.Description,
		BikeType:    req.BikeType,
		SizeCm:      req.SizeCm,
		Condition:   req.Condition,
		Price:       req.Price,
	})
	if err != nil {
		return h.handleServiceError(c, err, "Failed to create bike")
	}

	return created(c, "Bike created successfully", bike)
}

func (h *APIHandlers) UpdateBike(c fiber.Ctx) error {
	id := c.Params("id")
	if !isUUID(id) {
		return badRequest(c, "Invalid bike ID format")
	}

	var req BikeRequest
	if err := c.Bind().JSON(&req); err != nil {
		return badRequest(c, "Invalid JSON format")
	}

	if err := h.validator.Struct(req); err != nil {
		return badRequest(c, err.Error())
	}

	bike, err := h.bikes.Update(c.Context(), &models.Bike{
		ID:          id,
		Make:        req.Make,
		Model:       req.Model,
		Description: req.Description,
		BikeType:    req.BikeType,
		SizeCm:      req.SizeCm,
		Condition:   req.Condition,
		Price:       req.Price,
	})
	if err != nil {
		return h.handleServiceError(c, err, "Failed to update bike")
	}

	return ok(c, "Bike updated successfully", bike)
}

func (h *APIHandlers) DeleteBike(c fiber.Ctx) error {
	id := c.Params("id")
	if !isUUID(id) {
		return badRequest(c, "Invalid bike ID format")
	}

	if err := h.bikes.Delete(c.Context(), id); err != nil {
		return h.handleServiceError(c, err, "Failed to delete bike")
	}

	return ok(c, "Bike deleted successfully", nil)
}

func (h *APIHandlers) GetItems(c fiber.Ctx) error {
	items, err := h.items.List(c.Context())
	if err != nil {
		return h.handleServiceError(c, err, "Failed to retrieve items")
	}

	return ok(c, "Items retrieved successfully", items)
}

func (h *APIHandlers) GetItem(c fiber.Ctx) error {
	id := c.Params("id")
	if !isUUID(id) {
		return badRequest(c, "Invalid item ID format")
	}

	item, err := h.items.FetchByID(c.Context(), id)
	if err != nil {
		return h.handleServiceError(c, err, "Failed to retrieve item")
	}

	return ok(c, "Item retrieved successfully", item)
}

func (h *APIHandlers) GetItemByUPC(c fiber.Ctx) error {
	item, err := h.items.FetchByUPC(c.Context(), c.Params("upc"))
	if err != nil {
		return h.handleServiceError(c, err, "Failed to retrieve item")
	}

	return ok(c, "Item retrieved successfully", item)
}

func (h *APIHandlers) CreateItem(c fiber.Ctx) error {
	var req ItemRequest
	if err := c.Bind().JSON(&req); err != nil {
		return badRequest(c, "Invalid JSON format")
	}

	if err := h.validator.Struct(req); err != nil {
		return badRequest(c, err.Error())
	}

	item, err := h.items.Create(c.Context(), itemFromRequest("", req))
	if err != nil {
		return h.handleServiceError(c, err, "Failed to create item")
	}

	return created(c, "Item created successfully", item)
}

func (h *APIHandlers) UpdateItem(c fiber.Ctx) error {
	id := c.Params("id")
	if !isUUID(id) {
		return badRequest(c, "Invalid item ID format")
	}

	var req ItemRequest
	if err := c.Bind().JSON(&req); err != nil {
		return badRequest(c, "Invalid JSON format")
	}

	if err := h.validator.Struct(req); err != nil {
		return badRequest(c, err.Error())
	}

	item, err := h.items.Update(c.Context(), itemFromRequest(id, req))
	if err != nil {
		return h.handleServiceError(c, err, "Failed to update item")
	}

	return ok(c, "Item updated successfully", item)
}

func itemFromRequest(id string, req ItemRequest) *models.Item {
	return &models.Item{
		ID:            id,
		UPC:           req.UPC,
		Name:          req.Name,
		Brand:         req.Brand,
		Category:      req.Category,
		StandardPrice: req.StandardPrice,
		WholesaleCost: req.WholesaleCost,
		Stock:         req.Stock,
		MinimumStock:  req.MinimumStock,
		Managed:       req.Managed,
	}
}

func (h *APIHandlers) DeleteItem(c fiber.Ctx) error {
	id := c.Params("id")
	if !isUUID(id) {
		return badRequest(c, "Invalid item ID format")
	}

	if err := h.items.Delete(c.Context(), id); err != nil {
		return h.handleServiceError(c, err, "Failed to delete item")
	}

	return ok(c, "Item deleted successfully", nil)
}

func (h *APIHandlers) GetRepairs(c fiber.Ctx) error {
	repairs, err := h.repairs.List(c.Context())
	if err != nil {
		return h.handleServiceError(c, err, "Failed to retrieve repairs")
	}

	return ok(c, "Repairs retrieved successfully", repairs)
}

func (h *APIHandlers) GetRepair(c fiber.Ctx) error {
	id := c.Params("id")
	if !isUUID(id) {
		return badRequest(c, "Invalid repair ID format")
	}

	repair, err := h.repairs.FetchByID(c.Context(), id)
	if err != nil {
		return h.handleServiceError(c, err, "Failed to retrieve repair")
	}

	return ok(c, "Repair retrieved successfully", repair)
}

func (h *APIHandlers) CreateRepair(c fiber.Ctx) error {
	var req RepairRequest
	if err := c.Bind().JSON(&req); err != nil {
		return badRequest(c, "Invalid JSON format")
	}

	if err := h.validator.Struct(req); err != nil {
		return badRequest(c, err.Error())
	}

	repair, err := h.repairs.Create(c.Context(), &models.Repair{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Disabled:    req.Disabled,
	})
	if err != nil {
		return h.handleServiceError(c, err, "Failed to create repair")
	}

	return created(c, "Repair created successfully", repair)
}

func (h *APIHandlers) UpdateRepair(c fiber.Ctx) error {
	id := c.Params("id")
	if !isUUID(id) {
		return badRequest(c, "Invalid repair ID format")
	}

	var req RepairRequest
	if err := c.Bind().JSON(&req); err != nil {
		return badRequest(c, "Invalid JSON format")
	}

	if err := h.validator.Struct(req); err != nil {
		return badRequest(c, err.Error())
	}

	repair, err := h.repairs.Update(c.Context(), &models.Repair{
		ID:          id,
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Disabled:    req.Disabled,
	})
	if err != nil {
		return h.handleServiceError(c, err, "Failed to update repair")
	}

	return ok(c, "Repair updated successfully", repair)
}

func (h *APIHandlers) DeleteRepair(c fiber.Ctx) error {
	id := c.Params("id")
	if !isUUID(id) {
		return badRequest(c, "Invalid repair ID format")
	}

	if err := h.repairs.Delete(c.Context(), id); err != nil {
		return h.handleServiceError(c, err, "Failed to delete repair")
	}

	return ok(c, "Repair deleted successfully", nil)
}

func (h *APIHandlers) GetOrderRequests(c fiber.Ctx) error {
	requests, err := h.orderRequests.List(c.Context())
	if err != nil {
		return h.handleServiceError(c, err, "Failed to retrieve order requests")
	}

	return ok(c, "Order requests retrieved successfully", requests)
}

func (h *APIHandlers) GetOrderRequest(c fiber.Ctx) error {
	id := c.Params("id")
	if !isUUID(id) {
		return badRequest(c, "Invalid order request ID format")
	}

	request, err := h.orderRequests.FetchByID(c.Context(), id)
	if err != nil {
		return h.handleServiceError(c, err, "Failed to retrieve order request")
	}

	return ok(c, "Order request retrieved successfully", request)
}

func (h *APIHandlers) CreateOrderRequest(c fiber.Ctx) error {
	var req OrderRequestRequest
	if err := c.Bind().JSON(&req); err != nil {
		return badRequest(c, "Invalid JSON format")
	}

	if err := h.validator.Struct(req); err != nil {
		return badRequest(c, err.Error())
	}

	request, err := h.orderRequests.Create(c.Context(), &models.OrderRequest{
		ItemID:        req.ItemID,
		TransactionID: req.TransactionID,
		Quantity:      req.Quantity,
		Notes:         req.Notes,
	})
	if err != nil {
		return h.handleServiceError(c, err, "Failed to create order request")
	}

	return created(c, "Order request created successfully", request)
}

func (h *APIHandlers) UpdateOrderRequest(c fiber.Ctx) error {
	id := c.Params("id")
	if !isUUID(id) {
		return badRequest(c, "Invalid order request ID format")
	}

	var req OrderRequestRequest
	if err := c.Bind().JSON(&req); err != nil {
		return badRequest(c, "Invalid JSON format")
	}

	if err := h.validator.Struct(req); err != nil {
		return badRequest(c, err.Error())
	}

	request, err := h.orderRequests.Update(c.Context(), &models.OrderRequest{
		ID:            id,
		ItemID:        req.ItemID,
		TransactionID: req.TransactionID,
		Quantity:      req.Quantity,
		Notes:         req.Notes,
		Ordered:       req.Ordered,
	})
	if err != nil {
		return h.handleServiceError(c, err, "Failed to update order request")
	}

	return ok(c, "Order request updated successfully", request)
}

func (h *APIHandlers) DeleteOrderRequest(c fiber.Ctx) error {
	id := c.Params("id")
	if !isUUID(id) {
		return badRequest(c, "Invalid order request ID format")
	}

	if err := h.orderRequests.Delete(c.Context(), id); err != nil {
		return h.handleServiceError(c, err, "Failed to delete order request")
	}

	return ok(c, "Order request deleted successfully", nil)
}

func (h *APIHandlers) GetUsers(c fiber.Ctx) error {
	users, err := h.users.List(c.Context())
	if err != nil {
		return h.handleServiceError(c, err, "Failed to retrieve users")
	}

	return ok(c, "Users retrieved successfully", users)
}

func (h *APIHandlers) GetUser(c fiber.Ctx) error {
	id := c.Params("id")
	if !isUUID(id) {
		return badRequest(c, "Invalid user ID format")
	}

	user, err := h.users.FetchByID(c.Context(), id)
	if err != nil {
		return h.handleServiceError(c, err, "Failed to retrieve user")
	}

	return ok(c, "User retrieved successfully", user)
}

func (h *APIHandlers) CreateUser(c fiber.Ctx) error {
	var req UserRequest
	if err := c.Bind().JSON(&req); err != nil {
		return badRequest(c, "Invalid JSON format")
	}

	if err := h.validator.Struct(req); err != nil {
		return badRequest(c, err.Error())
	}

	user, err := h.users.Create(c.Context(), &models.User{
		Username:  req.Username,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Role:      models.UserRole(req.Role),
	})
	if err != nil {
		return h.handleServiceError(c, err, "Failed to create user")
	}

	return created(c, "User created successfully", user)
}

func (h *APIHandlers) UpdateUser(c fiber.Ctx) error {
	id := c.Params("id")
	if !isUUID(id) {
		return badRequest(c, "Invalid user ID format")
	}

	var req UserRequest
	if err := c.Bind().JSON(&req); err != nil {
		return badRequest(c, "Invalid JSON format")
	}

	if err := h.validator.Struct(req); err != nil {
		return badRequest(c, err.Error())
	}

	user, err := h.users.Update(c.Context(), &models.User{
		ID:        id,
		Username:  req.Username,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Role:      models.UserRole(req.Role),
	})
	if err != nil {
		return h.handleServiceError(c, err, "Failed to update user")
	}

	return ok(c, "User updated successfully", user)
}

func (h *APIHandlers) DeleteUser(c fiber.Ctx) error {
	id := c.Params("id")
	if !isUUID(id) {
		return badRequest(c, "Invalid user ID format")
	}

	if err := h.users.Delete(c.Context(), id); err != nil {
		return h.handleServiceError(c, err, "Failed to delete user")
	}

	return ok(c, "User deleted successfully", nil)
}
