// Package main provides the Gearbox API server implementation.
package main

import (
	"log/slog"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/cors"
	"github.com/gofiber/fiber/v3/middleware/healthcheck"
	"github.com/gofiber/fiber/v3/middleware/logger"

	"github.com/campuscycles/gearbox/pkg/eventbus"
	"github.com/campuscycles/gearbox/pkg/persistence"
	"github.com/campuscycles/gearbox/pkg/services"
	"github.com/campuscycles/gearbox/pkg/web"
)

type API struct {
	logger      *slog.Logger
	persistence persistence.Persistence
	eventBus    eventbus.EventBus
	validate    *validator.Validate
}

func NewAPI(
	logger *slog.Logger,
	persistence persistence.Persistence,
	eventBus eventbus.EventBus,
) *API {
	return &API{
		logger:      logger,
		persistence: persistence,
		eventBus:    eventBus,
		validate:    validator.New(validator.WithRequiredStructEnabled()),
	}
}

func (a *API) App() *fiber.App {
	handlers := web.NewAPIHandlers(
		a.persistence,
		a.eventBus,
		services.DefaultSummaryConfig(),
		a.validate,
		a.logger,
	)

	app := fiber.New()
	app.Use(cors.New())
	app.Use(logger.New(logger.Config{
		DisableColors: true,
	}))

	app.Get(healthcheck.DefaultLivenessEndpoint, healthcheck.NewHealthChecker())
	app.Get(healthcheck.DefaultReadinessEndpoint, healthcheck.NewHealthChecker())

	app.Get("/", func(c fiber.Ctx) error {
		return c.SendString("Gearbox API")
	})

	w := app.Group("/workflow-steps")
	w.Get("/", handlers.GetWorkflowSteps)
	w.Post("/", handlers.CreateWorkflowStep)
	w.Get("/transaction/:transactionId/:workflowType", handlers.GetStepsByTransactionAndType)
	w.Get("/progress/:transactionId/:workflowType", handlers.GetWorkflowProgress)
	w.Post("/initialize/bike-sales/:transactionId", handlers.InitializeBikeSalesWorkflow)
	w.Post("/complete/:id", handlers.CompleteWorkflowStep)
	w.Post("/uncomplete/:id", handlers.UncompleteWorkflowStep)
	w.Post("/reset/:transactionId", handlers.ResetWorkflow)
	w.Get("/:id", handlers.GetWorkflowStep)
	w.Put("/:id", handlers.UpdateWorkflowStep)
	w.Delete("/:id", handlers.DeleteWorkflowStep)

	app.Get("/summary/transactions", handlers.GetTransactionsSummary)

	t := app.Group("/transactions")
	t.Get("/", handlers.GetTransactions)
	t.Post("/", handlers.CreateTransaction)
	t.Get("/:id", handlers.GetTransaction)
	t.Put("/:id", handlers.UpdateTransaction)
	t.Delete("/:id", handlers.DeleteTransaction)

	cu := app.Group("/customers")
	cu.Get("/", handlers.GetCustomers)
	cu.Post("/", handlers.CreateCustomer)
	cu.Get("/:id", handlers.GetCustomer)
	cu.Put("/:id", handlers.UpdateCustomer)
	cu.Delete("/:id", handlers.DeleteCustomer)

	b := app.Group("/bikes")
	b.Get("/", handlers.GetBikes)
	b.Post("/", handlers.CreateBike)
	b.Get("/:id", handlers.GetBike)
	b.Put("/:id", handlers.UpdateBike)
	b.Delete("/:id", handlers.DeleteBike)

	i := app.Group("/items")
	i.Get("/", handlers.GetItems)
	i.Post("/", handlers.CreateItem)
	i.Get("/upc/:upc", handlers.GetItemByUPC)
	i.Get("/:id", handlers.GetItem)
	i.Put("/:id", handlers.UpdateItem)
	i.Delete("/:id", handlers.DeleteItem)

	r := app.Group("/repairs")
	r.Get("/", handlers.GetRepairs)
	r.Post("/", handlers.CreateRepair)
	r.Get("/:id", handlers.GetRepair)
	r.Put("/:id", handlers.UpdateRepair)
	r.Delete("/:id", handlers.DeleteRepair)

	o := app.Group("/order-requests")
	o.Get("/", handlers.GetOrderRequests)
	o.Post("/", handlers.CreateOrderRequest)
	o.Get("/:id", handlers.GetOrderRequest)
	o.Put("/:id", handlers.UpdateOrderRequest)
	o.Delete("/:id", handlers.DeleteOrderRequest)

	u := app.Group("/users")
	u.Get("/", handlers.GetUsers)
	u.Post("/", handlers.CreateUser)
	u.Get("/:id", handlers.GetUser)
	u.Put("/:id", handlers.UpdateUser)
	u.Delete("/:id", handlers.DeleteUser)

	app.Get("/health", handlers.HealthCheck)

	return app
}

func (a *API) Start(port int) error {
	app := a.App()

	return app.Listen(":" + strconv.Itoa(port))
}
