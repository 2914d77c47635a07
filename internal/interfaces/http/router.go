package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/stock-api/internal/application/auth"
	"github.com/tu-usuario/stock-api/internal/application/order"
	"github.com/tu-usuario/stock-api/internal/application/stock"
	"github.com/tu-usuario/stock-api/internal/application/usecase"
	"github.com/tu-usuario/stock-api/internal/domain/entity"
	"github.com/tu-usuario/stock-api/internal/infrastructure/currency"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	OrderUC    *order.UseCase
	Ledger     *stock.Ledger
	ProductUC  *usecase.ProductUseCase
	SupplierUC *usecase.SupplierUseCase
	UserUC     *usecase.UserUseCase
	AuthUC     *auth.UseCase
	Currency   *currency.Client
	JWTSecret  string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Orders (protegido; la creación y el cambio de estado requieren gestor)
	orders := protected.Group("/orders")
	orderHandler := NewOrderHandler(deps.OrderUC)
	orders.Post("/", RequireRole(entity.RoleAdmin, entity.RoleManager), orderHandler.Create)
	orders.Get("/", orderHandler.List)
	orders.Get("/:id", orderHandler.GetByID)
	orders.Put("/:id/state", RequireRole(entity.RoleAdmin, entity.RoleManager), orderHandler.UpdateState)

	// Stock movements (protegido)
	movements := protected.Group("/movements")
	movementHandler := NewMovementHandler(deps.Ledger)
	movements.Post("/", movementHandler.Record)
	movements.Get("/", movementHandler.List)
	movements.Get("/product/:productId", movementHandler.ListByProduct)
	movements.Get("/user/:userId", movementHandler.ListByUser)

	// Stock queries (protegido)
	stockGroup := protected.Group("/stock")
	stockGroup.Get("/:productId/balance", movementHandler.GetBalance)
	stockGroup.Get("/:productId/availability", movementHandler.CheckAvailability)

	// Products (protegido)
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)
	products.Delete("/:id", productHandler.Delete)

	// Suppliers (protegido)
	suppliers := protected.Group("/suppliers")
	supplierHandler := NewSupplierHandler(deps.SupplierUC)
	suppliers.Post("/", supplierHandler.Create)
	suppliers.Get("/", supplierHandler.List)
	suppliers.Get("/:id", supplierHandler.GetByID)
	suppliers.Put("/:id", supplierHandler.Update)
	suppliers.Delete("/:id", supplierHandler.Delete)

	// Users (protegido, solo admin)
	users := protected.Group("/users", RequireRole(entity.RoleAdmin))
	userHandler := NewUserHandler(deps.UserUC)
	users.Get("/", userHandler.List)
	users.Get("/:id", userHandler.GetByID)

	// Currency (protegido)
	currencyGroup := protected.Group("/currency")
	currencyHandler := NewCurrencyHandler(deps.Currency)
	currencyGroup.Get("/:code", currencyHandler.GetRate)
}
