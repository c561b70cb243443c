package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stock-ledger/internal/application/audit"
	"github.com/jhoicas/stock-ledger/internal/application/billing"
	"github.com/jhoicas/stock-ledger/internal/application/inventory"
	"github.com/jhoicas/stock-ledger/pkg/jwt"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	StockUC    *inventory.StockLedgerUseCase
	SalesUC    *billing.SalesLedgerUseCase
	CustomerUC *billing.CustomerUseCase
	AuditUC    *audit.UseCase
	// JWTSecret vacío desactiva la autenticación (uso local de un solo operador).
	JWTSecret string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	// Sin secret no hay tokens: todas las rutas quedan abiertas.
	guard := []fiber.Handler{}
	write := noop
	adminOnly := noop
	if deps.JWTSecret != "" {
		guard = append(guard, AuthMiddleware(deps.JWTSecret))
		write = RequireRole(jwt.RoleAdmin, jwt.RoleVendedor)
		adminOnly = RequireRole(jwt.RoleAdmin)
	}
	api := app.Group("/api", guard...)

	// Materiales y stock
	materialHandler := NewMaterialHandler(deps.StockUC)
	materials := api.Group("/materials")
	materials.Get("/", materialHandler.List)
	materials.Post("/", write, materialHandler.Register)
	materials.Get("/:id", materialHandler.GetByID)
	materials.Delete("/:id", adminOnly, materialHandler.Delete)
	materials.Post("/:id/stock", write, materialHandler.AdjustStock)

	// Rollos
	rolls := api.Group("/rolls")
	rolls.Post("/", write, materialHandler.AddRolls)
	rolls.Put("/:id", write, materialHandler.UpdateRoll)
	rolls.Delete("/:id", write, materialHandler.DeleteRoll)

	// Clientes
	customers := api.Group("/customers")
	customerHandler := NewCustomerHandler(deps.CustomerUC)
	customers.Get("/", customerHandler.List)
	customers.Post("/", write, customerHandler.Create)
	customers.Get("/:id", customerHandler.GetByID)
	customers.Put("/:id", write, customerHandler.Update)
	customers.Delete("/:id", adminOnly, customerHandler.Delete)

	// Ventas
	sales := api.Group("/sales")
	saleHandler := NewSaleHandler(deps.SalesUC)
	sales.Get("/", saleHandler.List)
	sales.Post("/", write, saleHandler.Record)
	sales.Get("/:id", saleHandler.GetByID)
	sales.Put("/:id", write, saleHandler.Update)
	sales.Delete("/:id", write, saleHandler.Delete)

	// Bitácora (solo lectura)
	activityHandler := NewActivityHandler(deps.AuditUC)
	api.Get("/logs", activityHandler.List)
}

func noop(c *fiber.Ctx) error {
	return c.Next()
}
