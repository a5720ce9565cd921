package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/cafeteria-api/internal/application/inventory"
	"github.com/jhoicas/cafeteria-api/internal/application/sales"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	RecordSale    *sales.RecordSaleUseCase
	SaleQuery     *sales.SaleQueryUseCase
	Recipes       *sales.RecipeResolver
	Items         *inventory.ItemsUseCase
	Monitor       *inventory.StockMonitorUseCase
	Alerts        *inventory.AlertUseCase
	Reorder       *inventory.ReorderUseCase
	PurchaseOrder *inventory.PurchaseOrderUseCase
	PurchasePDF   *inventory.PurchaseOrderPDFUseCase
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Ventas
	salesHandler := NewSalesHandler(deps.RecordSale, deps.SaleQuery, deps.Recipes)
	salesGroup := api.Group("/sales")
	salesGroup.Post("/", salesHandler.RecordSale)
	salesGroup.Get("/:id", salesHandler.GetByID)
	api.Get("/products/:id/recipe", salesHandler.GetRecipe)

	// Inventario: materias primas, lotes y escaneos del monitor
	inventoryHandler := NewInventoryHandler(deps.Items, deps.Monitor)
	invGroup := api.Group("/inventory")
	invGroup.Get("/items", inventoryHandler.ListItems)
	invGroup.Get("/items/:id", inventoryHandler.GetItem)
	invGroup.Post("/batches", inventoryHandler.CreateBatch)
	invGroup.Post("/scan/low-stock", inventoryHandler.ScanLowStock)
	invGroup.Post("/scan/expiring", inventoryHandler.ScanExpiring)

	// Alertas
	alertHandler := NewAlertHandler(deps.Alerts)
	alertsGroup := api.Group("/alerts")
	alertsGroup.Get("/", alertHandler.ListUnresolved)
	alertsGroup.Post("/:id/resolve", alertHandler.Resolve)

	// Reposición: sugerencias y órdenes de compra
	purchaseHandler := NewPurchaseHandler(deps.Reorder, deps.PurchaseOrder, deps.PurchasePDF)
	api.Get("/reorder/suggestions", purchaseHandler.GetSuggestions)
	poGroup := api.Group("/purchase-orders")
	poGroup.Post("/", purchaseHandler.Create)
	poGroup.Get("/:id", purchaseHandler.GetByID)
	poGroup.Get("/:id/pdf", purchaseHandler.GetPDF)
}
