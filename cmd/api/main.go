package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jhoicas/cafeteria-api/internal/application/inventory"
	"github.com/jhoicas/cafeteria-api/internal/application/sales"
	infrapdf "github.com/jhoicas/cafeteria-api/internal/infrastructure/pdf"
	"github.com/jhoicas/cafeteria-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/cafeteria-api/internal/interfaces/http"
	"github.com/jhoicas/cafeteria-api/pkg/config"
	"github.com/jhoicas/cafeteria-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	productRepo := postgres.NewProductRepository(pool)
	itemRepo := postgres.NewInventoryItemRepository(pool)
	recipeRepo := postgres.NewRecipeRepository(pool)
	salesRepo := postgres.NewSalesRepository(pool)
	alertRepo := postgres.NewAlertRepository(pool)
	batchRepo := postgres.NewBatchRepository(pool)
	supplierRepo := postgres.NewSupplierRepository(pool)
	poRepo := postgres.NewPurchaseOrderRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// Ventas: registro con descuento de recetas, consulta y resolución de recetas
	ledger := inventory.NewStockLedgerUseCase(txRunner)
	recordSaleUC := sales.NewRecordSaleUseCase(txRunner, productRepo, recipeRepo, ledger, log.Component("record_sale"))
	saleQueryUC := sales.NewSaleQueryUseCase(salesRepo)
	recipeResolver := sales.NewRecipeResolver(productRepo, recipeRepo)

	// Monitoreo: alertas deduplicadas, escaneos de stock y vencimientos
	dedupeWindow := time.Duration(cfg.Inventory.AlertDedupeHours) * time.Hour
	alertUC := inventory.NewAlertUseCase(txRunner, alertRepo, dedupeWindow)
	monitorUC := inventory.NewStockMonitorUseCase(itemRepo, batchRepo, alertUC, cfg.Inventory.ExpiryScanDays, log.Component("monitor"))
	itemsUC := inventory.NewItemsUseCase(itemRepo, batchRepo)

	// Reposición: pronóstico de reorden y órdenes de compra con PDF
	reorderUC := inventory.NewReorderUseCase(itemRepo, salesRepo)
	poUC := inventory.NewPurchaseOrderUseCase(txRunner, supplierRepo, poRepo)
	poPDFGenerator := infrapdf.NewMarotoPOGenerator(cfg.App.BusinessName)
	poPDFUC := inventory.NewPurchaseOrderPDFUseCase(poRepo, supplierRepo, itemRepo, poPDFGenerator)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Cafetería API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		RecordSale:    recordSaleUC,
		SaleQuery:     saleQueryUC,
		Recipes:       recipeResolver,
		Items:         itemsUC,
		Monitor:       monitorUC,
		Alerts:        alertUC,
		Reorder:       reorderUC,
		PurchaseOrder: poUC,
		PurchasePDF:   poPDFUC,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
