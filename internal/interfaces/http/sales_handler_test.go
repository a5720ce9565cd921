package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/cafeteria-api/internal/application/dto"
	"github.com/jhoicas/cafeteria-api/internal/application/sales"
	"github.com/jhoicas/cafeteria-api/internal/domain"
	"github.com/jhoicas/cafeteria-api/internal/domain/entity"
	"github.com/jhoicas/cafeteria-api/internal/domain/repository"
	apphttp "github.com/jhoicas/cafeteria-api/internal/interfaces/http"
	"github.com/jhoicas/cafeteria-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

type memSalesRepo struct {
	refs  map[string]bool
	saved []*entity.SalesTransaction
}

func newMemSalesRepo(refs ...string) *memSalesRepo {
	r := &memSalesRepo{refs: make(map[string]bool)}
	for _, ref := range refs {
		r.refs[ref] = true
	}
	return r
}

func (r *memSalesRepo) Create(txn *entity.SalesTransaction) error {
	if r.refs[txn.Reference] {
		// Misma envoltura que hace el repositorio real sobre el unique index.
		return fmt.Errorf("reference %s: %w", txn.Reference, domain.ErrDuplicate)
	}
	r.refs[txn.Reference] = true
	r.saved = append(r.saved, txn)
	return nil
}

func (r *memSalesRepo) CreateItem(item *entity.SaleLineItem) error { return nil }

func (r *memSalesRepo) CountByDate(date time.Time) (int, error) { return len(r.saved), nil }

func (r *memSalesRepo) GetByID(id string) (*entity.SalesTransaction, error) {
	for _, txn := range r.saved {
		if txn.ID == id {
			return txn, nil
		}
	}
	return nil, nil
}

func (r *memSalesRepo) UsageByItemSince(ctx context.Context, since time.Time) ([]repository.ItemUsage, error) {
	return nil, nil
}

type memSaleTxRunner struct {
	repo *memSalesRepo
}

func (r *memSaleTxRunner) RunSale(ctx context.Context, fn func(salesRepo repository.SalesRepository) error) error {
	return fn(r.repo)
}

type memProductRepo struct {
	products map[string]*entity.Product
}

func (r *memProductRepo) GetByID(id string) (*entity.Product, error) {
	return r.products[id], nil
}

func (r *memProductRepo) List(limit, offset int) ([]*entity.Product, error) {
	out := make([]*entity.Product, 0, len(r.products))
	for _, p := range r.products {
		out = append(out, p)
	}
	return out, nil
}

type memRecipeRepo struct{}

func (r *memRecipeRepo) ListByProduct(productID string) ([]*entity.RecipeIngredient, error) {
	return nil, nil
}

type noopLedger struct{}

func (l *noopLedger) Deduct(ctx context.Context, itemID string, qty decimal.Decimal) (decimal.Decimal, decimal.Decimal, error) {
	return qty, decimal.Zero, nil
}

// buildSalesApp construye una app Fiber con solo la ruta de registro de ventas.
func buildSalesApp(repo *memSalesRepo) *fiber.App {
	products := &memProductRepo{products: map[string]*entity.Product{
		"latte": {ID: "latte", Name: "Latte", Price: decimal.RequireFromString("3.50"), Active: true},
	}}
	log := logger.New(logger.Config{Env: "production", Level: "error"})
	record := sales.NewRecordSaleUseCase(&memSaleTxRunner{repo: repo}, products, &memRecipeRepo{}, &noopLedger{}, log)
	query := sales.NewSaleQueryUseCase(repo)
	resolver := sales.NewRecipeResolver(products, &memRecipeRepo{})
	handler := apphttp.NewSalesHandler(record, query, resolver)

	app := fiber.New()
	app.Post("/api/sales", handler.RecordSale)
	return app
}

func postSale(t *testing.T, app *fiber.App, body dto.RecordSaleRequest) *http.Response {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/api/sales", bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

func TestRecordSale_Creada(t *testing.T) {
	app := buildSalesApp(newMemSalesRepo())

	resp := postSale(t, app, dto.RecordSaleRequest{
		Reference:   "TXN20260901-0001",
		TotalAmount: decimal.RequireFromString("3.50"),
		Items: []dto.SaleLineRequest{
			{ProductID: "latte", Quantity: decimal.NewFromInt(1), UnitPrice: decimal.RequireFromString("3.50")},
		},
	})
	defer resp.Body.Close()

	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var out dto.SaleResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Equal(t, "TXN20260901-0001", out.Reference)
	assert.NotEmpty(t, out.TransactionID)
}

func TestRecordSale_ReferenciaDuplicadaMapeaA409(t *testing.T) {
	// El repositorio devuelve el centinela envuelto, igual que la
	// implementación Postgres sobre la violación de índice único.
	app := buildSalesApp(newMemSalesRepo("TXN20260901-0001"))

	resp := postSale(t, app, dto.RecordSaleRequest{
		Reference:   "TXN20260901-0001",
		TotalAmount: decimal.RequireFromString("3.50"),
		Items: []dto.SaleLineRequest{
			{ProductID: "latte", Quantity: decimal.NewFromInt(1), UnitPrice: decimal.RequireFromString("3.50")},
		},
	})
	defer resp.Body.Close()

	require.Equal(t, fiber.StatusConflict, resp.StatusCode, "una referencia duplicada debe mapear a 409")

	var out dto.ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Equal(t, "DUPLICATE", out.Code)
}

func TestRecordSale_ProductoInexistenteMapeaA404(t *testing.T) {
	app := buildSalesApp(newMemSalesRepo())

	resp := postSale(t, app, dto.RecordSaleRequest{
		TotalAmount: decimal.RequireFromString("3.50"),
		Items: []dto.SaleLineRequest{
			{ProductID: "fantasma", Quantity: decimal.NewFromInt(1), UnitPrice: decimal.RequireFromString("3.50")},
		},
	})
	defer resp.Body.Close()

	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}
