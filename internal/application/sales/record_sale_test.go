package sales_test

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/jhoicas/cafeteria-api/internal/application/dto"
	"github.com/jhoicas/cafeteria-api/internal/application/sales"
	"github.com/jhoicas/cafeteria-api/internal/domain"
	"github.com/jhoicas/cafeteria-api/internal/domain/entity"
	"github.com/jhoicas/cafeteria-api/internal/domain/repository"
	"github.com/jhoicas/cafeteria-api/pkg/logger"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func testLogger() *logger.Logger {
	return logger.New(logger.Config{Env: "production", Level: "error"})
}

// ──────────────────────────────────────────────────────────────────────────────
// Fakes
// ──────────────────────────────────────────────────────────────────────────────

type fakeProductRepo struct {
	products map[string]*entity.Product
}

func (r *fakeProductRepo) GetByID(id string) (*entity.Product, error) {
	return r.products[id], nil
}

func (r *fakeProductRepo) List(limit, offset int) ([]*entity.Product, error) {
	return nil, nil
}

type fakeRecipeRepo struct {
	recipes map[string][]*entity.RecipeIngredient
	err     error
}

func (r *fakeRecipeRepo) ListByProduct(productID string) ([]*entity.RecipeIngredient, error) {
	if r.err != nil {
		return nil, r.err
	}
	return r.recipes[productID], nil
}

type fakeSalesRepo struct {
	txns      []*entity.SalesTransaction
	lineItems []*entity.SaleLineItem
	countHoy  int
	createErr error
}

func (r *fakeSalesRepo) Create(txn *entity.SalesTransaction) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.txns = append(r.txns, txn)
	return nil
}

func (r *fakeSalesRepo) CreateItem(item *entity.SaleLineItem) error {
	r.lineItems = append(r.lineItems, item)
	return nil
}

func (r *fakeSalesRepo) CountByDate(date time.Time) (int, error) {
	return r.countHoy, nil
}

func (r *fakeSalesRepo) GetByID(id string) (*entity.SalesTransaction, error) {
	for _, txn := range r.txns {
		if txn.ID == id {
			return txn, nil
		}
	}
	return nil, nil
}

func (r *fakeSalesRepo) UsageByItemSince(ctx context.Context, since time.Time) ([]repository.ItemUsage, error) {
	return nil, nil
}

type fakeSaleTxRunner struct {
	repo *fakeSalesRepo
}

func (r *fakeSaleTxRunner) RunSale(ctx context.Context, fn func(salesRepo repository.SalesRepository) error) error {
	return fn(r.repo)
}

// fakeLedger descuenta de un mapa en memoria con política todo-o-nada.
type fakeLedger struct {
	stock map[string]decimal.Decimal
	calls int
}

func (l *fakeLedger) Deduct(ctx context.Context, itemID string, qty decimal.Decimal) (decimal.Decimal, decimal.Decimal, error) {
	l.calls++
	current, ok := l.stock[itemID]
	if !ok {
		return decimal.Zero, decimal.Zero, domain.ErrNotFound
	}
	if current.LessThan(qty) {
		return decimal.Zero, decimal.Zero, domain.ErrInsufficientStock
	}
	l.stock[itemID] = current.Sub(qty)
	return qty, l.stock[itemID], nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Fixture: un latte consume 0.018 kg de café y 0.2 L de leche por unidad
// ──────────────────────────────────────────────────────────────────────────────

func latteFixture() (*fakeProductRepo, *fakeRecipeRepo) {
	products := &fakeProductRepo{products: map[string]*entity.Product{
		"latte": {ID: "latte", Name: "Latte", Price: d("4.50"), Active: true},
	}}
	recipes := &fakeRecipeRepo{recipes: map[string][]*entity.RecipeIngredient{
		"latte": {
			{ProductID: "latte", InventoryItemID: "cafe", ItemName: "Café", QuantityPerUnit: d("0.018"), Unit: "kg"},
			{ProductID: "latte", InventoryItemID: "leche", ItemName: "Leche", QuantityPerUnit: d("0.2"), Unit: "L"},
		},
	}}
	return products, recipes
}

func newRecordSaleUC(salesRepo *fakeSalesRepo, products *fakeProductRepo, recipes *fakeRecipeRepo, ledger *fakeLedger) *sales.RecordSaleUseCase {
	return sales.NewRecordSaleUseCase(&fakeSaleTxRunner{repo: salesRepo}, products, recipes, ledger, testLogger())
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

func TestRecordSale_VentaConDescuentoCompleto(t *testing.T) {
	products, recipes := latteFixture()
	salesRepo := &fakeSalesRepo{}
	ledger := &fakeLedger{stock: map[string]decimal.Decimal{
		"cafe":  d("1"),
		"leche": d("5"),
	}}
	uc := newRecordSaleUC(salesRepo, products, recipes, ledger)

	resp, err := uc.RecordSale(context.Background(), dto.RecordSaleRequest{
		TotalAmount: d("9.00"),
		Items: []dto.SaleLineRequest{
			{ProductID: "latte", Quantity: d("2"), UnitPrice: d("4.50")},
		},
	})

	require.NoError(t, err)
	assert.NotEmpty(t, resp.TransactionID)
	assert.Empty(t, resp.Errors)

	// 2 lattes: 0.036 kg de café y 0.4 L de leche
	require.Len(t, resp.Deductions, 2)
	assert.True(t, resp.Deductions[0].Quantity.Equal(d("0.036")), "café: esperaba 0.036, dio %s", resp.Deductions[0].Quantity)
	assert.True(t, resp.Deductions[1].Quantity.Equal(d("0.4")), "leche: esperaba 0.4, dio %s", resp.Deductions[1].Quantity)
	assert.True(t, ledger.stock["cafe"].Equal(d("0.964")))
	assert.True(t, ledger.stock["leche"].Equal(d("4.6")))

	// Cabecera y líneas persistidas, con snapshot del nombre y subtotal
	require.Len(t, salesRepo.txns, 1)
	require.Len(t, salesRepo.lineItems, 1)
	assert.Equal(t, "Latte", salesRepo.lineItems[0].ProductName)
	assert.True(t, salesRepo.lineItems[0].Subtotal.Equal(d("9.00")))
}

func TestRecordSale_GeneraReferenciaSecuencial(t *testing.T) {
	products, recipes := latteFixture()
	salesRepo := &fakeSalesRepo{countHoy: 7}
	ledger := &fakeLedger{stock: map[string]decimal.Decimal{"cafe": d("1"), "leche": d("5")}}
	uc := newRecordSaleUC(salesRepo, products, recipes, ledger)

	resp, err := uc.RecordSale(context.Background(), dto.RecordSaleRequest{
		TotalAmount: d("4.50"),
		Items:       []dto.SaleLineRequest{{ProductID: "latte", Quantity: d("1"), UnitPrice: d("4.50")}},
	})

	require.NoError(t, err)
	want := fmt.Sprintf("TXN%s-0008", time.Now().Format("20060102"))
	assert.Equal(t, want, resp.Reference, "octava venta del día")
	assert.Regexp(t, regexp.MustCompile(`^TXN\d{8}-\d{4}$`), resp.Reference)
}

func TestRecordSale_SentinelaNAGeneraReferencia(t *testing.T) {
	products, recipes := latteFixture()
	salesRepo := &fakeSalesRepo{}
	ledger := &fakeLedger{stock: map[string]decimal.Decimal{"cafe": d("1"), "leche": d("5")}}
	uc := newRecordSaleUC(salesRepo, products, recipes, ledger)

	resp, err := uc.RecordSale(context.Background(), dto.RecordSaleRequest{
		Reference:   "N/A",
		TotalAmount: d("4.50"),
		Items:       []dto.SaleLineRequest{{ProductID: "latte", Quantity: d("1"), UnitPrice: d("4.50")}},
	})

	require.NoError(t, err)
	assert.NotEqual(t, "N/A", resp.Reference)
	assert.Regexp(t, regexp.MustCompile(`^TXN\d{8}-\d{4}$`), resp.Reference)
}

func TestRecordSale_ReferenciaExplicitaSeRespeta(t *testing.T) {
	products, recipes := latteFixture()
	salesRepo := &fakeSalesRepo{}
	ledger := &fakeLedger{stock: map[string]decimal.Decimal{"cafe": d("1"), "leche": d("5")}}
	uc := newRecordSaleUC(salesRepo, products, recipes, ledger)

	resp, err := uc.RecordSale(context.Background(), dto.RecordSaleRequest{
		Reference:   "CAJA-42",
		TotalAmount: d("4.50"),
		Items:       []dto.SaleLineRequest{{ProductID: "latte", Quantity: d("1"), UnitPrice: d("4.50")}},
	})

	require.NoError(t, err)
	assert.Equal(t, "CAJA-42", resp.Reference)
}

func TestRecordSale_FaltanteNoAnulaLaVenta(t *testing.T) {
	// Café insuficiente: la venta se registra igual y el faltante queda en Errors.
	products, recipes := latteFixture()
	salesRepo := &fakeSalesRepo{}
	ledger := &fakeLedger{stock: map[string]decimal.Decimal{
		"cafe":  d("0.01"), // se requieren 0.018
		"leche": d("5"),
	}}
	uc := newRecordSaleUC(salesRepo, products, recipes, ledger)

	resp, err := uc.RecordSale(context.Background(), dto.RecordSaleRequest{
		TotalAmount: d("4.50"),
		Items:       []dto.SaleLineRequest{{ProductID: "latte", Quantity: d("1"), UnitPrice: d("4.50")}},
	})

	require.NoError(t, err, "el faltante de stock no debe abortar la venta")
	assert.NotEmpty(t, resp.TransactionID)
	require.Len(t, salesRepo.txns, 1, "la venta debe persistirse")

	// La leche sí se descontó; el café quedó reportado como error
	require.Len(t, resp.Deductions, 1)
	assert.Equal(t, "leche", resp.Deductions[0].ItemID)
	require.Len(t, resp.Errors, 1)
	assert.Equal(t, "cafe", resp.Errors[0].ItemID)
	assert.True(t, resp.Errors[0].Requested.Equal(d("0.018")))
	assert.True(t, ledger.stock["cafe"].Equal(d("0.01")), "todo-o-nada: no descuenta parcial")
}

func TestRecordSale_ProductoSinRecetaNoDescuenta(t *testing.T) {
	products := &fakeProductRepo{products: map[string]*entity.Product{
		"botella": {ID: "botella", Name: "Agua embotellada", Active: true},
	}}
	recipes := &fakeRecipeRepo{recipes: map[string][]*entity.RecipeIngredient{}}
	salesRepo := &fakeSalesRepo{}
	ledger := &fakeLedger{stock: map[string]decimal.Decimal{}}
	uc := newRecordSaleUC(salesRepo, products, recipes, ledger)

	resp, err := uc.RecordSale(context.Background(), dto.RecordSaleRequest{
		TotalAmount: d("2.00"),
		Items:       []dto.SaleLineRequest{{ProductID: "botella", Quantity: d("1"), UnitPrice: d("2.00")}},
	})

	require.NoError(t, err)
	assert.Empty(t, resp.Deductions)
	assert.Empty(t, resp.Errors)
	assert.Zero(t, ledger.calls, "sin receta no hay descuentos")
}

func TestRecordSale_ProductoInexistente(t *testing.T) {
	products, recipes := latteFixture()
	uc := newRecordSaleUC(&fakeSalesRepo{}, products, recipes, &fakeLedger{stock: map[string]decimal.Decimal{}})

	_, err := uc.RecordSale(context.Background(), dto.RecordSaleRequest{
		TotalAmount: d("4.50"),
		Items:       []dto.SaleLineRequest{{ProductID: "fantasma", Quantity: d("1"), UnitPrice: d("4.50")}},
	})

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRecordSale_EntradaInvalida(t *testing.T) {
	products, recipes := latteFixture()
	uc := newRecordSaleUC(&fakeSalesRepo{}, products, recipes, &fakeLedger{stock: map[string]decimal.Decimal{}})
	ctx := context.Background()

	_, err := uc.RecordSale(ctx, dto.RecordSaleRequest{TotalAmount: d("1")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "sin líneas")

	_, err = uc.RecordSale(ctx, dto.RecordSaleRequest{
		TotalAmount: d("-1"),
		Items:       []dto.SaleLineRequest{{ProductID: "latte", Quantity: d("1"), UnitPrice: d("1")}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "total negativo")

	_, err = uc.RecordSale(ctx, dto.RecordSaleRequest{
		TotalAmount: d("1"),
		Items:       []dto.SaleLineRequest{{ProductID: "latte", Quantity: decimal.Zero, UnitPrice: d("1")}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "cantidad cero")
}

func TestRecordSale_FalloDePersistenciaAborta(t *testing.T) {
	products, recipes := latteFixture()
	salesRepo := &fakeSalesRepo{createErr: errors.New("insert sale: conexión perdida")}
	ledger := &fakeLedger{stock: map[string]decimal.Decimal{"cafe": d("1"), "leche": d("5")}}
	uc := newRecordSaleUC(salesRepo, products, recipes, ledger)

	_, err := uc.RecordSale(context.Background(), dto.RecordSaleRequest{
		TotalAmount: d("4.50"),
		Items:       []dto.SaleLineRequest{{ProductID: "latte", Quantity: d("1"), UnitPrice: d("4.50")}},
	})

	assert.Error(t, err, "un fallo en la cabecera sí aborta")
	assert.Zero(t, ledger.calls, "sin venta persistida no hay descuentos")
}

func TestRecordSale_RecetaNoDisponibleSeReportaComoError(t *testing.T) {
	products, _ := latteFixture()
	recipes := &fakeRecipeRepo{err: errors.New("query recipes: timeout")}
	salesRepo := &fakeSalesRepo{}
	uc := newRecordSaleUC(salesRepo, products, recipes, &fakeLedger{stock: map[string]decimal.Decimal{}})

	resp, err := uc.RecordSale(context.Background(), dto.RecordSaleRequest{
		TotalAmount: d("4.50"),
		Items:       []dto.SaleLineRequest{{ProductID: "latte", Quantity: d("1"), UnitPrice: d("4.50")}},
	})

	require.NoError(t, err, "la venta se registra aunque la receta no esté disponible")
	require.Len(t, resp.Errors, 1)
	assert.Equal(t, "latte", resp.Errors[0].ProductID)
}
