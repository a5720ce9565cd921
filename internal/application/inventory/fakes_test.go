package inventory_test

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"github.com/jhoicas/cafeteria-api/internal/domain/entity"
	"github.com/jhoicas/cafeteria-api/internal/domain/repository"
	"github.com/jhoicas/cafeteria-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria. Los tx runners falsos invocan la función directamente con
// el repo en memoria: los casos de uso no distinguen una transacción real de
// una llamada directa.
// ──────────────────────────────────────────────────────────────────────────────

func testLogger() *logger.Logger {
	return logger.New(logger.Config{Env: "production", Level: "error"})
}

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

type fakeItemRepo struct {
	items     map[string]*entity.InventoryItem
	updateErr error
}

func newFakeItemRepo(items ...*entity.InventoryItem) *fakeItemRepo {
	m := make(map[string]*entity.InventoryItem, len(items))
	for _, it := range items {
		m[it.ID] = it
	}
	return &fakeItemRepo{items: m}
}

func (r *fakeItemRepo) GetByID(id string) (*entity.InventoryItem, error) {
	return r.items[id], nil
}

func (r *fakeItemRepo) GetForUpdate(id string) (*entity.InventoryItem, error) {
	return r.items[id], nil
}

func (r *fakeItemRepo) UpdateQuantity(id string, quantity decimal.Decimal) error {
	if r.updateErr != nil {
		return r.updateErr
	}
	it, ok := r.items[id]
	if !ok {
		return errors.New("item inexistente")
	}
	it.Quantity = quantity
	return nil
}

func (r *fakeItemRepo) List(limit, offset int) ([]*entity.InventoryItem, error) {
	out := make([]*entity.InventoryItem, 0, len(r.items))
	for _, it := range r.items {
		out = append(out, it)
	}
	return out, nil
}

func (r *fakeItemRepo) ListLowStock(ctx context.Context) ([]*entity.InventoryItem, error) {
	var out []*entity.InventoryItem
	for _, it := range r.items {
		if it.Quantity.GreaterThan(decimal.Zero) && it.Quantity.LessThanOrEqual(it.ReorderLevel) {
			out = append(out, it)
		}
	}
	return out, nil
}

func (r *fakeItemRepo) ListOutOfStock(ctx context.Context) ([]*entity.InventoryItem, error) {
	var out []*entity.InventoryItem
	for _, it := range r.items {
		if !it.Quantity.GreaterThan(decimal.Zero) {
			out = append(out, it)
		}
	}
	return out, nil
}

func (r *fakeItemRepo) ListAtOrBelowReorder(ctx context.Context) ([]*entity.InventoryItem, error) {
	var out []*entity.InventoryItem
	for _, it := range r.items {
		if it.Quantity.LessThanOrEqual(it.ReorderLevel) {
			out = append(out, it)
		}
	}
	return out, nil
}

type fakeAlertRepo struct {
	alerts    []*entity.InventoryAlert
	lockCalls int
	createErr error
}

func (r *fakeAlertRepo) AcquireDedupeLock(key string) error {
	r.lockCalls++
	return nil
}

func (r *fakeAlertRepo) Create(alert *entity.InventoryAlert) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.alerts = append(r.alerts, alert)
	return nil
}

func (r *fakeAlertRepo) GetByID(id string) (*entity.InventoryAlert, error) {
	for _, a := range r.alerts {
		if a.ID == id {
			return a, nil
		}
	}
	return nil, nil
}

func (r *fakeAlertRepo) FindUnresolvedSince(itemID, kind, dedupeKey string, since time.Time) (*entity.InventoryAlert, error) {
	for _, a := range r.alerts {
		if a.ItemID == itemID && a.Kind == kind && a.DedupeKey == dedupeKey && !a.Resolved && a.CreatedAt.After(since) {
			return a, nil
		}
	}
	return nil, nil
}

func (r *fakeAlertRepo) Resolve(id string, at time.Time) error {
	for _, a := range r.alerts {
		if a.ID == id {
			a.Resolved = true
			a.ResolvedAt = &at
			return nil
		}
	}
	return errors.New("alerta inexistente")
}

func (r *fakeAlertRepo) ListUnresolved(limit int) ([]*entity.InventoryAlert, error) {
	var out []*entity.InventoryAlert
	for _, a := range r.alerts {
		if !a.Resolved {
			out = append(out, a)
		}
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

type fakeBatchRepo struct {
	batches []*entity.InventoryBatch
}

func (r *fakeBatchRepo) Create(batch *entity.InventoryBatch) error {
	r.batches = append(r.batches, batch)
	return nil
}

func (r *fakeBatchRepo) ListExpiringWithin(ctx context.Context, days int) ([]*entity.InventoryBatch, error) {
	limit := time.Now().AddDate(0, 0, days)
	var out []*entity.InventoryBatch
	for _, b := range r.batches {
		if b.Status != entity.BatchStatusActive || b.ExpiryDate == nil || !b.Quantity.GreaterThan(decimal.Zero) {
			continue
		}
		if b.ExpiryDate.After(time.Now()) && b.ExpiryDate.Before(limit) {
			out = append(out, b)
		}
	}
	return out, nil
}

func (r *fakeBatchRepo) MarkExpired(ctx context.Context, asOf time.Time) (int, error) {
	n := 0
	for _, b := range r.batches {
		if b.Status == entity.BatchStatusActive && b.ExpiryDate != nil && b.ExpiryDate.Before(asOf) {
			b.Status = entity.BatchStatusExpired
			n++
		}
	}
	return n, nil
}

type fakeSalesRepo struct {
	usage []repository.ItemUsage
}

func (r *fakeSalesRepo) Create(tx *entity.SalesTransaction) error    { return nil }
func (r *fakeSalesRepo) CreateItem(item *entity.SaleLineItem) error  { return nil }
func (r *fakeSalesRepo) CountByDate(date time.Time) (int, error)     { return 0, nil }
func (r *fakeSalesRepo) GetByID(id string) (*entity.SalesTransaction, error) {
	return nil, nil
}

func (r *fakeSalesRepo) UsageByItemSince(ctx context.Context, since time.Time) ([]repository.ItemUsage, error) {
	return r.usage, nil
}

type fakeSupplierRepo struct {
	suppliers map[string]*entity.Supplier
}

func (r *fakeSupplierRepo) GetByID(id string) (*entity.Supplier, error) {
	return r.suppliers[id], nil
}

type fakePORepo struct {
	orders    []*entity.PurchaseOrder
	lines     []*entity.PurchaseOrderLine
	createErr error
	lineErr   error
}

func (r *fakePORepo) Create(po *entity.PurchaseOrder) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.orders = append(r.orders, po)
	return nil
}

func (r *fakePORepo) CreateLine(line *entity.PurchaseOrderLine) error {
	if r.lineErr != nil {
		return r.lineErr
	}
	r.lines = append(r.lines, line)
	return nil
}

func (r *fakePORepo) UpdateTotal(id string, total decimal.Decimal) error {
	for _, po := range r.orders {
		if po.ID == id {
			po.TotalAmount = total
			return nil
		}
	}
	return errors.New("orden inexistente")
}

func (r *fakePORepo) GetByID(id string) (*entity.PurchaseOrder, error) {
	for _, po := range r.orders {
		if po.ID == id {
			return po, nil
		}
	}
	return nil, nil
}

func (r *fakePORepo) GetLines(purchaseOrderID string) ([]*entity.PurchaseOrderLine, error) {
	var out []*entity.PurchaseOrderLine
	for _, l := range r.lines {
		if l.PurchaseOrderID == purchaseOrderID {
			out = append(out, l)
		}
	}
	return out, nil
}

// fakeTxRunner implementa los runners entregando los repos en memoria.
// Si failWith no es nil, la "transacción" falla sin invocar la función
// (simula no poder abrir la tx).
type fakeTxRunner struct {
	itemRepo  *fakeItemRepo
	alertRepo *fakeAlertRepo
	poRepo    *fakePORepo
	failWith  error
}

func (r *fakeTxRunner) RunLedger(ctx context.Context, fn func(itemRepo repository.InventoryItemRepository) error) error {
	if r.failWith != nil {
		return r.failWith
	}
	return fn(r.itemRepo)
}

func (r *fakeTxRunner) RunAlerts(ctx context.Context, fn func(alertRepo repository.AlertRepository) error) error {
	if r.failWith != nil {
		return r.failWith
	}
	return fn(r.alertRepo)
}

func (r *fakeTxRunner) RunPurchase(ctx context.Context, fn func(poRepo repository.PurchaseOrderRepository) error) error {
	if r.failWith != nil {
		return r.failWith
	}
	return fn(r.poRepo)
}
