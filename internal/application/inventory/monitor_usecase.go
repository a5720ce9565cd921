package inventory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"github.com/jhoicas/cafeteria-api/internal/domain/entity"
	"github.com/jhoicas/cafeteria-api/internal/domain/repository"
	"github.com/jhoicas/cafeteria-api/pkg/logger"
)

// ExpiringSoonThresholdDays lotes que vencen dentro de este plazo generan
// alerta expiring_soon aunque el escaneo mire más lejos.
const ExpiringSoonThresholdDays = 7

// ScanResult resultado de una pasada del monitor de stock.
type ScanResult struct {
	LowStock   []*entity.InventoryItem
	OutOfStock []*entity.InventoryItem
}

// StockMonitorUseCase recorre el inventario buscando condiciones de stock
// bajo, agotado y lotes por vencer, y entrega los candidatos al deduplicador
// de alertas. Pensado para dispararse desde un scheduler externo; una pasada
// repetida dentro de la ventana no duplica alertas.
type StockMonitorUseCase struct {
	itemRepo  repository.InventoryItemRepository
	batchRepo repository.BatchRepository
	alerts    *AlertUseCase
	scanDays  int // horizonte por defecto de ScanExpiring
	log       *logger.Logger
}

// NewStockMonitorUseCase construye el monitor. scanDays <= 0 usa 30 días.
func NewStockMonitorUseCase(
	itemRepo repository.InventoryItemRepository,
	batchRepo repository.BatchRepository,
	alerts *AlertUseCase,
	scanDays int,
	log *logger.Logger,
) *StockMonitorUseCase {
	if scanDays <= 0 {
		scanDays = 30
	}
	return &StockMonitorUseCase{itemRepo: itemRepo, batchRepo: batchRepo, alerts: alerts, scanDays: scanDays, log: log}
}

// ScanLowStock clasifica los ítems en stock bajo (0 < cantidad <= punto de
// reorden, ordenados por severidad) y agotados (cantidad <= 0), y levanta las
// alertas correspondientes. Un fallo al levantar una alerta individual se
// registra y no aborta la pasada.
func (uc *StockMonitorUseCase) ScanLowStock(ctx context.Context) (*ScanResult, error) {
	out, err := uc.itemRepo.ListOutOfStock(ctx)
	if err != nil {
		return nil, err
	}
	low, err := uc.itemRepo.ListLowStock(ctx)
	if err != nil {
		return nil, err
	}
	// Más severo primero: fracción restante del punto de reorden, ascendente.
	sort.SliceStable(low, func(i, j int) bool {
		return severityRatio(low[i]).LessThan(severityRatio(low[j]))
	})

	for _, item := range out {
		msg := fmt.Sprintf("%s está agotado", item.Name)
		uc.raise(ctx, item.ID, entity.AlertKindOutOfStock, msg, item.ID)
	}
	for _, item := range low {
		msg := fmt.Sprintf("%s con stock bajo: quedan %s %s", item.Name, item.Quantity.String(), item.Unit)
		uc.raise(ctx, item.ID, entity.AlertKindLowStock, msg, item.ID)
	}

	return &ScanResult{LowStock: low, OutOfStock: out}, nil
}

// ScanExpiring devuelve los lotes activos que vencen dentro de daysAhead días
// (más próximos primero) y levanta expiring_soon para los que vencen en ≤7
// días, con clave por número de lote: lotes distintos de un mismo ítem
// generan alertas distintas. Antes de listar marca como expirados los lotes
// ya vencidos.
func (uc *StockMonitorUseCase) ScanExpiring(ctx context.Context, daysAhead int) ([]*entity.InventoryBatch, error) {
	if daysAhead <= 0 {
		daysAhead = uc.scanDays
	}

	if n, err := uc.batchRepo.MarkExpired(ctx, time.Now()); err != nil {
		uc.log.Warn().Err(err).Msg("marcar lotes vencidos")
	} else if n > 0 {
		uc.log.Info().Int("lotes", n).Msg("lotes marcados como vencidos")
	}

	batches, err := uc.batchRepo.ListExpiringWithin(ctx, daysAhead)
	if err != nil {
		return nil, err
	}

	threshold := time.Now().AddDate(0, 0, ExpiringSoonThresholdDays)
	for _, b := range batches {
		if b.ExpiryDate == nil || b.ExpiryDate.After(threshold) {
			continue
		}
		msg := fmt.Sprintf("%s lote %s vence el %s (quedan %s)",
			b.ItemName, b.BatchNumber, b.ExpiryDate.Format("2006-01-02"), b.Quantity.String())
		uc.raise(ctx, b.ItemID, entity.AlertKindExpiringSoon, msg, b.BatchNumber)
	}

	return batches, nil
}

func severityRatio(it *entity.InventoryItem) decimal.Decimal {
	if !it.ReorderLevel.IsPositive() {
		return decimal.NewFromInt(1)
	}
	return it.Quantity.Div(it.ReorderLevel)
}

func (uc *StockMonitorUseCase) raise(ctx context.Context, itemID, kind, message, dedupeKey string) {
	created, err := uc.alerts.Raise(ctx, itemID, kind, message, dedupeKey)
	if err != nil {
		uc.log.Warn().Err(err).Str("item_id", itemID).Str("kind", kind).Msg("levantar alerta")
		return
	}
	if created {
		uc.log.Info().Str("item_id", itemID).Str("kind", kind).Msg("alerta creada")
	}
}
