package inventory

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"github.com/jhoicas/cafeteria-api/internal/application/dto"
	domaininv "github.com/jhoicas/cafeteria-api/internal/domain/inventory"
	"github.com/jhoicas/cafeteria-api/internal/domain/repository"
)

// UsageWindowDays ventana de ventas usada para estimar el consumo diario.
const UsageWindowDays = 30

// ReorderUseCase pronostica necesidades de reposición: para cada ítem bajo su
// punto de reorden calcula consumo promedio, días hasta quiebre, cantidad
// sugerida y nivel de urgencia. Las sugerencias no se persisten.
type ReorderUseCase struct {
	itemRepo  repository.InventoryItemRepository
	salesRepo repository.SalesRepository
}

// NewReorderUseCase construye el pronosticador.
func NewReorderUseCase(itemRepo repository.InventoryItemRepository, salesRepo repository.SalesRepository) *ReorderUseCase {
	return &ReorderUseCase{itemRepo: itemRepo, salesRepo: salesRepo}
}

// Suggest devuelve las sugerencias de reposición ordenadas por urgencia
// descendente. Solo considera ítems con cantidad <= punto de reorden.
func (uc *ReorderUseCase) Suggest(ctx context.Context) ([]dto.ReorderSuggestionDTO, error) {
	items, err := uc.itemRepo.ListAtOrBelowReorder(ctx)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return []dto.ReorderSuggestionDTO{}, nil
	}

	since := time.Now().AddDate(0, 0, -UsageWindowDays)
	usageRows, err := uc.salesRepo.UsageByItemSince(ctx, since)
	if err != nil {
		return nil, err
	}
	usageByItem := make(map[string]decimal.Decimal, len(usageRows))
	for _, u := range usageRows {
		usageByItem[u.ItemID] = u.TotalUsed
	}

	suggestions := make([]dto.ReorderSuggestionDTO, 0, len(items))
	for _, item := range items {
		avgUsage := domaininv.AverageDailyUsage(usageByItem[item.ID], UsageWindowDays)
		daysLeft := domaininv.DaysUntilStockout(item.Quantity, avgUsage)
		tier, label := domaininv.ClassifyUrgency(item.Quantity, daysLeft)

		suggestions = append(suggestions, dto.ReorderSuggestionDTO{
			ItemID:            item.ID,
			ItemName:          item.Name,
			Unit:              item.Unit,
			CurrentStock:      item.Quantity,
			SuggestedQty:      domaininv.SuggestedOrderQty(item.MaxStock, item.Quantity, avgUsage),
			AvgDailyUsage:     avgUsage,
			DaysUntilStockout: daysLeft,
			UrgencyTier:       tier,
			UrgencyLabel:      label,
			SupplierID:        item.SupplierID,
			Reason:            domaininv.BuildReason(item.Name, item.Quantity, avgUsage, daysLeft),
		})
	}

	sort.SliceStable(suggestions, func(i, j int) bool {
		return suggestions[i].UrgencyTier > suggestions[j].UrgencyTier
	})

	return suggestions, nil
}
