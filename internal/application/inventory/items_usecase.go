package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/jhoicas/cafeteria-api/internal/application/dto"
	"github.com/jhoicas/cafeteria-api/internal/domain"
	"github.com/jhoicas/cafeteria-api/internal/domain/entity"
	"github.com/jhoicas/cafeteria-api/internal/domain/repository"
)

// ItemsUseCase consultas de materias primas y alta de lotes.
type ItemsUseCase struct {
	itemRepo  repository.InventoryItemRepository
	batchRepo repository.BatchRepository
}

// NewItemsUseCase construye el caso de uso.
func NewItemsUseCase(itemRepo repository.InventoryItemRepository, batchRepo repository.BatchRepository) *ItemsUseCase {
	return &ItemsUseCase{itemRepo: itemRepo, batchRepo: batchRepo}
}

// List devuelve las materias primas paginadas.
func (uc *ItemsUseCase) List(ctx context.Context, limit, offset int) ([]*entity.InventoryItem, error) {
	return uc.itemRepo.List(limit, offset)
}

// GetByID devuelve una materia prima o ErrNotFound.
func (uc *ItemsUseCase) GetByID(ctx context.Context, id string) (*entity.InventoryItem, error) {
	if id == "" {
		return nil, domain.ErrInvalidInput
	}
	item, err := uc.itemRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	return item, nil
}

// RegisterBatch registra un lote nuevo (activo) para una materia prima
// existente. La fecha de vencimiento es opcional: un lote sin fecha nunca
// entra al escaneo de vencimientos.
func (uc *ItemsUseCase) RegisterBatch(ctx context.Context, in dto.CreateBatchRequest) (*entity.InventoryBatch, error) {
	if err := dto.Validate(in); err != nil {
		return nil, domain.ErrInvalidInput
	}
	if in.Quantity.LessThanOrEqual(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	item, err := uc.itemRepo.GetByID(in.ItemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}

	batch := &entity.InventoryBatch{
		ID:          uuid.New().String(),
		ItemID:      in.ItemID,
		ItemName:    item.Name,
		BatchNumber: in.BatchNumber,
		Quantity:    in.Quantity,
		ExpiryDate:  in.ExpiryDate,
		Status:      entity.BatchStatusActive,
		CreatedAt:   time.Now(),
	}
	if err := uc.batchRepo.Create(batch); err != nil {
		return nil, err
	}
	return batch, nil
}
