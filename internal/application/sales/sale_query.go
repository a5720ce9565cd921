package sales

import (
	"context"

	"github.com/jhoicas/cafeteria-api/internal/domain"
	"github.com/jhoicas/cafeteria-api/internal/domain/entity"
	"github.com/jhoicas/cafeteria-api/internal/domain/repository"
)

// SaleQueryUseCase consultas de ventas registradas.
type SaleQueryUseCase struct {
	salesRepo repository.SalesRepository
}

// NewSaleQueryUseCase construye el caso de uso.
func NewSaleQueryUseCase(salesRepo repository.SalesRepository) *SaleQueryUseCase {
	return &SaleQueryUseCase{salesRepo: salesRepo}
}

// GetByID devuelve la venta con sus líneas o ErrNotFound.
func (uc *SaleQueryUseCase) GetByID(ctx context.Context, id string) (*entity.SalesTransaction, error) {
	if id == "" {
		return nil, domain.ErrInvalidInput
	}
	txn, err := uc.salesRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if txn == nil {
		return nil, domain.ErrNotFound
	}
	return txn, nil
}
