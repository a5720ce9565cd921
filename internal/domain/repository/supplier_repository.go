package repository

import "github.com/jhoicas/cafeteria-api/internal/domain/entity"

// SupplierRepository puerto de lectura de proveedores.
// GetByID devuelve (nil, nil) cuando el proveedor no existe.
type SupplierRepository interface {
	GetByID(id string) (*entity.Supplier, error)
}
