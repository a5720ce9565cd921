package repository

import "github.com/jhoicas/cafeteria-api/internal/domain/entity"

// ProductRepository puerto de lectura de productos vendibles.
// GetByID devuelve (nil, nil) cuando el producto no existe.
type ProductRepository interface {
	GetByID(id string) (*entity.Product, error)
	List(limit, offset int) ([]*entity.Product, error)
}
