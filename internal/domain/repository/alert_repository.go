package repository

import (
	"time"

	"github.com/jhoicas/cafeteria-api/internal/domain/entity"
)

// AlertRepository puerto de persistencia de alertas de inventario.
// FindUnresolvedSince implementa la ventana de deduplicación: busca una
// alerta sin resolver del mismo (ítem, tipo, clave) creada después de since.
type AlertRepository interface {
	Create(alert *entity.InventoryAlert) error
	GetByID(id string) (*entity.InventoryAlert, error)
	FindUnresolvedSince(itemID, kind, dedupeKey string, since time.Time) (*entity.InventoryAlert, error)
	Resolve(id string, at time.Time) error
	ListUnresolved(limit int) ([]*entity.InventoryAlert, error)

	// AcquireDedupeLock toma un advisory lock transaccional sobre la clave de
	// deduplicación; serializa chequeo+inserción entre pasadas concurrentes
	// del monitor. Solo tiene efecto dentro de una transacción.
	AcquireDedupeLock(key string) error
}
