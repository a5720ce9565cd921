package dto

import (
	"time"

	"github.com/jhoicas/cafeteria-api/internal/domain/entity"
)

// AlertDTO vista de una alerta de inventario para la UI de notificaciones.
type AlertDTO struct {
	ID         string     `json:"id"`
	ItemID     string     `json:"item_id"`
	Kind       string     `json:"kind"`
	Message    string     `json:"message"`
	Resolved   bool       `json:"resolved"`
	CreatedAt  time.Time  `json:"created_at"`
	ResolvedAt *time.Time `json:"resolved_at,omitempty"`
}

// FromAlert convierte la entidad a DTO.
func FromAlert(a *entity.InventoryAlert) AlertDTO {
	return AlertDTO{
		ID:         a.ID,
		ItemID:     a.ItemID,
		Kind:       a.Kind,
		Message:    a.Message,
		Resolved:   a.Resolved,
		CreatedAt:  a.CreatedAt,
		ResolvedAt: a.ResolvedAt,
	}
}
