package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/cafeteria-api/internal/domain"
	"github.com/jhoicas/cafeteria-api/internal/domain/entity"
	"github.com/jhoicas/cafeteria-api/internal/domain/repository"
)

// DedupeWindowDefault ventana móvil durante la cual se suprime una alerta
// equivalente sin resolver.
const DedupeWindowDefault = 24 * time.Hour

// AlertUseCase deduplicador de alertas: decide si una condición candidata ya
// tiene una alerta sin resolver dentro de la ventana y, si no, la persiste.
// El chequeo+inserción corre en una transacción con advisory lock sobre la
// clave (ítem|tipo|clave), así dos pasadas casi simultáneas del monitor no
// insertan la misma alerta dos veces.
type AlertUseCase struct {
	txRunner  AlertTxRunner
	alertRepo repository.AlertRepository // lecturas fuera de transacción
	window    time.Duration
}

// NewAlertUseCase construye el deduplicador. window <= 0 usa 24 horas.
func NewAlertUseCase(txRunner AlertTxRunner, alertRepo repository.AlertRepository, window time.Duration) *AlertUseCase {
	if window <= 0 {
		window = DedupeWindowDefault
	}
	return &AlertUseCase{txRunner: txRunner, alertRepo: alertRepo, window: window}
}

// Raise persiste la alerta salvo que exista una equivalente sin resolver
// creada dentro de la ventana. Devuelve true si se insertó una nueva.
// dedupeKey vacío usa el ID del ítem (las alertas de vencimiento pasan el
// número de lote para que lotes distintos generen alertas distintas).
func (uc *AlertUseCase) Raise(ctx context.Context, itemID, kind, message, dedupeKey string) (bool, error) {
	if itemID == "" || message == "" {
		return false, domain.ErrInvalidInput
	}
	switch kind {
	case entity.AlertKindLowStock, entity.AlertKindOutOfStock, entity.AlertKindExpiringSoon:
	default:
		return false, domain.ErrInvalidInput
	}
	if dedupeKey == "" {
		dedupeKey = itemID
	}

	created := false
	err := uc.txRunner.RunAlerts(ctx, func(alertRepo repository.AlertRepository) error {
		// Serializa con otras pasadas del monitor sobre la misma condición.
		if err := alertRepo.AcquireDedupeLock(itemID + "|" + kind + "|" + dedupeKey); err != nil {
			return err
		}
		since := time.Now().Add(-uc.window)
		existing, err := alertRepo.FindUnresolvedSince(itemID, kind, dedupeKey, since)
		if err != nil {
			return err
		}
		if existing != nil {
			return nil // ya hay una alerta vigente; suprimir
		}
		created = true
		return alertRepo.Create(&entity.InventoryAlert{
			ID:        uuid.New().String(),
			ItemID:    itemID,
			Kind:      kind,
			Message:   message,
			DedupeKey: dedupeKey,
			CreatedAt: time.Now(),
		})
	})
	if err != nil {
		return false, err
	}
	return created, nil
}

// Resolve marca la alerta como resuelta. Una alerta resuelta deja de contar
// para la ventana de deduplicación: la misma condición puede re-alertar de
// inmediato. Resolver dos veces es un no-op.
func (uc *AlertUseCase) Resolve(ctx context.Context, alertID string) error {
	if alertID == "" {
		return domain.ErrInvalidInput
	}
	// Chequeo de existencia explícito antes de mutar (no inferir por filas afectadas).
	alert, err := uc.alertRepo.GetByID(alertID)
	if err != nil {
		return err
	}
	if alert == nil {
		return domain.ErrNotFound
	}
	if alert.Resolved {
		return nil
	}
	return uc.alertRepo.Resolve(alertID, time.Now())
}

// ListUnresolved lista las alertas pendientes, más recientes primero.
func (uc *AlertUseCase) ListUnresolved(ctx context.Context, limit int) ([]*entity.InventoryAlert, error) {
	if limit <= 0 {
		limit = 50
	}
	if limit > 200 {
		limit = 200
	}
	return uc.alertRepo.ListUnresolved(limit)
}
