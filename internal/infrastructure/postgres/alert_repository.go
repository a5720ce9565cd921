package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/cafeteria-api/internal/domain/entity"
	"github.com/jhoicas/cafeteria-api/internal/domain/repository"
)

var _ repository.AlertRepository = (*AlertRepo)(nil)

// AlertRepo implementación de AlertRepository sobre PostgreSQL (usable con pool o tx).
type AlertRepo struct {
	q Querier
}

// NewAlertRepository construye el adaptador. Pasar pool o tx (Querier).
func NewAlertRepository(q Querier) *AlertRepo {
	return &AlertRepo{q: q}
}

// AcquireDedupeLock advisory lock transaccional sobre la clave; se libera
// solo en Commit/Rollback. hashtext mapea la clave al espacio de bigint.
func (r *AlertRepo) AcquireDedupeLock(key string) error {
	_, err := r.q.Exec(context.Background(), `SELECT pg_advisory_xact_lock(hashtext($1))`, key)
	if err != nil {
		return fmt.Errorf("acquire dedupe lock: %w", err)
	}
	return nil
}

// Create persiste una alerta nueva (sin resolver).
func (r *AlertRepo) Create(alert *entity.InventoryAlert) error {
	query := `
		INSERT INTO inventory_alerts (id, item_id, kind, message, dedupe_key, resolved, created_at)
		VALUES ($1, $2, $3, $4, $5, false, $6)`
	_, err := r.q.Exec(context.Background(), query,
		alert.ID, alert.ItemID, alert.Kind, alert.Message, alert.DedupeKey, alert.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert alert: %w", err)
	}
	return nil
}

// GetByID obtiene una alerta por ID. Devuelve (nil, nil) si no existe.
func (r *AlertRepo) GetByID(id string) (*entity.InventoryAlert, error) {
	query := `
		SELECT id, item_id, kind, message, dedupe_key, resolved, created_at, resolved_at
		FROM inventory_alerts WHERE id = $1`
	var a entity.InventoryAlert
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&a.ID, &a.ItemID, &a.Kind, &a.Message, &a.DedupeKey, &a.Resolved, &a.CreatedAt, &a.ResolvedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get alert: %w", err)
	}
	return &a, nil
}

// FindUnresolvedSince busca una alerta sin resolver del mismo (ítem, tipo,
// clave) creada después de since. Devuelve (nil, nil) si no hay.
func (r *AlertRepo) FindUnresolvedSince(itemID, kind, dedupeKey string, since time.Time) (*entity.InventoryAlert, error) {
	query := `
		SELECT id, item_id, kind, message, dedupe_key, resolved, created_at, resolved_at
		FROM inventory_alerts
		WHERE item_id = $1 AND kind = $2 AND dedupe_key = $3
		  AND resolved = false AND created_at >= $4
		ORDER BY created_at DESC
		LIMIT 1`
	var a entity.InventoryAlert
	err := r.q.QueryRow(context.Background(), query, itemID, kind, dedupeKey, since).Scan(
		&a.ID, &a.ItemID, &a.Kind, &a.Message, &a.DedupeKey, &a.Resolved, &a.CreatedAt, &a.ResolvedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("find unresolved alert: %w", err)
	}
	return &a, nil
}

// Resolve marca la alerta como resuelta con el timestamp dado.
func (r *AlertRepo) Resolve(id string, at time.Time) error {
	query := `UPDATE inventory_alerts SET resolved = true, resolved_at = $2 WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query, id, at)
	if err != nil {
		return fmt.Errorf("resolve alert: %w", err)
	}
	return nil
}

// ListUnresolved alertas pendientes, más recientes primero.
func (r *AlertRepo) ListUnresolved(limit int) ([]*entity.InventoryAlert, error) {
	query := `
		SELECT id, item_id, kind, message, dedupe_key, resolved, created_at, resolved_at
		FROM inventory_alerts
		WHERE resolved = false
		ORDER BY created_at DESC
		LIMIT $1`
	rows, err := r.q.Query(context.Background(), query, limit)
	if err != nil {
		return nil, fmt.Errorf("list unresolved alerts: %w", err)
	}
	defer rows.Close()
	var list []*entity.InventoryAlert
	for rows.Next() {
		var a entity.InventoryAlert
		if err := rows.Scan(&a.ID, &a.ItemID, &a.Kind, &a.Message, &a.DedupeKey, &a.Resolved, &a.CreatedAt, &a.ResolvedAt); err != nil {
			return nil, fmt.Errorf("scan alert: %w", err)
		}
		list = append(list, &a)
	}
	return list, rows.Err()
}
