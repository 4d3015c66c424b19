package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/stocksync-api/internal/domain"
	"github.com/jhoicas/stocksync-api/internal/domain/entity"
	"github.com/jhoicas/stocksync-api/internal/domain/repository"
)

var _ repository.AlertRepository = (*AlertRepo)(nil)

// AlertRepo implementación del puerto AlertRepository sobre PostgreSQL.
type AlertRepo struct {
	q Querier
}

// NewAlertRepository construye el adaptador de persistencia para alertas.
func NewAlertRepository(q Querier) *AlertRepo {
	return &AlertRepo{q: q}
}

// Create persiste una nueva alerta.
func (r *AlertRepo) Create(ctx context.Context, a *entity.Alert) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO alerts (id, sku, severity, message, acknowledged, created_at)
		VALUES ($1, $2, $3, $4, false, $5)`,
		a.ID, a.SKU, a.Severity, a.Message, a.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert alerta: %w", err)
	}
	return nil
}

// HasOpenForSKU indica si existe una alerta sin reconocer para el SKU.
func (r *AlertRepo) HasOpenForSKU(ctx context.Context, sku string) (bool, error) {
	var exists bool
	err := r.q.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM alerts WHERE sku = $1 AND NOT acknowledged)`,
		sku,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("alertas abiertas por sku: %w", err)
	}
	return exists, nil
}

// Acknowledge marca la alerta como reconocida (única mutación permitida).
func (r *AlertRepo) Acknowledge(ctx context.Context, id string) error {
	cmd, err := r.q.Exec(ctx,
		`UPDATE alerts SET acknowledged = true WHERE id = $1`, id,
	)
	if err != nil {
		return fmt.Errorf("reconocer alerta: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lista alertas, opcionalmente solo las abiertas, más recientes primero.
func (r *AlertRepo) List(ctx context.Context, onlyOpen bool, limit, offset int) ([]*entity.Alert, error) {
	query := `SELECT id, sku, severity, message, acknowledged, created_at FROM alerts`
	if onlyOpen {
		query += ` WHERE NOT acknowledged`
	}
	query += ` ORDER BY created_at DESC LIMIT $1 OFFSET $2`

	rows, err := r.q.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list alertas: %w", err)
	}
	defer rows.Close()
	var list []*entity.Alert
	for rows.Next() {
		var a entity.Alert
		if err := rows.Scan(&a.ID, &a.SKU, &a.Severity, &a.Message, &a.Acknowledged, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan alerta: %w", err)
		}
		list = append(list, &a)
	}
	return list, rows.Err()
}
