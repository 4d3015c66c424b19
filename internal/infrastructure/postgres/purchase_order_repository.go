package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/stocksync-api/internal/domain"
	"github.com/jhoicas/stocksync-api/internal/domain/entity"
	"github.com/jhoicas/stocksync-api/internal/domain/repository"
)

var _ repository.PurchaseOrderRepository = (*PurchaseOrderRepo)(nil)

// PurchaseOrderRepo implementación del puerto PurchaseOrderRepository sobre PostgreSQL.
type PurchaseOrderRepo struct {
	q Querier
}

// NewPurchaseOrderRepository construye el adaptador de persistencia para órdenes de compra.
func NewPurchaseOrderRepository(q Querier) *PurchaseOrderRepo {
	return &PurchaseOrderRepo{q: q}
}

// GetByID obtiene una orden con sus renglones.
func (r *PurchaseOrderRepo) GetByID(ctx context.Context, id string) (*entity.PurchaseOrder, error) {
	query := `
		SELECT id, external_id, vendor_id, status, order_date, received_at, total, created_at, updated_at
		FROM purchase_orders WHERE id = $1`
	var o entity.PurchaseOrder
	err := r.q.QueryRow(ctx, query, id).Scan(
		&o.ID, &o.ExternalID, &o.VendorID, &o.Status, &o.OrderDate,
		&o.ReceivedAt, &o.Total, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get orden: %w", err)
	}
	if err := r.loadLines(ctx, &o); err != nil {
		return nil, err
	}
	return &o, nil
}

// List lista órdenes (sin renglones) con paginación, más recientes primero.
func (r *PurchaseOrderRepo) List(ctx context.Context, limit, offset int) ([]*entity.PurchaseOrder, error) {
	query := `
		SELECT id, external_id, vendor_id, status, order_date, received_at, total, created_at, updated_at
		FROM purchase_orders ORDER BY order_date DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list órdenes: %w", err)
	}
	defer rows.Close()
	var list []*entity.PurchaseOrder
	for rows.Next() {
		var o entity.PurchaseOrder
		if err := rows.Scan(&o.ID, &o.ExternalID, &o.VendorID, &o.Status, &o.OrderDate,
			&o.ReceivedAt, &o.Total, &o.CreatedAt, &o.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan orden: %w", err)
		}
		list = append(list, &o)
	}
	return list, rows.Err()
}

// UpsertBatch inserta o actualiza órdenes por external_id; los renglones se
// reemplazan completos (Finale es la fuente de verdad de la orden sincronizada).
func (r *PurchaseOrderRepo) UpsertBatch(ctx context.Context, orders []*entity.PurchaseOrder) error {
	for _, o := range orders {
		var id string
		err := r.q.QueryRow(ctx, `
			INSERT INTO purchase_orders (id, external_id, vendor_id, status, order_date, total, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, now(), now())
			ON CONFLICT (external_id) DO UPDATE SET
				vendor_id = EXCLUDED.vendor_id,
				status = EXCLUDED.status,
				order_date = EXCLUDED.order_date,
				total = EXCLUDED.total,
				updated_at = now()
			RETURNING id`,
			o.ID, o.ExternalID, o.VendorID, o.Status, o.OrderDate, o.Total,
		).Scan(&id)
		if err != nil {
			return fmt.Errorf("upsert orden %s: %w", o.ExternalID, err)
		}

		if _, err := r.q.Exec(ctx, `DELETE FROM purchase_order_lines WHERE order_id = $1`, id); err != nil {
			return fmt.Errorf("limpiar renglones de %s: %w", o.ExternalID, err)
		}
		for _, l := range o.Lines {
			if _, err := r.q.Exec(ctx, `
				INSERT INTO purchase_order_lines (id, order_id, sku, quantity, unit_cost)
				VALUES ($1, $2, $3, $4, $5)`,
				l.ID, id, l.SKU, l.Quantity, l.UnitCost,
			); err != nil {
				// SKU repetido dentro de la misma orden remota: dato en
				// conflicto, no un fallo de infraestructura.
				if isUniqueViolation(err) {
					return fmt.Errorf("renglón duplicado en orden %s (sku %s): %w", o.ExternalID, l.SKU, domain.ErrDuplicate)
				}
				return fmt.Errorf("insertar renglón de %s: %w", o.ExternalID, err)
			}
		}
	}
	return nil
}

// MarkReceived fija estado received con marca de tiempo; idempotencia estricta:
// recibir dos veces es un error de negocio, no un no-op.
func (r *PurchaseOrderRepo) MarkReceived(ctx context.Context, order *entity.PurchaseOrder) error {
	now := time.Now()
	cmd, err := r.q.Exec(ctx, `
		UPDATE purchase_orders SET status = $2, received_at = $3, updated_at = now()
		WHERE id = $1 AND status <> $2`,
		order.ID, entity.POStatusReceived, now,
	)
	if err != nil {
		return fmt.Errorf("marcar orden recibida: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		existing, err := r.GetByID(ctx, order.ID)
		if err != nil {
			return err
		}
		if existing == nil {
			return domain.ErrNotFound
		}
		return domain.ErrOrdenYaRecibida
	}
	order.Status = entity.POStatusReceived
	order.ReceivedAt = &now
	return nil
}

func (r *PurchaseOrderRepo) loadLines(ctx context.Context, o *entity.PurchaseOrder) error {
	rows, err := r.q.Query(ctx, `
		SELECT id, order_id, sku, quantity, unit_cost
		FROM purchase_order_lines WHERE order_id = $1 ORDER BY sku`, o.ID)
	if err != nil {
		return fmt.Errorf("renglones de orden: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var l entity.PurchaseOrderLine
		if err := rows.Scan(&l.ID, &l.OrderID, &l.SKU, &l.Quantity, &l.UnitCost); err != nil {
			return fmt.Errorf("scan renglón: %w", err)
		}
		o.Lines = append(o.Lines, l)
	}
	return rows.Err()
}
