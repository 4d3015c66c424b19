package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/stocksync-api/internal/domain"
	"github.com/jhoicas/stocksync-api/internal/domain/entity"
	"github.com/jhoicas/stocksync-api/internal/domain/repository"
)

var _ repository.InventoryItemRepository = (*InventoryItemRepo)(nil)

// InventoryItemRepo implementación del puerto InventoryItemRepository sobre PostgreSQL (usable con pool o tx).
type InventoryItemRepo struct {
	q Querier
}

// NewInventoryItemRepository construye el adaptador de persistencia para items. Pasar pool o tx (Querier).
func NewInventoryItemRepository(q Querier) *InventoryItemRepo {
	return &InventoryItemRepo{q: q}
}

const itemColumns = `id, sku, name, quantity, unit_cost, reorder_point, vendor_id, fingerprint, active, source_updated_at, last_synced_at, created_at, updated_at`

func scanItem(row pgx.Row) (*entity.InventoryItem, error) {
	var it entity.InventoryItem
	err := row.Scan(
		&it.ID, &it.SKU, &it.Name, &it.Quantity, &it.UnitCost, &it.ReorderPoint,
		&it.VendorID, &it.Fingerprint, &it.Active, &it.SourceUpdatedAt,
		&it.LastSyncedAt, &it.CreatedAt, &it.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &it, nil
}

// GetBySKU obtiene un item por SKU.
func (r *InventoryItemRepo) GetBySKU(ctx context.Context, sku string) (*entity.InventoryItem, error) {
	query := `SELECT ` + itemColumns + ` FROM inventory_items WHERE sku = $1`
	it, err := scanItem(r.q.QueryRow(ctx, query, sku))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get item: %w", err)
	}
	return it, nil
}

// List lista items con paginación, ordenados por SKU.
func (r *InventoryItemRepo) List(ctx context.Context, limit, offset int) ([]*entity.InventoryItem, error) {
	query := `SELECT ` + itemColumns + ` FROM inventory_items ORDER BY sku LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	defer rows.Close()
	var list []*entity.InventoryItem
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		list = append(list, it)
	}
	return list, rows.Err()
}

// Update actualiza los campos editables localmente. El sync pisa estos valores
// en la siguiente corrida si el contenido remoto difiere.
func (r *InventoryItemRepo) Update(ctx context.Context, item *entity.InventoryItem) error {
	query := `
		UPDATE inventory_items
		SET name = $2, unit_cost = $3, reorder_point = $4, fingerprint = $5, updated_at = now()
		WHERE sku = $1`
	cmd, err := r.q.Exec(ctx, query, item.SKU, item.Name, item.UnitCost, item.ReorderPoint, item.Fingerprint)
	if err != nil {
		return fmt.Errorf("update item: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// SetActive cambia el flag de activo (la baja nunca borra la fila).
func (r *InventoryItemRepo) SetActive(ctx context.Context, sku string, active bool) error {
	cmd, err := r.q.Exec(ctx,
		`UPDATE inventory_items SET active = $2, updated_at = now() WHERE sku = $1`,
		sku, active,
	)
	if err != nil {
		return fmt.Errorf("set active: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// UpsertBatch inserta o actualiza por SKU en un solo INSERT multi-fila.
// Cada lote es atómico por ser un único statement; entre lotes no hay transacción.
func (r *InventoryItemRepo) UpsertBatch(ctx context.Context, items []*entity.InventoryItem) error {
	if len(items) == 0 {
		return nil
	}

	var sb strings.Builder
	sb.WriteString(`
		INSERT INTO inventory_items
		(id, sku, name, quantity, unit_cost, reorder_point, vendor_id, fingerprint, active, source_updated_at, last_synced_at, created_at, updated_at)
		VALUES `)
	args := make([]any, 0, len(items)*11)
	for i, it := range items {
		if i > 0 {
			sb.WriteString(", ")
		}
		base := i * 11
		fmt.Fprintf(&sb, "($%d, $%d, $%d, $%d, $%d, $%d, $%d, $%d, $%d, $%d, $%d, now(), now())",
			base+1, base+2, base+3, base+4, base+5, base+6, base+7, base+8, base+9, base+10, base+11)
		args = append(args,
			it.ID, it.SKU, it.Name, it.Quantity, it.UnitCost, it.ReorderPoint,
			it.VendorID, it.Fingerprint, it.Active, it.SourceUpdatedAt, it.LastSyncedAt,
		)
	}
	sb.WriteString(`
		ON CONFLICT (sku) DO UPDATE SET
			name = EXCLUDED.name,
			quantity = EXCLUDED.quantity,
			unit_cost = EXCLUDED.unit_cost,
			reorder_point = EXCLUDED.reorder_point,
			vendor_id = EXCLUDED.vendor_id,
			fingerprint = EXCLUDED.fingerprint,
			active = EXCLUDED.active,
			source_updated_at = EXCLUDED.source_updated_at,
			last_synced_at = EXCLUDED.last_synced_at,
			updated_at = now()`)

	if _, err := r.q.Exec(ctx, sb.String(), args...); err != nil {
		return fmt.Errorf("upsert batch de items: %w", err)
	}
	return nil
}

// SnapshotBySKU devuelve fingerprint, cantidad y umbral de todos los SKUs persistidos.
func (r *InventoryItemRepo) SnapshotBySKU(ctx context.Context) (map[string]repository.ItemSnapshot, error) {
	rows, err := r.q.Query(ctx, `SELECT sku, fingerprint, quantity, reorder_point FROM inventory_items`)
	if err != nil {
		return nil, fmt.Errorf("snapshot de items: %w", err)
	}
	defer rows.Close()

	out := make(map[string]repository.ItemSnapshot)
	for rows.Next() {
		var sku string
		var s repository.ItemSnapshot
		if err := rows.Scan(&sku, &s.Fingerprint, &s.Quantity, &s.ReorderPoint); err != nil {
			return nil, fmt.Errorf("scan snapshot: %w", err)
		}
		out[sku] = s
	}
	return out, rows.Err()
}

// AdjustQuantity incrementa (o decrementa) las existencias de un SKU.
// Usado por la recepción de órdenes de compra dentro de una transacción.
func (r *InventoryItemRepo) AdjustQuantity(ctx context.Context, sku string, delta int64) error {
	cmd, err := r.q.Exec(ctx,
		`UPDATE inventory_items SET quantity = quantity + $2, updated_at = now() WHERE sku = $1`,
		sku, delta,
	)
	if err != nil {
		return fmt.Errorf("ajustar existencias: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
