package repository

import (
	"context"

	"github.com/jhoicas/stocksync-api/internal/domain/entity"
)

// ItemSnapshot estado mínimo de un SKU ya persistido, usado por la detección de cambios
// y por la detección de cruce de umbral (cantidad anterior vs nueva).
type ItemSnapshot struct {
	Fingerprint  string
	Quantity     int64
	ReorderPoint int64
}

// InventoryItemRepository puerto de persistencia para InventoryItem (DIP).
type InventoryItemRepository interface {
	GetBySKU(ctx context.Context, sku string) (*entity.InventoryItem, error)
	List(ctx context.Context, limit, offset int) ([]*entity.InventoryItem, error)
	Update(ctx context.Context, item *entity.InventoryItem) error
	SetActive(ctx context.Context, sku string, active bool) error
	// UpsertBatch inserta o actualiza por SKU en un solo statement multi-fila.
	UpsertBatch(ctx context.Context, items []*entity.InventoryItem) error
	// SnapshotBySKU devuelve fingerprint y cantidad actual de todos los SKUs persistidos.
	SnapshotBySKU(ctx context.Context) (map[string]ItemSnapshot, error)
	// AdjustQuantity incrementa (o decrementa) las existencias de un SKU.
	AdjustQuantity(ctx context.Context, sku string, delta int64) error
}
