package repository

import (
	"context"

	"github.com/jhoicas/stocksync-api/internal/domain/entity"
)

// PurchaseOrderRepository puerto de persistencia para PurchaseOrder (DIP).
type PurchaseOrderRepository interface {
	GetByID(ctx context.Context, id string) (*entity.PurchaseOrder, error)
	List(ctx context.Context, limit, offset int) ([]*entity.PurchaseOrder, error)
	UpsertBatch(ctx context.Context, orders []*entity.PurchaseOrder) error
	// MarkReceived fija estado received y la marca de tiempo; falla con
	// domain.ErrOrdenYaRecibida si ya estaba recibida.
	MarkReceived(ctx context.Context, order *entity.PurchaseOrder) error
}
