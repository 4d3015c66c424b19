package usecase

import (
	"context"

	"github.com/jhoicas/stocksync-api/internal/domain/repository"
)

// ReceiveTxRunner ejecuta una función dentro de una transacción que incluye
// repos de items y órdenes (recepción de orden de compra: estado + existencias
// atómicos). Si fn retorna error, el caller hace rollback.
type ReceiveTxRunner interface {
	RunReceive(ctx context.Context, fn func(
		itemRepo repository.InventoryItemRepository,
		orderRepo repository.PurchaseOrderRepository,
	) error) error
}
