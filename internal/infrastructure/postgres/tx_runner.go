package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/stocksync-api/internal/application/usecase"
	"github.com/jhoicas/stocksync-api/internal/domain/repository"
)

// Ensure TxRunner implements usecase.ReceiveTxRunner.
var _ usecase.ReceiveTxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// RunReceive inicia una transacción con repos de items y órdenes atados a la tx
// y hace Commit o Rollback. Usado para recibir una orden de compra: el cambio
// de estado y los ajustes de existencias se confirman juntos o ninguno.
func (r *TxRunner) RunReceive(ctx context.Context, fn func(
	itemRepo repository.InventoryItemRepository,
	orderRepo repository.PurchaseOrderRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	itemRepo := NewInventoryItemRepository(tx)
	orderRepo := NewPurchaseOrderRepository(tx)

	if err := fn(itemRepo, orderRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
