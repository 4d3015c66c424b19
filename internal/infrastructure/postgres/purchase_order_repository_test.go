package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stocksync-api/internal/domain"
	"github.com/jhoicas/stocksync-api/internal/domain/entity"
)

// Test interno al paquete: estas piezas (helper de códigos pg y mapeo a errores
// de dominio) se verifican con un Querier de mentira, sin base de datos.

func TestIsUniqueViolation_DetectaCodigo23505(t *testing.T) {
	base := &pgconn.PgError{Code: "23505"}

	assert.True(t, isUniqueViolation(base))
	assert.True(t, isUniqueViolation(fmt.Errorf("insertar renglón: %w", base)),
		"el código debe detectarse aunque el error venga envuelto")
	assert.False(t, isUniqueViolation(&pgconn.PgError{Code: "23503"}),
		"una violación de foreign key no es un duplicado")
	assert.False(t, isUniqueViolation(errors.New("timeout")))
}

// lineConflictQuerier acepta el upsert de la orden y el DELETE de renglones,
// pero revienta con 23505 al insertar renglones (SKU repetido en la orden).
type lineConflictQuerier struct{}

func (lineConflictQuerier) Exec(_ context.Context, sql string, _ ...any) (pgconn.CommandTag, error) {
	if strings.Contains(sql, "INSERT INTO purchase_order_lines") {
		return pgconn.CommandTag{}, &pgconn.PgError{
			Code:           "23505",
			ConstraintName: "purchase_order_lines_order_id_sku_key",
		}
	}
	return pgconn.NewCommandTag("DELETE 0"), nil
}

func (lineConflictQuerier) Query(context.Context, string, ...any) (pgx.Rows, error) {
	return nil, errors.New("no usado en este test")
}

func (lineConflictQuerier) QueryRow(context.Context, string, ...any) pgx.Row {
	return stubRow{id: "11111111-1111-1111-1111-111111111111"}
}

type stubRow struct{ id string }

func (r stubRow) Scan(dest ...any) error {
	*(dest[0].(*string)) = r.id
	return nil
}

func TestUpsertBatch_RenglonDuplicadoMapeaErrDuplicate(t *testing.T) {
	repo := NewPurchaseOrderRepository(lineConflictQuerier{})

	order := &entity.PurchaseOrder{
		ID:         "22222222-2222-2222-2222-222222222222",
		ExternalID: "PO-1",
		Status:     entity.POStatusOpen,
		Lines: []entity.PurchaseOrderLine{
			{ID: "33333333-3333-3333-3333-333333333333", SKU: "SKU-1", Quantity: 2},
		},
	}

	err := repo.UpsertBatch(context.Background(), []*entity.PurchaseOrder{order})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrDuplicate,
		"un SKU repetido dentro de la orden debe llegar como error de dominio, no como PgError crudo")
	assert.Contains(t, err.Error(), "PO-1")
	assert.Contains(t, err.Error(), "SKU-1")
}
