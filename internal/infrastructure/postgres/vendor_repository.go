package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/stocksync-api/internal/domain/entity"
	"github.com/jhoicas/stocksync-api/internal/domain/repository"
)

var _ repository.VendorRepository = (*VendorRepo)(nil)

// VendorRepo implementación del puerto VendorRepository sobre PostgreSQL.
type VendorRepo struct {
	q Querier
}

// NewVendorRepository construye el adaptador de persistencia para proveedores.
func NewVendorRepository(q Querier) *VendorRepo {
	return &VendorRepo{q: q}
}

// GetByExternalID obtiene un proveedor por su id externo (Finale).
func (r *VendorRepo) GetByExternalID(ctx context.Context, externalID string) (*entity.Vendor, error) {
	query := `
		SELECT id, external_id, name, email, phone, created_at, updated_at
		FROM vendors WHERE external_id = $1`
	var v entity.Vendor
	err := r.q.QueryRow(ctx, query, externalID).Scan(
		&v.ID, &v.ExternalID, &v.Name, &v.Email, &v.Phone, &v.CreatedAt, &v.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get vendor: %w", err)
	}
	return &v, nil
}

// List lista proveedores con paginación.
func (r *VendorRepo) List(ctx context.Context, limit, offset int) ([]*entity.Vendor, error) {
	query := `
		SELECT id, external_id, name, email, phone, created_at, updated_at
		FROM vendors ORDER BY name LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list vendors: %w", err)
	}
	defer rows.Close()
	var list []*entity.Vendor
	for rows.Next() {
		var v entity.Vendor
		if err := rows.Scan(&v.ID, &v.ExternalID, &v.Name, &v.Email, &v.Phone, &v.CreatedAt, &v.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan vendor: %w", err)
		}
		list = append(list, &v)
	}
	return list, rows.Err()
}

// UpsertBatch inserta o actualiza por external_id en un solo INSERT multi-fila.
func (r *VendorRepo) UpsertBatch(ctx context.Context, vendors []*entity.Vendor) error {
	if len(vendors) == 0 {
		return nil
	}

	var sb strings.Builder
	sb.WriteString(`
		INSERT INTO vendors (id, external_id, name, email, phone, created_at, updated_at)
		VALUES `)
	args := make([]any, 0, len(vendors)*5)
	for i, v := range vendors {
		if i > 0 {
			sb.WriteString(", ")
		}
		base := i * 5
		fmt.Fprintf(&sb, "($%d, $%d, $%d, $%d, $%d, now(), now())",
			base+1, base+2, base+3, base+4, base+5)
		args = append(args, v.ID, v.ExternalID, v.Name, v.Email, v.Phone)
	}
	sb.WriteString(`
		ON CONFLICT (external_id) DO UPDATE SET
			name = EXCLUDED.name,
			email = EXCLUDED.email,
			phone = EXCLUDED.phone,
			updated_at = now()`)

	if _, err := r.q.Exec(ctx, sb.String(), args...); err != nil {
		return fmt.Errorf("upsert batch de vendors: %w", err)
	}
	return nil
}
