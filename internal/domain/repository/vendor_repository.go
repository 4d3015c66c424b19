package repository

import (
	"context"

	"github.com/jhoicas/stocksync-api/internal/domain/entity"
)

// VendorRepository puerto de persistencia para Vendor (DIP).
type VendorRepository interface {
	GetByExternalID(ctx context.Context, externalID string) (*entity.Vendor, error)
	List(ctx context.Context, limit, offset int) ([]*entity.Vendor, error)
	UpsertBatch(ctx context.Context, vendors []*entity.Vendor) error
}
