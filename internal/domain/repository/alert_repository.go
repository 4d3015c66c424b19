package repository

import (
	"context"

	"github.com/jhoicas/stocksync-api/internal/domain/entity"
)

// AlertRepository puerto de persistencia para Alert (DIP).
type AlertRepository interface {
	Create(ctx context.Context, alert *entity.Alert) error
	// HasOpenForSKU indica si existe una alerta sin reconocer para el SKU
	// (base de la supresión de alertas repetidas).
	HasOpenForSKU(ctx context.Context, sku string) (bool, error)
	Acknowledge(ctx context.Context, id string) error
	List(ctx context.Context, onlyOpen bool, limit, offset int) ([]*entity.Alert, error)
}
