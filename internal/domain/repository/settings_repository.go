package repository

import (
	"context"

	"github.com/jhoicas/stocksync-api/internal/domain/entity"
)

// SettingsRepository puerto para la fila única de settings.
// Get devuelve nil (sin error) cuando la fila no existe todavía;
// Upsert crea o reemplaza siempre sobre el id fijo entity.SettingsID.
type SettingsRepository interface {
	Get(ctx context.Context) (*entity.Settings, error)
	Upsert(ctx context.Context, s *entity.Settings) error
}
