package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/stocksync-api/internal/domain/entity"
	"github.com/jhoicas/stocksync-api/internal/domain/repository"
)

var _ repository.SettingsRepository = (*SettingsRepo)(nil)

// SettingsRepo implementación del puerto SettingsRepository sobre PostgreSQL.
// La tabla tiene una sola fila con id fijo; una fila ausente no es error.
type SettingsRepo struct {
	q Querier
}

// NewSettingsRepository construye el adaptador de persistencia para settings.
func NewSettingsRepository(q Querier) *SettingsRepo {
	return &SettingsRepo{q: q}
}

// Get lee la fila única de settings; devuelve nil si aún no existe.
func (r *SettingsRepo) Get(ctx context.Context) (*entity.Settings, error) {
	var s entity.Settings
	err := r.q.QueryRow(ctx, `
		SELECT id, finale_account, finale_api_key, finale_api_secret,
		       sync_enabled, alerts_enabled, alert_recipients, updated_at
		FROM settings WHERE id = $1`, entity.SettingsID,
	).Scan(
		&s.ID, &s.FinaleAccount, &s.FinaleAPIKey, &s.FinaleAPISecret,
		&s.SyncEnabled, &s.AlertsEnabled, &s.AlertRecipients, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get settings: %w", err)
	}
	return &s, nil
}

// Upsert crea o reemplaza la fila única (semántica upsert-or-create sobre el id fijo).
func (r *SettingsRepo) Upsert(ctx context.Context, s *entity.Settings) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO settings (id, finale_account, finale_api_key, finale_api_secret,
		                      sync_enabled, alerts_enabled, alert_recipients, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, now())
		ON CONFLICT (id) DO UPDATE SET
			finale_account = EXCLUDED.finale_account,
			finale_api_key = EXCLUDED.finale_api_key,
			finale_api_secret = EXCLUDED.finale_api_secret,
			sync_enabled = EXCLUDED.sync_enabled,
			alerts_enabled = EXCLUDED.alerts_enabled,
			alert_recipients = EXCLUDED.alert_recipients,
			updated_at = now()`,
		entity.SettingsID, s.FinaleAccount, s.FinaleAPIKey, s.FinaleAPISecret,
		s.SyncEnabled, s.AlertsEnabled, s.AlertRecipients,
	)
	if err != nil {
		return fmt.Errorf("upsert settings: %w", err)
	}
	return nil
}
