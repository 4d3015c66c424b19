package usecase

import (
	"context"

	"github.com/jhoicas/stocksync-api/internal/application/dto"
	"github.com/jhoicas/stocksync-api/internal/domain/entity"
	"github.com/jhoicas/stocksync-api/internal/domain/repository"
)

// SettingsUseCase lectura y guardado de la fila única de settings.
type SettingsUseCase struct {
	repo repository.SettingsRepository
}

// NewSettingsUseCase construye el caso de uso.
func NewSettingsUseCase(repo repository.SettingsRepository) *SettingsUseCase {
	return &SettingsUseCase{repo: repo}
}

// Get devuelve los settings actuales; nil si nunca se han guardado.
// El secret jamás sale en la respuesta, solo el flag de "configurado".
func (uc *SettingsUseCase) Get(ctx context.Context) (*dto.SettingsResponse, error) {
	s, err := uc.repo.Get(ctx)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, nil
	}
	return toSettingsResponse(s), nil
}

// Save hace upsert sobre la fila fija. Key/secret vacíos en el request
// conservan los valores ya guardados (editar toggles sin re-tipear credenciales).
func (uc *SettingsUseCase) Save(ctx context.Context, in dto.SaveSettingsRequest) (*dto.SettingsResponse, error) {
	current, err := uc.repo.Get(ctx)
	if err != nil {
		return nil, err
	}
	if current == nil {
		current = &entity.Settings{ID: entity.SettingsID, SyncEnabled: true, AlertsEnabled: true}
	}

	if in.FinaleAccount != "" {
		current.FinaleAccount = in.FinaleAccount
	}
	if in.FinaleAPIKey != "" {
		current.FinaleAPIKey = in.FinaleAPIKey
	}
	if in.FinaleAPISecret != "" {
		current.FinaleAPISecret = in.FinaleAPISecret
	}
	if in.SyncEnabled != nil {
		current.SyncEnabled = *in.SyncEnabled
	}
	if in.AlertsEnabled != nil {
		current.AlertsEnabled = *in.AlertsEnabled
	}
	if in.AlertRecipients != nil {
		current.AlertRecipients = *in.AlertRecipients
	}

	if err := uc.repo.Upsert(ctx, current); err != nil {
		return nil, err
	}
	return toSettingsResponse(current), nil
}

func toSettingsResponse(s *entity.Settings) *dto.SettingsResponse {
	return &dto.SettingsResponse{
		FinaleAccount:   s.FinaleAccount,
		FinaleAPIKeySet: s.FinaleAPIKey != "" && s.FinaleAPISecret != "",
		SyncEnabled:     s.SyncEnabled,
		AlertsEnabled:   s.AlertsEnabled,
		AlertRecipients: s.AlertRecipients,
		UpdatedAt:       s.UpdatedAt,
	}
}
