package usecase

import (
	"context"

	"github.com/jhoicas/stocksync-api/internal/application/dto"
	"github.com/jhoicas/stocksync-api/internal/domain/entity"
	"github.com/jhoicas/stocksync-api/internal/domain/repository"
)

// AlertUseCase lectura y reconocimiento de alertas de stock bajo.
type AlertUseCase struct {
	repo repository.AlertRepository
}

// NewAlertUseCase construye el caso de uso.
func NewAlertUseCase(repo repository.AlertRepository) *AlertUseCase {
	return &AlertUseCase{repo: repo}
}

// List lista alertas (onlyOpen filtra las no reconocidas).
func (uc *AlertUseCase) List(ctx context.Context, onlyOpen bool, limit, offset int) (*dto.AlertListResponse, error) {
	list, err := uc.repo.List(ctx, onlyOpen, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.AlertResponse, 0, len(list))
	for _, a := range list {
		items = append(items, *toAlertResponse(a))
	}
	return &dto.AlertListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// Acknowledge marca la alerta como reconocida; a partir de ahí el notificador
// vuelve a alertar en el siguiente cruce de umbral del mismo SKU.
func (uc *AlertUseCase) Acknowledge(ctx context.Context, id string) error {
	return uc.repo.Acknowledge(ctx, id)
}

func toAlertResponse(a *entity.Alert) *dto.AlertResponse {
	return &dto.AlertResponse{
		ID:           a.ID,
		SKU:          a.SKU,
		Severity:     a.Severity,
		Message:      a.Message,
		Acknowledged: a.Acknowledged,
		CreatedAt:    a.CreatedAt,
	}
}
