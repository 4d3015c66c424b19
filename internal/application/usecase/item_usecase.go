package usecase

import (
	"context"

	"github.com/jhoicas/stocksync-api/internal/application/dto"
	"github.com/jhoicas/stocksync-api/internal/domain"
	"github.com/jhoicas/stocksync-api/internal/domain/entity"
	"github.com/jhoicas/stocksync-api/internal/domain/fingerprint"
	"github.com/jhoicas/stocksync-api/internal/domain/repository"
)

// ItemUseCase casos de uso de lectura/edición local de items. Las altas llegan
// solo por sync; aquí solo se editan umbral, costo y nombre, y la baja lógica.
type ItemUseCase struct {
	repo repository.InventoryItemRepository
	calc *fingerprint.Calculator
}

// NewItemUseCase construye el caso de uso.
func NewItemUseCase(repo repository.InventoryItemRepository) *ItemUseCase {
	return &ItemUseCase{repo: repo, calc: fingerprint.NewCalculator()}
}

// GetBySKU obtiene un item por SKU.
func (uc *ItemUseCase) GetBySKU(ctx context.Context, sku string) (*dto.ItemResponse, error) {
	item, err := uc.repo.GetBySKU(ctx, sku)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, nil
	}
	return toItemResponse(item), nil
}

// List lista items con paginación.
func (uc *ItemUseCase) List(ctx context.Context, limit, offset int) (*dto.ItemListResponse, error) {
	list, err := uc.repo.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ItemResponse, 0, len(list))
	for _, it := range list {
		items = append(items, *toItemResponse(it))
	}
	return &dto.ItemListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// Update edita los campos locales y recalcula el fingerprint para que la
// siguiente corrida de sync compare contra el contenido realmente guardado.
func (uc *ItemUseCase) Update(ctx context.Context, sku string, in dto.UpdateItemRequest) (*dto.ItemResponse, error) {
	item, err := uc.repo.GetBySKU(ctx, sku)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, nil
	}
	if in.Name != nil {
		item.Name = *in.Name
	}
	if in.ReorderPoint != nil {
		if *in.ReorderPoint < 0 {
			return nil, domain.ErrInvalidInput
		}
		item.ReorderPoint = *in.ReorderPoint
	}
	if in.UnitCost != nil {
		if in.UnitCost.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		item.UnitCost = *in.UnitCost
	}
	item.Fingerprint = uc.calc.Calculate(fingerprint.Fields{
		SKU:          item.SKU,
		Name:         item.Name,
		Quantity:     item.Quantity,
		UnitCost:     item.UnitCost,
		ReorderPoint: item.ReorderPoint,
	})
	if err := uc.repo.Update(ctx, item); err != nil {
		return nil, err
	}
	return toItemResponse(item), nil
}

// Deactivate baja lógica: el sync nunca borra filas, solo este flag las oculta.
func (uc *ItemUseCase) Deactivate(ctx context.Context, sku string) error {
	return uc.repo.SetActive(ctx, sku, false)
}

func toItemResponse(it *entity.InventoryItem) *dto.ItemResponse {
	if it == nil {
		return nil
	}
	return &dto.ItemResponse{
		ID:              it.ID,
		SKU:             it.SKU,
		Name:            it.Name,
		Quantity:        it.Quantity,
		UnitCost:        it.UnitCost,
		ReorderPoint:    it.ReorderPoint,
		VendorID:        it.VendorID,
		Active:          it.Active,
		BelowReorder:    it.BelowReorderPoint(),
		SourceUpdatedAt: it.SourceUpdatedAt,
		LastSyncedAt:    it.LastSyncedAt,
	}
}
