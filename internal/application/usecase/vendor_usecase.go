package usecase

import (
	"context"

	"github.com/jhoicas/stocksync-api/internal/application/dto"
	"github.com/jhoicas/stocksync-api/internal/domain/entity"
	"github.com/jhoicas/stocksync-api/internal/domain/repository"
)

// VendorUseCase lectura de proveedores (las altas llegan solo por sync).
type VendorUseCase struct {
	repo repository.VendorRepository
}

// NewVendorUseCase construye el caso de uso.
func NewVendorUseCase(repo repository.VendorRepository) *VendorUseCase {
	return &VendorUseCase{repo: repo}
}

// GetByExternalID obtiene un proveedor por su id externo.
func (uc *VendorUseCase) GetByExternalID(ctx context.Context, externalID string) (*dto.VendorResponse, error) {
	v, err := uc.repo.GetByExternalID(ctx, externalID)
	if err != nil {
		return nil, err
	}
	if v == nil {
		return nil, nil
	}
	return toVendorResponse(v), nil
}

// List lista proveedores con paginación.
func (uc *VendorUseCase) List(ctx context.Context, limit, offset int) (*dto.VendorListResponse, error) {
	list, err := uc.repo.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.VendorResponse, 0, len(list))
	for _, v := range list {
		items = append(items, *toVendorResponse(v))
	}
	return &dto.VendorListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

func toVendorResponse(v *entity.Vendor) *dto.VendorResponse {
	if v == nil {
		return nil
	}
	return &dto.VendorResponse{
		ID:         v.ID,
		ExternalID: v.ExternalID,
		Name:       v.Name,
		Email:      v.Email,
		Phone:      v.Phone,
		UpdatedAt:  v.UpdatedAt,
	}
}
