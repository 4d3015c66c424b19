package usecase

import (
	"context"

	"github.com/jhoicas/stocksync-api/internal/application/dto"
	"github.com/jhoicas/stocksync-api/internal/domain"
	"github.com/jhoicas/stocksync-api/internal/domain/entity"
	"github.com/jhoicas/stocksync-api/internal/domain/repository"
)

// PurchaseOrderUseCase lectura y recepción de órdenes de compra.
type PurchaseOrderUseCase struct {
	repo     repository.PurchaseOrderRepository
	txRunner ReceiveTxRunner
}

// NewPurchaseOrderUseCase construye el caso de uso.
func NewPurchaseOrderUseCase(repo repository.PurchaseOrderRepository, txRunner ReceiveTxRunner) *PurchaseOrderUseCase {
	return &PurchaseOrderUseCase{repo: repo, txRunner: txRunner}
}

// GetByID obtiene una orden con renglones.
func (uc *PurchaseOrderUseCase) GetByID(ctx context.Context, id string) (*dto.PurchaseOrderResponse, error) {
	o, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, nil
	}
	return toPurchaseOrderResponse(o), nil
}

// List lista órdenes con paginación.
func (uc *PurchaseOrderUseCase) List(ctx context.Context, limit, offset int) (*dto.PurchaseOrderListResponse, error) {
	list, err := uc.repo.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.PurchaseOrderResponse, 0, len(list))
	for _, o := range list {
		items = append(items, *toPurchaseOrderResponse(o))
	}
	return &dto.PurchaseOrderListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// Receive marca la orden como recibida e incrementa las existencias de cada
// renglón, todo dentro de una transacción: o entra todo el pedido o nada.
func (uc *PurchaseOrderUseCase) Receive(ctx context.Context, id string) (*dto.PurchaseOrderResponse, error) {
	order, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}
	if order.Status == entity.POStatusReceived {
		return nil, domain.ErrOrdenYaRecibida
	}

	err = uc.txRunner.RunReceive(ctx, func(
		itemRepo repository.InventoryItemRepository,
		orderRepo repository.PurchaseOrderRepository,
	) error {
		if err := orderRepo.MarkReceived(ctx, order); err != nil {
			return err
		}
		for _, line := range order.Lines {
			if err := itemRepo.AdjustQuantity(ctx, line.SKU, line.Quantity); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toPurchaseOrderResponse(order), nil
}

func toPurchaseOrderResponse(o *entity.PurchaseOrder) *dto.PurchaseOrderResponse {
	if o == nil {
		return nil
	}
	resp := &dto.PurchaseOrderResponse{
		ID:         o.ID,
		ExternalID: o.ExternalID,
		VendorID:   o.VendorID,
		Status:     o.Status,
		OrderDate:  o.OrderDate,
		ReceivedAt: o.ReceivedAt,
		Total:      o.Total,
	}
	for _, l := range o.Lines {
		resp.Lines = append(resp.Lines, dto.PurchaseOrderLineResponse{
			SKU:      l.SKU,
			Quantity: l.Quantity,
			UnitCost: l.UnitCost,
		})
	}
	return resp
}
