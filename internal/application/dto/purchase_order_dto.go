package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// PurchaseOrderLineResponse renglón de una orden de compra.
type PurchaseOrderLineResponse struct {
	SKU      string          `json:"sku"`
	Quantity int64           `json:"quantity"`
	UnitCost decimal.Decimal `json:"unit_cost"`
}

// PurchaseOrderResponse representación HTTP de una orden de compra.
type PurchaseOrderResponse struct {
	ID         string                      `json:"id"`
	ExternalID string                      `json:"external_id,omitempty"`
	VendorID   string                      `json:"vendor_id"`
	Status     string                      `json:"status"`
	OrderDate  time.Time                   `json:"order_date"`
	ReceivedAt *time.Time                  `json:"received_at,omitempty"`
	Total      decimal.Decimal             `json:"total"`
	Lines      []PurchaseOrderLineResponse `json:"lines"`
}

// PurchaseOrderListResponse listado paginado de órdenes.
type PurchaseOrderListResponse struct {
	Items []PurchaseOrderResponse `json:"items"`
	Page  PageResponse            `json:"page"`
}
