package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ItemResponse representación HTTP de un item de inventario.
type ItemResponse struct {
	ID              string          `json:"id"`
	SKU             string          `json:"sku"`
	Name            string          `json:"name"`
	Quantity        int64           `json:"quantity"`
	UnitCost        decimal.Decimal `json:"unit_cost"`
	ReorderPoint    int64           `json:"reorder_point"`
	VendorID        string          `json:"vendor_id,omitempty"`
	Active          bool            `json:"active"`
	BelowReorder    bool            `json:"below_reorder"`
	SourceUpdatedAt time.Time       `json:"source_updated_at"`
	LastSyncedAt    time.Time       `json:"last_synced_at"`
}

// ItemListResponse listado paginado de items.
type ItemListResponse struct {
	Items []ItemResponse `json:"items"`
	Page  PageResponse   `json:"page"`
}

// UpdateItemRequest campos editables localmente (el sync pisa quantity/cost/name).
type UpdateItemRequest struct {
	Name         *string          `json:"name"`
	ReorderPoint *int64           `json:"reorder_point"`
	UnitCost     *decimal.Decimal `json:"unit_cost"`
}
