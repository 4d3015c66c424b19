package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una orden de compra.
const (
	POStatusOpen      = "open"
	POStatusSubmitted = "submitted"
	POStatusReceived  = "received"
	POStatusCancelled = "cancelled"
)

// PurchaseOrder orden de compra sincronizada desde Finale o creada localmente.
type PurchaseOrder struct {
	ID         string
	ExternalID string // id de la orden en Finale (vacío si es local)
	VendorID   string
	Status     string
	OrderDate  time.Time
	ReceivedAt *time.Time
	Total      decimal.Decimal
	Lines      []PurchaseOrderLine
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// PurchaseOrderLine renglón de una orden de compra.
type PurchaseOrderLine struct {
	ID       string
	OrderID  string
	SKU      string
	Quantity int64
	UnitCost decimal.Decimal
}
