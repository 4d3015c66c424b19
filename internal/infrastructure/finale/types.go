package finale

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/stocksync-api/internal/application/sync"
)

// Payloads JSON del API de Finale. Los nombres de campo siguen el wire format
// de Finale, no nuestras entidades; el mapeo a dominio vive en toRemote*.

type productPayload struct {
	ProductID       string          `json:"productId"` // el SKU
	InternalName    string          `json:"internalName"`
	QuantityOnHand  int64           `json:"quantityOnHand"`
	AverageCost     decimal.Decimal `json:"averageCost"`
	ReorderPoint    int64           `json:"reorderPoint"`
	SupplierPartyID string          `json:"supplierPartyId"`
	LastUpdatedDate time.Time       `json:"lastUpdatedDate"`
}

func (p productPayload) toRemote() sync.RemoteItem {
	return sync.RemoteItem{
		SKU:              p.ProductID,
		Name:             p.InternalName,
		Quantity:         p.QuantityOnHand,
		UnitCost:         p.AverageCost,
		ReorderPoint:     p.ReorderPoint,
		VendorExternalID: p.SupplierPartyID,
		UpdatedAt:        p.LastUpdatedDate,
	}
}

type partyPayload struct {
	PartyID   string `json:"partyId"`
	GroupName string `json:"groupName"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
}

func (p partyPayload) toRemote() sync.RemoteVendor {
	return sync.RemoteVendor{
		ExternalID: p.PartyID,
		Name:       p.GroupName,
		Email:      p.Email,
		Phone:      p.Phone,
	}
}

type orderItemPayload struct {
	ProductID string          `json:"productId"`
	Quantity  int64           `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
}

type orderPayload struct {
	OrderID       string             `json:"orderId"`
	VendorPartyID string             `json:"vendorPartyId"`
	StatusID      string             `json:"statusId"`
	OrderDate     time.Time          `json:"orderDate"`
	Items         []orderItemPayload `json:"orderItemList"`
}

func (o orderPayload) toRemote() sync.RemoteOrder {
	out := sync.RemoteOrder{
		ExternalID:       o.OrderID,
		VendorExternalID: o.VendorPartyID,
		Status:           mapOrderStatus(o.StatusID),
		OrderDate:        o.OrderDate,
	}
	for _, it := range o.Items {
		out.Lines = append(out.Lines, sync.RemoteOrderLine{
			SKU:      it.ProductID,
			Quantity: it.Quantity,
			UnitCost: it.UnitPrice,
		})
	}
	return out
}

// mapOrderStatus traduce los statusId de Finale a nuestros estados de orden.
func mapOrderStatus(statusID string) string {
	switch statusID {
	case "PURCHASE_ORDER_COMPLETED":
		return "received"
	case "PURCHASE_ORDER_CANCELLED":
		return "cancelled"
	case "PURCHASE_ORDER_ISSUED":
		return "submitted"
	default:
		return "open"
	}
}
