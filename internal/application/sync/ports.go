package sync

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// Credentials credenciales de Finale para una corrida; se arman desde la fila
// de settings en cada Run, nunca se cachean.
type Credentials struct {
	Account   string
	APIKey    string
	APISecret string
}

// RemoteItem item tal como lo reporta Finale, ya mapeado a tipos de dominio.
type RemoteItem struct {
	SKU              string
	Name             string
	Quantity         int64
	UnitCost         decimal.Decimal
	ReorderPoint     int64
	VendorExternalID string
	UpdatedAt        time.Time
}

// RemoteVendor proveedor reportado por Finale.
type RemoteVendor struct {
	ExternalID string
	Name       string
	Email      string
	Phone      string
}

// RemoteOrderLine renglón de una orden remota.
type RemoteOrderLine struct {
	SKU      string
	Quantity int64
	UnitCost decimal.Decimal
}

// RemoteOrder orden de compra reportada por Finale.
type RemoteOrder struct {
	ExternalID       string
	VendorExternalID string
	Status           string
	OrderDate        time.Time
	Lines            []RemoteOrderLine
}

// InventoryGateway puerto de salida hacia el API de Finale. La implementación
// concreta pagina y aplica el rate limit; para tests se inyecta un fake.
type InventoryGateway interface {
	FetchItems(ctx context.Context, creds Credentials) ([]RemoteItem, error)
	FetchVendors(ctx context.Context, creds Credentials) ([]RemoteVendor, error)
	FetchPurchaseOrders(ctx context.Context, creds Credentials) ([]RemoteOrder, error)
}

// ThresholdEvent un SKU cruzó su umbral de reorden hacia abajo en esta corrida.
type ThresholdEvent struct {
	SKU              string
	Name             string
	Quantity         int64
	PreviousQuantity int64
	ReorderPoint     int64
	Recipients       []string
}

// ThresholdNotifier puerto best-effort hacia el notificador de alertas.
// No devuelve error: el contrato es que un fallo de alerta jamás afecta
// el resultado de la corrida (el impl loguea y sigue).
type ThresholdNotifier interface {
	Notify(ctx context.Context, ev ThresholdEvent)
}
