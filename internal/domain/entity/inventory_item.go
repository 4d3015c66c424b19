package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// InventoryItem representa un SKU sincronizado desde Finale.
// Fingerprint es el digest de los campos de negocio (ver domain/fingerprint);
// se recalcula en cada corrida y decide si la fila se reescribe.
// El sync nunca borra filas: la baja se modela con Active=false.
type InventoryItem struct {
	ID              string
	SKU             string // único en toda la tienda, asignado por el vendor
	Name            string
	Quantity        int64           // existencias on-hand, >= 0
	UnitCost        decimal.Decimal // costo unitario, >= 0
	ReorderPoint    int64           // umbral de reorden, >= 0
	VendorID        string          // referencia al vendor externo (puede ser vacío)
	Fingerprint     string          // digest hex del contenido de negocio
	Active          bool
	SourceUpdatedAt time.Time // last-modified reportado por Finale
	LastSyncedAt    time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// BelowReorderPoint indica si el item está en o bajo su umbral de reorden.
func (i *InventoryItem) BelowReorderPoint() bool {
	return i.Quantity <= i.ReorderPoint
}
