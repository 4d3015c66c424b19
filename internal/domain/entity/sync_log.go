package entity

import "time"

// Estados terminales y de corrida de un SyncLog.
const (
	SyncStatusRunning   = "running"
	SyncStatusCompleted = "completed"
	SyncStatusFailed    = "failed"
)

// Estrategias de sincronización soportadas.
const (
	StrategyInventory      = "inventory"
	StrategyVendors        = "vendors"
	StrategyPurchaseOrders = "purchase_orders"
	StrategyFull           = "full"
	StrategyCritical       = "critical"
)

// SyncLog registro append-only de una corrida del orquestador.
// Se crea al inicio en estado running y se finaliza exactamente una vez;
// después de eso nunca se muta.
type SyncLog struct {
	ID           string
	Strategy     string
	Status       string
	DryRun       bool
	ItemsSeen    int
	ItemsChanged int
	ItemsFailed  int
	ErrorSummary string
	StartedAt    time.Time
	FinishedAt   *time.Time
}

// ValidStrategy indica si el nombre corresponde a una estrategia conocida.
func ValidStrategy(s string) bool {
	switch s {
	case StrategyInventory, StrategyVendors, StrategyPurchaseOrders, StrategyFull, StrategyCritical:
		return true
	}
	return false
}
