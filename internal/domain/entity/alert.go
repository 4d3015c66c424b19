package entity

import "time"

// Severidades de alerta.
const (
	AlertSeverityWarning  = "warning"
	AlertSeverityCritical = "critical"
)

// Alert alerta de stock bajo generada por el notificador.
// Solo muta para marcar Acknowledged; se conserva indefinidamente.
type Alert struct {
	ID           string
	SKU          string
	Severity     string
	Message      string
	Acknowledged bool
	CreatedAt    time.Time
}
