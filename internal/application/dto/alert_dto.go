package dto

import "time"

// AlertResponse alerta de stock bajo.
type AlertResponse struct {
	ID           string    `json:"id"`
	SKU          string    `json:"sku"`
	Severity     string    `json:"severity"`
	Message      string    `json:"message"`
	Acknowledged bool      `json:"acknowledged"`
	CreatedAt    time.Time `json:"created_at"`
}

// AlertListResponse listado paginado de alertas.
type AlertListResponse struct {
	Items []AlertResponse `json:"items"`
	Page  PageResponse    `json:"page"`
}
