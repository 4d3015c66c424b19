package entity

import "time"

// Vendor proveedor externo referenciado por los items (muchos items -> un vendor).
// ExternalID es el identificador asignado por Finale; nunca lo generamos nosotros.
type Vendor struct {
	ID         string
	ExternalID string
	Name       string
	Email      string
	Phone      string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
