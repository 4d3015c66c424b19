package entity

import (
	"strings"
	"time"
)

// SettingsID id fijo de la fila única de settings (upsert-or-create).
const SettingsID = "00000000-0000-0000-0000-000000000001"

// Settings fila única con credenciales de Finale y toggles del notificador.
// Se lee antes de cada corrida de sync; nunca se cachea entre corridas.
type Settings struct {
	ID              string
	FinaleAccount   string // identificador de cuenta en la ruta base del API
	FinaleAPIKey    string
	FinaleAPISecret string
	SyncEnabled     bool
	AlertsEnabled   bool
	AlertRecipients string // emails separados por coma
	UpdatedAt       time.Time
}

// HasFinaleCredentials indica si hay credenciales suficientes para sincronizar.
func (s *Settings) HasFinaleCredentials() bool {
	return s != nil && s.FinaleAccount != "" && s.FinaleAPIKey != "" && s.FinaleAPISecret != ""
}

// Recipients devuelve la lista de destinatarios de alertas, sin vacíos.
func (s *Settings) Recipients() []string {
	if s == nil || s.AlertRecipients == "" {
		return nil
	}
	parts := strings.Split(s.AlertRecipients, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
