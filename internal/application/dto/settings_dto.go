package dto

import "time"

// SettingsResponse settings actuales. El secret del API nunca se devuelve completo.
type SettingsResponse struct {
	FinaleAccount   string    `json:"finale_account"`
	FinaleAPIKeySet bool      `json:"finale_api_key_set"`
	SyncEnabled     bool      `json:"sync_enabled"`
	AlertsEnabled   bool      `json:"alerts_enabled"`
	AlertRecipients string    `json:"alert_recipients"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// SaveSettingsRequest upsert de la fila única de settings.
// Key/Secret vacíos conservan los valores ya guardados.
type SaveSettingsRequest struct {
	FinaleAccount   string  `json:"finale_account"`
	FinaleAPIKey    string  `json:"finale_api_key"`
	FinaleAPISecret string  `json:"finale_api_secret"`
	SyncEnabled     *bool   `json:"sync_enabled"`
	AlertsEnabled   *bool   `json:"alerts_enabled"`
	AlertRecipients *string `json:"alert_recipients"`
}
