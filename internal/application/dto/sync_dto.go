package dto

import "time"

// TriggerSyncRequest cuerpo de POST /api/sync/trigger.
type TriggerSyncRequest struct {
	Strategy string `json:"strategy"`
	DryRun   bool   `json:"dry_run"`
}

// SyncRunResponse contadores de una corrida (respuesta de trigger).
type SyncRunResponse struct {
	LogID        string `json:"log_id"`
	Strategy     string `json:"strategy"`
	Status       string `json:"status"`
	DryRun       bool   `json:"dry_run"`
	ItemsSeen    int    `json:"items_seen"`
	ItemsChanged int    `json:"items_changed"`
	ItemsFailed  int    `json:"items_failed"`
}

// SyncLogResponse una entrada del log de sincronización.
type SyncLogResponse struct {
	ID           string     `json:"id"`
	Strategy     string     `json:"strategy"`
	Status       string     `json:"status"`
	DryRun       bool       `json:"dry_run"`
	ItemsSeen    int        `json:"items_seen"`
	ItemsChanged int        `json:"items_changed"`
	ItemsFailed  int        `json:"items_failed"`
	ErrorSummary string     `json:"error_summary,omitempty"`
	StartedAt    time.Time  `json:"started_at"`
	FinishedAt   *time.Time `json:"finished_at,omitempty"`
}

// SyncStatusResponse estado para el polling de la UI.
type SyncStatusResponse struct {
	Running   bool             `json:"running"`
	LatestRun *SyncLogResponse `json:"latest_run,omitempty"`
}
