package models

import "time"

// SyncSnapshot is a point-in-time view of the synchronizer for status
// display and polling. It carries no references into live state.
type SyncSnapshot struct {
	IsSyncing         bool `json:"is_syncing"`
	IsOnline          bool `json:"is_online"`
	PendingOperations int  `json:"pending_operations"`
	OfflineMode       bool `json:"offline_mode"`
}

// SyncError records one permanently failed operation. The synchronizer
// keeps only the most recent entries in a fixed-size ring.
type SyncError struct {
	OperationID string     `json:"operation_id"`
	EntityType  EntityType `json:"entity_type"`
	EntityID    string     `json:"entity_id"`
	Message     string     `json:"message"`
	At          time.Time  `json:"at"`
}
