package models

import (
	"encoding/json"
	"time"
)

// SyncStatus tags a locally persisted item with its reconciliation state
// against the remote service.
type SyncStatus string

const (
	// StatusSynced means the local copy matches what was last confirmed
	// by the remote service.
	StatusSynced SyncStatus = "synced"

	// StatusPending means the local copy carries changes that have not
	// been confirmed remotely yet.
	StatusPending SyncStatus = "pending"

	// StatusConflict means the local and remote copies diverged and the
	// item needs attention. The sync core never sets this on its own;
	// it is reserved for future conflict detection.
	StatusConflict SyncStatus = "conflict"
)

// Reserved local-store keys. SweepExpired skips ReservedKeys; everything
// else is subject to lazy and batch expiration.
const (
	KeyOperationQueue = "sync_operation_queue"
	KeySchemaVersion  = "app_schema_version"

	KeyWastes  = "garbage_social_wastes"
	KeyUsers   = "garbage_social_users"
	KeyRatings = "garbage_social_ratings"
)

// ReservedKeys are never removed by SweepExpired.
var ReservedKeys = []string{KeySchemaVersion}

// StorageItem is the envelope every value in the durable local store is
// wrapped in. Data holds the payload as raw JSON so that metadata can be
// inspected without deserializing potentially large payloads.
type StorageItem struct {
	Data          json.RawMessage `json:"data"`
	Timestamp     time.Time       `json:"timestamp"`
	ExpiresAt     *time.Time      `json:"expires_at,omitempty"`
	SchemaVersion string          `json:"schema_version"`
	SyncStatus    SyncStatus      `json:"sync_status"`
}

// Expired reports whether the item's expiration instant has passed.
// Items with a nil ExpiresAt never expire.
func (it StorageItem) Expired(now time.Time) bool {
	return it.ExpiresAt != nil && now.After(*it.ExpiresAt)
}

// ItemMeta is the envelope metadata of a stored item without its payload.
type ItemMeta struct {
	Key           string     `json:"key"`
	Timestamp     time.Time  `json:"timestamp"`
	ExpiresAt     *time.Time `json:"expires_at,omitempty"`
	SchemaVersion string     `json:"schema_version"`
	SyncStatus    SyncStatus `json:"sync_status"`
}
