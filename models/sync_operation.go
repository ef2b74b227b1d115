package models

import (
	"encoding/json"
	"fmt"
	"time"
)

// OperationKind is the mutation kind carried by a queued operation.
type OperationKind string

const (
	OpCreate OperationKind = "create"
	OpUpdate OperationKind = "update"
	OpDelete OperationKind = "delete"
)

// Valid reports whether k is one of the known operation kinds.
func (k OperationKind) Valid() bool {
	switch k {
	case OpCreate, OpUpdate, OpDelete:
		return true
	}
	return false
}

// SyncOperation is a durable record of one pending mutation. Payload is
// the entity snapshot captured at enqueue time; it is nil for deletes.
type SyncOperation struct {
	ID         string          `json:"id"`
	Kind       OperationKind   `json:"kind"`
	EntityType EntityType      `json:"entity_type"`
	EntityID   string          `json:"entity_id"`
	Payload    json.RawMessage `json:"payload,omitempty"`
	EnqueuedAt time.Time       `json:"enqueued_at"`
	RetryCount int             `json:"retry_count"`
}

// OperationID derives a queue operation identifier from the operation
// coordinates plus a unique suffix. The suffix keeps IDs unique even when
// the same logical operation is enqueued twice within one clock tick.
func OperationID(kind OperationKind, entityType EntityType, entityID string, at time.Time, suffix string) string {
	return fmt.Sprintf("%s_%s_%s_%d_%s", kind, entityType, entityID, at.UnixMilli(), suffix)
}
