// Package store implements the durable local store: versioned, expiring
// key-value persistence shared by the entity repositories and the operation
// queue. Values are wrapped in a [models.StorageItem] envelope carrying a
// timestamp, an optional expiration instant, a schema version tag, and a
// sync status.
//
// Two implementations exist: an SQLite-backed one for real runs and a
// map-backed in-memory one selected by the ":memory:" DSN (tests,
// throwaway sessions). Reads of expired items behave as if the item were
// absent and remove it as a side effect (lazy expiration); SweepExpired
// removes the rest in one pass, intended to run once per application start.
package store

import (
	"context"
	"time"

	"github.com/garbagesocial/gsclient/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/local_store_mock.go -package=mock

// LocalStore is the durable local key-value store.
type LocalStore interface {
	// Put wraps value in a storage envelope and writes it under key,
	// replacing any previous item. Without options the item expires after
	// the store's default expiration and is tagged synced.
	Put(ctx context.Context, key string, value any, opts ...PutOption) error

	// Get reads the item under key and unmarshals its payload into dest.
	// It returns false when nothing is stored or the item has expired;
	// expired items are deleted as a side effect. A stored value that
	// predates the envelope format is transparently migrated and returned.
	Get(ctx context.Context, key string, dest any) (bool, error)

	// GetMeta returns the envelope metadata of the item under key without
	// touching the payload. Expired items are deleted and reported absent.
	GetMeta(ctx context.Context, key string) (models.ItemMeta, bool, error)

	// MarkPending flips the item's sync status to pending in place,
	// preserving payload and timestamps. Missing keys are a no-op.
	MarkPending(ctx context.Context, key string) error

	// MarkSynced flips the item's sync status to synced in place,
	// preserving payload and timestamps. Missing keys are a no-op.
	MarkSynced(ctx context.Context, key string) error

	// Remove deletes the item under key. Missing keys are a no-op.
	Remove(ctx context.Context, key string) error

	// SweepExpired deletes every expired item except the reserved keys
	// and returns how many were removed.
	SweepExpired(ctx context.Context) (int, error)

	// Close releases the underlying resources.
	Close() error
}

type putOptions struct {
	expiration *time.Duration // nil means store default
	never      bool
	status     models.SyncStatus
}

// PutOption customises a single Put call.
type PutOption func(*putOptions)

// WithExpiration overrides the default expiration for this item.
func WithExpiration(d time.Duration) PutOption {
	return func(o *putOptions) { o.expiration = &d }
}

// WithNoExpiration stores an item that never expires (e.g. the operation
// queue).
func WithNoExpiration() PutOption {
	return func(o *putOptions) { o.never = true }
}

// WithSyncStatus overrides the default "synced" status tag.
func WithSyncStatus(s models.SyncStatus) PutOption {
	return func(o *putOptions) { o.status = s }
}

func applyPutOptions(opts []PutOption) putOptions {
	o := putOptions{status: models.StatusSynced}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
