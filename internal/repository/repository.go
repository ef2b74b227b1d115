// Package repository implements the offline-first entity repositories for
// waste listings, user profiles, and ratings. Every write lands in the
// durable local store first, then either reaches the backend immediately
// or becomes a queued operation for the synchronizer to replay.
//
// Reads prefer the backend when it is reachable and fall back to the local
// cache silently otherwise; a failed remote read never surfaces to the
// caller as long as a cached copy exists.
package repository

import (
	"context"
	"time"

	"github.com/garbagesocial/gsclient/internal/adapter"
	"github.com/garbagesocial/gsclient/internal/logger"
	"github.com/garbagesocial/gsclient/internal/queue"
	"github.com/garbagesocial/gsclient/internal/store"
	"github.com/garbagesocial/gsclient/internal/utils"
	"github.com/garbagesocial/gsclient/models"
)

// Outcome reports how a write reached durability: applied on the backend
// right away, or captured as a queued operation for a later drain pass.
type Outcome string

const (
	OutcomeSynced Outcome = "synced"
	OutcomeQueued Outcome = "queued"
)

// ConnectivitySource is the repositories' read-side view of the
// connectivity monitor.
type ConnectivitySource interface {
	State() models.ConnectivityState
}

// base carries the shared collaborators of every entity repository.
type base struct {
	store  store.LocalStore
	remote adapter.RemoteService
	queue  *queue.Queue
	conn   ConnectivitySource
	logger *logger.Logger
	ids    *utils.UUIDGenerator
	now    func() time.Time
}

func newBase(st store.LocalStore, remote adapter.RemoteService, q *queue.Queue, conn ConnectivitySource, log *logger.Logger) base {
	return base{
		store:  st,
		remote: remote,
		queue:  q,
		conn:   conn,
		logger: log,
		ids:    utils.NewUUIDGenerator(),
		now:    time.Now,
	}
}

// attemptThenQueue tries the remote write when the backend is reachable
// and enqueues the operation otherwise (or when the attempt fails). The
// local write has already happened by the time this runs; the queue is
// the durability fallback, never the primary path.
func (b *base) attemptThenQueue(
	ctx context.Context,
	kind models.OperationKind,
	entityType models.EntityType,
	entityID string,
	payload any,
	attempt func(context.Context) error,
) (Outcome, error) {
	if b.conn.State().SyncEligible() {
		err := attempt(ctx)
		if err == nil {
			if markErr := b.store.MarkSynced(ctx, entityType.CollectionKey()); markErr != nil {
				b.logger.Warn().Err(markErr).
					Str("entity_type", string(entityType)).
					Msg("failed to mark collection synced")
			}
			return OutcomeSynced, nil
		}

		b.logger.Debug().Err(err).
			Str("kind", string(kind)).
			Str("entity_id", entityID).
			Msg("remote write failed, queueing for replay")
	}

	if _, err := b.queue.Enqueue(ctx, kind, entityType, entityID, payload); err != nil {
		return "", err
	}
	return OutcomeQueued, nil
}

// remoteReadable reports whether a remote-first read should even be tried.
func (b *base) remoteReadable() bool {
	return b.conn.State().SyncEligible()
}

// loadCollection reads the cached slice stored under key; a missing or
// expired collection loads as empty.
func loadCollection[T any](ctx context.Context, st store.LocalStore, key string) ([]T, error) {
	var items []T
	if _, err := st.Get(ctx, key, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// saveCollection replaces the cached slice under key, tagged with the
// given sync status.
func saveCollection[T any](ctx context.Context, st store.LocalStore, key string, items []T, status models.SyncStatus) error {
	return st.Put(ctx, key, items, store.WithSyncStatus(status))
}

// refreshCollection replaces the cached slice with a fresh remote snapshot
// while preserving entities whose queued mutations have not drained yet: a
// record created or updated offline keeps its local copy, and a record
// deleted offline is not resurrected by its remote row. Returns the merged
// slice; cache write failures are logged, not surfaced.
func refreshCollection[T any](ctx context.Context, b *base, entityType models.EntityType, remote []T, idOf func(T) string) []T {
	key := entityType.CollectionKey()
	pending := b.queue.PendingIDs(entityType)

	merged := remote
	status := models.StatusSynced
	if len(pending) > 0 {
		local, err := loadCollection[T](ctx, b.store, key)
		if err != nil {
			// better a stale cache than one missing pending entities
			b.logger.Warn().Err(err).Str("key", key).Msg("failed to load cache for refresh merge")
			return remote
		}
		merged = mergePending(remote, local, idOf, pending)
		status = models.StatusPending
	}

	if err := saveCollection(ctx, b.store, key, merged, status); err != nil {
		b.logger.Warn().Err(err).Str("key", key).Msg("failed to refresh cache")
	}
	return merged
}

// mergePending takes the remote snapshot as the authority for settled
// entities and the local cache as the authority for pending ones.
func mergePending[T any](remote, local []T, idOf func(T) string, pending map[string]struct{}) []T {
	merged := make([]T, 0, len(remote)+len(local))
	for _, item := range remote {
		if _, ok := pending[idOf(item)]; !ok {
			merged = append(merged, item)
		}
	}
	for _, item := range local {
		if _, ok := pending[idOf(item)]; ok {
			merged = append(merged, item)
		}
	}
	return merged
}

// upsertByID replaces the element with the same ID or appends item.
func upsertByID[T any](items []T, idOf func(T) string, item T) []T {
	id := idOf(item)
	for i := range items {
		if idOf(items[i]) == id {
			items[i] = item
			return items
		}
	}
	return append(items, item)
}

// removeByID drops the element with the given ID, reporting whether it
// was present.
func removeByID[T any](items []T, idOf func(T) string, id string) ([]T, bool) {
	for i := range items {
		if idOf(items[i]) == id {
			return append(items[:i], items[i+1:]...), true
		}
	}
	return items, false
}

// findByID returns the element with the given ID.
func findByID[T any](items []T, idOf func(T) string, id string) (T, bool) {
	for i := range items {
		if idOf(items[i]) == id {
			return items[i], true
		}
	}
	var zero T
	return zero, false
}
