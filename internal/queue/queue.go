// Package queue implements the durable operation queue: an ordered,
// persisted list of pending mutations replayed against the remote service
// when connectivity allows. The queue exclusively owns its persisted
// representation under [models.KeyOperationQueue]; repositories only reach
// it through Enqueue.
package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/garbagesocial/gsclient/internal/logger"
	"github.com/garbagesocial/gsclient/internal/metrics"
	"github.com/garbagesocial/gsclient/internal/store"
	"github.com/garbagesocial/gsclient/internal/utils"
	"github.com/garbagesocial/gsclient/models"
)

// Queue buffers mutations made while the remote service is unreachable.
// Operations are processed FIFO within one drain pass; ordering across
// passes is only guaranteed for operations already queued when the pass
// started.
type Queue struct {
	store   store.LocalStore
	logger  *logger.Logger
	ceiling int
	ids     *utils.UUIDGenerator

	mu  sync.Mutex
	ops []models.SyncOperation

	draining atomic.Bool

	now func() time.Time
}

// New loads the persisted queue (if any) and returns a Queue enforcing the
// given retry ceiling.
func New(ctx context.Context, st store.LocalStore, retryCeiling int, log *logger.Logger) (*Queue, error) {
	q := &Queue{
		store:   st,
		logger:  log,
		ceiling: retryCeiling,
		ids:     utils.NewUUIDGenerator(),
		now:     time.Now,
	}

	var persisted []models.SyncOperation
	found, err := st.Get(ctx, models.KeyOperationQueue, &persisted)
	if err != nil {
		return nil, fmt.Errorf("load operation queue: %w", err)
	}
	if found {
		q.ops = persisted
		log.Info().Int("pending", len(persisted)).Msg("restored operation queue")
	}
	metrics.QueueDepth.Set(float64(len(q.ops)))

	return q, nil
}

// Enqueue appends one pending mutation, persists the queue, and marks the
// affected entity collection pending in the local store. It performs no
// network I/O. The payload is snapshotted at enqueue time and must be nil
// for deletes.
func (q *Queue) Enqueue(ctx context.Context, kind models.OperationKind, entityType models.EntityType, entityID string, payload any) (string, error) {
	if !kind.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidKind, kind)
	}
	if !entityType.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidEntityType, entityType)
	}

	var raw json.RawMessage
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return "", fmt.Errorf("marshal operation payload: %w", err)
		}
		raw = data
	}

	now := q.now()
	op := models.SyncOperation{
		ID:         models.OperationID(kind, entityType, entityID, now, q.ids.Short()),
		Kind:       kind,
		EntityType: entityType,
		EntityID:   entityID,
		Payload:    raw,
		EnqueuedAt: now,
	}

	q.mu.Lock()
	q.ops = append(q.ops, op)
	q.persistLocked(ctx)
	depth := len(q.ops)
	q.mu.Unlock()

	if err := q.store.MarkPending(ctx, entityType.CollectionKey()); err != nil {
		q.logger.Warn().Err(err).
			Str("entity_type", string(entityType)).
			Msg("failed to mark collection pending")
	}

	metrics.QueueDepth.Set(float64(depth))
	q.logger.Debug().
		Str("op_id", op.ID).
		Str("kind", string(kind)).
		Str("entity_id", entityID).
		Msg("operation enqueued")

	return op.ID, nil
}

// Drain replays a snapshot of the current queue through the given handlers.
// A drain already in progress makes this call a no-op (Skipped result).
// Operations enqueued during the pass wait for the next one. A failing
// handler never aborts the pass; the failure is recorded on that operation
// alone.
func (q *Queue) Drain(ctx context.Context, handlers Handlers) (DrainResult, error) {
	if !q.draining.CompareAndSwap(false, true) {
		return DrainResult{Skipped: true}, nil
	}
	defer q.draining.Store(false)

	q.mu.Lock()
	snapshot := make([]models.SyncOperation, len(q.ops))
	copy(snapshot, q.ops)
	q.mu.Unlock()
	snapLen := len(snapshot)

	if snapLen == 0 {
		return DrainResult{}, nil
	}

	res := DrainResult{Processed: snapLen}
	survivors := make([]models.SyncOperation, 0, snapLen)

	for _, op := range snapshot {
		err := q.replay(ctx, handlers, op)
		if err == nil {
			res.Succeeded++
			metrics.SyncOpsSucceededTotal.WithLabelValues(string(op.EntityType)).Inc()
			if op.Kind != models.OpDelete {
				if markErr := q.store.MarkSynced(ctx, op.EntityType.CollectionKey()); markErr != nil {
					q.logger.Warn().Err(markErr).
						Str("op_id", op.ID).
						Msg("failed to mark collection synced")
				}
			}
			continue
		}

		op.RetryCount++
		if op.RetryCount >= q.ceiling {
			res.Dropped = append(res.Dropped, DroppedOperation{Op: op, Err: err})
			metrics.SyncOpsDroppedTotal.WithLabelValues(string(op.EntityType)).Inc()
			q.logger.Warn().Err(err).
				Str("op_id", op.ID).
				Str("entity_id", op.EntityID).
				Int("retries", op.RetryCount).
				Msg("operation exceeded retry ceiling, dropping permanently")
			continue
		}

		res.Failed++
		metrics.SyncOpsFailedTotal.WithLabelValues(string(op.EntityType)).Inc()
		survivors = append(survivors, op)
		q.logger.Debug().Err(err).
			Str("op_id", op.ID).
			Int("retries", op.RetryCount).
			Msg("operation replay failed, kept for next pass")
	}

	q.mu.Lock()
	// operations enqueued while the pass ran sit beyond the snapshot
	q.ops = append(survivors, q.ops[snapLen:]...)
	q.persistLocked(ctx)
	depth := len(q.ops)
	q.mu.Unlock()

	metrics.QueueDepth.Set(float64(depth))
	return res, nil
}

// replay dispatches one operation, catching handler panics so a broken
// handler cannot abort the whole pass.
func (q *Queue) replay(ctx context.Context, handlers Handlers, op models.SyncOperation) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("handler panic: %v", r)
		}
	}()

	return handlers.dispatch(ctx, op)
}

// PendingCount returns the number of operations currently queued.
func (q *Queue) PendingCount() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.ops)
}

// HasPendingFor reports whether any queued operation targets the given
// entity.
func (q *Queue) HasPendingFor(entityType models.EntityType, entityID string) bool {
	q.mu.Lock()
	defer q.mu.Unlock()

	for _, op := range q.ops {
		if op.EntityType == entityType && op.EntityID == entityID {
			return true
		}
	}
	return false
}

// PendingIDs returns the set of entity IDs with queued operations for the
// given entity type.
func (q *Queue) PendingIDs(entityType models.EntityType) map[string]struct{} {
	q.mu.Lock()
	defer q.mu.Unlock()

	ids := make(map[string]struct{})
	for _, op := range q.ops {
		if op.EntityType == entityType {
			ids[op.EntityID] = struct{}{}
		}
	}
	return ids
}

// persistLocked writes the full queue back to the local store. The caller
// must hold q.mu. Persistence failures are logged and otherwise ignored:
// the in-memory queue still reflects the change for this session.
func (q *Queue) persistLocked(ctx context.Context) {
	err := q.store.Put(ctx, models.KeyOperationQueue, q.ops,
		store.WithNoExpiration(), store.WithSyncStatus(models.StatusPending))
	if err != nil {
		q.logger.Error().Err(err).Msg("failed to persist operation queue")
	}
}
