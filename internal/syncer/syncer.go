// Package syncer ties the operation queue and the connectivity monitor
// together into the background synchronizer: a periodic drain pass plus
// event-driven passes on connectivity recovery, with an explicit
// force-sync entry point for interactive use.
package syncer

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/garbagesocial/gsclient/internal/logger"
	"github.com/garbagesocial/gsclient/internal/metrics"
	"github.com/garbagesocial/gsclient/internal/queue"
	"github.com/garbagesocial/gsclient/models"
)

// errorRingSize bounds the recent-failure history kept for status display.
const errorRingSize = 10

// ConnectivitySource is the synchronizer's read-side view of the
// connectivity monitor.
type ConnectivitySource interface {
	// State returns the current connectivity state.
	State() models.ConnectivityState

	// Subscribe registers fn for state transitions and returns an
	// unsubscribe function.
	Subscribe(fn func(models.ConnectivityState)) (unsubscribe func())
}

// Synchronizer runs drain passes over the operation queue whenever the
// remote service is reachable: on a fixed interval, on every transition
// into connected, and on demand via ForceSyncIfOnline.
type Synchronizer struct {
	queue    *queue.Queue
	handlers queue.Handlers
	conn     ConnectivitySource
	interval time.Duration
	logger   *logger.Logger

	isSyncing    atomic.Bool
	wasEligible  atomic.Bool
	syncRequests chan struct{}

	errMu      sync.Mutex
	recentErrs []models.SyncError

	cancel      context.CancelFunc
	wg          sync.WaitGroup
	unsubConn   func()
	lifecycleMu sync.Mutex

	now func() time.Time
}

// New builds a Synchronizer draining q through handlers whenever conn
// reports the remote reachable. interval is the periodic pass cadence.
func New(q *queue.Queue, handlers queue.Handlers, conn ConnectivitySource, interval time.Duration, log *logger.Logger) *Synchronizer {
	return &Synchronizer{
		queue:        q,
		handlers:     handlers,
		conn:         conn,
		interval:     interval,
		logger:       log,
		syncRequests: make(chan struct{}, 1),
		now:          time.Now,
	}
}

// Start subscribes to connectivity transitions and launches the periodic
// drain loop. An immediate pass runs if the remote is already reachable.
func (s *Synchronizer) Start(ctx context.Context) {
	runCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel

	s.wasEligible.Store(s.conn.State().SyncEligible())
	s.unsubConn = s.conn.Subscribe(s.onConnectivity)

	s.wg.Add(1)
	go s.run(runCtx)

	if s.wasEligible.Load() {
		s.requestSync()
	}
}

// Stop cancels the drain loop and unsubscribes from the monitor.
// Idempotent; safe to call before Start.
func (s *Synchronizer) Stop() {
	s.lifecycleMu.Lock()
	defer s.lifecycleMu.Unlock()

	if s.unsubConn != nil {
		s.unsubConn()
		s.unsubConn = nil
	}
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.wg.Wait()
}

// ForceSyncIfOnline runs one drain pass synchronously when the remote is
// reachable and reports whether the pass ran to completion without error.
// Offline (or forced-offline) calls, calls made while another pass is in
// progress, and failed drains all return false.
func (s *Synchronizer) ForceSyncIfOnline(ctx context.Context) bool {
	if !s.conn.State().SyncEligible() {
		s.logger.Debug().Msg("force sync requested while offline, ignored")
		return false
	}

	return s.runPass(ctx)
}

// GetSyncState returns a point-in-time snapshot for status display.
func (s *Synchronizer) GetSyncState() models.SyncSnapshot {
	st := s.conn.State()
	return models.SyncSnapshot{
		IsSyncing:         s.isSyncing.Load(),
		IsOnline:          st.BrowserOnline && st.RemoteReachable == models.RemoteConnected,
		PendingOperations: s.queue.PendingCount(),
		OfflineMode:       st.OfflineModeForced,
	}
}

// RecentErrors returns the most recent permanently failed operations,
// newest last. At most the last ten are kept.
func (s *Synchronizer) RecentErrors() []models.SyncError {
	s.errMu.Lock()
	defer s.errMu.Unlock()
	out := make([]models.SyncError, len(s.recentErrs))
	copy(out, s.recentErrs)
	return out
}

func (s *Synchronizer) run(ctx context.Context) {
	defer s.wg.Done()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if s.conn.State().SyncEligible() {
				s.runPass(ctx)
			}
		case <-s.syncRequests:
			if s.conn.State().SyncEligible() {
				s.runPass(ctx)
			}
		}
	}
}

// onConnectivity requests a pass on the transition into sync-eligible;
// staying eligible (or losing eligibility) triggers nothing.
func (s *Synchronizer) onConnectivity(st models.ConnectivityState) {
	eligible := st.SyncEligible()
	if s.wasEligible.Swap(eligible) || !eligible {
		return
	}

	s.logger.Info().Msg("connectivity restored, scheduling drain pass")
	s.requestSync()
}

func (s *Synchronizer) requestSync() {
	select {
	case s.syncRequests <- struct{}{}:
	default: // a pass is already scheduled
	}
}

// runPass runs one drain pass and reports whether it completed without
// error. A pass already in progress (here or at the queue level) makes the
// call a no-op returning false.
func (s *Synchronizer) runPass(ctx context.Context) bool {
	if !s.isSyncing.CompareAndSwap(false, true) {
		return false // a pass is already running
	}
	defer s.isSyncing.Store(false)

	metrics.SyncPassesTotal.Inc()

	res, err := s.queue.Drain(ctx, s.handlers)
	if err != nil {
		s.logger.Error().Err(err).Msg("drain pass failed")
		return false
	}
	if res.Skipped {
		return false
	}
	if res.Processed == 0 {
		return true
	}

	s.recordDropped(res.Dropped)
	s.logger.Info().
		Int("processed", res.Processed).
		Int("succeeded", res.Succeeded).
		Int("failed", res.Failed).
		Int("dropped", len(res.Dropped)).
		Msg("drain pass finished")
	return true
}

func (s *Synchronizer) recordDropped(dropped []queue.DroppedOperation) {
	if len(dropped) == 0 {
		return
	}

	s.errMu.Lock()
	defer s.errMu.Unlock()
	for _, d := range dropped {
		s.recentErrs = append(s.recentErrs, models.SyncError{
			OperationID: d.Op.ID,
			EntityType:  d.Op.EntityType,
			EntityID:    d.Op.EntityID,
			Message:     d.Err.Error(),
			At:          s.now(),
		})
	}
	if excess := len(s.recentErrs) - errorRingSize; excess > 0 {
		s.recentErrs = s.recentErrs[excess:]
	}
}
