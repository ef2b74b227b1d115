package service

import (
	"context"
	"fmt"

	"github.com/garbagesocial/gsclient/internal/adapter"
	"github.com/garbagesocial/gsclient/internal/config"
	"github.com/garbagesocial/gsclient/internal/connectivity"
	"github.com/garbagesocial/gsclient/internal/logger"
	"github.com/garbagesocial/gsclient/internal/queue"
	"github.com/garbagesocial/gsclient/internal/repository"
	"github.com/garbagesocial/gsclient/internal/store"
	"github.com/garbagesocial/gsclient/internal/syncer"
	"github.com/garbagesocial/gsclient/models"
)

// ClientServices is the fully wired sync client: durable store, operation
// queue, connectivity monitor, synchronizer, and the three entity
// repositories.
type ClientServices struct {
	Store   store.LocalStore
	Queue   *queue.Queue
	Remote  adapter.RemoteService
	Monitor *connectivity.Monitor
	Syncer  *syncer.Synchronizer

	Wastes  *repository.WasteRepository
	Users   *repository.UserRepository
	Ratings *repository.RatingRepository

	netSignal *connectivity.DialSignal
	logger    *logger.Logger
}

// NewClientServices wires every component from cfg. The local store is
// opened (and migrated) here and expired items are swept once; background
// loops do not run until Start.
func NewClientServices(ctx context.Context, cfg *config.StructuredConfig, log *logger.Logger) (*ClientServices, error) {
	st, err := store.New(cfg.Storage, log)
	if err != nil {
		return nil, fmt.Errorf("open local store: %w", err)
	}

	swept, err := st.SweepExpired(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("expired item sweep failed")
	} else if swept > 0 {
		log.Info().Int("removed", swept).Msg("swept expired items")
	}

	q, err := queue.New(ctx, st, cfg.Sync.RetryCeiling, log)
	if err != nil {
		return nil, fmt.Errorf("restore operation queue: %w", err)
	}

	remote, err := adapter.NewHTTPRemoteService(cfg.Remote, log)
	if err != nil {
		return nil, err
	}

	prober := connectivity.NewHTTPProber(cfg.Remote.BaseURL, cfg.Remote.HealthPath, cfg.Connectivity.ProbeTimeout)
	signal := connectivity.NewDialSignal(cfg.Connectivity.NetCheckAddress, cfg.Connectivity.NetCheckInterval)
	monitor := connectivity.NewMonitor(prober, signal, connectivity.Config{
		ProbeInterval: cfg.Connectivity.ProbeInterval,
		ProbeTimeout:  cfg.Connectivity.ProbeTimeout,
		BackoffBase:   cfg.Connectivity.BackoffBase,
		BackoffCap:    cfg.Connectivity.BackoffCap,
	}, log)

	sync := syncer.New(q, ReplayHandlers(remote), monitor, cfg.Sync.Interval, log)

	return &ClientServices{
		Store:     st,
		Queue:     q,
		Remote:    remote,
		Monitor:   monitor,
		Syncer:    sync,
		Wastes:    repository.NewWasteRepository(st, remote, q, monitor, log),
		Users:     repository.NewUserRepository(st, remote, q, monitor, log),
		Ratings:   repository.NewRatingRepository(st, remote, q, monitor, log),
		netSignal: signal,
		logger:    log,
	}, nil
}

// Start launches the network signal, the connectivity monitor, and the
// synchronizer. The loops stop when ctx is cancelled or Stop is called.
func (c *ClientServices) Start(ctx context.Context) {
	c.netSignal.Start(ctx)
	c.Monitor.Start(ctx)
	c.Syncer.Start(ctx)
	c.logger.Info().Msg("sync client started")
}

// Stop shuts the background loops down in reverse start order and closes
// the local store.
func (c *ClientServices) Stop() {
	c.Syncer.Stop()
	c.Monitor.Stop()
	c.netSignal.Stop()

	if err := c.Store.Close(); err != nil {
		c.logger.Warn().Err(err).Msg("closing local store")
	}
	c.logger.Info().Msg("sync client stopped")
}

// SetOfflineMode toggles the user's forced-offline override.
func (c *ClientServices) SetOfflineMode(forced bool) {
	c.Monitor.SetOfflineMode(forced)
}

// ForceSyncIfOnline runs one drain pass now when the backend is
// reachable; it reports whether the pass was attempted.
func (c *ClientServices) ForceSyncIfOnline(ctx context.Context) bool {
	return c.Syncer.ForceSyncIfOnline(ctx)
}

// SyncState returns the current synchronizer snapshot.
func (c *ClientServices) SyncState() models.SyncSnapshot {
	return c.Syncer.GetSyncState()
}
