package repository

import (
	"context"
	"fmt"

	"github.com/garbagesocial/gsclient/internal/adapter"
	"github.com/garbagesocial/gsclient/internal/logger"
	"github.com/garbagesocial/gsclient/internal/queue"
	"github.com/garbagesocial/gsclient/internal/store"
	"github.com/garbagesocial/gsclient/models"
)

// WasteRepository manages waste listings with optimistic local writes and
// remote-first reads.
type WasteRepository struct {
	base
}

// NewWasteRepository builds a WasteRepository on the shared collaborators.
func NewWasteRepository(st store.LocalStore, remote adapter.RemoteService, q *queue.Queue, conn ConnectivitySource, log *logger.Logger) *WasteRepository {
	return &WasteRepository{base: newBase(st, remote, q, conn, log)}
}

func wasteID(w models.Waste) string { return w.ID }

// Create stores a new listing locally, then pushes it to the backend or
// queues it. A missing ID is generated; a missing status defaults to
// published. The returned listing carries the final ID and timestamps.
func (r *WasteRepository) Create(ctx context.Context, waste models.Waste) (models.Waste, Outcome, error) {
	if waste.ID == "" {
		waste.ID = r.ids.Generate()
	}
	if waste.Status == "" {
		waste.Status = models.WastePublished
	}
	now := r.now()
	waste.CreatedAt = now
	waste.UpdatedAt = now

	if err := r.writeLocal(ctx, waste); err != nil {
		return models.Waste{}, "", err
	}

	outcome, err := r.attemptThenQueue(ctx, models.OpCreate, models.EntityWaste, waste.ID, waste, func(ctx context.Context) error {
		_, err := r.remote.UpsertWaste(ctx, waste)
		return err
	})
	if err != nil {
		return models.Waste{}, "", err
	}
	return waste, outcome, nil
}

// Update replaces an existing listing locally, then pushes or queues the
// change. Updating an unknown ID is an error; the local cache is the
// authority when offline.
func (r *WasteRepository) Update(ctx context.Context, waste models.Waste) (models.Waste, Outcome, error) {
	wastes, err := loadCollection[models.Waste](ctx, r.store, models.KeyWastes)
	if err != nil {
		return models.Waste{}, "", err
	}
	if _, found := findByID(wastes, wasteID, waste.ID); !found {
		return models.Waste{}, "", fmt.Errorf("waste %q not found", waste.ID)
	}

	waste.UpdatedAt = r.now()
	if err = saveCollection(ctx, r.store, models.KeyWastes, upsertByID(wastes, wasteID, waste), models.StatusPending); err != nil {
		return models.Waste{}, "", err
	}

	outcome, err := r.attemptThenQueue(ctx, models.OpUpdate, models.EntityWaste, waste.ID, waste, func(ctx context.Context) error {
		_, err := r.remote.UpsertWaste(ctx, waste)
		return err
	})
	if err != nil {
		return models.Waste{}, "", err
	}
	return waste, outcome, nil
}

// Delete removes a listing locally, then pushes or queues the deletion.
// Deleting an unknown ID is a local no-op but the deletion is still sent:
// the backend may hold a copy this client never cached.
func (r *WasteRepository) Delete(ctx context.Context, id string) (Outcome, error) {
	wastes, err := loadCollection[models.Waste](ctx, r.store, models.KeyWastes)
	if err != nil {
		return "", err
	}
	if remaining, found := removeByID(wastes, wasteID, id); found {
		if err = saveCollection(ctx, r.store, models.KeyWastes, remaining, models.StatusPending); err != nil {
			return "", err
		}
	}

	return r.attemptThenQueue(ctx, models.OpDelete, models.EntityWaste, id, nil, func(ctx context.Context) error {
		return r.remote.DeleteWaste(ctx, id)
	})
}

// GetAll returns every listing, preferring the backend and refreshing the
// local cache on success. Listings with queued mutations keep their local
// copy over the remote row. Offline (or on a failed remote read) it serves
// the cached collection without surfacing the failure.
func (r *WasteRepository) GetAll(ctx context.Context) ([]models.Waste, error) {
	return r.fetch(ctx, adapter.Filter{})
}

// GetByID returns one listing by its identifier.
func (r *WasteRepository) GetByID(ctx context.Context, id string) (models.Waste, bool, error) {
	if r.remoteReadable() {
		wastes, err := r.remote.SelectWastes(ctx, adapter.Filter{ID: id})
		if err == nil {
			if len(wastes) == 0 {
				return models.Waste{}, false, nil
			}
			return wastes[0], true, nil
		}
		r.logger.Debug().Err(err).Str("id", id).Msg("remote read failed, serving cache")
	}

	wastes, err := loadCollection[models.Waste](ctx, r.store, models.KeyWastes)
	if err != nil {
		return models.Waste{}, false, err
	}
	w, found := findByID(wastes, wasteID, id)
	return w, found, nil
}

// GetByType returns the listings of one material category.
func (r *WasteRepository) GetByType(ctx context.Context, wasteType models.WasteType) ([]models.Waste, error) {
	if r.remoteReadable() {
		wastes, err := r.remote.SelectWastes(ctx, adapter.Filter{Type: wasteType})
		if err == nil {
			return wastes, nil
		}
		r.logger.Debug().Err(err).Str("type", string(wasteType)).Msg("remote read failed, serving cache")
	}

	wastes, err := loadCollection[models.Waste](ctx, r.store, models.KeyWastes)
	if err != nil {
		return nil, err
	}
	var out []models.Waste
	for _, w := range wastes {
		if w.Type == wasteType {
			out = append(out, w)
		}
	}
	return out, nil
}

// GetByOwner returns the listings created by one user.
func (r *WasteRepository) GetByOwner(ctx context.Context, ownerID string) ([]models.Waste, error) {
	return r.fetch(ctx, adapter.Filter{OwnerID: ownerID})
}

func (r *WasteRepository) fetch(ctx context.Context, filter adapter.Filter) ([]models.Waste, error) {
	if r.remoteReadable() {
		wastes, err := r.remote.SelectWastes(ctx, filter)
		if err == nil {
			if filter == (adapter.Filter{}) {
				wastes = refreshCollection(ctx, &r.base, models.EntityWaste, wastes, wasteID)
			}
			return wastes, nil
		}
		r.logger.Debug().Err(err).Msg("remote read failed, serving cache")
	}

	wastes, err := loadCollection[models.Waste](ctx, r.store, models.KeyWastes)
	if err != nil {
		return nil, err
	}
	if filter.OwnerID == "" {
		return wastes, nil
	}
	var out []models.Waste
	for _, w := range wastes {
		if w.OwnerID == filter.OwnerID {
			out = append(out, w)
		}
	}
	return out, nil
}

func (r *WasteRepository) writeLocal(ctx context.Context, waste models.Waste) error {
	wastes, err := loadCollection[models.Waste](ctx, r.store, models.KeyWastes)
	if err != nil {
		return err
	}
	return saveCollection(ctx, r.store, models.KeyWastes, upsertByID(wastes, wasteID, waste), models.StatusPending)
}
