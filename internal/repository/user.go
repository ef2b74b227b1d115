package repository

import (
	"context"

	"github.com/garbagesocial/gsclient/internal/adapter"
	"github.com/garbagesocial/gsclient/internal/logger"
	"github.com/garbagesocial/gsclient/internal/queue"
	"github.com/garbagesocial/gsclient/internal/store"
	"github.com/garbagesocial/gsclient/models"
)

// UserRepository manages producer and recycler profiles.
type UserRepository struct {
	base
}

// NewUserRepository builds a UserRepository on the shared collaborators.
func NewUserRepository(st store.LocalStore, remote adapter.RemoteService, q *queue.Queue, conn ConnectivitySource, log *logger.Logger) *UserRepository {
	return &UserRepository{base: newBase(st, remote, q, conn, log)}
}

func userID(u models.User) string { return u.ID }

// Save stores a profile locally, then pushes it to the backend or queues
// it. A new profile (empty ID) is assigned one; an existing profile is
// replaced wholesale.
func (r *UserRepository) Save(ctx context.Context, user models.User) (models.User, Outcome, error) {
	kind := models.OpUpdate
	if user.ID == "" {
		user.ID = r.ids.Generate()
		user.CreatedAt = r.now()
		kind = models.OpCreate
	}
	user.UpdatedAt = r.now()

	users, err := loadCollection[models.User](ctx, r.store, models.KeyUsers)
	if err != nil {
		return models.User{}, "", err
	}
	if err = saveCollection(ctx, r.store, models.KeyUsers, upsertByID(users, userID, user), models.StatusPending); err != nil {
		return models.User{}, "", err
	}

	outcome, err := r.attemptThenQueue(ctx, kind, models.EntityUser, user.ID, user, func(ctx context.Context) error {
		_, err := r.remote.UpsertUser(ctx, user)
		return err
	})
	if err != nil {
		return models.User{}, "", err
	}
	return user, outcome, nil
}

// Delete removes a profile locally, then pushes or queues the deletion.
func (r *UserRepository) Delete(ctx context.Context, id string) (Outcome, error) {
	users, err := loadCollection[models.User](ctx, r.store, models.KeyUsers)
	if err != nil {
		return "", err
	}
	if remaining, found := removeByID(users, userID, id); found {
		if err = saveCollection(ctx, r.store, models.KeyUsers, remaining, models.StatusPending); err != nil {
			return "", err
		}
	}

	return r.attemptThenQueue(ctx, models.OpDelete, models.EntityUser, id, nil, func(ctx context.Context) error {
		return r.remote.DeleteUser(ctx, id)
	})
}

// GetAll returns every cached or remote profile, refreshing the cache on
// a successful remote read. Profiles with queued mutations keep their
// local copy over the remote row.
func (r *UserRepository) GetAll(ctx context.Context) ([]models.User, error) {
	if r.remoteReadable() {
		users, err := r.remote.SelectUsers(ctx, adapter.Filter{})
		if err == nil {
			return refreshCollection(ctx, &r.base, models.EntityUser, users, userID), nil
		}
		r.logger.Debug().Err(err).Msg("remote read failed, serving cache")
	}

	return loadCollection[models.User](ctx, r.store, models.KeyUsers)
}

// GetByID returns one profile by its identifier.
func (r *UserRepository) GetByID(ctx context.Context, id string) (models.User, bool, error) {
	if r.remoteReadable() {
		users, err := r.remote.SelectUsers(ctx, adapter.Filter{ID: id})
		if err == nil {
			if len(users) == 0 {
				return models.User{}, false, nil
			}
			return users[0], true, nil
		}
		r.logger.Debug().Err(err).Str("id", id).Msg("remote read failed, serving cache")
	}

	users, err := loadCollection[models.User](ctx, r.store, models.KeyUsers)
	if err != nil {
		return models.User{}, false, err
	}
	u, found := findByID(users, userID, id)
	return u, found, nil
}
