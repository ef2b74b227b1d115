package repository

import (
	"context"

	"github.com/garbagesocial/gsclient/internal/adapter"
	"github.com/garbagesocial/gsclient/internal/logger"
	"github.com/garbagesocial/gsclient/internal/queue"
	"github.com/garbagesocial/gsclient/internal/store"
	"github.com/garbagesocial/gsclient/models"
)

// RatingRepository manages the ratings recyclers leave on collected
// listings. Ratings are immutable once created; only create and delete
// reach the backend.
type RatingRepository struct {
	base
}

// NewRatingRepository builds a RatingRepository on the shared
// collaborators.
func NewRatingRepository(st store.LocalStore, remote adapter.RemoteService, q *queue.Queue, conn ConnectivitySource, log *logger.Logger) *RatingRepository {
	return &RatingRepository{base: newBase(st, remote, q, conn, log)}
}

func ratingID(r models.Rating) string { return r.ID }

// Create stores a rating locally, then pushes it to the backend or queues
// it. A missing ID is generated.
func (r *RatingRepository) Create(ctx context.Context, rating models.Rating) (models.Rating, Outcome, error) {
	if rating.ID == "" {
		rating.ID = r.ids.Generate()
	}
	rating.CreatedAt = r.now()

	ratings, err := loadCollection[models.Rating](ctx, r.store, models.KeyRatings)
	if err != nil {
		return models.Rating{}, "", err
	}
	if err = saveCollection(ctx, r.store, models.KeyRatings, upsertByID(ratings, ratingID, rating), models.StatusPending); err != nil {
		return models.Rating{}, "", err
	}

	outcome, err := r.attemptThenQueue(ctx, models.OpCreate, models.EntityRating, rating.ID, rating, func(ctx context.Context) error {
		_, err := r.remote.UpsertRating(ctx, rating)
		return err
	})
	if err != nil {
		return models.Rating{}, "", err
	}
	return rating, outcome, nil
}

// Delete removes a rating locally, then pushes or queues the deletion.
func (r *RatingRepository) Delete(ctx context.Context, id string) (Outcome, error) {
	ratings, err := loadCollection[models.Rating](ctx, r.store, models.KeyRatings)
	if err != nil {
		return "", err
	}
	if remaining, found := removeByID(ratings, ratingID, id); found {
		if err = saveCollection(ctx, r.store, models.KeyRatings, remaining, models.StatusPending); err != nil {
			return "", err
		}
	}

	return r.attemptThenQueue(ctx, models.OpDelete, models.EntityRating, id, nil, func(ctx context.Context) error {
		return r.remote.DeleteRating(ctx, id)
	})
}

// GetAll returns every rating, refreshing the cache on a successful
// remote read. Ratings with queued mutations keep their local copy over
// the remote row.
func (r *RatingRepository) GetAll(ctx context.Context) ([]models.Rating, error) {
	if r.remoteReadable() {
		ratings, err := r.remote.SelectRatings(ctx, adapter.Filter{})
		if err == nil {
			return refreshCollection(ctx, &r.base, models.EntityRating, ratings, ratingID), nil
		}
		r.logger.Debug().Err(err).Msg("remote read failed, serving cache")
	}

	return loadCollection[models.Rating](ctx, r.store, models.KeyRatings)
}

// GetByWaste returns the ratings attached to one listing.
func (r *RatingRepository) GetByWaste(ctx context.Context, wasteID string) ([]models.Rating, error) {
	ratings, err := r.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	var out []models.Rating
	for _, rating := range ratings {
		if rating.WasteID == wasteID {
			out = append(out, rating)
		}
	}
	return out, nil
}
