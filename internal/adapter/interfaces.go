// Package adapter provides transport-layer abstractions for communicating
// with the GarbageSocial backend.
//
// The primary abstraction is [RemoteService], which decouples the
// repositories, the operation queue, and the synchronizer from the
// underlying protocol. The package ships an HTTP/REST implementation
// ([NewHTTPRemoteService]).
//
// Error values defined in errors.go are mapped from HTTP status codes by
// mapHTTPError so that callers can use [errors.Is] for transport-agnostic
// error handling (e.g. [ErrConflict] for 409, [ErrNotFound] for 404).
package adapter

import (
	"context"

	"github.com/garbagesocial/gsclient/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/remote_service_mock.go -package=mock

// Filter narrows Select* queries. Zero-value fields are ignored.
type Filter struct {
	// ID selects a single record by its identifier.
	ID string

	// OwnerID selects waste listings owned by a given user.
	OwnerID string

	// Type selects waste listings of a given material category.
	Type models.WasteType
}

// RemoteService defines transport-agnostic communication with the
// GarbageSocial backend. Implementations are responsible for
// serialisation and for mapping transport-level errors to the sentinel
// values defined in this package.
type RemoteService interface {
	// Health checks whether the backend is reachable and willing to
	// serve requests. Returns nil on success.
	Health(ctx context.Context) error

	// SelectWastes fetches waste listings matching filter. An empty
	// filter returns the full collection.
	SelectWastes(ctx context.Context, filter Filter) ([]models.Waste, error)

	// UpsertWaste creates or replaces one waste listing and returns the
	// stored record as the backend sees it.
	UpsertWaste(ctx context.Context, waste models.Waste) (models.Waste, error)

	// DeleteWaste removes one waste listing by ID. Deleting a record
	// that does not exist returns [ErrNotFound] (wrapped).
	DeleteWaste(ctx context.Context, id string) error

	// SelectUsers fetches user profiles matching filter.
	SelectUsers(ctx context.Context, filter Filter) ([]models.User, error)

	// UpsertUser creates or replaces one user profile.
	UpsertUser(ctx context.Context, user models.User) (models.User, error)

	// DeleteUser removes one user profile by ID.
	DeleteUser(ctx context.Context, id string) error

	// SelectRatings fetches ratings matching filter.
	SelectRatings(ctx context.Context, filter Filter) ([]models.Rating, error)

	// UpsertRating creates or replaces one rating.
	UpsertRating(ctx context.Context, rating models.Rating) (models.Rating, error)

	// DeleteRating removes one rating by ID.
	DeleteRating(ctx context.Context, id string) error
}
