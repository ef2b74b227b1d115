package queue

import (
	"context"
	"fmt"

	"github.com/garbagesocial/gsclient/models"
)

// Handler replays one queued operation against the remote service.
// Returning nil removes the operation from the queue.
type Handler func(ctx context.Context, op models.SyncOperation) error

// Handlers carries one typed handler per entity type, replacing a
// stringly-typed lookup with an exhaustive dispatch.
type Handlers struct {
	OnWaste  Handler
	OnUser   Handler
	OnRating Handler
}

func (h Handlers) dispatch(ctx context.Context, op models.SyncOperation) error {
	var handler Handler
	switch op.EntityType {
	case models.EntityWaste:
		handler = h.OnWaste
	case models.EntityUser:
		handler = h.OnUser
	case models.EntityRating:
		handler = h.OnRating
	default:
		return fmt.Errorf("%w: %q", ErrInvalidEntityType, op.EntityType)
	}

	if handler == nil {
		return fmt.Errorf("%w: no handler for %q", ErrNoHandler, op.EntityType)
	}

	return handler(ctx, op)
}
