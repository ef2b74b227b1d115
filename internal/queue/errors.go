package queue

import "errors"

var (
	// ErrInvalidKind indicates an unknown operation kind passed to Enqueue.
	ErrInvalidKind = errors.New("invalid operation kind")
	// ErrInvalidEntityType indicates an unknown entity type on an
	// operation.
	ErrInvalidEntityType = errors.New("invalid entity type")
	// ErrNoHandler indicates a drain pass was started without a handler
	// for one of the entity types present in the queue.
	ErrNoHandler = errors.New("missing drain handler")
)
