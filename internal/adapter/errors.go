package adapter

import "errors"

var (
	// ErrBadRequest maps HTTP 400: the backend rejected the payload.
	// Replaying the same operation will fail again.
	ErrBadRequest = errors.New("bad request")

	// ErrNotFound maps HTTP 404.
	ErrNotFound = errors.New("record not found")

	// ErrConflict maps HTTP 409: the backend holds a newer version of
	// the record.
	ErrConflict = errors.New("version conflict")

	// ErrUnavailable maps HTTP 5xx and gateway errors: the backend is
	// temporarily down and the operation is worth retrying.
	ErrUnavailable = errors.New("remote service unavailable")
)
