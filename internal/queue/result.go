package queue

import "github.com/garbagesocial/gsclient/models"

// DroppedOperation pairs a permanently dropped operation with its final
// replay error.
type DroppedOperation struct {
	Op  models.SyncOperation
	Err error
}

// DrainResult summarises one drain pass. Skipped is true when another
// drain was already running and this call did nothing.
type DrainResult struct {
	Skipped   bool
	Processed int
	Succeeded int
	Failed    int
	Dropped   []DroppedOperation
}
