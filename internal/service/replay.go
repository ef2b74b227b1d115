// Package service assembles the sync client: it builds the queue replay
// handlers on top of the remote adapter and wires the store, queue,
// connectivity monitor, synchronizer, and repositories into one
// [ClientServices] value.
package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/garbagesocial/gsclient/internal/adapter"
	"github.com/garbagesocial/gsclient/internal/queue"
	"github.com/garbagesocial/gsclient/models"
)

// ReplayHandlers builds the per-entity queue handlers that replay queued
// operations against the backend. Creates and updates both replay as
// upserts (last-write-wins); deleting a record the backend no longer has
// counts as success.
func ReplayHandlers(remote adapter.RemoteService) queue.Handlers {
	return queue.Handlers{
		OnWaste:  replayWaste(remote),
		OnUser:   replayUser(remote),
		OnRating: replayRating(remote),
	}
}

func replayWaste(remote adapter.RemoteService) queue.Handler {
	return func(ctx context.Context, op models.SyncOperation) error {
		switch op.Kind {
		case models.OpCreate, models.OpUpdate:
			var waste models.Waste
			if err := json.Unmarshal(op.Payload, &waste); err != nil {
				return fmt.Errorf("decode waste payload: %w", err)
			}
			_, err := remote.UpsertWaste(ctx, waste)
			return err
		case models.OpDelete:
			return ignoreGone(remote.DeleteWaste(ctx, op.EntityID))
		default:
			return fmt.Errorf("unknown operation kind %q", op.Kind)
		}
	}
}

func replayUser(remote adapter.RemoteService) queue.Handler {
	return func(ctx context.Context, op models.SyncOperation) error {
		switch op.Kind {
		case models.OpCreate, models.OpUpdate:
			var user models.User
			if err := json.Unmarshal(op.Payload, &user); err != nil {
				return fmt.Errorf("decode user payload: %w", err)
			}
			_, err := remote.UpsertUser(ctx, user)
			return err
		case models.OpDelete:
			return ignoreGone(remote.DeleteUser(ctx, op.EntityID))
		default:
			return fmt.Errorf("unknown operation kind %q", op.Kind)
		}
	}
}

func replayRating(remote adapter.RemoteService) queue.Handler {
	return func(ctx context.Context, op models.SyncOperation) error {
		switch op.Kind {
		case models.OpCreate, models.OpUpdate:
			var rating models.Rating
			if err := json.Unmarshal(op.Payload, &rating); err != nil {
				return fmt.Errorf("decode rating payload: %w", err)
			}
			_, err := remote.UpsertRating(ctx, rating)
			return err
		case models.OpDelete:
			return ignoreGone(remote.DeleteRating(ctx, op.EntityID))
		default:
			return fmt.Errorf("unknown operation kind %q", op.Kind)
		}
	}
}

// ignoreGone treats a delete of an already absent record as success.
func ignoreGone(err error) error {
	if errors.Is(err, adapter.ErrNotFound) {
		return nil
	}
	return err
}
