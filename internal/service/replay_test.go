package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/garbagesocial/gsclient/internal/adapter"
	"github.com/garbagesocial/gsclient/internal/logger"
	"github.com/garbagesocial/gsclient/internal/mock"
	"github.com/garbagesocial/gsclient/internal/queue"
	"github.com/garbagesocial/gsclient/internal/store"
	"github.com/garbagesocial/gsclient/models"
)

func newReplayFixture(t *testing.T) (*queue.Queue, *mock.MockRemoteService) {
	t.Helper()
	ctrl := gomock.NewController(t)
	remote := mock.NewMockRemoteService(ctrl)

	st := store.NewMemory(time.Hour, logger.Nop())
	q, err := queue.New(context.Background(), st, 5, logger.Nop())
	require.NoError(t, err)

	return q, remote
}

func TestReplayHandlers_WasteCreate(t *testing.T) {
	q, remote := newReplayFixture(t)
	ctx := context.Background()

	waste := models.Waste{ID: "w-1", OwnerID: "u-1", Type: models.WastePlastic, Label: "bottles"}
	_, err := q.Enqueue(ctx, models.OpCreate, models.EntityWaste, waste.ID, waste)
	require.NoError(t, err)

	remote.EXPECT().UpsertWaste(ctx, waste).Return(waste, nil)

	res, err := q.Drain(ctx, ReplayHandlers(remote))
	require.NoError(t, err)
	assert.Equal(t, 1, res.Succeeded)
	assert.Zero(t, q.PendingCount())
}

func TestReplayHandlers_UserUpdate(t *testing.T) {
	q, remote := newReplayFixture(t)
	ctx := context.Background()

	user := models.User{ID: "u-1", Name: "Dana"}
	_, err := q.Enqueue(ctx, models.OpUpdate, models.EntityUser, user.ID, user)
	require.NoError(t, err)

	remote.EXPECT().UpsertUser(ctx, user).Return(user, nil)

	res, err := q.Drain(ctx, ReplayHandlers(remote))
	require.NoError(t, err)
	assert.Equal(t, 1, res.Succeeded)
}

func TestReplayHandlers_DeleteGoneRecordSucceeds(t *testing.T) {
	q, remote := newReplayFixture(t)
	ctx := context.Background()

	_, err := q.Enqueue(ctx, models.OpDelete, models.EntityWaste, "w-gone", nil)
	require.NoError(t, err)

	remote.EXPECT().DeleteWaste(ctx, "w-gone").Return(adapter.ErrNotFound)

	res, err := q.Drain(ctx, ReplayHandlers(remote))
	require.NoError(t, err)
	assert.Equal(t, 1, res.Succeeded, "deleting an absent record must not count as failure")
	assert.Zero(t, q.PendingCount())
}

func TestReplayHandlers_RatingDelete(t *testing.T) {
	q, remote := newReplayFixture(t)
	ctx := context.Background()

	_, err := q.Enqueue(ctx, models.OpDelete, models.EntityRating, "r-1", nil)
	require.NoError(t, err)

	remote.EXPECT().DeleteRating(ctx, "r-1").Return(nil)

	res, err := q.Drain(ctx, ReplayHandlers(remote))
	require.NoError(t, err)
	assert.Equal(t, 1, res.Succeeded)
}

func TestReplayHandlers_DuplicateUpdateReplaysIdempotently(t *testing.T) {
	q, remote := newReplayFixture(t)
	ctx := context.Background()

	// the same logical update enqueued twice, as happens when the user
	// edits, the direct write fails, and the edit is saved again
	waste := models.Waste{ID: "w-1", Label: "sorted bottles"}
	_, err := q.Enqueue(ctx, models.OpUpdate, models.EntityWaste, waste.ID, waste)
	require.NoError(t, err)
	_, err = q.Enqueue(ctx, models.OpUpdate, models.EntityWaste, waste.ID, waste)
	require.NoError(t, err)

	backend := make(map[string]models.Waste)
	upserts := 0
	remote.EXPECT().UpsertWaste(ctx, waste).DoAndReturn(
		func(_ context.Context, w models.Waste) (models.Waste, error) {
			backend[w.ID] = w
			upserts++
			return w, nil
		},
	).Times(2)

	res, err := q.Drain(ctx, ReplayHandlers(remote))
	require.NoError(t, err)
	assert.Equal(t, 2, res.Succeeded)
	assert.Zero(t, q.PendingCount())

	// replaying the duplicate changes nothing: one record, same content
	// as a single enqueue and drain would leave
	require.Len(t, backend, 1)
	assert.Equal(t, waste, backend["w-1"])
	assert.Equal(t, 2, upserts, "both operations reached the backend exactly once each")
}

func TestReplayHandlers_RemoteFailureKeepsOperation(t *testing.T) {
	q, remote := newReplayFixture(t)
	ctx := context.Background()

	rating := models.Rating{ID: "r-1", WasteID: "w-1", Score: 3}
	_, err := q.Enqueue(ctx, models.OpCreate, models.EntityRating, rating.ID, rating)
	require.NoError(t, err)

	remote.EXPECT().UpsertRating(ctx, rating).Return(models.Rating{}, adapter.ErrUnavailable)

	res, err := q.Drain(ctx, ReplayHandlers(remote))
	require.NoError(t, err)
	assert.Equal(t, 1, res.Failed)
	assert.Equal(t, 1, q.PendingCount(), "retryable failure dropped from queue")
}
