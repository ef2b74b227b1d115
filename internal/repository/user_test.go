package repository

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

func newUserRepo(t *testing.T, conn ConnectivitySource) (*UserRepository, *mock.MockRemoteService, store.LocalStore, *queue.Queue) {
	t.Helper()
	ctrl := gomock.NewController(t)
	remote := mock.NewMockRemoteService(ctrl)

	st := store.NewMemory(time.Hour, logger.Nop())
	q, err := queue.New(context.Background(), st, 5, logger.Nop())
	require.NoError(t, err)

	return NewUserRepository(st, remote, q, conn, logger.Nop()), remote, st, q
}

func TestUserRepository_Save_NewProfile_Online(t *testing.T) {
	repo, remote, _, q := newUserRepo(t, staticConn{online: true})
	ctx := context.Background()

	remote.EXPECT().UpsertUser(ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, u models.User) (models.User, error) { return u, nil },
	)

	saved, outcome, err := repo.Save(ctx, models.User{Name: "Dana", Email: "dana@example.com"})
	require.NoError(t, err)
	assert.Equal(t, OutcomeSynced, outcome)
	assert.NotEmpty(t, saved.ID)
	assert.False(t, saved.CreatedAt.IsZero())
	assert.Zero(t, q.PendingCount())
}

func TestUserRepository_Save_ExistingProfile_Offline(t *testing.T) {
	repo, _, st, q := newUserRepo(t, staticConn{})
	ctx := context.Background()

	saved, outcome, err := repo.Save(ctx, models.User{ID: "u-1", Name: "Dana"})
	require.NoError(t, err)
	assert.Equal(t, "u-1", saved.ID, "existing ID replaced")
	assert.Equal(t, OutcomeQueued, outcome)
	assert.True(t, q.HasPendingFor(models.EntityUser, "u-1"))

	users, err := loadCollection[models.User](ctx, st, models.KeyUsers)
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "Dana", users[0].Name)
}

func TestUserRepository_Delete_Offline(t *testing.T) {
	repo, _, st, q := newUserRepo(t, staticConn{})
	ctx := context.Background()

	_, _, err := repo.Save(ctx, models.User{ID: "u-1"})
	require.NoError(t, err)

	outcome, err := repo.Delete(ctx, "u-1")
	require.NoError(t, err)
	assert.Equal(t, OutcomeQueued, outcome)

	users, err := loadCollection[models.User](ctx, st, models.KeyUsers)
	require.NoError(t, err)
	assert.Empty(t, users)
	assert.Equal(t, 2, q.PendingCount())
}

func TestUserRepository_GetByID_FallsBackToCache(t *testing.T) {
	repo, remote, st, _ := newUserRepo(t, staticConn{online: true})
	ctx := context.Background()

	cached := []models.User{{ID: "u-1", Name: "Dana"}}
	require.NoError(t, saveCollection(ctx, st, models.KeyUsers, cached, models.StatusSynced))

	remote.EXPECT().SelectUsers(ctx, adapter.Filter{ID: "u-1"}).
		Return(nil, adapter.ErrUnavailable)

	got, found, err := repo.GetByID(ctx, "u-1")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "Dana", got.Name)
}

func TestUserRepository_GetAll_RefreshesCache(t *testing.T) {
	repo, remote, st, _ := newUserRepo(t, staticConn{online: true})
	ctx := context.Background()

	want := []models.User{{ID: "u-1"}, {ID: "u-2"}}
	remote.EXPECT().SelectUsers(ctx, adapter.Filter{}).Return(want, nil)

	got, err := repo.GetAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	cached, err := loadCollection[models.User](ctx, st, models.KeyUsers)
	require.NoError(t, err)
	assert.Equal(t, want, cached)
}

func TestUserRepository_GetAll_Refresh_KeepsQueuedSave(t *testing.T) {
	conn := &switchConn{}
	repo, remote, st, _ := newUserRepo(t, conn)
	ctx := context.Background()

	saved, outcome, err := repo.Save(ctx, models.User{ID: "u-1", Name: "Dana"})
	require.NoError(t, err)
	require.Equal(t, OutcomeQueued, outcome)

	conn.online = true
	remote.EXPECT().SelectUsers(ctx, adapter.Filter{}).Return([]models.User{}, nil)

	got, err := repo.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1, "queued profile missing from result")
	assert.Equal(t, saved.ID, got[0].ID)

	cached, err := loadCollection[models.User](ctx, st, models.KeyUsers)
	require.NoError(t, err)
	require.Len(t, cached, 1, "queued profile erased by cache refresh")
}
