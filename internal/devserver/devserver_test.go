package devserver

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/garbagesocial/gsclient/internal/adapter"
	"github.com/garbagesocial/gsclient/internal/config"
	"github.com/garbagesocial/gsclient/internal/logger"
	"github.com/garbagesocial/gsclient/models"
)

// newClient runs a dev server and points a real HTTP adapter at it, so
// these tests double as a contract check between the two.
func newClient(t *testing.T) (adapter.RemoteService, *Server) {
	t.Helper()
	server := New(logger.Nop())
	srv := httptest.NewServer(server.Router())
	t.Cleanup(srv.Close)

	svc, err := adapter.NewHTTPRemoteService(config.Remote{
		BaseURL:        srv.URL,
		RequestTimeout: 2 * time.Second,
	}, logger.Nop())
	require.NoError(t, err)
	return svc, server
}

func TestDevServer_Health(t *testing.T) {
	svc, server := newClient(t)
	ctx := context.Background()

	assert.NoError(t, svc.Health(ctx))

	server.SetHealthy(false)
	assert.ErrorIs(t, svc.Health(ctx), adapter.ErrUnavailable)

	server.SetHealthy(true)
	assert.NoError(t, svc.Health(ctx))
}

func TestDevServer_WasteLifecycle(t *testing.T) {
	svc, _ := newClient(t)
	ctx := context.Background()

	waste := models.Waste{
		ID:      "w-1",
		OwnerID: "u-1",
		Type:    models.WastePlastic,
		Label:   "bottles",
		Status:  models.WastePublished,
	}

	stored, err := svc.UpsertWaste(ctx, waste)
	require.NoError(t, err)
	assert.Equal(t, waste, stored)

	all, err := svc.SelectWastes(ctx, adapter.Filter{})
	require.NoError(t, err)
	require.Len(t, all, 1)

	byOwner, err := svc.SelectWastes(ctx, adapter.Filter{OwnerID: "u-1"})
	require.NoError(t, err)
	assert.Len(t, byOwner, 1)

	byType, err := svc.SelectWastes(ctx, adapter.Filter{Type: models.WasteGlass})
	require.NoError(t, err)
	assert.Empty(t, byType)

	require.NoError(t, svc.DeleteWaste(ctx, "w-1"))
	assert.ErrorIs(t, svc.DeleteWaste(ctx, "w-1"), adapter.ErrNotFound)
}

func TestDevServer_UpsertReplaces(t *testing.T) {
	svc, _ := newClient(t)
	ctx := context.Background()

	_, err := svc.UpsertWaste(ctx, models.Waste{ID: "w-1", Label: "bottles"})
	require.NoError(t, err)
	_, err = svc.UpsertWaste(ctx, models.Waste{ID: "w-1", Label: "sorted bottles"})
	require.NoError(t, err)

	all, err := svc.SelectWastes(ctx, adapter.Filter{ID: "w-1"})
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "sorted bottles", all[0].Label)
}

func TestDevServer_UsersAndRatings(t *testing.T) {
	svc, _ := newClient(t)
	ctx := context.Background()

	user := models.User{ID: "u-1", Name: "Dana", Email: "dana@example.com"}
	_, err := svc.UpsertUser(ctx, user)
	require.NoError(t, err)

	rating := models.Rating{ID: "r-1", WasteID: "w-1", RaterID: "u-1", Score: 5}
	_, err = svc.UpsertRating(ctx, rating)
	require.NoError(t, err)

	users, err := svc.SelectUsers(ctx, adapter.Filter{ID: "u-1"})
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "Dana", users[0].Name)

	ratings, err := svc.SelectRatings(ctx, adapter.Filter{})
	require.NoError(t, err)
	require.Len(t, ratings, 1)

	require.NoError(t, svc.DeleteUser(ctx, "u-1"))
	require.NoError(t, svc.DeleteRating(ctx, "r-1"))
	assert.ErrorIs(t, svc.DeleteRating(ctx, "r-1"), adapter.ErrNotFound)
}

func TestDevServer_OutageBlocksAPI(t *testing.T) {
	svc, server := newClient(t)
	ctx := context.Background()

	server.SetHealthy(false)

	_, err := svc.SelectWastes(ctx, adapter.Filter{})
	assert.ErrorIs(t, err, adapter.ErrUnavailable)

	_, err = svc.UpsertWaste(ctx, models.Waste{ID: "w-1"})
	assert.ErrorIs(t, err, adapter.ErrUnavailable)
}
