package service

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/garbagesocial/gsclient/internal/config"
	"github.com/garbagesocial/gsclient/internal/logger"
	"github.com/garbagesocial/gsclient/internal/repository"
	"github.com/garbagesocial/gsclient/models"
)

// echoBackend answers /health with 200 and echoes PUT bodies back.
func echoBackend() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPut {
			body, _ := io.ReadAll(r.Body)
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write(body)
			return
		}
		_ = json.NewEncoder(w).Encode([]struct{}{})
	})
	return mux
}

func testClientConfig(srv *httptest.Server) *config.StructuredConfig {
	return &config.StructuredConfig{
		Remote: config.Remote{
			BaseURL:        srv.URL,
			RequestTimeout: 2 * time.Second,
			HealthPath:     "/health",
		},
		Storage: config.Storage{
			DSN:               ":memory:",
			DefaultExpiration: time.Hour,
		},
		Sync: config.Sync{
			Interval:     time.Hour,
			RetryCeiling: 5,
		},
		Connectivity: config.Connectivity{
			ProbeInterval:    time.Hour,
			ProbeTimeout:     time.Second,
			BackoffBase:      10 * time.Millisecond,
			BackoffCap:       50 * time.Millisecond,
			NetCheckAddress:  srv.Listener.Addr().String(),
			NetCheckInterval: time.Hour,
		},
	}
}

func waitFor(t *testing.T, pred func() bool, msg string) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if pred() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal(msg)
}

func TestClientServices_EndToEnd(t *testing.T) {
	srv := httptest.NewServer(echoBackend())
	defer srv.Close()

	ctx := context.Background()
	svc, err := NewClientServices(ctx, testClientConfig(srv), logger.Nop())
	require.NoError(t, err)

	svc.Start(ctx)
	defer svc.Stop()

	waitFor(t, func() bool { return svc.SyncState().IsOnline }, "client never saw the backend")

	created, outcome, err := svc.Wastes.Create(ctx, models.Waste{
		OwnerID: "u-1",
		Type:    models.WastePlastic,
		Label:   "bottles",
	})
	require.NoError(t, err)
	assert.Equal(t, repository.OutcomeSynced, outcome)
	assert.NotEmpty(t, created.ID)

	snap := svc.SyncState()
	assert.True(t, snap.IsOnline)
	assert.Zero(t, snap.PendingOperations)
}

func TestClientServices_OfflineModeQueues(t *testing.T) {
	srv := httptest.NewServer(echoBackend())
	defer srv.Close()

	ctx := context.Background()
	svc, err := NewClientServices(ctx, testClientConfig(srv), logger.Nop())
	require.NoError(t, err)

	svc.Start(ctx)
	defer svc.Stop()

	waitFor(t, func() bool { return svc.SyncState().IsOnline }, "client never saw the backend")

	svc.SetOfflineMode(true)

	_, outcome, err := svc.Wastes.Create(ctx, models.Waste{OwnerID: "u-1", Type: models.WasteGlass})
	require.NoError(t, err)
	assert.Equal(t, repository.OutcomeQueued, outcome)

	snap := svc.SyncState()
	assert.True(t, snap.OfflineMode)
	assert.Equal(t, 1, snap.PendingOperations)

	assert.False(t, svc.ForceSyncIfOnline(ctx), "force sync must respect forced offline")

	// leaving offline mode lets the queued operation drain
	svc.SetOfflineMode(false)
	waitFor(t, func() bool { return svc.SyncState().PendingOperations == 0 }, "queued operation never drained")
}
