package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/garbagesocial/gsclient/internal/logger"
	"github.com/garbagesocial/gsclient/models"
)

func newTestMemory(t *testing.T) LocalStore {
	t.Helper()
	return NewMemory(time.Hour, logger.Nop())
}

// ── Put / Get ────────────────────────────────────────────────────────────────

func TestMemory_PutGet_RoundTrip(t *testing.T) {
	ctx := context.Background()
	s := newTestMemory(t)

	in := models.Waste{ID: "w1", Label: "glass bottles", Status: models.WastePublished}
	require.NoError(t, s.Put(ctx, "wastes", in))

	var out models.Waste
	found, err := s.Get(ctx, "wastes", &out)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, in, out)
}

func TestMemory_Get_MissingKey(t *testing.T) {
	ctx := context.Background()
	s := newTestMemory(t)

	var out string
	found, err := s.Get(ctx, "nope", &out)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestMemory_Get_ExpiredItemRemovedAndAbsent(t *testing.T) {
	ctx := context.Background()
	s := newTestMemory(t)

	require.NoError(t, s.Put(ctx, "short", "v", WithExpiration(time.Millisecond)))
	time.Sleep(5 * time.Millisecond)

	var out string
	found, err := s.Get(ctx, "short", &out)
	require.NoError(t, err)
	assert.False(t, found, "expired item must read as absent")

	// physically removed: a later meta lookup finds nothing either
	_, metaFound, err := s.GetMeta(ctx, "short")
	require.NoError(t, err)
	assert.False(t, metaFound)
}

func TestMemory_Put_NoExpiration(t *testing.T) {
	ctx := context.Background()
	s := newTestMemory(t)

	require.NoError(t, s.Put(ctx, models.KeyOperationQueue, []string{}, WithNoExpiration()))

	meta, found, err := s.GetMeta(ctx, models.KeyOperationQueue)
	require.NoError(t, err)
	require.True(t, found)
	assert.Nil(t, meta.ExpiresAt)
}

func TestMemory_Put_DefaultStatusSynced(t *testing.T) {
	ctx := context.Background()
	s := newTestMemory(t)

	require.NoError(t, s.Put(ctx, "k", "v"))

	meta, found, err := s.GetMeta(ctx, "k")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, models.StatusSynced, meta.SyncStatus)
	assert.Equal(t, SchemaVersion, meta.SchemaVersion)
	require.NotNil(t, meta.ExpiresAt)
}

func TestMemory_Put_ExplicitStatus(t *testing.T) {
	ctx := context.Background()
	s := newTestMemory(t)

	require.NoError(t, s.Put(ctx, "k", "v", WithSyncStatus(models.StatusPending)))

	meta, _, err := s.GetMeta(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, models.StatusPending, meta.SyncStatus)
}

// ── Mark / Remove ────────────────────────────────────────────────────────────

func TestMemory_MarkPendingAndSynced(t *testing.T) {
	ctx := context.Background()
	s := newTestMemory(t)

	require.NoError(t, s.Put(ctx, "k", "v"))

	require.NoError(t, s.MarkPending(ctx, "k"))
	meta, _, _ := s.GetMeta(ctx, "k")
	assert.Equal(t, models.StatusPending, meta.SyncStatus)

	require.NoError(t, s.MarkSynced(ctx, "k"))
	meta, _, _ = s.GetMeta(ctx, "k")
	assert.Equal(t, models.StatusSynced, meta.SyncStatus)

	// payload untouched by status flips
	var out string
	found, err := s.Get(ctx, "k", &out)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "v", out)
}

func TestMemory_Mark_MissingKeyIsNoop(t *testing.T) {
	ctx := context.Background()
	s := newTestMemory(t)

	assert.NoError(t, s.MarkPending(ctx, "ghost"))
	assert.NoError(t, s.MarkSynced(ctx, "ghost"))
}

func TestMemory_Remove(t *testing.T) {
	ctx := context.Background()
	s := newTestMemory(t)

	require.NoError(t, s.Put(ctx, "k", "v"))
	require.NoError(t, s.Remove(ctx, "k"))

	var out string
	found, err := s.Get(ctx, "k", &out)
	require.NoError(t, err)
	assert.False(t, found)
}

// ── SweepExpired ─────────────────────────────────────────────────────────────

func TestMemory_SweepExpired_RemovesOnlyExpired(t *testing.T) {
	ctx := context.Background()
	s := newTestMemory(t)

	require.NoError(t, s.Put(ctx, "dead", "v", WithExpiration(time.Millisecond)))
	require.NoError(t, s.Put(ctx, "alive", "v", WithExpiration(time.Hour)))
	time.Sleep(5 * time.Millisecond)

	removed, err := s.SweepExpired(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, removed)

	var out string
	found, _ := s.Get(ctx, "alive", &out)
	assert.True(t, found)
}

func TestMemory_SweepExpired_SkipsReservedKeys(t *testing.T) {
	ms := NewMemory(time.Hour, logger.Nop()).(*memoryStore)

	// force an expired reserved item directly; a sweep must leave it alone
	past := time.Now().Add(-time.Minute)
	ms.items[models.KeySchemaVersion] = models.StorageItem{
		Data:          []byte(`"1"`),
		Timestamp:     past,
		ExpiresAt:     &past,
		SchemaVersion: SchemaVersion,
		SyncStatus:    models.StatusSynced,
	}

	removed, err := ms.SweepExpired(context.Background())
	require.NoError(t, err)
	assert.Zero(t, removed)

	_, ok := ms.items[models.KeySchemaVersion]
	assert.True(t, ok)
}
