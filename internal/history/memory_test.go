package history

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_StoreAndGet(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	err := store.Store(ctx, Key("doc-1", StageClassification), map[string]any{"intent": "RFQ"}, "classifier_agent")
	require.NoError(t, err)

	entry, err := store.Get(ctx, "doc-1_classification")
	require.NoError(t, err)
	require.NotNil(t, entry)

	data, ok := entry.Data.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "RFQ", data["intent"])
	assert.Equal(t, "classifier_agent", entry.Metadata.Source)
	assert.Equal(t, Version, entry.Metadata.Version)
	assert.NotEmpty(t, entry.Metadata.Timestamp)
}

func TestMemoryStore_GetAbsentKey(t *testing.T) {
	store := NewMemoryStore()

	entry, err := store.Get(context.Background(), "missing_key")
	require.NoError(t, err)
	assert.Nil(t, entry)
}

func TestMemoryStore_StoreReplacesData(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, store.Store(ctx, "k", map[string]any{"a": 1, "b": 2}, "first"))
	require.NoError(t, store.Store(ctx, "k", map[string]any{"c": 3}, "second"))

	entry, err := store.Get(ctx, "k")
	require.NoError(t, err)

	data := entry.Data.(map[string]any)
	assert.NotContains(t, data, "a")
	assert.Equal(t, float64(3), data["c"])
	assert.Equal(t, "second", entry.Metadata.Source)
}

func TestMemoryStore_UpdateMergesFields(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, store.Store(ctx, "k", map[string]any{"a": 1, "b": 2}, "first"))
	require.NoError(t, store.Update(ctx, "k", map[string]any{"b": 20, "c": 30}, "second"))

	entry, err := store.Get(ctx, "k")
	require.NoError(t, err)

	data := entry.Data.(map[string]any)
	assert.Equal(t, float64(1), data["a"])
	assert.Equal(t, float64(20), data["b"])
	assert.Equal(t, float64(30), data["c"])
	assert.Equal(t, "second", entry.Metadata.Source)
}

func TestMemoryStore_UpdateAbsentKeyBehavesAsStore(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, store.Update(ctx, "fresh", map[string]any{"x": 1}, "src"))

	entry, err := store.Get(ctx, "fresh")
	require.NoError(t, err)
	require.NotNil(t, entry)
	assert.Equal(t, float64(1), entry.Data.(map[string]any)["x"])
}

func TestMemoryStore_HistoryReturnsLatestSnapshotOnly(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, store.Store(ctx, "k", map[string]any{"v": 1}, "first"))
	require.NoError(t, store.Store(ctx, "k", map[string]any{"v": 2}, "second"))

	snapshots, err := store.History(ctx, "k")
	require.NoError(t, err)
	require.Len(t, snapshots, 1)
	assert.Equal(t, "second", snapshots[0].Source)
}

func TestMemoryStore_HistoryAbsentKey(t *testing.T) {
	store := NewMemoryStore()

	snapshots, err := store.History(context.Background(), "missing")
	require.NoError(t, err)
	assert.Empty(t, snapshots)
}

func TestMemoryStore_EmptySourceRecordedAsUnknown(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, store.Store(ctx, "k", map[string]any{"v": 1}, ""))

	entry, err := store.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "unknown", entry.Metadata.Source)
}

func TestKey_CompositeFormat(t *testing.T) {
	assert.Equal(t, "doc-7_email", Key("doc-7", StageEmail))
}

func TestMemoryStore_StructDataNormalizedToMap(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	type payload struct {
		Name string `json:"name"`
	}
	require.NoError(t, store.Store(ctx, "k", payload{Name: "A"}, "src"))

	entry, err := store.Get(ctx, "k")
	require.NoError(t, err)

	data, ok := entry.Data.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "A", data["name"])
}
