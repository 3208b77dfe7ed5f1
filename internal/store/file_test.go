package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStoreRoundTrip(t *testing.T) {
	fs, err := NewFileStore(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	type doc struct {
		Name  string `json:"name"`
		Count int    `json:"count"`
	}

	require.NoError(t, fs.Save(ctx, "sample", doc{Name: "a", Count: 2}))

	var got doc
	found, err := fs.Load(ctx, "sample", &got)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, doc{Name: "a", Count: 2}, got)
}

func TestFileStoreMissingKeyLeavesDefault(t *testing.T) {
	fs, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	got := []string{"default"}
	found, err := fs.Load(context.Background(), "absent", &got)
	require.NoError(t, err)
	assert.False(t, found)
	assert.Equal(t, []string{"default"}, got)
}

func TestFileStoreCorruptValueTreatedAsAbsent(t *testing.T) {
	dir := t.TempDir()
	fs, err := NewFileStore(dir)
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.json"), []byte("{not json"), 0o644))

	var got map[string]int
	found, err := fs.Load(ctx, "broken", &got)
	require.NoError(t, err)
	assert.False(t, found)

	// The corrupt value is discarded by the next save.
	require.NoError(t, fs.Save(ctx, "broken", map[string]int{"ok": 1}))
	found, err = fs.Load(ctx, "broken", &got)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, 1, got["ok"])
}

func TestFileStoreDeleteMissingIsNoError(t *testing.T) {
	fs, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	assert.NoError(t, fs.Delete(context.Background(), "absent"))
}

func TestMemStoreCorruptValueTreatedAsAbsent(t *testing.T) {
	ms := NewMemStore()
	ms.Corrupt("broken")

	var got []int
	found, err := ms.Load(context.Background(), "broken", &got)
	require.NoError(t, err)
	assert.False(t, found)
}
