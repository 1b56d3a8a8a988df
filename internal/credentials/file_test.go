package credentials

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zhaomaota/word-stone/internal/domain"
)

func TestFileStore_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	store, err := NewFileStore(filepath.Join(dir, "creds"))
	require.NoError(t, err)
	ctx := context.Background()

	creds := Credentials{Token: "tok", Profile: domain.Profile{Username: "Ana", Nickname: "A", TotalRoses: 2}}
	require.NoError(t, store.Put(ctx, "Ana", creds))

	got, err := store.Get(ctx, "ana")
	require.NoError(t, err)
	assert.Equal(t, creds, got, "usernames are case-insensitive")

	info, err := os.Stat(filepath.Join(dir, "creds", "ana.json"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	require.NoError(t, store.Delete(ctx, "ana"))
	_, err = store.Get(ctx, "ana")
	assert.ErrorIs(t, err, ErrNotFound)

	assert.NoError(t, store.Delete(ctx, "ana"), "deleting twice is fine")
}

func TestFileStore_UnsafeNames(t *testing.T) {
	dir := t.TempDir()
	store, err := NewFileStore(dir)
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "../evil", Credentials{Token: "x"}))
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "___evil.json", entries[0].Name())

	err = store.Put(ctx, "   ", Credentials{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestFileStore_CorruptRecord(t *testing.T) {
	dir := t.TempDir()
	store, err := NewFileStore(dir)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bo.json"), []byte("{"), 0o600))

	_, err = store.Get(context.Background(), "bo")
	assert.ErrorIs(t, err, ErrNotFound)
}
