package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/rickchristie/backtrack"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_PutGetErase(t *testing.T) {
	ctx := context.Background()
	s, err := Open(":memory:")
	require.NoError(t, err)
	defer s.Close()

	_, err = s.Get(ctx, "a")
	assert.ErrorIs(t, err, backtrack.ErrNotFound)

	require.NoError(t, s.Put(ctx, "b", []byte("two")))
	require.NoError(t, s.Put(ctx, "a", []byte("one")))
	require.NoError(t, s.Put(ctx, "a", []byte("uno")))

	got, err := s.Get(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, []byte("uno"), got)

	keys, err := s.Keys(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, keys)

	require.NoError(t, s.Erase(ctx, "a"))
	require.NoError(t, s.Erase(ctx, "a"))
	_, err = s.Get(ctx, "a")
	assert.ErrorIs(t, err, backtrack.ErrNotFound)
}

func TestStore_EmptyValue(t *testing.T) {
	ctx := context.Background()
	s, err := Open(":memory:")
	require.NoError(t, err)
	defer s.Close()

	require.NoError(t, s.Put(ctx, "empty", nil))
	got, err := s.Get(ctx, "empty")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestStore_PersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "stacks.db")

	s, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s.Put(ctx, "session", []byte("payload")))
	require.NoError(t, s.Close())

	s, err = Open(path)
	require.NoError(t, err)
	defer s.Close()
	assert.Equal(t, path, s.Path())

	got, err := s.Get(ctx, "session")
	require.NoError(t, err)
	assert.Equal(t, []byte("payload"), got)
}
