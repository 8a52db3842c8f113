package filestore

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveAndLoad(t *testing.T) {
	s, err := New(t.TempDir())
	require.NoError(t, err)

	ctx := context.Background()

	_, found, err := s.Load(ctx, "institutes")
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, s.Save(ctx, "institutes", []byte(`[{"id":"a"}]`)))

	blob, found, err := s.Load(ctx, "institutes")
	require.NoError(t, err)
	assert.True(t, found)
	assert.JSONEq(t, `[{"id":"a"}]`, string(blob))
}

func TestSave_Overwrites(t *testing.T) {
	s, err := New(t.TempDir())
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, s.Save(ctx, "students", []byte(`[1]`)))
	require.NoError(t, s.Save(ctx, "students", []byte(`[1,2]`)))

	blob, found, err := s.Load(ctx, "students")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, `[1,2]`, string(blob))
}

func TestInvalidKeyRejected(t *testing.T) {
	s, err := New(t.TempDir())
	require.NoError(t, err)

	ctx := context.Background()
	assert.Error(t, s.Save(ctx, "../escape", []byte(`{}`)))
	_, _, err = s.Load(ctx, "UPPER")
	assert.Error(t, err)
}

func TestNoTempFileLeftBehind(t *testing.T) {
	dir := t.TempDir()
	s, err := New(dir)
	require.NoError(t, err)

	require.NoError(t, s.Save(context.Background(), "institutes", []byte(`[]`)))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "institutes.json", filepath.Base(entries[0].Name()))
}
