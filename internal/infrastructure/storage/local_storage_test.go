package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestStorage(t *testing.T) *LocalStorage {
	t.Helper()
	s, err := NewLocalStorage(t.TempDir(), zap.NewNop())
	require.NoError(t, err)
	return s
}

func TestSaveAndRead(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	content := []byte("receipt data")
	require.NoError(t, s.Save(ctx, "proposals/1/receipt.pdf", content))

	assert.True(t, s.Exists(ctx, "proposals/1/receipt.pdf"))

	got, err := s.Read(ctx, "proposals/1/receipt.pdf")
	require.NoError(t, err)
	assert.Equal(t, content, got)
}

func TestSaveCreatesNestedDirectories(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, "a/b/c/file.txt", []byte("x")))
	assert.True(t, s.Exists(ctx, "a/b/c/file.txt"))
}

func TestPathTraversalRejected(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	err := s.Save(ctx, "../escape.txt", []byte("x"))
	assert.Error(t, err)

	_, err = s.Read(ctx, "../../etc/passwd")
	assert.Error(t, err)

	assert.False(t, s.Exists(ctx, "../escape.txt"))
}

func TestDelete(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, "f.txt", []byte("x")))
	require.NoError(t, s.Delete(ctx, "f.txt"))
	assert.False(t, s.Exists(ctx, "f.txt"))

	// Deleting a missing file is not an error
	assert.NoError(t, s.Delete(ctx, "f.txt"))
}
