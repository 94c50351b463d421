package localfs_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/studifund/studifund-api/pkg/localfs"
)

func TestServiceUploadWritesFileAndReturnsURL(t *testing.T) {
	dir := t.TempDir()
	svc, err := localfs.New(localfs.Config{Dir: dir, URLPrefix: "/files"}, zerolog.Nop())
	require.NoError(t, err)

	url, err := svc.Upload(context.Background(), "receipt.pdf", bytes.NewReader([]byte("%PDF-1.4")))
	require.NoError(t, err)
	require.Equal(t, "/files/receipt.pdf", url)

	content, err := os.ReadFile(filepath.Join(dir, "receipt.pdf"))
	require.NoError(t, err)
	require.Equal(t, []byte("%PDF-1.4"), content)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1, "no temp files left behind")
}

func TestServiceUploadStripsPathComponents(t *testing.T) {
	dir := t.TempDir()
	svc, err := localfs.New(localfs.Config{Dir: dir, URLPrefix: "/uploads"}, zerolog.Nop())
	require.NoError(t, err)

	url, err := svc.Upload(context.Background(), "../escape.pdf", bytes.NewReader([]byte("data")))
	require.NoError(t, err)
	require.Equal(t, "/uploads/escape.pdf", url)

	_, err = os.Stat(filepath.Join(dir, "escape.pdf"))
	require.NoError(t, err)
}

func TestNewCreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "uploads")
	_, err := localfs.New(localfs.Config{Dir: dir}, zerolog.Nop())
	require.NoError(t, err)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	require.True(t, info.IsDir())
}

func TestNewRequiresDirectory(t *testing.T) {
	_, err := localfs.New(localfs.Config{}, zerolog.Nop())
	require.Error(t, err)
}
