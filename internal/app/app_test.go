package app

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/five82/holonet/internal/config"
	"github.com/five82/holonet/internal/logger"
	"github.com/five82/holonet/internal/storage"
	"github.com/five82/holonet/internal/storage/file"
)

func TestOpenStoreFileBackend(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "state")
	kv, err := openStore(context.Background(), config.Storage{Backend: config.BackendFile, Dir: dir}, logger.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = kv.Close() })

	fs, ok := kv.(*file.Store)
	require.True(t, ok, "want *file.Store, got %T", kv)
	require.Equal(t, dir, fs.Dir())
}

func TestOpenStoreMemoryBackend(t *testing.T) {
	kv, err := openStore(context.Background(), config.Storage{Backend: config.BackendMemory}, logger.Nop())
	require.NoError(t, err)
	_, ok := kv.(*storage.Memory)
	require.True(t, ok, "want *storage.Memory, got %T", kv)
}

func TestOpenStoreRejectsUnknownBackend(t *testing.T) {
	_, err := openStore(context.Background(), config.Storage{Backend: "etcd"}, logger.Nop())
	require.ErrorContains(t, err, "etcd")
}

func TestOpenStoreFileBackendNeedsDir(t *testing.T) {
	_, err := openStore(context.Background(), config.Storage{Backend: config.BackendFile}, logger.Nop())
	require.Error(t, err)
}

func TestRunRejectsBadOptions(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	missing := filepath.Join(t.TempDir(), "config.toml")

	err := Run(context.Background(), Options{ConfigPath: missing, OpenRoute: "/planets/1"})
	require.ErrorContains(t, err, "open route")

	err = Run(context.Background(), Options{ConfigPath: missing, LogLevel: "loud"})
	require.ErrorContains(t, err, "unknown log level")
}
