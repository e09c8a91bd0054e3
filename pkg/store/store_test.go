package store_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/modkit/pkg/store"
)

// exerciseStore runs the contract every driver must satisfy.
func exerciseStore(t *testing.T, s store.Store) {
	t.Helper()
	ctx := context.Background()

	_, found, err := s.Read(ctx, store.EnabledKey("missing"))
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, s.Write(ctx, store.EnabledKey("god-mode"), []byte("true")))
	v, found, err := s.Read(ctx, store.EnabledKey("god-mode"))
	require.NoError(t, err)
	require.True(t, found)
	assert.JSONEq(t, "true", string(v))

	require.NoError(t, s.Write(ctx, store.EnabledKey("god-mode"), []byte("false")))
	v, _, err = s.Read(ctx, store.EnabledKey("god-mode"))
	require.NoError(t, err)
	assert.JSONEq(t, "false", string(v))

	key := store.SettingKey("god-mode", "sources")
	require.NoError(t, s.Write(ctx, key, []byte(`["Doors","Lights"]`)))
	v, found, err = s.Read(ctx, key)
	require.NoError(t, err)
	require.True(t, found)
	assert.JSONEq(t, `["Doors","Lights"]`, string(v))
}

func TestKeys(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "features/god-mode/enabled", store.EnabledKey("god-mode"))
	assert.Equal(t, "features/god-mode/settings/tint", store.SettingKey("god-mode", "tint"))
}

func TestMemoryStore(t *testing.T) {
	t.Parallel()
	s := store.NewMemoryStore()
	exerciseStore(t, s)
	assert.Equal(t, []string{
		"features/god-mode/enabled",
		"features/god-mode/settings/sources",
	}, s.Keys())

	value := []byte("true")
	require.NoError(t, s.Write(context.Background(), "k", value))
	value[0] = 'X'
	got, _, _ := s.Read(context.Background(), "k")
	assert.Equal(t, "true", string(got))
	assert.NoError(t, s.Close())
}

func TestFileStore(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "nested", "modkit.yaml")
	s, err := store.OpenFileStore(path)
	require.NoError(t, err)
	exerciseStore(t, s)
	require.NoError(t, s.Write(context.Background(), store.SettingKey("hud", "tint"), []byte(`"#FF0000"`)))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "features/god-mode/enabled: false")
	assert.Contains(t, string(data), "'#FF0000'")

	reopened, err := store.OpenFileStore(path)
	require.NoError(t, err)
	v, found, err := reopened.Read(context.Background(), store.SettingKey("hud", "tint"))
	require.NoError(t, err)
	require.True(t, found)
	assert.JSONEq(t, `"#FF0000"`, string(v))

	t.Run("raw values survive", func(t *testing.T) {
		require.NoError(t, reopened.Write(context.Background(), "raw", []byte("not json")))
		v, _, err := reopened.Read(context.Background(), "raw")
		require.NoError(t, err)
		assert.JSONEq(t, `"not json"`, string(v))
	})

	t.Run("invalid document", func(t *testing.T) {
		bad := filepath.Join(t.TempDir(), "bad.yaml")
		require.NoError(t, os.WriteFile(bad, []byte("- [unclosed"), 0o600))
		_, err := store.OpenFileStore(bad)
		assert.ErrorIs(t, err, store.ErrReadFailed)
	})

	_, err = store.OpenFileStore("")
	assert.ErrorIs(t, err, store.ErrInvalidConfig)
}

func TestBadgerStore(t *testing.T) {
	t.Parallel()

	s, err := store.OpenBadgerStore("")
	require.NoError(t, err)
	exerciseStore(t, s)
	require.NoError(t, s.Close())

	_, _, err = s.Read(context.Background(), "k")
	assert.ErrorIs(t, err, store.ErrClosed)
}

func TestOpen(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	s, err := store.Open(ctx, store.Config{Driver: "memory"}, nil)
	require.NoError(t, err)
	assert.IsType(t, &store.MemoryStore{}, s)

	s, err = store.Open(ctx, store.Config{Driver: "FILE", FilePath: filepath.Join(t.TempDir(), "c.yaml")}, nil)
	require.NoError(t, err)
	assert.IsType(t, &store.FileStore{}, s)

	s, err = store.Open(ctx, store.Config{Driver: "badger", BadgerDir: t.TempDir()}, nil)
	require.NoError(t, err)
	assert.IsType(t, &store.BadgerStore{}, s)
	require.NoError(t, s.Close())

	_, err = store.Open(ctx, store.Config{Driver: "etcd"}, nil)
	assert.ErrorIs(t, err, store.ErrUnknownDriver)

	_, err = store.Open(ctx, store.Config{Driver: "s3"}, nil)
	assert.ErrorIs(t, err, store.ErrInvalidConfig)

	_, err = store.Open(ctx, store.Config{Driver: "postgres"}, nil)
	assert.ErrorIs(t, err, store.ErrInvalidConfig)
}
