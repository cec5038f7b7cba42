package file_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vladislavdragonenkov/orderdesk/internal/storage/file"
)

func TestKeyValueStore_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	store, err := file.NewKeyValueStore(dir)
	require.NoError(t, err)

	_, ok, err := store.Get("orders")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, store.Set("orders", `[{"id":"DH001"}]`))
	value, ok, err := store.Get("orders")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `[{"id":"DH001"}]`, value)

	// Новый экземпляр над тем же каталогом видит данные.
	reopened, err := file.NewKeyValueStore(dir)
	require.NoError(t, err)
	value, ok, err = reopened.Get("orders")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `[{"id":"DH001"}]`, value)
}

func TestKeyValueStore_KeysAreEscaped(t *testing.T) {
	dir := t.TempDir()
	store, err := file.NewKeyValueStore(dir)
	require.NoError(t, err)

	require.NoError(t, store.Set("../escape", "x"))
	_, err = os.Stat(filepath.Join(filepath.Dir(dir), "escape.json"))
	assert.True(t, os.IsNotExist(err))

	value, ok, err := store.Get("../escape")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "x", value)
}

func TestKeyValueStore_DeleteClearPing(t *testing.T) {
	store, err := file.NewKeyValueStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Set("orders", "1"))
	require.NoError(t, store.Set("products", "2"))
	require.NoError(t, store.Delete("orders"))
	require.NoError(t, store.Delete("orders"))

	_, ok, err := store.Get("orders")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, store.Clear())
	_, ok, err = store.Get("products")
	require.NoError(t, err)
	assert.False(t, ok)

	assert.NoError(t, store.Ping())
}

func TestNewKeyValueStore_RequiresDir(t *testing.T) {
	_, err := file.NewKeyValueStore("  ")
	assert.Error(t, err)
}
