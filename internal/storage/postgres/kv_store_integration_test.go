package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeyValueStore_PostgresRoundTrip(t *testing.T) {
	store := openPostgresStoreForIntegrationTest(t)
	kv := NewKeyValueStore(store, "")

	require.NoError(t, kv.Ping())

	_, ok, err := kv.Get("orders")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, kv.Set("orders", `[{"id":"DH001"}]`))
	require.NoError(t, kv.Set("orders", `[{"id":"DH002"}]`))

	value, ok, err := kv.Get("orders")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `[{"id":"DH002"}]`, value)

	require.NoError(t, kv.Delete("orders"))
	require.NoError(t, kv.Delete("orders"))
	_, ok, err = kv.Get("orders")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestKeyValueStore_PostgresNamespacesAreIsolated(t *testing.T) {
	store := openPostgresStoreForIntegrationTest(t)
	shop := NewKeyValueStore(store, "shop")
	other := NewKeyValueStore(store, "  other ")

	require.NoError(t, shop.Set("products", "[]"))
	require.NoError(t, other.Set("products", `[{"id":"SP001"}]`))

	require.NoError(t, shop.Clear())

	_, ok, err := shop.Get("products")
	require.NoError(t, err)
	assert.False(t, ok)

	value, ok, err := other.Get("products")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `[{"id":"SP001"}]`, value)
}
