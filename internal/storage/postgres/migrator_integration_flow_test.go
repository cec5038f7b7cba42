package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func kvEntriesExists(t *testing.T, ctx context.Context, db *sql.DB) bool {
	t.Helper()
	var exists bool
	require.NoError(t, db.QueryRowContext(ctx, `SELECT to_regclass('kv_entries') IS NOT NULL`).Scan(&exists))
	return exists
}

func kvEntriesPrimaryKey(t *testing.T, ctx context.Context, db *sql.DB) []string {
	t.Helper()
	rows, err := db.QueryContext(ctx, `
		SELECT a.attname
		FROM pg_index i
		JOIN pg_attribute a ON a.attrelid = i.indrelid AND a.attnum = ANY(i.indkey)
		WHERE i.indrelid = 'kv_entries'::regclass AND i.indisprimary
		ORDER BY array_position(i.indkey::int2[], a.attnum)
	`)
	require.NoError(t, err)
	defer rows.Close()

	var columns []string
	for rows.Next() {
		var name string
		require.NoError(t, rows.Scan(&name))
		columns = append(columns, name)
	}
	require.NoError(t, rows.Err())
	return columns
}

func assertMigrationStatus(t *testing.T, ctx context.Context, store *Store, wantVersion int64, wantCount int) {
	t.Helper()
	version, count, err := store.MigrationStatus(ctx)
	require.NoError(t, err)
	assert.Equal(t, wantVersion, version)
	assert.Equal(t, wantCount, count)
}

func TestMigrator_PostgresLifecycle(t *testing.T) {
	store := openRawPostgresStoreForIntegrationTest(t)
	db := store.DB()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
	defer cancel()

	require.NoError(t, store.MigrateDown(ctx, 100))
	assertMigrationStatus(t, ctx, store, 0, 0)
	assert.False(t, kvEntriesExists(t, ctx, db))

	// 0001: таблица без namespace, ключ уникален глобально.
	require.NoError(t, store.MigrateUp(ctx, 1))
	assertMigrationStatus(t, ctx, store, 1, 1)
	require.True(t, kvEntriesExists(t, ctx, db))
	assert.Equal(t, []string{"key"}, kvEntriesPrimaryKey(t, ctx, db))
	_, err := db.ExecContext(ctx, `INSERT INTO kv_entries (key, value) VALUES ('orders', '[]')`)
	require.NoError(t, err)

	// 0002: старые строки уезжают в namespace default, ключ становится составным.
	require.NoError(t, store.MigrateUp(ctx, 0))
	assertMigrationStatus(t, ctx, store, 2, 2)
	assert.Equal(t, []string{"namespace", "key"}, kvEntriesPrimaryKey(t, ctx, db))

	desk := NewKeyValueStore(store, "desk-2")
	legacy := NewKeyValueStore(store, "")
	value, ok, err := legacy.Get("orders")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "[]", value)

	require.NoError(t, desk.Set("orders", `[{"id":"DH001"}]`))
	require.NoError(t, desk.Set("orders", `[{"id":"DH002"}]`))
	value, _, err = desk.Get("orders")
	require.NoError(t, err)
	assert.Equal(t, `[{"id":"DH002"}]`, value)

	// Повторный up ничего не меняет.
	require.NoError(t, store.MigrateUp(ctx, 0))
	assertMigrationStatus(t, ctx, store, 2, 2)

	// Откат 0002 удаляет чужие namespace и сам столбец.
	require.NoError(t, store.MigrateDown(ctx, 1))
	assertMigrationStatus(t, ctx, store, 1, 1)
	assert.Equal(t, []string{"key"}, kvEntriesPrimaryKey(t, ctx, db))

	var hasNamespace bool
	require.NoError(t, db.QueryRowContext(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM information_schema.columns
			WHERE table_name = 'kv_entries' AND column_name = 'namespace'
		)`).Scan(&hasNamespace))
	assert.False(t, hasNamespace)

	var rows int
	require.NoError(t, db.QueryRowContext(ctx, `SELECT COUNT(*) FROM kv_entries`).Scan(&rows))
	assert.Equal(t, 1, rows)

	require.NoError(t, store.MigrateDown(ctx, 0))
	assertMigrationStatus(t, ctx, store, 0, 0)
	assert.False(t, kvEntriesExists(t, ctx, db))

	require.NoError(t, store.MigrateDown(ctx, 1))
}

func TestMigrator_GuardsAndUnsupportedDirection(t *testing.T) {
	var nilStore *Store
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	assert.Error(t, nilStore.MigrateUp(ctx, 0))
	assert.Error(t, nilStore.MigrateDown(ctx, 1))
	_, _, err := nilStore.MigrationStatus(ctx)
	assert.Error(t, err)

	store := openRawPostgresStoreForIntegrationTest(t)
	assert.Error(t, store.migrate(ctx, migrationDirection("invalid"), 0))
}
