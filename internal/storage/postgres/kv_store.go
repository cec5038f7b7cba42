package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/vladislavdragonenkov/orderdesk/internal/domain"
)

const (
	opTimeout        = 5 * time.Second
	defaultNamespace = "default"
)

// kvStore хранит снимки коллекций в таблице kv_entries в пределах namespace.
type kvStore struct {
	store     *Store
	namespace string
}

// NewKeyValueStore создаёт PostgreSQL-реализацию KeyValueStore.
// Пустой namespace означает "default".
func NewKeyValueStore(store *Store, namespace string) domain.KeyValueStore {
	namespace = strings.TrimSpace(namespace)
	if namespace == "" {
		namespace = defaultNamespace
	}
	return &kvStore{store: store, namespace: namespace}
}

func (s *kvStore) Get(key string) (string, bool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	var value string
	err := s.store.DB().QueryRowContext(ctx, `
		SELECT value
		FROM kv_entries
		WHERE namespace = $1 AND key = $2
	`, s.namespace, key).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("select kv entry: %w", err)
	}
	return value, true, nil
}

func (s *kvStore) Set(key, value string) error {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	if _, err := s.store.DB().ExecContext(ctx, `
		INSERT INTO kv_entries (namespace, key, value, updated_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (namespace, key)
		DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at
	`, s.namespace, key, value); err != nil {
		return fmt.Errorf("upsert kv entry: %w", err)
	}
	return nil
}

func (s *kvStore) Delete(key string) error {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	if _, err := s.store.DB().ExecContext(ctx, `
		DELETE FROM kv_entries WHERE namespace = $1 AND key = $2
	`, s.namespace, key); err != nil {
		return fmt.Errorf("delete kv entry: %w", err)
	}
	return nil
}

func (s *kvStore) Clear() error {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	if _, err := s.store.DB().ExecContext(ctx, `
		DELETE FROM kv_entries WHERE namespace = $1
	`, s.namespace); err != nil {
		return fmt.Errorf("clear kv namespace: %w", err)
	}
	return nil
}

func (s *kvStore) Ping() error {
	return s.store.Ping(context.Background())
}

var _ domain.KeyValueStore = (*kvStore)(nil)
