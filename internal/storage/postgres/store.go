package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
)

// PoolConfig задаёт размер пула и таймауты подключения.
// Снимки коллекций пишутся целиком одним оператором, поэтому по умолчанию пул маленький.
type PoolConfig struct {
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
	ConnTimeout     time.Duration
}

// DefaultPoolConfig возвращает настройки пула для одного процесса orderdesk.
func DefaultPoolConfig() PoolConfig {
	return PoolConfig{
		MaxOpenConns:    4,
		MaxIdleConns:    2,
		ConnMaxLifetime: 30 * time.Minute,
		ConnMaxIdleTime: 5 * time.Minute,
		ConnTimeout:     5 * time.Second,
	}
}

// Option настраивает Open.
type Option func(*PoolConfig)

// WithMaxConns ограничивает число открытых соединений; idle-соединений держим не больше половины.
// Значения <= 0 игнорируются.
func WithMaxConns(n int) Option {
	return func(cfg *PoolConfig) {
		if n <= 0 {
			return
		}
		cfg.MaxOpenConns = n
		cfg.MaxIdleConns = max(1, n/2)
	}
}

// WithConnTimeout задаёт таймаут ping при открытии и в health checks.
func WithConnTimeout(timeout time.Duration) Option {
	return func(cfg *PoolConfig) {
		if timeout > 0 {
			cfg.ConnTimeout = timeout
		}
	}
}

// Store держит пул соединений с таблицей kv_entries.
type Store struct {
	db   *sql.DB
	pool PoolConfig
}

// Open подключается к PostgreSQL через pgx и проверяет доступность базы.
func Open(ctx context.Context, dsn string, options ...Option) (*Store, error) {
	if dsn == "" {
		return nil, errors.New("postgres dsn is required")
	}
	pool := DefaultPoolConfig()
	for _, option := range options {
		option(&pool)
	}

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres connection: %w", err)
	}
	db.SetMaxOpenConns(pool.MaxOpenConns)
	db.SetMaxIdleConns(pool.MaxIdleConns)
	db.SetConnMaxLifetime(pool.ConnMaxLifetime)
	db.SetConnMaxIdleTime(pool.ConnMaxIdleTime)

	store := &Store{db: db, pool: pool}
	if err := store.Ping(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return store, nil
}

// DB возвращает *sql.DB для миграций и тестов.
func (s *Store) DB() *sql.DB {
	return s.db
}

// Pool возвращает применённые настройки пула.
func (s *Store) Pool() PoolConfig {
	return s.pool
}

// Ping проверяет соединение с таймаутом пула.
func (s *Store) Ping(ctx context.Context) error {
	if s == nil || s.db == nil {
		return errors.New("postgres store is not initialized")
	}
	pingCtx, cancel := context.WithTimeout(ctx, s.pool.ConnTimeout)
	defer cancel()
	return s.db.PingContext(pingCtx)
}

// EnsureSchema доводит kv_entries до последней версии.
func (s *Store) EnsureSchema(ctx context.Context) error {
	return s.MigrateUp(ctx, 0)
}

// Close закрывает пул; nil-safe.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}
