package app

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/orderdesk/internal/domain"
	filestore "github.com/vladislavdragonenkov/orderdesk/internal/storage/file"
	"github.com/vladislavdragonenkov/orderdesk/internal/storage/memory"
	mongostore "github.com/vladislavdragonenkov/orderdesk/internal/storage/mongo"
	"github.com/vladislavdragonenkov/orderdesk/internal/storage/postgres"
	redisstore "github.com/vladislavdragonenkov/orderdesk/internal/storage/redis"
)

// storageRuntime — выбранное хранилище и функция освобождения его ресурсов.
type storageRuntime struct {
	store   domain.KeyValueStore
	closeFn func() error
}

func initStorage(ctx context.Context, cfg Config, logger *log.Entry) (storageRuntime, error) {
	if err := cfg.Validate(); err != nil {
		return storageRuntime{}, err
	}
	logger = logger.WithField("storage_driver", cfg.StorageDriver)

	switch cfg.StorageDriver {
	case StorageDriverMemory:
		logger.Info("используем хранилище в памяти")
		return storageRuntime{store: memory.NewKeyValueStore()}, nil

	case StorageDriverFile:
		store, err := filestore.NewKeyValueStore(cfg.FileDir)
		if err != nil {
			return storageRuntime{}, fmt.Errorf("init file storage: %w", err)
		}
		logger.WithField("dir", cfg.FileDir).Info("используем файловое хранилище")
		return storageRuntime{store: store}, nil

	case StorageDriverPostgres:
		pg, err := postgres.Open(ctx, cfg.PostgresDSN, postgres.WithMaxConns(cfg.PostgresMaxConns))
		if err != nil {
			return storageRuntime{}, fmt.Errorf("open postgres: %w", err)
		}
		if cfg.PostgresAutoMigrate {
			if err := pg.EnsureSchema(ctx); err != nil {
				_ = pg.Close()
				return storageRuntime{}, fmt.Errorf("migrate postgres: %w", err)
			}
			logger.Info("схема postgres актуальна")
		}
		logger.WithFields(log.Fields{
			"namespace": cfg.PostgresNamespace,
			"max_conns": pg.Pool().MaxOpenConns,
		}).Info("используем postgres")
		return storageRuntime{
			store:   postgres.NewKeyValueStore(pg, cfg.PostgresNamespace),
			closeFn: pg.Close,
		}, nil

	case StorageDriverRedis:
		client, err := redisstore.Open(ctx, cfg.RedisAddr)
		if err != nil {
			return storageRuntime{}, fmt.Errorf("open redis: %w", err)
		}
		logger.WithField("addr", cfg.RedisAddr).Info("используем redis")
		return storageRuntime{
			store:   redisstore.NewKeyValueStore(client, cfg.RedisPrefix),
			closeFn: client.Close,
		}, nil

	case StorageDriverMongo:
		client, err := mongostore.Open(ctx, cfg.MongoURI)
		if err != nil {
			return storageRuntime{}, fmt.Errorf("open mongo: %w", err)
		}
		logger.WithField("database", cfg.MongoDatabase).Info("используем mongo")
		return storageRuntime{
			store: mongostore.NewKeyValueStore(client, cfg.MongoDatabase),
			closeFn: func() error {
				return client.Disconnect(context.Background())
			},
		}, nil
	}

	return storageRuntime{}, fmt.Errorf("%w: %q", ErrUnsupportedStorageDriver, cfg.StorageDriver)
}

func (r storageRuntime) close() error {
	if r.closeFn == nil {
		return nil
	}
	return r.closeFn()
}
