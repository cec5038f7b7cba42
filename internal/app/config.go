package app

import (
	"errors"
	"fmt"
	"time"

	"github.com/vladislavdragonenkov/orderdesk/internal/i18n"
	redisstore "github.com/vladislavdragonenkov/orderdesk/internal/storage/redis"
)

// Поддерживаемые хранилища.
const (
	StorageDriverMemory   = "memory"
	StorageDriverFile     = "file"
	StorageDriverPostgres = "postgres"
	StorageDriverRedis    = "redis"
	StorageDriverMongo    = "mongo"
)

// ErrUnsupportedStorageDriver возвращается для неизвестного драйвера хранилища.
var ErrUnsupportedStorageDriver = errors.New("unsupported storage driver")

// Config описывает настройки запуска приложения.
type Config struct {
	MetricsAddr string

	StorageDriver       string
	FileDir             string
	PostgresDSN         string
	PostgresAutoMigrate bool
	PostgresNamespace   string
	PostgresMaxConns    int
	RedisAddr           string
	RedisPrefix         string
	MongoURI            string
	MongoDatabase       string

	KafkaBrokers []string
	KafkaTopic   string

	Locale      string
	LabelsFile  string
	SeedFile    string
	SeedOnStart bool

	ShutdownTimeout time.Duration
}

// DefaultConfig возвращает конфигурацию для локального запуска в памяти.
func DefaultConfig() Config {
	return Config{
		MetricsAddr:         ":9090",
		StorageDriver:       StorageDriverMemory,
		FileDir:             "data",
		PostgresAutoMigrate: true,
		PostgresNamespace:   "default",
		PostgresMaxConns:    4,
		RedisAddr:           "localhost:6379",
		RedisPrefix:         redisstore.DefaultPrefix,
		MongoDatabase:       "orderdesk",
		Locale:              i18n.LocaleVI,
		SeedOnStart:         true,
		ShutdownTimeout:     5 * time.Second,
	}
}

// Validate проверяет согласованность настроек выбранного драйвера.
func (c Config) Validate() error {
	switch c.StorageDriver {
	case StorageDriverMemory:
	case StorageDriverFile:
		if c.FileDir == "" {
			return errors.New("file storage requires a directory")
		}
	case StorageDriverPostgres:
		if c.PostgresDSN == "" {
			return errors.New("postgres storage requires a dsn")
		}
	case StorageDriverRedis:
		if c.RedisAddr == "" {
			return errors.New("redis storage requires an address")
		}
	case StorageDriverMongo:
		if c.MongoURI == "" {
			return errors.New("mongo storage requires a uri")
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedStorageDriver, c.StorageDriver)
	}
	return nil
}
