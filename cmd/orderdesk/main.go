package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/orderdesk/internal/app"
	"github.com/vladislavdragonenkov/orderdesk/internal/version"
)

type envLookup func(key string) (string, bool)

// setupLogger настраивает формат и уровень логирования.
func setupLogger(level string) error {
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	if strings.TrimSpace(level) == "" {
		log.SetLevel(log.InfoLevel)
		return nil
	}
	parsed, err := log.ParseLevel(level)
	if err != nil {
		log.SetLevel(log.InfoLevel)
		return err
	}
	log.SetLevel(parsed)
	return nil
}

// readConfigFromEnv накладывает переменные окружения на DefaultConfig.
// Некорректные значения не прерывают запуск: поле остаётся по умолчанию, ошибка попадает в warnings.
func readConfigFromEnv(lookup envLookup) (app.Config, []string) {
	cfg := app.DefaultConfig()
	var warnings []string

	str := func(key string, dst *string) {
		if v, ok := lookup(key); ok && strings.TrimSpace(v) != "" {
			*dst = strings.TrimSpace(v)
		}
	}
	boolean := func(key string, dst *bool) {
		v, ok := lookup(key)
		if !ok || strings.TrimSpace(v) == "" {
			return
		}
		parsed, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("%s: %v", key, err))
			return
		}
		*dst = parsed
	}
	integer := func(key string, dst *int) {
		v, ok := lookup(key)
		if !ok || strings.TrimSpace(v) == "" {
			return
		}
		parsed, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil || parsed <= 0 {
			warnings = append(warnings, fmt.Sprintf("%s: invalid positive integer %q", key, v))
			return
		}
		*dst = parsed
	}
	duration := func(key string, dst *time.Duration) {
		v, ok := lookup(key)
		if !ok || strings.TrimSpace(v) == "" {
			return
		}
		parsed, err := time.ParseDuration(strings.TrimSpace(v))
		if err != nil || parsed <= 0 {
			warnings = append(warnings, fmt.Sprintf("%s: invalid duration %q", key, v))
			return
		}
		*dst = parsed
	}

	str("ORDERDESK_METRICS_ADDR", &cfg.MetricsAddr)
	str("ORDERDESK_STORAGE_DRIVER", &cfg.StorageDriver)
	cfg.StorageDriver = strings.ToLower(cfg.StorageDriver)
	str("ORDERDESK_FILE_DIR", &cfg.FileDir)
	str("ORDERDESK_POSTGRES_DSN", &cfg.PostgresDSN)
	boolean("ORDERDESK_POSTGRES_AUTO_MIGRATE", &cfg.PostgresAutoMigrate)
	str("ORDERDESK_POSTGRES_NAMESPACE", &cfg.PostgresNamespace)
	integer("ORDERDESK_POSTGRES_MAX_CONNS", &cfg.PostgresMaxConns)
	str("ORDERDESK_REDIS_ADDR", &cfg.RedisAddr)
	str("ORDERDESK_REDIS_PREFIX", &cfg.RedisPrefix)
	str("ORDERDESK_MONGO_URI", &cfg.MongoURI)
	str("ORDERDESK_MONGO_DATABASE", &cfg.MongoDatabase)
	if v, ok := lookup("ORDERDESK_KAFKA_BROKERS"); ok {
		cfg.KafkaBrokers = splitList(v)
	}
	str("ORDERDESK_KAFKA_TOPIC", &cfg.KafkaTopic)
	str("ORDERDESK_LOCALE", &cfg.Locale)
	str("ORDERDESK_LABELS_FILE", &cfg.LabelsFile)
	str("ORDERDESK_SEED_FILE", &cfg.SeedFile)
	boolean("ORDERDESK_SEED_ON_START", &cfg.SeedOnStart)
	duration("ORDERDESK_SHUTDOWN_TIMEOUT", &cfg.ShutdownTimeout)

	return cfg, warnings
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.WithError(err).Warn("не удалось прочитать .env")
	}

	if err := setupLogger(os.Getenv("ORDERDESK_LOG_LEVEL")); err != nil {
		log.WithError(err).Warn("неизвестный уровень логирования, используем info")
	}

	cfg, warnings := readConfigFromEnv(os.LookupEnv)
	for _, w := range warnings {
		log.Warn(w)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.WithFields(log.Fields{
		"version":        version.GetVersion(),
		"storage_driver": cfg.StorageDriver,
		"metrics_addr":   cfg.MetricsAddr,
		"locale":         cfg.Locale,
	}).Info("запускаем orderdesk")

	if err := app.Run(ctx, cfg); err != nil && !errors.Is(err, context.Canceled) {
		log.WithError(err).Fatal("приложение завершилось с ошибкой")
	}

	log.Info("orderdesk остановлен")
}
