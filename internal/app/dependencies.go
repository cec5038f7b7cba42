package app

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	log "github.com/sirupsen/logrus"

	healthcheck "github.com/vladislavdragonenkov/orderdesk/internal/health"
	"github.com/vladislavdragonenkov/orderdesk/internal/i18n"
	"github.com/vladislavdragonenkov/orderdesk/internal/messaging/kafka"
	"github.com/vladislavdragonenkov/orderdesk/internal/metrics"
	"github.com/vladislavdragonenkov/orderdesk/internal/persistence"
	"github.com/vladislavdragonenkov/orderdesk/internal/repository"
	"github.com/vladislavdragonenkov/orderdesk/internal/seed"
	"github.com/vladislavdragonenkov/orderdesk/internal/service/orders"
	"github.com/vladislavdragonenkov/orderdesk/internal/version"
)

// Dependencies содержит собранные компоненты приложения.
type Dependencies struct {
	Engine  *orders.Engine
	Repo    *repository.Repository
	Labels  *i18n.Labels
	Metrics *metrics.OrderDeskMetrics
	Health  *healthcheck.Handler
	Logger  *log.Entry

	storage storageRuntime
	kafka   *kafka.Producer
}

// NewDependencies открывает хранилище, заполняет его демо-данными
// и собирает движок заказов. registerer == nil означает глобальный реестр Prometheus.
func NewDependencies(ctx context.Context, cfg Config, registerer prometheus.Registerer, logger *log.Entry) (*Dependencies, error) {
	if logger == nil {
		logger = log.WithField("component", "app")
	}
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}

	labels, err := loadLabels(cfg)
	if err != nil {
		return nil, err
	}

	storage, err := initStorage(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	m := metrics.NewWithRegisterer(registerer)
	adapter := persistence.NewAdapter(storage.store,
		persistence.WithLogger(logger.WithField("layer", "persistence")),
		persistence.WithFailureRecorder(m),
	)
	repo := repository.New(adapter, logger.WithField("layer", "repository"))

	if cfg.SeedOnStart {
		dataset, err := loadSeed(cfg)
		if err != nil {
			_ = storage.close()
			return nil, err
		}
		if err := repo.SeedIfEmpty(dataset); err != nil {
			logger.WithError(err).Warn("не удалось записать демо-данные")
		}
	}

	deps := &Dependencies{
		Repo:    repo,
		Labels:  labels,
		Metrics: m,
		Health:  healthcheck.NewHandler(version.GetVersion()),
		Logger:  logger,
		storage: storage,
	}

	engineOpts := []orders.Option{
		orders.WithLogger(logger.WithField("layer", "engine")),
		orders.WithMetrics(m),
		orders.WithMessages(labels.Message),
	}
	deps.Health.RegisterChecker("storage", healthcheck.NewStoreChecker("storage", storage.store))
	if producer, err := initKafkaProducer(cfg.KafkaBrokers, logger); err == nil && producer != nil {
		publisher := kafka.NewOrderEventPublisher(producer, cfg.KafkaTopic)
		deps.kafka = producer
		engineOpts = append(engineOpts, orders.WithPublisher(publisher))
		deps.Health.RegisterChecker("kafka", healthcheck.NewOptionalChecker("kafka", publisher.LastError))
	}
	deps.Engine = orders.NewEngine(repo, engineOpts...)

	logger.WithFields(log.Fields{
		"orders":    len(deps.Engine.Orders()),
		"customers": len(deps.Engine.Customers()),
		"products":  len(deps.Engine.Products()),
	}).Info("коллекции загружены")

	return deps, nil
}

// Close освобождает producer и хранилище.
func (d *Dependencies) Close() error {
	if d == nil {
		return nil
	}
	closeKafka(d.kafka, d.Logger)
	return d.storage.close()
}

func loadLabels(cfg Config) (*i18n.Labels, error) {
	if cfg.LabelsFile != "" {
		labels, err := i18n.LoadFile(cfg.LabelsFile)
		if err != nil {
			return nil, fmt.Errorf("load labels: %w", err)
		}
		return labels, nil
	}
	locale := cfg.Locale
	if locale == "" {
		locale = i18n.LocaleVI
	}
	return i18n.Builtin(locale)
}

func loadSeed(cfg Config) (seed.Dataset, error) {
	if cfg.SeedFile == "" {
		return seed.Default(), nil
	}
	dataset, err := seed.LoadFile(cfg.SeedFile)
	if err != nil {
		return seed.Dataset{}, fmt.Errorf("load seed: %w", err)
	}
	return dataset, nil
}
