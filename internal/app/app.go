// Package app собирает хранилище, движок заказов и HTTP-сервер метрик в работающий процесс.
package app

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/orderdesk/internal/display"
	healthcheck "github.com/vladislavdragonenkov/orderdesk/internal/health"
)

// Run поднимает зависимости и обслуживает /metrics и health endpoints до отмены ctx.
func Run(ctx context.Context, cfg Config) error {
	logger := log.WithField("component", "app")

	deps, err := NewDependencies(ctx, cfg, nil, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := deps.Close(); err != nil {
			logger.WithError(err).Warn("failed to close storage")
		}
	}()

	stats := deps.Engine.Statistics()
	logger.WithFields(log.Fields{
		"total":     stats.TotalOrders,
		"pending":   stats.PendingOrders,
		"shipping":  stats.ShippingOrders,
		"completed": stats.CompletedOrders,
		"cancelled": stats.CancelledOrders,
	}).Info(display.NewFormatter(deps.Labels, display.DefaultLocation).StatisticsSummary(stats))

	srv := startMetricsServer(cfg.MetricsAddr, logger, deps.Health)

	<-ctx.Done()
	logger.Info("получен сигнал остановки")
	shutdownHTTP(srv, cfg.ShutdownTimeout, logger)
	return ctx.Err()
}

// startMetricsServer запускает HTTP-обработчик /metrics и health checks.
func startMetricsServer(addr string, logger *log.Entry, healthHandler *healthcheck.Handler) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.Handle("/healthz", healthHandler)
	mux.HandleFunc("/livez", healthcheck.LivenessHandler)
	mux.HandleFunc("/readyz", healthHandler.ReadinessHandler)

	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		logger.Infof("метрики доступны по адресу %s/metrics", addr)
		logger.Infof("health checks: %s/healthz, %s/livez, %s/readyz", addr, addr, addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithError(err).Warn("metrics server failed")
		}
	}()

	return srv
}

// shutdownHTTP аккуратно останавливает HTTP-сервер.
func shutdownHTTP(srv *http.Server, timeout time.Duration, logger *log.Entry) {
	if srv == nil {
		return
	}
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.WithError(err).Warn("metrics shutdown with error")
	}
}
