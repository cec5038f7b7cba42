package app

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vladislavdragonenkov/orderdesk/internal/domain"
	"github.com/vladislavdragonenkov/orderdesk/internal/i18n"
	"github.com/vladislavdragonenkov/orderdesk/internal/service/orders"
)

func newTestDependencies(t *testing.T, cfg Config) *Dependencies {
	t.Helper()

	deps, err := NewDependencies(context.Background(), cfg, prometheus.NewRegistry(), log.WithField("test", t.Name()))
	require.NoError(t, err)
	t.Cleanup(func() { _ = deps.Close() })
	return deps
}

func TestNewDependencies_SeedsMemoryStorage(t *testing.T) {
	deps := newTestDependencies(t, DefaultConfig())

	assert.Len(t, deps.Engine.Orders(), 3)
	assert.Len(t, deps.Engine.Customers(), 4)
	assert.Len(t, deps.Engine.Products(), 5)
	assert.Equal(t, i18n.LocaleVI, deps.Labels.Locale)
	assert.Equal(t, []string{"storage"}, deps.Health.Names())
	id, err := deps.Engine.GenerateOrderID()
	require.NoError(t, err)
	assert.Equal(t, "DH004", id)
}

func TestNewDependencies_WithoutSeed(t *testing.T) {
	cfg := DefaultConfig()
	cfg.SeedOnStart = false

	deps := newTestDependencies(t, cfg)

	assert.Empty(t, deps.Engine.Orders())
	id, err := deps.Engine.GenerateOrderID()
	require.NoError(t, err)
	assert.Equal(t, "DH001", id)
}

func TestNewDependencies_FileStorageSurvivesRestart(t *testing.T) {
	cfg := DefaultConfig()
	cfg.StorageDriver = StorageDriverFile
	cfg.FileDir = t.TempDir()

	first := newTestDependencies(t, cfg)
	created, err := first.Engine.AddOrder(orders.OrderDraft{
		CustomerID:   "KH001",
		CustomerName: "Nguyễn Văn A",
		Items: []domain.OrderItem{
			{ProductID: "SP001", ProductName: "Laptop Dell XPS 13", Quantity: 1, Price: 30000000},
		},
	})
	require.NoError(t, err)
	require.NoError(t, first.Close())

	second := newTestDependencies(t, cfg)
	require.Len(t, second.Engine.Orders(), 4)
	assert.GreaterOrEqual(t, domain.FindOrder(second.Engine.Orders(), created.ID), 0)
}

func TestNewDependencies_UsesLocaleMessages(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Locale = i18n.LocaleEN

	deps := newTestDependencies(t, cfg)

	_, err := deps.Engine.AddOrder(orders.OrderDraft{CustomerID: "bad"})
	var validation *domain.ValidationError
	require.ErrorAs(t, err, &validation)
	require.NotEmpty(t, validation.Messages)
	assert.Equal(t, deps.Labels.Message(validation.Violations[0]), validation.Messages[0])
}

func TestNewDependencies_CustomSeedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seed.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
customers:
  - id: KH010
    name: Lê Minh
products:
  - id: SP010
    name: Tai nghe
    price: 990000
    inventory: 3
`), 0o600))

	cfg := DefaultConfig()
	cfg.SeedFile = path

	deps := newTestDependencies(t, cfg)
	assert.Empty(t, deps.Engine.Orders())
	require.Len(t, deps.Engine.Customers(), 1)
	assert.Equal(t, "KH010", deps.Engine.Customers()[0].ID)
}

func TestNewDependencies_Errors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{name: "unknown locale", mutate: func(c *Config) { c.Locale = "fr" }},
		{name: "missing labels file", mutate: func(c *Config) { c.LabelsFile = "/nonexistent/labels.yaml" }},
		{name: "missing seed file", mutate: func(c *Config) { c.SeedFile = "/nonexistent/seed.yaml" }},
		{name: "unsupported driver", mutate: func(c *Config) { c.StorageDriver = "sqlite" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			_, err := NewDependencies(context.Background(), cfg, prometheus.NewRegistry(), nil)
			assert.Error(t, err)
		})
	}
}

func TestDependencies_CloseNil(t *testing.T) {
	var deps *Dependencies
	assert.NoError(t, deps.Close())
}
