package seed

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vladislavdragonenkov/orderdesk/internal/domain"
)

func TestDefault_MatchesSampleData(t *testing.T) {
	dataset := Default()

	require.Len(t, dataset.Orders, 3)
	require.Len(t, dataset.Customers, 4)
	require.Len(t, dataset.Products, 5)

	first := dataset.Orders[0]
	assert.Equal(t, "DH001", first.ID)
	assert.Equal(t, "Nguyễn Văn A", first.CustomerName)
	assert.Equal(t, domain.OrderStatusCompleted, first.Status)
	assert.Equal(t, 31400000.0, first.Total)
	assert.Equal(t, time.Date(2023, time.June, 14, 17, 0, 0, 0, time.UTC), first.OrderDate.UTC())

	assert.Equal(t, "0901234567", dataset.Customers[0].Phone)
	assert.Equal(t, 8, dataset.Products[4].Inventory)
}

func TestDefault_OrdersPassValidation(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for _, order := range Default().Orders {
		result := domain.ValidateOrder(order, now)
		assert.Truef(t, result.Valid, "order %s: %v", order.ID, result.Errors)
	}
}

func TestLoad_DefaultsStatusAndRejectsBadDate(t *testing.T) {
	dataset, err := Load(strings.NewReader(`
orders:
  - id: DH010
    customerId: KH001
    customerName: Anna
    orderDate: "2024-02-01T10:00:00Z"
    items: [{productId: SP001, productName: Mouse, quantity: 1, price: 10}]
    total: 10
`))
	require.NoError(t, err)
	require.Len(t, dataset.Orders, 1)
	assert.Equal(t, domain.OrderStatusPending, dataset.Orders[0].Status)
	assert.Empty(t, dataset.Customers)

	_, err = Load(strings.NewReader(`
orders:
  - id: DH010
    orderDate: "01/02/2024"
`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DH010")
}

func TestLoad_EmptyInput(t *testing.T) {
	dataset, err := Load(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, dataset.Orders)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seed.yaml")
	require.NoError(t, os.WriteFile(path, []byte("products:\n  - {id: SP100, name: Cable, price: 50000, inventory: 3}\n"), 0o600))

	dataset, err := LoadFile(path)
	require.NoError(t, err)
	require.Len(t, dataset.Products, 1)
	assert.Equal(t, "Cable", dataset.Products[0].Name)

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}
