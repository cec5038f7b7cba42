// Package seed содержит демонстрационные данные для пустого хранилища.
package seed

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/vladislavdragonenkov/orderdesk/internal/domain"
)

//go:embed default.yaml
var defaultDataset []byte

// Dataset — набор коллекций для первичного заполнения.
type Dataset struct {
	Orders    []domain.Order
	Customers []domain.Customer
	Products  []domain.Product
}

type orderRecord struct {
	ID           string             `yaml:"id"`
	CustomerID   string             `yaml:"customerId"`
	CustomerName string             `yaml:"customerName"`
	OrderDate    string             `yaml:"orderDate"`
	Status       domain.OrderStatus `yaml:"status"`
	Items        []domain.OrderItem `yaml:"items"`
	Total        float64            `yaml:"total"`
}

type datasetFile struct {
	Orders    []orderRecord     `yaml:"orders"`
	Customers []domain.Customer `yaml:"customers"`
	Products  []domain.Product  `yaml:"products"`
}

// Default возвращает встроенный набор данных.
func Default() Dataset {
	dataset, err := Load(bytes.NewReader(defaultDataset))
	if err != nil {
		panic(fmt.Sprintf("embedded seed dataset is broken: %v", err))
	}
	return dataset
}

// LoadFile читает набор данных из YAML-файла.
func LoadFile(path string) (Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return Dataset{}, fmt.Errorf("open seed file: %w", err)
	}
	defer f.Close()

	dataset, err := Load(f)
	if err != nil {
		return Dataset{}, fmt.Errorf("seed file %s: %w", path, err)
	}
	return dataset, nil
}

// Load разбирает YAML и проверяет, что даты заказов заданы в RFC 3339.
func Load(r io.Reader) (Dataset, error) {
	var file datasetFile
	if err := yaml.NewDecoder(r).Decode(&file); err != nil && err != io.EOF {
		return Dataset{}, fmt.Errorf("decode seed dataset: %w", err)
	}

	orders := make([]domain.Order, 0, len(file.Orders))
	for _, rec := range file.Orders {
		date, err := time.Parse(time.RFC3339, rec.OrderDate)
		if err != nil {
			return Dataset{}, fmt.Errorf("order %s: parse orderDate %q: %w", rec.ID, rec.OrderDate, err)
		}
		status := rec.Status
		if status == "" {
			status = domain.OrderStatusPending
		}
		orders = append(orders, domain.Order{
			ID:           rec.ID,
			CustomerID:   rec.CustomerID,
			CustomerName: rec.CustomerName,
			OrderDate:    date,
			Status:       status,
			Items:        rec.Items,
			Total:        rec.Total,
		})
	}

	return Dataset{
		Orders:    orders,
		Customers: file.Customers,
		Products:  file.Products,
	}, nil
}
