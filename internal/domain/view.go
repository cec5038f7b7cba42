package domain

import (
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// SortField — поле сортировки производного представления.
type SortField string

const (
	SortByOrderDate SortField = "orderDate"
	SortByTotal     SortField = "total"
)

// Valid проверяет поддерживаемое поле сортировки.
func (f SortField) Valid() bool {
	return f == SortByOrderDate || f == SortByTotal
}

// SortDirection — направление сортировки.
type SortDirection string

const (
	SortAscending  SortDirection = "ascend"
	SortDescending SortDirection = "descend"
)

// Valid проверяет поддерживаемое направление.
func (d SortDirection) Valid() bool {
	return d == SortAscending || d == SortDescending
}

// ViewParams — три независимых параметра представления. Пустой StatusFilter означает "без фильтра".
type ViewParams struct {
	StatusFilter  OrderStatus
	SearchKeyword string
	SortField     SortField
	SortDirection SortDirection
}

// DefaultViewParams: без фильтров, новые заказы сверху.
func DefaultViewParams() ViewParams {
	return ViewParams{
		SortField:     SortByOrderDate,
		SortDirection: SortDescending,
	}
}

// ApplyView строит производное представление всегда от полной коллекции:
// фильтр по статусу, затем поиск по id/customerName без учёта регистра,
// затем стабильная сортировка. Входной срез не изменяется.
func ApplyView(orders []Order, params ViewParams) []Order {
	keyword := foldKeyword(params.SearchKeyword)

	result := make([]Order, 0, len(orders))
	for _, order := range orders {
		if params.StatusFilter != "" && order.Status != params.StatusFilter {
			continue
		}
		if keyword != "" && !matchesKeyword(order, keyword) {
			continue
		}
		result = append(result, order.Clone())
	}

	field := params.SortField
	if !field.Valid() {
		field = SortByOrderDate
	}
	descending := params.SortDirection == SortDescending

	sort.SliceStable(result, func(i, j int) bool {
		a, b := result[i], result[j]
		if descending {
			a, b = b, a
		}
		switch field {
		case SortByTotal:
			return a.Total < b.Total
		default:
			return a.OrderDate.Before(b.OrderDate)
		}
	})

	return result
}

// foldKeyword нормализует строку для сравнения: NFC и case folding.
// Caser хранит состояние, поэтому создаётся на каждый вызов.
func foldKeyword(s string) string {
	if s == "" {
		return ""
	}
	return cases.Fold().String(norm.NFC.String(s))
}

func matchesKeyword(order Order, folded string) bool {
	return strings.Contains(foldKeyword(order.ID), folded) ||
		strings.Contains(foldKeyword(order.CustomerName), folded)
}
