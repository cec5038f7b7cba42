package domain

import "github.com/shopspring/decimal"

// TotalTolerance — допустимое расхождение между total и суммой позиций.
const TotalTolerance = 1

// CalculateTotal суммирует price * quantity по всем позициям.
// Считаем в decimal, чтобы результат не зависел от порядка позиций.
func CalculateTotal(items []OrderItem) float64 {
	return sumItems(items).InexactFloat64()
}

func sumItems(items []OrderItem) decimal.Decimal {
	sum := decimal.Zero
	for _, item := range items {
		sum = sum.Add(decimal.NewFromFloat(item.Price).Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return sum
}

// TotalMatches сверяет total с суммой позиций с допуском TotalTolerance (строго меньше).
func TotalMatches(total float64, items []OrderItem) bool {
	diff := decimal.NewFromFloat(total).Sub(sumItems(items)).Abs()
	return diff.LessThan(decimal.NewFromInt(TotalTolerance))
}
