package domain

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode"
)

const (
	// OrderIDPrefix — префикс кода заказа.
	OrderIDPrefix = "DH"
	// CustomerIDPrefix — префикс кода покупателя.
	CustomerIDPrefix = "KH"
	// FirstOrderID выдаётся, когда коллекция пуста.
	FirstOrderID = "DH001"
)

// OrderIDNumber извлекает числовую часть кода: все нецифровые символы отбрасываются.
// ok=false, если цифр нет или число не помещается в uint64.
func OrderIDNumber(id string) (uint64, bool) {
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, id)
	if digits == "" {
		return 0, false
	}
	n, err := strconv.ParseUint(digits, 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

// FormatOrderID рендерит код заказа с дополнением нулями минимум до 3 цифр.
// Ширина не обрезается: 1000 превращается в DH1000.
func FormatOrderID(n uint64) string {
	return fmt.Sprintf("%s%03d", OrderIDPrefix, n)
}

// NextOrderID берёт максимум числовых суффиксов и прибавляет единицу.
// Коды без цифр пропускаются; для пустой коллекции возвращается DH001.
// Если максимум уже равен math.MaxUint64, возвращается ErrOrderIDExhausted.
func NextOrderID(ids []string) (string, error) {
	var (
		maxNum uint64
		found  bool
	)
	for _, id := range ids {
		n, ok := OrderIDNumber(id)
		if !ok {
			continue
		}
		if !found || n > maxNum {
			maxNum = n
			found = true
		}
	}
	if !found {
		return FirstOrderID, nil
	}
	if maxNum == math.MaxUint64 {
		return "", fmt.Errorf("%w: max suffix %d", ErrOrderIDExhausted, maxNum)
	}
	return FormatOrderID(maxNum + 1), nil
}

// NextOrderIDFor — NextOrderID над коллекцией заказов.
func NextOrderIDFor(orders []Order) (string, error) {
	ids := make([]string, 0, len(orders))
	for _, order := range orders {
		ids = append(ids, order.ID)
	}
	return NextOrderID(ids)
}

// matchesCode проверяет формат PREFIX + не менее трёх ASCII-цифр.
func matchesCode(id, prefix string) bool {
	rest, ok := strings.CutPrefix(id, prefix)
	if !ok || len(rest) < 3 {
		return false
	}
	for _, r := range rest {
		if r > unicode.MaxASCII || !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
