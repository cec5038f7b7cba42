package domain

import (
	"strings"
	"time"
	"unicode/utf8"
)

// MaxCustomerNameLength — ограничение длины имени покупателя в символах.
const MaxCustomerNameLength = 100

// ValidationResult — итог проверки заказа: флаг и сообщения в порядке правил.
type ValidationResult struct {
	Valid  bool     `json:"isValid"`
	Errors []string `json:"errors"`
}

// MessageFunc переводит нарушение правила в текст для оператора.
type MessageFunc func(violation error) string

var defaultMessages = map[error]string{
	ErrOrderIDInvalid:      "Order id is invalid.",
	ErrCustomerIDInvalid:   "Customer id is invalid.",
	ErrCustomerNameInvalid: "Customer name is invalid.",
	ErrOrderDateInvalid:    "Order date is invalid.",
	ErrStatusInvalid:       "Order status is invalid.",
	ErrItemsInvalid:        "Order items are invalid.",
	ErrTotalMismatch:       "Order total does not match the items.",
}

// DefaultMessage возвращает английский текст нарушения.
func DefaultMessage(violation error) string {
	if msg, ok := defaultMessages[violation]; ok {
		return msg
	}
	return violation.Error()
}

// ValidateOrderID: DH и минимум три цифры.
func ValidateOrderID(id string) bool {
	return matchesCode(id, OrderIDPrefix)
}

// ValidateCustomerID: KH и минимум три цифры.
func ValidateCustomerID(id string) bool {
	return matchesCode(id, CustomerIDPrefix)
}

// ValidateCustomerName требует непустое имя не длиннее MaxCustomerNameLength символов.
func ValidateCustomerName(name string) bool {
	trimmed := strings.TrimSpace(name)
	n := utf8.RuneCountInString(trimmed)
	return n > 0 && n <= MaxCustomerNameLength
}

// ValidateOrderDate: дата задана и не позже now.
func ValidateOrderDate(date, now time.Time) bool {
	return !date.IsZero() && !date.After(now)
}

// ValidateStatus проверяет принадлежность к четырём статусам.
func ValidateStatus(status OrderStatus) bool {
	return status.Valid()
}

// ValidateItems требует хотя бы одну позицию; у каждой должны быть productId,
// productName, quantity > 0 и price >= 0.
func ValidateItems(items []OrderItem) bool {
	if len(items) == 0 {
		return false
	}
	for _, item := range items {
		if item.ProductID == "" || item.ProductName == "" {
			return false
		}
		if item.Quantity <= 0 || item.Price < 0 {
			return false
		}
	}
	return true
}

// ValidateTotal: total неотрицателен и сходится с суммой позиций.
func ValidateTotal(total float64, items []OrderItem) bool {
	if total < 0 {
		return false
	}
	return TotalMatches(total, items)
}

// ValidateInvariants прогоняет все правила независимо друг от друга
// и возвращает нарушения в фиксированном порядке.
func (o *Order) ValidateInvariants(now time.Time) []error {
	var errs []error

	if !ValidateOrderID(o.ID) {
		errs = append(errs, ErrOrderIDInvalid)
	}
	if !ValidateCustomerID(o.CustomerID) {
		errs = append(errs, ErrCustomerIDInvalid)
	}
	if !ValidateCustomerName(o.CustomerName) {
		errs = append(errs, ErrCustomerNameInvalid)
	}
	if !ValidateOrderDate(o.OrderDate, now) {
		errs = append(errs, ErrOrderDateInvalid)
	}
	if !ValidateStatus(o.Status) {
		errs = append(errs, ErrStatusInvalid)
	}
	if !ValidateItems(o.Items) {
		errs = append(errs, ErrItemsInvalid)
	}
	if !ValidateTotal(o.Total, o.Items) {
		errs = append(errs, ErrTotalMismatch)
	}

	return errs
}

// ValidateOrder возвращает результат с сообщениями по умолчанию.
func ValidateOrder(order Order, now time.Time) ValidationResult {
	return ValidateOrderWith(order, now, DefaultMessage)
}

// ValidateOrderWith позволяет подставить локализованные сообщения.
func ValidateOrderWith(order Order, now time.Time, message MessageFunc) ValidationResult {
	if message == nil {
		message = DefaultMessage
	}
	violations := order.ValidateInvariants(now)
	result := ValidationResult{
		Valid:  len(violations) == 0,
		Errors: make([]string, 0, len(violations)),
	}
	for _, v := range violations {
		result.Errors = append(result.Errors, message(v))
	}
	return result
}

// NewValidationError собирает ошибку из нарушений; nil, если нарушений нет.
func NewValidationError(violations []error, message MessageFunc) error {
	if len(violations) == 0 {
		return nil
	}
	if message == nil {
		message = DefaultMessage
	}
	messages := make([]string, 0, len(violations))
	for _, v := range violations {
		messages = append(messages, message(v))
	}
	return &ValidationError{Violations: violations, Messages: messages}
}
