package domain

import (
	"errors"
	"strings"
)

var (
	// ErrOrderNotFound возвращается, если заказа с таким ID нет в коллекции.
	ErrOrderNotFound = errors.New("order not found")
	// ErrOrderNotCancellable: отмена разрешена только из статуса pending.
	ErrOrderNotCancellable = errors.New("order not cancellable")
	// ErrPersistence — хранилище не смогло записать коллекцию.
	ErrPersistence = errors.New("persistence failure")
	// ErrValidation — кандидат не прошёл проверку правил заказа.
	ErrValidation = errors.New("order validation failed")
	// ErrProductNotFound — товара нет в каталоге.
	ErrProductNotFound = errors.New("product not found")
	// ErrOrderIDExhausted: числовой суффикс кода достиг максимума uint64.
	ErrOrderIDExhausted = errors.New("order id space exhausted")

	// Ошибка формата кода заказа (DH + минимум 3 цифры).
	ErrOrderIDInvalid = errors.New("order id is invalid")
	// Ошибка формата кода покупателя (KH + минимум 3 цифры).
	ErrCustomerIDInvalid = errors.New("customer id is invalid")
	// Ошибка пустого или слишком длинного имени покупателя.
	ErrCustomerNameInvalid = errors.New("customer name is invalid")
	// Ошибка отсутствующей даты или даты в будущем.
	ErrOrderDateInvalid = errors.New("order date is invalid")
	// Ошибка неизвестного статуса.
	ErrStatusInvalid = errors.New("order status is invalid")
	// Ошибка пустого списка позиций или некорректной позиции.
	ErrItemsInvalid = errors.New("order items are invalid")
	// Ошибка несоответствия суммы заказа и сумм позиций.
	ErrTotalMismatch = errors.New("order total does not match items")
)

// ValidationError переносит упорядоченный список нарушений.
type ValidationError struct {
	Violations []error
	Messages   []string
}

func (e *ValidationError) Error() string {
	if len(e.Messages) == 0 {
		return ErrValidation.Error()
	}
	return ErrValidation.Error() + ": " + strings.Join(e.Messages, "; ")
}

// Unwrap позволяет проверять как ErrValidation, так и конкретные правила через errors.Is.
func (e *ValidationError) Unwrap() []error {
	return append([]error{ErrValidation}, e.Violations...)
}

// IsNotFound проверяет, является ли ошибка отсутствием заказа.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrOrderNotFound)
}

// IsInvalidTransition проверяет, является ли ошибка запрещённой отменой.
func IsInvalidTransition(err error) bool {
	return errors.Is(err, ErrOrderNotCancellable)
}
