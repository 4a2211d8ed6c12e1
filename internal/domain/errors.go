package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrOrderNotFound возвращается, если заголовок заказа отсутствует в хранилище.
	ErrOrderNotFound = errors.New("order not found")
	// ErrUserNotFound возвращается, если пользователь отсутствует в хранилище.
	ErrUserNotFound = errors.New("user not found")
	// ErrStoreUnavailable помечает инфраструктурные сбои хранилищ.
	ErrStoreUnavailable = errors.New("store unavailable")
	// ErrInvalidStateTransition — попытка смены статуса из запрещённого состояния.
	ErrInvalidStateTransition = errors.New("invalid state transition")
	// ErrPublishFailed — событие не принято брокером.
	ErrPublishFailed = errors.New("event publish failed")

	// Ошибка отсутствующего идентификатора заказа.
	ErrOrderIDRequired = errors.New("order_id is required")
	// Ошибка отсутствующего идентификатора клиента.
	ErrCustomerRequired = errors.New("customer_id is required")
	// Ошибка отсутствия хотя бы одной позиции в заказе.
	ErrItemsRequired = errors.New("order must contain at least one item")
	// Ошибка отрицательной итоговой суммы.
	ErrAmountNegative = errors.New("total amount must be non-negative")
	// Ошибка отсутствующего названия товара.
	ErrProductNameRequired = errors.New("product name is required")
	// Ошибка при некорректном количестве товара (<= 0).
	ErrItemQtyInvalid = errors.New("item quantity must be greater than zero")
	// Ошибка при некорректной цене позиции (<= 0).
	ErrItemPriceInvalid = errors.New("item unit price must be greater than zero")
)

// Unavailable оборачивает инфраструктурную ошибку хранилища так, чтобы она
// матчилась с ErrStoreUnavailable через errors.Is.
func Unavailable(op string, err error) error {
	return fmt.Errorf("%s: %w", op, errors.Join(ErrStoreUnavailable, err))
}

// IsNotFound проверяет, является ли ошибка отсутствием заказа или пользователя.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrOrderNotFound) || errors.Is(err, ErrUserNotFound)
}
