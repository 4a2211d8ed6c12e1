package domain

import "time"

// User — учётная запись клиента. Используется для выдачи токенов и для
// обогащения списка заказов именем и почтой клиента.
type User struct {
	ID           string
	Username     string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}
