package http

import (
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// validate разделяется обработчиками; валидатор потокобезопасен и кэширует
// метаданные структур.
var validate = validator.New()

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type loginResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

type createOrderItemRequest struct {
	ProductName string          `json:"product_name" validate:"required"`
	Quantity    int32           `json:"quantity" validate:"required,gt=0"`
	UnitPrice   decimal.Decimal `json:"unit_price" validate:"required"`
}

type createOrderRequest struct {
	Items []createOrderItemRequest `json:"items" validate:"required,min=1,dive"`
}

type errorResponse struct {
	Error string `json:"error"`
}
