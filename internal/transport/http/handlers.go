package http

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/venicelabs/orders/internal/auth"
	"github.com/venicelabs/orders/internal/service/orders"
)

type authHandler struct {
	auth *auth.Service
}

// token обменивает логин и пароль на токен доступа.
func (h *authHandler) token(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "malformed request body"})
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, err)
		return
	}

	token, err := h.auth.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, loginResponse{AccessToken: token, TokenType: "Bearer"})
}

type orderHandler struct {
	orders *orders.Service
}

// create создаёт заказ. Клиент берётся из subject токена, а не из тела
// запроса.
func (h *orderHandler) create(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsFromContext(r.Context())
	if !ok {
		writeError(w, auth.ErrInvalidToken)
		return
	}

	var req createOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "malformed request body"})
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, err)
		return
	}

	input := orders.CreateOrderInput{CustomerID: claims.Subject}
	for _, item := range req.Items {
		input.Items = append(input.Items, orders.CreateItemInput{
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
		})
	}

	view, err := h.orders.CreateOrder(r.Context(), input)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, view)
}

func (h *orderHandler) get(w http.ResponseWriter, r *http.Request) {
	view, err := h.orders.GetOrder(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (h *orderHandler) list(w http.ResponseWriter, r *http.Request) {
	summaries, err := h.orders.ListOrders(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, summaries)
}

func (h *orderHandler) confirm(w http.ResponseWriter, r *http.Request) {
	h.applyTransition(w, r, h.orders.ConfirmOrder)
}

func (h *orderHandler) deliver(w http.ResponseWriter, r *http.Request) {
	h.applyTransition(w, r, h.orders.DeliverOrder)
}

func (h *orderHandler) cancel(w http.ResponseWriter, r *http.Request) {
	h.applyTransition(w, r, h.orders.CancelOrder)
}

func (h *orderHandler) applyTransition(
	w http.ResponseWriter,
	r *http.Request,
	op func(ctx context.Context, id string) (orders.OrderView, error),
) {
	view, err := op(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (h *orderHandler) delete(w http.ResponseWriter, r *http.Request) {
	if err := h.orders.DeleteOrder(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
