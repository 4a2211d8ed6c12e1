package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/venicelabs/orders/internal/auth"
	"github.com/venicelabs/orders/internal/service/orders"
)

// NewRouter собирает REST API сервиса заказов.
// Все маршруты заказов закрыты Bearer-токеном; открыт только выпуск токена.
func NewRouter(orderService *orders.Service, authService *auth.Service) chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(RequestLogger)
	r.Use(middleware.Recoverer)

	authH := &authHandler{auth: authService}
	orderH := &orderHandler{orders: orderService}

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/auth/token", authH.token)

		r.Route("/orders", func(r chi.Router) {
			r.Use(Authenticator(authService))

			r.Post("/", orderH.create)
			r.Get("/", orderH.list)
			r.Get("/{id}", orderH.get)
			r.Post("/{id}/confirm", orderH.confirm)
			r.Post("/{id}/deliver", orderH.deliver)
			r.Post("/{id}/cancel", orderH.cancel)
			r.Delete("/{id}", orderH.delete)
		})
	})

	return r
}
