package handlers

import (
	"net/http"

	"logistics/models"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// NewRouter собирает маршруты /api
func NewRouter(h *Handler) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Route("/api", func(r chi.Router) {
		r.Get("/ping", h.PingHandler)
		r.Post("/auth/register", h.RegisterHandler)
		r.Post("/auth/login", h.LoginHandler)

		r.Group(func(r chi.Router) {
			r.Use(h.AuthMiddleware)

			r.Get("/locations", h.ListLocationsHandler)
			r.Post("/locations", h.CreateLocationHandler)
			r.Put("/locations/{locationId}", h.UpdateLocationHandler)
			r.Delete("/locations/{locationId}", h.DeleteLocationHandler)

			r.Group(func(r chi.Router) {
				r.Use(RequireRole(models.RoleCustomer))

				r.Get("/requests/my", h.MyRequestsHandler)
				r.Post("/requests", h.CreateRequestHandler)
				r.Get("/requests/{requestId}", h.GetRequestHandler)
				r.Patch("/requests/{requestId}", h.UpdateRequestHandler)
				r.Put("/bids/{bidId}/accept", h.AcceptBidHandler)
				r.Put("/bids/{bidId}/reject", h.RejectBidHandler)
			})

			r.Group(func(r chi.Router) {
				r.Use(RequireRole(models.RoleSupplier))

				r.Get("/supplier/requests", h.SupplierRequestsHandler)
				r.Get("/supplier/requests/{requestId}", h.SupplierRequestHandler)
				r.Post("/requests/{requestId}/bids", h.SubmitBidHandler)
				r.Get("/bids/my", h.MyBidsHandler)
			})
		})
	})

	return r
}
