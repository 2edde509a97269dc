package testutils

import (
	"context"
	"net/http"

	"logistics/internal/handlers"
	"logistics/internal/service"
	"logistics/models"

	"github.com/go-chi/chi/v5"
)

// WithChiURLParams подставляет параметры пути в контекст chi запроса для тестов.
func WithChiURLParams(req *http.Request, params map[string]string) *http.Request {
	chiCtx := chi.NewRouteContext()
	for k, v := range params {
		chiCtx.URLParams.Add(k, v)
	}
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, chiCtx))
}

// WithActor кладет пользователя в контекст, как это делает AuthMiddleware.
func WithActor(req *http.Request, a service.Actor) *http.Request {
	return req.WithContext(handlers.WithActor(req.Context(), a))
}

var (
	Customer = service.Actor{UserID: 1, Role: models.RoleCustomer, Company: "company1"}
	Supplier = service.Actor{UserID: 5, Role: models.RoleSupplier, Company: "company3"}
)
