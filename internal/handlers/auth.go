package handlers

import (
	"context"
	"net/http"
	"strings"

	"logistics/internal/service"
	"logistics/models"
)

type ctxKey struct{}

// WithActor кладет пользователя в контекст запроса
func WithActor(ctx context.Context, a service.Actor) context.Context {
	return context.WithValue(ctx, ctxKey{}, a)
}

func actorFrom(ctx context.Context) (service.Actor, bool) {
	a, ok := ctx.Value(ctxKey{}).(service.Actor)
	return a, ok
}

// AuthMiddleware проверяет Bearer токен
func (h *Handler) AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if header == "" {
			http.Error(w, "missing token", http.StatusUnauthorized)
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			http.Error(w, "invalid token format", http.StatusUnauthorized)
			return
		}

		claims, err := h.Tokens.Parse(parts[1])
		if err != nil {
			http.Error(w, "invalid or expired token", http.StatusUnauthorized)
			return
		}

		a := service.Actor{UserID: claims.UserID, Role: claims.Role, Company: claims.Company}
		next.ServeHTTP(w, r.WithContext(WithActor(r.Context(), a)))
	})
}

// RequireRole пропускает только пользователей с ролью role
func RequireRole(role models.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			a, ok := actorFrom(r.Context())
			if !ok {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}
			if a.Role != role {
				http.Error(w, "forbidden: "+string(role)+" only", http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

type loginBody struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type tokenResponse struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

// RegisterHandler обрабатывает POST /api/auth/register
func (h *Handler) RegisterHandler(w http.ResponseWriter, r *http.Request) {
	var in service.RegisterInput
	if !decodeJSON(w, r, &in) {
		return
	}

	u, err := h.Svc.Register(r.Context(), in)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, u)
}

// LoginHandler обрабатывает POST /api/auth/login и выдает токен
func (h *Handler) LoginHandler(w http.ResponseWriter, r *http.Request) {
	var in loginBody
	if !decodeJSON(w, r, &in) {
		return
	}

	u, err := h.Svc.Authenticate(r.Context(), in.Email, in.Password)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	token, err := h.Tokens.Issue(u)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, tokenResponse{Token: token, User: u})
}
