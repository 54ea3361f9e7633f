// AngelaMos | 2026
// handler.go

package auth

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/medisupply/auth-service/internal/core"
	"github.com/medisupply/auth-service/internal/keycloak"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/auth/token", h.Token)
	r.Post("/auth/logout", h.Logout)
}

func (h *Handler) Token(w http.ResponseWriter, r *http.Request) {
	var creds Credentials
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		core.BadRequest(w, "El cuerpo de la petición JSON está vacío")
		return
	}

	token, err := h.service.Authenticate(r.Context(), creds)
	if err != nil {
		h.writeAuthError(w, err)
		return
	}

	core.OK(w, token)
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	var req LogoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "El cuerpo de la petición JSON está vacío")
		return
	}

	if err := h.service.Logout(r.Context(), req.RefreshToken); err != nil {
		h.writeAuthError(w, err)
		return
	}

	core.OK(w, map[string]string{"message": "Sesión cerrada exitosamente"})
}

// writeAuthError keeps the authentication-specific status mapping: a
// provider rejection relays Keycloak's own error payload with 401, an
// unknown local account gets the same generic 401 message, everything
// else falls back to the shared taxonomy.
func (h *Handler) writeAuthError(w http.ResponseWriter, err error) {
	var provErr *keycloak.ProviderError
	if errors.As(err, &provErr) {
		status := http.StatusUnauthorized
		if !provErr.IsInvalidCredentials() {
			status = http.StatusBadGateway
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		//nolint:errcheck // best-effort response
		_ = json.NewEncoder(w).Encode(provErr)
		return
	}

	if errors.Is(err, ErrInvalidCredentials) {
		core.Unauthorized(w, ErrInvalidCredentials.Error())
		return
	}

	core.DomainError(w, err)
}
