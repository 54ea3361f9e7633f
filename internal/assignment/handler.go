// AngelaMos | 2026
// handler.go

package assignment

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/medisupply/auth-service/internal/core"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/auth/assigned-clients", func(r chi.Router) {
		r.Post("/", h.Create)
		r.Get("/{sellerID}", h.GetAssignedClients)
	})
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateAssignmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "El cuerpo de la petición JSON está vacío")
		return
	}

	created, err := h.service.Create(r.Context(), req)
	if err != nil {
		core.DomainError(w, err)
		return
	}

	core.Created(w, ToAssignmentResponse(created))
}

func (h *Handler) GetAssignedClients(w http.ResponseWriter, r *http.Request) {
	sellerID := chi.URLParam(r, "sellerID")

	clients, err := h.service.AssignedClientsWithDetails(r.Context(), sellerID)
	if err != nil {
		core.DomainError(w, err)
		return
	}

	core.OK(w, AssignedClientsResponse{
		SellerID:        sellerID,
		AssignedClients: clients,
		Total:           len(clients),
	})
}
