// AngelaMos | 2026
// dto.go

package assignment

import (
	"time"

	"github.com/medisupply/auth-service/internal/user"
)

type CreateAssignmentRequest struct {
	SellerID string `json:"seller_id"`
	ClientID string `json:"client_id"`
}

type AssignmentResponse struct {
	ID        string    `json:"id"`
	SellerID  string    `json:"seller_id"`
	ClientID  string    `json:"client_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// AssignedClientsResponse is the detail listing for a seller: the full
// outward projection of every client the seller is responsible for.
type AssignedClientsResponse struct {
	SellerID        string              `json:"seller_id"`
	AssignedClients []user.UserResponse `json:"assigned_clients"`
	Total           int                 `json:"total"`
}

func ToAssignmentResponse(a *Assignment) AssignmentResponse {
	return AssignmentResponse{
		ID:        a.ID,
		SellerID:  a.SellerID,
		ClientID:  a.ClientID,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}
