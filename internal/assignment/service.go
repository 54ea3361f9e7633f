// AngelaMos | 2026
// service.go

package assignment

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/medisupply/auth-service/internal/core"
	"github.com/medisupply/auth-service/internal/user"
)

// UserStore is the slice of the user record store the assignment
// orchestrator needs for referential checks and client projections.
type UserStore interface {
	GetByID(ctx context.Context, id string) (*user.User, error)
}

type Service struct {
	repo   Repository
	users  UserStore
	logger *slog.Logger
}

func NewService(repo Repository, users UserStore, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		users:  users,
		logger: logger,
	}
}

// Create validates and persists a seller-client assignment. The
// repository commits the assignment row and the client enable flip in
// one transaction; the flip runs even when the client was already
// enabled, it is the approval gate for self-registered institutions.
func (s *Service) Create(
	ctx context.Context,
	req CreateAssignmentRequest,
) (*Assignment, error) {
	sellerID := strings.TrimSpace(req.SellerID)
	clientID := strings.TrimSpace(req.ClientID)

	violations, err := s.validate(ctx, sellerID, clientID)
	if err != nil {
		return nil, core.WrapBusiness("Error al crear asignación", err)
	}
	if len(violations) > 0 {
		return nil, core.NewValidationError(violations)
	}

	a := &Assignment{
		ID:       uuid.New().String(),
		SellerID: sellerID,
		ClientID: clientID,
	}

	if err := s.repo.Create(ctx, a); err != nil {
		if core.IsDuplicateKey(err) {
			return nil, core.NewValidationError(
				[]string{"Esta asignación vendedor-cliente ya existe"},
			)
		}
		return nil, core.WrapBusiness("Error al crear asignación", err)
	}

	return a, nil
}

func (s *Service) validate(
	ctx context.Context,
	sellerID, clientID string,
) ([]string, error) {
	var violations []string

	if sellerID == "" {
		violations = append(violations, "El campo 'seller_id' es obligatorio")
	}
	if clientID == "" {
		violations = append(violations, "El campo 'client_id' es obligatorio")
	}
	if sellerID != "" && clientID != "" && sellerID == clientID {
		violations = append(violations, "El vendedor no puede ser asignado como su propio cliente")
	}

	if sellerID != "" {
		if _, err := s.users.GetByID(ctx, sellerID); err != nil {
			if !core.IsNotFound(err) {
				return nil, err
			}
			violations = append(violations,
				fmt.Sprintf("No existe un vendedor con ID: %s", sellerID))
		}
	}

	if clientID != "" {
		if _, err := s.users.GetByID(ctx, clientID); err != nil {
			if !core.IsNotFound(err) {
				return nil, err
			}
			violations = append(violations,
				fmt.Sprintf("No existe un cliente con ID: %s", clientID))
		}
	}

	if sellerID != "" && clientID != "" && sellerID != clientID {
		exists, err := s.repo.Exists(ctx, sellerID, clientID)
		if err != nil {
			return nil, err
		}
		if exists {
			violations = append(violations, "Esta asignación vendedor-cliente ya existe")
		}
	}

	return violations, nil
}

// AssignedClientsWithDetails resolves every client assigned to a seller
// into its full user projection. Assignments pointing at a client that
// no longer exists are skipped with a warning rather than failing the
// whole listing.
func (s *Service) AssignedClientsWithDetails(
	ctx context.Context,
	sellerID string,
) ([]user.UserResponse, error) {
	if _, err := s.users.GetByID(ctx, sellerID); err != nil {
		if core.IsNotFound(err) {
			return nil, core.NotFoundErrorf(
				"No se encontró el vendedor con ID: %s", sellerID)
		}
		return nil, core.WrapBusiness(
			"Error al obtener clientes asignados con detalles", err)
	}

	assignments, err := s.repo.ListBySeller(ctx, sellerID)
	if err != nil {
		return nil, core.WrapBusiness(
			"Error al obtener clientes asignados con detalles", err)
	}

	clients := make([]user.UserResponse, 0, len(assignments))
	for _, a := range assignments {
		client, err := s.users.GetByID(ctx, a.ClientID)
		if err != nil {
			if core.IsNotFound(err) {
				s.logger.Warn("assigned client no longer exists",
					"assignment_id", a.ID,
					"client_id", a.ClientID,
				)
				continue
			}
			return nil, core.WrapBusiness(
				"Error al obtener clientes asignados con detalles", err)
		}
		clients = append(clients, user.ToUserResponse(client))
	}

	return clients, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (*Assignment, error) {
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if core.IsNotFound(err) {
			return nil, err
		}
		return nil, core.WrapBusiness("Error al obtener asignación", err)
	}
	return a, nil
}

func (s *Service) List(
	ctx context.Context,
	limit, offset int,
) ([]Assignment, error) {
	assignments, err := s.repo.List(ctx, limit, offset)
	if err != nil {
		return nil, core.WrapBusiness("Error al obtener asignaciones", err)
	}
	return assignments, nil
}

// ListBySeller returns a seller's raw assignment rows, newest first.
// Callers wanting the client projections use AssignedClientsWithDetails.
func (s *Service) ListBySeller(
	ctx context.Context,
	sellerID string,
) ([]Assignment, error) {
	assignments, err := s.repo.ListBySeller(ctx, sellerID)
	if err != nil {
		return nil, core.WrapBusiness("Error al obtener clientes asignados", err)
	}
	return assignments, nil
}

// Update rebinds an assignment. It never re-triggers the enable side
// effect.
func (s *Service) Update(ctx context.Context, a *Assignment) error {
	if err := s.repo.Update(ctx, a); err != nil {
		if core.IsNotFound(err) {
			return err
		}
		return core.WrapBusiness("Error al actualizar asignación", err)
	}
	return nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if core.IsNotFound(err) {
			return err
		}
		return core.WrapBusiness("Error al eliminar asignación", err)
	}
	return nil
}
