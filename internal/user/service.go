// AngelaMos | 2026
// service.go

package user

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/medisupply/auth-service/internal/core"
	"github.com/medisupply/auth-service/internal/keycloak"
)

// IdentityProvider is the slice of the identity-provider gateway the
// lifecycle orchestrator needs to mirror local accounts.
type IdentityProvider interface {
	CreateIdentity(ctx context.Context, email, password, displayName string) (string, error)
	AssignRole(ctx context.Context, identityID, roleName string) error
	DeleteIdentity(ctx context.Context, identityID string) error
}

type Service struct {
	repo   Repository
	idp    IdentityProvider
	logger *slog.Logger
}

func NewService(repo Repository, idp IdentityProvider, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		idp:    idp,
		logger: logger,
	}
}

// Register creates a self-service institutional account. The role is
// forced to client and the account starts disabled until a seller claims
// it. The local row is written first; if mirroring into the identity
// provider fails the row is removed again (best effort) so the store
// never silently holds an account the provider does not know about.
func (s *Service) Register(
	ctx context.Context,
	req RegistrationRequest,
) (*User, error) {
	violations := req.Validate()

	email := strings.TrimSpace(req.Email)
	if email != "" {
		exists, err := s.repo.ExistsByEmail(ctx, email)
		if err != nil {
			return nil, core.WrapBusiness("Error al crear usuario", err)
		}
		if exists {
			violations = append(violations, "Ya existe un usuario con este correo electrónico")
		}
	}

	if len(violations) > 0 {
		return nil, core.NewValidationError(violations)
	}

	passwordHash, err := core.HashPassword(req.Password)
	if err != nil {
		return nil, core.WrapBusiness("Error al crear usuario", err)
	}

	u := &User{
		ID:              uuid.New().String(),
		Name:            strings.TrimSpace(req.Name),
		TaxID:           strings.TrimSpace(req.TaxID),
		Email:           email,
		Address:         strings.TrimSpace(req.Address),
		Phone:           strings.TrimSpace(req.Phone),
		InstitutionType: strings.TrimSpace(req.InstitutionType),
		LogoFilename:    strings.TrimSpace(req.LogoFilename),
		LogoURL:         req.LogoURL,
		Specialty:       strings.TrimSpace(req.Specialty),
		ApplicantName:   strings.TrimSpace(req.ApplicantName),
		ApplicantEmail:  strings.TrimSpace(req.ApplicantEmail),
		PasswordHash:    passwordHash,
		Role:            keycloak.RoleClient,
		Enabled:         false,
	}

	if err := s.repo.Create(ctx, u); err != nil {
		if core.IsDuplicateKey(err) {
			return nil, core.NewValidationError(
				[]string{"Ya existe un usuario con este correo electrónico"},
			)
		}
		return nil, core.WrapBusiness("Error al crear usuario", err)
	}

	identityID, err := s.mirrorIdentity(ctx, u.Email, req.Password, u.Name, u.Role)
	if err != nil {
		s.compensateLocal(ctx, u.ID)
		return nil, core.WrapBusiness("Error al crear usuario en Keycloak", err)
	}

	u.KeycloakID = identityID
	if err := s.repo.SetKeycloakID(ctx, u.ID, identityID); err != nil {
		// the account is fully usable either way, the reference is a
		// convenience for later admin operations
		s.logger.Warn("could not record identity reference",
			"user_id", u.ID,
			"error", err,
		)
	}

	return u, nil
}

// CreateAdminUser is the operator-driven creation path. It uses the
// lighter rule set, allows any platform role, and the resulting account
// is enabled immediately. Same persist-then-compensate discipline as
// Register.
func (s *Service) CreateAdminUser(
	ctx context.Context,
	req AdminCreateUserRequest,
) (*AdminUserResponse, error) {
	violations := req.Validate()

	email := strings.TrimSpace(req.Email)
	if email != "" {
		exists, err := s.repo.ExistsByEmail(ctx, email)
		if err != nil {
			return nil, core.WrapBusiness("Error al crear usuario", err)
		}
		if exists {
			violations = append(violations, "Ya existe un usuario con este email")
		}
	}

	if len(violations) > 0 {
		return nil, core.NewValidationError(violations)
	}

	passwordHash, err := core.HashPassword(req.Password)
	if err != nil {
		return nil, core.WrapBusiness("Error al crear usuario", err)
	}

	u := &User{
		ID:           uuid.New().String(),
		Name:         strings.TrimSpace(req.Name),
		Email:        email,
		PasswordHash: passwordHash,
		Role:         strings.TrimSpace(req.Role),
		Enabled:      true,
	}

	if err := s.repo.Create(ctx, u); err != nil {
		if core.IsDuplicateKey(err) {
			return nil, core.NewValidationError(
				[]string{"Ya existe un usuario con este email"},
			)
		}
		return nil, core.WrapBusiness("Error al crear usuario", err)
	}

	identityID, err := s.mirrorIdentity(ctx, u.Email, req.Password, u.Name, u.Role)
	if err != nil {
		s.compensateLocal(ctx, u.ID)
		return nil, core.WrapBusiness("Error al crear usuario en Keycloak", err)
	}

	u.KeycloakID = identityID
	if err := s.repo.SetKeycloakID(ctx, u.ID, identityID); err != nil {
		s.compensateLocal(ctx, u.ID)
		s.compensateRemote(ctx, identityID)
		return nil, core.WrapBusiness("Error al crear usuario", err)
	}

	return &AdminUserResponse{
		ID:      u.ID,
		Name:    u.Name,
		Email:   u.Email,
		Role:    u.Role,
		Enabled: u.Enabled,
	}, nil
}

// mirrorIdentity creates the remote identity and maps its role. When the
// role mapping fails the half-created identity is removed again so the
// realm does not accumulate role-less accounts.
func (s *Service) mirrorIdentity(
	ctx context.Context,
	email, password, displayName, role string,
) (string, error) {
	identityID, err := s.idp.CreateIdentity(ctx, email, password, displayName)
	if err != nil {
		return "", fmt.Errorf("create identity: %w", err)
	}

	if err := s.idp.AssignRole(ctx, identityID, role); err != nil {
		s.compensateRemote(ctx, identityID)
		return "", fmt.Errorf("assign role: %w", err)
	}

	return identityID, nil
}

func (s *Service) compensateLocal(ctx context.Context, userID string) {
	if err := s.repo.Delete(ctx, userID); err != nil {
		s.logger.Error("compensating delete failed, local row orphaned",
			"user_id", userID,
			"error", err,
		)
	}
}

func (s *Service) compensateRemote(ctx context.Context, identityID string) {
	if err := s.idp.DeleteIdentity(ctx, identityID); err != nil {
		s.logger.Error("compensating identity delete failed",
			"identity_id", identityID,
			"error", err,
		)
	}
}

func (s *Service) GetByID(ctx context.Context, id string) (*User, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) GetByEmail(ctx context.Context, email string) (*User, error) {
	return s.repo.GetByEmail(ctx, strings.TrimSpace(email))
}

// ListSummaries returns the reduced listing projection plus the total
// row count for the pagination envelope.
func (s *Service) ListSummaries(
	ctx context.Context,
	params ListUsersParams,
) ([]UserSummary, int, error) {
	users, err := s.repo.List(ctx, params.PerPage, params.Offset())
	if err != nil {
		return nil, 0, core.WrapBusiness("Error al obtener resumen de usuarios", err)
	}

	total, err := s.repo.Count(ctx)
	if err != nil {
		return nil, 0, core.WrapBusiness("Error al contar usuarios", err)
	}

	return ToUserSummaries(users), total, nil
}

func (s *Service) CountUsers(ctx context.Context) (int, error) {
	return s.repo.Count(ctx)
}

func (s *Service) Update(ctx context.Context, u *User) error {
	if err := s.repo.Update(ctx, u); err != nil {
		if core.IsNotFound(err) {
			return err
		}
		return core.WrapBusiness("Error al actualizar usuario", err)
	}
	return nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if core.IsNotFound(err) {
			return err
		}
		return core.WrapBusiness("Error al eliminar usuario", err)
	}
	return nil
}

// DeleteAll empties the user store and reports how many rows went. An
// already empty store is not an error, repeated calls return zero.
func (s *Service) DeleteAll(ctx context.Context) (int, error) {
	count, err := s.repo.DeleteAll(ctx)
	if err != nil {
		return 0, core.WrapBusiness("Error al eliminar todos los usuarios", err)
	}
	return count, nil
}
