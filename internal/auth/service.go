// AngelaMos | 2026
// service.go

package auth

import (
	"context"
	"errors"
	"strings"

	"github.com/medisupply/auth-service/internal/core"
	"github.com/medisupply/auth-service/internal/keycloak"
	"github.com/medisupply/auth-service/internal/user"
)

// ErrInvalidCredentials is returned when the account is unknown locally.
// It deliberately carries the same user-facing message as a provider
// rejection so callers cannot probe which emails are registered.
var ErrInvalidCredentials = errors.New("Credenciales inválidas")

// TokenGateway is the slice of the identity-provider gateway the
// authentication orchestrator needs.
type TokenGateway interface {
	IssueToken(ctx context.Context, username, password string) (*keycloak.TokenPayload, error)
	RevokeToken(ctx context.Context, refreshToken string) error
	RoleOf(ctx context.Context, email string) string
}

// UserStore resolves local accounts for pre-authentication checks and
// response enrichment.
type UserStore interface {
	GetByEmail(ctx context.Context, email string) (*user.User, error)
}

type Service struct {
	gateway TokenGateway
	users   UserStore
}

func NewService(gateway TokenGateway, users UserStore) *Service {
	return &Service{
		gateway: gateway,
		users:   users,
	}
}

// Authenticate validates the credentials, confirms the account exists
// locally, delegates the actual password check to the identity provider
// and relays its token payload enriched with local account data.
//
// A *keycloak.ProviderError passes through untouched so the HTTP layer
// can relay the provider's own error payload on wrong credentials.
func (s *Service) Authenticate(
	ctx context.Context,
	creds Credentials,
) (*TokenResponse, error) {
	if violations := creds.Validate(); len(violations) > 0 {
		return nil, core.NewValidationError(violations)
	}

	email := strings.TrimSpace(creds.User)

	account, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if core.IsNotFound(err) {
			return nil, ErrInvalidCredentials
		}
		return nil, core.WrapBusiness("Error al autenticar usuario", err)
	}

	payload, err := s.gateway.IssueToken(ctx, email, creds.Password)
	if err != nil {
		var provErr *keycloak.ProviderError
		if errors.As(err, &provErr) {
			return nil, provErr
		}
		return nil, core.WrapBusiness("Error al autenticar usuario", err)
	}

	if violations := validatePayload(payload); len(violations) > 0 {
		return nil, core.NewBusinessError(
			"Error en la respuesta de autenticación",
			errors.New(strings.Join(violations, "; ")),
		)
	}

	role := s.gateway.RoleOf(ctx, email)

	return &TokenResponse{
		AccessToken:      payload.AccessToken,
		ExpiresIn:        payload.ExpiresIn,
		RefreshExpiresIn: payload.RefreshExpiresIn,
		RefreshToken:     payload.RefreshToken,
		TokenType:        payload.TokenType,
		NotBeforePolicy:  payload.NotBeforePolicy,
		SessionState:     payload.SessionState,
		Scope:            payload.Scope,
		Email:            account.Email,
		Name:             account.Name,
		Role:             role,
		ID:               account.ID,
	}, nil
}

// Logout invalidates the session behind a refresh token.
func (s *Service) Logout(ctx context.Context, refreshToken string) error {
	refreshToken = strings.TrimSpace(refreshToken)
	if refreshToken == "" {
		return core.NewValidationError([]string{"El refresh_token es requerido"})
	}

	if err := s.gateway.RevokeToken(ctx, refreshToken); err != nil {
		var provErr *keycloak.ProviderError
		if errors.As(err, &provErr) {
			return provErr
		}
		return core.WrapBusiness("Error al cerrar sesión", err)
	}

	return nil
}
