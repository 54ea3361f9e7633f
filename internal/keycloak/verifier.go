// AngelaMos | 2026
// verifier.go

package keycloak

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/lestrrat-go/jwx/v3/jwk"
	"github.com/lestrrat-go/jwx/v3/jwt"

	"github.com/medisupply/auth-service/internal/config"
	"github.com/medisupply/auth-service/internal/core"
	"github.com/medisupply/auth-service/internal/middleware"
)

// keySetTTL bounds how long a fetched JWKS is trusted before refetching.
// Keycloak rotates realm keys rarely, so an hour keeps verification off
// the network without holding stale keys past rotation for long.
const keySetTTL = time.Hour

// Verifier validates realm access tokens against the provider's
// published JWKS. It satisfies middleware.TokenVerifier.
type Verifier struct {
	jwksURL string
	issuer  string

	mu         sync.Mutex
	keySet     jwk.Set
	keySetTime time.Time
}

func NewVerifier(cfg config.KeycloakConfig) *Verifier {
	return &Verifier{
		jwksURL: cfg.JWKSURL(),
		issuer:  cfg.Issuer(),
	}
}

func (v *Verifier) keys(ctx context.Context) (jwk.Set, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.keySet != nil && time.Since(v.keySetTime) < keySetTTL {
		return v.keySet, nil
	}

	set, err := jwk.Fetch(ctx, v.jwksURL)
	if err != nil {
		if v.keySet != nil {
			return v.keySet, nil
		}
		return nil, fmt.Errorf("fetch jwks: %w", err)
	}

	v.keySet = set
	v.keySetTime = time.Now()

	return set, nil
}

// VerifyAccessToken parses and validates a bearer token and extracts the
// subject, email, and realm roles.
func (v *Verifier) VerifyAccessToken(
	ctx context.Context,
	tokenString string,
) (*middleware.TokenClaims, error) {
	set, err := v.keys(ctx)
	if err != nil {
		return nil, fmt.Errorf("verify token: %w", err)
	}

	token, err := jwt.Parse(
		[]byte(tokenString),
		jwt.WithKeySet(set),
		jwt.WithValidate(true),
		jwt.WithIssuer(v.issuer),
	)
	if err != nil {
		if isTokenExpiredError(err) {
			return nil, fmt.Errorf("verify token: %w", core.ErrTokenExpired)
		}
		return nil, fmt.Errorf("verify token: %w", core.ErrTokenInvalid)
	}

	subject, ok := token.Subject()
	if !ok || subject == "" {
		return nil, fmt.Errorf(
			"verify token: missing subject: %w",
			core.ErrTokenInvalid,
		)
	}

	var email string
	//nolint:errcheck // email is informational, role checks gate access
	_ = token.Get("email", &email)

	var realmAccess struct {
		Roles []string `json:"roles"`
	}
	//nolint:errcheck // tokens without realm roles simply carry none
	_ = token.Get("realm_access", &realmAccess)

	return &middleware.TokenClaims{
		UserID: subject,
		Email:  email,
		Roles:  realmAccess.Roles,
	}, nil
}

func isTokenExpiredError(err error) bool {
	if err == nil {
		return false
	}
	errStr := err.Error()
	return strings.Contains(errStr, "exp") &&
		strings.Contains(errStr, "not satisfied")
}
