// AngelaMos | 2026
// dto.go

package auth

import (
	"regexp"
	"strings"

	"github.com/medisupply/auth-service/internal/keycloak"
)

var emailRx = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// Credentials is the login payload. The user field carries the account
// email.
type Credentials struct {
	User     string `json:"user"`
	Password string `json:"password"`
}

func (c *Credentials) Validate() []string {
	var errs []string

	user := strings.TrimSpace(c.User)
	switch {
	case user == "":
		errs = append(errs, "El campo 'user' es obligatorio")
	case len([]rune(user)) > 100:
		errs = append(errs, "El campo 'user' no puede exceder 100 caracteres")
	case !emailRx.MatchString(user):
		errs = append(errs, "El campo 'user' debe ser un email válido")
	}

	if strings.TrimSpace(c.Password) == "" {
		errs = append(errs, "El campo 'password' es obligatorio")
	}

	return errs
}

type LogoutRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// TokenResponse is the provider's token payload relayed field-for-field,
// enriched with local account data so clients skip a profile round trip.
type TokenResponse struct {
	AccessToken      string `json:"access_token"`
	ExpiresIn        int    `json:"expires_in"`
	RefreshExpiresIn int    `json:"refresh_expires_in"`
	RefreshToken     string `json:"refresh_token"`
	TokenType        string `json:"token_type"`
	NotBeforePolicy  int    `json:"not-before-policy"`
	SessionState     string `json:"session_state"`
	Scope            string `json:"scope"`

	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
	ID    string `json:"id"`
}

// validatePayload checks the provider returned a usable token before the
// payload is relayed onward.
func validatePayload(p *keycloak.TokenPayload) []string {
	var errs []string

	if strings.TrimSpace(p.AccessToken) == "" {
		errs = append(errs, "El campo 'access_token' es obligatorio en la respuesta")
	}
	if strings.TrimSpace(p.TokenType) == "" {
		errs = append(errs, "El campo 'token_type' es obligatorio en la respuesta")
	}
	if p.ExpiresIn <= 0 {
		errs = append(errs, "El campo 'expires_in' debe ser mayor a 0")
	}

	return errs
}
