// AngelaMos | 2026
// client.go

package keycloak

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/medisupply/auth-service/internal/config"
)

const (
	// adminClientID is the built-in CLI client the administrative
	// credential is issued against, always in the master realm.
	adminClientID = "admin-cli"

	// realmClientID is the public client end users authenticate through.
	realmClientID = "medisupply-app"

	// tokenExpiryMargin renews the cached admin token this long before
	// its reported expiry.
	tokenExpiryMargin = 60 * time.Second
)

// TokenPayload is Keycloak's token-endpoint response, relayed to callers
// as-is (field names included) on successful authentication.
type TokenPayload struct {
	AccessToken      string `json:"access_token"`
	ExpiresIn        int    `json:"expires_in"`
	RefreshExpiresIn int    `json:"refresh_expires_in"`
	RefreshToken     string `json:"refresh_token"`
	TokenType        string `json:"token_type"`
	NotBeforePolicy  int    `json:"not-before-policy"`
	SessionState     string `json:"session_state"`
	Scope            string `json:"scope"`
}

// ProviderError carries Keycloak's own error payload so authentication
// callers can distinguish wrong credentials from a broken provider.
type ProviderError struct {
	StatusCode  int    `json:"-"`
	Code        string `json:"error"`
	Description string `json:"error_description"`
}

func (e *ProviderError) Error() string {
	if e.Description != "" {
		return fmt.Sprintf("keycloak: %s: %s", e.Code, e.Description)
	}
	return fmt.Sprintf("keycloak: status %d", e.StatusCode)
}

func (e *ProviderError) IsInvalidCredentials() bool {
	return e.StatusCode == http.StatusUnauthorized ||
		e.Code == "invalid_grant"
}

// Client talks to the identity provider. The cached administrative
// credential is the only mutable state; the mutex serializes renewal so
// concurrent callers cannot trigger duplicate refreshes.
type Client struct {
	cfg        config.KeycloakConfig
	httpClient *http.Client

	mu          sync.Mutex
	adminToken  string
	adminExpiry time.Time
}

func NewClient(cfg config.KeycloakConfig) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// getAdminToken returns the cached administrative token, renewing it via a
// password grant against the master realm when it is within the expiry
// margin. Callers never observe the caching.
func (c *Client) getAdminToken(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.adminToken != "" && time.Now().Before(c.adminExpiry) {
		return c.adminToken, nil
	}

	form := url.Values{
		"grant_type": {"password"},
		"client_id":  {adminClientID},
		"username":   {c.cfg.AdminUser},
		"password":   {c.cfg.AdminPassword},
	}

	payload, err := c.postTokenForm(ctx, c.cfg.TokenURL("master"), form)
	if err != nil {
		return "", fmt.Errorf("obtain admin token: %w", err)
	}

	c.adminToken = payload.AccessToken
	c.adminExpiry = time.Now().
		Add(time.Duration(payload.ExpiresIn) * time.Second).
		Add(-tokenExpiryMargin)

	return c.adminToken, nil
}

// IssueToken performs a password grant for an end user in the configured
// realm and returns the raw token payload.
func (c *Client) IssueToken(
	ctx context.Context,
	username, password string,
) (*TokenPayload, error) {
	form := url.Values{
		"grant_type": {"password"},
		"client_id":  {realmClientID},
		"username":   {username},
		"password":   {password},
	}

	return c.postTokenForm(ctx, c.cfg.TokenURL(c.cfg.Realm), form)
}

// RevokeToken invalidates the session behind a refresh token.
func (c *Client) RevokeToken(ctx context.Context, refreshToken string) error {
	form := url.Values{
		"client_id":     {realmClientID},
		"refresh_token": {refreshToken},
	}

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		c.cfg.LogoutURL(),
		strings.NewReader(form.Encode()),
	)
	if err != nil {
		return fmt.Errorf("build logout request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("logout request: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck // response body drain

	if resp.StatusCode >= 400 {
		return decodeProviderError(resp)
	}

	return nil
}

// CreateIdentity mirrors a local user into the realm and returns the
// identifier the provider assigned, parsed from the Location header.
func (c *Client) CreateIdentity(
	ctx context.Context,
	email, password, displayName string,
) (string, error) {
	token, err := c.getAdminToken(ctx)
	if err != nil {
		return "", err
	}

	body := map[string]any{
		"username":      email,
		"email":         email,
		"firstName":     displayName,
		"enabled":       true,
		"emailVerified": true,
		"credentials": []map[string]any{
			{
				"type":      "password",
				"value":     password,
				"temporary": false,
			},
		},
	}

	resp, err := c.adminRequest(ctx, http.MethodPost, c.cfg.AdminURL("users"), token, body)
	if err != nil {
		return "", fmt.Errorf("create identity: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck // response body drain

	if resp.StatusCode >= 400 {
		return "", fmt.Errorf("create identity: %w", decodeProviderError(resp))
	}

	location := resp.Header.Get("Location")
	if location == "" {
		return "", fmt.Errorf("create identity: missing Location header in response")
	}

	parts := strings.Split(location, "/")
	return parts[len(parts)-1], nil
}

// AssignRole maps a realm role onto an identity.
func (c *Client) AssignRole(
	ctx context.Context,
	identityID, roleName string,
) error {
	role, ok := realmRoles[roleName]
	if !ok {
		return fmt.Errorf(
			"rol '%s' no válido. Roles disponibles: %s",
			roleName,
			strings.Join(AvailableRoles(), ", "),
		)
	}

	token, err := c.getAdminToken(ctx)
	if err != nil {
		return err
	}

	url := c.cfg.AdminURL("users", identityID, "role-mappings", "realm")
	resp, err := c.adminRequest(ctx, http.MethodPost, url, token, []roleRepresentation{role})
	if err != nil {
		return fmt.Errorf("assign role: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck // response body drain

	if resp.StatusCode >= 400 {
		return fmt.Errorf("assign role: %w", decodeProviderError(resp))
	}

	return nil
}

// DeleteIdentity removes an identity from the realm. Used both for admin
// deletes and as the compensating action when mirroring fails midway.
func (c *Client) DeleteIdentity(ctx context.Context, identityID string) error {
	token, err := c.getAdminToken(ctx)
	if err != nil {
		return err
	}

	url := c.cfg.AdminURL("users", identityID)
	resp, err := c.adminRequest(ctx, http.MethodDelete, url, token, nil)
	if err != nil {
		return fmt.Errorf("delete identity: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck // response body drain

	if resp.StatusCode >= 400 && resp.StatusCode != http.StatusNotFound {
		return fmt.Errorf("delete identity: %w", decodeProviderError(resp))
	}

	return nil
}

// RoleOf resolves the realm role bound to the identity with the given
// email. Any resolution failure falls back to RoleClient: listing and
// authentication must keep working through provider flakiness, and an
// unknown account is most plausibly an institutional client.
func (c *Client) RoleOf(ctx context.Context, email string) string {
	role, err := c.lookupRole(ctx, email)
	if err != nil {
		slog.Warn("role resolution failed, defaulting",
			"email", email,
			"default", RoleClient,
			"error", err,
		)
		return RoleClient
	}
	return role
}

func (c *Client) lookupRole(ctx context.Context, email string) (string, error) {
	token, err := c.getAdminToken(ctx)
	if err != nil {
		return "", err
	}

	searchURL := c.cfg.AdminURL("users") + "?exact=true&email=" + url.QueryEscape(email)
	resp, err := c.adminRequest(ctx, http.MethodGet, searchURL, token, nil)
	if err != nil {
		return "", fmt.Errorf("search identity: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck // response body drain

	if resp.StatusCode >= 400 {
		return "", decodeProviderError(resp)
	}

	var identities []struct {
		ID string `json:"id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&identities); err != nil {
		return "", fmt.Errorf("decode identity search: %w", err)
	}
	if len(identities) == 0 {
		return "", fmt.Errorf("no identity for email %s", email)
	}

	mappingsURL := c.cfg.AdminURL("users", identities[0].ID, "role-mappings", "realm")
	mResp, err := c.adminRequest(ctx, http.MethodGet, mappingsURL, token, nil)
	if err != nil {
		return "", fmt.Errorf("fetch role mappings: %w", err)
	}
	defer mResp.Body.Close() //nolint:errcheck // response body drain

	if mResp.StatusCode >= 400 {
		return "", decodeProviderError(mResp)
	}

	var mappings []roleRepresentation
	if err := json.NewDecoder(mResp.Body).Decode(&mappings); err != nil {
		return "", fmt.Errorf("decode role mappings: %w", err)
	}

	for _, m := range mappings {
		if _, ok := realmRoles[m.Name]; ok {
			return m.Name, nil
		}
	}

	return "", fmt.Errorf("no realm role mapped for %s", email)
}

// IdentitiesWithRole returns the emails of every identity holding the
// given realm role.
func (c *Client) IdentitiesWithRole(
	ctx context.Context,
	roleName string,
) ([]string, error) {
	token, err := c.getAdminToken(ctx)
	if err != nil {
		return nil, err
	}

	url := c.cfg.AdminURL("roles", roleName, "users")
	resp, err := c.adminRequest(ctx, http.MethodGet, url, token, nil)
	if err != nil {
		return nil, fmt.Errorf("list identities by role: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck // response body drain

	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("list identities by role: %w", decodeProviderError(resp))
	}

	var identities []struct {
		Email string `json:"email"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&identities); err != nil {
		return nil, fmt.Errorf("decode identities: %w", err)
	}

	emails := make([]string, 0, len(identities))
	for _, id := range identities {
		if id.Email != "" {
			emails = append(emails, id.Email)
		}
	}

	return emails, nil
}

func (c *Client) postTokenForm(
	ctx context.Context,
	endpoint string,
	form url.Values,
) (*TokenPayload, error) {
	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		endpoint,
		strings.NewReader(form.Encode()),
	)
	if err != nil {
		return nil, fmt.Errorf("build token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("token request: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck // response body drain

	if resp.StatusCode >= 400 {
		return nil, decodeProviderError(resp)
	}

	var payload TokenPayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode token response: %w", err)
	}

	return &payload, nil
}

func (c *Client) adminRequest(
	ctx context.Context,
	method, url, token string,
	body any,
) (*http.Response, error) {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+token)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return c.httpClient.Do(req)
}

func decodeProviderError(resp *http.Response) error {
	provErr := &ProviderError{StatusCode: resp.StatusCode}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if err == nil && len(raw) > 0 {
		//nolint:errcheck // a non-JSON body still yields a usable status error
		_ = json.Unmarshal(raw, provErr)
	}

	return provErr
}
