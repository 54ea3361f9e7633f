// AngelaMos | 2026
// dto.go

package user

import (
	"time"
)

// RegistrationRequest carries a self-service institution registration.
// The role is never taken from the caller, registration always produces
// a disabled client account.
type RegistrationRequest struct {
	Name            string `json:"name"`
	TaxID           string `json:"tax_id"`
	Email           string `json:"email"`
	Address         string `json:"address"`
	Phone           string `json:"phone"`
	InstitutionType string `json:"institution_type"`
	LogoFilename    string `json:"logo_filename"`
	Specialty       string `json:"specialty"`
	ApplicantName   string `json:"applicant_name"`
	ApplicantEmail  string `json:"applicant_email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`

	// LogoURL is filled in server-side after a successful logo upload,
	// never taken from the caller.
	LogoURL string `json:"-"`
}

// AdminCreateUserRequest is the operator-driven creation payload. It
// skips the institutional fields and allows any platform role.
type AdminCreateUserRequest struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
	Role            string `json:"role"`
}

// UserResponse is the full outward projection. Credential material never
// leaves the service.
type UserResponse struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	TaxID           string    `json:"tax_id"`
	Email           string    `json:"email"`
	Address         string    `json:"address"`
	Phone           string    `json:"phone"`
	InstitutionType string    `json:"institution_type"`
	LogoFilename    string    `json:"logo_filename"`
	LogoURL         string    `json:"logo_url"`
	Specialty       string    `json:"specialty"`
	ApplicantName   string    `json:"applicant_name"`
	ApplicantEmail  string    `json:"applicant_email"`
	Enabled         bool      `json:"enabled"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// UserSummary is the reduced projection used by listings.
type UserSummary struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	Email           string `json:"email"`
	InstitutionType string `json:"institution_type"`
	Phone           string `json:"phone"`
}

// AdminUserResponse is what the admin-creation endpoint returns.
type AdminUserResponse struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Role    string `json:"role"`
	Enabled bool   `json:"enabled"`
}

type ListUsersParams struct {
	Page    int
	PerPage int
}

func (p ListUsersParams) Offset() int {
	return (p.Page - 1) * p.PerPage
}

func ToUserResponse(u *User) UserResponse {
	return UserResponse{
		ID:              u.ID,
		Name:            u.Name,
		TaxID:           u.TaxID,
		Email:           u.Email,
		Address:         u.Address,
		Phone:           u.Phone,
		InstitutionType: u.InstitutionType,
		LogoFilename:    u.LogoFilename,
		LogoURL:         u.LogoURL,
		Specialty:       u.Specialty,
		ApplicantName:   u.ApplicantName,
		ApplicantEmail:  u.ApplicantEmail,
		Enabled:         u.Enabled,
		CreatedAt:       u.CreatedAt,
		UpdatedAt:       u.UpdatedAt,
	}
}

func ToUserSummaries(users []User) []UserSummary {
	summaries := make([]UserSummary, 0, len(users))
	for _, u := range users {
		summaries = append(summaries, UserSummary{
			ID:              u.ID,
			Name:            u.Name,
			Email:           u.Email,
			InstitutionType: u.InstitutionType,
			Phone:           u.Phone,
		})
	}
	return summaries
}
