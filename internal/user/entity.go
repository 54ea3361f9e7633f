// AngelaMos | 2026
// entity.go

package user

import (
	"time"
)

// User is an institutional account. Self-registered users start disabled
// and become active when a seller claims them; admin-created users start
// enabled. PasswordHash is the only credential material stored locally,
// the identity provider holds the usable credential.
type User struct {
	ID              string    `db:"id"`
	Name            string    `db:"name"`
	TaxID           string    `db:"tax_id"`
	Email           string    `db:"email"`
	Address         string    `db:"address"`
	Phone           string    `db:"phone"`
	InstitutionType string    `db:"institution_type"`
	LogoFilename    string    `db:"logo_filename"`
	LogoURL         string    `db:"logo_url"`
	Specialty       string    `db:"specialty"`
	ApplicantName   string    `db:"applicant_name"`
	ApplicantEmail  string    `db:"applicant_email"`
	PasswordHash    string    `db:"password_hash"`
	Role            string    `db:"role"`
	KeycloakID      string    `db:"keycloak_id"`
	Enabled         bool      `db:"enabled"`
	CreatedAt       time.Time `db:"created_at"`
	UpdatedAt       time.Time `db:"updated_at"`
}

func (u *User) IsEnabled() bool {
	return u.Enabled
}

const (
	InstitutionClinic     = "Clínica"
	InstitutionHospital   = "Hospital"
	InstitutionLaboratory = "Laboratorio"
)

const (
	SpecialtyColdChain = "Cadena de frío"
	SpecialtyHighValue = "Alto valor"
	SpecialtySecurity  = "Seguridad"
)

func institutionTypes() []string {
	return []string{InstitutionClinic, InstitutionHospital, InstitutionLaboratory}
}

func specialties() []string {
	return []string{SpecialtyColdChain, SpecialtyHighValue, SpecialtySecurity}
}
