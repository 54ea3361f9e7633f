// AngelaMos | 2026
// validate.go

package user

import (
	"fmt"
	"regexp"
	"slices"
	"strings"

	"github.com/medisupply/auth-service/internal/keycloak"
)

// emailRx is the registration email contract: dotted domain with a
// top-level segment of at least two characters.
var emailRx = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

var digitsRx = regexp.MustCompile(`^\d+$`)

// Validate checks every field rule and returns the full set of
// violations in field order. Callers join them into a single
// ValidationError so one round trip reports everything wrong.
func (r *RegistrationRequest) Validate() []string {
	var errs []string

	name := strings.TrimSpace(r.Name)
	switch {
	case name == "":
		errs = append(errs, "El campo 'Nombre' es obligatorio")
	case len([]rune(name)) > 100:
		errs = append(errs, "El campo 'Nombre' no puede exceder 100 caracteres")
	}

	if taxID := strings.TrimSpace(r.TaxID); len([]rune(taxID)) > 50 {
		errs = append(errs, "El campo 'Número de identificación tributaria' no puede exceder 50 caracteres")
	}

	email := strings.TrimSpace(r.Email)
	switch {
	case email == "":
		errs = append(errs, "El campo 'Correo electrónico' es obligatorio")
	case len([]rune(email)) > 100:
		errs = append(errs, "El campo 'Correo electrónico' no puede exceder 100 caracteres")
	case !emailRx.MatchString(email):
		errs = append(errs, "El campo 'Correo electrónico' debe tener un formato válido")
	}

	if address := strings.TrimSpace(r.Address); len([]rune(address)) > 200 {
		errs = append(errs, "El campo 'Dirección' no puede exceder 200 caracteres")
	}

	phone := strings.TrimSpace(r.Phone)
	switch {
	case phone == "":
		errs = append(errs, "El campo 'Teléfono de contacto' es obligatorio")
	case len([]rune(phone)) > 20:
		errs = append(errs, "El campo 'Teléfono de contacto' no puede exceder 20 caracteres")
	case !digitsRx.MatchString(phone):
		errs = append(errs, "El campo 'Teléfono de contacto' debe contener solo números")
	}

	instType := strings.TrimSpace(r.InstitutionType)
	switch {
	case instType == "":
		errs = append(errs, "El campo 'Tipo de institución' es obligatorio")
	case !slices.Contains(institutionTypes(), instType):
		errs = append(errs, "El campo 'Tipo de institución' debe ser: Clínica, Hospital o Laboratorio")
	}

	if logo := strings.TrimSpace(r.LogoFilename); len([]rune(logo)) > 255 {
		errs = append(errs, "El campo 'Logo' no puede exceder 255 caracteres")
	}

	specialty := strings.TrimSpace(r.Specialty)
	switch {
	case specialty == "":
		errs = append(errs, "El campo 'Especialidad' es obligatorio")
	case !slices.Contains(specialties(), specialty):
		errs = append(errs, "El campo 'Especialidad' debe ser: Cadena de frío, Alto valor o Seguridad")
	}

	if applicant := strings.TrimSpace(r.ApplicantName); len([]rune(applicant)) > 80 {
		errs = append(errs, "El campo 'Nombre del solicitante' no puede exceder 80 caracteres")
	}

	if applicantEmail := strings.TrimSpace(r.ApplicantEmail); applicantEmail != "" {
		switch {
		case len([]rune(applicantEmail)) > 100:
			errs = append(errs, "El campo 'Email del solicitante' no puede exceder 100 caracteres")
		case !emailRx.MatchString(applicantEmail):
			errs = append(errs, "El campo 'Email del solicitante' debe tener un formato válido")
		}
	}

	password := strings.TrimSpace(r.Password)
	switch {
	case password == "":
		errs = append(errs, "El campo 'Contraseña' es obligatorio")
	case len([]rune(password)) < 8:
		errs = append(errs, "El campo 'Contraseña' debe tener al menos 8 caracteres")
	}

	if strings.TrimSpace(r.ConfirmPassword) == "" {
		errs = append(errs, "El campo 'Confirmar contraseña' es obligatorio")
	}

	if r.Password != "" && r.ConfirmPassword != "" && r.Password != r.ConfirmPassword {
		errs = append(errs, "Los campos 'Contraseña' y 'Confirmar contraseña' deben ser iguales")
	}

	return errs
}

// Validate applies the lighter operator-driven rule set. Field labels
// here are the raw payload keys, not the registration form labels.
func (r *AdminCreateUserRequest) Validate() []string {
	var errs []string

	name := strings.TrimSpace(r.Name)
	switch {
	case name == "":
		errs = append(errs, "El campo 'name' es obligatorio")
	case len([]rune(name)) > 100:
		errs = append(errs, "El campo 'name' no puede exceder 100 caracteres")
	}

	email := strings.TrimSpace(r.Email)
	switch {
	case email == "":
		errs = append(errs, "El campo 'email' es obligatorio")
	case len([]rune(email)) > 100:
		errs = append(errs, "El campo 'email' no puede exceder 100 caracteres")
	case !emailRx.MatchString(email):
		errs = append(errs, "El campo 'email' debe ser un email válido")
	}

	password := strings.TrimSpace(r.Password)
	switch {
	case password == "":
		errs = append(errs, "El campo 'password' es obligatorio")
	case len([]rune(password)) < 8:
		errs = append(errs, "El campo 'password' debe tener al menos 8 caracteres")
	}

	if strings.TrimSpace(r.ConfirmPassword) == "" {
		errs = append(errs, "El campo 'confirm_password' es obligatorio")
	}

	if r.Password != "" && r.ConfirmPassword != "" && r.Password != r.ConfirmPassword {
		errs = append(errs, "Los campos 'password' y 'confirm_password' deben ser iguales")
	}

	role := strings.TrimSpace(r.Role)
	switch {
	case role == "":
		errs = append(errs, "El campo 'role' es obligatorio")
	case !slices.Contains(keycloak.AvailableRoles(), role):
		errs = append(errs, fmt.Sprintf(
			"El campo 'role' debe ser uno de los siguientes: %s",
			strings.Join(keycloak.AvailableRoles(), ", "),
		))
	}

	return errs
}
