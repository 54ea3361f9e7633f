// AngelaMos | 2026
// validate_test.go

package user

import (
	"strings"
	"testing"
)

func validRegistration() RegistrationRequest {
	return RegistrationRequest{
		Name:            "Hospital Central",
		TaxID:           "900123456-7",
		Email:           "contacto@hospitalcentral.com",
		Address:         "Calle 100 #15-20",
		Phone:           "3001234567",
		InstitutionType: InstitutionHospital,
		Specialty:       SpecialtyHighValue,
		ApplicantName:   "Ana Pérez",
		ApplicantEmail:  "ana.perez@hospitalcentral.com",
		Password:        "supersecreta1",
		ConfirmPassword: "supersecreta1",
	}
}

func TestRegistrationValidateOK(t *testing.T) {
	t.Parallel()

	req := validRegistration()
	if errs := req.Validate(); len(errs) != 0 {
		t.Fatalf("Validate() = %v, want no violations", errs)
	}
}

func TestRegistrationValidateOptionalFieldsAbsent(t *testing.T) {
	t.Parallel()

	req := validRegistration()
	req.TaxID = ""
	req.Address = ""
	req.ApplicantName = ""
	req.ApplicantEmail = ""
	req.LogoFilename = ""

	if errs := req.Validate(); len(errs) != 0 {
		t.Fatalf("Validate() = %v, want no violations", errs)
	}
}

func TestRegistrationValidateViolations(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name   string
		mutate func(*RegistrationRequest)
		want   string
	}{
		{
			name:   "missing name",
			mutate: func(r *RegistrationRequest) { r.Name = "  " },
			want:   "El campo 'Nombre' es obligatorio",
		},
		{
			name:   "name too long",
			mutate: func(r *RegistrationRequest) { r.Name = strings.Repeat("a", 101) },
			want:   "El campo 'Nombre' no puede exceder 100 caracteres",
		},
		{
			name:   "tax id too long",
			mutate: func(r *RegistrationRequest) { r.TaxID = strings.Repeat("1", 51) },
			want:   "El campo 'Número de identificación tributaria' no puede exceder 50 caracteres",
		},
		{
			name:   "missing email",
			mutate: func(r *RegistrationRequest) { r.Email = "" },
			want:   "El campo 'Correo electrónico' es obligatorio",
		},
		{
			name:   "email without dotted domain",
			mutate: func(r *RegistrationRequest) { r.Email = "alguien@dominio" },
			want:   "El campo 'Correo electrónico' debe tener un formato válido",
		},
		{
			name:   "email with short tld",
			mutate: func(r *RegistrationRequest) { r.Email = "alguien@dominio.c" },
			want:   "El campo 'Correo electrónico' debe tener un formato válido",
		},
		{
			name:   "address too long",
			mutate: func(r *RegistrationRequest) { r.Address = strings.Repeat("c", 201) },
			want:   "El campo 'Dirección' no puede exceder 200 caracteres",
		},
		{
			name:   "missing phone",
			mutate: func(r *RegistrationRequest) { r.Phone = "" },
			want:   "El campo 'Teléfono de contacto' es obligatorio",
		},
		{
			name:   "phone with letters",
			mutate: func(r *RegistrationRequest) { r.Phone = "300ABC4567" },
			want:   "El campo 'Teléfono de contacto' debe contener solo números",
		},
		{
			name:   "unknown institution type",
			mutate: func(r *RegistrationRequest) { r.InstitutionType = "Farmacia" },
			want:   "El campo 'Tipo de institución' debe ser: Clínica, Hospital o Laboratorio",
		},
		{
			name:   "logo filename too long",
			mutate: func(r *RegistrationRequest) { r.LogoFilename = strings.Repeat("x", 256) },
			want:   "El campo 'Logo' no puede exceder 255 caracteres",
		},
		{
			name:   "unknown specialty",
			mutate: func(r *RegistrationRequest) { r.Specialty = "General" },
			want:   "El campo 'Especialidad' debe ser: Cadena de frío, Alto valor o Seguridad",
		},
		{
			name:   "applicant name too long",
			mutate: func(r *RegistrationRequest) { r.ApplicantName = strings.Repeat("n", 81) },
			want:   "El campo 'Nombre del solicitante' no puede exceder 80 caracteres",
		},
		{
			name:   "applicant email malformed",
			mutate: func(r *RegistrationRequest) { r.ApplicantEmail = "no-es-email" },
			want:   "El campo 'Email del solicitante' debe tener un formato válido",
		},
		{
			name:   "short password",
			mutate: func(r *RegistrationRequest) { r.Password = "corta"; r.ConfirmPassword = "corta" },
			want:   "El campo 'Contraseña' debe tener al menos 8 caracteres",
		},
		{
			name:   "missing confirm password",
			mutate: func(r *RegistrationRequest) { r.ConfirmPassword = "" },
			want:   "El campo 'Confirmar contraseña' es obligatorio",
		},
		{
			name: "password mismatch",
			mutate: func(r *RegistrationRequest) {
				r.ConfirmPassword = "otracontraseña"
			},
			want: "Los campos 'Contraseña' y 'Confirmar contraseña' deben ser iguales",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			req := validRegistration()
			tc.mutate(&req)

			errs := req.Validate()
			if len(errs) == 0 {
				t.Fatal("Validate() returned no violations")
			}

			found := false
			for _, e := range errs {
				if e == tc.want {
					found = true
					break
				}
			}
			if !found {
				t.Fatalf("Validate() = %v, want to contain %q", errs, tc.want)
			}
		})
	}
}

func TestRegistrationValidateAggregatesAllViolations(t *testing.T) {
	t.Parallel()

	req := RegistrationRequest{}
	errs := req.Validate()

	want := []string{
		"El campo 'Nombre' es obligatorio",
		"El campo 'Correo electrónico' es obligatorio",
		"El campo 'Teléfono de contacto' es obligatorio",
		"El campo 'Tipo de institución' es obligatorio",
		"El campo 'Especialidad' es obligatorio",
		"El campo 'Contraseña' es obligatorio",
		"El campo 'Confirmar contraseña' es obligatorio",
	}

	if len(errs) != len(want) {
		t.Fatalf("Validate() = %v (%d violations), want %d", errs, len(errs), len(want))
	}
	for i, w := range want {
		if errs[i] != w {
			t.Errorf("violation[%d] = %q, want %q", i, errs[i], w)
		}
	}
}

func TestAdminCreateValidate(t *testing.T) {
	t.Parallel()

	valid := AdminCreateUserRequest{
		Name:            "Laura Gómez",
		Email:           "laura@medisupply.com",
		Password:        "password123",
		ConfirmPassword: "password123",
		Role:            "Ventas",
	}

	if errs := valid.Validate(); len(errs) != 0 {
		t.Fatalf("Validate() = %v, want no violations", errs)
	}

	empty := AdminCreateUserRequest{}
	errs := empty.Validate()

	want := []string{
		"El campo 'name' es obligatorio",
		"El campo 'email' es obligatorio",
		"El campo 'password' es obligatorio",
		"El campo 'confirm_password' es obligatorio",
		"El campo 'role' es obligatorio",
	}
	if len(errs) != len(want) {
		t.Fatalf("Validate() = %v, want %d violations", errs, len(want))
	}
	for i, w := range want {
		if errs[i] != w {
			t.Errorf("violation[%d] = %q, want %q", i, errs[i], w)
		}
	}
}

func TestAdminCreateValidateRules(t *testing.T) {
	t.Parallel()

	req := AdminCreateUserRequest{
		Name:            "Laura Gómez",
		Email:           "laura-sin-arroba",
		Password:        "password123",
		ConfirmPassword: "distinta123",
		Role:            "SuperUser",
	}

	errs := req.Validate()

	for _, want := range []string{
		"El campo 'email' debe ser un email válido",
		"Los campos 'password' y 'confirm_password' deben ser iguales",
		"El campo 'role' debe ser uno de los siguientes: Administrador, Compras, Ventas, Logistica, Cliente",
	} {
		found := false
		for _, e := range errs {
			if e == want {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("Validate() = %v, want to contain %q", errs, want)
		}
	}
}

func TestGenerateLogoFilename(t *testing.T) {
	t.Parallel()

	got := generateLogoFilename("Mi Logo.PNG")
	if !strings.HasPrefix(got, "logo_") || !strings.HasSuffix(got, ".png") {
		t.Fatalf("generateLogoFilename() = %q", got)
	}

	if got := generateLogoFilename("sinextension"); got != "" {
		t.Fatalf("generateLogoFilename() = %q, want empty", got)
	}
	if got := generateLogoFilename(""); got != "" {
		t.Fatalf("generateLogoFilename() = %q, want empty", got)
	}
}
