// AngelaMos | 2026
// errors_test.go

package core

import (
	"errors"
	"fmt"
	"testing"
)

func TestNewValidationErrorJoinsViolations(t *testing.T) {
	t.Parallel()

	err := NewValidationError([]string{
		"El campo 'name' es obligatorio",
		"El campo 'email' es obligatorio",
	})

	want := "El campo 'name' es obligatorio; El campo 'email' es obligatorio"
	if err.Error() != want {
		t.Fatalf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestWrapBusinessPreservesDomainErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
	}{
		{"validation", NewValidationError([]string{"El campo 'name' es obligatorio"})},
		{"not found", NotFoundErrorf("Usuario no encontrado")},
		{"business", NewBusinessError("Error al crear usuario", errors.New("boom"))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := WrapBusiness("outer prefix", tt.err)
			if got != tt.err { //nolint:errorlint // identity check is the point
				t.Fatalf("WrapBusiness() re-wrapped a domain error: %v", got)
			}
		})
	}
}

func TestWrapBusinessWrapsInfrastructureErrors(t *testing.T) {
	t.Parallel()

	cause := errors.New("connection refused")
	err := WrapBusiness("Error al crear usuario", cause)

	var be *BusinessLogicError
	if !errors.As(err, &be) {
		t.Fatalf("WrapBusiness() = %T, want *BusinessLogicError", err)
	}
	if be.Error() != "Error al crear usuario: connection refused" {
		t.Fatalf("Error() = %q", be.Error())
	}
	if !errors.Is(err, cause) {
		t.Fatal("wrapped error lost its cause")
	}
}

func TestWrapBusinessNil(t *testing.T) {
	t.Parallel()

	if err := WrapBusiness("prefix", nil); err != nil {
		t.Fatalf("WrapBusiness(nil) = %v, want nil", err)
	}
}

func TestSentinelHelpers(t *testing.T) {
	t.Parallel()

	wrapped := fmt.Errorf("get user: %w", ErrNotFound)
	if !IsNotFound(wrapped) {
		t.Fatal("IsNotFound() = false for wrapped ErrNotFound")
	}
	if IsNotFound(ErrDuplicateKey) {
		t.Fatal("IsNotFound() = true for ErrDuplicateKey")
	}

	if !IsDuplicateKey(fmt.Errorf("insert user: %w", ErrDuplicateKey)) {
		t.Fatal("IsDuplicateKey() = false for wrapped ErrDuplicateKey")
	}
}
