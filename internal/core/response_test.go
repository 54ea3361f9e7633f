// AngelaMos | 2026
// response_test.go

package core

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestDomainErrorMapping(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantError  string
	}{
		{
			name:       "validation error is 400 verbatim",
			err:        NewValidationError([]string{"El campo 'name' es obligatorio"}),
			wantStatus: http.StatusBadRequest,
			wantError:  "El campo 'name' es obligatorio",
		},
		{
			name:       "not found error is 404",
			err:        NotFoundErrorf("No se encontró el vendedor con ID: %s", "abc"),
			wantStatus: http.StatusNotFound,
			wantError:  "No se encontró el vendedor con ID: abc",
		},
		{
			name:       "business error is 500 with prefix",
			err:        NewBusinessError("Error al crear usuario", errors.New("boom")),
			wantStatus: http.StatusInternalServerError,
			wantError:  "Error al crear usuario: boom",
		},
		{
			name:       "unknown error is generic 500",
			err:        errors.New("boom"),
			wantStatus: http.StatusInternalServerError,
			wantError:  "Error temporal del sistema. Contacte soporte técnico si persiste",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			rec := httptest.NewRecorder()
			DomainError(rec, tt.err)

			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", rec.Code, tt.wantStatus)
			}

			var body ErrorResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("unmarshal body: %v", err)
			}
			if body.Error != tt.wantError {
				t.Fatalf("error = %q, want %q", body.Error, tt.wantError)
			}
		})
	}
}

func TestNewPagination(t *testing.T) {
	t.Parallel()

	t.Run("middle page", func(t *testing.T) {
		t.Parallel()

		p := NewPagination(2, 10, 35)

		if p.TotalPages != 4 {
			t.Fatalf("TotalPages = %d, want 4", p.TotalPages)
		}
		if !p.HasNext || !p.HasPrev {
			t.Fatalf("HasNext = %v, HasPrev = %v, want both true", p.HasNext, p.HasPrev)
		}
		if p.NextPage == nil || *p.NextPage != 3 {
			t.Fatalf("NextPage = %v, want 3", p.NextPage)
		}
		if p.PrevPage == nil || *p.PrevPage != 1 {
			t.Fatalf("PrevPage = %v, want 1", p.PrevPage)
		}
	})

	t.Run("single page", func(t *testing.T) {
		t.Parallel()

		p := NewPagination(1, 10, 7)

		if p.TotalPages != 1 {
			t.Fatalf("TotalPages = %d, want 1", p.TotalPages)
		}
		if p.HasNext || p.HasPrev {
			t.Fatalf("HasNext = %v, HasPrev = %v, want both false", p.HasNext, p.HasPrev)
		}
		if p.NextPage != nil || p.PrevPage != nil {
			t.Fatal("neighbor pages should be nil on a single page")
		}
	})

	t.Run("empty listing", func(t *testing.T) {
		t.Parallel()

		p := NewPagination(1, 10, 0)

		if p.TotalPages != 0 {
			t.Fatalf("TotalPages = %d, want 0", p.TotalPages)
		}
		if p.HasNext || p.HasPrev {
			t.Fatal("empty listing has no neighbors")
		}
	})

	t.Run("neighbors serialize as null", func(t *testing.T) {
		t.Parallel()

		raw, err := json.Marshal(NewPagination(1, 10, 5))
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}

		var decoded map[string]any
		if err := json.Unmarshal(raw, &decoded); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		if decoded["next_page"] != nil {
			t.Fatalf("next_page = %v, want null", decoded["next_page"])
		}
		if decoded["prev_page"] != nil {
			t.Fatalf("prev_page = %v, want null", decoded["prev_page"])
		}
	})
}
