// AngelaMos | 2026
// handler.go

package user

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/medisupply/auth-service/internal/core"
)

// maxLogoSize bounds multipart memory during registration uploads.
const maxLogoSize = 10 << 20

// LogoUploader stores institution logos and returns a public URL. A nil
// uploader disables logo handling, registrations still succeed.
type LogoUploader interface {
	Upload(ctx context.Context, filename string, content io.Reader, size int64, contentType string) (string, error)
	Delete(ctx context.Context, filename string) error
}

type Handler struct {
	service *Service
	logos   LogoUploader
	logger  *slog.Logger
}

func NewHandler(service *Service, logos LogoUploader, logger *slog.Logger) *Handler {
	return &Handler{
		service: service,
		logos:   logos,
		logger:  logger,
	}
}

func (h *Handler) RegisterRoutes(
	r chi.Router,
	authenticator, adminOnly func(http.Handler) http.Handler,
) {
	r.Route("/auth/user", func(r chi.Router) {
		r.Post("/", h.Register)
		r.Get("/", h.List)
		r.Get("/ping", h.Ping)
		r.Delete("/all", h.DeleteAll)
		r.Get("/{userID}", h.GetByID)
	})

	r.Route("/auth/admin/users", func(r chi.Router) {
		r.Use(authenticator)
		r.Use(adminOnly)

		r.Post("/", h.CreateAdminUser)
	})
}

// Register accepts either a JSON body or multipart/form-data with an
// optional logo file.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegistrationRequest

	if strings.Contains(r.Header.Get("Content-Type"), "multipart/form-data") {
		var ok bool
		req, ok = h.parseMultipart(w, r)
		if !ok {
			return
		}
	} else {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			core.BadRequest(w, "El cuerpo de la petición JSON está vacío")
			return
		}
	}

	created, err := h.service.Register(r.Context(), req)
	if err != nil {
		h.removeOrphanedLogo(r.Context(), req)
		core.DomainError(w, err)
		return
	}

	core.Created(w, ToUserResponse(created))
}

// removeOrphanedLogo cleans up a logo that was uploaded during multipart
// parsing for a registration that then failed. Best effort, the object
// store has no record to stay consistent with.
func (h *Handler) removeOrphanedLogo(ctx context.Context, req RegistrationRequest) {
	if h.logos == nil || req.LogoURL == "" {
		return
	}

	if err := h.logos.Delete(ctx, req.LogoFilename); err != nil {
		h.logger.Warn("could not remove orphaned logo",
			"filename", req.LogoFilename,
			"error", err,
		)
	}
}

func (h *Handler) parseMultipart(
	w http.ResponseWriter,
	r *http.Request,
) (RegistrationRequest, bool) {
	if err := r.ParseMultipartForm(maxLogoSize); err != nil {
		core.BadRequest(w, "Error al procesar formulario: "+err.Error())
		return RegistrationRequest{}, false
	}

	req := RegistrationRequest{
		Name:            r.FormValue("name"),
		TaxID:           r.FormValue("tax_id"),
		Email:           r.FormValue("email"),
		Address:         r.FormValue("address"),
		Phone:           r.FormValue("phone"),
		InstitutionType: r.FormValue("institution_type"),
		Specialty:       r.FormValue("specialty"),
		ApplicantName:   r.FormValue("applicant_name"),
		ApplicantEmail:  r.FormValue("applicant_email"),
		Password:        r.FormValue("password"),
		ConfirmPassword: r.FormValue("confirm_password"),
	}

	file, header, err := r.FormFile("logo")
	if err != nil || header == nil || header.Filename == "" {
		return req, true
	}
	defer file.Close() //nolint:errcheck // read-only temp file

	filename := generateLogoFilename(header.Filename)
	if filename == "" {
		return req, true
	}
	req.LogoFilename = filename

	if h.logos == nil {
		return req, true
	}

	url, err := h.logos.Upload(
		r.Context(),
		filename,
		file,
		header.Size,
		header.Header.Get("Content-Type"),
	)
	if err != nil {
		// logo storage is a convenience, never a registration blocker
		h.logger.Warn("logo upload failed", "filename", filename, "error", err)
		return req, true
	}
	req.LogoURL = url

	return req, true
}

// generateLogoFilename produces a collision-free object name keeping the
// original extension. Extensionless uploads are dropped.
func generateLogoFilename(original string) string {
	if original == "" || !strings.Contains(original, ".") {
		return ""
	}

	parts := strings.Split(strings.ToLower(original), ".")
	return "logo_" + uuid.New().String() + "." + parts[len(parts)-1]
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	page := parseIntQuery(r, "page", 1)
	perPage := parseIntQuery(r, "per_page", 10)

	if page < 1 {
		core.BadRequest(w, "El parámetro 'page' debe ser mayor a 0")
		return
	}
	if perPage < 1 || perPage > 100 {
		core.BadRequest(w, "El parámetro 'per_page' debe estar entre 1 y 100")
		return
	}

	params := ListUsersParams{Page: page, PerPage: perPage}

	summaries, total, err := h.service.ListSummaries(r.Context(), params)
	if err != nil {
		core.DomainError(w, err)
		return
	}

	core.OK(w, map[string]any{
		"users":      summaries,
		"pagination": core.NewPagination(page, perPage, total),
	})
}

func (h *Handler) GetByID(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")

	u, err := h.service.GetByID(r.Context(), userID)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "Usuario no encontrado")
			return
		}
		core.DomainError(w, err)
		return
	}

	core.OK(w, ToUserResponse(u))
}

func (h *Handler) DeleteAll(w http.ResponseWriter, r *http.Request) {
	count, err := h.service.DeleteAll(r.Context())
	if err != nil {
		core.DomainError(w, err)
		return
	}

	core.OK(w, map[string]int{"deleted_count": count})
}

func (h *Handler) CreateAdminUser(w http.ResponseWriter, r *http.Request) {
	var req AdminCreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "El cuerpo de la petición JSON está vacío")
		return
	}

	created, err := h.service.CreateAdminUser(r.Context(), req)
	if err != nil {
		core.DomainError(w, err)
		return
	}

	core.Created(w, created)
}

func (h *Handler) Ping(w http.ResponseWriter, _ *http.Request) {
	core.OK(w, map[string]string{
		"service": "users",
		"status":  "healthy",
		"version": "1.0.0",
	})
}

func parseIntQuery(r *http.Request, key string, fallback int) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return fallback
	}

	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}

	return value
}
