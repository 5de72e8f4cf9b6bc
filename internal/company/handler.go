// AngelaMos | 2026
// handler.go

package company

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/carterperez-dev/internhub/internal/core"
)

type Handler struct {
	service   *Service
	validator *validator.Validate
}

func NewHandler(service *Service) *Handler {
	return &Handler{
		service:   service,
		validator: core.NewValidator(),
	}
}

func (h *Handler) RegisterRoutes(
	r chi.Router,
	authenticator, adminOnly func(http.Handler) http.Handler,
) {
	r.Route("/companies", func(r chi.Router) {
		r.Get("/", h.List)
		r.Get("/{id}", h.Get)

		r.Group(func(r chi.Router) {
			r.Use(authenticator)
			r.Use(adminOnly)

			r.Post("/", h.Create)
			r.Delete("/{id}", h.Delete)
			r.Patch("/{id}/toggle", h.Toggle)
		})
	})
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	companies, err := h.service.List(r.Context())
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, companies)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	c, err := h.service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}

	core.OK(w, c)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateCompanyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	c, err := h.service.Create(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}

	core.Created(w, c)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}

	core.Message(w, http.StatusOK, "Company deleted successfully")
}

func (h *Handler) Toggle(w http.ResponseWriter, r *http.Request) {
	c, err := h.service.ToggleActive(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}

	core.OK(w, c)
}

func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, core.ErrNotFound):
		core.NotFound(w, "Company")
	case errors.Is(err, ErrInvalidDeadline):
		core.BadRequest(w, "deadline must be RFC 3339 or YYYY-MM-DD")
	case errors.Is(err, ErrInvalidInternshipType):
		core.BadRequest(w, "internshipType must be one of Remote, Onsite, Hybrid")
	case errors.Is(err, core.ErrInvalidInput):
		core.BadRequest(w, "Invalid input")
	default:
		core.InternalServerError(w, err)
	}
}
