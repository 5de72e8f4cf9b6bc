// AngelaMos | 2026
// handler.go

package application

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/carterperez-dev/internhub/internal/core"
	"github.com/carterperez-dev/internhub/internal/middleware"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts the ledger. applyLimit may be nil.
func (h *Handler) RegisterRoutes(
	r chi.Router,
	authenticator, adminOnly, applyLimit func(http.Handler) http.Handler,
) {
	r.Route("/applications", func(r chi.Router) {
		r.Use(authenticator)

		if applyLimit != nil {
			r.With(applyLimit).Post("/apply", h.Apply)
		} else {
			r.Post("/apply", h.Apply)
		}
		r.Get("/my", h.ListMine)
		r.Patch("/{id}/status", h.UpdateStatus)

		r.With(adminOnly).Get("/admin/all", h.ListAll)
	})
}

func (h *Handler) Apply(w http.ResponseWriter, r *http.Request) {
	var req ApplyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	a, err := h.service.Apply(r.Context(), middleware.GetUserID(r.Context()), req.CompanyID)
	if err != nil {
		switch {
		case errors.Is(err, ErrCompanyRequired):
			core.BadRequest(w, "Company ID is required")
		case errors.Is(err, core.ErrNotFound):
			core.NotFound(w, "Company")
		case errors.Is(err, core.ErrDuplicateKey):
			core.Conflict(w, "Application already exists")
		default:
			core.InternalServerError(w, err)
		}
		return
	}

	core.Created(w, a)
}

func (h *Handler) ListMine(w http.ResponseWriter, r *http.Request) {
	apps, err := h.service.ListMine(r.Context(), middleware.GetUserID(r.Context()))
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, apps)
}

func (h *Handler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req UpdateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	a, err := h.service.UpdateStatus(
		r.Context(),
		chi.URLParam(r, "id"),
		req.Status,
		middleware.GetUserID(r.Context()),
	)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidStatus):
			core.BadRequest(w, "Invalid status")
		case errors.Is(err, core.ErrNotFound):
			core.NotFound(w, "Application")
		case errors.Is(err, core.ErrForbidden):
			core.Forbidden(w, "Access denied")
		default:
			core.InternalServerError(w, err)
		}
		return
	}

	core.OK(w, a)
}

func (h *Handler) ListAll(w http.ResponseWriter, r *http.Request) {
	apps, err := h.service.ListAll(r.Context())
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, apps)
}
