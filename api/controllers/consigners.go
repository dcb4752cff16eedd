package controllers

import (
	"net/http"
	"strings"

	"github.com/slabtrack/slabtrack-backend/api/responses"
	"github.com/slabtrack/slabtrack-backend/api/validators"
	"github.com/slabtrack/slabtrack-backend/internal/consigners"
	"github.com/slabtrack/slabtrack-backend/pkg/logger"
)

type createConsignerRequest struct {
	Name      string  `json:"name" validate:"required,max=200"`
	Email     *string `json:"email,omitempty" validate:"omitempty,email,max=320"`
	Phone     *string `json:"phone,omitempty" validate:"omitempty,max=40"`
	Notes     *string `json:"notes,omitempty" validate:"omitempty,max=2000"`
	IsDefault bool    `json:"is_default"`
}

type updateConsignerRequest struct {
	Name   *string `json:"name,omitempty" validate:"omitempty,max=200"`
	Email  *string `json:"email,omitempty" validate:"omitempty,email,max=320"`
	Phone  *string `json:"phone,omitempty" validate:"omitempty,max=40"`
	Notes  *string `json:"notes,omitempty" validate:"omitempty,max=2000"`
	Active *bool   `json:"active,omitempty"`
}

// CreateConsigner handles POST /api/v1/consigners.
func CreateConsigner(svc consigners.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createConsignerRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		consigner, err := svc.CreateConsigner(r.Context(), consigners.CreateInput{
			Name:      validators.SanitizeString(req.Name, 200),
			Email:     req.Email,
			Phone:     req.Phone,
			Notes:     req.Notes,
			IsDefault: req.IsDefault,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, consigner)
	}
}

// UpdateConsigner handles PUT /api/v1/consigners/{consignerID}.
func UpdateConsigner(svc consigners.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		consignerID, err := parseUUIDParam(r, "consignerID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var req updateConsignerRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		consigner, err := svc.UpdateConsigner(r.Context(), consignerID, consigners.UpdateInput{
			Name:   req.Name,
			Email:  req.Email,
			Phone:  req.Phone,
			Notes:  req.Notes,
			Active: req.Active,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, consigner)
	}
}

// SetDefaultConsigner handles PUT /api/v1/consigners/{consignerID}/default.
func SetDefaultConsigner(svc consigners.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		consignerID, err := parseUUIDParam(r, "consignerID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		consigner, err := svc.SetDefault(r.Context(), consignerID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, consigner)
	}
}

// GetConsigner handles GET /api/v1/consigners/{consignerID}.
func GetConsigner(svc consigners.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		consignerID, err := parseUUIDParam(r, "consignerID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		consigner, err := svc.Get(r.Context(), consignerID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, consigner)
	}
}

// ListConsigners handles GET /api/v1/consigners.
func ListConsigners(svc consigners.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filters := consigners.ListFilters{
			ActiveOnly: strings.EqualFold(r.URL.Query().Get("active_only"), "true"),
		}

		list, err := svc.ListConsigners(r.Context(), filters)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"consigners": list})
	}
}
