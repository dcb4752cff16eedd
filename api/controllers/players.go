package controllers

import (
	"net/http"
	"strings"

	"github.com/slabtrack/slabtrack-backend/api/responses"
	"github.com/slabtrack/slabtrack-backend/api/validators"
	"github.com/slabtrack/slabtrack-backend/internal/players"
	"github.com/slabtrack/slabtrack-backend/pkg/logger"
)

type createPlayerRequest struct {
	Name  string  `json:"name" validate:"required,max=200"`
	Sport *string `json:"sport,omitempty" validate:"omitempty,max=60"`
}

// CreatePlayer handles POST /api/v1/players.
func CreatePlayer(svc players.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createPlayerRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		player, err := svc.CreatePlayer(r.Context(), players.CreateInput{
			Name:  validators.SanitizeString(req.Name, 200),
			Sport: req.Sport,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, player)
	}
}

// GetPlayer handles GET /api/v1/players/{playerID}.
func GetPlayer(svc players.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		playerID, err := parseUUIDParam(r, "playerID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		player, err := svc.Get(r.Context(), playerID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, player)
	}
}

// ListPlayers handles GET /api/v1/players.
func ListPlayers(svc players.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var filters players.ListFilters
		if raw := strings.TrimSpace(r.URL.Query().Get("sport")); raw != "" {
			filters.Sport = &raw
		}
		if raw := strings.TrimSpace(r.URL.Query().Get("name")); raw != "" {
			filters.Name = &raw
		}

		list, err := svc.ListPlayers(r.Context(), filters)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"players": list})
	}
}
