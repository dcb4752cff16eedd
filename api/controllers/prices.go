package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/slabtrack/slabtrack-backend/api/responses"
	"github.com/slabtrack/slabtrack-backend/api/validators"
	"github.com/slabtrack/slabtrack-backend/internal/prices"
	pkgerrors "github.com/slabtrack/slabtrack-backend/pkg/errors"
	"github.com/slabtrack/slabtrack-backend/pkg/logger"
)

type upsertPriceRequest struct {
	ConsignerID  uuid.UUID       `json:"consigner_id" validate:"required"`
	PlayerID     uuid.UUID       `json:"player_id" validate:"required"`
	PricePerCard decimal.Decimal `json:"price_per_card"`
	Notes        *string         `json:"notes,omitempty" validate:"omitempty,max=1000"`
}

type bulkUpsertRequest struct {
	Entries []upsertPriceRequest `json:"entries" validate:"required,min=1,max=500,dive"`
}

func (req upsertPriceRequest) toInput() prices.UpsertPriceInput {
	return prices.UpsertPriceInput{
		ConsignerID:  req.ConsignerID,
		PlayerID:     req.PlayerID,
		PricePerCard: req.PricePerCard,
		Notes:        req.Notes,
	}
}

// UpsertPrice handles POST /api/v1/prices.
func UpsertPrice(svc prices.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req upsertPriceRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		outcome, err := svc.UpsertPrice(r.Context(), req.toInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		status := http.StatusCreated
		if outcome.Replaced {
			status = http.StatusOK
		}
		responses.WriteSuccessStatus(w, status, outcome)
	}
}

// BulkUpsertPrices handles POST /api/v1/prices/bulk.
func BulkUpsertPrices(svc prices.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req bulkUpsertRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		entries := make([]prices.UpsertPriceInput, 0, len(req.Entries))
		for _, entry := range req.Entries {
			entries = append(entries, entry.toInput())
		}

		result, err := svc.BulkUpsert(r.Context(), entries)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

// DeactivatePrice handles DELETE /api/v1/prices/{priceID}.
func DeactivatePrice(svc prices.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		priceID, err := parseUUIDParam(r, "priceID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.DeactivatePrice(r.Context(), priceID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"entry_id": priceID, "active": false})
	}
}

// LookupPlayerPrice handles GET /api/v1/players/{playerID}/prices.
func LookupPlayerPrice(svc prices.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		playerID, err := parseUUIDParam(r, "playerID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		preferConsignerID, err := validators.ParseQueryUUID(r, "consigner_id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.LookupPlayerPrice(r.Context(), playerID, preferConsignerID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

// ConsignerPriceSummary handles GET /api/v1/consigners/{consignerID}/prices/summary.
func ConsignerPriceSummary(svc prices.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		consignerID, err := parseUUIDParam(r, "consignerID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		summary, err := svc.GetConsignerSummary(r.Context(), consignerID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, summary)
	}
}

func parseUUIDParam(r *http.Request, name string) (uuid.UUID, error) {
	raw := strings.TrimSpace(chi.URLParam(r, name))
	if raw == "" {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeValidation, name+" is required")
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid "+name)
	}
	return id, nil
}
