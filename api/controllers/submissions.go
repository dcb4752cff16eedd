package controllers

import (
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/slabtrack/slabtrack-backend/api/responses"
	"github.com/slabtrack/slabtrack-backend/api/validators"
	"github.com/slabtrack/slabtrack-backend/internal/submissions"
	"github.com/slabtrack/slabtrack-backend/pkg/enums"
	pkgerrors "github.com/slabtrack/slabtrack-backend/pkg/errors"
	"github.com/slabtrack/slabtrack-backend/pkg/logger"
	"github.com/slabtrack/slabtrack-backend/pkg/pagination"
	"github.com/slabtrack/slabtrack-backend/pkg/types"
)

type createSubmissionItemRequest struct {
	CardID        *uuid.UUID      `json:"card_id,omitempty"`
	ItemID        *uuid.UUID      `json:"item_id,omitempty"`
	DeclaredValue decimal.Decimal `json:"declared_value"`
}

type createSubmissionRequest struct {
	Kind           string                        `json:"kind" validate:"required,oneof=grading authentication"`
	CompanyID      uuid.UUID                     `json:"company_id" validate:"required"`
	ServiceLevelID *uuid.UUID                    `json:"service_level_id,omitempty"`
	DateSubmitted  *types.Date                   `json:"date_submitted,omitempty"`
	Items          []createSubmissionItemRequest `json:"items" validate:"required,min=1,max=500"`
	GradingFees    *decimal.Decimal              `json:"grading_fees,omitempty"`
	ShippingCost   *decimal.Decimal              `json:"shipping_cost,omitempty"`
}

type advanceStatusRequest struct {
	Status         string      `json:"status" validate:"required"`
	StageDate      *types.Date `json:"stage_date,omitempty"`
	TrackingNumber *string     `json:"tracking_number,omitempty" validate:"omitempty,max=120"`
}

type itemResultRequest struct {
	ItemID        uuid.UUID        `json:"item_id" validate:"required"`
	Status        string           `json:"status" validate:"required"`
	GradeValue    *decimal.Decimal `json:"grade_value,omitempty"`
	CertNumber    *string          `json:"cert_number,omitempty" validate:"omitempty,max=120"`
	StickerNumber *string          `json:"sticker_number,omitempty" validate:"omitempty,max=120"`
	ResultNotes   *string          `json:"result_notes,omitempty" validate:"omitempty,max=2000"`
}

type submitResultsRequest struct {
	Results []itemResultRequest `json:"results" validate:"required,min=1,max=500,dive"`
}

type cancelSubmissionRequest struct {
	Reason *string `json:"reason,omitempty" validate:"omitempty,max=1000"`
}

// CreateSubmission handles POST /api/v1/submissions.
func CreateSubmission(svc submissions.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createSubmissionRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		kind, err := enums.ParseSubmissionKind(req.Kind)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid submission kind"))
			return
		}

		input := submissions.CreateInput{
			Kind:           kind,
			CompanyID:      req.CompanyID,
			ServiceLevelID: req.ServiceLevelID,
			GradingFees:    req.GradingFees,
			ShippingCost:   req.ShippingCost,
		}
		if req.DateSubmitted != nil {
			input.DateSubmitted = *req.DateSubmitted
		}
		for _, item := range req.Items {
			input.Items = append(input.Items, submissions.CreateItemInput{
				CardID:        item.CardID,
				ItemID:        item.ItemID,
				DeclaredValue: item.DeclaredValue,
			})
		}

		submission, err := svc.Create(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, submission)
	}
}

// AdvanceSubmissionStatus handles POST /api/v1/submissions/{submissionID}/status.
func AdvanceSubmissionStatus(svc submissions.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		submissionID, err := parseUUIDParam(r, "submissionID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var req advanceStatusRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		status, err := enums.ParseSubmissionStatus(req.Status)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid status"))
			return
		}

		submission, err := svc.AdvanceStatus(r.Context(), submissions.AdvanceInput{
			SubmissionID:   submissionID,
			NewStatus:      status,
			StageDate:      req.StageDate,
			TrackingNumber: req.TrackingNumber,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, submission)
	}
}

// SubmitSubmissionResults handles POST /api/v1/submissions/{submissionID}/results.
func SubmitSubmissionResults(svc submissions.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		submissionID, err := parseUUIDParam(r, "submissionID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var req submitResultsRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input := submissions.SubmitResultsInput{SubmissionID: submissionID}
		for i, result := range req.Results {
			status, err := enums.ParseSubmissionItemStatus(result.Status)
			if err != nil {
				responses.WriteError(r.Context(), logg, w,
					pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid item status").
						WithDetails(map[string]any{"index": i}))
				return
			}
			input.Results = append(input.Results, submissions.ItemResultInput{
				ItemID:        result.ItemID,
				Status:        status,
				GradeValue:    result.GradeValue,
				CertNumber:    result.CertNumber,
				StickerNumber: result.StickerNumber,
				ResultNotes:   result.ResultNotes,
			})
		}

		submission, err := svc.SubmitResults(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, submission)
	}
}

// CancelSubmission handles POST /api/v1/submissions/{submissionID}/cancel.
func CancelSubmission(svc submissions.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		submissionID, err := parseUUIDParam(r, "submissionID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var req cancelSubmissionRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		submission, err := svc.Cancel(r.Context(), submissions.CancelInput{
			SubmissionID: submissionID,
			Reason:       req.Reason,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, submission)
	}
}

// GetSubmission handles GET /api/v1/submissions/{submissionID}.
func GetSubmission(svc submissions.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		submissionID, err := parseUUIDParam(r, "submissionID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		submission, err := svc.Get(r.Context(), submissionID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, submission)
	}
}

// ListSubmissions handles GET /api/v1/submissions.
func ListSubmissions(svc submissions.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit, err := validators.ParseQueryInt(r, "limit", pagination.DefaultLimit, 1, pagination.MaxLimit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		params := pagination.Params{
			Limit:  limit,
			Cursor: strings.TrimSpace(r.URL.Query().Get("cursor")),
		}

		filters, err := buildSubmissionFilters(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		list, err := svc.ListSubmissions(r.Context(), params, filters)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, list)
	}
}

func buildSubmissionFilters(r *http.Request) (submissions.ListFilters, error) {
	var filters submissions.ListFilters

	if raw := strings.TrimSpace(r.URL.Query().Get("kind")); raw != "" {
		kind, err := enums.ParseSubmissionKind(raw)
		if err != nil {
			return filters, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid kind filter")
		}
		filters.Kind = &kind
	}
	if raw := strings.TrimSpace(r.URL.Query().Get("status")); raw != "" {
		status, err := enums.ParseSubmissionStatus(raw)
		if err != nil {
			return filters, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid status filter")
		}
		filters.Status = &status
	}

	companyID, err := validators.ParseQueryUUID(r, "company_id")
	if err != nil {
		return filters, err
	}
	filters.CompanyID = companyID

	if raw := strings.TrimSpace(r.URL.Query().Get("date_from")); raw != "" {
		from, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return filters, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid date_from filter")
		}
		filters.DateFrom = &from
	}
	if raw := strings.TrimSpace(r.URL.Query().Get("date_to")); raw != "" {
		to, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return filters, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid date_to filter")
		}
		to = to.Add(24*time.Hour - time.Nanosecond)
		filters.DateTo = &to
	}

	return filters, nil
}
