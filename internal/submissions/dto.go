package submissions

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/slabtrack/slabtrack-backend/pkg/enums"
	"github.com/slabtrack/slabtrack-backend/pkg/types"
)

// CreateItemInput references exactly one inventory card or one standalone
// collectible item.
type CreateItemInput struct {
	CardID        *uuid.UUID
	ItemID        *uuid.UUID
	DeclaredValue decimal.Decimal
}

// CreateInput carries everything needed to open a submission.
type CreateInput struct {
	Kind           enums.SubmissionKind
	CompanyID      uuid.UUID
	ServiceLevelID *uuid.UUID
	DateSubmitted  types.Date
	Items          []CreateItemInput
	GradingFees    *decimal.Decimal
	ShippingCost   *decimal.Decimal
}

// AdvanceInput moves a submission one stage forward (or cancels it via the
// dedicated Cancel operation, never through here).
type AdvanceInput struct {
	SubmissionID   uuid.UUID
	NewStatus      enums.SubmissionStatus
	StageDate      *types.Date
	TrackingNumber *string
}

// ItemResultInput is one write-once item resolution.
type ItemResultInput struct {
	ItemID        uuid.UUID
	Status        enums.SubmissionItemStatus
	GradeValue    *decimal.Decimal
	CertNumber    *string
	StickerNumber *string
	ResultNotes   *string
}

// SubmitResultsInput applies a batch of item results atomically.
type SubmitResultsInput struct {
	SubmissionID uuid.UUID
	Results      []ItemResultInput
	ResolvedAt   *time.Time
}

// CancelInput soft-cancels a submission.
type CancelInput struct {
	SubmissionID uuid.UUID
	Reason       *string
}

// ListFilters describe the inputs supported by the submissions list.
type ListFilters struct {
	Kind      *enums.SubmissionKind
	Status    *enums.SubmissionStatus
	CompanyID *uuid.UUID
	DateFrom  *time.Time
	DateTo    *time.Time
}

// Summary exposes the aggregated fields returned in the list.
type Summary struct {
	ID                 uuid.UUID              `json:"id"`
	Kind               enums.SubmissionKind   `json:"kind"`
	Status             enums.SubmissionStatus `json:"status"`
	StatusLabel        string                 `json:"status_label"`
	CompanyID          uuid.UUID              `json:"company_id"`
	CompanyName        string                 `json:"company_name,omitempty"`
	TotalItems         int                    `json:"total_items"`
	TotalDeclaredValue decimal.Decimal        `json:"total_declared_value"`
	DateSubmitted      types.Date             `json:"date_submitted"`
	CreatedAt          time.Time              `json:"created_at"`
}

// StalledCount is one status bucket of submissions that have not moved for a
// while.
type StalledCount struct {
	Status enums.SubmissionStatus `json:"status"`
	Count  int64                  `json:"count"`
}

// List wraps the paginated submissions plus the next page cursor.
type List struct {
	Submissions []Summary `json:"submissions"`
	NextCursor  string    `json:"next_cursor,omitempty"`
}
