package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/slabtrack/slabtrack-backend/pkg/enums"
	"github.com/slabtrack/slabtrack-backend/pkg/types"
)

// Submission is a batch of items sent to a grading or authentication vendor.
// Status moves strictly forward through the lifecycle; stage dates are filled
// in as each advance happens and never rewritten.
type Submission struct {
	ID             uuid.UUID             `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Kind           enums.SubmissionKind  `gorm:"column:kind;type:submission_kind;not null"`
	CompanyID      uuid.UUID             `gorm:"column:company_id;type:uuid;not null"`
	ServiceLevelID *uuid.UUID            `gorm:"column:service_level_id;type:uuid"`
	Status         enums.SubmissionStatus `gorm:"column:status;type:submission_status;not null;default:'pending'"`

	DateSubmitted   types.Date  `gorm:"column:date_submitted;type:date;not null"`
	DateShipped     *types.Date `gorm:"column:date_shipped;type:date"`
	DateReceived    *types.Date `gorm:"column:date_received;type:date"`
	DateProcessed   *types.Date `gorm:"column:date_processed;type:date"`
	DateShippedBack *types.Date `gorm:"column:date_shipped_back;type:date"`
	DateReturned    *types.Date `gorm:"column:date_returned;type:date"`

	TrackingNumberOut  *string `gorm:"column:tracking_number_out"`
	TrackingNumberBack *string `gorm:"column:tracking_number_back"`

	TotalItems         int             `gorm:"column:total_items;not null"`
	TotalDeclaredValue decimal.Decimal `gorm:"column:total_declared_value;type:numeric(14,2);not null"`
	GradingFees        *decimal.Decimal `gorm:"column:grading_fees;type:numeric(12,2)"`
	ShippingCost       *decimal.Decimal `gorm:"column:shipping_cost;type:numeric(12,2)"`

	CancelReason *string    `gorm:"column:cancel_reason"`
	CancelledAt  *time.Time `gorm:"column:cancelled_at"`

	Company *GradingCompany  `gorm:"foreignKey:CompanyID"`
	Items   []SubmissionItem `gorm:"foreignKey:SubmissionID;constraint:OnDelete:CASCADE"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
