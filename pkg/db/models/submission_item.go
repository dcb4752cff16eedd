package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/slabtrack/slabtrack-backend/pkg/enums"
)

// SubmissionItem is one card or standalone item inside a submission. Exactly
// one of CardID/ItemID is set. Result fields stay empty until the item's
// status leaves pending, and are written exactly once.
type SubmissionItem struct {
	ID           uuid.UUID                  `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	SubmissionID uuid.UUID                  `gorm:"column:submission_id;type:uuid;not null"`
	CardID       *uuid.UUID                 `gorm:"column:card_id;type:uuid"`
	ItemID       *uuid.UUID                 `gorm:"column:item_id;type:uuid"`
	Kind         enums.ItemKind             `gorm:"column:kind;type:item_kind;not null"`
	DeclaredValue decimal.Decimal           `gorm:"column:declared_value;type:numeric(12,2);not null"`
	Status       enums.SubmissionItemStatus `gorm:"column:status;type:submission_item_status;not null;default:'pending'"`

	GradeValue    *decimal.Decimal `gorm:"column:grade_value;type:numeric(4,1)"`
	CertNumber    *string          `gorm:"column:cert_number"`
	StickerNumber *string          `gorm:"column:sticker_number"`
	ResultNotes   *string          `gorm:"column:result_notes"`
	ResolvedAt    *time.Time       `gorm:"column:resolved_at"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
