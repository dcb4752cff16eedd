package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// GradingCompany is an external grading or authentication vendor (PSA, BGS,
// SGC, JSA and the like).
type GradingCompany struct {
	ID            uuid.UUID      `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name          string         `gorm:"column:name;not null"`
	Website       *string        `gorm:"column:website"`
	ServiceLevels []ServiceLevel `gorm:"foreignKey:CompanyID;constraint:OnDelete:CASCADE"`
	CreatedAt     time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time      `gorm:"column:updated_at;autoUpdateTime"`
}

// ServiceLevel is a vendor's pricing tier, bounded by a maximum declared
// value per item.
type ServiceLevel struct {
	ID               uuid.UUID        `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	CompanyID        uuid.UUID        `gorm:"column:company_id;type:uuid;not null"`
	Name             string           `gorm:"column:name;not null"`
	MaxDeclaredValue *decimal.Decimal `gorm:"column:max_declared_value;type:numeric(12,2)"`
	BaseFee          decimal.Decimal  `gorm:"column:base_fee;type:numeric(12,2);not null"`
	CreatedAt        time.Time        `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt        time.Time        `gorm:"column:updated_at;autoUpdateTime"`
}
