package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PriceEntry records the per-card price a consigner pays for a player. Rows
// are soft-deleted via the active flag so historical prices stay auditable;
// at most one active row exists per (consigner, player) pair.
type PriceEntry struct {
	ID           uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	ConsignerID  uuid.UUID       `gorm:"column:consigner_id;type:uuid;not null"`
	PlayerID     uuid.UUID       `gorm:"column:player_id;type:uuid;not null"`
	PricePerCard decimal.Decimal `gorm:"column:price_per_card;type:numeric(12,2);not null"`
	Notes        *string         `gorm:"column:notes"`
	Active       bool            `gorm:"column:active;not null;default:true"`
	Consigner    *Consigner      `gorm:"foreignKey:ConsignerID"`
	Player       *Player         `gorm:"foreignKey:PlayerID"`
	CreatedAt    time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}
