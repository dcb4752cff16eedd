package models

import (
	"time"

	"github.com/google/uuid"
)

// InventoryCard is a single card in inventory, the unit a grading submission
// item references.
type InventoryCard struct {
	ID          uuid.UUID  `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	PlayerID    *uuid.UUID `gorm:"column:player_id;type:uuid"`
	ConsignerID *uuid.UUID `gorm:"column:consigner_id;type:uuid"`
	Description string     `gorm:"column:description;not null"`
	Year        *int       `gorm:"column:year"`
	SetName     *string    `gorm:"column:set_name"`
	CardNumber  *string    `gorm:"column:card_number"`
	Parallel    *string    `gorm:"column:parallel"`
	IsRookie    bool       `gorm:"column:is_rookie;not null;default:false"`
	CreatedAt   time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}
