package models

import (
	"time"

	"github.com/google/uuid"
)

// Consigner is a third party whose cards move through the shop. At most one
// consigner is flagged as the default; the flag is reassigned transactionally.
type Consigner struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name      string    `gorm:"column:name;not null"`
	Email     *string   `gorm:"column:email"`
	Phone     *string   `gorm:"column:phone"`
	Notes     *string   `gorm:"column:notes"`
	IsDefault bool      `gorm:"column:is_default;not null;default:false"`
	Active    bool      `gorm:"column:active;not null;default:true"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
