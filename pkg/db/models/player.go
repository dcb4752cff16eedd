package models

import (
	"time"

	"github.com/google/uuid"
)

// Player is the athlete a card depicts. Price entries reference players but
// never own them.
type Player struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name      string    `gorm:"column:name;not null"`
	Sport     *string   `gorm:"column:sport"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
