package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/slabtrack/slabtrack-backend/pkg/enums"
)

// CollectibleItem is a standalone memorabilia or collectible piece tracked
// outside card inventory, the unit an authentication submission item
// references.
type CollectibleItem struct {
	ID          uuid.UUID      `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Kind        enums.ItemKind `gorm:"column:kind;type:item_kind;not null;default:'memorabilia'"`
	ConsignerID *uuid.UUID     `gorm:"column:consigner_id;type:uuid"`
	Description string         `gorm:"column:description;not null"`
	Signer      *string        `gorm:"column:signer"`
	CreatedAt   time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time      `gorm:"column:updated_at;autoUpdateTime"`
}
