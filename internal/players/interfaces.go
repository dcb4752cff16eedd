package players

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/slabtrack/slabtrack-backend/pkg/db/models"
)

// Repository is the persistence surface for players.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, player *models.Player) (*models.Player, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Player, error)
	List(ctx context.Context, filters ListFilters) ([]models.Player, error)
}
