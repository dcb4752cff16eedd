package prices

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/slabtrack/slabtrack-backend/pkg/db/models"
)

// Repository defines persistence operations for price entries.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, entry *models.PriceEntry) (*models.PriceEntry, error)
	FindActiveByPair(ctx context.Context, consignerID, playerID uuid.UUID) (*models.PriceEntry, error)
	FindActiveByID(ctx context.Context, id uuid.UUID) (*models.PriceEntry, error)
	Update(ctx context.Context, id uuid.UUID, updates map[string]any) error
	FindActiveByPlayer(ctx context.Context, playerID uuid.UUID) ([]models.PriceEntry, error)
	AggregateConsigner(ctx context.Context, consignerID uuid.UUID) (*ConsignerSummary, error)
}
