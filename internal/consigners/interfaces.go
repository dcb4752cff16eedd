package consigners

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/slabtrack/slabtrack-backend/pkg/db/models"
)

// Repository is the persistence surface for consigners.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, consigner *models.Consigner) (*models.Consigner, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Consigner, error)
	FindDefault(ctx context.Context) (*models.Consigner, error)
	List(ctx context.Context, filters ListFilters) ([]models.Consigner, error)
	Update(ctx context.Context, id uuid.UUID, updates map[string]any) error
	ClearDefault(ctx context.Context, exceptID uuid.UUID) error
}
