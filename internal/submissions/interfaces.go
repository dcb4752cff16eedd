package submissions

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/slabtrack/slabtrack-backend/pkg/db/models"
	"github.com/slabtrack/slabtrack-backend/pkg/enums"
	"github.com/slabtrack/slabtrack-backend/pkg/pagination"
)

// Repository defines persistence operations for submissions and their items.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, submission *models.Submission) (*models.Submission, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Submission, error)
	FindItemsBySubmission(ctx context.Context, submissionID uuid.UUID) ([]models.SubmissionItem, error)
	// UpdateStatusGuarded applies updates only while the row still holds
	// fromStatus, returning false when a concurrent writer got there first.
	UpdateStatusGuarded(ctx context.Context, id uuid.UUID, fromStatus enums.SubmissionStatus, updates map[string]any) (bool, error)
	// ResolveItemGuarded applies result fields only while the item is still
	// pending, returning false otherwise.
	ResolveItemGuarded(ctx context.Context, itemID, submissionID uuid.UUID, updates map[string]any) (bool, error)
	CountPendingItems(ctx context.Context, submissionID uuid.UUID) (int64, error)
	List(ctx context.Context, params pagination.Params, filters ListFilters) (*List, error)
	CardExists(ctx context.Context, cardID uuid.UUID) (bool, error)
	// CollectibleKind resolves a standalone item reference to its kind
	// (memorabilia or collectible); exists is false for unknown ids.
	CollectibleKind(ctx context.Context, itemID uuid.UUID) (enums.ItemKind, bool, error)
	CompanyExists(ctx context.Context, companyID uuid.UUID) (bool, error)
	// ServiceLevelExists requires the level to belong to the given company.
	ServiceLevelExists(ctx context.Context, serviceLevelID, companyID uuid.UUID) (bool, error)
	// CountStalled groups open submissions that have not moved since the
	// cutoff by their current status.
	CountStalled(ctx context.Context, cutoff time.Time) ([]StalledCount, error)
}
