package consigners

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/slabtrack/slabtrack-backend/pkg/db/models"
)

type repository struct {
	db *gorm.DB
}

// NewRepository builds a consigners repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, consigner *models.Consigner) (*models.Consigner, error) {
	if err := r.db.WithContext(ctx).Create(consigner).Error; err != nil {
		return nil, err
	}
	return consigner, nil
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Consigner, error) {
	var consigner models.Consigner
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&consigner).Error
	if err != nil {
		return nil, err
	}
	return &consigner, nil
}

func (r *repository) FindDefault(ctx context.Context) (*models.Consigner, error) {
	var consigner models.Consigner
	err := r.db.WithContext(ctx).Where("is_default = ?", true).First(&consigner).Error
	if err != nil {
		return nil, err
	}
	return &consigner, nil
}

func (r *repository) List(ctx context.Context, filters ListFilters) ([]models.Consigner, error) {
	query := r.db.WithContext(ctx).Model(&models.Consigner{})
	if filters.ActiveOnly {
		query = query.Where("active = ?", true)
	}

	var rows []models.Consigner
	if err := query.Order("name ASC").Order("id ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *repository) Update(ctx context.Context, id uuid.UUID, updates map[string]any) error {
	return r.db.WithContext(ctx).
		Model(&models.Consigner{}).
		Where("id = ?", id).
		Updates(updates).Error
}

func (r *repository) ClearDefault(ctx context.Context, exceptID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&models.Consigner{}).
		Where("is_default = ? AND id <> ?", true, exceptID).
		Update("is_default", false).Error
}
