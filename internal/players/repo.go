package players

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/slabtrack/slabtrack-backend/pkg/db/models"
)

type repository struct {
	db *gorm.DB
}

// NewRepository builds a players repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, player *models.Player) (*models.Player, error) {
	if err := r.db.WithContext(ctx).Create(player).Error; err != nil {
		return nil, err
	}
	return player, nil
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Player, error) {
	var player models.Player
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&player).Error
	if err != nil {
		return nil, err
	}
	return &player, nil
}

func (r *repository) List(ctx context.Context, filters ListFilters) ([]models.Player, error) {
	query := r.db.WithContext(ctx).Model(&models.Player{})
	if filters.Sport != nil {
		query = query.Where("sport = ?", *filters.Sport)
	}
	if filters.Name != nil {
		query = query.Where("name LIKE ?", "%"+*filters.Name+"%")
	}

	var rows []models.Player
	if err := query.Order("name ASC").Order("id ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
