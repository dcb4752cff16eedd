package prices

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/slabtrack/slabtrack-backend/pkg/db/models"
)

type repository struct {
	db *gorm.DB
}

// NewRepository builds a prices repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, entry *models.PriceEntry) (*models.PriceEntry, error) {
	if err := r.db.WithContext(ctx).Create(entry).Error; err != nil {
		return nil, err
	}
	return entry, nil
}

func (r *repository) FindActiveByPair(ctx context.Context, consignerID, playerID uuid.UUID) (*models.PriceEntry, error) {
	var entry models.PriceEntry
	err := r.db.WithContext(ctx).
		Where("consigner_id = ? AND player_id = ? AND active", consignerID, playerID).
		First(&entry).Error
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *repository) FindActiveByID(ctx context.Context, id uuid.UUID) (*models.PriceEntry, error) {
	var entry models.PriceEntry
	err := r.db.WithContext(ctx).
		Where("id = ? AND active", id).
		First(&entry).Error
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *repository) Update(ctx context.Context, id uuid.UUID, updates map[string]any) error {
	return r.db.WithContext(ctx).
		Model(&models.PriceEntry{}).
		Where("id = ?", id).
		Updates(updates).Error
}

func (r *repository) FindActiveByPlayer(ctx context.Context, playerID uuid.UUID) ([]models.PriceEntry, error) {
	var entries []models.PriceEntry
	err := r.db.WithContext(ctx).
		Preload("Consigner").
		Where("player_id = ? AND active", playerID).
		Order("price_per_card ASC").
		Order("created_at ASC").
		Order("id ASC").
		Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *repository) AggregateConsigner(ctx context.Context, consignerID uuid.UUID) (*ConsignerSummary, error) {
	var row struct {
		EntryCount int64
		AvgPrice   *decimal.Decimal
		MinPrice   *decimal.Decimal
		MaxPrice   *decimal.Decimal
	}
	err := r.db.WithContext(ctx).
		Model(&models.PriceEntry{}).
		Select("COUNT(*) AS entry_count, AVG(price_per_card) AS avg_price, MIN(price_per_card) AS min_price, MAX(price_per_card) AS max_price").
		Where("consigner_id = ? AND active", consignerID).
		Scan(&row).Error
	if err != nil {
		return nil, err
	}
	summary := &ConsignerSummary{
		ConsignerID: consignerID,
		EntryCount:  row.EntryCount,
	}
	summary.AvgPrice = roundCents(row.AvgPrice)
	summary.MinPrice = roundCents(row.MinPrice)
	summary.MaxPrice = roundCents(row.MaxPrice)
	return summary, nil
}

// roundCents normalizes aggregates like AVG back to two decimal places.
func roundCents(v *decimal.Decimal) *decimal.Decimal {
	if v == nil {
		return nil
	}
	d := v.Round(2)
	return &d
}
