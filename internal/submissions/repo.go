package submissions

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/slabtrack/slabtrack-backend/pkg/db/models"
	"github.com/slabtrack/slabtrack-backend/pkg/enums"
	"github.com/slabtrack/slabtrack-backend/pkg/pagination"
)

type repository struct {
	db *gorm.DB
}

// NewRepository builds a submissions repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, submission *models.Submission) (*models.Submission, error) {
	if err := r.db.WithContext(ctx).Create(submission).Error; err != nil {
		return nil, err
	}
	return submission, nil
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Submission, error) {
	var submission models.Submission
	err := r.db.WithContext(ctx).
		Preload("Items").
		Preload("Company").
		Where("id = ?", id).
		First(&submission).Error
	if err != nil {
		return nil, err
	}
	return &submission, nil
}

func (r *repository) FindItemsBySubmission(ctx context.Context, submissionID uuid.UUID) ([]models.SubmissionItem, error) {
	var items []models.SubmissionItem
	err := r.db.WithContext(ctx).
		Where("submission_id = ?", submissionID).
		Order("created_at ASC").
		Order("id ASC").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repository) UpdateStatusGuarded(ctx context.Context, id uuid.UUID, fromStatus enums.SubmissionStatus, updates map[string]any) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&models.Submission{}).
		Where("id = ? AND status = ?", id, fromStatus).
		Updates(updates)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *repository) ResolveItemGuarded(ctx context.Context, itemID, submissionID uuid.UUID, updates map[string]any) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&models.SubmissionItem{}).
		Where("id = ? AND submission_id = ? AND status = ?", itemID, submissionID, enums.SubmissionItemStatusPending).
		Updates(updates)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *repository) CountPendingItems(ctx context.Context, submissionID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.SubmissionItem{}).
		Where("submission_id = ? AND status = ?", submissionID, enums.SubmissionItemStatusPending).
		Count(&count).Error
	return count, err
}

func (r *repository) List(ctx context.Context, params pagination.Params, filters ListFilters) (*List, error) {
	limit := pagination.LimitWithBuffer(params.Limit)
	normalized := pagination.NormalizeLimit(params.Limit)

	cursor, err := pagination.ParseCursor(params.Cursor)
	if err != nil {
		return nil, err
	}

	query := r.db.WithContext(ctx).Model(&models.Submission{}).Preload("Company")
	if filters.Kind != nil {
		query = query.Where("kind = ?", *filters.Kind)
	}
	if filters.Status != nil {
		query = query.Where("status = ?", *filters.Status)
	}
	if filters.CompanyID != nil {
		query = query.Where("company_id = ?", *filters.CompanyID)
	}
	if filters.DateFrom != nil {
		query = query.Where("created_at >= ?", *filters.DateFrom)
	}
	if filters.DateTo != nil {
		query = query.Where("created_at <= ?", *filters.DateTo)
	}
	if cursor != nil {
		query = query.Where("(created_at, id) < (?, ?)", cursor.CreatedAt, cursor.ID)
	}

	var rows []models.Submission
	if err := query.Order("created_at DESC, id DESC").Limit(limit).Find(&rows).Error; err != nil {
		return nil, err
	}

	list := &List{Submissions: make([]Summary, 0, len(rows))}
	if len(rows) > normalized {
		next := rows[normalized]
		rows = rows[:normalized]
		list.NextCursor = pagination.EncodeCursor(pagination.Cursor{CreatedAt: next.CreatedAt, ID: next.ID})
	}
	for _, row := range rows {
		summary := Summary{
			ID:                 row.ID,
			Kind:               row.Kind,
			Status:             row.Status,
			StatusLabel:        row.Status.DisplayLabel(row.Kind),
			CompanyID:          row.CompanyID,
			TotalItems:         row.TotalItems,
			TotalDeclaredValue: row.TotalDeclaredValue,
			DateSubmitted:      row.DateSubmitted,
			CreatedAt:          row.CreatedAt,
		}
		if row.Company != nil {
			summary.CompanyName = row.Company.Name
		}
		list.Submissions = append(list.Submissions, summary)
	}
	return list, nil
}

func (r *repository) CardExists(ctx context.Context, cardID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.InventoryCard{}).
		Where("id = ?", cardID).
		Count(&count).Error
	return count > 0, err
}

func (r *repository) CollectibleKind(ctx context.Context, itemID uuid.UUID) (enums.ItemKind, bool, error) {
	var item models.CollectibleItem
	err := r.db.WithContext(ctx).
		Select("kind").
		Where("id = ?", itemID).
		First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return item.Kind, true, nil
}

func (r *repository) CompanyExists(ctx context.Context, companyID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.GradingCompany{}).
		Where("id = ?", companyID).
		Count(&count).Error
	return count > 0, err
}

func (r *repository) ServiceLevelExists(ctx context.Context, serviceLevelID, companyID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.ServiceLevel{}).
		Where("id = ? AND company_id = ?", serviceLevelID, companyID).
		Count(&count).Error
	return count > 0, err
}

func (r *repository) CountStalled(ctx context.Context, cutoff time.Time) ([]StalledCount, error) {
	var rows []StalledCount
	err := r.db.WithContext(ctx).
		Model(&models.Submission{}).
		Select("status, COUNT(*) AS count").
		Where("status NOT IN ?", []enums.SubmissionStatus{
			enums.SubmissionStatusReturned,
			enums.SubmissionStatusCancelled,
		}).
		Where("updated_at < ?", cutoff).
		Group("status").
		Order("status ASC").
		Scan(&rows).Error
	return rows, err
}
