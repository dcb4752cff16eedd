package outbox

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/slabtrack/slabtrack-backend/pkg/db/models"
	"github.com/slabtrack/slabtrack-backend/pkg/enums"
	"github.com/slabtrack/slabtrack-backend/pkg/outbox/payloads"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.Migrator().DropTable(&models.OutboxEvent{}))
	require.NoError(t, db.AutoMigrate(&models.OutboxEvent{}))
	return db
}

func TestEmitStoresEnvelopeInsideTx(t *testing.T) {
	db := newTestDB(t)
	repo := NewRepository(db)
	svc := NewService(repo, nil)

	aggregateID := uuid.New()
	err := db.Transaction(func(tx *gorm.DB) error {
		return svc.Emit(context.Background(), tx, DomainEvent{
			EventType:     enums.OutboxEventPriceDeactivated,
			AggregateType: enums.OutboxAggregatePriceEntry,
			AggregateID:   aggregateID,
			Data: payloads.PriceDeactivatedEvent{
				PriceEntryID: aggregateID,
				ConsignerID:  uuid.New(),
				PlayerID:     uuid.New(),
			},
		})
	})
	require.NoError(t, err)

	var row models.OutboxEvent
	require.NoError(t, db.First(&row).Error)
	require.Equal(t, enums.OutboxEventPriceDeactivated, row.EventType)
	require.Equal(t, aggregateID, row.AggregateID)
	require.Nil(t, row.PublishedAt)

	var envelope PayloadEnvelope
	require.NoError(t, json.Unmarshal(row.Payload, &envelope))
	require.Equal(t, 1, envelope.Version)
	require.NotEmpty(t, envelope.EventID)
	require.False(t, envelope.OccurredAt.IsZero())
}

func TestEmitRollsBackWithAggregate(t *testing.T) {
	db := newTestDB(t)
	repo := NewRepository(db)
	svc := NewService(repo, nil)

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := svc.Emit(context.Background(), tx, DomainEvent{
			EventType:     enums.OutboxEventSubmissionCreated,
			AggregateType: enums.OutboxAggregateSubmission,
			AggregateID:   uuid.New(),
			Data:          map[string]any{"total_items": 3},
		}); err != nil {
			return err
		}
		return gorm.ErrInvalidData
	})
	require.Error(t, err)

	var count int64
	require.NoError(t, db.Model(&models.OutboxEvent{}).Count(&count).Error)
	require.Zero(t, count)
}

func TestEmitRequiresTransaction(t *testing.T) {
	svc := NewService(NewRepository(nil), nil)
	err := svc.Emit(context.Background(), nil, DomainEvent{})
	require.Error(t, err)
}

func TestMarkPublishedAndFailed(t *testing.T) {
	db := newTestDB(t)
	repo := NewRepository(db)

	event := models.OutboxEvent{
		ID:            uuid.New(),
		EventType:     enums.OutboxEventSubmissionCancelled,
		AggregateType: enums.OutboxAggregateSubmission,
		AggregateID:   uuid.New(),
		Payload:       json.RawMessage(`{}`),
	}
	require.NoError(t, db.Create(&event).Error)

	rows, err := repo.FetchUnpublished(10)
	require.NoError(t, err)
	require.Len(t, rows, 1)

	require.NoError(t, repo.MarkFailed(event.ID, gorm.ErrInvalidDB))
	var failed models.OutboxEvent
	require.NoError(t, db.First(&failed, "id = ?", event.ID).Error)
	require.Equal(t, 1, failed.AttemptCount)
	require.NotNil(t, failed.LastError)

	require.NoError(t, repo.MarkPublished(event.ID))
	rows, err = repo.FetchUnpublished(10)
	require.NoError(t, err)
	require.Empty(t, rows)
}
