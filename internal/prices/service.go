package prices

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/slabtrack/slabtrack-backend/pkg/db"
	"github.com/slabtrack/slabtrack-backend/pkg/db/models"
	"github.com/slabtrack/slabtrack-backend/pkg/enums"
	pkgerrors "github.com/slabtrack/slabtrack-backend/pkg/errors"
	"github.com/slabtrack/slabtrack-backend/pkg/outbox"
	"github.com/slabtrack/slabtrack-backend/pkg/outbox/payloads"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type outboxPublisher interface {
	Emit(ctx context.Context, tx *gorm.DB, event outbox.DomainEvent) error
}

// Service resolves consigner prices per player.
type Service interface {
	UpsertPrice(ctx context.Context, input UpsertPriceInput) (*UpsertOutcome, error)
	BulkUpsert(ctx context.Context, entries []UpsertPriceInput) (*BulkUpsertResult, error)
	DeactivatePrice(ctx context.Context, priceID uuid.UUID) error
	LookupPlayerPrice(ctx context.Context, playerID uuid.UUID, preferConsignerID *uuid.UUID) (*LookupResult, error)
	GetConsignerSummary(ctx context.Context, consignerID uuid.UUID) (*ConsignerSummary, error)
}

type service struct {
	repo   Repository
	tx     txRunner
	outbox outboxPublisher
}

// NewService builds a price service with the required dependencies.
func NewService(repo Repository, tx txRunner, outbox outboxPublisher) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("prices repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if outbox == nil {
		return nil, fmt.Errorf("outbox publisher required")
	}
	return &service{repo: repo, tx: tx, outbox: outbox}, nil
}

func validateUpsertInput(input UpsertPriceInput) error {
	if input.ConsignerID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "consigner id required")
	}
	if input.PlayerID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "player id required")
	}
	if input.PricePerCard.IsNegative() {
		return pkgerrors.New(pkgerrors.CodeValidation, "price per card must be >= 0")
	}
	return nil
}

func (s *service) UpsertPrice(ctx context.Context, input UpsertPriceInput) (*UpsertOutcome, error) {
	if err := validateUpsertInput(input); err != nil {
		return nil, err
	}

	var outcome *UpsertOutcome
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		existing, err := repo.FindActiveByPair(ctx, input.ConsignerID, input.PlayerID)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load active price entry")
		}

		var out UpsertOutcome
		if existing != nil {
			updates := map[string]any{
				"price_per_card": input.PricePerCard,
				"notes":          input.Notes,
			}
			if err := repo.Update(ctx, existing.ID, updates); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update price entry")
			}
			out = UpsertOutcome{
				EntryID:      existing.ID,
				ConsignerID:  input.ConsignerID,
				PlayerID:     input.PlayerID,
				PricePerCard: input.PricePerCard,
				Notes:        input.Notes,
				Replaced:     true,
			}
		} else {
			entry := &models.PriceEntry{
				ID:           uuid.New(),
				ConsignerID:  input.ConsignerID,
				PlayerID:     input.PlayerID,
				PricePerCard: input.PricePerCard,
				Notes:        input.Notes,
				Active:       true,
			}
			if _, err := repo.Create(ctx, entry); err != nil {
				// a concurrent upsert for the same pair beat us to the
				// partial unique index
				if db.IsUniqueViolation(err, "ux_price_entries_consigner_player_active") {
					return pkgerrors.Wrap(pkgerrors.CodeConflict, err, "price entry already active for consigner and player")
				}
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create price entry")
			}
			out = UpsertOutcome{
				EntryID:      entry.ID,
				ConsignerID:  input.ConsignerID,
				PlayerID:     input.PlayerID,
				PricePerCard: input.PricePerCard,
				Notes:        input.Notes,
				Replaced:     false,
			}
		}

		event := outbox.DomainEvent{
			EventType:     enums.OutboxEventPriceUpserted,
			AggregateType: enums.OutboxAggregatePriceEntry,
			AggregateID:   out.EntryID,
			Version:       1,
			Data: payloads.PriceUpsertedEvent{
				PriceEntryID: out.EntryID,
				ConsignerID:  input.ConsignerID,
				PlayerID:     input.PlayerID,
				PricePerCard: input.PricePerCard,
				Replaced:     out.Replaced,
			},
		}
		if err := s.outbox.Emit(ctx, tx, event); err != nil {
			return err
		}

		outcome = &out
		return nil
	})
	if err != nil {
		return nil, err
	}
	return outcome, nil
}

// BulkUpsert applies each entry independently. A failed entry is recorded and
// skipped; entries already applied stay applied.
func (s *service) BulkUpsert(ctx context.Context, entries []UpsertPriceInput) (*BulkUpsertResult, error) {
	if len(entries) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "at least one entry required")
	}

	result := &BulkUpsertResult{Failed: []BulkUpsertFailure{}}
	for i, entry := range entries {
		outcome, err := s.UpsertPrice(ctx, entry)
		if err != nil {
			result.Failed = append(result.Failed, BulkUpsertFailure{
				Index: i,
				Input: entry,
				Error: err.Error(),
			})
			continue
		}
		if outcome.Replaced {
			result.Updated++
		} else {
			result.Created++
		}
	}
	return result, nil
}

// DeactivatePrice retires an active entry. Deactivating an unknown or already
// inactive id fails with not found; re-deactivation is not a silent no-op.
func (s *service) DeactivatePrice(ctx context.Context, priceID uuid.UUID) error {
	if priceID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "price id required")
	}

	return s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		entry, err := repo.FindActiveByID(ctx, priceID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "active price entry not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load price entry")
		}

		if err := repo.Update(ctx, entry.ID, map[string]any{"active": false}); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "deactivate price entry")
		}

		event := outbox.DomainEvent{
			EventType:     enums.OutboxEventPriceDeactivated,
			AggregateType: enums.OutboxAggregatePriceEntry,
			AggregateID:   entry.ID,
			Version:       1,
			Data: payloads.PriceDeactivatedEvent{
				PriceEntryID: entry.ID,
				ConsignerID:  entry.ConsignerID,
				PlayerID:     entry.PlayerID,
			},
		}
		return s.outbox.Emit(ctx, tx, event)
	})
}

// LookupPlayerPrice gathers the player's active entries. Best price is the
// minimum, ties resolved to the earliest-created entry. A player with no
// active entries yields an empty list, not an error.
func (s *service) LookupPlayerPrice(ctx context.Context, playerID uuid.UUID, preferConsignerID *uuid.UUID) (*LookupResult, error) {
	if playerID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "player id required")
	}

	entries, err := s.repo.FindActiveByPlayer(ctx, playerID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load player prices")
	}

	result := &LookupResult{
		PlayerID:  playerID,
		AllPrices: make([]PriceQuote, 0, len(entries)),
	}
	for _, entry := range entries {
		quote := PriceQuote{
			EntryID:      entry.ID,
			ConsignerID:  entry.ConsignerID,
			PricePerCard: entry.PricePerCard,
			Notes:        entry.Notes,
			CreatedAt:    entry.CreatedAt,
		}
		if entry.Consigner != nil {
			quote.ConsignerName = entry.Consigner.Name
		}
		result.AllPrices = append(result.AllPrices, quote)
	}

	// Rows arrive ordered by (price, created_at, id), so the first is best.
	if len(result.AllPrices) > 0 {
		best := result.AllPrices[0]
		result.BestPrice = &best.PricePerCard
		result.BestConsignerID = &best.ConsignerID
		result.BestConsignerName = &best.ConsignerName
	}

	if preferConsignerID != nil && *preferConsignerID != uuid.Nil {
		for i := range result.AllPrices {
			if result.AllPrices[i].ConsignerID == *preferConsignerID {
				selected := result.AllPrices[i]
				result.Selected = &selected
				break
			}
		}
	}

	return result, nil
}

// GetConsignerSummary aggregates over the consigner's active entries only.
// Unknown consigners report zero entries rather than erroring.
func (s *service) GetConsignerSummary(ctx context.Context, consignerID uuid.UUID) (*ConsignerSummary, error) {
	if consignerID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "consigner id required")
	}

	summary, err := s.repo.AggregateConsigner(ctx, consignerID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "aggregate consigner prices")
	}
	return summary, nil
}
