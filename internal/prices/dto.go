package prices

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// UpsertPriceInput carries one consigner/player price write.
type UpsertPriceInput struct {
	ConsignerID  uuid.UUID
	PlayerID     uuid.UUID
	PricePerCard decimal.Decimal
	Notes        *string
}

// UpsertOutcome reports whether the write replaced an existing active entry.
type UpsertOutcome struct {
	EntryID      uuid.UUID       `json:"entry_id"`
	ConsignerID  uuid.UUID       `json:"consigner_id"`
	PlayerID     uuid.UUID       `json:"player_id"`
	PricePerCard decimal.Decimal `json:"price_per_card"`
	Notes        *string         `json:"notes,omitempty"`
	Replaced     bool            `json:"replaced"`
}

// BulkUpsertFailure records one rejected entry in a bulk batch.
type BulkUpsertFailure struct {
	Index int              `json:"index"`
	Input UpsertPriceInput `json:"-"`
	Error string           `json:"error"`
}

// BulkUpsertResult summarizes a best-effort batch: failures never roll back
// entries already applied.
type BulkUpsertResult struct {
	Created int                 `json:"created"`
	Updated int                 `json:"updated"`
	Failed  []BulkUpsertFailure `json:"failed"`
}

// PriceQuote is one active entry annotated with its consigner.
type PriceQuote struct {
	EntryID       uuid.UUID       `json:"entry_id"`
	ConsignerID   uuid.UUID       `json:"consigner_id"`
	ConsignerName string          `json:"consigner_name"`
	PricePerCard  decimal.Decimal `json:"price_per_card"`
	Notes         *string         `json:"notes,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
}

// LookupResult is the on-demand projection for one player. BestPrice is nil
// when the player has no active entries; Selected is only set when the caller
// asked for a specific consigner and that consigner has an active entry.
type LookupResult struct {
	PlayerID          uuid.UUID        `json:"player_id"`
	AllPrices         []PriceQuote     `json:"all_prices"`
	BestPrice         *decimal.Decimal `json:"best_price,omitempty"`
	BestConsignerID   *uuid.UUID       `json:"best_consigner_id,omitempty"`
	BestConsignerName *string          `json:"best_consigner_name,omitempty"`
	Selected          *PriceQuote      `json:"selected,omitempty"`
}

// ConsignerSummary aggregates a consigner's active entries.
type ConsignerSummary struct {
	ConsignerID uuid.UUID        `json:"consigner_id"`
	EntryCount  int64            `json:"entry_count"`
	AvgPrice    *decimal.Decimal `json:"avg_price,omitempty"`
	MinPrice    *decimal.Decimal `json:"min_price,omitempty"`
	MaxPrice    *decimal.Decimal `json:"max_price,omitempty"`
}
