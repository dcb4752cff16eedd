package payloads

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/slabtrack/slabtrack-backend/pkg/enums"
)

// PriceUpsertedEvent is emitted when a consigner price is created or replaced.
type PriceUpsertedEvent struct {
	PriceEntryID uuid.UUID       `json:"price_entry_id"`
	ConsignerID  uuid.UUID       `json:"consigner_id"`
	PlayerID     uuid.UUID       `json:"player_id"`
	PricePerCard decimal.Decimal `json:"price_per_card"`
	Replaced     bool            `json:"replaced"`
}

// PriceDeactivatedEvent is emitted when an active price is retired.
type PriceDeactivatedEvent struct {
	PriceEntryID uuid.UUID `json:"price_entry_id"`
	ConsignerID  uuid.UUID `json:"consigner_id"`
	PlayerID     uuid.UUID `json:"player_id"`
}

// SubmissionCreatedEvent signals a new grading or authentication submission.
type SubmissionCreatedEvent struct {
	SubmissionID       uuid.UUID            `json:"submission_id"`
	Kind               enums.SubmissionKind `json:"kind"`
	TotalItems         int                  `json:"total_items"`
	TotalDeclaredValue decimal.Decimal      `json:"total_declared_value"`
}

// SubmissionStatusAdvancedEvent reports a stage transition.
type SubmissionStatusAdvancedEvent struct {
	SubmissionID uuid.UUID              `json:"submission_id"`
	FromStatus   enums.SubmissionStatus `json:"from_status"`
	ToStatus     enums.SubmissionStatus `json:"to_status"`
	EffectiveOn  string                 `json:"effective_on"`
}

// SubmissionResultsRecordedEvent reports a results batch landing.
type SubmissionResultsRecordedEvent struct {
	SubmissionID  uuid.UUID `json:"submission_id"`
	ItemsResolved int       `json:"items_resolved"`
	ItemsPending  int       `json:"items_pending"`
}

// SubmissionCancelledEvent is emitted when a submission is cancelled.
type SubmissionCancelledEvent struct {
	SubmissionID uuid.UUID              `json:"submission_id"`
	FromStatus   enums.SubmissionStatus `json:"from_status"`
	CancelledAt  time.Time              `json:"cancelled_at"`
	Reason       string                 `json:"reason,omitempty"`
}

// ConsignerDefaultReassignedEvent reports the default consigner moving.
type ConsignerDefaultReassignedEvent struct {
	ConsignerID         uuid.UUID  `json:"consigner_id"`
	PreviousConsignerID *uuid.UUID `json:"previous_consigner_id,omitempty"`
}
