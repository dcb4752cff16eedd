package enums

import "fmt"

// OutboxAggregateType maps to the aggregate_type enum in Postgres.
type OutboxAggregateType string

const (
	OutboxAggregatePriceEntry OutboxAggregateType = "price_entry"
	OutboxAggregateSubmission OutboxAggregateType = "submission"
	OutboxAggregateConsigner  OutboxAggregateType = "consigner"
)

var validAggregateTypes = []OutboxAggregateType{
	OutboxAggregatePriceEntry,
	OutboxAggregateSubmission,
	OutboxAggregateConsigner,
}

// IsValid reports whether the value matches the canonical aggregate_type enum.
func (a OutboxAggregateType) IsValid() bool {
	for _, candidate := range validAggregateTypes {
		if candidate == a {
			return true
		}
	}
	return false
}

// ParseOutboxAggregateType converts raw input into OutboxAggregateType.
func ParseOutboxAggregateType(value string) (OutboxAggregateType, error) {
	for _, candidate := range validAggregateTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid aggregate type %q", value)
}

// OutboxEventType maps to the event_type enum in Postgres.
type OutboxEventType string

const (
	OutboxEventPriceUpserted              OutboxEventType = "price_upserted"
	OutboxEventPriceDeactivated           OutboxEventType = "price_deactivated"
	OutboxEventSubmissionCreated          OutboxEventType = "submission_created"
	OutboxEventSubmissionStatusAdvanced   OutboxEventType = "submission_status_advanced"
	OutboxEventSubmissionResultsRecorded  OutboxEventType = "submission_results_recorded"
	OutboxEventSubmissionCancelled        OutboxEventType = "submission_cancelled"
	OutboxEventConsignerDefaultReassigned OutboxEventType = "consigner_default_reassigned"
)

var validOutboxEventTypes = []OutboxEventType{
	OutboxEventPriceUpserted,
	OutboxEventPriceDeactivated,
	OutboxEventSubmissionCreated,
	OutboxEventSubmissionStatusAdvanced,
	OutboxEventSubmissionResultsRecorded,
	OutboxEventSubmissionCancelled,
	OutboxEventConsignerDefaultReassigned,
}

// IsValid reports whether the value matches the canonical event_type enum.
func (e OutboxEventType) IsValid() bool {
	for _, candidate := range validOutboxEventTypes {
		if candidate == e {
			return true
		}
	}
	return false
}

// ParseOutboxEventType converts raw input into OutboxEventType.
func ParseOutboxEventType(value string) (OutboxEventType, error) {
	for _, candidate := range validOutboxEventTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid event type %q", value)
}
