package enums

import "fmt"

// SubmissionStatus tracks the lifecycle of a grading or authentication
// submission. The sequence is strictly ordered; cancellation is the only
// transition that may leave the rail.
type SubmissionStatus string

const (
	SubmissionStatusPending     SubmissionStatus = "pending"
	SubmissionStatusShipped     SubmissionStatus = "shipped"
	SubmissionStatusReceived    SubmissionStatus = "received"
	SubmissionStatusProcessing  SubmissionStatus = "processing"
	SubmissionStatusShippedBack SubmissionStatus = "shipped_back"
	SubmissionStatusReturned    SubmissionStatus = "returned"
	SubmissionStatusCancelled   SubmissionStatus = "cancelled"
)

// submissionStatusOrder positions each on-rail status. Cancelled is off-rail
// and deliberately absent.
var submissionStatusOrder = []SubmissionStatus{
	SubmissionStatusPending,
	SubmissionStatusShipped,
	SubmissionStatusReceived,
	SubmissionStatusProcessing,
	SubmissionStatusShippedBack,
	SubmissionStatusReturned,
}

var validSubmissionStatuses = append(
	append([]SubmissionStatus{}, submissionStatusOrder...),
	SubmissionStatusCancelled,
)

// String implements fmt.Stringer.
func (s SubmissionStatus) String() string {
	return string(s)
}

// IsValid reports whether the value is a known SubmissionStatus.
func (s SubmissionStatus) IsValid() bool {
	for _, candidate := range validSubmissionStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no further transitions are permitted.
func (s SubmissionStatus) IsTerminal() bool {
	return s == SubmissionStatusReturned || s == SubmissionStatusCancelled
}

// Ordinal returns the position of an on-rail status, or -1 for cancelled and
// unknown values.
func (s SubmissionStatus) Ordinal() int {
	for i, candidate := range submissionStatusOrder {
		if candidate == s {
			return i
		}
	}
	return -1
}

// Successor returns the next on-rail status, or false when none exists.
func (s SubmissionStatus) Successor() (SubmissionStatus, bool) {
	idx := s.Ordinal()
	if idx < 0 || idx+1 >= len(submissionStatusOrder) {
		return "", false
	}
	return submissionStatusOrder[idx+1], true
}

// CanAdvanceTo reports whether moving from s to next is a legal transition:
// either the immediate successor on the rail, or cancellation from any
// non-terminal state.
func (s SubmissionStatus) CanAdvanceTo(next SubmissionStatus) bool {
	if next == SubmissionStatusCancelled {
		return !s.IsTerminal()
	}
	successor, ok := s.Successor()
	return ok && successor == next
}

// DisplayLabel maps the unified status to the vocabulary each workflow shows
// users: grading submissions call the processing stage "grading".
func (s SubmissionStatus) DisplayLabel(kind SubmissionKind) string {
	if s == SubmissionStatusProcessing && kind == SubmissionKindGrading {
		return "grading"
	}
	return string(s)
}

// ParseSubmissionStatus converts raw input into a SubmissionStatus. The
// legacy "grading" spelling is accepted as an alias for processing.
func ParseSubmissionStatus(value string) (SubmissionStatus, error) {
	if value == "grading" {
		return SubmissionStatusProcessing, nil
	}
	for _, candidate := range validSubmissionStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid submission status %q", value)
}
