package enums

import "fmt"

// SubmissionItemStatus is the per-item outcome within a submission. Items
// start pending and resolve exactly once into one of the terminal states.
type SubmissionItemStatus string

const (
	SubmissionItemStatusPending      SubmissionItemStatus = "pending"
	SubmissionItemStatusGraded       SubmissionItemStatus = "graded"
	SubmissionItemStatusAuthentic    SubmissionItemStatus = "authentic"
	SubmissionItemStatusNotAuthentic SubmissionItemStatus = "not_authentic"
	SubmissionItemStatusAltered      SubmissionItemStatus = "altered"
	SubmissionItemStatusCounterfeit  SubmissionItemStatus = "counterfeit"
	SubmissionItemStatusUngradeable  SubmissionItemStatus = "ungradeable"
	SubmissionItemStatusLost         SubmissionItemStatus = "lost"
)

var validSubmissionItemStatuses = []SubmissionItemStatus{
	SubmissionItemStatusPending,
	SubmissionItemStatusGraded,
	SubmissionItemStatusAuthentic,
	SubmissionItemStatusNotAuthentic,
	SubmissionItemStatusAltered,
	SubmissionItemStatusCounterfeit,
	SubmissionItemStatusUngradeable,
	SubmissionItemStatusLost,
}

// String implements fmt.Stringer.
func (s SubmissionItemStatus) String() string {
	return string(s)
}

// IsValid reports whether the value is a known SubmissionItemStatus.
func (s SubmissionItemStatus) IsValid() bool {
	for _, candidate := range validSubmissionItemStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// IsTerminal reports whether the item has been resolved. Every status other
// than pending is terminal; results are write-once.
func (s SubmissionItemStatus) IsTerminal() bool {
	return s.IsValid() && s != SubmissionItemStatusPending
}

// ParseSubmissionItemStatus converts raw input into a SubmissionItemStatus.
func ParseSubmissionItemStatus(value string) (SubmissionItemStatus, error) {
	for _, candidate := range validSubmissionItemStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid submission item status %q", value)
}
