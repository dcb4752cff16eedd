package enums

import "fmt"

// SubmissionKind distinguishes the two parallel vendor workflows: card
// grading and signature/item authentication. Both share one lifecycle.
type SubmissionKind string

const (
	SubmissionKindGrading        SubmissionKind = "grading"
	SubmissionKindAuthentication SubmissionKind = "authentication"
)

var validSubmissionKinds = []SubmissionKind{
	SubmissionKindGrading,
	SubmissionKindAuthentication,
}

// String implements fmt.Stringer.
func (k SubmissionKind) String() string {
	return string(k)
}

// IsValid reports whether the value is a known SubmissionKind.
func (k SubmissionKind) IsValid() bool {
	for _, candidate := range validSubmissionKinds {
		if candidate == k {
			return true
		}
	}
	return false
}

// ParseSubmissionKind converts raw input into a SubmissionKind.
func ParseSubmissionKind(value string) (SubmissionKind, error) {
	for _, candidate := range validSubmissionKinds {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid submission kind %q", value)
}
