package enums

import "fmt"

// ItemKind tags what a submission item references: an inventory card or a
// standalone memorabilia/collectible piece.
type ItemKind string

const (
	ItemKindCard        ItemKind = "card"
	ItemKindMemorabilia ItemKind = "memorabilia"
	ItemKindCollectible ItemKind = "collectible"
)

var validItemKinds = []ItemKind{
	ItemKindCard,
	ItemKindMemorabilia,
	ItemKindCollectible,
}

// String implements fmt.Stringer.
func (k ItemKind) String() string {
	return string(k)
}

// IsValid reports whether the value is a known ItemKind.
func (k ItemKind) IsValid() bool {
	for _, candidate := range validItemKinds {
		if candidate == k {
			return true
		}
	}
	return false
}

// ParseItemKind converts raw input into an ItemKind.
func ParseItemKind(value string) (ItemKind, error) {
	for _, candidate := range validItemKinds {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid item kind %q", value)
}
