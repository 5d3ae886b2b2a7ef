package shared

import (
	"fmt"
	"strconv"
)

// KingdomID is a value object identifying a kingdom in the external store.
// Zero is a valid identifier: the store numbers kingdoms from 0.
type KingdomID struct {
	value int
}

// NewKingdomID creates a new KingdomID value object
func NewKingdomID(id int) (KingdomID, error) {
	if id < 0 {
		return KingdomID{}, fmt.Errorf("kingdom_id must not be negative")
	}
	return KingdomID{value: id}, nil
}

// MustNewKingdomID creates a KingdomID, panicking if invalid.
// Use this only for identifiers that were already validated (e.g., from database)
func MustNewKingdomID(id int) KingdomID {
	kingdomID, err := NewKingdomID(id)
	if err != nil {
		panic(err)
	}
	return kingdomID
}

// ParseKingdomID parses a decimal kingdom identifier
func ParseKingdomID(raw string) (KingdomID, error) {
	id, err := strconv.Atoi(raw)
	if err != nil {
		return KingdomID{}, fmt.Errorf("invalid kingdom_id %q: %w", raw, err)
	}
	return NewKingdomID(id)
}

// Value returns the integer value of the KingdomID
func (k KingdomID) Value() int {
	return k.value
}

// String returns a string representation of the KingdomID
func (k KingdomID) String() string {
	return strconv.Itoa(k.value)
}

// Equals checks if two KingdomIDs are equal
func (k KingdomID) Equals(other KingdomID) bool {
	return k.value == other.value
}
