// Package spending validates the automatic spending split of a kingdom's income.
package spending

import (
	"math"

	"github.com/andrescamacho/domnus-go/internal/domain/shared"
)

// Allocation keys
const (
	Settle     = "settle"
	Structures = "structures"
	Military   = "military"
	Engineers  = "engineers"
)

// Message is the user-facing text for any invalid allocation
const Message = "Please enter valid spending percents"

// Keys lists the allocation keys in display order
func Keys() []string {
	return []string{Settle, Structures, Military, Engineers}
}

// Allocation maps a spending key to a percentage of income
type Allocation map[string]float64

// Total sums every percentage
func (a Allocation) Total() float64 {
	total := 0.0
	for _, v := range a {
		total += v
	}
	return total
}

// Update carries the percentages a caller wants to change; nil keeps the current value
type Update struct {
	Settle     *float64
	Structures *float64
	Military   *float64
	Engineers  *float64
}

// Merge applies an update over the current allocation. Keys missing from both
// default to 0.
func Merge(current map[string]float64, u Update) Allocation {
	pick := func(key string, v *float64) float64 {
		if v != nil {
			return *v
		}
		return current[key]
	}
	return Allocation{
		Settle:     pick(Settle, u.Settle),
		Structures: pick(Structures, u.Structures),
		Military:   pick(Military, u.Military),
		Engineers:  pick(Engineers, u.Engineers),
	}
}

// Validate accepts an allocation when every percentage is a number within
// [0,100] and the total does not exceed 100
func Validate(a Allocation) error {
	for _, v := range a {
		if math.IsNaN(v) || v < 0 || v > 100 {
			return shared.NewRejection(shared.ReasonInvalidPercent, Message)
		}
	}
	if a.Total() > 100 {
		return shared.NewRejection(shared.ReasonOverCapacity, Message)
	}
	return nil
}
