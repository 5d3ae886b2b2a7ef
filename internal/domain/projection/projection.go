// Package projection buckets time-stamped pending orders into cumulative
// forward horizons.
package projection

import (
	"fmt"
	"time"

	"github.com/andrescamacho/domnus-go/internal/domain/kingdom"
)

// CurrentLabel names the bucket taken directly from the snapshot
const CurrentLabel = "current"

// Order is anything with a completion instant and per-kind quantities
type Order interface {
	CompletionTime() time.Time
	Quantity(kind string) int
}

// Horizon is a forward offset from the reference instant
type Horizon struct {
	Label  string
	Offset time.Duration
}

// DefaultHorizons are the 1, 2, 4, 8 and 24 hour windows used by every category
var DefaultHorizons = HoursHorizons(1, 2, 4, 8, 24)

// HoursHorizons builds hour_<n> horizons in the given order
func HoursHorizons(hours ...int) []Horizon {
	out := make([]Horizon, 0, len(hours))
	for _, h := range hours {
		out = append(out, Horizon{
			Label:  fmt.Sprintf("hour_%d", h),
			Offset: time.Duration(h) * time.Hour,
		})
	}
	return out
}

// Projection holds the current bucket plus one cumulative bucket per horizon.
// Labels keeps the horizon order.
type Projection struct {
	Reference time.Time
	Current   kingdom.Inventory
	Horizons  map[string]kingdom.Inventory
	Labels    []string
}

// Aggregate sums, for each horizon, every order completing strictly before
// reference+offset. Only the given kinds are summed; every bucket carries an
// entry for each kind. Never fails.
func Aggregate[O Order](reference time.Time, current kingdom.Inventory, kinds []string, orders []O, horizons []Horizon) Projection {
	p := Projection{
		Reference: reference,
		Current:   current.Filter(kinds),
		Horizons:  make(map[string]kingdom.Inventory, len(horizons)),
		Labels:    make([]string, 0, len(horizons)),
	}

	for _, h := range horizons {
		cutoff := reference.Add(h.Offset)
		bucket := make(kingdom.Inventory, len(kinds))
		for _, k := range kinds {
			bucket[k] = 0
		}
		for _, o := range orders {
			if !o.CompletionTime().Before(cutoff) {
				continue
			}
			for _, k := range kinds {
				bucket[k] += o.Quantity(k)
			}
		}
		p.Horizons[h.Label] = bucket
		p.Labels = append(p.Labels, h.Label)
	}
	return p
}

// At returns the bucket for label, including CurrentLabel; unknown labels are empty
func (p Projection) At(label string) kingdom.Inventory {
	if label == CurrentLabel {
		return p.Current
	}
	if b, ok := p.Horizons[label]; ok {
		return b
	}
	return kingdom.Inventory{}
}

// Widest returns the bucket of the last horizon, or an empty bucket when none
func (p Projection) Widest() kingdom.Inventory {
	if len(p.Labels) == 0 {
		return kingdom.Inventory{}
	}
	return p.Horizons[p.Labels[len(p.Labels)-1]]
}

// Total sums a kind over every order regardless of completion time
func Total[O Order](orders []O, kind string) int {
	total := 0
	for _, o := range orders {
		total += o.Quantity(kind)
	}
	return total
}

// TotalByKind sums each kind over every order regardless of completion time
func TotalByKind[O Order](orders []O, kinds []string) kingdom.Inventory {
	out := make(kingdom.Inventory, len(kinds))
	for _, k := range kinds {
		out[k] = Total(orders, k)
	}
	return out
}
