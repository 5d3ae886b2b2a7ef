package kingdom

import (
	"github.com/shopspring/decimal"

	"github.com/andrescamacho/domnus-go/internal/domain/shared"
)

// Snapshot is a kingdom's state as read from the store for a single request.
// Handlers treat it as immutable; mutations go through Patch.
type Snapshot struct {
	ID         shared.KingdomID
	Stars      int
	Population int
	Money      decimal.Decimal
	Fuel       decimal.Decimal

	Structures Inventory
	Units      Inventory // includes the recruits pool and engineers
	Missiles   Inventory

	// GeneralsOut holds one unit inventory per deployed general, in store order
	GeneralsOut []Inventory

	ProjectsPoints    Inventory
	ProjectsMaxPoints Inventory
	ProjectsAssigned  Inventory

	AutoSpending map[string]float64
}

// Engineers returns the number of engineers the kingdom owns
func (s *Snapshot) Engineers() int {
	return s.Units.Get("engineers")
}
