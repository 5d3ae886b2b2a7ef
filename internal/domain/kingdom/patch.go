package kingdom

import "github.com/shopspring/decimal"

// Patch is a partial snapshot update. Nil fields are left untouched by the store.
type Patch struct {
	Money            *decimal.Decimal
	Fuel             *decimal.Decimal
	Units            Inventory
	Structures       Inventory
	ProjectsAssigned Inventory
	AutoSpending     map[string]float64
}

// IsEmpty reports whether the patch changes nothing
func (p Patch) IsEmpty() bool {
	return p.Money == nil && p.Fuel == nil && p.Units == nil &&
		p.Structures == nil && p.ProjectsAssigned == nil && p.AutoSpending == nil
}

// Debit returns a patch lowering money (and fuel when fuelCost is positive)
func Debit(s *Snapshot, cost, fuelCost decimal.Decimal) Patch {
	money := s.Money.Sub(cost)
	p := Patch{Money: &money}
	if fuelCost.IsPositive() {
		fuel := s.Fuel.Sub(fuelCost)
		p.Fuel = &fuel
	}
	return p
}
