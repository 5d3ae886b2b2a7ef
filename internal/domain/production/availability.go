package production

import "github.com/shopspring/decimal"

// Availability pairs a hard ceiling with the part of it the kingdom can afford now.
// 0 <= Current <= Max always holds.
type Availability struct {
	Max     int
	Current int
}

// RationedAvailability scales the ceiling by the fraction of its total cost the
// kingdom can pay: floor(money / (unitCost*max) * max), capped at max.
// A zero total cost yields Current 0.
func RationedAvailability(money decimal.Decimal, unitCost, max int) Availability {
	if max <= 0 {
		return Availability{}
	}
	maxCost := int64(unitCost) * int64(max)
	if maxCost <= 0 {
		return Availability{Max: max}
	}
	q, _ := money.Mul(decimal.NewFromInt(int64(max))).QuoRem(decimal.NewFromInt(maxCost), 0)
	return Availability{Max: max, Current: clamp(q, max)}
}

// FlatAvailability caps the ceiling by how many single units money buys:
// min(floor(money / unitCost), max). A zero unit cost yields Current 0.
func FlatAvailability(money decimal.Decimal, unitCost, max int) Availability {
	if max <= 0 {
		return Availability{}
	}
	if unitCost <= 0 {
		return Availability{Max: max}
	}
	q, _ := money.QuoRem(decimal.NewFromInt(int64(unitCost)), 0)
	return Availability{Max: max, Current: clamp(q, max)}
}

func clamp(q decimal.Decimal, max int) int {
	if q.Sign() <= 0 {
		return 0
	}
	if q.GreaterThanOrEqual(decimal.NewFromInt(int64(max))) {
		return max
	}
	return int(q.IntPart())
}

// Capacity is a structure-derived limit and how much of it is spoken for
type Capacity struct {
	Max  int
	Used int
}

// Free is the unused part of the capacity, never negative
func (c Capacity) Free() int {
	if c.Used >= c.Max {
		return 0
	}
	return c.Max - c.Used
}

func floorAtZero(n int) int {
	if n < 0 {
		return 0
	}
	return n
}
