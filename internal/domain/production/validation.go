package production

import (
	"github.com/shopspring/decimal"

	"github.com/andrescamacho/domnus-go/internal/domain/catalog"
	"github.com/andrescamacho/domnus-go/internal/domain/kingdom"
	"github.com/andrescamacho/domnus-go/internal/domain/shared"
)

// Plan is a validated order: what to debit and what to queue
type Plan struct {
	Category Category
	Cost     decimal.Decimal
	FuelCost decimal.Decimal
	// Payload is the queued quantities; amount categories use kingdom.AmountKind
	Payload kingdom.Inventory
	// Units, when set, replaces the snapshot units in the debit patch
	Units kingdom.Inventory
}

// Patch returns the debit patch for this plan
func (p *Plan) Patch(snap *kingdom.Snapshot) kingdom.Patch {
	patch := kingdom.Debit(snap, p.Cost, p.FuelCost)
	if p.Units != nil {
		patch.Units = p.Units
	}
	return patch
}

func reject(c Category, reason shared.RejectionReason) *shared.Rejection {
	return shared.NewRejection(reason, c.Message)
}

// checkScalar applies the shared rules for single-amount orders
func checkScalar(c Category, amount int, avail Availability) *shared.Rejection {
	if amount < 0 {
		return reject(c, shared.ReasonNegativeQuantity)
	}
	if amount == 0 {
		return reject(c, shared.ReasonEmptyOrder)
	}
	if amount > avail.Current {
		return reject(c, shared.ReasonOverCapacity)
	}
	return nil
}

// checkMapping applies the shared rules for per-kind orders: known kinds,
// no negatives, non-zero sum, and a sum within ceiling. It returns the sum.
func checkMapping(c Category, request kingdom.Inventory, known func(string) bool, ceiling int) (int, *shared.Rejection) {
	for kind, n := range request {
		if !known(kind) {
			return 0, reject(c, shared.ReasonUnknownKind)
		}
		if n < 0 {
			return 0, reject(c, shared.ReasonNegativeQuantity)
		}
	}
	sum := 0
	for _, n := range request {
		// sum <= ceiling holds here, so ceiling-sum cannot overflow
		if n > ceiling-sum {
			return 0, reject(c, shared.ReasonOverCapacity)
		}
		sum += n
	}
	if sum == 0 {
		return 0, reject(c, shared.ReasonEmptyOrder)
	}
	return sum, nil
}

func checkBudget(c Category, snap *kingdom.Snapshot, cost, fuelCost decimal.Decimal) *shared.Rejection {
	if cost.GreaterThan(snap.Money) {
		return reject(c, shared.ReasonInsufficientMoney)
	}
	if fuelCost.IsPositive() && fuelCost.GreaterThan(snap.Fuel) {
		return reject(c, shared.ReasonInsufficientFuel)
	}
	return nil
}

func times(unitCost, n int) decimal.Decimal {
	return decimal.NewFromInt(int64(unitCost)).Mul(decimal.NewFromInt(int64(n)))
}

// ValidateRecruits checks a recruit order against recruit availability
func ValidateRecruits(cat *catalog.Catalog, snap *kingdom.Snapshot, units Units, amount int) (*Plan, error) {
	c := MustDescribe(cat, CategoryRecruits)
	if r := checkScalar(c, amount, RecruitAvailability(cat, snap, units)); r != nil {
		return nil, r
	}
	cost := times(cat.Constants.Recruits.Cost, amount)
	if r := checkBudget(c, snap, cost, decimal.Zero); r != nil {
		return nil, r
	}
	return &Plan{
		Category: c,
		Cost:     cost,
		Payload:  kingdom.Inventory{catalog.UnitRecruits: amount},
	}, nil
}

// ValidateSpecialists checks a training order: specialists are trained out of
// the recruits pool, which is debited in the same patch as the money.
func ValidateSpecialists(cat *catalog.Catalog, snap *kingdom.Snapshot, request kingdom.Inventory) (*Plan, error) {
	c := MustDescribe(cat, CategorySpecialists)
	trainable := func(kind string) bool {
		u, ok := cat.Unit(kind)
		return ok && !u.Pool
	}
	recruits := snap.Units.Get(catalog.UnitRecruits)
	sum, r := checkMapping(c, request, trainable, recruits)
	if r != nil {
		return nil, r
	}
	cost := decimal.Zero
	for kind, n := range request {
		u, _ := cat.Unit(kind)
		cost = cost.Add(times(u.Cost, n))
	}
	if r := checkBudget(c, snap, cost, decimal.Zero); r != nil {
		return nil, r
	}

	units := snap.Units.Clone()
	units[catalog.UnitRecruits] = recruits - sum
	return &Plan{
		Category: c,
		Cost:     cost,
		Payload:  request.Clone(),
		Units:    units,
	}, nil
}

// ValidateStructures checks a structures order against the structures ceiling
func ValidateStructures(cat *catalog.Catalog, snap *kingdom.Snapshot, overview StructuresOverview, request kingdom.Inventory) (*Plan, error) {
	c := MustDescribe(cat, CategoryStructures)
	sum, r := checkMapping(c, request, cat.IsStructure, overview.Availability.Current)
	if r != nil {
		return nil, r
	}
	cost := times(overview.Price, sum)
	if r := checkBudget(c, snap, cost, decimal.Zero); r != nil {
		return nil, r
	}
	return &Plan{Category: c, Cost: cost, Payload: request.Clone()}, nil
}

// ValidateMissiles checks each kind against its free silo room, then money and
// fuel independently. Budget does not rescue an over-capacity order.
func ValidateMissiles(cat *catalog.Catalog, snap *kingdom.Snapshot, overview MissilesOverview, request kingdom.Inventory) (*Plan, error) {
	c := MustDescribe(cat, CategoryMissiles)
	isMissile := func(kind string) bool {
		_, ok := cat.Missile(kind)
		return ok
	}
	room := 0
	for _, a := range overview.Available {
		room += a.Max
	}
	if _, r := checkMapping(c, request, isMissile, room); r != nil {
		return nil, r
	}
	cost, fuelCost := decimal.Zero, decimal.Zero
	for kind, n := range request {
		if n > overview.Available[kind].Max {
			return nil, reject(c, shared.ReasonOverCapacity)
		}
		def, _ := cat.Missile(kind)
		cost = cost.Add(times(def.Cost, n))
		fuelCost = fuelCost.Add(times(def.FuelCost, n))
	}
	if r := checkBudget(c, snap, cost, fuelCost); r != nil {
		return nil, r
	}
	return &Plan{Category: c, Cost: cost, FuelCost: fuelCost, Payload: request.Clone()}, nil
}

// ValidateEngineers checks an engineer order against workshop and population limits
func ValidateEngineers(cat *catalog.Catalog, snap *kingdom.Snapshot, overview EngineersOverview, amount int) (*Plan, error) {
	c := MustDescribe(cat, CategoryEngineers)
	if r := checkScalar(c, amount, overview.Availability); r != nil {
		return nil, r
	}
	cost := times(overview.Price, amount)
	if r := checkBudget(c, snap, cost, decimal.Zero); r != nil {
		return nil, r
	}
	return &Plan{Category: c, Cost: cost, Payload: kingdom.Inventory{kingdom.AmountKind: amount}}, nil
}

// ValidateSettlement checks a settle order against the settle ceiling
func ValidateSettlement(cat *catalog.Catalog, snap *kingdom.Snapshot, overview SettlementOverview, amount int) (*Plan, error) {
	c := MustDescribe(cat, CategorySettlement)
	if r := checkScalar(c, amount, overview.Availability); r != nil {
		return nil, r
	}
	cost := times(overview.Price, amount)
	if r := checkBudget(c, snap, cost, decimal.Zero); r != nil {
		return nil, r
	}
	return &Plan{Category: c, Cost: cost, Payload: kingdom.Inventory{kingdom.AmountKind: amount}}, nil
}
