package production

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/andrescamacho/domnus-go/internal/domain/catalog"
	"github.com/andrescamacho/domnus-go/internal/domain/kingdom"
	"github.com/andrescamacho/domnus-go/internal/domain/projection"
)

// MissilesOverview describes stockpile, silo limits and per-kind availability
type MissilesOverview struct {
	Current   kingdom.Inventory
	Building  kingdom.Inventory
	BuildTime time.Duration
	Capacity  int
	// Available is per kind: Max is free silo room, Current is what money and fuel allow
	Available map[string]Availability
	Desc      map[string]catalog.MissileDef
}

// SiloCapacity is how many of each missile kind the silos hold
func SiloCapacity(cat *catalog.Catalog, snap *kingdom.Snapshot) int {
	return snap.Structures.Get(catalog.StructureMissileSilos) * cat.Constants.Capacity.MissileSilos
}

// MissileAvailability bounds each kind by silo room left after stock and
// missiles under construction, then rations that by money and by fuel.
func MissileAvailability(cat *catalog.Catalog, snap *kingdom.Snapshot, building kingdom.Inventory) map[string]Availability {
	capacity := SiloCapacity(cat, snap)
	out := make(map[string]Availability, len(cat.MissileKinds()))
	for _, kind := range cat.MissileKinds() {
		def, _ := cat.Missile(kind)
		max := floorAtZero(capacity - (snap.Missiles.Get(kind) + building.Get(kind)))
		byMoney := RationedAvailability(snap.Money, def.Cost, max)
		byFuel := rationFuel(snap.Fuel, def.FuelCost, max)
		out[kind] = Availability{Max: max, Current: min(byMoney.Current, byFuel)}
	}
	return out
}

// Missiles derives the missiles overview. Building counts every queued order.
func Missiles(cat *catalog.Catalog, reference time.Time, snap *kingdom.Snapshot, queue []kingdom.PendingOrder) MissilesOverview {
	kinds := cat.MissileKinds()
	building := projection.TotalByKind(queue, kinds)
	return MissilesOverview{
		Current:   snap.Missiles.Filter(kinds),
		Building:  building,
		BuildTime: MustDescribe(cat, CategoryMissiles).Duration(cat.Epoch()),
		Capacity:  SiloCapacity(cat, snap),
		Available: MissileAvailability(cat, snap, building),
		Desc:      cat.Missiles(),
	}
}

// rationFuel treats a kind without fuel cost as unconstrained by fuel
func rationFuel(fuel decimal.Decimal, fuelCost, max int) int {
	if fuelCost <= 0 {
		return max
	}
	return RationedAvailability(fuel, fuelCost, max).Current
}
