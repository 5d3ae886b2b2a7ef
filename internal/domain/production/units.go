package production

import (
	"fmt"
	"time"

	"github.com/andrescamacho/domnus-go/internal/domain/catalog"
	"github.com/andrescamacho/domnus-go/internal/domain/kingdom"
	"github.com/andrescamacho/domnus-go/internal/domain/projection"
)

// Bucket labels for unit tables besides the projection horizons
const (
	BucketCurrent      = projection.CurrentLabel
	BucketCurrentTotal = "current_total"
)

// GeneralLabel names the bucket of the i-th deployed general
func GeneralLabel(i int) string {
	return fmt.Sprintf("general_%d", i)
}

// Units is the full unit table: home units, one bucket per general, their
// total, then each forward horizon of the mobilization queue.
type Units struct {
	Buckets map[string]kingdom.Inventory
	Labels  []string
}

// Get returns a bucket by label, empty when absent
func (u Units) Get(label string) kingdom.Inventory {
	if b, ok := u.Buckets[label]; ok {
		return b
	}
	return kingdom.Inventory{}
}

// CalcUnits builds the unit table from the snapshot and the mobilization queue
func CalcUnits(cat *catalog.Catalog, reference time.Time, snap *kingdom.Snapshot, mobis []kingdom.PendingOrder) Units {
	kinds := cat.UnitKinds()
	u := Units{Buckets: make(map[string]kingdom.Inventory)}
	add := func(label string, inv kingdom.Inventory) {
		u.Buckets[label] = inv
		u.Labels = append(u.Labels, label)
	}

	home := snap.Units.Filter(kinds)
	add(BucketCurrent, home)

	total := home.Clone()
	for i, general := range snap.GeneralsOut {
		g := general.Filter(kinds)
		add(GeneralLabel(i), g)
		total = total.Plus(g)
	}
	add(BucketCurrentTotal, total)

	p := projection.Aggregate(reference, nil, kinds, mobis, projection.DefaultHorizons)
	for _, label := range p.Labels {
		add(label, p.Horizons[label])
	}
	return u
}

// Maxes holds Σ stat*count per bucket for both combat stats
type Maxes struct {
	Offense map[string]int
	Defense map[string]int
}

// CalcMaxes computes offense and defense for every bucket of the unit table
func CalcMaxes(cat *catalog.Catalog, units Units) Maxes {
	m := Maxes{
		Offense: make(map[string]int, len(units.Labels)),
		Defense: make(map[string]int, len(units.Labels)),
	}
	table := cat.Units()
	for _, label := range units.Labels {
		bucket := units.Buckets[label]
		off, def := 0, 0
		for kind, stats := range table {
			n := bucket.Get(kind)
			off += stats.Offense * n
			def += stats.Defense * n
		}
		m.Offense[label] = off
		m.Defense[label] = def
	}
	return m
}

// HangarCapacity is hangars*capacity against units owned plus units arriving within the widest horizon
func HangarCapacity(cat *catalog.Catalog, snap *kingdom.Snapshot, units Units) Capacity {
	max := snap.Structures.Get(catalog.StructureHangars) * cat.Constants.Capacity.Hangars
	total := units.Get(BucketCurrentTotal)
	arriving := units.Get(widestLabel())
	used := 0
	for kind, stats := range cat.Units() {
		used += stats.HangarCapacity * (total.Get(kind) + arriving.Get(kind))
	}
	return Capacity{Max: max, Used: used}
}

// RecruitAvailability bounds recruiting by population share minus recruits
// already in training, rationed by money at the flat recruit price.
func RecruitAvailability(cat *catalog.Catalog, snap *kingdom.Snapshot, units Units) Availability {
	training := units.Get(widestLabel()).Get(catalog.UnitRecruits)
	max := floorAtZero(cat.MaxRecruits(snap.Population) - training)
	return RationedAvailability(snap.Money, cat.Constants.Recruits.Cost, max)
}

// MobilizationOverview is everything a client needs to plan recruiting and training
type MobilizationOverview struct {
	Units        Units
	Maxes        Maxes
	RecruitPrice int
	Hangar       Capacity
	Recruits     Availability
	UnitsDesc    map[string]catalog.UnitDef
}

// Mobilization derives the mobilization overview
func Mobilization(cat *catalog.Catalog, reference time.Time, snap *kingdom.Snapshot, mobis []kingdom.PendingOrder) MobilizationOverview {
	units := CalcUnits(cat, reference, snap, mobis)
	return MobilizationOverview{
		Units:        units,
		Maxes:        CalcMaxes(cat, units),
		RecruitPrice: cat.Constants.Recruits.Cost,
		Hangar:       HangarCapacity(cat, snap, units),
		Recruits:     RecruitAvailability(cat, snap, units),
		UnitsDesc:    cat.Units(),
	}
}

func widestLabel() string {
	return projection.DefaultHorizons[len(projection.DefaultHorizons)-1].Label
}
