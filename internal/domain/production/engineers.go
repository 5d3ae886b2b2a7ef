package production

import (
	"time"

	"github.com/andrescamacho/domnus-go/internal/domain/catalog"
	"github.com/andrescamacho/domnus-go/internal/domain/kingdom"
	"github.com/andrescamacho/domnus-go/internal/domain/projection"
)

// EngineersOverview describes workshop usage and how many engineers can be trained
type EngineersOverview struct {
	Projection   projection.Projection
	Price        int
	Workshop     Capacity
	Availability Availability
	Current      int
	Building     int
}

// WorkshopCapacity is workshops*capacity against engineers owned plus in training
func WorkshopCapacity(cat *catalog.Catalog, snap *kingdom.Snapshot, building int) Capacity {
	return Capacity{
		Max:  snap.Structures.Get(catalog.StructureWorkshops) * cat.Constants.Capacity.Workshops,
		Used: snap.Engineers() + building,
	}
}

// Engineers derives the engineers overview. The ceiling is the lesser of free
// workshop space and the population share; affordability is flat per engineer.
func Engineers(cat *catalog.Catalog, reference time.Time, snap *kingdom.Snapshot, training []kingdom.PendingOrder) EngineersOverview {
	building := projection.Total(training, kingdom.AmountKind)
	workshop := WorkshopCapacity(cat, snap, building)
	max := min(workshop.Free(), cat.MaxEngineers(snap.Population))
	price := cat.Constants.Engineers.Cost

	return EngineersOverview{
		Projection:   projection.Aggregate(reference, nil, []string{kingdom.AmountKind}, training, projection.DefaultHorizons),
		Price:        price,
		Workshop:     workshop,
		Availability: FlatAvailability(snap.Money, price, max),
		Current:      snap.Engineers(),
		Building:     building,
	}
}
