package production

import (
	"time"

	"github.com/andrescamacho/domnus-go/internal/domain/catalog"
	"github.com/andrescamacho/domnus-go/internal/domain/kingdom"
	"github.com/andrescamacho/domnus-go/internal/domain/projection"
)

// StructuresOverview projects structures under construction and prices new ones
type StructuresOverview struct {
	Projection   projection.Projection
	Price        int
	Availability Availability
}

// Structures derives the structures overview. The ceiling is one structure per
// star, less everything built and everything arriving within the widest horizon.
func Structures(cat *catalog.Catalog, reference time.Time, snap *kingdom.Snapshot, building []kingdom.PendingOrder) StructuresOverview {
	kinds := cat.Structures()
	p := projection.Aggregate(reference, snap.Structures, kinds, building, projection.DefaultHorizons)
	price := cat.StructurePrice(snap.Stars)

	total := p.Current.Sum() + p.Widest().Sum()
	max := floorAtZero(snap.Stars - total)

	return StructuresOverview{
		Projection:   p,
		Price:        price,
		Availability: RationedAvailability(snap.Money, price, max),
	}
}
