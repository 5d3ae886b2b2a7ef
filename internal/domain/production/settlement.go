package production

import (
	"time"

	"github.com/andrescamacho/domnus-go/internal/domain/catalog"
	"github.com/andrescamacho/domnus-go/internal/domain/kingdom"
	"github.com/andrescamacho/domnus-go/internal/domain/projection"
)

// SettlementOverview prices new stars and bounds how many can be settled
type SettlementOverview struct {
	Projection   projection.Projection
	Price        int
	Availability Availability
}

// Settlement derives the settlement overview. Every queued settle order counts
// against the ceiling regardless of when it completes.
func Settlement(cat *catalog.Catalog, reference time.Time, snap *kingdom.Snapshot, settles []kingdom.PendingOrder) SettlementOverview {
	p := projection.Aggregate(reference, nil, []string{kingdom.AmountKind}, settles, projection.DefaultHorizons)
	price := cat.SettlePrice(snap.Stars)
	max := floorAtZero(cat.MaxSettle(snap.Stars) - projection.Total(settles, kingdom.AmountKind))

	return SettlementOverview{
		Projection:   p,
		Price:        price,
		Availability: RationedAvailability(snap.Money, price, max),
	}
}
