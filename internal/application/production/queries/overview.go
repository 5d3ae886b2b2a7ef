package queries

import (
	"context"
	"time"

	"github.com/andrescamacho/domnus-go/internal/application/production"
	"github.com/andrescamacho/domnus-go/internal/domain/catalog"
	"github.com/andrescamacho/domnus-go/internal/domain/kingdom"
	"github.com/andrescamacho/domnus-go/internal/domain/shared"
)

// overviewReader loads a kingdom and the queues an overview needs, stamped
// with a single reference instant
type overviewReader struct {
	store   kingdom.Store
	catalog *catalog.Catalog
	clock   shared.Clock
}

func newOverviewReader(store kingdom.Store, cat *catalog.Catalog, clock shared.Clock) overviewReader {
	if clock == nil {
		clock = shared.NewRealClock()
	}
	if cat == nil {
		cat = catalog.Default()
	}
	return overviewReader{store: store, catalog: cat, clock: clock}
}

func (r overviewReader) load(ctx context.Context, id shared.KingdomID, queues ...kingdom.Queue) (*production.KingdomState, time.Time, error) {
	reference := r.clock.Now()
	state, err := production.LoadKingdom(ctx, r.store, id, queues...)
	if err != nil {
		return nil, time.Time{}, err
	}
	return state, reference, nil
}
