package queries

import (
	"context"
	"fmt"
	"time"

	"github.com/andrescamacho/domnus-go/internal/application/common"
	"github.com/andrescamacho/domnus-go/internal/domain/catalog"
	"github.com/andrescamacho/domnus-go/internal/domain/kingdom"
	"github.com/andrescamacho/domnus-go/internal/domain/production"
	"github.com/andrescamacho/domnus-go/internal/domain/shared"
)

// GetMissilesQuery requests the missile stockpile and per-kind availability
type GetMissilesQuery struct {
	KingdomID shared.KingdomID
}

// GetMissilesResponse carries the missiles overview
type GetMissilesResponse struct {
	ReferenceTime time.Time
	Overview      production.MissilesOverview
}

// GetMissilesHandler handles the GetMissiles query
type GetMissilesHandler struct {
	reader overviewReader
}

// NewGetMissilesHandler creates a new GetMissilesHandler
func NewGetMissilesHandler(store kingdom.Store, cat *catalog.Catalog, clock shared.Clock) *GetMissilesHandler {
	return &GetMissilesHandler{reader: newOverviewReader(store, cat, clock)}
}

// Handle executes the GetMissiles query
func (h *GetMissilesHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	query, ok := request.(*GetMissilesQuery)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *GetMissilesQuery")
	}

	state, reference, err := h.reader.load(ctx, query.KingdomID, kingdom.QueueMissiles)
	if err != nil {
		return nil, err
	}

	return &GetMissilesResponse{
		ReferenceTime: reference,
		Overview:      production.Missiles(h.reader.catalog, reference, state.Snapshot, state.Queue(kingdom.QueueMissiles)),
	}, nil
}
