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

// GetEngineersQuery requests workshop usage and engineer limits
type GetEngineersQuery struct {
	KingdomID shared.KingdomID
}

// GetEngineersResponse carries the engineers overview
type GetEngineersResponse struct {
	ReferenceTime time.Time
	Overview      production.EngineersOverview
}

// GetEngineersHandler handles the GetEngineers query
type GetEngineersHandler struct {
	reader overviewReader
}

// NewGetEngineersHandler creates a new GetEngineersHandler
func NewGetEngineersHandler(store kingdom.Store, cat *catalog.Catalog, clock shared.Clock) *GetEngineersHandler {
	return &GetEngineersHandler{reader: newOverviewReader(store, cat, clock)}
}

// Handle executes the GetEngineers query
func (h *GetEngineersHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	query, ok := request.(*GetEngineersQuery)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *GetEngineersQuery")
	}

	state, reference, err := h.reader.load(ctx, query.KingdomID, kingdom.QueueEngineers)
	if err != nil {
		return nil, err
	}

	return &GetEngineersResponse{
		ReferenceTime: reference,
		Overview:      production.Engineers(h.reader.catalog, reference, state.Snapshot, state.Queue(kingdom.QueueEngineers)),
	}, nil
}
