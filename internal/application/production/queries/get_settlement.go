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

// GetSettlementQuery requests the settle price and settle limits
type GetSettlementQuery struct {
	KingdomID shared.KingdomID
}

// GetSettlementResponse carries the settlement overview
type GetSettlementResponse struct {
	ReferenceTime time.Time
	Stars         int
	Overview      production.SettlementOverview
}

// GetSettlementHandler handles the GetSettlement query
type GetSettlementHandler struct {
	reader overviewReader
}

// NewGetSettlementHandler creates a new GetSettlementHandler
func NewGetSettlementHandler(store kingdom.Store, cat *catalog.Catalog, clock shared.Clock) *GetSettlementHandler {
	return &GetSettlementHandler{reader: newOverviewReader(store, cat, clock)}
}

// Handle executes the GetSettlement query
func (h *GetSettlementHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	query, ok := request.(*GetSettlementQuery)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *GetSettlementQuery")
	}

	state, reference, err := h.reader.load(ctx, query.KingdomID, kingdom.QueueSettlement)
	if err != nil {
		return nil, err
	}

	return &GetSettlementResponse{
		ReferenceTime: reference,
		Stars:         state.Snapshot.Stars,
		Overview:      production.Settlement(h.reader.catalog, reference, state.Snapshot, state.Queue(kingdom.QueueSettlement)),
	}, nil
}
