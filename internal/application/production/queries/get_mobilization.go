package queries

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/andrescamacho/domnus-go/internal/application/common"
	"github.com/andrescamacho/domnus-go/internal/domain/catalog"
	"github.com/andrescamacho/domnus-go/internal/domain/kingdom"
	"github.com/andrescamacho/domnus-go/internal/domain/production"
	"github.com/andrescamacho/domnus-go/internal/domain/shared"
)

// GetMobilizationQuery requests the unit table, hangar usage and recruit limits
type GetMobilizationQuery struct {
	KingdomID shared.KingdomID
}

// GetMobilizationResponse carries the mobilization overview
type GetMobilizationResponse struct {
	ReferenceTime time.Time
	Money         decimal.Decimal
	Overview      production.MobilizationOverview
}

// GetMobilizationHandler handles the GetMobilization query
type GetMobilizationHandler struct {
	reader overviewReader
}

// NewGetMobilizationHandler creates a new GetMobilizationHandler
func NewGetMobilizationHandler(store kingdom.Store, cat *catalog.Catalog, clock shared.Clock) *GetMobilizationHandler {
	return &GetMobilizationHandler{reader: newOverviewReader(store, cat, clock)}
}

// Handle executes the GetMobilization query
func (h *GetMobilizationHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	query, ok := request.(*GetMobilizationQuery)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *GetMobilizationQuery")
	}

	state, reference, err := h.reader.load(ctx, query.KingdomID, kingdom.QueueMobilization)
	if err != nil {
		return nil, err
	}

	return &GetMobilizationResponse{
		ReferenceTime: reference,
		Money:         state.Snapshot.Money,
		Overview:      production.Mobilization(h.reader.catalog, reference, state.Snapshot, state.Queue(kingdom.QueueMobilization)),
	}, nil
}
