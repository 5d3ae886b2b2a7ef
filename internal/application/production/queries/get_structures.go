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

// GetStructuresQuery requests the structures projection and build limits
type GetStructuresQuery struct {
	KingdomID shared.KingdomID
}

// GetStructuresResponse carries the structures overview
type GetStructuresResponse struct {
	ReferenceTime time.Time
	Stars         int
	Overview      production.StructuresOverview
}

// GetStructuresHandler handles the GetStructures query
type GetStructuresHandler struct {
	reader overviewReader
}

// NewGetStructuresHandler creates a new GetStructuresHandler
func NewGetStructuresHandler(store kingdom.Store, cat *catalog.Catalog, clock shared.Clock) *GetStructuresHandler {
	return &GetStructuresHandler{reader: newOverviewReader(store, cat, clock)}
}

// Handle executes the GetStructures query
func (h *GetStructuresHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	query, ok := request.(*GetStructuresQuery)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *GetStructuresQuery")
	}

	state, reference, err := h.reader.load(ctx, query.KingdomID, kingdom.QueueStructures)
	if err != nil {
		return nil, err
	}

	return &GetStructuresResponse{
		ReferenceTime: reference,
		Stars:         state.Snapshot.Stars,
		Overview:      production.Structures(h.reader.catalog, reference, state.Snapshot, state.Queue(kingdom.QueueStructures)),
	}, nil
}
