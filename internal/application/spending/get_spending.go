package spending

import (
	"context"
	"fmt"

	"github.com/andrescamacho/domnus-go/internal/application/common"
	"github.com/andrescamacho/domnus-go/internal/application/production"
	"github.com/andrescamacho/domnus-go/internal/domain/kingdom"
	"github.com/andrescamacho/domnus-go/internal/domain/shared"
	"github.com/andrescamacho/domnus-go/internal/domain/spending"
)

// GetSpendingQuery requests the automatic spending split
type GetSpendingQuery struct {
	KingdomID shared.KingdomID
}

// GetSpendingResponse carries the split; keys the store lacks read as 0
type GetSpendingResponse struct {
	Allocation spending.Allocation
}

// GetSpendingHandler handles the GetSpending query
type GetSpendingHandler struct {
	store kingdom.Store
}

// NewGetSpendingHandler creates a new GetSpendingHandler
func NewGetSpendingHandler(store kingdom.Store) *GetSpendingHandler {
	return &GetSpendingHandler{store: store}
}

// Handle executes the GetSpending query
func (h *GetSpendingHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	query, ok := request.(*GetSpendingQuery)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *GetSpendingQuery")
	}

	state, err := production.LoadKingdom(ctx, h.store, query.KingdomID)
	if err != nil {
		return nil, err
	}

	return &GetSpendingResponse{
		Allocation: spending.Merge(state.Snapshot.AutoSpending, spending.Update{}),
	}, nil
}
