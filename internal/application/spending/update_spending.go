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

// UpdateSpendingCommand changes the automatic spending split. Nil fields keep
// their current value.
type UpdateSpendingCommand struct {
	KingdomID  shared.KingdomID
	Settle     *float64
	Structures *float64
	Military   *float64
	Engineers  *float64
}

// UpdateSpendingResponse carries the split written to the store
type UpdateSpendingResponse struct {
	Allocation spending.Allocation
}

// UpdateSpendingHandler handles the UpdateSpending command
type UpdateSpendingHandler struct {
	store kingdom.Store
}

// NewUpdateSpendingHandler creates a new UpdateSpendingHandler
func NewUpdateSpendingHandler(store kingdom.Store) *UpdateSpendingHandler {
	return &UpdateSpendingHandler{store: store}
}

// Handle executes the UpdateSpending command
func (h *UpdateSpendingHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	cmd, ok := request.(*UpdateSpendingCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *UpdateSpendingCommand")
	}

	state, err := production.LoadKingdom(ctx, h.store, cmd.KingdomID)
	if err != nil {
		return nil, err
	}

	allocation := spending.Merge(state.Snapshot.AutoSpending, spending.Update{
		Settle:     cmd.Settle,
		Structures: cmd.Structures,
		Military:   cmd.Military,
		Engineers:  cmd.Engineers,
	})
	if err := spending.Validate(allocation); err != nil {
		return nil, err
	}

	if err := h.store.PatchKingdom(ctx, cmd.KingdomID, kingdom.Patch{AutoSpending: allocation}); err != nil {
		return nil, fmt.Errorf("failed to update spending allocation: %w", err)
	}

	common.LoggerFromContext(ctx).Log(common.LevelInfo, "Spending allocation updated", map[string]interface{}{
		"kingdom_id": cmd.KingdomID.Value(),
		"total":      allocation.Total(),
	})

	return &UpdateSpendingResponse{Allocation: allocation}, nil
}
