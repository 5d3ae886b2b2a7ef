package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/andrescamacho/domnus-go/internal/application/common"
	appProduction "github.com/andrescamacho/domnus-go/internal/application/production"
	"github.com/andrescamacho/domnus-go/internal/domain/catalog"
	"github.com/andrescamacho/domnus-go/internal/domain/kingdom"
	"github.com/andrescamacho/domnus-go/internal/domain/production"
	"github.com/andrescamacho/domnus-go/internal/domain/shared"
)

// SettleCommand queues new stars for settlement
type SettleCommand struct {
	KingdomID shared.KingdomID
	Amount    int
	RequestID string
}

// SettleHandler handles the Settle command
type SettleHandler struct {
	placer orderPlacer
}

// NewSettleHandler creates a new SettleHandler; journal may be nil
func NewSettleHandler(store kingdom.Store, journal production.Journal, cat *catalog.Catalog, clock shared.Clock) *SettleHandler {
	return &SettleHandler{placer: newOrderPlacer(store, journal, cat, clock)}
}

// Handle executes the Settle command
func (h *SettleHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	cmd, ok := request.(*SettleCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *SettleCommand")
	}

	cat := h.placer.catalog
	order := kingdom.Inventory{kingdom.AmountKind: cmd.Amount}
	return h.placer.place(ctx, cmd.KingdomID, production.CategorySettlement, order, cmd.RequestID,
		func(reference time.Time, state *appProduction.KingdomState) (*production.Plan, error) {
			overview := production.Settlement(cat, reference, state.Snapshot, state.Queue(kingdom.QueueSettlement))
			return production.ValidateSettlement(cat, state.Snapshot, overview, cmd.Amount)
		})
}
