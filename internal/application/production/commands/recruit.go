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

// RecruitCommand queues new recruits into the mobilization queue
type RecruitCommand struct {
	KingdomID shared.KingdomID
	Amount    int
	RequestID string // Optional: makes a retried command idempotent
}

// RecruitHandler handles the Recruit command
type RecruitHandler struct {
	placer orderPlacer
}

// NewRecruitHandler creates a new RecruitHandler; journal may be nil
func NewRecruitHandler(store kingdom.Store, journal production.Journal, cat *catalog.Catalog, clock shared.Clock) *RecruitHandler {
	return &RecruitHandler{placer: newOrderPlacer(store, journal, cat, clock)}
}

// Handle executes the Recruit command
func (h *RecruitHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	cmd, ok := request.(*RecruitCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *RecruitCommand")
	}

	cat := h.placer.catalog
	order := kingdom.Inventory{catalog.UnitRecruits: cmd.Amount}
	return h.placer.place(ctx, cmd.KingdomID, production.CategoryRecruits, order, cmd.RequestID,
		func(reference time.Time, state *appProduction.KingdomState) (*production.Plan, error) {
			units := production.CalcUnits(cat, reference, state.Snapshot, state.Queue(kingdom.QueueMobilization))
			return production.ValidateRecruits(cat, state.Snapshot, units, cmd.Amount)
		})
}
