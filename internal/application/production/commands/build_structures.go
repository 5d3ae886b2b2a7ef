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

// BuildStructuresCommand queues structures for construction
type BuildStructuresCommand struct {
	KingdomID  shared.KingdomID
	Structures map[string]int
	RequestID  string
}

// BuildStructuresHandler handles the BuildStructures command
type BuildStructuresHandler struct {
	placer orderPlacer
}

// NewBuildStructuresHandler creates a new BuildStructuresHandler; journal may be nil
func NewBuildStructuresHandler(store kingdom.Store, journal production.Journal, cat *catalog.Catalog, clock shared.Clock) *BuildStructuresHandler {
	return &BuildStructuresHandler{placer: newOrderPlacer(store, journal, cat, clock)}
}

// Handle executes the BuildStructures command
func (h *BuildStructuresHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	cmd, ok := request.(*BuildStructuresCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *BuildStructuresCommand")
	}

	cat := h.placer.catalog
	order := kingdom.Inventory(cmd.Structures).Clone()
	return h.placer.place(ctx, cmd.KingdomID, production.CategoryStructures, order, cmd.RequestID,
		func(reference time.Time, state *appProduction.KingdomState) (*production.Plan, error) {
			overview := production.Structures(cat, reference, state.Snapshot, state.Queue(kingdom.QueueStructures))
			return production.ValidateStructures(cat, state.Snapshot, overview, order)
		})
}
