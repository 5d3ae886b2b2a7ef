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

// BuildMissilesCommand queues missiles; they cost money and fuel
type BuildMissilesCommand struct {
	KingdomID shared.KingdomID
	Missiles  map[string]int
	RequestID string
}

// BuildMissilesHandler handles the BuildMissiles command
type BuildMissilesHandler struct {
	placer orderPlacer
}

// NewBuildMissilesHandler creates a new BuildMissilesHandler; journal may be nil
func NewBuildMissilesHandler(store kingdom.Store, journal production.Journal, cat *catalog.Catalog, clock shared.Clock) *BuildMissilesHandler {
	return &BuildMissilesHandler{placer: newOrderPlacer(store, journal, cat, clock)}
}

// Handle executes the BuildMissiles command
func (h *BuildMissilesHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	cmd, ok := request.(*BuildMissilesCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *BuildMissilesCommand")
	}

	cat := h.placer.catalog
	order := kingdom.Inventory(cmd.Missiles).Clone()
	return h.placer.place(ctx, cmd.KingdomID, production.CategoryMissiles, order, cmd.RequestID,
		func(reference time.Time, state *appProduction.KingdomState) (*production.Plan, error) {
			overview := production.Missiles(cat, reference, state.Snapshot, state.Queue(kingdom.QueueMissiles))
			return production.ValidateMissiles(cat, state.Snapshot, overview, order)
		})
}
