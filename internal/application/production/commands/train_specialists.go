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

// TrainSpecialistsCommand trains specialists out of the recruits pool
type TrainSpecialistsCommand struct {
	KingdomID shared.KingdomID
	Units     map[string]int
	RequestID string
}

// TrainSpecialistsHandler handles the TrainSpecialists command
type TrainSpecialistsHandler struct {
	placer orderPlacer
}

// NewTrainSpecialistsHandler creates a new TrainSpecialistsHandler; journal may be nil
func NewTrainSpecialistsHandler(store kingdom.Store, journal production.Journal, cat *catalog.Catalog, clock shared.Clock) *TrainSpecialistsHandler {
	return &TrainSpecialistsHandler{placer: newOrderPlacer(store, journal, cat, clock)}
}

// Handle executes the TrainSpecialists command
func (h *TrainSpecialistsHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	cmd, ok := request.(*TrainSpecialistsCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *TrainSpecialistsCommand")
	}

	cat := h.placer.catalog
	order := kingdom.Inventory(cmd.Units).Clone()
	return h.placer.place(ctx, cmd.KingdomID, production.CategorySpecialists, order, cmd.RequestID,
		func(_ time.Time, state *appProduction.KingdomState) (*production.Plan, error) {
			return production.ValidateSpecialists(cat, state.Snapshot, order)
		})
}
