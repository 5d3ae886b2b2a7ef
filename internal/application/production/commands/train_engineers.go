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

// TrainEngineersCommand queues engineers for training
type TrainEngineersCommand struct {
	KingdomID shared.KingdomID
	Amount    int
	RequestID string
}

// TrainEngineersHandler handles the TrainEngineers command
type TrainEngineersHandler struct {
	placer orderPlacer
}

// NewTrainEngineersHandler creates a new TrainEngineersHandler; journal may be nil
func NewTrainEngineersHandler(store kingdom.Store, journal production.Journal, cat *catalog.Catalog, clock shared.Clock) *TrainEngineersHandler {
	return &TrainEngineersHandler{placer: newOrderPlacer(store, journal, cat, clock)}
}

// Handle executes the TrainEngineers command
func (h *TrainEngineersHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	cmd, ok := request.(*TrainEngineersCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *TrainEngineersCommand")
	}

	cat := h.placer.catalog
	order := kingdom.Inventory{kingdom.AmountKind: cmd.Amount}
	return h.placer.place(ctx, cmd.KingdomID, production.CategoryEngineers, order, cmd.RequestID,
		func(reference time.Time, state *appProduction.KingdomState) (*production.Plan, error) {
			overview := production.Engineers(cat, reference, state.Snapshot, state.Queue(kingdom.QueueEngineers))
			return production.ValidateEngineers(cat, state.Snapshot, overview, cmd.Amount)
		})
}
