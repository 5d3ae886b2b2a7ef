package commands

import (
	"context"
	"errors"
	"time"

	"github.com/andrescamacho/domnus-go/internal/adapters/metrics"
	"github.com/andrescamacho/domnus-go/internal/application/common"
	appProduction "github.com/andrescamacho/domnus-go/internal/application/production"
	"github.com/andrescamacho/domnus-go/internal/domain/catalog"
	"github.com/andrescamacho/domnus-go/internal/domain/kingdom"
	"github.com/andrescamacho/domnus-go/internal/domain/production"
	"github.com/andrescamacho/domnus-go/internal/domain/shared"
)

// PlaceOrderResponse is returned by every order command
type PlaceOrderResponse struct {
	Result *appProduction.CommitResult
}

// validateFunc derives the category overview from the loaded state and checks the order against it
type validateFunc func(reference time.Time, state *appProduction.KingdomState) (*production.Plan, error)

// orderPlacer runs the shared order pipeline: replay, load, validate, commit
type orderPlacer struct {
	store     kingdom.Store
	committer *appProduction.Committer
	catalog   *catalog.Catalog
	clock     shared.Clock
}

func newOrderPlacer(store kingdom.Store, journal production.Journal, cat *catalog.Catalog, clock shared.Clock) orderPlacer {
	if clock == nil {
		clock = shared.NewRealClock()
	}
	if cat == nil {
		cat = catalog.Default()
	}
	return orderPlacer{
		store:     store,
		committer: appProduction.NewCommitter(store, journal, clock, cat.Epoch()),
		catalog:   cat,
		clock:     clock,
	}
}

func (p orderPlacer) place(
	ctx context.Context,
	id shared.KingdomID,
	category production.CategoryName,
	request kingdom.Inventory,
	requestID string,
	validate validateFunc,
) (*PlaceOrderResponse, error) {
	logger := common.LoggerFromContext(ctx)
	oc := orderContext(ctx, requestID)
	key := production.CommitKey{KingdomID: id, Category: category, Request: request}

	replayed, err := p.committer.Replay(ctx, oc, key)
	if err != nil {
		metrics.RecordOrder(string(category), metrics.OutcomeFailed, 0, 0)
		return nil, err
	}
	if replayed != nil {
		metrics.RecordOrder(string(category), metrics.OutcomeReplayed, 0, 0)
		return &PlaceOrderResponse{Result: replayed}, nil
	}

	cat := production.MustDescribe(p.catalog, category)
	reference := p.clock.Now()
	state, err := appProduction.LoadKingdom(ctx, p.store, id, cat.Queue)
	if err != nil {
		metrics.RecordOrder(string(category), metrics.OutcomeFailed, 0, 0)
		return nil, err
	}

	plan, err := validate(reference, state)
	if err != nil {
		var rejection *shared.Rejection
		if errors.As(err, &rejection) {
			logger.Log(common.LevelInfo, "Order rejected", map[string]interface{}{
				"kingdom_id": id.Value(),
				"category":   string(category),
				"reason":     string(rejection.Reason),
			})
			metrics.RecordOrder(string(category), metrics.OutcomeRejected, 0, 0)
		}
		return nil, err
	}

	result, err := p.committer.Commit(ctx, oc, key, state.Snapshot, plan)
	if err != nil {
		logger.Log(common.LevelError, "Order commit failed", map[string]interface{}{
			"kingdom_id": id.Value(),
			"category":   string(category),
			"error":      err.Error(),
		})
		metrics.RecordOrder(string(category), metrics.OutcomeFailed, 0, 0)
		return nil, err
	}

	cost, _ := result.Cost.Float64()
	fuelCost, _ := result.FuelCost.Float64()
	logger.Log(common.LevelInfo, "Order committed", map[string]interface{}{
		"kingdom_id":      id.Value(),
		"category":        string(category),
		"queue":           result.Queue.String(),
		"cost":            result.Cost.String(),
		"fuel_cost":       result.FuelCost.String(),
		"completion_time": result.CompletionTime.Format(time.RFC3339),
	})
	metrics.RecordOrder(string(category), metrics.OutcomeCommitted, cost, fuelCost)

	return &PlaceOrderResponse{Result: result}, nil
}

// orderContext prefers the context's order context; the command's own
// request ID fills in when the context has none
func orderContext(ctx context.Context, requestID string) *shared.OrderContext {
	oc := common.OrderContextFromContext(ctx)
	if oc == nil {
		return shared.NewOrderContext(requestID, "")
	}
	if oc.RequestID == "" && requestID != "" {
		return shared.NewOrderContext(requestID, oc.Source)
	}
	return oc
}
