package grpc

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/protobuf/types/known/structpb"

	"github.com/andrescamacho/domnus-go/internal/adapters/schema"
	"github.com/andrescamacho/domnus-go/internal/application/common"
	"github.com/andrescamacho/domnus-go/internal/application/production/commands"
	"github.com/andrescamacho/domnus-go/internal/application/production/queries"
	appProjects "github.com/andrescamacho/domnus-go/internal/application/projects"
	appSpending "github.com/andrescamacho/domnus-go/internal/application/spending"
	"github.com/andrescamacho/domnus-go/internal/domain/catalog"
	"github.com/andrescamacho/domnus-go/internal/domain/production"
	"github.com/andrescamacho/domnus-go/internal/domain/shared"
)

// Overview categories accepted by GetOverview
const (
	OverviewMobilization = "mobilization"
	OverviewStructures   = "structures"
	OverviewMissiles     = "missiles"
	OverviewEngineers    = "engineers"
	OverviewSettlement   = "settle"
	OverviewProjects     = "projects"
	OverviewSpending     = "spending"
)

// OverviewCategories lists every overview in a stable order
func OverviewCategories() []string {
	return []string{
		OverviewMobilization,
		OverviewStructures,
		OverviewMissiles,
		OverviewEngineers,
		OverviewSettlement,
		OverviewProjects,
		OverviewSpending,
	}
}

// EconomyServer translates Struct documents into mediator requests
type EconomyServer struct {
	mediator  common.Mediator
	validator *schema.Validator
	catalog   *catalog.Catalog
}

// NewEconomyServer creates the service implementation
func NewEconomyServer(m common.Mediator, v *schema.Validator, cat *catalog.Catalog) *EconomyServer {
	if cat == nil {
		cat = catalog.Default()
	}
	return &EconomyServer{mediator: m, validator: v, catalog: cat}
}

// GetOverview returns the read model of one category
func (s *EconomyServer) GetOverview(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	doc := in.AsMap()
	id, err := kingdomIDFrom(doc)
	if err != nil {
		return nil, toStatus(err)
	}
	category, _ := doc["category"].(string)

	var request common.Request
	switch category {
	case OverviewMobilization:
		request = &queries.GetMobilizationQuery{KingdomID: id}
	case OverviewStructures:
		request = &queries.GetStructuresQuery{KingdomID: id}
	case OverviewMissiles:
		request = &queries.GetMissilesQuery{KingdomID: id}
	case OverviewEngineers:
		request = &queries.GetEngineersQuery{KingdomID: id}
	case OverviewSettlement:
		request = &queries.GetSettlementQuery{KingdomID: id}
	case OverviewProjects:
		request = &appProjects.GetProjectsQuery{KingdomID: id}
	case OverviewSpending:
		request = &appSpending.GetSpendingQuery{KingdomID: id}
	default:
		return nil, toStatus(shared.NewValidationError("category",
			fmt.Sprintf("must be one of %s", strings.Join(OverviewCategories(), ", "))))
	}

	response, err := s.mediator.Send(ctx, request)
	if err != nil {
		return nil, toStatus(err)
	}

	var out Document
	switch r := response.(type) {
	case *queries.GetMobilizationResponse:
		out = mobilizationDoc(r)
	case *queries.GetStructuresResponse:
		out = structuresDoc(r)
	case *queries.GetMissilesResponse:
		out = missilesDoc(r)
	case *queries.GetEngineersResponse:
		out = engineersDoc(r)
	case *queries.GetSettlementResponse:
		out = settlementDoc(r)
	case *appProjects.GetProjectsResponse:
		out = projectsDoc(r.Overview)
	case *appSpending.GetSpendingResponse:
		out = spendingDoc(r.Allocation)
	default:
		return nil, toStatus(fmt.Errorf("unexpected response type %T", response))
	}
	return newStruct(out)
}

// PlaceOrder validates and commits one order
func (s *EconomyServer) PlaceOrder(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	doc := in.AsMap()
	id, err := kingdomIDFrom(doc)
	if err != nil {
		return nil, toStatus(err)
	}
	raw, _ := doc["category"].(string)
	category, err := production.ParseCategoryName(raw)
	if err != nil {
		return nil, toStatus(shared.NewValidationError("category", err.Error()))
	}
	order, _ := doc["order"].(map[string]interface{})
	requestID, _ := doc["request_id"].(string)

	request, err := s.orderCommand(category, id, order, requestID)
	if err != nil {
		return nil, toStatus(err)
	}

	response, err := s.mediator.Send(ctx, request)
	if err != nil {
		return nil, toStatus(err)
	}
	placed, ok := response.(*commands.PlaceOrderResponse)
	if !ok {
		return nil, toStatus(fmt.Errorf("unexpected response type %T", response))
	}
	return newStruct(commitDoc(placed.Result))
}

// orderCommand builds the command for one order category
func (s *EconomyServer) orderCommand(category production.CategoryName, id shared.KingdomID, order map[string]interface{}, requestID string) (common.Request, error) {
	switch category {
	case production.CategoryRecruits:
		amount, err := s.validator.Amount(order)
		if err != nil {
			return nil, err
		}
		return &commands.RecruitCommand{KingdomID: id, Amount: amount, RequestID: requestID}, nil

	case production.CategorySpecialists:
		units, err := s.validator.Quantities(order, trainableKinds(s.catalog))
		if err != nil {
			return nil, err
		}
		return &commands.TrainSpecialistsCommand{KingdomID: id, Units: units, RequestID: requestID}, nil

	case production.CategoryStructures:
		structures, err := s.validator.Quantities(order, s.catalog.Structures())
		if err != nil {
			return nil, err
		}
		return &commands.BuildStructuresCommand{KingdomID: id, Structures: structures, RequestID: requestID}, nil

	case production.CategoryMissiles:
		missiles, err := s.validator.Quantities(order, s.catalog.MissileKinds())
		if err != nil {
			return nil, err
		}
		return &commands.BuildMissilesCommand{KingdomID: id, Missiles: missiles, RequestID: requestID}, nil

	case production.CategoryEngineers:
		amount, err := s.validator.Amount(order)
		if err != nil {
			return nil, err
		}
		return &commands.TrainEngineersCommand{KingdomID: id, Amount: amount, RequestID: requestID}, nil

	case production.CategorySettlement:
		amount, err := s.validator.Amount(order)
		if err != nil {
			return nil, err
		}
		return &commands.SettleCommand{KingdomID: id, Amount: amount, RequestID: requestID}, nil
	}
	return nil, shared.NewValidationError("category", fmt.Sprintf("unknown order category %q", category))
}

// ManageProjects applies one clear, assign or add operation
func (s *EconomyServer) ManageProjects(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	doc := in.AsMap()
	id, err := kingdomIDFrom(doc)
	if err != nil {
		return nil, toStatus(err)
	}
	update, err := s.validator.Projects(doc)
	if err != nil {
		return nil, toStatus(err)
	}

	cmd := &appProjects.ManageProjectsCommand{KingdomID: id}
	switch update.Action {
	case "clear":
		cmd.Clear = update.Clear
	case "assign":
		cmd.Assign = update.Counts
	case "add":
		cmd.Add = update.Counts
	}

	response, err := s.mediator.Send(ctx, cmd)
	if err != nil {
		return nil, toStatus(err)
	}
	managed, ok := response.(*appProjects.ManageProjectsResponse)
	if !ok {
		return nil, toStatus(fmt.Errorf("unexpected response type %T", response))
	}
	return newStruct(Document{
		"action":            string(managed.Action),
		"projects_assigned": inventoryDoc(managed.Assigned),
	})
}

// UpdateSpending changes the automatic spending split
func (s *EconomyServer) UpdateSpending(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	doc := in.AsMap()
	id, err := kingdomIDFrom(doc)
	if err != nil {
		return nil, toStatus(err)
	}
	delete(doc, "kingdom_id")
	update, err := s.validator.Spending(doc)
	if err != nil {
		return nil, toStatus(err)
	}

	response, err := s.mediator.Send(ctx, &appSpending.UpdateSpendingCommand{
		KingdomID:  id,
		Settle:     update.Settle,
		Structures: update.Structures,
		Military:   update.Military,
		Engineers:  update.Engineers,
	})
	if err != nil {
		return nil, toStatus(err)
	}
	updated, ok := response.(*appSpending.UpdateSpendingResponse)
	if !ok {
		return nil, toStatus(fmt.Errorf("unexpected response type %T", response))
	}
	return newStruct(spendingDoc(updated.Allocation))
}

// Time returns the engine's reference instant
func (s *EconomyServer) Time(ctx context.Context, _ *structpb.Struct) (*structpb.Struct, error) {
	response, err := s.mediator.Send(ctx, &queries.GetTimeQuery{})
	if err != nil {
		return nil, toStatus(err)
	}
	now, ok := response.(*queries.GetTimeResponse)
	if !ok {
		return nil, toStatus(fmt.Errorf("unexpected response type %T", response))
	}
	return newStruct(Document{"now": formatTime(now.Now)})
}

func kingdomIDFrom(doc Document) (shared.KingdomID, error) {
	switch raw := doc["kingdom_id"].(type) {
	case float64:
		if raw != float64(int(raw)) {
			return shared.KingdomID{}, shared.NewValidationError("kingdom_id", "must be a whole number")
		}
		id, err := shared.NewKingdomID(int(raw))
		if err != nil {
			return shared.KingdomID{}, shared.NewValidationError("kingdom_id", err.Error())
		}
		return id, nil
	case string:
		id, err := shared.ParseKingdomID(raw)
		if err != nil {
			return shared.KingdomID{}, shared.NewValidationError("kingdom_id", err.Error())
		}
		return id, nil
	}
	return shared.KingdomID{}, shared.NewValidationError("kingdom_id", "is required")
}

func trainableKinds(cat *catalog.Catalog) []string {
	var kinds []string
	for _, kind := range cat.UnitKinds() {
		if u, ok := cat.Unit(kind); ok && !u.Pool {
			kinds = append(kinds, kind)
		}
	}
	return kinds
}

func newStruct(doc Document) (*structpb.Struct, error) {
	out, err := structpb.NewStruct(doc)
	if err != nil {
		return nil, toStatus(fmt.Errorf("failed to encode response: %w", err))
	}
	return out, nil
}

var _ EconomyServiceServer = (*EconomyServer)(nil)
