package setup

import (
	"reflect"

	"github.com/andrescamacho/domnus-go/internal/application/mediator"
	productionCommands "github.com/andrescamacho/domnus-go/internal/application/production/commands"
	productionQueries "github.com/andrescamacho/domnus-go/internal/application/production/queries"
	appProjects "github.com/andrescamacho/domnus-go/internal/application/projects"
	appSpending "github.com/andrescamacho/domnus-go/internal/application/spending"
	"github.com/andrescamacho/domnus-go/internal/domain/catalog"
	"github.com/andrescamacho/domnus-go/internal/domain/kingdom"
	"github.com/andrescamacho/domnus-go/internal/domain/production"
	"github.com/andrescamacho/domnus-go/internal/domain/shared"
)

// HandlerRegistry holds all application dependencies for handler creation
type HandlerRegistry struct {
	store   kingdom.Store
	journal production.Journal
	catalog *catalog.Catalog
	clock   shared.Clock
}

// NewHandlerRegistry creates a new handler registry. journal may be nil, in
// which case orders are committed without request-id replay.
func NewHandlerRegistry(
	store kingdom.Store,
	journal production.Journal,
	cat *catalog.Catalog,
	clock shared.Clock,
) *HandlerRegistry {
	// Default to real clock if not provided
	if clock == nil {
		clock = shared.NewRealClock()
	}
	if cat == nil {
		cat = catalog.Default()
	}

	return &HandlerRegistry{
		store:   store,
		journal: journal,
		catalog: cat,
		clock:   clock,
	}
}

type registration struct {
	request mediator.Request
	handler mediator.RequestHandler
}

func register(m mediator.Mediator, registrations []registration) error {
	for _, reg := range registrations {
		if err := m.Register(reflect.TypeOf(reg.request), reg.handler); err != nil {
			return err
		}
	}
	return nil
}

// RegisterProductionHandlers registers the overview queries and order commands
//
// This method registers:
//   - Get{Mobilization,Structures,Missiles,Engineers,Settlement}Query and GetTimeQuery
//   - Recruit, TrainSpecialists, BuildStructures, BuildMissiles, TrainEngineers and Settle commands
func (r *HandlerRegistry) RegisterProductionHandlers(m mediator.Mediator) error {
	return register(m, []registration{
		{&productionQueries.GetMobilizationQuery{}, productionQueries.NewGetMobilizationHandler(r.store, r.catalog, r.clock)},
		{&productionQueries.GetStructuresQuery{}, productionQueries.NewGetStructuresHandler(r.store, r.catalog, r.clock)},
		{&productionQueries.GetMissilesQuery{}, productionQueries.NewGetMissilesHandler(r.store, r.catalog, r.clock)},
		{&productionQueries.GetEngineersQuery{}, productionQueries.NewGetEngineersHandler(r.store, r.catalog, r.clock)},
		{&productionQueries.GetSettlementQuery{}, productionQueries.NewGetSettlementHandler(r.store, r.catalog, r.clock)},
		{&productionQueries.GetTimeQuery{}, productionQueries.NewGetTimeHandler(r.clock)},

		{&productionCommands.RecruitCommand{}, productionCommands.NewRecruitHandler(r.store, r.journal, r.catalog, r.clock)},
		{&productionCommands.TrainSpecialistsCommand{}, productionCommands.NewTrainSpecialistsHandler(r.store, r.journal, r.catalog, r.clock)},
		{&productionCommands.BuildStructuresCommand{}, productionCommands.NewBuildStructuresHandler(r.store, r.journal, r.catalog, r.clock)},
		{&productionCommands.BuildMissilesCommand{}, productionCommands.NewBuildMissilesHandler(r.store, r.journal, r.catalog, r.clock)},
		{&productionCommands.TrainEngineersCommand{}, productionCommands.NewTrainEngineersHandler(r.store, r.journal, r.catalog, r.clock)},
		{&productionCommands.SettleCommand{}, productionCommands.NewSettleHandler(r.store, r.journal, r.catalog, r.clock)},
	})
}

// RegisterProjectHandlers registers the projects query and assignment command
func (r *HandlerRegistry) RegisterProjectHandlers(m mediator.Mediator) error {
	return register(m, []registration{
		{&appProjects.GetProjectsQuery{}, appProjects.NewGetProjectsHandler(r.store, r.catalog)},
		{&appProjects.ManageProjectsCommand{}, appProjects.NewManageProjectsHandler(r.store, r.catalog)},
	})
}

// RegisterSpendingHandlers registers the spending query and update command
func (r *HandlerRegistry) RegisterSpendingHandlers(m mediator.Mediator) error {
	return register(m, []registration{
		{&appSpending.GetSpendingQuery{}, appSpending.NewGetSpendingHandler(r.store)},
		{&appSpending.UpdateSpendingCommand{}, appSpending.NewUpdateSpendingHandler(r.store)},
	})
}

// CreateConfiguredMediator creates a mediator with every handler registered
// and the given middleware installed, first one outermost
func (r *HandlerRegistry) CreateConfiguredMediator(middleware ...mediator.Middleware) (mediator.Mediator, error) {
	m := mediator.NewMediator()

	if err := r.RegisterProductionHandlers(m); err != nil {
		return nil, err
	}
	if err := r.RegisterProjectHandlers(m); err != nil {
		return nil, err
	}
	if err := r.RegisterSpendingHandlers(m); err != nil {
		return nil, err
	}

	for _, mw := range middleware {
		m.RegisterMiddleware(mw)
	}

	return m, nil
}
