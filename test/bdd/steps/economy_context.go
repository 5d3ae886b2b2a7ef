package steps

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/cucumber/godog"
	messages "github.com/cucumber/messages/go/v21"
	"github.com/shopspring/decimal"

	"github.com/andrescamacho/domnus-go/internal/adapters/persistence"
	"github.com/andrescamacho/domnus-go/internal/application/common"
	"github.com/andrescamacho/domnus-go/internal/application/setup"
	"github.com/andrescamacho/domnus-go/internal/domain/catalog"
	"github.com/andrescamacho/domnus-go/internal/domain/kingdom"
	"github.com/andrescamacho/domnus-go/internal/domain/production"
	"github.com/andrescamacho/domnus-go/internal/domain/shared"
	"github.com/andrescamacho/domnus-go/test/helpers"
)

// referenceTime is the clock every scenario starts at
var referenceTime = time.Date(2026, 5, 10, 8, 0, 0, 0, time.UTC)

// economyContext holds one kingdom, the store and journal behind it, and the
// last response or error. Every step file shares it so a kingdom set up by one
// Given can be ordered against and inspected by the others.
type economyContext struct {
	clock   *shared.MockClock
	catalog *catalog.Catalog

	mock    *helpers.MockKingdomStore
	store   kingdom.Store
	journal production.Journal

	kingdomID int
	snapshot  *kingdom.Snapshot
	queues    map[kingdom.Queue][]kingdom.PendingOrder

	response common.Response
	err      error
}

var economy = &economyContext{}

func (ctx *economyContext) reset() {
	ctx.clock = shared.NewMockClock(referenceTime)
	ctx.catalog = catalog.Default()
	ctx.mock = helpers.NewMockKingdomStore()
	ctx.store = ctx.mock
	ctx.journal = helpers.NewMockJournal()
	ctx.kingdomID = 1
	ctx.snapshot = &kingdom.Snapshot{
		Structures: kingdom.Inventory{},
		Units:      kingdom.Inventory{},
		Missiles:   kingdom.Inventory{},
	}
	ctx.queues = make(map[kingdom.Queue][]kingdom.PendingOrder)
	ctx.response = nil
	ctx.err = nil
}

// useDatabase swaps the in-memory store for the shared SQLite database
func (ctx *economyContext) useDatabase() error {
	if err := helpers.TruncateAllTables(); err != nil {
		return err
	}
	ctx.store = persistence.NewGormKingdomStore(helpers.SharedTestDB, ctx.clock)
	ctx.journal = persistence.NewGormCommitJournal(helpers.SharedTestDB)
	ctx.mock = nil
	return nil
}

func (ctx *economyContext) id() shared.KingdomID {
	return shared.MustNewKingdomID(ctx.kingdomID)
}

// seed writes the Given state into whichever store is active
func (ctx *economyContext) seed(c context.Context) error {
	snap := helpers.CloneSnapshot(ctx.snapshot)
	snap.ID = ctx.id()
	if ctx.mock != nil {
		ctx.mock.SetKingdom(ctx.kingdomID, snap)
		for queue, orders := range ctx.queues {
			ctx.mock.SetQueue(ctx.kingdomID, queue, orders)
		}
		return nil
	}

	gormStore, ok := ctx.store.(*persistence.GormKingdomStore)
	if !ok {
		return fmt.Errorf("unexpected store %T", ctx.store)
	}
	if err := gormStore.SaveKingdom(c, snap); err != nil {
		return err
	}
	for queue, orders := range ctx.queues {
		for _, o := range orders {
			if err := gormStore.AppendQueue(c, ctx.id(), queue, o); err != nil {
				return err
			}
		}
	}
	return nil
}

// send seeds the store and routes req through a fully configured mediator
func (ctx *economyContext) send(req common.Request) error {
	c := context.Background()
	if err := ctx.seed(c); err != nil {
		return err
	}
	m, err := setup.NewHandlerRegistry(ctx.store, ctx.journal, ctx.catalog, ctx.clock).
		CreateConfiguredMediator(common.OrderContextMiddleware("bdd"))
	if err != nil {
		return err
	}
	ctx.response, ctx.err = m.Send(c, req)
	return nil
}

// resend routes req against the store as it stands, without reseeding
func (ctx *economyContext) resend(req common.Request) error {
	m, err := setup.NewHandlerRegistry(ctx.store, ctx.journal, ctx.catalog, ctx.clock).
		CreateConfiguredMediator(common.OrderContextMiddleware("bdd"))
	if err != nil {
		return err
	}
	ctx.response, ctx.err = m.Send(context.Background(), req)
	return nil
}

// stored reads the kingdom back from the store
func (ctx *economyContext) stored() (*kingdom.Snapshot, error) {
	return ctx.store.GetKingdom(context.Background(), ctx.id())
}

func (ctx *economyContext) storedQueue(queue string) ([]kingdom.PendingOrder, error) {
	return ctx.store.GetQueue(context.Background(), ctx.id(), kingdom.Queue(queue))
}

func (ctx *economyContext) rejection() (*shared.Rejection, error) {
	var rejection *shared.Rejection
	if !errors.As(ctx.err, &rejection) {
		return nil, fmt.Errorf("expected a rejection, got %v", ctx.err)
	}
	return rejection, nil
}

// Shared Given steps

func (ctx *economyContext) aKingdomWithStarsAndPopulation(id, stars, population int) error {
	ctx.kingdomID = id
	ctx.snapshot.Stars = stars
	ctx.snapshot.Population = population
	return nil
}

func (ctx *economyContext) theKingdomHasMoney(money int) error {
	ctx.snapshot.Money = decimal.NewFromInt(int64(money))
	return nil
}

func (ctx *economyContext) theKingdomHasFuel(fuel int) error {
	ctx.snapshot.Fuel = decimal.NewFromInt(int64(fuel))
	return nil
}

func (ctx *economyContext) theKingdomOwns(group string, table *godog.Table) error {
	inv, err := inventoryFromTable(table)
	if err != nil {
		return err
	}
	switch group {
	case "structures":
		ctx.snapshot.Structures = inv
	case "units":
		ctx.snapshot.Units = inv
	case "missiles":
		ctx.snapshot.Missiles = inv
	case "project points":
		ctx.snapshot.ProjectsPoints = inv
	case "project max points":
		ctx.snapshot.ProjectsMaxPoints = inv
	case "project assignments":
		ctx.snapshot.ProjectsAssigned = inv
	default:
		return fmt.Errorf("unknown inventory group %q", group)
	}
	return nil
}

func (ctx *economyContext) aGeneralIsDeployedWith(table *godog.Table) error {
	inv, err := inventoryFromTable(table)
	if err != nil {
		return err
	}
	ctx.snapshot.GeneralsOut = append(ctx.snapshot.GeneralsOut, inv)
	return nil
}

func (ctx *economyContext) queueHoldsOrdersCompletingIn(queue string, table *godog.Table) error {
	q := kingdom.Queue(queue)
	if !q.IsValid() {
		return fmt.Errorf("unknown queue %q", queue)
	}
	for i, row := range table.Rows {
		if i == 0 {
			continue
		}
		if len(row.Cells) != 3 {
			return fmt.Errorf("expected hours | kind | quantity, got %d cells", len(row.Cells))
		}
		hours, err := strconv.Atoi(row.Cells[0].Value)
		if err != nil {
			return fmt.Errorf("invalid hours %q", row.Cells[0].Value)
		}
		n, err := strconv.Atoi(row.Cells[2].Value)
		if err != nil {
			return fmt.Errorf("invalid quantity %q", row.Cells[2].Value)
		}
		completion := referenceTime.Add(time.Duration(hours) * time.Hour)
		ctx.queues[q] = append(ctx.queues[q], kingdom.NewPendingOrder(completion, kingdom.Inventory{row.Cells[1].Value: n}))
	}
	return nil
}

func (ctx *economyContext) theKingdomIsKeptInTheDatabase() error {
	return ctx.useDatabase()
}

// Shared Then steps

func (ctx *economyContext) theRequestShouldSucceed() error {
	if ctx.err != nil {
		return fmt.Errorf("expected success, got %v", ctx.err)
	}
	return nil
}

func (ctx *economyContext) theRequestShouldBeRejectedWith(reason, message string) error {
	rejection, err := ctx.rejection()
	if err != nil {
		return err
	}
	if string(rejection.Reason) != reason {
		return fmt.Errorf("expected reason %s, got %s", reason, rejection.Reason)
	}
	if rejection.Message != message {
		return fmt.Errorf("expected message %q, got %q", message, rejection.Message)
	}
	return nil
}

func (ctx *economyContext) theRequestShouldFailValidationOn(field string) error {
	var verr *shared.ValidationError
	if !errors.As(ctx.err, &verr) {
		return fmt.Errorf("expected a validation error, got %v", ctx.err)
	}
	if verr.Field != field {
		return fmt.Errorf("expected field %s, got %s", field, verr.Field)
	}
	return nil
}

func (ctx *economyContext) nothingShouldHaveBeenWritten() error {
	if ctx.mock == nil {
		return fmt.Errorf("write tracking needs the in-memory store")
	}
	if writes := ctx.mock.WriteCalls(); len(writes) != 0 {
		return fmt.Errorf("expected no writes, got %v", writes)
	}
	return nil
}

func (ctx *economyContext) theKingdomShouldHaveMoney(money int) error {
	snap, err := ctx.stored()
	if err != nil {
		return err
	}
	if !snap.Money.Equal(decimal.NewFromInt(int64(money))) {
		return fmt.Errorf("expected money %d, got %s", money, snap.Money)
	}
	return nil
}

func (ctx *economyContext) theKingdomShouldHaveFuel(fuel int) error {
	snap, err := ctx.stored()
	if err != nil {
		return err
	}
	if !snap.Fuel.Equal(decimal.NewFromInt(int64(fuel))) {
		return fmt.Errorf("expected fuel %d, got %s", fuel, snap.Fuel)
	}
	return nil
}

func (ctx *economyContext) theKingdomShouldHaveUnits(n int, kind string) error {
	snap, err := ctx.stored()
	if err != nil {
		return err
	}
	if got := snap.Units.Get(kind); got != n {
		return fmt.Errorf("expected %d %s, got %d", n, kind, got)
	}
	return nil
}

func (ctx *economyContext) theQueueShouldHoldOrders(queue string, n int) error {
	orders, err := ctx.storedQueue(queue)
	if err != nil {
		return err
	}
	if len(orders) != n {
		return fmt.Errorf("expected %d orders in %s, got %d", n, queue, len(orders))
	}
	return nil
}

func (ctx *economyContext) theLastQueuedOrderShouldCompleteInHoursWith(queue string, hours int, table *godog.Table) error {
	orders, err := ctx.storedQueue(queue)
	if err != nil {
		return err
	}
	if len(orders) == 0 {
		return fmt.Errorf("queue %s is empty", queue)
	}
	last := orders[len(orders)-1]
	want := referenceTime.Add(time.Duration(hours) * time.Hour)
	if !last.Time.Equal(want) {
		return fmt.Errorf("expected completion %s, got %s", want, last.Time)
	}
	expected, err := inventoryFromTable(table)
	if err != nil {
		return err
	}
	for kind, n := range expected {
		if got := last.Quantity(kind); got != n {
			return fmt.Errorf("expected %d %s queued, got %d", n, kind, got)
		}
	}
	return nil
}

// cells reads the trimmed values of one table row
func cells(row *messages.PickleTableRow) []string {
	out := make([]string, len(row.Cells))
	for i, c := range row.Cells {
		out[i] = strings.TrimSpace(c.Value)
	}
	return out
}

// inventoryFromTable reads a "kind | count" table with a header row
func inventoryFromTable(table *godog.Table) (kingdom.Inventory, error) {
	inv := kingdom.Inventory{}
	for _, row := range table.Rows[1:] {
		values := cells(row)
		if len(values) != 2 {
			return nil, fmt.Errorf("expected kind | count, got %d cells", len(values))
		}
		n, err := strconv.Atoi(values[1])
		if err != nil {
			return nil, fmt.Errorf("invalid count %q for %s", values[1], values[0])
		}
		inv[values[0]] = n
	}
	return inv, nil
}

func countsFromTable(table *godog.Table) (map[string]int, error) {
	inv, err := inventoryFromTable(table)
	if err != nil {
		return nil, err
	}
	return map[string]int(inv), nil
}

// InitializeEconomyScenario registers the kingdom setup and the assertions
// shared by every feature
func InitializeEconomyScenario(sc *godog.ScenarioContext) {
	sc.Before(func(c context.Context, s *godog.Scenario) (context.Context, error) {
		economy.reset()
		return c, nil
	})

	sc.Step(`^kingdom (\d+) with (\d+) stars and (\d+) population$`, economy.aKingdomWithStarsAndPopulation)
	sc.Step(`^the kingdom has (\d+) money$`, economy.theKingdomHasMoney)
	sc.Step(`^the kingdom has (\d+) fuel$`, economy.theKingdomHasFuel)
	sc.Step(`^the kingdom owns (structures|units|missiles|project points|project max points|project assignments):$`, economy.theKingdomOwns)
	sc.Step(`^a general is deployed with:$`, economy.aGeneralIsDeployedWith)
	sc.Step(`^the "([^"]*)" queue holds orders completing in:$`, economy.queueHoldsOrdersCompletingIn)
	sc.Step(`^the kingdom is kept in the database$`, economy.theKingdomIsKeptInTheDatabase)

	sc.Step(`^the request should succeed$`, economy.theRequestShouldSucceed)
	sc.Step(`^the request should be rejected with ([A-Z_]+) "([^"]*)"$`, economy.theRequestShouldBeRejectedWith)
	sc.Step(`^the request should fail validation on "([^"]*)"$`, economy.theRequestShouldFailValidationOn)
	sc.Step(`^nothing should have been written to the store$`, economy.nothingShouldHaveBeenWritten)
	sc.Step(`^the kingdom should have (\d+) money$`, economy.theKingdomShouldHaveMoney)
	sc.Step(`^the kingdom should have (\d+) fuel$`, economy.theKingdomShouldHaveFuel)
	sc.Step(`^the kingdom should have (\d+) ([a-z_]+) units$`, economy.theKingdomShouldHaveUnits)
	sc.Step(`^the "([^"]*)" queue should hold (\d+) orders?$`, economy.theQueueShouldHoldOrders)
	sc.Step(`^the last "([^"]*)" order should complete in (\d+) hours with:$`, economy.theLastQueuedOrderShouldCompleteInHoursWith)
}
