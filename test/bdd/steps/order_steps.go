package steps

import (
	"errors"
	"fmt"
	"time"

	"github.com/cucumber/godog"
	"github.com/shopspring/decimal"

	productionCommands "github.com/andrescamacho/domnus-go/internal/application/production/commands"
	"github.com/andrescamacho/domnus-go/internal/domain/production"
)

func (ctx *economyContext) iSettleStars(amount int) error {
	return ctx.send(&productionCommands.SettleCommand{KingdomID: ctx.id(), Amount: amount})
}

func (ctx *economyContext) iSettleStarsWithRequestID(amount int, requestID string) error {
	return ctx.send(&productionCommands.SettleCommand{KingdomID: ctx.id(), Amount: amount, RequestID: requestID})
}

func (ctx *economyContext) iRepeatTheSettleOrderWithRequestID(amount int, requestID string) error {
	return ctx.resend(&productionCommands.SettleCommand{KingdomID: ctx.id(), Amount: amount, RequestID: requestID})
}

func (ctx *economyContext) iRecruit(amount int) error {
	return ctx.send(&productionCommands.RecruitCommand{KingdomID: ctx.id(), Amount: amount})
}

func (ctx *economyContext) iTrainEngineers(amount int) error {
	return ctx.send(&productionCommands.TrainEngineersCommand{KingdomID: ctx.id(), Amount: amount})
}

func (ctx *economyContext) iTrainSpecialists(table *godog.Table) error {
	units, err := countsFromTable(table)
	if err != nil {
		return err
	}
	return ctx.send(&productionCommands.TrainSpecialistsCommand{KingdomID: ctx.id(), Units: units})
}

func (ctx *economyContext) iBuildStructures(table *godog.Table) error {
	structures, err := countsFromTable(table)
	if err != nil {
		return err
	}
	return ctx.send(&productionCommands.BuildStructuresCommand{KingdomID: ctx.id(), Structures: structures})
}

func (ctx *economyContext) iBuildMissiles(table *godog.Table) error {
	missiles, err := countsFromTable(table)
	if err != nil {
		return err
	}
	return ctx.send(&productionCommands.BuildMissilesCommand{KingdomID: ctx.id(), Missiles: missiles})
}

func (ctx *economyContext) placed() (*productionCommands.PlaceOrderResponse, error) {
	if ctx.err != nil {
		return nil, fmt.Errorf("order failed: %v", ctx.err)
	}
	resp, ok := ctx.response.(*productionCommands.PlaceOrderResponse)
	if !ok {
		return nil, fmt.Errorf("expected *PlaceOrderResponse, got %T", ctx.response)
	}
	return resp, nil
}

func (ctx *economyContext) theOrderShouldCost(cost int) error {
	resp, err := ctx.placed()
	if err != nil {
		return err
	}
	if !resp.Result.Cost.Equal(decimal.NewFromInt(int64(cost))) {
		return fmt.Errorf("expected cost %d, got %s", cost, resp.Result.Cost)
	}
	return nil
}

func (ctx *economyContext) theOrderShouldCostFuel(fuel int) error {
	resp, err := ctx.placed()
	if err != nil {
		return err
	}
	if !resp.Result.FuelCost.Equal(decimal.NewFromInt(int64(fuel))) {
		return fmt.Errorf("expected fuel cost %d, got %s", fuel, resp.Result.FuelCost)
	}
	return nil
}

func (ctx *economyContext) theOrderShouldCompleteInHours(hours int) error {
	resp, err := ctx.placed()
	if err != nil {
		return err
	}
	want := referenceTime.Add(time.Duration(hours) * time.Hour)
	if !resp.Result.CompletionTime.Equal(want) {
		return fmt.Errorf("expected completion %s, got %s", want, resp.Result.CompletionTime)
	}
	return nil
}

func (ctx *economyContext) theOrderShouldBeReplayed() error {
	resp, err := ctx.placed()
	if err != nil {
		return err
	}
	if !resp.Result.Replayed {
		return fmt.Errorf("expected the journalled result to be replayed")
	}
	return nil
}

func (ctx *economyContext) theRequestIDShouldBeReportedAsReused(requestID string) error {
	var reused *production.ErrRequestIDReused
	if !errors.As(ctx.err, &reused) {
		return fmt.Errorf("expected a reused request id error, got %v", ctx.err)
	}
	if reused.RequestID != requestID {
		return fmt.Errorf("expected request id %s, got %s", requestID, reused.RequestID)
	}
	return nil
}

// InitializeOrderScenario registers the order placement steps
func InitializeOrderScenario(sc *godog.ScenarioContext) {
	sc.Step(`^I settle (\d+) stars$`, economy.iSettleStars)
	sc.Step(`^I settle (\d+) stars with request id "([^"]*)"$`, economy.iSettleStarsWithRequestID)
	sc.Step(`^I repeat the order to settle (\d+) stars with request id "([^"]*)"$`, economy.iRepeatTheSettleOrderWithRequestID)
	sc.Step(`^I recruit (-?\d+) recruits$`, economy.iRecruit)
	sc.Step(`^I train (-?\d+) engineers$`, economy.iTrainEngineers)
	sc.Step(`^I train specialists:$`, economy.iTrainSpecialists)
	sc.Step(`^I build structures:$`, economy.iBuildStructures)
	sc.Step(`^I build missiles:$`, economy.iBuildMissiles)

	sc.Step(`^the order should cost (\d+) money$`, economy.theOrderShouldCost)
	sc.Step(`^the order should cost (\d+) fuel$`, economy.theOrderShouldCostFuel)
	sc.Step(`^the order should complete in (\d+) hours$`, economy.theOrderShouldCompleteInHours)
	sc.Step(`^the order should be replayed from the journal$`, economy.theOrderShouldBeReplayed)
	sc.Step(`^request id "([^"]*)" should be reported as reused$`, economy.theRequestIDShouldBeReportedAsReused)
}
