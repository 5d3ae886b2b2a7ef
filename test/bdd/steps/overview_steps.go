package steps

import (
	"fmt"

	"github.com/cucumber/godog"

	productionQueries "github.com/andrescamacho/domnus-go/internal/application/production/queries"
	"github.com/andrescamacho/domnus-go/internal/domain/kingdom"
	"github.com/andrescamacho/domnus-go/internal/domain/production"
	"github.com/andrescamacho/domnus-go/internal/domain/projection"
)

func (ctx *economyContext) iViewTheOverview(category string) error {
	var query interface{}
	switch category {
	case "settlement":
		query = &productionQueries.GetSettlementQuery{KingdomID: ctx.id()}
	case "structures":
		query = &productionQueries.GetStructuresQuery{KingdomID: ctx.id()}
	case "engineers":
		query = &productionQueries.GetEngineersQuery{KingdomID: ctx.id()}
	case "mobilization":
		query = &productionQueries.GetMobilizationQuery{KingdomID: ctx.id()}
	case "missiles":
		query = &productionQueries.GetMissilesQuery{KingdomID: ctx.id()}
	default:
		return fmt.Errorf("unknown overview %q", category)
	}
	return ctx.send(query)
}

// availability picks the scalar availability a category reports
func (ctx *economyContext) availability(category string) (production.Availability, error) {
	if ctx.err != nil {
		return production.Availability{}, fmt.Errorf("overview failed: %v", ctx.err)
	}
	switch resp := ctx.response.(type) {
	case *productionQueries.GetSettlementResponse:
		return resp.Overview.Availability, nil
	case *productionQueries.GetStructuresResponse:
		return resp.Overview.Availability, nil
	case *productionQueries.GetEngineersResponse:
		return resp.Overview.Availability, nil
	case *productionQueries.GetMobilizationResponse:
		if category == "recruits" {
			return resp.Overview.Recruits, nil
		}
	}
	return production.Availability{}, fmt.Errorf("no %s availability in %T", category, ctx.response)
}

// horizonBuckets returns the per-horizon buckets of the last overview, nearest first
func (ctx *economyContext) horizonBuckets() ([]kingdom.Inventory, error) {
	if ctx.err != nil {
		return nil, fmt.Errorf("overview failed: %v", ctx.err)
	}
	var p projection.Projection
	switch resp := ctx.response.(type) {
	case *productionQueries.GetSettlementResponse:
		p = resp.Overview.Projection
	case *productionQueries.GetStructuresResponse:
		p = resp.Overview.Projection
	case *productionQueries.GetEngineersResponse:
		p = resp.Overview.Projection
	case *productionQueries.GetMobilizationResponse:
		out := make([]kingdom.Inventory, 0, len(projection.DefaultHorizons))
		for _, h := range projection.DefaultHorizons {
			out = append(out, resp.Overview.Units.Get(h.Label))
		}
		return out, nil
	default:
		return nil, fmt.Errorf("%T has no projection", ctx.response)
	}
	out := make([]kingdom.Inventory, 0, len(p.Labels))
	for _, label := range p.Labels {
		out = append(out, p.At(label))
	}
	return out, nil
}

func (ctx *economyContext) bucket(label string) (kingdom.Inventory, error) {
	if ctx.err != nil {
		return nil, fmt.Errorf("overview failed: %v", ctx.err)
	}
	switch resp := ctx.response.(type) {
	case *productionQueries.GetSettlementResponse:
		return resp.Overview.Projection.At(label), nil
	case *productionQueries.GetStructuresResponse:
		return resp.Overview.Projection.At(label), nil
	case *productionQueries.GetEngineersResponse:
		return resp.Overview.Projection.At(label), nil
	case *productionQueries.GetMobilizationResponse:
		return resp.Overview.Units.Get(label), nil
	}
	return nil, fmt.Errorf("%T has no buckets", ctx.response)
}

func (ctx *economyContext) theAvailabilityShouldBe(category string, current, max int) error {
	a, err := ctx.availability(category)
	if err != nil {
		return err
	}
	if a.Current != current || a.Max != max {
		return fmt.Errorf("expected %s availability %d of %d, got %d of %d", category, current, max, a.Current, a.Max)
	}
	return nil
}

func (ctx *economyContext) theAvailabilityShouldBeWithinItsCeiling(category string) error {
	a, err := ctx.availability(category)
	if err != nil {
		return err
	}
	if a.Current < 0 || a.Current > a.Max {
		return fmt.Errorf("%s availability %d outside 0..%d", category, a.Current, a.Max)
	}
	return nil
}

func (ctx *economyContext) thePriceShouldBe(category string, price int) error {
	if ctx.err != nil {
		return fmt.Errorf("overview failed: %v", ctx.err)
	}
	var got int
	switch resp := ctx.response.(type) {
	case *productionQueries.GetSettlementResponse:
		got = resp.Overview.Price
	case *productionQueries.GetStructuresResponse:
		got = resp.Overview.Price
	case *productionQueries.GetEngineersResponse:
		got = resp.Overview.Price
	case *productionQueries.GetMobilizationResponse:
		got = resp.Overview.RecruitPrice
	default:
		return fmt.Errorf("%T has no %s price", ctx.response, category)
	}
	if got != price {
		return fmt.Errorf("expected %s price %d, got %d", category, price, got)
	}
	return nil
}

func (ctx *economyContext) theProjectionShouldNeverDecrease() error {
	buckets, err := ctx.horizonBuckets()
	if err != nil {
		return err
	}
	for i := 1; i < len(buckets); i++ {
		for kind, n := range buckets[i-1] {
			if buckets[i].Get(kind) < n {
				return fmt.Errorf("%s drops from %d to %d between horizons %d and %d", kind, n, buckets[i].Get(kind), i-1, i)
			}
		}
	}
	return nil
}

func (ctx *economyContext) theBucketShouldHold(label string, n int, kind string) error {
	b, err := ctx.bucket(label)
	if err != nil {
		return err
	}
	if got := b.Get(kind); got != n {
		return fmt.Errorf("expected %d %s in %s, got %d", n, kind, label, got)
	}
	return nil
}

func (ctx *economyContext) mobilization() (*production.MobilizationOverview, error) {
	if ctx.err != nil {
		return nil, fmt.Errorf("overview failed: %v", ctx.err)
	}
	resp, ok := ctx.response.(*productionQueries.GetMobilizationResponse)
	if !ok {
		return nil, fmt.Errorf("expected a mobilization overview, got %T", ctx.response)
	}
	return &resp.Overview, nil
}

func (ctx *economyContext) theOffenseAndDefenseShouldBe(label string, offense, defense int) error {
	m, err := ctx.mobilization()
	if err != nil {
		return err
	}
	if m.Maxes.Offense[label] != offense || m.Maxes.Defense[label] != defense {
		return fmt.Errorf("expected %s offense/defense %d/%d, got %d/%d",
			label, offense, defense, m.Maxes.Offense[label], m.Maxes.Defense[label])
	}
	return nil
}

func (ctx *economyContext) theHangarShouldBeUsed(used, max int) error {
	m, err := ctx.mobilization()
	if err != nil {
		return err
	}
	if m.Hangar.Used != used || m.Hangar.Max != max {
		return fmt.Errorf("expected hangar %d of %d, got %d of %d", used, max, m.Hangar.Used, m.Hangar.Max)
	}
	return nil
}

func (ctx *economyContext) missiles() (*production.MissilesOverview, error) {
	if ctx.err != nil {
		return nil, fmt.Errorf("overview failed: %v", ctx.err)
	}
	resp, ok := ctx.response.(*productionQueries.GetMissilesResponse)
	if !ok {
		return nil, fmt.Errorf("expected a missiles overview, got %T", ctx.response)
	}
	return &resp.Overview, nil
}

func (ctx *economyContext) theMissileAvailabilityShouldBe(kind string, current, max int) error {
	m, err := ctx.missiles()
	if err != nil {
		return err
	}
	a := m.Available[kind]
	if a.Current != current || a.Max != max {
		return fmt.Errorf("expected %s availability %d of %d, got %d of %d", kind, current, max, a.Current, a.Max)
	}
	return nil
}

func (ctx *economyContext) missilesUnderConstruction(n int, kind string) error {
	m, err := ctx.missiles()
	if err != nil {
		return err
	}
	if got := m.Building.Get(kind); got != n {
		return fmt.Errorf("expected %d %s building, got %d", n, kind, got)
	}
	return nil
}

// InitializeOverviewScenario registers the overview steps
func InitializeOverviewScenario(sc *godog.ScenarioContext) {
	sc.Step(`^I view the (settlement|structures|engineers|mobilization|missiles) overview$`, economy.iViewTheOverview)

	sc.Step(`^the (settlement|structures|engineers|recruits) availability should be (\d+) of (\d+)$`, economy.theAvailabilityShouldBe)
	sc.Step(`^the (settlement|structures|engineers|recruits) availability should stay within its ceiling$`, economy.theAvailabilityShouldBeWithinItsCeiling)
	sc.Step(`^the (settlement|structures|engineers|recruit) price should be (\d+)$`, economy.thePriceShouldBe)
	sc.Step(`^no projected quantity should decrease from one horizon to the next$`, economy.theProjectionShouldNeverDecrease)
	sc.Step(`^the "([^"]*)" bucket should hold (\d+) ([a-z_]+)$`, economy.theBucketShouldHold)
	sc.Step(`^the "([^"]*)" offense and defense should be (\d+) and (\d+)$`, economy.theOffenseAndDefenseShouldBe)
	sc.Step(`^the hangar should be using (\d+) of (\d+)$`, economy.theHangarShouldBeUsed)
	sc.Step(`^([a-z_]+) missile availability should be (\d+) of (\d+)$`, economy.theMissileAvailabilityShouldBe)
	sc.Step(`^(\d+) ([a-z_]+) should be under construction$`, economy.missilesUnderConstruction)
}
