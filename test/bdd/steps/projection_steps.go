package steps

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/cucumber/godog"

	"github.com/andrescamacho/domnus-go/internal/domain/kingdom"
	"github.com/andrescamacho/domnus-go/internal/domain/projection"
)

type projectionContext struct {
	current kingdom.Inventory
	orders  []kingdom.PendingOrder
	result  projection.Projection
}

func (ctx *projectionContext) reset() {
	ctx.current = nil
	ctx.orders = nil
	ctx.result = projection.Projection{}
}

func (ctx *projectionContext) theCurrentStockIs(table *godog.Table) error {
	inv, err := inventoryFromTable(table)
	if err != nil {
		return err
	}
	ctx.current = inv
	return nil
}

func (ctx *projectionContext) pendingOrdersCompletingAfter(table *godog.Table) error {
	for i, row := range table.Rows {
		if i == 0 {
			continue
		}
		minutes, err := strconv.Atoi(row.Cells[0].Value)
		if err != nil {
			return fmt.Errorf("invalid minutes %q", row.Cells[0].Value)
		}
		n, err := strconv.Atoi(row.Cells[2].Value)
		if err != nil {
			return fmt.Errorf("invalid quantity %q", row.Cells[2].Value)
		}
		completion := referenceTime.Add(time.Duration(minutes) * time.Minute)
		ctx.orders = append(ctx.orders, kingdom.NewPendingOrder(completion, kingdom.Inventory{row.Cells[1].Value: n}))
	}
	return nil
}

func (ctx *projectionContext) iAggregateKinds(kinds string) error {
	ctx.result = projection.Aggregate(referenceTime, ctx.current, splitKinds(kinds), ctx.orders, projection.DefaultHorizons)
	return nil
}

func (ctx *projectionContext) theHorizonsShouldBe(table *godog.Table) error {
	if len(table.Rows) == 0 {
		return fmt.Errorf("empty table")
	}
	header := table.Rows[0].Cells
	for _, row := range table.Rows[1:] {
		label := row.Cells[0].Value
		if _, ok := ctx.result.Horizons[label]; !ok && label != projection.CurrentLabel {
			return fmt.Errorf("no %s bucket", label)
		}
		bucket := ctx.result.At(label)
		for i := 1; i < len(row.Cells); i++ {
			kind := header[i].Value
			want, err := strconv.Atoi(row.Cells[i].Value)
			if err != nil {
				return fmt.Errorf("invalid quantity %q", row.Cells[i].Value)
			}
			if got := bucket.Get(kind); got != want {
				return fmt.Errorf("expected %d %s in %s, got %d", want, kind, label, got)
			}
		}
	}
	return nil
}

func (ctx *projectionContext) everyBucketShouldListAndNoMore(kinds string) error {
	want := splitKinds(kinds)
	check := func(label string, bucket kingdom.Inventory) error {
		if len(bucket) != len(want) {
			return fmt.Errorf("%s lists %d kinds, expected %d", label, len(bucket), len(want))
		}
		for _, k := range want {
			if _, ok := bucket[k]; !ok {
				return fmt.Errorf("%s is missing %s", label, k)
			}
		}
		return nil
	}
	for _, label := range ctx.result.Labels {
		if err := check(label, ctx.result.Horizons[label]); err != nil {
			return err
		}
	}
	return nil
}

func (ctx *projectionContext) theHorizonsShouldBeOrdered() error {
	if len(ctx.result.Labels) != len(projection.DefaultHorizons) {
		return fmt.Errorf("expected %d horizons, got %d", len(projection.DefaultHorizons), len(ctx.result.Labels))
	}
	for i, h := range projection.DefaultHorizons {
		if ctx.result.Labels[i] != h.Label {
			return fmt.Errorf("horizon %d is %s, expected %s", i, ctx.result.Labels[i], h.Label)
		}
	}
	return nil
}

func splitKinds(list string) []string {
	var kinds []string
	for _, k := range strings.Split(list, ",") {
		if k = strings.TrimSpace(k); k != "" {
			kinds = append(kinds, k)
		}
	}
	return kinds
}

// InitializeProjectionScenario registers the horizon aggregation steps
func InitializeProjectionScenario(sc *godog.ScenarioContext) {
	p := &projectionContext{}

	sc.Before(func(c context.Context, s *godog.Scenario) (context.Context, error) {
		p.reset()
		return c, nil
	})

	sc.Step(`^the current stock is:$`, p.theCurrentStockIs)
	sc.Step(`^pending orders completing after the given minutes:$`, p.pendingOrdersCompletingAfter)
	sc.Step(`^I aggregate "([^"]*)" over the default horizons$`, p.iAggregateKinds)
	sc.Step(`^the buckets should be:$`, p.theHorizonsShouldBe)
	sc.Step(`^every horizon bucket should list exactly "([^"]*)"$`, p.everyBucketShouldListAndNoMore)
	sc.Step(`^the horizons should run from nearest to furthest$`, p.theHorizonsShouldBeOrdered)
}
