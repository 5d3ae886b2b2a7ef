package steps

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/cucumber/godog"

	appProjects "github.com/andrescamacho/domnus-go/internal/application/projects"
	appSpending "github.com/andrescamacho/domnus-go/internal/application/spending"
)

func (ctx *economyContext) iAssignEngineers(table *godog.Table) error {
	counts, err := countsFromTable(table)
	if err != nil {
		return err
	}
	return ctx.send(&appProjects.ManageProjectsCommand{KingdomID: ctx.id(), Assign: counts})
}

func (ctx *economyContext) iAddEngineers(table *godog.Table) error {
	counts, err := countsFromTable(table)
	if err != nil {
		return err
	}
	return ctx.send(&appProjects.ManageProjectsCommand{KingdomID: ctx.id(), Add: counts})
}

func (ctx *economyContext) iClearProjects(list string) error {
	var names []string
	for _, name := range strings.Split(list, ",") {
		names = append(names, strings.TrimSpace(name))
	}
	return ctx.send(&appProjects.ManageProjectsCommand{KingdomID: ctx.id(), Clear: names})
}

func (ctx *economyContext) iAssignAndAddEngineersAtOnce() error {
	return ctx.send(&appProjects.ManageProjectsCommand{
		KingdomID: ctx.id(),
		Assign:    map[string]int{"pop_bonus": 1},
		Add:       map[string]int{"fuel_bonus": 1},
	})
}

func (ctx *economyContext) iViewTheProjects() error {
	return ctx.send(&appProjects.GetProjectsQuery{KingdomID: ctx.id()})
}

func (ctx *economyContext) engineersShouldBeAssignedTo(n int, project string) error {
	snap, err := ctx.stored()
	if err != nil {
		return err
	}
	if got := snap.ProjectsAssigned.Get(project); got != n {
		return fmt.Errorf("expected %d engineers on %s, got %d", n, project, got)
	}
	return nil
}

func (ctx *economyContext) projectsOverview() (*appProjects.GetProjectsResponse, error) {
	if ctx.err != nil {
		return nil, fmt.Errorf("projects query failed: %v", ctx.err)
	}
	resp, ok := ctx.response.(*appProjects.GetProjectsResponse)
	if !ok {
		return nil, fmt.Errorf("expected a projects overview, got %T", ctx.response)
	}
	return resp, nil
}

func (ctx *economyContext) availableEngineersShouldBe(n int) error {
	resp, err := ctx.projectsOverview()
	if err != nil {
		return err
	}
	if resp.Overview.AvailableEngineers != n {
		return fmt.Errorf("expected %d available engineers, got %d", n, resp.Overview.AvailableEngineers)
	}
	return nil
}

func (ctx *economyContext) theProjectBonusShouldBe(project string, bonus float64) error {
	resp, err := ctx.projectsOverview()
	if err != nil {
		return err
	}
	got := resp.Overview.CurrentBonuses[project]
	if math.Abs(got-bonus) > 1e-9 {
		return fmt.Errorf("expected %s bonus %v, got %v", project, bonus, got)
	}
	return nil
}

func (ctx *economyContext) everyBonusShouldStayWithinItsMaximum() error {
	resp, err := ctx.projectsOverview()
	if err != nil {
		return err
	}
	for project, bonus := range resp.Overview.CurrentBonuses {
		max := resp.Overview.MaxBonuses[project]
		if bonus < 0 || bonus > max {
			return fmt.Errorf("%s bonus %v outside 0..%v", project, bonus, max)
		}
	}
	return nil
}

// Spending

func (ctx *economyContext) theKingdomSpends(table *godog.Table) error {
	shares := make(map[string]float64)
	for i, row := range table.Rows {
		if i == 0 {
			continue
		}
		v, err := strconv.ParseFloat(row.Cells[1].Value, 64)
		if err != nil {
			return fmt.Errorf("invalid percent %q", row.Cells[1].Value)
		}
		shares[row.Cells[0].Value] = v
	}
	ctx.snapshot.AutoSpending = shares
	return nil
}

func (ctx *economyContext) iSetSpending(table *godog.Table) error {
	cmd := &appSpending.UpdateSpendingCommand{KingdomID: ctx.id()}
	for i, row := range table.Rows {
		if i == 0 {
			continue
		}
		v, err := strconv.ParseFloat(row.Cells[1].Value, 64)
		if err != nil {
			return fmt.Errorf("invalid percent %q", row.Cells[1].Value)
		}
		switch row.Cells[0].Value {
		case "settle":
			cmd.Settle = &v
		case "structures":
			cmd.Structures = &v
		case "military":
			cmd.Military = &v
		case "engineers":
			cmd.Engineers = &v
		default:
			return fmt.Errorf("unknown spending key %q", row.Cells[0].Value)
		}
	}
	return ctx.send(cmd)
}

func (ctx *economyContext) theStoredSpendingShouldBe(table *godog.Table) error {
	snap, err := ctx.stored()
	if err != nil {
		return err
	}
	for i, row := range table.Rows {
		if i == 0 {
			continue
		}
		want, err := strconv.ParseFloat(row.Cells[1].Value, 64)
		if err != nil {
			return fmt.Errorf("invalid percent %q", row.Cells[1].Value)
		}
		if got := snap.AutoSpending[row.Cells[0].Value]; got != want {
			return fmt.Errorf("expected %s at %v%%, got %v%%", row.Cells[0].Value, want, got)
		}
	}
	return nil
}

// InitializeProjectsScenario registers the projects and spending steps
func InitializeProjectsScenario(sc *godog.ScenarioContext) {
	sc.Step(`^I assign engineers:$`, economy.iAssignEngineers)
	sc.Step(`^I add engineers:$`, economy.iAddEngineers)
	sc.Step(`^I clear the projects "([^"]*)"$`, economy.iClearProjects)
	sc.Step(`^I assign and add engineers in the same request$`, economy.iAssignAndAddEngineersAtOnce)
	sc.Step(`^I view the projects$`, economy.iViewTheProjects)
	sc.Step(`^(\d+) engineers should be assigned to ([a-z_]+)$`, economy.engineersShouldBeAssignedTo)
	sc.Step(`^(-?\d+) engineers should be available$`, economy.availableEngineersShouldBe)
	sc.Step(`^the ([a-z_]+) bonus should be ([0-9.]+)$`, economy.theProjectBonusShouldBe)
	sc.Step(`^every project bonus should stay within its maximum$`, economy.everyBonusShouldStayWithinItsMaximum)

	sc.Step(`^the kingdom spends:$`, economy.theKingdomSpends)
	sc.Step(`^I set spending:$`, economy.iSetSpending)
	sc.Step(`^the stored spending should be:$`, economy.theStoredSpendingShouldBe)
}
