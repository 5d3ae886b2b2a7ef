package projects_test

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/domnus-go/internal/domain/catalog"
	"github.com/andrescamacho/domnus-go/internal/domain/kingdom"
	"github.com/andrescamacho/domnus-go/internal/domain/projects"
	"github.com/andrescamacho/domnus-go/internal/domain/shared"
)

func newSnapshot() *kingdom.Snapshot {
	return &kingdom.Snapshot{
		Stars:            1000,
		Units:            kingdom.Inventory{"engineers": 100},
		ProjectsPoints:   kingdom.Inventory{"pop_bonus": 1581},
		ProjectsAssigned: kingdom.Inventory{"pop_bonus": 30, "fuel_bonus": 20},
	}
}

func assertRejected(t *testing.T, err error, reason shared.RejectionReason, message string) {
	t.Helper()
	var rejection *shared.Rejection
	require.True(t, errors.As(err, &rejection), "expected rejection, got %v", err)
	assert.Equal(t, reason, rejection.Reason)
	assert.Equal(t, message, rejection.Message)
}

func TestCurrentBonuses_ScenarioThousandStars(t *testing.T) {
	cat := catalog.Default()
	snap := newSnapshot()

	bonuses := projects.CurrentBonuses(cat, snap)

	assert.InDelta(t, 0.125, bonuses["pop_bonus"], 0.0001)
	assert.Equal(t, 0.0, bonuses["fuel_bonus"])
	assert.NotContains(t, bonuses, "big_flexers")
	assert.Len(t, projects.MaxBonuses(cat), 6)
	assert.Equal(t, 3162, projects.MaxPoints(cat, snap).Get("money_bonus"))
}

func TestCurrentBonuses_StoreMaxPointsWin(t *testing.T) {
	cat := catalog.Default()
	snap := newSnapshot()
	snap.ProjectsMaxPoints = kingdom.Inventory{"pop_bonus": 0, "spy_bonus": 100}
	snap.ProjectsPoints = kingdom.Inventory{"pop_bonus": 50, "spy_bonus": 40}

	bonuses := projects.CurrentBonuses(cat, snap)

	assert.Equal(t, 0.0, bonuses["pop_bonus"])
	assert.InDelta(t, 0.1, bonuses["spy_bonus"], 1e-9)
}

func TestBonus(t *testing.T) {
	assert.Equal(t, 0.25, projects.Bonus(0.25, 3162, 3162))
	assert.Equal(t, 0.0, projects.Bonus(0.25, 10, 0))
	assert.Equal(t, 0.0, projects.Bonus(0.25, 10, -4))
}

func TestAvailableEngineers(t *testing.T) {
	assert.Equal(t, 50, projects.AvailableEngineers(newSnapshot()))
}

func TestRequest_ExactlyOneAction(t *testing.T) {
	_, err := projects.Request{}.Action()
	assert.Error(t, err)

	_, err = projects.Request{Clear: []string{}, Add: kingdom.Inventory{}}.Action()
	assert.Error(t, err)

	action, err := projects.Request{Clear: []string{}}.Action()
	require.NoError(t, err)
	assert.Equal(t, projects.ActionClear, action)
}

func TestApply_Clear(t *testing.T) {
	cat := catalog.Default()

	next, err := projects.Apply(cat, newSnapshot(), projects.Request{Clear: []string{"pop_bonus"}})

	require.NoError(t, err)
	assert.Equal(t, 0, next.Get("pop_bonus"))
	assert.Equal(t, 20, next.Get("fuel_bonus"))
	assert.Len(t, next, 10)

	_, err = projects.Apply(cat, newSnapshot(), projects.Request{Clear: []string{"moon_bonus"}})
	assertRejected(t, err, shared.ReasonUnknownKind, projects.ClearMessage)
}

func TestApply_AssignReplacesMapping(t *testing.T) {
	cat := catalog.Default()

	next, err := projects.Apply(cat, newSnapshot(), projects.Request{Assign: kingdom.Inventory{"spy_bonus": 100}})

	require.NoError(t, err)
	assert.Equal(t, 100, next.Get("spy_bonus"))
	assert.Equal(t, 0, next.Get("pop_bonus"))
	assert.Equal(t, 100, next.Sum())
}

func TestApply_AssignValidatesAgainstTotalEngineers(t *testing.T) {
	cat := catalog.Default()

	_, err := projects.Apply(cat, newSnapshot(), projects.Request{Assign: kingdom.Inventory{"spy_bonus": 101}})
	assertRejected(t, err, shared.ReasonOverCapacity, projects.AssignMessage)

	_, err = projects.Apply(cat, newSnapshot(), projects.Request{Assign: kingdom.Inventory{"spy_bonus": 10, "pop_bonus": -1}})
	assertRejected(t, err, shared.ReasonNegativeQuantity, projects.AssignMessage)
}

func TestApply_AddIncrementsWithinUnassigned(t *testing.T) {
	cat := catalog.Default()

	next, err := projects.Apply(cat, newSnapshot(), projects.Request{Add: kingdom.Inventory{"pop_bonus": 25, "drone_gadgets": 25}})

	require.NoError(t, err)
	assert.Equal(t, 55, next.Get("pop_bonus"))
	assert.Equal(t, 25, next.Get("drone_gadgets"))
	assert.Equal(t, 20, next.Get("fuel_bonus"))

	_, err = projects.Apply(cat, newSnapshot(), projects.Request{Add: kingdom.Inventory{"pop_bonus": 51}})
	assertRejected(t, err, shared.ReasonOverCapacity, projects.AddMessage)

	_, err = projects.Apply(cat, newSnapshot(), projects.Request{Add: kingdom.Inventory{"pop_bonus": -2}})
	assertRejected(t, err, shared.ReasonNegativeQuantity, projects.AddMessage)
}

func TestDescribe(t *testing.T) {
	overview := projects.Describe(catalog.Default(), newSnapshot())

	assert.Equal(t, 50, overview.AvailableEngineers)
	assert.Equal(t, 30, overview.Assigned.Get("pop_bonus"))
	assert.Equal(t, 100000, overview.MaxPoints.Get("big_flexers"))
	assert.Equal(t, 1581, overview.Points.Get("pop_bonus"))
}

func TestApply_HugeEngineerCountsCannotWrapTheSum(t *testing.T) {
	cat := catalog.Default()
	huge := kingdom.Inventory{"pop_bonus": math.MaxInt, "fuel_bonus": math.MaxInt}

	_, err := projects.Apply(cat, newSnapshot(), projects.Request{Add: huge})
	assertRejected(t, err, shared.ReasonOverCapacity, projects.AddMessage)

	_, err = projects.Apply(cat, newSnapshot(), projects.Request{Assign: huge})
	assertRejected(t, err, shared.ReasonOverCapacity, projects.AssignMessage)

	_, err = projects.Apply(cat, newSnapshot(), projects.Request{Add: kingdom.Inventory{"pop_bonus": 10, "fuel_bonus": math.MaxInt - 5}})
	assertRejected(t, err, shared.ReasonOverCapacity, projects.AddMessage)
}
