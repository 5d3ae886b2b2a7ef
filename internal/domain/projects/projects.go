// Package projects derives project bonuses and manages engineer assignment
// across project slots.
package projects

import (
	"fmt"

	"github.com/andrescamacho/domnus-go/internal/domain/catalog"
	"github.com/andrescamacho/domnus-go/internal/domain/kingdom"
	"github.com/andrescamacho/domnus-go/internal/domain/shared"
)

// MaxBonuses lists the bonus cap of every stat-scaling project
func MaxBonuses(cat *catalog.Catalog) map[string]float64 {
	out := make(map[string]float64)
	for _, kind := range cat.ProjectKinds() {
		def, _ := cat.Project(kind)
		if def.Scaled {
			out[kind] = def.MaxBonus
		}
	}
	return out
}

// MaxPoints returns the points threshold of every project for the kingdom.
// The store's value wins; the catalog formula fills projects the store omits.
func MaxPoints(cat *catalog.Catalog, snap *kingdom.Snapshot) kingdom.Inventory {
	out := make(kingdom.Inventory, len(cat.ProjectKinds()))
	for _, kind := range cat.ProjectKinds() {
		if v, ok := snap.ProjectsMaxPoints[kind]; ok {
			out[kind] = v
			continue
		}
		out[kind], _ = cat.ProjectMaxPoints(kind, snap.Stars)
	}
	return out
}

// Bonus is maxBonus * points / maxPoints, or 0 when maxPoints is not positive
func Bonus(maxBonus float64, points, maxPoints int) float64 {
	if maxPoints <= 0 {
		return 0
	}
	return maxBonus * float64(points) / float64(maxPoints)
}

// CurrentBonuses returns the bonus fraction earned by every stat-scaling project
func CurrentBonuses(cat *catalog.Catalog, snap *kingdom.Snapshot) map[string]float64 {
	maxPoints := MaxPoints(cat, snap)
	out := make(map[string]float64)
	for kind, maxBonus := range MaxBonuses(cat) {
		out[kind] = Bonus(maxBonus, snap.ProjectsPoints.Get(kind), maxPoints.Get(kind))
	}
	return out
}

// AvailableEngineers is engineers owned minus engineers assigned to any project.
// It can be negative when engineers were lost after assignment.
func AvailableEngineers(snap *kingdom.Snapshot) int {
	return snap.Engineers() - snap.ProjectsAssigned.Sum()
}

// Overview is the read model of the projects screen
type Overview struct {
	CurrentBonuses     map[string]float64
	MaxBonuses         map[string]float64
	Points             kingdom.Inventory
	MaxPoints          kingdom.Inventory
	Assigned           kingdom.Inventory
	AvailableEngineers int
}

// Describe builds the projects overview
func Describe(cat *catalog.Catalog, snap *kingdom.Snapshot) Overview {
	return Overview{
		CurrentBonuses:     CurrentBonuses(cat, snap),
		MaxBonuses:         MaxBonuses(cat),
		Points:             snap.ProjectsPoints.Filter(cat.ProjectKinds()),
		MaxPoints:          MaxPoints(cat, snap),
		Assigned:           snap.ProjectsAssigned.Filter(cat.ProjectKinds()),
		AvailableEngineers: AvailableEngineers(snap),
	}
}

// Action names one of the mutually exclusive assignment operations
type Action string

const (
	ActionClear  Action = "clear"
	ActionAssign Action = "assign"
	ActionAdd    Action = "add"
)

// Request selects exactly one of Clear, Assign or Add
type Request struct {
	Clear  []string
	Assign kingdom.Inventory
	Add    kingdom.Inventory
}

// Action reports which operation the request selects
func (r Request) Action() (Action, error) {
	var selected []Action
	if r.Clear != nil {
		selected = append(selected, ActionClear)
	}
	if r.Assign != nil {
		selected = append(selected, ActionAssign)
	}
	if r.Add != nil {
		selected = append(selected, ActionAdd)
	}
	if len(selected) != 1 {
		return "", shared.NewValidationError("projects", fmt.Sprintf("exactly one of clear, assign or add is required, got %d", len(selected)))
	}
	return selected[0], nil
}

// Messages per action
const (
	ClearMessage  = "Please enter valid clear projects value"
	AssignMessage = "Please enter valid assign engineers value"
	AddMessage    = "Please enter valid add engineers value"
)

// Apply validates the request and returns the complete new assignment mapping
func Apply(cat *catalog.Catalog, snap *kingdom.Snapshot, r Request) (kingdom.Inventory, error) {
	action, err := r.Action()
	if err != nil {
		return nil, err
	}
	known := func(kind string) bool {
		_, ok := cat.Project(kind)
		return ok
	}
	current := zeroes(cat.ProjectKinds()).Plus(snap.ProjectsAssigned)

	switch action {
	case ActionClear:
		for _, kind := range r.Clear {
			if !known(kind) {
				return nil, shared.NewRejection(shared.ReasonUnknownKind, ClearMessage)
			}
			current[kind] = 0
		}
		return current, nil

	case ActionAssign:
		if rej := checkEngineers(r.Assign, snap.Engineers(), known, AssignMessage); rej != nil {
			return nil, rej
		}
		next := make(kingdom.Inventory, len(current))
		for kind := range current {
			next[kind] = r.Assign.Get(kind)
		}
		return next, nil

	default:
		if rej := checkEngineers(r.Add, AvailableEngineers(snap), known, AddMessage); rej != nil {
			return nil, rej
		}
		return current.Plus(r.Add), nil
	}
}

func checkEngineers(request kingdom.Inventory, limit int, known func(string) bool, message string) *shared.Rejection {
	for kind, n := range request {
		if !known(kind) {
			return shared.NewRejection(shared.ReasonUnknownKind, message)
		}
		if n < 0 {
			return shared.NewRejection(shared.ReasonNegativeQuantity, message)
		}
	}
	sum := 0
	for _, n := range request {
		// sum only grows while it stays within limit, so limit-sum cannot overflow
		if n > limit-sum {
			return shared.NewRejection(shared.ReasonOverCapacity, message)
		}
		sum += n
	}
	if sum > limit {
		return shared.NewRejection(shared.ReasonOverCapacity, message)
	}
	return nil
}

func zeroes(kinds []string) kingdom.Inventory {
	out := make(kingdom.Inventory, len(kinds))
	for _, k := range kinds {
		out[k] = 0
	}
	return out
}
