package projects

import (
	"context"
	"fmt"

	"github.com/andrescamacho/domnus-go/internal/application/common"
	"github.com/andrescamacho/domnus-go/internal/application/production"
	"github.com/andrescamacho/domnus-go/internal/domain/catalog"
	"github.com/andrescamacho/domnus-go/internal/domain/kingdom"
	"github.com/andrescamacho/domnus-go/internal/domain/projects"
	"github.com/andrescamacho/domnus-go/internal/domain/shared"
)

// ManageProjectsCommand changes engineer assignments. Exactly one of Clear,
// Assign or Add must be set.
type ManageProjectsCommand struct {
	KingdomID shared.KingdomID
	Clear     []string
	Assign    map[string]int
	Add       map[string]int
}

// ManageProjectsResponse carries the assignment mapping written to the store
type ManageProjectsResponse struct {
	Action   projects.Action
	Assigned kingdom.Inventory
}

// ManageProjectsHandler handles the ManageProjects command
type ManageProjectsHandler struct {
	store   kingdom.Store
	catalog *catalog.Catalog
}

// NewManageProjectsHandler creates a new ManageProjectsHandler
func NewManageProjectsHandler(store kingdom.Store, cat *catalog.Catalog) *ManageProjectsHandler {
	if cat == nil {
		cat = catalog.Default()
	}
	return &ManageProjectsHandler{store: store, catalog: cat}
}

// Handle executes the ManageProjects command
func (h *ManageProjectsHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	cmd, ok := request.(*ManageProjectsCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *ManageProjectsCommand")
	}

	req := projects.Request{Clear: cmd.Clear}
	if cmd.Assign != nil {
		req.Assign = kingdom.Inventory(cmd.Assign)
	}
	if cmd.Add != nil {
		req.Add = kingdom.Inventory(cmd.Add)
	}
	action, err := req.Action()
	if err != nil {
		return nil, err
	}

	state, err := production.LoadKingdom(ctx, h.store, cmd.KingdomID)
	if err != nil {
		return nil, err
	}

	assigned, err := projects.Apply(h.catalog, state.Snapshot, req)
	if err != nil {
		return nil, err
	}

	if err := h.store.PatchKingdom(ctx, cmd.KingdomID, kingdom.Patch{ProjectsAssigned: assigned}); err != nil {
		return nil, fmt.Errorf("failed to update project assignments: %w", err)
	}

	common.LoggerFromContext(ctx).Log(common.LevelInfo, "Project assignments updated", map[string]interface{}{
		"kingdom_id": cmd.KingdomID.Value(),
		"action":     string(action),
		"assigned":   assigned.Sum(),
	})

	return &ManageProjectsResponse{Action: action, Assigned: assigned}, nil
}
