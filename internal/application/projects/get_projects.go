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

// GetProjectsQuery requests project points, bonuses and free engineers
type GetProjectsQuery struct {
	KingdomID shared.KingdomID
}

// GetProjectsResponse carries the projects overview
type GetProjectsResponse struct {
	Overview projects.Overview
}

// GetProjectsHandler handles the GetProjects query
type GetProjectsHandler struct {
	store   kingdom.Store
	catalog *catalog.Catalog
}

// NewGetProjectsHandler creates a new GetProjectsHandler
func NewGetProjectsHandler(store kingdom.Store, cat *catalog.Catalog) *GetProjectsHandler {
	if cat == nil {
		cat = catalog.Default()
	}
	return &GetProjectsHandler{store: store, catalog: cat}
}

// Handle executes the GetProjects query
func (h *GetProjectsHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	query, ok := request.(*GetProjectsQuery)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *GetProjectsQuery")
	}

	state, err := production.LoadKingdom(ctx, h.store, query.KingdomID)
	if err != nil {
		return nil, err
	}

	return &GetProjectsResponse{Overview: projects.Describe(h.catalog, state.Snapshot)}, nil
}
