package queries

import (
	"context"
	"fmt"
	"time"

	"github.com/andrescamacho/domnus-go/internal/application/common"
	"github.com/andrescamacho/domnus-go/internal/domain/shared"
)

// GetTimeQuery requests the engine's reference instant
type GetTimeQuery struct{}

// GetTimeResponse carries the reference instant in UTC
type GetTimeResponse struct {
	Now time.Time
}

// GetTimeHandler handles the GetTime query
type GetTimeHandler struct {
	clock shared.Clock
}

// NewGetTimeHandler creates a new GetTimeHandler
func NewGetTimeHandler(clock shared.Clock) *GetTimeHandler {
	if clock == nil {
		clock = shared.NewRealClock()
	}
	return &GetTimeHandler{clock: clock}
}

// Handle executes the GetTime query
func (h *GetTimeHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	if _, ok := request.(*GetTimeQuery); !ok {
		return nil, fmt.Errorf("invalid request type: expected *GetTimeQuery")
	}
	return &GetTimeResponse{Now: h.clock.Now().UTC()}, nil
}
