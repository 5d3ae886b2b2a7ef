package kingdom

import (
	"context"

	"github.com/andrescamacho/domnus-go/internal/domain/shared"
)

// Store is the external kingdom store. It owns snapshots and queues; the engine
// only reads them and issues patches and appends.
type Store interface {
	// GetKingdom reads the current snapshot
	GetKingdom(ctx context.Context, id shared.KingdomID) (*Snapshot, error)

	// GetQueue reads every pending order in the given queue
	GetQueue(ctx context.Context, id shared.KingdomID, queue Queue) ([]PendingOrder, error)

	// PatchKingdom applies a partial snapshot update
	PatchKingdom(ctx context.Context, id shared.KingdomID, patch Patch) error

	// AppendQueue appends one order to the given queue
	AppendQueue(ctx context.Context, id shared.KingdomID, queue Queue, order PendingOrder) error
}
