package production

import (
	"context"
	"fmt"

	"github.com/andrescamacho/domnus-go/internal/domain/kingdom"
	"github.com/andrescamacho/domnus-go/internal/domain/shared"
)

// KingdomState is one request's view of the store: the snapshot plus the
// pending queues the request asked for
type KingdomState struct {
	Snapshot *kingdom.Snapshot
	Queues   map[kingdom.Queue][]kingdom.PendingOrder
}

// Queue returns the pending orders of q, empty when not loaded
func (s *KingdomState) Queue(q kingdom.Queue) []kingdom.PendingOrder {
	return s.Queues[q]
}

// LoadKingdom reads the snapshot, then each requested queue in order.
// Store failures are returned wrapped; nothing is retried.
func LoadKingdom(ctx context.Context, store kingdom.Store, id shared.KingdomID, queues ...kingdom.Queue) (*KingdomState, error) {
	snap, err := store.GetKingdom(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to read kingdom %s: %w", id, err)
	}
	if snap == nil {
		return nil, shared.NewKingdomNotFoundError(id)
	}
	snap.ID = id

	state := &KingdomState{
		Snapshot: snap,
		Queues:   make(map[kingdom.Queue][]kingdom.PendingOrder, len(queues)),
	}
	for _, q := range queues {
		orders, err := store.GetQueue(ctx, id, q)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s queue of kingdom %s: %w", q, id, err)
		}
		state.Queues[q] = orders
	}
	return state, nil
}
