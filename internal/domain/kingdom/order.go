package kingdom

import "time"

// Queue names a per-category pending-order queue in the store
type Queue string

const (
	QueueMobilization Queue = "mobis"
	QueueStructures   Queue = "structures"
	QueueMissiles     Queue = "missiles"
	QueueEngineers    Queue = "engineers"
	QueueSettlement   Queue = "settles"
)

// AmountKind is the payload key for single-quantity orders (engineers, settlement)
const AmountKind = "amount"

// Queues lists every queue in a stable order
func Queues() []Queue {
	return []Queue{QueueMobilization, QueueStructures, QueueMissiles, QueueEngineers, QueueSettlement}
}

func (q Queue) String() string {
	return string(q)
}

// IsValid reports whether q is a known queue
func (q Queue) IsValid() bool {
	for _, known := range Queues() {
		if q == known {
			return true
		}
	}
	return false
}

// PendingOrder is one queued, unresolved order. It resolves wholly at Time;
// resolution is the store's job.
type PendingOrder struct {
	Time    time.Time
	Payload Inventory
}

// NewPendingOrder builds a per-kind order, dropping zero quantities
func NewPendingOrder(completion time.Time, quantities Inventory) PendingOrder {
	payload := make(Inventory, len(quantities))
	for k, v := range quantities {
		if v != 0 {
			payload[k] = v
		}
	}
	return PendingOrder{Time: completion, Payload: payload}
}

// NewAmountOrder builds a single-quantity order
func NewAmountOrder(completion time.Time, amount int) PendingOrder {
	return PendingOrder{Time: completion, Payload: Inventory{AmountKind: amount}}
}

func (o PendingOrder) CompletionTime() time.Time {
	return o.Time
}

func (o PendingOrder) Quantity(kind string) int {
	return o.Payload.Get(kind)
}

// Amount returns the single quantity of an engineers or settlement order
func (o PendingOrder) Amount() int {
	return o.Payload.Get(AmountKind)
}
