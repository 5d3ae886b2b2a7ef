package shared

import "github.com/google/uuid"

// OrderContext carries traceability for one mutating request, from the transport
// down to the commit journal and order log.
//
// RequestID is the idempotency key: replaying an order with the same RequestID
// resumes or short-circuits an earlier commit instead of debiting twice.
type OrderContext struct {
	// RequestID is caller-supplied or generated; empty disables journaling
	RequestID string

	// Source names the surface that issued the order. Examples: "cli", "grpc"
	Source string
}

// NewOrderContext creates an order context; an empty requestID is left empty
func NewOrderContext(requestID, source string) *OrderContext {
	return &OrderContext{RequestID: requestID, Source: source}
}

// NewGeneratedOrderContext creates an order context with a fresh UUID request ID
func NewGeneratedOrderContext(source string) *OrderContext {
	return &OrderContext{RequestID: uuid.NewString(), Source: source}
}

// Journaled reports whether the order should go through the commit journal
func (o *OrderContext) Journaled() bool {
	return o != nil && o.RequestID != ""
}
