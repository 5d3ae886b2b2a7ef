package shared

// RejectionReason classifies why an order was refused
type RejectionReason string

const (
	ReasonNegativeQuantity  RejectionReason = "NEGATIVE_QUANTITY"
	ReasonEmptyOrder        RejectionReason = "EMPTY_ORDER"
	ReasonOverCapacity      RejectionReason = "OVER_CAPACITY"
	ReasonInsufficientMoney RejectionReason = "INSUFFICIENT_MONEY"
	ReasonInsufficientFuel  RejectionReason = "INSUFFICIENT_FUEL"
	ReasonUnknownKind       RejectionReason = "UNKNOWN_KIND"
	ReasonInvalidPercent    RejectionReason = "INVALID_PERCENT"
)

// Rejection is returned when a well-formed order fails a game rule.
// Message is the single user-facing explanation for the order category;
// Reason tells callers which rule fired.
type Rejection struct {
	Reason  RejectionReason
	Message string
}

func (r *Rejection) Error() string {
	return r.Message
}

func NewRejection(reason RejectionReason, message string) *Rejection {
	return &Rejection{Reason: reason, Message: message}
}
