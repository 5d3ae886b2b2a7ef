package production

import (
	"context"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"lukechampine.com/blake3"

	"github.com/andrescamacho/domnus-go/internal/domain/kingdom"
	"github.com/andrescamacho/domnus-go/internal/domain/shared"
)

// JournalState tracks how far a journaled commit got
type JournalState string

const (
	// JournalIntent: recorded before the debit; the debit may or may not have landed
	JournalIntent JournalState = "intent"
	// JournalDebited: the debit landed, the enqueue has not
	JournalDebited JournalState = "debited"
	// JournalCommitted: both store writes landed
	JournalCommitted JournalState = "committed"
)

// CommitKey identifies what a request asked for, independent of the snapshot
type CommitKey struct {
	KingdomID shared.KingdomID
	Category  CategoryName
	Request   kingdom.Inventory
}

// Fingerprint is a blake3 digest of the kingdom, category and requested
// quantities. Zero quantities are ignored.
func (k CommitKey) Fingerprint() string {
	kinds := k.Request.Kinds()
	var b strings.Builder
	fmt.Fprintf(&b, "%d|%s", k.KingdomID.Value(), k.Category)
	for _, kind := range kinds {
		if n := k.Request[kind]; n != 0 {
			fmt.Fprintf(&b, "|%s=%d", kind, n)
		}
	}
	sum := blake3.Sum256([]byte(b.String()))
	return hex.EncodeToString(sum[:])
}

// JournalEntry is the durable record of one request-id keyed commit
type JournalEntry struct {
	RequestID      string
	KingdomID      shared.KingdomID
	Category       CategoryName
	Queue          kingdom.Queue
	Fingerprint    string
	State          JournalState
	Cost           decimal.Decimal
	FuelCost       decimal.Decimal
	Payload        kingdom.Inventory
	CompletionTime time.Time
	UpdatedAt      time.Time
}

// Journal persists commit progress keyed by request ID
type Journal interface {
	// Find returns the entry for requestID, or nil when none exists
	Find(ctx context.Context, requestID string) (*JournalEntry, error)

	// Save inserts or replaces the entry for entry.RequestID
	Save(ctx context.Context, entry *JournalEntry) error
}

// ErrRequestIDReused is returned when a request ID is replayed with a different order
type ErrRequestIDReused struct {
	RequestID string
}

func (e *ErrRequestIDReused) Error() string {
	return fmt.Sprintf("request id %s was already used for a different order", e.RequestID)
}

// ErrReconcileRequired is returned when a journaled order stopped at its intent
// record. The debit may or may not have landed, so the kingdom has to be checked
// before the order is placed again under a new request ID.
type ErrReconcileRequired struct {
	RequestID string
}

func (e *ErrReconcileRequired) Error() string {
	return fmt.Sprintf("request id %s stopped before its debit was confirmed; check the kingdom and retry with a new request id", e.RequestID)
}
