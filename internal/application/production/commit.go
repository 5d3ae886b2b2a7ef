package production

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/andrescamacho/domnus-go/internal/adapters/metrics"
	"github.com/andrescamacho/domnus-go/internal/application/common"
	"github.com/andrescamacho/domnus-go/internal/domain/kingdom"
	"github.com/andrescamacho/domnus-go/internal/domain/production"
	"github.com/andrescamacho/domnus-go/internal/domain/shared"
)

// CommitStage names the store write that failed
type CommitStage string

const (
	StageDebit   CommitStage = "debit"
	StageEnqueue CommitStage = "enqueue"
	StageJournal CommitStage = "journal"
)

// CommitError reports a store write failure during commit. A failure at
// StageEnqueue means the debit already landed; nothing is rolled back.
type CommitError struct {
	Stage     CommitStage
	KingdomID shared.KingdomID
	Queue     kingdom.Queue
	Err       error
}

func (e *CommitError) Error() string {
	return fmt.Sprintf("commit %s failed for kingdom %s (%s queue): %v", e.Stage, e.KingdomID, e.Queue, e.Err)
}

func (e *CommitError) Unwrap() error {
	return e.Err
}

// CommitResult describes a committed order
type CommitResult struct {
	KingdomID      shared.KingdomID
	Category       production.CategoryName
	Queue          kingdom.Queue
	Cost           decimal.Decimal
	FuelCost       decimal.Decimal
	Payload        kingdom.Inventory
	CompletionTime time.Time
	RequestID      string
	// Replayed is true when the result comes from the journal, not a new commit
	Replayed bool
}

// Committer turns a validated plan into a debit followed by a queue append.
// With a journal and a request ID, progress is recorded so a retried request
// resumes instead of debiting twice.
type Committer struct {
	store   kingdom.Store
	journal production.Journal
	clock   shared.Clock
	epoch   time.Duration
}

// NewCommitter creates a committer; journal may be nil
func NewCommitter(store kingdom.Store, journal production.Journal, clock shared.Clock, epoch time.Duration) *Committer {
	if clock == nil {
		clock = shared.NewRealClock()
	}
	return &Committer{store: store, journal: journal, clock: clock, epoch: epoch}
}

func (c *Committer) journaled(oc *shared.OrderContext) bool {
	return c.journal != nil && oc.Journaled()
}

// Replay returns the outcome of an earlier commit under the same request ID.
// It returns nil when the request is new, in which case the caller validates
// and commits afresh. An entry still at intent yields *ErrReconcileRequired.
func (c *Committer) Replay(ctx context.Context, oc *shared.OrderContext, key production.CommitKey) (*CommitResult, error) {
	if !c.journaled(oc) {
		return nil, nil
	}

	entry, err := c.journal.Find(ctx, oc.RequestID)
	if err != nil {
		return nil, fmt.Errorf("failed to read commit journal: %w", err)
	}
	if entry == nil {
		return nil, nil
	}
	if entry.Fingerprint != key.Fingerprint() {
		return nil, &production.ErrRequestIDReused{RequestID: oc.RequestID}
	}

	logger := common.LoggerFromContext(ctx)
	metadata := map[string]interface{}{
		"kingdom_id": key.KingdomID.Value(),
		"request_id": oc.RequestID,
		"state":      string(entry.State),
	}

	switch entry.State {
	case production.JournalCommitted:
		metrics.RecordJournalReplay(string(key.Category), string(entry.State))
		logger.Log(common.LevelInfo, "Replayed committed order", metadata)
		return resultFromEntry(entry, true), nil

	case production.JournalDebited:
		metrics.RecordJournalReplay(string(key.Category), string(entry.State))
		logger.Log(common.LevelWarn, "Resuming order after debit", metadata)
		order := kingdom.NewPendingOrder(entry.CompletionTime, entry.Payload)
		if err := c.enqueue(ctx, entry, order); err != nil {
			return nil, err
		}
		return resultFromEntry(entry, true), nil
	}

	// intent only: whether the debit landed is unknown
	metrics.RecordJournalReplay(string(key.Category), string(entry.State))
	logger.Log(common.LevelError, "Order needs reconciliation before retry", metadata)
	return nil, &production.ErrReconcileRequired{RequestID: oc.RequestID}
}

// Commit debits the kingdom, then appends the order to its queue. The two
// writes are not atomic; a failure is returned as *CommitError.
func (c *Committer) Commit(ctx context.Context, oc *shared.OrderContext, key production.CommitKey, snap *kingdom.Snapshot, plan *production.Plan) (*CommitResult, error) {
	completion := plan.Category.CompletionAt(c.clock.Now(), c.epoch)
	order := kingdom.NewPendingOrder(completion, plan.Payload)

	var entry *production.JournalEntry
	if c.journaled(oc) {
		entry = &production.JournalEntry{
			RequestID:      oc.RequestID,
			KingdomID:      key.KingdomID,
			Category:       key.Category,
			Queue:          plan.Category.Queue,
			Fingerprint:    key.Fingerprint(),
			State:          production.JournalIntent,
			Cost:           plan.Cost,
			FuelCost:       plan.FuelCost,
			Payload:        order.Payload,
			CompletionTime: completion,
		}
		if err := c.save(ctx, entry); err != nil {
			return nil, err
		}
	}

	if err := c.store.PatchKingdom(ctx, key.KingdomID, plan.Patch(snap)); err != nil {
		metrics.RecordCommitFailure(string(key.Category), string(StageDebit))
		return nil, &CommitError{Stage: StageDebit, KingdomID: key.KingdomID, Queue: plan.Category.Queue, Err: err}
	}

	if entry != nil {
		entry.State = production.JournalDebited
		if err := c.save(ctx, entry); err != nil {
			return nil, err
		}
	} else {
		entry = &production.JournalEntry{
			KingdomID:      key.KingdomID,
			Category:       key.Category,
			Queue:          plan.Category.Queue,
			Cost:           plan.Cost,
			FuelCost:       plan.FuelCost,
			Payload:        order.Payload,
			CompletionTime: completion,
		}
	}

	if err := c.enqueue(ctx, entry, order); err != nil {
		return nil, err
	}

	return resultFromEntry(entry, false), nil
}

func (c *Committer) enqueue(ctx context.Context, entry *production.JournalEntry, order kingdom.PendingOrder) error {
	if err := c.store.AppendQueue(ctx, entry.KingdomID, entry.Queue, order); err != nil {
		metrics.RecordCommitFailure(string(entry.Category), string(StageEnqueue))
		return &CommitError{Stage: StageEnqueue, KingdomID: entry.KingdomID, Queue: entry.Queue, Err: err}
	}
	if entry.RequestID == "" {
		return nil
	}
	entry.State = production.JournalCommitted
	return c.save(ctx, entry)
}

func (c *Committer) save(ctx context.Context, entry *production.JournalEntry) error {
	entry.UpdatedAt = c.clock.Now()
	if err := c.journal.Save(ctx, entry); err != nil {
		return &CommitError{Stage: StageJournal, KingdomID: entry.KingdomID, Queue: entry.Queue, Err: err}
	}
	return nil
}

func resultFromEntry(entry *production.JournalEntry, replayed bool) *CommitResult {
	return &CommitResult{
		KingdomID:      entry.KingdomID,
		Category:       entry.Category,
		Queue:          entry.Queue,
		Cost:           entry.Cost,
		FuelCost:       entry.FuelCost,
		Payload:        entry.Payload.Clone(),
		CompletionTime: entry.CompletionTime,
		RequestID:      entry.RequestID,
		Replayed:       replayed,
	}
}
