package production_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appproduction "github.com/andrescamacho/domnus-go/internal/application/production"
	"github.com/andrescamacho/domnus-go/internal/domain/catalog"
	"github.com/andrescamacho/domnus-go/internal/domain/kingdom"
	"github.com/andrescamacho/domnus-go/internal/domain/production"
	"github.com/andrescamacho/domnus-go/internal/domain/shared"
	"github.com/andrescamacho/domnus-go/test/helpers"
)

var now = time.Date(2026, 5, 10, 8, 0, 0, 0, time.UTC)

type fixture struct {
	cat       *catalog.Catalog
	store     *helpers.MockKingdomStore
	journal   *helpers.MockJournal
	committer *appproduction.Committer
	id        shared.KingdomID
}

func newFixture(withJournal bool) *fixture {
	cat := catalog.Default()
	store := helpers.NewMockKingdomStore()
	store.SetKingdom(1, &kingdom.Snapshot{
		Stars:      1000,
		Population: 1000,
		Money:      decimal.NewFromInt(1_000_000),
		Fuel:       decimal.NewFromInt(100_000),
	})
	f := &fixture{cat: cat, store: store, id: shared.MustNewKingdomID(1)}
	var journal production.Journal
	if withJournal {
		f.journal = helpers.NewMockJournal()
		journal = f.journal
	}
	f.committer = appproduction.NewCommitter(store, journal, shared.NewMockClock(now), cat.Epoch())
	return f
}

func (f *fixture) settlePlan(t *testing.T, amount int) (*kingdom.Snapshot, *production.Plan, production.CommitKey) {
	t.Helper()
	snap := f.store.Kingdom(1)
	snap.ID = f.id
	overview := production.Settlement(f.cat, now, snap, nil)
	plan, err := production.ValidateSettlement(f.cat, snap, overview, amount)
	require.NoError(t, err)
	key := production.CommitKey{
		KingdomID: f.id,
		Category:  production.CategorySettlement,
		Request:   kingdom.Inventory{kingdom.AmountKind: amount},
	}
	return snap, plan, key
}

func TestCommit_DebitsBeforeEnqueue(t *testing.T) {
	// Arrange
	f := newFixture(false)
	snap, plan, key := f.settlePlan(t, 150)

	// Act
	result, err := f.committer.Commit(context.Background(), nil, key, snap, plan)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, []string{"PatchKingdom", "AppendQueue:settles"}, f.store.WriteCalls())
	assert.True(t, result.Cost.Equal(decimal.NewFromInt(237150)))
	assert.Equal(t, now.Add(12*time.Hour), result.CompletionTime)
	assert.False(t, result.Replayed)

	assert.True(t, f.store.Kingdom(1).Money.Equal(decimal.NewFromInt(1_000_000-237150)))
	queued := f.store.Queue(1, kingdom.QueueSettlement)
	require.Len(t, queued, 1)
	assert.Equal(t, 150, queued[0].Amount())
	assert.Equal(t, now.Add(12*time.Hour), queued[0].Time)
}

func TestCommit_EnqueueFailureKeepsDebit(t *testing.T) {
	// Arrange
	f := newFixture(false)
	f.store.FailOn("AppendQueue", errors.New("store unavailable"))
	snap, plan, key := f.settlePlan(t, 10)

	// Act
	result, err := f.committer.Commit(context.Background(), nil, key, snap, plan)

	// Assert
	assert.Nil(t, result)
	var commitErr *appproduction.CommitError
	require.True(t, errors.As(err, &commitErr))
	assert.Equal(t, appproduction.StageEnqueue, commitErr.Stage)
	assert.Equal(t, kingdom.QueueSettlement, commitErr.Queue)
	assert.EqualError(t, errors.Unwrap(commitErr), "store unavailable")

	assert.True(t, f.store.Kingdom(1).Money.LessThan(decimal.NewFromInt(1_000_000)))
	assert.Empty(t, f.store.Queue(1, kingdom.QueueSettlement))
}

func TestCommit_DebitFailureSkipsEnqueue(t *testing.T) {
	// Arrange
	f := newFixture(false)
	f.store.FailOn("PatchKingdom", errors.New("timeout"))
	snap, plan, key := f.settlePlan(t, 10)

	// Act
	_, err := f.committer.Commit(context.Background(), nil, key, snap, plan)

	// Assert
	var commitErr *appproduction.CommitError
	require.True(t, errors.As(err, &commitErr))
	assert.Equal(t, appproduction.StageDebit, commitErr.Stage)
	assert.Equal(t, []string{"PatchKingdom"}, f.store.WriteCalls())
}

func TestCommit_JournalRecordsEveryStage(t *testing.T) {
	// Arrange
	f := newFixture(true)
	snap, plan, key := f.settlePlan(t, 20)
	oc := shared.NewOrderContext("req-1", "test")

	// Act
	result, err := f.committer.Commit(context.Background(), oc, key, snap, plan)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "req-1", result.RequestID)
	assert.Equal(t, []production.JournalState{
		production.JournalIntent,
		production.JournalDebited,
		production.JournalCommitted,
	}, f.journal.States())
}

func TestCommit_WithoutRequestIDSkipsJournal(t *testing.T) {
	// Arrange
	f := newFixture(true)
	snap, plan, key := f.settlePlan(t, 20)

	// Act
	_, err := f.committer.Commit(context.Background(), shared.NewOrderContext("", "test"), key, snap, plan)

	// Assert
	require.NoError(t, err)
	assert.Empty(t, f.journal.States())
}

func TestReplay_CommittedReturnsRecordedResult(t *testing.T) {
	// Arrange
	f := newFixture(true)
	snap, plan, key := f.settlePlan(t, 20)
	oc := shared.NewOrderContext("req-2", "test")
	first, err := f.committer.Commit(context.Background(), oc, key, snap, plan)
	require.NoError(t, err)
	writes := len(f.store.WriteCalls())

	// Act
	replayed, err := f.committer.Replay(context.Background(), oc, key)

	// Assert
	require.NoError(t, err)
	require.NotNil(t, replayed)
	assert.True(t, replayed.Replayed)
	assert.True(t, first.Cost.Equal(replayed.Cost))
	assert.Equal(t, first.CompletionTime, replayed.CompletionTime)
	assert.Len(t, f.store.WriteCalls(), writes)
}

func TestReplay_DebitedRetriesOnlyEnqueue(t *testing.T) {
	// Arrange
	f := newFixture(true)
	_, _, key := f.settlePlan(t, 30)
	completion := now.Add(-time.Hour)
	f.journal.Put(production.JournalEntry{
		RequestID:      "req-3",
		KingdomID:      f.id,
		Category:       production.CategorySettlement,
		Queue:          kingdom.QueueSettlement,
		Fingerprint:    key.Fingerprint(),
		State:          production.JournalDebited,
		Cost:           decimal.NewFromInt(47430),
		Payload:        kingdom.Inventory{kingdom.AmountKind: 30},
		CompletionTime: completion,
	})

	// Act
	result, err := f.committer.Replay(context.Background(), shared.NewOrderContext("req-3", "test"), key)

	// Assert
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.True(t, result.Replayed)
	assert.Equal(t, []string{"AppendQueue:settles"}, f.store.WriteCalls())
	queued := f.store.Queue(1, kingdom.QueueSettlement)
	require.Len(t, queued, 1)
	assert.Equal(t, completion, queued[0].Time)
	assert.Equal(t, []production.JournalState{production.JournalCommitted}, f.journal.States())
}

func TestReplay_IntentNeedsReconciliation(t *testing.T) {
	// Arrange
	f := newFixture(true)
	_, _, key := f.settlePlan(t, 30)
	f.journal.Put(production.JournalEntry{
		RequestID:   "req-4",
		KingdomID:   f.id,
		Category:    production.CategorySettlement,
		Fingerprint: key.Fingerprint(),
		State:       production.JournalIntent,
	})

	// Act
	result, err := f.committer.Replay(context.Background(), shared.NewOrderContext("req-4", "test"), key)

	// Assert
	assert.Nil(t, result)
	var reconcile *production.ErrReconcileRequired
	require.ErrorAs(t, err, &reconcile)
	assert.Equal(t, "req-4", reconcile.RequestID)
	assert.Empty(t, f.store.WriteCalls())
}

func TestCommit_LostDebitedRecordNeverDebitsTwice(t *testing.T) {
	// Arrange
	f := newFixture(true)
	f.journal.FailSaveAt(2, errors.New("journal unavailable"))
	snap, plan, key := f.settlePlan(t, 20)
	oc := shared.NewOrderContext("req-7", "test")

	// Act
	_, commitErr := f.committer.Commit(context.Background(), oc, key, snap, plan)
	result, replayErr := f.committer.Replay(context.Background(), oc, key)

	// Assert
	var stageErr *appproduction.CommitError
	require.ErrorAs(t, commitErr, &stageErr)
	assert.Equal(t, appproduction.StageJournal, stageErr.Stage)

	assert.Nil(t, result)
	var reconcile *production.ErrReconcileRequired
	require.ErrorAs(t, replayErr, &reconcile)

	assert.Equal(t, []string{"PatchKingdom"}, f.store.WriteCalls())
	debited := decimal.NewFromInt(1_000_000).Sub(plan.Cost)
	assert.True(t, f.store.Kingdom(1).Money.Equal(debited), "money %s", f.store.Kingdom(1).Money)
	assert.Empty(t, f.store.Queue(1, kingdom.QueueSettlement))
}

func TestReplay_ReusedRequestIDWithDifferentOrder(t *testing.T) {
	// Arrange
	f := newFixture(true)
	snap, plan, key := f.settlePlan(t, 10)
	oc := shared.NewOrderContext("req-5", "test")
	_, err := f.committer.Commit(context.Background(), oc, key, snap, plan)
	require.NoError(t, err)

	other := key
	other.Request = kingdom.Inventory{kingdom.AmountKind: 11}

	// Act
	_, err = f.committer.Replay(context.Background(), oc, other)

	// Assert
	var reused *production.ErrRequestIDReused
	require.True(t, errors.As(err, &reused))
	assert.Equal(t, "req-5", reused.RequestID)
}

func TestLoadKingdom_ReadsSnapshotThenQueues(t *testing.T) {
	// Arrange
	f := newFixture(false)
	f.store.SetQueue(1, kingdom.QueueSettlement, []kingdom.PendingOrder{kingdom.NewAmountOrder(now.Add(time.Hour), 5)})

	// Act
	state, err := appproduction.LoadKingdom(context.Background(), f.store, f.id, kingdom.QueueSettlement)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, f.id, state.Snapshot.ID)
	assert.Len(t, state.Queue(kingdom.QueueSettlement), 1)
	assert.Equal(t, []string{"GetKingdom", "GetQueue:settles"}, f.store.Calls())
}

func TestLoadKingdom_UnknownKingdom(t *testing.T) {
	// Arrange
	f := newFixture(false)

	// Act
	_, err := appproduction.LoadKingdom(context.Background(), f.store, shared.MustNewKingdomID(99))

	// Assert
	var notFound *shared.KingdomNotFoundError
	assert.True(t, errors.As(err, &notFound))
}
