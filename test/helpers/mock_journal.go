package helpers

import (
	"context"
	"sync"

	"github.com/andrescamacho/domnus-go/internal/domain/production"
)

// MockJournal is an in-memory production.Journal
type MockJournal struct {
	mu      sync.Mutex
	entries map[string]production.JournalEntry
	saves   []production.JournalState

	saveErr   error
	failAt    int
	failAtErr error
	attempts  int
}

// NewMockJournal creates an empty journal
func NewMockJournal() *MockJournal {
	return &MockJournal{entries: make(map[string]production.JournalEntry)}
}

// FailSaves makes every Save return err
func (j *MockJournal) FailSaves(err error) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.saveErr = err
}

// FailSaveAt makes only the nth Save (1-based) return err
func (j *MockJournal) FailSaveAt(n int, err error) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.failAt = n
	j.failAtErr = err
}

// States returns the state of every save, in order
func (j *MockJournal) States() []production.JournalState {
	j.mu.Lock()
	defer j.mu.Unlock()
	return append([]production.JournalState(nil), j.saves...)
}

// Put seeds an entry
func (j *MockJournal) Put(entry production.JournalEntry) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.entries[entry.RequestID] = entry
}

func (j *MockJournal) Find(ctx context.Context, requestID string) (*production.JournalEntry, error) {
	j.mu.Lock()
	defer j.mu.Unlock()
	entry, ok := j.entries[requestID]
	if !ok {
		return nil, nil
	}
	entry.Payload = entry.Payload.Clone()
	return &entry, nil
}

func (j *MockJournal) Save(ctx context.Context, entry *production.JournalEntry) error {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.attempts++
	if j.saveErr != nil {
		return j.saveErr
	}
	if j.attempts == j.failAt {
		return j.failAtErr
	}
	stored := *entry
	stored.Payload = entry.Payload.Clone()
	j.entries[entry.RequestID] = stored
	j.saves = append(j.saves, entry.State)
	return nil
}
