package helpers

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/andrescamacho/domnus-go/internal/domain/kingdom"
	"github.com/andrescamacho/domnus-go/internal/domain/shared"
)

// MockKingdomStore is an in-memory kingdom.Store that applies patches and
// appends like the real store and records every call in order
type MockKingdomStore struct {
	mu sync.Mutex

	kingdoms map[int]*kingdom.Snapshot
	queues   map[int]map[kingdom.Queue][]kingdom.PendingOrder

	// Call tracking, e.g. "GetKingdom", "PatchKingdom", "AppendQueue:settles"
	calls   []string
	patches []kingdom.Patch

	// Error injection by method name
	failures map[string]error
}

// NewMockKingdomStore creates an empty mock store
func NewMockKingdomStore() *MockKingdomStore {
	return &MockKingdomStore{
		kingdoms: make(map[int]*kingdom.Snapshot),
		queues:   make(map[int]map[kingdom.Queue][]kingdom.PendingOrder),
		failures: make(map[string]error),
	}
}

// SetKingdom stores a copy of snap under id
func (m *MockKingdomStore) SetKingdom(id int, snap *kingdom.Snapshot) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.kingdoms[id] = CloneSnapshot(snap)
}

// SetQueue replaces a queue's pending orders
func (m *MockKingdomStore) SetQueue(id int, queue kingdom.Queue, orders []kingdom.PendingOrder) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.queues[id] == nil {
		m.queues[id] = make(map[kingdom.Queue][]kingdom.PendingOrder)
	}
	m.queues[id][queue] = append([]kingdom.PendingOrder(nil), orders...)
}

// FailOn makes every call to method return err; a nil err clears the failure
func (m *MockKingdomStore) FailOn(method string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err == nil {
		delete(m.failures, method)
		return
	}
	m.failures[method] = err
}

// Calls returns the recorded calls in order
func (m *MockKingdomStore) Calls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.calls...)
}

// WriteCalls returns only PatchKingdom and AppendQueue calls, in order
func (m *MockKingdomStore) WriteCalls() []string {
	var out []string
	for _, c := range m.Calls() {
		if c == "PatchKingdom" || strings.HasPrefix(c, "AppendQueue") {
			out = append(out, c)
		}
	}
	return out
}

// Patches returns every patch received, in order
func (m *MockKingdomStore) Patches() []kingdom.Patch {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]kingdom.Patch(nil), m.patches...)
}

// Kingdom returns a copy of the stored snapshot
func (m *MockKingdomStore) Kingdom(id int) *kingdom.Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	return CloneSnapshot(m.kingdoms[id])
}

// Queue returns the stored pending orders of a queue
func (m *MockKingdomStore) Queue(id int, queue kingdom.Queue) []kingdom.PendingOrder {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]kingdom.PendingOrder(nil), m.queues[id][queue]...)
}

func (m *MockKingdomStore) record(call, method string) error {
	m.calls = append(m.calls, call)
	return m.failures[method]
}

func (m *MockKingdomStore) GetKingdom(ctx context.Context, id shared.KingdomID) (*kingdom.Snapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.record("GetKingdom", "GetKingdom"); err != nil {
		return nil, err
	}
	snap, ok := m.kingdoms[id.Value()]
	if !ok {
		return nil, shared.NewKingdomNotFoundError(id)
	}
	return CloneSnapshot(snap), nil
}

func (m *MockKingdomStore) GetQueue(ctx context.Context, id shared.KingdomID, queue kingdom.Queue) ([]kingdom.PendingOrder, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.record("GetQueue:"+queue.String(), "GetQueue"); err != nil {
		return nil, err
	}
	return append([]kingdom.PendingOrder(nil), m.queues[id.Value()][queue]...), nil
}

func (m *MockKingdomStore) PatchKingdom(ctx context.Context, id shared.KingdomID, patch kingdom.Patch) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.record("PatchKingdom", "PatchKingdom"); err != nil {
		return err
	}
	snap, ok := m.kingdoms[id.Value()]
	if !ok {
		return shared.NewKingdomNotFoundError(id)
	}
	m.patches = append(m.patches, patch)
	ApplyPatch(snap, patch)
	return nil
}

func (m *MockKingdomStore) AppendQueue(ctx context.Context, id shared.KingdomID, queue kingdom.Queue, order kingdom.PendingOrder) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.record("AppendQueue:"+queue.String(), "AppendQueue"); err != nil {
		return err
	}
	if !queue.IsValid() {
		return fmt.Errorf("unknown queue %q", queue)
	}
	if m.queues[id.Value()] == nil {
		m.queues[id.Value()] = make(map[kingdom.Queue][]kingdom.PendingOrder)
	}
	m.queues[id.Value()][queue] = append(m.queues[id.Value()][queue], order)
	return nil
}

// ApplyPatch merges a patch into snap the way the store does: set fields replace
func ApplyPatch(snap *kingdom.Snapshot, patch kingdom.Patch) {
	if patch.Money != nil {
		snap.Money = *patch.Money
	}
	if patch.Fuel != nil {
		snap.Fuel = *patch.Fuel
	}
	if patch.Units != nil {
		snap.Units = patch.Units.Clone()
	}
	if patch.Structures != nil {
		snap.Structures = patch.Structures.Clone()
	}
	if patch.ProjectsAssigned != nil {
		snap.ProjectsAssigned = patch.ProjectsAssigned.Clone()
	}
	if patch.AutoSpending != nil {
		snap.AutoSpending = make(map[string]float64, len(patch.AutoSpending))
		for k, v := range patch.AutoSpending {
			snap.AutoSpending[k] = v
		}
	}
}

// CloneSnapshot deep-copies a snapshot; nil stays nil
func CloneSnapshot(s *kingdom.Snapshot) *kingdom.Snapshot {
	if s == nil {
		return nil
	}
	out := *s
	out.Structures = s.Structures.Clone()
	out.Units = s.Units.Clone()
	out.Missiles = s.Missiles.Clone()
	out.ProjectsPoints = s.ProjectsPoints.Clone()
	out.ProjectsMaxPoints = s.ProjectsMaxPoints.Clone()
	out.ProjectsAssigned = s.ProjectsAssigned.Clone()
	out.GeneralsOut = make([]kingdom.Inventory, len(s.GeneralsOut))
	for i, g := range s.GeneralsOut {
		out.GeneralsOut[i] = g.Clone()
	}
	if s.AutoSpending != nil {
		out.AutoSpending = make(map[string]float64, len(s.AutoSpending))
		for k, v := range s.AutoSpending {
			out.AutoSpending[k] = v
		}
	}
	return &out
}
