package store_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/domnus-go/internal/adapters/store"
	"github.com/andrescamacho/domnus-go/internal/domain/kingdom"
	"github.com/andrescamacho/domnus-go/internal/domain/shared"
)

type recordedRequest struct {
	Method string
	Path   string
	Key    string
	Body   map[string]interface{}
}

type fakeStore struct {
	mu       sync.Mutex
	requests []recordedRequest
	status   int
	kingdom  string
	queue    string
}

func (f *fakeStore) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	rec := recordedRequest{Method: r.Method, Path: r.URL.Path, Key: r.Header.Get("x-functions-key")}
	if raw, _ := io.ReadAll(r.Body); len(raw) > 0 {
		_ = json.Unmarshal(raw, &rec.Body)
	}
	f.requests = append(f.requests, rec)

	if f.status != 0 {
		w.WriteHeader(f.status)
		_, _ = w.Write([]byte("boom"))
		return
	}
	switch {
	case r.Method == http.MethodGet && r.URL.Path == "/kingdom/7":
		_, _ = w.Write([]byte(f.kingdom))
	case r.Method == http.MethodGet:
		_, _ = w.Write([]byte(f.queue))
	default:
		_, _ = w.Write([]byte(`"ok"`))
	}
}

func (f *fakeStore) Requests() []recordedRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]recordedRequest(nil), f.requests...)
}

func newClient(t *testing.T, fake *fakeStore) *store.HTTPKingdomStore {
	t.Helper()
	server := httptest.NewServer(fake)
	t.Cleanup(server.Close)
	return store.NewHTTPKingdomStore(store.Options{
		BaseURL:      server.URL,
		FunctionsKey: "secret",
		MaxFailures:  2,
	})
}

func TestGetKingdom_DecodesSnapshot(t *testing.T) {
	// Arrange
	fake := &fakeStore{kingdom: `{
		"stars": 1000, "population": 2500, "money": 1234.5, "fuel": 900,
		"structures": {"homes": 10}, "units": {"attack": 3, "engineers": 4},
		"missiles": {}, "generals_out": [{"attack": 2}],
		"projects_assigned": {"pop_bonus": 1}, "auto_spending": {"settle": 12.5},
		"name": "ignored"
	}`}
	client := newClient(t, fake)

	// Act
	snap, err := client.GetKingdom(context.Background(), shared.MustNewKingdomID(7))

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 1000, snap.Stars)
	assert.Equal(t, 2500, snap.Population)
	assert.True(t, snap.Money.Equal(decimal.RequireFromString("1234.5")))
	assert.Equal(t, 4, snap.Engineers())
	require.Len(t, snap.GeneralsOut, 1)
	assert.Equal(t, 2, snap.GeneralsOut[0].Get("attack"))
	assert.Equal(t, 12.5, snap.AutoSpending["settle"])
	assert.Equal(t, "secret", fake.Requests()[0].Key)
}

func TestGetKingdom_NotFound(t *testing.T) {
	// Arrange
	client := newClient(t, &fakeStore{status: http.StatusNotFound})

	// Act
	_, err := client.GetKingdom(context.Background(), shared.MustNewKingdomID(7))

	// Assert
	var notFound *shared.KingdomNotFoundError
	assert.True(t, errors.As(err, &notFound))
	assert.Equal(t, store.CircuitClosed, client.Breaker().GetState())
}

func TestGetQueue_ParsesEntriesInTimeOrder(t *testing.T) {
	// Arrange
	fake := &fakeStore{queue: `{"mobis": [
		{"time": "2026-05-10T12:00:00+00:00", "attack": 5},
		{"time": "2026-05-10T09:30:00.250000", "recruits": 10, "defense": 2.0}
	]}`}
	client := newClient(t, fake)

	// Act
	orders, err := client.GetQueue(context.Background(), shared.MustNewKingdomID(7), kingdom.QueueMobilization)

	// Assert
	require.NoError(t, err)
	require.Len(t, orders, 2)
	assert.Equal(t, time.Date(2026, 5, 10, 9, 30, 0, 250_000_000, time.UTC), orders[0].Time)
	assert.Equal(t, 10, orders[0].Quantity("recruits"))
	assert.Equal(t, 2, orders[0].Quantity("defense"))
	assert.Equal(t, 5, orders[1].Quantity("attack"))
	assert.Equal(t, "/kingdom/7/mobis", fake.Requests()[0].Path)
}

func TestGetQueue_MalformedTime(t *testing.T) {
	// Arrange
	client := newClient(t, &fakeStore{queue: `{"settles": [{"time": "yesterday", "amount": 1}]}`})

	// Act
	_, err := client.GetQueue(context.Background(), shared.MustNewKingdomID(7), kingdom.QueueSettlement)

	// Assert
	var malformed *shared.MalformedKingdomDataError
	assert.True(t, errors.As(err, &malformed))
}

func TestPatchAndAppend_WireFormat(t *testing.T) {
	// Arrange
	fake := &fakeStore{}
	client := newClient(t, fake)
	money := decimal.NewFromInt(762850)
	completion := time.Date(2026, 5, 10, 20, 0, 0, 0, time.UTC)

	// Act
	err := client.PatchKingdom(context.Background(), shared.MustNewKingdomID(7), kingdom.Patch{Money: &money})
	require.NoError(t, err)
	err = client.AppendQueue(context.Background(), shared.MustNewKingdomID(7), kingdom.QueueSettlement,
		kingdom.NewAmountOrder(completion, 150))
	require.NoError(t, err)

	// Assert
	requests := fake.Requests()
	require.Len(t, requests, 2)
	assert.Equal(t, http.MethodPatch, requests[0].Method)
	assert.Equal(t, "/kingdom/7", requests[0].Path)
	assert.Equal(t, map[string]interface{}{"money": 762850.0}, requests[0].Body)

	assert.Equal(t, "/kingdom/7/settles", requests[1].Path)
	entries := requests[1].Body["settles"].([]interface{})
	require.Len(t, entries, 1)
	entry := entries[0].(map[string]interface{})
	assert.Equal(t, "2026-05-10T20:00:00+00:00", entry["time"])
	assert.Equal(t, 150.0, entry["amount"])
}

func TestPatchKingdom_EmptyPatchIsNoop(t *testing.T) {
	fake := &fakeStore{}
	client := newClient(t, fake)

	require.NoError(t, client.PatchKingdom(context.Background(), shared.MustNewKingdomID(7), kingdom.Patch{}))

	assert.Empty(t, fake.Requests())
}

func TestServerErrors_OpenCircuit(t *testing.T) {
	// Arrange
	fake := &fakeStore{status: http.StatusInternalServerError}
	client := newClient(t, fake)
	id := shared.MustNewKingdomID(7)

	// Act
	_, err1 := client.GetKingdom(context.Background(), id)
	_, err2 := client.GetKingdom(context.Background(), id)
	_, err3 := client.GetKingdom(context.Background(), id)

	// Assert
	var statusErr *store.StatusError
	require.True(t, errors.As(err1, &statusErr))
	assert.Equal(t, http.StatusInternalServerError, statusErr.StatusCode)
	assert.Error(t, err2)
	assert.ErrorIs(t, err3, store.ErrCircuitOpen)
	assert.Len(t, fake.Requests(), 2)
}

func TestGetQueue_NaiveTimesUseConfiguredLocation(t *testing.T) {
	// Arrange
	fake := &fakeStore{queue: `{"settles": [
		{"time": "2026-05-10T14:00:00", "amount": 3},
		{"time": "2026-05-10T14:00:00+00:00", "amount": 4}
	]}`}
	server := httptest.NewServer(fake)
	t.Cleanup(server.Close)
	client := store.NewHTTPKingdomStore(store.Options{
		BaseURL:           server.URL,
		NaiveTimeLocation: time.FixedZone("CEST", 2*60*60),
	})

	// Act
	orders, err := client.GetQueue(context.Background(), shared.MustNewKingdomID(7), kingdom.QueueSettlement)

	// Assert
	require.NoError(t, err)
	require.Len(t, orders, 2)
	assert.Equal(t, time.Date(2026, 5, 10, 12, 0, 0, 0, time.UTC), orders[0].Time)
	assert.Equal(t, 3, orders[0].Amount())
	assert.Equal(t, time.Date(2026, 5, 10, 14, 0, 0, 0, time.UTC), orders[1].Time)
}
