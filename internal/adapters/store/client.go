// Package store is the HTTP adapter for the external kingdom store.
package store

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/andrescamacho/domnus-go/internal/adapters/metrics"
	"github.com/andrescamacho/domnus-go/internal/domain/kingdom"
	"github.com/andrescamacho/domnus-go/internal/domain/shared"
)

const (
	defaultTimeout         = 30 * time.Second
	defaultRatePerSecond   = 10
	defaultBurst           = 10
	defaultMaxFailures     = 5
	defaultCircuitCooldown = 30 * time.Second

	functionsKeyHeader = "x-functions-key"
)

// Options configures the store client. Zero values fall back to defaults.
type Options struct {
	BaseURL         string
	FunctionsKey    string
	Timeout         time.Duration
	RatePerSecond   float64
	Burst           int
	MaxFailures     int
	CircuitCooldown time.Duration
	Clock           shared.Clock
	HTTPClient      *http.Client

	// NaiveTimeLocation reads queue times that carry no offset; nil means UTC
	NaiveTimeLocation *time.Location
}

// StatusError is returned when the store answers with a non-2xx status
type StatusError struct {
	Method     string
	Path       string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("kingdom store %s %s returned %d: %s", e.Method, e.Path, e.StatusCode, e.Body)
}

// HTTPKingdomStore implements kingdom.Store over the store's HTTP API.
// Calls are rate limited and guarded by a circuit breaker; nothing is retried.
type HTTPKingdomStore struct {
	httpClient   *http.Client
	rateLimiter  *rate.Limiter
	breaker      *CircuitBreaker
	baseURL      string
	functionsKey string
	clock        shared.Clock
	naiveTimeLoc *time.Location
}

// NewHTTPKingdomStore creates a store client
func NewHTTPKingdomStore(opts Options) *HTTPKingdomStore {
	if opts.Clock == nil {
		opts.Clock = shared.NewRealClock()
	}
	if opts.Timeout <= 0 {
		opts.Timeout = defaultTimeout
	}
	if opts.RatePerSecond <= 0 {
		opts.RatePerSecond = defaultRatePerSecond
	}
	if opts.Burst <= 0 {
		opts.Burst = defaultBurst
	}
	if opts.MaxFailures == 0 {
		opts.MaxFailures = defaultMaxFailures
	}
	if opts.CircuitCooldown <= 0 {
		opts.CircuitCooldown = defaultCircuitCooldown
	}
	if opts.NaiveTimeLocation == nil {
		opts.NaiveTimeLocation = time.UTC
	}
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: opts.Timeout}
	}

	return &HTTPKingdomStore{
		httpClient:   httpClient,
		rateLimiter:  rate.NewLimiter(rate.Limit(opts.RatePerSecond), opts.Burst),
		breaker:      NewCircuitBreaker(opts.MaxFailures, opts.CircuitCooldown, opts.Clock),
		baseURL:      strings.TrimRight(opts.BaseURL, "/"),
		functionsKey: opts.FunctionsKey,
		clock:        opts.Clock,
		naiveTimeLoc: opts.NaiveTimeLocation,
	}
}

// Breaker exposes the circuit breaker for health reporting
func (s *HTTPKingdomStore) Breaker() *CircuitBreaker {
	return s.breaker
}

// GetKingdom reads the current snapshot
func (s *HTTPKingdomStore) GetKingdom(ctx context.Context, id shared.KingdomID) (*kingdom.Snapshot, error) {
	path := fmt.Sprintf("/kingdom/%d", id.Value())

	raw, err := s.request(ctx, http.MethodGet, path, "kingdom", nil)
	if err != nil {
		var statusErr *StatusError
		if errors.As(err, &statusErr) && statusErr.StatusCode == http.StatusNotFound {
			return nil, shared.NewKingdomNotFoundError(id)
		}
		return nil, fmt.Errorf("failed to get kingdom: %w", err)
	}
	return DecodeKingdom(raw, id)
}

// GetQueue reads every pending order in a queue, sorted by completion time
func (s *HTTPKingdomStore) GetQueue(ctx context.Context, id shared.KingdomID, queue kingdom.Queue) ([]kingdom.PendingOrder, error) {
	if !queue.IsValid() {
		return nil, fmt.Errorf("unknown queue %q", queue)
	}
	path := fmt.Sprintf("/kingdom/%d/%s", id.Value(), queue)

	raw, err := s.request(ctx, http.MethodGet, path, queue.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to get %s queue: %w", queue, err)
	}
	orders, err := decodeQueue(raw, queue, s.naiveTimeLoc)
	if err != nil {
		return nil, shared.NewMalformedKingdomDataError(queue.String(), err)
	}
	return orders, nil
}

// PatchKingdom applies a partial snapshot update
func (s *HTTPKingdomStore) PatchKingdom(ctx context.Context, id shared.KingdomID, patch kingdom.Patch) error {
	if patch.IsEmpty() {
		return nil
	}
	path := fmt.Sprintf("/kingdom/%d", id.Value())
	if _, err := s.request(ctx, http.MethodPatch, path, "kingdom", patchBody(patch)); err != nil {
		return fmt.Errorf("failed to patch kingdom: %w", err)
	}
	return nil
}

// AppendQueue appends one order; the store treats a PATCH on a queue as append
func (s *HTTPKingdomStore) AppendQueue(ctx context.Context, id shared.KingdomID, queue kingdom.Queue, order kingdom.PendingOrder) error {
	if !queue.IsValid() {
		return fmt.Errorf("unknown queue %q", queue)
	}
	path := fmt.Sprintf("/kingdom/%d/%s", id.Value(), queue)
	body := map[string]interface{}{
		queue.String(): []map[string]interface{}{orderBody(order)},
	}
	if _, err := s.request(ctx, http.MethodPatch, path, queue.String(), body); err != nil {
		return fmt.Errorf("failed to append to %s queue: %w", queue, err)
	}
	return nil
}

// request performs one rate-limited, breaker-guarded call and returns the body
func (s *HTTPKingdomStore) request(ctx context.Context, method, path, resource string, body interface{}) ([]byte, error) {
	waitStart := s.clock.Now()
	if err := s.rateLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter error: %w", err)
	}
	metrics.RecordRateLimitWait(method, resource, s.clock.Now().Sub(waitStart).Seconds())

	var respBody []byte
	// client errors (4xx) are the caller's fault and do not trip the breaker
	var clientErr *StatusError
	err := s.breaker.Call(func() error {
		var reqBody io.Reader
		if body != nil {
			jsonData, err := json.Marshal(body)
			if err != nil {
				return fmt.Errorf("failed to marshal request body: %w", err)
			}
			reqBody = bytes.NewBuffer(jsonData)
		}

		req, err := http.NewRequestWithContext(ctx, method, s.baseURL+path, reqBody)
		if err != nil {
			return fmt.Errorf("failed to create request: %w", err)
		}
		req.Header.Set("Content-Type", "application/json")
		if s.functionsKey != "" {
			req.Header.Set(functionsKeyHeader, s.functionsKey)
		}

		start := s.clock.Now()
		resp, err := s.httpClient.Do(req)
		if err != nil {
			metrics.RecordStoreRequest(method, resource, 0, s.clock.Now().Sub(start).Seconds())
			return fmt.Errorf("network error: %w", err)
		}
		defer resp.Body.Close()

		respBody, err = io.ReadAll(resp.Body)
		metrics.RecordStoreRequest(method, resource, resp.StatusCode, s.clock.Now().Sub(start).Seconds())
		if err != nil {
			return fmt.Errorf("failed to read response: %w", err)
		}

		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			statusErr := &StatusError{Method: method, Path: path, StatusCode: resp.StatusCode, Body: string(respBody)}
			if resp.StatusCode < 500 {
				clientErr = statusErr
				return nil
			}
			return statusErr
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if clientErr != nil {
		return nil, clientErr
	}
	return respBody, nil
}
