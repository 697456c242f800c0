// Package testing provides test utilities for actz-based test suites.
//
// This package includes a configurable mock middleware, a scripted schema,
// and assertion helpers so pipelines under test can be observed without
// hand-writing recording closures in every test.
//
// Example usage:
//
//	func TestSignupPipeline(t *testing.T) {
//		mock := acttest.NewMockMiddleware(t)
//		mock.WithPatch(actz.Ctx{"userId": "u1"})
//
//		client := actz.NewClient(actz.Config{}).Use(mock.Middleware())
//		action := actz.NewAction[In, Out]("signup", client, schema).Handler(handler)
//
//		res := action.Exec(context.Background(), input)
//		acttest.AssertOk(t, res)
//		mock.AssertCalled(t, 1)
//	}
package testing

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/zoobzio/actz"
)

// MockCall records a single pass through a MockMiddleware.
type MockCall struct {
	Ctx          actz.Ctx
	Metadata     actz.Metadata
	InvocationID string
	Timestamp    time.Time
}

// MockMiddleware is a configurable middleware double. It records every call
// and can be scripted to patch the context, short-circuit the chain, fail,
// panic, or delay - covering the behaviors the action engine must contain.
type MockMiddleware struct {
	t            *testing.T
	callCount    int64
	mu           sync.RWMutex
	patch        actz.Ctx
	shortCircuit any
	hasShort     bool
	returnErr    error
	panicValue   any
	delay        time.Duration
	history      []MockCall
}

// NewMockMiddleware creates a mock middleware that forwards to the rest of
// the chain with no context patch until configured otherwise.
func NewMockMiddleware(t *testing.T) *MockMiddleware {
	return &MockMiddleware{t: t}
}

// WithPatch configures the context patch passed to Next on every call.
func (m *MockMiddleware) WithPatch(patch actz.Ctx) *MockMiddleware {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.patch = patch
	return m
}

// WithShortCircuit configures the mock to return value without calling Next,
// terminating the chain early.
func (m *MockMiddleware) WithShortCircuit(value any) *MockMiddleware {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.shortCircuit = value
	m.hasShort = true
	return m
}

// WithError configures the mock to fail without calling Next.
func (m *MockMiddleware) WithError(err error) *MockMiddleware {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.returnErr = err
	return m
}

// WithPanic configures the mock to panic with the given value.
func (m *MockMiddleware) WithPanic(value any) *MockMiddleware {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.panicValue = value
	return m
}

// WithDelay configures the mock to wait before proceeding, honoring context
// cancellation.
func (m *MockMiddleware) WithDelay(d time.Duration) *MockMiddleware {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.delay = d
	return m
}

// Middleware returns the chain link for this mock.
func (m *MockMiddleware) Middleware() actz.Middleware {
	return func(ctx context.Context, req *actz.MiddlewareRequest) (any, error) {
		atomic.AddInt64(&m.callCount, 1)

		m.mu.Lock()
		m.history = append(m.history, MockCall{
			Ctx:          req.Ctx.Clone(),
			Metadata:     req.Metadata,
			InvocationID: actz.InvocationID(ctx),
			Timestamp:    time.Now(),
		})
		patch := m.patch
		shortCircuit := m.shortCircuit
		hasShort := m.hasShort
		returnErr := m.returnErr
		panicValue := m.panicValue
		delay := m.delay
		m.mu.Unlock()

		if panicValue != nil {
			panic(panicValue)
		}
		if returnErr != nil {
			return nil, returnErr
		}
		if delay > 0 {
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}
		if hasShort {
			return shortCircuit, nil
		}
		return req.Next(ctx, patch)
	}
}

// CallCount returns how many times the middleware ran.
func (m *MockMiddleware) CallCount() int {
	return int(atomic.LoadInt64(&m.callCount))
}

// LastCall returns the most recent recorded call, or a zero MockCall when the
// middleware never ran.
func (m *MockMiddleware) LastCall() MockCall {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if len(m.history) == 0 {
		return MockCall{}
	}
	return m.history[len(m.history)-1]
}

// History returns a copy of every recorded call.
func (m *MockMiddleware) History() []MockCall {
	m.mu.RLock()
	defer m.mu.RUnlock()
	history := make([]MockCall, len(m.history))
	copy(history, m.history)
	return history
}

// AssertCalled fails the test unless the middleware ran exactly expected
// times.
func (m *MockMiddleware) AssertCalled(t *testing.T, expected int) {
	t.Helper()
	if got := m.CallCount(); got != expected {
		t.Errorf("Expected middleware to run %d times, ran %d", expected, got)
	}
}

// MockSchema is a scripted actz.Schema. Without configuration it accepts
// every value unchanged.
type MockSchema[T any] struct {
	mu        sync.RWMutex
	issues    []actz.Issue
	engineErr error
	parsed    *T
}

// NewMockSchema creates a schema that accepts any value of type T.
func NewMockSchema[T any]() *MockSchema[T] {
	return &MockSchema[T]{}
}

// WithIssues scripts a structured validation failure for every Parse call.
func (s *MockSchema[T]) WithIssues(issues ...actz.Issue) *MockSchema[T] {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.issues = issues
	return s
}

// WithEngineError scripts an unexpected (non-structured) failure, the kind
// the pipeline passes through to its top-level boundary.
func (s *MockSchema[T]) WithEngineError(err error) *MockSchema[T] {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.engineErr = err
	return s
}

// WithParsed scripts the typed value Parse returns on success, replacing the
// default type assertion on the raw value.
func (s *MockSchema[T]) WithParsed(value T) *MockSchema[T] {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.parsed = &value
	return s
}

// Parse implements actz.Schema.
func (s *MockSchema[T]) Parse(value any) (T, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var zero T
	if s.engineErr != nil {
		return zero, s.engineErr
	}
	if len(s.issues) > 0 {
		return zero, &actz.SchemaError{Issues: s.issues}
	}
	if s.parsed != nil {
		return *s.parsed, nil
	}
	typed, ok := value.(T)
	if !ok {
		return zero, &actz.SchemaError{Issues: []actz.Issue{{Path: "(root)", Message: "unexpected type"}}}
	}
	return typed, nil
}

// AssertOk fails the test unless the result is a success.
func AssertOk[Out any](t *testing.T, res actz.Result[Out]) {
	t.Helper()
	if !res.Ok() {
		t.Errorf("Expected success result, got %+v", res)
	}
}

// AssertServerError fails the test unless the result carries exactly the
// given server-error message.
func AssertServerError[Out any](t *testing.T, res actz.Result[Out], message string) {
	t.Helper()
	if res.ServerError != message {
		t.Errorf("Expected server error %q, got %q", message, res.ServerError)
	}
}

// AssertFieldError fails the test unless the result's FieldErrors contain at
// least one message for path.
func AssertFieldError[Out any](t *testing.T, res actz.Result[Out], path string) {
	t.Helper()
	if len(res.FieldErrors[path]) == 0 {
		t.Errorf("Expected field errors for %q, got %v", path, res.FieldErrors)
	}
}
