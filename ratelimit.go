package actz

import (
	"context"
	"errors"
	"time"

	"github.com/zoobzio/clockz"
	"github.com/zoobzio/hookz"
	"github.com/zoobzio/metricz"
)

// Metric keys for the rate-limit stub.
const (
	RateLimitCheckedTotal  = metricz.Key("ratelimit.checked.total")
	RateLimitAllowedTotal  = metricz.Key("ratelimit.allowed.total")
	RateLimitRejectedTotal = metricz.Key("ratelimit.rejected.total")
)

// Hook event keys for the rate-limit stub.
const (
	RateLimitEventAllowed  = hookz.Key("ratelimit.allowed")
	RateLimitEventRejected = hookz.Key("ratelimit.rejected")
)

// ErrInvalidRateLimitMetadata is the fixed message surfaced when rate-limit
// metadata is present but does not satisfy the stub's schema. Distinctly
// worded from ErrInvalidMetadata so callers can tell the two
// misconfigurations apart.
var ErrInvalidRateLimitMetadata = errors.New("Invalid action configuration")

// RateLimitEvent records one decision by the rate-limit stub.
type RateLimitEvent struct {
	InvocationID string    // Invocation the decision belongs to
	Metadata     Metadata  // The metadata that was checked (nil when absent)
	Checked      bool      // Whether metadata was actually validated
	Allowed      bool      // Whether the chain was allowed to continue
	Error        error     // Validation error on rejection
	Timestamp    time.Time // When the decision was made
}

// RateLimitStub is a test stand-in for rate-limit enforcement. It performs no
// request counting: its only job is to make actions that depend on rate-limit
// metadata fail fast in tests when that metadata is misconfigured.
//
// When constructed with a schema, the stub validates the action's metadata on
// every invocation where metadata is present; a structured validation failure
// raises ErrInvalidRateLimitMetadata through the action's error boundary.
// Without a schema, or when the action has no metadata, the stub passes
// through untouched.
//
// The stub counts and emits every decision so tests can assert on what it
// saw:
//
//	stub := actz.NewRateLimitStub(windowSchema)
//	stub.OnRejected(func(ctx context.Context, e actz.RateLimitEvent) error {
//	    t.Logf("rejected metadata %v: %v", e.Metadata, e.Error)
//	    return nil
//	})
//	client := actz.NewClient(actz.Config{}).Use(stub.Middleware())
type RateLimitStub struct {
	schema  Schema[any]
	clock   clockz.Clock
	metrics *metricz.Registry
	hooks   *hookz.Hooks[RateLimitEvent]
}

// NewRateLimitStub creates a rate-limit stub. Pass a nil schema for a stub
// that never validates and always passes through.
func NewRateLimitStub(schema Schema[any]) *RateLimitStub {
	metrics := metricz.New()
	metrics.Counter(RateLimitCheckedTotal)
	metrics.Counter(RateLimitAllowedTotal)
	metrics.Counter(RateLimitRejectedTotal)

	return &RateLimitStub{
		schema:  schema,
		metrics: metrics,
		hooks:   hookz.New[RateLimitEvent](),
	}
}

// WithClock sets the clock used for event timestamps.
func (r *RateLimitStub) WithClock(clock clockz.Clock) *RateLimitStub {
	r.clock = clock
	return r
}

func (r *RateLimitStub) getClock() clockz.Clock {
	if r.clock == nil {
		return clockz.RealClock
	}
	return r.clock
}

// Middleware returns the chain link for this stub. The same stub can back
// multiple clients; its counters then aggregate across all of them.
func (r *RateLimitStub) Middleware() Middleware {
	return func(ctx context.Context, req *MiddlewareRequest) (any, error) {
		if r.schema == nil || req.Metadata == nil {
			r.allow(ctx, req.Metadata, false)
			return req.Next(ctx, nil)
		}

		r.metrics.Counter(RateLimitCheckedTotal).Inc()
		if _, err := r.schema.Parse(req.Metadata); err != nil {
			var schemaErr *SchemaError
			if errors.As(err, &schemaErr) {
				r.metrics.Counter(RateLimitRejectedTotal).Inc()
				_ = r.hooks.Emit(ctx, RateLimitEventRejected, RateLimitEvent{ //nolint:errcheck
					InvocationID: InvocationID(ctx),
					Metadata:     req.Metadata,
					Checked:      true,
					Allowed:      false,
					Error:        schemaErr,
					Timestamp:    r.getClock().Now(),
				})
				return nil, ErrInvalidRateLimitMetadata
			}
			return nil, err
		}

		r.allow(ctx, req.Metadata, true)
		return req.Next(ctx, nil)
	}
}

func (r *RateLimitStub) allow(ctx context.Context, md Metadata, checked bool) {
	r.metrics.Counter(RateLimitAllowedTotal).Inc()
	_ = r.hooks.Emit(ctx, RateLimitEventAllowed, RateLimitEvent{ //nolint:errcheck
		InvocationID: InvocationID(ctx),
		Metadata:     md,
		Checked:      checked,
		Allowed:      true,
		Timestamp:    r.getClock().Now(),
	})
}

// Metrics returns the metrics registry for this stub.
func (r *RateLimitStub) Metrics() *metricz.Registry {
	return r.metrics
}

// OnAllowed registers a handler fired whenever the stub lets an invocation
// continue, whether or not metadata was validated.
func (r *RateLimitStub) OnAllowed(handler func(context.Context, RateLimitEvent) error) error {
	_, err := r.hooks.Hook(RateLimitEventAllowed, handler)
	return err
}

// OnRejected registers a handler fired when metadata fails validation.
func (r *RateLimitStub) OnRejected(handler func(context.Context, RateLimitEvent) error) error {
	_, err := r.hooks.Hook(RateLimitEventRejected, handler)
	return err
}

// Close shuts down the stub's hooks.
func (r *RateLimitStub) Close() error {
	r.hooks.Close()
	return nil
}

// RateLimitStubMiddleware is a convenience for the common case where the
// stub's observability surface is not needed: it builds a stub and returns
// its middleware in one step.
func RateLimitStubMiddleware(schema Schema[any]) Middleware {
	return NewRateLimitStub(schema).Middleware()
}
