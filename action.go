package actz

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/zoobzio/clockz"
	"github.com/zoobzio/hookz"
	"github.com/zoobzio/metricz"
	"github.com/zoobzio/tracez"
)

// Metric keys for the action execution engine.
const (
	ActionProcessedTotal      = metricz.Key("action.processed.total")
	ActionSucceededTotal      = metricz.Key("action.succeeded.total")
	ActionInputRejectedTotal  = metricz.Key("action.input_rejected.total")
	ActionOutputRejectedTotal = metricz.Key("action.output_rejected.total")
	ActionFailedTotal         = metricz.Key("action.failed.total")
	ActionDurationMs          = metricz.Key("action.duration.ms")
)

// Span names for the action execution engine.
const (
	ActionExecSpan       = tracez.Key("action.exec")
	ActionMiddlewareSpan = tracez.Key("action.middleware")
	ActionHandlerSpan    = tracez.Key("action.handler")
)

// Span tags for the action execution engine.
const (
	ActionTagName            = tracez.Tag("action.name")
	ActionTagInvocation      = tracez.Tag("action.invocation")
	ActionTagOutcome         = tracez.Tag("action.outcome")
	ActionTagError           = tracez.Tag("action.error")
	ActionTagMiddlewareIndex = tracez.Tag("action.middleware_index")
)

// Hook event keys for the action execution engine.
const (
	ActionEventCompleted      = hookz.Key("action.completed")
	ActionEventInputRejected  = hookz.Key("action.input_rejected")
	ActionEventOutputRejected = hookz.Key("action.output_rejected")
	ActionEventFailed         = hookz.Key("action.failed")
)

// Outcome labels recorded in metrics, spans, and events.
const (
	OutcomeSuccess          = "success"
	OutcomeFieldErrors      = "field_errors"
	OutcomeValidationErrors = "validation_errors"
	OutcomeServerError      = "server_error"
)

// ActionEvent records the completion of one invocation, whatever its outcome.
type ActionEvent struct {
	Name         Name          // Action name
	InvocationID string        // Unique per-invocation ID
	Outcome      string        // One of the Outcome* labels
	ServerError  string        // User-visible message when Outcome is server_error
	FieldCount   int           // Number of failing paths for the rejection outcomes
	Duration     time.Duration // Total invocation time
	Timestamp    time.Time     // When the invocation finished
}

// Action is a finalized pipeline: input schema, optional output schema,
// metadata, a middleware snapshot, and a handler, bound into one callable.
// Build one with NewAction(...).Handler(...).
//
// Exec is the sole invocation surface. It deliberately takes untyped input -
// validating it is the whole point - and always returns a Result, never an
// error: every failure mode, including panics anywhere in the chain, is
// caught at a single boundary and shaped into the appropriate Result field.
//
// Everything captured at build time is immutable, and each invocation gets
// its own fresh context map and Result, so concurrent Exec calls on the same
// action are independent and safe.
//
// # Observability
//
// Metrics:
//   - action.processed.total: counter of invocations
//   - action.succeeded.total: counter of success outcomes
//   - action.input_rejected.total: counter of input-schema rejections
//   - action.output_rejected.total: counter of output-schema rejections
//   - action.failed.total: counter of server-error outcomes
//   - action.duration.ms: gauge of last invocation duration
//
// Traces:
//   - action.exec: parent span for the whole invocation
//   - action.middleware: child span per middleware link
//   - action.handler: child span for the handler
//
// Events (via hooks):
//   - action.completed: fired on success
//   - action.input_rejected / action.output_rejected: fired on schema rejections
//   - action.failed: fired on server-error outcomes
//
// Example:
//
//	action := actz.NewAction[SignupInput, SignupOutput]("signup", client, inputSchema).
//	    OutputSchema(outputSchema).
//	    Handler(signup)
//
//	action.OnFailed(func(ctx context.Context, e actz.ActionEvent) error {
//	    t.Errorf("signup failed (%s): %s", e.InvocationID, e.ServerError)
//	    return nil
//	})
//
//	res := action.Exec(ctx, map[string]any{"email": "a@b.c"})
type Action[In, Out any] struct {
	name         Name
	config       Config
	middleware   []Middleware
	inputSchema  Schema[In]
	outputSchema Schema[Out]
	metadata     Metadata
	handler      HandlerFunc[In, Out]

	clock   clockz.Clock
	metrics *metricz.Registry
	tracer  *tracez.Tracer
	hooks   *hookz.Hooks[ActionEvent]
}

func newAction[In, Out any](b Builder[In, Out], handler HandlerFunc[In, Out]) *Action[In, Out] {
	metrics := metricz.New()
	metrics.Counter(ActionProcessedTotal)
	metrics.Counter(ActionSucceededTotal)
	metrics.Counter(ActionInputRejectedTotal)
	metrics.Counter(ActionOutputRejectedTotal)
	metrics.Counter(ActionFailedTotal)
	metrics.Gauge(ActionDurationMs)

	return &Action[In, Out]{
		name:         b.name,
		config:       b.config,
		middleware:   b.middleware,
		inputSchema:  b.inputSchema,
		outputSchema: b.outputSchema,
		metadata:     b.metadata,
		handler:      handler,
		metrics:      metrics,
		tracer:       tracez.New(),
		hooks:        hookz.New[ActionEvent](),
	}
}

// Name returns the action's name.
func (a *Action[In, Out]) Name() Name {
	return a.name
}

// WithClock sets the clock used for event timestamps and durations.
func (a *Action[In, Out]) WithClock(clock clockz.Clock) *Action[In, Out] {
	a.clock = clock
	return a
}

func (a *Action[In, Out]) getClock() clockz.Clock {
	if a.clock == nil {
		return clockz.RealClock
	}
	return a.clock
}

// Exec runs the pipeline once: validate rawInput, thread a fresh context map
// through the middleware chain, invoke the handler, validate its return value
// when an output schema was declared, and wrap the outcome. Exec never
// returns an error; see Result for how failures surface.
func (a *Action[In, Out]) Exec(ctx context.Context, rawInput any) Result[Out] {
	if ctx == nil {
		ctx = context.Background()
	}
	invocation := uuid.NewString()
	ctx = withInvocationID(ctx, invocation)

	clock := a.getClock()
	start := clock.Now()

	ctx, span := a.tracer.StartSpan(ctx, ActionExecSpan)
	defer span.Finish()
	span.SetTag(ActionTagName, string(a.name))
	span.SetTag(ActionTagInvocation, invocation)

	a.metrics.Counter(ActionProcessedTotal).Inc()
	defer func() {
		a.metrics.Gauge(ActionDurationMs).Set(float64(clock.Now().Sub(start).Milliseconds()))
	}()

	// Single boundary for every non-validation failure: classify the cause
	// into a user-visible message, record it, wrap it.
	fail := func(cause error) Result[Out] {
		message := classifyServerError(cause, a.config.DefaultServerError, a.config.Production)
		span.SetTag(ActionTagOutcome, OutcomeServerError)
		span.SetTag(ActionTagError, cause.Error())
		a.metrics.Counter(ActionFailedTotal).Inc()
		_ = a.hooks.Emit(ctx, ActionEventFailed, ActionEvent{ //nolint:errcheck
			Name:         a.name,
			InvocationID: invocation,
			Outcome:      OutcomeServerError,
			ServerError:  message,
			Duration:     clock.Now().Sub(start),
			Timestamp:    clock.Now(),
		})
		return ServerErrorResult[Out](message)
	}

	input, fieldErrs, err := parseWith(a.inputSchema, rawInput)
	if err != nil {
		return fail(err)
	}
	if fieldErrs != nil {
		span.SetTag(ActionTagOutcome, OutcomeFieldErrors)
		a.metrics.Counter(ActionInputRejectedTotal).Inc()
		_ = a.hooks.Emit(ctx, ActionEventInputRejected, ActionEvent{ //nolint:errcheck
			Name:         a.name,
			InvocationID: invocation,
			Outcome:      OutcomeFieldErrors,
			FieldCount:   len(fieldErrs),
			Duration:     clock.Now().Sub(start),
			Timestamp:    clock.Now(),
		})
		return FieldErrorsResult[Out](fieldErrs)
	}

	raw, err := a.runChain(ctx, input)
	if err != nil {
		return fail(err)
	}

	var out Out
	if raw != nil {
		typed, ok := raw.(Out)
		if !ok {
			return fail(fmt.Errorf("action %q: chain produced %T, want %T", a.name, raw, out))
		}
		out = typed
	}

	if a.outputSchema != nil {
		parsed, valErrs, err := parseWith[Out](a.outputSchema, out)
		if err != nil {
			return fail(err)
		}
		if valErrs != nil {
			span.SetTag(ActionTagOutcome, OutcomeValidationErrors)
			a.metrics.Counter(ActionOutputRejectedTotal).Inc()
			_ = a.hooks.Emit(ctx, ActionEventOutputRejected, ActionEvent{ //nolint:errcheck
				Name:         a.name,
				InvocationID: invocation,
				Outcome:      OutcomeValidationErrors,
				FieldCount:   len(valErrs),
				Duration:     clock.Now().Sub(start),
				Timestamp:    clock.Now(),
			})
			return ValidationErrorsResult[Out](valErrs)
		}
		out = parsed
	}

	span.SetTag(ActionTagOutcome, OutcomeSuccess)
	a.metrics.Counter(ActionSucceededTotal).Inc()
	_ = a.hooks.Emit(ctx, ActionEventCompleted, ActionEvent{ //nolint:errcheck
		Name:         a.name,
		InvocationID: invocation,
		Outcome:      OutcomeSuccess,
		Duration:     clock.Now().Sub(start),
		Timestamp:    clock.Now(),
	})
	return SuccessResult(out)
}

// runChain executes the middleware chain and the handler, containing panics
// from anywhere inside. Middleware at index i+1 never starts before the
// middleware at index i has called Next, and the handler never starts before
// the last middleware has. A middleware that returns without calling Next
// short-circuits the chain; its value stands in for the handler's.
func (a *Action[In, Out]) runChain(ctx context.Context, input In) (raw any, err error) {
	defer func() {
		if r := recover(); r != nil {
			raw = nil
			err = newPanicError(r)
		}
	}()

	var step func(ctx context.Context, index int, acc Ctx) (any, error)
	step = func(ctx context.Context, index int, acc Ctx) (any, error) {
		if index >= len(a.middleware) {
			hctx, hspan := a.tracer.StartSpan(ctx, ActionHandlerSpan)
			out, herr := a.handler(hctx, input, acc)
			hspan.Finish()
			if herr != nil {
				return nil, herr
			}
			return out, nil
		}

		mctx, mspan := a.tracer.StartSpan(ctx, ActionMiddlewareSpan)
		mspan.SetTag(ActionTagMiddlewareIndex, strconv.Itoa(index))
		defer mspan.Finish()

		return a.middleware[index](mctx, &MiddlewareRequest{
			Ctx:      acc,
			Metadata: a.metadata,
			Next: func(ctx context.Context, patch Ctx) (any, error) {
				return step(ctx, index+1, acc.Merge(patch))
			},
		})
	}

	return step(ctx, 0, Ctx{})
}

// Metrics returns the metrics registry for this action.
func (a *Action[In, Out]) Metrics() *metricz.Registry {
	return a.metrics
}

// Tracer returns the tracer for this action.
func (a *Action[In, Out]) Tracer() *tracez.Tracer {
	return a.tracer
}

// OnCompleted registers a handler fired after each successful invocation.
func (a *Action[In, Out]) OnCompleted(handler func(context.Context, ActionEvent) error) error {
	_, err := a.hooks.Hook(ActionEventCompleted, handler)
	return err
}

// OnInputRejected registers a handler fired when input validation rejects an
// invocation before any middleware runs.
func (a *Action[In, Out]) OnInputRejected(handler func(context.Context, ActionEvent) error) error {
	_, err := a.hooks.Hook(ActionEventInputRejected, handler)
	return err
}

// OnOutputRejected registers a handler fired when the handler's return value
// fails the declared output schema.
func (a *Action[In, Out]) OnOutputRejected(handler func(context.Context, ActionEvent) error) error {
	_, err := a.hooks.Hook(ActionEventOutputRejected, handler)
	return err
}

// OnFailed registers a handler fired when an invocation resolves to a server
// error.
func (a *Action[In, Out]) OnFailed(handler func(context.Context, ActionEvent) error) error {
	_, err := a.hooks.Hook(ActionEventFailed, handler)
	return err
}

// Close gracefully shuts down the action's observability components.
func (a *Action[In, Out]) Close() error {
	if a.tracer != nil {
		a.tracer.Close()
	}
	a.hooks.Close()
	return nil
}
