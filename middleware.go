package actz

import "context"

// Metadata is the optional, caller-supplied value describing an action
// (typically an action name or category). It is attached once at build time
// and handed, unchanged, to every middleware invocation for that action.
type Metadata = any

// Next continues the middleware chain. The patch, if non-nil, is merged on
// top of the accumulated Ctx before the next middleware (or, after the last
// middleware, the handler) runs. Next returns whatever the rest of the chain
// eventually produced, unchanged.
type Next func(ctx context.Context, patch Ctx) (any, error)

// MiddlewareRequest carries everything a middleware can see for one
// invocation: the accumulated context from upstream, the action's metadata,
// and the Next continuation.
type MiddlewareRequest struct {
	Ctx      Ctx
	Metadata Metadata
	Next     Next
}

// Middleware is one link of an action's chain. A middleware typically calls
// req.Next with an optional context patch and returns what Next returns. It
// may instead short-circuit the chain by returning without calling Next - the
// returned value then stands in for the handler's result and downstream
// middleware and the handler never run. Returning an error (or panicking)
// routes through the action's single top-level error boundary.
//
// Calling Next more than once is a contract violation and is not guarded
// against.
//
// Middleware run strictly in registration order within one invocation and
// share no mutable state across invocations: each invocation gets a fresh
// accumulated Ctx, so a registered middleware value is safe to reuse across
// concurrent invocations.
type Middleware func(ctx context.Context, req *MiddlewareRequest) (any, error)
