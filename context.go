package actz

import "context"

// Ctx is the open-ended key-value map threaded through the middleware chain
// and handed to the handler. Every invocation starts from an empty Ctx;
// middleware extend it by returning context patches that are merged on top of
// the accumulated map on the way down the chain.
type Ctx map[string]any

// Well-known context keys set by the bundled middleware. Handlers may also
// read the richer Identity value stored under CtxUser by the optional-auth
// middleware.
const (
	CtxUserID          = "userId"
	CtxUserEmail       = "userEmail"
	CtxAuthToken       = "authToken"
	CtxUser            = "user"
	CtxAuthenticatedAt = "authenticatedAt"
)

// Identity is the structured user object the optional-auth middleware stores
// under CtxUser, alongside the flattened CtxUserID/CtxUserEmail keys, so
// handlers can check either shape.
type Identity struct {
	ID    string
	Email string
}

// Merge returns a new Ctx holding this map's entries with the patch applied
// on top. Keys from the patch overwrite same-named upstream keys; neither
// input map is mutated. An empty patch returns the receiver unchanged.
func (c Ctx) Merge(patch Ctx) Ctx {
	if len(patch) == 0 {
		return c
	}
	merged := make(Ctx, len(c)+len(patch))
	for k, v := range c {
		merged[k] = v
	}
	for k, v := range patch {
		merged[k] = v
	}
	return merged
}

// Clone returns a shallow copy of the Ctx. Implements the same clone
// discipline the parallel-safe types in this package follow: modifying the
// copy never affects the original map.
func (c Ctx) Clone() Ctx {
	cloned := make(Ctx, len(c))
	for k, v := range c {
		cloned[k] = v
	}
	return cloned
}

// invocationKey is the context.Context key for the per-invocation ID.
type invocationKey struct{}

func withInvocationID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, invocationKey{}, id)
}

// InvocationID returns the unique ID the execution engine assigned to the
// current invocation, or "" when called outside an action execution. The ID
// is stamped into every span, event, and log line produced for the
// invocation, so middleware and handlers can correlate their own output.
func InvocationID(ctx context.Context) string {
	id, _ := ctx.Value(invocationKey{}).(string)
	return id
}
