// Package actz is a test-time substitute for a server-action execution
// pipeline. It lets test code exercise real business-logic handlers -
// including their declared input/output validation and their
// middleware-injected context (authentication, rate limiting, logging) -
// without the framework's runtime, network layer, or session machinery.
//
// # Core Concepts
//
// An action is assembled from four pieces and executed by one engine:
//
//   - Schema[T]: the external validation contract - Parse returns a typed
//     value or a structured *SchemaError of (path, message) issues
//   - Middleware: chain links that extend a per-invocation Ctx map, shortcut
//     the chain, or delegate downward via Next
//   - HandlerFunc[In, Out]: the terminal business function
//   - Result[Out]: the uniform four-field outcome every invocation resolves to
//
// A Client accumulates middleware; a Builder captures schemas, metadata, and
// the handler; the finalized Action runs the pipeline per invocation:
//
//	validate input -> run middleware chain threading a context map ->
//	invoke handler -> validate output -> wrap into a Result
//
// Exec never returns an error. Input-schema failures come back as
// Result.FieldErrors before any middleware runs; output-schema failures as
// Result.ValidationErrors; everything else thrown anywhere in the chain is
// caught once at the outer boundary and classified into Result.ServerError,
// with production mode always masking the underlying message.
//
// # Usage Example
//
//	var signupInput = actz.MustJSONSchema[SignupInput](`{
//	    "type": "object",
//	    "required": ["email", "password"],
//	    "properties": {
//	        "email": {"type": "string", "format": "email"},
//	        "password": {"type": "string", "minLength": 8}
//	    }
//	}`)
//
//	client := actz.NewAuthenticatedClient(actz.Config{}, zerolog.Nop())
//
//	signup := actz.NewAction[SignupInput, SignupOutput]("signup", client, signupInput).
//	    Handler(func(ctx context.Context, in SignupInput, actionCtx actz.Ctx) (SignupOutput, error) {
//	        return SignupOutput{CreatedBy: actionCtx[actz.CtxUserID].(string)}, nil
//	    })
//
//	res := signup.Exec(context.Background(), map[string]any{
//	    "email":    "new@example.com",
//	    "password": "hunter2hunter2",
//	})
//	if !res.Ok() {
//	    // res.FieldErrors / res.ServerError tell you why
//	}
//
// # Middleware
//
// Middleware receive the accumulated Ctx, the action's metadata, and a Next
// continuation. Patches passed to Next are shallow-merged on top of the
// accumulated map - later middleware win on key collisions - and the final
// map reaches the handler. Returning without calling Next short-circuits the
// chain. The bundled factories cover the common test stand-ins:
//
//   - Authenticated / OptionalAuth: deterministic identity injection
//   - ValidateMetadata: fail fast on malformed action metadata
//   - NewRateLimitStub: shape-check rate-limit metadata, no accounting
//   - Logging: zerolog error-passthrough placeholder
//
// # Concurrency
//
// One invocation is strictly sequential: middleware i+1 never starts before
// middleware i called Next, and the handler runs last. Across invocations
// nothing mutable is shared - build-time inputs are immutable and every call
// gets a fresh Ctx and Result - so concurrent Exec calls are independent.
// There is no cancellation machinery beyond the context.Context handed to
// every middleware and the handler.
package actz

// Name is a type alias for action names. Using this type encourages storing
// names as constants rather than inline strings:
//
//	const (
//	    SignupAction Name = "signup"
//	    DeleteAction Name = "delete-account"
//	)
type Name = string
