package actz

import "context"

// HandlerFunc is the terminal function of an action's chain: it receives the
// schema-validated input and the final merged context, and returns the raw
// success payload or an error.
type HandlerFunc[In, Out any] func(ctx context.Context, input In, actionCtx Ctx) (Out, error)

// Builder assembles an action step by step: input schema, then optionally an
// output schema and metadata in either order, then the handler. Builders have
// value semantics - every step returns a new builder value, so a partially
// configured builder can be reused as a template without aliasing:
//
//	base := actz.NewAction[CreateUser, User]("create-user", client, inputSchema).
//	    OutputSchema(userSchema)
//	strict := base.Metadata(map[string]any{"category": "admin"})
//	// base is unaffected by the Metadata call
//
// The middleware list is snapshotted from the client when NewAction is
// called; later Use calls on the client do not reach actions built from this
// builder.
type Builder[In, Out any] struct {
	name         Name
	config       Config
	middleware   []Middleware
	inputSchema  Schema[In]
	outputSchema Schema[Out]
	metadata     Metadata
}

// NewAction starts a builder for an action named name on the given client,
// validating raw input against inputSchema. The output type parameter fixes
// what the handler must eventually return; use struct{} for actions with no
// meaningful payload.
func NewAction[In, Out any](name Name, client *Client, inputSchema Schema[In]) Builder[In, Out] {
	return Builder[In, Out]{
		name:        name,
		config:      client.Config(),
		middleware:  client.snapshot(),
		inputSchema: inputSchema,
	}
}

// OutputSchema declares a schema for the handler's return value. When set,
// the raw return value is validated after the handler runs; failures surface
// as ValidationErrors rather than FieldErrors, so callers can distinguish bad
// caller data from bad handler data.
func (b Builder[In, Out]) OutputSchema(schema Schema[Out]) Builder[In, Out] {
	b.outputSchema = schema
	return b
}

// Metadata attaches an action-describing value made available, unchanged, to
// every middleware invocation for this action only. Metadata set here never
// leaks to other actions built from the same client.
func (b Builder[In, Out]) Metadata(md Metadata) Builder[In, Out] {
	b.metadata = md
	return b
}

// Handler finalizes the pipeline and returns the callable Action. Everything
// the builder collected - schemas, metadata, the middleware snapshot, and the
// client configuration - is captured immutably; the builder value remains
// usable for further actions.
func (b Builder[In, Out]) Handler(handler HandlerFunc[In, Out]) *Action[In, Out] {
	return newAction(b, handler)
}
