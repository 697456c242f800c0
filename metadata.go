package actz

import (
	"context"
	"errors"
)

// ErrInvalidMetadata is the fixed message surfaced when an action's metadata
// does not satisfy the shape a ValidateMetadata middleware expects. Metadata
// misconfiguration is a programmer error, not a caller input error, so it is
// raised through the action's generic error boundary instead of being shaped
// into field errors.
var ErrInvalidMetadata = errors.New("Invalid action metadata")

// ValidateMetadata returns a middleware that validates the action's metadata
// against the given schema on every invocation. A structured validation
// failure raises ErrInvalidMetadata; an unexpected schema-engine failure is
// passed through as-is. On success the chain continues with no context patch.
func ValidateMetadata(schema Schema[any]) Middleware {
	return func(ctx context.Context, req *MiddlewareRequest) (any, error) {
		if _, err := schema.Parse(req.Metadata); err != nil {
			var schemaErr *SchemaError
			if errors.As(err, &schemaErr) {
				return nil, ErrInvalidMetadata
			}
			return nil, err
		}
		return req.Next(ctx, nil)
	}
}
