package actz

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// Logging returns the error-passthrough middleware: it forwards to the rest
// of the chain and re-raises anything that fails, so the action's failure
// contract is unchanged. Its purpose is to give test pipelines the same shape
// as a production pipeline's outer logging layer while recording what flowed
// through.
//
// Every invocation logs a debug line on entry and either a debug line with
// the duration on success or an error line on failure, each carrying the
// invocation ID. Pass zerolog.Nop() for a silent placeholder.
func Logging(logger zerolog.Logger) Middleware {
	return func(ctx context.Context, req *MiddlewareRequest) (any, error) {
		invocation := InvocationID(ctx)
		logger.Debug().
			Str("invocation", invocation).
			Interface("metadata", req.Metadata).
			Msg("action invocation started")

		start := time.Now()
		value, err := req.Next(ctx, nil)
		elapsed := time.Since(start)

		if err != nil {
			logger.Error().
				Str("invocation", invocation).
				Dur("elapsed", elapsed).
				Err(err).
				Msg("action invocation failed")
			return value, err
		}

		logger.Debug().
			Str("invocation", invocation).
			Dur("elapsed", elapsed).
			Msg("action invocation completed")
		return value, nil
	}
}
