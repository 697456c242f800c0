package actz

import (
	"context"

	"github.com/zoobzio/clockz"
)

// Authenticated returns the authenticated-identity middleware: a deterministic
// test double that merges the configured test identity (CtxUserID,
// CtxUserEmail, CtxAuthToken) plus a CtxAuthenticatedAt timestamp into the
// accumulated context. Real session state is never consulted.
//
// When auth is disabled in the configuration the middleware forwards the
// existing context unchanged.
func Authenticated(cfg Config) Middleware {
	return AuthenticatedWithClock(cfg, clockz.RealClock)
}

// AuthenticatedWithClock is Authenticated with an injectable clock for the
// CtxAuthenticatedAt timestamp, letting tests freeze time with a fake clock.
func AuthenticatedWithClock(cfg Config, clock clockz.Clock) Middleware {
	cfg = cfg.withDefaults()
	return func(ctx context.Context, req *MiddlewareRequest) (any, error) {
		if cfg.Auth.Disabled {
			return req.Next(ctx, nil)
		}
		return req.Next(ctx, Ctx{
			CtxUserID:          cfg.Auth.TestUserID,
			CtxUserEmail:       cfg.Auth.TestUserEmail,
			CtxAuthToken:       cfg.Auth.TestAuthToken,
			CtxAuthenticatedAt: clock.Now(),
		})
	}
}

// OptionalAuth returns the optional-identity middleware. It behaves like
// Authenticated but additionally stores a structured Identity under CtxUser,
// so handlers can check either the flattened keys or the object shape.
// With auth disabled it forwards the context unchanged, which is the
// "no user present" case for optionally-authenticated actions.
func OptionalAuth(cfg Config) Middleware {
	return OptionalAuthWithClock(cfg, clockz.RealClock)
}

// OptionalAuthWithClock is OptionalAuth with an injectable clock.
func OptionalAuthWithClock(cfg Config, clock clockz.Clock) Middleware {
	cfg = cfg.withDefaults()
	return func(ctx context.Context, req *MiddlewareRequest) (any, error) {
		if cfg.Auth.Disabled {
			return req.Next(ctx, nil)
		}
		return req.Next(ctx, Ctx{
			CtxUser: Identity{
				ID:    cfg.Auth.TestUserID,
				Email: cfg.Auth.TestUserEmail,
			},
			CtxUserID:          cfg.Auth.TestUserID,
			CtxUserEmail:       cfg.Auth.TestUserEmail,
			CtxAuthToken:       cfg.Auth.TestAuthToken,
			CtxAuthenticatedAt: clock.Now(),
		})
	}
}
