package actz

import (
	"sync"

	"github.com/rs/zerolog"
)

// Client holds an ordered, append-only middleware list and a resolved
// configuration, and is the starting point for building actions. Middleware
// run in registration order. An action built from a client captures the
// middleware list as it stood at that moment; middleware registered
// afterwards affect only actions built later.
//
// Use NewClient for a bare client, or the factory helpers
// (NewAuthenticatedClient, NewCompleteClient, ...) for clients with a common
// middleware stack pre-registered.
type Client struct {
	config     Config
	mu         sync.RWMutex
	middleware []Middleware
}

// NewClient creates a client with the given configuration (missing fields
// defaulted) and no middleware.
func NewClient(cfg Config) *Client {
	return &Client{config: cfg.withDefaults()}
}

// Use appends middleware to the client's chain and returns the same client,
// enabling chained registration:
//
//	client := actz.NewClient(cfg).
//	    Use(actz.Logging(logger)).
//	    Use(actz.Authenticated(cfg))
func (c *Client) Use(mw ...Middleware) *Client {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.middleware = append(c.middleware, mw...)
	return c
}

// Config returns the client's resolved configuration.
func (c *Client) Config() Config {
	return c.config
}

// snapshot copies the current middleware list. Builders call this once at
// creation so already-built actions are isolated from later Use calls.
func (c *Client) snapshot() []Middleware {
	c.mu.RLock()
	defer c.mu.RUnlock()
	snap := make([]Middleware, len(c.middleware))
	copy(snap, c.middleware)
	return snap
}

// NewAuthenticatedClient composes a client whose actions run behind the
// logging placeholder and the authenticated-identity test double, in that
// order (outer error handling wraps inner context injection).
func NewAuthenticatedClient(cfg Config, logger zerolog.Logger) *Client {
	return NewClient(cfg).Use(Logging(logger), Authenticated(cfg))
}

// NewOptionalAuthClient is NewAuthenticatedClient with the optional-identity
// middleware instead, for actions that work with or without a user.
func NewOptionalAuthClient(cfg Config, logger zerolog.Logger) *Client {
	return NewClient(cfg).Use(Logging(logger), OptionalAuth(cfg))
}

// NewRateLimitedClient composes a client with the logging placeholder and a
// rate-limit stub validating action metadata against metadataSchema. Pass a
// nil schema for a pass-through stub.
func NewRateLimitedClient(cfg Config, logger zerolog.Logger, metadataSchema Schema[any]) *Client {
	return NewClient(cfg).Use(Logging(logger), RateLimitStubMiddleware(metadataSchema))
}

// NewMetadataClient composes a client with the logging placeholder and
// strict metadata validation: every invocation of every action built from it
// must carry metadata satisfying metadataSchema.
func NewMetadataClient(cfg Config, logger zerolog.Logger, metadataSchema Schema[any]) *Client {
	return NewClient(cfg).Use(Logging(logger), ValidateMetadata(metadataSchema))
}

// NewCompleteClient composes the full bundle, mirroring a layered production
// pipeline: logging, then the rate-limit stub, then the authenticated
// identity.
func NewCompleteClient(cfg Config, logger zerolog.Logger, metadataSchema Schema[any]) *Client {
	return NewClient(cfg).Use(
		Logging(logger),
		RateLimitStubMiddleware(metadataSchema),
		Authenticated(cfg),
	)
}
