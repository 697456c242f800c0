package actz

// Default values applied by Config.withDefaults for fields left at their zero
// value.
const (
	DefaultServerErrorMessage = "Something went wrong while executing the operation."
	DefaultTestUserID         = "test-user-id"
	DefaultTestUserEmail      = "test@example.com"
	DefaultTestAuthToken      = "test-auth-token"
)

// AuthConfig controls the test identity the authentication middleware inject.
// The identity is a deterministic stand-in - no real session state is ever
// consulted.
//
// Auth is enabled by default; set Disabled to make the auth middleware
// forward the context untouched.
type AuthConfig struct {
	Disabled      bool
	TestUserID    string
	TestUserEmail string
	TestAuthToken string
}

// Config is the client configuration surface. Every field is independently
// defaulted, so the zero value is a working configuration. A Config is
// resolved once at Client construction and immutable afterwards; actions
// built from the client capture the resolved copy.
type Config struct {
	// DefaultServerError is the fallback user-visible message for failures
	// whose own message must not or cannot be shown.
	DefaultServerError string

	// Production forces every server error to the default message so
	// internal failure details never leak to callers.
	Production bool

	Auth AuthConfig
}

// withDefaults returns a copy of the Config with zero-valued fields replaced
// by their documented defaults.
func (c Config) withDefaults() Config {
	if c.DefaultServerError == "" {
		c.DefaultServerError = DefaultServerErrorMessage
	}
	if c.Auth.TestUserID == "" {
		c.Auth.TestUserID = DefaultTestUserID
	}
	if c.Auth.TestUserEmail == "" {
		c.Auth.TestUserEmail = DefaultTestUserEmail
	}
	if c.Auth.TestAuthToken == "" {
		c.Auth.TestAuthToken = DefaultTestAuthToken
	}
	return c
}
