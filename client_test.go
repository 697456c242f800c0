package actz

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func TestClient_ConfigDefaults(t *testing.T) {
	client := NewClient(Config{})

	cfg := client.Config()
	if cfg.DefaultServerError != DefaultServerErrorMessage {
		t.Errorf("Expected default server error message, got %q", cfg.DefaultServerError)
	}
	if cfg.Auth.TestUserID != DefaultTestUserID {
		t.Errorf("Expected default test user id, got %q", cfg.Auth.TestUserID)
	}
	if cfg.Auth.Disabled {
		t.Error("Expected auth enabled by default")
	}
}

func TestClient_ConfigOverridesKept(t *testing.T) {
	client := NewClient(Config{
		DefaultServerError: "custom failure",
		Production:         true,
		Auth:               AuthConfig{TestUserID: "u1"},
	})

	cfg := client.Config()
	if cfg.DefaultServerError != "custom failure" {
		t.Errorf("Expected custom message kept, got %q", cfg.DefaultServerError)
	}
	if !cfg.Production {
		t.Error("Expected production flag kept")
	}
	if cfg.Auth.TestUserID != "u1" {
		t.Errorf("Expected custom user id kept, got %q", cfg.Auth.TestUserID)
	}
	if cfg.Auth.TestUserEmail != DefaultTestUserEmail {
		t.Errorf("Expected unset email defaulted independently, got %q", cfg.Auth.TestUserEmail)
	}
}

func TestClient_UseReturnsSameClient(t *testing.T) {
	client := NewClient(Config{})
	same := client.Use(func(ctx context.Context, req *MiddlewareRequest) (any, error) {
		return req.Next(ctx, nil)
	})
	if same != client {
		t.Error("Expected Use to return the same client for chaining")
	}
}

func TestNewAuthenticatedClient_InjectsIdentity(t *testing.T) {
	cfg := Config{Auth: AuthConfig{TestUserID: "u1"}}
	client := NewAuthenticatedClient(cfg, zerolog.Nop())

	action := NewAction[map[string]any, map[string]any]("whoami", client, passSchema[map[string]any]()).
		Handler(func(_ context.Context, _ map[string]any, actionCtx Ctx) (map[string]any, error) {
			return map[string]any{"userId": actionCtx[CtxUserID]}, nil
		})
	defer action.Close()

	res := action.Exec(context.Background(), map[string]any{})
	if !res.Ok() {
		t.Fatalf("Expected success, got %+v", res)
	}
	if (*res.Data)["userId"] != "u1" {
		t.Errorf("Expected data.userId 'u1', got %v", (*res.Data)["userId"])
	}
}

func TestNewOptionalAuthClient_HandlerSeesIdentityObject(t *testing.T) {
	client := NewOptionalAuthClient(Config{}, zerolog.Nop())

	action := NewAction[map[string]any, string]("whoami", client, passSchema[map[string]any]()).
		Handler(func(_ context.Context, _ map[string]any, actionCtx Ctx) (string, error) {
			identity := actionCtx[CtxUser].(Identity)
			return identity.Email, nil
		})
	defer action.Close()

	res := action.Exec(context.Background(), map[string]any{})
	if !res.Ok() {
		t.Fatalf("Expected success, got %+v", res)
	}
	if *res.Data != DefaultTestUserEmail {
		t.Errorf("Expected default test email, got %q", *res.Data)
	}
}

func TestNewRateLimitedClient_InvalidMetadata(t *testing.T) {
	client := NewRateLimitedClient(Config{}, zerolog.Nop(), metadataShapeSchema())

	action := NewAction[map[string]any, string]("limited", client, passSchema[map[string]any]()).
		Metadata(map[string]any{"invalid": true}).
		Handler(func(_ context.Context, _ map[string]any, _ Ctx) (string, error) {
			return "ran", nil
		})
	defer action.Close()

	res := action.Exec(context.Background(), map[string]any{})
	if res.ServerError != "Invalid action configuration" {
		t.Errorf("Expected 'Invalid action configuration', got %q", res.ServerError)
	}
}

func TestNewRateLimitedClient_NoMetadataPassesThrough(t *testing.T) {
	client := NewRateLimitedClient(Config{}, zerolog.Nop(), metadataShapeSchema())

	action := NewAction[map[string]any, string]("unlimited", client, passSchema[map[string]any]()).
		Handler(func(_ context.Context, _ map[string]any, _ Ctx) (string, error) {
			return "ran", nil
		})
	defer action.Close()

	res := action.Exec(context.Background(), map[string]any{})
	if !res.Ok() {
		t.Fatalf("Expected success without metadata, got %+v", res)
	}
}

func TestNewMetadataClient_MissingMetadata(t *testing.T) {
	client := NewMetadataClient(Config{}, zerolog.Nop(), metadataShapeSchema())

	action := NewAction[map[string]any, string]("strict", client, passSchema[map[string]any]()).
		Handler(func(_ context.Context, _ map[string]any, _ Ctx) (string, error) {
			return "ran", nil
		})
	defer action.Close()

	res := action.Exec(context.Background(), map[string]any{})
	if res.ServerError != "Invalid action metadata" {
		t.Errorf("Expected 'Invalid action metadata', got %q", res.ServerError)
	}
}

func TestNewCompleteClient_FullStack(t *testing.T) {
	cfg := Config{Auth: AuthConfig{TestUserID: "u9"}}
	client := NewCompleteClient(cfg, zerolog.Nop(), metadataShapeSchema())

	action := NewAction[map[string]any, string]("complete", client, passSchema[map[string]any]()).
		Metadata(map[string]any{"actionName": "complete"}).
		Handler(func(_ context.Context, _ map[string]any, actionCtx Ctx) (string, error) {
			return actionCtx[CtxUserID].(string), nil
		})
	defer action.Close()

	res := action.Exec(context.Background(), map[string]any{})
	if !res.Ok() {
		t.Fatalf("Expected success through the full stack, got %+v", res)
	}
	if *res.Data != "u9" {
		t.Errorf("Expected handler to see the injected identity, got %q", *res.Data)
	}
}

func TestAction_Hooks(t *testing.T) {
	client := NewClient(Config{})
	action := NewAction[string, string]("hooked", client, passSchema[string]()).
		Handler(echoHandler)
	defer action.Close()

	var completed, rejected atomic.Int32
	if err := action.OnCompleted(func(_ context.Context, e ActionEvent) error {
		if e.Outcome != OutcomeSuccess {
			t.Errorf("Expected success outcome, got %q", e.Outcome)
		}
		completed.Add(1)
		return nil
	}); err != nil {
		t.Fatalf("OnCompleted failed: %v", err)
	}
	if err := action.OnInputRejected(func(_ context.Context, e ActionEvent) error {
		if e.FieldCount == 0 {
			t.Error("Expected rejection event to carry the field count")
		}
		rejected.Add(1)
		return nil
	}); err != nil {
		t.Fatalf("OnInputRejected failed: %v", err)
	}

	action.Exec(context.Background(), "ok")
	action.Exec(context.Background(), 123)

	// Wait for async hooks
	time.Sleep(50 * time.Millisecond)

	if completed.Load() != 1 {
		t.Errorf("Expected 1 completed event, got %d", completed.Load())
	}
	if rejected.Load() != 1 {
		t.Errorf("Expected 1 input-rejected event, got %d", rejected.Load())
	}
}
