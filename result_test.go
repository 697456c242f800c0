package actz

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestResult_SuccessResult(t *testing.T) {
	type payload struct {
		ID    string
		Count int
		Tags  []string
	}
	want := payload{ID: "p-1", Count: 3, Tags: []string{"a", "b"}}

	res := SuccessResult(want)

	if !res.Ok() {
		t.Error("Expected Ok() to be true for success result")
	}
	if res.Data == nil {
		t.Fatal("Expected Data to be set")
	}
	if diff := cmp.Diff(want, *res.Data); diff != "" {
		t.Errorf("Data round-trip mismatch (-want +got):\n%s", diff)
	}
	if res.ServerError != "" {
		t.Errorf("Expected empty ServerError, got %q", res.ServerError)
	}
	if res.FieldErrors != nil {
		t.Errorf("Expected nil FieldErrors, got %v", res.FieldErrors)
	}
	if res.ValidationErrors != nil {
		t.Errorf("Expected nil ValidationErrors, got %v", res.ValidationErrors)
	}
}

func TestResult_ServerErrorResult(t *testing.T) {
	res := ServerErrorResult[string]("boom")

	if res.Ok() {
		t.Error("Expected Ok() to be false for server-error result")
	}
	if res.ServerError != "boom" {
		t.Errorf("Expected ServerError 'boom', got %q", res.ServerError)
	}
	if res.Data != nil {
		t.Errorf("Expected nil Data, got %v", *res.Data)
	}
	if res.FieldErrors != nil || res.ValidationErrors != nil {
		t.Error("Expected both error maps to be nil")
	}
}

func TestResult_FieldErrorsResult(t *testing.T) {
	fields := FieldErrors{"name": {"required"}, "age": {"must be positive"}}

	res := FieldErrorsResult[int](fields)

	if res.Ok() {
		t.Error("Expected Ok() to be false")
	}
	if diff := cmp.Diff(fields, res.FieldErrors); diff != "" {
		t.Errorf("FieldErrors mismatch (-want +got):\n%s", diff)
	}
	if res.Data != nil || res.ServerError != "" || res.ValidationErrors != nil {
		t.Error("Expected only FieldErrors to be populated")
	}
}

func TestResult_ValidationErrorsResult(t *testing.T) {
	fields := FieldErrors{"total": {"must be a number"}}

	res := ValidationErrorsResult[int](fields)

	if res.Ok() {
		t.Error("Expected Ok() to be false")
	}
	if diff := cmp.Diff(fields, res.ValidationErrors); diff != "" {
		t.Errorf("ValidationErrors mismatch (-want +got):\n%s", diff)
	}
	if res.Data != nil || res.ServerError != "" || res.FieldErrors != nil {
		t.Error("Expected only ValidationErrors to be populated")
	}
}
