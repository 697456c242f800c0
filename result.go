package actz

// FieldErrors maps a dot-joined field path to the ordered list of
// human-readable messages reported for that field. Nested object fields are
// joined by ".", and array elements appear as numeric path segments
// (for example "items.0.price"). Multiple violations on the same field keep
// the order the schema engine reported them in.
type FieldErrors map[string][]string

// Result is the uniform outcome of one action invocation. Exactly one of the
// four fields is populated for any given result:
//
//   - Data: the success payload from the handler (after output validation)
//   - ServerError: the user-visible message for a failure anywhere in the chain
//   - FieldErrors: input-schema violations; the handler never ran
//   - ValidationErrors: output-schema violations; the handler ran but produced
//     data that does not satisfy the declared output schema
//
// All four fields are always present on the struct, so calling code can probe
// any of them without guarding on shape. A Result is constructed fresh for
// every invocation and never mutated after it is returned.
type Result[Out any] struct {
	Data             *Out
	ServerError      string
	FieldErrors      FieldErrors
	ValidationErrors FieldErrors
}

// Ok reports whether the invocation succeeded.
func (r Result[Out]) Ok() bool {
	return r.ServerError == "" && r.FieldErrors == nil && r.ValidationErrors == nil
}

// SuccessResult wraps a success payload in a Result. The three failure fields
// are left unset.
func SuccessResult[Out any](data Out) Result[Out] {
	return Result[Out]{Data: &data}
}

// ServerErrorResult wraps a user-visible server-error message in a Result.
func ServerErrorResult[Out any](message string) Result[Out] {
	return Result[Out]{ServerError: message}
}

// FieldErrorsResult wraps input-validation failures in a Result.
func FieldErrorsResult[Out any](errs FieldErrors) Result[Out] {
	return Result[Out]{FieldErrors: errs}
}

// ValidationErrorsResult wraps output-validation failures in a Result.
// The distinct field lets callers tell "caller sent bad data" apart from
// "handler produced bad data".
func ValidationErrorsResult[Out any](errs FieldErrors) Result[Out] {
	return Result[Out]{ValidationErrors: errs}
}
