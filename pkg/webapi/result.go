package webapi

import "errors"

// Result is the envelope returned by every normalizer. Exactly one of Data or Error is set.
type Result[T any] struct {
	Data  *T     `json:"data,omitempty"`
	Error *Error `json:"error,omitempty"`
}

// OK reports whether the call produced data.
func (r Result[T]) OK() bool {
	return r.Error == nil && r.Data != nil
}

// Err returns the logical error as a plain error value, or nil.
func (r Result[T]) Err() error {
	if r.Error == nil {
		return nil
	}

	return r.Error
}

func ok[T any](data T) Result[T] {
	return Result[T]{Data: &data}
}

func failed[T any](err *Error) Result[T] {
	return Result[T]{Error: err}
}

// result wraps the output of a normalizer into an envelope. Logical errors end up in the
// envelope, everything else is handed back to the caller.
func result[T any](data T, err error) (Result[T], error) {
	if err == nil {
		return ok(data), nil
	}

	var apiErr *Error
	if errors.As(err, &apiErr) {
		return failed[T](apiErr), nil
	}

	return Result[T]{}, err
}
