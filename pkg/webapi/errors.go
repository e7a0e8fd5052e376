package webapi

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

var (
	ErrInput           = errors.New("invalid input")
	ErrAuth            = errors.New("authorization failed")
	ErrNotFound        = errors.New("not found")
	ErrEmpty           = errors.New("empty result")
	ErrUpstream        = errors.New("upstream fault")
	ErrUnexpectedShape = errors.New("unexpected upstream response shape")

	// ErrTransport is joined with any failure that prevented a response from being received.
	ErrTransport = errors.New("transport error")
	// ErrParamType is returned for parameter values that cannot be encoded into a request.
	ErrParamType  = errors.New("unsupported parameter type")
	ErrInvalidURL = errors.New("invalid url")
	errNilClient  = errors.New("http client must be non-nil")
)

// Kind classifies a logical failure.
type Kind int

const (
	KindInput Kind = iota + 1
	KindAuth
	KindNotFound
	KindEmpty
	KindUpstream
	KindUnexpectedShape
)

func (k Kind) String() string {
	switch k {
	case KindInput:
		return "input"
	case KindAuth:
		return "auth"
	case KindNotFound:
		return "not_found"
	case KindEmpty:
		return "empty"
	case KindUpstream:
		return "upstream"
	case KindUnexpectedShape:
		return "unexpected_shape"
	default:
		return "unknown"
	}
}

func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k Kind) sentinel() error {
	switch k {
	case KindInput:
		return ErrInput
	case KindAuth:
		return ErrAuth
	case KindNotFound:
		return ErrNotFound
	case KindEmpty:
		return ErrEmpty
	case KindUnexpectedShape:
		return ErrUnexpectedShape
	case KindUpstream:
		fallthrough
	default:
		return ErrUpstream
	}
}

// Error is a logical failure reported through Result.Error. Status is the http status of the
// upstream response, or zero when no request was made.
type Error struct {
	Kind    Kind   `json:"kind"`
	Status  int    `json:"status,omitempty"`
	Message string `json:"message"`
}

func (e *Error) Error() string {
	return e.Kind.String() + ": " + e.Message
}

func (e *Error) Unwrap() error {
	return e.Kind.sentinel()
}

func newError(kind Kind, status int, format string, args ...any) *Error {
	return &Error{Kind: kind, Status: status, Message: fmt.Sprintf(format, args...)}
}

func errNoKey() *Error {
	return newError(KindAuth, 0, "an api key is required for this endpoint")
}

// classify turns a raw response into a logical error. Nil means the response carries a
// parsable 200 payload that the normalizer should inspect.
func classify(raw RawResponse) *Error {
	if raw.StatusCode == http.StatusOK {
		if raw.Data == nil {
			return newError(KindUpstream, raw.StatusCode, "malformed response body")
		}

		return nil
	}

	message := upstreamMessage(raw.Data)
	if message == "" {
		message = fmt.Sprintf("%d %s", raw.StatusCode, http.StatusText(raw.StatusCode))
	}

	switch {
	case raw.StatusCode == http.StatusBadRequest:
		return newError(KindInput, raw.StatusCode, "%s", message)
	case raw.StatusCode == http.StatusUnauthorized, raw.StatusCode == http.StatusForbidden:
		return newError(KindAuth, raw.StatusCode, "%s", message)
	case raw.StatusCode == http.StatusNotFound:
		return newError(KindNotFound, raw.StatusCode, "%s", message)
	default:
		return newError(KindUpstream, raw.StatusCode, "%s", message)
	}
}

// upstreamMessage looks for an error description in a json error body. Steam places it either
// at the top level or inside the single wrapper object.
func upstreamMessage(data any) string {
	body, isMap := data.(map[string]any)
	if !isMap {
		return ""
	}

	if message := messageField(body); message != "" {
		return message
	}

	for _, value := range body {
		if wrapper, isWrapper := value.(map[string]any); isWrapper {
			if message := messageField(wrapper); message != "" {
				return message
			}
		}
	}

	return ""
}

func messageField(body map[string]any) string {
	for _, name := range []string{"error", "message"} {
		if message, isString := body[name].(string); isString && strings.TrimSpace(message) != "" {
			return strings.TrimSpace(message)
		}
	}

	return ""
}
