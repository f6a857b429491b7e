package wlsrest

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Server response kinds. Every *Error returned by Classify unwraps to exactly
// one of these, so callers can branch with errors.Is.
var (
	ErrBadRequest         = errors.New("bad request")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("forbidden")
	ErrNotFound           = errors.New("not found")
	ErrMethodNotAllowed   = errors.New("method not allowed")
	ErrNotAcceptable      = errors.New("not acceptable")
	ErrServerError        = errors.New("internal server error")
	ErrServiceUnavailable = errors.New("service unavailable")
	ErrUnknownStatus      = errors.New("unknown status")
)

// Navigation failures raised on the client side.
var (
	ErrAttributeNotFound = errors.New("attribute not found")
	ErrKeyNotFound       = errors.New("key not found")
	ErrNotIterable       = errors.New("not iterable")
	ErrNotCallable       = errors.New("not callable")
	ErrWrongKind         = errors.New("wrong member kind")
)

// Error is a non-success response from the management server.
type Error struct {
	StatusCode int
	// Detail is the server's "detail" message, the raw body for a 500
	// without JSON, or a synthesized message for unknown statuses.
	Detail string
	// Kind is one of the ErrBadRequest ... ErrUnknownStatus sentinels.
	Kind error
}

func (e *Error) Error() string {
	if e.Detail != "" {
		return e.Detail
	}
	return fmt.Sprintf("%s (status %d)", e.Kind, e.StatusCode)
}

func (e *Error) Unwrap() error {
	return e.Kind
}

// DecodeError is returned when a response body cannot be decoded, or an
// error response lacks the "detail" field its status promises.
type DecodeError struct {
	StatusCode int
	Err        error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode response (status %d): %v", e.StatusCode, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// AttributeError is returned when a resource has no member with the
// requested name.
type AttributeError struct {
	Object string
	Attr   string
}

func (e *AttributeError) Error() string {
	return fmt.Sprintf("'%s' object has no attribute '%s'", e.Object, e.Attr)
}

func (e *AttributeError) Unwrap() error {
	return ErrAttributeNotFound
}

// KeyError is the key-lookup counterpart of AttributeError.
type KeyError struct {
	Key string
}

func (e *KeyError) Error() string {
	return fmt.Sprintf("key %q not found", e.Key)
}

func (e *KeyError) Unwrap() error {
	return ErrKeyNotFound
}

// NotIterableError is returned when iterating a resource whose document has
// no "items" field.
type NotIterableError struct {
	Object string
}

func (e *NotIterableError) Error() string {
	return fmt.Sprintf("'%s' object is not iterable", e.Object)
}

func (e *NotIterableError) Unwrap() error {
	return ErrNotIterable
}

var statusKinds = map[int]error{
	http.StatusBadRequest:          ErrBadRequest,
	http.StatusUnauthorized:        ErrUnauthorized,
	http.StatusForbidden:           ErrForbidden,
	http.StatusNotFound:            ErrNotFound,
	http.StatusMethodNotAllowed:    ErrMethodNotAllowed,
	http.StatusNotAcceptable:       ErrNotAcceptable,
	http.StatusInternalServerError: ErrServerError,
	http.StatusServiceUnavailable:  ErrServiceUnavailable,
}

// Classify maps a non-success status and its body to an error. It never
// returns nil.
//
// 401 carries no detail. 500 uses the JSON "detail" when the body is a JSON
// object and the raw body text when it is not. The other mapped statuses
// require a JSON body with "detail", and every JSON object lacking it yields a
// *DecodeError. Anything else becomes an unknown-status *Error naming the code.
func Classify(status int, body []byte) error {
	kind, ok := statusKinds[status]
	if !ok {
		return &Error{
			StatusCode: status,
			Detail:     fmt.Sprintf("An unknown error occured. Got status code: %d", status),
			Kind:       ErrUnknownStatus,
		}
	}

	switch status {
	case http.StatusUnauthorized:
		return &Error{StatusCode: status, Kind: kind}

	case http.StatusInternalServerError:
		v, err := decodeBody(body)
		doc, ok := v.(*Document)
		if err != nil || !ok {
			return &Error{StatusCode: status, Detail: string(body), Kind: kind}
		}
		detail, err := documentDetail(doc)
		if err != nil {
			return &DecodeError{StatusCode: status, Err: err}
		}
		return &Error{StatusCode: status, Detail: detail, Kind: kind}
	}

	detail, err := detailOf(body)
	if err != nil {
		return &DecodeError{StatusCode: status, Err: err}
	}
	return &Error{StatusCode: status, Detail: detail, Kind: kind}
}

func detailOf(body []byte) (string, error) {
	v, err := decodeBody(body)
	if err != nil {
		return "", err
	}
	doc, ok := v.(*Document)
	if !ok {
		return "", fmt.Errorf("%w: error body is not a JSON object", ErrMalformedDocument)
	}
	return documentDetail(doc)
}

func documentDetail(doc *Document) (string, error) {
	detail, ok := doc.Lookup("detail")
	if !ok {
		return "", fmt.Errorf("%w: error body has no detail", ErrMalformedDocument)
	}
	if s, ok := detail.(string); ok {
		return s, nil
	}
	return strings.TrimSpace(fmt.Sprint(detail)), nil
}

// IsStatus reports whether err is a server *Error with the given status.
func IsStatus(err error, status int) bool {
	var e *Error
	return errors.As(err, &e) && e.StatusCode == status
}
