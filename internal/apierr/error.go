// Package apierr defines the error taxonomy every handler maps its
// failures onto, and the JSON envelope both success and error responses
// share.
package apierr

import (
	"context"
	"net/http"

	"github.com/zeromicro/go-zero/rest/httpx"
)

// Kind classifies an error by the HTTP status it maps to.
type Kind int

const (
	KindInternal Kind = iota
	KindBadRequest
	KindUnauthorized
	KindForbidden
	KindNotFound
	KindConflict
	KindTimeout
)

// Error is the error type every handler returns; httpx.ErrorCtx's error
// encoder switches on Kind to pick the response status.
type Error struct {
	Kind    Kind
	Message string
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return e.Message + ": " + e.cause.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.cause }

func newErr(kind Kind, message string, cause error) *Error {
	return &Error{Kind: kind, Message: message, cause: cause}
}

func BadRequest(message string) *Error            { return newErr(KindBadRequest, message, nil) }
func Unauthorized(message string) *Error          { return newErr(KindUnauthorized, message, nil) }
func Forbidden(message string) *Error             { return newErr(KindForbidden, message, nil) }
func NotFound(message string) *Error              { return newErr(KindNotFound, message, nil) }
func Conflict(message string) *Error              { return newErr(KindConflict, message, nil) }
func Timeout(message string) *Error               { return newErr(KindTimeout, message, nil) }
func Internal(message string, cause error) *Error { return newErr(KindInternal, message, cause) }

// StatusCode returns the HTTP status this error's kind maps to.
func (e *Error) StatusCode() int {
	switch e.Kind {
	case KindBadRequest:
		return http.StatusBadRequest
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	case KindTimeout:
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

// Envelope is the uniform JSON shape every response body takes.
type Envelope struct {
	Status  string      `json:"status"`
	Message string      `json:"message"`
	Code    int         `json:"code,omitempty"`
	Data    interface{} `json:"data"`
}

// OK wraps a successful payload. message is usually empty; handlers that
// want a human-readable success message (e.g. health) can supply one.
func OK(data interface{}, message string) Envelope {
	return Envelope{Status: "success", Message: message, Data: data}
}

// WriteOK writes a successful response in the uniform envelope. Handlers
// use this in place of a bare httpx.OkJsonCtx so every success response
// carries the same {status, message, data} shape as the error path.
func WriteOK(ctx context.Context, w http.ResponseWriter, data interface{}) {
	httpx.OkJsonCtx(ctx, w, OK(data, ""))
}

// WriteOKMessage is WriteOK with a caller-supplied message, for the handful
// of endpoints (health) whose success body carries one.
func WriteOKMessage(ctx context.Context, w http.ResponseWriter, data interface{}, message string) {
	httpx.OkJsonCtx(ctx, w, OK(data, message))
}

// WriteError writes the mapped envelope for err with its matching status
// code. Registered as the gateway's httpx error handler so handlers can
// keep calling httpx.ErrorCtx directly.
func WriteError(ctx context.Context, err error) (int, interface{}) {
	status, envelope := FromError(err)
	return status, envelope
}

// FromError builds the error envelope and status code for err. Unrecognized
// errors are treated as internal failures and their message is not leaked
// to the client.
func FromError(err error) (int, Envelope) {
	apiErr, ok := err.(*Error)
	if !ok {
		return http.StatusInternalServerError, Envelope{
			Status:  "error",
			Message: "internal server error",
			Code:    http.StatusInternalServerError,
			Data:    nil,
		}
	}
	return apiErr.StatusCode(), Envelope{
		Status:  "error",
		Message: apiErr.Message,
		Code:    apiErr.StatusCode(),
		Data:    nil,
	}
}
