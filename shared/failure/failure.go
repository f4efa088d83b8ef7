// Package failure carries the error taxonomy every layer returns and the HTTP layer renders.
package failure

import (
	"errors"
	"net/http"
)

// Kind names the class of a failure independently of its transport code.
type Kind string

const (
	KindValidation      Kind = "validation"
	KindUnauthenticated Kind = "unauthenticated"
	KindAuthorization   Kind = "authorization"
	KindNotFound        Kind = "not_found"
	KindConflict        Kind = "conflict"
	KindRateLimited     Kind = "rate_limited"
	KindInternal        Kind = "internal"
)

var kindByCode = map[int]Kind{
	http.StatusBadRequest:      KindValidation,
	http.StatusUnauthorized:    KindUnauthenticated,
	http.StatusForbidden:       KindAuthorization,
	http.StatusNotFound:        KindNotFound,
	http.StatusConflict:        KindConflict,
	http.StatusTooManyRequests: KindRateLimited,
}

// Failure is an error the caller is allowed to see, with the HTTP status it maps to.
type Failure struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

var ForbiddenError = New(http.StatusForbidden, "You don't have the required permissions")

func New(code int, message string) *Failure {
	return &Failure{Code: code, Message: message}
}

func (e *Failure) Error() string {
	return e.Message
}

// Kind maps the code onto the taxonomy. Unknown codes are internal.
func (e *Failure) Kind() Kind {
	if kind, ok := kindByCode[e.Code]; ok {
		return kind
	}

	return KindInternal
}

// BadRequest turns err into a validation failure. A nil err stays nil.
func BadRequest(err error) error {
	if err == nil {
		return nil
	}

	return New(http.StatusBadRequest, err.Error())
}

func BadRequestFromString(msg string) error {
	return New(http.StatusBadRequest, msg)
}

// Unauthorized is for a missing or unusable identity.
func Unauthorized(msg string) error {
	return New(http.StatusUnauthorized, msg)
}

// Forbidden is for an identified actor lacking rights on the resource.
func Forbidden(msg string) error {
	return New(http.StatusForbidden, msg)
}

// NotFound uses msg verbatim, e.g. "unit not found".
func NotFound(msg string) error {
	return New(http.StatusNotFound, msg)
}

// Conflict is for writes that collide with existing state, such as overlapping bookings.
func Conflict(msg string) error {
	return New(http.StatusConflict, msg)
}

func as(err error) (*Failure, bool) {
	var fail *Failure

	return fail, errors.As(err, &fail)
}

// GetCode returns the status carried by err, 500 when it carries none.
func GetCode(err error) int {
	if fail, ok := as(err); ok {
		return fail.Code
	}

	return http.StatusInternalServerError
}

// KindOf classifies any error. Errors that are not a Failure are internal.
func KindOf(err error) Kind {
	if fail, ok := as(err); ok {
		return fail.Kind()
	}

	return KindInternal
}

// Is reports whether err carries the given kind anywhere in its chain.
func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}
