package services

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// ErrorKind classifies a failed operation
type ErrorKind int

const (
	// KindValidation is a malformed or incomplete request, rejected before any store call
	KindValidation ErrorKind = iota + 1
	// KindAuthorization is a missing or mismatched identity
	KindAuthorization
	// KindUpstream is a failure reported by the auth provider or the store
	KindUpstream
)

func (k ErrorKind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindAuthorization:
		return "authorization"
	case KindUpstream:
		return "upstream"
	default:
		return fmt.Sprintf("ErrorKind(%d)", int(k))
	}
}

// Error is a failure whose Message is safe to show to the client
type Error struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

const (
	msgMustBeLoggedIn = "Must be logged in"
	msgUnauthorized   = "Unauthorized"
)

func validationError(message string) *Error {
	return &Error{Kind: KindValidation, Message: message}
}

func authorizationError(message string) *Error {
	return &Error{Kind: KindAuthorization, Message: message}
}

// upstreamError passes the underlying message through verbatim
func upstreamError(err error) *Error {
	var svcErr *Error
	if errors.As(err, &svcErr) {
		return svcErr
	}
	return &Error{Kind: KindUpstream, Message: err.Error(), Err: err}
}

var validate = validator.New()

// validateRequest runs struct validation and maps the first failing field to its message
func validateRequest(req any, messages map[string]string) *Error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) && len(validationErrs) > 0 {
		field := validationErrs[0].Field()
		if msg, ok := messages[field]; ok {
			return validationError(msg)
		}
		return validationError(fmt.Sprintf("%s is invalid", field))
	}
	return validationError(err.Error())
}
