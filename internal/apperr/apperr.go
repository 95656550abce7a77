// Package apperr classifies raw failures (transport errors, HTTP statuses,
// identity-provider codes) into a closed taxonomy with a stable
// machine-usable kind and a human-readable message. Nothing past this
// package leaks provider-specific error shapes.
package apperr

import (
	"context"
	"errors"
	"fmt"
	"net"

	"github.com/mkravets/linkjournal/internal/common"
)

// Kind is the classification tag consumed by UI feedback.
type Kind string

const (
	KindNetwork        Kind = "NETWORK"
	KindAuthentication Kind = "AUTHENTICATION"
	KindValidation     Kind = "VALIDATION"
	KindPermission     Kind = "PERMISSION"
	KindNotFound       Kind = "NOT_FOUND"
	KindServer         Kind = "SERVER"
	KindUpload         Kind = "UPLOAD"
	KindUnknown        Kind = "UNKNOWN"
)

// Error is the single error shape produced by classification.
//
// Message carries the technical detail (backend or provider text),
// UserMessage the text suitable for a transient notification. Code holds the
// identity-provider code ("auth/...") when the failure came from that side.
type Error struct {
	Kind        Kind
	Message     string
	UserMessage string
	StatusCode  int
	Code        string
	Cause       error
}

func (e *Error) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s: %s", e.Kind, e.Message)
	}
	return string(e.Kind)
}

func (e *Error) Unwrap() error { return e.Cause }

// New builds an Error of the given kind; the message doubles as the user
// message.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message, UserMessage: message}
}

// KindOf extracts the classified kind, classifying on the fly when err has
// not been through Classify yet. Nil errors yield "".
func KindOf(err error) Kind {
	if err == nil {
		return ""
	}
	return Classify(err).Kind
}

// IsKind reports whether err classifies as kind.
func IsKind(err error, kind Kind) bool {
	return err != nil && Classify(err).Kind == kind
}

// CodeOf returns the provider or API error code carried by err,
// or "" when err carries none.
func CodeOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// statusTable maps HTTP status codes to kinds and default user messages.
var statusTable = map[int]struct {
	kind    Kind
	message string
}{
	400: {KindValidation, "Invalid request. Please check your input."},
	401: {KindAuthentication, "Please log in to continue."},
	403: {KindPermission, "You don't have permission to perform this action."},
	404: {KindNotFound, "The requested resource was not found."},
	409: {KindValidation, "This resource already exists."},
	500: {KindServer, "Server error. Please try again later."},
	502: {KindServer, "Service temporarily unavailable. Please try again."},
	503: {KindServer, "Service is under maintenance. Please try again later."},
}

// FromStatus classifies an HTTP failure status. apiMessage is the `error`
// field of the response body, kept as the technical message when present.
func FromStatus(status int, apiMessage string) *Error {
	entry, ok := statusTable[status]
	if !ok {
		switch {
		case status >= 500:
			entry = statusTable[500]
		default:
			entry.kind = KindUnknown
			entry.message = "An unexpected error occurred."
		}
	}

	message := apiMessage
	if message == "" {
		message = entry.message
	}

	return &Error{
		Kind:        entry.kind,
		Message:     message,
		UserMessage: entry.message,
		StatusCode:  status,
	}
}

// authMessages maps known identity-provider codes to curated user messages.
// Unknown codes fall back to a generic authentication failure.
var authMessages = map[string]string{
	"auth/email-already-in-use":                    "This email is already registered. Please login instead.",
	"auth/invalid-email":                           "Please enter a valid email address.",
	"auth/operation-not-allowed":                   "This operation is not allowed. Please contact support.",
	"auth/weak-password":                           "Password is too weak. Please use at least 6 characters.",
	"auth/user-disabled":                           "This account has been disabled. Please contact support.",
	"auth/user-not-found":                          "No account found with this email.",
	"auth/wrong-password":                          "Incorrect password. Please try again.",
	"auth/invalid-credential":                      "Invalid email or password.",
	"auth/too-many-requests":                       "Too many failed attempts. Please try again later.",
	"auth/network-request-failed":                  "Network error. Please check your connection.",
	"auth/requires-recent-login":                   "Please log out and log back in to perform this action.",
	"auth/account-exists-with-different-credential": "An account already exists with this email using a different sign-in method.",
}

const genericAuthMessage = "Authentication failed. Please try again."

// FromAuthCode classifies an identity-provider failure by its "auth/..."
// code. The mapping is deterministic: known codes get their curated message,
// everything else the generic one.
func FromAuthCode(code string, cause error) *Error {
	message, ok := authMessages[code]
	if !ok {
		message = genericAuthMessage
	}
	return &Error{
		Kind:        KindAuthentication,
		Message:     code,
		UserMessage: message,
		Code:        code,
		Cause:       cause,
	}
}

// Network classifies a transport-level failure: the request produced no
// response at all.
func Network(cause error) *Error {
	message := "Network error. Please check your internet connection."
	e := &Error{Kind: KindNetwork, UserMessage: message, Cause: cause}
	if cause != nil {
		e.Message = cause.Error()
	} else {
		e.Message = message
	}
	return e
}

// Upload classifies a media-upload failure.
func Upload(cause error) *Error {
	message := "Failed to upload file. Please try again."
	e := &Error{Kind: KindUpload, UserMessage: message, Cause: cause}
	if cause != nil {
		e.Message = cause.Error()
	} else {
		e.Message = message
	}
	return e
}

// Classify normalizes any error into *Error. It is idempotent: an already
// classified error is returned unchanged. Sentinels from internal/common and
// transport-level failures get their natural kinds; everything unmatched
// becomes UNKNOWN with the original message passed through.
func Classify(err error) *Error {
	if err == nil {
		return nil
	}

	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr
	}

	var netErr net.Error
	if errors.As(err, &netErr) || errors.Is(err, context.DeadlineExceeded) {
		return Network(err)
	}

	switch {
	case errors.Is(err, common.ErrUnauthorized), errors.Is(err, common.ErrInvalidToken), errors.Is(err, common.ErrTokenExpired):
		return &Error{Kind: KindAuthentication, Message: err.Error(), UserMessage: "Please log in to continue.", Cause: err}
	case errors.Is(err, common.ErrNotFound):
		return &Error{Kind: KindNotFound, Message: err.Error(), UserMessage: "The requested resource was not found.", Cause: err}
	case errors.Is(err, common.ErrValidation):
		return &Error{Kind: KindValidation, Message: err.Error(), UserMessage: "Please check your input and try again.", Cause: err}
	}

	return &Error{
		Kind:        KindUnknown,
		Message:     err.Error(),
		UserMessage: "Something went wrong. Please try again.",
		Cause:       err,
	}
}
