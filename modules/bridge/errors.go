package bridge

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Kind classifies a bridge failure.
type Kind string

const (
	KindInvalidRequest       Kind = "invalid_request"
	KindInvalidCredential    Kind = "invalid_credential"
	KindQuotaExceeded        Kind = "quota_exceeded"
	KindEmptyResponse        Kind = "empty_response"
	KindUnrecognizedResponse Kind = "unrecognized_response"
	KindUnknown              Kind = "unknown_generation_failure"
)

const (
	MsgInvalidRequest       = "Missing prompt or API key"
	MsgInvalidCredential    = "Invalid API key. Please check your Google AI API key."
	MsgQuotaExceeded        = "API quota exceeded. Please check your usage limits."
	MsgNoVideoData          = "No video data returned from API"
	MsgEmptyVideoData       = "Empty video data returned from API"
	MsgUnrecognizedResponse = "Unrecognized video data returned from API"
	MsgGenericFailure       = "Failed to generate video. Please try again."
)

// Error is what the handler turns into a status code and a JSON body.
type Error struct {
	Kind    Kind
	Status  int
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Cause }

func newError(kind Kind, message string, cause error) *Error {
	return &Error{Kind: kind, Status: statusFor(kind), Message: message, Cause: cause}
}

func statusFor(kind Kind) int {
	switch kind {
	case KindInvalidRequest:
		return http.StatusBadRequest
	case KindInvalidCredential:
		return http.StatusUnauthorized
	case KindQuotaExceeded:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

// ErrInvalidRequest is returned before any upstream call when prompt or credential is blank.
var ErrInvalidRequest = newError(KindInvalidRequest, MsgInvalidRequest, nil)

// Classify maps an upstream call error onto the taxonomy. Matching is
// case-sensitive and "API key" is checked before "quota".
func Classify(err error) *Error {
	if err == nil {
		return nil
	}
	var be *Error
	if errors.As(err, &be) {
		return be
	}

	msg := err.Error()
	switch {
	case strings.Contains(msg, "API key"):
		return newError(KindInvalidCredential, MsgInvalidCredential, err)
	case strings.Contains(msg, "quota"):
		return newError(KindQuotaExceeded, MsgQuotaExceeded, err)
	case strings.TrimSpace(msg) == "":
		return newError(KindUnknown, MsgGenericFailure, err)
	default:
		return newError(KindUnknown, msg, err)
	}
}
