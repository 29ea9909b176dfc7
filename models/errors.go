package models

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a pipeline failure. Callers branch on the kind,
// never on the message text.
type ErrorKind string

const (
	// Navigation and session.
	KindNavigationTimeout ErrorKind = "NAVIGATION_TIMEOUT"
	KindNavigation        ErrorKind = "NAVIGATION_FAILED"
	KindBrowserCrash      ErrorKind = "BROWSER_CRASH"

	// Element interaction. The first four are retried by the fetcher.
	KindIndexOutOfRange      ErrorKind = "ELEMENT_INDEX_OUT_OF_RANGE"
	KindNotInteractable      ErrorKind = "ELEMENT_NOT_INTERACTABLE"
	KindClickIntercepted     ErrorKind = "CLICK_INTERCEPTED"
	KindStaleElement         ErrorKind = "STALE_ELEMENT"
	KindInteractionTimeout   ErrorKind = "INTERACTION_TIMEOUT"
	KindInteractionExhausted ErrorKind = "INTERACTION_EXHAUSTED"

	// Search results.
	KindResultsContainerMissing ErrorKind = "RESULTS_CONTAINER_MISSING"
	KindResultsListEmpty        ErrorKind = "RESULTS_LIST_EMPTY"

	// Extraction and scoring.
	KindExtractorNotImplemented ErrorKind = "EXTRACTOR_NOT_IMPLEMENTED"
	KindExtraction              ErrorKind = "CONTENT_EXTRACTION_FAILED"
	KindScoreParseFailure       ErrorKind = "SCORE_PARSE_FAILURE"

	// Collaborators.
	KindHTTPFetch      ErrorKind = "HTTP_FETCH_FAILED"
	KindLLMFailure     ErrorKind = "LLM_FAILURE"
	KindLLMAuthFailure ErrorKind = "LLM_AUTH_FAILURE"
	KindLLMRateLimited ErrorKind = "LLM_RATE_LIMITED"

	KindInvalidInput ErrorKind = "INVALID_INPUT"
	KindInternal     ErrorKind = "INTERNAL_ERROR"
)

// ErrorDetail is the structured error in API responses.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error is the internal error type carrying an ErrorKind.
// It supports error wrapping via Unwrap.
type Error struct {
	Kind    ErrorKind
	Message string
	Err     error // wrapped original error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// NewError creates a new Error.
func NewError(kind ErrorKind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// ToDetail converts an internal error to an API-facing ErrorDetail.
func (e *Error) ToDetail() *ErrorDetail {
	return &ErrorDetail{Code: string(e.Kind), Message: e.Message}
}

// KindOf returns the kind of the outermost *Error in err's chain, or
// KindInternal when err carries none. A nil error has no kind.
func KindOf(err error) ErrorKind {
	if err == nil {
		return ""
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// IsKind reports whether any *Error in err's chain has the given kind.
func IsKind(err error, kind ErrorKind) bool {
	for err != nil {
		var e *Error
		if !errors.As(err, &e) {
			return false
		}
		if e.Kind == kind {
			return true
		}
		err = e.Err
	}
	return false
}

// AsError returns err as an *Error, wrapping foreign errors as KindInternal.
func AsError(err error) *Error {
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return NewError(KindInternal, err.Error(), err)
}
