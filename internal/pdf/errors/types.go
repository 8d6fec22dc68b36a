package errors

import (
	"errors"
	"fmt"
)

// Code is a stable machine-readable identifier for a failure class.
// Codes are part of the tool output contract and must not be renamed.
type Code string

const (
	CodeFileNotFound     Code = "FILE_NOT_FOUND"
	CodeFileTooLarge     Code = "FILE_TOO_LARGE"
	CodeNotAPDF          Code = "NOT_A_PDF"
	CodeEncrypted        Code = "ENCRYPTED"
	CodeParseFailure     Code = "PARSE_FAILURE"
	CodeInvalidPageRange Code = "INVALID_PAGE_RANGE"
	CodeInvalidRequest   Code = "INVALID_REQUEST"
	CodeFetchFailure     Code = "FETCH_FAILURE"
	CodeAccessDenied     Code = "ACCESS_DENIED"
	CodeUnknown          Code = "UNKNOWN"
)

// InspectError carries a failure class, a human-readable message and an
// optional suggestion telling the caller what to try instead.
type InspectError struct {
	Code       Code   `json:"code"`
	Message    string `json:"message"`
	Suggestion string `json:"suggestion,omitempty"`
	Err        error  `json:"-"`
}

// Error implements the error interface
func (e *InspectError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap exposes the underlying cause for errors.Is and errors.As
func (e *InspectError) Unwrap() error {
	return e.Err
}

// New creates an InspectError with no underlying cause
func New(code Code, message string) *InspectError {
	return &InspectError{Code: code, Message: message}
}

// Newf creates an InspectError with a formatted message
func Newf(code Code, format string, args ...any) *InspectError {
	return &InspectError{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap attaches a failure class to an underlying error
func Wrap(code Code, message string, err error) *InspectError {
	return &InspectError{Code: code, Message: message, Err: err}
}

// WithSuggestion adds caller guidance to an existing error
func (e *InspectError) WithSuggestion(suggestion string) *InspectError {
	e.Suggestion = suggestion
	return e
}

// CodeOf extracts the failure class from any error chain. Errors that do
// not carry an InspectError report CodeUnknown.
func CodeOf(err error) Code {
	var ie *InspectError
	if errors.As(err, &ie) {
		return ie.Code
	}
	return CodeUnknown
}

// SuggestionOf extracts the suggestion from an error chain, if any
func SuggestionOf(err error) string {
	var ie *InspectError
	if errors.As(err, &ie) {
		return ie.Suggestion
	}
	return ""
}
