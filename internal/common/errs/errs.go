// Package errs defines the structured error type shared across minigit's
// engines, so the command façade can switch on a stable code instead of
// matching error strings.
package errs

import (
	"errors"
	"strings"
)

// Error is the base error type used throughout minigit.
type Error struct {
	// Package identifies the originating package (e.g. "store", "index").
	Package string
	// Code is a machine-readable error code, one of the Code* constants.
	Code string
	// Op is the operation being performed when the error occurred.
	Op string
	// Message provides human-readable context.
	Message string
	// Err is the wrapped underlying error, may be nil.
	Err error
}

func (e *Error) Error() string {
	var parts []string

	var prefix strings.Builder
	if e.Package != "" {
		prefix.WriteString("[")
		prefix.WriteString(e.Package)
		prefix.WriteString("]")
	}
	if e.Code != "" {
		prefix.WriteString("[")
		prefix.WriteString(e.Code)
		prefix.WriteString("]")
	}
	if prefix.Len() > 0 {
		parts = append(parts, prefix.String())
	}
	if e.Op != "" {
		parts = append(parts, e.Op)
	}
	if e.Message != "" {
		parts = append(parts, e.Message)
	}

	result := strings.Join(parts, ": ")
	if e.Err != nil {
		if result != "" {
			result += ": " + e.Err.Error()
		} else {
			result = e.Err.Error()
		}
	}
	return result
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches two *Error values by code, so errors.Is(err, errs.New(...,
// CodeEmptyIndex, ...)) works without comparing messages.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Code != "" && e.Code == t.Code
}

// New creates a new structured error.
func New(pkg, code, op, message string, err error) *Error {
	return &Error{Package: pkg, Code: code, Op: op, Message: message, Err: err}
}

// Error codes, one per named error kind plus a few internal categories.
const (
	CodeNotARepository   = "NOT_A_REPOSITORY"
	CodeAlreadyInit      = "ALREADY_INITIALIZED"
	CodePathNotFound     = "PATH_NOT_FOUND"
	CodeEmptyIndex       = "EMPTY_INDEX"
	CodeUnknownTarget    = "UNKNOWN_TARGET"
	CodeBranchExists     = "BRANCH_EXISTS"
	CodeNoCommits        = "NO_COMMITS"
	CodeMissingObject    = "MISSING_OBJECT"
	CodeMalformedObject  = "MALFORMED_OBJECT"
	CodeNoCommonAncestor = "NO_COMMON_ANCESTOR"
	CodeMergeConflict    = "MERGE_CONFLICT"
	CodeDetachedCommit   = "DETACHED_COMMIT"
	CodeInvalidInput     = "INVALID_INPUT"
	CodeInternal         = "INTERNAL"
)

// IsCode reports whether err carries the given code, looking through
// wrapping via errors.As.
func IsCode(err error, code string) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// Code extracts the code of err, or "" if err is not an *Error.
func Code(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}
