package etc

import (
	"fmt"

	"github.com/zeebo/errs"
)

// Code is a numeric error code from the closed taxonomy in spec §7.
type Code int

// Command-related error codes.
const (
	CodeKeyNotFound  Code = 100
	CodeTestFailed   Code = 101
	CodeNotFile      Code = 102
	CodeNotDir       Code = 104
	CodeNodeExist    Code = 105
	CodeRootROnly    Code = 107
	CodeDirNotEmpty  Code = 108
	CodeUnauthorized Code = 110
)

// Form/validation error codes.
const (
	CodePrevValueRequired Code = 201
	CodeTTLNaN            Code = 202
	CodeIndexNaN          Code = 203
	CodeInvalidField      Code = 209
	CodeInvalidForm       Code = 210
)

// Consensus-layer error codes.
const (
	CodeRaftInternal Code = 300
	CodeLeaderElect  Code = 301
)

// Store error codes.
const (
	CodeWatcherCleared    Code = 400
	CodeEventIndexCleared Code = 401
)

// classOf maps each closed error code to a named errs.Class, following
// the storj-storj convention of building one errs.Class per error kind
// (internal/errs2/sanitize_test.go wraps rpcstatus kinds the same way)
// instead of the teacher's bare `type ErrX struct{ Text string }`.
var classOf = map[Code]errs.Class{}

func newClass(code Code, name string) errs.Class {
	c := errs.Class(name)
	classOf[code] = c
	return c
}

var (
	classKeyNotFound  = newClass(CodeKeyNotFound, "key not found")
	classTestFailed   = newClass(CodeTestFailed, "compare failed")
	classNotFile      = newClass(CodeNotFile, "not a file")
	classNotDir       = newClass(CodeNotDir, "not a directory")
	classNodeExist    = newClass(CodeNodeExist, "node already exists")
	classRootROnly    = newClass(CodeRootROnly, "root is read-only")
	classDirNotEmpty  = newClass(CodeDirNotEmpty, "directory not empty")
	classUnauthorized = newClass(CodeUnauthorized, "unauthorized")

	classPrevValueRequired = newClass(CodePrevValueRequired, "prev value required")
	classTTLNaN            = newClass(CodeTTLNaN, "ttl is not a number")
	classIndexNaN          = newClass(CodeIndexNaN, "index is not a number")
	classInvalidField      = newClass(CodeInvalidField, "invalid field")
	classInvalidForm       = newClass(CodeInvalidForm, "invalid form")

	classRaftInternal = newClass(CodeRaftInternal, "raft internal error")
	classLeaderElect  = newClass(CodeLeaderElect, "during leader election")

	classWatcherCleared    = newClass(CodeWatcherCleared, "watcher cleared")
	classEventIndexCleared = newClass(CodeEventIndexCleared, "event index cleared")
)

// Error is a store-level error: one of the closed kinds in spec §7,
// carrying a human-readable message, an optional cause, and the index
// the store was at when the error occurred.
type Error struct {
	Code    Code
	Message string
	Cause   string
	Index   uint64

	wrapped error
}

// NewError builds an Error of the given code.
func NewError(code Code, message string, index uint64) *Error {
	return &Error{Code: code, Message: message, Index: index}
}

// NewErrorCause builds an Error of the given code with an attached cause.
func NewErrorCause(code Code, message, cause string, index uint64) *Error {
	return &Error{Code: code, Message: message, Cause: cause, Index: index}
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != "" {
		return fmt.Sprintf("%s (%d): %s [%s]", e.className(), e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s (%d): %s", e.className(), e.Code, e.Message)
}

// Unwrap exposes the underlying errs.Class instance, so that an Error
// built with this package's constructors also satisfies
// classOf[e.Code].Has(err) and errors.As against the class's own error
// type.
func (e *Error) Unwrap() error {
	if e.wrapped != nil {
		return e.wrapped
	}
	class, ok := classOf[e.Code]
	if !ok {
		return nil
	}
	e.wrapped = class.New("%s", e.Message)
	return e.wrapped
}

func (e *Error) className() string {
	if class, ok := classOf[e.Code]; ok {
		return string(class)
	}
	return "unknown error"
}

// IsCode reports whether err is an *Error of the given code — the
// idiomatic check for callers that received an error from this package
// and want to branch on one of the closed kinds in spec §7.
func IsCode(err error, code Code) bool {
	e, ok := err.(*Error)
	return ok && e.Code == code
}

// Class returns the errs.Class this error's code maps to, e.g. for use
// with errClass.Has(err) or for logging a stable, non-localized name.
func (e *Error) Class() errs.Class {
	return classOf[e.Code]
}

// Exported class sentinels, mirroring the closed taxonomy named in
// spec §7. Prefer IsCode for branching on a specific *Error; these are
// useful for logging a stable class name or matching with
// class.Has(err) against an error of unknown concrete type.
var (
	ErrKeyNotFound  = classKeyNotFound
	ErrTestFailed   = classTestFailed
	ErrNotFile      = classNotFile
	ErrNotDir       = classNotDir
	ErrNodeExist    = classNodeExist
	ErrRootROnly    = classRootROnly
	ErrDirNotEmpty  = classDirNotEmpty
	ErrUnauthorized = classUnauthorized

	ErrPrevValueRequired = classPrevValueRequired
	ErrTTLNaN            = classTTLNaN
	ErrIndexNaN          = classIndexNaN
	ErrInvalidField      = classInvalidField
	ErrInvalidForm       = classInvalidForm

	ErrRaftInternal = classRaftInternal
	ErrLeaderElect  = classLeaderElect

	ErrWatcherCleared    = classWatcherCleared
	ErrEventIndexCleared = classEventIndexCleared
)

// Transport errors are client-side failures that never came from the
// wire; they are distinct from the Error/Code taxonomy above because
// no store ever produced them.
var (
	// ErrConnection wraps a transport-level connection failure.
	ErrConnection = errs.Class("connection error")

	// ErrConnectionRefused is the specific case of a refused connection.
	ErrConnectionRefused = errs.Class("connection refused")

	// ErrTimedOut is raised when a bounded call's deadline elapses.
	ErrTimedOut = errs.Class("timed out")
)

// HTTPError is a transport-layer error carrying a non-2xx HTTP status
// whose body could not be decoded as a store Error envelope.
type HTTPError struct {
	StatusCode int
}

// Error implements the error interface.
func (e *HTTPError) Error() string {
	return fmt.Sprintf("etc: unexpected HTTP status %d", e.StatusCode)
}

// ValidationError is a programmer-misuse error raised locally before
// any I/O happens (spec §7: "a distinct failure class"). The adapters
// raise it for §4.2's exactly-one-of(value, dir) rule; a non-text value
// cannot be passed, since SetOptions.Value is a *string.
type ValidationError struct {
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return "etc: invalid request: " + e.Message
}
