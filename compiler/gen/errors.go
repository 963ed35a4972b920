package gen

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for common failure cases.
var (
	// ErrAmbiguousVersion indicates that the declaration files disagree on
	// their package path and no common version segment could be inferred.
	ErrAmbiguousVersion = errors.New("apigen: ambiguous version")
	// ErrConflictingMetadata indicates that more than one distinct
	// non-empty metadata annotation exists across the input files.
	ErrConflictingMetadata = errors.New("apigen: conflicting metadata")
	// ErrUnknownType indicates a method reference to a message type that
	// is not present in the input set.
	ErrUnknownType = errors.New("apigen: unknown type reference")
	// ErrInvalidConfig indicates a configuration error.
	ErrInvalidConfig = errors.New("apigen: invalid configuration")
)

// AmbiguousVersionError is returned when the input files declare package
// paths that differ below the granularity the naming resolver can
// reconcile. All files must share the same package up to and including
// the version segment.
type AmbiguousVersionError struct {
	Packages []string // distinct package paths, in first-seen order.
}

// Error implements the error interface.
func (e *AmbiguousVersionError) Error() string {
	var b strings.Builder
	b.WriteString("apigen: naming error: ")
	b.WriteString("all files must declare the same package up to and including the version")
	if len(e.Packages) > 0 {
		b.WriteString(" (got ")
		b.WriteString(strings.Join(e.Packages, ", "))
		b.WriteString(")")
	}
	return b.String()
}

// Is reports whether the target matches the sentinel error for AmbiguousVersionError.
func (e *AmbiguousVersionError) Is(target error) bool {
	return target == ErrAmbiguousVersion
}

// NewAmbiguousVersionError creates a new AmbiguousVersionError.
func NewAmbiguousVersionError(packages []string) *AmbiguousVersionError {
	return &AmbiguousVersionError{Packages: packages}
}

// ConflictingMetadataError is returned when the metadata annotation is
// provided in more than one file with inconsistent values.
type ConflictingMetadataError struct {
	First  string // product or package name of the first record seen.
	Second string // product or package name of the mismatching record.
}

// Error implements the error interface.
func (e *ConflictingMetadataError) Error() string {
	var b strings.Builder
	b.WriteString("apigen: naming error: the metadata annotation must be consistent across files")
	if e.First != "" || e.Second != "" {
		fmt.Fprintf(&b, " (%q != %q)", e.First, e.Second)
	}
	return b.String()
}

// Is reports whether the target matches the sentinel error for ConflictingMetadataError.
func (e *ConflictingMetadataError) Is(target error) bool {
	return target == ErrConflictingMetadata
}

// NewConflictingMetadataError creates a new ConflictingMetadataError.
func NewConflictingMetadataError(first, second string) *ConflictingMetadataError {
	return &ConflictingMetadataError{First: first, Second: second}
}

// UnknownTypeError is returned when a method declaration references a
// message type that was not declared by any file in the input set.
type UnknownTypeError struct {
	Method   string // method that holds the dangling reference.
	TypeName string // qualified path that failed to resolve.
}

// Error implements the error interface.
func (e *UnknownTypeError) Error() string {
	return fmt.Sprintf("apigen: graph error: method %q references unknown type %q", e.Method, e.TypeName)
}

// Is reports whether the target matches the sentinel error for UnknownTypeError.
func (e *UnknownTypeError) Is(target error) bool {
	return target == ErrUnknownType
}

// NewUnknownTypeError creates a new UnknownTypeError.
func NewUnknownTypeError(method, typeName string) *UnknownTypeError {
	return &UnknownTypeError{Method: method, TypeName: typeName}
}

// ConfigError represents a configuration error.
type ConfigError struct {
	Option  string
	Value   any
	Message string
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	if e.Value != nil {
		return fmt.Sprintf("apigen: config error for %q (value: %v): %s", e.Option, e.Value, e.Message)
	}
	return fmt.Sprintf("apigen: config error for %q: %s", e.Option, e.Message)
}

// Is reports whether the target matches the sentinel error for ConfigError.
func (e *ConfigError) Is(target error) bool {
	return target == ErrInvalidConfig
}

// NewConfigError creates a new ConfigError.
func NewConfigError(option string, value any, message string) *ConfigError {
	return &ConfigError{
		Option:  option,
		Value:   value,
		Message: message,
	}
}

// IsAmbiguousVersionError reports whether the error is an AmbiguousVersionError.
func IsAmbiguousVersionError(err error) bool {
	var verErr *AmbiguousVersionError
	return errors.As(err, &verErr)
}

// IsConflictingMetadataError reports whether the error is a ConflictingMetadataError.
func IsConflictingMetadataError(err error) bool {
	var metaErr *ConflictingMetadataError
	return errors.As(err, &metaErr)
}

// IsUnknownTypeError reports whether the error is an UnknownTypeError.
func IsUnknownTypeError(err error) bool {
	var typeErr *UnknownTypeError
	return errors.As(err, &typeErr)
}

// IsConfigError reports whether the error is a ConfigError.
func IsConfigError(err error) bool {
	var configErr *ConfigError
	return errors.As(err, &configErr)
}
