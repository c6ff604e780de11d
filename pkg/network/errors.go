package network

import (
	"errors"
	"fmt"
)

// Common sentinel errors
var (
	ErrUnknownHub        = errors.New("unknown hub")
	ErrUnknownTechnology = errors.New("unknown technology")
	ErrUnknownSector     = errors.New("unknown sector")
	ErrUnknownClass      = errors.New("unknown class")
	ErrMissingPipeline   = errors.New("no pipeline distribution technology")
	ErrDuplicateNode     = errors.New("duplicate node")
	ErrDuplicateArc      = errors.New("duplicate arc")
	ErrNodeNotFound      = errors.New("node not found")
)

// BuildError provides structured error information for network synthesis.
type BuildError struct {
	Op      string // Operation that failed (e.g., "scaffoldHub", "spliceConverters")
	Entity  string // Entity kind (e.g., "node", "arc", "hub", "route")
	Name    string // Entity name (if applicable)
	Context string // Additional context
	Cause   error  // Underlying error
}

// Error implements the error interface.
func (e *BuildError) Error() string {
	if e.Name != "" {
		if e.Context != "" {
			return fmt.Sprintf("%s %s %q (%s): %v", e.Op, e.Entity, e.Name, e.Context, e.Cause)
		}
		return fmt.Sprintf("%s %s %q: %v", e.Op, e.Entity, e.Name, e.Cause)
	}
	if e.Context != "" {
		return fmt.Sprintf("%s %s (%s): %v", e.Op, e.Entity, e.Context, e.Cause)
	}
	return fmt.Sprintf("%s %s: %v", e.Op, e.Entity, e.Cause)
}

// Unwrap returns the underlying cause for error chain support.
func (e *BuildError) Unwrap() error {
	return e.Cause
}

// Is reports whether the target error matches this error or its cause.
func (e *BuildError) Is(target error) bool {
	if target == nil {
		return false
	}
	return errors.Is(e.Cause, target)
}

// ErrorBuilder provides a fluent interface for building BuildErrors.
type ErrorBuilder struct {
	err BuildError
}

// NewError creates a new error builder with the given operation.
func NewError(op string) *ErrorBuilder {
	return &ErrorBuilder{err: BuildError{Op: op}}
}

// Hub sets the entity to "hub" with the given name.
func (b *ErrorBuilder) Hub(name string) *ErrorBuilder {
	b.err.Entity = "hub"
	b.err.Name = name
	return b
}

// Node sets the entity to "node" with the given name.
func (b *ErrorBuilder) Node(name string) *ErrorBuilder {
	b.err.Entity = "node"
	b.err.Name = name
	return b
}

// Arc sets the entity to "arc" between the given endpoints.
func (b *ErrorBuilder) Arc(start, end string) *ErrorBuilder {
	b.err.Entity = "arc"
	b.err.Name = start + " -> " + end
	return b
}

// Route sets the entity to "route" between the given hubs.
func (b *ErrorBuilder) Route(start, end string) *ErrorBuilder {
	b.err.Entity = "route"
	b.err.Name = start + " -> " + end
	return b
}

// Technology sets the entity to "technology" with the given name.
func (b *ErrorBuilder) Technology(name string) *ErrorBuilder {
	b.err.Entity = "technology"
	b.err.Name = name
	return b
}

// Sector sets the entity to "sector" with the given name.
func (b *ErrorBuilder) Sector(name string) *ErrorBuilder {
	b.err.Entity = "sector"
	b.err.Name = name
	return b
}

// Converter sets the entity to "converter" with the given name.
func (b *ErrorBuilder) Converter(name string) *ErrorBuilder {
	b.err.Entity = "converter"
	b.err.Name = name
	return b
}

// Context sets additional context information.
func (b *ErrorBuilder) Context(ctx string) *ErrorBuilder {
	b.err.Context = ctx
	return b
}

// Cause sets the underlying error cause.
func (b *ErrorBuilder) Cause(err error) *ErrorBuilder {
	b.err.Cause = err
	return b
}

// Err returns the error as an error interface.
func (b *ErrorBuilder) Err() error {
	return &b.err
}
