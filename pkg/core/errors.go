package core

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotFound is matched by every lookup that yields no row.
var ErrNotFound = errors.New("record not found")

// ErrUnknownColumn is returned when a filter names a column the entity does not declare.
var ErrUnknownColumn = errors.New("unknown column")

// ErrTableNotFound is matched when an adapter finds no table with the requested name.
var ErrTableNotFound = errors.New("table not found")

// TableNotFoundError is returned by adapters when metadata lookup finds no such table.
type TableNotFoundError struct {
	Table string
}

func (e *TableNotFoundError) Error() string {
	return fmt.Sprintf("table %s not found", e.Table)
}

// Is makes errors.Is(err, ErrTableNotFound) succeed.
func (e *TableNotFoundError) Is(target error) bool {
	return target == ErrTableNotFound
}

// NotFoundError is returned when a lookup by key or by query matches no row.
type NotFoundError struct {
	Entity string
	Column string
	Key    any
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s with %s=%v not found", e.Entity, e.Column, e.Key)
}

// Is makes errors.Is(err, ErrNotFound) succeed.
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// QueryError wraps a driver or storage failure. It is never a not-found condition.
type QueryError struct {
	Entity string
	SQL    string
	Err    error
}

func (e *QueryError) Error() string {
	return fmt.Sprintf("query on %s failed: %v", e.Entity, e.Err)
}

func (e *QueryError) Unwrap() error {
	return e.Err
}

// UnknownEntityError is returned when an entity name is not registered.
type UnknownEntityError struct {
	Name      string
	Available []string
}

func (e *UnknownEntityError) Error() string {
	if len(e.Available) == 0 {
		return fmt.Sprintf("unknown entity %q", e.Name)
	}
	return fmt.Sprintf("unknown entity %q\nAvailable entities: %s", e.Name, strings.Join(e.Available, ", "))
}

// UnknownRelationError is returned when an entity declares no relation with the given name.
type UnknownRelationError struct {
	Entity   string
	Relation string
}

func (e *UnknownRelationError) Error() string {
	return fmt.Sprintf("entity %s has no relation %q", e.Entity, e.Relation)
}

// IsNotFound reports whether err is a not-found condition.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
