package store

import (
	"errors"
	"strings"
)

// Typed failures. Callers classify with errors.Is; anything else coming out
// of the store is a storage failure, wrapped and propagated as-is.
var (
	// ErrNotFound means the referenced entity is absent. A negative
	// result, not a fault.
	ErrNotFound = errors.New("not found")

	// Conflicts: the write would break an invariant. State is unchanged.
	ErrDuplicateID       = errors.New("student id already exists")
	ErrDuplicateSerial   = errors.New("serial already in inventory")
	ErrAlreadyCheckedOut = errors.New("item is already checked out")
	ErrAlreadyHolding    = errors.New("student already holds an item from this catalog")

	// Invalid input: rejected at the presentation layer first, but the
	// store defends against it anyway.
	ErrInvalidSection = errors.New("invalid section")
	ErrOutOfRange     = errors.New("value out of range")

	// Missing preconditions for a write.
	ErrUnknownStudent = errors.New("student does not exist")
	ErrUnknownType    = errors.New("unknown instrument type")
)

// uniqueViolation reports whether err is a SQLite unique-constraint failure
// on the given table.column. Classifying by the constraint lets the
// check-and-write stay a single constrained statement.
func uniqueViolation(err error, column string) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed: "+column)
}

// nullable maps an empty string to NULL for optional text columns.
func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
