// internal/errors/errors.go
package appErrors

import "fmt"

// StorageError wraps a persistence failure on a named table. The outbox
// engine propagates it instead of reporting per-entry outcomes, so callers
// never mistake an unpersisted pass for a committed one.
type StorageError struct {
	Op    string // read, write
	Table string
	Err   error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s on table %q failed: %v", e.Op, e.Table, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

// Helper constructor
func NewStorageError(op, table string, err error) error {
	return &StorageError{Op: op, Table: table, Err: err}
}

// ErrPartnerNotFound is a sentinel error
type ErrPartnerNotFound struct {
	Name string
}

func (e *ErrPartnerNotFound) Error() string {
	return fmt.Sprintf("partner %q not found", e.Name)
}

func NewPartnerNotFound(name string) error {
	return &ErrPartnerNotFound{Name: name}
}

// ErrReminderNotFound is a sentinel error
type ErrReminderNotFound struct {
	ID string
}

func (e *ErrReminderNotFound) Error() string {
	return fmt.Sprintf("reminder %s not found", e.ID)
}

func NewReminderNotFound(id string) error {
	return &ErrReminderNotFound{ID: id}
}
