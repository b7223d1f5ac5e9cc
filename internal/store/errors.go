package store

import (
	"errors"
	"fmt"
)

var (
	// ErrTableAbsent means the table has never been written. Loading it
	// yields an empty table.
	ErrTableAbsent = errors.New("table does not exist")
	// ErrTableCorrupt matches a *CorruptTableError.
	ErrTableCorrupt = errors.New("table is corrupt")
	ErrUnknownField = errors.New("unknown field")
	ErrConflict     = errors.New("conflicting row exists")
)

// CorruptTableError reports a table whose durable copy could not be fully
// read. Skipped is zero when nothing could be read and the table is served
// empty; otherwise it counts the rows left out. Either way the durable copy
// is quarantined before the next write.
type CorruptTableError struct {
	Table   string
	Skipped int
	Err     error
}

func (e *CorruptTableError) Error() string {
	if e.Skipped > 0 {
		return fmt.Sprintf("table %s: skipped %d unreadable rows: %v", e.Table, e.Skipped, e.Err)
	}
	return fmt.Sprintf("table %s is corrupt: %v", e.Table, e.Err)
}

func (e *CorruptTableError) Unwrap() error { return e.Err }

func (e *CorruptTableError) Is(target error) bool { return target == ErrTableCorrupt }
