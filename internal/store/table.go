package store

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/cvillegar/Odontologia/internal/models"
)

// Codec maps a row type to its table columns.
type Codec[T any] struct {
	Columns []string
	// IDColumn, when set, is filled with a fresh UUID for rows loaded
	// without one.
	IDColumn string
	Encode   func(T) models.Record
	Decode   func(models.Record) (T, error)
}

// Table is one named collection held in memory and rewritten in full on
// every mutation. The in-memory rows are replaced only after the backend
// accepted the write.
type Table[T any] struct {
	name    string
	codec   Codec[T]
	backend Backend

	mu      sync.RWMutex
	rows    []T
	corrupt bool
}

func NewTable[T any](name string, codec Codec[T], backend Backend) *Table[T] {
	return &Table[T]{name: name, codec: codec, backend: backend}
}

func (t *Table[T]) Name() string { return t.name }

// Load replaces the in-memory rows with the durable copy. An absent table
// loads empty without error. An unreadable table loads empty and rows that
// do not decode are skipped; both return a *CorruptTableError and the
// durable copy is quarantined before the next write.
func (t *Table[T]) Load(ctx context.Context) error {
	recs, err := t.backend.Read(ctx, t.name)

	t.mu.Lock()
	defer t.mu.Unlock()
	t.rows = nil
	t.corrupt = false

	if errors.Is(err, ErrTableAbsent) {
		return nil
	}
	if err != nil {
		t.corrupt = true
		return &CorruptTableError{Table: t.name, Err: err}
	}

	rows := make([]T, 0, len(recs))
	assigned := false
	var rowErrs []error
	for i, rec := range recs {
		if col := t.codec.IDColumn; col != "" && strings.TrimSpace(rec[col]) == "" {
			rec[col] = uuid.NewString()
			assigned = true
		}
		row, err := t.codec.Decode(rec)
		if err != nil {
			// line 1 is the header
			rowErrs = append(rowErrs, fmt.Errorf("line %d: %w", i+2, err))
			continue
		}
		rows = append(rows, row)
	}
	t.rows = rows

	var loadErr error
	if len(rowErrs) > 0 {
		t.corrupt = true
		loadErr = &CorruptTableError{Table: t.name, Skipped: len(rowErrs), Err: errors.Join(rowErrs...)}
	}
	if assigned {
		if err := t.persistLocked(ctx, rows); err != nil {
			return errors.Join(loadErr, fmt.Errorf("store ids for %s: %w", t.name, err))
		}
	}
	return loadErr
}

// Len reports how many rows are loaded.
func (t *Table[T]) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.rows)
}

// Rows returns a copy of all rows in insertion order.
func (t *Table[T]) Rows() []T {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return slices.Clone(t.rows)
}

func (t *Table[T]) Find(match func(T) bool) []T {
	t.mu.RLock()
	defer t.mu.RUnlock()
	var out []T
	for _, row := range t.rows {
		if match(row) {
			out = append(out, row)
		}
	}
	return out
}

func (t *Table[T]) First(match func(T) bool) (T, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	for _, row := range t.rows {
		if match(row) {
			return row, true
		}
	}
	var zero T
	return zero, false
}

func (t *Table[T]) Append(ctx context.Context, row T) error {
	return t.AppendUnless(ctx, row, nil)
}

// AppendUnless appends row unless an existing row satisfies conflict, in
// which case nothing is written and ErrConflict is returned.
func (t *Table[T]) AppendUnless(ctx context.Context, row T, conflict func(T) bool) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if conflict != nil && slices.ContainsFunc(t.rows, conflict) {
		return ErrConflict
	}
	next := append(slices.Clone(t.rows), row)
	if err := t.persistLocked(ctx, next); err != nil {
		return err
	}
	t.rows = next
	return nil
}

// UpdateField sets column field to value on every row matching match and
// returns how many rows changed.
func (t *Table[T]) UpdateField(ctx context.Context, match func(T) bool, field, value string) (int, error) {
	if !slices.Contains(t.codec.Columns, field) {
		return 0, fmt.Errorf("%w: %s.%s", ErrUnknownField, t.name, field)
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	next := slices.Clone(t.rows)
	n := 0
	for i, row := range next {
		if !match(row) {
			continue
		}
		rec := t.codec.Encode(row)
		rec[field] = value
		updated, err := t.codec.Decode(rec)
		if err != nil {
			return 0, err
		}
		next[i] = updated
		n++
	}
	if n == 0 {
		return 0, nil
	}
	if err := t.persistLocked(ctx, next); err != nil {
		return 0, err
	}
	t.rows = next
	return n, nil
}

// DeleteWhere removes every row matching match and returns how many were
// removed.
func (t *Table[T]) DeleteWhere(ctx context.Context, match func(T) bool) (int, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	next := slices.DeleteFunc(slices.Clone(t.rows), match)
	n := len(t.rows) - len(next)
	if n == 0 {
		return 0, nil
	}
	if err := t.persistLocked(ctx, next); err != nil {
		return 0, err
	}
	t.rows = next
	return n, nil
}

func (t *Table[T]) persistLocked(ctx context.Context, rows []T) error {
	if t.corrupt {
		if err := t.backend.Quarantine(ctx, t.name); err != nil {
			return fmt.Errorf("quarantine %s: %w", t.name, err)
		}
		t.corrupt = false
	}
	recs := make([]models.Record, len(rows))
	for i, row := range rows {
		recs[i] = t.codec.Encode(row)
	}
	if err := t.backend.Write(ctx, t.name, t.codec.Columns, recs); err != nil {
		return fmt.Errorf("write %s: %w", t.name, err)
	}
	return nil
}
