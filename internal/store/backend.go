package store

import (
	"context"

	"github.com/cvillegar/Odontologia/internal/models"
)

// Backend persists whole tables. Every Write replaces the previous copy of
// the table.
type Backend interface {
	// Read returns the rows of a table in stored order, or ErrTableAbsent.
	Read(ctx context.Context, table string) ([]models.Record, error)
	Write(ctx context.Context, table string, columns []string, rows []models.Record) error
	// Quarantine moves an unreadable table aside so a later Write does not
	// destroy it.
	Quarantine(ctx context.Context, table string) error
}
