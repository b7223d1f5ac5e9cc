package store

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/cvillegar/Odontologia/internal/models"
)

// CSVBackend keeps each table in <dir>/<table>.csv with a header row.
type CSVBackend struct {
	dir string
	now func() time.Time
}

func NewCSVBackend(dir string) *CSVBackend {
	return &CSVBackend{dir: dir, now: time.Now}
}

func (b *CSVBackend) Path(table string) string {
	return filepath.Join(b.dir, table+".csv")
}

func (b *CSVBackend) Read(_ context.Context, table string) ([]models.Record, error) {
	data, err := os.ReadFile(b.Path(table))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrTableAbsent
	}
	if err != nil {
		return nil, err
	}
	// pandas writes an empty DataFrame as a blank line.
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, ErrTableAbsent
	}

	r := csv.NewReader(bytes.NewReader(data))
	lines, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	header := lines[0]
	for i, col := range header {
		header[i] = strings.TrimSpace(strings.TrimPrefix(col, "\ufeff"))
	}

	rows := make([]models.Record, 0, len(lines)-1)
	for _, line := range lines[1:] {
		rec := make(models.Record, len(header))
		for i, col := range header {
			rec[col] = line[i]
		}
		rows = append(rows, rec)
	}
	return rows, nil
}

func (b *CSVBackend) Write(_ context.Context, table string, columns []string, rows []models.Record) error {
	if err := os.MkdirAll(b.dir, 0o755); err != nil {
		return err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(columns); err != nil {
		return err
	}
	line := make([]string, len(columns))
	for _, rec := range rows {
		for i, col := range columns {
			line[i] = rec[col]
		}
		if err := w.Write(line); err != nil {
			return err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(b.dir, table+".*.tmp")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(buf.Bytes()); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), b.Path(table))
}

func (b *CSVBackend) Quarantine(_ context.Context, table string) error {
	src := b.Path(table)
	dst := fmt.Sprintf("%s.corrupt-%s", src, b.now().Format("20060102T150405"))
	err := os.Rename(src, dst)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}
