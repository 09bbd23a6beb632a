// Package export writes enriched game records as CSV.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"pgnlens/internal/classify"
)

// Writer emits a header row followed by one row per record.
type Writer struct {
	csv   *csv.Writer
	count int
}

// NewWriter writes the header to w and returns a Writer for the records.
// Rows use CRLF line endings.
func NewWriter(w io.Writer) (*Writer, error) {
	cw := csv.NewWriter(w)
	cw.UseCRLF = true
	if err := cw.Write(classify.Columns()); err != nil {
		return nil, fmt.Errorf("write csv header: %w", err)
	}
	return &Writer{csv: cw}, nil
}

// Write appends one record.
func (w *Writer) Write(rec classify.Record) error {
	if err := w.csv.Write(rec.Row()); err != nil {
		return fmt.Errorf("write csv row %s: %w", rec.Source, err)
	}
	w.count++
	return nil
}

// Flush flushes buffered rows and reports any deferred write error.
func (w *Writer) Flush() error {
	w.csv.Flush()
	if err := w.csv.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return nil
}

// Count returns the number of records written so far.
func (w *Writer) Count() int {
	return w.count
}

// WriteFile writes records to path through a temporary file in the same
// directory, so an interrupted run never leaves a truncated report behind.
func WriteFile(path string, records []classify.Record) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp csv: %w", err)
	}
	tmpPath := tmp.Name()
	committed := false
	defer func() {
		if !committed {
			_ = tmp.Close()
			_ = os.Remove(tmpPath)
		}
	}()

	w, err := NewWriter(tmp)
	if err != nil {
		return err
	}
	for _, rec := range records {
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	if err := w.Flush(); err != nil {
		return err
	}
	if err := tmp.Chmod(0o644); err != nil {
		return fmt.Errorf("chmod temp csv: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp csv: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("replace %s: %w", path, err)
	}
	committed = true
	return nil
}
