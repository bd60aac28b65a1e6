package writer

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"

	"github.com/insightdelivered/statement-scraper/internal/models"
)

// ErrNoTransactions is returned when there is nothing to write. No file is
// created in that case.
var ErrNoTransactions = errors.New("no transactions found")

// Write writes records as CSV with a header row built from the csv struct tags.
func Write[T models.Record](out io.Writer, rows []T) error {
	if err := gocsv.Marshal(rows, out); err != nil {
		return fmt.Errorf("failed to write CSV: %w", err)
	}
	return nil
}

// WriteToFile writes records to a CSV file at the given path. Rows are
// written to a temporary file in the same directory and renamed into
// place, so a failed write leaves no partial file behind.
func WriteToFile[T models.Record](path string, rows []T) (err error) {
	if len(rows) == 0 {
		return ErrNoTransactions
	}

	f, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+"-*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create output file %q: %w", path, err)
	}
	defer func() {
		if err != nil {
			f.Close()
			os.Remove(f.Name())
		}
	}()

	if err = Write(f, rows); err != nil {
		return err
	}
	if err = f.Close(); err != nil {
		return fmt.Errorf("failed to write output file %q: %w", path, err)
	}
	if err = os.Chmod(f.Name(), 0o644); err != nil {
		return fmt.Errorf("failed to write output file %q: %w", path, err)
	}
	if err = os.Rename(f.Name(), path); err != nil {
		return fmt.Errorf("failed to create output file %q: %w", path, err)
	}
	return nil
}

// WriteStatement writes the records matching the statement's format.
func WriteStatement(out io.Writer, info *models.Statement) error {
	if info.Count() == 0 {
		return ErrNoTransactions
	}
	if info.Format == models.FormatBilt {
		return Write(out, info.CardTransactions)
	}
	return Write(out, info.Transactions)
}

// WriteStatementToFile writes the statement's records to a CSV file.
func WriteStatementToFile(path string, info *models.Statement) error {
	if info.Format == models.FormatBilt {
		return WriteToFile(path, info.CardTransactions)
	}
	return WriteToFile(path, info.Transactions)
}
