package storage

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

var ErrEmptyPath = errors.New("empty results path")

// CSVFile appends rows to a delimited results file. The file is opened,
// written and closed on every Append; there is no header row.
type CSVFile struct {
	path string
	lock bool
}

type CSVOption func(*CSVFile)

// WithAdvisoryLock holds an exclusive advisory lock on the file for the
// duration of each append. Off by default.
func WithAdvisoryLock(on bool) CSVOption {
	return func(f *CSVFile) { f.lock = on }
}

func NewCSVFile(path string, opts ...CSVOption) (*CSVFile, error) {
	if path == "" {
		return nil, ErrEmptyPath
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}
	f := &CSVFile{path: path}
	for _, o := range opts {
		o(f)
	}
	return f, nil
}

func (f *CSVFile) Path() string { return f.path }

func (f *CSVFile) Append(ctx context.Context, r Row) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	fh, err := os.OpenFile(f.path, os.O_WRONLY|os.O_APPEND|os.O_CREATE, 0o644)
	if err != nil {
		return fmt.Errorf("open results file: %w", err)
	}
	defer fh.Close()

	if f.lock {
		if err := lockFile(fh); err != nil {
			return fmt.Errorf("lock results file: %w", err)
		}
		defer unlockFile(fh)
	}

	w := csv.NewWriter(fh)
	if err := w.Write(r.Fields()); err != nil {
		return fmt.Errorf("write row: %w", err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush row: %w", err)
	}
	return nil
}
