package catalog

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Format is a catalog source format.
type Format string

const (
	FormatCSV    Format = "csv"
	FormatXLSX   Format = "xlsx"
	FormatSQLite Format = "sqlite"
)

// Options selects how a catalog file is read. Zero values pick defaults.
type Options struct {
	// Format overrides detection by file extension.
	Format Format
	// Sheet is the Excel sheet to read (default first sheet).
	Sheet string
	// Table is the SQLite table to read (default DefaultTable).
	Table string
}

// DetectFormat returns the format for path based on its extension.
func DetectFormat(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv", ".txt":
		return FormatCSV, nil
	case ".xlsx":
		return FormatXLSX, nil
	case ".db", ".sqlite", ".sqlite3":
		return FormatSQLite, nil
	default:
		return "", fmt.Errorf("cannot detect catalog format for %q (supported: .csv, .xlsx, .db, .sqlite)", path)
	}
}

// Load reads the catalog at path into a table.
func Load(ctx context.Context, path string, opts Options) (*Table, error) {
	format := opts.Format
	if format == "" {
		var err error
		if format, err = DetectFormat(path); err != nil {
			return nil, err
		}
	}
	switch format {
	case FormatCSV:
		return LoadCSVFile(path)
	case FormatXLSX:
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open catalog: %w", err)
		}
		defer f.Close()
		return LoadXLSX(f, opts.Sheet)
	case FormatSQLite:
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("open catalog: %w", err)
		}
		src, err := OpenSQLite(path, opts.Table)
		if err != nil {
			return nil, err
		}
		defer src.Close()
		return src.Load(ctx)
	default:
		return nil, fmt.Errorf("unknown catalog format: %s (supported: csv, xlsx, sqlite)", format)
	}
}

// Open loads the catalog at path and wraps it in a Store named after the file.
func Open(ctx context.Context, path string, opts Options) (*Store, error) {
	t, err := Load(ctx, path, opts)
	if err != nil {
		return nil, err
	}
	return NewStore(filepath.Base(path), t), nil
}
