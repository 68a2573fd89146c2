package repository

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/resolvehub/issue-desk/internal/schema"
)

// flatFile is a delimited table on disk. Reads always come back normalized.
type flatFile struct {
	path   string
	schema *schema.Schema
}

func (f flatFile) load(ctx context.Context) (schema.Table, error) {
	if err := ctx.Err(); err != nil {
		return schema.Table{}, err
	}
	file, err := os.Open(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		return f.schema.Empty(), nil
	}
	if err != nil {
		return schema.Table{}, fmt.Errorf("open %s: %w", f.path, err)
	}
	defer file.Close()

	raw, err := schema.ReadTable(file)
	if err != nil {
		return schema.Table{}, fmt.Errorf("parse %s: %w", f.path, err)
	}
	return f.schema.Normalize(raw), nil
}

// save rewrites the whole table through a temp file and rename. A context
// that ended before the rename leaves the file untouched.
func (f flatFile) save(ctx context.Context, table schema.Table) error {
	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create dir %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(f.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp for %s: %w", f.path, err)
	}
	tmpName := tmp.Name()

	if err := schema.WriteTable(tmp, table); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write %s: %w", f.path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close temp for %s: %w", f.path, err)
	}
	if err := ctx.Err(); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, f.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replace %s: %w", f.path, err)
	}
	return nil
}
