package archive

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Dir writes snapshots to a local directory.
type Dir struct {
	root string
}

func NewDir(root string) (*Dir, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("creating archive directory: %w", err)
	}

	return &Dir{root: root}, nil
}

func (d *Dir) Upload(_ context.Context, name string, r io.Reader) error {
	f, err := os.Create(filepath.Join(d.root, filepath.Base(name)))
	if err != nil {
		return fmt.Errorf("creating file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		return fmt.Errorf("writing file: %w", err)
	}

	return nil
}
