package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

type Local struct {
	dir string
}

func NewLocal(dir string) (*Local, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(abs, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create image directory, %w", err)
	}

	return &Local{dir: abs}, nil
}

func (l *Local) Save(ctx context.Context, name string, r io.Reader, contentType string) (string, error) {
	path := filepath.Join(l.dir, name)

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create image file, %w", err)
	}

	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		os.Remove(path)
		return "", fmt.Errorf("failed to write image file, %w", err)
	}

	if err := f.Close(); err != nil {
		os.Remove(path)
		return "", err
	}

	return path, nil
}
