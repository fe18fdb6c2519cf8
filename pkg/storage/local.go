package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Local implements Sink on top of the local filesystem.
// All names are resolved relative to the configured root directory.
type Local struct {
	root string
}

// NewLocal creates a Local sink rooted at dir.
// The directory is created (with parents) if it does not already exist.
func NewLocal(dir string) (*Local, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(abs, 0o755); err != nil {
		return nil, err
	}
	return &Local{root: abs}, nil
}

// Root returns the absolute root directory.
func (l *Local) Root() string {
	return l.root
}

// resolve turns a name into an absolute filesystem path inside root.
func (l *Local) resolve(name string) (string, error) {
	full := filepath.Join(l.root, filepath.FromSlash(name))
	rel, err := filepath.Rel(l.root, full)
	if err != nil || rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("storage: invalid name %q", name)
	}
	return full, nil
}

// Put writes body to a temporary file next to the target and renames it into
// place, so readers never observe a partial artifact. contentType is ignored.
func (l *Local) Put(_ context.Context, name, _ string, body io.Reader) (string, error) {
	full, err := l.resolve(name)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return "", err
	}

	f, err := os.CreateTemp(filepath.Dir(full), "."+filepath.Base(full)+".*.tmp")
	if err != nil {
		return "", err
	}
	tmp := f.Name()

	if _, err := io.Copy(f, body); err != nil {
		f.Close()
		os.Remove(tmp)
		return "", fmt.Errorf("storage: write %s: %w", name, err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return "", err
	}
	if err := os.Rename(tmp, full); err != nil {
		os.Remove(tmp)
		return "", err
	}
	return full, nil
}

// Exists reports whether the named file exists.
func (l *Local) Exists(_ context.Context, name string) (bool, error) {
	full, err := l.resolve(name)
	if err != nil {
		return false, err
	}
	_, err = os.Stat(full)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, err
}

var _ Sink = (*Local)(nil)
