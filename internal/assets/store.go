package assets

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

// Store persists uploaded media files for one category under a single
// directory. Names are generated by the upload layer; the store never derives
// them itself.
type Store struct {
	dir string
	log *zap.Logger
}

func NewStore(dir string, log *zap.Logger) *Store {
	return &Store{dir: dir, log: log}
}

// Dir returns the directory this store writes to.
func (s *Store) Dir() string {
	return s.dir
}

// Save writes content under the given name, creating the category directory
// if needed.
func (s *Store) Save(name string, content []byte) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("create asset directory %s: %w", s.dir, err)
	}
	if err := os.WriteFile(filepath.Join(s.dir, name), content, 0o644); err != nil {
		return fmt.Errorf("write asset %s: %w", name, err)
	}
	return nil
}

// Exists reports whether a regular file with the given name is present. Any
// filesystem error counts as missing so broken links degrade instead of
// failing reads.
func (s *Store) Exists(name string) bool {
	if name == "" {
		return false
	}
	info, err := os.Stat(filepath.Join(s.dir, name))
	return err == nil && !info.IsDir()
}

// Delete removes the named file. Failures, including a file that is already
// gone, are logged and swallowed; record mutations must never depend on file
// cleanup succeeding.
func (s *Store) Delete(name string) {
	if name == "" {
		return
	}
	err := os.Remove(filepath.Join(s.dir, name))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		s.log.Warn("could not delete asset file",
			zap.String("dir", s.dir),
			zap.String("file", name),
			zap.Error(err))
	}
}
