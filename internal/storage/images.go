package storage

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// LocalImages stores airplane images below a media root on local disk.
type LocalImages struct {
	root string
}

func NewLocalImages(root string) *LocalImages {
	return &LocalImages{root: root}
}

// Remove deletes the file behind a stored image reference. Empty references
// and already missing files are not errors.
func (s *LocalImages) Remove(ref string) error {
	if ref == "" {
		return nil
	}
	full, err := s.resolve(ref)
	if err != nil {
		return err
	}
	if err := os.Remove(full); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove image %s: %w", ref, err)
	}
	return nil
}

func (s *LocalImages) resolve(ref string) (string, error) {
	full := filepath.Join(s.root, filepath.FromSlash(ref))
	rel, err := filepath.Rel(s.root, full)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("image reference %q escapes media root", ref)
	}
	return full, nil
}
