// Package fs stores visit artifacts as files.
package fs

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/fwojciec/pagetrim"
)

// Ensure ArtifactStore implements pagetrim.ArtifactStore at compile time.
var _ pagetrim.ArtifactStore = (*ArtifactStore)(nil)

// ArtifactStore writes each artifact to <dir>/<index><ext>. Files are
// written to a temporary name and renamed into place, so a reader never
// sees a partial artifact.
type ArtifactStore struct {
	dir string
	ext string
}

// NewArtifactStore creates a store writing into dir with the given file
// extension, for example ".html". The directory is created by every save that finds it missing.
func NewArtifactStore(dir, ext string) *ArtifactStore {
	return &ArtifactStore{dir: dir, ext: ext}
}

// Path returns the file an artifact with the given index is written to.
func (s *ArtifactStore) Path(index int) string {
	return filepath.Join(s.dir, strconv.Itoa(index)+s.ext)
}

// Save writes content as the artifact for index and returns its path.
func (s *ArtifactStore) Save(ctx context.Context, index int, content string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if index < 0 {
		return "", pagetrim.Errorf(pagetrim.EINVALID, "invalid artifact index %d", index)
	}

	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return "", fmt.Errorf("creating output directory: %w", err)
	}

	path := s.Path(index)
	tmp, err := os.CreateTemp(s.dir, "."+strconv.Itoa(index)+"-*.tmp")
	if err != nil {
		return "", fmt.Errorf("creating temp file: %w", err)
	}
	// Removing after a successful rename fails harmlessly.
	defer os.Remove(tmp.Name())

	if _, err := tmp.WriteString(content); err != nil {
		tmp.Close()
		return "", fmt.Errorf("writing %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("writing %s: %w", path, err)
	}
	if err := os.Chmod(tmp.Name(), 0644); err != nil {
		return "", fmt.Errorf("setting permissions on %s: %w", path, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return "", fmt.Errorf("renaming to %s: %w", path, err)
	}
	return path, nil
}
