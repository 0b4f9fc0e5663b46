package infra

// filestore.go — local disk storage for uploaded receipt files.
// Files are saved under baseDir with a timestamped, collision-free name;
// the caller records the returned relative path in tickets_compras.
// Validation (MIME allow-list, size cap) happens at the upload handler —
// this layer only persists bytes.

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// FileStore persists receipt uploads on the local filesystem.
type FileStore struct {
	baseDir string
}

// NewFileStore creates the base directory if needed.
func NewFileStore(baseDir string) (*FileStore, error) {
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("filestore: create dir %s: %w", baseDir, err)
	}
	return &FileStore{baseDir: baseDir}, nil
}

// Save writes the upload to disk and returns the stored relative path.
// The name encodes the compra, a timestamp, and a short random suffix so
// multiple tickets for the same purchase never collide.
func (fs *FileStore) Save(compraID uuid.UUID, originalName string, r io.Reader) (string, error) {
	ext := strings.ToLower(filepath.Ext(originalName))
	name := fmt.Sprintf("ticket_%s_%d_%s%s",
		compraID.String(), time.Now().Unix(), uuid.NewString()[:8], ext)

	dst, err := os.Create(filepath.Join(fs.baseDir, name))
	if err != nil {
		return "", fmt.Errorf("filestore: create %s: %w", name, err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, r); err != nil {
		// Remove the partial file; the DB row was never written.
		os.Remove(dst.Name())
		return "", fmt.Errorf("filestore: write %s: %w", name, err)
	}
	return name, nil
}

// Open returns a reader for a stored file by its relative path.
func (fs *FileStore) Open(relPath string) (*os.File, error) {
	// Reject traversal — stored paths are always flat names.
	if strings.Contains(relPath, "..") || strings.ContainsRune(relPath, os.PathSeparator) {
		return nil, fmt.Errorf("filestore: invalid path %q", relPath)
	}
	return os.Open(filepath.Join(fs.baseDir, relPath))
}

// Path resolves a stored relative path to its absolute location.
func (fs *FileStore) Path(relPath string) string {
	return filepath.Join(fs.baseDir, relPath)
}
