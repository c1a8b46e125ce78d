// Package storage persists uploaded post images on disk. Stored names
// are a sanitized version of the client filename behind a random
// prefix, so two uploads of "cat.jpg" never clobber each other.
package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// UploadStore saves and serves uploaded images under a single
// directory. Post records keep only the stored filename.
type UploadStore struct {
	dir string
}

// NewUploadStore creates the upload directory if needed.
func NewUploadStore(dir string) (*UploadStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &UploadStore{dir: dir}, nil
}

// Save writes the upload to disk and returns the stored filename.
func (s *UploadStore) Save(src io.Reader, clientName string) (string, error) {
	name := uuid.NewString() + "_" + SanitizeFilename(clientName)

	dst, err := os.Create(filepath.Join(s.dir, name))
	if err != nil {
		return "", fmt.Errorf("create upload file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", fmt.Errorf("write upload file: %w", err)
	}

	return name, nil
}

// Path resolves a stored filename to its on-disk path. Only the base
// name of the input is used, so a traversal-shaped filename cannot
// escape the upload directory.
func (s *UploadStore) Path(filename string) string {
	return filepath.Join(s.dir, filepath.Base(filename))
}

// SanitizeFilename reduces a client-supplied filename to ASCII
// letters, digits, dashes, underscores and dots, dropping any path
// components. An empty result becomes "file".
func SanitizeFilename(name string) string {
	// Strip directories from both path conventions.
	name = name[strings.LastIndexByte(name, '/')+1:]
	name = name[strings.LastIndexByte(name, '\\')+1:]

	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '-' || r == '_' || r == '.':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}

	// Leading dots would make hidden or ".."-shaped names.
	cleaned := strings.TrimLeft(b.String(), ".")
	if cleaned == "" {
		return "file"
	}
	return cleaned
}
