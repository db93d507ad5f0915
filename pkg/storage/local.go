package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// ErrInvalidPath is returned for object paths that escape the base directory.
var ErrInvalidPath = errors.New("invalid object path")

// ErrObjectNotFound is returned when a requested object does not exist.
var ErrObjectNotFound = errors.New("object not found")

// LocalStorage keeps document blobs on disk and hands out signed download URLs.
type LocalStorage struct {
	baseDir    string
	signer     *SignedURLSigner
	publicBase string
}

// NewLocalStorage ensures the base directory exists. publicBase is the URL prefix the
// signed-file route is mounted under.
func NewLocalStorage(baseDir string, signer *SignedURLSigner, publicBase string) (*LocalStorage, error) {
	if baseDir == "" {
		baseDir = "./uploads"
	}
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("create blob directory: %w", err)
	}
	return &LocalStorage{
		baseDir:    baseDir,
		signer:     signer,
		publicBase: strings.TrimRight(publicBase, "/"),
	}, nil
}

// Upload copies r into the object path, replacing any existing object.
func (s *LocalStorage) Upload(_ context.Context, objectPath string, r io.Reader, _ string) error {
	path, err := s.resolve(objectPath)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("prepare blob directory: %w", err)
	}
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create blob: %w", err)
	}
	if _, err := io.Copy(file, r); err != nil {
		_ = file.Close()
		_ = os.Remove(path)
		return fmt.Errorf("write blob: %w", err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("close blob: %w", err)
	}
	return nil
}

// Download opens the stored object for reading.
func (s *LocalStorage) Download(_ context.Context, objectPath string) (io.ReadCloser, error) {
	path, err := s.resolve(objectPath)
	if err != nil {
		return nil, err
	}
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrObjectNotFound
		}
		return nil, fmt.Errorf("open blob: %w", err)
	}
	return file, nil
}

// Remove deletes the objects. Missing objects are ignored.
func (s *LocalStorage) Remove(_ context.Context, objectPaths ...string) error {
	for _, objectPath := range objectPaths {
		path, err := s.resolve(objectPath)
		if err != nil {
			return err
		}
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("delete blob: %w", err)
		}
	}
	return nil
}

// PublicURL returns a time-limited signed URL for the object, or "" when signing fails.
func (s *LocalStorage) PublicURL(objectPath string) string {
	if s.signer == nil {
		return ""
	}
	token, _, err := s.signer.Generate(objectPath)
	if err != nil {
		return ""
	}
	return s.publicBase + "/" + token
}

// Resolve validates a signed token and returns the object path it grants access to.
func (s *LocalStorage) Resolve(token string) (string, error) {
	if s.signer == nil {
		return "", fmt.Errorf("signing disabled")
	}
	objectPath, _, err := s.signer.Parse(token)
	return objectPath, err
}

func (s *LocalStorage) resolve(objectPath string) (string, error) {
	cleaned := filepath.Clean("/" + filepath.ToSlash(objectPath))
	if cleaned == "/" || strings.Contains(objectPath, "..") {
		return "", ErrInvalidPath
	}
	return filepath.Join(s.baseDir, filepath.FromSlash(cleaned)), nil
}
