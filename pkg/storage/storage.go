// Package storage holds the image store collaborator: uploaded product and
// slider images go in, public URLs come out. Deletion is best-effort at call
// sites; a failed image delete never fails the owning action.
package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// ImageStore stores uploaded images and serves them by URL.
type ImageStore interface {
	Upload(ctx context.Context, filename string, r io.Reader) (string, error)
	Delete(ctx context.Context, url string) error
}

// DiskStore keeps images on the local filesystem under a single directory,
// served under baseURL.
type DiskStore struct {
	dir     string
	baseURL string
}

// NewDiskStore creates a DiskStore rooted at dir, creating it if needed.
func NewDiskStore(dir, baseURL string) (*DiskStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}
	return &DiskStore{
		dir:     dir,
		baseURL: strings.TrimSuffix(baseURL, "/"),
	}, nil
}

// Upload writes the image under a fresh random name and returns its URL.
func (s *DiskStore) Upload(ctx context.Context, filename string, r io.Reader) (string, error) {
	name := uuid.New().String() + filepath.Ext(filename)
	path := filepath.Join(s.dir, name)

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create image file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("failed to write image file: %w", err)
	}
	return s.baseURL + "/" + name, nil
}

// Delete removes the image a URL points at. Unknown URLs are ignored.
func (s *DiskStore) Delete(ctx context.Context, url string) error {
	if !strings.HasPrefix(url, s.baseURL+"/") {
		return nil
	}
	// Base strips any path segments an attacker-controlled URL could carry.
	name := filepath.Base(strings.TrimPrefix(url, s.baseURL+"/"))
	if err := os.Remove(filepath.Join(s.dir, name)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete image %s: %w", name, err)
	}
	return nil
}

// MemoryStore is an in-memory ImageStore for tests.
type MemoryStore struct {
	mu     sync.Mutex
	images map[string][]byte
}

// NewMemoryStore creates an empty in-memory image store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		images: make(map[string][]byte),
	}
}

// Upload stores the image in memory under a generated URL.
func (s *MemoryStore) Upload(ctx context.Context, filename string, r io.Reader) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("failed to read image: %w", err)
	}
	url := "memory://" + uuid.New().String() + filepath.Ext(filename)
	s.mu.Lock()
	s.images[url] = data
	s.mu.Unlock()
	return url, nil
}

// Delete removes an image from memory.
func (s *MemoryStore) Delete(ctx context.Context, url string) error {
	s.mu.Lock()
	delete(s.images, url)
	s.mu.Unlock()
	return nil
}

// Has reports whether an image is stored under the given URL.
func (s *MemoryStore) Has(url string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.images[url]
	return ok
}
