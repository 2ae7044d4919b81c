package storage

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
)

// Category selects the upload directory and the accepted file types.
type Category string

const (
	CategoryMediaKits     Category = "media_kits"
	CategoryProductImages Category = "product_images"
)

// RootDir is the prefix of every stored path.
const RootDir = "uploads"

// DefaultMaxBytes is the upload size limit used when none is configured.
const DefaultMaxBytes int64 = 10 << 20

var (
	ErrEmpty           = errors.New("file is empty")
	ErrTooLarge        = errors.New("file exceeds the maximum upload size")
	ErrUnsupportedType = errors.New("file type is not allowed")
	ErrInvalidPath     = errors.New("path is outside the upload directory")
)

type rule struct {
	extensions []string
	mimeTypes  []string
}

var rules = map[Category]rule{
	CategoryMediaKits: {
		extensions: []string{".pdf", ".jpg", ".jpeg", ".png"},
		mimeTypes:  []string{"application/pdf", "image/jpeg", "image/png"},
	},
	CategoryProductImages: {
		extensions: []string{".jpg", ".jpeg", ".png", ".gif", ".webp"},
		mimeTypes:  []string{"image/jpeg", "image/png", "image/gif", "image/webp"},
	},
}

// Upload is a file received from a client.
type Upload struct {
	Filename string
	Content  io.Reader
}

// Store keeps uploaded files on local disk under baseDir/uploads.
type Store struct {
	baseDir  string
	maxBytes int64
}

func NewStore(baseDir string, maxBytes int64) *Store {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}
	return &Store{baseDir: baseDir, maxBytes: maxBytes}
}

// MaxBytes returns the configured size limit
func (s *Store) MaxBytes() int64 {
	return s.maxBytes
}

// Save validates and writes an upload, returning its path relative to the base directory
// in the form uploads/<category>/<uuid><ext>.
func (s *Store) Save(category Category, upload Upload) (string, error) {
	r, ok := rules[category]
	if !ok {
		return "", fmt.Errorf("unknown upload category %q", category)
	}

	ext := strings.ToLower(filepath.Ext(upload.Filename))
	if !contains(r.extensions, ext) {
		return "", fmt.Errorf("%w: %s accepts %s", ErrUnsupportedType, category, strings.Join(r.extensions, ", "))
	}

	data, err := io.ReadAll(io.LimitReader(upload.Content, s.maxBytes+1))
	if err != nil {
		return "", fmt.Errorf("failed to read upload: %w", err)
	}
	if len(data) == 0 {
		return "", ErrEmpty
	}
	if int64(len(data)) > s.maxBytes {
		return "", ErrTooLarge
	}

	detected := mimetype.Detect(data)
	if !matchesAny(detected, r.mimeTypes) {
		return "", fmt.Errorf("%w: content looks like %s", ErrUnsupportedType, detected.String())
	}

	rel := path.Join(RootDir, string(category), uuid.New().String()+ext)
	abs := filepath.Join(s.baseDir, filepath.FromSlash(rel))

	if err := os.MkdirAll(filepath.Dir(abs), 0o755); err != nil {
		return "", fmt.Errorf("failed to create upload directory: %w", err)
	}
	if err := writeFile(abs, data); err != nil {
		return "", err
	}

	log.Printf("Stored %s upload %s (%d bytes)", category, rel, len(data))
	return rel, nil
}

// Delete removes a stored file. Paths outside uploads/ are refused and missing files are not an error.
func (s *Store) Delete(rel string) error {
	if rel == "" {
		return nil
	}
	clean := path.Clean(strings.ReplaceAll(rel, "\\", "/"))
	if !strings.HasPrefix(clean, RootDir+"/") || strings.Contains(clean, "..") {
		return fmt.Errorf("%w: %s", ErrInvalidPath, rel)
	}

	err := os.Remove(filepath.Join(s.baseDir, filepath.FromSlash(clean)))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to delete %s: %w", rel, err)
	}
	return nil
}

// Root returns the directory that is served under /uploads.
func (s *Store) Root() string {
	return filepath.Join(s.baseDir, RootDir)
}

// IsValidation reports whether err was caused by the uploaded file rather than the disk.
func IsValidation(err error) bool {
	return errors.Is(err, ErrEmpty) || errors.Is(err, ErrTooLarge) || errors.Is(err, ErrUnsupportedType)
}

func writeFile(abs string, data []byte) error {
	f, err := os.OpenFile(abs, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", abs, err)
	}
	if _, err := io.Copy(f, bytes.NewReader(data)); err != nil {
		f.Close()
		os.Remove(abs)
		return fmt.Errorf("failed to write %s: %w", abs, err)
	}
	return f.Close()
}

func matchesAny(m *mimetype.MIME, allowed []string) bool {
	for _, a := range allowed {
		if m.Is(a) {
			return true
		}
	}
	return false
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
