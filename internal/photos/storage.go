// Package photos stores listing photos as flat files on disk, addressed by
// opaque generated ids.
package photos

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/freefind/freefind-backend/pkg/config"
	pkgerrors "github.com/freefind/freefind-backend/pkg/errors"
	"github.com/google/uuid"
)

var extensionByContentType = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
}

// Storage writes photo bytes into a single directory. Ids are uuid-based
// filenames; callers persist them on the item record.
type Storage struct {
	dir      string
	maxBytes int64
}

// NewStorage builds a photo store rooted at the configured directory.
func NewStorage(cfg config.PhotosConfig) *Storage {
	return &Storage{
		dir:      cfg.Dir,
		maxBytes: int64(cfg.MaxUploadMB) * 1024 * 1024,
	}
}

// MaxBytes is the upload size ceiling.
func (s *Storage) MaxBytes() int64 {
	return s.maxBytes
}

// Save validates and writes the photo, returning its id.
func (s *Storage) Save(data []byte) (string, error) {
	if len(data) == 0 {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "photo is empty")
	}
	if s.maxBytes > 0 && int64(len(data)) > s.maxBytes {
		return "", pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("photo exceeds %d byte limit", s.maxBytes))
	}

	contentType := http.DetectContentType(data)
	ext, ok := extensionByContentType[contentType]
	if !ok {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "unsupported photo type "+contentType)
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeStorage, err, "create photos dir")
	}

	id := uuid.NewString() + ext
	if err := os.WriteFile(filepath.Join(s.dir, id), data, 0o644); err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeStorage, err, "write photo")
	}
	return id, nil
}

// Load returns the photo bytes and content type for an id.
func (s *Storage) Load(id string) ([]byte, string, error) {
	if err := validateID(id); err != nil {
		return nil, "", err
	}

	data, err := os.ReadFile(filepath.Join(s.dir, id))
	if os.IsNotExist(err) {
		return nil, "", pkgerrors.New(pkgerrors.CodeNotFound, "photo not found")
	}
	if err != nil {
		return nil, "", pkgerrors.Wrap(pkgerrors.CodeStorage, err, "read photo")
	}
	return data, http.DetectContentType(data), nil
}

// Delete removes the photo. Missing files are not an error.
func (s *Storage) Delete(id string) error {
	if err := validateID(id); err != nil {
		return err
	}

	err := os.Remove(filepath.Join(s.dir, id))
	if err != nil && !os.IsNotExist(err) {
		return pkgerrors.Wrap(pkgerrors.CodeStorage, err, "delete photo")
	}
	return nil
}

// validateID rejects anything that could escape the flat directory.
func validateID(id string) error {
	if id == "" || strings.ContainsAny(id, "/\\") || strings.Contains(id, "..") {
		return pkgerrors.New(pkgerrors.CodeValidation, "invalid photo id")
	}
	return nil
}
