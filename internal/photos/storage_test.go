package photos

import (
	"bytes"
	"image"
	"image/png"
	"strings"
	"testing"

	"github.com/freefind/freefind-backend/pkg/config"
	pkgerrors "github.com/freefind/freefind-backend/pkg/errors"
)

func newTestStorage(t *testing.T, maxMB int) *Storage {
	t.Helper()
	return NewStorage(config.PhotosConfig{Dir: t.TempDir(), MaxUploadMB: maxMB})
}

func pngBytes(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 2, 2))); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	storage := newTestStorage(t, 10)
	data := pngBytes(t)

	id, err := storage.Save(data)
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if !strings.HasSuffix(id, ".png") {
		t.Fatalf("expected png extension, got id %q", id)
	}

	loaded, contentType, err := storage.Load(id)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !bytes.Equal(loaded, data) {
		t.Fatal("loaded bytes differ from saved bytes")
	}
	if contentType != "image/png" {
		t.Fatalf("unexpected content type %q", contentType)
	}
}

func TestSaveRejectsUnsupportedType(t *testing.T) {
	storage := newTestStorage(t, 10)

	_, err := storage.Save([]byte("plain text, not an image"))
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestSaveRejectsEmptyAndOversized(t *testing.T) {
	storage := newTestStorage(t, 10)
	if _, err := storage.Save(nil); pkgerrors.As(err) == nil {
		t.Fatalf("expected error for empty photo, got %v", err)
	}

	tiny := NewStorage(config.PhotosConfig{Dir: t.TempDir(), MaxUploadMB: 0})
	tiny.maxBytes = 4
	if _, err := tiny.Save(pngBytes(t)); pkgerrors.As(err) == nil {
		t.Fatalf("expected error for oversized photo, got %v", err)
	}
}

func TestDeleteIsIdempotent(t *testing.T) {
	storage := newTestStorage(t, 10)

	id, err := storage.Save(pngBytes(t))
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := storage.Delete(id); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := storage.Delete(id); err != nil {
		t.Fatalf("second delete should no-op, got %v", err)
	}
	if _, _, err := storage.Load(id); pkgerrors.As(err) == nil || pkgerrors.As(err).Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found after delete, got %v", err)
	}
}

func TestIDValidationBlocksTraversal(t *testing.T) {
	storage := newTestStorage(t, 10)
	for _, id := range []string{"", "../secret", "a/b.png", "a\\b.png", "..\\x"} {
		if _, _, err := storage.Load(id); pkgerrors.As(err) == nil {
			t.Fatalf("expected rejection for id %q", id)
		}
	}
}
