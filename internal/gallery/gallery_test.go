package gallery

import (
	"bytes"
	"errors"
	"path/filepath"
	"testing"
	"time"
)

func testMetadata() Metadata {
	return Metadata{
		Name:        "test gallery",
		Description: "renders for testing",
		Project:     `{"seed_global":42}`,
		Version:     "1.0",
	}
}

func TestGalleryRoundtrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.gallery")

	w, err := NewWriter(path, testMetadata())
	if err != nil {
		t.Fatalf("NewWriter failed: %v", err)
	}

	pngData := []byte("\x89PNG\r\n\x1a\nfake image payload")
	entry := Entry{Label: "preview_seed42", Width: 960, Height: 540, Seed: 42}

	if err := w.WriteRender(entry, pngData); err != nil {
		t.Fatalf("WriteRender failed: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	r, err := OpenReader(path)
	if err != nil {
		t.Fatalf("OpenReader failed: %v", err)
	}
	defer r.Close()

	got, err := r.ReadRender("preview_seed42", 960, 540)
	if err != nil {
		t.Fatalf("ReadRender failed: %v", err)
	}
	if !bytes.Equal(got, pngData) {
		t.Errorf("roundtrip mismatch: got %d bytes, want %d", len(got), len(pngData))
	}
}

func TestGalleryMetadata(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.gallery")

	w, err := NewWriter(path, testMetadata())
	if err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}

	r, err := OpenReader(path)
	if err != nil {
		t.Fatal(err)
	}
	defer r.Close()

	meta, err := r.Metadata()
	if err != nil {
		t.Fatalf("Metadata failed: %v", err)
	}
	if meta.Name != "test gallery" {
		t.Errorf("Name = %q, want 'test gallery'", meta.Name)
	}
	if meta.Project != `{"seed_global":42}` {
		t.Errorf("Project snapshot = %q", meta.Project)
	}
}

func TestGalleryList(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.gallery")

	w, err := NewWriter(path, testMetadata())
	if err != nil {
		t.Fatal(err)
	}

	old := time.Now().UTC().Add(-time.Hour)
	entries := []Entry{
		{Label: "a", Width: 960, Height: 540, Seed: 1, CreatedAt: old},
		{Label: "b", Width: 960, Height: 540, Seed: 2, CreatedAt: old.Add(30 * time.Minute)},
	}
	for _, e := range entries {
		if err := w.WriteRender(e, []byte("data")); err != nil {
			t.Fatal(err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}

	r, err := OpenReader(path)
	if err != nil {
		t.Fatal(err)
	}
	defer r.Close()

	list, err := r.List()
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(list))
	}
	// Newest first
	if list[0].Label != "b" || list[1].Label != "a" {
		t.Errorf("expected newest-first ordering, got %s, %s", list[0].Label, list[1].Label)
	}
	if list[0].Seed != 2 {
		t.Errorf("Seed = %d, want 2", list[0].Seed)
	}
}

func TestGalleryNotFound(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.gallery")

	w, err := NewWriter(path, testMetadata())
	if err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}

	r, err := OpenReader(path)
	if err != nil {
		t.Fatal(err)
	}
	defer r.Close()

	_, err = r.ReadRender("absent", 960, 540)
	if err == nil {
		t.Fatal("expected error for missing render")
	}
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("error should wrap ErrNotFound, got: %v", err)
	}
}

func TestGalleryReplaceOnSameSlot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.gallery")

	w, err := NewWriter(path, testMetadata())
	if err != nil {
		t.Fatal(err)
	}

	entry := Entry{Label: "preview", Width: 960, Height: 540, Seed: 42}
	if err := w.WriteRender(entry, []byte("first")); err != nil {
		t.Fatal(err)
	}
	if err := w.Flush(); err != nil {
		t.Fatal(err)
	}
	if err := w.WriteRender(entry, []byte("second")); err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}

	r, err := OpenReader(path)
	if err != nil {
		t.Fatal(err)
	}
	defer r.Close()

	got, err := r.ReadRender("preview", 960, 540)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "second" {
		t.Errorf("expected later write to win, got %q", got)
	}

	list, err := r.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 1 {
		t.Errorf("expected 1 entry after replace, got %d", len(list))
	}
}

func TestGalleryBatchFlushing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.gallery")

	w, err := NewWriter(path, testMetadata())
	if err != nil {
		t.Fatal(err)
	}

	// Exceed the batch size to trigger an automatic flush.
	for i := 0; i < DefaultBatchSize+3; i++ {
		entry := Entry{Label: "r", Width: i + 1, Height: 1, Seed: int64(i)}
		if err := w.WriteRender(entry, []byte("payload")); err != nil {
			t.Fatalf("WriteRender %d failed: %v", i, err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}

	r, err := OpenReader(path)
	if err != nil {
		t.Fatal(err)
	}
	defer r.Close()

	list, err := r.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != DefaultBatchSize+3 {
		t.Errorf("expected %d entries, got %d", DefaultBatchSize+3, len(list))
	}
}

func TestOpenReaderMissingFile(t *testing.T) {
	if _, err := OpenReader(filepath.Join(t.TempDir(), "absent.gallery")); err == nil {
		t.Error("expected error for missing database")
	}
}

func TestEntryKey(t *testing.T) {
	e := Entry{Label: "preview_seed42", Width: 960, Height: 540}
	if got := e.Key(); got != "preview_seed42_960x540" {
		t.Errorf("Key = %s, want preview_seed42_960x540", got)
	}
}
