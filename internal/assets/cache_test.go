package assets

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// TestImageCacheRoundTrip verifies store → exists → read returns the same
// bytes, and that PathFor is stable for raw (unsanitized) names.
func TestImageCacheRoundTrip(t *testing.T) {
	c, err := NewImageCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewImageCache: %v", err)
	}

	if c.Exists("Arm Circles") {
		t.Fatal("Exists = true before Store")
	}

	data := []byte{0x89, 'P', 'N', 'G', 1, 2, 3}
	path, err := c.Store("Arm Circles", data)
	if err != nil {
		t.Fatalf("Store: %v", err)
	}
	if !c.Exists("Arm Circles") {
		t.Error("Exists = false after Store")
	}
	if path != c.PathFor("Arm Circles") {
		t.Errorf("Store path = %q, PathFor = %q", path, c.PathFor("Arm Circles"))
	}
	if filepath.Base(path) != "arm-circles.png" {
		t.Errorf("file name = %q, want arm-circles.png", filepath.Base(path))
	}

	got, err := c.Read("Arm Circles")
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if !bytes.Equal(got, data) {
		t.Errorf("Read = %v, want %v", got, data)
	}
}

// TestImageCacheOverwrite verifies storing the same key twice overwrites
// rather than duplicates.
func TestImageCacheOverwrite(t *testing.T) {
	dir := t.TempDir()
	c, err := NewImageCache(dir)
	if err != nil {
		t.Fatalf("NewImageCache: %v", err)
	}

	if _, err := c.Store("Squat", []byte("v1")); err != nil {
		t.Fatalf("Store v1: %v", err)
	}
	if _, err := c.Store("Squat", []byte("v2")); err != nil {
		t.Fatalf("Store v2: %v", err)
	}

	got, err := c.Read("Squat")
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if string(got) != "v2" {
		t.Errorf("Read = %q, want %q", got, "v2")
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Errorf("cache dir has %d entries, want 1", len(entries))
	}
}

// TestImageCacheNoTempLeftover verifies Store leaves no temp files behind,
// so partial writes can never be mistaken for cache entries.
func TestImageCacheNoTempLeftover(t *testing.T) {
	dir := t.TempDir()
	c, err := NewImageCache(dir)
	if err != nil {
		t.Fatalf("NewImageCache: %v", err)
	}
	if _, err := c.Store("Plank", []byte("png-bytes")); err != nil {
		t.Fatalf("Store: %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	for _, e := range entries {
		if strings.HasPrefix(e.Name(), ".img-") {
			t.Errorf("temp file %q left behind", e.Name())
		}
	}
}
