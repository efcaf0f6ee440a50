package export

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

// TestPDFMissingBrowser points the renderer at a path that does not exist;
// it must fail with the dedicated sentinel before trying to launch anything.
func TestPDFMissingBrowser(t *testing.T) {
	r := NewPDFRenderer(filepath.Join(t.TempDir(), "no-such-chrome"))

	_, err := r.Render(context.Background(), "<html><body>x</body></html>")
	if !errors.Is(err, ErrRenderEngineUnavailable) {
		t.Fatalf("err = %v, want ErrRenderEngineUnavailable", err)
	}
}

func TestBrowserPathConfigured(t *testing.T) {
	// An existing file (not necessarily a browser) satisfies the configured
	// path check; discovery is skipped.
	dir := t.TempDir()
	fake := filepath.Join(dir, "chrome")
	if err := os.WriteFile(fake, []byte("#!/bin/sh\n"), 0o755); err != nil {
		t.Fatal(err)
	}

	r := NewPDFRenderer(fake)
	got, err := r.browserPath()
	if err != nil {
		t.Fatalf("browserPath: %v", err)
	}
	if got != fake {
		t.Errorf("browserPath = %q, want %q", got, fake)
	}
}
