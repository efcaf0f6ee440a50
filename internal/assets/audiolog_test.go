package assets

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func newTestAudioLog(t *testing.T) *AudioLog {
	t.Helper()
	dir := t.TempDir()
	l, err := NewAudioLog(filepath.Join(dir, "audio"), filepath.Join(dir, "motivation.log"))
	if err != nil {
		t.Fatalf("NewAudioLog: %v", err)
	}
	return l
}

// TestAudioLogAppend verifies entries are appended one per line with the
// timestamp, and that embedded newlines are collapsed.
func TestAudioLogAppend(t *testing.T) {
	l := newTestAudioLog(t)
	ts := time.Date(2025, 3, 1, 7, 30, 0, 0, time.UTC)

	if err := l.Append(ts, "First entry"); err != nil {
		t.Fatalf("Append: %v", err)
	}
	if err := l.Append(ts.Add(time.Hour), "Second\nentry, with\r\nnewlines"); err != nil {
		t.Fatalf("Append: %v", err)
	}

	data, err := os.ReadFile(l.LogPath())
	if err != nil {
		t.Fatalf("reading log: %v", err)
	}
	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("log has %d lines, want 2", len(lines))
	}
	if !strings.HasPrefix(lines[0], "2025-03-01T07:30:00Z\t") {
		t.Errorf("line 0 = %q, want RFC3339 timestamp prefix", lines[0])
	}
	if !strings.Contains(lines[0], "First entry") {
		t.Errorf("line 0 = %q, missing text", lines[0])
	}
	if strings.Contains(lines[1], "\r") || !strings.Contains(lines[1], "Second entry, with newlines") {
		t.Errorf("line 1 = %q, newlines not collapsed", lines[1])
	}
}

// TestSaveClipAndListRecent verifies clips are listed newest-first by
// modification time and capped at n.
func TestSaveClipAndListRecent(t *testing.T) {
	l := newTestAudioLog(t)
	now := time.Now()

	var paths []string
	for i := 0; i < 3; i++ {
		p, err := l.SaveClip(now.Add(time.Duration(i)*time.Minute), []byte("mp3"))
		if err != nil {
			t.Fatalf("SaveClip %d: %v", i, err)
		}
		// Spread modification times so ordering is unambiguous.
		mt := now.Add(time.Duration(i) * time.Minute)
		if err := os.Chtimes(p, mt, mt); err != nil {
			t.Fatal(err)
		}
		paths = append(paths, p)
	}

	clips, err := l.ListRecent(2)
	if err != nil {
		t.Fatalf("ListRecent: %v", err)
	}
	if len(clips) != 2 {
		t.Fatalf("ListRecent(2) = %d clips, want 2", len(clips))
	}
	if clips[0].Path != paths[2] {
		t.Errorf("clips[0] = %q, want newest %q", clips[0].Path, paths[2])
	}
	if clips[1].Path != paths[1] {
		t.Errorf("clips[1] = %q, want %q", clips[1].Path, paths[1])
	}

	latest, err := l.Latest()
	if err != nil {
		t.Fatalf("Latest: %v", err)
	}
	if latest == nil || latest.Path != paths[2] {
		t.Errorf("Latest = %+v, want %q", latest, paths[2])
	}
}

// TestLatestEmpty verifies Latest returns nil (not an error) when no clips
// have been generated yet.
func TestLatestEmpty(t *testing.T) {
	l := newTestAudioLog(t)
	latest, err := l.Latest()
	if err != nil {
		t.Fatalf("Latest: %v", err)
	}
	if latest != nil {
		t.Errorf("Latest = %+v, want nil", latest)
	}
}
