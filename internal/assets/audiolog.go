package assets

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

// AudioLog owns the motivation artifacts: an append-only human-readable text
// log and a directory of timestamped MP3 clips. Single writer, no locking;
// "most recent" is derived from file modification time, not an index.
type AudioLog struct {
	dir     string
	logPath string
}

// Clip describes one generated audio file.
type Clip struct {
	Name    string    `json:"name"`
	Path    string    `json:"-"`
	Size    int64     `json:"size"`
	ModTime time.Time `json:"mod_time"`
}

// NewAudioLog opens (or creates) the audio directory and the log file's
// parent directory.
func NewAudioLog(dir, logPath string) (*AudioLog, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating audio dir %s: %w", dir, err)
	}
	if err := os.MkdirAll(filepath.Dir(logPath), 0o755); err != nil {
		return nil, fmt.Errorf("creating log dir: %w", err)
	}
	return &AudioLog{dir: dir, logPath: logPath}, nil
}

// LogPath returns the text log location.
func (l *AudioLog) LogPath() string { return l.logPath }

// Append adds one motivation entry to the text log. Newlines in the text are
// collapsed so the log stays one line per entry.
func (l *AudioLog) Append(t time.Time, text string) error {
	f, err := os.OpenFile(l.logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("opening motivation log: %w", err)
	}
	defer f.Close()

	line := t.UTC().Format(time.RFC3339) + "\t" + flatten(text) + "\n"
	if _, err := f.WriteString(line); err != nil {
		return fmt.Errorf("appending motivation log: %w", err)
	}
	return nil
}

// SaveClip writes MP3 bytes to a timestamped file and returns its path.
// Temp-then-rename so an interrupted write never surfaces as a clip.
func (l *AudioLog) SaveClip(t time.Time, data []byte) (string, error) {
	name := t.UTC().Format("20060102-150405") + "_" + uuid.NewString()[:8] + ".mp3"
	dst := filepath.Join(l.dir, name)

	tmp, err := os.CreateTemp(l.dir, ".clip-*")
	if err != nil {
		return "", fmt.Errorf("creating temp audio file: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return "", fmt.Errorf("writing audio clip: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return "", fmt.Errorf("closing audio clip: %w", err)
	}
	if err := os.Rename(tmp.Name(), dst); err != nil {
		os.Remove(tmp.Name())
		return "", fmt.Errorf("renaming audio clip into place: %w", err)
	}
	return dst, nil
}

// ListRecent returns up to n clips, newest first by modification time.
func (l *AudioLog) ListRecent(n int) ([]Clip, error) {
	entries, err := os.ReadDir(l.dir)
	if err != nil {
		return nil, fmt.Errorf("listing audio dir: %w", err)
	}

	var clips []Clip
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".mp3") {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		clips = append(clips, Clip{
			Name:    e.Name(),
			Path:    filepath.Join(l.dir, e.Name()),
			Size:    info.Size(),
			ModTime: info.ModTime(),
		})
	}

	sort.Slice(clips, func(i, j int) bool {
		return clips[i].ModTime.After(clips[j].ModTime)
	})
	if n > 0 && len(clips) > n {
		clips = clips[:n]
	}
	return clips, nil
}

// Latest returns the most recent clip, or nil if none exist.
func (l *AudioLog) Latest() (*Clip, error) {
	clips, err := l.ListRecent(1)
	if err != nil {
		return nil, err
	}
	if len(clips) == 0 {
		return nil, nil
	}
	return &clips[0], nil
}

func flatten(s string) string {
	s = strings.ReplaceAll(s, "\r\n", " ")
	s = strings.ReplaceAll(s, "\n", " ")
	s = strings.ReplaceAll(s, "\r", " ")
	return strings.Join(strings.Fields(s), " ")
}
