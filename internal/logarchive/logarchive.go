package logarchive

import (
	"archive/zip"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

const (
	LevelInfo     = "INFO"
	LevelAnalysis = "ANALYSIS"
	LevelWarn     = "WARN"
	LevelRisk     = "RISK"
)

// Logger receives progress and diagnostics from the scoring services.
type Logger interface {
	Log(level, stage, message, detail string)
}

// Archive appends one line per event to a per-session log file. A nil
// *Archive discards everything.
type Archive struct {
	mu          sync.Mutex
	rootDir     string
	sessionFile string
	now         func() time.Time
}

// Open creates the log directory and starts a new session file in it.
func Open(rootDir string) (*Archive, error) {
	if err := os.MkdirAll(rootDir, 0o755); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}
	a := &Archive{rootDir: rootDir, now: time.Now}
	a.sessionFile = filepath.Join(rootDir, "session-"+a.now().Format("20060102-150405")+".log")
	a.Log(LevelInfo, "BOOT", "log archive initialized", rootDir)
	return a, nil
}

func (a *Archive) RootDir() string {
	if a == nil {
		return ""
	}
	return a.rootDir
}

func (a *Archive) SessionFile() string {
	if a == nil {
		return ""
	}
	return a.sessionFile
}

func (a *Archive) Log(level, stage, message, detail string) {
	if a == nil {
		return
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	_ = a.appendLocked(FormatLine(a.now(), level, stage, message, detail))
}

func (a *Archive) appendLocked(line string) error {
	f, err := os.OpenFile(a.sessionFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()
	_, err = f.WriteString(line)
	return err
}

// FormatLine renders one archive line, newline included.
func FormatLine(at time.Time, level, stage, message, detail string) string {
	line := fmt.Sprintf("[%s] [%s] [%s] %s", at.Format("15:04:05.000"), level, stage, message)
	if strings.TrimSpace(detail) != "" {
		line += " | " + detail
	}
	return line + "\n"
}

// ExportZip bundles every file under the archive root into dest.
func (a *Archive) ExportZip(dest string) error {
	if a == nil {
		return fmt.Errorf("log archive unavailable")
	}
	if strings.TrimSpace(dest) == "" {
		return fmt.Errorf("destination path is empty")
	}
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return fmt.Errorf("create destination dir: %w", err)
	}
	out, err := os.Create(dest)
	if err != nil {
		return fmt.Errorf("create zip: %w", err)
	}
	defer out.Close()

	a.mu.Lock()
	defer a.mu.Unlock()
	zipWriter := zip.NewWriter(out)
	err = filepath.Walk(a.rootDir, func(path string, info os.FileInfo, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if info.IsDir() || path == dest {
			return nil
		}
		rel, err := filepath.Rel(a.rootDir, path)
		if err != nil {
			return err
		}
		w, err := zipWriter.Create(filepath.ToSlash(rel))
		if err != nil {
			return err
		}
		raw, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		_, err = w.Write(raw)
		return err
	})
	if err != nil {
		return fmt.Errorf("collect log files: %w", err)
	}
	if err := zipWriter.Close(); err != nil {
		return fmt.Errorf("finish zip: %w", err)
	}
	return nil
}

// Discard is a Logger that drops every line.
type Discard struct{}

func (Discard) Log(string, string, string, string) {}

// OrDiscard returns l, or Discard when l is nil.
func OrDiscard(l Logger) Logger {
	if l == nil {
		return Discard{}
	}
	if a, ok := l.(*Archive); ok && a == nil {
		return Discard{}
	}
	return l
}
