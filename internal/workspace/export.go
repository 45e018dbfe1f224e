package workspace

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// ExportName is the file name of a score export for the given day, e.g.
// LyricForge_Score_2026-03-01.txt. A non-empty title adds a short hash so two
// drafts scored on the same day do not overwrite each other.
func ExportName(day time.Time, title, ext string) string {
	name := "LyricForge_Score_" + day.Format("2006-01-02")
	if strings.TrimSpace(title) != "" {
		name += "_" + titleHash(title)
	}
	ext = strings.TrimPrefix(strings.TrimSpace(ext), ".")
	if ext == "" {
		ext = "txt"
	}
	return name + "." + ext
}

// SaveExport writes content into the exports directory and returns the path.
func (p Paths) SaveExport(name string, content []byte) (string, error) {
	path := filepath.Join(p.Exports, sanitizeName(name, "export.txt"))
	if err := SaveReport(path, content); err != nil {
		return "", err
	}
	return path, nil
}

// SaveDraft keeps a copy of an imported draft under drafts/<title hash>/.
func (p Paths) SaveDraft(title, sourceName string, source []byte) (string, error) {
	dir := filepath.Join(p.Drafts, titleHash(title))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create draft dir: %w", err)
	}
	path := filepath.Join(dir, sanitizeName(sourceName, "source.txt"))
	if err := os.WriteFile(path, source, 0o644); err != nil {
		return "", fmt.Errorf("write draft: %w", err)
	}
	return path, nil
}

func SaveReport(path string, content []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create report dir: %w", err)
	}
	if err := os.WriteFile(path, content, 0o644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}

func titleHash(title string) string {
	trimmed := strings.TrimSpace(strings.ToLower(title))
	sum := sha256.Sum256([]byte(trimmed))
	return hex.EncodeToString(sum[:])[:12]
}

func sanitizeName(name, fallback string) string {
	base := filepath.Base(strings.TrimSpace(name))
	if base == "" || base == "." || base == string(filepath.Separator) {
		return fallback
	}
	return strings.ReplaceAll(base, "..", "")
}
