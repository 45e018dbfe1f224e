package workspace

import (
	"fmt"
	"os"
	"path/filepath"
)

const DatabaseName = "progress.db"

// Paths is the on-disk layout under the data directory.
type Paths struct {
	Root     string
	Exports  string
	Logs     string
	Drafts   string
	Database string
}

func Layout(base string) Paths {
	return Paths{
		Root:     base,
		Exports:  filepath.Join(base, "exports"),
		Logs:     filepath.Join(base, "logs"),
		Drafts:   filepath.Join(base, "drafts"),
		Database: filepath.Join(base, DatabaseName),
	}
}

// EnsureAt creates the data directory tree under base and returns its layout.
func EnsureAt(base string) (Paths, error) {
	if base == "" {
		return Paths{}, fmt.Errorf("data directory is empty")
	}
	p := Layout(base)
	for _, dir := range []string{p.Root, p.Exports, p.Logs, p.Drafts} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return Paths{}, fmt.Errorf("mkdir %s: %w", dir, err)
		}
	}
	return p, nil
}
