package live

import (
	"context"
	"fmt"
	"os"
	"time"
)

// WatchFile polls path every interval and feeds its content to the analyzer
// whenever the size or modification time changes. The first read happens
// immediately. It returns when ctx is done.
func WatchFile(ctx context.Context, path string, interval time.Duration, a *Analyzer) error {
	if interval <= 0 {
		interval = 250 * time.Millisecond
	}
	var lastMod time.Time
	lastSize := int64(-1)

	check := func() error {
		info, err := os.Stat(path)
		if err != nil {
			return fmt.Errorf("stat %s: %w", path, err)
		}
		if info.ModTime().Equal(lastMod) && info.Size() == lastSize {
			return nil
		}
		raw, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read %s: %w", path, err)
		}
		lastMod, lastSize = info.ModTime(), info.Size()
		a.Update(string(raw))
		return nil
	}

	if err := check(); err != nil {
		return err
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if err := check(); err != nil {
				return err
			}
		}
	}
}
