package modindex

import (
	"context"
	"errors"
	"os"
	"time"
)

// Watch polls loaded files every interval and clears the whole cache when
// any of them changed or disappeared. A module load may have pulled in its
// parents, so partial invalidation is not attempted. It returns when ctx
// is done.
func (ix *Index) Watch(ctx context.Context, interval time.Duration) error {
	if interval <= 0 {
		return errors.New("watch interval must be positive")
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if file, ok := ix.Stale(); ok {
				ix.log.V(1).Info("module changed", "module", file)
				ix.ClearAll()
			}
		}
	}
}

// Stale reports the first loaded file whose modification time moved.
func (ix *Index) Stale() (string, bool) {
	ix.mu.RLock()
	snapshot := make(map[string]time.Time, len(ix.files))
	for f, t := range ix.files {
		snapshot[f] = t
	}
	ix.mu.RUnlock()

	for f, t := range snapshot {
		info, err := os.Stat(f)
		if err != nil || !info.ModTime().Equal(t) {
			return f, true
		}
	}
	return "", false
}
