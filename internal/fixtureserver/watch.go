package fixtureserver

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

const defaultReloadDebounce = 200 * time.Millisecond

// WatchCorpus reloads the server whenever the corpus file at path changes,
// until ctx is done. The parent directory is watched so replacement by rename
// is seen too. A corpus that fails to decode is logged and the previous one
// stays in service.
func (s *Server) WatchCorpus(ctx context.Context, path string, debounce time.Duration) error {
	if path == "" {
		return fmt.Errorf("watch corpus: path is required")
	}
	if debounce <= 0 {
		debounce = defaultReloadDebounce
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("watch corpus: %w", err)
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watch corpus: %w", err)
	}
	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		_ = watcher.Close()
		return fmt.Errorf("watch corpus: %w", err)
	}
	go s.watchLoop(ctx, watcher, abs, debounce)
	return nil
}

func (s *Server) watchLoop(ctx context.Context, watcher *fsnotify.Watcher, path string, debounce time.Duration) {
	defer watcher.Close()

	timer := time.NewTimer(debounce)
	timer.Stop()
	for {
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != path {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) {
				timer.Reset(debounce)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			s.logger.Warn("corpus watcher error", zap.Error(err))
		case <-timer.C:
			s.reloadFrom(path)
		}
	}
}

func (s *Server) reloadFrom(path string) {
	records, err := LoadCorpus(path)
	if err != nil {
		s.logger.Warn("corpus reload failed, keeping previous corpus", zap.String("path", path), zap.Error(err))
		return
	}
	s.Reload(records)
	s.logger.Info("corpus reloaded", zap.String("path", path), zap.Int("patents", len(records)))
}
