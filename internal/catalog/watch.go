package catalog

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"unibooks/internal/domain"
)

// Watcher reloads a catalog file whenever it changes on disk
type Watcher struct {
	path     string
	watcher  *fsnotify.Watcher
	logger   *zap.Logger
	onReload func([]domain.SearchItem)
}

// NewWatcher watches the directory holding path, so editors that save by
// rename are picked up too. onReload runs on the watcher goroutine.
func NewWatcher(path string, logger *zap.Logger, onReload func([]domain.SearchItem)) (*Watcher, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve catalog path: %w", err)
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	if err := fw.Add(filepath.Dir(abs)); err != nil {
		fw.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", filepath.Dir(abs), err)
	}

	return &Watcher{
		path:     abs,
		watcher:  fw,
		logger:   logger,
		onReload: onReload,
	}, nil
}

// Run blocks until ctx is cancelled. A catalog that fails to load is
// logged and skipped; the previous items stay in effect.
func (w *Watcher) Run(ctx context.Context) {
	defer w.watcher.Close()

	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			w.reload()
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("catalog watcher error", zap.Error(err))
		}
	}
}

func (w *Watcher) reload() {
	items, err := Load(w.path)
	if err != nil {
		w.logger.Warn("catalog reload failed, keeping previous items",
			zap.String("path", w.path), zap.Error(err))
		return
	}
	w.logger.Info("catalog reloaded", zap.String("path", w.path), zap.Int("count", len(items)))
	w.onReload(items)
}
