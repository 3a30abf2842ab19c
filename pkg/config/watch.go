package config

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce groups the bursts of events editors produce on save.
const DefaultDebounce = 100 * time.Millisecond

// ReloadFunc receives each reloaded configuration, or the error that
// prevented loading it.
type ReloadFunc func(cfg *Config, err error)

// WatchOption customises Watch.
type WatchOption func(*watchOptions)

type watchOptions struct {
	debounce time.Duration
}

// WithDebounce sets how long Watch waits for events to settle before
// reloading.
func WithDebounce(delay time.Duration) WatchOption {
	return func(o *watchOptions) {
		if delay >= 0 {
			o.debounce = delay
		}
	}
}

// Watch reloads path whenever it is written or recreated and passes the
// result to fn. The parent directory is watched so atomic saves that replace
// the file are seen. Watch blocks until ctx is done.
func Watch(ctx context.Context, path string, fn ReloadFunc, opts ...WatchOption) error {
	if fn == nil {
		return fmt.Errorf("config: reload func is nil")
	}
	options := watchOptions{debounce: DefaultDebounce}
	for _, opt := range opts {
		if opt != nil {
			opt(&options)
		}
	}

	target, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("config: resolve %s: %w", path, err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("config: create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(filepath.Dir(target)); err != nil {
		return fmt.Errorf("config: watch %s: %w", target, err)
	}

	timer := time.NewTimer(options.debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !relevant(event, target) {
				continue
			}
			timer.Reset(options.debounce)
		case <-timer.C:
			fn(LoadFile(target))
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			fn(nil, fmt.Errorf("config: watch %s: %w", target, err))
		}
	}
}

func relevant(event fsnotify.Event, target string) bool {
	name, err := filepath.Abs(event.Name)
	if err != nil || name != target {
		return false
	}
	return event.Op&(fsnotify.Write|fsnotify.Create) != 0
}
