package content

import (
	"context"
	"fmt"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
	"k8s.io/utils/clock"
)

// DebounceDelay lets editor write bursts settle before a reload.
const DebounceDelay = 250 * time.Millisecond

// Store holds the current copy. Readers never block; Reload swaps the whole
// Site atomically.
type Store struct {
	site   atomic.Pointer[Site]
	path   string
	logger *zap.Logger
	clock  clock.WithDelayedExecution
	onLoad []func(*Site)
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithLogger sets the logger used for reload reports.
func WithLogger(logger *zap.Logger) StoreOption {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithClock replaces the clock used for debouncing.
func WithClock(c clock.WithDelayedExecution) StoreOption {
	return func(s *Store) {
		if c != nil {
			s.clock = c
		}
	}
}

// WithReloadHook registers fn to run after the watcher swaps in new copy.
func WithReloadHook(fn func(*Site)) StoreOption {
	return func(s *Store) {
		if fn != nil {
			s.onLoad = append(s.onLoad, fn)
		}
	}
}

// NewStore loads copy from path, or the embedded copy when path is empty.
func NewStore(path string, opts ...StoreOption) (*Store, error) {
	s := &Store{path: path, logger: zap.NewNop(), clock: clock.RealClock{}}
	for _, opt := range opts {
		opt(s)
	}
	if err := s.Reload(); err != nil {
		return nil, err
	}
	return s, nil
}

// StaticStore wraps an already loaded Site. Reload is a no-op.
func StaticStore(site *Site) *Store {
	s := &Store{logger: zap.NewNop(), clock: clock.RealClock{}}
	s.site.Store(site)
	return s
}

// Current returns the active copy.
func (s *Store) Current() *Site {
	return s.site.Load()
}

// Path returns the backing file, empty for embedded copy.
func (s *Store) Path() string {
	return s.path
}

// Reload re-reads the backing file. On error the previous copy stays active.
func (s *Store) Reload() error {
	var (
		site *Site
		err  error
	)
	switch {
	case s.path != "":
		site, err = LoadFile(s.path)
	case s.site.Load() != nil:
		return nil
	default:
		site, err = Default()
	}
	if err != nil {
		return err
	}
	s.site.Store(site)
	return nil
}

// Watch reloads the store whenever its file changes, until ctx is done. The
// parent directory is watched so editors that replace the file by rename
// are picked up.
func (s *Store) Watch(ctx context.Context) error {
	if s.path == "" {
		return fmt.Errorf("content: watch: store has no backing file")
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("content: create watcher: %w", err)
	}
	defer w.Close()

	dir := filepath.Dir(s.path)
	if err := w.Add(dir); err != nil {
		return fmt.Errorf("content: watch %q: %w", dir, err)
	}

	target := filepath.Clean(s.path)
	var pending clock.Timer
	defer func() {
		if pending != nil {
			pending.Stop()
		}
	}()

	for {
		select {
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != target || ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if pending != nil {
				pending.Stop()
			}
			pending = s.clock.AfterFunc(DebounceDelay, s.reloadAndLog)
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			s.logger.Warn("content watcher error", zap.Error(err))
		case <-ctx.Done():
			return nil
		}
	}
}

func (s *Store) reloadAndLog() {
	if err := s.Reload(); err != nil {
		s.logger.Error("content reload failed", zap.String("path", s.path), zap.Error(err))
		return
	}
	s.logger.Info("content reloaded", zap.String("path", s.path))
	site := s.Current()
	for _, fn := range s.onLoad {
		fn(site)
	}
}
