package theme

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// DefaultDebounce groups bursts of file system events (editors often write a
// file in several steps) into a single rebuild.
const DefaultDebounce = 200 * time.Millisecond

// LoadFunc produces a fresh result, normally a closure over Loader.Load or
// Loader.LoadDir.
type LoadFunc func(ctx context.Context) (*Result, error)

// Watcher rebuilds token map whenever any of its source files changes.
type Watcher struct {
	log      *zap.Logger
	debounce time.Duration
}

// NewWatcher creates watcher, non positive debounce selects DefaultDebounce.
func NewWatcher(log *zap.Logger, debounce time.Duration) *Watcher {
	if log == nil {
		log = zap.NewNop()
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	return &Watcher{log: log.Named("watch"), debounce: debounce}
}

// Watch calls load and hands result to notify, then keeps doing so every time
// files of the latest result are modified. A rebuild producing the token map
// delivered last is not reported, reverting sources to an earlier state is.
// Failed rebuilds are logged and previous result stays current. Watch returns
// when ctx is cancelled; error is returned only if the very first load or
// watcher setup fails.
func (w *Watcher) Watch(ctx context.Context, load LoadFunc, notify func(*Result)) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("unable to create file watcher: %w", err)
	}
	defer fsw.Close()

	res, err := load(ctx)
	if err != nil {
		return err
	}
	notify(res)
	current := res.ID
	files := w.track(fsw, res.Files)

	var (
		timer *time.Timer
		fire  <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if !files[filepath.Clean(ev.Name)] || !ev.Has(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) {
				continue
			}
			w.log.Debug("Source changed", zap.String("file", ev.Name), zap.Stringer("op", ev.Op))
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C

		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			w.log.Warn("File watcher error", zap.Error(err))

		case <-fire:
			fire = nil
			next, err := load(ctx)
			if err != nil {
				if ctx.Err() != nil {
					return nil
				}
				w.log.Warn("Unable to rebuild token map, keeping previous one", zap.Error(err))
				continue
			}
			if next.ID == current {
				w.log.Debug("Sources unchanged", zap.Stringer("id", next.ID))
				continue
			}
			notify(next)
			current = next.ID
			files = w.track(fsw, next.Files)
		}
	}
}

// track makes sure directories of all files are watched. Directories are
// watched instead of files, so replacing file by rename is noticed as well.
func (w *Watcher) track(fsw *fsnotify.Watcher, files []string) map[string]bool {
	set := make(map[string]bool, len(files))
	dirs := make(map[string]bool)
	for _, f := range files {
		set[filepath.Clean(f)] = true
		dirs[filepath.Dir(f)] = true
	}
	for _, d := range fsw.WatchList() {
		if !dirs[d] {
			if err := fsw.Remove(d); err != nil {
				w.log.Debug("Unable to stop watching directory", zap.String("dir", d), zap.Error(err))
			}
		}
	}
	for d := range dirs {
		if err := fsw.Add(d); err != nil {
			w.log.Warn("Unable to watch directory", zap.String("dir", d), zap.Error(err))
		}
	}
	return set
}
