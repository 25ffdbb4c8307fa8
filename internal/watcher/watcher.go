// Package watcher provides directory watching with debouncing, used by
// the filesystem backend to detect changes made outside the browser.
package watcher

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"tb/internal/log"
)

// Watcher monitors a directory tree and signals when it changes.
type Watcher struct {
	fsWatcher *fsnotify.Watcher
	root      string
	debounce  time.Duration
	onChange  chan struct{}
	done      chan struct{}
}

// Config holds watcher configuration options.
type Config struct {
	Root        string
	DebounceDur time.Duration
}

// DefaultConfig returns sensible defaults for the watcher.
func DefaultConfig(root string) Config {
	return Config{
		Root:        root,
		DebounceDur: 100 * time.Millisecond,
	}
}

// New creates a new directory watcher rooted at cfg.Root.
func New(cfg Config) (*Watcher, error) {
	log.Debug(log.CatWatcher, "creating watcher", "root", cfg.Root, "debounce", cfg.DebounceDur)
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		log.ErrorErr(log.CatWatcher, "failed to create fsnotify watcher", err)
		return nil, fmt.Errorf("creating fsnotify watcher: %w", err)
	}

	return &Watcher{
		fsWatcher: fsw,
		root:      cfg.Root,
		debounce:  cfg.DebounceDur,
		onChange:  make(chan struct{}, 1),
		done:      make(chan struct{}),
	}, nil
}

// Start begins watching the directory tree rooted at Root.
// Returns a channel that receives a signal whenever the tree changes;
// sends are dropped if the channel is full, since the consumer only
// cares that *a* change happened, not how many.
func (w *Watcher) Start() (<-chan struct{}, error) {
	if err := w.addTree(w.root); err != nil {
		log.ErrorErr(log.CatWatcher, "failed to watch directory tree", err, "root", w.root)
		return nil, fmt.Errorf("watching %s: %w", w.root, err)
	}

	log.Info(log.CatWatcher, "started watching", "root", w.root)
	go w.loop()

	return w.onChange, nil
}

// addTree registers root and every subdirectory beneath it, since
// fsnotify has no recursive-watch primitive of its own.
func (w *Watcher) addTree(root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if addErr := w.fsWatcher.Add(path); addErr != nil {
				return addErr
			}
		}
		return nil
	})
}

// Stop terminates the watcher and releases resources.
func (w *Watcher) Stop() error {
	log.Debug(log.CatWatcher, "stopping watcher")
	close(w.done)
	return w.fsWatcher.Close()
}

// loop processes file system events with debouncing.
func (w *Watcher) loop() {
	var (
		timer   *time.Timer
		pending bool
	)

	for {
		select {
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			if !w.isRelevantEvent(event) {
				continue
			}
			log.Debug(log.CatWatcher, "file event received", "file", event.Name, "op", event.Op.String())

			// A new directory needs its own watch registered immediately,
			// or later changes inside it would go unseen.
			if event.Op&fsnotify.Create != 0 {
				if info, statErr := os.Stat(event.Name); statErr == nil && info.IsDir() {
					_ = w.fsWatcher.Add(event.Name)
				}
			}

			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(w.debounce)
			}
			pending = true

		case <-timerChan(timer):
			if pending {
				log.Debug(log.CatWatcher, "debounce complete, triggering refresh")
				select {
				case w.onChange <- struct{}{}:
				default:
				}
				pending = false
			}

		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			log.ErrorErr(log.CatWatcher, "file watcher error", err)

		case <-w.done:
			if timer != nil {
				timer.Stop()
			}
			return
		}
	}
}

func timerChan(t *time.Timer) <-chan time.Time {
	if t == nil {
		return nil
	}
	return t.C
}

// isRelevantEvent filters noise fsnotify emits for metadata-only changes
// (chmod) that don't affect the tree the backend renders.
func (w *Watcher) isRelevantEvent(event fsnotify.Event) bool {
	return event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) != 0
}
