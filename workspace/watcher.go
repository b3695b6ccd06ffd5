package workspace

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/tliron/commonlog"
)

// WatchEvent reports that a file settled after a burst of changes.
type WatchEvent struct {
	Path    string
	Removed bool
}

// Watcher reports changes to matching files below a directory. Events for
// one path are coalesced until it has been quiet for the debounce delay.
type Watcher struct {
	root     string
	match    func(path string) bool
	handler  func(WatchEvent)
	debounce time.Duration

	fsw    *fsnotify.Watcher
	stopCh chan struct{}
	once   sync.Once

	mu     sync.Mutex
	timers map[string]*time.Timer

	log commonlog.Logger
}

func NewWatcher(root string, match func(path string) bool, handler func(WatchEvent)) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}
	return &Watcher{
		root:     root,
		match:    match,
		handler:  handler,
		debounce: 300 * time.Millisecond,
		fsw:      fsw,
		stopCh:   make(chan struct{}),
		timers:   make(map[string]*time.Timer),
		log:      commonlog.GetLogger("shaderlab.watch"),
	}, nil
}

// SetDebounce changes the quiet period. It must be called before Start.
func (w *Watcher) SetDebounce(d time.Duration) {
	w.debounce = d
}

// MatchExtension matches files with the given extension.
func MatchExtension(ext string) func(string) bool {
	return func(path string) bool {
		return filepath.Ext(path) == ext
	}
}

// MatchNames matches files whose base name is one of names.
func MatchNames(names ...string) func(string) bool {
	return func(path string) bool {
		base := filepath.Base(path)
		for _, name := range names {
			if base == name {
				return true
			}
		}
		return false
	}
}

// Start watches the root directory and its subdirectories, skipping hidden
// ones, and delivers events until Stop is called.
func (w *Watcher) Start() error {
	if err := w.addRecursive(w.root); err != nil {
		return err
	}
	go w.run()
	return nil
}

func (w *Watcher) Stop() {
	w.once.Do(func() {
		close(w.stopCh)
		w.fsw.Close()

		w.mu.Lock()
		defer w.mu.Unlock()
		for path, t := range w.timers {
			t.Stop()
			delete(w.timers, path)
		}
	})
}

func (w *Watcher) addRecursive(root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && strings.HasPrefix(d.Name(), ".") {
			return filepath.SkipDir
		}
		if err := w.fsw.Add(path); err != nil {
			return fmt.Errorf("failed to watch %s: %w", path, err)
		}
		return nil
	})
}

func (w *Watcher) run() {
	for {
		select {
		case <-w.stopCh:
			return
		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			w.handle(event)
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.log.Warningf("watch: %s", err)
		}
	}
}

func (w *Watcher) handle(event fsnotify.Event) {
	if event.Has(fsnotify.Create) {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if err := w.addRecursive(event.Name); err != nil {
				w.log.Warningf("%s", err)
			}
			return
		}
	}
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
		!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
		return
	}
	if !w.match(event.Name) {
		return
	}

	path := event.Name
	w.mu.Lock()
	defer w.mu.Unlock()
	select {
	case <-w.stopCh:
		return
	default:
	}
	if t := w.timers[path]; t != nil {
		t.Stop()
	}
	w.timers[path] = time.AfterFunc(w.debounce, func() {
		w.mu.Lock()
		delete(w.timers, path)
		w.mu.Unlock()

		_, err := os.Stat(path)
		w.handler(WatchEvent{Path: path, Removed: os.IsNotExist(err)})
	})
}
