package prefabs

import (
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

const debounce = 100 * time.Millisecond

type ChangeKind int

const (
	SpecChanged ChangeKind = iota
	ScriptChanged
)

// Change names a prefab or script in the form Load/LoadScript accept.
type Change struct {
	Name string
	Kind ChangeKind
}

// Watcher reports edits to prefab specs and scripts on disk. Changes are
// delivered on a buffered channel and should be consumed from the game loop
// with Poll.
type Watcher struct {
	watcher *fsnotify.Watcher
	Events  chan Change
	Errors  chan error
	closeCh chan struct{}
	once    sync.Once
}

// NewWatcher watches dirs, or the prefab disk directory and its scripts
// folder when dirs is empty.
func NewWatcher(dirs ...string) (*Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	if len(dirs) == 0 {
		dirs = []string{diskDir, filepath.Join(diskDir, "scripts")}
	}
	for _, dir := range dirs {
		if err := w.Add(dir); err != nil {
			_ = w.Close()
			return nil, err
		}
	}

	watcher := &Watcher{
		watcher: w,
		Events:  make(chan Change, 16),
		Errors:  make(chan error, 1),
		closeCh: make(chan struct{}),
	}
	go watcher.run()
	return watcher, nil
}

func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.closeCh)
		err = w.watcher.Close()
	})
	return err
}

// Poll drains pending changes without blocking, collapsing duplicates.
func (w *Watcher) Poll() []Change {
	if w == nil {
		return nil
	}
	var out []Change
	seen := map[Change]bool{}
	for {
		select {
		case c := <-w.Events:
			if seen[c] {
				continue
			}
			seen[c] = true
			out = append(out, c)
		default:
			return out
		}
	}
}

// run emits a change once its file has been quiet for the debounce window,
// so a truncate followed by a write reloads the final content only.
func (w *Watcher) run() {
	pending := make(map[Change]time.Time)
	timer := time.NewTimer(debounce)
	timer.Stop()
	var fire <-chan time.Time

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			change, ok := classify(event.Name)
			if !ok {
				continue
			}
			pending[change] = time.Now().Add(debounce)
			timer.Reset(debounce)
			fire = timer.C
		case <-fire:
			now := time.Now()
			var next time.Duration
			for change, due := range pending {
				if wait := due.Sub(now); wait > 0 {
					if next == 0 || wait < next {
						next = wait
					}
					continue
				}
				delete(pending, change)
				select {
				case w.Events <- change:
				case <-w.closeCh:
					return
				}
			}
			if next > 0 {
				timer.Reset(next)
			} else {
				fire = nil
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			select {
			case w.Errors <- err:
			default:
			}
		case <-w.closeCh:
			timer.Stop()
			return
		}
	}
}

func classify(path string) (Change, bool) {
	switch {
	case isSpecFile(path):
		return Change{Name: BaseName(path), Kind: SpecChanged}, true
	case isScriptFile(path):
		return Change{Name: BaseName(path), Kind: ScriptChanged}, true
	default:
		return Change{}, false
	}
}

func isSpecFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}

func isScriptFile(path string) bool {
	return strings.ToLower(filepath.Ext(path)) == ".tengo"
}
