package publish

import (
	"errors"
	"fmt"
	"log"
	"path/filepath"
	"strings"
	"sync"

	"github.com/howeyc/fsnotify"

	"github.com/ironsmile/artframe/src/artwork"
)

// Change is a change of the published state as seen by a Watcher.
type Change struct {
	// Metadata of the published artwork. It is the zero value when nothing
	// is published yet.
	Metadata artwork.Metadata `json:"metadata"`

	// Status is the display status.
	Status artwork.Status `json:"status"`

	// ArtworkChanged is true when the published fingerprint differs from the
	// last one seen.
	ArtworkChanged bool `json:"artwork_changed"`

	// StatusChanged is true when the status differs from the last one seen.
	StatusChanged bool `json:"status_changed"`
}

// Watcher follows the publish directory on behalf of renderers. It reports a
// change only when the published fingerprint or the status token differ from
// what it saw last. Republishing the same artwork is not a change.
//
// The watched directory must be on the real file system since the
// notifications come from the operating system.
type Watcher struct {
	target *Target
	status *StatusFile
	watch  *fsnotify.Watcher

	mu          sync.Mutex
	fingerprint string
	lastStatus  artwork.Status
	subscribers map[chan Change]struct{}

	closed chan struct{}
	done   chan struct{}
}

// NewWatcher starts watching the directory of target. The state at the time
// of the call is the baseline which the first change is compared with.
func NewWatcher(target *Target, status *StatusFile) (*Watcher, error) {
	watch, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating directory watcher: %w", err)
	}

	if err := watch.Watch(target.Dir()); err != nil {
		watch.Close()
		return nil, fmt.Errorf("watching %s: %w", target.Dir(), err)
	}

	w := &Watcher{
		target:      target,
		status:      status,
		watch:       watch,
		subscribers: make(map[chan Change]struct{}),
		closed:      make(chan struct{}),
		done:        make(chan struct{}),
	}

	if _, _, err := w.Check(); err != nil {
		log.Printf("Reading the initial published state: %s\n", err)
	}

	go w.eventRoutine()
	return w, nil
}

// Subscribe returns a channel on which changes are delivered and a function
// which stops the delivery. A subscriber which does not keep up misses
// changes. It can always call Current for the latest state.
func (w *Watcher) Subscribe() (<-chan Change, func()) {
	ch := make(chan Change, 4)

	w.mu.Lock()
	w.subscribers[ch] = struct{}{}
	w.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			w.mu.Lock()
			delete(w.subscribers, ch)
			w.mu.Unlock()
		})
	}
}

// Current returns the published state without comparing it with the last
// one seen.
func (w *Watcher) Current() (Change, error) {
	return w.read()
}

// Check reads the published state and compares it with the last one seen. The
// second returned value is true when there is a change. Both the artwork and
// the status are remembered as seen.
func (w *Watcher) Check() (Change, bool, error) {
	current, err := w.read()
	if err != nil {
		return Change{}, false, err
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	current.ArtworkChanged = current.Metadata.Fingerprint != w.fingerprint
	current.StatusChanged = current.Status != w.lastStatus
	w.fingerprint = current.Metadata.Fingerprint
	w.lastStatus = current.Status

	return current, current.ArtworkChanged || current.StatusChanged, nil
}

// Close stops watching. Subscriber channels receive nothing after it returns.
func (w *Watcher) Close() error {
	select {
	case <-w.closed:
		return nil
	default:
	}

	close(w.closed)
	err := w.watch.Close()
	<-w.done
	return err
}

func (w *Watcher) read() (Change, error) {
	var current Change

	md, err := w.target.Current()
	if err != nil && !errors.Is(err, ErrNothingPublished) {
		return Change{}, err
	}
	current.Metadata = md

	st, err := w.status.Get()
	if err != nil {
		return Change{}, err
	}
	current.Status = st

	return current, nil
}

func (w *Watcher) eventRoutine() {
	defer close(w.done)

	for {
		select {
		case ev := <-w.watch.Event:
			if ev == nil {
				return
			}
			w.handleEvent(ev)
		case err := <-w.watch.Error:
			if err == nil {
				return
			}
			log.Printf("Publish directory watcher error: %s\n", err)
		case <-w.closed:
			return
		}
	}
}

func (w *Watcher) handleEvent(ev *fsnotify.FileEvent) {
	name := filepath.Base(ev.Name)

	// Temporary files of atomic writes.
	if strings.HasPrefix(name, ".") {
		return
	}

	files := w.target.Files()
	if name != files.Metadata && name != files.Status {
		return
	}

	if ev.IsDelete() {
		return
	}

	change, changed, err := w.Check()
	if err != nil {
		log.Printf("Reading the published state: %s\n", err)
		return
	}
	if !changed {
		return
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	for ch := range w.subscribers {
		select {
		case ch <- change:
		default:
		}
	}
}
