package eventlog

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher triggers a callback when the event log file grows or is
// replaced. It exists for the CLI watch mode only: the engine itself
// consumes pre-aggregated windows and never watches anything.
type Watcher struct {
	watcher  *fsnotify.Watcher
	path     string
	onChange func()
}

// debounceDelay batches bursts of writes into one recomputation.
const debounceDelay = 500 * time.Millisecond

// NewWatcher creates a file watcher for the given log path.
func NewWatcher(path string, onChange func()) (*Watcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("eventlog: create file watcher: %w", err)
	}
	if err := watcher.Add(path); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("eventlog: watch %q: %w", path, err)
	}
	return &Watcher{
		watcher:  watcher,
		path:     path,
		onChange: onChange,
	}, nil
}

// Run blocks until ctx is cancelled, invoking the callback (debounced)
// after each write or create on the watched path.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.watcher.Close()

	var debounce *time.Timer

	for {
		select {
		case <-ctx.Done():
			if debounce != nil {
				debounce.Stop()
			}
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) {
				if debounce != nil {
					debounce.Stop()
				}
				debounce = time.AfterFunc(debounceDelay, w.onChange)
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			fmt.Fprintf(os.Stderr, "eventlog: watch error: %v\n", err)
		}
	}
}
