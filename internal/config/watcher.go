package config

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"

	"github.com/brewkeeper/brewkeeper/internal/domain"
)

// Watcher keeps preferences in sync with a YAML file on disk. The parent
// directory is watched so that editors which replace the file are noticed.
type Watcher struct {
	path     string
	parser   *InputParser
	fs       *fsnotify.Watcher
	debounce time.Duration
	log      zerolog.Logger

	mu       sync.RWMutex
	current  domain.Preferences
	onChange []func(domain.Preferences)
}

// NewWatcher creates a watcher for path, starting from initial.
func NewWatcher(path string, initial domain.Preferences, log zerolog.Logger) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", path, err)
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}
	if err := fw.Add(filepath.Dir(abs)); err != nil {
		fw.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", filepath.Dir(abs), err)
	}
	return &Watcher{
		path:     abs,
		parser:   NewInputParser(),
		fs:       fw,
		debounce: 250 * time.Millisecond,
		log:      log.With().Str("component", "prefs_watcher").Logger(),
		current:  initial,
	}, nil
}

// SetDebounce changes how long the watcher waits for writes to settle.
func (w *Watcher) SetDebounce(d time.Duration) {
	w.debounce = d
}

// OnChange registers fn to be called after each successful reload.
func (w *Watcher) OnChange(fn func(domain.Preferences)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.onChange = append(w.onChange, fn)
}

// Current returns the most recently loaded preferences.
func (w *Watcher) Current() domain.Preferences {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.current
}

// Run processes file events until ctx is cancelled, then releases the
// underlying watcher. It always returns nil after cancellation.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.fs.Close()

	var timer *time.Timer
	var fire <-chan time.Time
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.fs.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != w.path {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C
		case err, ok := <-w.fs.Errors:
			if !ok {
				return nil
			}
			w.log.Warn().Err(err).Msg("file watcher error")
		case <-fire:
			fire = nil
			w.reload()
		}
	}
}

func (w *Watcher) reload() {
	prefs, err := w.parser.LoadFromFile(w.path)
	if err != nil {
		w.log.Warn().Err(err).Str("path", w.path).Msg("keeping previous preferences")
		return
	}

	w.mu.Lock()
	w.current = prefs
	callbacks := append([]func(domain.Preferences){}, w.onChange...)
	w.mu.Unlock()

	w.log.Info().
		Str("weight_unit", string(prefs.WeightUnit)).
		Str("volume_unit", string(prefs.VolumeUnit)).
		Str("color_scale", string(prefs.ColorScale)).
		Msg("preferences reloaded")
	for _, fn := range callbacks {
		fn(prefs)
	}
}
