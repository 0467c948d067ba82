// Package watch regenerates the manifest whenever read files in the input
// directory change.
package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"

	"github.com/bft-labs/qiimemanifest/internal/manifest"
)

// Config holds configuration options for the directory watcher.
type Config struct {
	// Dir is the directory holding the read files.
	Dir string

	// Output is the manifest path. Events on it are ignored.
	Output string

	// Tags select the file names that trigger a rebuild.
	Tags []manifest.Tag

	// Debounce is the quiet period after the last change before rebuilding.
	// Default: 500 milliseconds
	Debounce time.Duration
}

// Watcher monitors a directory and calls a regenerate function after changes settle.
type Watcher struct {
	cfg        Config
	output     string
	regenerate func() error
	logger     zerolog.Logger
}

// New creates a watcher. regenerate is called once on start and again after
// every debounced batch of relevant changes.
func New(cfg Config, regenerate func() error, logger zerolog.Logger) *Watcher {
	if cfg.Debounce <= 0 {
		cfg.Debounce = 500 * time.Millisecond
	}
	output, err := filepath.Abs(cfg.Output)
	if err != nil {
		output = filepath.Clean(cfg.Output)
	}
	return &Watcher{
		cfg:        cfg,
		output:     output,
		regenerate: regenerate,
		logger:     logger,
	}
}

// Run watches until ctx is canceled. Errors from regenerate are logged and
// watching continues; only failing to set up the watch is returned.
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer fw.Close()

	if err := fw.Add(w.cfg.Dir); err != nil {
		return fmt.Errorf("watch %s: %w", w.cfg.Dir, err)
	}
	w.logger.Info().Str("dir", w.cfg.Dir).Dur("debounce", w.cfg.Debounce).Msg("watching for read files")

	w.run()

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

		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if !w.relevant(event) {
				continue
			}
			w.logger.Debug().Str("file", event.Name).Str("op", event.Op.String()).Msg("read file changed")
			if timer == nil {
				timer = time.NewTimer(w.cfg.Debounce)
			} else {
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(w.cfg.Debounce)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			w.run()

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn().Err(err).Msg("watcher error")
		}
	}
}

func (w *Watcher) run() {
	if err := w.regenerate(); err != nil {
		w.logger.Error().Err(err).Msg("manifest not updated")
	}
}

// relevant reports whether event touches a read file matching one of the tags.
func (w *Watcher) relevant(event fsnotify.Event) bool {
	if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
		return false
	}
	if name, err := filepath.Abs(event.Name); err == nil && (name == w.output || name == w.output+".tmp") {
		return false
	}
	for _, tag := range w.cfg.Tags {
		if tag.Match(event.Name) {
			return true
		}
	}
	return false
}
