package replay

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is how long a file must stay quiet before it is handed over.
// artifact writes come as a create followed by one or more writes.
const DefaultDebounce = 500 * time.Millisecond

// WatchConfig holds watch settings.
type WatchConfig struct {
	Dir      string
	Patterns []string // base name globs, a file matching any of them triggers
	Debounce time.Duration
}

// Watch calls fn for every file created or written in cfg.Dir that matches a pattern.
// events are debounced per file and fn runs on the watch goroutine, one call at a time.
// fn errors are logged. Watch returns when ctx is done.
func Watch(ctx context.Context, cfg WatchConfig, fn func(ctx context.Context, path string) error, log logger) error {
	if cfg.Debounce <= 0 {
		cfg.Debounce = DefaultDebounce
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	if err = watcher.Add(cfg.Dir); err != nil {
		return fmt.Errorf("watch %s: %w", cfg.Dir, err)
	}
	log.Print("watching %s for %v", cfg.Dir, cfg.Patterns)

	deb := newDebouncer(cfg.Debounce, ctx.Done())
	defer deb.stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Write) {
				continue
			}
			if !matchAny(filepath.Base(ev.Name), cfg.Patterns) {
				continue
			}
			deb.touch(ev.Name)
		case s := <-deb.ready:
			if !deb.accept(s) {
				continue
			}
			log.Debug("artifact settled: %s", s.name)
			if err := fn(ctx, s.name); err != nil {
				log.Warn("%s: %v", filepath.Base(s.name), err)
			}
		case werr, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Warn("watcher: %v", werr)
		}
	}
}

// settled is a file that stayed quiet for the debounce delay. gen tells a stale
// timer, one that fired before the file was written again, from the current one.
type settled struct {
	name string
	gen  int
}

type pendingFile struct {
	timer *time.Timer
	gen   int
}

// debouncer tracks one timer per file. touch and accept must be called from one goroutine.
type debouncer struct {
	delay   time.Duration
	ready   chan settled
	done    <-chan struct{}
	pending map[string]*pendingFile
}

func newDebouncer(delay time.Duration, done <-chan struct{}) *debouncer {
	return &debouncer{delay: delay, ready: make(chan settled, 16), done: done, pending: map[string]*pendingFile{}}
}

// touch restarts the quiet period of name.
func (d *debouncer) touch(name string) {
	p, ok := d.pending[name]
	if !ok {
		p = &pendingFile{}
		d.pending[name] = p
	} else {
		p.timer.Stop()
	}
	p.gen++
	s := settled{name: name, gen: p.gen}
	p.timer = time.AfterFunc(d.delay, func() {
		select {
		case d.ready <- s:
		case <-d.done:
		}
	})
}

// accept reports whether s is the latest timer of its file and forgets the file if so.
func (d *debouncer) accept(s settled) bool {
	p, ok := d.pending[s.name]
	if !ok || p.gen != s.gen {
		return false
	}
	delete(d.pending, s.name)
	return true
}

func (d *debouncer) stop() {
	for _, p := range d.pending {
		p.timer.Stop()
	}
}

func matchAny(name string, patterns []string) bool {
	for _, p := range patterns {
		if ok, _ := filepath.Match(p, name); ok {
			return true
		}
	}
	return false
}
