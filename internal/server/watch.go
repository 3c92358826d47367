package server

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// watch reloads the inputs after they change and tells every live session
// to reload. Directories are watched rather than files, since editors
// often save by writing a new file and renaming it over the old one.
func (s *Server) watch(ctx context.Context) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer w.Close()

	inputs := make(map[string]bool)
	for _, p := range []string{s.opts.Input, s.opts.StaticInput} {
		abs, err := filepath.Abs(p)
		if err != nil {
			return err
		}
		inputs[abs] = true
	}
	dirs := make(map[string]bool)
	for p := range inputs {
		dir := filepath.Dir(p)
		if dirs[dir] {
			continue
		}
		if err := w.Add(dir); err != nil {
			return fmt.Errorf("watch %s: %w", dir, err)
		}
		dirs[dir] = true
	}

	debounce := time.NewTimer(0)
	<-debounce.C
	pending := false

	for {
		select {
		case <-ctx.Done():
			debounce.Stop()
			return nil

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			abs, err := filepath.Abs(ev.Name)
			if err != nil || !inputs[abs] {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			pending = true
			debounce.Reset(s.opts.Debounce)

		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			s.log.Warn("watcher", "err", err)

		case <-debounce.C:
			if !pending {
				continue
			}
			pending = false
			s.reload()
		}
	}
}

// reload swaps in freshly loaded inputs. A broken input keeps the
// previous version serving.
func (s *Server) reload() {
	if err := s.load(); err != nil {
		s.log.Warn("reload failed, keeping previous input", "err", err)
		return
	}
	s.metrics.reloads.Inc()
	s.log.Info("input changed, reloading clients", "sessions", s.SessionCount())
	s.broadcast(serverMessage{Type: msgReload})
}
