package main

import (
	"log/slog"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// watcher reports changes to a fixed set of files.
//
// Directories are watched rather than the files themselves: editors often
// save by replacing the file, which drops a watch on the old inode.
type watcher struct {
	fw      *fsnotify.Watcher
	files   map[string]bool
	changed chan string
	done    chan struct{}
}

func newWatcher(paths []string, log *slog.Logger) (*watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	w := &watcher{
		fw:      fw,
		files:   make(map[string]bool),
		changed: make(chan string, 1),
		done:    make(chan struct{}),
	}
	dirs := make(map[string]bool)
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			fw.Close()
			return nil, err
		}
		w.files[abs] = true
		dirs[filepath.Dir(abs)] = true
	}
	for dir := range dirs {
		if err := fw.Add(dir); err != nil {
			fw.Close()
			return nil, err
		}
	}
	go w.loop(log)
	return w, nil
}

func (w *watcher) loop(log *slog.Logger) {
	defer close(w.done)
	for {
		select {
		case ev, ok := <-w.fw.Events:
			if !ok {
				return
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
				continue
			}
			name, err := filepath.Abs(ev.Name)
			if err != nil || !w.files[name] {
				continue
			}
			// Coalesce bursts: one pending notification is enough.
			select {
			case w.changed <- name:
			default:
			}
		case err, ok := <-w.fw.Errors:
			if !ok {
				return
			}
			log.Warn("watch error", "err", err)
		}
	}
}

// Changed delivers the path of a modified file.
func (w *watcher) Changed() <-chan string { return w.changed }

// Close stops watching.
func (w *watcher) Close() error {
	err := w.fw.Close()
	<-w.done
	return err
}
