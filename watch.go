package main

import (
	"log"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fsnotify/fsnotify"
)

// configReloadedMsg carries a freshly parsed config into Update.
type configReloadedMsg struct {
	config *Config
}

type configWatcher struct {
	path    string
	watcher *fsnotify.Watcher
}

// newConfigWatcher watches the directory holding path, since editors often
// replace the file rather than write to it.
func newConfigWatcher(path string) (*configWatcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fsw.Add(filepath.Dir(path)); err != nil {
		fsw.Close()
		return nil, err
	}
	return &configWatcher{path: filepath.Clean(path), watcher: fsw}, nil
}

func (w *configWatcher) Close() error {
	return w.watcher.Close()
}

// relevant reports whether ev should trigger a reload.
func (w *configWatcher) relevant(ev fsnotify.Event) bool {
	if filepath.Clean(ev.Name) != w.path {
		return false
	}
	return ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) || ev.Has(fsnotify.Rename)
}

// next blocks until the config file changes and parses it. Parse errors are
// logged and the wait continues. It returns nil once the watcher is closed.
func (w *configWatcher) next() tea.Msg {
	for {
		select {
		case ev, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if !w.relevant(ev) {
				continue
			}
			config, err := loadConfigFile(w.path)
			if err != nil {
				log.Printf("config reload: %v", err)
				continue
			}
			return configReloadedMsg{config: config}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			log.Printf("config watcher: %v", err)
		}
	}
}

func (w *configWatcher) waitForChange() tea.Cmd {
	if w == nil {
		return nil
	}
	return w.next
}
