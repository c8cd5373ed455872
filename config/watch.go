package config

import (
	"errors"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// ErrWatcherClosed is returned by Next after Close.
var ErrWatcherClosed = errors.New("config watcher closed")

// Watcher reports rewrites of a profile's config file.
type Watcher struct {
	profileDir string
	fw         *fsnotify.Watcher
}

// Watch observes <profileDir>/config.toml. The directory is watched rather
// than the file so editors that replace the file on save are seen too.
func Watch(profileDir string) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fw.Add(profileDir); err != nil {
		fw.Close()
		return nil, err
	}
	return &Watcher{profileDir: profileDir, fw: fw}, nil
}

// Next blocks until the config file is written or created and returns the
// reloaded configuration.
func (w *Watcher) Next() (Config, error) {
	target := filepath.Clean(Path(w.profileDir))
	for {
		select {
		case ev, ok := <-w.fw.Events:
			if !ok {
				return Config{}, ErrWatcherClosed
			}
			if filepath.Clean(ev.Name) != target {
				continue
			}
			if ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) {
				return Load(w.profileDir)
			}
		case err, ok := <-w.fw.Errors:
			if !ok {
				return Config{}, ErrWatcherClosed
			}
			return Config{}, err
		}
	}
}

// Close stops watching.
func (w *Watcher) Close() error {
	return w.fw.Close()
}
