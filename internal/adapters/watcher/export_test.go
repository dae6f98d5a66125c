package watcher

import "github.com/fsnotify/fsnotify"

// SetAdd replaces how directories are added to the fsnotify watcher.
func (w *Watcher) SetAdd(add func(*fsnotify.Watcher, string) error) {
	w.add = add
}
