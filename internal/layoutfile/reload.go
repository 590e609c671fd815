package layoutfile

import (
	panel "github.com/grindlemire/go-panel"
	"github.com/grindlemire/go-panel/internal/debug"
	"github.com/grindlemire/go-panel/internal/watch"
)

// Follow returns a watcher that reloads the document at path whenever it
// changes and swaps it into p. A document that fails to decode or resolve
// leaves p on its current layout and is reported to onError, if set.
func Follow(path string, p *panel.Panel, onError func(error)) (*watch.FileWatcher, error) {
	return watch.OnFileChange(path, func(path string) {
		if err := reload(path, p); err != nil {
			debug.Log("layoutfile: reload %s: %v", path, err)
			if onError != nil {
				onError(err)
			}
		}
	})
}

func reload(path string, p *panel.Panel) error {
	l, err := Load(path)
	if err != nil {
		return err
	}
	return p.SetLayout(l)
}
