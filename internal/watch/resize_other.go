//go:build !unix

package watch

import "golang.org/x/term"

// TerminalSize returns the size of the terminal on fd in cells.
func TerminalSize(fd int) (width, height int, err error) {
	return term.GetSize(fd)
}

// OnResize returns a watcher that never fires: there is no resize signal on
// this platform.
func OnResize(fd int, handler func(width, height int)) Watcher {
	return nopWatcher{}
}

type nopWatcher struct{}

func (nopWatcher) Start(chan<- func(), <-chan struct{}) {}
