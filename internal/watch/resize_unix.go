//go:build unix

package watch

import (
	"os"
	"os/signal"

	"golang.org/x/sys/unix"
)

// TerminalSize returns the size of the terminal on fd in cells.
func TerminalSize(fd int) (width, height int, err error) {
	ws, err := unix.IoctlGetWinsize(fd, unix.TIOCGWINSZ)
	if err != nil {
		return 0, 0, err
	}
	return int(ws.Col), int(ws.Row), nil
}

// OnResize calls handler on the loop with the new size whenever the
// terminal on fd is resized.
func OnResize(fd int, handler func(width, height int)) Watcher {
	return &resizeWatcher{fd: fd, handler: handler}
}

type resizeWatcher struct {
	fd      int
	handler func(width, height int)
}

// Start implements Watcher.
func (w *resizeWatcher) Start(eventQueue chan<- func(), stopCh <-chan struct{}) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, unix.SIGWINCH)
	go func() {
		<-stopCh
		signal.Stop(sigCh)
	}()

	sizes := make(chan [2]int)
	go func() {
		for {
			select {
			case <-stopCh:
				return
			case <-sigCh:
				width, height, err := TerminalSize(w.fd)
				if err != nil {
					continue
				}
				select {
				case sizes <- [2]int{width, height}:
				case <-stopCh:
					return
				}
			}
		}
	}()
	Watch(sizes, func(s [2]int) { w.handler(s[0], s[1]) }).Start(eventQueue, stopCh)
}
