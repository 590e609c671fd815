// Package main is an interactive terminal demo of a bottom sheet driven by
// the panel engine. Drag the sheet with the mouse, flick it, scroll its
// content, or move it with the keyboard.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	panel "github.com/grindlemire/go-panel"
	"github.com/grindlemire/go-panel/internal/config"
	"github.com/grindlemire/go-panel/internal/debug"
	"github.com/grindlemire/go-panel/internal/layoutfile"
	"github.com/grindlemire/go-panel/internal/watch"
)

func main() {
	layoutPath := flag.String("layout", "", "Layout file (default: built-in sheet)")
	follow := flag.Bool("watch", false, "Reload the layout file when it changes")
	configPath := flag.String("config", "", "Tunables file (default $PANEL_CONFIG)")
	flag.Parse()

	if err := run(*layoutPath, *follow, *configPath); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(layoutPath string, follow bool, configPath string) error {
	var (
		cfg config.Config
		err error
	)
	if configPath != "" {
		cfg, err = config.LoadFile(configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return err
	}
	if cfg.Debug.LogPath != "" {
		if err := debug.Init(cfg.Debug.LogPath); err != nil {
			return err
		}
	}
	defer debug.Close()

	var l panel.Layout = demoLayout()
	if layoutPath != "" {
		if l, err = layoutfile.Load(layoutPath); err != nil {
			return err
		}
	}

	m, err := newModel(l, cfg)
	if err != nil {
		return err
	}
	prog := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())

	if follow && layoutPath != "" {
		fw, err := layoutfile.Follow(layoutPath, m.panel, func(err error) {
			prog.Send(reloadErrMsg{err})
		})
		if err != nil {
			return err
		}
		// Send from a goroutine: layout changes caused by Update itself
		// are emitted while the program waits for Update to return.
		m.panel.Events().Subscribe(func(e panel.Event) {
			if _, ok := e.(panel.LayoutChangedEvent); ok {
				go prog.Send(layoutMsg{})
			}
		})

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		loop := watch.NewLoop(16)
		loop.Start(fw)
		go func() { _ = loop.Run(ctx) }()
	}

	_, err = prog.Run()
	return err
}
