package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	panel "github.com/grindlemire/go-panel"
	"github.com/grindlemire/go-panel/internal/layoutfile"
	"github.com/grindlemire/go-panel/internal/watch"
)

// runWatch implements the watch subcommand. It prints the anchor table
// again whenever the layout file is saved or, with --terminal, the terminal
// is resized. Runs until interrupted.
func runWatch(args []string) error {
	o, err := parseArgs(args)
	if err != nil {
		return err
	}
	if len(o.paths) != 1 {
		return fmt.Errorf("watch takes one layout file")
	}
	path := o.paths[0]

	cfg, err := o.loadConfig()
	if err != nil {
		return err
	}
	l, err := layoutfile.Load(path)
	if err != nil {
		return err
	}
	g, err := o.geometry()
	if err != nil {
		return err
	}

	p, err := panel.New(l, append(cfg.Options(), panel.WithGeometry(g))...)
	if err != nil {
		return err
	}
	// Every handler below runs on the loop goroutine, so g needs no lock.
	p.Events().Subscribe(func(e panel.Event) {
		if lc, ok := e.(panel.LayoutChangedEvent); ok {
			fmt.Println(anchorTable(lc.Anchors, p.Layout(), g))
		}
	})
	if set, ok := p.Anchors(); ok {
		fmt.Println(anchorTable(set, l, g))
	}

	fw, err := layoutfile.Follow(path, p, func(err error) {
		fmt.Fprintf(os.Stderr, "%s %v\n", failStyle.Render("reload:"), err)
	})
	if err != nil {
		return err
	}

	loop := watch.NewLoop(64)
	loop.Start(fw, watch.OnTimer(cfg.FrameInterval(), p.Tick))
	if o.terminal {
		loop.Start(watch.OnResize(int(os.Stdout.Fd()), func(w, h int) {
			g.Size = panel.Size{Width: float64(w), Height: float64(h)}
			if err := p.SetGeometry(g); err != nil {
				fmt.Fprintf(os.Stderr, "%s %v\n", failStyle.Render("resize:"), err)
			}
		}))
	}

	if o.verbose {
		fmt.Println(mutedStyle.Render(fmt.Sprintf("watching %s (ctrl-c to stop)", path)))
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := loop.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

