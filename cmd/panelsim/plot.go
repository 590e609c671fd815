package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/grindlemire/go-panel/internal/plot"
	"github.com/grindlemire/go-panel/internal/script"
)

// runPlot implements the plot subcommand. The output format follows the
// extension of -o; without -o an SVG is written to stdout.
func runPlot(args []string) error {
	o, err := parseArgs(args, "o", "out", "width", "height")
	if err != nil {
		return err
	}
	if len(o.paths) != 1 {
		return fmt.Errorf("plot takes one script file")
	}
	cfg, err := o.loadConfig()
	if err != nil {
		return err
	}

	s, err := script.Load(o.paths[0])
	if err != nil {
		return err
	}
	// A failed expectation still leaves a trace worth plotting.
	trace, err := script.Run(context.Background(), s, cfg)
	if trace == nil {
		return err
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: %v\n", err)
	}

	opts := plot.DefaultOptions()
	for name, dst := range map[string]*int{"width": &opts.Width, "height": &opts.Height} {
		if v, ok := o.values[name]; ok {
			n, err := strconv.Atoi(v)
			if err != nil {
				return fmt.Errorf("--%s: %w", name, err)
			}
			*dst = n
		}
	}

	out := o.values["o"]
	if out == "" {
		out = o.values["out"]
	}
	if out == "" {
		return plot.SVG(os.Stdout, trace, opts)
	}

	f, err := os.Create(out)
	if err != nil {
		return err
	}
	switch strings.ToLower(filepath.Ext(out)) {
	case ".png":
		err = plot.PNG(f, trace, opts)
	case ".svg":
		err = plot.SVG(f, trace, opts)
	default:
		err = fmt.Errorf("unknown output format %q", filepath.Ext(out))
	}
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return err
	}
	if o.verbose {
		fmt.Printf("Wrote %s\n", out)
	}
	return nil
}
