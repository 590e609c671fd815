package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"golang.org/x/term"

	panel "github.com/grindlemire/go-panel"
	"github.com/grindlemire/go-panel/internal/config"
	"github.com/grindlemire/go-panel/internal/debug"
	"github.com/grindlemire/go-panel/internal/layout"
)

// options holds the arguments shared by every command.
type options struct {
	size     panel.Size
	safe     panel.Edges
	terminal bool
	config   string
	verbose  bool
	values   map[string]string
	paths    []string
}

// parseArgs splits args into shared options, the named value flags a
// command accepts, and paths.
func parseArgs(args []string, valueFlags ...string) (*options, error) {
	o := &options{
		size:   panel.Size{Width: 390, Height: 844},
		values: map[string]string{},
	}
	takesValue := map[string]bool{"size": true, "safe": true, "config": true}
	for _, f := range valueFlags {
		takesValue[f] = true
	}

	for i := 0; i < len(args); i++ {
		arg := args[i]
		if !strings.HasPrefix(arg, "-") || arg == "-" {
			o.paths = append(o.paths, arg)
			continue
		}
		name, value, hasValue := strings.Cut(strings.TrimLeft(arg, "-"), "=")
		switch {
		case name == "v" || name == "verbose":
			o.verbose = true
			continue
		case name == "terminal":
			o.terminal = true
			continue
		case !takesValue[name]:
			return nil, fmt.Errorf("unknown option %s", arg)
		}
		if !hasValue {
			if i+1 >= len(args) {
				return nil, fmt.Errorf("option %s needs a value", arg)
			}
			i++
			value = args[i]
		}
		o.values[name] = value
	}

	if s, ok := o.values["size"]; ok {
		size, err := parseSize(s)
		if err != nil {
			return nil, err
		}
		o.size = size
	}
	if s, ok := o.values["safe"]; ok {
		safe, err := parseEdges(s)
		if err != nil {
			return nil, err
		}
		o.safe = safe
	}
	o.config = o.values["config"]
	return o, nil
}

func parseSize(s string) (panel.Size, error) {
	w, h, ok := strings.Cut(strings.ToLower(s), "x")
	if !ok {
		return panel.Size{}, fmt.Errorf("size %q: want WIDTHxHEIGHT", s)
	}
	width, err := strconv.ParseFloat(w, 64)
	if err != nil {
		return panel.Size{}, fmt.Errorf("size %q: %w", s, err)
	}
	height, err := strconv.ParseFloat(h, 64)
	if err != nil {
		return panel.Size{}, fmt.Errorf("size %q: %w", s, err)
	}
	if width <= 0 || height <= 0 {
		return panel.Size{}, fmt.Errorf("size %q: must be positive", s)
	}
	return panel.Size{Width: width, Height: height}, nil
}

func parseEdges(s string) (panel.Edges, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return panel.Edges{}, fmt.Errorf("safe area %q: want TOP,RIGHT,BOTTOM,LEFT", s)
	}
	var v [4]float64
	for i, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return panel.Edges{}, fmt.Errorf("safe area %q: %w", s, err)
		}
		v[i] = f
	}
	return layout.EdgeTRBL(v[0], v[1], v[2], v[3]), nil
}

// float returns the named value flag, or def when it was not given.
func (o *options) float(name string, def float64) (float64, error) {
	s, ok := o.values[name]
	if !ok {
		return def, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("--%s: %w", name, err)
	}
	return f, nil
}

// geometry returns the container, taken from the terminal with --terminal.
func (o *options) geometry() (panel.Geometry, error) {
	if o.terminal {
		fd := int(os.Stdout.Fd())
		if !term.IsTerminal(fd) {
			return panel.Geometry{}, fmt.Errorf("--terminal: stdout is not a terminal")
		}
		w, h, err := term.GetSize(fd)
		if err != nil {
			return panel.Geometry{}, fmt.Errorf("--terminal: %w", err)
		}
		o.size = panel.Size{Width: float64(w), Height: float64(h)}
	}
	return panel.Geometry{Size: o.size, SafeArea: o.safe}, nil
}

// loadConfig reads the tunables and starts debug logging when they ask
// for it.
func (o *options) loadConfig() (config.Config, error) {
	var (
		cfg config.Config
		err error
	)
	if o.config != "" {
		cfg, err = config.LoadFile(o.config)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return config.Config{}, err
	}
	if cfg.Debug.LogPath != "" {
		if err := debug.Init(cfg.Debug.LogPath); err != nil {
			return config.Config{}, err
		}
	}
	return cfg, nil
}
