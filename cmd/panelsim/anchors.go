package main

import (
	"fmt"

	panel "github.com/grindlemire/go-panel"
	"github.com/grindlemire/go-panel/internal/layoutfile"
)

// runAnchors implements the anchors subcommand.
func runAnchors(args []string) error {
	o, err := parseArgs(args)
	if err != nil {
		return err
	}
	if len(o.paths) != 1 {
		return fmt.Errorf("anchors takes one layout file")
	}

	l, err := loadLayout(o.paths[0])
	if err != nil {
		return err
	}
	g, err := o.geometry()
	if err != nil {
		return err
	}
	set, err := panel.Resolve(l, g)
	if err != nil {
		return err
	}

	if o.verbose {
		fmt.Println(mutedStyle.Render(fmt.Sprintf("%s panel in %.0fx%.0f", l.Position(), g.Size.Width, g.Size.Height)))
	}
	fmt.Println(anchorTable(set, l, g))
	return nil
}

// loadLayout reads a layout document. The name "bottom" is the built-in
// bottom sheet.
func loadLayout(path string) (*panel.StaticLayout, error) {
	if path == "bottom" {
		return panel.BottomLayout(), nil
	}
	return layoutfile.Load(path)
}
