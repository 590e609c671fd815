package main

import (
	"fmt"

	panel "github.com/grindlemire/go-panel"
)

// runTarget implements the target subcommand. It resolves a release at
// --offset with --velocity, starting from the --from state, the way a
// gesture release would.
func runTarget(args []string) error {
	o, err := parseArgs(args, "from", "offset", "velocity")
	if err != nil {
		return err
	}
	if len(o.paths) != 1 {
		return fmt.Errorf("target takes one layout file")
	}

	cfg, err := o.loadConfig()
	if err != nil {
		return err
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

	from := l.InitialState()
	if name, ok := o.values["from"]; ok {
		from, err = stateNamed(l, name)
		if err != nil {
			return err
		}
	}
	start := set.MustOffset(from)
	offset, err := o.float("offset", start)
	if err != nil {
		return err
	}
	velocity, err := o.float("velocity", 0)
	if err != nil {
		return err
	}

	b := cfg.Behavior()
	target := panel.ResolveTarget(offset, velocity, set, from, b)
	projected := offset + panel.Project(velocity, b.MomentumProjectionRate())

	fmt.Printf("%s %s\n", mutedStyle.Render("anchors  "), set)
	fmt.Printf("%s %.1f (from %s at %.1f)\n", mutedStyle.Render("release  "), offset, from, start)
	fmt.Printf("%s %.1f\n", mutedStyle.Render("projected"), projected)
	fmt.Printf("%s %s at %.1f\n", mutedStyle.Render("target   "), passStyle.Render(target.Name()), set.MustOffset(target))
	return nil
}

// stateNamed looks name up among the states l anchors.
func stateNamed(l panel.Layout, name string) (panel.State, error) {
	for s := range l.Anchors() {
		if s.Name() == name {
			return s, nil
		}
	}
	if name == panel.Hidden.Name() {
		return panel.Hidden, nil
	}
	return panel.State{}, fmt.Errorf("unknown state %q", name)
}
