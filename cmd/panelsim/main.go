// Package main provides the CLI for exploring panel layouts.
//
// Usage:
//
//	panelsim anchors <layout.yaml>         Print the resolved anchors
//	panelsim target <layout.yaml> ...      Resolve a release to a state
//	panelsim run <script.yaml...>          Replay scripts and check expectations
//	panelsim plot <script.yaml>            Chart a replay as SVG or PNG
//	panelsim watch <layout.yaml>           Re-resolve on every edit and resize
//	panelsim help                          Show help
package main

import (
	"fmt"
	"os"
)

const version = "0.1.0"

const usage = `panelsim - layout and gesture simulator for go-panel

Usage:
  panelsim <command> [options] [path...]

Commands:
  anchors     Print the anchors a layout resolves to
  target      Resolve where a release settles
  run         Replay gesture scripts and check their expectations
  plot        Chart a script replay as SVG or PNG
  watch       Follow a layout file and the terminal size
  version     Print version information
  help        Show this help message

Options:
  --size WxH        Container size in points (default 390x844)
  --safe T,R,B,L    Safe area insets in points
  --terminal        Use the terminal size in cells as the container
  --config FILE     Tunables file (default $PANEL_CONFIG)
  -v                Verbose output

Examples:
  panelsim anchors sheet.yaml --size 1024x768
  panelsim target sheet.yaml --from half --offset 500 --velocity 1200
  panelsim run testdata/*.yaml
  panelsim plot -o flick.svg flick.yaml
  panelsim watch --terminal sheet.yaml

For more information, see https://github.com/grindlemire/go-panel
`

func main() {
	if len(os.Args) < 2 {
		fmt.Print(usage)
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "anchors":
		if err := runAnchors(args); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
	case "target":
		if err := runTarget(args); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
	case "run":
		if err := runRun(args); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
	case "plot":
		if err := runPlot(args); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
	case "watch":
		if err := runWatch(args); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
	case "version":
		fmt.Printf("panelsim version %s\n", version)
	case "help", "-h", "--help":
		fmt.Print(usage)
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n\n", command)
		fmt.Print(usage)
		os.Exit(1)
	}
}
