package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/grindlemire/go-panel/internal/config"
	"github.com/grindlemire/go-panel/internal/script"
)

// result is the outcome of one script.
type result struct {
	path  string
	trace *script.Trace
	err   error
}

// runRun implements the run subcommand. Scripts replay in parallel and are
// reported in the order given.
func runRun(args []string) error {
	o, err := parseArgs(args)
	if err != nil {
		return err
	}
	files, err := collectScripts(o.paths)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no script files found")
	}
	cfg, err := o.loadConfig()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	results := replayAll(ctx, files, cfg)

	var failed int
	for _, r := range results {
		if r.err != nil {
			failed++
			fmt.Printf("%s %s\n", failStyle.Render("FAIL"), r.path)
			fmt.Printf("     %v\n", r.err)
			continue
		}
		final := r.trace.Final()
		fmt.Printf("%s %s %s\n", passStyle.Render("PASS"), r.path,
			mutedStyle.Render(fmt.Sprintf("(ends %s at %.1f after %v, %d state changes)",
				final.State, final.Offset, r.trace.Duration, r.trace.Count("state-changed"))))
		if o.verbose {
			for _, e := range r.trace.Events {
				fmt.Println(mutedStyle.Render(fmt.Sprintf("     %8v  %s", e.At, script.Describe(e.Event))))
			}
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d script(s) failed", failed, len(results))
	}
	return nil
}

// replayAll runs every script, at most one per CPU at a time.
func replayAll(ctx context.Context, files []string, cfg config.Config) []result {
	results := make([]result, len(files))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())
	for i, path := range files {
		i, path := i, path
		g.Go(func() error {
			results[i] = replay(ctx, path, cfg)
			return nil
		})
	}
	_ = g.Wait()
	return results
}

func replay(ctx context.Context, path string, cfg config.Config) result {
	s, err := script.Load(path)
	if err != nil {
		return result{path: path, err: err}
	}
	trace, err := script.Run(ctx, s, cfg)
	return result{path: path, trace: trace, err: err}
}

// collectScripts expands directories to the .yaml and .yml files inside.
func collectScripts(paths []string) ([]string, error) {
	var files []string
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			files = append(files, p)
			continue
		}
		for _, pattern := range []string{"*.yaml", "*.yml"} {
			matches, err := filepath.Glob(filepath.Join(p, pattern))
			if err != nil {
				return nil, err
			}
			files = append(files, matches...)
		}
	}
	return files, nil
}
