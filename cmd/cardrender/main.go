// Command cardrender renders one card of a stack to a PNG file.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/llehouerou/cardview/internal/display"
	"github.com/llehouerou/cardview/internal/logging"
	"github.com/llehouerou/cardview/internal/render"
	"github.com/llehouerou/cardview/internal/stack"
	"github.com/llehouerou/cardview/internal/viewer"
)

type options struct {
	stackDir   string
	card       int // 1-based
	background bool
	scale      int
	workers    int
	output     string
	verbose    bool
}

func parseFlags(args []string) (options, error) {
	var o options
	fs := flag.NewFlagSet("cardrender", flag.ContinueOnError)
	fs.StringVar(&o.stackDir, "stack", "", "stack directory (required)")
	fs.IntVar(&o.card, "card", 1, "card number, starting at 1")
	fs.BoolVar(&o.background, "background", false, "render the background only")
	fs.IntVar(&o.scale, "scale", render.DefaultScale, "upscale factor")
	fs.IntVar(&o.workers, "workers", 0, "render goroutines (0 = GOMAXPROCS)")
	fs.StringVar(&o.output, "o", "", "output PNG file (required)")
	fs.BoolVar(&o.verbose, "v", false, "log render details to stderr")

	if err := fs.Parse(args); err != nil {
		return o, err
	}
	if o.stackDir == "" || o.output == "" {
		return o, fmt.Errorf("-stack and -o are required")
	}
	if o.card < 1 {
		return o, fmt.Errorf("-card must be at least 1, got %d", o.card)
	}
	return o, nil
}

func run(o options) error {
	if o.verbose {
		logging.SetLogger(slog.New(slog.NewTextHandler(os.Stderr,
			&slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	st, err := stack.Open(o.stackDir)
	if err != nil {
		return fmt.Errorf("open stack: %w", err)
	}

	v, err := viewer.New(st, viewer.WithScale(o.scale), viewer.WithWorkers(o.workers))
	if err != nil {
		return err
	}
	if err := v.JumpTo(o.card - 1); err != nil {
		return fmt.Errorf("card %d of %d: %w", o.card, st.CardCount(), err)
	}
	if o.background {
		v.ToggleBackgroundOnly()
	}

	frame, err := v.Render()
	if err != nil {
		return err
	}

	data, err := display.EncodePNG(frame.Buffer)
	if err != nil {
		return err
	}
	if err := os.WriteFile(o.output, data, 0o644); err != nil { //nolint:gosec // output image is not secret
		return fmt.Errorf("write output: %w", err)
	}

	logging.Logger().Info("wrote card",
		"card", o.card, "width", frame.Buffer.Width, "height", frame.Buffer.Height, "file", o.output)
	return nil
}

func main() {
	o, err := parseFlags(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "cardrender: %v\n", err)
		os.Exit(2)
	}
	if err := run(o); err != nil {
		fmt.Fprintf(os.Stderr, "cardrender: %v\n", err)
		os.Exit(1)
	}
}
