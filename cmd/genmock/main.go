package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/okian/wildfire/internal/mockdata"
	"github.com/okian/wildfire/pkg/logger"
)

const usageHeader = `genmock writes a synthetic Australia wildfires CSV in the historical layout.

Usage:
  go run ./cmd/genmock [options]

Options:
`

func main() {
	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stderr); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		os.Stderr.WriteString("genmock: " + err.Error() + "\n")
		os.Exit(1)
	}
}

// run parses args and writes the dataset.
func run(ctx context.Context, args []string, stderr io.Writer) error {
	def := mockdata.DefaultConfig()

	fs := flag.NewFlagSet("genmock", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var (
		out     = fs.String("out", "Historical_Wildfires.csv", "Output CSV path")
		from    = fs.Int("from", def.FromYear, "First year to generate")
		to      = fs.Int("to", def.ToYear, "Last year to generate")
		seed    = fs.Uint64("seed", def.Seed, "Random seed; equal seeds give equal files")
		rate    = fs.Float64("rate", def.FireDayRate, "Share of days with fire activity at the peak of the season, in (0, 1]")
		regions = fs.String("regions", "", "Comma separated region codes (default: all seven)")
	)
	fs.Usage = func() {
		_, _ = io.WriteString(stderr, usageHeader)
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg := mockdata.Config{
		FromYear:    *from,
		ToYear:      *to,
		Seed:        *seed,
		FireDayRate: *rate,
	}
	if *regions != "" {
		for _, r := range strings.Split(*regions, ",") {
			cfg.Regions = append(cfg.Regions, strings.ToUpper(strings.TrimSpace(r)))
		}
	}

	g, err := mockdata.New(cfg)
	if err != nil {
		return err
	}
	if _, err := g.WriteFile(ctx, *out); err != nil {
		return fmt.Errorf("generate %s: %w", *out, err)
	}
	return nil
}
