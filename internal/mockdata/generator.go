package mockdata

import (
	"bufio"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"math/rand/v2"
	"os"
	"strconv"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/okian/wildfire/internal/domain/model"
	"github.com/okian/wildfire/pkg/logger"
)

// Header is the column layout of the historical wildfires CSV.
var Header = []string{
	"Region",
	"Date",
	"Estimated_fire_area",
	"Mean_estimated_fire_brightness",
	"Mean_estimated_fire_radiative_power",
	"Mean_confidence",
	"Std_confidence",
	"Var_confidence",
	"Count",
	"Replaced",
}

const (
	dateLayout = "1/2/2006"

	// Rows in the final stretch of the last year are marked as not yet replaced
	// by the quality-controlled product.
	unreplacedDays = 90

	seedSalt = 0x9e3779b97f4a7c15
	filePerm = 0o644
)

// profile shapes the synthetic activity of one region.
type profile struct {
	peak     time.Month // height of the fire season
	baseArea float64    // typical daily burnt area in the peak month
}

var profiles = map[string]profile{
	"WA":  {peak: time.September, baseArea: 120},
	"QL":  {peak: time.September, baseArea: 90},
	"NT":  {peak: time.August, baseArea: 150},
	"NSW": {peak: time.January, baseArea: 40},
	"VI":  {peak: time.January, baseArea: 15},
	"SA":  {peak: time.February, baseArea: 20},
	"TA":  {peak: time.February, baseArea: 5},
}

var defaultProfile = profile{peak: time.January, baseArea: 10}

// Summary describes a generated file.
type Summary struct {
	Rows    int
	Regions int
	Years   int
	Took    time.Duration
}

// Generator writes deterministic synthetic datasets.
type Generator struct {
	cfg    Config
	clock  clockwork.Clock
	logger logger.Logger
}

// Option configures a Generator.
type Option func(*Generator)

// WithClock replaces the wall clock used for timing.
func WithClock(c clockwork.Clock) Option {
	return func(g *Generator) {
		if c != nil {
			g.clock = c
		}
	}
}

// WithLogger sets the logger used for progress messages.
func WithLogger(l logger.Logger) Option {
	return func(g *Generator) {
		if l != nil {
			g.logger = l
		}
	}
}

// New validates cfg and creates a Generator.
func New(cfg Config, opts ...Option) (*Generator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if len(cfg.Regions) == 0 {
		for _, r := range model.KnownRegions() {
			cfg.Regions = append(cfg.Regions, r.Code)
		}
	}
	g := &Generator{cfg: cfg, clock: clockwork.NewRealClock()}
	for _, opt := range opts {
		opt(g)
	}
	if g.logger == nil {
		g.logger = logger.Get()
	}
	return g, nil
}

// WriteFile generates the dataset into path, replacing any existing file.
func (g *Generator) WriteFile(ctx context.Context, path string) (Summary, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, filePerm)
	if err != nil {
		return Summary{}, fmt.Errorf("%w: %w", ErrWrite, err)
	}

	sum, genErr := g.Generate(ctx, f)
	if err := f.Close(); err != nil && genErr == nil {
		genErr = fmt.Errorf("%w: %w", ErrWrite, err)
	}
	if genErr != nil {
		return Summary{}, genErr
	}

	g.logger.Info(ctx, "mock dataset written",
		logger.String("path", path),
		logger.Int("rows", sum.Rows),
		logger.Int("regions", sum.Regions),
		logger.Int("years", sum.Years),
		logger.Duration("took", sum.Took),
	)
	return sum, nil
}

// Generate writes the header and one row per region and fire day to w.
func (g *Generator) Generate(ctx context.Context, w io.Writer) (Summary, error) {
	start := g.clock.Now()
	rng := rand.New(rand.NewPCG(g.cfg.Seed, g.cfg.Seed^seedSalt))

	bw := bufio.NewWriter(w)
	cw := csv.NewWriter(bw)
	if err := cw.Write(Header); err != nil {
		return Summary{}, fmt.Errorf("%w: %w", ErrWrite, err)
	}

	last := time.Date(g.cfg.ToYear, time.December, 31, 0, 0, 0, 0, time.UTC)
	unreplacedFrom := last.AddDate(0, 0, -unreplacedDays)

	sum := Summary{Regions: len(g.cfg.Regions), Years: g.cfg.ToYear - g.cfg.FromYear + 1}
	for _, region := range g.cfg.Regions {
		p, ok := profiles[region]
		if !ok {
			p = defaultProfile
		}
		for year := g.cfg.FromYear; year <= g.cfg.ToYear; year++ {
			if err := ctx.Err(); err != nil {
				return Summary{}, err
			}
			day := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
			for day.Year() == year {
				if row, ok := g.row(rng, region, p, day, !day.Before(unreplacedFrom)); ok {
					if err := cw.Write(row); err != nil {
						return Summary{}, fmt.Errorf("%w: %w", ErrWrite, err)
					}
					sum.Rows++
				}
				day = day.AddDate(0, 0, 1)
			}
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return Summary{}, fmt.Errorf("%w: %w", ErrWrite, err)
	}
	if err := bw.Flush(); err != nil {
		return Summary{}, fmt.Errorf("%w: %w", ErrWrite, err)
	}
	sum.Took = g.clock.Since(start)
	return sum, nil
}

// season is 1 in the peak month and 0 six months away from it.
func season(p profile, m time.Month) float64 {
	delta := float64(int(m) - int(p.peak))
	return 0.5 * (1 + math.Cos(2*math.Pi*delta/12))
}

func (g *Generator) row(rng *rand.Rand, region string, p profile, day time.Time, unreplaced bool) ([]string, bool) {
	s := season(p, day.Month())
	if rng.Float64() >= g.cfg.FireDayRate*(0.15+0.85*s) {
		return nil, false
	}

	area := p.baseArea * (0.2 + s) * math.Exp(0.8*rng.NormFloat64())
	count := 1 + int(area/(4+4*rng.Float64()))
	brightness := 300 + 10*s + 15*rng.Float64()
	power := 10 + 0.4*area + 20*rng.Float64()
	confidence := 70 + 20*rng.Float64()
	std := 1 + 9*rng.Float64()
	if count == 1 {
		std = 0
	}

	replaced := "R"
	if unreplaced {
		replaced = "N"
	}

	return []string{
		region,
		day.Format(dateLayout),
		fmtFloat(area, 2),
		fmtFloat(brightness, 2),
		fmtFloat(power, 2),
		fmtFloat(confidence, 2),
		fmtFloat(std, 2),
		fmtFloat(std*std, 2),
		strconv.Itoa(count),
		replaced,
	}, true
}

func fmtFloat(v float64, prec int) string {
	return strconv.FormatFloat(v, 'f', prec, 64)
}
