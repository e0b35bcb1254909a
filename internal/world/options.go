package world

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"landmass/internal/climate"
	"landmass/internal/heightmap"
	"landmass/internal/lakes"
)

// ErrInvalidOptions is returned by Generate when options fail validation.
var ErrInvalidOptions = errors.New("world: invalid options")

// Options controls a generation run. The zero value is not usable; start from
// DefaultOptions.
type Options struct {
	Seed   string
	Width  int
	Height int
	Points int

	// Template names a heightmap template; "" or "random" picks one by
	// weight. Recipe, when set, replaces the template's recipe.
	Template string
	Recipe   string

	LakeLimit       int
	DepressionSteps int
	Erosion         bool

	// Randomize draws the climate knobs from the seed, overriding Climate.
	Randomize bool
	Climate   climate.Settings

	// Logger receives one record per pipeline stage. Nil discards.
	Logger *slog.Logger
}

// DefaultOptions returns the standard configuration.
func DefaultOptions() Options {
	return Options{
		Seed:            "azgaar",
		Width:           1920,
		Height:          1080,
		Points:          10000,
		Template:        "continents",
		LakeLimit:       20,
		DepressionSteps: 250,
		Erosion:         true,
		Climate:         climate.DefaultSettings(),
	}
}

// Validate reports the first problem with o, wrapped in ErrInvalidOptions.
func (o Options) Validate() error {
	switch {
	case o.Width <= 0 || o.Height <= 0:
		return fmt.Errorf("%w: size %dx%d", ErrInvalidOptions, o.Width, o.Height)
	case o.Points <= 0:
		return fmt.Errorf("%w: %d points", ErrInvalidOptions, o.Points)
	case o.LakeLimit < 0 || o.LakeLimit > lakes.DisabledLimit:
		return fmt.Errorf("%w: lake limit %d outside 0-%d", ErrInvalidOptions, o.LakeLimit, lakes.DisabledLimit)
	case o.DepressionSteps < 0:
		return fmt.Errorf("%w: %d depression steps", ErrInvalidOptions, o.DepressionSteps)
	case o.Climate.HeightExponent <= 0:
		return fmt.Errorf("%w: height exponent %g", ErrInvalidOptions, o.Climate.HeightExponent)
	case o.Climate.Precipitation < 0:
		return fmt.Errorf("%w: precipitation %g", ErrInvalidOptions, o.Climate.Precipitation)
	}
	return nil
}

// FromMap populates options from a string map (flag-style key/value pairs).
// Malformed values keep their defaults.
func FromMap(cfg map[string]string) Options {
	o := DefaultOptions()
	if cfg == nil {
		return o
	}
	if v, ok := cfg["seed"]; ok && v != "" {
		o.Seed = v
	}
	if v, ok := cfg["w"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			o.Width = parsed
		}
	}
	if v, ok := cfg["h"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			o.Height = parsed
		}
	}
	if v, ok := cfg["points"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			o.Points = parsed
		}
	}
	if v, ok := cfg["template"]; ok {
		o.Template = v
	}
	if v, ok := cfg["recipe"]; ok {
		o.Recipe = v
	}
	if v, ok := cfg["lake_limit"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 && parsed <= lakes.DisabledLimit {
			o.LakeLimit = parsed
		}
	}
	if v, ok := cfg["depression_steps"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 {
			o.DepressionSteps = parsed
		}
	}
	if v, ok := cfg["erosion"]; ok {
		if parsed, err := strconv.ParseBool(v); err == nil {
			o.Erosion = parsed
		}
	}
	if v, ok := cfg["randomize"]; ok {
		if parsed, err := strconv.ParseBool(v); err == nil {
			o.Randomize = parsed
		}
	}
	if v, ok := cfg["temp_equator"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil {
			o.Climate.TempEquator = parsed
		}
	}
	if v, ok := cfg["temp_north_pole"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil {
			o.Climate.TempNorthPole = parsed
		}
	}
	if v, ok := cfg["temp_south_pole"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil {
			o.Climate.TempSouthPole = parsed
		}
	}
	if v, ok := cfg["precipitation"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed >= 0 {
			o.Climate.Precipitation = parsed
		}
	}
	if v, ok := cfg["height_exponent"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed > 0 {
			o.Climate.HeightExponent = parsed
		}
	}
	if v, ok := cfg["winds"]; ok {
		if winds, err := parseWinds(v); err == nil {
			o.Climate.Winds = winds
		}
	}
	return o
}

// Bind attaches the options to the provided FlagSet.
func (o *Options) Bind(fs *flag.FlagSet) {
	fs.StringVar(&o.Seed, "seed", o.Seed, "generation seed")
	fs.IntVar(&o.Width, "w", o.Width, "map width in pixels")
	fs.IntVar(&o.Height, "h", o.Height, "map height in pixels")
	fs.IntVar(&o.Points, "points", o.Points, "desired cell count, one of "+tierList())
	fs.StringVar(&o.Template, "template", o.Template, "heightmap template, or random")
	fs.StringVar(&o.Recipe, "recipe", o.Recipe, "raw heightmap recipe, overrides -template")
	fs.IntVar(&o.LakeLimit, "lake-limit", o.LakeLimit, "depth a depression needs to become a lake (80 disables)")
	fs.IntVar(&o.DepressionSteps, "depression-steps", o.DepressionSteps, "iteration cap for depression resolution")
	fs.BoolVar(&o.Erosion, "erosion", o.Erosion, "cut river beds into the terrain")
	fs.BoolVar(&o.Randomize, "randomize", o.Randomize, "draw climate options from the seed")
	fs.Float64Var(&o.Climate.TempEquator, "temp-equator", o.Climate.TempEquator, "sea level temperature at the equator")
	fs.Float64Var(&o.Climate.TempNorthPole, "temp-north", o.Climate.TempNorthPole, "sea level temperature at the north pole")
	fs.Float64Var(&o.Climate.TempSouthPole, "temp-south", o.Climate.TempSouthPole, "sea level temperature at the south pole")
	fs.Float64Var(&o.Climate.Precipitation, "precipitation", o.Climate.Precipitation, "precipitation in percent")
	fs.Float64Var(&o.Climate.HeightExponent, "height-exponent", o.Climate.HeightExponent, "exponent applied to land heights")
	fs.Func("winds", "six comma separated wind bearings, north to south", func(s string) error {
		winds, err := parseWinds(s)
		if err != nil {
			return err
		}
		o.Climate.Winds = winds
		return nil
	})
}

func parseWinds(s string) ([6]int, error) {
	var winds [6]int
	parts := strings.Split(s, ",")
	if len(parts) != len(winds) {
		return winds, fmt.Errorf("winds: expected %d bearings, got %d", len(winds), len(parts))
	}
	for i, part := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return winds, fmt.Errorf("winds: %w", err)
		}
		winds[i] = (v%360 + 360) % 360
	}
	return winds, nil
}

func formatWinds(w [6]int) string {
	parts := make([]string, len(w))
	for i, v := range w {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, ",")
}

func tierList() string {
	tiers := heightmap.Tiers()
	parts := make([]string, len(tiers))
	for i, t := range tiers {
		parts[i] = strconv.Itoa(t)
	}
	return strings.Join(parts, ", ")
}
