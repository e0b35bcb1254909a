package app

import (
	"flag"
	"time"
)

// Config holds the viewer's command-line parameters. Generation options are
// bound separately through world.Options.
type Config struct {
	Scale    float64
	TPS      int
	Layer    string
	Panel    int
	Autoplay time.Duration
}

// NewConfig returns a Config populated with sensible defaults.
func NewConfig() *Config {
	return &Config{Scale: 0.5, TPS: 30, Layer: "height", Panel: 260, Autoplay: 3 * time.Second}
}

// Bind attaches the configuration to the provided FlagSet.
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.Float64Var(&c.Scale, "scale", c.Scale, "screen pixels per map pixel")
	fs.IntVar(&c.TPS, "tps", c.TPS, "ticks per second")
	fs.StringVar(&c.Layer, "layer", c.Layer, "initial map layer")
	fs.IntVar(&c.Panel, "panel", c.Panel, "option panel width in pixels, 0 hides it")
	fs.DurationVar(&c.Autoplay, "autoplay", c.Autoplay, "seed interval while autoplay is on")
}

// ViewSize returns the raster size of a map at the configured scale.
func (c *Config) ViewSize(width, height int) (int, int) {
	scale := c.Scale
	if scale <= 0 {
		scale = 1
	}
	return max(int(float64(width)*scale), 1), max(int(float64(height)*scale), 1)
}
