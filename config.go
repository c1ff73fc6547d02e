package pathrt

import (
	"flag"
	"fmt"
)

// Config holds every tunable of the renderer. Zero values are replaced by
// DefaultConfig values in Normalize.
type Config struct {
	Width  int
	Height int
	Title  string
	Scene  string

	Debug bool
	HUD   bool
	VSync bool

	MoveSpeed        float32 // world units per second
	SprintMultiplier float32
	LightRate        float32 // radians per second
	MouseSensitivity float32 // radians per viewport length of mouse travel
}

func DefaultConfig() Config {
	return Config{
		Width:            1280,
		Height:           720,
		Title:            "pathrt",
		Scene:            "",
		HUD:              true,
		VSync:            true,
		MoveSpeed:        2.0,
		SprintMultiplier: 3.0,
		LightRate:        1.0,
		MouseSensitivity: 3.0,
	}
}

// Bind registers the command line flags on fs. Values already in c act as
// flag defaults.
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.BoolVar(&c.Debug, "debug", c.Debug, "enable debug logging")
	fs.BoolVar(&c.HUD, "hud", c.HUD, "show the stats overlay")
	fs.BoolVar(&c.VSync, "vsync", c.VSync, "present with vsync (fifo)")
	fs.IntVar(&c.Width, "width", c.Width, "initial window width")
	fs.IntVar(&c.Height, "height", c.Height, "initial window height")
}

// Parse binds the flags, parses args and takes the first positional
// argument as the scene name.
func (c *Config) Parse(fs *flag.FlagSet, args []string) error {
	c.Bind(fs)
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("parse flags: %w", err)
	}
	if fs.NArg() > 0 {
		c.Scene = fs.Arg(0)
	}
	c.Normalize()
	return nil
}

func (c *Config) Normalize() {
	def := DefaultConfig()
	if c.Width <= 0 {
		c.Width = def.Width
	}
	if c.Height <= 0 {
		c.Height = def.Height
	}
	if c.Title == "" {
		c.Title = def.Title
	}
	if c.MoveSpeed <= 0 {
		c.MoveSpeed = def.MoveSpeed
	}
	if c.SprintMultiplier <= 0 {
		c.SprintMultiplier = def.SprintMultiplier
	}
	if c.LightRate <= 0 {
		c.LightRate = def.LightRate
	}
	if c.MouseSensitivity <= 0 {
		c.MouseSensitivity = def.MouseSensitivity
	}
}
