package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/asciicanvas/internal/canvas"
	"github.com/san-kum/asciicanvas/internal/tileset"
)

const (
	DefaultScene     = "clock"
	DefaultWidth     = 60
	DefaultHeight    = 30
	DefaultTileset   = "ascii"
	DefaultFramerate = 30.0
)

type Config struct {
	Scene        string  `yaml:"scene"`
	Width        int     `yaml:"width"`
	Height       int     `yaml:"height"`
	Tileset      string  `yaml:"tileset"`
	MaxFramerate float64 `yaml:"max_framerate"`
	PrintTiming  bool    `yaml:"print_timing"`
	Frames       int     `yaml:"frames"`
}

func DefaultConfig() *Config {
	return &Config{
		Scene:        DefaultScene,
		Width:        DefaultWidth,
		Height:       DefaultHeight,
		Tileset:      DefaultTileset,
		MaxFramerate: DefaultFramerate,
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// GridConfig resolves the tileset and checks the result the same way
// canvas.New would.
func (c *Config) GridConfig() (canvas.GridConfig, error) {
	ts, err := tileset.ByName(c.Tileset)
	if err != nil {
		return canvas.GridConfig{}, err
	}
	g := canvas.GridConfig{
		CellWidth:    c.Width,
		CellHeight:   c.Height,
		Tileset:      ts,
		MaxFramerate: c.MaxFramerate,
		PrintTiming:  c.PrintTiming,
	}
	if err := g.Validate(); err != nil {
		return canvas.GridConfig{}, err
	}
	return g, nil
}

// Clone returns an independent copy.
func (c *Config) Clone() *Config {
	cp := *c
	return &cp
}
