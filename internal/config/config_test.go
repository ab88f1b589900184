package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/asciicanvas/internal/canvas"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Scene != DefaultScene {
		t.Errorf("expected scene %s, got %s", DefaultScene, cfg.Scene)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		t.Error("dimensions should be positive")
	}
	if _, err := cfg.GridConfig(); err != nil {
		t.Errorf("default config should be valid, got %v", err)
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("triangles", "default")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}
	if cfg.Width != 72 || cfg.Height != 36 {
		t.Errorf("expected 72x36, got %dx%d", cfg.Width, cfg.Height)
	}
	if cfg.Tileset != "braille" || !cfg.PrintTiming {
		t.Errorf("unexpected preset %+v", cfg)
	}
}

func TestGetPreset_ReturnsCopy(t *testing.T) {
	cfg := GetPreset("clock", "default")
	cfg.Width = 1

	if again := GetPreset("clock", "default"); again.Width == 1 {
		t.Error("preset table was mutated through a returned config")
	}
}

func TestGetPreset_NotFound(t *testing.T) {
	if cfg := GetPreset("clock", "nonexistent"); cfg != nil {
		t.Error("expected nil for nonexistent preset")
	}
	if cfg := GetPreset("nonexistent", "default"); cfg != nil {
		t.Error("expected nil for nonexistent scene")
	}
}

func TestListPresets(t *testing.T) {
	presets := ListPresets("circle")
	if len(presets) != 2 || presets[0] != "braille" || presets[1] != "default" {
		t.Errorf("expected sorted presets, got %v", presets)
	}
	if presets := ListPresets("nonexistent"); presets != nil {
		t.Error("expected nil for nonexistent scene")
	}
}

func TestAllPresetsValid(t *testing.T) {
	for scene, presets := range Presets {
		for name, cfg := range presets {
			if cfg.Scene != scene {
				t.Errorf("%s/%s: expected scene %s, got %s", scene, name, scene, cfg.Scene)
			}
			if _, err := cfg.GridConfig(); err != nil {
				t.Errorf("%s/%s: %v", scene, name, err)
			}
		}
	}
}

func TestGridConfig(t *testing.T) {
	cfg := &Config{Width: 10, Height: 5, Tileset: "braille", MaxFramerate: 20, PrintTiming: true}
	g, err := cfg.GridConfig()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if g.CellWidth != 10 || g.CellHeight != 5 {
		t.Errorf("expected 10x5, got %dx%d", g.CellWidth, g.CellHeight)
	}
	if g.Tileset.SubdivX != 2 || g.Tileset.SubdivY != 4 {
		t.Errorf("expected braille subdivision, got %dx%d", g.Tileset.SubdivX, g.Tileset.SubdivY)
	}
	if g.MaxFramerate != 20 || !g.PrintTiming {
		t.Errorf("unexpected grid config %+v", g)
	}
}

func TestGridConfig_Errors(t *testing.T) {
	if _, err := (&Config{Width: 10, Height: 5, Tileset: "nope"}).GridConfig(); err == nil {
		t.Error("expected unknown tileset error")
	}

	_, err := (&Config{Width: 0, Height: 5, Tileset: "ascii"}).GridConfig()
	if !errors.Is(err, canvas.ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig, got %v", err)
	}
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scene.yaml")
	cfg := GetPreset("shapes", "blocks")
	cfg.Frames = 120

	if err := Save(path, cfg); err != nil {
		t.Fatalf("save: %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if *loaded != *cfg {
		t.Errorf("expected %+v, got %+v", cfg, loaded)
	}
}

func TestLoad_KeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.yaml")
	if err := os.WriteFile(path, []byte("scene: shapes\nwidth: 40\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Scene != "shapes" || cfg.Width != 40 {
		t.Errorf("expected overrides applied, got %+v", cfg)
	}
	if cfg.Height != DefaultHeight || cfg.Tileset != DefaultTileset {
		t.Errorf("expected defaults kept, got %+v", cfg)
	}
}

func TestLoad_Errors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}

	path := filepath.Join(t.TempDir(), "bad.yaml")
	os.WriteFile(path, []byte("width: [1, 2\n"), 0644)
	if _, err := Load(path); err == nil {
		t.Error("expected parse error")
	}
}
