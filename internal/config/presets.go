package config

import "sort"

var Presets = map[string]map[string]*Config{
	"circle": {
		"default": {
			Scene: "circle", Width: 30, Height: 15, Tileset: "ascii", MaxFramerate: 1,
		},
		"braille": {
			Scene: "circle", Width: 30, Height: 15, Tileset: "braille", MaxFramerate: 1,
		},
	},
	"clock": {
		"default": {
			Scene: "clock", Width: 60, Height: 30, Tileset: "ascii", MaxFramerate: 30,
		},
		"fine": {
			Scene: "clock", Width: 60, Height: 30, Tileset: "braille", MaxFramerate: 30,
		},
	},
	"shapes": {
		"default": {
			Scene: "shapes", Width: 96, Height: 48, Tileset: "ascii", MaxFramerate: 60,
		},
		"blocks": {
			Scene: "shapes", Width: 96, Height: 48, Tileset: "braille-blocks", MaxFramerate: 60,
		},
	},
	"triangles": {
		"default": {
			Scene: "triangles", Width: 72, Height: 36, Tileset: "braille", MaxFramerate: 50,
			PrintTiming: true,
		},
		"ascii": {
			Scene: "triangles", Width: 72, Height: 36, Tileset: "ascii", MaxFramerate: 50,
			PrintTiming: true,
		},
	},
	"sweep": {
		"default": {
			Scene: "sweep", Width: 72, Height: 45, Tileset: "ascii", MaxFramerate: 16,
			PrintTiming: true,
		},
		"solid": {
			Scene: "sweep", Width: 72, Height: 45, Tileset: "solid", MaxFramerate: 16,
		},
	},
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(scene, preset string) *Config {
	scenePresets, ok := Presets[scene]
	if !ok {
		return nil
	}
	cfg, ok := scenePresets[preset]
	if !ok {
		return nil
	}
	return cfg.Clone()
}

func ListPresets(scene string) []string {
	scenePresets, ok := Presets[scene]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(scenePresets))
	for name := range scenePresets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
