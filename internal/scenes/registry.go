// Package scenes holds the demo drawings shipped with the CLI.
package scenes

import (
	"fmt"
	"sort"

	"github.com/san-kum/asciicanvas/internal/frame"
)

type Scene struct {
	Name        string
	Description string
	// Static scenes draw the same picture on every frame.
	Static bool
	Draw   frame.FrameFunc
}

type Registry struct {
	scenes map[string]Scene
}

func NewRegistry() *Registry {
	r := &Registry{scenes: make(map[string]Scene)}

	r.Register(Scene{
		Name:        "circle",
		Description: "a circle crossed by two diagonals",
		Static:      true,
		Draw:        crossedCircle,
	})
	r.Register(Scene{
		Name:        "clock",
		Description: "a clock face with two sweeping hands",
		Draw:        clock,
	})
	r.Register(Scene{
		Name:        "shapes",
		Description: "sliding lines, spinning lines, pulsing circles and ellipses",
		Draw:        shapes,
	})
	r.Register(Scene{
		Name:        "triangles",
		Description: "nested spinning triangles, a ring of circles and corner spinners",
		Draw:        triangles,
	})
	r.Register(Scene{
		Name:        "sweep",
		Description: "three rotating lines and an orbiting circle",
		Draw:        sweep,
	})

	return r
}

// Register adds s, replacing any scene with the same name.
func (r *Registry) Register(s Scene) {
	r.scenes[s.Name] = s
}

func (r *Registry) Get(name string) (Scene, error) {
	s, ok := r.scenes[name]
	if !ok {
		return Scene{}, fmt.Errorf("unknown scene: %s (available: %v)", name, r.List())
	}
	return s, nil
}

func (r *Registry) List() []string {
	names := make([]string, 0, len(r.scenes))
	for name := range r.scenes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
