package effects

import "github.com/gonewx/driftfx/pkg/types"

// Stage maps region identifiers to canvas rectangles. Scenes own a Stage,
// publish their panel layout into it, and hand it to every manager; when the
// window geometry changes the scene rewrites the rects and tells managers to
// re-read them.
type Stage struct {
	regions map[string]types.Rect
}

// NewStage returns an empty stage.
func NewStage() *Stage {
	return &Stage{regions: make(map[string]types.Rect)}
}

// SetRegion registers or updates a named region.
func (s *Stage) SetRegion(id string, r types.Rect) {
	s.regions[id] = r
}

// Region looks up a named region.
func (s *Stage) Region(id string) (types.Rect, bool) {
	r, ok := s.regions[id]
	return r, ok
}

// RegionIDs returns the registered region names, for the debug overlay.
func (s *Stage) RegionIDs() []string {
	ids := make([]string, 0, len(s.regions))
	for id := range s.regions {
		ids = append(ids, id)
	}
	return ids
}
