package effects

import (
	"image/color"
	"math"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"

	"github.com/gonewx/driftfx/pkg/components"
	"github.com/gonewx/driftfx/pkg/ecs"
	"github.com/gonewx/driftfx/pkg/types"
)

// CaptionSplitter is the optional capability for shaping caption reveals.
// Implementations split a caption into animation units (character clusters,
// words, whatever granularity they support). When no splitter is available
// the reveal degrades to animating the whole line as one unit.
type CaptionSplitter interface {
	Split(text string) []string
}

// RevealOptions configures a caption reveal timeline. Zero values pick the
// showcase defaults.
type RevealOptions struct {
	X, Y     float64
	FontSize float64
	Color    color.RGBA

	SegmentDelay float64 // 相邻段起始间隔（秒）
	Duration     float64 // 单段淡入时长（秒）
	SlidePx      float64
}

// NewReveal creates a caption reveal entity: segments fade in and slide up
// one after another. The returned handle resolves when the last segment
// lands; callers that tear the entity down early should cancel it.
func NewReveal(em *ecs.EntityManager, splitter CaptionSplitter, text string, opts RevealOptions) (ecs.EntityID, *Handle) {
	segments := []string{text}
	if splitter != nil {
		if split := splitter.Split(text); len(split) > 0 {
			segments = split
		}
	}

	if opts.FontSize <= 0 {
		opts.FontSize = 24
	}
	if opts.SegmentDelay <= 0 {
		opts.SegmentDelay = 0.04
	}
	if opts.Duration <= 0 {
		opts.Duration = 0.35
	}
	if opts.SlidePx <= 0 {
		opts.SlidePx = 12
	}
	if opts.Color == (color.RGBA{}) {
		opts.Color = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	}

	done := NewHandle()
	id := em.CreateEntity()
	ecs.AddComponent(em, id, &components.RevealComponent{
		Text:         text,
		Segments:     segments,
		X:            opts.X,
		Y:            opts.Y,
		FontSize:     opts.FontSize,
		Color:        opts.Color,
		SegmentDelay: opts.SegmentDelay,
		Duration:     opts.Duration,
		SlidePx:      opts.SlidePx,
		OnDone:       done.Resolve,
	})
	return id, done
}

// NewStroke creates a polyline stroke entity revealed head-to-tail over
// duration seconds. The handle resolves when the line is fully drawn.
func NewStroke(em *ecs.EntityManager, points []types.Point, width float32, c color.RGBA, duration float64) (ecs.EntityID, *Handle) {
	if duration <= 0 {
		duration = 1.0
	}

	done := NewHandle()
	id := em.CreateEntity()
	ecs.AddComponent(em, id, &components.StrokeComponent{
		Points:   points,
		TotalLen: PolylineLength(points),
		Progress: gween.New(0, 1, float32(duration), ease.InOutQuad),
		Width:    width,
		Color:    c,
		OnDone:   done.Resolve,
	})
	return id, done
}

// OrbitOptions configures an orbit decoration. Zero values pick the showcase
// defaults.
type OrbitOptions struct {
	Radius      float64
	DotCount    int
	DotRadius   float64
	AngularVel  float64 // 度/秒
	PulsePeriod float64 // 半径脉动周期（秒）
	Color       color.RGBA
	Additive    bool
}

// NewOrbit creates a looping orbit decoration around (cx, cy). Orbits run
// until their entity is destroyed, so there is no completion handle.
func NewOrbit(em *ecs.EntityManager, cx, cy float64, opts OrbitOptions) ecs.EntityID {
	if opts.Radius <= 0 {
		opts.Radius = 40
	}
	if opts.DotCount <= 0 {
		opts.DotCount = 6
	}
	if opts.DotRadius <= 0 {
		opts.DotRadius = 3
	}
	if opts.AngularVel == 0 {
		opts.AngularVel = 45
	}
	if opts.PulsePeriod <= 0 {
		opts.PulsePeriod = 2.4
	}
	if opts.Color == (color.RGBA{}) {
		opts.Color = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	}

	half := float32(opts.PulsePeriod / 2)
	pulse := gween.NewSequence(
		gween.New(1, 1.18, half, ease.InOutQuad),
		gween.New(1.18, 1, half, ease.InOutQuad),
	)

	id := em.CreateEntity()
	ecs.AddComponent(em, id, &components.OrbitComponent{
		CenterX:    cx,
		CenterY:    cy,
		Radius:     opts.Radius,
		DotCount:   opts.DotCount,
		DotRadius:  opts.DotRadius,
		AngularVel: opts.AngularVel,
		PulseEnv:   pulse,
		PulseScale: 1,
		Color:      opts.Color,
		Additive:   opts.Additive,
	})
	return id
}

// PolylineLength returns the summed segment length of a polyline.
func PolylineLength(points []types.Point) float64 {
	total := 0.0
	for i := 1; i < len(points); i++ {
		dx := points[i].X - points[i-1].X
		dy := points[i].Y - points[i-1].Y
		total += math.Hypot(dx, dy)
	}
	return total
}
