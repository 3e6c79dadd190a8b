package systems

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/gonewx/driftfx/pkg/components"
	"github.com/gonewx/driftfx/pkg/ecs"
)

// DecorSystem animates the non-particle decorations: caption reveals, stroke
// draw-ons and orbit loops. Like the particle system it is pure update logic;
// entities are created by the timeline builders and destroyed by their owner
// scene.
type DecorSystem struct {
	EntityManager *ecs.EntityManager

	// FontSource renders caption reveals; nil skips text drawing entirely
	// (降级：无字体时标题不显示，其余装饰照常).
	FontSource *text.GoTextFaceSource

	// 1×1 white source image for additive glow dots, created on first draw
	white *ebiten.Image
}

// NewDecorSystem creates a new DecorSystem instance.
func NewDecorSystem(em *ecs.EntityManager, fontSource *text.GoTextFaceSource) *DecorSystem {
	return &DecorSystem{EntityManager: em, FontSource: fontSource}
}

// Update advances every decoration timeline by dt seconds.
func (ds *DecorSystem) Update(dt float64) {
	ds.updateReveals(dt)
	ds.updateStrokes(dt)
	ds.updateOrbits(dt)
}

func (ds *DecorSystem) updateReveals(dt float64) {
	for _, id := range ecs.GetEntitiesWith1[*components.RevealComponent](ds.EntityManager) {
		reveal, ok := ecs.GetComponent[*components.RevealComponent](ds.EntityManager, id)
		if !ok || reveal.Done {
			continue
		}
		reveal.Age += dt
		if reveal.Age >= revealTotal(reveal) {
			reveal.Done = true
			if reveal.OnDone != nil {
				reveal.OnDone()
			}
		}
	}
}

// revealTotal is the full timeline length: the last segment starts after
// (n-1) delays and then runs its own fade duration.
func revealTotal(reveal *components.RevealComponent) float64 {
	return reveal.SegmentDelay*float64(len(reveal.Segments)-1) + reveal.Duration
}

func (ds *DecorSystem) updateStrokes(dt float64) {
	for _, id := range ecs.GetEntitiesWith1[*components.StrokeComponent](ds.EntityManager) {
		stroke, ok := ecs.GetComponent[*components.StrokeComponent](ds.EntityManager, id)
		if !ok || stroke.Done {
			continue
		}
		fraction, finished := stroke.Progress.Update(float32(dt))
		stroke.Fraction = float64(fraction)
		if finished {
			stroke.Fraction = 1
			stroke.Done = true
			if stroke.OnDone != nil {
				stroke.OnDone()
			}
		}
	}
}

func (ds *DecorSystem) updateOrbits(dt float64) {
	for _, id := range ecs.GetEntitiesWith1[*components.OrbitComponent](ds.EntityManager) {
		orbit, ok := ecs.GetComponent[*components.OrbitComponent](ds.EntityManager, id)
		if !ok {
			continue
		}
		orbit.Phase = math.Mod(orbit.Phase+orbit.AngularVel*dt, 360)
		if orbit.PulseEnv != nil {
			value, _, done := orbit.PulseEnv.Update(float32(dt))
			orbit.PulseScale = float64(value)
			if done {
				orbit.PulseEnv.Reset() // 脉动循环
			}
		}
	}
}

// Draw renders all decorations. camY is the scroll offset of the showcase
// page in logical pixels.
func (ds *DecorSystem) Draw(screen *ebiten.Image, camY float64) {
	ds.drawStrokes(screen, camY)
	ds.drawOrbits(screen, camY)
	ds.drawReveals(screen, camY)
}

func (ds *DecorSystem) drawReveals(screen *ebiten.Image, camY float64) {
	if ds.FontSource == nil {
		return
	}
	for _, id := range ecs.GetEntitiesWith1[*components.RevealComponent](ds.EntityManager) {
		reveal, ok := ecs.GetComponent[*components.RevealComponent](ds.EntityManager, id)
		if !ok {
			continue
		}
		face := &text.GoTextFace{Source: ds.FontSource, Size: reveal.FontSize}

		penX := reveal.X
		for i, segment := range reveal.Segments {
			segStart := float64(i) * reveal.SegmentDelay
			segT := (reveal.Age - segStart) / reveal.Duration
			if segT > 1 {
				segT = 1
			}
			width := text.Advance(segment, face)
			if segT > 0 {
				eased := segT * (2 - segT) // ease-out：进场快，落位缓
				op := &text.DrawOptions{}
				op.GeoM.Translate(penX, reveal.Y-camY+reveal.SlidePx*(1-eased))
				op.ColorScale.ScaleWithColor(fadeColor(reveal.Color, eased))
				text.Draw(screen, segment, face, op)
			}
			penX += width
		}
	}
}

func (ds *DecorSystem) drawStrokes(screen *ebiten.Image, camY float64) {
	for _, id := range ecs.GetEntitiesWith1[*components.StrokeComponent](ds.EntityManager) {
		stroke, ok := ecs.GetComponent[*components.StrokeComponent](ds.EntityManager, id)
		if !ok || len(stroke.Points) < 2 {
			continue
		}

		// 按长度比例显示折线：完整段直接画，最后一段截断插值
		remaining := stroke.Fraction * stroke.TotalLen
		for i := 1; i < len(stroke.Points) && remaining > 0; i++ {
			a, b := stroke.Points[i-1], stroke.Points[i]
			segLen := math.Hypot(b.X-a.X, b.Y-a.Y)
			endX, endY := b.X, b.Y
			if segLen > remaining {
				t := remaining / segLen
				endX = a.X + (b.X-a.X)*t
				endY = a.Y + (b.Y-a.Y)*t
			}
			vector.StrokeLine(screen,
				float32(a.X), float32(a.Y-camY),
				float32(endX), float32(endY-camY),
				stroke.Width, stroke.Color, true)
			remaining -= segLen
		}
	}
}

func (ds *DecorSystem) drawOrbits(screen *ebiten.Image, camY float64) {
	for _, id := range ecs.GetEntitiesWith1[*components.OrbitComponent](ds.EntityManager) {
		orbit, ok := ecs.GetComponent[*components.OrbitComponent](ds.EntityManager, id)
		if !ok || orbit.DotCount <= 0 {
			continue
		}
		radius := orbit.Radius * orbit.PulseScale
		step := 360.0 / float64(orbit.DotCount)
		for i := 0; i < orbit.DotCount; i++ {
			rad := (orbit.Phase + float64(i)*step) * math.Pi / 180
			x := orbit.CenterX + radius*math.Cos(rad)
			y := orbit.CenterY + radius*math.Sin(rad)
			if orbit.Additive {
				if ds.white == nil {
					ds.white = ebiten.NewImage(1, 1)
					ds.white.Fill(color.White)
				}
				fillCircleAdditive(screen, ds.white, x, y-camY, orbit.DotRadius, orbit.Color)
			} else {
				vector.DrawFilledCircle(screen, float32(x), float32(y-camY), float32(orbit.DotRadius), orbit.Color, true)
			}
		}
	}
}
