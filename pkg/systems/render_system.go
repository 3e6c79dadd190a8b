package systems

import (
	"image/color"
	"math"
	"sort"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/gonewx/driftfx/pkg/components"
	"github.com/gonewx/driftfx/pkg/ecs"
	"github.com/gonewx/driftfx/pkg/effects"
	"github.com/gonewx/driftfx/pkg/types"
)

// offscreenMargin keeps particles drawing a little past the viewport edge so
// large rotated shapes don't pop at the boundary.
const offscreenMargin = 120

// additiveBlend accumulates source onto destination, used for the glow pass.
var additiveBlend = ebiten.Blend{
	BlendFactorSourceRGB:        ebiten.BlendFactorOne,
	BlendFactorDestinationRGB:   ebiten.BlendFactorOne,
	BlendOperationRGB:           ebiten.BlendOperationAdd,
	BlendFactorSourceAlpha:      ebiten.BlendFactorOne,
	BlendFactorDestinationAlpha: ebiten.BlendFactorOne,
	BlendOperationAlpha:         ebiten.BlendOperationAdd,
}

// RenderSystem draws every particle as a filled vector shape. Circles go
// through the dedicated circle path; the polygonal variants are filled as
// triangulated paths against a 1×1 white texture.
type RenderSystem struct {
	entityManager *ecs.EntityManager

	// 1×1 white source image for DrawTriangles path fills
	whiteImage *ebiten.Image

	// Reusable vertex buffers (保留容量，避免每帧分配)
	vertices []ebiten.Vertex
	indices  []uint16

	// 降低动态模式：发光粒子并入普通混合通道
	reducedMotion bool
}

// NewRenderSystem creates a new RenderSystem instance.
func NewRenderSystem(em *ecs.EntityManager) *RenderSystem {
	white := ebiten.NewImage(1, 1)
	white.Fill(color.White)
	return &RenderSystem{
		entityManager: em,
		whiteImage:    white,
	}
}

// Draw renders all particles. camY is the scroll offset of the showcase page
// in logical pixels. Normal-blend particles draw first, the additive glow
// pass layers on top.
func (s *RenderSystem) Draw(screen *ebiten.Image, camY float64) {
	entities := ecs.GetEntitiesWith2[
		*components.ParticleComponent,
		*components.PositionComponent,
	](s.entityManager)
	if len(entities) == 0 {
		return
	}

	// 按出生顺序绘制，避免 map 遍历顺序造成的层级抖动
	sort.Slice(entities, func(i, j int) bool { return entities[i] < entities[j] })

	s.drawPass(screen, entities, camY, false)
	s.drawPass(screen, entities, camY, true)
}

// SetReducedMotion toggles the accessibility mode that folds the additive
// glow pass into normal blending.
func (s *RenderSystem) SetReducedMotion(enabled bool) {
	s.reducedMotion = enabled
}

func (s *RenderSystem) drawPass(screen *ebiten.Image, entities []ecs.EntityID, camY float64, additive bool) {
	screenH := float64(screen.Bounds().Dy())

	for _, id := range entities {
		particle, ok := ecs.GetComponent[*components.ParticleComponent](s.entityManager, id)
		if !ok {
			continue
		}
		if (particle.Additive && !s.reducedMotion) != additive {
			continue
		}
		position, ok := ecs.GetComponent[*components.PositionComponent](s.entityManager, id)
		if !ok {
			continue
		}

		drawY := position.Y - camY
		if drawY < -offscreenMargin || drawY > screenH+offscreenMargin {
			continue
		}

		alpha := particle.Alpha * particle.BaseOpacity
		size := particle.Size * particle.Scale
		if alpha <= 0 || size <= 0 {
			continue
		}
		clr := fadeColor(particle.Color, alpha)

		// Circles without glow take the cheaper dedicated draw call.
		if particle.Shape == types.ShapeCircle && !additive {
			vector.DrawFilledCircle(screen, float32(position.X), float32(drawY), float32(size), clr, true)
			continue
		}

		outline := effects.ShapeOutline(particle.Shape, size)
		if outline == nil {
			s.fillCircle(screen, position.X, drawY, size, clr, additive)
			continue
		}
		rotated := effects.RotateOutline(outline, particle.Rotation, position.X, drawY)
		s.fillPolygon(screen, rotated, clr, additive)
	}
}

// fillPolygon fills a closed outline with a solid color.
func (s *RenderSystem) fillPolygon(screen *ebiten.Image, outline []types.Point, clr color.RGBA, additive bool) {
	if len(outline) < 3 {
		return
	}
	path := vector.Path{}
	path.MoveTo(float32(outline[0].X), float32(outline[0].Y))
	for _, p := range outline[1:] {
		path.LineTo(float32(p.X), float32(p.Y))
	}
	path.Close()
	s.fillPath(screen, &path, clr, additive)
}

// fillCircle fills a circle through the path pipeline, needed when the
// circle participates in the additive pass.
func (s *RenderSystem) fillCircle(screen *ebiten.Image, x, y, radius float64, clr color.RGBA, additive bool) {
	path := vector.Path{}
	path.Arc(float32(x), float32(y), float32(radius), 0, 2*math.Pi, vector.Clockwise)
	s.fillPath(screen, &path, clr, additive)
}

func (s *RenderSystem) fillPath(screen *ebiten.Image, path *vector.Path, clr color.RGBA, additive bool) {
	s.vertices, s.indices = path.AppendVerticesAndIndicesForFilling(s.vertices[:0], s.indices[:0])

	cr := float32(clr.R) / 255
	cg := float32(clr.G) / 255
	cb := float32(clr.B) / 255
	ca := float32(clr.A) / 255
	for i := range s.vertices {
		s.vertices[i].ColorR = cr
		s.vertices[i].ColorG = cg
		s.vertices[i].ColorB = cb
		s.vertices[i].ColorA = ca
	}

	opts := &ebiten.DrawTrianglesOptions{AntiAlias: true}
	if additive {
		opts.Blend = additiveBlend
	}
	screen.DrawTriangles(s.vertices, s.indices, s.whiteImage, opts)
}

// fillCircleAdditive is the standalone glow-circle helper for decorations
// outside the particle batch path. white must be a 1×1 white texture.
func fillCircleAdditive(screen, white *ebiten.Image, x, y, radius float64, clr color.RGBA) {
	path := vector.Path{}
	path.Arc(float32(x), float32(y), float32(radius), 0, 2*math.Pi, vector.Clockwise)
	vs, is := path.AppendVerticesAndIndicesForFilling(nil, nil)
	for i := range vs {
		vs[i].ColorR = float32(clr.R) / 255
		vs[i].ColorG = float32(clr.G) / 255
		vs[i].ColorB = float32(clr.B) / 255
		vs[i].ColorA = float32(clr.A) / 255
	}
	screen.DrawTriangles(vs, is, white, &ebiten.DrawTrianglesOptions{
		AntiAlias: true,
		Blend:     additiveBlend,
	})
}

// fadeColor scales a premultiplied color by alpha, clamped to [0,1].
func fadeColor(c color.RGBA, alpha float64) color.RGBA {
	if alpha <= 0 {
		return color.RGBA{}
	}
	if alpha > 1 {
		alpha = 1
	}
	return color.RGBA{
		R: uint8(float64(c.R) * alpha),
		G: uint8(float64(c.G) * alpha),
		B: uint8(float64(c.B) * alpha),
		A: uint8(float64(c.A) * alpha),
	}
}
