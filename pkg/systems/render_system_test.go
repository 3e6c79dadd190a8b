package systems

import (
	"image/color"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/gonewx/driftfx/pkg/components"
	"github.com/gonewx/driftfx/pkg/ecs"
	"github.com/gonewx/driftfx/pkg/types"
)

func addTestParticle(em *ecs.EntityManager, shape types.ShapeKind, x, y float64, additive bool) ecs.EntityID {
	id := em.CreateEntity()
	em.AddComponent(id, &components.PositionComponent{X: x, Y: y})
	em.AddComponent(id, &components.ParticleComponent{
		Shape:       shape,
		Size:        6,
		Color:       color.RGBA{R: 200, G: 220, B: 255, A: 255},
		BaseOpacity: 1,
		Alpha:       0.8,
		Scale:       1,
		Rotation:    30,
		Duration:    1,
		Additive:    additive,
	})
	return id
}

func TestRenderSystem_DrawAllShapeVariants(t *testing.T) {
	em := ecs.NewEntityManager()
	rs := NewRenderSystem(em)

	addTestParticle(em, types.ShapeCircle, 100, 100, false)
	addTestParticle(em, types.ShapeSquare, 150, 100, false)
	addTestParticle(em, types.ShapeStar, 200, 100, false)
	addTestParticle(em, types.ShapePolygon, 250, 100, false)
	addTestParticle(em, types.ShapeCircle, 300, 100, true) // 发光通道

	// Draw 应该不会崩溃
	screen := ebiten.NewImage(800, 600)
	rs.Draw(screen, 0)
	rs.Draw(screen, 150) // 滚动偏移下重绘
}

func TestRenderSystem_SkipsOffscreenAndInvisible(t *testing.T) {
	em := ecs.NewEntityManager()
	rs := NewRenderSystem(em)

	addTestParticle(em, types.ShapeCircle, 100, 5000, false) // 视口外
	dimID := addTestParticle(em, types.ShapeCircle, 100, 100, false)
	dim, _ := ecs.GetComponent[*components.ParticleComponent](em, dimID)
	dim.Alpha = 0 // 包络未开始，完全透明

	screen := ebiten.NewImage(800, 600)
	rs.Draw(screen, 0)
}

func TestRenderSystem_EmptyStore(t *testing.T) {
	em := ecs.NewEntityManager()
	rs := NewRenderSystem(em)
	screen := ebiten.NewImage(800, 600)
	rs.Draw(screen, 0)
}

func TestRenderSystem_ReducedMotionFoldsGlowPass(t *testing.T) {
	em := ecs.NewEntityManager()
	rs := NewRenderSystem(em)
	rs.SetReducedMotion(true)

	addTestParticle(em, types.ShapeStar, 120, 120, true)
	addTestParticle(em, types.ShapeCircle, 160, 120, true)

	screen := ebiten.NewImage(800, 600)
	rs.Draw(screen, 0)
}

func TestFadeColor(t *testing.T) {
	base := color.RGBA{R: 200, G: 100, B: 50, A: 255}
	tests := []struct {
		name  string
		alpha float64
		want  color.RGBA
	}{
		{"opaque", 1, color.RGBA{R: 200, G: 100, B: 50, A: 255}},
		{"half", 0.5, color.RGBA{R: 100, G: 50, B: 25, A: 127}},
		{"zero", 0, color.RGBA{}},
		{"negative clamps", -1, color.RGBA{}},
		{"over one clamps", 2, color.RGBA{R: 200, G: 100, B: 50, A: 255}},
	}
	for _, tt := range tests {
		if got := fadeColor(base, tt.alpha); got != tt.want {
			t.Errorf("%s: expected %v, got %v", tt.name, tt.want, got)
		}
	}
}
