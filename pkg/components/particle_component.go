package components

import (
	"image/color"

	"github.com/tanema/gween"

	"github.com/gonewx/driftfx/internal/effect"
	"github.com/gonewx/driftfx/pkg/ecs"
	"github.com/gonewx/driftfx/pkg/types"
)

// ParticleComponent represents a single decorative particle in flight.
// It stores all runtime state for the particle: its shape and color draw,
// the resolved motion endpoints, and the tween programs driving position
// progress and the opacity envelope.
//
// Particles are created by the spawn step and removed by the particle system
// when their flight completes (or earlier, by cap eviction / owner teardown).
//
// This is a pure data component following ECS principles - it contains no methods.
type ParticleComponent struct {
	// Shape draw results (出生时抽取，飞行期间不变)
	Shape       types.ShapeKind
	Size        float64    // base dimension in logical px (radius for circles)
	Color       color.RGBA // fill color
	BaseOpacity float64    // policy-derived base opacity (0-1)

	// Current visual state (每帧由粒子系统写入)
	Alpha    float64 // BaseOpacity × envelope, 0-1
	Scale    float64 // scale multiplier (1.0 = base size)
	Rotation float64 // current rotation in degrees

	// Rotation (旋转, 角度/秒)
	RotationSpeed float64 // spin delta spread over the full flight

	// Motion endpoints (逻辑画布坐标)
	StartX, StartY float64
	EndX, EndY     float64

	// Lifecycle (生命周期, 秒)
	Age      float64
	Duration float64

	// Tween programs (由运动评估器在出生时构建)
	Progress  *gween.Tween    // positional progress 0→1 with the variant easing
	AlphaEnv  *gween.Sequence // fade-in → hold → fade-out envelope
	AlphaDone bool            // envelope finished; Alpha holds its final value

	// Optional scale-over-life curve (可选缩放曲线)
	ScaleKeyframes []effect.Keyframe
	ScaleInterp    string

	// Rendering flags
	Additive bool // render in the additive glow pass

	// Owner emitter (用于回收和容量管理)
	Emitter ecs.EntityID
}
