package components

import (
	"github.com/gonewx/driftfx/internal/effect"
	"github.com/gonewx/driftfx/pkg/ecs"
	"github.com/gonewx/driftfx/pkg/types"
)

// EmitterComponent represents one running effect instance: it owns the spawn
// cadence, the population cap and the active particle set for that instance.
// Each effect manager creates exactly one emitter entity on Start and removes
// it on Destroy.
//
// The particle system processes emitters each frame to spawn new particles
// and to recycle completed ones.
//
// This is a pure data component following ECS principles - it contains no methods.
type EmitterComponent struct {
	// Resolved effect definition (加载期解析完成，运行期只读)
	Spec *effect.Spec

	// Host region in logical canvas coordinates (布局重算后更新)
	Region types.Rect

	// Emitter state (发射器状态)
	Running bool    // Whether the emitter is currently spawning particles
	Age     float64 // Time the emitter has been running (seconds)

	// Spawn timing (发射时机)
	NextSpawnTime float64 // Emitter age at which the next cadence spawn fires

	// Initial burst state (初始爆发)
	BurstRemaining int     // Particles still to fire in the initial burst
	NextBurstTime  float64 // Emitter age for the next staggered burst particle

	// Particle tracking (粒子追踪, 按出生顺序)
	ActiveParticles []ecs.EntityID
	TotalLaunched   int

	// Density multiplier from settings (1.0 = normal)
	// 影响实际容量上限：cap = round(Spec.MaxParticles × DensityScale)，至少为 1。
	DensityScale float64

	// OnParticleDone, when set, is invoked after a particle finishes its
	// flight and has been recycled. Owners use it to resolve completion
	// handles; eviction and teardown do NOT trigger it.
	OnParticleDone func(ecs.EntityID)

	// OnDrained, when set, is invoked once when a burst-only emitter (no
	// spawn cadence) has fired its whole burst and the last particle has
	// finished. Looping emitters never drain.
	OnDrained func()
}
