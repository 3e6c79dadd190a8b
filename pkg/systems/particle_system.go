package systems

import (
	"math"

	"github.com/gonewx/driftfx/internal/effect"
	"github.com/gonewx/driftfx/pkg/components"
	"github.com/gonewx/driftfx/pkg/ecs"
	"github.com/gonewx/driftfx/pkg/effects"
)

// ParticleSystem drives every effect instance's lifecycle: it fires spawn
// events on each emitter's cadence, enforces population caps, advances the
// tween programs of particles in flight, and recycles particles whose flight
// completed.
//
// The system processes entities in two phases:
//  1. Update all emitters (burst and cadence spawning, drain detection)
//  2. Update all particles (progress, opacity envelope, rotation, scale)
//
// Follows ECS zero-coupling principle: communicates only through EntityManager.
type ParticleSystem struct {
	EntityManager *ecs.EntityManager
}

// NewParticleSystem creates a new ParticleSystem instance.
func NewParticleSystem(em *ecs.EntityManager) *ParticleSystem {
	return &ParticleSystem{EntityManager: em}
}

// Update processes all emitters and particles for the current frame.
// dt is the delta time in seconds since the last frame.
func (ps *ParticleSystem) Update(dt float64) {
	ps.updateEmitters(dt)
	ps.updateParticles(dt)
}

// updateEmitters advances spawn timing for every running emitter and fires
// the spawn events that came due this frame.
func (ps *ParticleSystem) updateEmitters(dt float64) {
	emitterEntities := ecs.GetEntitiesWith1[*components.EmitterComponent](ps.EntityManager)

	for _, emitterID := range emitterEntities {
		emitter, ok := ecs.GetComponent[*components.EmitterComponent](ps.EntityManager, emitterID)
		if !ok {
			continue
		}

		// Drop recycled particles from the active list first, so cap checks
		// below see the real population.
		ps.cleanupDestroyedParticles(emitter)

		if !emitter.Running {
			continue
		}

		emitter.Age += dt
		spec := emitter.Spec

		// Initial burst: fire the staggered particles that came due.
		// 零间隔时整个爆发在同一帧完成。
		for emitter.BurstRemaining > 0 && emitter.Age >= emitter.NextBurstTime {
			ps.spawnEvent(emitterID, emitter)
			emitter.BurstRemaining--
			emitter.NextBurstTime = emitter.Age + spec.BurstStagger.Draw()/1000.0
		}

		// Continuous cadence: first event one interval after start, then one
		// per drawn interval. The interval re-rolls every event, which is
		// what gives irregular cadences their jitter.
		if !spec.SpawnInterval.IsZero() {
			if emitter.NextSpawnTime == 0 {
				emitter.NextSpawnTime = emitter.Age + spec.SpawnInterval.Draw()/1000.0
			}
			spawned := 0
			for emitter.Age >= emitter.NextSpawnTime {
				ps.spawnEvent(emitterID, emitter)
				emitter.NextSpawnTime += spec.SpawnInterval.Draw() / 1000.0

				// Safety check to avoid infinite loop when the interval
				// draws 0 or the frame lagged far behind.
				spawned++
				if spawned > spec.MaxParticles {
					emitter.NextSpawnTime = emitter.Age + spec.SpawnInterval.Draw()/1000.0
					break
				}
			}
		} else if emitter.BurstRemaining == 0 && len(emitter.ActiveParticles) == 0 {
			// Burst-only emitter with nothing left in flight: it has drained.
			emitter.Running = false
			if emitter.OnDrained != nil {
				emitter.OnDrained()
			}
		}
	}
}

// cleanupDestroyedParticles removes dead particle IDs from the emitter's
// active list, preserving birth order for FIFO eviction.
func (ps *ParticleSystem) cleanupDestroyedParticles(emitter *components.EmitterComponent) {
	alive := make([]ecs.EntityID, 0, len(emitter.ActiveParticles))
	for _, particleID := range emitter.ActiveParticles {
		if ecs.HasComponent[*components.ParticleComponent](ps.EntityManager, particleID) {
			alive = append(alive, particleID)
		}
	}
	emitter.ActiveParticles = alive
}

// spawnEvent fires one spawn event: a single particle for beam and fountain
// geometries, one particle per ray for radial geometry. All radial particles
// of one event share a single origin draw.
func (ps *ParticleSystem) spawnEvent(emitterID ecs.EntityID, emitter *components.EmitterComponent) {
	spec := emitter.Spec
	originX, originY := effects.SpawnOrigin(spec, emitter.Region)

	if spec.Geometry == effect.GeometryRadial {
		for _, ray := range spec.Rays {
			ps.spawnOne(emitterID, emitter, originX, originY, ray.Angle)
		}
		return
	}
	ps.spawnOne(emitterID, emitter, originX, originY, spec.Angle.Draw())
}

// spawnOne creates a single particle at (x, y) flying along angleDeg,
// enforcing the emitter's population cap first.
func (ps *ParticleSystem) spawnOne(emitterID ecs.EntityID, emitter *components.EmitterComponent, x, y, angleDeg float64) {
	limit := emitterCapacity(emitter)
	if len(emitter.ActiveParticles) >= limit {
		if emitter.Spec.CapPolicy != effect.CapPolicyEvictOldest {
			return // skip 策略：静默丢弃本次生成
		}
		ps.evictOldest(emitter, limit)
	}

	proto := effects.NewParticleProto(emitter.Spec)
	motion := effects.NewMotion(emitter.Spec, x, y, angleDeg)

	scale := 1.0
	if len(emitter.Spec.ScaleOverLife) > 0 {
		scale = effect.EvaluateKeyframes(emitter.Spec.ScaleOverLife, 0, emitter.Spec.ScaleInterp)
	}

	particleID := ps.EntityManager.CreateEntity()
	ecs.AddComponent(ps.EntityManager, particleID, &components.PositionComponent{X: x, Y: y})
	ecs.AddComponent(ps.EntityManager, particleID, &components.ParticleComponent{
		Shape:          proto.Shape,
		Size:           proto.Size,
		Color:          proto.Color,
		BaseOpacity:    proto.BaseOpacity,
		Scale:          scale,
		Rotation:       proto.Rotation,
		RotationSpeed:  motion.RotationSpeed,
		StartX:         x,
		StartY:         y,
		EndX:           motion.EndX,
		EndY:           motion.EndY,
		Duration:       motion.Duration,
		Progress:       motion.Progress,
		AlphaEnv:       motion.AlphaEnv,
		ScaleKeyframes: emitter.Spec.ScaleOverLife,
		ScaleInterp:    emitter.Spec.ScaleInterp,
		Additive:       emitter.Spec.Additive,
		Emitter:        emitterID,
	})

	emitter.ActiveParticles = append(emitter.ActiveParticles, particleID)
	emitter.TotalLaunched++
}

// evictOldest destroys particles from the front of the active list (oldest
// first) until one slot is free. Evicted particles do not fire the owner's
// completion callback.
func (ps *ParticleSystem) evictOldest(emitter *components.EmitterComponent, limit int) {
	for len(emitter.ActiveParticles) >= limit && len(emitter.ActiveParticles) > 0 {
		oldest := emitter.ActiveParticles[0]
		emitter.ActiveParticles = emitter.ActiveParticles[1:]
		ps.EntityManager.DestroyEntity(oldest)
	}
}

// emitterCapacity returns the effective particle cap after the density
// setting is applied. 至少保留 1，避免低密度档把效果完全关掉。
func emitterCapacity(emitter *components.EmitterComponent) int {
	scale := emitter.DensityScale
	if scale <= 0 {
		scale = 1
	}
	limit := int(math.Round(float64(emitter.Spec.MaxParticles) * scale))
	if limit < 1 {
		limit = 1
	}
	return limit
}

// updateParticles advances every particle in flight and recycles the ones
// whose lifetime expired.
func (ps *ParticleSystem) updateParticles(dt float64) {
	particleEntities := ecs.GetEntitiesWith2[
		*components.ParticleComponent,
		*components.PositionComponent,
	](ps.EntityManager)

	for _, particleID := range particleEntities {
		particle, ok := ecs.GetComponent[*components.ParticleComponent](ps.EntityManager, particleID)
		if !ok {
			continue
		}
		position, ok := ecs.GetComponent[*components.PositionComponent](ps.EntityManager, particleID)
		if !ok {
			continue
		}

		particle.Age += dt
		if particle.Age >= particle.Duration {
			ps.finishParticle(particleID, particle)
			continue
		}

		// Positional progress: interpolate start→end on the eased tween.
		t, _ := particle.Progress.Update(float32(dt))
		position.X = particle.StartX + (particle.EndX-particle.StartX)*float64(t)
		position.Y = particle.StartY + (particle.EndY-particle.StartY)*float64(t)

		// Opacity envelope. Once the sequence completes the final value is
		// held for the rest of the flight (渐隐提前量窗口内保持 0)。
		if !particle.AlphaDone && particle.AlphaEnv != nil {
			value, _, done := particle.AlphaEnv.Update(float32(dt))
			particle.Alpha = float64(value)
			particle.AlphaDone = done
		}

		particle.Rotation += particle.RotationSpeed * dt

		if len(particle.ScaleKeyframes) > 0 {
			lifeT := particle.Age / particle.Duration
			particle.Scale = effect.EvaluateKeyframes(particle.ScaleKeyframes, lifeT, particle.ScaleInterp)
		}
	}
}

// finishParticle recycles a particle whose flight completed naturally and
// notifies the owning effect instance, if it asked.
func (ps *ParticleSystem) finishParticle(particleID ecs.EntityID, particle *components.ParticleComponent) {
	ps.EntityManager.DestroyEntity(particleID)

	emitter, ok := ecs.GetComponent[*components.EmitterComponent](ps.EntityManager, particle.Emitter)
	if !ok {
		return
	}
	if emitter.OnParticleDone != nil {
		emitter.OnParticleDone(particleID)
	}
}
