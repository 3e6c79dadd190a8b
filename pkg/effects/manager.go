package effects

import (
	"log"

	"github.com/gonewx/driftfx/internal/effect"
	"github.com/gonewx/driftfx/pkg/components"
	"github.com/gonewx/driftfx/pkg/ecs"
)

// managerState tracks a manager through its one-way lifecycle.
type managerState int

const (
	managerNew managerState = iota
	managerRunning
	managerDestroyed
)

// ManagerOptions configures one effect instance.
type ManagerOptions struct {
	// RegionID names the stage region the effect attaches to.
	RegionID string

	// DensityScale multiplies the effect's particle budget (0 means 1.0).
	// 由设置面板的粒子密度档位传入。
	DensityScale float64

	// Registry, when set, receives the manager for debug overlay listing.
	Registry *Registry
}

// Manager owns one effect instance on one stage region: it creates the
// emitter entity on Start, tears everything down on Destroy, and exposes a
// completion handle for burst effects. All state lives on the manager or in
// the entity store; there are no package globals, so any number of instances
// can run side by side.
type Manager struct {
	em    *ecs.EntityManager
	stage *Stage
	spec  *effect.Spec
	opts  ManagerOptions

	state     managerState
	inert     bool // 区域缺失：所有操作降级为空操作
	emitterID ecs.EntityID
	done      *Handle
}

// NewManager prepares an effect instance bound to a stage region. A missing
// region logs a warning and yields an inert manager whose operations all
// no-op, so one bad panel id cannot take the showcase down.
func NewManager(em *ecs.EntityManager, stage *Stage, spec *effect.Spec, opts ManagerOptions) *Manager {
	m := &Manager{
		em:    em,
		stage: stage,
		spec:  spec,
		opts:  opts,
		done:  NewHandle(),
	}
	if opts.DensityScale <= 0 {
		m.opts.DensityScale = 1.0
	}
	if _, ok := stage.Region(opts.RegionID); !ok {
		log.Printf("[EffectManager] Region %q not found for effect %q, instance disabled", opts.RegionID, spec.Name)
		m.inert = true
	}
	return m
}

// Start creates the emitter entity and begins spawning. Starting twice, or
// starting after Destroy, logs and does nothing.
func (m *Manager) Start() {
	if m.inert {
		return
	}
	switch m.state {
	case managerRunning:
		log.Printf("[EffectManager] Effect %q already started, ignoring", m.spec.Name)
		return
	case managerDestroyed:
		log.Printf("[EffectManager] Effect %q already destroyed, cannot start", m.spec.Name)
		return
	}

	region, _ := m.stage.Region(m.opts.RegionID)
	m.emitterID = m.em.CreateEntity()
	ecs.AddComponent(m.em, m.emitterID, &components.EmitterComponent{
		Spec:            m.spec,
		Region:          region,
		Running:         true,
		BurstRemaining:  m.spec.InitialBurst,
		ActiveParticles: make([]ecs.EntityID, 0, m.spec.MaxParticles),
		DensityScale:    m.opts.DensityScale,
		OnDrained:       m.done.Resolve,
	})
	m.state = managerRunning

	if m.opts.Registry != nil {
		m.opts.Registry.add(m)
	}
	log.Printf("[EffectManager] Started effect %q on region %q", m.spec.Name, m.opts.RegionID)
}

// Destroy stops spawning and removes the emitter and every particle it still
// owns. The completion handle is cancelled, so pending chains never fire.
// Safe to call at any point in the lifecycle, any number of times.
func (m *Manager) Destroy() {
	if m.inert || m.state == managerDestroyed {
		return
	}
	if m.state == managerRunning {
		if emitter, ok := ecs.GetComponent[*components.EmitterComponent](m.em, m.emitterID); ok {
			for _, id := range emitter.ActiveParticles {
				m.em.DestroyEntity(id)
			}
			emitter.Running = false
		}
		m.em.DestroyEntity(m.emitterID)
		if m.opts.Registry != nil {
			m.opts.Registry.remove(m)
		}
	}
	m.done.Cancel()
	m.state = managerDestroyed
	log.Printf("[EffectManager] Destroyed effect %q", m.spec.Name)
}

// Relayout re-reads the manager's region from the stage after a layout pass.
// Particles already in flight keep their drawn endpoints; only future spawns
// see the new geometry.
func (m *Manager) Relayout() {
	if m.inert || m.state != managerRunning {
		return
	}
	region, ok := m.stage.Region(m.opts.RegionID)
	if !ok {
		log.Printf("[EffectManager] Region %q vanished during relayout for effect %q", m.opts.RegionID, m.spec.Name)
		return
	}
	if emitter, ok := ecs.GetComponent[*components.EmitterComponent](m.em, m.emitterID); ok {
		emitter.Region = region
	}
}

// Completion returns the handle resolved when a burst-only effect drains.
// Looping effects never resolve it; Destroy cancels it.
func (m *Manager) Completion() *Handle {
	return m.done
}

// OnParticleDone registers a callback fired after each particle completes its
// natural flight. Evicted particles and teardown do not count.
func (m *Manager) OnParticleDone(fn func(ecs.EntityID)) {
	if m.inert || m.state != managerRunning {
		return
	}
	if emitter, ok := ecs.GetComponent[*components.EmitterComponent](m.em, m.emitterID); ok {
		emitter.OnParticleDone = fn
	}
}

// Running reports whether the manager is live (started, not yet destroyed).
func (m *Manager) Running() bool {
	return m.state == managerRunning
}

// ActiveCount returns the number of particles currently alive for this
// instance.
func (m *Manager) ActiveCount() int {
	if m.inert || m.state != managerRunning {
		return 0
	}
	emitter, ok := ecs.GetComponent[*components.EmitterComponent](m.em, m.emitterID)
	if !ok {
		return 0
	}
	return len(emitter.ActiveParticles)
}

// EffectName returns the effect definition name, for overlays and logs.
func (m *Manager) EffectName() string {
	return m.spec.Name
}

// RegionID returns the stage region this instance is bound to.
func (m *Manager) RegionID() string {
	return m.opts.RegionID
}

// TotalLaunched returns how many particles the instance has spawned since
// Start, including ones already recycled.
func (m *Manager) TotalLaunched() int {
	if m.inert || m.state != managerRunning {
		return 0
	}
	emitter, ok := ecs.GetComponent[*components.EmitterComponent](m.em, m.emitterID)
	if !ok {
		return 0
	}
	return emitter.TotalLaunched
}
