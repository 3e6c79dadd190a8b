package effects

import (
	"testing"

	"github.com/gonewx/driftfx/internal/effect"
	"github.com/gonewx/driftfx/pkg/components"
	"github.com/gonewx/driftfx/pkg/ecs"
	"github.com/gonewx/driftfx/pkg/types"
)

// burstSpec resolves a small fountain definition through the real parsing
// pipeline, so manager tests exercise the same specs production uses.
func burstSpec(t *testing.T) *effect.Spec {
	t.Helper()
	cfg := &effect.EffectConfig{
		Name:          "test-burst",
		Geometry:      effect.GeometryFountain,
		InitialBurst:  3,
		MaxParticles:  8,
		OriginX:       "0.5",
		OriginY:       "1",
		Angle:         "[80 100]",
		Distance:      "[40 60]",
		Duration:      "[1 2]",
		Shapes:        "circle:1",
		Size:          "[2 4]",
		OpacityPolicy: effect.OpacityPolicyColorTable,
		Colors:        "#ffffff@1:1",
	}
	spec, err := cfg.Resolve()
	if err != nil {
		t.Fatalf("failed to resolve test spec: %v", err)
	}
	return spec
}

func testStage() *Stage {
	stage := NewStage()
	stage.SetRegion("panel-1", types.Rect{X: 0, Y: 0, W: 400, H: 300})
	return stage
}

func emitterCount(em *ecs.EntityManager) int {
	return len(ecs.GetEntitiesWith1[*components.EmitterComponent](em))
}

func TestNewManager_MissingRegionIsInert(t *testing.T) {
	em := ecs.NewEntityManager()
	m := NewManager(em, NewStage(), burstSpec(t), ManagerOptions{RegionID: "no-such-panel"})

	m.Start()
	if emitterCount(em) != 0 {
		t.Error("expected inert manager to create no emitter")
	}
	if m.Running() {
		t.Error("expected inert manager to not report running")
	}
	if m.ActiveCount() != 0 {
		t.Errorf("expected 0 active particles, got %d", m.ActiveCount())
	}
	m.Relayout()
	m.Destroy() // 不应 panic
}

func TestManager_StartCreatesOneEmitter(t *testing.T) {
	em := ecs.NewEntityManager()
	m := NewManager(em, testStage(), burstSpec(t), ManagerOptions{RegionID: "panel-1"})

	m.Start()
	if !m.Running() {
		t.Fatal("expected manager to be running after Start")
	}
	if got := emitterCount(em); got != 1 {
		t.Fatalf("expected 1 emitter entity, got %d", got)
	}

	m.Start() // 重复启动必须是无害的
	if got := emitterCount(em); got != 1 {
		t.Errorf("expected still 1 emitter after double start, got %d", got)
	}
}

func TestManager_StartSeedsEmitterState(t *testing.T) {
	em := ecs.NewEntityManager()
	m := NewManager(em, testStage(), burstSpec(t), ManagerOptions{RegionID: "panel-1", DensityScale: 0.5})
	m.Start()

	ids := ecs.GetEntitiesWith1[*components.EmitterComponent](em)
	if len(ids) != 1 {
		t.Fatalf("expected 1 emitter, got %d", len(ids))
	}
	emitter, _ := ecs.GetComponent[*components.EmitterComponent](em, ids[0])
	if !emitter.Running {
		t.Error("expected emitter to be running")
	}
	if emitter.BurstRemaining != 3 {
		t.Errorf("expected burst of 3, got %d", emitter.BurstRemaining)
	}
	if emitter.DensityScale != 0.5 {
		t.Errorf("expected density scale 0.5, got %v", emitter.DensityScale)
	}
	if emitter.Region.W != 400 || emitter.Region.H != 300 {
		t.Errorf("expected region 400x300, got %+v", emitter.Region)
	}
}

func TestManager_DestroyBeforeStart(t *testing.T) {
	em := ecs.NewEntityManager()
	m := NewManager(em, testStage(), burstSpec(t), ManagerOptions{RegionID: "panel-1"})

	m.Destroy()
	if !m.Completion().Cancelled() {
		t.Error("expected completion handle cancelled by destroy")
	}

	m.Start() // 销毁后不可复活
	if emitterCount(em) != 0 {
		t.Error("expected no emitter after destroy-then-start")
	}
	if m.Running() {
		t.Error("expected manager to stay destroyed")
	}
}

func TestManager_DestroyIsIdempotent(t *testing.T) {
	em := ecs.NewEntityManager()
	m := NewManager(em, testStage(), burstSpec(t), ManagerOptions{RegionID: "panel-1"})
	m.Start()

	m.Destroy()
	m.Destroy()
	em.RemoveMarkedEntities()

	if got := em.EntityCount(); got != 0 {
		t.Errorf("expected empty store after destroy, got %d entities", got)
	}
}

func TestManager_DestroyRemovesOwnedParticles(t *testing.T) {
	em := ecs.NewEntityManager()
	m := NewManager(em, testStage(), burstSpec(t), ManagerOptions{RegionID: "panel-1"})
	m.Start()

	ids := ecs.GetEntitiesWith1[*components.EmitterComponent](em)
	emitter, _ := ecs.GetComponent[*components.EmitterComponent](em, ids[0])
	for i := 0; i < 3; i++ {
		pid := em.CreateEntity()
		ecs.AddComponent(em, pid, &components.ParticleComponent{Emitter: ids[0]})
		emitter.ActiveParticles = append(emitter.ActiveParticles, pid)
	}

	m.Destroy()
	em.RemoveMarkedEntities()
	if got := em.EntityCount(); got != 0 {
		t.Errorf("expected particles destroyed with their manager, got %d entities", got)
	}
}

func TestManager_CompletionCancelledBeforeLateResolve(t *testing.T) {
	em := ecs.NewEntityManager()
	m := NewManager(em, testStage(), burstSpec(t), ManagerOptions{RegionID: "panel-1"})
	m.Start()

	fired := false
	m.Completion().OnDone(func() { fired = true })

	ids := ecs.GetEntitiesWith1[*components.EmitterComponent](em)
	emitter, _ := ecs.GetComponent[*components.EmitterComponent](em, ids[0])

	m.Destroy()
	// 拆除后残留的排空回调不得再触发完成链
	emitter.OnDrained()
	if fired {
		t.Error("expected no completion callback after destroy")
	}
	if !m.Completion().Cancelled() {
		t.Error("expected completion handle cancelled")
	}
}

func TestManager_Relayout(t *testing.T) {
	em := ecs.NewEntityManager()
	stage := testStage()
	m := NewManager(em, stage, burstSpec(t), ManagerOptions{RegionID: "panel-1"})
	m.Start()

	stage.SetRegion("panel-1", types.Rect{X: 50, Y: 60, W: 800, H: 600})
	m.Relayout()

	ids := ecs.GetEntitiesWith1[*components.EmitterComponent](em)
	emitter, _ := ecs.GetComponent[*components.EmitterComponent](em, ids[0])
	if emitter.Region.X != 50 || emitter.Region.W != 800 {
		t.Errorf("expected relayout to update region, got %+v", emitter.Region)
	}
}

func TestRegistry_TracksRunningManagers(t *testing.T) {
	em := ecs.NewEntityManager()
	stage := testStage()
	stage.SetRegion("panel-2", types.Rect{X: 0, Y: 300, W: 400, H: 300})
	registry := NewRegistry()

	m1 := NewManager(em, stage, burstSpec(t), ManagerOptions{RegionID: "panel-1", Registry: registry})
	m2 := NewManager(em, stage, burstSpec(t), ManagerOptions{RegionID: "panel-2", Registry: registry})
	m1.Start()
	m2.Start()

	stats := registry.Snapshot()
	if len(stats) != 2 {
		t.Fatalf("expected 2 instances in registry, got %d", len(stats))
	}
	if stats[0].Effect != "test-burst" || stats[0].Region != "panel-1" {
		t.Errorf("unexpected first stat: %+v", stats[0])
	}

	m1.Destroy()
	if got := len(registry.Snapshot()); got != 1 {
		t.Errorf("expected 1 instance after destroy, got %d", got)
	}
}
