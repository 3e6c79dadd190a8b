package scenes

import (
	"testing"

	"github.com/gonewx/driftfx/pkg/config"
	"github.com/gonewx/driftfx/pkg/ecs"
	"github.com/gonewx/driftfx/pkg/game"
)

const testEffectDoc = `
name: sparkle
geometry: fountain
initialBurst: 3
maxParticles: 10
originX: "0.5"
originY: "1"
angle: "[80 100]"
distance: "[40 60]"
duration: "[1 2]"
shapes: "circle:1"
size: "[2 4]"
opacityPolicy: colorTable
colors: "#ffffff@1:1"
`

const testShowcaseYAML = `
title: Test Page
panels:
  - id: intro
    title: Drift FX
    height: 400
    underline: true
    orbit: true
  - id: sparkle-panel
    title: Sparkle
    effect: sparkle
    height: 400
  - id: tail
    effect: sparkle
    height: 400
  - id: ghost
    effect: no-such-effect
    height: 400
`

func newTestScene(t *testing.T) *ShowcaseScene {
	t.Helper()

	settings, err := game.NewSettingsManager(nil)
	if err != nil {
		t.Fatalf("NewSettingsManager() error: %v", err)
	}

	library := game.NewEffectLibrary()
	if loaded := library.AddDocuments("test", []byte(testEffectDoc)); loaded != 1 {
		t.Fatalf("effect library: loaded %d, want 1", loaded)
	}

	cfg, err := config.ParseShowcaseConfig([]byte(testShowcaseYAML))
	if err != nil {
		t.Fatalf("ParseShowcaseConfig() error: %v", err)
	}

	em := ecs.NewEntityManager()
	return NewShowcaseScene(em, settings, library, cfg, nil)
}

// step 推进一帧（可见性扫描 + 系统更新 + 实体清理），绕过输入处理
func step(s *ShowcaseScene, dt float64) {
	s.updateVisibility()
	s.particleSystem.Update(dt)
	s.decorSystem.Update(dt)
	s.em.RemoveMarkedEntities()
}

// TestShowcaseLayout 面板纵向排布与舞台区域
func TestShowcaseLayout(t *testing.T) {
	s := newTestScene(t)

	if len(s.panels) != 4 {
		t.Fatalf("panels: got %d, want 4", len(s.panels))
	}

	wantTops := []float64{0, 400, 800, 1200}
	for i, p := range s.panels {
		if p.top != wantTops[i] {
			t.Errorf("panel %d top: got %v, want %v", i, p.top, wantTops[i])
		}
	}

	region, ok := s.stage.Region("sparkle-panel")
	if !ok {
		t.Fatal("stage region sparkle-panel missing")
	}
	if region.Y != 400+panelPadY {
		t.Errorf("region Y: got %v, want %v", region.Y, 400+panelPadY)
	}
	if region.W != float64(config.GameWindowWidth)-2*panelPadX {
		t.Errorf("region W: got %v", region.W)
	}
}

// TestShowcaseVisibilityStartsTopPanels 初始视口只启动顶部面板
func TestShowcaseVisibilityStartsTopPanels(t *testing.T) {
	s := newTestScene(t)
	step(s, 1.0/60.0)

	// 视口 600px：面板 0 (0-400) 和 1 (400-800) 可见，2、3 不可见
	if !s.panels[0].visible || !s.panels[1].visible {
		t.Error("top two panels should be visible at scroll 0")
	}
	if s.panels[2].visible || s.panels[3].visible {
		t.Error("offscreen panels should not be visible at scroll 0")
	}

	// 面板 1 的效果实例已启动
	if s.panels[1].manager == nil {
		t.Fatal("visible effect panel should have a manager")
	}
	if !s.panels[1].manager.Running() {
		t.Error("manager should be running after start")
	}

	// 纯装饰面板没有效果实例，但有装饰实体
	if s.panels[0].manager != nil {
		t.Error("decor-only panel should have no manager")
	}
	if len(s.panels[0].decor) == 0 {
		t.Error("intro panel should have decor entities")
	}

	// 不可见面板毫无痕迹
	if s.panels[2].manager != nil || len(s.panels[2].decor) != 0 {
		t.Error("offscreen panel should have nothing started")
	}
}

// TestShowcaseScrollDestroysAndRestarts 滚出销毁、滚回重启
func TestShowcaseScrollDestroysAndRestarts(t *testing.T) {
	s := newTestScene(t)
	step(s, 1.0/60.0)

	first := s.panels[1].manager
	if first == nil {
		t.Fatal("expected manager on panel 1")
	}

	// 滚到底：面板 0、1 离开视口
	s.camY = s.maxScroll()
	step(s, 1.0/60.0)

	if s.panels[1].visible {
		t.Error("panel 1 should be hidden at bottom scroll")
	}
	if s.panels[1].manager != nil {
		t.Error("hidden panel should have no manager")
	}
	if first.Running() {
		t.Error("destroyed manager should not be running")
	}
	if !s.panels[2].visible || !s.panels[3].visible {
		t.Error("bottom panels should be visible at bottom scroll")
	}

	// 滚回顶部：新实例重启
	s.camY = 0
	step(s, 1.0/60.0)

	second := s.panels[1].manager
	if second == nil {
		t.Fatal("panel 1 should restart when scrolled back")
	}
	if second == first {
		t.Error("restart should create a fresh manager instance")
	}
	if !second.Running() {
		t.Error("restarted manager should be running")
	}
}

// TestShowcaseUnknownEffect 未知效果名只警告，不创建实例
func TestShowcaseUnknownEffect(t *testing.T) {
	s := newTestScene(t)

	s.camY = s.maxScroll()
	step(s, 1.0/60.0)

	if !s.panels[3].visible {
		t.Fatal("ghost panel should be visible at bottom scroll")
	}
	if s.panels[3].manager != nil {
		t.Error("unknown effect should not create a manager")
	}
	if !s.missingLogged["no-such-effect"] {
		t.Error("unknown effect should be recorded as logged")
	}
}

// TestShowcaseRefreshEffects 设置变化后重建可见实例
func TestShowcaseRefreshEffects(t *testing.T) {
	s := newTestScene(t)
	step(s, 1.0/60.0)

	old := s.panels[1].manager
	s.RefreshEffects()

	if s.panels[1].manager != nil {
		t.Error("RefreshEffects should tear down visible managers")
	}

	step(s, 1.0/60.0)
	if s.panels[1].manager == nil || s.panels[1].manager == old {
		t.Error("next frame should rebuild a fresh manager")
	}
}

// TestShowcaseRelayout 视口变化后区域更新、滚动夹紧
func TestShowcaseRelayout(t *testing.T) {
	s := newTestScene(t)
	step(s, 1.0/60.0)

	s.camY = s.maxScroll() // 1600 - 600 = 1000
	s.Relayout(1024, 1200)

	region, ok := s.stage.Region("intro")
	if !ok {
		t.Fatal("region intro missing after relayout")
	}
	if region.W != 1024-2*panelPadX {
		t.Errorf("region W after relayout: got %v, want %v", region.W, 1024-2*panelPadX)
	}

	// 新视口 1200px → maxScroll = 1600-1200 = 400，camY 被夹紧
	if s.camY != 400 {
		t.Errorf("camY after relayout: got %v, want 400", s.camY)
	}
}

// TestShowcaseSaveOnExit 退出保存（降级模式下应成功）
func TestShowcaseSaveOnExit(t *testing.T) {
	s := newTestScene(t)
	if !s.SaveOnExit() {
		t.Error("SaveOnExit should succeed in degraded settings mode")
	}
}
