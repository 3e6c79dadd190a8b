package scenes

import (
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"

	"github.com/gonewx/driftfx/internal/effect"
	"github.com/gonewx/driftfx/pkg/config"
	"github.com/gonewx/driftfx/pkg/ecs"
	"github.com/gonewx/driftfx/pkg/effects"
	"github.com/gonewx/driftfx/pkg/game"
	"github.com/gonewx/driftfx/pkg/modules"
	"github.com/gonewx/driftfx/pkg/systems"
	"github.com/gonewx/driftfx/pkg/types"
	"github.com/gonewx/driftfx/pkg/utils"
)

const (
	// 面板内边距与标题排版
	panelPadX        = 28
	panelPadY        = 16
	titleOffsetY     = 64 // 标题基线相对面板顶部的偏移
	titleFontSize    = 28.0
	underlineOffsetY = 84  // 描边动画相对面板顶部的偏移
	underlineLength  = 200 // 描边总长（像素）

	// 键盘滚动速度（像素/秒），滚轮速度来自设置
	keyScrollSpeed = 420
)

// ShowcaseScene 滚动展示页
//
// 一个纵向排列的面板序列，每个面板承载一个效果实例和可选装饰。
// 面板进入视口时效果启动、标题逐字显示；离开视口时整体销毁，
// 再次进入会重新启动（与滚动触发的生命周期语义一致）。
type ShowcaseScene struct {
	em       *ecs.EntityManager
	settings *game.SettingsManager
	library  *game.EffectLibrary
	cfg      *config.ShowcaseConfig

	stage    *effects.Stage
	registry *effects.Registry

	particleSystem *systems.ParticleSystem
	decorSystem    *systems.DecorSystem
	renderSystem   *systems.RenderSystem

	settingsPanel *modules.SettingsPanelModule

	splitter   effects.CaptionSplitter
	fontSource *text.GoTextFaceSource

	panels []*showcasePanel
	camY   float64
	viewW  int
	viewH  int

	missingLogged map[string]bool // 已经警告过的未知效果名
}

// showcasePanel 单个面板的运行态
type showcasePanel struct {
	cfg     config.PanelConfig
	top     float64
	height  float64
	visible bool

	manager *effects.Manager   // 当前效果实例，面板不可见时为 nil
	decor   []ecs.EntityID     // 标题/描边/环绕装饰实体
	handles []*effects.Handle  // 装饰完成句柄，销毁时取消
}

// NewShowcaseScene 创建展示页场景
//
// 参数:
//   - em: 实体管理器
//   - settings: 设置管理器
//   - library: 效果库
//   - cfg: 展示页配置
//   - fontSource: 标题字体源，可为 nil（无字体时标题不显示）
func NewShowcaseScene(
	em *ecs.EntityManager,
	settings *game.SettingsManager,
	library *game.EffectLibrary,
	cfg *config.ShowcaseConfig,
	fontSource *text.GoTextFaceSource,
) *ShowcaseScene {
	s := &ShowcaseScene{
		em:            em,
		settings:      settings,
		library:       library,
		cfg:           cfg,
		stage:         effects.NewStage(),
		registry:      effects.NewRegistry(),
		splitter:      utils.GraphemeSplitter{},
		fontSource:    fontSource,
		viewW:         config.GameWindowWidth,
		viewH:         config.GameWindowHeight,
		missingLogged: make(map[string]bool),
	}

	s.particleSystem = systems.NewParticleSystem(em)
	s.decorSystem = systems.NewDecorSystem(em, fontSource)
	s.renderSystem = systems.NewRenderSystem(em)
	s.renderSystem.SetReducedMotion(settings.GetSettings().ReducedMotion)

	for _, p := range cfg.Panels {
		s.panels = append(s.panels, &showcasePanel{cfg: p})
	}
	s.layout()

	s.settingsPanel = modules.NewSettingsPanelModule(
		settings,
		fontSource,
		s.viewW, s.viewH,
		modules.SettingsPanelCallbacks{
			OnDensityApply: func(float64) { s.RefreshEffects() },
			OnReducedMotionApply: func(enabled bool) {
				s.renderSystem.SetReducedMotion(enabled)
				s.RefreshEffects()
			},
			OnFullscreenToggle: func(enabled bool) {
				ebiten.SetFullscreen(enabled)
			},
		},
	)

	log.Printf("[Showcase] %d panels, page height %d px", len(s.panels), cfg.TotalHeight())
	return s
}

// layout 重算面板纵向排布并更新舞台区域
// 面板高度来自配置；区域在面板内缩进一圈，让粒子不贴边
func (s *ShowcaseScene) layout() {
	y := 0.0
	for _, p := range s.panels {
		p.top = y
		p.height = float64(p.cfg.Height)
		s.stage.SetRegion(p.cfg.ID, types.Rect{
			X: panelPadX,
			Y: p.top + panelPadY,
			W: float64(s.viewW) - 2*panelPadX,
			H: p.height - 2*panelPadY,
		})
		y += p.height
	}
}

// Relayout 视口尺寸变化后的整体重排
// 拆掉可见面板，按新尺寸重算区域，下一帧的可见性扫描会重新启动它们
func (s *ShowcaseScene) Relayout(w, h int) {
	for _, p := range s.panels {
		if p.visible {
			s.teardownPanel(p)
			p.visible = false
		}
	}

	s.viewW = w
	s.viewH = h
	s.layout()
	s.clampScroll()
	s.settingsPanel.SetWindowSize(w, h)
	log.Printf("[Showcase] Relayout to %dx%d", w, h)
}

// RefreshEffects 重启所有可见面板的效果实例
// 密度或降低动态设置变化后调用，让新参数立即生效
func (s *ShowcaseScene) RefreshEffects() {
	for _, p := range s.panels {
		if p.visible {
			s.teardownPanel(p)
			p.visible = false
		}
	}
	// 下一帧的可见性扫描按新设置重建
}

// maxScroll 返回当前视口下的滚动上限
func (s *ShowcaseScene) maxScroll() float64 {
	max := float64(s.cfg.TotalHeight() - s.viewH)
	if max < 0 {
		return 0
	}
	return max
}

func (s *ShowcaseScene) clampScroll() {
	if s.camY < 0 {
		s.camY = 0
	}
	if max := s.maxScroll(); s.camY > max {
		s.camY = max
	}
}

// Update 推进场景：输入、可见性扫描、各系统、实体清理
func (s *ShowcaseScene) Update(deltaTime float64) {
	if s.settingsPanel.Visible() {
		s.settingsPanel.Update(deltaTime)
	} else {
		s.handleInput(deltaTime)
	}

	s.updateVisibility()
	s.particleSystem.Update(deltaTime)
	s.decorSystem.Update(deltaTime)
	s.em.RemoveMarkedEntities()
}

// handleInput 处理滚动与快捷键
func (s *ShowcaseScene) handleInput(deltaTime float64) {
	// 滚轮
	_, wheelY := ebiten.Wheel()
	if wheelY != 0 {
		s.camY -= wheelY * s.settings.GetSettings().ScrollSpeed
	}

	// 按住方向键连续滚动
	if ebiten.IsKeyPressed(ebiten.KeyDown) {
		s.camY += keyScrollSpeed * deltaTime
	}
	if ebiten.IsKeyPressed(ebiten.KeyUp) {
		s.camY -= keyScrollSpeed * deltaTime
	}

	// 翻页与首尾跳转
	if inpututil.IsKeyJustPressed(ebiten.KeyPageDown) {
		s.camY += float64(s.viewH)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyPageUp) {
		s.camY -= float64(s.viewH)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyHome) {
		s.camY = 0
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEnd) {
		s.camY = s.maxScroll()
	}

	s.clampScroll()

	// F3 调试信息开关
	if inpututil.IsKeyJustPressed(ebiten.KeyF3) {
		enabled := !s.settings.GetSettings().ShowDebugOverlay
		s.settings.SetShowDebugOverlay(enabled)
		log.Printf("[Showcase] Debug overlay: %v", enabled)
	}

	// S 打开设置面板
	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		s.settingsPanel.Show()
	}
}

// updateVisibility 扫描面板可见性，启动新进入视口的、销毁离开的
func (s *ShowcaseScene) updateVisibility() {
	viewTop := s.camY
	viewBottom := s.camY + float64(s.viewH)

	for _, p := range s.panels {
		nowVisible := p.top < viewBottom && p.top+p.height > viewTop
		if nowVisible && !p.visible {
			s.startPanel(p)
		} else if !nowVisible && p.visible {
			s.teardownPanel(p)
		}
		p.visible = nowVisible
	}
}

// startPanel 面板进入视口：启动效果实例并铺设装饰
func (s *ShowcaseScene) startPanel(p *showcasePanel) {
	accent, _ := effect.ParseHexColor(p.cfg.Accent) // 配置加载时已校验

	// 标题逐字显示
	if p.cfg.Title != "" && s.fontSource != nil {
		id, handle := effects.NewReveal(s.em, s.splitter, p.cfg.Title, effects.RevealOptions{
			X:        panelPadX + 8,
			Y:        p.top + titleOffsetY,
			FontSize: titleFontSize,
		})
		p.decor = append(p.decor, id)
		p.handles = append(p.handles, handle)
	}

	// 标题下的描边动画，尾端微微上挑
	if p.cfg.Underline {
		x0 := float64(panelPadX + 8)
		y0 := p.top + underlineOffsetY
		points := []types.Point{
			{X: x0, Y: y0},
			{X: x0 + underlineLength*0.85, Y: y0},
			{X: x0 + underlineLength, Y: y0 - 7},
		}
		id, handle := effects.NewStroke(s.em, points, 3, accent, 0.9)
		p.decor = append(p.decor, id)
		p.handles = append(p.handles, handle)
	}

	// 面板中心的环绕光点
	if p.cfg.Orbit {
		reduced := s.settings.GetSettings().ReducedMotion
		id := effects.NewOrbit(s.em, float64(s.viewW)/2, p.top+p.height/2, effects.OrbitOptions{
			Color:    accent,
			Additive: !reduced,
		})
		p.decor = append(p.decor, id)
	}

	// 效果实例
	if p.cfg.Effect != "" {
		spec, ok := s.library.Get(p.cfg.Effect)
		if !ok {
			if !s.missingLogged[p.cfg.Effect] {
				log.Printf("[Showcase] Unknown effect %q in panel %q (skipped)", p.cfg.Effect, p.cfg.ID)
				s.missingLogged[p.cfg.Effect] = true
			}
			return
		}
		p.manager = effects.NewManager(s.em, s.stage, spec, effects.ManagerOptions{
			RegionID:     p.cfg.ID,
			DensityScale: s.settings.GetSettings().EffectiveDensity(),
			Registry:     s.registry,
		})
		p.manager.Start()
	}
}

// teardownPanel 面板离开视口：销毁效果实例与装饰
func (s *ShowcaseScene) teardownPanel(p *showcasePanel) {
	if p.manager != nil {
		p.manager.Destroy()
		p.manager = nil
	}
	for _, h := range p.handles {
		h.Cancel()
	}
	for _, id := range p.decor {
		s.em.DestroyEntity(id)
	}
	p.handles = nil
	p.decor = nil
}

// SaveOnExit 退出时保存设置
func (s *ShowcaseScene) SaveOnExit() bool {
	if err := s.settings.Save(); err != nil {
		log.Printf("[Showcase] Failed to save settings on exit: %v", err)
		return false
	}
	return true
}
