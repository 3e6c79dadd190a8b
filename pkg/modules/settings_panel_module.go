package modules

import (
	"fmt"
	"image/color"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/gonewx/driftfx/pkg/game"
)

// SettingsPanelModule 设置面板模块
//
// 职责：
//   - 管理展示设置 UI（粒子密度、降低动态、滚动速度、全屏、调试信息）
//   - 键盘交互：上下选择、左右调值、回车切换、Esc 关闭
//   - 通过回调把设置变化通知给场景（组合优于继承）
//
// 面板关闭时自动持久化设置。
type SettingsPanelModule struct {
	settingsManager *game.SettingsManager

	visible  bool
	selected int // 当前高亮的行

	// UI 文字字体（可为 nil，降级为调试字体）
	titleFace *text.GoTextFace
	labelFace *text.GoTextFace

	// 回调函数（可选）
	onDensityApply       func(density float64) // 密度变化后应用回调
	onReducedMotionApply func(enabled bool)    // 降低动态切换回调
	onFullscreenToggle   func(enabled bool)    // 全屏切换回调
	onClose              func()                // 面板关闭回调

	// 屏幕尺寸
	windowWidth  int
	windowHeight int
}

// SettingsPanelCallbacks 设置面板回调函数集合
type SettingsPanelCallbacks struct {
	OnDensityApply       func(density float64) // 密度变化后应用回调（可选）
	OnReducedMotionApply func(enabled bool)    // 降低动态切换回调（可选）
	OnFullscreenToggle   func(enabled bool)    // 全屏切换回调（可选）
	OnClose              func()                // 面板关闭回调（可选）
}

// 面板行索引
const (
	rowDensity = iota
	rowReducedMotion
	rowScrollSpeed
	rowFullscreen
	rowDebugOverlay
	rowCount
)

// 调值步长
const (
	densityStep     = 0.05
	scrollSpeedStep = 8.0
)

// NewSettingsPanelModule 创建设置面板模块
//
// 参数:
//   - settingsManager: 设置管理器
//   - fontSource: UI 字体源，可为 nil（降级为调试字体）
//   - windowWidth, windowHeight: 窗口逻辑尺寸
//   - callbacks: 回调函数集合（可选字段留 nil）
func NewSettingsPanelModule(
	settingsManager *game.SettingsManager,
	fontSource *text.GoTextFaceSource,
	windowWidth, windowHeight int,
	callbacks SettingsPanelCallbacks,
) *SettingsPanelModule {
	m := &SettingsPanelModule{
		settingsManager:      settingsManager,
		windowWidth:          windowWidth,
		windowHeight:         windowHeight,
		onDensityApply:       callbacks.OnDensityApply,
		onReducedMotionApply: callbacks.OnReducedMotionApply,
		onFullscreenToggle:   callbacks.OnFullscreenToggle,
		onClose:              callbacks.OnClose,
	}

	if fontSource != nil {
		m.titleFace = &text.GoTextFace{Source: fontSource, Size: 22}
		m.labelFace = &text.GoTextFace{Source: fontSource, Size: 16}
	}

	return m
}

// Show 打开面板
func (m *SettingsPanelModule) Show() {
	m.visible = true
	m.selected = 0
}

// Hide 关闭面板并持久化设置
func (m *SettingsPanelModule) Hide() {
	m.visible = false
	if err := m.settingsManager.Save(); err != nil {
		log.Printf("[SettingsPanel] Failed to save settings: %v", err)
	}
	if m.onClose != nil {
		m.onClose()
	}
}

// Visible 返回面板是否打开
func (m *SettingsPanelModule) Visible() bool {
	return m.visible
}

// SetWindowSize 更新窗口尺寸（重排布局后调用）
func (m *SettingsPanelModule) SetWindowSize(w, h int) {
	m.windowWidth = w
	m.windowHeight = h
}

// Update 处理面板输入
func (m *SettingsPanelModule) Update(deltaTime float64) {
	if !m.visible {
		return
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyS) {
		m.Hide()
		return
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyDown) {
		m.selected = (m.selected + 1) % rowCount
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyUp) {
		m.selected = (m.selected + rowCount - 1) % rowCount
	}

	left := inpututil.IsKeyJustPressed(ebiten.KeyLeft)
	right := inpututil.IsKeyJustPressed(ebiten.KeyRight)
	enter := inpututil.IsKeyJustPressed(ebiten.KeyEnter) || inpututil.IsKeyJustPressed(ebiten.KeySpace)

	switch m.selected {
	case rowDensity:
		if left || right {
			s := m.settingsManager.GetSettings()
			delta := densityStep
			if left {
				delta = -densityStep
			}
			m.settingsManager.SetParticleDensity(s.ParticleDensity + delta)
			if m.onDensityApply != nil {
				m.onDensityApply(m.settingsManager.GetSettings().ParticleDensity)
			}
		}
	case rowReducedMotion:
		if left || right || enter {
			enabled := !m.settingsManager.GetSettings().ReducedMotion
			m.settingsManager.SetReducedMotion(enabled)
			if m.onReducedMotionApply != nil {
				m.onReducedMotionApply(enabled)
			}
		}
	case rowScrollSpeed:
		if left || right {
			s := m.settingsManager.GetSettings()
			delta := scrollSpeedStep
			if left {
				delta = -scrollSpeedStep
			}
			m.settingsManager.SetScrollSpeed(s.ScrollSpeed + delta)
		}
	case rowFullscreen:
		if left || right || enter {
			enabled := !m.settingsManager.GetSettings().Fullscreen
			m.settingsManager.SetFullscreen(enabled)
			if m.onFullscreenToggle != nil {
				m.onFullscreenToggle(enabled)
			}
		}
	case rowDebugOverlay:
		if left || right || enter {
			enabled := !m.settingsManager.GetSettings().ShowDebugOverlay
			m.settingsManager.SetShowDebugOverlay(enabled)
		}
	}
}

// 面板配色
var (
	panelDimColor    = color.RGBA{R: 0, G: 0, B: 0, A: 140}
	panelFillColor   = color.RGBA{R: 28, G: 31, B: 44, A: 245}
	panelBorderColor = color.RGBA{R: 96, G: 104, B: 132, A: 255}
	rowTextColor     = color.RGBA{R: 214, G: 218, B: 230, A: 255}
	rowHighlight     = color.RGBA{R: 255, G: 210, B: 127, A: 255}
	trackColor       = color.RGBA{R: 58, G: 64, B: 84, A: 255}
	fillColor        = color.RGBA{R: 159, G: 216, B: 255, A: 255}
)

// 面板布局
const (
	panelWidth   = 440.0
	panelHeight  = 300.0
	rowStartY    = 84.0
	rowSpacing   = 38.0
	rowLabelPad  = 28.0
	valueBarX    = 240.0
	valueBarW    = 160.0
	valueBarH    = 8.0
	checkboxSize = 14.0
)

// Draw 绘制设置面板
func (m *SettingsPanelModule) Draw(screen *ebiten.Image) {
	if !m.visible {
		return
	}

	// 压暗背景
	vector.DrawFilledRect(screen, 0, 0, float32(m.windowWidth), float32(m.windowHeight), panelDimColor, false)

	// 面板主体
	px := (float64(m.windowWidth) - panelWidth) / 2
	py := (float64(m.windowHeight) - panelHeight) / 2
	vector.DrawFilledRect(screen, float32(px), float32(py), panelWidth, panelHeight, panelFillColor, false)
	vector.StrokeRect(screen, float32(px), float32(py), panelWidth, panelHeight, 1, panelBorderColor, false)

	s := m.settingsManager.GetSettings()

	rows := []struct {
		label string
		value string
	}{
		{"Particle density", fmt.Sprintf("%.0f%%", s.ParticleDensity*100)},
		{"Reduced motion", onOff(s.ReducedMotion)},
		{"Scroll speed", fmt.Sprintf("%.0f", s.ScrollSpeed)},
		{"Fullscreen", onOff(s.Fullscreen)},
		{"Debug overlay", onOff(s.ShowDebugOverlay)},
	}

	if m.labelFace == nil {
		// 无字体降级：调试字体列出全部行
		msg := "SETTINGS  (Esc to close)\n"
		for i, r := range rows {
			marker := "  "
			if i == m.selected {
				marker = "> "
			}
			msg += fmt.Sprintf("%s%s: %s\n", marker, r.label, r.value)
		}
		ebitenutil.DebugPrintAt(screen, msg, int(px)+16, int(py)+16)
		return
	}

	// 标题
	titleOp := &text.DrawOptions{}
	titleOp.GeoM.Translate(px+rowLabelPad, py+24)
	titleOp.ColorScale.ScaleWithColor(rowTextColor)
	text.Draw(screen, "Settings", m.titleFace, titleOp)

	// 行
	for i, r := range rows {
		rowY := py + rowStartY + float64(i)*rowSpacing
		clr := rowTextColor
		if i == m.selected {
			clr = rowHighlight
		}

		op := &text.DrawOptions{}
		op.GeoM.Translate(px+rowLabelPad, rowY-14)
		op.ColorScale.ScaleWithColor(clr)
		text.Draw(screen, r.label, m.labelFace, op)

		m.drawRowValue(screen, i, px, rowY, s)
	}

	// 底部提示
	hintOp := &text.DrawOptions{}
	hintOp.GeoM.Translate(px+rowLabelPad, py+panelHeight-34)
	hintOp.ColorScale.ScaleWithColor(trackColor)
	text.Draw(screen, "Arrows adjust / Enter toggle / Esc close", m.labelFace, hintOp)
}

// drawRowValue 绘制某一行右侧的取值控件（滑动条或开关块）
func (m *SettingsPanelModule) drawRowValue(screen *ebiten.Image, row int, px, rowY float64, s *game.ShowcaseSettings) {
	barX := float32(px + valueBarX)
	barY := float32(rowY - valueBarH)

	switch row {
	case rowDensity:
		vector.DrawFilledRect(screen, barX, barY, valueBarW, valueBarH, trackColor, false)
		frac := (s.ParticleDensity - 0.25) / 0.75
		vector.DrawFilledRect(screen, barX, barY, float32(valueBarW*frac), valueBarH, fillColor, false)
	case rowScrollSpeed:
		vector.DrawFilledRect(screen, barX, barY, valueBarW, valueBarH, trackColor, false)
		frac := (s.ScrollSpeed - 8) / (200 - 8)
		vector.DrawFilledRect(screen, barX, barY, float32(valueBarW*frac), valueBarH, fillColor, false)
	case rowReducedMotion:
		m.drawCheckbox(screen, barX, barY, s.ReducedMotion)
	case rowFullscreen:
		m.drawCheckbox(screen, barX, barY, s.Fullscreen)
	case rowDebugOverlay:
		m.drawCheckbox(screen, barX, barY, s.ShowDebugOverlay)
	}
}

// drawCheckbox 绘制开关方块
func (m *SettingsPanelModule) drawCheckbox(screen *ebiten.Image, x, y float32, on bool) {
	vector.StrokeRect(screen, x, y-3, checkboxSize, checkboxSize, 1, panelBorderColor, false)
	if on {
		vector.DrawFilledRect(screen, x+3, y, checkboxSize-6, checkboxSize-6, fillColor, false)
	}
}

// onOff 开关状态的显示文本
func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}
