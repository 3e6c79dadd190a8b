package scenes

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// 页面配色
var (
	pageBackground  = color.RGBA{R: 16, G: 18, B: 26, A: 255}
	panelBackground = color.RGBA{R: 22, G: 25, B: 35, A: 255}
	panelSeparator  = color.RGBA{R: 52, G: 58, B: 76, A: 255}
	scrollbarColor  = color.RGBA{R: 90, G: 98, B: 124, A: 180}
)

// Draw 绘制整个展示页
// 顺序：背景 → 面板底色与分隔线 → 粒子 → 装饰与标题 → 设置面板 → 调试信息
func (s *ShowcaseScene) Draw(screen *ebiten.Image) {
	screen.Fill(pageBackground)

	s.drawPanelBackdrops(screen)
	s.renderSystem.Draw(screen, s.camY)
	s.decorSystem.Draw(screen, s.camY)
	s.drawScrollbar(screen)

	s.settingsPanel.Draw(screen)

	if s.settings.GetSettings().ShowDebugOverlay {
		s.drawDebugOverlay(screen)
	}
}

// drawPanelBackdrops 绘制可见面板的底色和顶部分隔线
func (s *ShowcaseScene) drawPanelBackdrops(screen *ebiten.Image) {
	for i, p := range s.panels {
		if !p.visible {
			continue
		}
		y := float32(p.top - s.camY)
		w := float32(s.viewW)
		h := float32(p.height)

		// 奇偶面板交替底色，页面背景色本身是偶数面板的底色
		if i%2 == 1 {
			vector.DrawFilledRect(screen, 0, y, w, h, panelBackground, false)
		}
		if i > 0 {
			vector.StrokeLine(screen, 0, y, w, y, 1, panelSeparator, false)
		}
	}
}

// drawScrollbar 右侧滚动位置指示条
func (s *ShowcaseScene) drawScrollbar(screen *ebiten.Image) {
	max := s.maxScroll()
	if max <= 0 {
		return
	}

	trackH := float64(s.viewH)
	thumbH := trackH * trackH / (max + trackH)
	if thumbH < 24 {
		thumbH = 24
	}
	thumbY := (trackH - thumbH) * (s.camY / max)

	x := float32(s.viewW - 6)
	vector.DrawFilledRect(screen, x, float32(thumbY), 3, float32(thumbH), scrollbarColor, false)
}

// drawDebugOverlay 左上角的实例统计
func (s *ShowcaseScene) drawDebugOverlay(screen *ebiten.Image) {
	msg := fmt.Sprintf("FPS %.0f  TPS %.0f\nscroll %.0f / %.0f\nentities %d  particles %d",
		ebiten.ActualFPS(), ebiten.ActualTPS(),
		s.camY, s.maxScroll(),
		s.em.EntityCount(), s.registry.TotalActive())

	for _, stat := range s.registry.Snapshot() {
		msg += fmt.Sprintf("\n%s@%s  active %d  launched %d",
			stat.Effect, stat.Region, stat.Active, stat.Launched)
	}

	ebitenutil.DebugPrintAt(screen, msg, 8, 8)
}
