// Package app 提供应用的核心包装器
//
// 该包将初始化逻辑从 main 包提取出来，使其可以被桌面端和测试共用。
// 桌面端通过 main.go 调用 NewApp()。
package app

import (
	"bytes"
	"image/color"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/quasilyte/gdata/v2"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/gonewx/driftfx/pkg/config"
	"github.com/gonewx/driftfx/pkg/ecs"
	"github.com/gonewx/driftfx/pkg/game"
	"github.com/gonewx/driftfx/pkg/scenes"
	"github.com/gonewx/driftfx/pkg/utils"
)

// resizeDebounceDelay 窗口尺寸变化的去抖静默窗口（秒）
// 拖拽过程中的连续尺寸事件只在停止后触发一次重排
const resizeDebounceDelay = 0.1

// Config 定义应用启动配置
type Config struct {
	// Verbose 启用详细日志输出
	Verbose bool
	// Fullscreen 启动时直接进入全屏（覆盖设置中的记忆值）
	Fullscreen bool
}

// App 是应用的核心包装器，实现 ebiten.Game 接口
type App struct {
	sceneManager *game.SceneManager
	showcase     *scenes.ShowcaseScene
	settings     *game.SettingsManager
	title        string
	verbose      bool

	// 窗口退出全屏后延迟恢复尺寸
	pendingWindowSizeReset   bool
	windowSizeResetCountdown int // 延迟帧数

	// 视口尺寸去抖：logical 是当前生效的逻辑尺寸，
	// pending 是窗口最近报告的尺寸
	resizeDebounce     *utils.Debouncer
	logicalW, logicalH int
	pendingW, pendingH int
}

// NewApp 创建并初始化应用
//
// 初始化流程：
//  1. 打开 gdata 存储并加载设置（失败降级为内存设置）
//  2. 加载效果库与展示页配置（配置损坏是致命错误）
//  3. 加载标题字体（失败降级为无标题）
//  4. 构建展示场景并接入场景管理器
//
// 注意：调用前必须先执行 embedded.Init()。
func NewApp(cfg Config) (*App, error) {
	log.Printf("[App] Starting DriftFX")

	// 设置存储：打开失败不致命，降级为内存设置
	gdataManager, err := gdata.Open(gdata.Config{AppName: "driftfx"})
	if err != nil {
		log.Printf("[App] Warning: gdata unavailable: %v (settings will not persist)", err)
		gdataManager = nil
	}
	settingsManager, err := game.NewSettingsManager(gdataManager)
	if err != nil {
		log.Printf("[App] Warning: settings manager: %v", err)
	}

	// 效果库
	library, err := game.LoadEffectLibrary("data/effects")
	if err != nil {
		return nil, err
	}
	log.Printf("[App] Effect library: %d effect(s)", library.Len())

	// 展示页配置
	showcaseCfg, err := config.LoadShowcaseConfig("data/showcase.yaml")
	if err != nil {
		return nil, err
	}

	// 标题字体：内置 Go Regular，加载失败降级为无标题
	var fontSource *text.GoTextFaceSource
	fontSource, err = text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		log.Printf("[App] Warning: failed to load font: %v (captions disabled)", err)
		fontSource = nil
	}

	em := ecs.NewEntityManager()
	showcase := scenes.NewShowcaseScene(em, settingsManager, library, showcaseCfg, fontSource)

	sceneManager := game.NewSceneManager()
	sceneManager.SwitchTo(showcase)

	if cfg.Fullscreen || settingsManager.GetSettings().Fullscreen {
		ebiten.SetFullscreen(true)
	}

	return &App{
		sceneManager:   sceneManager,
		showcase:       showcase,
		settings:       settingsManager,
		title:          showcaseCfg.Title,
		verbose:        cfg.Verbose,
		resizeDebounce: utils.NewDebouncer(resizeDebounceDelay),
		logicalW:       config.GameWindowWidth,
		logicalH:       config.GameWindowHeight,
		pendingW:       config.GameWindowWidth,
		pendingH:       config.GameWindowHeight,
	}, nil
}

// Update 更新应用逻辑
// 每个 tick 调用一次（通常每秒 60 次）
func (a *App) Update() error {
	deltaTime := 1.0 / 60.0

	// 视口尺寸去抖结束：采用新尺寸并整体重排
	if a.resizeDebounce.Update(deltaTime) {
		if a.pendingW != a.logicalW || a.pendingH != a.logicalH {
			a.logicalW = a.pendingW
			a.logicalH = a.pendingH
			a.showcase.Relayout(a.logicalW, a.logicalH)
			if a.verbose {
				log.Printf("[App] Viewport resized to %dx%d (debounced)", a.logicalW, a.logicalH)
			}
		}
	}

	// 延迟设置窗口大小（退出全屏后需要等待几帧才能正确设置）
	if a.pendingWindowSizeReset {
		a.windowSizeResetCountdown--
		if a.windowSizeResetCountdown <= 0 {
			ebiten.SetWindowSize(config.GameWindowWidth, config.GameWindowHeight)
			log.Printf("[App] Delayed SetWindowSize(%d, %d)", config.GameWindowWidth, config.GameWindowHeight)
			a.pendingWindowSizeReset = false
		}
	}

	// F11 切换全屏
	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		if ebiten.IsFullscreen() {
			ebiten.SetFullscreen(false)
			if ebiten.IsWindowMaximized() || ebiten.IsWindowMinimized() {
				ebiten.RestoreWindow()
			}
			// 延迟几帧后设置窗口大小，让窗口管理器有时间处理
			a.pendingWindowSizeReset = true
			a.windowSizeResetCountdown = 3
			log.Printf("[App] Exit fullscreen, will reset window size in 3 frames")
		} else {
			ebiten.SetFullscreen(true)
		}
		a.settings.SetFullscreen(ebiten.IsFullscreen())
	}

	a.sceneManager.Update(deltaTime)
	return nil
}

// Draw 绘制画面
// 每帧调用一次
func (a *App) Draw(screen *ebiten.Image) {
	a.sceneManager.Draw(screen)
}

// DrawFinalScreen 实现 FinalScreenDrawer 接口
// 用于控制全屏时的缩放和 letterbox 颜色
func (a *App) DrawFinalScreen(screen ebiten.FinalScreen, offscreen *ebiten.Image, geoM ebiten.GeoM) {
	// 先填充黑色背景（全屏时左右两边为黑色）
	screen.Fill(color.Black)
	// 使用线性滤波绘制画面，提高缩放质量
	op := &ebiten.DrawImageOptions{}
	op.GeoM = geoM
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(offscreen, op)
}

// Layout 返回应用的逻辑屏幕尺寸
// 窗口尺寸变化先进入去抖窗口，静默期结束后才生效，
// 避免拖拽过程中每帧重排面板
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != a.pendingW || outsideHeight != a.pendingH {
		a.pendingW = outsideWidth
		a.pendingH = outsideHeight
		a.resizeDebounce.Trigger()
	}
	return a.logicalW, a.logicalH
}

// Title 返回窗口标题
func (a *App) Title() string {
	return a.title
}

// GetSceneManager 返回场景管理器
// 用于应用关闭时保存设置
func (a *App) GetSceneManager() *game.SceneManager {
	return a.sceneManager
}

// IsVerbose 返回是否启用了详细日志
func (a *App) IsVerbose() bool {
	return a.verbose
}
