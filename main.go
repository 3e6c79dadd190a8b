package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/gonewx/driftfx/pkg/app"
	"github.com/gonewx/driftfx/pkg/config"
	"github.com/gonewx/driftfx/pkg/embedded"
	"github.com/gonewx/driftfx/pkg/game"
)

func main() {
	verbose := flag.Bool("verbose", false, "enable verbose logging")
	fullscreen := flag.Bool("fullscreen", false, "start in fullscreen mode")
	flag.Parse()

	// 嵌入资源必须在任何加载之前初始化
	embedded.Init(dataFS)

	a, err := app.NewApp(app.Config{
		Verbose:    *verbose,
		Fullscreen: *fullscreen,
	})
	if err != nil {
		log.Fatalf("[Main] Failed to initialize: %v", err)
	}

	ebiten.SetWindowSize(config.GameWindowWidth, config.GameWindowHeight)
	ebiten.SetWindowTitle(a.Title())
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	// RunGame 阻塞到窗口关闭
	if err := ebiten.RunGame(a); err != nil {
		log.Fatal(err)
	}

	// 退出前给当前场景一次保存状态的机会
	if scene, ok := a.GetSceneManager().GetCurrentScene().(game.Saveable); ok {
		if !scene.SaveOnExit() {
			log.Printf("[Main] Warning: failed to save state on exit")
		}
	}
}
