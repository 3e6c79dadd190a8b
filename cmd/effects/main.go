// Package main provides an interactive viewer for browsing and debugging
// DriftFX effect definitions outside the showcase page.
//
// Usage:
//
//	go run cmd/effects/main.go [flags]
//
// Flags:
//
//	--filter <keyword>    Initial filter by effect name (e.g., --filter=drift)
//	--effect <name>       Start with a specific effect (e.g., --effect=sparkle)
//	--auto-play           Automatically cycle through effects every 3 seconds
//	--verbose             Enable verbose logging (default off)
//
// Controls:
//
//	Tab / Right Arrow - Next effect
//	Left Arrow        - Previous effect
//	Mouse Click       - Spawn an extra instance at the cursor position
//	R                 - Restart the current effect
//	C                 - Clear all particles and extra instances
//	F3                - Toggle per-instance stats overlay
//	Q/Escape          - Quit
//
// The viewer reads effect definitions from data/effects/ in the working
// directory, so run it from the repository root.
package main

import (
	"errors"
	"flag"
	"fmt"
	"image/color"
	"io"
	"log"
	"os"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/gonewx/driftfx/pkg/ecs"
	"github.com/gonewx/driftfx/pkg/effects"
	"github.com/gonewx/driftfx/pkg/embedded"
	"github.com/gonewx/driftfx/pkg/game"
	"github.com/gonewx/driftfx/pkg/systems"
	"github.com/gonewx/driftfx/pkg/types"
)

const (
	screenWidth  = 1024
	screenHeight = 768

	// clickRegionSize 点击生成的临时区域边长（逻辑像素）
	clickRegionSize = 200

	autoPlayInterval = 3.0 // seconds per effect in auto-play mode
)

var (
	filterFlag   = flag.String("filter", "", "Initial filter by effect name keyword")
	effectFlag   = flag.String("effect", "", "Start with a specific effect name")
	autoPlayFlag = flag.Bool("auto-play", false, "Auto cycle through effects every 3 seconds")
	verboseFlag  = flag.Bool("verbose", false, "Enable verbose logging (default off)")
)

// errQuit is the sentinel returned from Update to request a clean shutdown.
var errQuit = errors.New("quit requested")

// ViewerGame implements ebiten.Game for the effect viewer.
type ViewerGame struct {
	entityManager  *ecs.EntityManager
	particleSystem *systems.ParticleSystem
	renderSystem   *systems.RenderSystem
	stage          *effects.Stage
	registry       *effects.Registry
	library        *game.EffectLibrary

	allNames      []string // every effect in the library, sorted
	filteredNames []string // names matching the filter
	currentIndex  int

	// current is the looping instance filling the viewport; extras are the
	// click-spawned instances, cleaned up on clear/switch.
	current  *effects.Manager
	extras   []*effects.Manager
	clickSeq int

	autoPlay  bool
	autoTimer float64

	showStats     bool
	statusMessage string
}

// NewViewerGame loads the effect library from the working directory and
// prepares the first effect.
func NewViewerGame() (*ViewerGame, error) {
	// cmd 工具从工作目录读取效果定义，与展示页的嵌入资源共用加载路径
	embedded.Init(os.DirFS("."))

	library, err := game.LoadEffectLibrary("data/effects")
	if err != nil {
		return nil, fmt.Errorf("failed to load effect library: %w", err)
	}
	if library.Len() == 0 {
		return nil, fmt.Errorf("no effect definitions found in data/effects (run from the repository root)")
	}

	allNames := library.Names()
	filteredNames := filterEffects(allNames, *filterFlag)
	if len(filteredNames) == 0 {
		log.Printf("Warning: no effects match filter %q, showing all", *filterFlag)
		filteredNames = allNames
	}

	startIndex := 0
	if *effectFlag != "" {
		found := false
		for i, name := range filteredNames {
			if name == *effectFlag {
				startIndex = i
				found = true
				break
			}
		}
		if !found {
			log.Printf("Warning: effect %q not found, starting with %q", *effectFlag, filteredNames[0])
		}
	}

	em := ecs.NewEntityManager()
	stage := effects.NewStage()
	stage.SetRegion("viewport", types.Rect{W: screenWidth, H: screenHeight})

	viewer := &ViewerGame{
		entityManager:  em,
		particleSystem: systems.NewParticleSystem(em),
		renderSystem:   systems.NewRenderSystem(em),
		stage:          stage,
		registry:       effects.NewRegistry(),
		library:        library,
		allNames:       allNames,
		filteredNames:  filteredNames,
		currentIndex:   startIndex,
		autoPlay:       *autoPlayFlag,
	}

	log.Printf("[Viewer] Loaded %d effect(s), %d after filter", len(allNames), len(filteredNames))
	viewer.selectEffect(startIndex)
	return viewer, nil
}

// filterEffects returns the names matching the query (case-insensitive
// substring match); an empty query matches everything.
func filterEffects(allNames []string, query string) []string {
	if query == "" {
		return allNames
	}
	queryLower := strings.ToLower(query)
	filtered := make([]string, 0, len(allNames))
	for _, name := range allNames {
		if strings.Contains(strings.ToLower(name), queryLower) {
			filtered = append(filtered, name)
		}
	}
	return filtered
}

// Update advances the viewer by one frame.
func (g *ViewerGame) Update() error {
	dt := 1.0 / 60.0

	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return errQuit
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyTab) || inpututil.IsKeyJustPressed(ebiten.KeyArrowRight) {
		g.switchEffect(1)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowLeft) {
		g.switchEffect(-1)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.selectEffect(g.currentIndex)
		g.statusMessage = "Restarted"
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyC) {
		g.clearAll()
		g.statusMessage = "Cleared all particles"
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF3) {
		g.showStats = !g.showStats
	}

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		g.spawnAt(float64(x), float64(y))
	}

	if g.autoPlay {
		g.autoTimer += dt
		if g.autoTimer >= autoPlayInterval {
			g.autoTimer = 0
			g.switchEffect(1)
		}
	}

	g.particleSystem.Update(dt)
	g.entityManager.RemoveMarkedEntities()
	g.pruneDrainedExtras()

	return nil
}

// switchEffect moves the selection by delta (wrapping) and restarts.
func (g *ViewerGame) switchEffect(delta int) {
	count := len(g.filteredNames)
	g.currentIndex = ((g.currentIndex+delta)%count + count) % count
	g.autoTimer = 0
	g.selectEffect(g.currentIndex)
}

// selectEffect tears down every running instance and starts the effect at
// index on the full viewport region.
func (g *ViewerGame) selectEffect(index int) {
	g.clearAll()

	name := g.filteredNames[index]
	spec, ok := g.library.Get(name)
	if !ok {
		g.statusMessage = fmt.Sprintf("Effect %q missing from library", name)
		return
	}

	g.current = effects.NewManager(g.entityManager, g.stage, spec, effects.ManagerOptions{
		RegionID: "viewport",
		Registry: g.registry,
	})
	g.current.Start()
	g.statusMessage = fmt.Sprintf("Selected: %s", name)
	log.Printf("[Viewer] Current effect: %s (%d/%d)", name, index+1, len(g.filteredNames))
}

// spawnAt starts an extra instance of the current effect in a small region
// centered on the cursor.
func (g *ViewerGame) spawnAt(x, y float64) {
	spec, ok := g.library.Get(g.filteredNames[g.currentIndex])
	if !ok {
		return
	}

	g.clickSeq++
	regionID := fmt.Sprintf("click-%d", g.clickSeq)
	g.stage.SetRegion(regionID, types.Rect{
		X: x - clickRegionSize/2,
		Y: y - clickRegionSize/2,
		W: clickRegionSize,
		H: clickRegionSize,
	})

	extra := effects.NewManager(g.entityManager, g.stage, spec, effects.ManagerOptions{
		RegionID: regionID,
		Registry: g.registry,
	})
	extra.Start()
	g.extras = append(g.extras, extra)
	g.statusMessage = fmt.Sprintf("Spawned %s at (%.0f, %.0f)", spec.Name, x, y)
	log.Printf("[Viewer] Spawned extra instance of %s at (%.0f, %.0f)", spec.Name, x, y)
}

// pruneDrainedExtras drops click-spawned burst instances whose completion
// handle resolved, so the extras list doesn't grow without bound.
func (g *ViewerGame) pruneDrainedExtras() {
	alive := g.extras[:0]
	for _, extra := range g.extras {
		if extra.Completion().Done() {
			extra.Destroy()
			continue
		}
		alive = append(alive, extra)
	}
	g.extras = alive
}

// clearAll destroys the current instance and every extra.
func (g *ViewerGame) clearAll() {
	if g.current != nil {
		g.current.Destroy()
		g.current = nil
	}
	for _, extra := range g.extras {
		extra.Destroy()
	}
	g.extras = nil
	g.entityManager.RemoveMarkedEntities()
}

// Draw renders the particles and the overlay UI.
func (g *ViewerGame) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{R: 16, G: 18, B: 26, A: 255})
	g.renderSystem.Draw(screen, 0)
	g.drawUI(screen)
}

func (g *ViewerGame) drawUI(screen *ebiten.Image) {
	name := g.filteredNames[g.currentIndex]
	title := fmt.Sprintf("DriftFX Effect Viewer - %s (%d/%d)", name, g.currentIndex+1, len(g.filteredNames))
	ebitenutil.DebugPrintAt(screen, title, 10, 10)

	if *filterFlag != "" {
		ebitenutil.DebugPrintAt(screen,
			fmt.Sprintf("Filter: %q (%d/%d effects)", *filterFlag, len(g.filteredNames), len(g.allNames)), 10, 30)
	}

	ebitenutil.DebugPrintAt(screen,
		fmt.Sprintf("Active particles: %d  Instances: %d", g.registry.TotalActive(), 1+len(g.extras)), 10, 50)

	if g.showStats {
		y := 70
		for _, stat := range g.registry.Snapshot() {
			line := fmt.Sprintf("  %s @ %s: active=%d launched=%d", stat.Effect, stat.Region, stat.Active, stat.Launched)
			ebitenutil.DebugPrintAt(screen, line, 10, y)
			y += 20
		}
	}

	if g.statusMessage != "" {
		ebitenutil.DebugPrintAt(screen, g.statusMessage, 10, screenHeight-70)
	}

	controls := []string{
		"Tab/Arrows = Switch  Click = Spawn at cursor  R = Restart  C = Clear",
		"F3 = Stats  Q/Esc = Quit",
	}
	for i, line := range controls {
		ebitenutil.DebugPrintAt(screen, line, 10, screenHeight-40+i*20)
	}

	if g.autoPlay {
		ebitenutil.DebugPrintAt(screen, "AUTO-PLAY", screenWidth-100, 10)
	}
}

// Layout returns the viewer's fixed logical screen size.
func (g *ViewerGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	return screenWidth, screenHeight
}

func main() {
	flag.Parse()

	log.Println("=== DriftFX Effect Viewer ===")

	viewer, err := NewViewerGame()
	if err != nil {
		log.Fatalf("Failed to initialize viewer: %v", err)
	}

	// 默认静音运行，避免每次生成都刷日志；调试时传入 --verbose
	if !*verboseFlag {
		log.SetOutput(io.Discard)
	}

	ebiten.SetWindowSize(screenWidth, screenHeight)
	ebiten.SetWindowTitle("DriftFX Effect Viewer")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(viewer); err != nil && !errors.Is(err, errQuit) {
		log.Fatal(err)
	}
}
