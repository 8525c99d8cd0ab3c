package main

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/hdparallax/assets"
	"github.com/milk9111/hdparallax/atlas"
	"github.com/milk9111/hdparallax/backdrop"
	"github.com/milk9111/hdparallax/grade"
	"github.com/milk9111/hdparallax/level"
	"github.com/milk9111/hdparallax/levels"
	"github.com/milk9111/hdparallax/meta"
	"github.com/milk9111/hdparallax/settings"
	"golang.org/x/time/rate"
)

const (
	appName     = "hdparallax"
	cameraSpeed = 90.0
)

type Options struct {
	Level  string
	Assets string
	Pack   string
	Watch  bool
	Debug  bool
}

type Game struct {
	frames int
	debug  bool

	level      *level.Level
	sheet      *atlas.Sheet
	renderer   *backdrop.EbitenRenderer
	compositor *backdrop.Compositor
	settings   *settings.Manager

	resources meta.Resources
	pack      *meta.Pack
	watcher   *meta.Watcher
	reloadLog *rate.Limiter

	ui      *ebitenui.UI
	overlay *overlay
	showUI  bool
}

func NewGame(opts Options) (*Game, error) {
	g := &Game{
		debug:     opts.Debug,
		showUI:    true,
		reloadLog: rate.NewLimiter(rate.Every(2*time.Second), 1),
	}

	sheet, err := loadSheet(opts.Assets)
	if err != nil {
		return nil, err
	}
	g.sheet = sheet

	watchDisk := opts.Watch && opts.Assets != ""
	var pack meta.Resources
	if opts.Pack != "" {
		p, err := meta.OpenPack(opts.Pack, true)
		if err != nil {
			return nil, err
		}
		g.pack = p
		pack = p
		if watchDisk {
			log.Printf("[Watch] %s takes precedence over %s while watching", opts.Assets, opts.Pack)
		}
	}
	g.resources = resourceChain(assets.Resources(opts.Assets), pack, watchDisk)

	lvl, err := loadLevel(opts.Level, sheet, g.resources)
	if err != nil {
		g.Close()
		return nil, err
	}
	g.level = lvl

	g.settings, err = settings.Open(appName)
	if err != nil {
		log.Printf("[Settings] %v; mirror mode will not persist", err)
		g.settings = settings.NewManager(nil)
	}

	var fx backdrop.Effect
	if gr, err := grade.New(grade.DefaultParams()); err != nil {
		log.Printf("[Grade] %v; drawing ungraded", err)
	} else {
		fx = gr
	}
	g.renderer = backdrop.NewEbitenRenderer(nil)
	g.compositor = backdrop.NewCompositor(g.renderer, g.settings, fx)

	if opts.Watch {
		if opts.Assets == "" {
			log.Printf("[Watch] -watch needs -assets; hot reload disabled")
		} else if w, err := meta.NewWatcher(opts.Assets); err != nil {
			log.Printf("[Watch] %v; hot reload disabled", err)
		} else {
			g.watcher = w
		}
	}

	g.ui, g.overlay = newOverlayUI(g)
	return g, nil
}

// resourceChain orders metadata lookups. The pack normally shadows loose
// files; a watched directory goes first so edits to it are what reload.
func resourceChain(disk, pack meta.Resources, diskFirst bool) meta.Chain {
	switch {
	case pack == nil:
		return meta.Chain{disk}
	case diskFirst:
		return meta.Chain{disk, pack}
	default:
		return meta.Chain{pack, disk}
	}
}

func loadSheet(dir string) (*atlas.Sheet, error) {
	if dir == "" {
		return assets.LoadSheet()
	}
	return atlas.Load(os.DirFS(dir), ".")
}

func loadLevel(name string, sheet *atlas.Sheet, res meta.Resources) (*level.Level, error) {
	if _, err := os.Stat(name); err == nil {
		return level.LoadFile(name, sheet, res)
	}
	if !strings.HasSuffix(name, ".json") {
		name += ".json"
	}
	return level.LoadFS(levels.FS, name, sheet, res)
}

func (g *Game) Close() {
	if g.watcher != nil {
		_ = g.watcher.Close()
	}
	if g.pack != nil {
		_ = g.pack.Close()
	}
}

func (g *Game) Update() error {
	g.frames++
	dt := 1 / float64(ebiten.TPS())

	g.drainWatcher()

	if inpututil.IsKeyJustPressed(ebiten.KeyM) {
		g.toggleMirror()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyTab) {
		g.showUI = !g.showUI
	}

	dx, dy := 0.0, 0.0
	if ebiten.IsKeyPressed(ebiten.KeyArrowLeft) || ebiten.IsKeyPressed(ebiten.KeyA) {
		dx--
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowRight) || ebiten.IsKeyPressed(ebiten.KeyD) {
		dx++
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowUp) || ebiten.IsKeyPressed(ebiten.KeyW) {
		dy--
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowDown) || ebiten.IsKeyPressed(ebiten.KeyS) {
		dy++
	}
	g.level.MoveCamera(dx*cameraSpeed*dt, dy*cameraSpeed*dt)

	g.level.Update(dt)

	if g.showUI {
		g.overlay.refresh(g)
		g.ui.Update()
	}
	return nil
}

func (g *Game) toggleMirror() {
	if err := g.settings.ToggleMirrorMode(); err != nil {
		log.Printf("[Settings] %v", err)
	}
}

// drainWatcher applies every pending metadata change. Reload failures are
// rate limited since a file being edited tends to fail on every save.
func (g *Game) drainWatcher() {
	if g.watcher == nil {
		return
	}
	for {
		select {
		case key, ok := <-g.watcher.Events:
			if !ok {
				g.watcher = nil
				return
			}
			n, err := g.level.Reload(key, g.resources)
			if err != nil {
				if g.reloadLog.Allow() {
					log.Printf("[Watch] keeping previous metadata for %s: %v", key, err)
				}
				continue
			}
			if n > 0 {
				log.Printf("[Watch] reloaded %s (%d layers)", key, n)
			}
		case err, ok := <-g.watcher.Errors:
			if !ok {
				g.watcher = nil
				return
			}
			if g.reloadLog.Allow() {
				log.Printf("[Watch] %v", err)
			}
		default:
			return
		}
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.level.Draw(screen, g.renderer, g.compositor)

	if g.showUI {
		g.ui.Draw(screen)
	}
	if g.debug {
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("Frames: %d    FPS: %.2f    Textures: %d (%s)",
			g.frames, ebiten.ActualFPS(), g.sheet.Len(), humanize.Bytes(uint64(g.sheet.Bytes()))), 0, screen.Bounds().Dy()-16)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.level.SetViewport(outsideWidth, outsideHeight)
	return outsideWidth, outsideHeight
}
