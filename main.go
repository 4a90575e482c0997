package main

import (
	"fmt"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/OpticalFlyer/menukit/menu"
)

const (
	initialWidth  = 800
	initialHeight = 600
)

// App implements ebiten.Game, driving one menukit Menu.
type App struct {
	menu      *menu.Menu
	poller    *menu.Poller
	events    []menu.Event
	debugMode bool
	clicks    int
}

func (a *App) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyF1) {
		a.debugMode = !a.debugMode
	}

	a.events = a.poller.Poll(a.events[:0])
	a.menu.Update(a.events)
	return nil
}

func (a *App) Draw(screen *ebiten.Image) {
	a.menu.Draw(screen)

	if a.debugMode {
		sel := "none"
		if w := a.menu.SelectedWidget(); w != nil {
			col, row := w.ColRow()
			sel = fmt.Sprintf("(%d,%d)", col, row)
		}
		ebitenutil.DebugPrint(screen, fmt.Sprintf(
			"FPS: %.2f TPS: %.2f\nselected: %s index: %d\nclicks: %d",
			ebiten.ActualFPS(), ebiten.ActualTPS(), sel, a.menu.SelectedIndex(), a.clicks))
	}
}

func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	a.menu.Resize(0, 0, outsideWidth, outsideHeight)
	return outsideWidth, outsideHeight
}

func main() {
	app := &App{
		poller: menu.NewPoller(),
	}
	app.menu = buildDemoMenu(initialWidth, initialHeight, func() { app.clicks++ })

	ebiten.SetWindowSize(initialWidth, initialHeight)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowTitle("menukit demo")
	ebiten.SetVsyncEnabled(true)

	if err := ebiten.RunGame(app); err != nil {
		log.Fatal(err)
	}
}
