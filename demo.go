package main

import (
	"fmt"
	"log"

	"github.com/OpticalFlyer/menukit/menu"
)

// buildDemoMenu assembles a menu exercising nested scrollable frames,
// titles, floating frames and keyboard navigation.
func buildDemoMenu(width, height int, onClick func()) *menu.Menu {
	m := menu.New(0, 0, width, height, nil)
	m.SetAutoGrid(true)

	center := menu.PackOptions{Align: menu.AlignCenter}

	// A tall column of buttons, more than fits in its frame.
	list := menu.NewFrame(220, 40, menu.Vertical)
	list.SetMaxHeight(260)
	list.SetTitle("Actions")
	mustAdd(m, list)
	for i := 0; i < 12; i++ {
		b := menu.NewButton(fmt.Sprintf("Action %d", i+1), onClick)
		pack(m, list, b, center)
	}

	// A scrollable frame holding another scrollable frame.
	outer := menu.NewFrame(260, 40, menu.Vertical)
	outer.SetMaxHeight(220)
	outer.SetTitle("Nested")
	mustAdd(m, outer)
	pack(m, outer, menu.NewLabel("outer content"), center)

	inner := menu.NewFrame(200, 30, menu.Vertical)
	inner.SetMaxHeight(120)
	mustAdd(m, inner)
	for i := 0; i < 8; i++ {
		pack(m, inner, menu.NewButton(fmt.Sprintf("Inner %d", i+1), onClick), center)
	}
	pack(m, outer, inner, center)
	for i := 0; i < 4; i++ {
		pack(m, outer, menu.NewButton(fmt.Sprintf("Outer %d", i+1), onClick), center)
	}

	// A wide horizontal strip with its own scrollbar.
	strip := menu.NewFrame(40, 60, menu.Horizontal)
	strip.SetMaxWidth(320)
	strip.SetTitle("Strip")
	mustAdd(m, strip)
	for i := 0; i < 10; i++ {
		pack(m, strip, menu.NewButton(fmt.Sprintf("S%d", i+1), onClick), menu.PackOptions{
			VerticalPos: menu.PosCenter,
			MarginX:     4,
		})
	}

	// A floating frame with a draggable title bar.
	tools := menu.NewFrame(160, 30, menu.Vertical)
	tools.SetTitle("Tools")
	tools.SetFloat(true)
	tools.SetPosition(480, 60)
	mustAdd(m, tools)
	pack(m, tools, menu.NewButton("Pan", onClick), center)
	pack(m, tools, menu.NewSpacer(1, 6), center)
	pack(m, tools, menu.NewButton("Zoom", onClick), center)

	return m
}

func mustAdd(m *menu.Menu, w menu.Widget) {
	if err := m.Add(w); err != nil {
		log.Fatalf("add widget: %v", err)
	}
}

// pack registers w with the menu when needed, then packs it into f.
func pack(m *menu.Menu, f *menu.Frame, w menu.Widget, opts menu.PackOptions) {
	if m.WidgetIndex(w) < 0 {
		mustAdd(m, w)
	}
	if err := f.Pack(w, opts); err != nil {
		log.Fatalf("pack widget: %v", err)
	}
}
