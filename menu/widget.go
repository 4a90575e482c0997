package menu

import (
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/OpticalFlyer/menukit/geom"
)

// Widget is the contract every menu element satisfies. Frame implements
// it too, so the flat order list is a single []Widget.
//
// Positions are expressed in the world coordinates of the widget's
// current ScrollArea; the virtual translation is the widget's offset
// relative to its owning Frame, before any scroll is applied. Both the
// Frame back-reference and the ScrollArea reference are owned by the
// layout engine: it overwrites them on every restructuring event, and
// widgets must re-read them rather than caching across ticks.
type Widget interface {
	// Size is the natural (unconstrained) size in pixels.
	Size() (int, int)

	Position() geom.Point
	SetPosition(x, y int)

	Selectable() bool
	Visible() bool
	SetVisible(visible bool)
	Floating() bool
	SetFloat(floating bool)

	// ColRow is the widget's grid coordinate used by directional
	// navigation.
	ColRow() (int, int)
	SetColRow(col, row int)

	Frame() *Frame
	setFrame(f *Frame)
	ScrollArea() *ScrollArea
	SetScrollArea(area *ScrollArea)
	Translation() geom.Point
	setTranslation(x, y int)

	Selected() bool
	setSelected(selected bool)

	// HandleEvent processes one normalized event; true reports the event
	// was consumed.
	HandleEvent(m *Menu, ev Event) bool
	Draw(dst *ebiten.Image, m *Menu)
}

// BaseWidget carries the state shared by all widgets; concrete widgets
// embed it and override what they need.
type BaseWidget struct {
	width, height int
	pos           geom.Point
	translation   geom.Point
	col, row      int
	selectable    bool
	selected      bool
	hidden        bool
	floating      bool

	frame *Frame
	area  *ScrollArea
}

func (b *BaseWidget) Size() (int, int) { return b.width, b.height }

// SetSize sets the natural size.
func (b *BaseWidget) SetSize(w, h int) {
	b.width, b.height = w, h
}

func (b *BaseWidget) Position() geom.Point  { return b.pos }
func (b *BaseWidget) SetPosition(x, y int)  { b.pos = geom.Point{X: x, Y: y} }
func (b *BaseWidget) Selectable() bool      { return b.selectable }
func (b *BaseWidget) Visible() bool         { return !b.hidden }
func (b *BaseWidget) SetVisible(v bool)     { b.hidden = !v }
func (b *BaseWidget) Floating() bool        { return b.floating }
func (b *BaseWidget) SetFloat(f bool)       { b.floating = f }
func (b *BaseWidget) ColRow() (int, int)    { return b.col, b.row }
func (b *BaseWidget) SetColRow(c, r int)    { b.col, b.row = c, r }
func (b *BaseWidget) Frame() *Frame         { return b.frame }
func (b *BaseWidget) setFrame(f *Frame)     { b.frame = f }
func (b *BaseWidget) Selected() bool        { return b.selected }
func (b *BaseWidget) setSelected(s bool)    { b.selected = s }
func (b *BaseWidget) Translation() geom.Point { return b.translation }

func (b *BaseWidget) setTranslation(x, y int) {
	b.translation = geom.Point{X: x, Y: y}
}

func (b *BaseWidget) ScrollArea() *ScrollArea { return b.area }

func (b *BaseWidget) SetScrollArea(area *ScrollArea) { b.area = area }

// HandleEvent is a no-op; interactive widgets override it.
func (b *BaseWidget) HandleEvent(*Menu, Event) bool { return false }

// Draw is a no-op; visible widgets override it.
func (b *BaseWidget) Draw(*ebiten.Image, *Menu) {}

// widgetRect is the widget's rect in its ScrollArea's world coordinates:
// base position plus virtual translation.
func widgetRect(w Widget) geom.Rect {
	ww, wh := w.Size()
	p := w.Position().Add(w.Translation())
	return geom.Rect{X: p.X, Y: p.Y, W: ww, H: wh}
}

// VisibleRect returns the widget's on-screen rectangle after every
// ancestor scroll and clip has been applied. Fully hidden widgets yield
// a zero-area rect.
func VisibleRect(w Widget) geom.Rect {
	area := w.ScrollArea()
	if area == nil {
		return geom.Rect{}
	}
	return area.ToRealRectVisible(widgetRect(w))
}
