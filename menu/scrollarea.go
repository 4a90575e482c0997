package menu

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/OpticalFlyer/menukit/geom"
)

// ScrollArea presents an arbitrarily large world surface through a
// bounded view rectangle, scrolled by up to four edge bars, the wheel,
// or a touch drag.
//
// The area's rect is expressed in the world coordinates of its parent
// area (plain screen coordinates at the root). The parent pointer is a
// non-owning back-reference used only for upward coordinate
// composition; ownership always runs downward (a Frame owns its inner
// area, the Menu owns the root).
type ScrollArea struct {
	rect   geom.Rect
	worldW int
	worldH int
	world  *ebiten.Image

	bars   [numPositions]*ScrollBar
	parent *ScrollArea
	theme  *Theme

	background color.RGBA
	hasBG      bool
	bgImage    *ebiten.Image

	panFinger int
	panning   bool
}

// NewScrollArea builds an area with bars on the theme's configured
// edges and an empty world.
func NewScrollArea(theme *Theme) *ScrollArea {
	a := &ScrollArea{theme: theme, panFinger: -1}
	for _, pos := range theme.Scrollbars {
		bar := newScrollBar(pos, theme.ScrollbarThickness)
		bar.onChange = a.onBarChange
		a.bars[pos] = bar
	}
	return a
}

// onBarChange keeps a sibling bar on the same axis quietly in sync, so
// two bars on one axis never fight: the bar being manipulated is
// authoritative for the tick.
func (a *ScrollArea) onBarChange(bar *ScrollBar, value int) {
	for _, other := range a.bars {
		if other == nil || other == bar {
			continue
		}
		if other.Orientation() == bar.Orientation() {
			other.setValueQuiet(value)
		}
	}
}

// SetRect fixes the area's bounding box, in parent-world coordinates.
func (a *ScrollArea) SetRect(r geom.Rect) {
	a.rect = r
	a.applySizeChanges()
}

// Rect returns the area's bounding box.
func (a *ScrollArea) Rect() geom.Rect { return a.rect }

// SetPosition moves the bounding box without resizing it.
func (a *ScrollArea) SetPosition(x, y int) {
	a.rect.X, a.rect.Y = x, y
	a.applySizeChanges()
}

// setParent links the enclosing area. Non-owning.
func (a *ScrollArea) setParent(parent *ScrollArea) { a.parent = parent }

// Parent returns the enclosing area, or nil at the root.
func (a *ScrollArea) Parent() *ScrollArea { return a.parent }

// Depth returns the number of ancestor areas above this one.
func (a *ScrollArea) Depth() int {
	d := 0
	for p := a.parent; p != nil; p = p.parent {
		d++
	}
	return d
}

// SetBackground fills the area rect with a solid color before the world
// is blitted.
func (a *ScrollArea) SetBackground(c color.RGBA) {
	a.background = c
	a.hasBG = true
}

// SetBackgroundImage tiles nothing fancy: the image is drawn at the
// area origin under the world.
func (a *ScrollArea) SetBackgroundImage(img *ebiten.Image) { a.bgImage = img }

// SetWorldSize resizes the world content. A zero or negative dimension
// collapses to an empty world with no scrolling.
func (a *ScrollArea) SetWorldSize(w, h int) {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	a.worldW, a.worldH = w, h
	a.applySizeChanges()
}

// SetWorld attaches a drawable world surface, adopting its size. A nil
// surface degrades to a zero-size world.
func (a *ScrollArea) SetWorld(img *ebiten.Image) {
	a.world = img
	if img == nil {
		a.SetWorldSize(0, 0)
		return
	}
	b := img.Bounds()
	a.SetWorldSize(b.Dx(), b.Dy())
}

// World returns the attached surface, which may be nil.
func (a *ScrollArea) World() *ebiten.Image { return a.world }

// WorldSize returns the content dimensions.
func (a *ScrollArea) WorldSize() (int, int) { return a.worldW, a.worldH }

// barThickness sums the thickness of present, non-force-hidden bars on
// the given axis.
func (a *ScrollArea) barThickness(o Orientation) int {
	t := 0
	for _, bar := range a.bars {
		if bar != nil && !bar.forceHidden && bar.Orientation() == o {
			t += bar.thickness
		}
	}
	return t
}

// ScrollbarThickness returns the visible bar thickness on the given
// axis, zero when no bar is shown there.
func (a *ScrollArea) ScrollbarThickness(o Orientation) int {
	t := 0
	for _, bar := range a.bars {
		if bar != nil && bar.Visible() && bar.Orientation() == o {
			t += bar.thickness
		}
	}
	return t
}

// overflow decides, per axis, whether a bar is needed. Enabling one
// axis's bar consumes view space that can make the other axis overflow
// too; since bar thickness is a fixed constant this resolves in a
// fixed-order two-pass check, not a loop.
func (a *ScrollArea) overflow() (needH, needV bool) {
	rawH := a.worldW > a.rect.W
	rawV := a.worldH > a.rect.H
	needH = rawH
	needV = rawV
	if rawV && !rawH {
		needH = a.worldW > a.rect.W-a.barThickness(Vertical)
	}
	if rawH && !rawV {
		needV = a.worldH > a.rect.H-a.barThickness(Horizontal)
	}
	return needH, needV
}

// ViewRect returns the visible sub-rectangle of the bounding box, in
// parent-world coordinates. The view shrinks by bar thickness only on
// edges whose bar is actually shown; a world no larger than the rect
// keeps the full rect.
func (a *ScrollArea) ViewRect() geom.Rect {
	vr := a.rect
	needH, needV := a.overflow()
	for _, bar := range a.bars {
		if bar == nil || bar.forceHidden {
			continue
		}
		need := needH
		if bar.Orientation() == Vertical {
			need = needV
		}
		if !need {
			continue
		}
		t := bar.thickness
		switch bar.position {
		case North:
			vr.Y += t
			vr.H -= t
		case South:
			vr.H -= t
		case West:
			vr.X += t
			vr.W -= t
		case East:
			vr.W -= t
		}
	}
	if vr.W < 0 {
		vr.W = 0
	}
	if vr.H < 0 {
		vr.H = 0
	}
	return vr
}

// applySizeChanges recomputes bar visibility, ranges, page steps and
// track rects from the current world/rect relationship.
func (a *ScrollArea) applySizeChanges() {
	vr := a.ViewRect()
	needH, needV := a.overflow()
	for _, bar := range a.bars {
		if bar == nil {
			continue
		}
		if bar.Orientation() == Horizontal {
			bar.visible = needH
			bar.setRange(0, maxInt(0, a.worldW-vr.W))
			bar.setPageStep(vr.W)
			y := a.rect.Y
			if bar.position == South {
				y = a.rect.Bottom() - bar.thickness
			}
			bar.rect = geom.Rect{X: vr.X, Y: y, W: vr.W, H: bar.thickness}
		} else {
			bar.visible = needV
			bar.setRange(0, maxInt(0, a.worldH-vr.H))
			bar.setPageStep(vr.H)
			x := a.rect.X
			if bar.position == East {
				x = a.rect.Right() - bar.thickness
			}
			bar.rect = geom.Rect{X: x, Y: vr.Y, W: bar.thickness, H: vr.H}
		}
	}
}

// HideScrollbars force-hides every bar on the given axis; the view
// stops reserving their space.
func (a *ScrollArea) HideScrollbars(o Orientation) {
	for _, bar := range a.bars {
		if bar != nil && bar.Orientation() == o {
			bar.forceHidden = true
		}
	}
	a.applySizeChanges()
}

// ShowScrollbars lifts a forced hide on the given axis.
func (a *ScrollArea) ShowScrollbars(o Orientation) {
	for _, bar := range a.bars {
		if bar != nil && bar.Orientation() == o {
			bar.forceHidden = false
		}
	}
	a.applySizeChanges()
}

// authoritativeBar returns the bar whose value drives the axis offset.
// With two bars on one axis the south/east one wins.
func (a *ScrollArea) authoritativeBar(o Orientation) *ScrollBar {
	if o == Horizontal {
		if a.bars[South] != nil {
			return a.bars[South]
		}
		return a.bars[North]
	}
	if a.bars[East] != nil {
		return a.bars[East]
	}
	return a.bars[West]
}

// Offsets returns the current scroll offsets, clamped to
// [0, world-view] per axis.
func (a *ScrollArea) Offsets() geom.Point {
	var off geom.Point
	if bar := a.authoritativeBar(Horizontal); bar != nil {
		off.X = bar.value
	}
	if bar := a.authoritativeBar(Vertical); bar != nil {
		off.Y = bar.value
	}
	return off
}

// HiddenWidth returns how many world pixels exceed the view on x, zero
// when everything fits.
func (a *ScrollArea) HiddenWidth() int {
	return maxInt(0, a.worldW-a.ViewRect().W)
}

// HiddenHeight is HiddenWidth for the y axis.
func (a *ScrollArea) HiddenHeight() int {
	return maxInt(0, a.worldH-a.ViewRect().H)
}

// IsScrolling reports whether any bar drag or view pan is in progress.
func (a *ScrollArea) IsScrolling() bool {
	if a.panning {
		return true
	}
	for _, bar := range a.bars {
		if bar != nil && bar.scrolling {
			return true
		}
	}
	return false
}

// originScreen maps the area origin (world point 0,0 before scrolling)
// through every ancestor into screen coordinates.
func (a *ScrollArea) originScreen() geom.Point {
	if a.parent == nil {
		return a.rect.Pos()
	}
	return a.parent.ToRealPoint(a.rect.Pos())
}

// ToRealPoint maps a world point to screen coordinates.
func (a *ScrollArea) ToRealPoint(p geom.Point) geom.Point {
	o := a.originScreen()
	off := a.Offsets()
	return geom.Point{X: o.X + p.X - off.X, Y: o.Y + p.Y - off.Y}
}

// ToRealRect maps a world rect to screen coordinates without clipping.
func (a *ScrollArea) ToRealRect(r geom.Rect) geom.Rect {
	p := a.ToRealPoint(r.Pos())
	return geom.Rect{X: p.X, Y: p.Y, W: r.W, H: r.H}
}

// ToRealRectVisible maps a world rect to screen coordinates and clips
// it to the visible view at every nesting level. A rect entirely
// outside the view collapses to zero area, never negative.
func (a *ScrollArea) ToRealRectVisible(r geom.Rect) geom.Rect {
	return a.AbsoluteViewRect().Clip(a.ToRealRect(r))
}

// ToWorldPoint maps a screen point into world coordinates; inverse of
// ToRealPoint.
func (a *ScrollArea) ToWorldPoint(p geom.Point) geom.Point {
	o := a.originScreen()
	off := a.Offsets()
	return geom.Point{X: p.X - o.X + off.X, Y: p.Y - o.Y + off.Y}
}

// ToWorldRect maps a screen rect into world coordinates.
func (a *ScrollArea) ToWorldRect(r geom.Rect) geom.Rect {
	p := a.ToWorldPoint(r.Pos())
	return geom.Rect{X: p.X, Y: p.Y, W: r.W, H: r.H}
}

// AbsoluteViewRect returns the view rect in screen coordinates, clipped
// by every ancestor's own view.
func (a *ScrollArea) AbsoluteViewRect() geom.Rect {
	vr := a.ViewRect()
	if a.parent == nil {
		return vr
	}
	abs := a.parent.ToRealRect(vr)
	return a.parent.AbsoluteViewRect().Clip(abs)
}

// absoluteRect is AbsoluteViewRect for the whole bounding box, bars
// included.
func (a *ScrollArea) absoluteRect() geom.Rect {
	if a.parent == nil {
		return a.rect
	}
	abs := a.parent.ToRealRect(a.rect)
	return a.parent.AbsoluteViewRect().Clip(abs)
}

// ScrollTo sets the authoritative bar on the axis to value, clamped.
func (a *ScrollArea) ScrollTo(o Orientation, value int) {
	if bar := a.authoritativeBar(o); bar != nil {
		bar.SetValue(value)
	}
}

// ScrollToPercentage scrolls the axis to p in [0, 1].
func (a *ScrollArea) ScrollToPercentage(o Orientation, p float64) {
	if p < 0 {
		p = 0
	}
	if p > 1 {
		p = 1
	}
	if bar := a.authoritativeBar(o); bar != nil {
		min, max := bar.MinMax()
		bar.SetValue(min + int(float64(max-min)*p))
	}
}

// ScrollValuePercentage returns the axis position in [0, 1].
func (a *ScrollArea) ScrollValuePercentage(o Orientation) float64 {
	if bar := a.authoritativeBar(o); bar != nil {
		return bar.ValuePercentage()
	}
	return 0
}

// ScrollToRect adjusts each axis by the minimal delta that brings rect
// (world coordinates, inflated by margin) fully into the view, then
// asks the parent chain to do the same for this area's bounds. Returns
// false when the rect was already visible. A rect larger than the view
// settles on the closest edge, the best achievable containment.
func (a *ScrollArea) ScrollToRect(rect geom.Rect, margin int) bool {
	real := a.ToRealRect(rect).Inflate(margin, margin)
	view := a.AbsoluteViewRect()
	moved := false

	if !view.ContainsRect(real) {
		if a.HiddenWidth() > 0 {
			if bar := a.authoritativeBar(Horizontal); bar != nil && bar.Visible() {
				if d := shortestMove(real.X-view.X, real.Right()-view.Right()); d != 0 {
					bar.SetValue(bar.value + d)
					moved = true
				}
			}
		}
		if a.HiddenHeight() > 0 {
			if bar := a.authoritativeBar(Vertical); bar != nil && bar.Visible() {
				if d := shortestMove(real.Y-view.Y, real.Bottom()-view.Bottom()); d != 0 {
					bar.SetValue(bar.value + d)
					moved = true
				}
			}
		}
	}

	if a.parent != nil {
		// The rect is now placed within this view; the ancestors must
		// uncover this area's own bounds.
		if a.parent.ScrollToRect(a.parent.ToWorldRect(a.ToRealRect(rect)), margin) {
			moved = true
		}
	}
	return moved
}

// shortestMove picks the smaller correction: align the leading edge or
// the trailing edge. Zero when the span is already inside.
func shortestMove(lead, trail int) int {
	if lead >= 0 && trail <= 0 {
		return 0
	}
	if abs(lead) <= abs(trail) {
		return lead
	}
	return trail
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

const minWheelStep = 16

// HandleEvent routes a normalized event, in screen coordinates, to the
// bars or the touch pan gesture.
func (a *ScrollArea) HandleEvent(ev Event) bool {
	local := ev
	if a.parent != nil {
		local.Pos = a.parent.ToWorldPoint(ev.Pos)
	}

	switch ev.Kind {
	case PointerDown, PointerMove:
		// Pointer presses and hovers only reach an area whose view is
		// actually exposed on screen.
		if ev.Kind == PointerDown && !a.absoluteRect().Contains(ev.Pos) {
			break
		}
		for _, bar := range a.bars {
			if bar != nil && bar.HandleEvent(local) {
				return true
			}
		}
	case PointerUp:
		handled := false
		for _, bar := range a.bars {
			if bar != nil && bar.HandleEvent(local) {
				handled = true
			}
		}
		if a.panning && ev.Finger == a.panFinger {
			a.panning = false
			a.panFinger = -1
			handled = true
		}
		return handled
	case Wheel:
		if !a.AbsoluteViewRect().Contains(ev.Pos) {
			break
		}
		consumed := false
		if ev.Delta.Y != 0 && a.HiddenHeight() > 0 {
			if bar := a.authoritativeBar(Vertical); bar != nil {
				step := maxInt(bar.pageStep/6, minWheelStep)
				bar.SetValue(bar.value - ev.Delta.Y*step)
				consumed = true
			}
		}
		if ev.Delta.X != 0 && a.HiddenWidth() > 0 {
			if bar := a.authoritativeBar(Horizontal); bar != nil {
				step := maxInt(bar.pageStep/6, minWheelStep)
				bar.SetValue(bar.value + ev.Delta.X*step)
				consumed = true
			}
		}
		return consumed
	}

	return a.handlePan(ev)
}

// handlePan drags the view itself with a finger; the mouse scrolls via
// bars and wheel only.
func (a *ScrollArea) handlePan(ev Event) bool {
	if ev.Finger < 0 {
		return false
	}
	switch ev.Kind {
	case PointerDown:
		if a.AbsoluteViewRect().Contains(ev.Pos) && (a.HiddenWidth() > 0 || a.HiddenHeight() > 0) {
			a.panning = true
			a.panFinger = ev.Finger
			return true
		}
	case PointerMove:
		if a.panning && ev.Finger == a.panFinger {
			if bar := a.authoritativeBar(Horizontal); bar != nil {
				bar.SetValue(bar.value - ev.Delta.X)
			}
			if bar := a.authoritativeBar(Vertical); bar != nil {
				bar.SetValue(bar.value - ev.Delta.Y)
			}
			return true
		}
	}
	return false
}

// ensureWorld allocates or resizes the world image for drawing. Layout
// and navigation never need it; only the draw path does.
func (a *ScrollArea) ensureWorld() *ebiten.Image {
	if a.worldW <= 0 || a.worldH <= 0 {
		return nil
	}
	if a.world != nil {
		b := a.world.Bounds()
		if b.Dx() == a.worldW && b.Dy() == a.worldH {
			return a.world
		}
	}
	a.world = ebiten.NewImage(a.worldW, a.worldH)
	return a.world
}

// Draw blits the visible world region into dst at the view rect and
// renders the bars on top. dst is the parent world (the screen at the
// root), so coordinates line up with a.rect.
func (a *ScrollArea) Draw(dst *ebiten.Image) {
	if a.hasBG {
		drawRect(dst, a.rect, a.background)
	}
	if a.bgImage != nil {
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Translate(float64(a.rect.X), float64(a.rect.Y))
		dst.DrawImage(a.bgImage, op)
	}

	vr := a.ViewRect()
	if a.world != nil && !vr.Empty() {
		off := a.Offsets()
		src := a.world.SubImage(image.Rect(off.X, off.Y, off.X+vr.W, off.Y+vr.H)).(*ebiten.Image)
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Translate(float64(vr.X), float64(vr.Y))
		dst.DrawImage(src, op)
	}

	for _, bar := range a.bars {
		if bar != nil {
			bar.Draw(dst, a.theme)
		}
	}
}
