package menu

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/OpticalFlyer/menukit/geom"
)

type packEntry struct {
	widget Widget
	opts   PackOptions
}

var _ Widget = (*Frame)(nil)

// Frame lays out an ordered collection of child widgets along one axis.
// When the packed content exceeds a configured maximum size the Frame
// transparently promotes itself to scrollable: an inner ScrollArea is
// inserted between the Frame and its children without changing their
// logical membership. Frames nest arbitrarily; a Frame is itself a
// Widget.
type Frame struct {
	BaseWidget

	menu        *Menu
	orientation Orientation
	baseW       int // design size floor; cross-axis hard bound when not relaxed
	baseH       int
	maxW        int // 0 disables scroll promotion on that axis
	maxH        int
	relaxed     bool

	children []packEntry

	contentW   int
	contentH   int
	scrollable bool
	inner      *ScrollArea

	// flat-list range, derived by Menu.linearize; -1 when unattached.
	firstIdx int
	lastIdx  int

	title    string
	hasTitle bool

	dragging   bool
	dragFinger int
	dragStart  geom.Point
}

// NewFrame builds an unattached Frame with the given base size. Add it
// to a Menu before packing.
func NewFrame(width, height int, orientation Orientation) *Frame {
	f := &Frame{
		orientation: orientation,
		baseW:       width,
		baseH:       height,
		firstIdx:    -1,
		lastIdx:     -1,
		dragFinger:  -1,
	}
	f.contentW = 0
	f.contentH = 0
	return f
}

// Orientation returns the packing axis.
func (f *Frame) Orientation() Orientation { return f.orientation }

// Relax disables sizing-violation checks; used for purely
// organizational containers.
func (f *Frame) Relax(relax bool) { f.relaxed = relax }

// Relaxed reports whether sizing checks are suppressed.
func (f *Frame) Relaxed() bool { return f.relaxed }

// SetMaxWidth enables scrollable promotion once the natural width
// exceeds w. Zero disables.
func (f *Frame) SetMaxWidth(w int) {
	f.maxW = w
	f.requestLayout()
}

// SetMaxHeight is SetMaxWidth for the y axis.
func (f *Frame) SetMaxHeight(h int) {
	f.maxH = h
	f.requestLayout()
}

// MaxSize returns the configured bounds; zero means unbounded.
func (f *Frame) MaxSize() (int, int) { return f.maxW, f.maxH }

// IsScrollable reports whether the Frame currently owns an inner
// ScrollArea. Derived state: it flips automatically on re-layout when
// the packed content crosses the configured bound.
func (f *Frame) IsScrollable() bool { return f.scrollable }

// InnerArea returns the inner ScrollArea, nil while non-scrollable.
func (f *Frame) InnerArea() *ScrollArea { return f.inner }

// EffectiveArea returns the ScrollArea the Frame's children live in:
// the inner area when scrollable, otherwise the Frame's own.
func (f *Frame) EffectiveArea() *ScrollArea {
	if f.scrollable && f.inner != nil {
		return f.inner
	}
	return f.ScrollArea()
}

// Depth returns the number of Frame levels this Frame is packed
// inside; 0 for a top-level Frame.
func (f *Frame) Depth() int {
	d := 0
	for p := f.Frame(); p != nil; p = p.Frame() {
		d++
	}
	return d
}

// Children returns the packed widgets in pack order.
func (f *Frame) Children() []Widget {
	out := make([]Widget, len(f.children))
	for i, e := range f.children {
		out[i] = e.widget
	}
	return out
}

// TotalPacked returns the number of direct children.
func (f *Frame) TotalPacked() int { return len(f.children) }

// Contains reports whether w is a direct child.
func (f *Frame) Contains(w Widget) bool {
	return f.childIndex(w) >= 0
}

func (f *Frame) childIndex(w Widget) int {
	for i, e := range f.children {
		if e.widget == w {
			return i
		}
	}
	return -1
}

// SetTitle gives the Frame a draggable title bar.
func (f *Frame) SetTitle(title string) {
	f.title = title
	f.hasTitle = true
	f.requestLayout()
}

// RemoveTitle drops the title bar.
func (f *Frame) RemoveTitle() {
	f.title = ""
	f.hasTitle = false
	f.requestLayout()
}

func (f *Frame) titleHeight() int {
	if !f.hasTitle || f.menu == nil {
		return 0
	}
	return f.menu.theme.TitleBarHeight
}

// floorSize is the natural packed size floored by the base size; the
// title bar is not part of the scrolled content.
func (f *Frame) floorSize() (int, int) {
	w := f.contentW
	if w < f.baseW {
		w = f.baseW
	}
	h := f.contentH
	if h < f.baseH {
		h = f.baseH
	}
	return w, h
}

// Size reports the Frame's outer size: the natural packed size clamped
// by the configured bounds, plus the title bar.
func (f *Frame) Size() (int, int) {
	w, h := f.floorSize()
	if f.maxW > 0 && w > f.maxW {
		w = f.maxW
	}
	if f.maxH > 0 && h > f.maxH {
		h = f.maxH
	}
	return w, h + f.titleHeight()
}

// Indices returns the contiguous flat-list range owned transitively by
// this Frame: its own index and the index of its last descendant.
// (-1, -1) while floating or unattached.
func (f *Frame) Indices() (int, int) {
	if f.menu == nil {
		return -1, -1
	}
	return f.firstIdx, f.lastIdx
}

// isAncestorOf reports whether f encloses w at any depth.
func (f *Frame) isAncestorOf(w Widget) bool {
	for p := w.Frame(); p != nil; p = p.Frame() {
		if p == f {
			return true
		}
	}
	return false
}

// crossBound returns the hard bound and the child's extent on the
// cross axis; zero bound means unchecked (scroll promotion covers it).
func (f *Frame) crossBound(w Widget, opts PackOptions) (bound, extent int) {
	ww, wh := w.Size()
	if f.orientation == Vertical {
		if f.maxW > 0 {
			return 0, 0
		}
		return f.baseW, ww + opts.MarginX
	}
	if f.maxH > 0 {
		return 0, 0
	}
	return f.baseH, wh + opts.MarginY
}

// Pack appends w to the Frame's children as an atomic move: the widget
// leaves its previous top-level slot and its flat-list entry is
// re-linearized immediately after this Frame's header. The widget must
// already belong to the same Menu.
func (f *Frame) Pack(w Widget, opts PackOptions) error {
	if f.menu == nil {
		return ErrNotAttached
	}
	if cf, ok := w.(*Frame); ok {
		if cf == f || cf.isAncestorOf(f) {
			return ErrTopology
		}
	}
	if w.Frame() != nil {
		return ErrAlreadyPacked
	}
	if !f.menu.contains(w) {
		return ErrNotInMenu
	}
	if !f.relaxed {
		if bound, extent := f.crossBound(w, opts); bound > 0 && extent > bound {
			return ErrSizeExceeded
		}
	}

	f.children = append(f.children, packEntry{widget: w, opts: opts})
	w.setFrame(f)
	w.SetFloat(false)
	w.SetScrollArea(f.EffectiveArea())

	f.menu.structureChanged()
	return nil
}

// Unpack removes w from the Frame. The widget becomes floating with
// its absolute screen position preserved at the instant of the unpack,
// its virtual translation reset to zero, and its flat-list entry moved
// to the end of the list.
func (f *Frame) Unpack(w Widget) error {
	i := f.childIndex(w)
	if i < 0 {
		return ErrNotPacked
	}

	// Preserve the on-screen position by re-expressing it in the root
	// world before the scrollarea reference changes.
	root := f.menu.area
	real := w.ScrollArea().ToRealRect(widgetRect(w))
	newPos := root.ToWorldPoint(real.Pos())

	f.children = append(f.children[:i], f.children[i+1:]...)
	w.setFrame(nil)
	w.setTranslation(0, 0)
	w.SetFloat(true)
	w.SetScrollArea(root)
	w.SetPosition(newPos.X, newPos.Y)

	f.menu.moveToEnd(w)

	// An emptied scrollable frame snaps back to its origin.
	if len(f.children) == 0 && f.inner != nil {
		f.inner.ScrollTo(Horizontal, 0)
		f.inner.ScrollTo(Vertical, 0)
	}

	f.menu.structureChanged()
	return nil
}

// Clear unpacks every child, returning them in pack order.
func (f *Frame) Clear() []Widget {
	out := f.Children()
	for _, w := range out {
		f.Unpack(w)
	}
	return out
}

// Translate shifts the Frame; descendant positions follow on the next
// layout pass since they derive from the Frame origin.
func (f *Frame) Translate(dx, dy int) {
	p := f.Position()
	f.SetPosition(p.X+dx, p.Y+dy)
	f.requestLayout()
}

// Resize replaces the base size and bounds, rebuilding the scrollable
// state on the next layout.
func (f *Frame) Resize(width, height, maxWidth, maxHeight int) {
	f.baseW, f.baseH = width, height
	f.maxW, f.maxH = maxWidth, maxHeight
	f.requestLayout()
}

func (f *Frame) requestLayout() {
	if f.menu != nil {
		f.menu.layoutPending = true
	}
}

// recomputeSize re-derives the natural content size and the scrollable
// state. Returns true when the reported size or the scrollable variant
// changed, which forces another layout pass. Runs deepest-frame-first
// so nested reported sizes are already settled.
func (f *Frame) recomputeSize() bool {
	prevW, prevH := f.Size()
	prevScrollable := f.scrollable

	cw, ch := 0, 0
	for _, e := range f.children {
		w := e.widget
		if !w.Visible() || w.Floating() {
			continue
		}
		ww, wh := w.Size()
		if f.orientation == Vertical {
			ch += wh + e.opts.MarginY
			if ww+e.opts.MarginX > cw {
				cw = ww + e.opts.MarginX
			}
		} else {
			cw += ww + e.opts.MarginX
			if wh+e.opts.MarginY > ch {
				ch = wh + e.opts.MarginY
			}
		}
	}
	f.contentW, f.contentH = cw, ch

	fw, fh := f.floorSize()
	scrollable := (f.maxW > 0 && fw > f.maxW) || (f.maxH > 0 && fh > f.maxH)
	if scrollable != f.scrollable {
		f.setScrollable(scrollable)
	}
	f.syncInnerArea()

	nw, nh := f.Size()
	return nw != prevW || nh != prevH || prevScrollable != f.scrollable
}

// setScrollable flips the Frame between its two variants. Entering the
// scrollable state builds the inner ScrollArea and re-parents every
// child's effective area onto it; leaving tears the area down and
// re-parents children back onto the ancestor area. Fresh references
// are pushed to the children here, never pulled by them.
func (f *Frame) setScrollable(scrollable bool) {
	f.scrollable = scrollable
	if scrollable {
		if f.inner == nil && f.menu != nil {
			f.inner = NewScrollArea(f.menu.theme)
		}
	} else {
		f.inner = nil
	}
	area := f.EffectiveArea()
	for _, e := range f.children {
		e.widget.SetScrollArea(area)
	}
}

// syncInnerArea keeps the inner area's geometry and weak parent link
// aligned with the Frame's current position and content.
func (f *Frame) syncInnerArea() {
	if f.inner == nil {
		return
	}
	f.inner.setParent(f.ScrollArea())
	r := widgetRect(f)
	th := f.titleHeight()
	f.inner.SetRect(geom.Rect{X: r.X, Y: r.Y + th, W: r.W, H: r.H - th})
	fw, fh := f.floorSize()
	f.inner.SetWorldSize(fw, fh)
}

// updatePosition computes each child's virtual translation from the
// pack alignment and pushes fresh position and scrollarea references
// down the tree. Runs top-down after sizes have settled.
func (f *Frame) updatePosition() {
	refW, refH := f.floorSize()
	offsets := make([]geom.Point, len(f.children))

	if f.orientation == Vertical {
		f.placeVertical(refW, refH, offsets)
	} else {
		f.placeHorizontal(refW, refH, offsets)
	}

	th := f.titleHeight()
	area := f.EffectiveArea()
	base := geom.Point{}
	if !f.scrollable {
		r := widgetRect(f)
		base = r.Pos()
	}

	for i, e := range f.children {
		w := e.widget
		if w.Floating() {
			continue
		}
		tx, ty := offsets[i].X, offsets[i].Y
		if f.scrollable {
			// Children live in the inner world; the title bar sits
			// outside the scrolled region.
			w.SetPosition(0, 0)
		} else {
			w.SetPosition(base.X, base.Y+th)
		}
		w.setTranslation(tx, ty)
		w.SetScrollArea(area)

		if cf, ok := w.(*Frame); ok {
			cf.syncInnerArea()
			cf.updatePosition()
		}
	}
	f.syncInnerArea()
}

// placeVertical stacks children top/bottom/center by VerticalPos and
// aligns them across by Align.
func (f *Frame) placeVertical(refW, refH int, offsets []geom.Point) {
	yTop, yBottom, centerH := 0, 0, 0
	for _, e := range f.children {
		if !e.widget.Visible() || e.widget.Floating() {
			continue
		}
		_, wh := e.widget.Size()
		if e.opts.VerticalPos == PosCenter {
			centerH += wh + e.opts.MarginY
		}
	}
	yCenter := refH/2 - centerH/2

	for i, e := range f.children {
		w := e.widget
		if !w.Visible() || w.Floating() {
			continue
		}
		ww, wh := w.Size()
		x := f.alignOffset(e.opts.Align, refW, ww) + e.opts.MarginX
		switch e.opts.VerticalPos {
		case PosNorth:
			yTop += e.opts.MarginY
			offsets[i] = geom.Point{X: x, Y: yTop}
			yTop += wh
		case PosSouth:
			yBottom -= wh + e.opts.MarginY
			offsets[i] = geom.Point{X: x, Y: refH + yBottom}
		case PosCenter:
			yCenter += e.opts.MarginY
			offsets[i] = geom.Point{X: x, Y: yCenter}
			yCenter += wh
		}
	}
}

// placeHorizontal lays children left/right/center by Align and places
// them across by VerticalPos.
func (f *Frame) placeHorizontal(refW, refH int, offsets []geom.Point) {
	xLeft, xRight, centerW := 0, 0, 0
	for _, e := range f.children {
		if !e.widget.Visible() || e.widget.Floating() {
			continue
		}
		ww, _ := e.widget.Size()
		if e.opts.Align == AlignCenter {
			centerW += ww + e.opts.MarginX
		}
	}
	xCenter := refW/2 - centerW/2

	for i, e := range f.children {
		w := e.widget
		if !w.Visible() || w.Floating() {
			continue
		}
		ww, wh := w.Size()
		y := f.crossOffset(e.opts.VerticalPos, refH, wh) + e.opts.MarginY
		switch e.opts.Align {
		case AlignLeft:
			xLeft += e.opts.MarginX
			offsets[i] = geom.Point{X: xLeft, Y: y}
			xLeft += ww
		case AlignRight:
			xRight -= ww + e.opts.MarginX
			offsets[i] = geom.Point{X: refW + xRight, Y: y}
		case AlignCenter:
			xCenter += e.opts.MarginX
			offsets[i] = geom.Point{X: xCenter, Y: y}
			xCenter += ww
		}
	}
}

func (f *Frame) alignOffset(a Align, ref, w int) int {
	switch a {
	case AlignCenter:
		return (ref - w) / 2
	case AlignRight:
		return ref - w
	default:
		return 0
	}
}

func (f *Frame) crossOffset(v VerticalPos, ref, h int) int {
	switch v {
	case PosCenter:
		return (ref - h) / 2
	case PosSouth:
		return ref - h
	default:
		return 0
	}
}

// titleBarRect returns the title bar in this Frame's world coordinates.
func (f *Frame) titleBarRect() geom.Rect {
	r := widgetRect(f)
	return geom.Rect{X: r.X, Y: r.Y, W: r.W, H: f.titleHeight()}
}

// HandleEvent implements title-bar dragging for floating frames; the
// press/drag-offset state machine resets on any release, matched or
// not.
func (f *Frame) HandleEvent(m *Menu, ev Event) bool {
	if !f.hasTitle {
		return false
	}
	switch ev.Kind {
	case PointerDown:
		if !f.Floating() || f.ScrollArea() == nil {
			return false
		}
		bar := f.ScrollArea().ToRealRect(f.titleBarRect())
		if bar.Contains(ev.Pos) {
			f.dragging = true
			f.dragFinger = ev.Finger
			wp := f.ScrollArea().ToWorldPoint(ev.Pos)
			f.dragStart = wp.Sub(f.Position())
			return true
		}
	case PointerMove:
		if f.dragging && ev.Finger == f.dragFinger {
			wp := f.ScrollArea().ToWorldPoint(ev.Pos)
			p := wp.Sub(f.dragStart)
			f.SetPosition(p.X, p.Y)
			f.requestLayout()
			return true
		}
	case PointerUp:
		was := f.dragging && ev.Finger == f.dragFinger
		f.dragging = false
		f.dragFinger = -1
		return was
	}
	return false
}

// Draw renders the Frame chrome and its children. A scrollable Frame
// draws the children into its inner world surface and blits the
// visible region; a plain Frame draws them straight into dst.
func (f *Frame) Draw(dst *ebiten.Image, m *Menu) {
	if !f.Visible() {
		return
	}
	r := widgetRect(f)

	if f.scrollable && f.inner != nil {
		world := f.inner.ensureWorld()
		if world != nil {
			world.Fill(m.theme.FrameColor)
			for _, e := range f.children {
				e.widget.Draw(world, m)
			}
		}
		f.inner.Draw(dst)
	} else {
		drawRect(dst, r, m.theme.FrameColor)
		for _, e := range f.children {
			e.widget.Draw(dst, m)
		}
	}

	if f.hasTitle {
		bar := f.titleBarRect()
		drawRect(dst, bar, m.theme.TitleBarColor)
		drawText(dst, f.title, bar.X+4, bar.Y+2, m.theme.TitleTextColor)
	}
	vector.StrokeRect(dst, float32(r.X), float32(r.Y), float32(r.W), float32(r.H),
		1, m.theme.FrameBorderColor, true)
}
