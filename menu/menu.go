package menu

import (
	"fmt"
	"sort"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/OpticalFlyer/menukit/geom"
)

// The circular sizing problem (bars depend on content, content on child
// layout, child layout on bars) is resolved by re-running the sizing
// pass until it settles; thickness is constant so a handful of passes
// always suffices.
const maxLayoutPasses = 8

// Menu is the top-level owner: it holds the single flat order list of
// every widget, the root ScrollArea, the selection cursor, and the
// per-tick update/draw loop. All structural mutation flows through it
// so membership ranges stay contiguous.
type Menu struct {
	rect  geom.Rect
	theme *Theme
	area  *ScrollArea

	// widgets is the flat order list: each Frame acts as its own
	// header and its transitive children follow it contiguously.
	widgets []Widget

	selected Widget

	autoGrid      bool
	layoutPending bool
	inUpdate      bool
	deferred      []func()
}

// New creates a Menu covering the given screen rectangle.
func New(x, y, width, height int, theme *Theme) *Menu {
	if theme == nil {
		theme = DefaultTheme()
	}
	area := NewScrollArea(theme)
	area.SetRect(geom.Rect{X: x, Y: y, W: width, H: height})
	area.SetBackground(theme.Background)
	return &Menu{
		rect:     geom.Rect{X: x, Y: y, W: width, H: height},
		theme:    theme,
		area:     area,
		autoGrid: true,
	}
}

// Theme returns the menu's visual configuration.
func (m *Menu) Theme() *Theme { return m.theme }

// Rect returns the menu's screen rectangle.
func (m *Menu) Rect() geom.Rect { return m.rect }

// RootArea returns the menu-root ScrollArea.
func (m *Menu) RootArea() *ScrollArea { return m.area }

// SetAutoGrid toggles automatic (column, row) assignment for
// selectable leaves. On by default; disable when placing widgets on an
// explicit grid via SetColRow.
func (m *Menu) SetAutoGrid(auto bool) { m.autoGrid = auto }

// Resize moves or resizes the menu viewport; used when the host window
// changes size.
func (m *Menu) Resize(x, y, width, height int) {
	m.rect = geom.Rect{X: x, Y: y, W: width, H: height}
	m.area.SetRect(m.rect)
	m.layoutPending = true
}

// DrawList returns the ordered flat list rendered each tick.
func (m *Menu) DrawList() []Widget {
	return append([]Widget(nil), m.widgets...)
}

// WidgetIndex returns w's index in the flat list, -1 if absent.
func (m *Menu) WidgetIndex(w Widget) int {
	for i, x := range m.widgets {
		if x == w {
			return i
		}
	}
	return -1
}

func (m *Menu) contains(w Widget) bool { return m.WidgetIndex(w) >= 0 }

// Add appends a widget (or a Frame) at the end of the top level.
func (m *Menu) Add(w Widget) error {
	if m.contains(w) {
		return fmt.Errorf("menu: widget added twice")
	}
	if f, ok := w.(*Frame); ok {
		if f.menu != nil && f.menu != m {
			return ErrTopology
		}
		f.menu = m
	}
	w.SetScrollArea(m.area)
	m.widgets = append(m.widgets, w)
	m.structureChanged()
	return nil
}

// Remove detaches a widget from the menu. Removing a Frame promotes
// its children to floating top-level widgets; they are never silently
// deleted. During an update pass the removal is deferred to the end of
// the pass.
func (m *Menu) Remove(w Widget) error {
	if !m.contains(w) {
		return ErrNotInMenu
	}
	if m.inUpdate {
		m.deferred = append(m.deferred, func() { m.Remove(w) })
		return nil
	}
	if fr := w.Frame(); fr != nil {
		if err := fr.Unpack(w); err != nil {
			return err
		}
	}
	if f, ok := w.(*Frame); ok {
		for _, c := range f.Children() {
			f.Unpack(c)
		}
		f.menu = nil
		f.firstIdx, f.lastIdx = -1, -1
	}
	if i := m.WidgetIndex(w); i >= 0 {
		m.widgets = append(m.widgets[:i], m.widgets[i+1:]...)
	}
	if m.selected == w {
		m.selected = nil
	}
	w.SetScrollArea(nil)
	m.structureChanged()
	return nil
}

// moveToEnd relocates w's flat entry to the end of the list; the next
// linearize pass keeps it there as the last root.
func (m *Menu) moveToEnd(w Widget) {
	if i := m.WidgetIndex(w); i >= 0 {
		m.widgets = append(m.widgets[:i], m.widgets[i+1:]...)
		m.widgets = append(m.widgets, w)
	}
}

// blockRange returns the contiguous flat range [start, end] occupied
// by w and, when w is a Frame, its transitive children. The span length
// comes from the frame's derived indices, the start from a fresh scan:
// the stored indices are absolute positions from the last linearize and
// go stale as soon as an unrelated block is spliced out.
func (m *Menu) blockRange(w Widget) (int, int) {
	start := m.WidgetIndex(w)
	if start < 0 {
		return -1, -1
	}
	end := start
	if f, ok := w.(*Frame); ok && f.lastIdx > f.firstIdx {
		end = start + (f.lastIdx - f.firstIdx)
	}
	return start, end
}

// MoveTo relocates w (with its whole contiguous block when w is a
// Frame) to immediately before or after anchor. Both must live in the
// same container; the anchor cannot sit inside the moved block.
func (m *Menu) MoveTo(w, anchor Widget, after bool) error {
	if !m.contains(w) || !m.contains(anchor) {
		return ErrNotInMenu
	}
	if w == anchor {
		return ErrTopology
	}
	if f, ok := w.(*Frame); ok && f.isAncestorOf(anchor) {
		return ErrTopology
	}
	if w.Frame() != anchor.Frame() {
		return ErrTopology
	}

	if fr := w.Frame(); fr != nil {
		// Reorder inside the owning frame; linearize re-derives the
		// flat placement and every affected range.
		i := fr.childIndex(w)
		e := fr.children[i]
		fr.children = append(fr.children[:i], fr.children[i+1:]...)
		j := fr.childIndex(anchor)
		if after {
			j++
		}
		fr.children = append(fr.children[:j],
			append([]packEntry{e}, fr.children[j:]...)...)
	} else {
		start, end := m.blockRange(w)
		block := append([]Widget(nil), m.widgets[start:end+1]...)
		m.widgets = append(m.widgets[:start], m.widgets[end+1:]...)

		as, ae := m.blockRange(anchor)
		at := as
		if after {
			at = ae + 1
		}
		m.widgets = append(m.widgets[:at],
			append(block, m.widgets[at:]...)...)
	}

	m.structureChanged()
	return nil
}

// structureChanged re-linearizes the flat list and schedules a layout
// pass. Called after every structural mutation; the list is not valid
// for rendering or navigation in between.
func (m *Menu) structureChanged() {
	m.linearize()
	m.layoutPending = true
}

// linearize rebuilds the flat list by a pre-order traversal of the
// container tree: each Frame header first, then its children in pack
// order, recursing into sub-frames. Membership ranges are re-derived
// from scratch — they are never incrementally patched, so they cannot
// drift.
func (m *Menu) linearize() {
	roots := make([]Widget, 0, len(m.widgets))
	for _, w := range m.widgets {
		if w.Frame() == nil {
			roots = append(roots, w)
		}
	}

	flat := make([]Widget, 0, len(m.widgets))
	var emit func(w Widget)
	emit = func(w Widget) {
		flat = append(flat, w)
		if f, ok := w.(*Frame); ok {
			f.firstIdx = len(flat) - 1
			for _, e := range f.children {
				emit(e.widget)
			}
			f.lastIdx = len(flat) - 1
		}
	}
	for _, r := range roots {
		emit(r)
	}
	m.widgets = flat

	if m.autoGrid {
		row := 0
		for _, w := range m.widgets {
			if _, ok := w.(*Frame); ok {
				continue
			}
			if w.Selectable() {
				w.SetColRow(0, row)
				row++
			}
		}
	}
}

// checkIndices verifies the containment invariant: every transitive
// descendant of a container occupies an index strictly between the
// container's own index and one past its last index, with no foreign
// entries interleaved.
func (m *Menu) checkIndices() error {
	for _, w := range m.widgets {
		f, ok := w.(*Frame)
		if !ok {
			continue
		}
		for j, x := range m.widgets {
			isDesc := f.isAncestorOf(x)
			inRange := j > f.firstIdx && j <= f.lastIdx
			if isDesc != inRange {
				return fmt.Errorf("menu: index invariant broken: frame [%d,%d], widget at %d desc=%v",
					f.firstIdx, f.lastIdx, j, isDesc)
			}
		}
	}
	return nil
}

// areasSorted returns every live ScrollArea, deepest first, so nested
// bars win pointer disputes over their ancestors.
func (m *Menu) areasSorted() []*ScrollArea {
	areas := []*ScrollArea{m.area}
	for _, w := range m.widgets {
		if f, ok := w.(*Frame); ok && f.inner != nil {
			areas = append(areas, f.inner)
		}
	}
	sort.SliceStable(areas, func(i, j int) bool {
		return areas[i].Depth() > areas[j].Depth()
	})
	return areas
}

// framesByDepth returns all frames, deepest nesting first.
func (m *Menu) framesByDepth() []*Frame {
	var frames []*Frame
	for _, w := range m.widgets {
		if f, ok := w.(*Frame); ok {
			frames = append(frames, f)
		}
	}
	sort.SliceStable(frames, func(i, j int) bool {
		return frames[i].Depth() > frames[j].Depth()
	})
	return frames
}

// Layout runs the sizing/positioning fixed point immediately. Usually
// implicit via Update/Draw; tests and hosts may force it.
func (m *Menu) Layout() {
	m.layout()
}

func (m *Menu) layout() {
	m.layoutPending = false
	for pass := 0; pass < maxLayoutPasses; pass++ {
		changed := false
		frames := m.framesByDepth()
		for _, f := range frames {
			if f.recomputeSize() {
				changed = true
			}
		}
		m.positionRoots()
		for _, w := range m.widgets {
			if f, ok := w.(*Frame); ok && f.Frame() == nil {
				f.updatePosition()
			}
		}
		if !changed {
			break
		}
	}
}

// positionRoots stacks the non-floating top-level widgets into the
// root world and resizes it to the content bounds. Floating widgets
// keep whatever position they hold.
func (m *Menu) positionRoots() {
	pad := m.theme.Padding
	y := pad
	var bounds geom.Rect

	for _, w := range m.widgets {
		if w.Frame() != nil {
			continue
		}
		w.SetScrollArea(m.area)
		if w.Floating() || !w.Visible() {
			if w.Visible() {
				bounds = bounds.Union(widgetRect(w))
			}
			continue
		}
		ww, wh := w.Size()
		w.SetPosition(pad, y)
		w.setTranslation(0, 0)
		y += wh + pad
		bounds = bounds.Union(geom.Rect{X: pad, Y: y - wh - pad, W: ww, H: wh})
	}

	m.area.SetWorldSize(bounds.Right()+pad, bounds.Bottom()+pad)
}

// Update consumes one tick's normalized events. ScrollBar and pan
// gestures are applied before widget dispatch, so drag feedback and
// the dependent view geometry stay consistent within the frame.
// Structural mutations requested by widget callbacks run against a
// stable snapshot; destructive ones (Remove) are deferred to the end
// of the pass.
func (m *Menu) Update(events []Event) bool {
	m.inUpdate = true
	updated := false

	areas := m.areasSorted()
	snapshot := append([]Widget(nil), m.widgets...)

	for _, ev := range events {
		if ev.Kind == KeyPress {
			if m.handleKey(ev.Key) {
				updated = true
			}
			continue
		}
		consumed := false
		for _, a := range areas {
			if a.HandleEvent(ev) {
				consumed = true
				break
			}
		}
		if !consumed {
			for _, w := range snapshot {
				if w.HandleEvent(m, ev) {
					consumed = true
					break
				}
			}
		}
		if consumed {
			updated = true
		}
	}

	m.inUpdate = false
	if len(m.deferred) > 0 {
		pending := m.deferred
		m.deferred = nil
		for _, fn := range pending {
			fn()
		}
		updated = true
	}
	if m.layoutPending {
		m.layout()
	}
	return updated
}

func (m *Menu) handleKey(k Key) bool {
	switch k {
	case KeyUp:
		return m.MoveFocus(DirUp)
	case KeyDown:
		return m.MoveFocus(DirDown)
	case KeyLeft:
		return m.MoveFocus(DirLeft)
	case KeyRight:
		return m.MoveFocus(DirRight)
	case KeyHome:
		m.area.ScrollTo(Vertical, 0)
		return true
	case KeyEnd:
		m.area.ScrollToPercentage(Vertical, 1)
		return true
	case KeyPageUp, KeyPageDown:
		// Page the focused widget's own viewport; the root is the
		// fallback when nothing is selected or its area has no
		// vertical overflow.
		area := m.area
		if m.selected != nil {
			if sa := m.selected.ScrollArea(); sa != nil && sa.HiddenHeight() > 0 {
				area = sa
			}
		}
		if bar := area.authoritativeBar(Vertical); bar != nil && bar.Visible() {
			step := bar.PageStep()
			if k == KeyPageUp {
				step = -step
			}
			bar.SetValue(bar.Value() + step)
			return true
		}
	case KeyEnter:
		if m.selected != nil {
			return m.selected.HandleEvent(m, Event{Kind: KeyPress, Key: KeyEnter, Finger: -1})
		}
	}
	return false
}

// IsScrolling reports whether any area in the tree has a scroll
// gesture in progress.
func (m *Menu) IsScrolling() bool {
	for _, a := range m.areasSorted() {
		if a.IsScrolling() {
			return true
		}
	}
	return false
}

// Draw renders the whole menu into screen.
func (m *Menu) Draw(screen *ebiten.Image) {
	if m.layoutPending {
		m.layout()
	}
	world := m.area.ensureWorld()
	if world != nil {
		world.Fill(m.theme.Background)
		for _, w := range m.widgets {
			if w.Frame() == nil {
				w.Draw(world, m)
			}
		}
	}
	m.area.Draw(screen)
}
