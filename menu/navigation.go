package menu

// Direction is a directional navigation input.
type Direction int

const (
	DirUp Direction = iota
	DirDown
	DirLeft
	DirRight
)

func (d Direction) String() string {
	switch d {
	case DirUp:
		return "up"
	case DirDown:
		return "down"
	case DirLeft:
		return "left"
	case DirRight:
		return "right"
	default:
		return "unknown"
	}
}

// SelectedWidget returns the focused widget, nil when none.
func (m *Menu) SelectedWidget() Widget { return m.selected }

// SelectedIndex returns the focus cursor as a flat-list index, -1 when
// nothing is selected.
func (m *Menu) SelectedIndex() int {
	if m.selected == nil {
		return -1
	}
	return m.WidgetIndex(m.selected)
}

// Select focuses w and scrolls every ancestor viewport so it becomes
// visible. Only selectable, visible leaves can take focus.
func (m *Menu) Select(w Widget) error {
	if !m.contains(w) {
		return ErrNotInMenu
	}
	if !w.Selectable() || !w.Visible() {
		return ErrTopology
	}
	prev := m.selected
	if prev == w {
		return nil
	}
	if prev != nil {
		prev.setSelected(false)
	}
	m.selected = w
	w.setSelected(true)

	m.resetLeftScrolls(prev, w)
	m.ScrollToWidget(w)
	return nil
}

// Deselect clears the focus cursor.
func (m *Menu) Deselect() {
	if m.selected != nil {
		m.selected.setSelected(false)
		m.selected = nil
	}
}

// frameChain lists the frames enclosing w, innermost first.
func frameChain(w Widget) []*Frame {
	var chain []*Frame
	for f := w.Frame(); f != nil; f = f.Frame() {
		chain = append(chain, f)
	}
	return chain
}

// resetLeftScrolls snaps a scrollable frame back to its origin when the
// focus leaves it: the frame's own scroll position is meaningless to a
// selection that lives outside it.
func (m *Menu) resetLeftScrolls(prev, next Widget) {
	if prev == nil {
		return
	}
	nextChain := map[*Frame]bool{}
	if next != nil {
		for _, f := range frameChain(next) {
			nextChain[f] = true
		}
	}
	for _, f := range frameChain(prev) {
		if f.inner != nil && !nextChain[f] {
			f.inner.ScrollTo(Horizontal, 0)
			f.inner.ScrollTo(Vertical, 0)
		}
	}
}

// ScrollToWidget corrects every ScrollArea between w and the root,
// innermost first, so w is visible at every nesting level at once: a
// leaf can be scrolled into its local view yet remain hidden behind an
// ancestor's clip, so every level must move.
func (m *Menu) ScrollToWidget(w Widget) {
	area := w.ScrollArea()
	if area == nil {
		return
	}
	area.ScrollToRect(widgetRect(w), m.theme.ScrollToMargin)
}

// selectableLeaves returns focus candidates: selectable visible leaf
// widgets whose every enclosing frame is visible. Container markers and
// spacers never qualify.
func (m *Menu) selectableLeaves() []Widget {
	var out []Widget
	for _, w := range m.widgets {
		if _, ok := w.(*Frame); ok {
			continue
		}
		if !w.Selectable() || !w.Visible() {
			continue
		}
		hidden := false
		for _, f := range frameChain(w) {
			if !f.Visible() {
				hidden = true
				break
			}
		}
		if !hidden {
			out = append(out, w)
		}
	}
	return out
}

// MoveFocus moves the selection to the closest selectable leaf in the
// given direction by grid-coordinate distance, ties broken by flat
// order, wrapping past the edge. Crossing a container boundary scrolls
// every ancestor viewport of the new selection.
func (m *Menu) MoveFocus(dir Direction) bool {
	leaves := m.selectableLeaves()
	if len(leaves) == 0 {
		return false
	}
	if m.selected == nil {
		return m.Select(leaves[0]) == nil
	}

	cur := m.selected
	ccol, crow := cur.ColRow()

	best := m.nearestInDirection(leaves, cur, ccol, crow, dir)
	if best == nil {
		best = wrapCandidate(leaves, cur, ccol, crow, dir)
	}
	if best == nil || best == cur {
		return false
	}
	return m.Select(best) == nil
}

// nearestInDirection picks the candidate strictly in the direction with
// the smallest primary-axis distance, then cross-axis distance; the
// flat-order scan makes earlier entries win remaining ties.
func (m *Menu) nearestInDirection(leaves []Widget, cur Widget, ccol, crow int, dir Direction) Widget {
	var best Widget
	bestPrimary, bestCross := 0, 0
	for _, w := range leaves {
		if w == cur {
			continue
		}
		col, row := w.ColRow()
		var primary, cross int
		switch dir {
		case DirUp:
			primary, cross = crow-row, abs(col-ccol)
		case DirDown:
			primary, cross = row-crow, abs(col-ccol)
		case DirLeft:
			primary, cross = ccol-col, abs(row-crow)
		case DirRight:
			primary, cross = col-ccol, abs(row-crow)
		}
		if primary <= 0 {
			continue
		}
		if best == nil || primary < bestPrimary ||
			(primary == bestPrimary && cross < bestCross) {
			best, bestPrimary, bestCross = w, primary, cross
		}
	}
	return best
}

// wrapCandidate implements edge wrap-around: moving down past the last
// row lands on the first, and so on.
func wrapCandidate(leaves []Widget, cur Widget, ccol, crow int, dir Direction) Widget {
	var best Widget
	bestVal, bestCross := 0, 0
	for _, w := range leaves {
		if w == cur {
			continue
		}
		col, row := w.ColRow()
		// Down/right wrap to the minimum coordinate, up/left to the
		// maximum; maximize val either way.
		var val, cross int
		switch dir {
		case DirUp:
			val, cross = row, abs(col-ccol)
		case DirDown:
			val, cross = -row, abs(col-ccol)
		case DirLeft:
			val, cross = col, abs(row-crow)
		case DirRight:
			val, cross = -col, abs(row-crow)
		}
		if best == nil || val > bestVal ||
			(val == bestVal && cross < bestCross) {
			best, bestVal, bestCross = w, val, cross
		}
	}
	return best
}
