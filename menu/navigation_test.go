package menu

import (
	"errors"
	"testing"
)

func TestSelectErrors(t *testing.T) {
	m := newTestMenu()
	b := addButton(t, m, "b")
	l := NewLabel("label")
	if err := m.Add(l); err != nil {
		t.Fatalf("Add: %v", err)
	}
	m.Layout()

	stray := NewButton("stray", nil)
	if err := m.Select(stray); !errors.Is(err, ErrNotInMenu) {
		t.Fatalf("Select of stray widget: %v; want ErrNotInMenu", err)
	}
	if err := m.Select(l); err == nil {
		t.Fatal("Select of a non-selectable label succeeded")
	}
	b.SetVisible(false)
	if err := m.Select(b); err == nil {
		t.Fatal("Select of a hidden widget succeeded")
	}
	b.SetVisible(true)
	if err := m.Select(b); err != nil {
		t.Fatalf("Select: %v", err)
	}
	if m.SelectedWidget() != b || !b.Selected() {
		t.Fatal("selection state not applied")
	}

	m.Deselect()
	if m.SelectedWidget() != nil || b.Selected() {
		t.Fatal("deselect did not clear state")
	}
}

func TestMoveFocusColumn(t *testing.T) {
	m := newTestMenu()
	buttons := make([]*Button, 4)
	for i := range buttons {
		buttons[i] = addButton(t, m, "b")
	}
	m.Layout()

	// No selection yet: the first leaf takes focus.
	if !m.MoveFocus(DirDown) {
		t.Fatal("MoveFocus with no selection failed")
	}
	if m.SelectedWidget() != buttons[0] {
		t.Fatal("initial focus not on first leaf")
	}

	if !m.MoveFocus(DirDown) || m.SelectedWidget() != buttons[1] {
		t.Fatal("down did not advance")
	}
	if !m.MoveFocus(DirUp) || m.SelectedWidget() != buttons[0] {
		t.Fatal("up did not retreat")
	}

	// Wrap past both edges.
	if !m.MoveFocus(DirUp) || m.SelectedWidget() != buttons[3] {
		t.Fatal("up from the top did not wrap to the bottom")
	}
	if !m.MoveFocus(DirDown) || m.SelectedWidget() != buttons[0] {
		t.Fatal("down from the bottom did not wrap to the top")
	}
}

func TestMoveFocusGrid(t *testing.T) {
	m := newTestMenu()
	m.SetAutoGrid(false)

	// 2x2 grid plus a far column to exercise distance ranking.
	//   a(0,0) b(1,0) e(3,0)
	//   c(0,1) d(1,1)
	a := addButton(t, m, "a")
	b := addButton(t, m, "b")
	c := addButton(t, m, "c")
	d := addButton(t, m, "d")
	e := addButton(t, m, "e")
	a.SetColRow(0, 0)
	b.SetColRow(1, 0)
	c.SetColRow(0, 1)
	d.SetColRow(1, 1)
	e.SetColRow(3, 0)
	m.Layout()

	if err := m.Select(a); err != nil {
		t.Fatalf("Select: %v", err)
	}

	steps := []struct {
		dir  Direction
		want Widget
	}{
		{DirRight, b}, // nearest beats e two columns out
		{DirDown, d},
		{DirLeft, c},
		{DirUp, a},
		{DirLeft, e}, // wrap to the highest column
	}
	for _, s := range steps {
		if !m.MoveFocus(s.dir) {
			t.Fatalf("MoveFocus(%v) failed", s.dir)
		}
		if m.SelectedWidget() != s.want {
			t.Fatalf("MoveFocus(%v) landed on the wrong widget", s.dir)
		}
	}
}

func TestMoveFocusFlatOrderTieBreak(t *testing.T) {
	m := newTestMenu()
	m.SetAutoGrid(false)
	cur := addButton(t, m, "cur")
	first := addButton(t, m, "first")
	second := addButton(t, m, "second")
	cur.SetColRow(0, 0)
	// Equal primary and cross distance: the earlier flat entry wins.
	first.SetColRow(1, 1)
	second.SetColRow(-1, 1)
	m.Layout()

	if err := m.Select(cur); err != nil {
		t.Fatalf("Select: %v", err)
	}
	if !m.MoveFocus(DirDown) || m.SelectedWidget() != first {
		t.Fatal("tie not broken by flat order")
	}
}

func TestMoveFocusSkipsHidden(t *testing.T) {
	m := newTestMenu()
	b0 := addButton(t, m, "b0")
	b1 := addButton(t, m, "b1")
	b2 := addButton(t, m, "b2")
	m.Layout()

	b1.SetVisible(false)
	if err := m.Select(b0); err != nil {
		t.Fatalf("Select: %v", err)
	}
	if !m.MoveFocus(DirDown) || m.SelectedWidget() != b2 {
		t.Fatal("hidden widget not skipped")
	}

	// Widgets inside a hidden frame are unreachable too.
	f := NewFrame(400, 100, Vertical)
	f.Relax(true)
	if err := m.Add(f); err != nil {
		t.Fatalf("Add: %v", err)
	}
	inner := addButton(t, m, "inner")
	mustPack(t, f, inner)
	f.SetVisible(false)
	m.Layout()

	if err := m.Select(b2); err != nil {
		t.Fatalf("Select: %v", err)
	}
	if !m.MoveFocus(DirDown) || m.SelectedWidget() == inner {
		t.Fatal("widget inside hidden frame took focus")
	}
}

func TestSelectScrollsWidgetIntoView(t *testing.T) {
	m := New(0, 0, 300, 200, nil)
	var last *Button
	for i := 0; i < 20; i++ {
		last = addButton(t, m, "item")
	}
	m.Layout()

	if m.RootArea().HiddenHeight() == 0 {
		t.Fatal("content does not overflow the viewport")
	}
	if err := m.Select(last); err != nil {
		t.Fatalf("Select: %v", err)
	}
	r := VisibleRect(last)
	w, h := last.Size()
	if r.W != w || r.H != h {
		t.Fatalf("selected widget only %dx%d visible; want %dx%d", r.W, r.H, w, h)
	}
}

// buildNestedScrollMenu returns a menu with one button outside and a
// scrollable frame whose buttons spill past its bound.
func buildNestedScrollMenu(t *testing.T) (m *Menu, outside *Button, f *Frame, inside []*Button) {
	t.Helper()
	m = newTestMenu()
	outside = addButton(t, m, "outside")
	f = NewFrame(200, 40, Vertical)
	f.SetMaxHeight(100)
	if err := m.Add(f); err != nil {
		t.Fatalf("Add: %v", err)
	}
	inside = make([]*Button, 5)
	for i := range inside {
		inside[i] = addButton(t, m, "inside")
		mustPack(t, f, inside[i])
	}
	m.Layout()
	if !f.IsScrollable() {
		t.Fatal("frame did not promote to scrollable")
	}
	return m, outside, f, inside
}

func TestFocusLeavingFrameResetsItsScroll(t *testing.T) {
	m, outside, f, inside := buildNestedScrollMenu(t)

	if err := m.Select(inside[4]); err != nil {
		t.Fatalf("Select: %v", err)
	}
	f.InnerArea().ScrollToPercentage(Vertical, 1)
	if f.InnerArea().ScrollValuePercentage(Vertical) != 1 {
		t.Fatal("scroll to bottom had no effect")
	}

	// Moving the focus out snaps the abandoned frame back to origin.
	if err := m.Select(outside); err != nil {
		t.Fatalf("Select: %v", err)
	}
	if got := f.InnerArea().ScrollValuePercentage(Vertical); got != 0 {
		t.Fatalf("scroll percentage = %v after focus left; want 0", got)
	}

	// Moving between two widgets of the same frame keeps its scroll.
	if err := m.Select(inside[4]); err != nil {
		t.Fatalf("Select: %v", err)
	}
	before := f.InnerArea().Offsets()
	if err := m.Select(inside[3]); err != nil {
		t.Fatalf("Select: %v", err)
	}
	if f.InnerArea().Offsets() != before {
		t.Fatal("scroll reset while focus stayed inside the frame")
	}
}

func TestSelectInsideScrollableFrameScrolls(t *testing.T) {
	m, _, f, inside := buildNestedScrollMenu(t)

	if err := m.Select(inside[4]); err != nil {
		t.Fatalf("Select: %v", err)
	}
	r := VisibleRect(inside[4])
	w, h := inside[4].Size()
	if r.W != w || r.H != h {
		t.Fatalf("selected widget only %dx%d visible; want %dx%d", r.W, r.H, w, h)
	}
	if f.InnerArea().Offsets().Y == 0 {
		t.Fatal("inner area did not scroll to reveal the last button")
	}
}

func TestPageKeysScrollFocusedFrame(t *testing.T) {
	m, _, f, inside := buildNestedScrollMenu(t)

	if err := m.Select(inside[0]); err != nil {
		t.Fatalf("Select: %v", err)
	}
	inner := f.InnerArea()
	if inner.Offsets().Y != 0 {
		t.Fatal("selection of the first button moved the frame")
	}

	m.Update([]Event{{Kind: KeyPress, Key: KeyPageDown, Finger: -1}})
	if inner.Offsets().Y == 0 {
		t.Fatal("page down did not scroll the focused frame")
	}
	m.Update([]Event{{Kind: KeyPress, Key: KeyPageUp, Finger: -1}})
	if inner.Offsets().Y != 0 {
		t.Fatalf("offset = %d after page up; want 0", inner.Offsets().Y)
	}
}

func TestKeyboardNavigationViaUpdate(t *testing.T) {
	m := newTestMenu()
	b0 := addButton(t, m, "b0")
	b1 := addButton(t, m, "b1")
	m.Layout()

	clicks := 0
	b1.onClick = func() { clicks++ }

	m.Update([]Event{{Kind: KeyPress, Key: KeyDown, Finger: -1}})
	if m.SelectedWidget() != b0 {
		t.Fatal("first key press did not focus the first button")
	}
	m.Update([]Event{{Kind: KeyPress, Key: KeyDown, Finger: -1}})
	if m.SelectedWidget() != b1 {
		t.Fatal("second key press did not advance")
	}
	m.Update([]Event{{Kind: KeyPress, Key: KeyEnter, Finger: -1}})
	if clicks != 1 {
		t.Fatalf("clicks = %d after Enter; want 1", clicks)
	}
}
