package menu

import (
	"testing"

	"github.com/OpticalFlyer/menukit/geom"
)

func newTestArea(rect geom.Rect, worldW, worldH int) *ScrollArea {
	a := NewScrollArea(DefaultTheme())
	a.SetRect(rect)
	a.SetWorldSize(worldW, worldH)
	return a
}

func TestScrollAreaViewRect(t *testing.T) {
	tests := []struct {
		name           string
		rect           geom.Rect
		worldW, worldH int
		want           geom.Rect
	}{
		{
			name: "world fits, full rect",
			rect: geom.Rect{X: 10, Y: 10, W: 200, H: 150},
			worldW: 200, worldH: 150,
			want: geom.Rect{X: 10, Y: 10, W: 200, H: 150},
		},
		{
			name: "both axes overflow",
			rect: geom.Rect{X: 10, Y: 10, W: 200, H: 150},
			worldW: 400, worldH: 300,
			want: geom.Rect{X: 10, Y: 10, W: 180, H: 130},
		},
		{
			name: "vertical overflow only",
			rect: geom.Rect{X: 0, Y: 0, W: 100, H: 100},
			worldW: 70, worldH: 150,
			want: geom.Rect{X: 0, Y: 0, W: 80, H: 100},
		},
		{
			name: "vertical bar causes horizontal overflow",
			rect: geom.Rect{X: 0, Y: 0, W: 100, H: 100},
			worldW: 90, worldH: 150,
			want: geom.Rect{X: 0, Y: 0, W: 80, H: 80},
		},
		{
			name: "horizontal bar causes vertical overflow",
			rect: geom.Rect{X: 0, Y: 0, W: 100, H: 100},
			worldW: 150, worldH: 90,
			want: geom.Rect{X: 0, Y: 0, W: 80, H: 80},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := newTestArea(tt.rect, tt.worldW, tt.worldH)
			if got := a.ViewRect(); got != tt.want {
				t.Errorf("ViewRect() = %+v; want %+v", got, tt.want)
			}
		})
	}
}

func TestScrollAreaTransformRoundTrip(t *testing.T) {
	a := newTestArea(geom.Rect{X: 10, Y: 10, W: 200, H: 150}, 400, 300)
	a.ScrollTo(Horizontal, 60)
	a.ScrollTo(Vertical, 40)

	if got := (geom.Point{X: 60, Y: 40}); a.Offsets() != got {
		t.Fatalf("Offsets() = %+v; want %+v", a.Offsets(), got)
	}

	points := []geom.Point{
		{X: 0, Y: 0},
		{X: 100, Y: 90},
		{X: 399, Y: 299},
		{X: -5, Y: 7},
	}
	for _, p := range points {
		real := a.ToRealPoint(p)
		back := a.ToWorldPoint(real)
		if back != p {
			t.Errorf("round trip %+v -> %+v -> %+v", p, real, back)
		}
	}

	if got := a.ToRealPoint(geom.Point{X: 100, Y: 90}); got != (geom.Point{X: 50, Y: 60}) {
		t.Errorf("ToRealPoint = %+v; want (50, 60)", got)
	}
}

func TestScrollAreaOffsetsClamped(t *testing.T) {
	a := newTestArea(geom.Rect{X: 0, Y: 0, W: 200, H: 150}, 400, 300)

	a.ScrollTo(Horizontal, 100000)
	a.ScrollTo(Vertical, -100000)

	off := a.Offsets()
	if off.X != a.HiddenWidth() || off.Y != 0 {
		t.Fatalf("Offsets() = %+v; want (%d, 0)", off, a.HiddenWidth())
	}
}

func TestScrollAreaHiddenExtents(t *testing.T) {
	a := newTestArea(geom.Rect{X: 0, Y: 0, W: 200, H: 150}, 400, 300)
	// view is 180x130 once both bars are up
	if got := a.HiddenWidth(); got != 220 {
		t.Errorf("HiddenWidth() = %d; want 220", got)
	}
	if got := a.HiddenHeight(); got != 170 {
		t.Errorf("HiddenHeight() = %d; want 170", got)
	}

	b := newTestArea(geom.Rect{X: 0, Y: 0, W: 200, H: 150}, 0, 0)
	if b.HiddenWidth() != 0 || b.HiddenHeight() != 0 {
		t.Error("degenerate world reports hidden pixels")
	}
	if b.IsScrolling() {
		t.Error("degenerate world reports scrolling")
	}
	b.ScrollTo(Vertical, 50)
	if b.Offsets() != (geom.Point{}) {
		t.Errorf("degenerate world scrolled to %+v", b.Offsets())
	}
}

func TestScrollAreaSiblingBarSync(t *testing.T) {
	theme := DefaultTheme()
	theme.Scrollbars = []Position{North, South}
	a := NewScrollArea(theme)
	a.SetRect(geom.Rect{X: 0, Y: 0, W: 100, H: 100})
	a.SetWorldSize(300, 50)

	notified := 0
	south := a.bars[South]
	north := a.bars[North]
	north.onChange = func(*ScrollBar, int) { notified++ }

	south.SetValue(40)
	if north.Value() != 40 {
		t.Fatalf("north value=%d after south set; want 40", north.Value())
	}
	if notified != 0 {
		t.Fatalf("sibling sync fired %d notifications; want 0", notified)
	}
	if a.authoritativeBar(Horizontal) != south {
		t.Fatal("south bar is not authoritative")
	}
}

func TestScrollAreaForceHiddenBars(t *testing.T) {
	a := newTestArea(geom.Rect{X: 0, Y: 0, W: 100, H: 100}, 100, 300)

	if got := a.ViewRect(); got.W != 80 {
		t.Fatalf("ViewRect().W = %d before hide; want 80", got.W)
	}
	a.HideScrollbars(Vertical)
	if got := a.ViewRect(); got.W != 100 {
		t.Fatalf("ViewRect().W = %d after hide; want 100", got.W)
	}
	a.ShowScrollbars(Vertical)
	if got := a.ViewRect(); got.W != 80 {
		t.Fatalf("ViewRect().W = %d after show; want 80", got.W)
	}
}

// nestedAreas builds a parent whose world holds a child area: parent is
// 300x200 on screen with a 200x400 world, the child occupies the world
// band y=[100,200) and exactly fits its own content.
func nestedAreas() (parent, child *ScrollArea) {
	parent = newTestArea(geom.Rect{X: 0, Y: 0, W: 300, H: 200}, 200, 400)
	child = newTestArea(geom.Rect{X: 0, Y: 100, W: 200, H: 100}, 200, 100)
	child.setParent(parent)
	return parent, child
}

func TestScrollAreaNestedVisibility(t *testing.T) {
	parent, child := nestedAreas()

	parent.ScrollTo(Vertical, 150)
	// child top maps to screen y=-50; only its lower half shows.
	got := child.AbsoluteViewRect()
	want := geom.Rect{X: 0, Y: 0, W: 200, H: 50}
	if got != want {
		t.Fatalf("AbsoluteViewRect() = %+v; want %+v", got, want)
	}

	r := child.ToRealRectVisible(geom.Rect{X: 0, Y: 60, W: 200, H: 40})
	if r != (geom.Rect{X: 0, Y: 10, W: 200, H: 40}) {
		t.Errorf("partially scrolled rect = %+v", r)
	}

	// Scrolled fully past: everything in the child collapses to zero.
	parent.ScrollToPercentage(Vertical, 1)
	if vr := child.AbsoluteViewRect(); !vr.Empty() {
		t.Fatalf("AbsoluteViewRect() = %+v; want empty", vr)
	}
	if r := child.ToRealRectVisible(geom.Rect{X: 0, Y: 0, W: 200, H: 100}); !r.Empty() {
		t.Errorf("clipped rect = %+v; want empty", r)
	}
}

func TestScrollAreaScrollToRect(t *testing.T) {
	a := newTestArea(geom.Rect{X: 0, Y: 0, W: 200, H: 150}, 400, 300)

	target := geom.Rect{X: 300, Y: 250, W: 50, H: 30}
	if !a.ScrollToRect(target, 0) {
		t.Fatal("ScrollToRect reported no movement")
	}
	real := a.ToRealRect(target)
	if !a.AbsoluteViewRect().ContainsRect(real) {
		t.Fatalf("target %+v not inside view %+v", real, a.AbsoluteViewRect())
	}

	// Already visible: no movement.
	off := a.Offsets()
	if a.ScrollToRect(target, 0) {
		t.Fatal("ScrollToRect moved for a visible rect")
	}
	if a.Offsets() != off {
		t.Fatal("offsets changed for a visible rect")
	}
}

func TestScrollAreaScrollToRectNested(t *testing.T) {
	parent, child := nestedAreas()
	parent.ScrollToPercentage(Vertical, 1)

	target := geom.Rect{X: 0, Y: 60, W: 200, H: 40}
	if !child.ScrollToRect(target, 0) {
		t.Fatal("ScrollToRect reported no movement")
	}
	// The ancestor must uncover the child for the rect to show at all.
	real := child.ToRealRect(target)
	if !child.AbsoluteViewRect().ContainsRect(real) {
		t.Fatalf("target %+v not visible through view %+v", real, child.AbsoluteViewRect())
	}
}

func TestShortestMove(t *testing.T) {
	tests := []struct {
		name        string
		lead, trail int
		want        int
	}{
		{"inside", 5, -5, 0},
		{"exactly fits", 0, 0, 0},
		{"before view", -30, -80, -30},
		{"after view", 80, 30, 30},
		{"larger than view, lead closer", -10, 40, -10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := shortestMove(tt.lead, tt.trail); got != tt.want {
				t.Errorf("shortestMove(%d, %d) = %d; want %d", tt.lead, tt.trail, got, tt.want)
			}
		})
	}
}

func TestScrollAreaWheelEvent(t *testing.T) {
	a := newTestArea(geom.Rect{X: 0, Y: 0, W: 200, H: 150}, 400, 300)

	if !a.HandleEvent(Event{Kind: Wheel, Pos: geom.Point{X: 50, Y: 50}, Delta: geom.Point{Y: -1}, Finger: -1}) {
		t.Fatal("wheel inside view not consumed")
	}
	if a.Offsets().Y == 0 {
		t.Fatal("wheel did not scroll")
	}

	if a.HandleEvent(Event{Kind: Wheel, Pos: geom.Point{X: 500, Y: 500}, Delta: geom.Point{Y: -1}, Finger: -1}) {
		t.Fatal("wheel outside view consumed")
	}
}

func TestScrollAreaTouchPan(t *testing.T) {
	a := newTestArea(geom.Rect{X: 0, Y: 0, W: 200, H: 150}, 400, 300)

	if !a.HandleEvent(Event{Kind: PointerDown, Pos: geom.Point{X: 50, Y: 50}, Finger: 3}) {
		t.Fatal("touch down inside scrollable view not consumed")
	}
	if !a.IsScrolling() {
		t.Fatal("pan not in progress after touch down")
	}
	a.HandleEvent(Event{Kind: PointerMove, Pos: geom.Point{X: 40, Y: 30}, Delta: geom.Point{X: -10, Y: -20}, Finger: 3})
	if off := a.Offsets(); off != (geom.Point{X: 10, Y: 20}) {
		t.Fatalf("Offsets() = %+v after pan; want (10, 20)", off)
	}

	// A different finger's release does not end the pan.
	a.HandleEvent(Event{Kind: PointerUp, Pos: geom.Point{X: 40, Y: 30}, Finger: 7})
	if !a.IsScrolling() {
		t.Fatal("pan ended by foreign finger")
	}
	a.HandleEvent(Event{Kind: PointerUp, Pos: geom.Point{X: 40, Y: 30}, Finger: 3})
	if a.IsScrolling() {
		t.Fatal("pan still active after release")
	}
}

func BenchmarkScrollAreaToRealRectVisible(b *testing.B) {
	parent, child := nestedAreas()
	parent.ScrollTo(Vertical, 120)
	r := geom.Rect{X: 10, Y: 20, W: 60, H: 30}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = child.ToRealRectVisible(r)
	}
}
