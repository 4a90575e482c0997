package menu

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/OpticalFlyer/menukit/geom"
)

// EventKind discriminates normalized input events. The core never reads
// raw device state; hosts feed it events produced here or built by hand
// (tests drive the engine with literal Event values).
type EventKind int

const (
	PointerDown EventKind = iota
	PointerUp
	PointerMove
	Wheel
	KeyPress
)

// Key is a normalized directional or action key.
type Key int

const (
	KeyNone Key = iota
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyPageUp
	KeyPageDown
	KeyHome
	KeyEnd
	KeyEnter
)

// Event is a normalized pointer or key event in screen coordinates.
type Event struct {
	Kind  EventKind
	Pos   geom.Point
	Delta geom.Point // motion delta, or wheel ticks for Wheel
	// Finger is -1 for mouse events, otherwise the touch id.
	Finger int
	Key    Key
}

// Poller converts ebiten's polled input state into normalized events,
// one batch per tick. It keeps just enough state to synthesize motion
// deltas and touch lifecycles.
type Poller struct {
	lastX, lastY int
	mouseDown    bool
	touchX       map[ebiten.TouchID]int
	touchY       map[ebiten.TouchID]int
	touchIDs     []ebiten.TouchID
}

// NewPoller returns a ready Poller.
func NewPoller() *Poller {
	return &Poller{
		touchX: make(map[ebiten.TouchID]int),
		touchY: make(map[ebiten.TouchID]int),
	}
}

// Poll appends this tick's events to dst and returns it.
func (p *Poller) Poll(dst []Event) []Event {
	x, y := ebiten.CursorPosition()
	pos := geom.Point{X: x, Y: y}

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		p.mouseDown = true
		dst = append(dst, Event{Kind: PointerDown, Pos: pos, Finger: -1})
	}
	if p.mouseDown && (x != p.lastX || y != p.lastY) {
		dst = append(dst, Event{
			Kind:   PointerMove,
			Pos:    pos,
			Delta:  geom.Point{X: x - p.lastX, Y: y - p.lastY},
			Finger: -1,
		})
	}
	if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) {
		p.mouseDown = false
		dst = append(dst, Event{Kind: PointerUp, Pos: pos, Finger: -1})
	}
	p.lastX, p.lastY = x, y

	if wx, wy := ebiten.Wheel(); wx != 0 || wy != 0 {
		dst = append(dst, Event{
			Kind:   Wheel,
			Pos:    pos,
			Delta:  geom.Point{X: int(wx), Y: int(wy)},
			Finger: -1,
		})
	}

	dst = p.pollTouches(dst)

	for _, kb := range keyBindings {
		if inpututil.IsKeyJustPressed(kb.code) {
			dst = append(dst, Event{Kind: KeyPress, Key: kb.key, Finger: -1})
		}
	}
	return dst
}

// keyBindings is polled in order, so simultaneous presses produce the
// same event sequence every tick.
var keyBindings = []struct {
	key  Key
	code ebiten.Key
}{
	{KeyUp, ebiten.KeyArrowUp},
	{KeyDown, ebiten.KeyArrowDown},
	{KeyLeft, ebiten.KeyArrowLeft},
	{KeyRight, ebiten.KeyArrowRight},
	{KeyPageUp, ebiten.KeyPageUp},
	{KeyPageDown, ebiten.KeyPageDown},
	{KeyHome, ebiten.KeyHome},
	{KeyEnd, ebiten.KeyEnd},
	{KeyEnter, ebiten.KeyEnter},
}

func (p *Poller) pollTouches(dst []Event) []Event {
	p.touchIDs = p.touchIDs[:0]
	p.touchIDs = ebiten.AppendTouchIDs(p.touchIDs)

	for _, id := range p.touchIDs {
		x, y := ebiten.TouchPosition(id)
		lx, seen := p.touchX[id]
		if !seen {
			dst = append(dst, Event{
				Kind:   PointerDown,
				Pos:    geom.Point{X: x, Y: y},
				Finger: int(id),
			})
		} else if ly := p.touchY[id]; x != lx || y != ly {
			dst = append(dst, Event{
				Kind:   PointerMove,
				Pos:    geom.Point{X: x, Y: y},
				Delta:  geom.Point{X: x - lx, Y: y - ly},
				Finger: int(id),
			})
		}
		p.touchX[id], p.touchY[id] = x, y
	}

	// Ended touches release at their last known position.
	for id := range p.touchX {
		if !containsTouchID(p.touchIDs, id) {
			dst = append(dst, Event{
				Kind:   PointerUp,
				Pos:    geom.Point{X: p.touchX[id], Y: p.touchY[id]},
				Finger: int(id),
			})
			delete(p.touchX, id)
			delete(p.touchY, id)
		}
	}
	return dst
}

func containsTouchID(ids []ebiten.TouchID, id ebiten.TouchID) bool {
	for _, tid := range ids {
		if tid == id {
			return true
		}
	}
	return false
}
