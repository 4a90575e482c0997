package menu

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

var _ Widget = (*Button)(nil)

// Button is a selectable leaf widget firing a callback on click or on
// Enter while focused.
type Button struct {
	BaseWidget
	text    string
	onClick func()

	isHovered bool
	isPressed bool
}

// NewButton builds a button sized to its text plus padding.
func NewButton(text string, onClick func()) *Button {
	b := &Button{text: text, onClick: onClick}
	b.selectable = true
	tw, th := measureText(text)
	b.SetSize(tw+20, th+12)
	return b
}

// Text returns the label.
func (b *Button) Text() string { return b.text }

// SetText replaces the label and resizes to fit.
func (b *Button) SetText(text string) {
	b.text = text
	tw, th := measureText(text)
	b.SetSize(tw+20, th+12)
}

func (b *Button) click() {
	if b.onClick != nil {
		b.onClick()
	}
}

// HandleEvent reacts to pointer presses inside the button's visible
// rectangle and to Enter while selected.
func (b *Button) HandleEvent(m *Menu, ev Event) bool {
	if ev.Kind == KeyPress {
		if ev.Key == KeyEnter && b.Selected() {
			b.click()
			return true
		}
		return false
	}

	r := VisibleRect(b)
	inside := !r.Empty() && r.Contains(ev.Pos)
	switch ev.Kind {
	case PointerDown:
		if inside {
			b.isPressed = true
			return true
		}
	case PointerMove:
		b.isHovered = inside
	case PointerUp:
		if b.isPressed {
			b.isPressed = false
			if inside {
				m.Select(b)
				b.click()
				return true
			}
		}
	}
	return false
}

// Draw renders the button into its scrollarea's world surface.
func (b *Button) Draw(dst *ebiten.Image, m *Menu) {
	if !b.Visible() {
		return
	}
	var bgColor color.RGBA
	if b.isPressed {
		bgColor = color.RGBA{100, 100, 100, 255}
	} else if b.isHovered {
		bgColor = color.RGBA{180, 180, 180, 255}
	} else {
		bgColor = color.RGBA{150, 150, 150, 255}
	}

	r := widgetRect(b)
	drawRect(dst, r, bgColor)
	vector.StrokeRect(dst, float32(r.X), float32(r.Y), float32(r.W), float32(r.H),
		1, color.Black, true)

	if b.Selected() {
		// Focus chevron on the left edge.
		x, y := float64(r.X), float64(r.Y)
		h := float64(r.H)
		fillPolygon(dst, []float64{
			x + 3, y + h/2 - 5,
			x + 9, y + h/2,
			x + 3, y + h/2 + 5,
		}, m.theme.FocusColor)
	}

	tw, th := measureText(b.text)
	drawText(dst, b.text, r.X+(r.W-tw)/2, r.Y+(r.H-th)/2, color.RGBA{20, 20, 20, 255})
}
