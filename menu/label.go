package menu

import "github.com/hajimehoshi/ebiten/v2"

var _ Widget = (*Label)(nil)

// Label is a non-selectable text leaf.
type Label struct {
	BaseWidget
	text string
}

// NewLabel builds a label sized to its text.
func NewLabel(text string) *Label {
	l := &Label{text: text}
	tw, th := measureText(text)
	l.SetSize(tw, th)
	return l
}

// Text returns the label contents.
func (l *Label) Text() string { return l.text }

// SetText replaces the contents and resizes to fit.
func (l *Label) SetText(text string) {
	l.text = text
	tw, th := measureText(text)
	l.SetSize(tw, th)
}

func (l *Label) Draw(dst *ebiten.Image, m *Menu) {
	if !l.Visible() {
		return
	}
	r := widgetRect(l)
	drawText(dst, l.text, r.X, r.Y, m.theme.TitleTextColor)
}

var _ Widget = (*Spacer)(nil)

// Spacer is invisible filler: it occupies layout space but never takes
// focus and draws nothing.
type Spacer struct {
	BaseWidget
}

// NewSpacer builds a fixed-size spacer.
func NewSpacer(w, h int) *Spacer {
	s := &Spacer{}
	s.SetSize(w, h)
	return s
}
