package menu

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/OpticalFlyer/menukit/geom"
)

const minSliderLength = 8

// ScrollBar translates pointer gestures on a single axis into a scalar
// value within [min, max]. It owns no content; its ScrollArea maps the
// value to a world offset through the change callback.
type ScrollBar struct {
	position  Position
	rect      geom.Rect // track, absolute screen coordinates
	minVal    int
	maxVal    int
	value     int
	pageStep  int
	thickness int

	visible     bool
	forceHidden bool

	scrolling bool
	hover     bool
	dragStart int
	dragValue int
	finger    int

	onChange func(bar *ScrollBar, value int)
}

func newScrollBar(position Position, thickness int) *ScrollBar {
	return &ScrollBar{
		position:  position,
		thickness: thickness,
		pageStep:  1,
		finger:    -1,
		visible:   true,
	}
}

// Position returns the edge this bar sits on.
func (s *ScrollBar) Position() Position { return s.position }

// Orientation returns the travel axis.
func (s *ScrollBar) Orientation() Orientation { return s.position.Orientation() }

// Thickness returns the bar thickness in pixels.
func (s *ScrollBar) Thickness() int { return s.thickness }

// Value returns the current scalar value.
func (s *ScrollBar) Value() int { return s.value }

// MinMax returns the value range.
func (s *ScrollBar) MinMax() (int, int) { return s.minVal, s.maxVal }

// PageStep returns the value span of one visible page.
func (s *ScrollBar) PageStep() int { return s.pageStep }

// Scrolling reports whether a drag gesture is in progress.
func (s *ScrollBar) Scrolling() bool { return s.scrolling }

// Visible reports whether the bar is shown; content-driven visibility
// combined with a forced hide.
func (s *ScrollBar) Visible() bool { return s.visible && !s.forceHidden }

func (s *ScrollBar) setRange(min, max int) {
	s.minVal, s.maxVal = min, max
	if s.value < min {
		s.value = min
	}
	if s.value > max {
		s.value = max
	}
}

func (s *ScrollBar) setPageStep(step int) {
	if step < 1 {
		step = 1
	}
	s.pageStep = step
}

// clamp returns v limited to the bar's range.
func (s *ScrollBar) clamp(v int) int {
	if v < s.minVal {
		return s.minVal
	}
	if v > s.maxVal {
		return s.maxVal
	}
	return v
}

// SetValue clamps v and stores it. Setting the value it already holds is
// a no-op: the change callback fires only on an actual transition, so
// repeated out-of-range writes collapse to a single notification.
func (s *ScrollBar) SetValue(v int) {
	v = s.clamp(v)
	if v == s.value {
		return
	}
	s.value = v
	if s.onChange != nil {
		s.onChange(s, v)
	}
}

// setValueQuiet updates the value without notifying; used to keep a
// suppressed sibling bar on the same axis in sync.
func (s *ScrollBar) setValueQuiet(v int) {
	s.value = s.clamp(v)
}

// ValuePercentage returns the value mapped to [0, 1]; 0 for a
// degenerate range.
func (s *ScrollBar) ValuePercentage() float64 {
	span := s.maxVal - s.minVal
	if span <= 0 {
		return 0
	}
	return float64(s.value-s.minVal) / float64(span)
}

func (s *ScrollBar) trackLength() int {
	if s.Orientation() == Horizontal {
		return s.rect.W
	}
	return s.rect.H
}

func (s *ScrollBar) sliderLength() int {
	track := s.trackLength()
	span := s.maxVal - s.minVal
	if span <= 0 || track <= 0 {
		return track
	}
	l := track * s.pageStep / (span + s.pageStep)
	if l < minSliderLength {
		l = minSliderLength
	}
	if l > track {
		l = track
	}
	return l
}

func (s *ScrollBar) sliderOffset() int {
	span := s.maxVal - s.minVal
	room := s.trackLength() - s.sliderLength()
	if span <= 0 || room <= 0 {
		return 0
	}
	return room * (s.value - s.minVal) / span
}

// SliderRect returns the slider sub-rectangle in screen coordinates.
func (s *ScrollBar) SliderRect() geom.Rect {
	off := s.sliderOffset()
	if s.Orientation() == Horizontal {
		return geom.Rect{X: s.rect.X + off, Y: s.rect.Y, W: s.sliderLength(), H: s.rect.H}
	}
	return geom.Rect{X: s.rect.X, Y: s.rect.Y + off, W: s.rect.W, H: s.sliderLength()}
}

func (s *ScrollBar) along(p geom.Point) int {
	if s.Orientation() == Horizontal {
		return p.X
	}
	return p.Y
}

// HandleEvent processes one pointer event. A release without a matching
// prior press simply resets the gesture state.
func (s *ScrollBar) HandleEvent(ev Event) bool {
	if !s.Visible() {
		return false
	}
	switch ev.Kind {
	case PointerDown:
		if s.SliderRect().Contains(ev.Pos) {
			s.scrolling = true
			s.finger = ev.Finger
			s.dragStart = s.along(ev.Pos)
			s.dragValue = s.value
			return true
		}
		if s.rect.Contains(ev.Pos) {
			// Track click pages toward the pointer.
			if s.along(ev.Pos) < s.along(s.SliderRect().Pos()) {
				s.SetValue(s.value - s.pageStep)
			} else {
				s.SetValue(s.value + s.pageStep)
			}
			return true
		}
	case PointerMove:
		s.hover = s.SliderRect().Contains(ev.Pos)
		if s.scrolling && ev.Finger == s.finger {
			room := s.trackLength() - s.sliderLength()
			span := s.maxVal - s.minVal
			if room > 0 && span > 0 {
				delta := s.along(ev.Pos) - s.dragStart
				s.SetValue(s.dragValue + delta*span/room)
			}
			return true
		}
	case PointerUp:
		was := s.scrolling && ev.Finger == s.finger
		s.scrolling = false
		s.finger = -1
		return was
	}
	return false
}

// BumpToFront scrolls to the minimum value.
func (s *ScrollBar) BumpToFront() { s.SetValue(s.minVal) }

// BumpToBack scrolls to the maximum value.
func (s *ScrollBar) BumpToBack() { s.SetValue(s.maxVal) }

// Draw renders the track, slider and arrow endcaps.
func (s *ScrollBar) Draw(dst *ebiten.Image, theme *Theme) {
	if !s.Visible() || s.rect.Empty() {
		return
	}
	drawRect(dst, s.rect, theme.ScrollbarColor)

	sliderColor := theme.SliderColor
	if s.hover || s.scrolling {
		sliderColor = theme.SliderHoverColor
	}
	drawRect(dst, s.SliderRect().Inflate(-1, -1), sliderColor)

	s.drawArrows(dst, theme.SliderColor)
}

// drawArrows fills a chevron at each end of the track.
func (s *ScrollBar) drawArrows(dst *ebiten.Image, c color.RGBA) {
	t := float64(s.thickness)
	a := t / 3
	x, y := float64(s.rect.X), float64(s.rect.Y)
	if s.Orientation() == Horizontal {
		r := float64(s.rect.Right())
		my := y + t/2
		fillPolygon(dst, []float64{x + a, my, x + 2*a, y + a, x + 2*a, y + t - a}, c)
		fillPolygon(dst, []float64{r - a, my, r - 2*a, y + a, r - 2*a, y + t - a}, c)
		return
	}
	b := float64(s.rect.Bottom())
	mx := x + t/2
	fillPolygon(dst, []float64{mx, y + a, x + a, y + 2*a, x + t - a, y + 2*a}, c)
	fillPolygon(dst, []float64{mx, b - a, x + a, b - 2*a, x + t - a, b - 2*a}, c)
}

func drawRect(dst *ebiten.Image, r geom.Rect, c color.RGBA) {
	if r.Empty() {
		return
	}
	vector.DrawFilledRect(dst, float32(r.X), float32(r.Y), float32(r.W), float32(r.H), c, true)
}
