package menu

import "image/color"

// Orientation selects the packing axis of a Frame or the travel axis of a
// ScrollBar.
type Orientation int

const (
	Horizontal Orientation = iota
	Vertical
)

// Position identifies one edge of a ScrollArea.
type Position int

const (
	North Position = iota
	South
	East
	West
	numPositions
)

func (p Position) String() string {
	switch p {
	case North:
		return "north"
	case South:
		return "south"
	case East:
		return "east"
	case West:
		return "west"
	default:
		return "unknown"
	}
}

// Orientation returns the travel axis of a bar placed at p.
func (p Position) Orientation() Orientation {
	if p == North || p == South {
		return Horizontal
	}
	return Vertical
}

// Align places a widget across a vertical Frame or along a horizontal one.
type Align int

const (
	AlignLeft Align = iota
	AlignCenter
	AlignRight
)

// VerticalPos places a widget across a horizontal Frame.
type VerticalPos int

const (
	PosNorth VerticalPos = iota
	PosCenter
	PosSouth
)

// PackOptions configures how a widget is packed into a Frame.
type PackOptions struct {
	Align       Align
	VerticalPos VerticalPos
	MarginX     int
	MarginY     int
}

// Theme carries the visual configuration shared by a Menu and every
// ScrollArea and Frame it owns. Values, not behavior.
type Theme struct {
	Background         color.RGBA
	FrameColor         color.RGBA
	FrameBorderColor   color.RGBA
	TitleBarColor      color.RGBA
	TitleTextColor     color.RGBA
	FocusColor         color.RGBA
	ScrollbarColor     color.RGBA
	SliderColor        color.RGBA
	SliderHoverColor   color.RGBA
	ScrollbarThickness int
	TitleBarHeight     int
	Padding            int
	ScrollToMargin     int
	// Scrollbars lists the edges that carry bars; default is the
	// south/east pair.
	Scrollbars []Position
}

// DefaultTheme returns the stock dark theme.
func DefaultTheme() *Theme {
	return &Theme{
		Background:         color.RGBA{40, 40, 40, 255},
		FrameColor:         color.RGBA{60, 60, 60, 200},
		FrameBorderColor:   color.RGBA{0, 0, 0, 255},
		TitleBarColor:      color.RGBA{90, 90, 90, 255},
		TitleTextColor:     color.RGBA{230, 230, 230, 255},
		FocusColor:         color.RGBA{33, 150, 243, 255},
		ScrollbarColor:     color.RGBA{35, 35, 35, 255},
		SliderColor:        color.RGBA{120, 120, 120, 255},
		SliderHoverColor:   color.RGBA{180, 180, 180, 255},
		ScrollbarThickness: 20,
		TitleBarHeight:     20,
		Padding:            8,
		ScrollToMargin:     0,
		Scrollbars:         []Position{South, East},
	}
}
