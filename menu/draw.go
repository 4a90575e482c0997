package menu

import (
	"image/color"

	earcut "github.com/flywave/go-earcut"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/basicfont"
)

// whiteImage is the 1x1 source for solid-color triangle fills.
var whiteImage *ebiten.Image

func whiteSource() *ebiten.Image {
	if whiteImage == nil {
		whiteImage = ebiten.NewImage(3, 3)
		whiteImage.Fill(color.White)
	}
	return whiteImage
}

// fillPolygon triangulates the flat (x0,y0,x1,y1,...) ring and fills it
// with a solid color. Degenerate rings are skipped.
func fillPolygon(dst *ebiten.Image, ring []float64, c color.RGBA) {
	if len(ring) < 6 {
		return
	}
	indices, err := earcut.Earcut(ring, nil, 2)
	if err != nil || len(indices) == 0 {
		return
	}

	cr := float32(c.R) / 255
	cg := float32(c.G) / 255
	cb := float32(c.B) / 255
	ca := float32(c.A) / 255
	vertices := make([]ebiten.Vertex, len(ring)/2)
	for i := range vertices {
		vertices[i] = ebiten.Vertex{
			DstX:   float32(ring[2*i]),
			DstY:   float32(ring[2*i+1]),
			SrcX:   1,
			SrcY:   1,
			ColorR: cr,
			ColorG: cg,
			ColorB: cb,
			ColorA: ca,
		}
	}
	idx := make([]uint16, len(indices))
	for i, v := range indices {
		idx[i] = uint16(v)
	}
	dst.DrawTriangles(vertices, idx, whiteSource(), &ebiten.DrawTrianglesOptions{
		AntiAlias: true,
	})
}

var labelFace = text.NewGoXFace(basicfont.Face7x13)

// measureText returns the pixel extent of s in the toolkit face.
func measureText(s string) (int, int) {
	w, h := text.Measure(s, labelFace, 0)
	return int(w), int(h)
}

// drawText renders s at (x, y) top-left.
func drawText(dst *ebiten.Image, s string, x, y int, c color.RGBA) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(float64(x), float64(y))
	op.ColorScale.ScaleWithColor(c)
	text.Draw(dst, s, labelFace, op)
}
