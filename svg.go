package hanto

import (
	"fmt"
	"io"
	"math"

	svg "github.com/ajstarks/svgo"
)

type svgConfig struct {
	size   int
	colors map[Color]string
}

// An SVGOption configures WriteSVG.
type SVGOption func(*svgConfig)

// HexSize sets the distance in pixels from a hex's centre to its corners.
func HexSize(px int) SVGOption {
	return func(c *svgConfig) {
		if px > 0 {
			c.size = px
		}
	}
}

// PlayerColors sets the fill colours used for each player's pieces.
func PlayerColors(blue, red string) SVGOption {
	return func(c *svgConfig) {
		c.colors[Blue] = blue
		c.colors[Red] = red
	}
}

// errWriter keeps the first write error, since svgo does not report them.
type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) Write(p []byte) (int, error) {
	if ew.err != nil {
		return 0, ew.err
	}
	n, err := ew.w.Write(p)
	ew.err = err
	return n, err
}

// WriteSVG draws the board as flat-topped hexagons, using the same layout
// as Board.Draw, and writes the SVG document to w.
func WriteSVG(w io.Writer, b *Board, opts ...SVGOption) error {
	cfg := &svgConfig{
		size:   30,
		colors: map[Color]string{Blue: "#4a7bd0", Red: "#d04a4a"},
	}
	for _, opt := range opts {
		opt(cfg)
	}

	ew := &errWriter{w: w}
	canvas := svg.New(ew)

	size := float64(cfg.size)
	half := math.Sqrt(3) / 2 * size
	margin := size / 2

	bd, ok := b.Bounds()
	if !ok {
		side := int(2 * (size + margin))
		canvas.Start(side, side)
		canvas.End()
		return ew.err
	}

	width := 2*margin + 2*size + float64(bd.MaxCol-bd.MinCol)*1.5*size
	height := 2*margin + 2*half + float64(bd.MaxRow-bd.MinRow)*half
	canvas.Start(int(math.Ceil(width)), int(math.Ceil(height)))
	canvas.Rect(0, 0, int(math.Ceil(width)), int(math.Ceil(height)), "fill:white")

	for _, c := range b.Coords() {
		p, _ := b.Piece(c)
		row := c.X + 2*c.Y
		cx := margin + size + float64(c.X-bd.MinCol)*1.5*size
		cy := margin + half + float64(bd.MaxRow-row)*half

		xs := make([]int, 6)
		ys := make([]int, 6)
		for i := 0; i < 6; i++ {
			angle := math.Pi / 3 * float64(i)
			xs[i] = int(math.Round(cx + size*math.Cos(angle)))
			ys[i] = int(math.Round(cy + size*math.Sin(angle)))
		}
		canvas.Polygon(xs, ys, fmt.Sprintf("fill:%s;stroke:black;stroke-width:1", cfg.colors[p.Color]))
		canvas.Text(int(math.Round(cx)), int(math.Round(cy+size/4)), p.Type.Symbol(),
			fmt.Sprintf("text-anchor:middle;font-family:sans-serif;font-size:%dpx;fill:white", cfg.size*2/3))
	}
	canvas.End()
	return ew.err
}
