package hanto

import (
	"cmp"
	"slices"
	"strings"

	"golang.org/x/exp/maps"
)

// A Board holds the pieces placed so far. A cell, once occupied, is never
// vacated or overwritten.
type Board struct {
	pieces map[Coord]Piece
}

// NewBoard returns an empty board.
func NewBoard() *Board {
	return &Board{pieces: make(map[Coord]Piece)}
}

// Piece returns the piece at c and whether there is one.
func (b *Board) Piece(c Coord) (Piece, bool) {
	p, ok := b.pieces[c]
	return p, ok
}

// place puts p at c. The caller has already checked that c is empty.
func (b *Board) place(c Coord, p Piece) {
	b.pieces[c] = p
}

// Len returns the number of pieces on the board.
func (b *Board) Len() int {
	return len(b.pieces)
}

// Coords returns the occupied coordinates ordered by X, then Y.
func (b *Board) Coords() []Coord {
	coords := make([]Coord, 0, len(b.pieces))
	for c := range b.pieces {
		coords = append(coords, c)
	}
	slices.SortFunc(coords, func(a, c Coord) int {
		if n := cmp.Compare(a.X, c.X); n != 0 {
			return n
		}
		return cmp.Compare(a.Y, c.Y)
	})
	return coords
}

// CountAdjacent returns how many occupied cells touch c.
func (b *Board) CountAdjacent(c Coord) int {
	n := 0
	for _, nb := range c.Neighbors() {
		if _, ok := b.pieces[nb]; ok {
			n++
		}
	}
	return n
}

// HasAdjacent reports whether any occupied cell touches c.
func (b *Board) HasAdjacent(c Coord) bool {
	return b.CountAdjacent(c) > 0
}

// Surrounded reports whether all six neighbours of c are occupied.
func (b *Board) Surrounded(c Coord) bool {
	return b.CountAdjacent(c) == len(directions)
}

// Clone returns an independent copy of the board.
func (b *Board) Clone() *Board {
	cp := NewBoard()
	maps.Copy(cp.pieces, b.pieces)
	return cp
}

// Bounds is the rectangle enclosing the board in the skewed projection
// used for drawing, where a hex (x, y) sits at row x+2y and column x.
type Bounds struct {
	MinRow, MaxRow int
	MinCol, MaxCol int
}

// Bounds returns the drawing rectangle of the occupied cells. The second
// result is false for an empty board.
func (b *Board) Bounds() (Bounds, bool) {
	if len(b.pieces) == 0 {
		return Bounds{}, false
	}
	first := true
	var bd Bounds
	for c := range b.pieces {
		row := c.X + 2*c.Y
		if first {
			bd = Bounds{MinRow: row, MaxRow: row, MinCol: c.X, MaxCol: c.X}
			first = false
			continue
		}
		bd.MinRow = min(bd.MinRow, row)
		bd.MaxRow = max(bd.MaxRow, row)
		bd.MinCol = min(bd.MinCol, c.X)
		bd.MaxCol = max(bd.MaxCol, c.X)
	}
	return bd, true
}

// cellAt maps a drawing row and column back to a hex. The second result
// is false when no hex projects onto that cell.
func cellAt(row, col int) (Coord, bool) {
	if (row-col)%2 != 0 {
		return Coord{}, false
	}
	return Coord{X: col, Y: (row - col) / 2}, true
}

// Draw returns a text picture of the board: one symbol per piece, rows
// from top (highest x+2y) to bottom, each terminated by a newline.
// An empty board draws as the empty string.
func (b *Board) Draw() string {
	bd, ok := b.Bounds()
	if !ok {
		return ""
	}
	var sb strings.Builder
	for row := bd.MaxRow; row >= bd.MinRow; row-- {
		for col := bd.MinCol; col <= bd.MaxCol; col++ {
			sym := " "
			if c, ok := cellAt(row, col); ok {
				if p, ok := b.pieces[c]; ok {
					sym = p.Type.Symbol()
				}
			}
			sb.WriteString(sym)
		}
		sb.WriteString("\n")
	}
	return sb.String()
}
