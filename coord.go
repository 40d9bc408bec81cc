package hanto

import (
	"fmt"
	"strconv"
	"strings"
)

// A Coord is a cell of the hex grid in axial coordinates.
// The zero value is the origin, where the first piece of every game goes.
type Coord struct {
	X int
	Y int
}

// Origin is the coordinate of the first placement.
var Origin = Coord{}

// directions are the six unit offsets between adjacent hexes.
var directions = [6]Coord{
	{X: 1, Y: 0},
	{X: -1, Y: 0},
	{X: 0, Y: 1},
	{X: 0, Y: -1},
	{X: 1, Y: -1},
	{X: -1, Y: 1},
}

// IsAdjacentTo reports whether o shares an edge with c.
// A coordinate is not adjacent to itself.
func (c Coord) IsAdjacentTo(o Coord) bool {
	d := Coord{X: o.X - c.X, Y: o.Y - c.Y}
	for _, dir := range directions {
		if d == dir {
			return true
		}
	}
	return false
}

// Neighbors returns the six coordinates adjacent to c.
func (c Coord) Neighbors() [6]Coord {
	var n [6]Coord
	for i, dir := range directions {
		n[i] = Coord{X: c.X + dir.X, Y: c.Y + dir.Y}
	}
	return n
}

// String implements the fmt.Stringer interface and returns "x,y".
func (c Coord) String() string {
	return strconv.Itoa(c.X) + "," + strconv.Itoa(c.Y)
}

// ParseCoord parses a coordinate written as "x,y".
func ParseCoord(s string) (Coord, error) {
	xs, ys, ok := strings.Cut(s, ",")
	if !ok {
		return Coord{}, fmt.Errorf("hanto: invalid coordinate %q", s)
	}
	x, err := strconv.Atoi(strings.TrimSpace(xs))
	if err != nil {
		return Coord{}, fmt.Errorf("hanto: invalid coordinate %q: %w", s, err)
	}
	y, err := strconv.Atoi(strings.TrimSpace(ys))
	if err != nil {
		return Coord{}, fmt.Errorf("hanto: invalid coordinate %q: %w", s, err)
	}
	return Coord{X: x, Y: y}, nil
}
