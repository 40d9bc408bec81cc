package hanto

import "strings"

// A Color identifies one of the two players.
type Color uint8

const (
	// NoColor is the zero value; it owns nothing.
	NoColor Color = iota
	// Blue is the blue player.
	Blue
	// Red is the red player.
	Red
)

// Other returns the opponent of c. NoColor has no opponent.
func (c Color) Other() Color {
	switch c {
	case Blue:
		return Red
	case Red:
		return Blue
	}
	return NoColor
}

// String implements the fmt.Stringer interface.
func (c Color) String() string {
	switch c {
	case Blue:
		return "Blue"
	case Red:
		return "Red"
	}
	return "NoColor"
}

// ParseColor returns the color named by s ("Blue" or "Red", any case).
func ParseColor(s string) (Color, bool) {
	switch {
	case strings.EqualFold(s, "blue"):
		return Blue, true
	case strings.EqualFold(s, "red"):
		return Red, true
	}
	return NoColor, false
}

// A PieceType is the kind of a piece.
//
// Only Butterfly and Sparrow may be placed in this game. The other kinds
// belong to richer variants of Hanto and are always rejected.
type PieceType uint8

const (
	NoPieceType PieceType = iota
	Butterfly
	Sparrow
	Crab
	Horse
	Crane
	Dove
)

var pieceTypeNames = [...]string{
	NoPieceType: "NoPieceType",
	Butterfly:   "Butterfly",
	Sparrow:     "Sparrow",
	Crab:        "Crab",
	Horse:       "Horse",
	Crane:       "Crane",
	Dove:        "Dove",
}

var pieceTypeSymbols = [...]string{
	NoPieceType: "",
	Butterfly:   "B",
	Sparrow:     "S",
	Crab:        "C",
	Horse:       "H",
	Crane:       "N",
	Dove:        "D",
}

// String implements the fmt.Stringer interface.
func (t PieceType) String() string {
	if int(t) < len(pieceTypeNames) {
		return pieceTypeNames[t]
	}
	return "PieceType(?)"
}

// Symbol returns the one letter used for t in board drawings and records.
func (t PieceType) Symbol() string {
	if int(t) < len(pieceTypeSymbols) {
		return pieceTypeSymbols[t]
	}
	return ""
}

// PieceTypeFromSymbol is the inverse of Symbol.
func PieceTypeFromSymbol(s string) (PieceType, bool) {
	for t, sym := range pieceTypeSymbols {
		if sym != "" && sym == s {
			return PieceType(t), true
		}
	}
	return NoPieceType, false
}

// placeable reports whether t may be placed in this variant.
func (t PieceType) placeable() bool {
	switch t {
	case Butterfly, Sparrow:
		return true
	}
	return false
}

// A Piece is a piece on the board. Pieces never move once placed.
type Piece struct {
	Color Color
	Type  PieceType
}

// String returns e.g. "Blue Butterfly".
func (p Piece) String() string {
	return p.Color.String() + " " + p.Type.String()
}
