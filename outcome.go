package hanto

// A MoveResult is the state of the game after a placement.
type MoveResult uint8

const (
	// Continue means the game goes on.
	Continue MoveResult = iota
	// RedWins means Blue's butterfly was surrounded.
	RedWins
	// BlueWins means Red's butterfly was surrounded.
	BlueWins
	// Draw means both butterflies were surrounded at once, or the round
	// limit passed without a winner.
	Draw
)

// String implements the fmt.Stringer interface.
func (r MoveResult) String() string {
	switch r {
	case Continue:
		return "Continue"
	case RedWins:
		return "RedWins"
	case BlueWins:
		return "BlueWins"
	case Draw:
		return "Draw"
	}
	return "MoveResult(?)"
}

// Terminal reports whether r ends the game.
func (r MoveResult) Terminal() bool {
	return r != Continue
}

// Winner returns the winning color, or NoColor for draws and games in progress.
func (r MoveResult) Winner() Color {
	switch r {
	case RedWins:
		return Red
	case BlueWins:
		return Blue
	}
	return NoColor
}

// evaluate classifies the game from the board, the butterflies placed so
// far and the round counter. A butterfly that is not on the board is
// never surrounded.
func evaluate(b *Board, butterflies map[Color]Coord, round int) MoveResult {
	surrounded := func(c Color) bool {
		loc, ok := butterflies[c]
		return ok && b.Surrounded(loc)
	}
	red, blue := surrounded(Red), surrounded(Blue)

	switch {
	case red && blue:
		return Draw
	case red:
		return BlueWins
	case blue:
		return RedWins
	case round > RoundLimit:
		return Draw
	}
	return Continue
}
