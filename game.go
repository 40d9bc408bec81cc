/*
Package hanto implements the rules of a placement-only variant of Hanto,
a two player game played by placing pieces on a hexagonal grid.

Blue and Red take turns placing a Butterfly or Sparrows. The opening
piece goes on the origin and every later piece must touch one already on
the board. Each player has one Butterfly and must place it by its fourth
round. A player whose Butterfly is surrounded on all six sides loses; the
game is drawn if both are surrounded at once or six rounds pass.
Example usage:

	// Create new game with Blue moving first
	game := NewGame(Blue)

	// Place pieces
	game.Place(Butterfly, Coord{X: 0, Y: 0})
	game.Place(Sparrow, Coord{X: 1, Y: 0})

	// Check game status
	if game.IsOver() {
		fmt.Printf("Game ended: %s\n", game.Outcome())
	}
*/
package hanto

import (
	"cmp"
	"fmt"
	"slices"

	"golang.org/x/exp/maps"
)

const (
	// RoundLimit is the last round that can be played. The game is drawn
	// once the round counter passes it.
	RoundLimit = 6
	// ButterflyDeadline is the round from which a player that has not
	// placed its butterfly may place nothing else.
	ButterflyDeadline = 4
)

// TagPairs holds free-form record headers such as Event or Date.
type TagPairs map[string]string

// A Placement is one accepted placement and the result it produced.
type Placement struct {
	Color  Color
	Type   PieceType
	To     Coord
	Result MoveResult
}

// A Game is a single match. It is not safe for concurrent use.
type Game struct {
	board       *Board
	first       Color           // Player that opened the game
	turn        Color           // Player to move
	round       int             // Full rounds started, from 1
	butterflies map[Color]Coord // Butterfly location per player, once placed
	outcome     MoveResult      // Result of the last placement
	over        bool            // No more placements allowed
	placements  []Placement     // Accepted placements in order
	tagPairs    TagPairs        // Record headers
}

// NewGame returns a game with first to move. NoColor means Blue; any
// other value outside Blue and Red panics. Optional functions can be
// provided to configure the game.
//
// Example:
//
//	game := NewGame(Red, WithTagPair("Event", "Club night"))
func NewGame(first Color, options ...func(*Game)) *Game {
	switch first {
	case NoColor:
		first = Blue
	case Blue, Red:
	default:
		panic(fmt.Sprintf("hanto: invalid starting player %d", first))
	}
	g := &Game{
		board:       NewBoard(),
		first:       first,
		turn:        first,
		round:       1,
		butterflies: make(map[Color]Coord, 2),
		outcome:     Continue,
		tagPairs:    make(TagPairs),
	}
	for _, f := range options {
		if f != nil {
			f(g)
		}
	}
	return g
}

// WithTagPair returns a Game option that sets a record header.
func WithTagPair(k, v string) func(*Game) {
	return func(g *Game) {
		g.AddTagPair(k, v)
	}
}

// Place puts a new piece of type t for the player to move at to.
//
// Errors are checked in this order: ErrGameOver, ErrInvalidPiece, then a
// *PlacementError for the piece and then for the location. Nothing
// changes when an error is returned.
func (g *Game) Place(t PieceType, to Coord) (MoveResult, error) {
	return g.Move(t, nil, to)
}

// Move is Place with an origin, for symmetry with variants where pieces
// can move. from must be nil: a non-nil origin fails with
// ErrUnsupportedMove.
func (g *Game) Move(t PieceType, from *Coord, to Coord) (MoveResult, error) {
	if g.over {
		return Continue, ErrGameOver
	}
	if from != nil {
		return Continue, fmt.Errorf("%w: from %s", ErrUnsupportedMove, *from)
	}
	if err := g.validate(t, to); err != nil {
		return Continue, err
	}
	return g.apply(t, to), nil
}

// validate runs every check a placement must pass, without mutating.
func (g *Game) validate(t PieceType, to Coord) error {
	if !t.placeable() {
		return fmt.Errorf("%w: got %s", ErrInvalidPiece, t)
	}
	if r, ok := g.checkPiece(t); !ok {
		return &PlacementError{Reason: r, Player: g.turn, Type: t, To: to}
	}
	if r, ok := g.checkLocation(to); !ok {
		return &PlacementError{Reason: r, Player: g.turn, Type: t, To: to}
	}
	return nil
}

// checkPiece enforces one butterfly per player and the butterfly deadline.
func (g *Game) checkPiece(t PieceType) (Reason, bool) {
	_, placed := g.butterflies[g.turn]
	if t == Butterfly && placed {
		return ReasonDuplicateButterfly, false
	}
	if g.round >= ButterflyDeadline && t != Butterfly && !placed {
		return ReasonButterflyDeadline, false
	}
	return 0, true
}

// checkLocation enforces the opening at the origin, then adjacency.
func (g *Game) checkLocation(to Coord) (Reason, bool) {
	if g.turn == g.first && g.round == 1 {
		if to != Origin {
			return ReasonFirstMoveNotOrigin, false
		}
		return 0, true
	}
	if _, ok := g.board.Piece(to); ok {
		return ReasonOccupied, false
	}
	if !g.board.HasAdjacent(to) {
		return ReasonNotAdjacent, false
	}
	return 0, true
}

// apply performs an already validated placement and evaluates the result.
func (g *Game) apply(t PieceType, to Coord) MoveResult {
	mover := g.turn
	g.board.place(to, Piece{Color: mover, Type: t})
	if t == Butterfly {
		g.butterflies[mover] = to
	}

	g.turn = mover.Other()
	if g.turn == g.first {
		g.round++
	}

	g.outcome = evaluate(g.board, g.butterflies, g.round)
	g.over = g.outcome.Terminal()
	g.placements = append(g.placements, Placement{Color: mover, Type: t, To: to, Result: g.outcome})
	return g.outcome
}

// ValidPlacements returns every placement the player to move could make,
// ordered by piece type and then coordinate. It is empty once the game
// is over.
func (g *Game) ValidPlacements() []Placement {
	if g.over {
		return nil
	}
	candidates := map[Coord]struct{}{Origin: {}}
	for _, c := range g.board.Coords() {
		for _, nb := range c.Neighbors() {
			candidates[nb] = struct{}{}
		}
	}

	var out []Placement
	for _, t := range []PieceType{Butterfly, Sparrow} {
		for c := range candidates {
			if g.validate(t, c) == nil {
				out = append(out, Placement{Color: g.turn, Type: t, To: c})
			}
		}
	}
	slices.SortFunc(out, func(a, b Placement) int {
		if n := cmp.Compare(a.Type, b.Type); n != 0 {
			return n
		}
		if n := cmp.Compare(a.To.X, b.To.X); n != 0 {
			return n
		}
		return cmp.Compare(a.To.Y, b.To.Y)
	})
	return out
}

// PieceAt returns the piece at c and whether there is one.
func (g *Game) PieceAt(c Coord) (Piece, bool) {
	return g.board.Piece(c)
}

// Board returns a copy of the game's board.
func (g *Game) Board() *Board {
	return g.board.Clone()
}

// Turn returns the player to move.
func (g *Game) Turn() Color {
	return g.turn
}

// StartingPlayer returns the player that opened the game.
func (g *Game) StartingPlayer() Color {
	return g.first
}

// Round returns the round counter. It starts at 1 and goes up each time
// play returns to the starting player.
func (g *Game) Round() int {
	return g.round
}

// Butterfly returns where c placed its butterfly, if it has.
func (g *Game) Butterfly(c Color) (Coord, bool) {
	loc, ok := g.butterflies[c]
	return loc, ok
}

// IsOver reports whether the game has ended.
func (g *Game) IsOver() bool {
	return g.over
}

// Outcome returns the result of the last placement, Continue before any.
func (g *Game) Outcome() MoveResult {
	return g.outcome
}

// Placements returns the accepted placements in order.
func (g *Game) Placements() []Placement {
	return slices.Clone(g.placements)
}

// AddTagPair adds or updates a tag pair with the given key and
// value and returns true if the value is overwritten. Keys that are empty
// or hold whitespace or ']' cannot appear in a record and are ignored.
func (g *Game) AddTagPair(k, v string) bool {
	if !validTagKey(k) {
		return false
	}
	if g.tagPairs == nil {
		g.tagPairs = make(TagPairs)
	}
	_, existing := g.tagPairs[k]
	g.tagPairs[k] = v
	return existing
}

// GetTagPair returns the value for k, or "" if it is not present.
func (g *Game) GetTagPair(k string) string {
	return g.tagPairs[k]
}

// TagPairs returns a copy of the record headers.
func (g *Game) TagPairs() TagPairs {
	cp := make(TagPairs, len(g.tagPairs))
	maps.Copy(cp, g.tagPairs)
	return cp
}

// RemoveTagPair removes the tag pair for k and reports whether it existed.
func (g *Game) RemoveTagPair(k string) bool {
	if _, existing := g.tagPairs[k]; existing {
		delete(g.tagPairs, k)
		return true
	}
	return false
}

// copy copies the game state from the given game.
func (g *Game) copy(game *Game) {
	g.board = game.board.Clone()
	g.first = game.first
	g.turn = game.turn
	g.round = game.round
	g.butterflies = make(map[Color]Coord, 2)
	maps.Copy(g.butterflies, game.butterflies)
	g.outcome = game.outcome
	g.over = game.over
	g.placements = slices.Clone(game.placements)
	g.tagPairs = game.TagPairs()
}

// Clone returns a deep copy of the game.
func (g *Game) Clone() *Game {
	ret := &Game{}
	ret.copy(g)
	return ret
}
