package hanto

import (
	"errors"
	"fmt"
)

var (
	// ErrGameOver is returned for any placement after the game has ended.
	ErrGameOver = errors.New("hanto: the game is over")
	// ErrUnsupportedMove is returned when a move names an origin. Pieces
	// can only be placed in this variant, never moved.
	ErrUnsupportedMove = errors.New("hanto: pieces must be placed, not moved")
	// ErrInvalidPiece is returned for piece types other than Butterfly and Sparrow.
	ErrInvalidPiece = errors.New("hanto: piece must be a butterfly or a sparrow")
	// ErrIllegalPlacement is matched by every *PlacementError.
	ErrIllegalPlacement = errors.New("hanto: illegal placement")
)

// A Reason explains why a placement was rejected.
type Reason uint8

const (
	// ReasonDuplicateButterfly: the player already placed a butterfly.
	ReasonDuplicateButterfly Reason = iota + 1
	// ReasonButterflyDeadline: the butterfly was not placed by the deadline round.
	ReasonButterflyDeadline
	// ReasonFirstMoveNotOrigin: the opening placement must be at the origin.
	ReasonFirstMoveNotOrigin
	// ReasonOccupied: the target already holds a piece.
	ReasonOccupied
	// ReasonNotAdjacent: the target touches no piece.
	ReasonNotAdjacent
)

// String implements the fmt.Stringer interface.
func (r Reason) String() string {
	switch r {
	case ReasonDuplicateButterfly:
		return "butterfly already placed"
	case ReasonButterflyDeadline:
		return "butterfly must be placed"
	case ReasonFirstMoveNotOrigin:
		return "first placement must be at the origin"
	case ReasonOccupied:
		return "target is occupied"
	case ReasonNotAdjacent:
		return "target is not adjacent to any piece"
	}
	return "unknown reason"
}

// A PlacementError describes a rejected placement.
// It unwraps to ErrIllegalPlacement.
type PlacementError struct {
	Reason Reason
	Player Color
	Type   PieceType
	To     Coord
}

func (e *PlacementError) Error() string {
	return fmt.Sprintf("hanto: illegal placement of %s %s at %s: %s", e.Player, e.Type, e.To, e.Reason)
}

func (e *PlacementError) Unwrap() error {
	return ErrIllegalPlacement
}
