package hanto

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// playTokens places each token in order and returns the last result.
func playTokens(t *testing.T, g *Game, tokens ...string) MoveResult {
	t.Helper()
	res := Continue
	for i, tok := range tokens {
		typ, to, err := ParsePlacement(tok)
		require.NoError(t, err)
		res, err = g.Place(typ, to)
		require.NoErrorf(t, err, "placement %d (%s)", i, tok)
	}
	return res
}

func TestOpeningPlacements(t *testing.T) {
	g := NewGame(Blue)

	res, err := g.Place(Butterfly, Coord{0, 0})
	require.NoError(t, err)
	assert.Equal(t, Continue, res)
	assert.Equal(t, Red, g.Turn())

	res, err = g.Place(Butterfly, Coord{1, 0})
	require.NoError(t, err)
	assert.Equal(t, Continue, res)
	assert.Equal(t, Blue, g.Turn())

	assert.Equal(t, 2, g.Board().Len())
	p, ok := g.PieceAt(Coord{0, 0})
	require.True(t, ok)
	assert.Equal(t, Piece{Color: Blue, Type: Butterfly}, p)
	p, ok = g.PieceAt(Coord{1, 0})
	require.True(t, ok)
	assert.Equal(t, Piece{Color: Red, Type: Butterfly}, p)
}

func TestFirstPlacementMustBeOrigin(t *testing.T) {
	g := NewGame(Blue)

	_, err := g.Place(Butterfly, Coord{1, 1})
	require.ErrorIs(t, err, ErrIllegalPlacement)

	var pe *PlacementError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, ReasonFirstMoveNotOrigin, pe.Reason)
	assert.Equal(t, Blue, pe.Player)
	assert.Equal(t, 0, g.Board().Len())
	assert.Equal(t, Blue, g.Turn())
}

func TestRoundCounter(t *testing.T) {
	g := NewGame(Red)
	require.Equal(t, 1, g.Round())

	playTokens(t, g, "S@0,0")
	assert.Equal(t, 1, g.Round(), "round must not advance after the first half")
	playTokens(t, g, "S@1,0")
	assert.Equal(t, 2, g.Round())
	playTokens(t, g, "B@-1,0")
	assert.Equal(t, 2, g.Round())
	playTokens(t, g, "B@2,0")
	assert.Equal(t, 3, g.Round())
	assert.Equal(t, Red, g.StartingPlayer())
}

func TestGameMoveValidation(t *testing.T) {
	tests := []struct {
		name   string
		first  Color
		setup  []string
		typ    PieceType
		from   *Coord
		to     Coord
		want   error
		reason Reason
	}{
		{
			name: "origin supplied",
			typ:  Butterfly,
			from: &Coord{0, 0},
			to:   Coord{0, 0},
			want: ErrUnsupportedMove,
		},
		{
			name: "crab is not part of this variant",
			typ:  Crab,
			to:   Coord{0, 0},
			want: ErrInvalidPiece,
		},
		{
			name: "no piece type",
			typ:  NoPieceType,
			to:   Coord{0, 0},
			want: ErrInvalidPiece,
		},
		{
			name:   "second butterfly",
			setup:  []string{"B@0,0", "S@1,0"},
			typ:    Butterfly,
			to:     Coord{-1, 0},
			want:   ErrIllegalPlacement,
			reason: ReasonDuplicateButterfly,
		},
		{
			name:   "blue misses the butterfly deadline",
			setup:  []string{"S@0,0", "S@1,0", "S@-1,0", "S@2,0", "S@-2,0", "S@3,0"},
			typ:    Sparrow,
			to:     Coord{-3, 0},
			want:   ErrIllegalPlacement,
			reason: ReasonButterflyDeadline,
		},
		{
			name:   "red misses the butterfly deadline",
			setup:  []string{"B@0,0", "S@1,0", "S@-1,0", "S@2,0", "S@-2,0", "S@3,0", "S@-3,0"},
			typ:    Sparrow,
			to:     Coord{4, 0},
			want:   ErrIllegalPlacement,
			reason: ReasonButterflyDeadline,
		},
		{
			name:   "deadline is checked before location",
			setup:  []string{"S@0,0", "S@1,0", "S@-1,0", "S@2,0", "S@-2,0", "S@3,0"},
			typ:    Sparrow,
			to:     Coord{9, 9},
			want:   ErrIllegalPlacement,
			reason: ReasonButterflyDeadline,
		},
		{
			name:   "second player may not reuse the origin",
			setup:  []string{"B@0,0"},
			typ:    Sparrow,
			to:     Coord{0, 0},
			want:   ErrIllegalPlacement,
			reason: ReasonOccupied,
		},
		{
			name:   "second player far away",
			setup:  []string{"B@0,0"},
			typ:    Butterfly,
			to:     Coord{2, 0},
			want:   ErrIllegalPlacement,
			reason: ReasonNotAdjacent,
		},
		{
			name:   "sparrow not adjacent",
			setup:  []string{"B@0,0", "B@1,0"},
			typ:    Sparrow,
			to:     Coord{5, 5},
			want:   ErrIllegalPlacement,
			reason: ReasonNotAdjacent,
		},
		{
			name:  "red opens at the origin",
			first: Red,
			typ:   Sparrow,
			to:    Coord{0, 0},
		},
		{
			name:  "diagonal neighbour is adjacent",
			setup: []string{"B@0,0"},
			typ:   Sparrow,
			to:    Coord{-1, 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			first := tt.first
			if first == NoColor {
				first = Blue
			}
			g := NewGame(first)
			playTokens(t, g, tt.setup...)
			before := g.String()

			_, err := g.Move(tt.typ, tt.from, tt.to)
			if tt.want == nil {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, tt.want)
			if tt.reason != 0 {
				var pe *PlacementError
				require.True(t, errors.As(err, &pe))
				assert.Equal(t, tt.reason, pe.Reason)
			}
			assert.Equal(t, before, g.String(), "a rejected placement must not change the game")
		})
	}
}

func TestNonAdjacentFailsForEveryPieceType(t *testing.T) {
	for _, typ := range []PieceType{Butterfly, Sparrow} {
		g := NewGame(Blue)
		playTokens(t, g, "S@0,0", "S@0,1")
		_, err := g.Place(typ, Coord{-3, 7})
		var pe *PlacementError
		require.True(t, errors.As(err, &pe), typ.String())
		assert.Equal(t, ReasonNotAdjacent, pe.Reason)
	}
}

func TestBlueWinsBySurroundingRedButterfly(t *testing.T) {
	g := NewGame(Blue)
	res := playTokens(t, g,
		"S@0,0", "B@1,0",
		"B@-1,0", "S@2,0",
		"S@1,1", "S@2,-1",
		"S@1,-1", "S@3,0",
	)
	require.Equal(t, Continue, res)

	res, err := g.Place(Sparrow, Coord{0, 1})
	require.NoError(t, err)
	assert.Equal(t, BlueWins, res)
	assert.Equal(t, Blue, res.Winner())
	assert.True(t, g.IsOver())
	assert.Equal(t, BlueWins, g.Outcome())

	before := g.String()
	res, err = g.Place(Sparrow, Coord{-2, 0})
	require.ErrorIs(t, err, ErrGameOver)
	assert.Equal(t, Continue, res)
	res, err = g.Move(Crab, &Coord{0, 0}, Coord{1, 1})
	require.ErrorIs(t, err, ErrGameOver)
	assert.Equal(t, Continue, res)
	assert.Equal(t, before, g.String())
	assert.Empty(t, g.ValidPlacements())
}

func TestRedWinsBySurroundingBlueButterfly(t *testing.T) {
	g := NewGame(Red)
	res := playTokens(t, g,
		"S@0,0", "B@1,0",
		"B@-1,0", "S@2,0",
		"S@1,1", "S@2,-1",
		"S@1,-1", "S@3,0",
		"S@0,1",
	)
	assert.Equal(t, RedWins, res)
	assert.Equal(t, Red, res.Winner())
	assert.True(t, g.IsOver())
}

func TestSelfSurroundLoses(t *testing.T) {
	g := NewGame(Red)
	res := playTokens(t, g,
		"B@0,0", "B@1,0",
		"S@-1,0", "S@0,1",
		"S@0,-1", "S@1,-1",
		"S@-1,1",
	)
	assert.Equal(t, BlueWins, res, "red filled the last hole around its own butterfly")
}

func TestDrawWhenBothButterfliesSurrounded(t *testing.T) {
	// Butterflies at (0,0) and (1,0) share two neighbours, (1,-1) and
	// (0,1); the last of the eight cells around them closes both rings.
	g := NewGame(Blue)
	res := playTokens(t, g,
		"B@0,0", "B@1,0",
		"S@-1,0", "S@2,0",
		"S@-1,1", "S@2,-1",
		"S@0,-1", "S@1,1",
		"S@1,-1",
	)
	require.Equal(t, Continue, res)

	res, err := g.Place(Sparrow, Coord{0, 1})
	require.NoError(t, err)
	assert.Equal(t, Draw, res)
	assert.Equal(t, NoColor, res.Winner())
	assert.True(t, g.IsOver())
}

func TestDrawAfterRoundLimit(t *testing.T) {
	g := NewGame(Blue)
	tokens := []string{"B@0,0", "B@1,0"}
	for r := 2; r <= RoundLimit; r++ {
		tokens = append(tokens, "S@"+Coord{-(r - 1), 0}.String(), "S@"+Coord{r, 0}.String())
	}
	res := playTokens(t, g, tokens[:len(tokens)-1]...)
	require.Equal(t, Continue, res)
	require.Equal(t, RoundLimit, g.Round())

	res = playTokens(t, g, tokens[len(tokens)-1])
	assert.Equal(t, Draw, res)
	assert.True(t, g.IsOver())
	assert.Equal(t, RoundLimit+1, g.Round())

	res, err := g.Place(Sparrow, Coord{0, 1})
	require.ErrorIs(t, err, ErrGameOver)
	assert.Equal(t, Continue, res)
}

func TestUnplacedButterflyIsNeverSurrounded(t *testing.T) {
	b := NewBoard()
	for _, c := range Origin.Neighbors() {
		b.place(c, Piece{Color: Blue, Type: Sparrow})
	}
	assert.Equal(t, Continue, evaluate(b, map[Color]Coord{}, 1))
	assert.Equal(t, BlueWins, evaluate(b, map[Color]Coord{Red: Origin}, 1))
	assert.Equal(t, RedWins, evaluate(b, map[Color]Coord{Blue: Origin}, 1))
	assert.Equal(t, Draw, evaluate(b, map[Color]Coord{}, RoundLimit+1))
}

func TestValidPlacements(t *testing.T) {
	g := NewGame(Blue)
	opening := g.ValidPlacements()
	require.Len(t, opening, 2)
	for _, p := range opening {
		assert.Equal(t, Origin, p.To)
		assert.Equal(t, Blue, p.Color)
	}

	playTokens(t, g, "B@0,0")
	reply := g.ValidPlacements()
	assert.Len(t, reply, 12)

	playTokens(t, g, "B@1,0")
	for _, p := range g.ValidPlacements() {
		assert.Equal(t, Sparrow, p.Type, "blue has used its butterfly")
	}
}

func TestPlayoutInvariants(t *testing.T) {
	for seed := 0; seed < 25; seed++ {
		g := NewGame(Color(seed%2 + 1))
		butterflies := map[Color]Coord{}
		for step := 0; !g.IsOver(); step++ {
			require.Less(t, step, 2*RoundLimit, "game must end by the round limit")

			moves := g.ValidPlacements()
			require.NotEmpty(t, moves)
			m := moves[(seed*7+step*3)%len(moves)]
			_, err := g.Place(m.Type, m.To)
			require.NoError(t, err)

			assert.Equal(t, len(g.Placements()), g.Board().Len(), "no cell holds two pieces")
			for _, c := range []Color{Blue, Red} {
				loc, ok := g.Butterfly(c)
				if prev, seen := butterflies[c]; seen {
					require.True(t, ok)
					require.Equal(t, prev, loc, "butterfly moved")
				} else if ok {
					butterflies[c] = loc
				}
			}
		}
	}
}

func TestPieceAtIsIdempotent(t *testing.T) {
	g := NewGame(Blue)
	playTokens(t, g, "B@0,0", "S@0,1")
	for _, c := range []Coord{{0, 0}, {0, 1}, {7, -3}} {
		p1, ok1 := g.PieceAt(c)
		p2, ok2 := g.PieceAt(c)
		assert.Equal(t, p1, p2)
		assert.Equal(t, ok1, ok2)
	}
	_, ok := g.PieceAt(Coord{7, -3})
	assert.False(t, ok)
}

func TestCloneGameState(t *testing.T) {
	g := NewGame(Blue, WithTagPair("Event", "test"))
	playTokens(t, g, "B@0,0", "S@1,0")

	c := g.Clone()
	require.Equal(t, g.String(), c.String())

	playTokens(t, c, "S@-1,0")
	assert.Equal(t, 2, g.Board().Len())
	assert.Equal(t, 3, c.Board().Len())
	c.AddTagPair("Event", "changed")
	assert.Equal(t, "test", g.GetTagPair("Event"))
}

func TestBoardCopyIsIndependent(t *testing.T) {
	g := NewGame(Blue)
	playTokens(t, g, "B@0,0")
	b := g.Board()
	b.place(Coord{1, 0}, Piece{Color: Red, Type: Sparrow})
	_, ok := g.PieceAt(Coord{1, 0})
	assert.False(t, ok)
}

func TestTagPairs(t *testing.T) {
	g := NewGame(Blue)
	assert.False(t, g.AddTagPair("Event", "a"))
	assert.True(t, g.AddTagPair("Event", "b"))
	assert.Equal(t, "b", g.GetTagPair("Event"))
	assert.True(t, g.RemoveTagPair("Event"))
	assert.False(t, g.RemoveTagPair("Event"))
	assert.Empty(t, g.TagPairs())

	for _, k := range []string{"", "My Tag", "Round\t2", "a]b"} {
		assert.False(t, g.AddTagPair(k, "x"), "key %q", k)
	}
	assert.Empty(t, g.TagPairs())
}

func TestNewGameDefaultsToBlue(t *testing.T) {
	assert.Equal(t, Blue, NewGame(NoColor).Turn())
	assert.Equal(t, Blue, NewGame(Blue).Turn())
	assert.Equal(t, Red, NewGame(Red).Turn())
}

func TestNewGameRejectsUnknownColor(t *testing.T) {
	assert.Panics(t, func() { NewGame(Red + 1) })
	assert.Panics(t, func() { NewGame(Color(255)) })
}
