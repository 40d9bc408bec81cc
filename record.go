package hanto

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"
	"unicode"
)

// A game record lists the placements of a game, numbered by round, after
// a block of tag pairs:
//
//	[First "Blue"]
//	[Event "Club night"]
//
//	1. B@0,0 S@1,0 2. S@-1,0 B@2,-1 *
//
// The First tag is required. The record ends with the result: "*" while
// the game continues, "B+" or "R+" for a win and "=" for a draw.

var (
	// ErrNoGameFound is returned when a record holds no game.
	ErrNoGameFound = errors.New("hanto: no game found")
	// ErrMissingFirst is returned when a record has no valid First tag.
	ErrMissingFirst = errors.New("hanto: record has no valid First tag")
	// ErrBadToken is returned for text that is neither a tag, a round
	// number, a placement nor a result.
	ErrBadToken = errors.New("hanto: bad record token")
	// ErrResultMismatch is returned when the result written in a record
	// differs from the result of replaying it.
	ErrResultMismatch = errors.New("hanto: record result does not match the game")
)

const firstTag = "First"

var resultTokens = map[MoveResult]string{
	Continue: "*",
	BlueWins: "B+",
	RedWins:  "R+",
	Draw:     "=",
}

// Token returns the record token for r.
func (r MoveResult) Token() string {
	return resultTokens[r]
}

func resultFromToken(s string) (MoveResult, bool) {
	for r, tok := range resultTokens {
		if tok == s {
			return r, true
		}
	}
	return Continue, false
}

// String returns the placement as a record token, e.g. "S@-1,0".
func (p Placement) String() string {
	return p.Type.Symbol() + "@" + p.To.String()
}

// ParsePlacement parses a record token such as "B@0,0".
func ParsePlacement(tok string) (PieceType, Coord, error) {
	sym, at, ok := strings.Cut(tok, "@")
	if !ok {
		return NoPieceType, Coord{}, fmt.Errorf("%w: %q", ErrBadToken, tok)
	}
	t, ok := PieceTypeFromSymbol(sym)
	if !ok {
		return NoPieceType, Coord{}, fmt.Errorf("%w: unknown piece %q", ErrBadToken, sym)
	}
	c, err := ParseCoord(at)
	if err != nil {
		return NoPieceType, Coord{}, fmt.Errorf("%w: %w", ErrBadToken, err)
	}
	return t, c, nil
}

// cmpTags puts First ahead of every other tag, then sorts by key.
func cmpTags(a, b string) int {
	switch {
	case a == b:
		return 0
	case a == firstTag:
		return -1
	case b == firstTag:
		return +1
	}
	return strings.Compare(a, b)
}

// String implements the fmt.Stringer interface and returns the game's
// record.
func (g *Game) String() string {
	var sb strings.Builder

	tags := g.TagPairs()
	tags[firstTag] = g.first.String()
	keys := make([]string, 0, len(tags))
	for k := range tags {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, cmpTags)
	for _, k := range keys {
		sb.WriteString(fmt.Sprintf("[%s %s]\n", k, strconv.Quote(tags[k])))
	}
	sb.WriteString("\n")

	round := 1
	for i, p := range g.placements {
		if p.Color == g.first {
			sb.WriteString(strconv.Itoa(round) + ". ")
			round++
		}
		sb.WriteString(p.String())
		if i < len(g.placements)-1 {
			sb.WriteString(" ")
		}
	}
	if len(g.placements) > 0 {
		sb.WriteString(" ")
	}
	sb.WriteString(g.outcome.Token())
	return sb.String()
}

// MarshalText implements the encoding.TextMarshaler interface and
// encodes the game's record.
func (g *Game) MarshalText() ([]byte, error) {
	return []byte(g.String()), nil
}

// UnmarshalText implements the encoding.TextUnmarshaler interface and
// replays the record in text.
func (g *Game) UnmarshalText(text []byte) error {
	game, err := ParseRecord(bytes.NewReader(text))
	if err != nil {
		return err
	}
	g.copy(game)
	return nil
}

// Record takes a reader and returns a function that updates the game to
// reflect the record. The returned function is designed to be used in
// the NewGame constructor; the record's First tag overrides the player
// given there.
func Record(r io.Reader) (func(*Game), error) {
	game, err := ParseRecord(r)
	if err != nil {
		return nil, err
	}
	return func(g *Game) { g.copy(game) }, nil
}

// ParseRecord reads a record and replays every placement through the
// rules, so an illegal record fails with the offending token.
func ParseRecord(r io.Reader) (*Game, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	s := strings.TrimSpace(string(raw))
	if s == "" {
		return nil, ErrNoGameFound
	}

	tags, body, err := parseTags(s)
	if err != nil {
		return nil, err
	}
	first, ok := ParseColor(tags[firstTag])
	if !ok {
		return nil, ErrMissingFirst
	}
	delete(tags, firstTag)

	g := NewGame(first)
	for k, v := range tags {
		g.AddTagPair(k, v)
	}

	tokens := strings.Fields(body)
	for i, tok := range tokens {
		if isRoundNumber(tok) {
			continue
		}
		if want, ok := resultFromToken(tok); ok {
			if i != len(tokens)-1 {
				return nil, fmt.Errorf("%w: result %q at %d is not last", ErrBadToken, tok, i)
			}
			if want != g.outcome {
				return nil, fmt.Errorf("%w: record says %s, replay gives %s", ErrResultMismatch, want, g.outcome)
			}
			break
		}
		t, to, err := ParsePlacement(tok)
		if err != nil {
			return nil, fmt.Errorf("invalid placement token at %d: %w", i, err)
		}
		if _, err := g.Place(t, to); err != nil {
			return nil, fmt.Errorf("illegal placement %q at %d: %w", tok, i, err)
		}
	}
	return g, nil
}

// parseTags splits the leading [Key "Value"] lines from the rest of s.
// The value is a Go-quoted string, so it may hold ']' itself.
func parseTags(s string) (TagPairs, string, error) {
	tags := make(TagPairs)
	rest := s
	for {
		rest = strings.TrimLeftFunc(rest, unicode.IsSpace)
		if !strings.HasPrefix(rest, "[") {
			return tags, rest, nil
		}
		rest = rest[1:]
		end := strings.IndexFunc(rest, unicode.IsSpace)
		if end <= 0 {
			return nil, "", fmt.Errorf("%w: tag %q", ErrBadToken, rest)
		}
		key := rest[:end]
		if !validTagKey(key) {
			return nil, "", fmt.Errorf("%w: tag key %q", ErrBadToken, key)
		}
		rest = strings.TrimLeftFunc(rest[end:], unicode.IsSpace)
		quoted, err := strconv.QuotedPrefix(rest)
		if err != nil {
			return nil, "", fmt.Errorf("%w: tag %s: %w", ErrBadToken, key, err)
		}
		value, err := strconv.Unquote(quoted)
		if err != nil {
			return nil, "", fmt.Errorf("%w: tag %s: %w", ErrBadToken, key, err)
		}
		rest = strings.TrimLeftFunc(rest[len(quoted):], unicode.IsSpace)
		if !strings.HasPrefix(rest, "]") {
			return nil, "", fmt.Errorf("%w: unterminated tag %s", ErrBadToken, key)
		}
		tags[key] = value
		rest = rest[1:]
	}
}

// validTagKey reports whether k can be written in a record header.
func validTagKey(k string) bool {
	return k != "" && !strings.ContainsFunc(k, unicode.IsSpace) && !strings.ContainsRune(k, ']')
}

// isRoundNumber reports whether tok looks like "12.".
func isRoundNumber(tok string) bool {
	n, ok := strings.CutSuffix(tok, ".")
	if !ok || n == "" {
		return false
	}
	_, err := strconv.Atoi(n)
	return err == nil
}
