package match

import (
	"fmt"
	"strings"
)

// maxProposalLen bounds the candidate move text pulled out of a raw
// proposal. Coordinate notation needs at most five characters.
const maxProposalLen = 10

// Prompt builds the instruction block sent to a generative source for
// the given position. It is rebuilt from the current position every
// turn and never reused.
func Prompt(fen string) string {
	return fmt.Sprintf(
		"You are a chess master playing a game.\n"+
			"Here is the current board in FEN: %s\n"+
			"Please provide your next move in UCI format (e.g. e2e4). "+
			"Just give the move only, no explanation.", fen)
}

// ParsedMove is a move candidate in coordinate notation, produced from
// raw proposal text by strict parsing and consumed within the turn.
type ParsedMove struct {
	From, To  string
	Promotion byte
}

func (mov ParsedMove) String() string {
	if mov.Promotion == 0 {
		return mov.From + mov.To
	}

	return mov.From + mov.To + string(mov.Promotion)
}

// Token extracts the candidate move text from a raw proposal: the
// first whitespace-delimited token, cut at the first line break and
// capped at maxProposalLen bytes.
func Token(raw string) string {
	raw = strings.TrimLeft(raw, " \t\r\n")
	if i := strings.IndexAny(raw, " \t\r\n"); i >= 0 {
		raw = raw[:i]
	}

	if len(raw) > maxProposalLen {
		raw = raw[:maxProposalLen]
	}

	return raw
}

// ParseMove strictly parses a candidate token into a ParsedMove. It is
// total: any text that is not exactly a source square, a destination
// square, and an optional promotion piece parses to nothing. Ambiguous
// or partially valid text is never fixed up.
func ParseMove(token string) (ParsedMove, bool) {
	token = strings.ToLower(token)
	if len(token) != 4 && len(token) != 5 {
		return ParsedMove{}, false
	}

	if !validSquare(token[0], token[1]) || !validSquare(token[2], token[3]) {
		return ParsedMove{}, false
	}

	var mov ParsedMove
	mov.From, mov.To = token[0:2], token[2:4]

	if len(token) == 5 {
		switch token[4] {
		case 'q', 'r', 'b', 'n':
			mov.Promotion = token[4]
		default:
			return ParsedMove{}, false
		}
	}

	return mov, true
}

func validSquare(file, rank byte) bool {
	return file >= 'a' && file <= 'h' && rank >= '1' && rank <= '8'
}
