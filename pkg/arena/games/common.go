package games

import "fmt"

// startFEN is the standard chess starting position, used whenever an
// Oracle is initialized with an empty position descriptor.
const startFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// New returns a fresh, uninitialized Oracle for the named rules backend.
func New(name string) (Oracle, error) {
	switch name {
	case "", "chess":
		return &ChessOracle{}, nil
	case "mess":
		return &MessOracle{}, nil
	default:
		return nil, fmt.Errorf("games: unknown rules backend %q", name)
	}
}

// Oracle is the capability set the arena needs from a rules engine. Any
// conformant implementation can sit behind it; the arena never inspects
// the board representation directly.
//
// IsLegal and GameResult are side-effect free and can be called any
// number of times. Apply must only ever be called with a move that
// IsLegal has just accepted; it returns an error only when that
// contract is breached.
type Oracle interface {
	Initialize(fen string) error
	FEN() string
	SideToMove() Color
	Plies() int
	IsLegal(mov string) bool
	Apply(mov string) error
	GameResult() (Result, string)
}

type Color uint8

const (
	White Color = iota
	Black
)

// Other returns the opposing color.
func (color Color) Other() Color {
	return color ^ 1
}

func (color Color) String() string {
	if color == White {
		return "White"
	}

	return "Black"
}

type Result uint8

const (
	Ongoing Result = iota
	StmWins
	XtmWins
	Draw
)
