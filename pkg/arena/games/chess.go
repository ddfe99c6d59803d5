package games

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/notnil/chess"
)

// ChessOracle adjudicates chess positions using the notnil/chess rules
// library. It is the default rules backend.
type ChessOracle struct {
	game *chess.Game
}

func (oracle *ChessOracle) Initialize(fenstr string) error {
	if fenstr == "" {
		oracle.game = chess.NewGame()
		return nil
	}

	position, err := chess.FEN(fenstr)
	if err != nil {
		return fmt.Errorf("chess oracle: %w", err)
	}

	oracle.game = chess.NewGame(position)
	return nil
}

func (oracle *ChessOracle) FEN() string {
	return oracle.game.Position().String()
}

func (oracle *ChessOracle) SideToMove() Color {
	if oracle.game.Position().Turn() == chess.White {
		return White
	}

	return Black
}

func (oracle *ChessOracle) Plies() int {
	return len(oracle.game.Moves())
}

func (oracle *ChessOracle) IsLegal(movstr string) bool {
	return oracle.find(movstr) != nil
}

func (oracle *ChessOracle) Apply(movstr string) error {
	mov := oracle.find(movstr)
	if mov == nil {
		return fmt.Errorf("chess oracle: apply called with unvetted move %q", movstr)
	}

	return oracle.game.Move(mov)
}

// find looks the given move string up in the current position's legal
// move list. It returns nil if the move is absent, that is, illegal.
func (oracle *ChessOracle) find(movstr string) *chess.Move {
	for _, mov := range oracle.game.ValidMoves() {
		if strings.EqualFold(mov.String(), movstr) {
			return mov
		}
	}

	return nil
}

func (oracle *ChessOracle) GameResult() (Result, string) {
	// Outcomes the library declares on its own: checkmate and the
	// forced draws (insufficient material, 75-move, fivefold).
	switch oracle.game.Outcome() {
	case chess.WhiteWon, chess.BlackWon:
		// The mated side is the side to move in the final position.
		return XtmWins, reason(oracle.game.Method())
	case chess.Draw:
		return Draw, reason(oracle.game.Method())
	}

	// The checks below are done against the position itself so that
	// a game initialized from an already-terminal FEN adjudicates the
	// same as one that reached that position move by move.
	switch oracle.game.Position().Status() {
	case chess.Checkmate:
		return XtmWins, "Checkmate"
	case chess.Stalemate:
		return Draw, "Stalemate"
	}

	switch {
	case oracle.drawClock() >= 100:
		return Draw, "50-move Rule"
	case oracle.insufficientMaterial():
		return Draw, "Insufficient Material"
	}

	// Repetition draws are adjudicated as soon as a claim becomes
	// available instead of waiting for either side to claim.
	for _, method := range oracle.game.EligibleDraws() {
		if method == chess.ThreefoldRepetition {
			return Draw, "Threefold Repetition"
		}
	}

	return Ongoing, ""
}

// drawClock reads the halfmove clock off the current position.
func (oracle *ChessOracle) drawClock() int {
	fields := strings.Fields(oracle.game.Position().String())
	if len(fields) != 6 {
		return 0
	}

	clock, err := strconv.Atoi(fields[4])
	if err != nil {
		return 0
	}

	return clock
}

// insufficientMaterial reports whether neither side retains mating
// material: bare kings, a lone minor piece, or same-colored bishops.
func (oracle *ChessOracle) insufficientMaterial() bool {
	var knights, lightBishops, darkBishops int

	for square, piece := range oracle.game.Position().Board().SquareMap() {
		switch piece.Type() {
		case chess.King:
		case chess.Knight:
			knights++
		case chess.Bishop:
			if (int(square.File())+int(square.Rank()))%2 == 0 {
				darkBishops++
			} else {
				lightBishops++
			}
		default:
			// A pawn, rook or queen is always mating material.
			return false
		}
	}

	switch {
	case knights == 0 && lightBishops == 0 && darkBishops == 0:
		return true // K vs K
	case knights == 1 && lightBishops == 0 && darkBishops == 0:
		return true // K+N vs K
	case knights == 0 && (lightBishops == 0 || darkBishops == 0):
		return lightBishops+darkBishops <= 2 // same-colored bishops
	default:
		return false
	}
}

func reason(method chess.Method) string {
	switch method {
	case chess.Checkmate:
		return "Checkmate"
	case chess.Stalemate:
		return "Stalemate"
	case chess.InsufficientMaterial:
		return "Insufficient Material"
	case chess.FiftyMoveRule:
		return "50-move Rule"
	case chess.SeventyFiveMoveRule:
		return "75-move Rule"
	case chess.ThreefoldRepetition:
		return "Threefold Repetition"
	case chess.FivefoldRepetition:
		return "Fivefold Repetition"
	default:
		return "Adjudication"
	}
}
