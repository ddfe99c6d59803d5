package games

import (
	"fmt"
	"strings"

	"laptudirm.com/x/mess/pkg/board"
	"laptudirm.com/x/mess/pkg/board/move"
	"laptudirm.com/x/mess/pkg/board/piece"
	"laptudirm.com/x/mess/pkg/formats/fen"
)

// MessOracle adjudicates chess positions using the mess engine's board
// package. It is an alternative backend to ChessOracle; both implement
// the same Oracle contract and must agree on legality and termination.
type MessOracle struct {
	board *board.Board
	moves []move.Move
	plies int
}

func (oracle *MessOracle) Initialize(fenstr string) error {
	if fenstr == "" {
		fenstr = startFEN
	}

	// fen.FromString assumes a well-formed record and panics on
	// anything without exactly 6 fields.
	if len(strings.Fields(fenstr)) != 6 {
		return fmt.Errorf("mess oracle: invalid fen %q", fenstr)
	}

	oracle.board = board.New(board.FEN(fen.FromString(fenstr)))
	oracle.moves = oracle.board.GenerateMoves(false)
	oracle.plies = 0
	return nil
}

func (oracle *MessOracle) FEN() string {
	fenstr := [6]string(oracle.board.FEN())
	return strings.Join(fenstr[:], " ")
}

func (oracle *MessOracle) SideToMove() Color {
	if oracle.board.SideToMove == piece.White {
		return White
	}

	return Black
}

func (oracle *MessOracle) Plies() int {
	return oracle.plies
}

func (oracle *MessOracle) IsLegal(movstr string) bool {
	_, found := oracle.find(movstr)
	return found
}

func (oracle *MessOracle) Apply(movstr string) error {
	index, found := oracle.find(movstr)
	if !found {
		return fmt.Errorf("mess oracle: apply called with unvetted move %q", movstr)
	}

	oracle.board.MakeMove(oracle.moves[index])
	oracle.moves = oracle.board.GenerateMoves(false)
	oracle.plies++
	return nil
}

func (oracle *MessOracle) find(movstr string) (int, bool) {
	for i, mov := range oracle.moves {
		if strings.EqualFold(mov.String(), movstr) {
			return i, true
		}
	}

	return 0, false
}

func (oracle *MessOracle) GameResult() (Result, string) {
	switch {
	case len(oracle.moves) == 0:
		if oracle.board.IsInCheck(oracle.board.SideToMove) {
			return XtmWins, "Checkmate"
		}

		return Draw, "Stalemate"

	case oracle.board.DrawClock >= 100:
		return Draw, "50-move Rule"
	case oracle.board.IsThreefoldRepetition():
		return Draw, "Threefold Repetition"
	case oracle.board.IsInsufficientMaterial():
		return Draw, "Insufficient Material"
	}

	return Ongoing, ""
}
