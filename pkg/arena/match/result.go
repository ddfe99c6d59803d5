package match

import (
	"fmt"

	"laptudirm.com/x/arena/pkg/arena/games"
)

// TurnOutcome classifies a single resolved turn. Every turn produces
// exactly one of these; anything but Applied ends the game with the
// acting seat forfeiting.
type TurnOutcome uint8

const (
	Applied TurnOutcome = iota
	IllegalMove
	MalformedProposal
)

// Result represents the result of a single game, from White's side.
type Result int

const (
	Win  Result = +1
	Draw Result = 0
	Loss Result = -1
)

// GameLostBy maps the losing color to the game's Result.
var GameLostBy = [2]Result{
	games.White: Loss,
	games.Black: Win,
}

// String returns a string representation of the given Result.
func (result Result) String() string {
	switch result {
	case Win:
		return "1-0"
	case Draw:
		return "1/2-1/2"
	case Loss:
		return "0-1"
	default:
		return "?-?"
	}
}

// Termination is the terminal classification of a finished game.
type Termination uint8

const (
	Checkmate Termination = iota
	Stalemate
	DrawInsufficientMaterial
	DrawByRule
	ForfeitIllegalMove
	ForfeitMalformedProposal
)

func (termination Termination) String() string {
	switch termination {
	case Checkmate:
		return "checkmate"
	case Stalemate:
		return "stalemate"
	case DrawInsufficientMaterial:
		return "insufficient material"
	case DrawByRule:
		return "draw by rule"
	case ForfeitIllegalMove:
		return "forfeit by illegal move"
	case ForfeitMalformedProposal:
		return "forfeit by malformed proposal"
	default:
		return "unknown"
	}
}

// Report is the full record of a finished game, sufficient for any
// display or storage layer to render a summary without re-deriving
// state from the oracle.
type Report struct {
	Result      Result
	Termination Termination
	Reason      string

	// Agent names by seat; Winner and Loser are empty on a draw.
	White, Black  string
	Winner, Loser string

	Plies    int
	FinalFEN string

	// The offending proposal text, set only on forfeits.
	Offending string
}

func (report *Report) String() string {
	switch report.Result {
	case Win:
		return fmt.Sprintf("%s wins by %s", report.White, report.Reason)
	case Loss:
		return fmt.Sprintf("%s wins by %s", report.Black, report.Reason)
	case Draw:
		return fmt.Sprintf("Draw by %s", report.Reason)
	}

	return "illegal result"
}

// terminal maps an oracle's terminal verdict to a Report. The oracle
// reports wins relative to its own side to move, so the winning seat
// is resolved here against the current binding.
func (config *Config) terminal(oracle games.Oracle, result games.Result, reason string) *Report {
	report := &Report{
		Reason:   reason,
		White:    config.Agents[games.White].Name,
		Black:    config.Agents[games.Black].Name,
		Plies:    oracle.Plies(),
		FinalFEN: oracle.FEN(),
	}

	switch result {
	case games.StmWins:
		report.finish(config, oracle.SideToMove(), classify(reason))
	case games.XtmWins:
		report.finish(config, oracle.SideToMove().Other(), classify(reason))
	case games.Draw:
		report.Result = Draw
		report.Termination = classify(reason)
	}

	return report
}

// forfeit builds the Report for a game ended by the given seat's
// disqualifying proposal. The other seat wins unconditionally.
func (config *Config) forfeit(oracle games.Oracle, loser games.Color, outcome TurnOutcome, raw string) *Report {
	termination := ForfeitIllegalMove
	reason := "Illegal Move"
	if outcome == MalformedProposal {
		termination = ForfeitMalformedProposal
		reason = "Malformed Proposal"
	}

	report := &Report{
		Reason:    reason,
		White:     config.Agents[games.White].Name,
		Black:     config.Agents[games.Black].Name,
		Plies:     oracle.Plies(),
		FinalFEN:  oracle.FEN(),
		Offending: raw,
	}
	report.finish(config, loser.Other(), termination)

	return report
}

func (report *Report) finish(config *Config, winner games.Color, termination Termination) {
	report.Result = GameLostBy[winner.Other()]
	report.Termination = termination
	report.Winner = config.Agents[winner].Name
	report.Loser = config.Agents[winner.Other()].Name
}

// classify maps an oracle reason string to a Termination. Oracles
// report wins only by checkmate; draws split by their reason.
func classify(reason string) Termination {
	switch reason {
	case "Checkmate":
		return Checkmate
	case "Stalemate":
		return Stalemate
	case "Insufficient Material":
		return DrawInsufficientMaterial
	default:
		return DrawByRule
	}
}
