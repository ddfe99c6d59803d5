package match

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"laptudirm.com/x/arena/pkg/arena/games"
	"laptudirm.com/x/arena/pkg/arena/source"
)

// script replays a fixed list of proposals, one per call.
type script struct {
	proposals []string
	calls     int
}

func (s *script) Propose(ctx context.Context, req source.Request) (string, error) {
	if s.calls >= len(s.proposals) {
		return "", errors.New("script exhausted")
	}

	proposal := s.proposals[s.calls]
	s.calls++
	return proposal, nil
}

func (s *script) Close() error { return nil }

// failing always errors instead of producing a proposal.
type failing struct{}

func (failing) Propose(ctx context.Context, req source.Request) (string, error) {
	return "", errors.New("model exploded")
}

func (failing) Close() error { return nil }

// blocked never answers before the context expires.
type blocked struct{}

func (blocked) Propose(ctx context.Context, req source.Request) (string, error) {
	<-ctx.Done()
	return "", ctx.Err()
}

func (blocked) Close() error { return nil }

// mustNotPropose fails the test if the loop ever asks it for a move.
type mustNotPropose struct{ t *testing.T }

func (m mustNotPropose) Propose(ctx context.Context, req source.Request) (string, error) {
	m.t.Fatal("proposal requested on a terminal state")
	return "", nil
}

func (mustNotPropose) Close() error { return nil }

func newConfig(t *testing.T, fen string, white, black source.Source) *Config {
	t.Helper()

	oracle, err := games.New("chess")
	require.NoError(t, err)

	return &Config{
		Oracle:      oracle,
		PositionFEN: fen,
		Agents: [2]Agent{
			games.White: {Name: "Alpha", Source: white},
			games.Black: {Name: "Beta", Source: black},
		},
	}
}

func TestRunFoolsMate(t *testing.T) {
	config := newConfig(t, "",
		&script{proposals: []string{"f2f3", "g2g4"}},
		&script{proposals: []string{"e7e5", "d8h4"}},
	)

	report, err := Run(config)
	require.NoError(t, err)

	require.Equal(t, Loss, report.Result)
	require.Equal(t, Checkmate, report.Termination)
	require.Equal(t, "Beta", report.Winner)
	require.Equal(t, "Alpha", report.Loser)
	require.Equal(t, 4, report.Plies)
	require.Empty(t, report.Offending)
}

func TestRunIllegalMoveForfeits(t *testing.T) {
	// e2e5 parses fine but is not a legal move from the start.
	config := newConfig(t, "",
		&script{proposals: []string{"e2e5"}},
		mustNotPropose{t},
	)

	report, err := Run(config)
	require.NoError(t, err)

	require.Equal(t, Loss, report.Result)
	require.Equal(t, ForfeitIllegalMove, report.Termination)
	require.Equal(t, "Beta", report.Winner)
	require.Equal(t, "Alpha", report.Loser)
	require.Equal(t, "e2e5", report.Offending)
	require.Zero(t, report.Plies)
}

func TestRunMalformedProposalForfeits(t *testing.T) {
	for _, proposal := range []string{
		"I think e2e4 is good", "z9z9", "", "resign",
	} {
		config := newConfig(t, "",
			&script{proposals: []string{proposal}},
			mustNotPropose{t},
		)

		report, err := Run(config)
		require.NoError(t, err)

		require.Equal(t, ForfeitMalformedProposal, report.Termination, "proposal %q", proposal)
		require.Equal(t, "Beta", report.Winner)
		require.Equal(t, proposal, report.Offending)
	}
}

func TestRunBlackForfeitAttribution(t *testing.T) {
	config := newConfig(t, "",
		&script{proposals: []string{"e2e4"}},
		&script{proposals: []string{"nonsense"}},
	)

	report, err := Run(config)
	require.NoError(t, err)

	require.Equal(t, Win, report.Result)
	require.Equal(t, ForfeitMalformedProposal, report.Termination)
	require.Equal(t, "Alpha", report.Winner)
	require.Equal(t, "Beta", report.Loser)
	require.Equal(t, 1, report.Plies)
}

func TestRunSourceErrorForfeits(t *testing.T) {
	config := newConfig(t, "", failing{}, mustNotPropose{t})

	report, err := Run(config)
	require.NoError(t, err)

	require.Equal(t, ForfeitMalformedProposal, report.Termination)
	require.Equal(t, "Beta", report.Winner)
}

func TestRunProposalTimeoutForfeits(t *testing.T) {
	config := newConfig(t, "", blocked{}, mustNotPropose{t})
	config.ProposalTimeout = 10 * time.Millisecond

	report, err := Run(config)
	require.NoError(t, err)

	require.Equal(t, ForfeitMalformedProposal, report.Termination)
	require.Equal(t, "Beta", report.Winner)
}

func TestRunTerminalStateNeedsNoProposal(t *testing.T) {
	// Fool's mate delivered: White is mated before any turn starts.
	mated := "rnb1kbnr/pppp1ppp/8/4p3/6Pq/5P2/PPPPP2P/RNBQKBNR w KQkq - 1 3"

	config := newConfig(t, mated, mustNotPropose{t}, mustNotPropose{t})

	report, err := Run(config)
	require.NoError(t, err)

	require.Equal(t, Loss, report.Result)
	require.Equal(t, Checkmate, report.Termination)
	require.Equal(t, "Beta", report.Winner)
	require.Equal(t, "Alpha", report.Loser)
}

func TestRunDrawHasNoWinner(t *testing.T) {
	// Bare kings: drawn before any proposal is requested.
	bare := "8/8/8/4k3/8/8/4K3/8 w - - 0 1"

	config := newConfig(t, bare, mustNotPropose{t}, mustNotPropose{t})

	report, err := Run(config)
	require.NoError(t, err)

	require.Equal(t, Draw, report.Result)
	require.Equal(t, DrawInsufficientMaterial, report.Termination)
	require.Empty(t, report.Winner)
	require.Empty(t, report.Loser)
}

func TestRunDrawByRule(t *testing.T) {
	// Halfmove clock already at 100 plies.
	position := "8/8/8/4k3/8/8/4K3/7R w - - 100 80"

	config := newConfig(t, position, mustNotPropose{t}, mustNotPropose{t})

	report, err := Run(config)
	require.NoError(t, err)

	require.Equal(t, Draw, report.Result)
	require.Equal(t, DrawByRule, report.Termination)
	require.Equal(t, "50-move Rule", report.Reason)
}

// breach pretends a move is legal and then refuses to apply it, which
// is the oracle contract violation Run must surface instead of
// swallowing.
type breach struct{ games.Oracle }

func (b breach) IsLegal(mov string) bool { return true }
func (b breach) Apply(mov string) error  { return errors.New("apply rejected vetted move") }

func TestRunSurfacesOracleContractBreach(t *testing.T) {
	oracle, err := games.New("chess")
	require.NoError(t, err)

	config := &Config{
		Oracle: breach{oracle},
		Agents: [2]Agent{
			games.White: {Name: "Alpha", Source: &script{proposals: []string{"e2e4"}}},
			games.Black: {Name: "Beta", Source: mustNotPropose{t}},
		},
	}

	_, err = Run(config)
	require.Error(t, err)
}

func TestTurnAlternation(t *testing.T) {
	config := newConfig(t, "",
		&script{proposals: []string{"e2e4", "g1f3"}},
		&script{proposals: []string{"e7e5", "b8c6"}},
	)

	oracle := config.Oracle
	require.NoError(t, oracle.Initialize(""))

	seats := []games.Color{}
	for i := 0; i < 4; i++ {
		seat := oracle.SideToMove()

		outcome, _, err := config.turn(oracle, config.Agents[seat])
		require.NoError(t, err)
		require.Equal(t, Applied, outcome)

		seats = append(seats, seat)
		require.Equal(t, i+1, oracle.Plies())
	}

	require.Equal(t, []games.Color{
		games.White, games.Black, games.White, games.Black,
	}, seats)
}
