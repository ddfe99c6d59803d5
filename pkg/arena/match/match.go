// Copyright © 2024 Rak Laptudirm <rak@laptudirm.com>
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package match

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"laptudirm.com/x/arena/pkg/arena/games"
	"laptudirm.com/x/arena/pkg/arena/source"
)

// Agent is a proposal source bound to a seat for a whole game. The
// binding is fixed at game start and never reassigned.
type Agent struct {
	Name   string
	Source source.Source
}

type Config struct {
	Oracle      games.Oracle
	PositionFEN string

	// Agents indexed by the seat color they occupy.
	Agents [2]Agent

	// ProposalTimeout bounds each Propose call. Expiry forfeits the
	// acting seat exactly like a malformed proposal.
	ProposalTimeout time.Duration
}

// Run drives exactly one game from the configured position to a
// terminal Report. An error is returned only for a setup failure or an
// oracle contract breach, never for anything an agent did: agent
// misbehavior is a game result, not a fault.
func Run(config *Config) (*Report, error) {
	oracle := config.Oracle
	if err := oracle.Initialize(config.PositionFEN); err != nil {
		return nil, err
	}

	for {
		// Terminal check comes first: once the oracle reports a
		// finished game no source is invoked again.
		if result, reason := oracle.GameResult(); result != games.Ongoing {
			return config.terminal(oracle, result, reason), nil
		}

		seat := oracle.SideToMove()
		agent := config.Agents[seat]

		outcome, raw, err := config.turn(oracle, agent)
		if err != nil {
			return nil, err
		}

		if outcome != Applied {
			logrus.Infof(
				"\x1b[31m%s\x1b[0m (%s) disqualified: %q\n",
				agent.Name, seat, raw,
			)
			return config.forfeit(oracle, seat, outcome, raw), nil
		}
	}
}

// turn resolves a single proposal exchange: prompt, propose, parse,
// validate, apply. It returns exactly one TurnOutcome along with the
// raw proposal text. The returned error is non-nil only when the
// oracle rejects a move its own legality test just accepted.
func (config *Config) turn(oracle games.Oracle, agent Agent) (TurnOutcome, string, error) {
	ctx := context.Background()
	if config.ProposalTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, config.ProposalTimeout)
		defer cancel()
	}

	fen := oracle.FEN()
	raw, err := agent.Source.Propose(ctx, source.Request{
		Prompt: Prompt(fen),
		FEN:    fen,
	})
	if err != nil {
		// A failing source is indistinguishable from one that
		// produced garbage: both forfeit, neither crashes the game.
		logrus.Debugf("proposal from %s failed: %s", agent.Name, err)
		return MalformedProposal, err.Error(), nil
	}

	mov, ok := ParseMove(Token(raw))
	if !ok {
		return MalformedProposal, raw, nil
	}

	if !oracle.IsLegal(mov.String()) {
		return IllegalMove, raw, nil
	}

	if err := oracle.Apply(mov.String()); err != nil {
		return Applied, raw, err
	}

	logrus.Infof(
		"\x1b[34m%s\x1b[0m (%s) plays %s\n",
		agent.Name, oracle.SideToMove().Other(), mov,
	)
	return Applied, raw, nil
}
