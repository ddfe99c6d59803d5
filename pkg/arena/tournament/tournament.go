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

package tournament

import (
	"fmt"
	"math"
	"time"

	"github.com/sirupsen/logrus"

	"laptudirm.com/x/arena/pkg/arena/games"
	"laptudirm.com/x/arena/pkg/arena/match"
	"laptudirm.com/x/arena/pkg/arena/source"
	"laptudirm.com/x/arena/pkg/arena/stats"
)

type Config struct {
	// The two agents playing the series.
	Agents [2]source.Config

	Oracle      string
	PositionFEN string

	// 1 Series = {GAME_P} Game Pairs
	// 1 Game Pair = 2 Games with colors swapped
	GamePairs int

	// Number of games that will be played concurrently. Every game
	// owns its own oracle and freshly built sources, so games never
	// share mutable state.
	Concurrency int

	ProposalTimeout time.Duration
}

func NewSeries(config Config) *Series {
	if config.GamePairs <= 0 {
		config.GamePairs = 1
	}
	if config.Concurrency <= 0 {
		config.Concurrency = 1
	}

	var series Series
	series.Config = config

	series.games = make(chan *Game)
	series.results = make(chan Result)
	series.complete = make(chan bool)

	return &series
}

type Series struct {
	Config Config

	games    chan *Game
	results  chan Result
	complete chan bool

	// Scores indexed by agent, not by seat.
	Scores [2]struct {
		Wins, Losses, Draws int
	}
}

type Game struct {
	match.Config

	Number int

	// Agent index occupying the White seat in this game.
	White int

	agents [2]source.Config
}

func (series *Series) Start() error {
	go series.ResultHandler()
	for i := 0; i < series.Config.Concurrency; i++ {
		go series.Thread()
	}

	number := 0
	for pair := 0; pair < series.Config.GamePairs; pair++ {
		white := 0
		for game := 0; game < 2; game++ {
			number++
			series.games <- &Game{
				Config: match.Config{
					PositionFEN:     series.Config.PositionFEN,
					ProposalTimeout: series.Config.ProposalTimeout,
				},

				Number: number,
				White:  white,
				agents: [2]source.Config{
					series.Config.Agents[white],
					series.Config.Agents[1^white],
				},
			}

			// Switch seats.
			white = 1 ^ white
		}
	}

	close(series.games)
	<-series.complete

	return nil
}

func (series *Series) Thread() {
	for game := range series.games {
		if err := series.RunGame(game); err != nil {
			logrus.Error(err)

			// Every game must produce a result, played or not, or
			// the handler never reaches its target and Start blocks.
			series.results <- Result{Game: game}
		}
	}
}

func (series *Series) RunGame(game *Game) error {
	logrus.Infof(
		"\x1b[33mStarting\x1b[0m Game #%d: %s vs %s\n",
		game.Number, game.agents[0].Name, game.agents[1].Name,
	)

	oracle, err := games.New(series.Config.Oracle)
	if err != nil {
		return err
	}
	game.Oracle = oracle

	for seat, agent := range game.agents {
		src, err := agent.New()
		if err != nil {
			return err
		}

		defer src.Close()
		game.Agents[seat] = match.Agent{Name: agent.Name, Source: src}
	}

	report, err := match.Run(&game.Config)
	if err != nil {
		return err
	}

	series.results <- Result{Game: game, Report: report}
	return nil
}

func (series *Series) ResultHandler() {
	count, target := 0, series.Config.GamePairs*2
	for result := range series.results {
		count++

		if result.Report == nil {
			// Game abandoned before play started: nothing to score.
			logrus.Infof(
				"\x1b[31mAbandoned\x1b[0m Game #%d: setup failed\n",
				result.Game.Number,
			)
		} else {
			// Map the seat result back to the agents occupying them.
			white, black := result.Game.White, 1^result.Game.White
			switch result.Report.Result {
			case match.Win:
				series.Scores[white].Wins++
				series.Scores[black].Losses++

			case match.Loss:
				series.Scores[black].Wins++
				series.Scores[white].Losses++

			case match.Draw:
				series.Scores[white].Draws++
				series.Scores[black].Draws++
			}

			logrus.Infof(
				"\x1b[32mFinished\x1b[0m Game #%d: %s\n",
				result.Game.Number, result.Report,
			)
		}

		if count == target {
			close(series.results)
			series.Report()
			series.complete <- true
			return
		}
	}
}

// Report prints the standing of both agents, with the elo estimate of
// the first agent relative to the second.
func (series *Series) Report() {
	fmt.Println("╔══════════════════════════════════════════════════════════╗")
	fmt.Println("║    Name               Elo Error   Wins Loss Draw   Total ║")
	fmt.Println("╠══════════════════════════════════════════════════════════╣")
	for i := range series.Config.Agents {
		score := series.Scores[i]
		lower, elo, upper := stats.Elo(score.Wins, score.Draws, score.Losses)

		fmt.Printf(
			"║ %2d. %-15s   %+4.0f %4.0f   %4d %4d %4d   %5d ║\n",
			i+1, series.Config.Agents[i].Name,
			elo, math.Abs(math.Max(upper-elo, elo-lower)),
			score.Wins, score.Losses, score.Draws,
			score.Wins+score.Losses+score.Draws)
	}
	fmt.Println("╚══════════════════════════════════════════════════════════╝")
}

type Result struct {
	Game   *Game
	Report *match.Report
}
