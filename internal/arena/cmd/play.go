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

package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"laptudirm.com/x/arena/pkg/arena/games"
	"laptudirm.com/x/arena/pkg/arena/match"
	"laptudirm.com/x/arena/pkg/arena/source"
	"laptudirm.com/x/arena/pkg/arena/store"
)

// arena play
func Play() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "play",
		Short: "Play a single game between two agents",
		Args:  cobra.ExactArgs(0),
		Long: heredoc.Doc(`play runs one game of chess between the two given agents
			and reports the result. An agent is specified as
			<kind>:<target>, where the kind is one of:

			    completion  an OpenAI-compatible chat-completions model;
			                the target is the model name. The endpoint is
			                taken from ARENA_BASE_URL and defaults to a
			                local llama.cpp server.
			    uci         a UCI chess engine; the target is the path to
			                its executable.

			A seat's agent forfeits the game the moment it proposes a
			move that does not parse or is not legal in the current
			position. There are no retries.`),
		RunE: func(cmd *cobra.Command, args []string) error {
			white, _ := cmd.Flags().GetString("white")
			black, _ := cmd.Flags().GetString("black")
			fen, _ := cmd.Flags().GetString("fen")
			oracleName, _ := cmd.Flags().GetString("oracle")
			timeout, _ := cmd.Flags().GetDuration("timeout")
			movetime, _ := cmd.Flags().GetInt("movetime")

			oracle, err := games.New(oracleName)
			if err != nil {
				return err
			}

			config := match.Config{
				Oracle:          oracle,
				PositionFEN:     fen,
				ProposalTimeout: timeout,
			}

			for seat, spec := range [2]string{white, black} {
				agent, err := source.ParseSpec(spec)
				if err != nil {
					return err
				}
				agent.MoveTime = movetime

				src, err := agent.New()
				if err != nil {
					return err
				}

				defer src.Close()
				config.Agents[seat] = match.Agent{Name: agent.Name, Source: src}
			}

			report, err := match.Run(&config)
			if err != nil {
				return err
			}

			fmt.Printf(
				"\n\x1b[32m%s\x1b[0m %s after %d plies (%s)\n",
				report.Result, report, report.Plies, report.Termination,
			)
			fmt.Printf("Final position: %s\n", report.FinalFEN)

			return archive(report)
		},
	}

	cmd.Flags().String("white", "", "agent occupying the White seat")
	cmd.Flags().String("black", "", "agent occupying the Black seat")
	cmd.Flags().String("fen", "", "starting position (default: standard)")
	cmd.Flags().String("oracle", "chess", "rules backend to adjudicate with")
	cmd.Flags().Duration("timeout", 2*time.Minute, "time allowed per proposal")
	cmd.Flags().Int("movetime", 1000, "milliseconds per move for uci agents")

	_ = cmd.MarkFlagRequired("white")
	_ = cmd.MarkFlagRequired("black")

	return cmd
}

// archive stores the report if a game archive is configured. A missing
// archive is not an error: games play fine without one.
func archive(report *match.Report) error {
	dsn := os.Getenv("ARENA_DB_URL")
	if dsn == "" {
		return nil
	}

	ctx := context.Background()
	db, err := store.Open(ctx, dsn)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := store.Migrate(ctx, db); err != nil {
		return err
	}

	if err := db.SaveGame(ctx, report); err != nil {
		return err
	}

	logrus.Debug("game archived")
	return nil
}
