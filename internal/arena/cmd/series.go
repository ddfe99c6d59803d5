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
	"time"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"laptudirm.com/x/arena/pkg/arena/source"
	"laptudirm.com/x/arena/pkg/arena/tournament"
)

// arena series
func Series() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "series",
		Short: "Play a series of game pairs between two agents",
		Args:  cobra.ExactArgs(0),
		Long: heredoc.Doc(`series runs the given number of game pairs between the two
			agents, swapping seats inside each pair, and prints the
			aggregate standing with an elo estimate at the end. Agents
			are specified like in play.`),
		RunE: func(cmd *cobra.Command, args []string) error {
			first, _ := cmd.Flags().GetString("first")
			second, _ := cmd.Flags().GetString("second")
			fen, _ := cmd.Flags().GetString("fen")
			oracleName, _ := cmd.Flags().GetString("oracle")
			timeout, _ := cmd.Flags().GetDuration("timeout")
			movetime, _ := cmd.Flags().GetInt("movetime")
			pairs, _ := cmd.Flags().GetInt("pairs")
			concurrency, _ := cmd.Flags().GetInt("concurrency")

			config := tournament.Config{
				Oracle:          oracleName,
				PositionFEN:     fen,
				GamePairs:       pairs,
				Concurrency:     concurrency,
				ProposalTimeout: timeout,
			}

			for i, spec := range [2]string{first, second} {
				agent, err := source.ParseSpec(spec)
				if err != nil {
					return err
				}

				agent.MoveTime = movetime
				config.Agents[i] = agent
			}

			return tournament.NewSeries(config).Start()
		},
	}

	cmd.Flags().String("first", "", "the first agent")
	cmd.Flags().String("second", "", "the second agent")
	cmd.Flags().String("fen", "", "starting position (default: standard)")
	cmd.Flags().String("oracle", "chess", "rules backend to adjudicate with")
	cmd.Flags().Duration("timeout", 2*time.Minute, "time allowed per proposal")
	cmd.Flags().Int("movetime", 1000, "milliseconds per move for uci agents")
	cmd.Flags().Int("pairs", 1, "number of game pairs to play")
	cmd.Flags().Int("concurrency", 1, "number of games to play concurrently")

	_ = cmd.MarkFlagRequired("first")
	_ = cmd.MarkFlagRequired("second")

	return cmd
}
