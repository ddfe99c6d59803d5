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
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"laptudirm.com/x/arena/pkg/arena/source"
)

// A game that cannot be set up must still count toward the series
// target, otherwise Start blocks on the completion channel forever.
func TestSeriesFinishesWhenEveryGameFailsSetup(t *testing.T) {
	series := NewSeries(Config{
		Agents: [2]source.Config{
			{Name: "alpha", Kind: "uci", Cmd: "/nonexistent/engine"},
			{Name: "beta", Kind: "uci", Cmd: "/nonexistent/engine"},
		},
		Oracle:    "checkers", // unknown rules backend
		GamePairs: 1,
	})

	done := make(chan error, 1)
	go func() { done <- series.Start() }()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("series never finished after both games failed setup")
	}

	for i, score := range series.Scores {
		require.Zero(t, score.Wins+score.Losses+score.Draws,
			"abandoned games must not be scored for agent %d", i)
	}
}
