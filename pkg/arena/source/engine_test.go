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

package source

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// Engine chatter written while nobody is awaiting must not block the
// reader goroutine; the next Await drains it from the buffer.
func TestEngineAwaitDrainsBufferedChatter(t *testing.T) {
	engine := &Engine{lines: make(chan string, 64)}

	for i := 0; i < 10; i++ {
		engine.lines <- "info depth 1 score cp 20"
	}
	engine.lines <- "bestmove e2e4"

	line, err := engine.Await("bestmove .*", time.Second)
	require.NoError(t, err)
	require.Equal(t, "bestmove e2e4", line)
}

func TestEngineAwaitReportsReaderError(t *testing.T) {
	engine := &Engine{lines: make(chan string, 64)}

	broken := errors.New("broken pipe")
	engine.fail(broken)
	close(engine.lines)

	_, err := engine.Await("bestmove .*", time.Second)
	require.ErrorIs(t, err, broken)
}

func TestEngineAwaitTimesOut(t *testing.T) {
	engine := &Engine{lines: make(chan string, 64)}

	_, err := engine.Await("bestmove .*", 10*time.Millisecond)
	require.ErrorIs(t, err, ErrReadTimeout)
}
