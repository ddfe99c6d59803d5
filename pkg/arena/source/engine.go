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
	"bufio"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// Engine is a UCI chess engine subprocess occupying a seat. It lets a
// classical engine act as the baseline opponent for a language model.
type Engine struct {
	config Config

	*exec.Cmd

	writer *bufio.Writer
	reader *bufio.Reader

	lines chan string

	// guards err, which is written by the reader goroutine and read
	// from Await after a timeout or channel close.
	mutex sync.Mutex
	err   error
}

func (engine *Engine) fail(err error) {
	engine.mutex.Lock()
	engine.err = err
	engine.mutex.Unlock()
}

func (engine *Engine) readErr() error {
	engine.mutex.Lock()
	defer engine.mutex.Unlock()
	return engine.err
}

// StartEngine spawns the engine process and completes the UCI handshake.
func StartEngine(config Config) (*Engine, error) {
	if config.MoveTime <= 0 {
		config.MoveTime = 1000
	}

	var engine Engine
	engine.config = config

	process := exec.Command(config.Cmd, strings.Fields(config.Arg)...)

	stdin, _ := process.StdinPipe()
	stdout, _ := process.StdoutPipe()

	engine.writer = bufio.NewWriter(stdin)
	engine.reader = bufio.NewReader(stdout)
	// Buffered so the reader keeps draining engine chatter between
	// Await calls instead of blocking on an abandoned send.
	engine.lines = make(chan string, 64)

	engine.Cmd = process

	if err := engine.Cmd.Start(); err != nil {
		return nil, err
	}

	go func() {
		for {
			line, err := engine.reader.ReadString('\n')
			if err != nil {
				engine.fail(err)
				close(engine.lines)
				return
			}

			line = strings.Trim(line, " \n\t\r")

			logrus.Debugf("info: ("+engine.config.Name+")> %s\n", line)
			engine.lines <- line
		}
	}()

	if err := engine.Write("uci"); err != nil {
		return nil, err
	}
	if _, err := engine.Await("uciok", 5*time.Second); err != nil {
		return nil, err
	}

	if err := engine.Write("ucinewgame"); err != nil {
		return nil, err
	}
	if err := engine.Synchronize(); err != nil {
		return nil, err
	}

	return &engine, nil
}

// Propose asks the engine for its best move in the request's position.
func (engine *Engine) Propose(ctx context.Context, req Request) (string, error) {
	if err := engine.Write("position fen %s", req.FEN); err != nil {
		return "", err
	}

	if err := engine.Synchronize(); err != nil {
		return "", err
	}

	if err := engine.Write("go movetime %d", engine.config.MoveTime); err != nil {
		return "", err
	}

	timeout := time.Duration(engine.config.MoveTime)*time.Millisecond + 5*time.Second
	if deadline, ok := ctx.Deadline(); ok {
		timeout = time.Until(deadline)
	}

	line, err := engine.Await("bestmove .*", timeout)
	if err != nil {
		return "", err
	}

	return strings.Fields(line)[1], nil
}

// Synchronize waits for the engine to complete some time consuming task
// and synchronizes the interface with it.
func (engine *Engine) Synchronize() error {
	if err := engine.Write("isready"); err != nil {
		return err
	}

	_, err := engine.Await("readyok", 5*time.Second)
	return err
}

// Close quits and kills the engine.
func (engine *Engine) Close() error {
	if err := engine.Write("quit"); err != nil {
		return err
	}

	return engine.Process.Kill()
}

var ErrReadTimeout = errors.New("engine: read i/o timeout")

// Await is a utility function which waits for a particular string from
// the engine with a fixed timeout.
func (engine *Engine) Await(pattern string, timeout time.Duration) (string, error) {
	regex := regexp.MustCompile(pattern)
	timer := time.NewTimer(timeout)
	defer timer.Stop()

	for {
		select {
		case <-timer.C:
			// timer ran out: wait timeout

			if err := engine.readErr(); err != nil {
				return "", err
			}

			return "", ErrReadTimeout

		case line, ok := <-engine.lines:
			if !ok {
				if err := engine.readErr(); err != nil {
					return "", err
				}

				return "", ErrReadTimeout
			}

			if regex.MatchString(line) {
				// line is the expected line
				return line, nil
			}
		}
	}
}

func (engine *Engine) Write(format string, a ...any) error {
	logrus.Debugf("info: ("+engine.config.Name+")< "+format+"\n", a...)

	if _, err := fmt.Fprintf(engine.writer, format+"\n", a...); err != nil {
		return err
	}

	return engine.writer.Flush()
}
