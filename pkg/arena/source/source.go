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
	"context"
	"fmt"
	"strings"
)

// A Request carries everything a seat occupant may need to produce a
// move. Generative sources consume the full Prompt; engine-backed
// sources only care about the bare position.
type Request struct {
	Prompt string
	FEN    string
}

// Source produces a single free-text move proposal per call. A Source
// is owned by exactly one game at a time: implementations are not
// required to be reentrant.
type Source interface {
	Propose(ctx context.Context, req Request) (string, error)
	Close() error
}

// Config describes how to construct a Source for one seat. A fresh
// Source is built per game so that concurrent games never share one.
type Config struct {
	Name string
	Kind string // completion or uci

	// completion sources
	Model   string
	BaseURL string
	APIKey  string

	// uci sources
	Cmd      string
	Arg      string
	MoveTime int // milliseconds per move
}

// New constructs the Source this Config describes.
func (config Config) New() (Source, error) {
	switch config.Kind {
	case "completion":
		return NewCompletion(config)
	case "uci":
		return StartEngine(config)
	default:
		return nil, fmt.Errorf("source: unknown source kind %q", config.Kind)
	}
}

// ParseSpec parses a command-line agent specification of the form
// <kind>:<target>, where the target is a model name for completion
// sources and an executable path for uci sources.
func ParseSpec(spec string) (Config, error) {
	kind, target, found := strings.Cut(spec, ":")
	if !found || target == "" {
		return Config{}, fmt.Errorf("source: malformed agent spec %q", spec)
	}

	config := Config{Kind: kind, Name: target}
	switch kind {
	case "completion":
		config.Model = target
	case "uci":
		config.Cmd = target
	default:
		return Config{}, fmt.Errorf("source: unknown source kind %q", kind)
	}

	return config, nil
}
