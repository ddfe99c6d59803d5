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
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// maxCompletionTokens caps the model's reply. A move in coordinate
// notation is at most five characters, so a handful of tokens is
// plenty and anything longer is wasted generation.
const maxCompletionTokens = 10

// Completion proposes moves by querying a chat-completions endpoint.
// Both hosted APIs and a local llama.cpp server speak this protocol.
type Completion struct {
	config Config
	client *http.Client
}

func NewCompletion(config Config) (*Completion, error) {
	if config.Model == "" {
		config.Model = strings.TrimSpace(os.Getenv("ARENA_MODEL"))
	}
	if config.Model == "" {
		return nil, errors.New("source: completion model missing")
	}

	if config.BaseURL == "" {
		config.BaseURL = strings.TrimSpace(os.Getenv("ARENA_BASE_URL"))
	}
	if config.BaseURL == "" {
		// A llama.cpp server's default listen address.
		config.BaseURL = "http://localhost:8080/v1"
	}
	config.BaseURL = strings.TrimRight(config.BaseURL, "/")

	if config.APIKey == "" {
		config.APIKey = strings.TrimSpace(os.Getenv("ARENA_API_KEY"))
	}

	return &Completion{
		config: config,
		client: &http.Client{Timeout: 45 * time.Second},
	}, nil
}

func (completion *Completion) Propose(ctx context.Context, req Request) (string, error) {
	payload, _ := json.Marshal(map[string]any{
		"model": completion.config.Model,
		"messages": []map[string]string{
			{"role": "user", "content": req.Prompt},
		},
		"max_tokens": maxCompletionTokens,
		"stop":       []string{"\n"},
	})

	request, err := http.NewRequestWithContext(
		ctx, http.MethodPost,
		completion.config.BaseURL+"/chat/completions",
		bytes.NewReader(payload),
	)
	if err != nil {
		return "", err
	}

	request.Header.Set("Content-Type", "application/json")
	if completion.config.APIKey != "" {
		request.Header.Set("Authorization", "Bearer "+completion.config.APIKey)
	}

	response, err := completion.client.Do(request)
	if err != nil {
		return "", err
	}
	defer response.Body.Close()

	body, _ := io.ReadAll(response.Body)
	if response.StatusCode < 200 || response.StatusCode >= 300 {
		return "", fmt.Errorf("source: completion http %d", response.StatusCode)
	}

	var parsed struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", err
	}
	if len(parsed.Choices) == 0 {
		return "", errors.New("source: no choices returned")
	}

	text := parsed.Choices[0].Message.Content
	logrus.Debugf("info: (%s)> %s\n", completion.config.Name, strings.TrimSpace(text))
	return text, nil
}

func (completion *Completion) Close() error {
	return nil
}
