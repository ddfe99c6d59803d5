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

package models

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/briandowns/spinner"
	"github.com/sirupsen/logrus"

	"laptudirm.com/x/arena/internal/util"
)

// Downloaded lists the GGUF files present in the models directory,
// in natural order, along with their sizes.
func Downloaded() ([]Local, error) {
	entries, err := os.ReadDir(util.ModelsDirectory)
	if err != nil {
		return nil, err
	}

	var locals []Local
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".gguf") {
			continue
		}

		info, err := entry.Info()
		if err != nil {
			continue
		}

		locals = append(locals, Local{Name: entry.Name(), Size: info.Size()})
	}

	sort.Slice(locals, func(i, j int) bool {
		return locals[i].Name < locals[j].Name
	})
	return locals, nil
}

type Local struct {
	Name string
	Size int64
}

// Pull downloads the named catalog model's weights into the models
// directory. Already downloaded weights are never fetched again.
func Pull(name string) error {
	info, found := Catalog[name]
	if !found {
		return fmt.Errorf("models: model %s not found in arena dataset", name)
	}

	destination := filepath.Join(util.ModelsDirectory, info.File)
	if _, err := os.Stat(destination); err == nil {
		fmt.Printf("Model \x1b[92m%s\x1b[0m is already downloaded.\n", name)
		return nil
	}

	logrus.Infof("Fetching \x1b[33m%s\x1b[0m from %s...\n", info.File, info.Source)

	s := spinner.New(spinner.CharSets[11], 100*time.Millisecond)
	s.Start()
	defer s.Stop()

	response, err := http.Get(info.Source)
	if err != nil {
		return err
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		return fmt.Errorf("models: fetch failed with http %d", response.StatusCode)
	}

	// Download to a partial file first so that an interrupted fetch
	// never masquerades as complete weights.
	partial := destination + ".partial"
	file, err := os.Create(partial)
	if err != nil {
		return err
	}

	written, err := io.Copy(file, response.Body)
	if closeErr := file.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		_ = os.Remove(partial)
		return err
	}

	if err := os.Rename(partial, destination); err != nil {
		return err
	}

	s.Stop()
	fmt.Printf(
		"\nInstalled model \x1b[92m%s\x1b[0m (%s).\n",
		name, util.HumanBytes(written),
	)
	return nil
}
