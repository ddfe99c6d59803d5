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
	"fmt"

	"github.com/spf13/cobra"

	"laptudirm.com/x/arena/internal/util"
	"laptudirm.com/x/arena/pkg/arena/models"
)

func Models() *cobra.Command {
	return &cobra.Command{
		Use:   "models",
		Short: "Lists the downloaded model weights",
		Args:  cobra.ExactArgs(0),

		RunE: func(cmd *cobra.Command, args []string) error {
			locals, err := models.Downloaded()
			if err != nil {
				return err
			}

			if len(locals) == 0 {
				fmt.Println("\x1b[31mNo Models Downloaded.\x1b[0m")
				return nil
			}

			fmt.Print("\u001B[32mDownloaded Models\u001B[0m:\n\n")
			for _, local := range locals {
				name := fmt.Sprintf("\x1b[34m%s\x1b[0m:", local.Name)
				fmt.Printf("- %-50s %s\n", name, util.HumanBytes(local.Size))
			}

			return nil
		},
	}
}
