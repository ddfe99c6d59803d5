package cmd

import (
	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"laptudirm.com/x/arena/pkg/arena/models"
)

// arena pull
func Pull() *cobra.Command {
	return &cobra.Command{
		Use:   "pull model-name",
		Short: "Download the given model's weights",
		Args:  cobra.ExactArgs(1),
		Long: heredoc.Doc(`pull downloads the weights of one of the models arena knows
			about into the models directory, ready to be served by a
			local llama.cpp server. Weights that are already present
			are not fetched again.`),
		RunE: func(cmd *cobra.Command, args []string) error {
			return models.Pull(args[0])
		},
	}
}
