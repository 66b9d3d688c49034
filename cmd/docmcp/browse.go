package main

import (
	"docmcp/internal/tui"
	"docmcp/internal/tui/helpers"

	"github.com/spf13/cobra"
)

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Browse documents in the terminal",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ops, err := newOperations(appConfig, appLogger)
		if err != nil {
			return err
		}

		// The first WindowSizeMsg sets the real dimensions.
		ctx := helpers.NewUIContext(0, 0, appConfig, appLogger)
		return tui.Run(cmd.Context(), tui.NewBrowser(ctx, ops))
	},
}

func init() {
	rootCmd.AddCommand(browseCmd)
}
