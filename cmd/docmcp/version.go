package main

import (
	"fmt"
	"strings"

	"docmcp/internal/config"

	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of docmcp",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "docmcp version %s\n", strings.TrimSpace(config.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
