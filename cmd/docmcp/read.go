package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var readCmd = &cobra.Command{
	Use:   "read [id]",
	Short: "Print a document",
	Long:  `Print the raw content of a document, exactly as read_doc_contents returns it.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ops, err := newOperations(appConfig, appLogger)
		if err != nil {
			return err
		}

		content, err := ops.ReadDocument(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), content)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(readCmd)
}
