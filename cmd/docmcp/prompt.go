package main

import (
	"fmt"

	"docmcp/internal/prompt"

	"github.com/muesli/reflow/wordwrap"
	"github.com/spf13/cobra"
)

var (
	promptSummarize bool
	promptWidth     int
)

var promptCmd = &cobra.Command{
	Use:   "prompt [id]",
	Short: "Print the format prompt for a document",
	Long: `Print the text the format prompt sends to the model for a document.
The document does not have to exist: prompts never look at the store.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		messages := prompt.FormatMessages(args[0])
		if promptSummarize {
			messages = prompt.SummarizeMessages(args[0])
		}

		for _, m := range messages {
			text := m.Text
			if promptWidth > 0 {
				text = wordwrap.String(text, promptWidth)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "[%s]\n%s", m.Role, text)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(promptCmd)
	promptCmd.Flags().BoolVar(&promptSummarize, "summarize", false, "Print the summarize prompt instead")
	promptCmd.Flags().IntVar(&promptWidth, "width", 0, "Wrap lines at this width (0 disables wrapping)")
}
