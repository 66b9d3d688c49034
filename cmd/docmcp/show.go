package main

import (
	"fmt"
	"time"

	"docmcp/internal/render"

	"github.com/spf13/cobra"
)

var (
	showPlain bool
	showWidth int
	showStyle string
)

var showCmd = &cobra.Command{
	Use:   "show [id]",
	Short: "Render a document as markdown in the terminal",
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

		if showPlain {
			fmt.Fprintln(cmd.OutOrStdout(), content)
			return nil
		}

		style := showStyle
		if style == "" {
			style = render.DetectStyle(50 * time.Millisecond)
		}

		out, err := render.Markdown(content, showWidth, style)
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), out)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(showCmd)
	showCmd.Flags().BoolVar(&showPlain, "plain", false, "Print without markdown rendering")
	showCmd.Flags().IntVar(&showWidth, "width", render.DefaultWidth, "Wrap width")
	showCmd.Flags().StringVar(&showStyle, "style", "", "Glamour style (default: detect from terminal)")
}
