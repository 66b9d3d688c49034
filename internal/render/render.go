// Package render turns document text into terminal output.
package render

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/glamour"
	"github.com/muesli/termenv"
)

// DefaultWidth is the wrap width used when the caller has no better value.
const DefaultWidth = 80

// Standard glamour styles.
const (
	StyleDark    = "dark"
	StyleLight   = "light"
	StyleNoTTY   = "notty"
	StyleDefault = StyleDark
)

// Markdown renders text as markdown wrapped to width using the named glamour
// style. Non-positive widths fall back to DefaultWidth.
func Markdown(text string, width int, style string) (string, error) {
	if width <= 0 {
		width = DefaultWidth
	}
	if style == "" {
		style = StyleDefault
	}

	renderer, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return "", fmt.Errorf("failed to create markdown renderer: %w", err)
	}

	out, err := renderer.Render(text)
	if err != nil {
		return "", fmt.Errorf("failed to render markdown: %w", err)
	}
	return out, nil
}

// DetectStyle picks a glamour style for the current terminal. GLAMOUR_STYLE
// wins when set to anything but "auto". Background detection gives up after
// timeout, since some terminals never answer the query.
func DetectStyle(timeout time.Duration) string {
	style := os.Getenv("GLAMOUR_STYLE")
	if style != "" && style != "auto" {
		return style
	}

	ch := make(chan string, 1)
	go func() {
		out := termenv.NewOutput(os.Stdout)
		if out.HasDarkBackground() {
			ch <- StyleDark
			return
		}
		ch <- StyleLight
	}()

	select {
	case s := <-ch:
		return s
	case <-time.After(timeout):
		return StyleDefault
	}
}
