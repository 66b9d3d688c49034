package tui

import (
	"context"
	"strings"
	"testing"
	"time"

	"docmcp/internal/config"
	"docmcp/internal/document"
	"docmcp/internal/logging"
	"docmcp/internal/tui/helpers"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/exp/teatest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestBrowser(t *testing.T) *Browser {
	t.Helper()
	t.Setenv("GLAMOUR_STYLE", "notty")

	logger, _ := logging.NewTestLogger()
	cfg := config.DefaultConfig()
	ops := document.NewOperations(document.NewStore(document.DefaultSeed()), logger)

	return NewBrowser(helpers.NewUIContext(100, 30, &cfg, logger), ops)
}

// drain runs cmd and feeds its message back into the browser.
func drain(t *testing.T, b *Browser, cmd tea.Cmd) {
	t.Helper()
	if cmd == nil {
		return
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		for _, c := range batch {
			drain(t, b, c)
		}
		return
	}
	if msg == nil {
		return
	}
	_, next := b.Update(msg)
	drain(t, b, next)
}

// waitForStrings blocks until every s has appeared in the output read by
// this call.
func waitForStrings(t *testing.T, tm *teatest.TestModel, s ...string) {
	t.Helper()
	teatest.WaitFor(
		t,
		tm.Output(),
		func(b []byte) bool {
			for _, want := range s {
				if !strings.Contains(string(b), want) {
					return false
				}
			}
			return true
		},
		teatest.WithCheckInterval(time.Millisecond*100),
		teatest.WithDuration(time.Second*3),
	)
}

func TestNewBrowser(t *testing.T) {
	b := createTestBrowser(t)

	assert.Equal(t, "deposition.md", b.Selected())
	assert.Len(t, b.docList.Items(), 6)
	assert.Equal(t, "DocumentMCP", b.title)
	assert.True(t, b.useGlamour)
	assert.Equal(t, focusList, b.focusPane)
}

func TestBrowser_InitRendersFirstDocument(t *testing.T) {
	b := createTestBrowser(t)

	drain(t, b, b.Init())

	assert.Equal(t, "notty", b.glamourStyle)
	assert.Contains(t, b.Preview(), "Angela Smith")
}

func TestBrowser_SelectionChangeRendersDocument(t *testing.T) {
	b := createTestBrowser(t)
	drain(t, b, b.Init())

	_, cmd := b.Update(tea.KeyMsg{Type: tea.KeyDown})
	drain(t, b, cmd)

	assert.Equal(t, "report.pdf", b.Selected())
	assert.Contains(t, b.Preview(), "condenser tower")
}

func TestBrowser_ToggleFormat(t *testing.T) {
	b := createTestBrowser(t)
	drain(t, b, b.Init())

	_, cmd := b.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("g")})
	drain(t, b, cmd)

	assert.False(t, b.useGlamour)
	assert.Equal(t, "This deposition covers the testimony of Angela Smith, P.E.", b.Preview())
	assert.Contains(t, b.View(), "plain")
}

func TestBrowser_SwitchFocus(t *testing.T) {
	b := createTestBrowser(t)

	b.Update(tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, focusPreview, b.focusPane)

	// Down scrolls the preview instead of moving the selection.
	b.Update(tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, "deposition.md", b.Selected())

	b.Update(tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, focusList, b.focusPane)
}

func TestBrowser_ErrorMessage(t *testing.T) {
	b := createTestBrowser(t)

	b.Update(documentErrorMsg{id: "deposition.md", err: assert.AnError})
	assert.ErrorIs(t, b.lastErr, assert.AnError)

	// Errors for documents no longer selected are ignored.
	b.lastErr = nil
	b.Update(documentErrorMsg{id: "plan.md", err: assert.AnError})
	assert.NoError(t, b.lastErr)
}

func TestBrowser_DoesNotModifyStore(t *testing.T) {
	b := createTestBrowser(t)
	drain(t, b, b.Init())

	for i := 0; i < 5; i++ {
		_, cmd := b.Update(tea.KeyMsg{Type: tea.KeyDown})
		drain(t, b, cmd)
	}

	assert.Equal(t, document.DefaultSeed(), b.ops.Store().Snapshot())
}

func TestBrowser_Integration(t *testing.T) {
	b := createTestBrowser(t)
	tm := teatest.NewTestModel(t, b, teatest.WithInitialTermSize(100, 30))

	waitForStrings(t, tm, "deposition.md", "Angela Smith")

	tm.Send(tea.KeyMsg{Type: tea.KeyDown})
	waitForStrings(t, tm, "condenser tower")

	tm.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	tm.WaitFinished(t, teatest.WithFinalTimeout(3*time.Second))

	final, ok := tm.FinalModel(t).(*Browser)
	require.True(t, ok)
	assert.Equal(t, "report.pdf", final.Selected())
}

func TestRun_CancelledContext(t *testing.T) {
	b := createTestBrowser(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := Run(ctx, b, tea.WithInput(strings.NewReader("")), tea.WithOutput(&strings.Builder{}))
	assert.NoError(t, err)
}
