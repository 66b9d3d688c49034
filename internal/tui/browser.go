package tui

import (
	"context"
	"fmt"
	"time"

	"docmcp/internal/document"
	"docmcp/internal/logging"
	"docmcp/internal/render"
	"docmcp/internal/tui/helpers"
	"docmcp/internal/tui/styles"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type KeyMap struct {
	Up           key.Binding
	Down         key.Binding
	Filter       key.Binding
	ToggleFormat key.Binding
	SwitchFocus  key.Binding
	Quit         key.Binding
}

// focusedPane identifies which pane (list or preview) has keyboard focus
type focusedPane int

const (
	focusList focusedPane = iota
	focusPreview
)

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up:           key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:         key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Filter:       key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "filter")),
		ToggleFormat: key.NewBinding(key.WithKeys("g"), key.WithHelp("g", "toggle format")),
		SwitchFocus:  key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "switch pane")),
		Quit:         key.NewBinding(key.WithKeys("q", "esc"), key.WithHelp("q/esc", "quit")),
	}
}

func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Filter, k.ToggleFormat, k.SwitchFocus, k.Quit}
}

func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

// documentItem is a list entry for one document.
type documentItem struct {
	id   string
	size int
}

func (d documentItem) FilterValue() string { return d.id }
func (d documentItem) Title() string       { return d.id }
func (d documentItem) Description() string { return fmt.Sprintf("%d bytes", d.size) }

// documentRenderedMsg carries a finished preview back to the browser.
type documentRenderedMsg struct {
	id       string
	content  string
	cacheKey string
}

type documentErrorMsg struct {
	id  string
	err error
}

// Browser is a read-only two-pane view over the document store: IDs on the
// left, the selected document on the right.
type Browser struct {
	logger *logging.AppLogger
	ops    *document.Operations

	title    string
	docList  list.Model
	viewport viewport.Model
	help     help.Model
	keys     KeyMap

	windowWidth  int
	windowHeight int

	useGlamour   bool
	glamourStyle string
	cache        map[string]string

	focusPane focusedPane
	lastErr   error
}

// NewBrowser lists every document currently in the store.
func NewBrowser(ctx helpers.UIContext, ops *document.Operations) *Browser {
	snapshot := ops.Store().Snapshot()
	items := make([]list.Item, len(snapshot))
	for i, doc := range snapshot {
		items[i] = documentItem{id: doc.ID, size: len(doc.Content)}
	}

	docList := list.New(items, list.NewDefaultDelegate(), ctx.Width, ctx.Height)
	docList.Title = "Documents"
	docList.SetShowStatusBar(false)
	docList.SetFilteringEnabled(true)
	docList.SetShowHelp(false)

	vp := viewport.New(ctx.Width, ctx.Height)
	vp.MouseWheelEnabled = true

	return &Browser{
		logger:       ctx.Logger,
		ops:          ops,
		title:        ctx.Title(),
		docList:      docList,
		viewport:     vp,
		help:         help.New(),
		keys:         DefaultKeyMap(),
		windowWidth:  ctx.Width,
		windowHeight: ctx.Height,
		useGlamour:   true,
		cache:        make(map[string]string),
		focusPane:    focusList,
	}
}

// Selected returns the ID under the cursor, or "" for an empty list.
func (b *Browser) Selected() string {
	if item, ok := b.docList.SelectedItem().(documentItem); ok {
		return item.id
	}
	return ""
}

// Preview returns the text currently shown in the preview pane, before viewport clipping.
func (b *Browser) Preview() string {
	return b.cache[b.cacheKey(b.Selected(), b.useGlamour)]
}

func (b *Browser) Init() tea.Cmd {
	// Detect once so rendering never issues terminal queries.
	if b.glamourStyle == "" {
		b.glamourStyle = render.DetectStyle(50 * time.Millisecond)
		b.logger.Debug("Glamour style selected", "style", b.glamourStyle)
	}

	if id := b.Selected(); id != "" {
		return b.showDocument(id)
	}
	return nil
}

func (b *Browser) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	b.logger.LogMessage(msg)

	var cmds []tea.Cmd
	oldSelected := b.Selected()

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		b.resize(msg.Width, msg.Height)
		// Wrap width changed, so cached renders are stale.
		b.cache = make(map[string]string)
		if id := b.Selected(); id != "" {
			return b, b.renderDocument(id, b.useGlamour)
		}
		return b, nil

	case tea.MouseMsg:
		var cmd tea.Cmd
		b.viewport, cmd = b.viewport.Update(msg)
		return b, cmd

	case list.FilterMatchesMsg:
		var cmd tea.Cmd
		b.docList, cmd = b.docList.Update(msg)
		return b, cmd

	case documentRenderedMsg:
		b.cache[msg.cacheKey] = msg.content
		if msg.id == b.Selected() && msg.cacheKey == b.cacheKey(msg.id, b.useGlamour) {
			b.lastErr = nil
			b.viewport.SetContent(msg.content)
			b.viewport.GotoTop()
		}
		return b, nil

	case documentErrorMsg:
		if msg.id == b.Selected() {
			b.logger.Error("Failed to load document", "doc_id", msg.id, "error", msg.err)
			b.lastErr = msg.err
			b.viewport.SetContent(styles.ErrorStyle.Render(msg.err.Error()))
		}
		return b, nil

	case tea.KeyMsg:
		// While filtering, esc only leaves the filter.
		if b.docList.FilterState() == list.Filtering {
			var cmd tea.Cmd
			b.docList, cmd = b.docList.Update(msg)
			cmds = append(cmds, cmd)
			if b.docList.FilterState() != list.Filtering {
				if id := b.Selected(); id != "" {
					cmds = append(cmds, b.showDocument(id))
				}
			}
			return b, tea.Batch(cmds...)
		}

		switch {
		case key.Matches(msg, b.keys.Quit):
			return b, tea.Quit

		case key.Matches(msg, b.keys.SwitchFocus):
			if b.focusPane == focusList {
				b.focusPane = focusPreview
			} else {
				b.focusPane = focusList
			}
			return b, nil

		case key.Matches(msg, b.keys.ToggleFormat):
			b.useGlamour = !b.useGlamour
			b.logger.Debug("Toggled formatting", "glamour", b.useGlamour)
			if id := b.Selected(); id != "" {
				return b, b.showDocument(id)
			}
			return b, nil
		}

		if b.focusPane == focusPreview {
			var cmd tea.Cmd
			b.viewport, cmd = b.viewport.Update(msg)
			return b, cmd
		}

		var cmd tea.Cmd
		b.docList, cmd = b.docList.Update(msg)
		cmds = append(cmds, cmd)

		if id := b.Selected(); id != "" && id != oldSelected && b.docList.FilterState() != list.Filtering {
			b.logger.Debug("Selection changed", "doc_id", id)
			cmds = append(cmds, b.showDocument(id))
		}
		return b, tea.Batch(cmds...)
	}

	return b, tea.Batch(cmds...)
}

func (b *Browser) View() string {
	header := styles.TitleStyle.Render(b.title)
	mode := "markdown"
	if !b.useGlamour {
		mode = "plain"
	}
	sub := styles.SubtitleStyle.Render(fmt.Sprintf("%d documents · %s", len(b.docList.Items()), mode))
	header = styles.HeaderContainerStyle.Render(lipgloss.JoinVertical(lipgloss.Left, header, sub))

	listStyle := styles.PaneStyle
	vpStyle := styles.PaneStyle
	switch b.focusPane {
	case focusList:
		listStyle = styles.PaneFocusedStyle
	case focusPreview:
		vpStyle = styles.PaneFocusedStyle
	}

	listStyle = listStyle.Width(b.docList.Width()).Height(b.docList.Height())
	vpStyle = vpStyle.Width(b.viewport.Width).Height(b.viewport.Height)

	panes := lipgloss.JoinHorizontal(
		lipgloss.Top,
		listStyle.Render(b.docList.View()),
		vpStyle.Render(b.viewport.View()),
	)
	panes = styles.MainContainerStyle.Render(panes)

	helpView := styles.HelpContainerStyle.Render(styles.HelpStyle.Render(b.help.View(b.keys)))

	return lipgloss.JoinVertical(lipgloss.Left, header, panes, helpView)
}

func (b *Browser) resize(width, height int) {
	b.windowWidth = width
	b.windowHeight = height
	b.help.Width = width

	frameW, frameH := styles.PaneStyle.GetFrameSize()
	const mainLeftMargin = 1
	avail := max(width-frameW*2-mainLeftMargin, 0)

	listWidth := max(avail/3, 20)
	vpWidth := max(avail-listWidth, 30)

	headerH := lipgloss.Height(b.headerView())
	helpH := lipgloss.Height(styles.HelpContainerStyle.Render(styles.HelpStyle.Render(b.help.View(b.keys))))
	contentHeight := max(height-headerH-helpH-frameH, 5)

	b.docList.SetSize(listWidth, contentHeight)
	b.viewport.Width = vpWidth
	b.viewport.Height = contentHeight

	b.logger.Debug("Window resized", "width", width, "height", height, "list_width", listWidth, "viewport_width", vpWidth)
}

func (b *Browser) headerView() string {
	return styles.HeaderContainerStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
		styles.TitleStyle.Render(b.title),
		styles.SubtitleStyle.Render(" "),
	))
}

// showDocument displays id from the cache, or schedules a render.
func (b *Browser) showDocument(id string) tea.Cmd {
	if cached, ok := b.cache[b.cacheKey(id, b.useGlamour)]; ok {
		b.viewport.SetContent(cached)
		b.viewport.GotoTop()
		return nil
	}
	b.viewport.SetContent("Loading " + id + "...")
	return b.renderDocument(id, b.useGlamour)
}

func (b *Browser) renderDocument(id string, glamourOn bool) tea.Cmd {
	width := b.viewport.Width - 2
	if width <= 0 {
		width = render.DefaultWidth
	}
	style := b.glamourStyle
	cacheKey := b.cacheKey(id, glamourOn)

	return func() tea.Msg {
		start := time.Now()
		defer b.logger.LogPerformance("render "+id, start)

		content, err := b.ops.ReadDocument(context.Background(), id)
		if err != nil {
			return documentErrorMsg{id: id, err: err}
		}

		if glamourOn {
			content, err = render.Markdown(content, width, style)
			if err != nil {
				return documentErrorMsg{id: id, err: err}
			}
		}

		return documentRenderedMsg{id: id, content: content, cacheKey: cacheKey}
	}
}

func (b *Browser) cacheKey(id string, glamourOn bool) string {
	if glamourOn {
		return id + "|glamour"
	}
	return id + "|plain"
}
