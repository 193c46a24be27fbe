// Command scrolldemo drives a flexgrid viewport over a content column much
// taller than the screen. Arrow keys and paging move the window; the right
// edge shows the scrollbar indicator.
package main

import (
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"flexgrid"
)

const itemCount = 200

var (
	lineStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	zebraStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	thumbStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("62"))
	trackStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
	statusStyle = lipgloss.NewStyle().Faint(true)
)

type model struct {
	viewport *flexgrid.Viewport
	content  *flexgrid.Node
	calc     *flexgrid.Calculator
	size     flexgrid.Size
}

func newModel() model {
	// Lay the items out as a flex column so the content height comes from
	// the layout pass rather than hand counting.
	col := flexgrid.FlexColumn()
	for i := 0; i < itemCount; i++ {
		text := fmt.Sprintf("item %3d · the quick brown fox jumps over the lazy dog", i)
		item := flexgrid.NewNode().Height(1).Content(runewidth.StringWidth(text), 1)
		item.Data = text
		col.AddChild(item)
	}
	return model{
		viewport: flexgrid.NewViewport(flexgrid.Size{Width: 80, Height: 24}),
		content:  col,
		calc:     flexgrid.NewCalculator(),
	}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.size = flexgrid.Size{Width: msg.Width, Height: msg.Height - 1}
		m.viewport.SetSize(m.size)
		m.relayout()
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			m.viewport.ScrollBy(0, -1)
		case "down", "j":
			m.viewport.ScrollBy(0, 1)
		case "pgup", "b":
			m.viewport.PageUp()
		case "pgdown", "f", " ":
			m.viewport.PageDown()
		case "home", "g":
			m.viewport.ScrollToTop()
		case "end", "G":
			m.viewport.ScrollToBottom()
		}
	}
	return m, nil
}

// relayout recomputes the content column at the viewport width and feeds
// the resulting extent back to the viewport.
func (m model) relayout() {
	if m.size.Width <= 0 {
		return
	}
	avail := flexgrid.Size{Width: m.size.Width - 1, Height: itemCount}
	extent := m.calc.Calculate(m.content, avail)
	m.viewport.SetContentSize(extent)
}

func (m model) View() string {
	if m.size.Width <= 1 || m.size.Height <= 0 {
		return ""
	}

	region := m.viewport.VisibleRegion()
	thumb, thumbPos := m.viewport.VerticalIndicator(region.Height)

	var b strings.Builder
	children := m.content.Children()
	for row := 0; row < region.Height; row++ {
		idx := region.Y + row
		line := ""
		if idx >= 0 && idx < len(children) {
			text, _ := children[idx].Data.(string)
			line = runewidth.Truncate(text, region.Width, "…")
		}
		style := lineStyle
		if idx%2 == 1 {
			style = zebraStyle
		}
		b.WriteString(style.Render(line))
		b.WriteString(strings.Repeat(" ", maxInt(0, region.Width-runewidth.StringWidth(line))))

		if row >= thumbPos && row < thumbPos+thumb {
			b.WriteString(thumbStyle.Render("┃"))
		} else {
			b.WriteString(trackStyle.Render("│"))
		}
		b.WriteByte('\n')
	}

	b.WriteString(statusStyle.Render(fmt.Sprintf(
		"%d-%d of %d · j/k scroll · f/b page · g/G jump · q quit",
		region.Y+1, minInt(region.Y+region.Height, itemCount), itemCount,
	)))
	return b.String()
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func main() {
	p := tea.NewProgram(newModel(), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintln(os.Stderr, "scrolldemo:", err)
		os.Exit(1)
	}
}
