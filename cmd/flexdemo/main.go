// Command flexdemo renders a responsive dashboard laid out with flexgrid.
// Resize the terminal to watch the tree rebuild across breakpoints; press q
// to quit.
package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"golang.org/x/term"

	"flexgrid"
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("230")).
			Background(lipgloss.Color("62"))
	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240"))
	footerStyle = lipgloss.NewStyle().
			Faint(true)
)

// panel labels a leaf node and picks its render style.
type panel struct {
	title string
	style lipgloss.Style
}

func labeled(title string, style lipgloss.Style) *flexgrid.Node {
	n := flexgrid.NewNode()
	n.Data = panel{title: title, style: style}
	return n
}

// wideLayout is a sidebar plus a main area split into two stacked panels.
func wideLayout(flexgrid.Size) *flexgrid.Node {
	sidebar := labeled("sidebar", panelStyle).Basis(24).Shrink(0)
	content := flexgrid.FlexColumn(
		labeled("chart", panelStyle).Grow(2),
		labeled("logs", panelStyle).Grow(1),
	).Grow(1)

	body := flexgrid.FlexRow(sidebar, content).Grow(1)
	return flexgrid.FlexColumn(
		labeled("flexgrid dashboard", headerStyle).Height(1),
		body,
		labeled("q quit · resize to change breakpoint", footerStyle).Height(1),
	)
}

// narrowLayout stacks everything in one column.
func narrowLayout(flexgrid.Size) *flexgrid.Node {
	return flexgrid.FlexColumn(
		labeled("flexgrid", headerStyle).Height(1),
		labeled("sidebar", panelStyle).Basis(6).Shrink(0),
		labeled("chart", panelStyle).Grow(2),
		labeled("logs", panelStyle).Grow(1),
		labeled("q quit", footerStyle).Height(1),
	)
}

type model struct {
	engine     *flexgrid.Engine
	responsive *flexgrid.Responsive
	size       flexgrid.Size
}

func newModel(initial flexgrid.Size) model {
	r := flexgrid.NewResponsive().
		OnBreakpoint(flexgrid.BreakpointSmall, narrowLayout).
		OnBreakpoint(flexgrid.BreakpointMedium, wideLayout).
		OnBreakpoint(flexgrid.BreakpointLarge, wideLayout).
		OnBreakpoint(flexgrid.BreakpointXLarge, wideLayout)

	e := flexgrid.NewEngine()
	e.SetViewportSize(initial)
	e.SetRootNode(r.Update(initial))
	return model{engine: e, responsive: r, size: initial}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.size = flexgrid.Size{Width: msg.Width, Height: msg.Height - 1}
		root := m.responsive.Update(m.size)
		if root != m.engine.Root() {
			m.engine.SetRootNode(root)
		}
		m.engine.SetViewportSize(m.size)
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m model) View() string {
	if m.size.Width <= 0 || m.size.Height <= 0 {
		return ""
	}
	m.engine.Layout()
	return renderNode(m.engine.Root())
}

// renderNode turns the computed tree into styled text, sizing every box
// from its computed layout and joining flex children along the container's
// main axis.
func renderNode(n *flexgrid.Node) string {
	size := n.Computed().Size
	if size.Width <= 0 || size.Height <= 0 {
		return ""
	}

	if f := n.Flex(); f != nil && len(n.Children()) > 0 {
		parts := make([]string, 0, len(n.Children()))
		for _, child := range n.Children() {
			if s := renderNode(child); s != "" {
				parts = append(parts, s)
			}
		}
		if f.Direction() == flexgrid.Row || f.Direction() == flexgrid.RowReverse {
			return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
		}
		return lipgloss.JoinVertical(lipgloss.Left, parts...)
	}

	p, _ := n.Data.(panel)
	title := runewidth.Truncate(p.title, maxInt(0, size.Width-2), "…")
	return p.style.Width(maxInt(0, size.Width-p.style.GetHorizontalFrameSize())).
		Height(maxInt(0, size.Height-p.style.GetVerticalFrameSize())).
		Render(title)
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func main() {
	// Seed the layout from the real terminal size so the first frame is
	// right even before bubbletea delivers a WindowSizeMsg.
	width, height := 80, 24
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width, height = w, h
	}

	p := tea.NewProgram(
		newModel(flexgrid.Size{Width: width, Height: height - 1}),
		tea.WithAltScreen(),
	)
	if _, err := p.Run(); err != nil {
		fmt.Fprintln(os.Stderr, "flexdemo:", err)
		os.Exit(1)
	}
}
