// Command vlist-demo shows a virtualized list of 10,000 generated items in
// the terminal. Arrow keys move the selection, shift extends it, the mouse
// wheel scrolls with momentum.
package main

import (
	"fmt"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"
	"github.com/charmbracelet/log/v2"
	"github.com/google/uuid"

	"github.com/oxidekit/vlist/tui"
)

const itemCount = 10_000

var (
	titleStyle  = lipgloss.NewStyle().Bold(true)
	idStyle     = lipgloss.NewStyle().Faint(true)
	statusStyle = lipgloss.NewStyle().Faint(true)
)

type demoItem struct {
	id    string
	index int
}

func (d demoItem) ID() string { return d.id }

func (d demoItem) Render(width int) string {
	title := titleStyle.Render(fmt.Sprintf("Item %d", d.index))
	line := title + " " + idStyle.Render(d.id)
	// Every seventh item is taller, to exercise variable-height layout.
	if d.index%7 == 0 {
		line += "\n" + idStyle.Render("  spans a second line")
	}
	return line
}

type model struct {
	list *tui.List[demoItem]

	width, height int
}

func newModel() model {
	items := make([]demoItem, itemCount)
	for i := range items {
		items[i] = demoItem{id: uuid.NewString(), index: i}
	}
	return model{
		list: tui.New(items, tui.WithEnableMouse(), tui.WithOverscan(4)),
	}
}

func (m model) Init() tea.Cmd {
	return m.list.Init()
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		// Reserve the bottom row for the status line.
		return m, m.list.SetSize(msg.Width, msg.Height-1)
	case tea.KeyPressMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		}
	}
	_, cmd := m.list.Update(msg)
	return m, cmd
}

func (m model) View() tea.View {
	sel := m.list.Window().Selection()
	status := fmt.Sprintf(
		"%d items · %d selected · %3.0f%%  (q quits)",
		itemCount, sel.Count(), m.list.ScrollProgress()*100,
	)
	return tea.NewView(m.list.View() + "\n" + statusStyle.Width(m.width).Render(status))
}

func main() {
	logger := log.NewWithOptions(os.Stderr, log.Options{ReportTimestamp: true})
	slog.SetDefault(slog.New(logger))

	p := tea.NewProgram(newModel(), tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		logger.Fatal("demo exited", "error", err)
	}
}
