package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/kinlab/kinchart/pkg/layout"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// strategyDescriptions maps built-in strategy names to one-line summaries
// shown in the picker and the strategies command. Custom strategies appear
// without a description.
var strategyDescriptions = map[string]string{
	layout.StrategyPedigree:   "combined ancestor/descendant chart around the root",
	layout.StrategyOrthogonal: "generation rows with right-angle connectors",
	layout.StrategyVertical:   "descendant tree, growing down/up/left/right",
	layout.StrategyHorizontal: "binary ancestor fan with halving spacing",
	layout.StrategyFan:        "radial ancestor chart on concentric rings",
	layout.StrategyTimeline:   "chronological rows packed by lifespan",
}

// =============================================================================
// StrategyListModel - Interactive strategy selection
// =============================================================================

// StrategyListModel is the bubbletea model for interactive strategy
// selection.
type StrategyListModel struct {
	Strategies []string
	Cursor     int
	Selected   string
}

// NewStrategyListModel creates a strategy list model with the cursor on the
// current strategy.
func NewStrategyListModel(strategies []string, current string) StrategyListModel {
	m := StrategyListModel{Strategies: strategies}
	for i, name := range strategies {
		if name == current {
			m.Cursor = i
			break
		}
	}
	return m
}

func (m StrategyListModel) Init() tea.Cmd {
	return nil
}

func (m StrategyListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
			}
		case "down", "j":
			if m.Cursor < len(m.Strategies)-1 {
				m.Cursor++
			}
		case "enter":
			m.Selected = m.Strategies[m.Cursor]
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m StrategyListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Select Layout Strategy"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ select  q quit"))
	b.WriteString("\n\n")

	for i, name := range m.Strategies {
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}

		line := fmt.Sprintf("%s%-12s %s", cursor, name, listDimStyle.Render(strategyDescriptions[name]))
		if i == m.Cursor {
			b.WriteString(listSelectedStyle.Render(line))
		} else {
			b.WriteString(listNormalStyle.Render(line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Strategies))))

	return b.String()
}

// pickStrategy runs the interactive strategy picker and returns the chosen
// name. An empty string means the user quit without selecting.
func pickStrategy(current string) (string, error) {
	model := NewStrategyListModel(layout.Names(), current)
	final, err := tea.NewProgram(model).Run()
	if err != nil {
		return "", fmt.Errorf("strategy picker: %w", err)
	}
	if m, ok := final.(StrategyListModel); ok {
		return m.Selected, nil
	}
	return "", nil
}
