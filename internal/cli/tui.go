package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/lastnpe/eeaconf/pkg/classpath"
	"github.com/lastnpe/eeaconf/pkg/maven"
	"github.com/lastnpe/eeaconf/pkg/workspace"
)

// List styles
var (
	listDimStyle = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// ProjectListModel - Interactive project selection
// =============================================================================

// ProjectItem is a workspace project offered for configuration.
type ProjectItem struct {
	Project workspace.Project
	// Configurable is set when the project has a pom.xml and a .classpath.
	Configurable bool
}

// ProjectItems describes the open projects of ws.
func ProjectItems(ws *workspace.Workspace) []ProjectItem {
	var items []ProjectItem
	for _, p := range ws.Projects() {
		if !p.Open {
			continue
		}
		items = append(items, ProjectItem{
			Project:      p,
			Configurable: exists(filepath.Join(p.Location, maven.POMFile)) && exists(filepath.Join(p.Location, classpath.FileName)),
		})
	}
	return items
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// ProjectListModel is the bubbletea model for interactive project selection.
type ProjectListModel struct {
	Items    []ProjectItem
	Cursor   int
	Selected *ProjectItem
	Height   int
	Offset   int
}

// NewProjectListModel creates a new project list model.
func NewProjectListModel(items []ProjectItem) ProjectListModel {
	return ProjectListModel{
		Items:  items,
		Cursor: 0,
		Height: 15,
		Offset: 0,
	}
}

func (m ProjectListModel) Init() tea.Cmd {
	return nil
}

func (m ProjectListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Items)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "enter":
			if len(m.Items) == 0 {
				return m, nil
			}
			item := m.Items[m.Cursor]
			if !item.Configurable {
				return m, nil
			}
			m.Selected = &item
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 6
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

func (m ProjectListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Select Project"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ configure  q quit"))
	b.WriteString("\n\n")

	end := m.Offset + m.Height
	if end > len(m.Items) {
		end = len(m.Items)
	}

	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		it := m.Items[i]

		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		mark := "—"
		if it.Configurable {
			mark = iconSuccess
		}
		rows = append(rows, []string{cursor, it.Project.Name, mark, it.Project.Location})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Project", "Maven", "Location").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}

			idx := m.Offset + row
			if idx >= len(m.Items) {
				return lipgloss.NewStyle()
			}
			base := lipgloss.NewStyle()
			if col == 3 {
				base = base.Foreground(colorDim)
			}
			if !m.Items[idx].Configurable {
				return base.Foreground(colorDim)
			}
			if idx == m.Cursor {
				return base.Foreground(colorGreen).Bold(true)
			}
			return base
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Items))))

	return b.String()
}

// pickProject runs the project list and returns the chosen project
// directory, or "" when the user quit.
func pickProject(items []ProjectItem) (string, error) {
	final, err := tea.NewProgram(NewProjectListModel(items)).Run()
	if err != nil {
		return "", err
	}
	m, ok := final.(ProjectListModel)
	if !ok || m.Selected == nil {
		return "", nil
	}
	return m.Selected.Project.Location, nil
}
