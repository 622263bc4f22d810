package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/larsmk/crystalgraph/pkg/graph"
	"github.com/larsmk/crystalgraph/pkg/io"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// newInspectCmd creates the "inspect" command.
func newInspectCmd() *cobra.Command {
	var plain bool

	cmd := &cobra.Command{
		Use:   "inspect <artifact.cgr>",
		Short: "Browse an artifact's edges interactively",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := io.ReadFile(args[0])
			if err != nil {
				return err
			}

			printKeyValue("ID", g.ID())
			printKeyValue("Source", g.Source().Kind.String())
			printKeyValue("Atoms", fmt.Sprintf("%d", g.NodeCount()))
			printKeyValue("Edges", fmt.Sprintf("%d", g.EdgeCount()))

			if plain {
				for _, e := range g.Edges() {
					fmt.Printf("%d %d %s\n", e.From, e.To, formatWeight(e.Weight))
				}
				return nil
			}

			model := newEdgeListModel(g)
			_, err = tea.NewProgram(model).Run()
			return err
		},
	}

	cmd.Flags().BoolVar(&plain, "plain", false, "print edges without the interactive browser")
	return cmd
}

// =============================================================================
// EdgeListModel - Interactive edge browser
// =============================================================================

// edgeRow is one displayable edge with its element labels resolved.
type edgeRow struct {
	edge     graph.Edge
	elementA string
	elementB string
}

// EdgeListModel is the bubbletea model for browsing a graph's edge list.
type EdgeListModel struct {
	ID     string
	Rows   []edgeRow
	Cursor int
	Height int
	Offset int
}

// newEdgeListModel creates an edge browser for g.
func newEdgeListModel(g *graph.StructureGraph) EdgeListModel {
	elements := g.Elements()
	rows := make([]edgeRow, 0, g.EdgeCount())
	for _, e := range g.Edges() {
		rows = append(rows, edgeRow{
			edge:     e,
			elementA: elements[e.From],
			elementB: elements[e.To],
		})
	}
	return EdgeListModel{
		ID:     g.ID(),
		Rows:   rows,
		Height: 15,
	}
}

func (m EdgeListModel) Init() tea.Cmd {
	return nil
}

func (m EdgeListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc", "enter":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Rows)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 6
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

func (m EdgeListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render(fmt.Sprintf("Edges of %s", m.ID)))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  q quit"))
	b.WriteString("\n\n")

	end := m.Offset + m.Height
	if end > len(m.Rows) {
		end = len(m.Rows)
	}

	for i := m.Offset; i < end; i++ {
		r := m.Rows[i]
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}

		pair := fmt.Sprintf("%s(%d) %s %s(%d)", r.elementA, r.edge.From, iconArrow, r.elementB, r.edge.To)
		line := fmt.Sprintf("%s%-24s %s", cursor, pair, listDimStyle.Render(formatWeight(r.edge.Weight)))

		if i == m.Cursor {
			b.WriteString(listSelectedStyle.Render(line))
		} else {
			b.WriteString(listNormalStyle.Render(line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Rows))))

	return b.String()
}
