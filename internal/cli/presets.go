package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/archlens/archlens/pkg/transform"
)

// newPresetsCmd creates the presets command.
func newPresetsCmd() *cobra.Command {
	var interactive bool

	cmd := &cobra.Command{
		Use:   "presets",
		Short: "List the built-in scenario presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			presets := transform.Presets()
			if interactive {
				return pickPreset(presets)
			}

			t := table.New().
				Border(lipgloss.RoundedBorder()).
				BorderStyle(StyleDim).
				Headers("ID", "NAME", "DESCRIPTION")
			for _, p := range presets {
				t.Row(p.ID, p.Name, p.Description)
			}
			fmt.Println(t)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "pick a preset interactively")
	return cmd
}

// pickPreset runs the interactive preset picker and prints the chosen ID.
func pickPreset(presets []transform.Preset) error {
	m := presetListModel{presets: presets}
	final, err := tea.NewProgram(m).Run()
	if err != nil {
		return err
	}
	if sel := final.(presetListModel).selected; sel != nil {
		fmt.Println(sel.ID)
	}
	return nil
}

// Picker styles.
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
)

// presetListModel is the bubbletea model for interactive preset selection.
type presetListModel struct {
	presets  []transform.Preset
	cursor   int
	selected *transform.Preset
}

func (m presetListModel) Init() tea.Cmd { return nil }

func (m presetListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.presets)-1 {
				m.cursor++
			}
		case "enter":
			m.selected = &m.presets[m.cursor]
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m presetListModel) View() string {
	s := StyleTitle.Render("Select Preset") + "\n"
	s += StyleDim.Render("↑/↓ navigate  ⏎ select  q quit") + "\n\n"

	for i, p := range m.presets {
		cursor := "  "
		style := listNormalStyle
		if i == m.cursor {
			cursor = "▸ "
			style = listSelectedStyle
		}
		s += cursor + style.Render(p.Name) + " " + StyleDim.Render(p.Description) + "\n"
	}
	return s
}
