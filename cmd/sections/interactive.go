package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/wippyai/wasm-linker/wasm"
)

var (
	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4"))

	hexStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

type sectionsModel struct {
	filename string
	data     []byte
	infos    []wasm.SectionInfo
	selected int
	view     viewport.Model
	ready    bool
}

func newSectionsModel(filename string, data []byte, infos []wasm.SectionInfo) *sectionsModel {
	return &sectionsModel{filename: filename, data: data, infos: infos}
}

func (m *sectionsModel) Init() tea.Cmd {
	return nil
}

func (m *sectionsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.selected > 0 {
				m.selected--
				m.view.SetContent(m.hexDump())
				m.view.GotoTop()
			}
			return m, nil
		case "down", "j":
			if m.selected < len(m.infos)-1 {
				m.selected++
				m.view.SetContent(m.hexDump())
				m.view.GotoTop()
			}
			return m, nil
		}

	case tea.WindowSizeMsg:
		listHeight := len(m.infos) + 4
		m.view = viewport.New(msg.Width, max(msg.Height-listHeight, 3))
		m.view.SetContent(m.hexDump())
		m.ready = true
	}

	var cmd tea.Cmd
	m.view, cmd = m.view.Update(msg)
	return m, cmd
}

func (m *sectionsModel) View() string {
	if !m.ready {
		return "loading..."
	}

	var b strings.Builder
	b.WriteString(headerStyle.Render(m.filename))
	b.WriteString("\n\n")

	for i, info := range m.infos {
		line := fmt.Sprintf("%-24s off=%-8d size=%d", info.String(), info.Offset, info.Size)
		if i == m.selected {
			line = selectedStyle.Render("> " + line)
		} else {
			line = "  " + line
		}
		b.WriteString(line)
		b.WriteByte('\n')
	}

	b.WriteByte('\n')
	b.WriteString(m.view.View())
	b.WriteByte('\n')
	b.WriteString(helpStyle.Render("↑/↓ select section · scroll with mouse/pgup/pgdn · q to quit"))
	return b.String()
}

// hexDump renders the selected section's bytes, header included, sixteen
// per row.
func (m *sectionsModel) hexDump() string {
	info := m.infos[m.selected]
	end := min(info.Offset+sectionTotal(info), len(m.data))
	body := m.data[info.Offset:end]

	var b strings.Builder
	for row := 0; row < len(body); row += 16 {
		chunk := body[row:min(row+16, len(body))]
		var hex, ascii strings.Builder
		for _, c := range chunk {
			fmt.Fprintf(&hex, "%02x ", c)
			if c >= 0x20 && c < 0x7f {
				ascii.WriteByte(c)
			} else {
				ascii.WriteByte('.')
			}
		}
		fmt.Fprintf(&b, "%08x  %s %s\n",
			info.Offset+row, hexStyle.Render(fmt.Sprintf("%-48s", hex.String())), ascii.String())
	}
	return b.String()
}

// sectionTotal returns the full on-disk length of a section: id byte,
// LEB128 size field, then the body.
func sectionTotal(info wasm.SectionInfo) int {
	n := 1 + wasm.SizeLEB128u(info.Size)
	return n + int(info.Size)
}

func runInteractive(filename string) error {
	data, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("read file: %w", err)
	}
	infos, err := wasm.ScanSections(data)
	if err != nil {
		return fmt.Errorf("scan: %w", err)
	}
	if len(infos) == 0 {
		return fmt.Errorf("module has no sections")
	}

	p := tea.NewProgram(newSectionsModel(filename, data, infos), tea.WithAltScreen())
	_, err = p.Run()
	return err
}
