package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

type StatusBarModel struct {
	width   int
	message string
	isError bool
	loading bool
}

func NewStatusBar() *StatusBarModel {
	return &StatusBarModel{}
}

func (m *StatusBarModel) SetWidth(width int) {
	m.width = width
}

func (m *StatusBarModel) SetMessage(message string, isError bool) {
	m.message = message
	m.isError = isError
	m.loading = false
}

func (m *StatusBarModel) SetLoading(message string) {
	m.message = message
	m.isError = false
	m.loading = true
}

func (m *StatusBarModel) ClearMessage() {
	m.message = ""
	m.isError = false
	m.loading = false
}

func (m *StatusBarModel) View() string {
	content := " " + m.message
	if m.loading {
		content += "..."
	}

	if lipgloss.Width(content) > m.width && m.width > 3 {
		runes := []rune(content)
		for len(runes) > 0 && lipgloss.Width(string(runes)) > m.width-3 {
			runes = runes[:len(runes)-1]
		}
		content = string(runes) + "..."
	} else if lipgloss.Width(content) < m.width {
		content += strings.Repeat(" ", m.width-lipgloss.Width(content))
	}

	bgColor := lipgloss.Color("#374151")
	if m.isError {
		bgColor = lipgloss.Color("#991B1B")
	}

	style := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#F9FAFB")).
		Background(bgColor).
		Width(m.width)

	return style.Render(content)
}
