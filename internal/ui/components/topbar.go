package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

type TopBarModel struct {
	width        int
	currentView  string
	userLogin    string
	organization string
	projectCount int
	repoCount    int
	tokenAge     int
	hasTokenAge  bool
	shortcuts    []string
}

var (
	topBarStyle       = lipgloss.NewStyle().Padding(1, 2)
	brandStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true)
	topValueStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("15"))
	shortcutKeyStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("33")).Bold(true)
	shortcutDescStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("246"))
)

func NewTopBar() *TopBarModel {
	return &TopBarModel{}
}

func (m *TopBarModel) SetWidth(width int) {
	m.width = width
}

func (m *TopBarModel) SetView(view string) {
	m.currentView = view
}

func (m *TopBarModel) SetIdentity(login, organization string) {
	m.userLogin = login
	m.organization = organization
}

func (m *TopBarModel) SetStats(projectCount, repoCount int) {
	m.projectCount = projectCount
	m.repoCount = repoCount
}

func (m *TopBarModel) SetTokenAge(minutes int, known bool) {
	m.tokenAge = minutes
	m.hasTokenAge = known
}

func (m *TopBarModel) SetShortcuts(shortcuts []string) {
	m.shortcuts = shortcuts
}

func (m *TopBarModel) View() string {
	var left strings.Builder

	left.WriteString(brandStyle.Render("ghoten"))
	if m.currentView != "" {
		left.WriteString(shortcutDescStyle.Render(" | "))
		left.WriteString(topValueStyle.Render(m.currentView))
	}
	if m.userLogin != "" {
		left.WriteString(shortcutDescStyle.Render(" | "))
		left.WriteString(topValueStyle.Render("@" + m.userLogin))
	}
	if m.organization != "" {
		left.WriteString(shortcutDescStyle.Render(" | org: "))
		left.WriteString(topValueStyle.Render(m.organization))
	}
	if m.projectCount > 0 {
		left.WriteString(shortcutDescStyle.Render(
			fmt.Sprintf(" | %d projects / %d repos", m.projectCount, m.repoCount)))
	}
	if m.hasTokenAge {
		left.WriteString(shortcutDescStyle.Render(fmt.Sprintf(" | token %dm", m.tokenAge)))
	}

	var right strings.Builder
	for i, shortcut := range m.shortcuts {
		if i > 0 {
			right.WriteString(shortcutDescStyle.Render("  "))
		}
		parts := strings.SplitN(shortcut, ":", 2)
		if len(parts) == 2 {
			right.WriteString(shortcutKeyStyle.Render(parts[0]))
			right.WriteString(shortcutDescStyle.Render(" " + parts[1]))
		} else {
			right.WriteString(shortcutDescStyle.Render(shortcut))
		}
	}

	leftView := left.String()
	rightView := right.String()

	gap := m.width - lipgloss.Width(leftView) - lipgloss.Width(rightView) - 4
	if gap < 1 {
		gap = 1
	}

	return topBarStyle.Render(leftView + strings.Repeat(" ", gap) + rightView)
}
