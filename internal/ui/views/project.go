package views

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vmvarela/ghoten-ui/internal/config"
	"github.com/vmvarela/ghoten-ui/internal/domain"
	"github.com/vmvarela/ghoten-ui/internal/ghcr"
	"github.com/vmvarela/ghoten-ui/internal/redact"
)

type WorkspaceItem struct {
	workspace domain.Workspace
}

func (i WorkspaceItem) FilterValue() string { return i.workspace.Name }
func (i WorkspaceItem) Title() string {
	return fmt.Sprintf("%s [%s]", i.workspace.Name, i.workspace.Environment)
}
func (i WorkspaceItem) Description() string {
	if i.workspace.Description != "" {
		return i.workspace.Description
	}
	return fmt.Sprintf("%d variables", len(i.workspace.Variables))
}

type ProjectViewModel struct {
	list   list.Model
	loaded *config.LoadedProject
	width  int
	height int
}

func NewProjectView() *ProjectViewModel {
	l := list.New([]list.Item{}, list.NewDefaultDelegate(), 0, 0)
	l.Title = "Workspaces"
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)

	return &ProjectViewModel{list: l}
}

func (m *ProjectViewModel) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.list.SetSize(width/2, height-5)
}

func (m *ProjectViewModel) SetProject(loaded *config.LoadedProject) {
	m.loaded = loaded
	m.list.Title = "Workspaces - " + loaded.Project.Name

	items := make([]list.Item, len(loaded.Workspaces))
	for i, workspace := range loaded.Workspaces {
		items[i] = WorkspaceItem{workspace: workspace}
	}
	m.list.SetItems(items)
}

func (m *ProjectViewModel) Project() (domain.Project, bool) {
	if m.loaded == nil {
		return domain.Project{}, false
	}
	return m.loaded.Project, true
}

func (m *ProjectViewModel) SelectedWorkspace() (domain.Workspace, bool) {
	item, ok := m.list.SelectedItem().(WorkspaceItem)
	if !ok {
		return domain.Workspace{}, false
	}
	return item.workspace, true
}

func (m *ProjectViewModel) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return cmd
}

func (m *ProjectViewModel) View() string {
	if m.loaded == nil {
		return ""
	}

	left := m.list.View()
	right := m.detailView()

	return lipgloss.JoinHorizontal(lipgloss.Top, left, right)
}

// detailView renders the selected workspace. Variable values go through
// the redaction engine; raw values must never hit the screen.
func (m *ProjectViewModel) detailView() string {
	label := lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280"))
	value := lipgloss.NewStyle().Foreground(lipgloss.Color("#F9FAFB"))

	var b strings.Builder

	b.WriteString(label.Render("Project: "))
	b.WriteString(value.Render(m.loaded.Project.Name))
	b.WriteString("\n")
	if m.loaded.Project.Description != "" {
		b.WriteString(label.Render("About:   "))
		b.WriteString(value.Render(m.loaded.Project.Description))
		b.WriteString("\n")
	}

	workspace, ok := m.SelectedWorkspace()
	if !ok {
		return lipgloss.NewStyle().Padding(0, 2).Render(b.String())
	}

	b.WriteString("\n")
	b.WriteString(label.Render("Workspace:   "))
	b.WriteString(value.Render(workspace.Name))
	b.WriteString("\n")
	b.WriteString(label.Render("Environment: "))
	b.WriteString(value.Render(workspace.Environment))
	b.WriteString("\n")
	b.WriteString(label.Render("State:       "))
	b.WriteString(value.Render(ghcr.BuildStatePath(m.loaded.Project.Owner, m.loaded.Project.Repo, workspace.Name)))
	b.WriteString("\n")

	if len(workspace.Backend) > 0 {
		b.WriteString("\n")
		b.WriteString(label.Render("Backend:"))
		b.WriteString("\n")
		for _, key := range sortedKeys(workspace.Backend) {
			b.WriteString(fmt.Sprintf("  %s: %s\n", key, workspace.Backend[key]))
		}
	}

	if len(workspace.Variables) > 0 {
		b.WriteString("\n")
		b.WriteString(label.Render("Variables:"))
		b.WriteString("\n")
		redacted := redact.Variables(workspace.Variables)
		for _, key := range sortedKeys(redacted) {
			b.WriteString(fmt.Sprintf("  %s: %s\n", key, redacted[key]))
		}
	}

	return lipgloss.NewStyle().Padding(0, 2).Render(b.String())
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
