package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vmvarela/ghoten-ui/internal/domain"
	"github.com/vmvarela/ghoten-ui/internal/terraform"
)

type RunItem struct {
	run domain.WorkflowRun
}

func (i RunItem) FilterValue() string { return i.run.Name }
func (i RunItem) Title() string {
	return fmt.Sprintf("%s (%s)", i.run.Name, i.run.Branch)
}
func (i RunItem) Description() string {
	status := string(i.run.Status)
	if i.run.Conclusion != "" {
		status = fmt.Sprintf("%s / %s", i.run.Status, i.run.Conclusion)
	}
	return fmt.Sprintf("%s - %s", status, i.run.CreatedAt.Format("2006-01-02 15:04"))
}

type RunsViewModel struct {
	list     list.Model
	viewport viewport.Model
	project  string
	logs     string
	showLogs bool
	width    int
	height   int
}

func NewRunsView() *RunsViewModel {
	l := list.New([]list.Item{}, list.NewDefaultDelegate(), 0, 0)
	l.Title = "Workflow Runs"
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)

	return &RunsViewModel{
		list:     l,
		viewport: viewport.New(0, 0),
	}
}

func (m *RunsViewModel) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.list.SetSize(width, height-5)
	m.viewport.Width = width - 4
	m.viewport.Height = height - 7
}

func (m *RunsViewModel) SetRuns(project string, runs []domain.WorkflowRun) {
	m.project = project
	m.list.Title = "Workflow Runs - " + project

	items := make([]list.Item, len(runs))
	for i, run := range runs {
		items[i] = RunItem{run: run}
	}
	m.list.SetItems(items)
}

func (m *RunsViewModel) SelectedRun() (domain.WorkflowRun, bool) {
	item, ok := m.list.SelectedItem().(RunItem)
	if !ok {
		return domain.WorkflowRun{}, false
	}
	return item.run, true
}

// SetLogs expects content already passed through the redaction engine.
func (m *RunsViewModel) SetLogs(content string) {
	m.logs = content
	m.showLogs = true
	m.viewport.SetContent(m.logsView())
	m.viewport.GotoTop()
}

func (m *RunsViewModel) CloseLogs() {
	m.showLogs = false
	m.logs = ""
}

func (m *RunsViewModel) ShowingLogs() bool { return m.showLogs }

func (m *RunsViewModel) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	if m.showLogs {
		m.viewport, cmd = m.viewport.Update(msg)
		return cmd
	}
	m.list, cmd = m.list.Update(msg)
	return cmd
}

func (m *RunsViewModel) View() string {
	if m.showLogs {
		title := lipgloss.NewStyle().Bold(true).Render("Run logs - " + m.project)
		help := lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280")).Render("esc: back to runs")
		return lipgloss.JoinVertical(lipgloss.Left, title, m.viewport.View(), help)
	}
	return m.list.View()
}

func (m *RunsViewModel) logsView() string {
	var b strings.Builder

	if terraform.HasErrors(m.logs) {
		errStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#EF4444"))
		for _, line := range terraform.ExtractErrors(m.logs) {
			b.WriteString(errStyle.Render(line))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	summary := terraform.ParsePlanOutput(m.logs)
	if summary.ToAdd > 0 || summary.ToChange > 0 || summary.ToDestroy > 0 {
		b.WriteString(fmt.Sprintf("Plan: %d to add, %d to change, %d to destroy\n",
			summary.ToAdd, summary.ToChange, summary.ToDestroy))
		for _, change := range terraform.ExtractResourceChanges(m.logs) {
			b.WriteString(fmt.Sprintf("  [%s] %s\n", change.Action, change.Name))
		}
		b.WriteString("\n")
	}

	b.WriteString(m.logs)
	return b.String()
}
