package views

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vmvarela/ghoten-ui/internal/domain"
)

type ProjectItem struct {
	project domain.Project
}

func (i ProjectItem) FilterValue() string { return i.project.Name }
func (i ProjectItem) Title() string {
	return fmt.Sprintf("%s (%s/%s)", i.project.Name, i.project.Owner, i.project.Repo)
}
func (i ProjectItem) Description() string {
	if i.project.Description != "" {
		return i.project.Description
	}
	return fmt.Sprintf("%d workspaces", len(i.project.Workspaces))
}

type ProjectsViewModel struct {
	list   list.Model
	width  int
	height int
}

func NewProjectsView() *ProjectsViewModel {
	l := list.New([]list.Item{}, list.NewDefaultDelegate(), 0, 0)
	l.Title = "Projects"
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(true)

	return &ProjectsViewModel{list: l}
}

func (m *ProjectsViewModel) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.list.SetSize(width, height-5)
}

func (m *ProjectsViewModel) SetProjects(projects []domain.Project) {
	items := make([]list.Item, len(projects))
	for i, project := range projects {
		items[i] = ProjectItem{project: project}
	}
	m.list.SetItems(items)
}

func (m *ProjectsViewModel) Selected() (domain.Project, bool) {
	item, ok := m.list.SelectedItem().(ProjectItem)
	if !ok {
		return domain.Project{}, false
	}
	return item.project, true
}

func (m *ProjectsViewModel) IsFiltering() bool {
	return m.list.FilterState() == list.Filtering
}

func (m *ProjectsViewModel) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return cmd
}

func (m *ProjectsViewModel) View() string {
	return m.list.View()
}
