package ui

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vmvarela/ghoten-ui/internal/auth"
	"github.com/vmvarela/ghoten-ui/internal/config"
	"github.com/vmvarela/ghoten-ui/internal/domain"
	gh "github.com/vmvarela/ghoten-ui/internal/github"
	"github.com/vmvarela/ghoten-ui/internal/logger"
	"github.com/vmvarela/ghoten-ui/internal/redact"
	"github.com/vmvarela/ghoten-ui/internal/ui/components"
	"github.com/vmvarela/ghoten-ui/internal/ui/views"
)

const (
	planWorkflowFile  = "terraform-plan.yml"
	applyWorkflowFile = "terraform-apply.yml"
)

type ViewState int

const (
	ViewLogin ViewState = iota
	ViewProjects
	ViewProject
	ViewRuns
)

type Model struct {
	state            ViewState
	width            int
	height           int
	topBar           *components.TopBarModel
	statusBar        *components.StatusBarModel
	commandBar       *components.CommandBarModel
	loginView        *views.LoginViewModel
	projectsView     *views.ProjectsViewModel
	projectView      *views.ProjectViewModel
	runsView         *views.RunsViewModel
	logsView         *views.LogsViewModel
	tokens           *auth.TokenStore
	flow             *auth.DeviceFlow
	client           *gh.Client
	loader           *config.Loader
	org              string
	user             domain.User
	currentProject   domain.Project
	currentWorkspace string
	ctx              context.Context
}

func NewModel(tokens *auth.TokenStore, flow *auth.DeviceFlow, org string) Model {
	m := Model{
		state:        ViewLogin,
		topBar:       components.NewTopBar(),
		statusBar:    components.NewStatusBar(),
		commandBar:   components.NewCommandBar(),
		loginView:    views.NewLoginView(),
		projectsView: views.NewProjectsView(),
		projectView:  views.NewProjectView(),
		runsView:     views.NewRunsView(),
		logsView:     views.NewLogsView(),
		tokens:       tokens,
		flow:         flow,
		org:          org,
		ctx:          context.Background(),
	}

	if token, ok := tokens.Get(); ok {
		m.client = gh.NewClient(token, tokens)
		m.loader = config.NewLoader(m.client)
		m.state = ViewProjects
	}

	m.topBar.SetView(m.viewName())
	m.updateShortcuts()
	return m
}

func (m Model) Init() tea.Cmd {
	if m.client == nil {
		return nil
	}
	m.statusBar.SetLoading("Loading projects")
	return tea.Batch(m.loadUser(), m.loadProjects())
}

func (m Model) viewName() string {
	switch m.state {
	case ViewLogin:
		return "Login"
	case ViewProjects:
		return "Projects"
	case ViewProject:
		return "Project"
	case ViewRuns:
		return "Runs"
	}
	return ""
}

func (m Model) isInInputMode() bool {
	if m.commandBar.IsActive() {
		return true
	}
	if m.logsView.IsActive() {
		return true
	}
	if m.state == ViewLogin && m.loginView.Mode == views.LoginModePAT {
		return true
	}
	if m.state == ViewProjects && m.projectsView.IsFiltering() {
		return true
	}
	return false
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.topBar.SetWidth(msg.Width)
		m.statusBar.SetWidth(msg.Width)
		m.commandBar.SetWidth(msg.Width)
		m.loginView.SetSize(msg.Width, msg.Height)
		m.projectsView.SetSize(msg.Width, msg.Height)
		m.projectView.SetSize(msg.Width, msg.Height)
		m.runsView.SetSize(msg.Width, msg.Height)
		m.logsView.SetSize(msg.Width, msg.Height)

	case tea.KeyMsg:
		return m.handleKey(msg)

	case DeviceSessionMsg:
		m.loginView.SetSession(msg.session)
		m.statusBar.ClearMessage()
		return m, tea.Batch(m.pollDevice(msg.session), m.loginView.SpinnerTick())

	case AuthorizedMsg:
		return m.handleAuthorized(msg.token)

	case AuthErrorMsg:
		m.loginView.StopPolling()
		m.loginView.SetStatus(msg.err.Error(), true)
		return m, nil

	case UserLoadedMsg:
		m.user = msg.user
		m.topBar.SetIdentity(msg.user.Login, m.org)
		if age, ok := m.tokens.AgeMinutes(); ok {
			m.topBar.SetTokenAge(age, true)
		}
		return m, nil

	case ProjectsLoadedMsg:
		m.projectsView.SetProjects(msg.projects)
		m.topBar.SetStats(len(msg.projects), msg.repoCount)
		m.statusBar.SetMessage(fmt.Sprintf("Found %d projects in %d repositories", len(msg.projects), msg.repoCount), false)
		return m, nil

	case ProjectLoadedMsg:
		m.projectView.SetProject(msg.loaded)
		m.state = ViewProject
		m.topBar.SetView(m.viewName())
		m.updateShortcuts()
		m.statusBar.SetMessage(fmt.Sprintf("Loaded %s with %d workspaces", msg.loaded.Project.Name, len(msg.loaded.Workspaces)), false)
		return m, nil

	case RunsLoadedMsg:
		m.runsView.SetRuns(msg.project, msg.runs)
		m.state = ViewRuns
		m.topBar.SetView(m.viewName())
		m.updateShortcuts()
		m.statusBar.SetMessage(fmt.Sprintf("Loaded %d workflow runs", len(msg.runs)), false)
		return m, nil

	case RunLogsLoadedMsg:
		m.runsView.SetLogs(msg.content)
		m.statusBar.ClearMessage()
		return m, nil

	case ErrorMsg:
		if errors.Is(msg.err, gh.ErrUnauthorized) {
			return m.handleLogout("Session expired, sign in again")
		}
		if errors.Is(msg.err, gh.ErrRateLimited) {
			m.statusBar.SetMessage("GitHub rate limit reached, try again later", true)
			return m, nil
		}
		m.statusBar.SetMessage(msg.err.Error(), true)
		return m, nil

	case SuccessMsg:
		m.statusBar.SetMessage(msg.message, false)
		return m, nil
	}

	cmd = m.updateActiveView(msg)
	return m, cmd
}

func (m Model) updateActiveView(msg tea.Msg) tea.Cmd {
	switch m.state {
	case ViewLogin:
		return m.loginView.Update(msg)
	case ViewProjects:
		return m.projectsView.Update(msg)
	case ViewProject:
		return m.projectView.Update(msg)
	case ViewRuns:
		return m.runsView.Update(msg)
	}
	return nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	if key == "ctrl+c" {
		return m, tea.Quit
	}

	if m.commandBar.IsActive() {
		switch key {
		case "enter":
			return m.handleCommand()
		case "esc":
			m.commandBar.Deactivate()
			return m, nil
		default:
			return m, m.commandBar.Update(msg)
		}
	}

	if m.logsView.IsActive() {
		switch key {
		case "esc", "q":
			m.logsView.Deactivate()
			return m, nil
		default:
			return m, m.logsView.Update(msg)
		}
	}

	if m.state == ViewLogin && m.loginView.Mode == views.LoginModePAT {
		switch key {
		case "enter":
			token := m.loginView.PATValue()
			m.loginView.SetStatus("Validating token...", false)
			return m, m.saveManualToken(token)
		case "esc":
			m.loginView.ExitPATMode()
			return m, nil
		default:
			return m, m.loginView.Update(msg)
		}
	}

	if m.state == ViewProjects && m.projectsView.IsFiltering() {
		return m, m.projectsView.Update(msg)
	}

	if key == ":" {
		m.commandBar.Activate()
		return m, nil
	}

	switch m.state {
	case ViewLogin:
		return m.handleLoginKey(key)
	case ViewProjects:
		return m.handleProjectsKey(key, msg)
	case ViewProject:
		return m.handleProjectKey(key, msg)
	case ViewRuns:
		return m.handleRunsKey(key, msg)
	}

	return m, nil
}

func (m Model) handleLoginKey(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "d", "enter":
		m.loginView.SetStatus("", false)
		m.statusBar.SetLoading("Requesting device code")
		return m, m.startDeviceFlow()
	case "t":
		m.loginView.EnterPATMode()
		return m, nil
	case "esc":
		if m.loginView.IsPolling() {
			m.flow.Cancel()
			m.loginView.StopPolling()
			m.loginView.SetStatus("Authorization cancelled", false)
		}
		return m, nil
	case "q":
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) handleProjectsKey(key string, msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key {
	case "enter":
		project, ok := m.projectsView.Selected()
		if !ok {
			return m, nil
		}
		m.currentProject = project
		m.currentWorkspace = ""
		m.statusBar.SetLoading("Loading " + project.Name)
		return m, m.loadProject(project)
	case "r":
		m.client.ClearCache()
		m.statusBar.SetLoading("Refreshing projects")
		return m, m.loadProjects()
	case "q":
		return m, tea.Quit
	}
	return m, m.projectsView.Update(msg)
}

func (m Model) handleProjectKey(key string, msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key {
	case "esc", "q":
		m.state = ViewProjects
		m.topBar.SetView(m.viewName())
		m.updateShortcuts()
		return m, nil
	case "r":
		m.statusBar.SetLoading("Loading workflow runs")
		return m, m.loadRuns(m.currentProject)
	case "p":
		return m.dispatchFromProject(planWorkflowFile)
	case "a":
		return m.dispatchFromProject(applyWorkflowFile)
	}
	return m, m.projectView.Update(msg)
}

func (m Model) handleRunsKey(key string, msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.runsView.ShowingLogs() {
		switch key {
		case "esc", "q":
			m.runsView.CloseLogs()
			return m, nil
		}
		return m, m.runsView.Update(msg)
	}

	switch key {
	case "esc", "q":
		m.state = ViewProject
		m.topBar.SetView(m.viewName())
		m.updateShortcuts()
		return m, nil
	case "enter", "l":
		run, ok := m.runsView.SelectedRun()
		if !ok {
			return m, nil
		}
		m.statusBar.SetLoading("Fetching run logs")
		return m, m.loadRunLogs(m.currentProject, run)
	case "r":
		m.statusBar.SetLoading("Refreshing workflow runs")
		return m, m.loadRuns(m.currentProject)
	case "p":
		return m, m.dispatch(m.currentProject, m.workspaceForDispatch(), planWorkflowFile)
	case "a":
		return m, m.dispatch(m.currentProject, m.workspaceForDispatch(), applyWorkflowFile)
	}
	return m, m.runsView.Update(msg)
}

func (m Model) dispatchFromProject(workflowFile string) (tea.Model, tea.Cmd) {
	workspace, ok := m.projectView.SelectedWorkspace()
	if !ok {
		m.statusBar.SetMessage("No workspace selected", true)
		return m, nil
	}
	m.currentWorkspace = workspace.Name
	return m, m.dispatch(m.currentProject, workspace.Name, workflowFile)
}

func (m Model) workspaceForDispatch() string {
	if m.currentWorkspace != "" {
		return m.currentWorkspace
	}
	if len(m.currentProject.Workspaces) > 0 {
		return m.currentProject.Workspaces[0]
	}
	return ""
}

func (m Model) handleCommand() (tea.Model, tea.Cmd) {
	input := m.commandBar.Value()
	m.commandBar.Deactivate()

	command := ParseCommand(input)
	logger.Log("UI: executing command %q", input)

	switch command.Type {
	case CommandQuit:
		return m, tea.Quit
	case CommandLogin:
		if m.client != nil {
			m.statusBar.SetMessage("Already signed in as "+m.user.Login, false)
			return m, nil
		}
		return m.handleLoginKey("d")
	case CommandLogout:
		return m.handleLogout("Signed out")
	case CommandProjects:
		if m.client == nil {
			m.statusBar.SetMessage("Sign in first", true)
			return m, nil
		}
		m.state = ViewProjects
		m.topBar.SetView(m.viewName())
		m.updateShortcuts()
		return m, nil
	case CommandRuns:
		if m.currentProject.Name == "" {
			m.statusBar.SetMessage("Open a project first", true)
			return m, nil
		}
		m.statusBar.SetLoading("Loading workflow runs")
		return m, m.loadRuns(m.currentProject)
	case CommandLogs:
		m.logsView.Activate()
		return m, nil
	case CommandRefresh:
		if m.client == nil {
			return m, nil
		}
		m.client.ClearCache()
		m.statusBar.SetLoading("Refreshing")
		return m, m.loadProjects()
	case CommandHelp:
		m.statusBar.SetMessage(":projects :runs :logs :login :logout :refresh :quit", false)
		return m, nil
	}

	m.statusBar.SetMessage("Unknown command", true)
	return m, nil
}

func (m Model) handleAuthorized(token string) (tea.Model, tea.Cmd) {
	m.client = gh.NewClient(token, m.tokens)
	m.loader = config.NewLoader(m.client)
	m.loginView.StopPolling()
	m.loginView.SetStatus("", false)
	m.state = ViewProjects
	m.topBar.SetView(m.viewName())
	m.updateShortcuts()
	m.statusBar.SetLoading("Loading projects")
	return m, tea.Batch(m.loadUser(), m.loadProjects())
}

func (m Model) handleLogout(message string) (tea.Model, tea.Cmd) {
	m.flow.Cancel()
	if err := m.tokens.Clear(); err != nil {
		logger.LogError("LOGOUT", "token store", err)
	}
	m.client = nil
	m.loader = nil
	m.user = domain.User{}
	m.currentProject = domain.Project{}
	m.currentWorkspace = ""
	m.state = ViewLogin
	m.topBar.SetView(m.viewName())
	m.topBar.SetIdentity("", "")
	m.topBar.SetStats(0, 0)
	m.topBar.SetTokenAge(0, false)
	m.updateShortcuts()
	m.statusBar.SetMessage(message, false)
	return m, nil
}

func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	var content string

	if m.logsView.IsActive() {
		content = m.logsView.View()
	} else {
		switch m.state {
		case ViewLogin:
			content = m.loginView.View()
		case ViewProjects:
			content = m.projectsView.View()
		case ViewProject:
			content = m.projectView.View()
		case ViewRuns:
			content = m.runsView.View()
		}
	}

	topBar := m.topBar.View()
	statusBar := m.statusBar.View()
	commandBar := m.commandBar.View()

	if commandBar != "" {
		return topBar + "\n" + content + "\n" + commandBar
	}

	return topBar + "\n" + content + "\n" + statusBar
}

func (m Model) startDeviceFlow() tea.Cmd {
	return func() tea.Msg {
		session, err := m.flow.Start(m.ctx)
		if err != nil {
			return AuthErrorMsg{err: err}
		}
		return DeviceSessionMsg{session: session}
	}
}

func (m Model) pollDevice(session *auth.Session) tea.Cmd {
	return func() tea.Msg {
		token, err := m.flow.Poll(session)
		if err != nil {
			return AuthErrorMsg{err: err}
		}
		return AuthorizedMsg{token: token}
	}
}

func (m Model) saveManualToken(token string) tea.Cmd {
	return func() tea.Msg {
		err := m.flow.SaveManualToken(m.ctx, token, func(ctx context.Context, candidate string) error {
			probe := gh.NewClient(candidate, nil)
			_, err := probe.CurrentUser(ctx)
			return err
		})
		if err != nil {
			return AuthErrorMsg{err: err}
		}
		return AuthorizedMsg{token: token}
	}
}

func (m Model) loadUser() tea.Cmd {
	return func() tea.Msg {
		user, err := m.client.CurrentUser(m.ctx)
		if err != nil {
			return ErrorMsg{err: err}
		}
		return UserLoadedMsg{user: user}
	}
}

func (m Model) loadProjects() tea.Cmd {
	return func() tea.Msg {
		var repos []domain.Repository
		var err error

		if m.org != "" {
			repos, err = m.client.ListOrgRepositories(m.ctx, m.org)
		} else {
			user, userErr := m.client.CurrentUser(m.ctx)
			if userErr != nil {
				return ErrorMsg{err: userErr}
			}
			repos, err = m.client.ListUserRepositories(m.ctx, user.Login)
		}
		if err != nil {
			return ErrorMsg{err: err}
		}

		projects := m.loader.DiscoverProjects(m.ctx, repos)
		return ProjectsLoadedMsg{projects: projects, repoCount: len(repos)}
	}
}

func (m Model) loadProject(project domain.Project) tea.Cmd {
	return func() tea.Msg {
		loaded, err := m.loader.LoadProject(m.ctx, project.Owner, project.Repo)
		if err != nil {
			return ErrorMsg{err: err}
		}
		return ProjectLoadedMsg{loaded: loaded}
	}
}

func (m Model) loadRuns(project domain.Project) tea.Cmd {
	return func() tea.Msg {
		runs, err := m.client.ListWorkflowRuns(m.ctx, project.Owner, project.Repo, 10)
		if err != nil {
			return ErrorMsg{err: err}
		}
		return RunsLoadedMsg{project: project.Name, runs: runs}
	}
}

func (m Model) loadRunLogs(project domain.Project, run domain.WorkflowRun) tea.Cmd {
	return func() tea.Msg {
		content, err := m.client.GetWorkflowRunLogs(m.ctx, project.Owner, project.Repo, run.ID)
		if err != nil {
			return ErrorMsg{err: err}
		}
		return RunLogsLoadedMsg{content: redact.Text(content)}
	}
}

func (m Model) dispatch(project domain.Project, workspace, workflowFile string) tea.Cmd {
	return func() tea.Msg {
		inputs := map[string]interface{}{}
		if workspace != "" {
			inputs["workspace"] = workspace
		}
		if err := m.client.DispatchWorkflow(m.ctx, project.Owner, project.Repo, workflowFile, inputs); err != nil {
			return ErrorMsg{err: err}
		}
		return SuccessMsg{message: fmt.Sprintf("Dispatched %s for %s", workflowFile, workspace)}
	}
}

func (m Model) updateShortcuts() {
	var shortcuts []string
	switch m.state {
	case ViewLogin:
		shortcuts = []string{"d:device login", "t:token", "q:quit"}
	case ViewProjects:
		shortcuts = []string{"enter:open", "r:refresh", "q:quit"}
	case ViewProject:
		shortcuts = []string{"r:runs", "p:plan", "a:apply", "esc:back"}
	case ViewRuns:
		shortcuts = []string{"enter:logs", "p:plan", "a:apply", "esc:back"}
	}
	m.topBar.SetShortcuts(shortcuts)
}

type DeviceSessionMsg struct {
	session *auth.Session
}

type AuthorizedMsg struct {
	token string
}

type AuthErrorMsg struct {
	err error
}

type UserLoadedMsg struct {
	user domain.User
}

type ProjectsLoadedMsg struct {
	projects  []domain.Project
	repoCount int
}

type ProjectLoadedMsg struct {
	loaded *config.LoadedProject
}

type RunsLoadedMsg struct {
	project string
	runs    []domain.WorkflowRun
}

type RunLogsLoadedMsg struct {
	content string
}

type ErrorMsg struct {
	err error
}

type SuccessMsg struct {
	message string
}
