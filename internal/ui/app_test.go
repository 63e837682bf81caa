package ui

import (
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vmvarela/ghoten-ui/internal/auth"
	"github.com/vmvarela/ghoten-ui/internal/domain"
	gh "github.com/vmvarela/ghoten-ui/internal/github"
)

type memStore struct {
	values map[string]string
}

func newMemStore() *memStore {
	return &memStore{values: make(map[string]string)}
}

func (s *memStore) Get(key string) (string, bool) {
	value, ok := s.values[key]
	return value, ok
}

func (s *memStore) Set(key, value string) error {
	s.values[key] = value
	return nil
}

func (s *memStore) Delete(key string) error {
	delete(s.values, key)
	return nil
}

func createTestModel(t *testing.T) Model {
	t.Helper()
	tokens := auth.NewTokenStore(newMemStore())
	flow := auth.NewDeviceFlow("test-client-id", tokens)
	return NewModel(tokens, flow, "acme")
}

func createAuthenticatedModel(t *testing.T) Model {
	t.Helper()
	store := newMemStore()
	tokens := auth.NewTokenStore(store)
	if err := tokens.Set("gho_testtoken"); err != nil {
		t.Fatalf("seeding token: %v", err)
	}
	flow := auth.NewDeviceFlow("test-client-id", tokens)
	return NewModel(tokens, flow, "acme")
}

func TestNewModel_WithoutTokenStartsAtLogin(t *testing.T) {
	m := createTestModel(t)

	if m.state != ViewLogin {
		t.Errorf("expected ViewLogin, got %v", m.state)
	}
	if m.client != nil {
		t.Error("expected no client before sign-in")
	}
}

func TestNewModel_WithStoredTokenStartsAtProjects(t *testing.T) {
	m := createAuthenticatedModel(t)

	if m.state != ViewProjects {
		t.Errorf("expected ViewProjects, got %v", m.state)
	}
	if m.client == nil {
		t.Error("expected client to be built from stored token")
	}
}

func TestUpdate_AuthorizedMsgBuildsClientAndNavigates(t *testing.T) {
	m := createTestModel(t)

	newModel, cmd := m.Update(AuthorizedMsg{token: "gho_fresh"})
	updated := newModel.(Model)

	if updated.state != ViewProjects {
		t.Errorf("expected ViewProjects after authorization, got %v", updated.state)
	}
	if updated.client == nil {
		t.Error("expected client after authorization")
	}
	if cmd == nil {
		t.Error("expected a load command after authorization")
	}
}

func TestUpdate_UnauthorizedErrorReturnsToLogin(t *testing.T) {
	m := createAuthenticatedModel(t)

	newModel, _ := m.Update(ErrorMsg{err: gh.ErrUnauthorized})
	updated := newModel.(Model)

	if updated.state != ViewLogin {
		t.Errorf("expected ViewLogin after 401, got %v", updated.state)
	}
	if updated.client != nil {
		t.Error("expected client to be dropped after 401")
	}
	if _, ok := updated.tokens.Get(); ok {
		t.Error("expected stored token to be cleared after 401")
	}
}

func TestUpdate_GenericErrorStaysOnView(t *testing.T) {
	m := createAuthenticatedModel(t)

	newModel, _ := m.Update(ErrorMsg{err: errors.New("network down")})
	updated := newModel.(Model)

	if updated.state != ViewProjects {
		t.Errorf("expected to stay on ViewProjects, got %v", updated.state)
	}
	if updated.client == nil {
		t.Error("expected client to survive a transient error")
	}
}

func TestUpdate_ProjectsLoadedUpdatesList(t *testing.T) {
	m := createAuthenticatedModel(t)

	projects := []domain.Project{
		{Owner: "acme", Repo: "infra", Name: "infra", Workspaces: []string{"prod"}},
		{Owner: "acme", Repo: "net", Name: "network", Workspaces: []string{"dev"}},
	}
	newModel, _ := m.Update(ProjectsLoadedMsg{projects: projects, repoCount: 7})
	updated := newModel.(Model)

	if updated.state != ViewProjects {
		t.Errorf("expected ViewProjects, got %v", updated.state)
	}
	selected, ok := updated.projectsView.Selected()
	if !ok {
		t.Fatal("expected a selected project after load")
	}
	if selected.Name != "infra" {
		t.Errorf("expected first project selected, got %q", selected.Name)
	}
}

func TestUpdate_RunsLoadedSwitchesView(t *testing.T) {
	m := createAuthenticatedModel(t)

	runs := []domain.WorkflowRun{
		{ID: 1, Name: "Terraform Plan", Status: domain.RunStatusCompleted, Conclusion: "success", Branch: "main"},
	}
	newModel, _ := m.Update(RunsLoadedMsg{project: "infra", runs: runs})
	updated := newModel.(Model)

	if updated.state != ViewRuns {
		t.Errorf("expected ViewRuns, got %v", updated.state)
	}
	run, ok := updated.runsView.SelectedRun()
	if !ok {
		t.Fatal("expected a selected run")
	}
	if run.ID != 1 {
		t.Errorf("expected run 1 selected, got %d", run.ID)
	}
}

func TestHandleCommand_LogoutClearsSession(t *testing.T) {
	m := createAuthenticatedModel(t)
	m.commandBar.Activate()
	for _, r := range "logout" {
		m.commandBar.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}

	newModel, _ := m.handleCommand()
	updated := newModel.(Model)

	if updated.state != ViewLogin {
		t.Errorf("expected ViewLogin after logout, got %v", updated.state)
	}
	if _, ok := updated.tokens.Get(); ok {
		t.Error("expected token cleared after logout")
	}
}

func TestHandleCommand_RunsWithoutProjectShowsError(t *testing.T) {
	m := createAuthenticatedModel(t)
	m.commandBar.Activate()
	for _, r := range "runs" {
		m.commandBar.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}

	newModel, cmd := m.handleCommand()
	updated := newModel.(Model)

	if cmd != nil {
		t.Error("expected no load command without an open project")
	}
	if updated.state != ViewProjects {
		t.Errorf("expected to stay on ViewProjects, got %v", updated.state)
	}
}

func TestHandleKey_ColonActivatesCommandBar(t *testing.T) {
	m := createAuthenticatedModel(t)

	newModel, _ := m.handleKey(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{':'}})
	updated := newModel.(Model)

	if !updated.commandBar.IsActive() {
		t.Error("expected command bar active after colon")
	}
}
