package config

import (
	"context"
	"errors"
	"testing"

	"github.com/vmvarela/ghoten-ui/internal/domain"
)

type fakeFetcher struct {
	files map[string]string
	calls []string
}

func (f *fakeFetcher) GetFileContent(ctx context.Context, owner, repo, path string) (string, error) {
	key := owner + "/" + repo + "/" + path
	f.calls = append(f.calls, key)
	content, ok := f.files[key]
	if !ok {
		return "", errors.New("not found")
	}
	return content, nil
}

func repos(keys ...string) []domain.Repository {
	var result []domain.Repository
	for _, key := range keys {
		result = append(result, domain.Repository{Owner: "acme", Name: key, FullName: "acme/" + key})
	}
	return result
}

const validProject = `
name: network-infra
workspaces:
  - production
`

func TestDiscoverProjectsSkipsNonProjects(t *testing.T) {
	fetcher := &fakeFetcher{files: map[string]string{
		"acme/a/.ghoten/project.yaml": validProject,
	}}
	loader := NewLoader(fetcher)

	projects := loader.DiscoverProjects(context.Background(), repos("a", "b"))

	if len(projects) != 1 {
		t.Fatalf("len(projects) = %d, want 1", len(projects))
	}
	if projects[0].Owner != "acme" || projects[0].Repo != "a" {
		t.Errorf("project = %s/%s, want acme/a", projects[0].Owner, projects[0].Repo)
	}
}

func TestDiscoverProjectsDeduplicatesPreservingOrder(t *testing.T) {
	fetcher := &fakeFetcher{files: map[string]string{
		"acme/a/.ghoten/project.yaml": validProject,
		"acme/c/.ghoten/project.yaml": "name: second\nworkspaces: []\n",
	}}
	loader := NewLoader(fetcher)

	projects := loader.DiscoverProjects(context.Background(), repos("a", "b", "a", "c"))

	if len(projects) != 2 {
		t.Fatalf("len(projects) = %d, want 2", len(projects))
	}
	if projects[0].Repo != "a" || projects[1].Repo != "c" {
		t.Errorf("project order = [%s %s], want [a c]", projects[0].Repo, projects[1].Repo)
	}

	fetches := 0
	for _, call := range fetcher.calls {
		if call == "acme/a/.ghoten/project.yaml" {
			fetches++
		}
	}
	if fetches != 1 {
		t.Errorf("descriptor fetches for repeated repo = %d, want 1", fetches)
	}
}

func TestDiscoverProjectsSkipsInvalidDescriptors(t *testing.T) {
	fetcher := &fakeFetcher{files: map[string]string{
		"acme/malformed/.ghoten/project.yaml": "name: [unclosed",
		"acme/invalid/.ghoten/project.yaml":   "name: x\n",
		"acme/valid/.ghoten/project.yaml":     validProject,
	}}
	loader := NewLoader(fetcher)

	projects := loader.DiscoverProjects(context.Background(), repos("malformed", "invalid", "valid"))

	if len(projects) != 1 {
		t.Fatalf("len(projects) = %d, want 1", len(projects))
	}
	if projects[0].Repo != "valid" {
		t.Errorf("project = %s, want valid", projects[0].Repo)
	}
}

func TestLoadProject(t *testing.T) {
	fetcher := &fakeFetcher{files: map[string]string{
		"acme/infra/.ghoten/project.yaml": `
name: network-infra
workspaces:
  - production
  - staging
`,
		"acme/infra/.ghoten/workspaces/production.yaml": `
name: production
environment: production
variables:
  db_password: hunter2
`,
		"acme/infra/.ghoten/workspaces/staging.yaml": "name: staging\n",
	}}
	loader := NewLoader(fetcher)

	loaded, err := loader.LoadProject(context.Background(), "acme", "infra")
	if err != nil {
		t.Fatalf("LoadProject() error = %v", err)
	}

	if loaded.Project.Name != "network-infra" {
		t.Errorf("Name = %q, want network-infra", loaded.Project.Name)
	}
	if len(loaded.Workspaces) != 2 {
		t.Fatalf("len(Workspaces) = %d, want 2", len(loaded.Workspaces))
	}
	if loaded.Workspaces[0].Environment != "production" {
		t.Errorf("Environment = %q, want production", loaded.Workspaces[0].Environment)
	}
	if loaded.Workspaces[1].Environment != "development" {
		t.Errorf("Environment = %q, want development default", loaded.Workspaces[1].Environment)
	}
}

func TestLoadProjectSurfacesDescriptorErrors(t *testing.T) {
	loader := NewLoader(&fakeFetcher{files: map[string]string{}})

	if _, err := loader.LoadProject(context.Background(), "acme", "missing"); err == nil {
		t.Error("LoadProject() error = nil for missing descriptor, want error")
	}
}

func TestLoadProjectSurfacesValidationErrors(t *testing.T) {
	loader := NewLoader(&fakeFetcher{files: map[string]string{
		"acme/infra/.ghoten/project.yaml": "name: x\n",
	}})

	_, err := loader.LoadProject(context.Background(), "acme", "infra")
	if !errors.Is(err, ErrInvalidProject) {
		t.Errorf("LoadProject() error = %v, want ErrInvalidProject", err)
	}
}

func TestLoadProjectOmitsFailingWorkspaces(t *testing.T) {
	fetcher := &fakeFetcher{files: map[string]string{
		"acme/infra/.ghoten/project.yaml": `
name: network-infra
workspaces:
  - good
  - missing
`,
		"acme/infra/.ghoten/workspaces/good.yaml": "name: good\n",
	}}
	loader := NewLoader(fetcher)

	loaded, err := loader.LoadProject(context.Background(), "acme", "infra")
	if err != nil {
		t.Fatalf("LoadProject() error = %v", err)
	}

	if len(loaded.Workspaces) != 1 {
		t.Fatalf("len(Workspaces) = %d, want 1", len(loaded.Workspaces))
	}
	if loaded.Workspaces[0].Name != "good" {
		t.Errorf("workspace = %q, want good", loaded.Workspaces[0].Name)
	}
}
